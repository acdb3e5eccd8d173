package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func setupRouter(h *HealthHandler) *gin.Engine {
	r := gin.New()
	r.GET("/healthz", h.Health)
	r.HEAD("/healthz", h.Health)
	r.OPTIONS("/healthz", h.Health)
	return r
}

func up(context.Context) error   { return nil }
func down(context.Context) error { return errors.New("connection refused") }

func TestHealth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		method       string
		checks       []Check
		expectedCode int
		expectedBody string
	}{
		{"GET without checks", http.MethodGet, nil, http.StatusOK, `{"status":"ok"}`},
		{"GET all up", http.MethodGet, []Check{{"db", up}, {"redis", up}}, http.StatusOK,
			`{"status":"ok","checks":{"db":"up","redis":"up"}}`},
		{"GET one down", http.MethodGet, []Check{{"db", up}, {"redis", down}}, http.StatusServiceUnavailable,
			`{"status":"degraded","checks":{"db":"up","redis":"down"}}`},
		{"HEAD skips probes", http.MethodHead, []Check{{"db", down}}, http.StatusOK, ""},
		{"OPTIONS skips probes", http.MethodOptions, []Check{{"db", down}}, http.StatusNoContent, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, "/healthz", nil)
			setupRouter(NewHealthHandler(tt.checks...)).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)
			assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
			if tt.expectedBody == "" {
				assert.Zero(t, w.Body.Len())
				return
			}
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}
