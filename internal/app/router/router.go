// Package router assembles the gin engine and its routes.
package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "mandacaru_broker/internal/feature/auth/transport/handler"
	stockhandler "mandacaru_broker/internal/feature/stocks/transport/handler"
	platformhandler "mandacaru_broker/internal/platform/http/handler"
	"mandacaru_broker/internal/platform/http/middleware"
	jwtmw "mandacaru_broker/internal/platform/jwt"
	"mandacaru_broker/internal/platform/validator"
)

// Handlers groups the feature handlers served by the router.
type Handlers struct {
	Auth   *authhandler.AuthHandler
	Stocks *stockhandler.StockHandler
	Health *platformhandler.HealthHandler
}

// NewRouter builds the engine. Reads are public, catalogue writes need a bearer token.
func NewRouter(h Handlers, jwtSecret string) *gin.Engine {
	validator.Register()

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogging(), cors.New(corsConfig()))

	r.GET("/healthz", h.Health.Health)
	r.HEAD("/healthz", h.Health.Health)
	r.OPTIONS("/healthz", h.Health.Health)

	r.POST("/signup", h.Auth.Signup)
	r.POST("/login", h.Auth.Login)

	stocks := r.Group("/stocks")
	stocks.GET("", h.Stocks.List)
	stocks.GET("/:id", h.Stocks.Get)

	write := stocks.Group("", jwtmw.AuthRequired(jwtSecret))
	{
		write.POST("", h.Stocks.Create)
		write.PUT("/:id", h.Stocks.Update)
		write.DELETE("/:id", h.Stocks.Delete)
	}

	return r
}

func corsConfig() cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowAllOrigins = true
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization", middleware.RequestIDHeader)
	cfg.ExposeHeaders = []string{middleware.RequestIDHeader}
	cfg.MaxAge = 12 * time.Hour
	return cfg
}
