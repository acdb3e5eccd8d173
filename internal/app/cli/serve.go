package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"mandacaru_broker/internal/app/di"
	"mandacaru_broker/internal/app/router"
	authadapters "mandacaru_broker/internal/feature/auth/adapters"
	authhandler "mandacaru_broker/internal/feature/auth/transport/handler"
	authusecase "mandacaru_broker/internal/feature/auth/usecase"
	stockhandler "mandacaru_broker/internal/feature/stocks/transport/handler"
	stockusecase "mandacaru_broker/internal/feature/stocks/usecase"
	platformhandler "mandacaru_broker/internal/platform/http/handler"
	jwtmw "mandacaru_broker/internal/platform/jwt"
	"mandacaru_broker/internal/platform/logger"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if err := cfg.ValidateServe(); err != nil {
				return err
			}
			gin.SetMode(cfg.GinMode)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			infra, err := di.OpenInfra(ctx, cfg)
			if err != nil {
				return err
			}
			defer infra.Close()

			stocks := di.NewStockRepository(cfg.Store, infra.DB, infra.Redis, cfg.CacheTTL)
			authUC := authusecase.NewAuthUsecase(
				authadapters.NewUserRepository(infra.DB),
				jwtmw.NewGenerator(cfg.JWTSecret, cfg.JWTExpiresIn),
			)

			checks := []platformhandler.Check{{
				Name: "db",
				Ping: func(ctx context.Context) error {
					sqlDB, err := infra.DB.DB()
					if err != nil {
						return err
					}
					return sqlDB.PingContext(ctx)
				},
			}}
			if infra.Redis != nil {
				checks = append(checks, platformhandler.Check{
					Name: "redis",
					Ping: func(ctx context.Context) error { return infra.Redis.Ping(ctx).Err() },
				})
			}

			engine := router.NewRouter(router.Handlers{
				Auth:   authhandler.NewAuthHandler(authUC),
				Stocks: stockhandler.NewStockHandler(stockusecase.NewStockUsecase(stocks)),
				Health: platformhandler.NewHealthHandler(checks...),
			}, cfg.JWTSecret)

			srv := &http.Server{
				Addr:              ":" + cfg.Port,
				Handler:           engine,
				ReadHeaderTimeout: 5 * time.Second,
			}
			return run(ctx, srv)
		},
	}
}

// run serves until ctx is done, then shuts down gracefully.
func run(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Get().Infow("http server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Get().Infow("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
