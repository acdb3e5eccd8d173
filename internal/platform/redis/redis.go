// Package redis builds the Redis client shared by the caching layer.
package redis

import (
	"context"
	"net"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"mandacaru_broker/internal/platform/logger"
)

// Config holds the Redis connection settings.
type Config struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// Addr returns host:port.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// NewRedisClient connects to Redis and pings it once.
// The client is closed and an error returned when the ping fails.
func NewRedisClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		logger.Get().Errorw("redis connection failed", "address", cfg.Addr(), "error", err)
		return nil, errors.Wrap(err, "redis ping")
	}

	logger.Get().Infow("redis connection successful", "address", cfg.Addr())
	return rdb, nil
}
