package di

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"mandacaru_broker/internal/app/config"
	stockadapters "mandacaru_broker/internal/feature/stocks/adapters"
	"mandacaru_broker/internal/feature/stocks/usecase"
	"mandacaru_broker/internal/platform/cache"
	"mandacaru_broker/internal/platform/db"
	"mandacaru_broker/internal/platform/logger"
	infraredis "mandacaru_broker/internal/platform/redis"
)

// Infra holds the opened connections. Close releases them.
type Infra struct {
	DB    *gorm.DB
	Redis *goredis.Client
}

// OpenInfra opens the database and, when configured, Redis.
// An unreachable Redis is logged and the broker runs without cache.
func OpenInfra(ctx context.Context, cfg config.Config) (*Infra, error) {
	gdb, err := db.Open(cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.RunMigrations {
		if err := db.Migrate(gdb); err != nil {
			closeDB(gdb)
			return nil, err
		}
	}

	infra := &Infra{DB: gdb}
	if cfg.CacheEnabled() && cfg.Store != config.StoreMemory {
		rdb, err := infraredis.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			logger.Get().Warnw("redis unavailable, running without cache", "error", err)
		} else {
			infra.Redis = rdb
		}
	}
	return infra, nil
}

// Close releases every connection, logging failures.
func (i *Infra) Close() {
	if i.Redis != nil {
		if err := i.Redis.Close(); err != nil {
			logger.Get().Errorw("failed to close redis client", "error", err)
		}
	}
	closeDB(i.DB)
}

func closeDB(gdb *gorm.DB) {
	if gdb == nil {
		return
	}
	sqlDB, err := gdb.DB()
	if err == nil {
		err = sqlDB.Close()
	}
	if err != nil {
		logger.Get().Errorw("failed to close database", "error", err)
	}
}

// NewStockRepository picks the stock store for cfg.Store and wraps it with the
// Redis cache when a client is available.
func NewStockRepository(store string, gdb *gorm.DB, rdb *goredis.Client, ttl time.Duration) usecase.StockRepository {
	var repo usecase.StockRepository
	if store == config.StoreMemory {
		repo = stockadapters.NewMemoryStockRepository()
	} else {
		repo = stockadapters.NewStockRepository(gdb)
	}
	if rdb == nil {
		return repo
	}
	return cache.NewCachingStockRepository(rdb, ttl, repo, "stocks")
}
