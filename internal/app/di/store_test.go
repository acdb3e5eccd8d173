package di

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mandacaru_broker/internal/app/config"
	"mandacaru_broker/internal/platform/cache"
	"mandacaru_broker/internal/platform/db"
)

func TestOpenInfra_SQLiteMemory(t *testing.T) {
	t.Parallel()

	cfg := config.Config{
		Store:         config.StoreMemory,
		DB:            db.Config{Driver: db.DriverSQLite, SQLitePath: ":memory:"},
		RunMigrations: true,
	}

	infra, err := OpenInfra(context.Background(), cfg)
	require.NoError(t, err)
	defer infra.Close()

	assert.Nil(t, infra.Redis)
	assert.True(t, infra.DB.Migrator().HasTable("users"))
}

func TestNewStockRepository(t *testing.T) {
	t.Parallel()

	gdb, err := db.Open(db.Config{Driver: db.DriverSQLite})
	require.NoError(t, err)
	rdb, _ := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	memory := NewStockRepository(config.StoreMemory, nil, nil, time.Minute)
	assert.NotNil(t, memory)
	_, isCache := memory.(*cache.CachingStockRepository)
	assert.False(t, isCache)

	cached := NewStockRepository(config.StoreSQLite, gdb, rdb, time.Minute)
	_, isCache = cached.(*cache.CachingStockRepository)
	assert.True(t, isCache)
}

func TestNewMarket(t *testing.T) {
	t.Parallel()

	assert.NotNil(t, NewMarket(config.Config{}.Market))
	assert.NotNil(t, NewMarketLimiter(8))
}
