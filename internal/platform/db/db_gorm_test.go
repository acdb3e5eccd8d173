package db

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestBuildDSN(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cfg      Config
		expected string
	}{
		{
			name: "full config",
			cfg: Config{
				Host: "localhost", Port: "5432", User: "broker", Password: "secret",
				Name: "broker", SSLMode: "require",
			},
			expected: "host=localhost port=5432 user=broker password=secret dbname=broker sslmode=require",
		},
		{
			name:     "sslmode defaults to disable",
			cfg:      Config{Host: "db", User: "u", Name: "n"},
			expected: "host=db user=u dbname=n sslmode=disable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, BuildDSN(tt.cfg))
		})
	}
}

// Mutates retryInterval, so these do not run in parallel.
func TestConnectWithRetry(t *testing.T) {
	orig := retryInterval
	retryInterval = 10 * time.Millisecond
	t.Cleanup(func() { retryInterval = orig })

	t.Run("success on first try", func(t *testing.T) {
		mockDB := &gorm.DB{}
		calls := 0
		db, err := ConnectWithRetry("dsn", time.Second, func(dsn string) (*gorm.DB, error) {
			calls++
			assert.Equal(t, "dsn", dsn)
			return mockDB, nil
		})

		require.NoError(t, err)
		assert.Same(t, mockDB, db)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries until success", func(t *testing.T) {
		mockDB := &gorm.DB{}
		calls := 0
		db, err := ConnectWithRetry("dsn", 5*time.Second, func(string) (*gorm.DB, error) {
			calls++
			if calls < 3 {
				return nil, errors.New("connection refused")
			}
			return mockDB, nil
		})

		require.NoError(t, err)
		assert.Same(t, mockDB, db)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after timeout", func(t *testing.T) {
		calls := 0
		db, err := ConnectWithRetry("dsn", 50*time.Millisecond, func(string) (*gorm.DB, error) {
			calls++
			return nil, errors.New("connection refused")
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
		assert.Nil(t, db)
		assert.GreaterOrEqual(t, calls, 2)
	})
}

func TestOpen_SQLiteAndMigrate(t *testing.T) {
	t.Parallel()

	db, err := Open(Config{Driver: DriverSQLite})
	require.NoError(t, err)

	require.NoError(t, Migrate(db))
	assert.True(t, db.Migrator().HasTable("stocks"))
	assert.True(t, db.Migrator().HasTable("users"))

	// idempotent
	require.NoError(t, Migrate(db))
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	t.Parallel()

	_, err := Open(Config{Driver: "oracle"})
	assert.ErrorContains(t, err, "unsupported db driver")
}
