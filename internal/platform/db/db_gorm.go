// Package db opens and migrates the relational store behind the broker.
package db

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"mandacaru_broker/internal/feature/auth/domain/entity"
	stockadapters "mandacaru_broker/internal/feature/stocks/adapters"
	"mandacaru_broker/internal/platform/logger"
)

// Supported drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds the connection settings for the relational store.
type Config struct {
	Driver         string
	Host           string
	Port           string
	User           string
	Password       string
	Name           string
	SSLMode        string
	SQLitePath     string
	ConnectTimeout time.Duration
}

// Opener opens a gorm connection for a DSN. Swappable in tests.
type Opener func(dsn string) (*gorm.DB, error)

var retryInterval = 3 * time.Second

// BuildDSN returns the postgres key/value DSN for cfg.
// Empty fields are left out so libpq defaults apply.
func BuildDSN(cfg Config) string {
	parts := make([]string, 0, 6)
	add := func(k, v string) {
		if v != "" {
			parts = append(parts, fmt.Sprintf("%s=%s", k, v))
		}
	}
	add("host", cfg.Host)
	add("port", cfg.Port)
	add("user", cfg.User)
	add("password", cfg.Password)
	add("dbname", cfg.Name)
	sslmode := cfg.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	add("sslmode", sslmode)
	return strings.Join(parts, " ")
}

// ConnectWithRetry calls open until it succeeds or timeout elapses.
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for attempt := 1; ; attempt++ {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, errors.Wrapf(err, "db connect failed after %d attempts", attempt)
		}
		logger.Get().Warnw("db connect failed, retrying", "attempt", attempt, "error", err)
		time.Sleep(min(retryInterval, remaining))
	}
}

// Open connects to the store selected by cfg.Driver.
func Open(cfg Config) (*gorm.DB, error) {
	gcfg := &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	}

	switch cfg.Driver {
	case DriverPostgres, "":
		timeout := cfg.ConnectTimeout
		if timeout <= 0 {
			timeout = 60 * time.Second
		}
		return ConnectWithRetry(BuildDSN(cfg), timeout, func(dsn string) (*gorm.DB, error) {
			return gorm.Open(postgres.Open(dsn), gcfg)
		})
	case DriverSQLite:
		path := cfg.SQLitePath
		if path == "" {
			path = ":memory:"
		}
		db, err := gorm.Open(sqlite.Open(path), gcfg)
		if err != nil {
			return nil, errors.Wrap(err, "open sqlite")
		}
		if path == ":memory:" {
			// each connection would get its own database otherwise
			sqlDB, err := db.DB()
			if err != nil {
				return nil, errors.Wrap(err, "sqlite handle")
			}
			sqlDB.SetMaxOpenConns(1)
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.Driver)
	}
}

// Migrate creates or updates the broker's tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&stockadapters.StockModel{}, &entity.User{}); err != nil {
		return errors.Wrap(err, "auto migrate")
	}
	return nil
}
