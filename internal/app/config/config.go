// Package config loads broker settings from the environment, .env and an optional YAML file.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"mandacaru_broker/internal/platform/db"
	"mandacaru_broker/internal/platform/externalapi/twelvedata"
	"mandacaru_broker/internal/platform/redis"
)

// Store backends.
const (
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
	StoreMemory   = "memory"
)

// Config is the resolved application configuration.
type Config struct {
	Env     string
	Port    string
	GinMode string

	Store         string
	DB            db.Config
	RunMigrations bool

	Redis    redis.Config
	CacheTTL time.Duration

	JWTSecret    string
	JWTExpiresIn time.Duration

	Market          twelvedata.Config
	MarketRateLimit int
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("STORE", StorePostgres)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "broker")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("SQLITE_PATH", "broker.db")
	v.SetDefault("DB_CONNECT_TIMEOUT", "60s")
	v.SetDefault("RUN_MIGRATIONS", false)
	v.SetDefault("REDIS_HOST", "")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("CACHE_TTL", "5m")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_EXPIRES_IN", "1h")
	v.SetDefault("TWELVE_DATA_API_KEY", "")
	v.SetDefault("TWELVE_DATA_BASE_URL", twelvedata.DefaultBaseURL)
	v.SetDefault("MARKET_TIMEOUT", "10s")
	v.SetDefault("MARKET_RATE_LIMIT", 8)
}

// Load reads .env (if present), then cfgFile (if set), then the environment.
// Environment variables win over the file.
func Load(cfgFile string) (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrapf(err, "read config %s", cfgFile)
		}
	}

	cfg := Config{
		Env:     v.GetString("APP_ENV"),
		Port:    v.GetString("PORT"),
		GinMode: v.GetString("GIN_MODE"),
		Store:   v.GetString("STORE"),
		DB: db.Config{
			Host:           v.GetString("DB_HOST"),
			Port:           v.GetString("DB_PORT"),
			User:           v.GetString("DB_USER"),
			Password:       v.GetString("DB_PASSWORD"),
			Name:           v.GetString("DB_NAME"),
			SSLMode:        v.GetString("DB_SSLMODE"),
			SQLitePath:     v.GetString("SQLITE_PATH"),
			ConnectTimeout: v.GetDuration("DB_CONNECT_TIMEOUT"),
		},
		RunMigrations: v.GetBool("RUN_MIGRATIONS"),
		Redis: redis.Config{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
		},
		CacheTTL:     v.GetDuration("CACHE_TTL"),
		JWTSecret:    v.GetString("JWT_SECRET"),
		JWTExpiresIn: v.GetDuration("JWT_EXPIRES_IN"),
		Market: twelvedata.Config{
			APIKey:  v.GetString("TWELVE_DATA_API_KEY"),
			BaseURL: v.GetString("TWELVE_DATA_BASE_URL"),
			Timeout: v.GetDuration("MARKET_TIMEOUT"),
		},
		MarketRateLimit: v.GetInt("MARKET_RATE_LIMIT"),
	}

	switch cfg.Store {
	case StorePostgres:
		cfg.DB.Driver = db.DriverPostgres
	case StoreSQLite:
		cfg.DB.Driver = db.DriverSQLite
	case StoreMemory:
		// stocks live in process memory; users go to a private sqlite database
		cfg.DB.Driver = db.DriverSQLite
		cfg.DB.SQLitePath = ":memory:"
		cfg.RunMigrations = true
	default:
		return Config{}, fmt.Errorf("unknown STORE %q (want postgres, sqlite or memory)", cfg.Store)
	}
	return cfg, nil
}

// CacheEnabled reports whether a Redis host is configured.
func (c Config) CacheEnabled() bool {
	return c.Redis.Host != ""
}

// ValidateServe checks the settings only the HTTP server needs.
func (c Config) ValidateServe() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.JWTExpiresIn <= 0 {
		return errors.New("JWT_EXPIRES_IN must be positive")
	}
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("GIN_MODE %q is not one of debug, release, test", c.GinMode)
	}
	return nil
}
