package config

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	DriverSQLite   = "sqlite"
	DriverDocument = "document"

	BackendFile  = "file"
	BackendRedis = "redis"
)

// Config holds application configuration values.
type Config struct {
	HTTPPort string `envconfig:"HTTP_PORT" default:"8080"`

	StoreDriver     string `envconfig:"STORE_DRIVER" default:"sqlite"`
	DatabaseDSN     string `envconfig:"DATABASE_DSN" default:"inventtrack.db"`
	DocumentBackend string `envconfig:"DOCUMENT_BACKEND" default:"file"`
	DocumentDir     string `envconfig:"DOCUMENT_DIR" default:"data"`
	RedisAddr       string `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`
	StoragePrefix   string `envconfig:"STORAGE_PREFIX" default:"inventtrack_"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`

	APIURL     string        `envconfig:"API_URL" default:"https://api.inventtrack.com"`
	APIKey     string        `envconfig:"API_KEY"`
	APITimeout time.Duration `envconfig:"API_TIMEOUT" default:"15s"`

	RateLimit int `envconfig:"RATE_LIMIT" default:"120"`
}

// Load reads a local .env file when present, then the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}

	// Validate that port is numeric.
	if _, err := strconv.Atoi(cfg.HTTPPort); err != nil {
		slog.Warn("invalid HTTP_PORT value, defaulting to 8080", slog.String("value", cfg.HTTPPort))
		cfg.HTTPPort = "8080"
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 120
	}
	return cfg, nil
}

// UsesDocumentStore reports whether the key-document adapter is selected.
func (c Config) UsesDocumentStore() bool {
	return c.StoreDriver == DriverDocument
}
