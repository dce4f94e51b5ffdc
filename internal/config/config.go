// Package config loads runtime settings from defaults and the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DatabaseConfig holds the PostgreSQL DSN and pool tuning.
type DatabaseConfig struct {
	URL               string        `koanf:"url" validate:"required"`
	MaxConns          int32         `koanf:"max_conns" validate:"gte=1"`
	MinConns          int32         `koanf:"min_conns" validate:"gte=0,ltefield=MaxConns"`
	MaxConnLifetime   time.Duration `koanf:"max_conn_lifetime"`
	MaxConnIdleTime   time.Duration `koanf:"max_conn_idle_time"`
	HealthCheckPeriod time.Duration `koanf:"health_check_period"`
	ConnectTimeout    time.Duration `koanf:"connect_timeout" validate:"gt=0s"`
	TraceSQL          bool          `koanf:"trace_sql"`
}

// LogConfig selects log verbosity and output format.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format" validate:"oneof=json console"`
}

// SearchConfig bounds the row limits callers may request.
type SearchConfig struct {
	DefaultLimit int `koanf:"default_limit" validate:"gte=1"`
	MaxLimit     int `koanf:"max_limit" validate:"gtefield=DefaultLimit"`
}

// Config aggregates application-wide configuration values.
type Config struct {
	Database DatabaseConfig `koanf:"database"`
	Log      LogConfig      `koanf:"log"`
	Search   SearchConfig   `koanf:"search"`
}

// envKeys maps the flat environment names to koanf paths. Anything not
// listed here is ignored.
var envKeys = map[string]string{
	"database_url":           "database.url",
	"db_max_conns":           "database.max_conns",
	"db_min_conns":           "database.min_conns",
	"db_max_conn_lifetime":   "database.max_conn_lifetime",
	"db_max_conn_idle_time":  "database.max_conn_idle_time",
	"db_health_check_period": "database.health_check_period",
	"db_connect_timeout":     "database.connect_timeout",
	"sql_trace":              "database.trace_sql",
	"log_level":              "log.level",
	"log_format":             "log.format",
	"search_default_limit":   "search.default_limit",
	"search_max_limit":       "search.max_limit",
}

func defaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			MaxConns:          10,
			MinConns:          0,
			MaxConnLifetime:   time.Hour,
			MaxConnIdleTime:   15 * time.Minute,
			HealthCheckPeriod: 30 * time.Second,
			ConnectTimeout:    10 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Search: SearchConfig{
			DefaultLimit: 10,
			MaxLimit:     100,
		},
	}
}

// Load layers environment variables over the built-in defaults and validates the result.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}
	if err := k.Load(env.Provider("", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func envTransform(key string) string {
	return envKeys[strings.ToLower(key)]
}
