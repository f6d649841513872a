package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Backend names accepted for STORAGE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

type Config struct {
	Port           string  `env:"PORT" envDefault:"8080"`
	StorageBackend string  `env:"STORAGE_BACKEND" envDefault:"memory"`
	SQLitePath     string  `env:"SQLITE_PATH"`
	RedisURL       string  `env:"REDIS_URL"`
	DatabaseURL    string  `env:"DATABASE_URL"`
	WeekStart      string  `env:"WEEK_START" envDefault:"monday"`
	RateLimit      float64 `env:"RATE_LIMIT" envDefault:"25"`
	RateBurst      int     `env:"RATE_BURST" envDefault:"50"`
}

func Read() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, err
	}

	switch cfg.StorageBackend {
	case BackendMemory, BackendSQLite, BackendRedis, BackendPostgres:
	default:
		return Config{}, fmt.Errorf("invalid STORAGE_BACKEND: %q (valid: memory, sqlite, redis, postgres)", cfg.StorageBackend)
	}

	if _, err := cfg.WeekStartWeekday(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// WeekStartWeekday resolves the configured week-start convention. The
// weekly workout count is pinned to this weekday instead of the system
// locale so behavior stays deterministic.
func (c Config) WeekStartWeekday() (time.Weekday, error) {
	switch strings.ToLower(c.WeekStart) {
	case "monday":
		return time.Monday, nil
	case "sunday":
		return time.Sunday, nil
	default:
		return time.Monday, fmt.Errorf("invalid WEEK_START: %q (valid: monday, sunday)", c.WeekStart)
	}
}
