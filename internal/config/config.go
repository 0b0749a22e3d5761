// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"golang.org/x/text/language"

	"github.com/olegiv/ocms-translate/internal/scheduler"
)

// Cache backends for translated text.
const (
	CacheBackendSQLite = "sqlite"
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath          string `env:"OCMS_DB_PATH" envDefault:"./data/ocms-translate.db"`
	ServerHost      string `env:"OCMS_SERVER_HOST" envDefault:"localhost"`
	ServerPort      int    `env:"OCMS_SERVER_PORT" envDefault:"8080"`
	Env             string `env:"OCMS_ENV" envDefault:"development"`
	LogLevel        string `env:"OCMS_LOG_LEVEL" envDefault:"info"`
	DefaultLanguage string `env:"OCMS_DEFAULT_LANGUAGE" envDefault:"en"`

	// HTTP API limits
	RequestTimeout time.Duration `env:"OCMS_REQUEST_TIMEOUT" envDefault:"30s"`
	APIRateLimit   float64       `env:"OCMS_API_RATE_LIMIT" envDefault:"50"` // requests per second per client, 0 = unlimited
	APIBurst       int           `env:"OCMS_API_BURST" envDefault:"100"`

	// Remote translation provider
	TranslateAPIKey    string        `env:"OCMS_TRANSLATE_API_KEY"`
	TranslateAPIURL    string        `env:"OCMS_TRANSLATE_API_URL" envDefault:"https://translation.googleapis.com/language/translate/v2"`
	TranslateTimeout   time.Duration `env:"OCMS_TRANSLATE_TIMEOUT" envDefault:"15s"`
	TranslateRateLimit float64       `env:"OCMS_TRANSLATE_RATE_LIMIT" envDefault:"0"` // requests per second, 0 = unlimited
	TranslateBurst     int           `env:"OCMS_TRANSLATE_BURST" envDefault:"1"`
	TranslateSanitize  bool          `env:"OCMS_TRANSLATE_SANITIZE" envDefault:"false"`

	// Where translated text is cached
	CacheBackend string `env:"OCMS_CACHE_BACKEND" envDefault:"sqlite"`
	RedisURL     string `env:"OCMS_REDIS_URL"`
	CachePrefix  string `env:"OCMS_CACHE_PREFIX" envDefault:"ocms-translate:"`

	// Event log housekeeping, 0 retention keeps events forever
	EventRetention     time.Duration `env:"OCMS_EVENT_RETENTION" envDefault:"720h"`
	EventPruneSchedule string        `env:"OCMS_EVENT_PRUNE_SCHEDULE" envDefault:"@daily"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// TranslatorConfigured reports whether a provider credential is set.
func (c Config) TranslatorConfigured() bool {
	return c.TranslateAPIKey != ""
}

// SlogLevel maps LogLevel to a slog level. Unknown values mean info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Load parses environment variables and returns a Config struct.
// A missing translation key is not an error here; translations report it
// when they are attempted.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.CacheBackend = strings.ToLower(cfg.CacheBackend)
	switch cfg.CacheBackend {
	case CacheBackendSQLite, CacheBackendMemory:
	case CacheBackendRedis:
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("OCMS_REDIS_URL is required when OCMS_CACHE_BACKEND=redis")
		}
	default:
		return nil, fmt.Errorf("OCMS_CACHE_BACKEND must be one of sqlite, memory, redis; got %q", cfg.CacheBackend)
	}

	if _, err := language.Parse(cfg.DefaultLanguage); err != nil {
		return nil, fmt.Errorf("OCMS_DEFAULT_LANGUAGE %q is not a valid language tag: %w", cfg.DefaultLanguage, err)
	}

	if cfg.APIRateLimit < 0 {
		return nil, fmt.Errorf("OCMS_API_RATE_LIMIT must not be negative, got %v", cfg.APIRateLimit)
	}
	if cfg.RequestTimeout <= 0 {
		return nil, fmt.Errorf("OCMS_REQUEST_TIMEOUT must be positive, got %v", cfg.RequestTimeout)
	}
	if cfg.TranslateRateLimit < 0 {
		return nil, fmt.Errorf("OCMS_TRANSLATE_RATE_LIMIT must not be negative, got %v", cfg.TranslateRateLimit)
	}
	if cfg.TranslateTimeout <= 0 {
		return nil, fmt.Errorf("OCMS_TRANSLATE_TIMEOUT must be positive, got %v", cfg.TranslateTimeout)
	}

	if cfg.EventRetention < 0 {
		return nil, fmt.Errorf("OCMS_EVENT_RETENTION must not be negative, got %v", cfg.EventRetention)
	}
	if cfg.EventRetention > 0 {
		if err := scheduler.ValidateSchedule(cfg.EventPruneSchedule); err != nil {
			return nil, fmt.Errorf("OCMS_EVENT_PRUNE_SCHEDULE: %w", err)
		}
	}

	return cfg, nil
}
