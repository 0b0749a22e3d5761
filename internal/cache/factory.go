// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"fmt"
	"log/slog"
	"net/url"
	"time"
)

// Backend names accepted by New.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config holds configuration for cache creation.
type Config struct {
	Backend    string // "memory" or "redis"
	RedisURL   string
	Prefix     string
	DefaultTTL time.Duration // 0 = entries never expire

	// FallbackToMemory returns a memory cache when Redis is unreachable
	// instead of failing.
	FallbackToMemory bool
}

// New creates the configured backend.
func New(cfg Config, logger *slog.Logger) (Cacher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch cfg.Backend {
	case BackendRedis:
		rc, err := NewRedisCacheFromURL(cfg.RedisURL, cfg.Prefix, cfg.DefaultTTL)
		if err == nil {
			logger.Info("using redis cache", "url", SanitizeRedisURL(cfg.RedisURL), "prefix", cfg.Prefix)
			return rc, nil
		}
		if !cfg.FallbackToMemory {
			return nil, fmt.Errorf("connecting to redis: %w", err)
		}
		logger.Warn("redis unavailable, falling back to memory cache",
			"category", "cache",
			"url", SanitizeRedisURL(cfg.RedisURL),
			"error", err,
		)
	case BackendMemory, "":
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}

	return NewMemoryCache(MemoryCacheOptions{
		DefaultTTL:      cfg.DefaultTTL,
		CleanupInterval: cleanupInterval(cfg.DefaultTTL),
	}), nil
}

// cleanupInterval skips the cleanup goroutine when nothing can expire.
func cleanupInterval(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return 0
	}
	return time.Minute
}

// SanitizeRedisURL masks the password of a Redis URL for logging.
func SanitizeRedisURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "[invalid URL]"
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "***")
	}
	return u.String()
}
