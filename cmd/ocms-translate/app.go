// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/olegiv/ocms-translate/internal/autotranslate"
	"github.com/olegiv/ocms-translate/internal/cache"
	"github.com/olegiv/ocms-translate/internal/config"
	"github.com/olegiv/ocms-translate/internal/filters"
	"github.com/olegiv/ocms-translate/internal/hooks"
	"github.com/olegiv/ocms-translate/internal/logging"
	"github.com/olegiv/ocms-translate/internal/middleware"
	"github.com/olegiv/ocms-translate/internal/model"
	"github.com/olegiv/ocms-translate/internal/store"
	"github.com/olegiv/ocms-translate/internal/translator"
)

// app holds the wired services shared by the commands.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	db     *sql.DB
	cache  cache.Cacher // nil when translations are cached in the database

	registry    *store.Registry
	settings    *store.Settings
	corrections *store.Corrections
	events      *store.Events
	translator  *translator.Client
	engine      *autotranslate.Engine
	hooks       *hooks.Registry
	filters     *filters.Filters
}

// loadConfig reads the dotenv file, if any, and the environment.
func loadConfig() (*config.Config, error) {
	if err := godotenv.Load(flagEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading %s: %w", flagEnvFile, err)
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// openDB opens and migrates the database.
func openDB(cfg *config.Config, logger *slog.Logger) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	logger.Debug("opening database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}
	if err := store.Migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return db, nil
}

// newApp loads configuration and wires every service. Logs go to logOut.
func newApp(ctx context.Context, logOut io.Writer) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	textHandler := slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: cfg.SlogLevel()})
	logger := slog.New(textHandler)

	db, err := openDB(cfg, logger)
	if err != nil {
		return nil, err
	}

	// From here on WARN and ERROR records are also kept in the event log.
	events := store.NewEvents(db)
	logger = slog.New(logging.NewEventLogHandler(textHandler, events))
	slog.SetDefault(logger)

	if err := store.Seed(ctx, db, cfg.DefaultLanguage); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("seeding database: %w", err)
	}

	a := &app{
		cfg:         cfg,
		logger:      logger,
		db:          db,
		registry:    store.NewRegistry(db, middleware.LanguageCodeFromContext),
		settings:    store.NewSettings(db),
		corrections: store.NewCorrections(db),
		events:      events,
		hooks:       hooks.NewRegistry(logger),
	}

	var kv autotranslate.Store = store.NewMetaStore(db)
	if cfg.CacheBackend != config.CacheBackendSQLite {
		c, err := cache.New(cache.Config{
			Backend:  cfg.CacheBackend,
			RedisURL: cfg.RedisURL,
			Prefix:   cfg.CachePrefix,
		}, logger)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("initializing cache: %w", err)
		}
		a.cache = c
		kv = cache.NewKVStore(c)
	}
	logger.Debug("translation cache ready", "backend", cfg.CacheBackend)

	a.translator = translator.New(translator.Options{
		APIKey:    cfg.TranslateAPIKey,
		Endpoint:  cfg.TranslateAPIURL,
		Timeout:   cfg.TranslateTimeout,
		RateLimit: cfg.TranslateRateLimit,
		Burst:     cfg.TranslateBurst,
		Sanitize:  cfg.TranslateSanitize,
	})
	if !a.translator.Configured() {
		logger.Warn("translation API key not configured, variants will be served untranslated",
			"category", model.EventCategoryConfig,
			"setting", "OCMS_TRANSLATE_API_KEY",
		)
	}

	a.engine = autotranslate.New(autotranslate.Options{
		Store:           kv,
		Registry:        a.registry,
		Settings:        a.settings,
		Corrections:     a.corrections,
		Translator:      a.translator,
		Logger:          logger,
		DefaultLanguage: cfg.DefaultLanguage,
	})
	a.engine.RegisterHooks(a.hooks)
	a.filters = filters.New(a.engine, a.settings, a.registry, logger)

	return a, nil
}

// Close releases the cache and the database.
func (a *app) Close() {
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Error("error closing cache", "error", err)
		}
	}
	if err := a.db.Close(); err != nil {
		a.logger.Error("error closing database connection", "error", err)
	}
}
