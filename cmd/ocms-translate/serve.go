// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/olegiv/ocms-translate/internal/handler"
	"github.com/olegiv/ocms-translate/internal/scheduler"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd.Context(), os.Stdout)
		if err != nil {
			return err
		}
		defer a.Close()
		return serve(a)
	},
}

func serve(a *app) error {
	health := handler.NewHealthHandler(handler.HealthOptions{
		DB:                   a.db,
		Cache:                cachePinger(a),
		Stats:                a.engine,
		Version:              versionInfo(),
		TranslatorConfigured: a.translator.Configured(),
	})
	api := handler.NewAPIHandler(a.engine, a.filters, a.registry, a.hooks, a.logger)

	router := handler.NewRouter(handler.RouterOptions{
		API:            api,
		Health:         health,
		Languages:      a.registry,
		Logger:         a.logger,
		RequestTimeout: a.cfg.RequestTimeout,
		RateLimit:      a.cfg.APIRateLimit,
		RateBurst:      a.cfg.APIBurst,
		RequestLog:     a.cfg.IsDevelopment(),
	})

	if a.cfg.EventRetention > 0 {
		sched := scheduler.New(a.logger)
		if err := sched.Add("prune-events", a.cfg.EventPruneSchedule,
			scheduler.PruneEvents(a.events, a.cfg.EventRetention, a.logger)); err != nil {
			return err
		}
		sched.Start()
		defer sched.Stop()
	}

	srv := &http.Server{
		Addr:              a.cfg.ServerAddr(),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      a.cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("starting server", "addr", a.cfg.ServerAddr(), "env", a.cfg.Env, "version", appVersion)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for interrupt signal or a listener failure
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-quit:
	}

	a.logger.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	a.logger.Info("server stopped")
	return nil
}

// cachePinger returns the external cache when it can be probed.
func cachePinger(a *app) handler.Pinger {
	if p, ok := a.cache.(handler.Pinger); ok {
		return p
	}
	return nil
}
