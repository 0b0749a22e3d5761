// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/olegiv/ocms-translate/internal/store"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and seed the default language",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

		db, err := openDB(cfg, logger)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		if err := store.Seed(cmd.Context(), db, cfg.DefaultLanguage); err != nil {
			return err
		}
		logger.Info("database ready", "path", cfg.DBPath)
		return nil
	},
}
