// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/olegiv/ocms-translate/internal/model"
)

// Seed creates the default language when no language is configured yet.
func Seed(ctx context.Context, db *sql.DB, defaultLang string) error {
	r := NewRegistry(db, nil)

	langs, err := r.Languages(ctx)
	if err != nil {
		return fmt.Errorf("checking languages: %w", err)
	}
	if len(langs) > 0 {
		slog.Info("languages already configured, skipping seed", "count", len(langs))
		return nil
	}

	tag, err := language.Parse(defaultLang)
	if err != nil {
		return fmt.Errorf("parsing default language %q: %w", defaultLang, err)
	}

	lang := model.Language{
		Code:      defaultLang,
		Name:      display.English.Tags().Name(tag),
		URL:       "/",
		Direction: model.DirectionLTR,
		IsDefault: true,
		IsActive:  true,
	}
	if err := r.UpsertLanguage(ctx, lang); err != nil {
		return err
	}

	slog.Info("created default language", "code", lang.Code, "name", lang.Name)
	return nil
}
