// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package testutil provides shared test helpers for packages built on the
// store.
package testutil

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/olegiv/ocms-translate/internal/model"
	"github.com/olegiv/ocms-translate/internal/store"
)

// TestLogger creates a logger that discards everything.
func TestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestDB creates a temporary test database with migrations applied. It is
// closed when the test ends.
func TestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := store.NewDB(filepath.Join(t.TempDir(), "ocms-test.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := store.Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return db
}

// Fixture is the content graph most translation tests start from.
type Fixture struct {
	Registry *store.Registry
	Settings *store.Settings
	Origin   *model.ContentItem // English post
	Variant  *model.ContentItem // French duplicate of Origin
}

// SeedFixture stores English (default) and French languages, an English post
// origin (1) and its French duplicate (2), and enables automatic sync for
// posts. active supplies the request language to the registry.
func SeedFixture(t *testing.T, db *sql.DB, active store.ActiveLanguageFunc) *Fixture {
	t.Helper()
	ctx := context.Background()

	f := &Fixture{
		Registry: store.NewRegistry(db, active),
		Settings: store.NewSettings(db),
		Origin:   &model.ContentItem{ID: 1, ContentType: "post", Language: "en"},
		Variant:  &model.ContentItem{ID: 2, ContentType: "post", Language: "fr", OriginID: 1},
	}

	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("seeding fixture: %v", err)
		}
	}
	must(f.Registry.UpsertLanguage(ctx, model.Language{
		Code: "en", Name: "English", URL: "https://example.com/", IsDefault: true, IsActive: true,
	}))
	must(f.Registry.UpsertLanguage(ctx, model.Language{
		Code: "fr", Name: "French", URL: "https://example.com/fr/", IsActive: true,
	}))
	must(f.Registry.UpsertItem(ctx, f.Origin))
	must(f.Registry.UpsertItem(ctx, f.Variant))
	must(f.Settings.SetTypeSyncSetting(ctx, "post", model.SyncAuto))
	return f
}
