// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package autotranslate resolves renderable content to its translation in the
// active language: corrections first, then the translation cache, then the
// remote translator, persisting successful results.
package autotranslate

import (
	"context"

	"github.com/olegiv/ocms-translate/internal/model"
)

// Store is the host key/value storage. Item metadata is namespaced by item id;
// options are global.
type Store interface {
	GetItemMeta(ctx context.Context, itemID int64, key string) (string, bool, error)
	SetItemMeta(ctx context.Context, itemID int64, key, value string) error
	DeleteItemMetaByPrefix(ctx context.Context, itemID int64, prefix string) error
	GetOption(ctx context.Context, key string) (string, bool, error)
	SetOption(ctx context.Context, key, value string) error
}

// Registry is the localization registry.
type Registry interface {
	// ActiveLanguageCode returns the request-scoped language, or "" if none.
	ActiveLanguageCode(ctx context.Context) (string, error)
	// ActiveLanguages returns the supported languages in registry order.
	ActiveLanguages(ctx context.Context) ([]model.LanguageLink, error)
	LanguageOf(ctx context.Context, itemID int64) (string, error)
	// OriginOf reports the origin item id when itemID is a duplicate of another item.
	OriginOf(ctx context.Context, itemID int64) (int64, bool, error)
	Item(ctx context.Context, itemID int64) (*model.ContentItem, error)
}

// Settings exposes the per-content-type sync settings and the ignore list.
type Settings interface {
	TypeSyncSetting(ctx context.Context, contentType string) (model.SyncSetting, error)
	// IgnoreList returns "{originId}_{fieldKey}" tokens excluded from translation.
	IgnoreList(ctx context.Context) ([]string, error)
}

// CorrectionSource is the read-only correction table.
type CorrectionSource interface {
	Corrections(ctx context.Context) ([]model.Correction, error)
}

// Translator is the remote machine-translation client.
type Translator interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}
