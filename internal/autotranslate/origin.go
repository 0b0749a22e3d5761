// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package autotranslate

import (
	"context"
	"errors"
	"log/slog"

	"github.com/olegiv/ocms-translate/internal/model"
)

var errNoRegistry = errors.New("no localization registry configured")

// OriginResolver maps items to their canonical origin.
// Registry failures are treated as "no localization information".
type OriginResolver struct {
	registry  Registry
	languages *LanguageResolver
	logger    *slog.Logger
}

// NewOriginResolver creates an OriginResolver.
func NewOriginResolver(registry Registry, languages *LanguageResolver, logger *slog.Logger) *OriginResolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &OriginResolver{registry: registry, languages: languages, logger: logger}
}

// OriginOf returns the origin of item, or item itself when it is an origin or
// the registry cannot resolve the reference.
func (o *OriginResolver) OriginOf(ctx context.Context, item *model.ContentItem) *model.ContentItem {
	if item.OriginID == 0 || o.registry == nil {
		return item
	}
	origin, err := o.registry.Item(ctx, item.OriginID)
	if err != nil || origin == nil {
		o.logger.Debug("origin lookup failed", "item_id", item.ID, "origin_id", item.OriginID, "error", err)
		return item
	}
	return origin
}

// LanguageOf returns the language of item, or the canonical language when the
// registry cannot tell.
func (o *OriginResolver) LanguageOf(ctx context.Context, item *model.ContentItem) string {
	code, err := o.lookupLanguage(ctx, item)
	if err != nil {
		return o.languages.Default()
	}
	return code
}

// IsVariant reports whether item needs resolving to another language: its
// language differs from the active one, or the registry marks it as a
// duplicate of another item. The duplicate flag wins even when languages match.
func (o *OriginResolver) IsVariant(ctx context.Context, item *model.ContentItem) bool {
	if o.LanguageOf(ctx, item) != o.languages.ActiveLanguage(ctx) {
		return true
	}
	return o.isDuplicate(ctx, item)
}

func (o *OriginResolver) isDuplicate(ctx context.Context, item *model.ContentItem) bool {
	if o.registry == nil {
		return item.OriginID != 0
	}
	_, ok, err := o.registry.OriginOf(ctx, item.ID)
	if err != nil {
		return false
	}
	return ok
}

// lookupLanguage returns the registry language of item without defaulting.
func (o *OriginResolver) lookupLanguage(ctx context.Context, item *model.ContentItem) (string, error) {
	if o.registry == nil {
		if item.Language != "" {
			return item.Language, nil
		}
		return "", errNoRegistry
	}
	code, err := o.registry.LanguageOf(ctx, item.ID)
	if err != nil {
		return "", err
	}
	if code == "" {
		return "", errors.New("registry returned no language")
	}
	return code, nil
}
