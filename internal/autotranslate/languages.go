// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package autotranslate

import (
	"context"
	"log/slog"

	"github.com/olegiv/ocms-translate/internal/model"
)

// DefaultLanguage is the canonical language when none is configured.
const DefaultLanguage = "en"

// LanguageResolver answers language questions against the registry.
type LanguageResolver struct {
	registry    Registry
	defaultLang string
	logger      *slog.Logger
}

// NewLanguageResolver creates a LanguageResolver. A nil registry means the
// platform is not multilingual.
func NewLanguageResolver(registry Registry, defaultLang string, logger *slog.Logger) *LanguageResolver {
	if defaultLang == "" {
		defaultLang = DefaultLanguage
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &LanguageResolver{registry: registry, defaultLang: defaultLang, logger: logger}
}

// Default returns the canonical language code.
func (r *LanguageResolver) Default() string {
	return r.defaultLang
}

// ActiveLanguage returns the request-scoped language, or the canonical
// language when no registry is configured or it reports nothing.
func (r *LanguageResolver) ActiveLanguage(ctx context.Context) string {
	if r.registry == nil {
		return r.defaultLang
	}
	code, err := r.registry.ActiveLanguageCode(ctx)
	if err != nil {
		r.logger.Debug("active language lookup failed", "error", err)
		return r.defaultLang
	}
	if code == "" {
		return r.defaultLang
	}
	return code
}

// SupportedLanguages returns the registry's languages in registry order.
func (r *LanguageResolver) SupportedLanguages(ctx context.Context) []model.LanguageLink {
	if r.registry == nil {
		return nil
	}
	links, err := r.registry.ActiveLanguages(ctx)
	if err != nil {
		r.logger.Warn("listing languages failed", "category", model.EventCategoryTranslation, "error", err)
		return nil
	}
	return links
}

// LanguageURL returns the URL of a supported language.
func (r *LanguageResolver) LanguageURL(ctx context.Context, code string) (string, bool) {
	for _, link := range r.SupportedLanguages(ctx) {
		if link.Code == code {
			return link.URL, true
		}
	}
	return "", false
}
