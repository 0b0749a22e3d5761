// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package autotranslate

import (
	"context"
	"log/slog"
	"slices"
	"strconv"

	"github.com/olegiv/ocms-translate/internal/model"
)

// Policy decides whether automatic translation may run.
type Policy struct {
	settings Settings
	logger   *slog.Logger
}

// NewPolicy creates a Policy. A nil settings source disables translation for
// every content type.
func NewPolicy(settings Settings, logger *slog.Logger) *Policy {
	if logger == nil {
		logger = slog.Default()
	}
	return &Policy{settings: settings, logger: logger}
}

// IsTypeEligible reports whether the content type is synced, either with
// manual or automatic translation.
func (p *Policy) IsTypeEligible(ctx context.Context, contentType string) bool {
	if p.settings == nil {
		return false
	}
	setting, err := p.settings.TypeSyncSetting(ctx, contentType)
	if err != nil {
		p.logger.Debug("sync setting lookup failed", "content_type", contentType, "error", err)
		return false
	}
	return setting == model.SyncManual || setting == model.SyncAuto
}

// IsFieldEligible reports whether a custom field of item may be translated.
func (p *Policy) IsFieldEligible(ctx context.Context, field model.Field, item *model.ContentItem) bool {
	if !field.AutoTranslate || !field.Kind.Translatable() {
		return false
	}
	return p.IsTypeEligible(ctx, item.ContentType)
}

// IsExcluded reports whether (origin of item, fieldKey) is opted out, either
// through the ignore list or, for the body, through the item's own flag.
func (p *Policy) IsExcluded(item *model.ContentItem, fieldKey string, ignoreList []string) bool {
	if fieldKey == model.FieldBody && item.ExcludeAutoTranslate {
		return true
	}
	return slices.Contains(ignoreList, IgnoreToken(item.OriginIDOrSelf(), fieldKey))
}

// IgnoreList returns the current ignore list; lookup failures yield an empty list.
func (p *Policy) IgnoreList(ctx context.Context) []string {
	if p.settings == nil {
		return nil
	}
	list, err := p.settings.IgnoreList(ctx)
	if err != nil {
		p.logger.Warn("ignore list lookup failed", "category", model.EventCategoryTranslation, "error", err)
		return nil
	}
	return list
}

// IgnoreToken formats an ignore-list entry.
func IgnoreToken(originID int64, fieldKey string) string {
	return strconv.FormatInt(originID, 10) + "_" + fieldKey
}
