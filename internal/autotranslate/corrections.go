// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package autotranslate

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/text/cases"

	"github.com/olegiv/ocms-translate/internal/model"
)

// CorrectionLookup matches text against the editor correction table.
// A correction applies to every target language.
type CorrectionLookup struct {
	source CorrectionSource
	logger *slog.Logger
}

// NewCorrectionLookup creates a CorrectionLookup.
func NewCorrectionLookup(source CorrectionSource, logger *slog.Logger) *CorrectionLookup {
	if logger == nil {
		logger = slog.Default()
	}
	return &CorrectionLookup{source: source, logger: logger}
}

// Lookup returns the corrected text of the first entry whose normalized
// source equals the normalized text.
func (l *CorrectionLookup) Lookup(ctx context.Context, text string) (string, bool) {
	if l.source == nil {
		return "", false
	}
	entries, err := l.source.Corrections(ctx)
	if err != nil {
		l.logger.Warn("loading corrections failed", "category", model.EventCategoryTranslation, "error", err)
		return "", false
	}

	needle := NormalizeText(text)
	for _, entry := range entries {
		if NormalizeText(entry.SourceText) == needle {
			return entry.CorrectedText, true
		}
	}
	return "", false
}

// NormalizeText trims surrounding whitespace and case-folds s.
func NormalizeText(s string) string {
	// Casers are stateful; one per call.
	return cases.Fold().String(strings.TrimSpace(s))
}
