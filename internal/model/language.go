// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Language text directions
const (
	DirectionLTR = "ltr"
	DirectionRTL = "rtl"
)

// Language represents a content language known to the localization registry.
type Language struct {
	Code      string `json:"code"`       // ISO 639-1: en, ru, de, fr
	Name      string `json:"name"`       // English, Russian, German, French
	URL       string `json:"url"`        // home URL for the language
	IsDefault bool   `json:"is_default"` // only one can be default
	IsActive  bool   `json:"is_active"`  // enabled for site
	Direction string `json:"direction"`  // ltr, rtl
}

// IsRTL returns true if the language is right-to-left.
func (l *Language) IsRTL() bool {
	return l.Direction == DirectionRTL
}

// LanguageLink is a (code, url) pair as exposed by the language switcher.
type LanguageLink struct {
	Code string `json:"code"`
	URL  string `json:"url"`
}
