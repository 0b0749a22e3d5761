// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// FieldKind is the kind of a custom field definition.
type FieldKind int

// Field kinds
const (
	FieldKindText FieldKind = iota
	FieldKindTextarea
	FieldKindLink
	FieldKindRichText
	FieldKindNumber
	FieldKindImage
)

var fieldKindNames = map[FieldKind]string{
	FieldKindText:     "text",
	FieldKindTextarea: "textarea",
	FieldKindLink:     "link",
	FieldKindRichText: "richtext",
	FieldKindNumber:   "number",
	FieldKindImage:    "image",
}

// String returns the stored name of the kind.
func (k FieldKind) String() string {
	if name, ok := fieldKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseFieldKind maps a stored name back to a FieldKind.
func ParseFieldKind(s string) (FieldKind, bool) {
	for k, name := range fieldKindNames {
		if name == s {
			return k, true
		}
	}
	return 0, false
}

// Translatable reports whether values of this kind carry human-readable text.
func (k FieldKind) Translatable() bool {
	switch k {
	case FieldKindText, FieldKindTextarea, FieldKindLink, FieldKindRichText:
		return true
	default:
		return false
	}
}

// Field is a custom field definition with its auto-translate opt-in flag.
type Field struct {
	Key           string    `json:"key"`
	Kind          FieldKind `json:"kind"`
	AutoTranslate bool      `json:"auto_translate"`
}
