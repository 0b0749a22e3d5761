// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Built-in field keys rendered for every content item.
const (
	FieldTitle = "title"
	FieldBody  = "body"
)

// ContentItem identifies a piece of renderable content and its place in the
// localization graph. OriginID is zero when the item is itself the origin;
// origins never point at another origin.
type ContentItem struct {
	ID                   int64  `json:"id"`
	ContentType          string `json:"content_type"`
	Language             string `json:"language"`
	OriginID             int64  `json:"origin_id,omitempty"`
	ExcludeAutoTranslate bool   `json:"exclude_auto_translate"` // applies to the body only
}

// IsOrigin reports whether the item is a canonical origin.
func (i *ContentItem) IsOrigin() bool {
	return i.OriginID == 0
}

// OriginIDOrSelf returns the origin id, or the item's own id for origins.
func (i *ContentItem) OriginIDOrSelf() int64 {
	if i.OriginID != 0 {
		return i.OriginID
	}
	return i.ID
}

// SyncSetting is the per-content-type synchronization mode.
type SyncSetting string

// Sync settings
const (
	SyncOff    SyncSetting = "off"    // not synced
	SyncManual SyncSetting = "manual" // synced, translated manually
	SyncAuto   SyncSetting = "auto"   // synced, translated automatically
)

// ParseSyncSetting maps a stored value to a SyncSetting, defaulting to SyncOff.
func ParseSyncSetting(s string) SyncSetting {
	switch SyncSetting(s) {
	case SyncManual:
		return SyncManual
	case SyncAuto:
		return SyncAuto
	default:
		return SyncOff
	}
}

// Correction is an editor-maintained override for machine translation output.
type Correction struct {
	ID            int64     `json:"id"`
	SourceText    string    `json:"source_text"`
	CorrectedText string    `json:"corrected_text"`
	CreatedAt     time.Time `json:"created_at"`
}

// SaveEvent describes a content save reported by the host.
type SaveEvent struct {
	ItemID     int64 `json:"item_id"`
	IsRevision bool  `json:"is_revision"` // draft or revision snapshot, not the live record
}
