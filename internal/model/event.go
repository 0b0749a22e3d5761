package model

import "time"

// Event levels
const (
	EventLevelInfo    = "info"
	EventLevelWarning = "warning"
	EventLevelError   = "error"
)

// Event categories
const (
	EventCategoryTranslation = "translation"
	EventCategoryCache       = "cache"
	EventCategoryHooks       = "hooks"
	EventCategoryConfig      = "config"
	EventCategorySystem      = "system"
)

// Event represents a system event log entry.
type Event struct {
	ID        string
	Level     string
	Category  string
	Message   string
	Metadata  string // JSON string
	CreatedAt time.Time
}
