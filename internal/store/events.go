// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/olegiv/ocms-translate/internal/model"
)

// eventTimeLayout is fixed width so stored timestamps sort as strings.
const eventTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Events is the event log.
type Events struct{ repo }

// NewEvents creates an Events store backed by db.
func NewEvents(db *sql.DB) *Events {
	return &Events{newRepo(db)}
}

// CreateEvent appends an event. Missing ID, metadata and timestamp are filled in.
func (e *Events) CreateEvent(ctx context.Context, ev model.Event) (model.Event, error) {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.Metadata == "" {
		ev.Metadata = "{}"
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}

	_, err := e.exec(ctx, e.sq.Insert("events").
		Columns("id", "level", "category", "message", "metadata", "created_at").
		Values(ev.ID, ev.Level, ev.Category, ev.Message, ev.Metadata, ev.CreatedAt.UTC().Format(eventTimeLayout)))
	if err != nil {
		return ev, fmt.Errorf("creating event: %w", err)
	}
	return ev, nil
}

// ListEvents returns the newest events first. An empty category lists all.
func (e *Events) ListEvents(ctx context.Context, category string, limit uint64) ([]model.Event, error) {
	q := e.sq.Select("id", "level", "category", "message", "metadata", "created_at").
		From("events").
		OrderBy("created_at DESC").
		Limit(limit)
	if category != "" {
		q = q.Where(sq.Eq{"category": category})
	}

	rows, err := e.query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.Event
	for rows.Next() {
		var (
			ev      model.Event
			created string
		)
		if err := rows.Scan(&ev.ID, &ev.Level, &ev.Category, &ev.Message, &ev.Metadata, &created); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		ev.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
		out = append(out, ev)
	}
	return out, rows.Err()
}

// DeleteEventsBefore removes events created before t and returns how many
// were deleted.
func (e *Events) DeleteEventsBefore(ctx context.Context, t time.Time) (int64, error) {
	res, err := e.exec(ctx, e.sq.Delete("events").
		Where(sq.Lt{"created_at": t.UTC().Format(eventTimeLayout)}))
	if err != nil {
		return 0, fmt.Errorf("pruning events: %w", err)
	}
	return res.RowsAffected()
}
