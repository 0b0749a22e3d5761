// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/olegiv/ocms-translate/internal/model"
)

// Corrections is the editor-owned table of manual translation overrides.
type Corrections struct{ repo }

// NewCorrections creates a Corrections store backed by db.
func NewCorrections(db *sql.DB) *Corrections {
	return &Corrections{newRepo(db)}
}

// Corrections returns every correction in insertion order.
func (c *Corrections) Corrections(ctx context.Context) ([]model.Correction, error) {
	rows, err := c.query(ctx, c.sq.Select("id", "source_text", "corrected_text", "created_at").
		From("corrections").
		OrderBy("id"))
	if err != nil {
		return nil, fmt.Errorf("listing corrections: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.Correction
	for rows.Next() {
		var (
			entry   model.Correction
			created string
		)
		if err := rows.Scan(&entry.ID, &entry.SourceText, &entry.CorrectedText, &created); err != nil {
			return nil, fmt.Errorf("scanning correction: %w", err)
		}
		entry.CreatedAt, _ = time.Parse(time.RFC3339, created)
		out = append(out, entry)
	}
	return out, rows.Err()
}

// AddCorrection stores a new correction.
func (c *Corrections) AddCorrection(ctx context.Context, source, corrected string) (*model.Correction, error) {
	now := time.Now().UTC().Truncate(time.Second)
	res, err := c.exec(ctx, c.sq.Insert("corrections").
		Columns("source_text", "corrected_text", "created_at").
		Values(source, corrected, now.Format(time.RFC3339)))
	if err != nil {
		return nil, fmt.Errorf("adding correction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading correction id: %w", err)
	}
	return &model.Correction{ID: id, SourceText: source, CorrectedText: corrected, CreatedAt: now}, nil
}

// DeleteCorrection removes a correction.
func (c *Corrections) DeleteCorrection(ctx context.Context, id int64) error {
	res, err := c.exec(ctx, c.sq.Delete("corrections").Where(sq.Eq{"id": id}))
	if err != nil {
		return fmt.Errorf("deleting correction %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("correction %d: %w", id, ErrNotFound)
	}
	return nil
}
