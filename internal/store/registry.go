// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/olegiv/ocms-translate/internal/model"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("store: not found")

// ActiveLanguageFunc reports the language of the current request, or "".
type ActiveLanguageFunc func(ctx context.Context) string

// Registry answers language and origin questions from the languages and
// content_items tables.
type Registry struct {
	repo
	active ActiveLanguageFunc
}

// NewRegistry creates a Registry. active may be nil, in which case the
// default language row is always the active one.
func NewRegistry(db *sql.DB, active ActiveLanguageFunc) *Registry {
	return &Registry{repo: newRepo(db), active: active}
}

// ActiveLanguageCode returns the request language, falling back to the
// default language row.
func (r *Registry) ActiveLanguageCode(ctx context.Context) (string, error) {
	if r.active != nil {
		if code := r.active(ctx); code != "" {
			return code, nil
		}
	}

	row, err := r.queryRow(ctx, r.sq.Select("code").
		From("languages").
		Where(sq.Eq{"is_default": 1}).
		Limit(1))
	if err != nil {
		return "", err
	}
	var code string
	if err := row.Scan(&code); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("reading default language: %w", err)
	}
	return code, nil
}

// ActiveLanguages lists enabled languages ordered by code descending.
func (r *Registry) ActiveLanguages(ctx context.Context) ([]model.LanguageLink, error) {
	rows, err := r.query(ctx, r.sq.Select("code", "url").
		From("languages").
		Where(sq.Eq{"is_active": 1}).
		OrderBy("code DESC"))
	if err != nil {
		return nil, fmt.Errorf("listing languages: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var links []model.LanguageLink
	for rows.Next() {
		var link model.LanguageLink
		if err := rows.Scan(&link.Code, &link.URL); err != nil {
			return nil, fmt.Errorf("scanning language: %w", err)
		}
		links = append(links, link)
	}
	return links, rows.Err()
}

// Languages returns every configured language ordered by code descending.
func (r *Registry) Languages(ctx context.Context) ([]model.Language, error) {
	rows, err := r.query(ctx, r.sq.Select("code", "name", "url", "direction", "is_default", "is_active").
		From("languages").
		OrderBy("code DESC"))
	if err != nil {
		return nil, fmt.Errorf("listing languages: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var langs []model.Language
	for rows.Next() {
		var l model.Language
		if err := rows.Scan(&l.Code, &l.Name, &l.URL, &l.Direction, &l.IsDefault, &l.IsActive); err != nil {
			return nil, fmt.Errorf("scanning language: %w", err)
		}
		langs = append(langs, l)
	}
	return langs, rows.Err()
}

// UpsertLanguage creates or replaces a language row.
func (r *Registry) UpsertLanguage(ctx context.Context, l model.Language) error {
	if l.Direction == "" {
		l.Direction = model.DirectionLTR
	}
	// Only one language can be the default.
	if l.IsDefault {
		if _, err := r.exec(ctx, r.sq.Update("languages").
			Set("is_default", 0).
			Where(sq.NotEq{"code": l.Code})); err != nil {
			return fmt.Errorf("clearing default language: %w", err)
		}
	}
	_, err := r.exec(ctx, r.sq.Insert("languages").
		Columns("code", "name", "url", "direction", "is_default", "is_active").
		Values(l.Code, l.Name, l.URL, l.Direction, boolToInt(l.IsDefault), boolToInt(l.IsActive)).
		Suffix(`ON CONFLICT(code) DO UPDATE SET name=excluded.name, url=excluded.url,
			direction=excluded.direction, is_default=excluded.is_default, is_active=excluded.is_active`))
	if err != nil {
		return fmt.Errorf("saving language %s: %w", l.Code, err)
	}
	return nil
}

// Item loads a content item.
func (r *Registry) Item(ctx context.Context, itemID int64) (*model.ContentItem, error) {
	row, err := r.queryRow(ctx, r.sq.Select("id", "content_type", "language", "origin_id", "exclude_auto_translate").
		From("content_items").
		Where(sq.Eq{"id": itemID}))
	if err != nil {
		return nil, err
	}

	var item model.ContentItem
	if err := row.Scan(&item.ID, &item.ContentType, &item.Language, &item.OriginID, &item.ExcludeAutoTranslate); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("item %d: %w", itemID, ErrNotFound)
		}
		return nil, fmt.Errorf("reading item %d: %w", itemID, err)
	}
	return &item, nil
}

// LanguageOf returns the language of an item.
func (r *Registry) LanguageOf(ctx context.Context, itemID int64) (string, error) {
	item, err := r.Item(ctx, itemID)
	if err != nil {
		return "", err
	}
	return item.Language, nil
}

// OriginOf returns the origin id of an item and whether it is a duplicate of
// another item.
func (r *Registry) OriginOf(ctx context.Context, itemID int64) (int64, bool, error) {
	item, err := r.Item(ctx, itemID)
	if err != nil {
		return 0, false, err
	}
	return item.OriginID, item.OriginID != 0, nil
}

// UpsertItem creates or replaces a content item row.
func (r *Registry) UpsertItem(ctx context.Context, item *model.ContentItem) error {
	_, err := r.exec(ctx, r.sq.Insert("content_items").
		Columns("id", "content_type", "language", "origin_id", "exclude_auto_translate").
		Values(item.ID, item.ContentType, item.Language, item.OriginID, boolToInt(item.ExcludeAutoTranslate)).
		Suffix(`ON CONFLICT(id) DO UPDATE SET content_type=excluded.content_type, language=excluded.language,
			origin_id=excluded.origin_id, exclude_auto_translate=excluded.exclude_auto_translate`))
	if err != nil {
		return fmt.Errorf("saving item %d: %w", item.ID, err)
	}
	return nil
}
