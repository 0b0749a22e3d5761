// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
)

// MetaStore keeps per-item metadata and site-wide options.
type MetaStore struct{ repo }

// NewMetaStore creates a MetaStore backed by db.
func NewMetaStore(db *sql.DB) *MetaStore {
	return &MetaStore{newRepo(db)}
}

// GetItemMeta returns the value stored under key for the item.
func (s *MetaStore) GetItemMeta(ctx context.Context, itemID int64, key string) (string, bool, error) {
	row, err := s.queryRow(ctx, s.sq.Select("meta_value").
		From("item_meta").
		Where(sq.Eq{"item_id": itemID, "meta_key": key}).
		Limit(1))
	if err != nil {
		return "", false, err
	}

	var value string
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("reading item meta %d/%s: %w", itemID, key, err)
	}
	return value, true, nil
}

// SetItemMeta stores value under key for the item, replacing any previous value.
func (s *MetaStore) SetItemMeta(ctx context.Context, itemID int64, key, value string) error {
	_, err := s.exec(ctx, s.sq.Insert("item_meta").
		Columns("item_id", "meta_key", "meta_value", "updated_at").
		Values(itemID, key, value, time.Now().UTC().Format(time.RFC3339)).
		Suffix("ON CONFLICT(item_id, meta_key) DO UPDATE SET meta_value=excluded.meta_value, updated_at=excluded.updated_at"))
	if err != nil {
		return fmt.Errorf("writing item meta %d/%s: %w", itemID, key, err)
	}
	return nil
}

// DeleteItemMetaByPrefix removes every key of the item starting with prefix.
func (s *MetaStore) DeleteItemMetaByPrefix(ctx context.Context, itemID int64, prefix string) error {
	// substr instead of LIKE: the prefix may contain '_' wildcards.
	_, err := s.exec(ctx, s.sq.Delete("item_meta").
		Where(sq.Eq{"item_id": itemID}).
		Where(sq.Expr("substr(meta_key, 1, ?) = ?", len(prefix), prefix)))
	if err != nil {
		return fmt.Errorf("deleting item meta %d/%s*: %w", itemID, prefix, err)
	}
	return nil
}

// CountItemMeta returns how many keys with prefix the item has.
func (s *MetaStore) CountItemMeta(ctx context.Context, itemID int64, prefix string) (int, error) {
	row, err := s.queryRow(ctx, s.sq.Select("COUNT(*)").
		From("item_meta").
		Where(sq.Eq{"item_id": itemID}).
		Where(sq.Expr("substr(meta_key, 1, ?) = ?", len(prefix), prefix)))
	if err != nil {
		return 0, err
	}
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("counting item meta: %w", err)
	}
	return n, nil
}

// GetOption returns a site-wide option.
func (s *MetaStore) GetOption(ctx context.Context, key string) (string, bool, error) {
	row, err := s.queryRow(ctx, s.sq.Select("option_value").
		From("options").
		Where(sq.Eq{"option_key": key}))
	if err != nil {
		return "", false, err
	}

	var value string
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("reading option %s: %w", key, err)
	}
	return value, true, nil
}

// SetOption stores a site-wide option.
func (s *MetaStore) SetOption(ctx context.Context, key, value string) error {
	_, err := s.exec(ctx, s.sq.Insert("options").
		Columns("option_key", "option_value").
		Values(key, value).
		Suffix("ON CONFLICT(option_key) DO UPDATE SET option_value=excluded.option_value"))
	if err != nil {
		return fmt.Errorf("writing option %s: %w", key, err)
	}
	return nil
}
