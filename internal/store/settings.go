// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/olegiv/ocms-translate/internal/model"
)

// IgnoreListOption is the option key holding the JSON encoded ignore list.
const IgnoreListOption = "autotranslate_ignore_list"

// Settings stores per-type sync settings, per-field flags and the ignore list.
type Settings struct {
	repo
	options *MetaStore
}

// NewSettings creates a Settings store backed by db.
func NewSettings(db *sql.DB) *Settings {
	return &Settings{repo: newRepo(db), options: NewMetaStore(db)}
}

// TypeSyncSetting returns the sync setting of a content type. Unknown types
// are not synced.
func (s *Settings) TypeSyncSetting(ctx context.Context, contentType string) (model.SyncSetting, error) {
	row, err := s.queryRow(ctx, s.sq.Select("sync").
		From("type_settings").
		Where(sq.Eq{"content_type": contentType}))
	if err != nil {
		return model.SyncOff, err
	}
	var sync string
	if err := row.Scan(&sync); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.SyncOff, nil
		}
		return model.SyncOff, fmt.Errorf("reading sync setting of %s: %w", contentType, err)
	}
	return model.ParseSyncSetting(sync), nil
}

// SetTypeSyncSetting stores the sync setting of a content type.
func (s *Settings) SetTypeSyncSetting(ctx context.Context, contentType string, setting model.SyncSetting) error {
	_, err := s.exec(ctx, s.sq.Insert("type_settings").
		Columns("content_type", "sync").
		Values(contentType, string(setting)).
		Suffix("ON CONFLICT(content_type) DO UPDATE SET sync=excluded.sync"))
	if err != nil {
		return fmt.Errorf("saving sync setting of %s: %w", contentType, err)
	}
	return nil
}

// Fields returns the field settings of a content type ordered by key.
// Rows with an unknown kind are skipped.
func (s *Settings) Fields(ctx context.Context, contentType string) ([]model.Field, error) {
	rows, err := s.query(ctx, s.sq.Select("field_key", "kind", "auto_translate").
		From("field_settings").
		Where(sq.Eq{"content_type": contentType}).
		OrderBy("field_key"))
	if err != nil {
		return nil, fmt.Errorf("listing fields of %s: %w", contentType, err)
	}
	defer func() { _ = rows.Close() }()

	var fields []model.Field
	for rows.Next() {
		var (
			f    model.Field
			kind string
		)
		if err := rows.Scan(&f.Key, &kind, &f.AutoTranslate); err != nil {
			return nil, fmt.Errorf("scanning field: %w", err)
		}
		k, ok := model.ParseFieldKind(kind)
		if !ok {
			continue
		}
		f.Kind = k
		fields = append(fields, f)
	}
	return fields, rows.Err()
}

// Field returns one field setting.
func (s *Settings) Field(ctx context.Context, contentType, key string) (model.Field, error) {
	fields, err := s.Fields(ctx, contentType)
	if err != nil {
		return model.Field{}, err
	}
	for _, f := range fields {
		if f.Key == key {
			return f, nil
		}
	}
	return model.Field{}, fmt.Errorf("field %s/%s: %w", contentType, key, ErrNotFound)
}

// SetField stores a field setting.
func (s *Settings) SetField(ctx context.Context, contentType string, f model.Field) error {
	_, err := s.exec(ctx, s.sq.Insert("field_settings").
		Columns("content_type", "field_key", "kind", "auto_translate").
		Values(contentType, f.Key, f.Kind.String(), boolToInt(f.AutoTranslate)).
		Suffix("ON CONFLICT(content_type, field_key) DO UPDATE SET kind=excluded.kind, auto_translate=excluded.auto_translate"))
	if err != nil {
		return fmt.Errorf("saving field %s/%s: %w", contentType, f.Key, err)
	}
	return nil
}

// IgnoreList returns the "{originId}_{fieldKey}" exclusion tokens.
func (s *Settings) IgnoreList(ctx context.Context) ([]string, error) {
	raw, ok, err := s.options.GetOption(ctx, IgnoreListOption)
	if err != nil || !ok || raw == "" {
		return nil, err
	}
	var tokens []string
	if err := json.Unmarshal([]byte(raw), &tokens); err != nil {
		return nil, fmt.Errorf("decoding ignore list: %w", err)
	}
	return tokens, nil
}

// SetIgnoreList replaces the ignore list.
func (s *Settings) SetIgnoreList(ctx context.Context, tokens []string) error {
	if tokens == nil {
		tokens = []string{}
	}
	raw, err := json.Marshal(tokens)
	if err != nil {
		return fmt.Errorf("encoding ignore list: %w", err)
	}
	return s.options.SetOption(ctx, IgnoreListOption, string(raw))
}
