// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"errors"
	"strconv"
)

// KVStore keeps item metadata and options in a Cacher, so the translation
// cache can live in memory or in Redis instead of the SQL database.
type KVStore struct {
	c Cacher
}

// NewKVStore wraps c. Entries are written without expiry.
func NewKVStore(c Cacher) *KVStore {
	return &KVStore{c: c}
}

func metaPrefix(itemID int64) string {
	return "meta:" + strconv.FormatInt(itemID, 10) + ":"
}

func optionKey(key string) string {
	return "opt:" + key
}

func (s *KVStore) get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.c.Get(ctx, key)
	if errors.Is(err, ErrCacheMiss) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(val), true, nil
}

// GetItemMeta returns the value stored under key for the item.
func (s *KVStore) GetItemMeta(ctx context.Context, itemID int64, key string) (string, bool, error) {
	return s.get(ctx, metaPrefix(itemID)+key)
}

// SetItemMeta stores value under key for the item.
func (s *KVStore) SetItemMeta(ctx context.Context, itemID int64, key, value string) error {
	return s.c.Set(ctx, metaPrefix(itemID)+key, []byte(value), 0)
}

// DeleteItemMetaByPrefix removes every key of the item starting with prefix.
func (s *KVStore) DeleteItemMetaByPrefix(ctx context.Context, itemID int64, prefix string) error {
	return s.c.DeleteByPrefix(ctx, metaPrefix(itemID)+prefix)
}

// GetOption returns a site-wide option.
func (s *KVStore) GetOption(ctx context.Context, key string) (string, bool, error) {
	return s.get(ctx, optionKey(key))
}

// SetOption stores a site-wide option.
func (s *KVStore) SetOption(ctx context.Context, key, value string) error {
	return s.c.Set(ctx, optionKey(key), []byte(value), 0)
}
