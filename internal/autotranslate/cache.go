// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package autotranslate

import (
	"context"
	"fmt"
	"hash/fnv"

	"github.com/olegiv/ocms-translate/internal/model"
)

// KeyPrefix starts every key written by the translation cache.
const KeyPrefix = "_autotranslate_"

// Key builds the storage key for a (source, target, field) triple.
// Item-scoped storage namespaces it by item id; global storage uses it as is.
func Key(sourceLang, targetLang, fieldKey string) string {
	return KeyPrefix + sourceLang + "_" + targetLang + "_" + fieldKey
}

// LabelKey is the global cache key of content resolved under key. It carries
// a fingerprint of content so an edited label misses and is translated afresh.
func LabelKey(key, content string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(content))
	return fmt.Sprintf("%s_%016x", key, h.Sum64())
}

// Cache stores translations in the host store. Entries never expire; they are
// removed per item when the item is saved.
type Cache struct {
	store Store
}

// NewCache creates a Cache over store.
func NewCache(store Store) *Cache {
	return &Cache{store: store}
}

// Get returns the cached translation of fieldKey for item.
func (c *Cache) Get(ctx context.Context, item *model.ContentItem, sourceLang, targetLang, fieldKey string) (string, bool, error) {
	value, ok, err := c.store.GetItemMeta(ctx, item.ID, Key(sourceLang, targetLang, fieldKey))
	if err != nil {
		return "", false, fmt.Errorf("reading cache for item %d: %w", item.ID, err)
	}
	return value, ok, nil
}

// Put stores value, overwriting any previous entry.
func (c *Cache) Put(ctx context.Context, item *model.ContentItem, sourceLang, targetLang, fieldKey, value string) error {
	if err := c.store.SetItemMeta(ctx, item.ID, Key(sourceLang, targetLang, fieldKey), value); err != nil {
		return fmt.Errorf("writing cache for item %d: %w", item.ID, err)
	}
	return nil
}

// InvalidateAll deletes every cached translation of item.
func (c *Cache) InvalidateAll(ctx context.Context, item *model.ContentItem) error {
	if err := c.store.DeleteItemMetaByPrefix(ctx, item.ID, KeyPrefix); err != nil {
		return fmt.Errorf("invalidating cache for item %d: %w", item.ID, err)
	}
	return nil
}

// GetGlobal returns a cached translation not tied to any item.
func (c *Cache) GetGlobal(ctx context.Context, sourceLang, targetLang, key string) (string, bool, error) {
	value, ok, err := c.store.GetOption(ctx, Key(sourceLang, targetLang, key))
	if err != nil {
		return "", false, fmt.Errorf("reading global cache: %w", err)
	}
	return value, ok, nil
}

// PutGlobal stores a translation not tied to any item.
func (c *Cache) PutGlobal(ctx context.Context, sourceLang, targetLang, key, value string) error {
	if err := c.store.SetOption(ctx, Key(sourceLang, targetLang, key), value); err != nil {
		return fmt.Errorf("writing global cache: %w", err)
	}
	return nil
}
