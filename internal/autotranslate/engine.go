// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package autotranslate

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/olegiv/ocms-translate/internal/model"
	"github.com/olegiv/ocms-translate/internal/translator"
)

// Options holds the collaborators of an Engine.
type Options struct {
	Store       Store
	Registry    Registry // nil means the platform is not multilingual
	Settings    Settings
	Corrections CorrectionSource
	Translator  Translator
	Logger      *slog.Logger

	// DefaultLanguage is the canonical language (default: DefaultLanguage).
	DefaultLanguage string
}

// Stats holds resolution counters.
type Stats struct {
	Corrections   int64 `json:"corrections"`
	CacheHits     int64 `json:"cache_hits"`
	CacheMisses   int64 `json:"cache_misses"`
	RemoteCalls   int64 `json:"remote_calls"`
	RemoteFailure int64 `json:"remote_failures"`
	Invalidations int64 `json:"invalidations"`
}

// Engine resolves content to the active language.
type Engine struct {
	languages   *LanguageResolver
	origins     *OriginResolver
	policy      *Policy
	corrections *CorrectionLookup
	cache       *Cache
	translator  Translator
	logger      *slog.Logger

	corrected     atomic.Int64
	hits          atomic.Int64
	misses        atomic.Int64
	remoteCalls   atomic.Int64
	remoteFailed  atomic.Int64
	invalidations atomic.Int64
}

// New creates an Engine from opts.
func New(opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	languages := NewLanguageResolver(opts.Registry, opts.DefaultLanguage, logger)
	return &Engine{
		languages:   languages,
		origins:     NewOriginResolver(opts.Registry, languages, logger),
		policy:      NewPolicy(opts.Settings, logger),
		corrections: NewCorrectionLookup(opts.Corrections, logger),
		cache:       NewCache(opts.Store),
		translator:  opts.Translator,
		logger:      logger,
	}
}

// Languages returns the engine's language resolver.
func (e *Engine) Languages() *LanguageResolver { return e.languages }

// Origins returns the engine's origin resolver.
func (e *Engine) Origins() *OriginResolver { return e.origins }

// Policy returns the engine's eligibility policy.
func (e *Engine) Policy() *Policy { return e.policy }

// Cache returns the engine's translation cache.
func (e *Engine) Cache() *Cache { return e.cache }

// Resolve returns content translated into the active language, or content
// unchanged when any guard fails. Only a *translator.ConfigError is returned
// as an error; every other failure degrades to the original content.
func (e *Engine) Resolve(ctx context.Context, content string, item *model.ContentItem, fieldKey string) (string, error) {
	if item == nil {
		return content, nil
	}
	if strings.TrimSpace(content) == "" {
		return content, nil
	}
	// A canonical origin has nothing to be translated from. The OriginID on
	// the passed item is authoritative; the registry is not asked again.
	if item.IsOrigin() || !e.origins.IsVariant(ctx, item) {
		return content, nil
	}
	if e.policy.IsExcluded(item, fieldKey, e.policy.IgnoreList(ctx)) {
		return content, nil
	}
	if !e.policy.IsTypeEligible(ctx, item.ContentType) {
		return content, nil
	}
	if ShowOriginal(ctx) {
		return content, nil
	}

	origin := e.origins.OriginOf(ctx, item)
	originLang, err := e.origins.lookupLanguage(ctx, origin)
	if err != nil {
		e.logger.Debug("origin language unknown", "item_id", item.ID, "origin_id", origin.ID, "error", err)
		return content, nil
	}
	activeLang := e.languages.ActiveLanguage(ctx)
	if originLang == activeLang {
		return content, nil
	}

	return e.resolveTranslation(ctx, content, item, fieldKey, originLang, activeLang)
}

// ResolveField resolves a custom field value, checking the field's own
// eligibility first.
func (e *Engine) ResolveField(ctx context.Context, content string, item *model.ContentItem, field model.Field) (string, error) {
	if item == nil || !e.policy.IsFieldEligible(ctx, field, item) {
		return content, nil
	}
	return e.Resolve(ctx, content, item, field.Key)
}

// ResolveGlobal resolves a string that has no owning item, such as a static
// label. The source language is the canonical language and the result is
// cached under the global scope, keyed by key and a fingerprint of content.
func (e *Engine) ResolveGlobal(ctx context.Context, content, key string) (string, error) {
	if strings.TrimSpace(content) == "" || ShowOriginal(ctx) {
		return content, nil
	}
	sourceLang := e.languages.Default()
	targetLang := e.languages.ActiveLanguage(ctx)
	if sourceLang == targetLang {
		return content, nil
	}

	if corrected, ok := e.corrections.Lookup(ctx, content); ok {
		e.corrected.Add(1)
		return corrected, nil
	}

	cacheKey := LabelKey(key, content)
	cached, ok, err := e.cache.GetGlobal(ctx, sourceLang, targetLang, cacheKey)
	if err != nil {
		e.logger.Warn("translation cache read failed", "category", model.EventCategoryCache, "key", key, "error", err)
	} else if ok {
		e.hits.Add(1)
		return cached, nil
	}
	e.misses.Add(1)

	translated, err := e.callRemote(ctx, content, sourceLang, targetLang)
	if err != nil {
		if translator.IsConfigError(err) {
			return content, fmt.Errorf("resolving label %q: %w", key, err)
		}
		e.logger.Warn("remote translation failed",
			"category", model.EventCategoryTranslation,
			"key", key,
			"source", sourceLang,
			"target", targetLang,
			"error", err,
		)
		return content, nil
	}

	if err := e.cache.PutGlobal(ctx, sourceLang, targetLang, cacheKey, translated); err != nil {
		e.logger.Warn("translation cache write failed", "category", model.EventCategoryCache, "key", key, "error", err)
	}
	return translated, nil
}

// resolveTranslation runs correction, cache and remote lookups in that order.
// Corrections are never cached; the cache is written only after a successful
// remote call.
func (e *Engine) resolveTranslation(ctx context.Context, content string, item *model.ContentItem, fieldKey, originLang, activeLang string) (string, error) {
	if corrected, ok := e.corrections.Lookup(ctx, content); ok {
		e.corrected.Add(1)
		return corrected, nil
	}

	cached, ok, err := e.cache.Get(ctx, item, originLang, activeLang, fieldKey)
	if err != nil {
		e.logger.Warn("translation cache read failed", "category", model.EventCategoryCache, "item_id", item.ID, "field", fieldKey, "error", err)
	} else if ok {
		e.hits.Add(1)
		return cached, nil
	}
	e.misses.Add(1)

	translated, err := e.callRemote(ctx, content, originLang, activeLang)
	if err != nil {
		if translator.IsConfigError(err) {
			return content, fmt.Errorf("resolving %s of item %d: %w", fieldKey, item.ID, err)
		}
		e.logger.Warn("remote translation failed",
			"category", model.EventCategoryTranslation,
			"item_id", item.ID,
			"field", fieldKey,
			"source", originLang,
			"target", activeLang,
			"error", err,
		)
		return content, nil
	}

	if err := e.cache.Put(ctx, item, originLang, activeLang, fieldKey, translated); err != nil {
		e.logger.Warn("translation cache write failed", "category", model.EventCategoryCache, "item_id", item.ID, "field", fieldKey, "error", err)
	}
	return translated, nil
}

func (e *Engine) callRemote(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	if e.translator == nil {
		return "", &translator.ConfigError{Setting: "translator"}
	}
	e.remoteCalls.Add(1)
	out, err := e.translator.Translate(ctx, text, sourceLang, targetLang)
	if err != nil {
		e.remoteFailed.Add(1)
		return "", err
	}
	return out, nil
}

// HandleContentSaved drops every cached translation of the saved item.
// Revision and draft snapshots never touch the live item's cache.
func (e *Engine) HandleContentSaved(ctx context.Context, ev model.SaveEvent) error {
	if ev.IsRevision {
		e.logger.Debug("skipping cache invalidation for revision", "item_id", ev.ItemID)
		return nil
	}
	if err := e.cache.InvalidateAll(ctx, &model.ContentItem{ID: ev.ItemID}); err != nil {
		return err
	}
	e.invalidations.Add(1)
	e.logger.Debug("translation cache invalidated", "item_id", ev.ItemID)
	return nil
}

// Stats returns the resolution counters.
func (e *Engine) Stats() Stats {
	return Stats{
		Corrections:   e.corrected.Load(),
		CacheHits:     e.hits.Load(),
		CacheMisses:   e.misses.Load(),
		RemoteCalls:   e.remoteCalls.Load(),
		RemoteFailure: e.remoteFailed.Load(),
		Invalidations: e.invalidations.Load(),
	}
}
