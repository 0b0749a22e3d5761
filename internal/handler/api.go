// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler provides the HTTP handlers of the translation service.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/ocms-translate/internal/autotranslate"
	"github.com/olegiv/ocms-translate/internal/filters"
	"github.com/olegiv/ocms-translate/internal/hooks"
	"github.com/olegiv/ocms-translate/internal/model"
	"github.com/olegiv/ocms-translate/internal/store"
	"github.com/olegiv/ocms-translate/internal/translator"
)

// ItemSource loads content items. store.Registry implements it.
type ItemSource interface {
	Item(ctx context.Context, itemID int64) (*model.ContentItem, error)
}

// APIHandler serves the resolution API.
type APIHandler struct {
	engine  *autotranslate.Engine
	filters *filters.Filters
	items   ItemSource
	hooks   *hooks.Registry
	logger  *slog.Logger
}

// NewAPIHandler creates an APIHandler.
func NewAPIHandler(engine *autotranslate.Engine, f *filters.Filters, items ItemSource, hookRegistry *hooks.Registry, logger *slog.Logger) *APIHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &APIHandler{
		engine:  engine,
		filters: f,
		items:   items,
		hooks:   hookRegistry,
		logger:  logger,
	}
}

// ListLanguages handles GET /api/v1/languages.
func (h *APIHandler) ListLanguages(w http.ResponseWriter, r *http.Request) {
	langs := h.engine.Languages()
	links := langs.SupportedLanguages(r.Context())
	if links == nil {
		links = []model.LanguageLink{}
	}
	writeJSONSuccess(w, map[string]any{
		"active":    langs.ActiveLanguage(r.Context()),
		"default":   langs.Default(),
		"languages": links,
	})
}

// LanguageURL handles GET /api/v1/languages/{code}/url.
func (h *APIHandler) LanguageURL(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	url, ok := h.engine.Languages().LanguageURL(r.Context(), code)
	if !ok {
		writeJSONError(w, http.StatusNotFound, "language not found")
		return
	}
	writeJSONSuccess(w, map[string]any{"code": code, "url": url})
}

type resolveRequest struct {
	ItemID       int64  `json:"item_id"`
	Field        string `json:"field"`
	Content      string `json:"content"`
	ShowOriginal bool   `json:"show_original"`
}

// Resolve handles POST /api/v1/resolve.
func (h *APIHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Field == "" {
		req.Field = model.FieldBody
	}

	ctx := r.Context()
	if req.ShowOriginal {
		ctx = autotranslate.WithShowOriginal(ctx)
	}

	// Content without an owning item is rendered as is.
	if req.ItemID == 0 {
		writeJSONSuccess(w, map[string]any{"content": req.Content})
		return
	}

	item, err := h.items.Item(ctx, req.ItemID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "content item not found")
			return
		}
		h.logger.Error("failed to load content item", "item_id", req.ItemID, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "failed to load content item")
		return
	}

	var out string
	switch req.Field {
	case model.FieldTitle:
		out, err = h.filters.Title(ctx, req.Content, item)
	case model.FieldBody:
		out, err = h.filters.Body(ctx, req.Content, item)
	default:
		out, err = h.filters.Field(ctx, req.Content, item, req.Field)
	}
	if err != nil {
		h.writeResolveError(w, err)
		return
	}
	writeJSONSuccess(w, map[string]any{"content": out})
}

type labelRequest struct {
	Key     string `json:"key"`
	Content string `json:"content"`
}

// ResolveLabel handles POST /api/v1/labels/resolve.
func (h *APIHandler) ResolveLabel(w http.ResponseWriter, r *http.Request) {
	var req labelRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Key) == "" {
		writeJSONError(w, http.StatusBadRequest, "key is required")
		return
	}

	out, err := h.engine.ResolveGlobal(r.Context(), req.Content, req.Key)
	if err != nil {
		h.writeResolveError(w, err)
		return
	}
	writeJSONSuccess(w, map[string]any{"content": out})
}

type menuRequest struct {
	Items []model.MenuItemWithChildren `json:"items"`
}

// ResolveMenu handles POST /api/v1/menus/resolve.
func (h *APIHandler) ResolveMenu(w http.ResponseWriter, r *http.Request) {
	var req menuRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, err := h.filters.Menu(r.Context(), req.Items)
	if err != nil {
		h.writeResolveError(w, err)
		return
	}
	if items == nil {
		items = []model.MenuItemWithChildren{}
	}
	writeJSONSuccess(w, map[string]any{"items": items})
}

type savedRequest struct {
	Revision bool `json:"revision"`
}

// ContentSaved handles POST /api/v1/content/{id}/saved. An empty body is a
// save of the live record.
func (h *APIHandler) ContentSaved(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeJSONError(w, http.StatusBadRequest, "invalid content id")
		return
	}

	var req savedRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(w, r, &req); err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	ev := model.SaveEvent{ItemID: id, IsRevision: req.Revision}
	if err := h.hooks.Call(r.Context(), hooks.HookContentAfterSave, ev); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to process save event")
		return
	}
	writeJSONSuccess(w, map[string]any{"item_id": id, "revision": req.Revision})
}

// writeResolveError maps a resolution error to a response. Only configuration
// errors reach here; anything else is still reported as a server error.
func (h *APIHandler) writeResolveError(w http.ResponseWriter, err error) {
	if translator.IsConfigError(err) {
		h.logger.Error("translation is misconfigured", "category", model.EventCategoryConfig, "error", err)
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.logger.Error("resolution failed", "error", err)
	writeJSONError(w, http.StatusInternalServerError, "resolution failed")
}
