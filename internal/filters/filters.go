// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package filters connects rendered output (titles, bodies, custom fields and
// navigation menus) to the translation engine.
package filters

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/olegiv/ocms-translate/internal/model"
)

// FieldMenuTitle is the field key under which menu labels of linked items are
// cached, apart from the item's own title.
const FieldMenuTitle = "menu_title"

// Resolver is implemented by *autotranslate.Engine.
type Resolver interface {
	Resolve(ctx context.Context, content string, item *model.ContentItem, fieldKey string) (string, error)
	ResolveField(ctx context.Context, content string, item *model.ContentItem, field model.Field) (string, error)
	ResolveGlobal(ctx context.Context, content, key string) (string, error)
}

// FieldSource looks up custom field settings. store.Settings implements it.
type FieldSource interface {
	Field(ctx context.Context, contentType, key string) (model.Field, error)
}

// ItemSource loads content items. store.Registry implements it.
type ItemSource interface {
	Item(ctx context.Context, itemID int64) (*model.ContentItem, error)
}

// Filters applies translation to rendered values. Every method returns the
// input unchanged on anything but a configuration error.
type Filters struct {
	resolver Resolver
	fields   FieldSource
	items    ItemSource
	logger   *slog.Logger
}

// New creates Filters. fields and items may be nil.
func New(resolver Resolver, fields FieldSource, items ItemSource, logger *slog.Logger) *Filters {
	if logger == nil {
		logger = slog.Default()
	}
	return &Filters{resolver: resolver, fields: fields, items: items, logger: logger}
}

// Title translates an item title.
func (f *Filters) Title(ctx context.Context, title string, item *model.ContentItem) (string, error) {
	return f.resolver.Resolve(ctx, title, item, model.FieldTitle)
}

// Body translates an item body.
func (f *Filters) Body(ctx context.Context, body string, item *model.ContentItem) (string, error) {
	return f.resolver.Resolve(ctx, body, item, model.FieldBody)
}

// Field translates a custom field value. Fields without settings are not
// opted in and pass through.
func (f *Filters) Field(ctx context.Context, value string, item *model.ContentItem, key string) (string, error) {
	if item == nil || f.fields == nil {
		return value, nil
	}

	field, err := f.fields.Field(ctx, item.ContentType, key)
	if err != nil {
		f.logger.Debug("no field settings, passing through", "type", item.ContentType, "field", key, "error", err)
		return value, nil
	}
	return f.resolver.ResolveField(ctx, value, item, field)
}

// Menu returns a copy of the menu tree with translated labels. Items linked to
// content are resolved against that item; free links use the global scope.
func (f *Filters) Menu(ctx context.Context, menu []model.MenuItemWithChildren) ([]model.MenuItemWithChildren, error) {
	if len(menu) == 0 {
		return menu, nil
	}

	out := make([]model.MenuItemWithChildren, len(menu))
	for i, node := range menu {
		title, err := f.menuTitle(ctx, node.MenuItem)
		if err != nil {
			return menu, err
		}

		out[i] = node
		out[i].Title = title

		children, err := f.Menu(ctx, node.Children)
		if err != nil {
			return menu, err
		}
		out[i].Children = children
	}
	return out, nil
}

func (f *Filters) menuTitle(ctx context.Context, mi model.MenuItem) (string, error) {
	if mi.ItemID != 0 && f.items != nil {
		item, err := f.items.Item(ctx, mi.ItemID)
		if err == nil {
			return f.resolver.Resolve(ctx, mi.Title, item, FieldMenuTitle)
		}
		f.logger.Debug("menu item target not found, using global scope", "menu_item", mi.ID, "item", mi.ItemID, "error", err)
	}
	return f.resolver.ResolveGlobal(ctx, mi.Title, MenuLabelKey(mi))
}

// MenuLabelKey is the global key of a free menu label. The engine adds a
// fingerprint of the label text, so an edited label is translated afresh.
func MenuLabelKey(mi model.MenuItem) string {
	return fmt.Sprintf("menu_%d", mi.ID)
}
