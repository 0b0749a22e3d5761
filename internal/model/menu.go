// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Default menu slugs
const (
	MenuMain   = "main"
	MenuFooter = "footer"
)

// MenuItem represents an item in a navigation menu. ItemID links the entry to
// a content item; zero means a free-standing label.
type MenuItem struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	ItemID   int64  `json:"item_id,omitempty"`
	Position int    `json:"position"`
}

// MenuItemWithChildren represents a menu item with its children for tree display.
type MenuItemWithChildren struct {
	MenuItem
	Children []MenuItemWithChildren `json:"children,omitempty"`
}
