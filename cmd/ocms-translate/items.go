// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"database/sql"
	"errors"

	"github.com/spf13/cobra"

	"github.com/olegiv/ocms-translate/internal/model"
	"github.com/olegiv/ocms-translate/internal/store"
)

var (
	flagItemType    string
	flagItemLang    string
	flagItemOrigin  int64
	flagItemExclude bool
)

var itemsCmd = &cobra.Command{
	Use:   "items",
	Short: "Inspect and register content items",
}

var itemsGetCmd = &cobra.Command{
	Use:   "get ID",
	Short: "Show a content item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return withDB(func(db *sql.DB) error {
			item, err := store.NewRegistry(db, nil).Item(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), item)
		})
	},
}

var itemsSetCmd = &cobra.Command{
	Use:   "set ID",
	Short: "Create or update a content item",
	Example: `  ocms-translate items set 7 --type post --lang en
  ocms-translate items set 42 --type post --lang fr --origin 7`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if flagItemType == "" || flagItemLang == "" {
			return errors.New("--type and --lang are required")
		}
		if flagItemOrigin == id {
			return errors.New("an item cannot be its own origin")
		}

		item := &model.ContentItem{
			ID:                   id,
			ContentType:          flagItemType,
			Language:             flagItemLang,
			OriginID:             flagItemOrigin,
			ExcludeAutoTranslate: flagItemExclude,
		}
		return withDB(func(db *sql.DB) error {
			reg := store.NewRegistry(db, nil)
			if item.OriginID != 0 {
				origin, err := reg.Item(cmd.Context(), item.OriginID)
				if err != nil {
					return err
				}
				if !origin.IsOrigin() {
					return errors.New("origin item is itself a duplicate")
				}
			}
			if err := reg.UpsertItem(cmd.Context(), item); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), item)
		})
	},
}

func init() {
	itemsSetCmd.Flags().StringVar(&flagItemType, "type", "", "content type")
	itemsSetCmd.Flags().StringVar(&flagItemLang, "lang", "", "language code of the item")
	itemsSetCmd.Flags().Int64Var(&flagItemOrigin, "origin", 0, "origin item id for duplicates")
	itemsSetCmd.Flags().BoolVar(&flagItemExclude, "exclude", false, "exclude the body from automatic translation")

	itemsCmd.AddCommand(itemsGetCmd)
	itemsCmd.AddCommand(itemsSetCmd)
}
