// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/olegiv/ocms-translate/internal/model"
	"github.com/olegiv/ocms-translate/internal/store"
)

var (
	flagLangName     string
	flagLangURL      string
	flagLangDefault  bool
	flagLangInactive bool
	flagLangRTL      bool
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List and configure content languages",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withDB(func(db *sql.DB) error {
			langs, err := store.NewRegistry(db, nil).Languages(cmd.Context())
			if err != nil {
				return err
			}
			if langs == nil {
				langs = []model.Language{}
			}
			return printJSON(cmd.OutOrStdout(), langs)
		})
	},
}

var languagesSetCmd = &cobra.Command{
	Use:   "set CODE",
	Short: "Create or update a language",
	Example: `  ocms-translate languages set fr --url https://example.com/fr/
  ocms-translate languages set ar --rtl`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tag, err := language.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid language code %q: %w", args[0], err)
		}

		l := model.Language{
			Code:      strings.ToLower(args[0]),
			Name:      flagLangName,
			URL:       flagLangURL,
			IsDefault: flagLangDefault,
			IsActive:  !flagLangInactive,
			Direction: model.DirectionLTR,
		}
		if l.Name == "" {
			l.Name = display.English.Tags().Name(tag)
		}
		if flagLangRTL {
			l.Direction = model.DirectionRTL
		}

		return withDB(func(db *sql.DB) error {
			if err := store.NewRegistry(db, nil).UpsertLanguage(cmd.Context(), l); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), l)
		})
	},
}

func init() {
	languagesSetCmd.Flags().StringVar(&flagLangName, "name", "", "display name (default: English name of the code)")
	languagesSetCmd.Flags().StringVar(&flagLangURL, "url", "", "home URL for the language switcher")
	languagesSetCmd.Flags().BoolVar(&flagLangDefault, "default", false, "mark as the default language")
	languagesSetCmd.Flags().BoolVar(&flagLangInactive, "inactive", false, "keep the language disabled")
	languagesSetCmd.Flags().BoolVar(&flagLangRTL, "rtl", false, "right-to-left script")

	languagesCmd.AddCommand(languagesSetCmd)
}
