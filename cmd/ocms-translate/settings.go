// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/olegiv/ocms-translate/internal/model"
	"github.com/olegiv/ocms-translate/internal/store"
)

var flagFieldAuto bool

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Configure which content is translated",
}

var settingsSyncCmd = &cobra.Command{
	Use:   "sync TYPE [off|manual|auto]",
	Short: "Show or set the sync setting of a content type",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *sql.DB) error {
			s := store.NewSettings(db)
			if len(args) == 2 {
				setting := model.SyncSetting(args[1])
				if model.ParseSyncSetting(args[1]) != setting {
					return fmt.Errorf("invalid sync setting %q", args[1])
				}
				if err := s.SetTypeSyncSetting(cmd.Context(), args[0], setting); err != nil {
					return err
				}
			}
			setting, err := s.TypeSyncSetting(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]any{"type": args[0], "sync": setting})
		})
	},
}

var settingsFieldsCmd = &cobra.Command{
	Use:   "fields TYPE",
	Short: "List the custom fields of a content type",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *sql.DB) error {
			fields, err := store.NewSettings(db).Fields(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if fields == nil {
				fields = []model.Field{}
			}
			return printJSON(cmd.OutOrStdout(), fields)
		})
	},
}

var settingsFieldCmd = &cobra.Command{
	Use:     "field TYPE KEY KIND",
	Short:   "Define a custom field",
	Example: `  ocms-translate settings field post subtitle text --auto`,
	Args:    cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, ok := model.ParseFieldKind(args[2])
		if !ok {
			return fmt.Errorf("unknown field kind %q", args[2])
		}
		f := model.Field{Key: args[1], Kind: kind, AutoTranslate: flagFieldAuto}
		return withDB(func(db *sql.DB) error {
			if err := store.NewSettings(db).SetField(cmd.Context(), args[0], f); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), f)
		})
	},
}

var settingsIgnoreCmd = &cobra.Command{
	Use:   "ignore [TOKEN...]",
	Short: "Show or replace the ignore list",
	Long: `Tokens have the form {originId}_{fieldKey}, e.g. 7_title. Passing tokens
replaces the whole list; pass a single "-" to clear it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *sql.DB) error {
			s := store.NewSettings(db)
			if len(args) > 0 {
				tokens := args
				if len(args) == 1 && args[0] == "-" {
					tokens = []string{}
				}
				if err := s.SetIgnoreList(cmd.Context(), tokens); err != nil {
					return err
				}
			}
			list, err := s.IgnoreList(cmd.Context())
			if err != nil {
				return err
			}
			if list == nil {
				list = []string{}
			}
			return printJSON(cmd.OutOrStdout(), list)
		})
	},
}

func init() {
	settingsFieldCmd.Flags().BoolVar(&flagFieldAuto, "auto", false, "translate the field automatically")

	settingsCmd.AddCommand(settingsSyncCmd)
	settingsCmd.AddCommand(settingsFieldsCmd)
	settingsCmd.AddCommand(settingsFieldCmd)
	settingsCmd.AddCommand(settingsIgnoreCmd)
}
