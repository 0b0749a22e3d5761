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

var correctionsCmd = &cobra.Command{
	Use:   "corrections",
	Short: "Manage manual translation overrides",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withDB(func(db *sql.DB) error {
			list, err := store.NewCorrections(db).Corrections(cmd.Context())
			if err != nil {
				return err
			}
			if list == nil {
				list = []model.Correction{}
			}
			return printJSON(cmd.OutOrStdout(), list)
		})
	},
}

var correctionsAddCmd = &cobra.Command{
	Use:     "add SOURCE CORRECTED",
	Short:   "Add an override; SOURCE matches case-insensitively",
	Example: `  ocms-translate corrections add "Read More" "Lire la suite"`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *sql.DB) error {
			c, err := store.NewCorrections(db).AddCorrection(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), c)
		})
	},
}

var correctionsDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete an override",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return withDB(func(db *sql.DB) error {
			if err := store.NewCorrections(db).DeleteCorrection(cmd.Context(), id); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "correction %d deleted\n", id)
			return err
		})
	},
}

func init() {
	correctionsCmd.AddCommand(correctionsAddCmd)
	correctionsCmd.AddCommand(correctionsDeleteCmd)
}
