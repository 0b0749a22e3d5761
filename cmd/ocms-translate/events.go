// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"database/sql"

	"github.com/spf13/cobra"

	"github.com/olegiv/ocms-translate/internal/model"
	"github.com/olegiv/ocms-translate/internal/store"
)

var (
	flagEventsCategory string
	flagEventsLimit    uint64
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Show recent warnings and errors from the event log",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withDB(func(db *sql.DB) error {
			list, err := store.NewEvents(db).ListEvents(cmd.Context(), flagEventsCategory, flagEventsLimit)
			if err != nil {
				return err
			}
			if list == nil {
				list = []model.Event{}
			}
			return printJSON(cmd.OutOrStdout(), list)
		})
	},
}

func init() {
	eventsCmd.Flags().StringVar(&flagEventsCategory, "category", "", "only events of this category (translation, cache, hooks, config, system)")
	eventsCmd.Flags().Uint64Var(&flagEventsLimit, "limit", 50, "maximum number of events")
}
