// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/olegiv/ocms-translate/internal/hooks"
	"github.com/olegiv/ocms-translate/internal/model"
)

var (
	flagInvalidateItem     int64
	flagInvalidateRevision bool
)

var invalidateCmd = &cobra.Command{
	Use:   "invalidate",
	Short: "Report a content save, dropping the item's cached translations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if flagInvalidateItem <= 0 {
			return errors.New("--item is required")
		}

		a, err := newApp(cmd.Context(), os.Stderr)
		if err != nil {
			return err
		}
		defer a.Close()

		ev := model.SaveEvent{ItemID: flagInvalidateItem, IsRevision: flagInvalidateRevision}
		if err := a.hooks.Call(cmd.Context(), hooks.HookContentAfterSave, ev); err != nil {
			return err
		}

		if flagInvalidateRevision {
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "revision of item %d saved, cache kept\n", ev.ItemID)
		} else {
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "translations of item %d invalidated\n", ev.ItemID)
		}
		return err
	},
}

func init() {
	invalidateCmd.Flags().Int64Var(&flagInvalidateItem, "item", 0, "content item id")
	invalidateCmd.Flags().BoolVar(&flagInvalidateRevision, "revision", false, "the save was a draft or revision snapshot")
}
