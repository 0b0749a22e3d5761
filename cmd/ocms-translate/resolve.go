// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/olegiv/ocms-translate/internal/autotranslate"
	"github.com/olegiv/ocms-translate/internal/middleware"
	"github.com/olegiv/ocms-translate/internal/model"
)

var (
	flagResolveItem         int64
	flagResolveField        string
	flagResolveLang         string
	flagResolveKey          string
	flagResolveShowOriginal bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [flags] TEXT",
	Short: "Resolve text as it would be rendered in a language",
	Long: `Resolve runs TEXT through the same pipeline the HTTP API uses.

With --item the text is a field of that content item. With --key it is a
global label cached under that key. Text is read from stdin when TEXT is "-".`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagResolveItem != 0 && flagResolveKey != "" {
			return errors.New("--item and --key are mutually exclusive")
		}

		text := args[0]
		if text == "-" {
			b, err := readAllStdin()
			if err != nil {
				return err
			}
			text = b
		}

		a, err := newApp(cmd.Context(), os.Stderr)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		if flagResolveLang != "" {
			ctx = middleware.WithLanguageCode(ctx, strings.ToLower(flagResolveLang))
		}
		if flagResolveShowOriginal {
			ctx = autotranslate.WithShowOriginal(ctx)
		}

		var out string
		switch {
		case flagResolveKey != "":
			out, err = a.engine.ResolveGlobal(ctx, text, flagResolveKey)
		case flagResolveItem != 0:
			item, ierr := a.registry.Item(ctx, flagResolveItem)
			if ierr != nil {
				return ierr
			}
			switch flagResolveField {
			case model.FieldTitle:
				out, err = a.filters.Title(ctx, text, item)
			case model.FieldBody:
				out, err = a.filters.Body(ctx, text, item)
			default:
				out, err = a.filters.Field(ctx, text, item, flagResolveField)
			}
		default:
			out = text
		}
		if err != nil {
			return err
		}

		if flagJSON {
			return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
				"language": a.engine.Languages().ActiveLanguage(ctx),
				"content":  out,
			})
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
		return err
	},
}

func init() {
	resolveCmd.Flags().Int64Var(&flagResolveItem, "item", 0, "content item id")
	resolveCmd.Flags().StringVar(&flagResolveField, "field", model.FieldBody, "field key (title, body or a custom field)")
	resolveCmd.Flags().StringVar(&flagResolveLang, "lang", "", "target language code (default: the default language)")
	resolveCmd.Flags().StringVar(&flagResolveKey, "key", "", "global label key")
	resolveCmd.Flags().BoolVar(&flagResolveShowOriginal, "show-original", false, "return the text untranslated")
}
