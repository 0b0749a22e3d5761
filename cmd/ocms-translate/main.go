// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Command ocms-translate serves and manages machine translations of content.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/olegiv/ocms-translate/internal/version"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

// Global flag values.
var (
	flagEnvFile string
	flagJSON    bool
)

func versionInfo() version.Info {
	return version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}
}

var rootCmd = &cobra.Command{
	Use:           "ocms-translate",
	Short:         "Machine translation of multilingual content with a persistent cache",
	SilenceUsage:  true,
	SilenceErrors: true,
	Long: `ocms-translate translates duplicated content items into the visitor's
language on the fly, caching each translation until the item is saved again.

Configuration is read from OCMS_* environment variables and an optional
.env file.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(invalidateCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(languagesCmd)
	rootCmd.AddCommand(itemsCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(correctionsCmd)
	rootCmd.AddCommand(eventsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
