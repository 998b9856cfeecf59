// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Command beamtools inspects and validates processing pipeline plugins.
//
// Usage:
//
//	beamtools show MedianFilter
//	beamtools show AstraReconGpu --level advanced --citations
//	beamtools validate process_list.yaml
//	beamtools serve --port 8080
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	// Built-in plugins register themselves with the default registry.
	_ "github.com/AleutianAI/beamtools/services/pipeline/plugins"
)

// logLevel holds the --log-level flag value.
var logLevel string

var rootCmd = &cobra.Command{
	Use:   "beamtools",
	Short: "Inspect and validate processing pipeline plugins",
	Long: `beamtools works with the plugin parameter system: it lists a plugin's
parameters at a chosen display level, dry-runs a process list against the
registered plugin definitions, and serves the catalog API.`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		var level slog.Level
		if err := level.UnmarshalText([]byte(logLevel)); err != nil {
			return fmt.Errorf("invalid log level %q: %w", logLevel, err)
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})))
		return nil
	},
}

func main() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn",
		"log level (debug, info, warn, error)")

	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(serveCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
