// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/beamtools/services/pipeline"
)

// validateDocRoot holds the --doc-root flag value.
var validateDocRoot string

var validateCmd = &cobra.Command{
	Use:   "validate <process-list.yaml>",
	Short: "Dry-run a process list against the registered plugins",
	Long: `validate loads a process list, builds the parameter tools of every
active entry and applies the entry's overrides. The first invalid entry
aborts the run with its error; a clean run prints the resolved values.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidateCommand,
}

func init() {
	validateCmd.Flags().StringVar(&validateDocRoot, "doc-root", "",
		"documentation source folder probed for plugin reference pages")
}

func runValidateCommand(cmd *cobra.Command, args []string) error {
	list, err := pipeline.LoadProcessList(args[0])
	if err != nil {
		return err
	}

	built, err := pipeline.Default().Build(list, &pipeline.ToolsOptions{
		Recommendations: cmd.OutOrStdout(),
		DocRoot:         validateDocRoot,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, tools := range built {
		fmt.Fprintln(out, headingStyle.Render(tools.Plugin()))
		values := tools.ParamValues()
		for _, name := range tools.ParamDefinitions().Names() {
			def, _ := tools.ParamDefinitions().Get(name)
			if !def.Display {
				continue
			}
			fmt.Fprintf(out, "  %s = %v\n", nameStyle.Render(name), values[name])
		}
		if dims := tools.ExtraDims(); len(dims) > 0 {
			fmt.Fprintf(out, "  %s\n", dimStyle.Render(fmt.Sprintf("sweep dimensions: %v", dims)))
		}
	}
	fmt.Fprintf(out, "%d entries validated\n", len(built))
	return nil
}
