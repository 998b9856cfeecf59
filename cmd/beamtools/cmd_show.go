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
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/AleutianAI/beamtools/services/pipeline"
)

// showLevel, showCitations and showDoc hold flag values for the show
// command.
var (
	showLevel     string
	showCitations bool
	showDoc       bool
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	nameStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

var showCmd = &cobra.Command{
	Use:   "show <plugin>",
	Short: "Show a plugin's parameters at a display level",
	Args:  cobra.ExactArgs(1),
	RunE:  runShowCommand,
}

func init() {
	showCmd.Flags().StringVar(&showLevel, "level", "basic",
		"display level (basic, intermediate, advanced)")
	showCmd.Flags().BoolVar(&showCitations, "citations", false,
		"also print the plugin's citations")
	showCmd.Flags().BoolVar(&showDoc, "doc", false,
		"also print the plugin's documentation block")
}

var showLevelRank = map[string]int{
	string(pipeline.VisibilityBasic):        0,
	string(pipeline.VisibilityIntermediate): 1,
	string(pipeline.VisibilityAdvanced):     2,
}

func runShowCommand(cmd *cobra.Command, args []string) error {
	rank, ok := showLevelRank[showLevel]
	if !ok {
		return fmt.Errorf("level must be basic, intermediate or advanced, got %q", showLevel)
	}

	plugin := args[0]
	tools, err := pipeline.Default().NewTools(plugin, &pipeline.ToolsOptions{
		Recommendations: cmd.OutOrStdout(),
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, headingStyle.Render(plugin))

	tools.ParamDefinitions().Each(func(name string, def *pipeline.Definition) {
		if !def.Display {
			return
		}
		vis := string(def.Visibility)
		if r, leveled := showLevelRank[vis]; leveled && r > rank {
			return
		}
		value, _ := tools.ParamValue(name)
		fmt.Fprintf(out, "  %s = %v %s\n",
			nameStyle.Render(name), value,
			dimStyle.Render("("+strings.Join(def.Dtype, "/")+", "+vis+")"))
		if def.Description.Summary != "" {
			fmt.Fprintf(out, "      %s\n", def.Description.Summary)
		}
		if len(def.Options) > 0 {
			fmt.Fprintf(out, "      options: %s\n", strings.Join(def.Options, ", "))
		}
	})

	if showCitations {
		cites := tools.Citations()
		if cites.Len() > 0 {
			fmt.Fprintln(out)
			fmt.Fprintln(out, headingStyle.Render("Citations"))
			for _, name := range cites.Names() {
				cite, _ := cites.Get(name)
				fmt.Fprintf(out, "  %s: %s\n", nameStyle.Render(name), cite.Description)
			}
		}
	}

	if showDoc {
		doc := tools.Doc()
		fmt.Fprintln(out)
		fmt.Fprintln(out, headingStyle.Render("Documentation"))
		if doc.Verbose != "" {
			fmt.Fprintf(out, "  %s\n", doc.Verbose)
		}
		if doc.Warn != "" {
			fmt.Fprintf(out, "  Warning: %s\n", doc.Warn)
		}
		if doc.DocLink != "" {
			fmt.Fprintf(out, "  %s\n", doc.DocLink)
		}
	}

	return nil
}
