// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package pipeline

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// Dependency Engine
// =============================================================================

// refreshDisplay recomputes the display flags against the current values.
// Hidden and opted-out parameters are always off; for parameters carrying a
// dependency the flag follows the parent's value.
//
// A bare parent-name dependency shows the parameter whenever the parent has
// a value; a value-set dependency shows it only while the parent's
// stringified value is among the allowed set. Parents missing from the
// value set switch the dependent off; base-class blocks may declare
// dependencies on parameters only some derived plugins have.
func refreshDisplay(defs *ParamMap, values *ValueSet) {
	defs.Each(func(name string, def *Definition) {
		if def.Visibility == VisibilityHidden || def.Visibility == VisibilityNot {
			def.Display = false
			return
		}
		if def.Dependency == nil {
			return
		}
		dep := def.Dependency
		parentValue, present := values.Get(dep.Parent)

		if dep.Allowed == nil {
			def.Display = present && parentValue != nil &&
				stringifyValue(parentValue) != "None"
			return
		}
		if !present {
			def.Display = false
			return
		}
		def.Display = false
		current := stringifyValue(parentValue)
		for _, allowed := range dep.Allowed {
			if current == allowed {
				def.Display = true
				return
			}
		}
	})
}

// recommendationStyle renders advisory recommendations the way the original
// configurator printed them, in red.
var recommendationStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

// recommendDependents emits an advisory for every parameter whose
// dependency-descriptor default has a branch for the modified parameter's
// new value, suggesting the dependent be updated to the recommended value.
// The advisories are informational only; the dependent's description gains
// a range note and the rendered suggestion goes to out.
func recommendDependents(defs *ParamMap, changed string, newValue any, out io.Writer) {
	defs.Each(func(name string, def *Definition) {
		dd, ok := def.Default.(*DependentDefault)
		if !ok || dd.Parent != changed {
			return
		}
		recommended, ok := matchBranch(dd.Branches, newValue)
		if !ok {
			return
		}
		def.Description.Range = fmt.Sprintf(
			"The recommended value with the chosen %s would be %v", changed, recommended)
		if out != nil {
			fmt.Fprintln(out, recommendationStyle.Render(fmt.Sprintf(
				"It's recommended that you update %s to %v", name, recommended)))
		}
		recommendationsEmitted.Inc()
	})
}
