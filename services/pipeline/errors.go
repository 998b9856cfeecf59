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
	"sort"
	"strings"
)

// =============================================================================
// Error Taxonomy
// =============================================================================
//
// Schema-shape errors (DefinitionParseError, MissingKeysError,
// InvalidDtypeError, InvalidVisibilityError, InvalidOptionError) are fatal:
// a plugin with a malformed parameter block must never run with partial
// parameters, so Tools construction aborts. Each of them reports every
// offending parameter for the class, not just the first one found.
//
// Override errors (UnknownParameterError, MultiParamSyntaxError) are per-key
// and carry enough context to fix a process list without reading source.

// DefinitionParseError reports a parameter block that did not parse to an
// ordered mapping.
type DefinitionParseError struct {
	// Class is the tools class whose parameter block is malformed.
	Class string

	// Err is the underlying parse failure, if any.
	Err error
}

func (e *DefinitionParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parameter block for %s could not be read: %v", e.Class, e.Err)
	}
	return fmt.Sprintf("parameter block for %s did not produce an ordered mapping", e.Class)
}

func (e *DefinitionParseError) Unwrap() error { return e.Err }

// MissingKeysError reports parameters that omit required definition keys.
//
// Non-hidden parameters require dtype, description, visibility and default;
// hidden parameters require only default. All offending parameters for the
// class are aggregated before the error is raised.
type MissingKeysError struct {
	// Class is the tools class being validated.
	Class string

	// Missing maps parameter name to the keys it omits.
	Missing map[string][]string
}

func (e *MissingKeysError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s does not contain all of the required keys:", e.Class)
	for _, name := range sortedKeys(e.Missing) {
		fmt.Fprintf(&sb, " %s missing [%s];", name, strings.Join(e.Missing[name], ", "))
	}
	return strings.TrimSuffix(sb.String(), ";")
}

// InvalidDtypeError reports dtype tokens that are not in the type registry.
// All offenders for the class are aggregated into one error.
type InvalidDtypeError struct {
	// Class is the tools class being validated.
	Class string

	// Invalid maps parameter name to its unrecognised dtype tokens.
	Invalid map[string][]string
}

func (e *InvalidDtypeError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s declares invalid dtypes:", e.Class)
	for _, name := range sortedKeys(e.Invalid) {
		fmt.Fprintf(&sb, " %s [%s];", name, strings.Join(e.Invalid[name], ", "))
	}
	return strings.TrimSuffix(sb.String(), ";") +
		". The type options are: " + strings.Join(DtypeNames(), ", ")
}

// InvalidVisibilityError reports parameters with a visibility outside the
// accepted set.
type InvalidVisibilityError struct {
	// Class is the tools class being validated.
	Class string

	// Invalid maps parameter name to its rejected visibility value.
	Invalid map[string]string
}

func (e *InvalidVisibilityError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s assigns invalid visibility levels:", e.Class)
	for _, name := range sortedKeys(e.Invalid) {
		fmt.Fprintf(&sb, " %s=%q;", name, e.Invalid[name])
	}
	return strings.TrimSuffix(sb.String(), ";") +
		". Valid choices are: " + strings.Join(visibilityNames, ", ")
}

// InvalidOptionError reports option descriptions that do not correspond to a
// declared option. All offenders for the class are aggregated.
type InvalidOptionError struct {
	// Class is the tools class being validated.
	Class string

	// Invalid maps parameter name to the description.options keys absent
	// from its options list.
	Invalid map[string][]string
}

func (e *InvalidOptionError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s describes options not in the options list:", e.Class)
	for _, name := range sortedKeys(e.Invalid) {
		fmt.Fprintf(&sb, " %s [%s];", name, strings.Join(e.Invalid[name], ", "))
	}
	return strings.TrimSuffix(sb.String(), ";")
}

// UnknownDependencyError reports a dependency descriptor naming a parent
// parameter that does not exist in the definition set.
type UnknownDependencyError struct {
	// Param is the parameter whose default or display depends on the parent.
	Param string

	// Parent is the missing parent parameter.
	Parent string
}

func (e *UnknownDependencyError) Error() string {
	return fmt.Sprintf("the dependency %s of parameter %s does not exist", e.Parent, e.Param)
}

// CyclicDependencyError reports a circular dependency-descriptor default
// chain. The original resolver recursed without a guard; the cycle is
// detected here and resolution fails fast instead.
type CyclicDependencyError struct {
	// Cycle is the dependency path, ending at the revisited parameter.
	Cycle []string
}

func (e *CyclicDependencyError) Error() string {
	return fmt.Sprintf("circular default dependency: %s", strings.Join(e.Cycle, " -> "))
}

// MultiParamSyntaxError describes a malformed segment of a multi-valued
// override. It is surfaced as a rejected override rather than a crash.
type MultiParamSyntaxError struct {
	// Param is the parameter being overridden.
	Param string

	// Segment is the malformed piece of the delimited value.
	Segment string

	// Reason describes why the segment could not be converted.
	Reason string
}

func (e *MultiParamSyntaxError) Error() string {
	return fmt.Sprintf("multi-valued entry for %s has a malformed segment %q: %s",
		e.Param, e.Segment, e.Reason)
}

// UnknownParameterError reports a process-list override key the plugin does
// not declare.
type UnknownParameterError struct {
	// Plugin is the plugin class the override was addressed to.
	Plugin string

	// Param is the unrecognised key.
	Param string
}

func (e *UnknownParameterError) Error() string {
	return fmt.Sprintf("parameter %q is not valid for plugin %s. "+
		"Try opening and re-saving the process list to remove obsolete parameters",
		e.Param, e.Plugin)
}

// sortedKeys gives deterministic ordering for aggregated error output.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
