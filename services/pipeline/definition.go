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
)

// =============================================================================
// Parameter Definition Model
// =============================================================================

// Visibility governs whether and how a parameter is exposed to end users.
type Visibility string

const (
	VisibilityBasic        Visibility = "basic"
	VisibilityIntermediate Visibility = "intermediate"
	VisibilityAdvanced     Visibility = "advanced"
	VisibilityDatasets     Visibility = "datasets"
	VisibilityHidden       Visibility = "hidden"
	VisibilityNot          Visibility = "not"
)

// visibilityNames is the accepted visibility set, in display order.
var visibilityNames = []string{
	string(VisibilityBasic),
	string(VisibilityIntermediate),
	string(VisibilityAdvanced),
	string(VisibilityDatasets),
	string(VisibilityHidden),
	string(VisibilityNot),
}

// IsValidVisibility reports whether v is one of the accepted levels.
func IsValidVisibility(v Visibility) bool {
	for _, name := range visibilityNames {
		if string(v) == name {
			return true
		}
	}
	return false
}

// Description is a parameter's human description. Plain descriptions carry
// only Summary; parameters with an enumerated option set may attach a
// per-option sub-description map.
type Description struct {
	// Summary is the one-line description shown next to the parameter.
	Summary string

	// Verbose is the extended description, when declared.
	Verbose string

	// Options maps option value to its own description.
	Options map[string]string

	// Range carries recommendation text set when a parent parameter
	// changes.
	Range string
}

// IsStructured reports whether the description was declared as a mapping
// rather than a plain string.
func (d Description) IsStructured() bool {
	return d.Verbose != "" || len(d.Options) > 0 || d.Range != ""
}

// DependentDefault is a dependency-descriptor default: the default of the
// owning parameter is selected from Branches by the parent parameter's
// resolved current value. Branch values may themselves be dependency
// descriptors, so chains of any depth resolve recursively.
type DependentDefault struct {
	// Parent is the parameter the default depends on.
	Parent string

	// Branches maps the stringified parent value to the default taken for
	// that case.
	Branches map[string]any
}

// Dependency activates a parameter conditionally on a parent parameter.
type Dependency struct {
	// Parent is the controlling parameter.
	Parent string

	// Allowed lists the stringified parent values that switch the owning
	// parameter's display on. A nil Allowed means the parameter is shown
	// whenever the parent has a non-nil value.
	Allowed []string
}

// Definition is the static schema for one configurable plugin input. The
// definition tables loaded from descriptor chains are immutable reference
// data; only Display and Description.Range mutate, and those live on the
// per-instance clone.
type Definition struct {
	// Name is the unique parameter key.
	Name string

	// Visibility is one of the accepted visibility levels.
	Visibility Visibility

	// Dtype holds one or more type tags from the dtype registry.
	Dtype []string

	// Description is the plain or structured human description.
	Description Description

	// Default is the literal default, or a *DependentDefault.
	Default any

	// Options is the enumerated set of accepted values, when declared.
	Options []string

	// Dependency conditions the parameter's display on a parent value.
	Dependency *Dependency

	// Display is recomputed whenever a parent value changes. Hidden and
	// dependency-suppressed parameters carry Display false.
	Display bool

	// declared tracks which record keys the parameter block supplied, for
	// required-key validation.
	declared map[string]bool
}

// HasKey reports whether the declaring parameter block supplied the given
// record key.
func (d *Definition) HasKey(key string) bool { return d.declared[key] }

// clone deep-copies the definition so instance-level mutation (Display,
// recommendation text) never reaches the shared table.
func (d *Definition) clone() *Definition {
	out := *d
	out.Dtype = append([]string(nil), d.Dtype...)
	out.Options = append([]string(nil), d.Options...)
	if d.Dependency != nil {
		dep := *d.Dependency
		dep.Allowed = append([]string(nil), d.Dependency.Allowed...)
		out.Dependency = &dep
	}
	if d.Description.Options != nil {
		opts := make(map[string]string, len(d.Description.Options))
		for k, v := range d.Description.Options {
			opts[k] = v
		}
		out.Description.Options = opts
	}
	return &out
}

// =============================================================================
// Ordered Containers
// =============================================================================

// ParamMap is an insertion-ordered mapping of parameter name to definition.
// Later declarations override earlier ones by key without moving the key's
// position; new keys append.
type ParamMap struct {
	keys []string
	defs map[string]*Definition
}

// NewParamMap returns an empty ordered definition mapping.
func NewParamMap() *ParamMap {
	return &ParamMap{defs: make(map[string]*Definition)}
}

// Set inserts or overrides the definition for name.
func (m *ParamMap) Set(name string, def *Definition) {
	if _, ok := m.defs[name]; !ok {
		m.keys = append(m.keys, name)
	}
	m.defs[name] = def
}

// Get returns the definition for name.
func (m *ParamMap) Get(name string) (*Definition, bool) {
	d, ok := m.defs[name]
	return d, ok
}

// Names returns the parameter names in first-declaration order.
func (m *ParamMap) Names() []string {
	return append([]string(nil), m.keys...)
}

// Len returns the number of definitions.
func (m *ParamMap) Len() int { return len(m.keys) }

// Each calls fn for every definition in declaration order.
func (m *ParamMap) Each(fn func(name string, def *Definition)) {
	for _, k := range m.keys {
		fn(k, m.defs[k])
	}
}

// clone deep-copies the map for per-instance mutation.
func (m *ParamMap) clone() *ParamMap {
	out := NewParamMap()
	for _, k := range m.keys {
		out.Set(k, m.defs[k].clone())
	}
	return out
}

// ValueSet is the insertion-ordered mapping of parameter name to current
// value. It is owned exclusively by one plugin instance.
type ValueSet struct {
	keys   []string
	values map[string]any
}

// NewValueSet returns an empty value set.
func NewValueSet() *ValueSet {
	return &ValueSet{values: make(map[string]any)}
}

// Set stores the current value for name.
func (s *ValueSet) Set(name string, value any) {
	if _, ok := s.values[name]; !ok {
		s.keys = append(s.keys, name)
	}
	s.values[name] = value
}

// Get returns the current value for name.
func (s *ValueSet) Get(name string) (any, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Has reports whether name is present.
func (s *ValueSet) Has(name string) bool {
	_, ok := s.values[name]
	return ok
}

// Names returns the parameter names in declaration order.
func (s *ValueSet) Names() []string {
	return append([]string(nil), s.keys...)
}

// Snapshot returns a plain map copy of the current values.
func (s *ValueSet) Snapshot() map[string]any {
	out := make(map[string]any, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// String renders the values in declaration order, for logs and tests.
func (s *ValueSet) String() string {
	out := "{"
	for i, k := range s.keys {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%s: %v", k, s.values[k])
	}
	return out + "}"
}

// =============================================================================
// Descriptor Sources
// =============================================================================

// CitationText is one explicitly registered citation entry: the structured
// comment of a single citation method of the original tools class.
type CitationText struct {
	// Method is the citation key, unique within the declaring class.
	Method string

	// Text is the structured text of the citation: either a YAML mapping
	// with citation keys, or free description text optionally followed by
	// bibtex: and endnote: blocks.
	Text string
}

// Descriptor is one tools class in a plugin's ancestry, declared statically.
// A plugin's chain is ordered most-base first; the most-derived descriptor
// supplies the plugin's own synopsis, warnings and module path.
type Descriptor struct {
	// Class is the tools class name, e.g. "MedianFilterTools".
	Class string

	// Synopsis is the class-level descriptive text.
	Synopsis string

	// Parameters is the YAML parameter block. Empty is allowed; classes
	// without parameters still contribute synopsis or citations.
	Parameters string

	// Citations lists the class's citation entries. Discovery by method
	// name prefix is replaced by this explicit registration list.
	Citations []CitationText

	// Warnings is configuration warning text; paragraphs are separated by
	// blank lines.
	Warnings string

	// ModulePath locates the plugin under the documentation root, e.g.
	// "/plugins/filters/denoising/median_filter".
	ModulePath string
}
