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
// Default Resolution
// =============================================================================

// defaultResolver produces the flat current-value mapping from a definition
// table. Literal defaults copy straight across; dependency-descriptor
// defaults resolve the parent's value first (which may itself be
// descriptor-driven) and then select the matching branch.
//
// A visited set guards the recursion: circular descriptor chains fail fast
// with CyclicDependencyError instead of recursing indefinitely.
type defaultResolver struct {
	defs     *ParamMap
	values   *ValueSet
	pending  map[string]bool
	visiting map[string]bool
	path     []string
}

func newDefaultResolver(defs *ParamMap, values *ValueSet) *defaultResolver {
	return &defaultResolver{
		defs:     defs,
		values:   values,
		pending:  make(map[string]bool),
		visiting: make(map[string]bool),
	}
}

// resolveAll populates the value set with every parameter's resolved
// default, preserving declaration order. Resolution is idempotent: running
// it again over an untouched value set yields the same mapping.
func (r *defaultResolver) resolveAll() error {
	// First pass establishes ordering and settles every literal default so
	// parents are available to their dependents regardless of declaration
	// order.
	r.defs.Each(func(name string, def *Definition) {
		if _, ok := def.Default.(*DependentDefault); ok {
			r.pending[name] = true
			r.values.Set(name, nil)
			return
		}
		r.values.Set(name, def.Default)
	})

	for _, name := range r.defs.Names() {
		if !r.pending[name] {
			continue
		}
		if _, err := r.resolve(name); err != nil {
			return err
		}
	}
	return nil
}

// resolve returns the settled value for name, resolving its descriptor
// default if it is still pending.
func (r *defaultResolver) resolve(name string) (any, error) {
	if !r.pending[name] {
		v, _ := r.values.Get(name)
		return v, nil
	}
	if r.visiting[name] {
		return nil, &CyclicDependencyError{Cycle: append(append([]string(nil), r.path...), name)}
	}
	r.visiting[name] = true
	r.path = append(r.path, name)
	defer func() {
		delete(r.visiting, name)
		r.path = r.path[:len(r.path)-1]
	}()

	def, _ := r.defs.Get(name)
	value, err := r.resolveValue(name, def.Default)
	if err != nil {
		return nil, err
	}
	r.values.Set(name, value)
	delete(r.pending, name)
	return value, nil
}

// resolveValue settles one default value, following dependency descriptors
// of any depth.
func (r *defaultResolver) resolveValue(owner string, value any) (any, error) {
	dd, ok := value.(*DependentDefault)
	if !ok {
		return value, nil
	}
	if _, exists := r.defs.Get(dd.Parent); !exists {
		return nil, &UnknownDependencyError{Param: owner, Parent: dd.Parent}
	}
	parentValue, err := r.resolve(dd.Parent)
	if err != nil {
		return nil, err
	}
	branch, ok := matchBranch(dd.Branches, parentValue)
	if !ok {
		return nil, fmt.Errorf("parameter %s has no default branch for %s=%v",
			owner, dd.Parent, parentValue)
	}
	return r.resolveValue(owner, branch)
}

// defaultFor recomputes the declared default of one parameter against the
// current values, used when an override resets a parameter to "default".
func defaultFor(defs *ParamMap, values *ValueSet, name string) (any, error) {
	def, ok := defs.Get(name)
	if !ok {
		return nil, fmt.Errorf("no definition for parameter %s", name)
	}
	r := newDefaultResolver(defs, values)
	return r.resolveValue(name, def.Default)
}

// matchBranch looks the stringified parent value up in the branch map. Bool
// values also match their capitalised spelling, which the original process
// lists carry.
func matchBranch(branches map[string]any, parentValue any) (any, bool) {
	if v, ok := branches[stringifyValue(parentValue)]; ok {
		return v, true
	}
	if b, isBool := parentValue.(bool); isBool {
		if b {
			v, ok := branches["True"]
			return v, ok
		}
		v, ok := branches["False"]
		return v, ok
	}
	return nil, false
}

// stringifyValue renders a parameter value for branch and dependency
// matching.
func stringifyValue(v any) string {
	if v == nil {
		return "None"
	}
	return fmt.Sprint(v)
}
