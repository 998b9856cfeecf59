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
	"errors"
	"reflect"
	"testing"
)

// defsFromYAML builds a definition table from one parameter block.
func defsFromYAML(t *testing.T, block string) *ParamMap {
	t.Helper()
	defs, err := loadDefinitions([]Descriptor{{Class: "TestTools", Parameters: block}}, discardLogger)
	if err != nil {
		t.Fatalf("loadDefinitions: %v", err)
	}
	return defs
}

func TestResolveDependentDefaultChain(t *testing.T) {
	// a's default follows b, whose default follows c. The declaration
	// order is deliberately dependents-first.
	defs := defsFromYAML(t, `
a:
    visibility: basic
    dtype: int
    description: Depends on b.
    default:
        b:
            x: 42
            y: 7

b:
    visibility: basic
    dtype: str
    description: Depends on c.
    default:
        c:
            2: x
            1: y

c:
    visibility: basic
    dtype: int
    description: A literal default.
    default: 2
`)
	values := NewValueSet()
	if err := newDefaultResolver(defs, values).resolveAll(); err != nil {
		t.Fatalf("resolveAll: %v", err)
	}
	if v, _ := values.Get("c"); v != 2 {
		t.Errorf("c = %v, want 2", v)
	}
	if v, _ := values.Get("b"); v != "x" {
		t.Errorf("b = %v, want x", v)
	}
	if v, _ := values.Get("a"); v != 42 {
		t.Errorf("a = %v, want 42", v)
	}
	// The value set keeps declaration order.
	if got := values.Names(); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("order = %v", got)
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	block := `
algorithm:
    visibility: basic
    dtype: str
    description: The algorithm.
    options: [FBP, SIRT]
    default: FBP

n_iterations:
    visibility: basic
    dtype: int
    description: Iteration count.
    default:
        algorithm:
            FBP: 1
            SIRT: 100
`
	defs := defsFromYAML(t, block)
	first := NewValueSet()
	if err := newDefaultResolver(defs, first).resolveAll(); err != nil {
		t.Fatalf("first resolveAll: %v", err)
	}
	second := NewValueSet()
	if err := newDefaultResolver(defs, second).resolveAll(); err != nil {
		t.Fatalf("second resolveAll: %v", err)
	}
	if !reflect.DeepEqual(first.Snapshot(), second.Snapshot()) {
		t.Errorf("resolution not idempotent: %v vs %v", first.Snapshot(), second.Snapshot())
	}
}

func TestResolveBoolBranches(t *testing.T) {
	defs := defsFromYAML(t, `
use_log:
    visibility: basic
    dtype: bool
    description: Whether to take the log.
    default: true

log_func:
    visibility: basic
    dtype: str
    description: Selected by use_log.
    default:
        use_log:
            True: log
            False: linear
`)
	values := NewValueSet()
	if err := newDefaultResolver(defs, values).resolveAll(); err != nil {
		t.Fatalf("resolveAll: %v", err)
	}
	if v, _ := values.Get("log_func"); v != "log" {
		t.Errorf("log_func = %v, want log", v)
	}
}

func TestResolveCycleDetected(t *testing.T) {
	defs := defsFromYAML(t, `
a:
    visibility: basic
    dtype: int
    description: Depends on b.
    default:
        b:
            1: 2

b:
    visibility: basic
    dtype: int
    description: Depends on a.
    default:
        a:
            2: 1
`)
	err := newDefaultResolver(defs, NewValueSet()).resolveAll()
	var cycleErr *CyclicDependencyError
	if !errors.As(err, &cycleErr) {
		t.Fatalf("err = %v, want CyclicDependencyError", err)
	}
	if len(cycleErr.Cycle) < 2 {
		t.Errorf("cycle = %v, want the full path", cycleErr.Cycle)
	}
}

func TestResolveUnknownParent(t *testing.T) {
	defs := defsFromYAML(t, `
a:
    visibility: basic
    dtype: int
    description: Depends on a parameter that does not exist.
    default:
        ghost:
            1: 2
`)
	err := newDefaultResolver(defs, NewValueSet()).resolveAll()
	var unknownErr *UnknownDependencyError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("err = %v, want UnknownDependencyError", err)
	}
	if unknownErr.Param != "a" || unknownErr.Parent != "ghost" {
		t.Errorf("err = %+v", unknownErr)
	}
}

func TestResolveMissingBranch(t *testing.T) {
	defs := defsFromYAML(t, `
mode:
    visibility: basic
    dtype: str
    description: The mode.
    default: express

speed:
    visibility: basic
    dtype: int
    description: No branch for express.
    default:
        mode:
            slow: 1
            fast: 2
`)
	if err := newDefaultResolver(defs, NewValueSet()).resolveAll(); err == nil {
		t.Fatal("expected an error for a missing default branch")
	}
}

func TestDefaultForRestoresDependentDefault(t *testing.T) {
	defs := defsFromYAML(t, `
algorithm:
    visibility: basic
    dtype: str
    description: The algorithm.
    options: [FBP, SIRT]
    default: FBP

n_iterations:
    visibility: basic
    dtype: int
    description: Iteration count.
    default:
        algorithm:
            FBP: 1
            SIRT: 100
`)
	values := NewValueSet()
	if err := newDefaultResolver(defs, values).resolveAll(); err != nil {
		t.Fatalf("resolveAll: %v", err)
	}
	// With the parent overridden, restoring the dependent's default must
	// follow the current parent value, not the declared one.
	values.Set("algorithm", "SIRT")
	v, err := defaultFor(defs, values, "n_iterations")
	if err != nil {
		t.Fatalf("defaultFor: %v", err)
	}
	if v != 100 {
		t.Errorf("restored default = %v, want 100", v)
	}
}
