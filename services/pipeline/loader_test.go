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
	"io"
	"log/slog"
	"reflect"
	"strings"
	"testing"
)

// discardLogger keeps test output clean.
var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestLoadDefinitionsMergeOrder(t *testing.T) {
	chain := []Descriptor{
		{
			Class: "BaseTools",
			Parameters: `
alpha:
    visibility: basic
    dtype: int
    description: First base parameter.
    default: 1

beta:
    visibility: basic
    dtype: int
    description: Second base parameter.
    default: 2
`,
		},
		{
			Class: "DerivedTools",
			Parameters: `
beta:
    visibility: advanced
    dtype: int
    description: Overridden in the derived class.
    default: 20

gamma:
    visibility: basic
    dtype: int
    description: New in the derived class.
    default: 3
`,
		},
	}

	defs, err := loadDefinitions(chain, discardLogger)
	if err != nil {
		t.Fatalf("loadDefinitions: %v", err)
	}

	// A key keeps the position of its first declaration; new keys append.
	want := []string{"alpha", "beta", "gamma"}
	if got := defs.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("names = %v, want %v", got, want)
	}

	beta, _ := defs.Get("beta")
	if beta.Visibility != VisibilityAdvanced {
		t.Errorf("beta visibility = %s, want advanced (derived override)", beta.Visibility)
	}
	if beta.Default != 20 {
		t.Errorf("beta default = %v, want 20", beta.Default)
	}
}

func TestLoadDefinitionsEmptyBlockSkipped(t *testing.T) {
	chain := []Descriptor{
		{Class: "NoParamsTools", Parameters: "   \n"},
		{
			Class: "RealTools",
			Parameters: `
alpha:
    visibility: basic
    dtype: int
    description: The only parameter.
    default: 1
`,
		},
	}
	defs, err := loadDefinitions(chain, discardLogger)
	if err != nil {
		t.Fatalf("loadDefinitions: %v", err)
	}
	if defs.Len() != 1 {
		t.Errorf("len = %d, want 1", defs.Len())
	}
}

func TestLoadDefinitionsRejectsNonMapping(t *testing.T) {
	chain := []Descriptor{{Class: "BrokenTools", Parameters: "- a\n- b\n"}}
	_, err := loadDefinitions(chain, discardLogger)
	var parseErr *DefinitionParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("err = %v, want DefinitionParseError", err)
	}
	if parseErr.Class != "BrokenTools" {
		t.Errorf("class = %s, want BrokenTools", parseErr.Class)
	}
}

func TestLoadDefinitionsRejectsScalarRecord(t *testing.T) {
	chain := []Descriptor{{Class: "BrokenTools", Parameters: "alpha: 3\n"}}
	_, err := loadDefinitions(chain, discardLogger)
	var parseErr *DefinitionParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("err = %v, want DefinitionParseError", err)
	}
}

func TestLoadDefinitionsRejectsOversizedBlock(t *testing.T) {
	chain := []Descriptor{{
		Class:      "HugeTools",
		Parameters: strings.Repeat("#", MaxParameterBlockSize+1),
	}}
	_, err := loadDefinitions(chain, discardLogger)
	var parseErr *DefinitionParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("err = %v, want DefinitionParseError", err)
	}
}

func TestParseDefinitionStructuredDescription(t *testing.T) {
	chain := []Descriptor{{
		Class: "ReconTools",
		Parameters: `
algorithm:
    visibility: intermediate
    dtype: str
    description:
        summary: The reconstruction algorithm.
        verbose: Choose the algorithm matching
            your acquisition geometry.
        options:
            FBP: Filtered backprojection.
            SIRT: Simultaneous iterative reconstruction technique.
    options: [FBP, SIRT]
    default: FBP
`,
	}}
	defs, err := loadDefinitions(chain, discardLogger)
	if err != nil {
		t.Fatalf("loadDefinitions: %v", err)
	}
	def, _ := defs.Get("algorithm")
	if !def.Description.IsStructured() {
		t.Fatal("description should be structured")
	}
	if def.Description.Summary != "The reconstruction algorithm." {
		t.Errorf("summary = %q", def.Description.Summary)
	}
	// Wrapped verbose text folds to one line.
	if def.Description.Verbose != "Choose the algorithm matching your acquisition geometry." {
		t.Errorf("verbose = %q", def.Description.Verbose)
	}
	if def.Description.Options["SIRT"] != "Simultaneous iterative reconstruction technique." {
		t.Errorf("option description = %q", def.Description.Options["SIRT"])
	}
}

func TestParseDefinitionDependentDefault(t *testing.T) {
	chain := []Descriptor{{
		Class: "ReconTools",
		Parameters: `
algorithm:
    visibility: intermediate
    dtype: str
    description: The reconstruction algorithm.
    options: [FBP, SIRT]
    default: FBP

n_iterations:
    visibility: basic
    dtype: int
    description: Iteration count for the chosen algorithm.
    default:
        algorithm:
            FBP: 1
            SIRT: 100
`,
	}}
	defs, err := loadDefinitions(chain, discardLogger)
	if err != nil {
		t.Fatalf("loadDefinitions: %v", err)
	}
	def, _ := defs.Get("n_iterations")
	dd, ok := def.Default.(*DependentDefault)
	if !ok {
		t.Fatalf("default = %T, want *DependentDefault", def.Default)
	}
	if dd.Parent != "algorithm" {
		t.Errorf("parent = %s, want algorithm", dd.Parent)
	}
	if dd.Branches["SIRT"] != 100 {
		t.Errorf("SIRT branch = %v, want 100", dd.Branches["SIRT"])
	}
}

func TestParseDefinitionDependency(t *testing.T) {
	chain := []Descriptor{{
		Class: "ReconTools",
		Parameters: `
algorithm:
    visibility: intermediate
    dtype: str
    description: The reconstruction algorithm.
    options: [FBP, SIRT]
    default: FBP

res_norm:
    visibility: intermediate
    dtype: bool
    description: Output the residual norm.
    default: false
    dependency:
        algorithm: [SIRT]

flat_use:
    visibility: intermediate
    dtype: bool
    description: Bare-name dependency form.
    default: false
    dependency: algorithm
`,
	}}
	defs, err := loadDefinitions(chain, discardLogger)
	if err != nil {
		t.Fatalf("loadDefinitions: %v", err)
	}
	resNorm, _ := defs.Get("res_norm")
	if resNorm.Dependency == nil || resNorm.Dependency.Parent != "algorithm" {
		t.Fatalf("res_norm dependency = %+v", resNorm.Dependency)
	}
	if !reflect.DeepEqual(resNorm.Dependency.Allowed, []string{"SIRT"}) {
		t.Errorf("allowed = %v, want [SIRT]", resNorm.Dependency.Allowed)
	}
	flatUse, _ := defs.Get("flat_use")
	if flatUse.Dependency == nil || flatUse.Dependency.Allowed != nil {
		t.Errorf("bare-name dependency should carry a nil allowed set: %+v", flatUse.Dependency)
	}
}
