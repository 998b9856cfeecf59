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
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// =============================================================================
// Sweep Runner
// =============================================================================

// Processor is one plugin's frame operation: a pure function over an input
// frame and the instance's resolved parameter values.
type Processor func(ctx context.Context, params map[string]any, frame []float64) ([]float64, error)

// RunResult is the outcome of one execution instance of a swept plugin.
type RunResult struct {
	// RunID identifies the execution instance in logs.
	RunID string

	// Indices is the sweep index vector the instance was run at.
	Indices []int

	// Params is the instance's projected parameter mapping.
	Params map[string]any

	// Output is the processed frame.
	Output []float64
}

// Runner is a minimal orchestration collaborator: it implements Host to
// learn about expanded sweep dimensions and runs a Processor once per
// execution instance.
//
// Thread Safety: safe for concurrent registration; Run itself is
// sequential.
type Runner struct {
	mu          sync.Mutex
	multiParams map[int]MultiParamEntry
	extraDims   []int
	logger      *slog.Logger
}

// NewRunner returns a Runner ready to be handed to ToolsOptions.Host.
func NewRunner(logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		multiParams: make(map[int]MultiParamEntry),
		logger:      logger,
	}
}

// AlterMultiParams records a sweep entry at the given dimension index.
func (r *Runner) AlterMultiParams(index int, entry MultiParamEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.multiParams[index] = entry
}

// AppendExtraDims announces one extra execution dimension.
func (r *Runner) AppendExtraDims(cardinality int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.extraDims = append(r.extraDims, cardinality)
}

// InstanceCount returns how many times the plugin must run: the product of
// the registered sweep cardinalities, and one for an unswept plugin.
func (r *Runner) InstanceCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 1
	for _, dim := range r.extraDims {
		count *= dim
	}
	return count
}

// Run executes the processor once per sweep instance of the plugin,
// projecting the instance parameters from the tools. Results keep sweep
// enumeration order (last dimension fastest).
func (r *Runner) Run(ctx context.Context, tools *Tools, frame []float64, proc Processor) ([]RunResult, error) {
	r.mu.Lock()
	dims := append([]int(nil), r.extraDims...)
	r.mu.Unlock()

	var results []RunResult
	indices := make([]int, len(dims))
	for {
		params, err := tools.ParametersForInstance(indices)
		if err != nil {
			return nil, err
		}
		runID := uuid.NewString()
		r.logger.Debug("running plugin instance",
			slog.String("plugin", tools.Plugin()),
			slog.String("run_id", runID),
			slog.Any("indices", indices))
		output, err := proc(ctx, params, frame)
		if err != nil {
			return nil, fmt.Errorf("plugin %s instance %v: %w", tools.Plugin(), indices, err)
		}
		results = append(results, RunResult{
			RunID:   runID,
			Indices: append([]int(nil), indices...),
			Params:  params,
			Output:  output,
		})
		if !nextIndex(indices, dims) {
			break
		}
	}
	return results, nil
}

// nextIndex advances the index vector odometer-style; false means the
// enumeration is complete.
func nextIndex(indices, dims []int) bool {
	for i := len(indices) - 1; i >= 0; i-- {
		indices[i]++
		if indices[i] < dims[i] {
			return true
		}
		indices[i] = 0
	}
	return false
}
