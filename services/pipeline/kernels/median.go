// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package kernels holds the numeric frame operations the built-in plugins
// execute. Each kernel is a pipeline.Processor factory that reads its
// configuration from the instance's resolved parameter values, so a swept
// parameter reaches the kernel without any plumbing of its own.
package kernels

import (
	"context"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/AleutianAI/beamtools/services/pipeline"
)

// =============================================================================
// Median Filter
// =============================================================================

// MedianFilter returns a processor applying a 1D sliding-window median of
// the instance's kernel_size to the frame. Edges are clamped.
func MedianFilter() pipeline.Processor {
	return func(ctx context.Context, params map[string]any, frame []float64) ([]float64, error) {
		size, err := intParam(params, "kernel_size")
		if err != nil {
			return nil, err
		}
		if size < 1 || size%2 == 0 {
			return nil, fmt.Errorf("kernel_size must be a positive odd number, got %d", size)
		}

		half := size / 2
		out := make([]float64, len(frame))
		window := make([]float64, 0, size)
		for i := range frame {
			window = window[:0]
			for j := i - half; j <= i+half; j++ {
				window = append(window, frame[clamp(j, len(frame))])
			}
			sort.Float64s(window)
			out[i] = stat.Quantile(0.5, stat.Empirical, window, nil)
		}
		return out, nil
	}
}

func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// intParam reads a parameter value as an int. YAML scalars arrive as int,
// but a swept value may have been parsed as float64.
func intParam(params map[string]any, name string) (int, error) {
	v, ok := params[name]
	if !ok {
		return 0, fmt.Errorf("parameter %s is not set", name)
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	default:
		return 0, fmt.Errorf("parameter %s is not numeric: %T", name, v)
	}
}
