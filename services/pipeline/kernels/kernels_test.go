// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package kernels

import (
	"context"
	"math"
	"testing"
)

func TestMedianFilterRemovesSpike(t *testing.T) {
	proc := MedianFilter()
	frame := []float64{1, 1, 100, 1, 1}
	out, err := proc(context.Background(), map[string]any{"kernel_size": 3}, frame)
	if err != nil {
		t.Fatalf("median filter failed: %v", err)
	}
	want := []float64{1, 1, 1, 1, 1}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("out[%d] = %v, want %v", i, out[i], want[i])
		}
	}
	// Input frame must be untouched.
	if frame[2] != 100 {
		t.Errorf("input frame was modified: %v", frame)
	}
}

func TestMedianFilterRejectsEvenKernel(t *testing.T) {
	proc := MedianFilter()
	if _, err := proc(context.Background(), map[string]any{"kernel_size": 4}, []float64{1, 2, 3}); err == nil {
		t.Fatal("expected an error for an even kernel_size")
	}
}

func TestMedianFilterSweptKernelSize(t *testing.T) {
	// A swept value arrives as float64; the kernel must accept it.
	proc := MedianFilter()
	if _, err := proc(context.Background(), map[string]any{"kernel_size": float64(3)}, []float64{1, 2, 3}); err != nil {
		t.Fatalf("median filter rejected a float kernel_size: %v", err)
	}
}

func TestMonitorCorrection(t *testing.T) {
	proc := MonitorCorrection([]float64{2, 2, 2})
	params := map[string]any{
		"nominator_scale":    1.0,
		"nominator_offset":   0.0,
		"denominator_scale":  1.0,
		"denominator_offset": 0.0,
	}
	out, err := proc(context.Background(), params, []float64{4, 8})
	if err != nil {
		t.Fatalf("monitor correction failed: %v", err)
	}
	if math.Abs(out[0]-2) > 1e-12 || math.Abs(out[1]-4) > 1e-12 {
		t.Errorf("got %v, want [2 4]", out)
	}
}

func TestMonitorCorrectionZeroDenominator(t *testing.T) {
	proc := MonitorCorrection([]float64{1})
	params := map[string]any{
		"nominator_scale":    1.0,
		"nominator_offset":   0.0,
		"denominator_scale":  0.0,
		"denominator_offset": 0.0,
	}
	if _, err := proc(context.Background(), params, []float64{1}); err == nil {
		t.Fatal("expected an error for a zero denominator")
	}
}
