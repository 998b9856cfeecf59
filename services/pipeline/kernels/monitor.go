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
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/AleutianAI/beamtools/services/pipeline"
)

// =============================================================================
// Monitor Correction
// =============================================================================

// MonitorCorrection returns a processor normalising each frame value by the
// frame's mean monitor count:
//
//	out = (nominator_scale*frame + nominator_offset) /
//	      (denominator_scale*mean(monitor) + denominator_offset)
//
// The monitor series is captured at construction; the scales and offsets
// come from the instance's parameter values.
func MonitorCorrection(monitor []float64) pipeline.Processor {
	return func(ctx context.Context, params map[string]any, frame []float64) ([]float64, error) {
		if len(monitor) == 0 {
			return nil, fmt.Errorf("monitor series is empty")
		}
		nomScale, err := floatParam(params, "nominator_scale")
		if err != nil {
			return nil, err
		}
		nomOffset, err := floatParam(params, "nominator_offset")
		if err != nil {
			return nil, err
		}
		denScale, err := floatParam(params, "denominator_scale")
		if err != nil {
			return nil, err
		}
		denOffset, err := floatParam(params, "denominator_offset")
		if err != nil {
			return nil, err
		}

		den := denScale*stat.Mean(monitor, nil) + denOffset
		if den == 0 {
			return nil, fmt.Errorf("monitor correction denominator is zero")
		}

		out := make([]float64, len(frame))
		copy(out, frame)
		floats.Scale(nomScale, out)
		floats.AddConst(nomOffset, out)
		floats.Scale(1/den, out)
		return out, nil
	}
}

func floatParam(params map[string]any, name string) (float64, error) {
	v, ok := params[name]
	if !ok {
		return 0, fmt.Errorf("parameter %s is not set", name)
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("parameter %s is not numeric: %T", name, v)
	}
}
