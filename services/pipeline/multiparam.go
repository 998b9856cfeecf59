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
	"strconv"
	"strings"
)

// =============================================================================
// Parameter Tuning (Multi-Valued Overrides)
// =============================================================================

// MultiParamEntry is one registered sweep dimension: a parameter whose
// override expanded into several concrete values. The orchestration layer
// runs the plugin once per value along the dimension.
type MultiParamEntry struct {
	// Param is the originating parameter name.
	Param string

	// Label is the derived sweep label, <param>_params.<element-type>.
	Label string

	// Values is the ordered expanded sequence.
	Values []any
}

// Host receives sweep registrations from a plugin's tools, so the
// orchestration layer learns the new size of the data and which plugin
// instances to run.
type Host interface {
	// AlterMultiParams registers the sweep entry at the given dimension
	// index.
	AlterMultiParams(index int, entry MultiParamEntry)

	// AppendExtraDims announces one extra execution dimension of the given
	// cardinality.
	AppendExtraDims(cardinality int)
}

// isMultiValued reports whether a supplied override encodes multiple
// values: the delimited list syntax is a string of semicolon-separated
// segments. List- and mapping-typed parameters never sweep; a semicolon
// there is literal content.
func isMultiValued(def *Definition, value any) bool {
	raw, ok := value.(string)
	if !ok || !strings.Contains(raw, ";") {
		return false
	}
	switch elementKind(def.Dtype) {
	case KindAny:
		return false
	}
	return true
}

// convertMultiParams expands a delimited override into an ordered sequence
// of values typed by the parameter's declared dtype. Numeric parameters may
// also use start:stop:step range segments. A malformed segment yields a
// MultiParamSyntaxError describing it; the error is returned as a value for
// the caller to surface, never panicked.
func convertMultiParams(param, raw string, kind ElementKind) ([]any, *MultiParamSyntaxError) {
	segments := strings.Split(raw, ";")
	// A trailing delimiter is accepted: "1;2;3;" means the same as "1;2;3".
	if len(segments) > 0 && strings.TrimSpace(segments[len(segments)-1]) == "" {
		segments = segments[:len(segments)-1]
	}
	if len(segments) == 0 {
		return nil, &MultiParamSyntaxError{Param: param, Segment: raw, Reason: "no values"}
	}

	var values []any
	for _, segment := range segments {
		if isRangeSegment(segment, kind) {
			expanded, err := expandRange(param, segment, kind)
			if err != nil {
				return nil, err
			}
			values = append(values, expanded...)
			continue
		}
		v, err := parseElement(segment, kind)
		if err != nil {
			return nil, &MultiParamSyntaxError{
				Param:   param,
				Segment: strings.TrimSpace(segment),
				Reason:  err.Error(),
			}
		}
		values = append(values, v)
	}
	return values, nil
}

// isRangeSegment recognises the start:stop:step shorthand for numeric
// parameters.
func isRangeSegment(segment string, kind ElementKind) bool {
	if kind != KindInt && kind != KindFloat {
		return false
	}
	return strings.Count(segment, ":") == 2
}

// expandRange expands start:stop:step into the half-open arithmetic
// sequence [start, stop).
func expandRange(param, segment string, kind ElementKind) ([]any, *MultiParamSyntaxError) {
	parts := strings.Split(segment, ":")
	nums := make([]float64, 3)
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, &MultiParamSyntaxError{
				Param:   param,
				Segment: strings.TrimSpace(segment),
				Reason:  "range bounds must be numbers",
			}
		}
		nums[i] = f
	}
	start, stop, step := nums[0], nums[1], nums[2]
	if step == 0 || (stop-start)*step < 0 {
		return nil, &MultiParamSyntaxError{
			Param:   param,
			Segment: strings.TrimSpace(segment),
			Reason:  "range step must move start towards stop",
		}
	}

	var values []any
	for v := start; (step > 0 && v < stop) || (step < 0 && v > stop); v += step {
		if kind == KindInt {
			values = append(values, int(v))
		} else {
			values = append(values, v)
		}
	}
	return values, nil
}

// sweepLabel derives the registered label for an expanded parameter from
// the Go type of its first element.
func sweepLabel(param string, values []any) string {
	elem := "string"
	if len(values) > 0 {
		switch values[0].(type) {
		case int:
			elem = "int"
		case float64:
			elem = "float64"
		case bool:
			elem = "bool"
		}
	}
	return param + "_params." + elem
}
