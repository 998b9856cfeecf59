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
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// Dtype Registry
// =============================================================================

// ElementKind classifies how a single value of a dtype is parsed, both for
// literal coercion of declared defaults and for the segments of a
// multi-valued override.
type ElementKind int

const (
	// KindAny accepts any literal without conversion.
	KindAny ElementKind = iota

	// KindInt parses base-10 integers.
	KindInt

	// KindFloat parses floating point numbers (integers widen to float).
	KindFloat

	// KindBool parses true/false (and the Python-style True/False the
	// original process lists carry).
	KindBool

	// KindString passes text through unchanged.
	KindString
)

// dtypeRegistry is the fixed set of accepted type tags for parameter
// definitions. A dtype token outside this registry is a fatal schema error.
var dtypeRegistry = map[string]ElementKind{
	"int":      KindInt,
	"float":    KindFloat,
	"bool":     KindBool,
	"str":      KindString,
	"list":     KindAny,
	"dict":     KindAny,
	"tuple":    KindAny,
	"filepath": KindString,
	"dir":      KindString,
	"h5path":   KindString,
	"nptype":   KindString,
	"preview":  KindAny,
	"range":    KindAny,
	"options":  KindString,
}

// IsValidDtype reports whether token is in the dtype registry.
func IsValidDtype(token string) bool {
	_, ok := dtypeRegistry[token]
	return ok
}

// DtypeNames returns the registry tokens in sorted order, for error output.
func DtypeNames() []string {
	names := make([]string, 0, len(dtypeRegistry))
	for k := range dtypeRegistry {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// elementKind maps the first dtype token of a definition to its element
// parser. Unknown tokens (already rejected by validation) fall back to
// KindAny.
func elementKind(dtypes []string) ElementKind {
	if len(dtypes) == 0 {
		return KindAny
	}
	if k, ok := dtypeRegistry[dtypes[0]]; ok {
		return k
	}
	return KindAny
}

// =============================================================================
// Literal Coercion
// =============================================================================

// ParseLiteral converts the stored string form of a declared default into a
// native value: int, float, bool, string, tuple/list (as []any), mapping
// (as map[string]any) or nil for None. Values that are not strings pass
// through unchanged; the YAML loader has already typed them.
//
// This is a closed-set parser applied once at definition load time, so all
// later stages work over strongly-typed values.
func ParseLiteral(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	text := strings.TrimSpace(s)
	switch text {
	case "None", "null", "":
		if text == "" {
			return s
		}
		return nil
	case "True", "true":
		return true
	case "False", "false":
		return false
	}

	if i, err := strconv.Atoi(text); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return f
	}

	// Quoted strings shed their quotes.
	if len(text) >= 2 {
		if (text[0] == '\'' && text[len(text)-1] == '\'') ||
			(text[0] == '"' && text[len(text)-1] == '"') {
			return text[1 : len(text)-1]
		}
	}

	// Tuples are not YAML; rewrite to a flow sequence before parsing.
	if strings.HasPrefix(text, "(") && strings.HasSuffix(text, ")") {
		if seq, err := parseFlowSequence("[" + text[1:len(text)-1] + "]"); err == nil {
			return seq
		}
		return s
	}
	if strings.HasPrefix(text, "[") && strings.HasSuffix(text, "]") {
		if seq, err := parseFlowSequence(text); err == nil {
			return seq
		}
		return s
	}
	if strings.HasPrefix(text, "{") && strings.HasSuffix(text, "}") {
		var m map[string]any
		if err := yaml.Unmarshal([]byte(text), &m); err == nil {
			return coerceMapValues(m)
		}
		return s
	}
	return s
}

// parseFlowSequence parses a YAML flow sequence, coercing the elements.
func parseFlowSequence(text string) ([]any, error) {
	var seq []any
	if err := yaml.Unmarshal([]byte(text), &seq); err != nil {
		return nil, err
	}
	for i, e := range seq {
		seq[i] = ParseLiteral(e)
	}
	return seq, nil
}

func coerceMapValues(m map[string]any) map[string]any {
	for k, v := range m {
		m[k] = ParseLiteral(v)
	}
	return m
}

// =============================================================================
// Element Parsing for Multi-Valued Overrides
// =============================================================================

// parseElement converts one segment of a multi-valued override to the
// element type implied by the parameter's declared dtype.
func parseElement(segment string, kind ElementKind) (any, error) {
	text := strings.TrimSpace(segment)
	switch kind {
	case KindInt:
		i, err := strconv.Atoi(text)
		if err != nil {
			return nil, fmt.Errorf("not an integer")
		}
		return i, nil
	case KindFloat:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("not a number")
		}
		return f, nil
	case KindBool:
		switch text {
		case "True", "true", "1":
			return true, nil
		case "False", "false", "0":
			return false, nil
		}
		return nil, fmt.Errorf("not a boolean")
	default:
		if text == "" {
			return nil, fmt.Errorf("empty segment")
		}
		return text, nil
	}
}
