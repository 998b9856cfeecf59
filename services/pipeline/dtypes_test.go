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
	"reflect"
	"testing"
)

func TestParseLiteral(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want any
	}{
		{"none", "None", nil},
		{"null", "null", nil},
		{"true", "True", true},
		{"false", "false", false},
		{"int", "3", 3},
		{"negative int", "-7", -7},
		{"float", "2.5", 2.5},
		{"scientific", "1e-3", 0.001},
		{"single quoted", "'tomo'", "tomo"},
		{"double quoted", `"tomo"`, "tomo"},
		{"tuple", "(1, 2)", []any{1, 2}},
		{"list", "[1, 2.5]", []any{1, 2.5}},
		{"nested none", "[None, None]", []any{nil, nil}},
		{"plain word", "fixed", "fixed"},
		{"expression kept verbatim", "np.nan_to_num(-np.log(sino))", "np.nan_to_num(-np.log(sino))"},
		{"empty string", "", ""},
		{"already typed int", 5, 5},
		{"already typed bool", true, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseLiteral(tc.in)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("ParseLiteral(%v) = %#v, want %#v", tc.in, got, tc.want)
			}
		})
	}
}

func TestParseLiteralMapping(t *testing.T) {
	got := ParseLiteral("{a: 1, b: None}")
	m, ok := got.(map[string]any)
	if !ok {
		t.Fatalf("got %T, want map", got)
	}
	if m["a"] != 1 || m["b"] != nil {
		t.Errorf("m = %v", m)
	}
}

func TestElementKind(t *testing.T) {
	cases := []struct {
		dtypes []string
		want   ElementKind
	}{
		{[]string{"int"}, KindInt},
		{[]string{"float"}, KindFloat},
		{[]string{"bool"}, KindBool},
		{[]string{"str"}, KindString},
		{[]string{"filepath"}, KindString},
		{[]string{"list"}, KindAny},
		{nil, KindAny},
	}
	for _, tc := range cases {
		if got := elementKind(tc.dtypes); got != tc.want {
			t.Errorf("elementKind(%v) = %v, want %v", tc.dtypes, got, tc.want)
		}
	}
}

func TestParseElement(t *testing.T) {
	if v, err := parseElement(" 3 ", KindInt); err != nil || v != 3 {
		t.Errorf("int element = %v, %v", v, err)
	}
	if v, err := parseElement("2", KindFloat); err != nil || v != 2.0 {
		t.Errorf("float element = %v, %v", v, err)
	}
	if v, err := parseElement("True", KindBool); err != nil || v != true {
		t.Errorf("bool element = %v, %v", v, err)
	}
	if _, err := parseElement("maybe", KindBool); err == nil {
		t.Error("expected an error for a non-boolean segment")
	}
	if _, err := parseElement("x", KindInt); err == nil {
		t.Error("expected an error for a non-integer segment")
	}
}
