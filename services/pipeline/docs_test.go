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
	"os"
	"path/filepath"
	"testing"
)

func TestNormaliseWarnings(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"single wrapped paragraph",
			"The filter is sensitive\nto the kernel size.",
			"The filter is sensitive to the kernel size."},
		{"two paragraphs",
			"First warning\nwrapped over lines.\n\nSecond warning.",
			"First warning wrapped over lines.\nSecond warning."},
		{"blank paragraphs dropped",
			"\n\nOnly one warning.\n\n\n\n",
			"Only one warning."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := normaliseWarnings(tc.in); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestBuildDocumentationUsesMostDerived(t *testing.T) {
	chain := []Descriptor{
		{Class: "BaseTools", Synopsis: "Base synopsis.", Warnings: "Base warning."},
		{Class: "DerivedTools", Synopsis: "Derived synopsis.", Warnings: "Derived warning."},
	}
	doc := buildDocumentation(chain, "", "", discardLogger)
	if doc.Verbose != "Derived synopsis." {
		t.Errorf("verbose = %q", doc.Verbose)
	}
	if doc.Warn != "Derived warning." {
		t.Errorf("warn = %q", doc.Warn)
	}
	if doc.DocLink != "" {
		t.Errorf("doc link = %q, want empty without a doc root", doc.DocLink)
	}
}

func TestDocLink(t *testing.T) {
	docRoot := t.TempDir()
	modulePath := "/plugins/filters/denoising/median_filter"

	// No reference file yet: no link.
	if link, ok := docLink(modulePath, docRoot, ""); ok {
		t.Fatalf("unexpected link %q before the reference file exists", link)
	}

	page := filepath.Join(docRoot, "plugins", "filters", "denoising", "median_filter_doc.rst")
	if err := os.MkdirAll(filepath.Dir(page), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(page, []byte("Median filter\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	link, ok := docLink(modulePath, docRoot, "")
	if !ok {
		t.Fatal("expected a link once the reference file exists")
	}
	want := DefaultDocBaseURL + modulePath + "_doc"
	if link != want {
		t.Errorf("link = %q, want %q", link, want)
	}
}

func TestDocLinkCustomBaseURL(t *testing.T) {
	docRoot := t.TempDir()
	if err := os.WriteFile(filepath.Join(docRoot, "median_doc.rst"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	link, ok := docLink("/median", docRoot, "https://docs.example.org")
	if !ok {
		t.Fatal("expected a link")
	}
	if link != "https://docs.example.org/median_doc" {
		t.Errorf("link = %q", link)
	}
}
