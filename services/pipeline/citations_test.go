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
	"strings"
	"testing"
)

const astraCitation = `The reconstruction used the ASTRA toolbox.

bibtex:
@article{van2016fast,
    title={Fast and flexible X-ray tomography},
    year={2016}
}

endnote:
%0 Journal Article
%T Fast and flexible X-ray tomography
%D 2016
`

func TestAggregateCitations(t *testing.T) {
	chain := []Descriptor{
		{
			Class: "BaseReconTools",
			Citations: []CitationText{
				{Method: "process_frames", Text: astraCitation},
			},
		},
		{
			Class: "AstraReconTools",
			Citations: []CitationText{
				{Method: "astra_setup", Text: "description: The projector setup follows the toolbox geometry conventions."},
			},
		},
	}
	set := aggregateCitations(chain, discardLogger)
	if set.Len() != 2 {
		t.Fatalf("len = %d, want 2", set.Len())
	}
	// Citations keep chain aggregation order and key by method name.
	if got := set.Names(); !reflect.DeepEqual(got, []string{"process_frames", "astra_setup"}) {
		t.Errorf("names = %v", got)
	}

	cite, _ := set.Get("process_frames")
	if cite.Description != "The reconstruction used the ASTRA toolbox." {
		t.Errorf("description = %q", cite.Description)
	}
	// The bibtex and endnote blocks keep their embedded newlines.
	if !strings.Contains(cite.Bibtex, "@article{van2016fast,\n") {
		t.Errorf("bibtex = %q", cite.Bibtex)
	}
	if !strings.Contains(cite.Endnote, "%0 Journal Article\n") {
		t.Errorf("endnote = %q", cite.Endnote)
	}
}

func TestAggregateCitationsDropsInvalid(t *testing.T) {
	chain := []Descriptor{{
		Class: "SloppyTools",
		Citations: []CitationText{
			// No description at all.
			{Method: "nameless", Text: "bibtex:\n@misc{x}\n"},
			// Unrecognised record key.
			{Method: "typo", Text: "description: Fine.\nauthors: Someone."},
			// Valid record survives.
			{Method: "kept", Text: "description: A valid citation."},
		},
	}}
	set := aggregateCitations(chain, discardLogger)
	if set.Len() != 1 {
		t.Fatalf("len = %d, want 1 (invalid records dropped, never fatal)", set.Len())
	}
	if _, ok := set.Get("kept"); !ok {
		t.Error("the valid citation should survive")
	}
}

func TestCitationOverrideByMethodName(t *testing.T) {
	chain := []Descriptor{
		{
			Class: "BaseTools",
			Citations: []CitationText{
				{Method: "process_frames", Text: "description: The base technique."},
			},
		},
		{
			Class: "DerivedTools",
			Citations: []CitationText{
				{Method: "process_frames", Text: "description: The refined technique."},
			},
		},
	}
	set := aggregateCitations(chain, discardLogger)
	if set.Len() != 1 {
		t.Fatalf("len = %d, want 1", set.Len())
	}
	cite, _ := set.Get("process_frames")
	if cite.Description != "The refined technique." {
		t.Errorf("description = %q, want the derived override", cite.Description)
	}
}

func TestCitationMappingForm(t *testing.T) {
	text := `description: Mapping-form citation.
doi: 10.1000/xyz123
short_name_article: Fast tomography
`
	chain := []Descriptor{{
		Class:     "MappedTools",
		Citations: []CitationText{{Method: "process_frames", Text: text}},
	}}
	set := aggregateCitations(chain, discardLogger)
	cite, ok := set.Get("process_frames")
	if !ok {
		t.Fatal("citation missing")
	}
	if cite.DOI != "10.1000/xyz123" {
		t.Errorf("doi = %q", cite.DOI)
	}
	if cite.ShortNameArticle != "Fast tomography" {
		t.Errorf("short name = %q", cite.ShortNameArticle)
	}
}
