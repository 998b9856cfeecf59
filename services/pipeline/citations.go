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
	"log/slog"
	"strings"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// Citation Aggregation
// =============================================================================

// Citation is one bibliographic record a tools class declares about the
// techniques it implements.
type Citation struct {
	// Name is the aggregation key, the declaring citation entry's method
	// name.
	Name string

	// ShortNameArticle is the short article title when declared.
	ShortNameArticle string

	// Description summarises what the cited work contributes. Required.
	Description string

	// Bibtex is the BibTeX block with embedded newlines preserved.
	Bibtex string

	// Endnote is the EndNote block with embedded newlines preserved.
	Endnote string

	// DOI is the digital object identifier when declared.
	DOI string

	// Dependency optionally restricts the citation to a parameter value,
	// e.g. only when a particular algorithm is selected.
	Dependency any
}

// citationKeys is the closed set of accepted citation record keys.
var citationKeys = map[string]bool{
	"short_name_article": true,
	"description":        true,
	"bibtex":             true,
	"endnote":            true,
	"doi":                true,
	"dependency":         true,
}

// CitationSet is the ordered citation mapping aggregated across a plugin's
// descriptor chain, keyed by citation name.
type CitationSet struct {
	keys  []string
	cites map[string]*Citation
}

// NewCitationSet returns an empty citation mapping.
func NewCitationSet() *CitationSet {
	return &CitationSet{cites: make(map[string]*Citation)}
}

// Set inserts or overrides the citation for name, keeping its position.
func (s *CitationSet) Set(name string, c *Citation) {
	if _, ok := s.cites[name]; !ok {
		s.keys = append(s.keys, name)
	}
	s.cites[name] = c
}

// Get returns the citation for name.
func (s *CitationSet) Get(name string) (*Citation, bool) {
	c, ok := s.cites[name]
	return c, ok
}

// Names returns the citation names in aggregation order.
func (s *CitationSet) Names() []string {
	return append([]string(nil), s.keys...)
}

// Len returns the number of citations.
func (s *CitationSet) Len() int { return len(s.keys) }

// aggregateCitations collects the citation entries of every descriptor in
// the chain. Invalid records are dropped with a warning and never abort the
// build; a plugin without citations is still a valid plugin.
func aggregateCitations(chain []Descriptor, logger *slog.Logger) *CitationSet {
	set := NewCitationSet()
	for _, desc := range chain {
		for _, entry := range desc.Citations {
			cite, err := parseCitation(entry)
			if err != nil {
				logger.Warn("citation was not saved",
					slog.String("class", desc.Class),
					slog.String("method", entry.Method),
					slog.String("reason", err.Error()))
				continue
			}
			set.Set(cite.Name, cite)
		}
	}
	return set
}

// parseCitation reads one citation entry's structured text. The text is
// either a YAML mapping over the accepted citation keys, or free
// description text followed by optional bibtex: and endnote: blocks, the
// form the original docstrings carried. Records missing a description or
// carrying unrecognised keys are rejected.
func parseCitation(entry CitationText) (*Citation, error) {
	fields, err := citationFields(entry.Text)
	if err != nil {
		return nil, err
	}

	var unknown []string
	for key := range fields {
		if !citationKeys[key] {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("unrecognised keys %v; accepted keys are %s",
			unknown, strings.Join(sortedKeys(citationKeys), ", "))
	}
	description, _ := fields["description"].(string)
	if strings.TrimSpace(description) == "" {
		return nil, fmt.Errorf("description is required")
	}

	cite := &Citation{
		Name:        entry.Method,
		Description: strings.TrimSpace(description),
		Dependency:  fields["dependency"],
	}
	if v, ok := fields["short_name_article"].(string); ok {
		cite.ShortNameArticle = v
	}
	if v, ok := fields["bibtex"].(string); ok {
		cite.Bibtex = strings.Trim(v, "\n")
	}
	if v, ok := fields["endnote"].(string); ok {
		cite.Endnote = strings.Trim(v, "\n")
	}
	if v, ok := fields["doi"].(string); ok {
		cite.DOI = v
	}
	return cite, nil
}

// citationFields extracts the key/value fields of a citation text. The
// bibtex and endnote blocks keep their embedded newlines; the description
// collapses to a single line.
func citationFields(text string) (map[string]any, error) {
	if looksLikeMapping(text) {
		var fields map[string]any
		if err := yaml.Unmarshal([]byte(text), &fields); err != nil {
			return nil, fmt.Errorf("citation text is not a mapping: %w", err)
		}
		return fields, nil
	}

	// Docstring form: description text, then bibtex:, then endnote:.
	fields := make(map[string]any)
	rest := text
	if before, after, found := strings.Cut(rest, "bibtex:"); found {
		fields["description"] = collapseText(before)
		if bib, end, hasEnd := strings.Cut(after, "endnote:"); hasEnd {
			fields["bibtex"] = bib
			fields["endnote"] = end
		} else {
			fields["bibtex"] = after
		}
		return fields, nil
	}
	if before, after, found := strings.Cut(rest, "endnote:"); found {
		fields["description"] = collapseText(before)
		fields["endnote"] = after
		return fields, nil
	}
	fields["description"] = collapseText(rest)
	return fields, nil
}

// looksLikeMapping reports whether the citation text opens with a known
// citation key, meaning it is already a YAML mapping rather than free
// description text.
func looksLikeMapping(text string) bool {
	trimmed := strings.TrimSpace(text)
	for key := range citationKeys {
		if strings.HasPrefix(trimmed, key+":") {
			return true
		}
	}
	return false
}
