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
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// =============================================================================
// Documentation Aggregation
// =============================================================================

// DefaultDocBaseURL is the published documentation site the derived links
// point at.
const DefaultDocBaseURL = "https://beamtools.readthedocs.io/en/latest/documentation"

// Documentation is the help metadata aggregated for one plugin.
type Documentation struct {
	// Verbose is the most-derived descriptor's class-level text.
	Verbose string

	// Warn collects the most-derived descriptor's configuration warnings,
	// one normalised paragraph per line.
	Warn string

	// DocLink is the published documentation URL, set only when the
	// matching reference file exists under the documentation root.
	DocLink string
}

// buildDocumentation assembles the documentation record from the
// most-derived descriptor of the chain. docRoot is the on-disk
// documentation source folder; an empty root (or a missing reference file)
// leaves DocLink unset.
func buildDocumentation(chain []Descriptor, docRoot, baseURL string, logger *slog.Logger) Documentation {
	if len(chain) == 0 {
		return Documentation{}
	}
	derived := chain[len(chain)-1]
	doc := Documentation{
		Verbose: derived.Synopsis,
		Warn:    normaliseWarnings(derived.Warnings),
	}
	if link, ok := docLink(derived.ModulePath, docRoot, baseURL); ok {
		doc.DocLink = link
	} else if derived.ModulePath != "" && docRoot != "" {
		logger.Debug("no documentation page for plugin",
			slog.String("module", derived.ModulePath))
	}
	return doc
}

// normaliseWarnings collapses the embedded newlines inside each blank-line
// delimited warning paragraph, keeping one warning per line.
func normaliseWarnings(text string) string {
	var warnings []string
	for _, paragraph := range strings.Split(text, "\n\n") {
		if collapsed := collapseText(paragraph); collapsed != "" {
			warnings = append(warnings, collapsed)
		}
	}
	return strings.Join(warnings, "\n")
}

// docLink derives the published URL for a plugin's documentation page,
// conditioned on the matching restructured-text file existing under the
// documentation root.
func docLink(modulePath, docRoot, baseURL string) (string, bool) {
	if modulePath == "" || docRoot == "" {
		return "", false
	}
	if baseURL == "" {
		baseURL = DefaultDocBaseURL
	}
	page := modulePath + "_doc"
	file := filepath.Join(docRoot, filepath.FromSlash(page)+".rst")
	if info, err := os.Stat(file); err != nil || info.IsDir() {
		return "", false
	}
	return baseURL + page, true
}
