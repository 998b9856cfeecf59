// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package plugins declares the built-in plugin descriptor chains and
// registers them with the default pipeline registry. Each descriptor mirrors
// one tools class; a plugin's chain is ordered most-base first so derived
// classes override inherited parameter records by key.
package plugins

import (
	"github.com/AleutianAI/beamtools/services/pipeline"
)

// BaseTools is the root of every chain: the dataset plumbing parameters all
// plugins share.
func BaseTools() pipeline.Descriptor {
	return pipeline.Descriptor{
		Class:    "BaseTools",
		Synopsis: "The base tools class from which all plugin tools inherit.",
		Parameters: `
in_datasets:
    visibility: datasets
    dtype: list
    description: A list of the dataset(s) to process.
    default: []

out_datasets:
    visibility: datasets
    dtype: list
    description: A list of the dataset(s) to create.
    default: []

preview:
    visibility: advanced
    dtype: preview
    description: A slice list of required frames to process.
    default: []
`,
	}
}
