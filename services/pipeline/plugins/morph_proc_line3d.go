// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package plugins

import (
	"github.com/AleutianAI/beamtools/services/pipeline"
)

// MorphProcLine3DTools describes the 3D morphological segmentation module
// that evolves a line segment through the volume.
func MorphProcLine3DTools() pipeline.Descriptor {
	return pipeline.Descriptor{
		Class:      "MorphProcLine3DTools",
		Synopsis:   "A plugin to segment 3D data by evolving a line in the vertical direction.",
		ModulePath: "/plugins/segmentation/morphological/morph_proc_line3d",
		Parameters: `
primeclass:
    visibility: basic
    dtype: int
    description: The class number to start segmentation from.
    default: 0

correction_window:
    visibility: intermediate
    dtype: int
    description: The size of the correction window.
    default: 7

iterations:
    visibility: basic
    dtype: int
    description: The number of iterations for segmentation.
    default: 3
`,
		Citations: []pipeline.CitationText{
			{
				Method: "process_frames",
				Text: `The segmentation is performed using morphological operations.

bibtex:
@article{kazantsev2019morphological,
    title={Automated 3D morphological processing for tomographic data segmentation},
    author={Kazantsev, Daniil and Wadeson, Nicola},
    journal={Software Impacts},
    year={2019},
    publisher={Elsevier}
}

endnote:
%0 Journal Article
%T Automated 3D morphological processing for tomographic data segmentation
%A Kazantsev, Daniil
%A Wadeson, Nicola
%J Software Impacts
%D 2019
%I Elsevier
`,
			},
		},
	}
}
