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

// MedianFilterTools describes the 2D/3D median denoising filter. The 3D
// capability is enabled through padding; the kernel in 2D is
// kernel_size x kernel_size and in 3D kernel_size cubed.
func MedianFilterTools() pipeline.Descriptor {
	return pipeline.Descriptor{
		Class: "MedianFilterTools",
		Synopsis: "A plugin to apply a 2D/3D median filter. The 3D capability " +
			"is enabled through padding.",
		ModulePath: "/plugins/filters/denoising/median_filter",
		Parameters: `
kernel_size:
    visibility: basic
    dtype: int
    description: The size of the median kernel along each dimension.
    default: 3

kernel_dimension:
    visibility: intermediate
    dtype: str
    options: [2D, 3D]
    description:
        summary: The dimensionality of the median kernel.
        options:
            2D: Apply the kernel within each frame only.
            3D: Pad the frames and filter across the slicing dimension too.
    default: 3D

pattern:
    visibility: advanced
    dtype: str
    options: [SINOGRAM, PROJECTION, VOLUME_XZ]
    description: The slicing pattern to process the data in.
    default: PROJECTION
`,
		Warnings: "The 3D kernel requires the padded slices of neighbouring\n" +
			"frames and is noticeably slower than the 2D kernel.",
	}
}
