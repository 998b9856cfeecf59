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

// StageMotionTools describes the stage-motion calculation over motion
// position datasets. It overrides the inherited dataset parameters with its
// own defaults and conditions the extra datasets on use_min_max.
func StageMotionTools() pipeline.Descriptor {
	return pipeline.Descriptor{
		Class:      "StageMotionTools",
		Synopsis:   "A plugin to calculate stage motion from motion positions.",
		ModulePath: "/plugins/kinematics/stage_motion",
		Parameters: `
in_datasets:
    visibility: datasets
    dtype: list
    description: Create a list of the dataset(s) to process.
    default: ["pmean"]

out_datasets:
    visibility: datasets
    dtype: list
    description: Create a list of the dataset(s) to create.
    default: ["qmean"]

use_min_max:
    visibility: intermediate
    dtype: bool
    description: Also use the min and max datasets, including all
        combinations of min, mean and max.
    default: false

extra_in_datasets:
    visibility: intermediate
    dtype: list
    description: The extra datasets to use as input for min and max.
    default: ["pmin", "pmax"]
    dependency:
        use_min_max: [true]

extra_out_datasets:
    visibility: intermediate
    dtype: list
    description: The extra datasets to use as output for min and max.
    default: ["qmin", "qmax"]
    dependency:
        use_min_max: [true]
`,
	}
}
