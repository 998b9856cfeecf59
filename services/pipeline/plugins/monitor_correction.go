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

// MonitorCorrectionTools describes the per-frame monitor normalisation
// correction, scaling each frame by a linear function of its monitor value.
func MonitorCorrectionTools() pipeline.Descriptor {
	return pipeline.Descriptor{
		Class:      "MonitorCorrectionTools",
		Synopsis:   "Corrects the data to the monitor counts.",
		ModulePath: "/plugins/corrections/monitor_correction",
		Parameters: `
in_datasets:
    visibility: datasets
    dtype: list
    description: A list of the dataset(s) to process.
    default: ["tomo", "monitor"]

out_datasets:
    visibility: datasets
    dtype: list
    description: A list of the dataset(s) to create.
    default: ["tomo"]

nominator_scale:
    visibility: intermediate
    dtype: float
    description: The scale factor applied to the nominator.
    default: 1.0

nominator_offset:
    visibility: intermediate
    dtype: float
    description: The offset applied to the nominator.
    default: 0.0

denominator_scale:
    visibility: intermediate
    dtype: float
    description: The scale factor applied to the denominator.
    default: 1.0

denominator_offset:
    visibility: intermediate
    dtype: float
    description: The offset applied to the denominator.
    default: 0.0
`,
	}
}
