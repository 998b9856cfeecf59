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

func init() {
	reg := pipeline.Default()
	reg.MustRegister("MedianFilter", []pipeline.Descriptor{
		BaseTools(), MedianFilterTools(),
	})
	reg.MustRegister("StageMotion", []pipeline.Descriptor{
		BaseTools(), StageMotionTools(),
	})
	reg.MustRegister("MorphProcLine3D", []pipeline.Descriptor{
		BaseTools(), MorphProcLine3DTools(),
	})
	reg.MustRegister("MonitorCorrection", []pipeline.Descriptor{
		BaseTools(), MonitorCorrectionTools(),
	})
	reg.MustRegister("AstraReconGpu", []pipeline.Descriptor{
		BaseTools(), BaseReconTools(), AstraReconGpuTools(),
	})
}
