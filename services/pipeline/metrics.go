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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// =============================================================================
// Prometheus Metrics for Parameter Resolution
// =============================================================================

var (
	// toolsBuilds counts Tools constructions by plugin and outcome.
	// Labels: plugin, status (ok, error)
	toolsBuilds = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "beamtools",
		Subsystem: "pipeline",
		Name:      "tools_builds_total",
		Help:      "Total plugin tools constructions by plugin and status",
	}, []string{"plugin", "status"})

	// validationFailures counts fatal schema-validation failures.
	// Labels: class (tools class), check (required_keys, dtype, visibility, options)
	validationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "beamtools",
		Subsystem: "pipeline",
		Name:      "validation_failures_total",
		Help:      "Total fatal parameter-definition validation failures by class and check",
	}, []string{"class", "check"})

	// sweepExpansions counts multi-valued overrides expanded into sweep
	// dimensions. Labels: plugin
	sweepExpansions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "beamtools",
		Subsystem: "pipeline",
		Name:      "sweep_expansions_total",
		Help:      "Total parameter-tuning expansions registered by plugin",
	}, []string{"plugin"})

	// recommendationsEmitted counts advisory dependent-parameter
	// recommendations.
	recommendationsEmitted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "beamtools",
		Subsystem: "pipeline",
		Name:      "recommendations_total",
		Help:      "Total advisory recommendations emitted for dependent parameters",
	})
)
