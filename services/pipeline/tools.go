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
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// pipelineTracer traces definition loading and tools construction.
var pipelineTracer = otel.Tracer("beamtools/pipeline")

// ToolsOptions configures a Tools instance. The zero value (or nil) selects
// the default logger, recommendation output on stdout, and no host or
// documentation root.
type ToolsOptions struct {
	// Logger receives structured diagnostics. Defaults to slog.Default().
	Logger *slog.Logger

	// Host receives sweep registrations. May be nil; the tools still
	// tracks its own sweep entries and extra dimensions.
	Host Host

	// Recommendations receives rendered advisory text when a parent
	// parameter change suggests updating a dependent. Defaults to stdout.
	Recommendations io.Writer

	// DocRoot is the on-disk documentation source folder probed for the
	// plugin's reference page. Empty disables link derivation.
	DocRoot string

	// DocBaseURL overrides the published documentation site URL.
	DocBaseURL string
}

func (o *ToolsOptions) withDefaults() ToolsOptions {
	opts := ToolsOptions{}
	if o != nil {
		opts = *o
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Recommendations == nil {
		opts.Recommendations = os.Stdout
	}
	return opts
}

// Tools holds the parameter, citation and documentation state for one
// plugin instance. It composes three independent stores over an explicitly
// ordered descriptor chain; nothing is discovered by reflection at runtime.
//
// Description:
//
//	Construction loads and validates the chain's parameter blocks, resolves
//	every default (including dependency-descriptor defaults), computes the
//	initial display flags and aggregates citations and documentation. Any
//	schema error aborts construction; a malformed plugin never runs with
//	partial parameters.
//
// Thread Safety: a Tools instance belongs to a single plugin instance and
// is not safe for concurrent mutation. The definition source tables cached
// by the Registry are immutable and shared safely.
type Tools struct {
	plugin string
	chain  []Descriptor

	logger *slog.Logger
	recOut io.Writer
	host   Host

	defs   *ParamMap
	values *ValueSet
	cites  *CitationSet
	doc    Documentation

	multiParams map[int]MultiParamEntry
	extraDims   []int
}

// NewTools builds the tools for one plugin instance from its descriptor
// chain, ordered most-base first.
func NewTools(plugin string, chain []Descriptor, opts *ToolsOptions) (*Tools, error) {
	o := opts.withDefaults()
	defs, err := loadDefinitions(chain, o.Logger)
	if err != nil {
		toolsBuilds.WithLabelValues(plugin, "error").Inc()
		return nil, err
	}
	return buildTools(plugin, chain, defs, o)
}

// buildTools finishes construction over an already loaded (and validated)
// definition table. The table is owned by the new instance.
func buildTools(plugin string, chain []Descriptor, defs *ParamMap, o ToolsOptions) (*Tools, error) {
	_, span := pipelineTracer.Start(context.Background(), "pipeline.buildTools")
	defer span.End()

	t := &Tools{
		plugin:      plugin,
		chain:       chain,
		logger:      o.Logger,
		recOut:      o.Recommendations,
		host:        o.Host,
		defs:        defs,
		values:      NewValueSet(),
		multiParams: make(map[int]MultiParamEntry),
	}

	if err := newDefaultResolver(t.defs, t.values).resolveAll(); err != nil {
		toolsBuilds.WithLabelValues(plugin, "error").Inc()
		return nil, fmt.Errorf("resolving defaults for plugin %s: %w", plugin, err)
	}
	refreshDisplay(t.defs, t.values)
	t.cites = aggregateCitations(chain, t.logger)
	t.doc = buildDocumentation(chain, o.DocRoot, o.DocBaseURL, t.logger)

	span.SetAttributes(
		attribute.String("plugin", plugin),
		attribute.Int("parameters", t.defs.Len()),
		attribute.Int("citations", t.cites.Len()),
	)
	toolsBuilds.WithLabelValues(plugin, "ok").Inc()
	t.logger.Debug("plugin tools built",
		slog.String("plugin", plugin),
		slog.Int("parameters", t.defs.Len()),
		slog.Int("citations", t.cites.Len()))
	return t, nil
}

// Plugin returns the plugin class name this instance is bound to.
func (t *Tools) Plugin() string { return t.plugin }

// ParamDefinitions returns the instance's resolved parameter definitions,
// insertion-ordered by first declaration across the descriptor chain.
func (t *Tools) ParamDefinitions() *ParamMap { return t.defs }

// ParamValues returns a snapshot of the current parameter values.
func (t *Tools) ParamValues() map[string]any { return t.values.Snapshot() }

// ParamValue returns one current value.
func (t *Tools) ParamValue(name string) (any, bool) { return t.values.Get(name) }

// Citations returns the aggregated citation records.
func (t *Tools) Citations() *CitationSet { return t.cites }

// Doc returns the aggregated documentation record.
func (t *Tools) Doc() Documentation { return t.doc }

// MultiParams returns the registered sweep entries keyed by dimension
// index.
func (t *Tools) MultiParams() map[int]MultiParamEntry {
	out := make(map[int]MultiParamEntry, len(t.multiParams))
	for k, v := range t.multiParams {
		out[k] = v
	}
	return out
}

// ExtraDims returns the cardinality of each registered sweep dimension in
// registration order.
func (t *Tools) ExtraDims() []int {
	return append([]int(nil), t.extraDims...)
}

// ApplyProcessListParameters overrides the default values with process-list
// entries. Unknown keys reject the whole override set before any mutation;
// multi-valued entries expand into sweep dimensions. Display flags of
// dependent parameters are recomputed afterwards.
func (t *Tools) ApplyProcessListParameters(overrides map[string]any) error {
	keys := make([]string, 0, len(overrides))
	for key := range overrides {
		if _, ok := t.defs.Get(key); !ok {
			return &UnknownParameterError{Plugin: t.plugin, Param: key}
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if err := t.SetParameter(key, overrides[key]); err != nil {
			return err
		}
	}
	return nil
}

// SetParameter overrides one parameter's current value. The literal string
// "default" restores the declared default (re-resolving dependency
// descriptors against the current values); a delimited multi-value string
// expands into a sweep. Dependent display flags are recomputed and
// advisory recommendations emitted for the changed value.
func (t *Tools) SetParameter(key string, value any) error {
	def, ok := t.defs.Get(key)
	if !ok {
		return &UnknownParameterError{Plugin: t.plugin, Param: key}
	}

	switch {
	case isDefaultKeyword(value):
		restored, err := defaultFor(t.defs, t.values, key)
		if err != nil {
			return fmt.Errorf("restoring default for %q of plugin %s: %w", key, t.plugin, err)
		}
		t.values.Set(key, restored)

	case isMultiValued(def, value):
		raw := value.(string)
		expanded, mpErr := convertMultiParams(key, raw, elementKind(def.Dtype))
		if mpErr != nil {
			return fmt.Errorf("invalid value %q for parameter %q of plugin %s: %w",
				raw, key, t.plugin, mpErr)
		}
		t.values.Set(key, expanded)
		t.registerSweep(MultiParamEntry{
			Param:  key,
			Label:  sweepLabel(key, expanded),
			Values: expanded,
		})

	default:
		t.values.Set(key, value)
	}

	refreshDisplay(t.defs, t.values)
	current, _ := t.values.Get(key)
	recommendDependents(t.defs, key, current, t.recOut)
	return nil
}

// registerSweep records a new sweep dimension and notifies the host that
// the plugin now spans additional execution instances.
func (t *Tools) registerSweep(entry MultiParamEntry) {
	index := len(t.multiParams)
	t.multiParams[index] = entry
	t.extraDims = append(t.extraDims, len(entry.Values))
	if t.host != nil {
		t.host.AlterMultiParams(index, entry)
		t.host.AppendExtraDims(len(entry.Values))
	}
	sweepExpansions.WithLabelValues(t.plugin).Inc()
	t.logger.Info("parameter tuning registered",
		slog.String("plugin", t.plugin),
		slog.String("label", entry.Label),
		slog.Int("values", len(entry.Values)))
}

// ParametersForInstance projects the parameter values for one execution
// instance of a swept plugin. indices holds one index per registered sweep
// dimension, in dimension order.
func (t *Tools) ParametersForInstance(indices []int) (map[string]any, error) {
	dims := make([]int, 0, len(t.multiParams))
	for dim := range t.multiParams {
		dims = append(dims, dim)
	}
	sort.Ints(dims)
	if len(indices) != len(dims) {
		return nil, fmt.Errorf("plugin %s spans %d sweep dimensions, got %d indices",
			t.plugin, len(dims), len(indices))
	}

	params := t.values.Snapshot()
	for i, dim := range dims {
		entry := t.multiParams[dim]
		if indices[i] < 0 || indices[i] >= len(entry.Values) {
			return nil, fmt.Errorf("index %d out of range for sweep %s of plugin %s",
				indices[i], entry.Label, t.plugin)
		}
		name := strings.SplitN(entry.Label, "_params", 2)[0]
		params[name] = entry.Values[indices[i]]
	}
	return params, nil
}

// isDefaultKeyword reports whether an override asks for the declared
// default back.
func isDefaultKeyword(value any) bool {
	s, ok := value.(string)
	return ok && strings.TrimSpace(s) == "default"
}
