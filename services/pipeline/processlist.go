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
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// Process Lists
// =============================================================================

// MaxProcessListSize bounds a process-list file.
const MaxProcessListSize = 1 * 1024 * 1024

// ProcessEntry is one plugin invocation in a process list.
type ProcessEntry struct {
	// Name is the registered plugin class name.
	Name string `yaml:"name" validate:"required"`

	// Active disables the entry when false. Omitted means active.
	Active *bool `yaml:"active,omitempty"`

	// Parameters overrides the plugin's default parameter values.
	Parameters map[string]any `yaml:"parameters,omitempty"`
}

// IsActive reports whether the entry should run.
func (e ProcessEntry) IsActive() bool {
	return e.Active == nil || *e.Active
}

// ProcessList is an ordered sequence of plugin invocations.
type ProcessList struct {
	Entries []ProcessEntry `yaml:"process_list" validate:"required,dive"`
}

var processListValidate = validator.New()

// LoadProcessList reads and validates a process list from a YAML file. The
// file must carry a .yaml or .yml extension and stay under
// MaxProcessListSize.
func LoadProcessList(path string) (*ProcessList, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".yaml" && ext != ".yml" {
		return nil, fmt.Errorf("process list must have a .yaml extension, got %q", ext)
	}
	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat process list: %w", err)
	}
	if info.Size() > MaxProcessListSize {
		return nil, fmt.Errorf("process list too large: %d bytes (max %d)", info.Size(), MaxProcessListSize)
	}
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read process list: %w", err)
	}
	return ParseProcessList(data)
}

// ParseProcessList parses and validates process-list YAML.
func ParseProcessList(data []byte) (*ProcessList, error) {
	var list ProcessList
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to parse process list YAML: %w", err)
	}
	if len(list.Entries) == 0 {
		return nil, fmt.Errorf("process list declares no entries")
	}
	if err := processListValidate.Struct(&list); err != nil {
		return nil, fmt.Errorf("invalid process list: %w", err)
	}
	return &list, nil
}

// Build constructs the tools for every active entry of the process list
// against the registry, applying each entry's parameter overrides. The
// first failure aborts the whole build: no partially configured plugin
// chain is emitted.
func (r *Registry) Build(list *ProcessList, opts *ToolsOptions) ([]*Tools, error) {
	o := opts.withDefaults()
	var built []*Tools
	for i, entry := range list.Entries {
		if !entry.IsActive() {
			o.Logger.Debug("skipping inactive entry",
				slog.Int("position", i),
				slog.String("plugin", entry.Name))
			continue
		}
		tools, err := r.NewTools(entry.Name, &o)
		if err != nil {
			return nil, fmt.Errorf("building entry %d (%s): %w", i, entry.Name, err)
		}
		if len(entry.Parameters) > 0 {
			if err := tools.ApplyProcessListParameters(entry.Parameters); err != nil {
				return nil, fmt.Errorf("applying parameters of entry %d: %w", i, err)
			}
		}
		built = append(built, tools)
	}
	return built, nil
}
