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
	"sort"
	"sync"
)

// =============================================================================
// Plugin Registry
// =============================================================================

// Registry maps plugin class names to their statically declared descriptor
// chains. Parameter blocks are parsed and validated once per plugin and the
// resulting table is shared, read-only, across every instance of that
// plugin; each Tools gets its own mutable clone.
//
// Thread Safety: safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*registryEntry
	logger  *slog.Logger
}

type registryEntry struct {
	chain []Descriptor

	once   sync.Once
	cached *ParamMap
	err    error
}

// NewRegistry returns an empty plugin registry.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		entries: make(map[string]*registryEntry),
		logger:  logger,
	}
}

// defaultRegistry holds the built-in plugins registered at package
// initialisation.
var defaultRegistry = NewRegistry(nil)

// Default returns the process-wide registry the built-in plugins register
// into.
func Default() *Registry { return defaultRegistry }

// Register adds a plugin's descriptor chain (most-base first) under its
// class name. Registering the same name twice is an error.
func (r *Registry) Register(name string, chain []Descriptor) error {
	if name == "" {
		return fmt.Errorf("plugin name must not be empty")
	}
	if len(chain) == 0 {
		return fmt.Errorf("plugin %s must declare at least one descriptor", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[name]; exists {
		return fmt.Errorf("plugin %s is already registered", name)
	}
	r.entries[name] = &registryEntry{chain: chain}
	r.logger.Debug("plugin registered",
		slog.String("plugin", name),
		slog.Int("descriptors", len(chain)))
	return nil
}

// MustRegister registers a plugin and panics on conflict; intended for the
// package-init registration of built-in plugins.
func (r *Registry) MustRegister(name string, chain []Descriptor) {
	if err := r.Register(name, chain); err != nil {
		panic(err)
	}
}

// Names returns the registered plugin names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Chain returns the descriptor chain registered for a plugin.
func (r *Registry) Chain(name string) ([]Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.entries[name]
	if !ok {
		return nil, false
	}
	return append([]Descriptor(nil), entry.chain...), true
}

// NewTools builds a Tools instance for a registered plugin, reusing the
// plugin's cached definition table. The first build of a plugin pays the
// parse-and-validate cost; later builds clone the immutable table.
func (r *Registry) NewTools(name string, opts *ToolsOptions) (*Tools, error) {
	r.mu.RLock()
	entry, ok := r.entries[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("plugin %s is not registered", name)
	}

	o := opts.withDefaults()
	entry.once.Do(func() {
		entry.cached, entry.err = loadDefinitions(entry.chain, o.Logger)
	})
	if entry.err != nil {
		toolsBuilds.WithLabelValues(name, "error").Inc()
		return nil, entry.err
	}
	return buildTools(name, entry.chain, entry.cached.clone(), o)
}
