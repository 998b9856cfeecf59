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
	"strings"

	"gopkg.in/yaml.v3"
)

// MaxParameterBlockSize bounds a descriptor's YAML parameter block.
const MaxParameterBlockSize = 256 * 1024

// loadDefinitions parses the parameter blocks of every descriptor in the
// chain (most-base first) and merges them into one ordered definition
// mapping. Later descriptors override earlier ones by key; a key keeps the
// position of its first declaration.
//
// Every class's records are validated in isolation before merging, so a
// malformed base class is reported against that class even when a derived
// class would have overridden the offending record.
func loadDefinitions(chain []Descriptor, logger *slog.Logger) (*ParamMap, error) {
	merged := NewParamMap()
	for _, desc := range chain {
		if strings.TrimSpace(desc.Parameters) == "" {
			continue
		}
		if len(desc.Parameters) > MaxParameterBlockSize {
			return nil, &DefinitionParseError{
				Class: desc.Class,
				Err:   fmt.Errorf("parameter block exceeds %d bytes", MaxParameterBlockSize),
			}
		}
		records, err := parseParameterBlock(desc)
		if err != nil {
			return nil, err
		}
		if err := validateClass(desc.Class, records); err != nil {
			return nil, err
		}
		records.Each(func(name string, def *Definition) {
			merged.Set(name, def)
		})
		logger.Debug("parameter block loaded",
			slog.String("class", desc.Class),
			slog.Int("parameters", records.Len()))
	}
	return merged, nil
}

// parseParameterBlock parses one descriptor's YAML block into an ordered
// mapping of parameter name to definition record. Anything that does not
// parse to a mapping of mappings is a DefinitionParseError naming the class.
func parseParameterBlock(desc Descriptor) (*ParamMap, error) {
	var root yaml.Node
	if err := yaml.Unmarshal([]byte(desc.Parameters), &root); err != nil {
		return nil, &DefinitionParseError{Class: desc.Class, Err: err}
	}
	if len(root.Content) == 0 {
		return NewParamMap(), nil
	}
	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, &DefinitionParseError{Class: desc.Class}
	}

	records := NewParamMap()
	for i := 0; i+1 < len(doc.Content); i += 2 {
		keyNode, valNode := doc.Content[i], doc.Content[i+1]
		if valNode.Kind != yaml.MappingNode {
			return nil, &DefinitionParseError{
				Class: desc.Class,
				Err:   fmt.Errorf("parameter %q is not a mapping", keyNode.Value),
			}
		}
		def, err := parseDefinition(desc.Class, keyNode.Value, valNode)
		if err != nil {
			return nil, err
		}
		records.Set(def.Name, def)
	}
	return records, nil
}

// parseDefinition maps one record node onto a Definition. Unknown record
// keys are tolerated and remembered only for the required-key check; the
// default is passed through literal coercion here so every later stage sees
// native values.
func parseDefinition(class, name string, record *yaml.Node) (*Definition, error) {
	def := &Definition{
		Name:     name,
		Display:  true,
		declared: make(map[string]bool),
	}
	for i := 0; i+1 < len(record.Content); i += 2 {
		key := record.Content[i].Value
		val := record.Content[i+1]
		def.declared[key] = true

		switch key {
		case "visibility":
			def.Visibility = Visibility(val.Value)
		case "dtype":
			def.Dtype = parseDtypeNode(val)
		case "description":
			desc, err := parseDescriptionNode(val)
			if err != nil {
				return nil, &DefinitionParseError{
					Class: class,
					Err:   fmt.Errorf("description of %q: %w", name, err),
				}
			}
			def.Description = desc
		case "default":
			def.Default = parseDefaultNode(val)
		case "options":
			def.Options = scalarValues(val)
		case "dependency":
			dep, err := parseDependencyNode(val)
			if err != nil {
				return nil, &DefinitionParseError{
					Class: class,
					Err:   fmt.Errorf("dependency of %q: %w", name, err),
				}
			}
			def.Dependency = dep
		default:
			// Passthrough keys (example, warning, ...) are not modelled.
		}
	}
	return def, nil
}

// parseDtypeNode accepts a single type tag or an ordered list of
// alternative tags.
func parseDtypeNode(n *yaml.Node) []string {
	if n.Kind == yaml.SequenceNode {
		return scalarValues(n)
	}
	return []string{n.Value}
}

// parseDescriptionNode accepts a plain scalar or a structured mapping with
// summary/verbose/options/range sub-keys.
func parseDescriptionNode(n *yaml.Node) (Description, error) {
	if n.Kind == yaml.ScalarNode {
		return Description{Summary: collapseText(n.Value)}, nil
	}
	if n.Kind != yaml.MappingNode {
		return Description{}, fmt.Errorf("must be a string or a mapping")
	}
	var desc Description
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i].Value, n.Content[i+1]
		switch key {
		case "summary":
			desc.Summary = collapseText(val.Value)
		case "verbose":
			desc.Verbose = collapseText(val.Value)
		case "range":
			desc.Range = collapseText(val.Value)
		case "options":
			if val.Kind != yaml.MappingNode {
				return Description{}, fmt.Errorf("options sub-descriptions must be a mapping")
			}
			desc.Options = make(map[string]string)
			for j := 0; j+1 < len(val.Content); j += 2 {
				desc.Options[val.Content[j].Value] = collapseText(val.Content[j+1].Value)
			}
		}
	}
	return desc, nil
}

// parseDefaultNode converts a default node to either a coerced literal or a
// dependency descriptor. A mapping whose single key holds another mapping is
// the dependency-descriptor form {parent: {parent_value: default}}; branch
// values may nest further descriptors.
func parseDefaultNode(n *yaml.Node) any {
	if n.Kind == yaml.MappingNode && len(n.Content) == 2 &&
		n.Content[1].Kind == yaml.MappingNode {
		branchNode := n.Content[1]
		branches := make(map[string]any, len(branchNode.Content)/2)
		for i := 0; i+1 < len(branchNode.Content); i += 2 {
			branches[branchNode.Content[i].Value] = parseDefaultNode(branchNode.Content[i+1])
		}
		return &DependentDefault{Parent: n.Content[0].Value, Branches: branches}
	}
	return ParseLiteral(nodeValue(n))
}

// parseDependencyNode accepts a bare parent name or a single-entry mapping
// of parent name to the parent values that activate this parameter.
func parseDependencyNode(n *yaml.Node) (*Dependency, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return &Dependency{Parent: n.Value}, nil
	case yaml.MappingNode:
		if len(n.Content) != 2 {
			return nil, fmt.Errorf("must name exactly one parent parameter")
		}
		allowed := scalarValues(n.Content[1])
		return &Dependency{Parent: n.Content[0].Value, Allowed: allowed}, nil
	}
	return nil, fmt.Errorf("must be a parameter name or a mapping")
}

// nodeValue converts a plain YAML node to a native value, walking mappings
// with string keys so that non-string scalar keys (e.g. integers) never
// break decoding.
func nodeValue(n *yaml.Node) any {
	switch n.Kind {
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return n.Value
		}
		return v
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			out = append(out, nodeValue(c))
		}
		return out
	case yaml.MappingNode:
		out := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			out[n.Content[i].Value] = nodeValue(n.Content[i+1])
		}
		return out
	default:
		return nil
	}
}

// scalarValues returns the string forms of a sequence's elements, or the
// single scalar itself.
func scalarValues(n *yaml.Node) []string {
	if n.Kind == yaml.ScalarNode {
		return []string{n.Value}
	}
	out := make([]string, 0, len(n.Content))
	for _, c := range n.Content {
		out = append(out, c.Value)
	}
	return out
}

// collapseText folds the embedded newlines of a wrapped YAML scalar into
// single spaces.
func collapseText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
