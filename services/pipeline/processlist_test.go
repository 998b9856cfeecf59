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
	"io"
	"os"
	"path/filepath"
	"testing"
)

const testProcessList = `process_list:
  - name: Threshold
    parameters:
      threshold: 0.9
  - name: Threshold
    active: false
  - name: Threshold
`

func TestParseProcessList(t *testing.T) {
	list, err := ParseProcessList([]byte(testProcessList))
	if err != nil {
		t.Fatalf("ParseProcessList: %v", err)
	}
	if len(list.Entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(list.Entries))
	}
	if list.Entries[0].Parameters["threshold"] != 0.9 {
		t.Errorf("threshold override = %v", list.Entries[0].Parameters["threshold"])
	}
	if list.Entries[1].IsActive() {
		t.Error("second entry should be inactive")
	}
	if !list.Entries[2].IsActive() {
		t.Error("omitted active means active")
	}
}

func TestParseProcessListRejectsMissingName(t *testing.T) {
	if _, err := ParseProcessList([]byte("process_list:\n  - parameters: {a: 1}\n")); err == nil {
		t.Error("an entry without a name must fail validation")
	}
}

func TestParseProcessListRejectsEmpty(t *testing.T) {
	if _, err := ParseProcessList([]byte("process_list: []\n")); err == nil {
		t.Error("an empty process list must fail")
	}
}

func TestLoadProcessList(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pipeline.yaml")
	if err := os.WriteFile(path, []byte(testProcessList), 0o644); err != nil {
		t.Fatal(err)
	}
	list, err := LoadProcessList(path)
	if err != nil {
		t.Fatalf("LoadProcessList: %v", err)
	}
	if len(list.Entries) != 3 {
		t.Errorf("entries = %d", len(list.Entries))
	}
}

func TestLoadProcessListRejectsExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pipeline.json")
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadProcessList(path); err == nil {
		t.Error("a non-YAML extension must be rejected")
	}
}

func TestRegistryBuild(t *testing.T) {
	reg := newTestRegistry(t)
	list, err := ParseProcessList([]byte(testProcessList))
	if err != nil {
		t.Fatal(err)
	}

	built, err := reg.Build(list, &ToolsOptions{Logger: discardLogger, Recommendations: io.Discard})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	// The inactive entry is skipped.
	if len(built) != 2 {
		t.Fatalf("built = %d, want 2", len(built))
	}
	if v, _ := built[0].ParamValue("threshold"); v != 0.9 {
		t.Errorf("first entry threshold = %v, want the override", v)
	}
	if v, _ := built[1].ParamValue("threshold"); v != 0.5 {
		t.Errorf("second built entry threshold = %v, want the default", v)
	}
}

func TestRegistryBuildAbortsOnBadOverride(t *testing.T) {
	reg := newTestRegistry(t)
	list, err := ParseProcessList([]byte(`process_list:
  - name: Threshold
    parameters:
      thresold: 0.9
`))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := reg.Build(list, &ToolsOptions{Logger: discardLogger, Recommendations: io.Discard}); err == nil {
		t.Error("an unknown override key must abort the build")
	}
}

func TestRegistryBuildAbortsOnUnknownPlugin(t *testing.T) {
	reg := newTestRegistry(t)
	list, err := ParseProcessList([]byte("process_list:\n  - name: Ghost\n"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := reg.Build(list, &ToolsOptions{Logger: discardLogger}); err == nil {
		t.Error("an unregistered plugin must abort the build")
	}
}
