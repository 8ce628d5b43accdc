// Copyright 2025 Coalition of Freeware Developers
// SPDX-License-Identifier: MIT

package shader

import "testing"

const computeWGSL = `
@group(0) @binding(0) var<storage, read_write> data: array<u32>;

@compute @workgroup_size(64)
fn main(@builtin(global_invocation_id) id: vec3<u32>) {
    data[id.x] = data[id.x] * 2u;
}
`

func TestCompileCompute(t *testing.T) {
	m, err := Compile(computeWGSL)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if len(m.SPIRV) == 0 {
		t.Fatal("no SPIR-V produced")
	}
	if len(m.EntryPoints) != 1 {
		t.Fatalf("entry points = %d, want 1", len(m.EntryPoints))
	}
	ep := m.EntryPoints[0]
	if ep.Name != "main" {
		t.Errorf("entry point name = %q, want main", ep.Name)
	}
	if ep.Stage != StageCompute {
		t.Errorf("entry point stage = %v, want compute", ep.Stage)
	}
}

func TestCompileRejectsInvalidSource(t *testing.T) {
	if _, err := Compile("fn {"); err == nil {
		t.Error("invalid WGSL accepted")
	}
}

func TestStageString(t *testing.T) {
	tests := []struct {
		stage Stage
		want  string
	}{
		{StageVertex, "vertex"},
		{StageFragment, "fragment"},
		{StageCompute, "compute"},
		{Stage(9), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.stage.String(); got != tt.want {
			t.Errorf("Stage(%d).String() = %q, want %q", tt.stage, got, tt.want)
		}
	}
}
