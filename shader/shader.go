// Copyright 2025 Coalition of Freeware Developers
// SPDX-License-Identifier: MIT

// Package shader is the engine's shader service: it turns WGSL source
// into SPIR-V plus a reflected interface. Compilation itself is opaque
// to the render core; the core consumes only the returned Module.
package shader

import (
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"
)

// Stage identifies a shader entry point's pipeline stage.
type Stage uint8

const (
	StageVertex Stage = iota
	StageFragment
	StageCompute
)

func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	case StageCompute:
		return "compute"
	}
	return "unknown"
}

// EntryPoint is one reflected shader entry point.
type EntryPoint struct {
	Name  string
	Stage Stage
}

// Module is a compiled shader: SPIR-V words plus the reflected interface.
type Module struct {
	SPIRV       []byte
	EntryPoints []EntryPoint
}

// Compile translates WGSL into SPIR-V and reflects the entry points.
func Compile(wgsl string) (*Module, error) {
	spirv, err := naga.Compile(wgsl)
	if err != nil {
		return nil, fmt.Errorf("shader: compile: %w", err)
	}

	ast, err := naga.Parse(wgsl)
	if err != nil {
		return nil, fmt.Errorf("shader: parse: %w", err)
	}
	module, err := naga.Lower(ast)
	if err != nil {
		return nil, fmt.Errorf("shader: lower: %w", err)
	}

	out := &Module{SPIRV: spirv}
	for _, ep := range module.EntryPoints {
		out.EntryPoints = append(out.EntryPoints, EntryPoint{
			Name:  ep.Name,
			Stage: stageFromIR(ep.Stage),
		})
	}
	return out, nil
}

func stageFromIR(s ir.ShaderStage) Stage {
	switch s {
	case ir.StageVertex:
		return StageVertex
	case ir.StageFragment:
		return StageFragment
	case ir.StageCompute:
		return StageCompute
	}
	return StageCompute
}
