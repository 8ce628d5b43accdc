// Copyright 2025 Coalition of Freeware Developers
// SPDX-License-Identifier: MIT

package sedx

import (
	"testing"

	"github.com/gogpu/gputypes"
)

func TestHashCombine(t *testing.T) {
	if got := hashCombine(0, 7); got != 7 {
		t.Errorf("hashCombine(0, 7) = %d, want 7", got)
	}
	if got := hashCombine(1, 2); got != 33 {
		t.Errorf("hashCombine(1, 2) = %d, want 33", got)
	}
}

func TestStateHashDeterministic(t *testing.T) {
	raster := RasterizerStateDesc{
		FillMode:         FillWireframe,
		DepthBias:        1.25,
		DepthBiasClamp:   0.5,
		DepthBiasSlope:   2,
		DepthClipEnabled: true,
		LineWidth:        2,
	}
	blend := BlendStateDesc{
		Enabled:  true,
		Src:      gputypes.BlendFactorSrcAlpha,
		Dst:      gputypes.BlendFactorOneMinusSrcAlpha,
		Op:       gputypes.BlendOperationAdd,
		SrcAlpha: gputypes.BlendFactorOne,
		DstAlpha: gputypes.BlendFactorOne,
		OpAlpha:  gputypes.BlendOperationAdd,
	}
	depth := DepthStencilStateDesc{DepthTest: true, DepthWrite: true, Compare: gputypes.CompareFunctionLessEqual}
	sampler := SamplerStateDesc{
		MagFilter: gputypes.FilterModeLinear,
		MinFilter: gputypes.FilterModeLinear,
	}

	// Identical descriptions hash identically across calls.
	if raster.Hash() != raster.Hash() {
		t.Error("rasterizer hash not deterministic")
	}
	if blend.Hash() != blend.Hash() {
		t.Error("blend hash not deterministic")
	}
	if depth.Hash() != depth.Hash() {
		t.Error("depth-stencil hash not deterministic")
	}
	if sampler.Hash() != sampler.Hash() {
		t.Error("sampler hash not deterministic")
	}
}

func TestStateHashSensitivity(t *testing.T) {
	base := BlendStateDesc{Enabled: true, Src: gputypes.BlendFactorSrcAlpha}

	changed := base
	changed.Src = gputypes.BlendFactorOne
	if base.Hash() == changed.Hash() {
		t.Error("source-factor change did not change the hash")
	}

	toggled := base
	toggled.Enabled = false
	if base.Hash() == toggled.Hash() {
		t.Error("enable toggle did not change the hash")
	}
}

func TestStateCacheLazyCreation(t *testing.T) {
	e := newTestEngine(t, Config{})
	defer e.Shutdown()

	desc := RasterizerStateDesc{FillMode: FillSolid, LineWidth: 1}
	s1, err := e.States().Rasterizer(desc)
	if err != nil {
		t.Fatalf("Rasterizer: %v", err)
	}
	s2, err := e.States().Rasterizer(desc)
	if err != nil {
		t.Fatalf("Rasterizer: %v", err)
	}
	if s1 != s2 {
		t.Error("identical descriptions produced distinct states")
	}

	other, err := e.States().Rasterizer(RasterizerStateDesc{FillMode: FillWireframe, LineWidth: 1})
	if err != nil {
		t.Fatalf("Rasterizer: %v", err)
	}
	if other == s1 {
		t.Error("distinct descriptions shared one state")
	}
}

func TestSamplerDeduplication(t *testing.T) {
	e := newTestEngine(t, Config{})
	defer e.Shutdown()

	desc := SamplerStateDesc{MagFilter: gputypes.FilterModeLinear, MinFilter: gputypes.FilterModeNearest}
	s1, rid1, err := e.States().Sampler(desc)
	if err != nil {
		t.Fatalf("Sampler: %v", err)
	}
	s2, rid2, err := e.States().Sampler(desc)
	if err != nil {
		t.Fatalf("Sampler: %v", err)
	}
	if s1 != s2 || rid1 != rid2 {
		t.Error("identical sampler descriptions were not deduplicated")
	}
}
