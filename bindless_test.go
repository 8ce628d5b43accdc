// Copyright 2025 Coalition of Freeware Developers
// SPDX-License-Identifier: MIT

package sedx

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/Coalition-of-Freeware-Developers/Scenery-Editor-X-sub000/hal"
	"github.com/Coalition-of-Freeware-Developers/Scenery-Editor-X-sub000/hal/noop"
)

func testSampler(t *testing.T, e *Engine, i int) hal.Sampler {
	t.Helper()
	s, err := e.Device().CreateSampler(&hal.SamplerDescriptor{MipLodBias: float32(i)})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func testImageView(t *testing.T, e *Engine) hal.ImageView {
	t.Helper()
	img, err := e.Device().CreateImage(&hal.ImageDescriptor{
		Extent:      gputypes.Extent3D{Width: 4, Height: 4, DepthOrArrayLayers: 1},
		MipLevels:   1,
		ArrayLayers: 1,
		Format:      gputypes.TextureFormatRGBA8Unorm,
		Usage:       hal.ImageUsageSampled,
		SampleCount: 1,
	})
	if err != nil {
		t.Fatal(err)
	}
	view, err := e.Device().CreateImageView(img, &hal.ImageViewDescriptor{
		Format: gputypes.TextureFormatRGBA8Unorm, MipLevelCount: 1, ArrayLayers: 1,
	})
	if err != nil {
		t.Fatal(err)
	}
	return view
}

func TestBindlessIndicesBelowCapacity(t *testing.T) {
	e := newTestEngine(t, Config{MaxSamplers: 8})
	defer e.Shutdown()

	for i := 0; i < 4; i++ {
		rid, err := e.Bindless().RegisterSampler(testSampler(t, e, i))
		if err != nil {
			t.Fatal(err)
		}
		if rid >= e.Bindless().Capacity(BindlessSampler) {
			t.Fatalf("index %d not below capacity %d", rid, e.Bindless().Capacity(BindlessSampler))
		}
	}
}

// Bindless overflow: four samplers fill a capacity-4 array with indices
// 0..3; a fifth registration fails; after releasing 1 and 3 plus a full
// ring of advances, registrations hand out 3 then 1 (LIFO free list).
func TestBindlessOverflowAndLIFOReuse(t *testing.T) {
	// The engine's shared table is sized from Config and gains a default
	// sampler with the first sampled image, so run this scenario on a
	// dedicated capacity-4 table.
	e := newTestEngine(t, Config{})
	defer e.Shutdown()

	bt, err := newBindlessTable(e.Device(), hal.BindlessCapacities{
		SampledImages: 1, Samplers: 4, StorageImages: 1, StorageBuffers: 1, UniformBuffers: 1,
	})
	if err != nil {
		t.Fatal(err)
	}
	defer bt.destroy()

	for want := RID(0); want < 4; want++ {
		rid, err := bt.RegisterSampler(testSampler(t, e, int(want)))
		if err != nil {
			t.Fatal(err)
		}
		if rid != want {
			t.Fatalf("registration %d returned index %d", want, rid)
		}
	}

	_, err = bt.RegisterSampler(testSampler(t, e, 4))
	var capErr *BindlessCapacityError
	if !errors.As(err, &capErr) {
		t.Fatalf("fifth registration = %v, want BindlessCapacityError", err)
	}
	if capErr.Kind != BindlessSampler {
		t.Errorf("capacity error kind = %v, want sampler", capErr.Kind)
	}

	// Release 1 then 3, then advance a full ring.
	bt.Release(1, BindlessSampler, e.Dispatcher())
	bt.Release(3, BindlessSampler, e.Dispatcher())
	for i := 0; i < 3; i++ {
		e.Dispatcher().AdvanceFrame(uint32(i))
	}

	first, err := bt.RegisterSampler(testSampler(t, e, 5))
	if err != nil {
		t.Fatal(err)
	}
	second, err := bt.RegisterSampler(testSampler(t, e, 6))
	if err != nil {
		t.Fatal(err)
	}
	if first != 3 || second != 1 {
		t.Errorf("reused indices = %d, %d; want 3, 1 (LIFO)", first, second)
	}
}

func TestBindlessReleaseDeferredByFullRing(t *testing.T) {
	e := newTestEngine(t, Config{MaxSamplers: 1})
	defer e.Shutdown()

	bt, err := newBindlessTable(e.Device(), hal.BindlessCapacities{
		SampledImages: 1, Samplers: 1, StorageImages: 1, StorageBuffers: 1, UniformBuffers: 1,
	})
	if err != nil {
		t.Fatal(err)
	}
	defer bt.destroy()

	rid, err := bt.RegisterSampler(testSampler(t, e, 0))
	if err != nil {
		t.Fatal(err)
	}
	bt.Release(rid, BindlessSampler, e.Dispatcher())

	// The slot is not reusable until the ring completes.
	if _, err := bt.RegisterSampler(testSampler(t, e, 1)); err == nil {
		t.Fatal("slot reused before deferred release ran")
	}
	for i := 0; i < 3; i++ {
		e.Dispatcher().AdvanceFrame(uint32(i))
	}
	if _, err := bt.RegisterSampler(testSampler(t, e, 2)); err != nil {
		t.Fatalf("slot not reusable after full ring: %v", err)
	}
}

// register followed by update of the same slot leaves the recorded
// descriptor payload bit-identical.
func TestBindlessUpdateIdempotent(t *testing.T) {
	e := newTestEngine(t, Config{})
	defer e.Shutdown()

	view := testImageView(t, e)
	rid, err := e.Bindless().RegisterSampledImage(view, hal.LayoutShaderReadOnly)
	if err != nil {
		t.Fatal(err)
	}

	table := e.Bindless().table.(*noop.DescriptorTable)
	before := table.SampledImages[rid]

	if err := e.Bindless().UpdateSampledImage(rid, view, hal.LayoutShaderReadOnly); err != nil {
		t.Fatal(err)
	}
	after := table.SampledImages[rid]

	if before != after {
		t.Error("update changed the descriptor payload")
	}
}

func TestBindlessWritesVisibleAfterRegister(t *testing.T) {
	e := newTestEngine(t, Config{})
	defer e.Shutdown()

	view := testImageView(t, e)
	rid, err := e.Bindless().RegisterSampledImage(view, hal.LayoutShaderReadOnly)
	if err != nil {
		t.Fatal(err)
	}

	// Register flushes before returning: the write is already visible.
	table := e.Bindless().table.(*noop.DescriptorTable)
	if table.SampledImages[rid].View != view {
		t.Error("descriptor write not flushed by register")
	}
}

func TestBindlessKindStrings(t *testing.T) {
	tests := []struct {
		kind BindlessKind
		want string
	}{
		{BindlessSampledImage, "sampled image"},
		{BindlessSampler, "sampler"},
		{BindlessStorageImage, "storage image"},
		{BindlessStorageBuffer, "storage buffer"},
		{BindlessUniformBuffer, "uniform buffer"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("BindlessKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
