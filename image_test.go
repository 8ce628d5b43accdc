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

func TestCreateImageDefaults(t *testing.T) {
	e := newTestEngine(t, Config{})
	defer e.Shutdown()

	h, err := e.CreateImage(ImageDesc{
		Extent: gputypes.Extent3D{Width: 64, Height: 64},
		Format: gputypes.TextureFormatRGBA8Unorm,
		Usage:  hal.ImageUsageSampled,
	}, "tex")
	if err != nil {
		t.Fatal(err)
	}

	rec, err := e.images.Get(h)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Desc.MipLevels != 1 || rec.Desc.ArrayLayers != 1 || rec.Desc.SampleCount != 1 {
		t.Errorf("defaults not applied: %+v", rec.Desc)
	}
	if rec.DefaultView() == nil {
		t.Error("no default view")
	}
	if rec.SampledRID == InvalidRID {
		t.Error("sampled image not registered in bindless table")
	}
	if rec.SamplerRID == InvalidRID {
		t.Error("no default sampler registered")
	}
}

func TestCreateImageExternalViewSkipsDefaults(t *testing.T) {
	e := newTestEngine(t, Config{})
	defer e.Shutdown()

	h, err := e.CreateImage(ImageDesc{
		Extent:       gputypes.Extent3D{Width: 8, Height: 8},
		Format:       gputypes.TextureFormatRGBA8Unorm,
		Usage:        hal.ImageUsageSampled,
		ExternalView: true,
	}, "ext")
	if err != nil {
		t.Fatal(err)
	}
	rec, err := e.images.Get(h)
	if err != nil {
		t.Fatal(err)
	}
	if rec.DefaultView() != nil {
		t.Error("external-view image got a default view")
	}
	if rec.SampledRID != InvalidRID {
		t.Error("external-view image registered in bindless table")
	}
}

func TestStorageImageTransitionsToGeneral(t *testing.T) {
	e := newTestEngine(t, Config{})
	defer e.Shutdown()

	h, err := e.CreateImage(ImageDesc{
		Extent: gputypes.Extent3D{Width: 32, Height: 32},
		Format: gputypes.TextureFormatRGBA8Unorm,
		Usage:  hal.ImageUsageStorage,
	}, "simg")
	if err != nil {
		t.Fatal(err)
	}
	rec, err := e.images.Get(h)
	if err != nil {
		t.Fatal(err)
	}
	if rec.StorageRID == InvalidRID {
		t.Error("storage image not registered")
	}
	if got := rec.Layout(0, 0); got != hal.LayoutGeneral {
		t.Errorf("layout = %v, want general", got)
	}
}

func TestDepthFormatAspect(t *testing.T) {
	tests := []struct {
		format gputypes.TextureFormat
		depth  bool
	}{
		{gputypes.TextureFormatRGBA8Unorm, false},
		{gputypes.TextureFormatDepth16Unorm, true},
		{gputypes.TextureFormatDepth32Float, true},
		{gputypes.TextureFormatDepth24PlusStencil8, true},
		{gputypes.TextureFormatBGRA8Unorm, false},
	}
	for _, tt := range tests {
		if got := isDepthFormat(tt.format); got != tt.depth {
			t.Errorf("isDepthFormat(%v) = %v, want %v", tt.format, got, tt.depth)
		}
	}
}

func TestCopyBufferToImageTracksLayout(t *testing.T) {
	e := newTestEngine(t, Config{})
	defer e.Shutdown()

	tex, err := e.CreateImage(ImageDesc{
		Extent: gputypes.Extent3D{Width: 16, Height: 16},
		Format: gputypes.TextureFormatRGBA8Unorm,
		Usage:  hal.ImageUsageSampled | hal.ImageUsageTransferDst,
	}, "t")
	if err != nil {
		t.Fatal(err)
	}
	stg, err := e.CreateStagingBuffer(16*16*4, "s")
	if err != nil {
		t.Fatal(err)
	}

	if err := e.BeginFrame(); err != nil {
		t.Fatal(err)
	}
	if err := e.CopyBufferToImage(stg, tex, CopyRegion{}); err != nil {
		t.Fatal(err)
	}
	if err := e.EndFrame(); err != nil {
		t.Fatal(err)
	}

	rec, err := e.images.Get(tex)
	if err != nil {
		t.Fatal(err)
	}
	if got := rec.Layout(0, 0); got != hal.LayoutShaderReadOnly {
		t.Errorf("post-copy layout = %v, want shader-read-only", got)
	}
}

func TestGenerateMipmaps(t *testing.T) {
	e := newTestEngine(t, Config{})
	defer e.Shutdown()

	tex, err := e.CreateImage(ImageDesc{
		Extent:    gputypes.Extent3D{Width: 8, Height: 8},
		MipLevels: 4,
		Format:    gputypes.TextureFormatRGBA8Unorm,
		Usage:     hal.ImageUsageSampled | hal.ImageUsageTransferSrc | hal.ImageUsageTransferDst,
	}, "mipped")
	if err != nil {
		t.Fatal(err)
	}

	rec, err := e.images.Get(tex)
	if err != nil {
		t.Fatal(err)
	}
	img := rec.Native().(*noop.Image)
	for i := range img.Mips[0] {
		img.Mips[0][i] = 0x7F
	}

	if err := e.GenerateMipmaps(tex); err != nil {
		t.Fatal(err)
	}

	// Every level fed from level 0 carries its texels.
	for level := 1; level < 4; level++ {
		if img.Mips[level][0] != 0x7F {
			t.Errorf("mip %d not generated", level)
		}
	}
	if got := rec.Layout(3, 0); got != hal.LayoutShaderReadOnly {
		t.Errorf("final layout = %v, want shader-read-only", got)
	}
}

func TestDestroyImageDefersNativeDestroyViaRing(t *testing.T) {
	e := newTestEngine(t, Config{})
	defer e.Shutdown()
	dev := noopDevice(t, e)

	h, err := e.CreateImage(ImageDesc{
		Extent: gputypes.Extent3D{Width: 4, Height: 4},
		Format: gputypes.TextureFormatRGBA8Unorm,
		Usage:  hal.ImageUsageSampled,
	}, "gone")
	if err != nil {
		t.Fatal(err)
	}

	destroyedBefore := dev.ImagesDestroyed
	if err := e.DestroyImage(h); err != nil {
		t.Fatal(err)
	}
	if _, err := e.images.Get(h); !errors.Is(err, ErrStaleHandle) {
		t.Fatal("handle still valid after destroy")
	}
	if dev.ImagesDestroyed != destroyedBefore {
		t.Fatal("native image destroyed before ring advanced")
	}

	for i := 0; i < 3; i++ {
		if err := e.BeginFrame(); err != nil {
			t.Fatal(err)
		}
		if err := e.EndFrame(); err != nil {
			t.Fatal(err)
		}
	}
	if dev.ImagesDestroyed != destroyedBefore+1 {
		t.Error("native image not destroyed after full ring")
	}
}
