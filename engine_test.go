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

// newTestEngine initializes an engine on the noop backend. Zero fields
// of cfg keep their defaults; the backend is always forced to noop.
func newTestEngine(t *testing.T, cfg Config) *Engine {
	t.Helper()
	cfg.Backend = gputypes.BackendEmpty
	e, err := Init(cfg)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	return e
}

// nativeBytes exposes the byte backing of a noop buffer.
func nativeBytes(t *testing.T, b hal.Buffer) []byte {
	t.Helper()
	nb, ok := b.(*noop.Buffer)
	if !ok {
		t.Fatalf("buffer is %T, not a noop buffer", b)
	}
	return nb.Data
}

func noopDevice(t *testing.T, e *Engine) *noop.Device {
	t.Helper()
	d, ok := e.Device().(*noop.Device)
	if !ok {
		t.Fatalf("engine device is %T, not a noop device", e.Device())
	}
	return d
}

func TestInitDefaults(t *testing.T) {
	e := newTestEngine(t, Config{})
	defer e.Shutdown()

	if got := e.cfg.FramesInFlight; got != 3 {
		t.Errorf("FramesInFlight = %d, want 3", got)
	}
	if got := e.Bindless().Capacity(BindlessSampledImage); got != DefaultMaxSampledImages {
		t.Errorf("sampled image capacity = %d, want %d", got, DefaultMaxSampledImages)
	}
	if !e.Dispatcher().IsInitialized() {
		t.Error("dispatcher not initialized")
	}
	if e.AdapterInfo().Name == "" {
		t.Error("adapter info empty")
	}
}

func TestInitRejectsBadFrameCount(t *testing.T) {
	for _, n := range []uint32{5, 99} {
		_, err := Init(Config{FramesInFlight: n, Backend: gputypes.BackendEmpty})
		if err == nil {
			t.Errorf("Init accepted FramesInFlight=%d", n)
		}
	}
}

func TestFrameProtocol(t *testing.T) {
	e := newTestEngine(t, Config{})
	defer e.Shutdown()

	for frame := 0; frame < 6; frame++ {
		if err := e.BeginFrame(); err != nil {
			t.Fatalf("BeginFrame %d: %v", frame, err)
		}
		if err := e.EndFrame(); err != nil {
			t.Fatalf("EndFrame %d: %v", frame, err)
		}
	}
	if e.FrameCounter() != 6 {
		t.Errorf("FrameCounter = %d, want 6", e.FrameCounter())
	}
	if e.FrameIndex() != 0 {
		t.Errorf("FrameIndex = %d, want 0 after two full rings", e.FrameIndex())
	}
}

// Device-lost transition: a failing submit latches the engine; CPU-side
// creates still succeed, further submits return ErrDeviceLost, and
// Shutdown drains every bucket.
func TestDeviceLostTransition(t *testing.T) {
	e := newTestEngine(t, Config{})
	dev := noopDevice(t, e)

	if err := e.BeginFrame(); err != nil {
		t.Fatal(err)
	}
	dev.Queues().InjectFailure(hal.ErrDeviceLost)
	if err := e.EndFrame(); !errors.Is(err, ErrDeviceLost) {
		t.Fatalf("EndFrame = %v, want ErrDeviceLost", err)
	}
	if !e.IsLost() {
		t.Fatal("engine did not latch lost state")
	}

	// CPU state only: creates succeed.
	h, err := e.CreateBuffer(64, BufferUsageUniform, hal.MemoryGPU, "post-loss")
	if err != nil {
		t.Fatalf("CreateBuffer after loss: %v", err)
	}
	if h.IsNil() {
		t.Fatal("CreateBuffer returned nil handle")
	}

	// Further frame work is rejected.
	if err := e.BeginFrame(); !errors.Is(err, ErrDeviceLost) {
		t.Errorf("BeginFrame after loss = %v, want ErrDeviceLost", err)
	}

	// Shutdown succeeds and drains all buckets.
	e.Shutdown()
	if n := e.Dispatcher().PendingFrees(); n != 0 {
		t.Errorf("pending frees after shutdown = %d, want 0", n)
	}
}

// Deferred free ordering: destroy at frame 0 must not run after the
// advances at frames 1 and 2, and must have run after frame 3.
func TestDeferredFreeOrdering(t *testing.T) {
	e := newTestEngine(t, Config{})
	defer e.Shutdown()
	dev := noopDevice(t, e)

	h, err := e.CreateBuffer(256, BufferUsageStorage, hal.MemoryGPU, "b")
	if err != nil {
		t.Fatal(err)
	}
	destroyedBefore := dev.BuffersDestroyed
	if err := e.DestroyBuffer(h); err != nil {
		t.Fatal(err)
	}

	// The handle is invalid immediately.
	if _, err := e.buffers.Get(h); !errors.Is(err, ErrStaleHandle) {
		t.Fatalf("Get after destroy = %v, want ErrStaleHandle", err)
	}

	frame := func() {
		if err := e.BeginFrame(); err != nil {
			t.Fatal(err)
		}
		if err := e.EndFrame(); err != nil {
			t.Fatal(err)
		}
	}

	frame() // frame 1
	if dev.BuffersDestroyed != destroyedBefore {
		t.Fatal("native destroy ran after 1 frame")
	}
	frame() // frame 2
	if dev.BuffersDestroyed != destroyedBefore {
		t.Fatal("native destroy ran after 2 frames")
	}
	frame() // frame 3
	if dev.BuffersDestroyed != destroyedBefore+1 {
		t.Fatal("native destroy did not run after 3 frames")
	}
}

func TestShutdownReleasesLiveResources(t *testing.T) {
	e := newTestEngine(t, Config{})
	dev := noopDevice(t, e)

	for i := 0; i < 4; i++ {
		if _, err := e.CreateBuffer(128, BufferUsageVertex, hal.MemoryGPU, "v"); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := e.CreateImage(ImageDesc{
		Extent: gputypes.Extent3D{Width: 16, Height: 16},
		Format: gputypes.TextureFormatRGBA8Unorm,
		Usage:  hal.ImageUsageSampled,
	}, "tex"); err != nil {
		t.Fatal(err)
	}

	e.Shutdown()

	if dev.BuffersCreated != dev.BuffersDestroyed {
		t.Errorf("buffer leak: created %d, destroyed %d", dev.BuffersCreated, dev.BuffersDestroyed)
	}
	if dev.ImagesCreated != dev.ImagesDestroyed {
		t.Errorf("image leak: created %d, destroyed %d", dev.ImagesCreated, dev.ImagesDestroyed)
	}
	if n := e.Dispatcher().PendingFrees(); n != 0 {
		t.Errorf("pending frees after shutdown = %d, want 0", n)
	}
}

// Upload-and-sample: checkerboard bytes staged into a texture come back
// out of the image backing; the staging buffer is freed after three
// frame advances.
func TestUploadAndSampleCheckerboard(t *testing.T) {
	e := newTestEngine(t, Config{})
	defer e.Shutdown()
	dev := noopDevice(t, e)

	const side = 256
	tex, err := e.CreateImage(ImageDesc{
		Extent: gputypes.Extent3D{Width: side, Height: side},
		Format: gputypes.TextureFormatRGBA8Unorm,
		Usage:  hal.ImageUsageSampled | hal.ImageUsageTransferDst,
	}, "tex")
	if err != nil {
		t.Fatal(err)
	}

	stg, err := e.CreateStagingBuffer(side*side*4, "stg")
	if err != nil {
		t.Fatal(err)
	}

	data, err := e.Map(stg)
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			v := byte(0)
			if (x/32+y/32)%2 == 0 {
				v = 0xFF
			}
			o := (y*side + x) * 4
			data[o], data[o+1], data[o+2], data[o+3] = v, v, v, 0xFF
		}
	}
	if err := e.Unmap(stg); err != nil {
		t.Fatal(err)
	}

	if err := e.BeginFrame(); err != nil {
		t.Fatal(err)
	}
	if err := e.CopyBufferToImage(stg, tex, CopyRegion{}); err != nil {
		t.Fatal(err)
	}

	// Sampled values equal the checkerboard.
	rec, err := e.images.Get(tex)
	if err != nil {
		t.Fatal(err)
	}
	mip0 := rec.Native().(*noop.Image).Mips[0]
	check := func(x, y int, want byte) {
		o := (y*side + x) * 4
		if mip0[o] != want {
			t.Fatalf("texel (%d,%d) = %#x, want %#x", x, y, mip0[o], want)
		}
	}
	check(0, 0, 0xFF)
	check(40, 0, 0x00)
	check(40, 40, 0xFF)

	// RID is published and below capacity.
	rid, err := e.ImageRID(tex)
	if err != nil {
		t.Fatal(err)
	}
	if rid == InvalidRID || rid >= e.Bindless().Capacity(BindlessSampledImage) {
		t.Fatalf("sampled RID %d out of range", rid)
	}

	destroyedBefore := dev.BuffersDestroyed
	if err := e.DestroyBuffer(stg); err != nil {
		t.Fatal(err)
	}
	if err := e.EndFrame(); err != nil { // frame 1
		t.Fatal(err)
	}
	for i := 0; i < 2; i++ { // frames 2, 3
		if err := e.BeginFrame(); err != nil {
			t.Fatal(err)
		}
		if err := e.EndFrame(); err != nil {
			t.Fatal(err)
		}
	}
	if dev.BuffersDestroyed != destroyedBefore+1 {
		t.Error("staging buffer not freed after 3 advance_frame calls")
	}
}
