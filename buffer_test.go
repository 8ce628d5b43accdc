// Copyright 2025 Coalition of Freeware Developers
// SPDX-License-Identifier: MIT

package sedx

import (
	"bytes"
	"errors"
	"testing"

	"github.com/Coalition-of-Freeware-Developers/Scenery-Editor-X-sub000/hal"
)

func TestCreateBufferUsageFixups(t *testing.T) {
	e := newTestEngine(t, Config{})
	defer e.Shutdown()

	tests := []struct {
		name  string
		usage BufferUsage
		want  BufferUsage
	}{
		{
			name:  "vertex implies transfer dst",
			usage: BufferUsageVertex,
			want:  BufferUsageVertex | BufferUsageTransferDst,
		},
		{
			name:  "index implies transfer dst",
			usage: BufferUsageIndex,
			want:  BufferUsageIndex | BufferUsageTransferDst,
		},
		{
			name:  "storage implies device address",
			usage: BufferUsageStorage,
			want:  BufferUsageStorage | BufferUsageDeviceAddress,
		},
		{
			name:  "AS input implies address and transfer dst",
			usage: BufferUsageASInput,
			want:  BufferUsageASInput | BufferUsageDeviceAddress | BufferUsageTransferDst,
		},
		{
			name:  "AS storage implies address",
			usage: BufferUsageASStorage,
			want:  BufferUsageASStorage | BufferUsageDeviceAddress,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := e.CreateBuffer(128, tt.usage, hal.MemoryGPU, tt.name)
			if err != nil {
				t.Fatal(err)
			}
			rec, err := e.buffers.Get(h)
			if err != nil {
				t.Fatal(err)
			}
			if !rec.Usage.Has(tt.want) {
				t.Errorf("usage = %b, want bits %b", rec.Usage, tt.want)
			}
		})
	}
}

func TestStorageBufferAlignmentRoundsUp(t *testing.T) {
	e := newTestEngine(t, Config{})
	defer e.Shutdown()

	align := e.Device().Limits().MinStorageBufferOffsetAlignment
	tests := []uint64{1, align - 1, align, align + 1, 3*align - 7}
	for _, size := range tests {
		h, err := e.CreateBuffer(size, BufferUsageStorage, hal.MemoryGPU, "s")
		if err != nil {
			t.Fatal(err)
		}
		rec, err := e.buffers.Get(h)
		if err != nil {
			t.Fatal(err)
		}
		if rec.Size%align != 0 {
			t.Errorf("size %d: record size %d not a multiple of %d", size, rec.Size, align)
		}
		if rec.Size < size {
			t.Errorf("size %d: rounded down to %d", size, rec.Size)
		}
		// Rounded up, never inflated past the next multiple.
		if rec.Size >= size+align {
			t.Errorf("size %d: rounded to %d, overshoots next multiple", size, rec.Size)
		}
	}
}

func TestStorageBufferGetsBindlessIndex(t *testing.T) {
	e := newTestEngine(t, Config{})
	defer e.Shutdown()

	h, err := e.CreateBuffer(1024, BufferUsageStorage, hal.MemoryGPU, "ssbo")
	if err != nil {
		t.Fatal(err)
	}
	rid, err := e.BufferRID(h)
	if err != nil {
		t.Fatal(err)
	}
	if rid == InvalidRID {
		t.Fatal("storage buffer has no bindless index")
	}
	if rid >= e.Bindless().Capacity(BindlessStorageBuffer) {
		t.Errorf("index %d not below capacity", rid)
	}

	// Non-storage buffers carry no index.
	h2, err := e.CreateBuffer(64, BufferUsageUniform, hal.MemoryGPU, "ubo")
	if err != nil {
		t.Fatal(err)
	}
	rid2, err := e.BufferRID(h2)
	if err != nil {
		t.Fatal(err)
	}
	if rid2 != InvalidRID {
		t.Errorf("uniform buffer has storage index %d", rid2)
	}
}

func TestMapWriteUnmapRoundTrip(t *testing.T) {
	e := newTestEngine(t, Config{})
	defer e.Shutdown()

	h, err := e.CreateBuffer(256, BufferUsageTransferSrc, hal.MemoryCPUCoherent, "rt")
	if err != nil {
		t.Fatal(err)
	}

	payload := []byte("the quick brown fox jumps over the lazy dog")
	data, err := e.Map(h)
	if err != nil {
		t.Fatal(err)
	}
	copy(data, payload)
	if err := e.Unmap(h); err != nil {
		t.Fatal(err)
	}

	readback, err := e.Map(h)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(readback[:len(payload)], payload) {
		t.Error("read-back differs from written bytes")
	}
	if err := e.Unmap(h); err != nil {
		t.Fatal(err)
	}
}

func TestMapRejectsGPUOnly(t *testing.T) {
	e := newTestEngine(t, Config{})
	defer e.Shutdown()

	h, err := e.CreateBuffer(64, BufferUsageVertex, hal.MemoryGPU, "vb")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := e.Map(h); !errors.Is(err, ErrMappingFailed) {
		t.Errorf("Map(GPU-only) = %v, want ErrMappingFailed", err)
	}
}

func TestUnmapWithoutMapIsContractViolation(t *testing.T) {
	e := newTestEngine(t, Config{})
	defer e.Shutdown()

	h, err := e.CreateBuffer(64, BufferUsageTransferSrc, hal.MemoryCPUCoherent, "m")
	if err != nil {
		t.Fatal(err)
	}
	if err := e.Unmap(h); !errors.Is(err, hal.ErrNotMapped) {
		t.Errorf("Unmap without Map = %v, want ErrNotMapped", err)
	}
}

func TestUploadToCPUVisibleBuffer(t *testing.T) {
	e := newTestEngine(t, Config{})
	defer e.Shutdown()

	h, err := e.CreateBuffer(128, BufferUsageTransferSrc, hal.MemoryCPUCoherent, "up")
	if err != nil {
		t.Fatal(err)
	}
	payload := []byte{1, 2, 3, 4, 5}
	if err := e.UploadToBuffer(h, payload, 8); err != nil {
		t.Fatal(err)
	}

	data, err := e.Map(h)
	if err != nil {
		t.Fatal(err)
	}
	defer e.Unmap(h)
	if !bytes.Equal(data[8:13], payload) {
		t.Error("upload bytes not present at offset")
	}
}

func TestUploadToGPUBufferThroughStaging(t *testing.T) {
	e := newTestEngine(t, Config{})
	defer e.Shutdown()

	h, err := e.CreateBuffer(1024, BufferUsageVertex, hal.MemoryGPU, "vb")
	if err != nil {
		t.Fatal(err)
	}

	if err := e.BeginFrame(); err != nil {
		t.Fatal(err)
	}
	payload := bytes.Repeat([]byte{0xAB}, 512)
	if err := e.UploadToBuffer(h, payload, 0); err != nil {
		t.Fatal(err)
	}
	if err := e.EndFrame(); err != nil {
		t.Fatal(err)
	}

	rec, err := e.buffers.Get(h)
	if err != nil {
		t.Fatal(err)
	}
	native := rec.Native()
	got := nativeBytes(t, native)
	if !bytes.Equal(got[:512], payload) {
		t.Error("staged upload did not reach the GPU buffer")
	}
}

// Staging exhaustion: a 2 MiB upload into a 1 MiB ring fails with the
// exact needed/available counts and performs no partial work.
func TestStagingExhaustion(t *testing.T) {
	e := newTestEngine(t, Config{StagingSize: 1 << 20})
	defer e.Shutdown()

	h, err := e.CreateBuffer(2<<20, BufferUsageVertex, hal.MemoryGPU, "big")
	if err != nil {
		t.Fatal(err)
	}
	if err := e.BeginFrame(); err != nil {
		t.Fatal(err)
	}

	payload := make([]byte, 2<<20)
	for i := range payload {
		payload[i] = 0xCD
	}
	err = e.UploadToBuffer(h, payload, 0)

	var exhausted *StagingExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("UploadToBuffer = %v, want StagingExhaustedError", err)
	}
	if exhausted.Needed != 2<<20 {
		t.Errorf("Needed = %d, want %d", exhausted.Needed, 2<<20)
	}
	if exhausted.Available != 1<<20 {
		t.Errorf("Available = %d, want %d", exhausted.Available, 1<<20)
	}

	// No partial work: destination untouched.
	rec, err := e.buffers.Get(h)
	if err != nil {
		t.Fatal(err)
	}
	for _, b := range nativeBytes(t, rec.Native())[:64] {
		if b != 0 {
			t.Fatal("partial bytes written despite exhaustion")
		}
	}
	if err := e.EndFrame(); err != nil {
		t.Fatal(err)
	}
}

func TestDoubleDestroyReportsStale(t *testing.T) {
	e := newTestEngine(t, Config{})
	defer e.Shutdown()

	h, err := e.CreateBuffer(64, BufferUsageUniform, hal.MemoryGPU, "d")
	if err != nil {
		t.Fatal(err)
	}
	if err := e.DestroyBuffer(h); err != nil {
		t.Fatal(err)
	}
	if err := e.DestroyBuffer(h); !errors.Is(err, ErrStaleHandle) {
		t.Errorf("double destroy = %v, want ErrStaleHandle", err)
	}
}

func TestAlignUp(t *testing.T) {
	tests := []struct {
		v, align, want uint64
	}{
		{0, 64, 0},
		{1, 64, 64},
		{64, 64, 64},
		{65, 64, 128},
		{100, 0, 100},
	}
	for _, tt := range tests {
		if got := alignUp(tt.v, tt.align); got != tt.want {
			t.Errorf("alignUp(%d, %d) = %d, want %d", tt.v, tt.align, got, tt.want)
		}
	}
}
