// Copyright 2025 Coalition of Freeware Developers
// SPDX-License-Identifier: MIT

package sedx

import "testing"

func TestBufferSetOnePerFrame(t *testing.T) {
	e := newTestEngine(t, Config{FramesInFlight: 2})
	defer e.Shutdown()

	set, err := e.CreateStorageBufferSet(1024, "frame data")
	if err != nil {
		t.Fatal(err)
	}

	h0, h1 := set.At(0), set.At(1)
	if h0 == h1 {
		t.Fatal("frame slots share one buffer")
	}
	for _, h := range []Handle[Buffer]{h0, h1} {
		rid, err := e.BufferRID(h)
		if err != nil {
			t.Fatal(err)
		}
		if rid == InvalidRID {
			t.Error("storage set buffer missing bindless index")
		}
	}

	if set.Current(e) != set.At(e.FrameIndex()) {
		t.Error("Current does not track the frame index")
	}

	set.Destroy(e)
	if _, err := e.buffers.Get(h0); err == nil {
		t.Error("set buffer still live after Destroy")
	}
}

func TestUniformBufferSetNoStorageIndex(t *testing.T) {
	e := newTestEngine(t, Config{})
	defer e.Shutdown()

	set, err := e.CreateUniformBufferSet(256, "ubo")
	if err != nil {
		t.Fatal(err)
	}
	defer set.Destroy(e)

	rid, err := e.BufferRID(set.At(0))
	if err != nil {
		t.Fatal(err)
	}
	if rid != InvalidRID {
		t.Errorf("uniform set buffer has storage index %d", rid)
	}
}
