// Copyright 2025 Coalition of Freeware Developers
// SPDX-License-Identifier: MIT

package sedx

import (
	"fmt"

	"github.com/Coalition-of-Freeware-Developers/Scenery-Editor-X-sub000/hal"
)

// BufferSet is a frames-in-flight group of identically sized buffers,
// one per frame slot, so a frame never writes a buffer the GPU is still
// reading. Used for per-frame uniform and storage data.
type BufferSet struct {
	handles []Handle[Buffer]
}

// CreateStorageBufferSet creates one storage buffer per frame slot. Each
// buffer carries its own bindless storage index.
func (e *Engine) CreateStorageBufferSet(size uint64, name string) (*BufferSet, error) {
	return e.createBufferSet(size, BufferUsageStorage|BufferUsageTransferDst, name)
}

// CreateUniformBufferSet creates one uniform buffer per frame slot.
func (e *Engine) CreateUniformBufferSet(size uint64, name string) (*BufferSet, error) {
	return e.createBufferSet(size, BufferUsageUniform|BufferUsageTransferDst, name)
}

func (e *Engine) createBufferSet(size uint64, usage BufferUsage, name string) (*BufferSet, error) {
	n := e.cfg.FramesInFlight
	set := &BufferSet{handles: make([]Handle[Buffer], n)}
	for i := uint32(0); i < n; i++ {
		h, err := e.CreateBuffer(size, usage, hal.MemoryGPU, fmt.Sprintf("%s[%d]", name, i))
		if err != nil {
			for j := uint32(0); j < i; j++ {
				_ = e.DestroyBuffer(set.handles[j])
			}
			return nil, err
		}
		set.handles[i] = h
	}
	return set, nil
}

// Current returns the buffer for the engine's current frame slot.
func (s *BufferSet) Current(e *Engine) Handle[Buffer] {
	return s.handles[e.FrameIndex()]
}

// At returns the buffer for a specific frame slot.
func (s *BufferSet) At(frame uint32) Handle[Buffer] {
	return s.handles[frame%uint32(len(s.handles))]
}

// Destroy invalidates every handle in the set; the native destroys defer
// through the ring as usual.
func (s *BufferSet) Destroy(e *Engine) {
	for _, h := range s.handles {
		_ = e.DestroyBuffer(h)
	}
	s.handles = nil
}
