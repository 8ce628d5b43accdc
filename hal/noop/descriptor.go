// Copyright 2025 Coalition of Freeware Developers
// SPDX-License-Identifier: MIT

package noop

import (
	"sync"

	"github.com/Coalition-of-Freeware-Developers/Scenery-Editor-X-sub000/hal"
)

// ImageWrite is a recorded sampled/storage image descriptor payload.
type ImageWrite struct {
	View   hal.ImageView
	Layout hal.ImageLayout
}

// BufferWrite is a recorded storage/uniform buffer descriptor payload.
type BufferWrite struct {
	Buffer hal.Buffer
	Offset uint64
	Size   uint64
}

// DescriptorTable implements hal.DescriptorTable by recording every write
// into five arrays. Pending writes become visible in the arrays only on
// Flush, mirroring the update-after-bind contract.
type DescriptorTable struct {
	mu   sync.Mutex
	caps hal.BindlessCapacities

	SampledImages  []ImageWrite
	Samplers       []hal.Sampler
	StorageImages  []ImageWrite
	StorageBuffers []BufferWrite
	UniformBuffers []BufferWrite

	pending []func()

	// Flushes counts Flush calls so tests can assert on batching.
	Flushes uint64
}

func newDescriptorTable(caps hal.BindlessCapacities) *DescriptorTable {
	return &DescriptorTable{
		caps:           caps,
		SampledImages:  make([]ImageWrite, caps.SampledImages),
		Samplers:       make([]hal.Sampler, caps.Samplers),
		StorageImages:  make([]ImageWrite, caps.StorageImages),
		StorageBuffers: make([]BufferWrite, caps.StorageBuffers),
		UniformBuffers: make([]BufferWrite, caps.UniformBuffers),
	}
}

// WriteSampledImage stages a sampled image descriptor write.
func (t *DescriptorTable) WriteSampledImage(index uint32, view hal.ImageView, layout hal.ImageLayout) {
	t.mu.Lock()
	t.pending = append(t.pending, func() { t.SampledImages[index] = ImageWrite{View: view, Layout: layout} })
	t.mu.Unlock()
}

// WriteSampler stages a sampler descriptor write.
func (t *DescriptorTable) WriteSampler(index uint32, sampler hal.Sampler) {
	t.mu.Lock()
	t.pending = append(t.pending, func() { t.Samplers[index] = sampler })
	t.mu.Unlock()
}

// WriteStorageImage stages a storage image descriptor write.
func (t *DescriptorTable) WriteStorageImage(index uint32, view hal.ImageView, layout hal.ImageLayout) {
	t.mu.Lock()
	t.pending = append(t.pending, func() { t.StorageImages[index] = ImageWrite{View: view, Layout: layout} })
	t.mu.Unlock()
}

// WriteStorageBuffer stages a storage buffer descriptor write.
func (t *DescriptorTable) WriteStorageBuffer(index uint32, buffer hal.Buffer, offset, size uint64) {
	t.mu.Lock()
	t.pending = append(t.pending, func() { t.StorageBuffers[index] = BufferWrite{Buffer: buffer, Offset: offset, Size: size} })
	t.mu.Unlock()
}

// WriteUniformBuffer stages a uniform buffer descriptor write.
func (t *DescriptorTable) WriteUniformBuffer(index uint32, buffer hal.Buffer, offset, size uint64) {
	t.mu.Lock()
	t.pending = append(t.pending, func() { t.UniformBuffers[index] = BufferWrite{Buffer: buffer, Offset: offset, Size: size} })
	t.mu.Unlock()
}

// Flush applies all staged writes in order.
func (t *DescriptorTable) Flush() error {
	t.mu.Lock()
	staged := t.pending
	t.pending = nil
	t.Flushes++
	t.mu.Unlock()
	for _, apply := range staged {
		apply()
	}
	return nil
}

// Destroy is a no-op.
func (t *DescriptorTable) Destroy() {}
