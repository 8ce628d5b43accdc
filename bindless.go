// Copyright 2025 Coalition of Freeware Developers
// SPDX-License-Identifier: MIT

package sedx

import (
	"sync"

	"github.com/Coalition-of-Freeware-Developers/Scenery-Editor-X-sub000/hal"
)

// BindlessTable owns the index space of the single giant descriptor set.
// Five parallel arrays, binding order normative and part of the shader
// ABI: 0 sampled image, 1 sampler, 2 storage image, 3 storage buffer,
// 4 uniform buffer.
//
// One mutex covers index allocation, the pending-writes list and the
// flush; it is disjoint from the deferred-destruction ring's mutex so
// destroys do not contend with registrations.
type BindlessTable struct {
	mu    sync.Mutex
	table hal.DescriptorTable

	caps [bindlessKindCount]uint32
	next [bindlessKindCount]uint32
	free [bindlessKindCount][]uint32 // LIFO, replenished via the deferred ring
}

func newBindlessTable(device hal.Device, caps hal.BindlessCapacities) (*BindlessTable, error) {
	clamp := func(v uint32) uint32 {
		if v < 1 {
			return 1
		}
		return v
	}
	caps.SampledImages = clamp(caps.SampledImages)
	caps.Samplers = clamp(caps.Samplers)
	caps.StorageImages = clamp(caps.StorageImages)
	caps.StorageBuffers = clamp(caps.StorageBuffers)
	caps.UniformBuffers = clamp(caps.UniformBuffers)

	table, err := device.CreateDescriptorTable(caps)
	if err != nil {
		return nil, err
	}

	bt := &BindlessTable{table: table}
	bt.caps[BindlessSampledImage] = caps.SampledImages
	bt.caps[BindlessSampler] = caps.Samplers
	bt.caps[BindlessStorageImage] = caps.StorageImages
	bt.caps[BindlessStorageBuffer] = caps.StorageBuffers
	bt.caps[BindlessUniformBuffer] = caps.UniformBuffers

	hal.Logger().Info("bindless descriptor set initialized",
		"component", "bindless",
		"sampled_images", caps.SampledImages,
		"samplers", caps.Samplers,
		"storage_images", caps.StorageImages,
		"storage_buffers", caps.StorageBuffers,
		"uniform_buffers", caps.UniformBuffers)
	return bt, nil
}

// allocIndex hands out indices monotonically until the free list becomes
// non-empty; the free list is LIFO to keep hot indices recent.
// Caller holds bt.mu.
func (bt *BindlessTable) allocIndex(kind BindlessKind) (uint32, error) {
	if n := len(bt.free[kind]); n > 0 {
		index := bt.free[kind][n-1]
		bt.free[kind] = bt.free[kind][:n-1]
		return index, nil
	}
	if bt.next[kind] >= bt.caps[kind] {
		return 0, &BindlessCapacityError{Kind: kind}
	}
	index := bt.next[kind]
	bt.next[kind]++
	return index, nil
}

// RegisterSampledImage allocates a sampled-image slot and writes the
// descriptor. The write is flushed before returning so a shader reading
// the returned index immediately observes it.
func (bt *BindlessTable) RegisterSampledImage(view hal.ImageView, layout hal.ImageLayout) (RID, error) {
	bt.mu.Lock()
	defer bt.mu.Unlock()
	index, err := bt.allocIndex(BindlessSampledImage)
	if err != nil {
		return InvalidRID, err
	}
	bt.table.WriteSampledImage(index, view, layout)
	return index, bt.table.Flush()
}

// RegisterSampler allocates a sampler slot and writes the descriptor.
func (bt *BindlessTable) RegisterSampler(sampler hal.Sampler) (RID, error) {
	bt.mu.Lock()
	defer bt.mu.Unlock()
	index, err := bt.allocIndex(BindlessSampler)
	if err != nil {
		return InvalidRID, err
	}
	bt.table.WriteSampler(index, sampler)
	return index, bt.table.Flush()
}

// RegisterStorageImage allocates a storage-image slot and writes the
// descriptor.
func (bt *BindlessTable) RegisterStorageImage(view hal.ImageView, layout hal.ImageLayout) (RID, error) {
	bt.mu.Lock()
	defer bt.mu.Unlock()
	index, err := bt.allocIndex(BindlessStorageImage)
	if err != nil {
		return InvalidRID, err
	}
	bt.table.WriteStorageImage(index, view, layout)
	return index, bt.table.Flush()
}

// RegisterStorageBuffer allocates a storage-buffer slot and writes the
// descriptor.
func (bt *BindlessTable) RegisterStorageBuffer(buffer hal.Buffer, offset, size uint64) (RID, error) {
	bt.mu.Lock()
	defer bt.mu.Unlock()
	index, err := bt.allocIndex(BindlessStorageBuffer)
	if err != nil {
		return InvalidRID, err
	}
	bt.table.WriteStorageBuffer(index, buffer, offset, size)
	return index, bt.table.Flush()
}

// RegisterUniformBuffer allocates a uniform-buffer slot and writes the
// descriptor.
func (bt *BindlessTable) RegisterUniformBuffer(buffer hal.Buffer, offset, size uint64) (RID, error) {
	bt.mu.Lock()
	defer bt.mu.Unlock()
	index, err := bt.allocIndex(BindlessUniformBuffer)
	if err != nil {
		return InvalidRID, err
	}
	bt.table.WriteUniformBuffer(index, buffer, offset, size)
	return index, bt.table.Flush()
}

// UpdateSampledImage overwrites an existing sampled-image slot without
// allocating a new index; used when a view is rebuilt.
func (bt *BindlessTable) UpdateSampledImage(index RID, view hal.ImageView, layout hal.ImageLayout) error {
	bt.mu.Lock()
	defer bt.mu.Unlock()
	bt.table.WriteSampledImage(index, view, layout)
	return bt.table.Flush()
}

// UpdateSampler overwrites an existing sampler slot without allocating a
// new index; used when a sampler is rebuilt.
func (bt *BindlessTable) UpdateSampler(index RID, sampler hal.Sampler) error {
	bt.mu.Lock()
	defer bt.mu.Unlock()
	bt.table.WriteSampler(index, sampler)
	return bt.table.Flush()
}

// FlushPending forces any batched writes out. Register and Update flush
// on their own; this exists for callers staging writes through the HAL
// table directly.
func (bt *BindlessTable) FlushPending() error {
	bt.mu.Lock()
	defer bt.mu.Unlock()
	return bt.table.Flush()
}

// Release returns index to the free list for its kind, routed through
// the deferred-destruction ring so the slot is not reused while the GPU
// may still read it.
func (bt *BindlessTable) Release(index RID, kind BindlessKind, ring *Dispatcher) {
	if index == InvalidRID {
		return
	}
	ring.EnqueueResourceFree(func() {
		bt.mu.Lock()
		bt.free[kind] = append(bt.free[kind], index)
		bt.mu.Unlock()
	})
}

// Capacity returns the configured capacity for kind.
func (bt *BindlessTable) Capacity(kind BindlessKind) uint32 {
	return bt.caps[kind]
}

// destroy releases the native set.
func (bt *BindlessTable) destroy() {
	bt.mu.Lock()
	defer bt.mu.Unlock()
	if bt.table != nil {
		bt.table.Destroy()
		bt.table = nil
	}
}
