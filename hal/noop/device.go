// Copyright 2025 Coalition of Freeware Developers
// SPDX-License-Identifier: MIT

package noop

import (
	"sync"

	"github.com/Coalition-of-Freeware-Developers/Scenery-Editor-X-sub000/hal"
)

// Device implements hal.Device with in-memory objects. Destroy counters
// are exported so leak tests can assert balanced create/destroy pairs.
type Device struct {
	queues *queueSet

	mu sync.Mutex

	// Created/Destroyed count buffers and images for leak assertions.
	BuffersCreated    uint64
	BuffersDestroyed  uint64
	ImagesCreated     uint64
	ImagesDestroyed   uint64
	SamplersCreated   uint64
	SamplersDestroyed uint64

	pipelineCache []byte
}

// NewDevice creates a stand-alone noop device; useful in tests that do
// not go through adapter enumeration.
func NewDevice() *Device {
	return &Device{queues: &queueSet{q: &Queue{kind: hal.QueueGraphics}}}
}

// Queues exposes the shared queue set for failure injection in tests.
func (d *Device) Queues() *Queue { return d.queues.q }

// Limits reports fixed, conservative limits.
func (d *Device) Limits() hal.DeviceLimits {
	return hal.DeviceLimits{
		MinUniformBufferOffsetAlignment: 256,
		MinStorageBufferOffsetAlignment: 64,
		MaxSamplerAnisotropy:            16,
		TimestampPeriodNs:               1,
	}
}

// CreateBuffer allocates byte backing for the buffer.
func (d *Device) CreateBuffer(desc *hal.BufferDescriptor) (hal.Buffer, error) {
	d.mu.Lock()
	d.BuffersCreated++
	d.mu.Unlock()
	return &Buffer{Data: make([]byte, desc.Size), Desc: *desc}, nil
}

// DestroyBuffer counts the destroy.
func (d *Device) DestroyBuffer(buffer hal.Buffer) {
	d.mu.Lock()
	d.BuffersDestroyed++
	d.mu.Unlock()
}

// Map returns the backing slice of a CPU-visible buffer.
func (d *Device) Map(buffer hal.Buffer) ([]byte, error) {
	b := buffer.(*Buffer)
	if b.Desc.Memory != hal.MemoryCPUCoherent {
		return nil, hal.ErrMappingFailed
	}
	b.mapped = true
	return b.Data, nil
}

// Unmap releases the mapping.
func (d *Device) Unmap(buffer hal.Buffer) error {
	b := buffer.(*Buffer)
	if !b.mapped {
		return hal.ErrNotMapped
	}
	b.mapped = false
	return nil
}

// CreateImage allocates per-mip backing.
func (d *Device) CreateImage(desc *hal.ImageDescriptor) (hal.Image, error) {
	d.mu.Lock()
	d.ImagesCreated++
	d.mu.Unlock()
	return newImage(desc), nil
}

// DestroyImage counts the destroy.
func (d *Device) DestroyImage(image hal.Image) {
	d.mu.Lock()
	d.ImagesDestroyed++
	d.mu.Unlock()
}

// CreateImageView wraps the image.
func (d *Device) CreateImageView(image hal.Image, desc *hal.ImageViewDescriptor) (hal.ImageView, error) {
	return &ImageView{Image: image.(*Image), Desc: *desc}, nil
}

// DestroyImageView is a no-op.
func (d *Device) DestroyImageView(view hal.ImageView) {}

// CreateSampler wraps the descriptor.
func (d *Device) CreateSampler(desc *hal.SamplerDescriptor) (hal.Sampler, error) {
	d.mu.Lock()
	d.SamplersCreated++
	d.mu.Unlock()
	return &Sampler{Desc: *desc}, nil
}

// DestroySampler counts the destroy.
func (d *Device) DestroySampler(sampler hal.Sampler) {
	d.mu.Lock()
	d.SamplersDestroyed++
	d.mu.Unlock()
}

// CreateFence returns an unsignaled fence.
func (d *Device) CreateFence() (hal.Fence, error) { return newFence(), nil }

// CreateBinarySemaphore returns a binary semaphore.
func (d *Device) CreateBinarySemaphore() (hal.Semaphore, error) { return &Semaphore{}, nil }

// DestroySemaphore is a no-op.
func (d *Device) DestroySemaphore(sem hal.Semaphore) {}

// CreateTimelineSemaphore returns a host-side timeline counter.
func (d *Device) CreateTimelineSemaphore(initial uint64) (hal.TimelineSemaphore, error) {
	return newTimeline(initial), nil
}

// CreateCommandPool returns a pool for the given family.
func (d *Device) CreateCommandPool(kind hal.QueueKind) (hal.CommandPool, error) {
	return &CommandPool{kind: kind}, nil
}

// CreateDescriptorTable builds the recording table.
func (d *Device) CreateDescriptorTable(caps hal.BindlessCapacities) (hal.DescriptorTable, error) {
	return newDescriptorTable(caps), nil
}

// CreatePipelineState bakes a fake state object.
func (d *Device) CreatePipelineState(kind hal.StateKind, hash uint64) (hal.PipelineState, error) {
	return &PipelineState{Kind: kind, Hash: hash}, nil
}

// DestroyPipelineState is a no-op.
func (d *Device) DestroyPipelineState(state hal.PipelineState) {}

// PipelineCacheData returns whatever LoadPipelineCache stored.
func (d *Device) PipelineCacheData() ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]byte, len(d.pipelineCache))
	copy(out, d.pipelineCache)
	return out, nil
}

// LoadPipelineCache stores the blob.
func (d *Device) LoadPipelineCache(data []byte) error {
	d.mu.Lock()
	d.pipelineCache = append([]byte(nil), data...)
	d.mu.Unlock()
	return nil
}

// WaitIdle returns immediately.
func (d *Device) WaitIdle() error { return nil }

// Destroy is a no-op.
func (d *Device) Destroy() {}
