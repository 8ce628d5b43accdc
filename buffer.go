// Copyright 2025 Coalition of Freeware Developers
// SPDX-License-Identifier: MIT

package sedx

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/Coalition-of-Freeware-Developers/Scenery-Editor-X-sub000/hal"
)

// BufferUsage is a bit set of buffer usages.
type BufferUsage uint32

const (
	BufferUsageTransferSrc BufferUsage = 1 << iota
	BufferUsageTransferDst
	BufferUsageUniformTexel
	BufferUsageStorageTexel
	BufferUsageUniform
	BufferUsageStorage
	BufferUsageIndex
	BufferUsageVertex
	BufferUsageIndirect
	BufferUsageDeviceAddress
	BufferUsageASInput
	BufferUsageASStorage
	BufferUsageShaderBindingTable
)

// Has reports whether all bits of u2 are set in u.
func (u BufferUsage) Has(u2 BufferUsage) bool { return u&u2 == u2 }

// Buffer is the resource record for one live GPU buffer.
type Buffer struct {
	native hal.Buffer

	Size       uint64
	Usage      BufferUsage
	Memory     hal.MemoryClass
	Name       string
	BirthFrame uint64

	// StorageRID is the bindless storage-buffer index, InvalidRID when
	// the buffer is not a storage buffer.
	StorageRID RID

	mapped bool
}

// Native exposes the backend buffer for recording paths.
func (b *Buffer) Native() hal.Buffer { return b.native }

// toGputypesUsage maps the engine's flag set onto the WebGPU-flavored
// usage bits the HAL descriptor carries. Flags without a WebGPU
// equivalent (device address, acceleration structures, SBT) are not
// carried; the Vulkan backend adds device-address usage to every
// storage buffer on its own.
func toGputypesUsage(u BufferUsage) gputypes.BufferUsage {
	var out gputypes.BufferUsage
	if u.Has(BufferUsageTransferSrc) {
		out |= gputypes.BufferUsageCopySrc
	}
	if u.Has(BufferUsageTransferDst) {
		out |= gputypes.BufferUsageCopyDst
	}
	if u.Has(BufferUsageUniform) {
		out |= gputypes.BufferUsageUniform
	}
	if u.Has(BufferUsageStorage) || u.Has(BufferUsageASStorage) {
		out |= gputypes.BufferUsageStorage
	}
	if u.Has(BufferUsageIndex) {
		out |= gputypes.BufferUsageIndex
	}
	if u.Has(BufferUsageVertex) {
		out |= gputypes.BufferUsageVertex
	}
	if u.Has(BufferUsageIndirect) {
		out |= gputypes.BufferUsageIndirect
	}
	return out
}

// alignUp rounds v up to the next multiple of align (a power of two or
// any positive alignment).
func alignUp(v, align uint64) uint64 {
	if align == 0 {
		return v
	}
	rem := v % align
	if rem == 0 {
		return v
	}
	return v + align - rem
}

// CreateBuffer creates a buffer, registers its record in the arena and,
// for storage buffers, publishes it to the bindless table.
//
// Usage fixups applied here:
//   - vertex or index usage implies transfer-dst
//   - storage usage implies device-address, and the size is rounded up
//     to the device's minimum storage-buffer offset alignment
//   - acceleration-structure input implies device-address and
//     transfer-dst; acceleration-structure storage implies device-address
func (e *Engine) CreateBuffer(size uint64, usage BufferUsage, memory hal.MemoryClass, name string) (Handle[Buffer], error) {
	if size == 0 {
		return Handle[Buffer]{}, fmt.Errorf("sedx: buffer %q: size must be > 0", name)
	}

	if usage.Has(BufferUsageVertex) || usage.Has(BufferUsageIndex) {
		usage |= BufferUsageTransferDst
	}
	if usage.Has(BufferUsageStorage) {
		usage |= BufferUsageDeviceAddress
		size = alignUp(size, e.limits.MinStorageBufferOffsetAlignment)
	}
	if usage.Has(BufferUsageASInput) {
		usage |= BufferUsageDeviceAddress | BufferUsageTransferDst
	}
	if usage.Has(BufferUsageASStorage) {
		usage |= BufferUsageDeviceAddress
	}

	record := Buffer{
		Size:       size,
		Usage:      usage,
		Memory:     memory,
		Name:       name,
		BirthFrame: e.frameCounter.Load(),
		StorageRID: InvalidRID,
	}

	if !e.lost.Load() {
		native, err := e.device.CreateBuffer(&hal.BufferDescriptor{
			Size:     size,
			Usage:    toGputypesUsage(usage),
			Memory:   memory,
			Strategy: e.allocStrategy(size),
			Name:     name,
		})
		if err != nil {
			return Handle[Buffer]{}, fmt.Errorf("sedx: buffer %q: %w", name, err)
		}
		record.native = native

		if usage.Has(BufferUsageStorage) {
			rid, err := e.bindless.RegisterStorageBuffer(native, 0, size)
			if err != nil {
				e.device.DestroyBuffer(native)
				return Handle[Buffer]{}, fmt.Errorf("sedx: buffer %q: %w", name, err)
			}
			record.StorageRID = rid
		}
	}

	h := e.buffers.Insert(record)
	hal.Logger().Debug("buffer created", "component", "resource",
		"name", name, "size", size, "handle", h.String())
	return h, nil
}

// CreateStagingBuffer is shorthand for a CPU-coherent transfer source.
func (e *Engine) CreateStagingBuffer(size uint64, name string) (Handle[Buffer], error) {
	return e.CreateBuffer(size, BufferUsageTransferSrc, hal.MemoryCPUCoherent, name)
}

// BufferRID returns the bindless storage-buffer index cached on the
// record, or InvalidRID for non-storage buffers.
func (e *Engine) BufferRID(h Handle[Buffer]) (RID, error) {
	rec, err := e.buffers.Get(h)
	if err != nil {
		return InvalidRID, err
	}
	return rec.StorageRID, nil
}

// Map returns the host mapping of a CPU-visible buffer. Mapping is
// explicit; Unmap is mandatory before destroy.
func (e *Engine) Map(h Handle[Buffer]) ([]byte, error) {
	rec, err := e.buffers.Get(h)
	if err != nil {
		return nil, err
	}
	if rec.Memory != hal.MemoryCPUCoherent {
		return nil, fmt.Errorf("sedx: buffer %q: %w", rec.Name, ErrMappingFailed)
	}
	if rec.native == nil {
		return nil, fmt.Errorf("sedx: buffer %q: %w", rec.Name, ErrDeviceLost)
	}
	data, err := e.device.Map(rec.native)
	if err != nil {
		return nil, fmt.Errorf("sedx: buffer %q: %w", rec.Name, err)
	}
	rec.mapped = true
	return data, nil
}

// Unmap releases a prior Map. Unmapping a non-mapped buffer is a
// bookkeeping contract violation, surfaced as an error.
func (e *Engine) Unmap(h Handle[Buffer]) error {
	rec, err := e.buffers.Get(h)
	if err != nil {
		return err
	}
	if !rec.mapped {
		return fmt.Errorf("sedx: buffer %q: %w", rec.Name, hal.ErrNotMapped)
	}
	rec.mapped = false
	return e.device.Unmap(rec.native)
}

// UploadToBuffer copies data into dst at offset. CPU-visible destinations
// are mapped and written directly. GPU-only destinations are staged
// through the current frame's staging ring and a copy is recorded on the
// frame command buffer; the upload fails with StagingExhaustedError when
// it does not fit, and no partial work is performed.
func (e *Engine) UploadToBuffer(dst Handle[Buffer], data []byte, offset uint64) error {
	rec, err := e.buffers.Get(dst)
	if err != nil {
		return err
	}
	if uint64(len(data)) == 0 {
		return nil
	}
	if offset+uint64(len(data)) > rec.Size {
		return fmt.Errorf("sedx: upload to %q: %d bytes at %d exceed size %d",
			rec.Name, len(data), offset, rec.Size)
	}
	if rec.native == nil {
		return fmt.Errorf("sedx: upload to %q: %w", rec.Name, ErrDeviceLost)
	}

	if rec.Memory == hal.MemoryCPUCoherent {
		mapped, err := e.device.Map(rec.native)
		if err != nil {
			return fmt.Errorf("sedx: upload to %q: %w", rec.Name, err)
		}
		copy(mapped[offset:], data)
		return e.device.Unmap(rec.native)
	}

	slot := e.frames.currentSlot()
	stagingOffset, err := slot.allocStaging(uint64(len(data)))
	if err != nil {
		return err
	}
	copy(slot.stagingData[stagingOffset:], data)
	slot.cmd.CopyBuffer(slot.stagingNative, rec.native, stagingOffset, offset, uint64(len(data)))
	return nil
}

// DestroyBuffer invalidates the handle immediately and defers the native
// destroy until the GPU has retired a full ring of frames. Destroying an
// already-destroyed handle reports ErrStaleHandle.
func (e *Engine) DestroyBuffer(h Handle[Buffer]) error {
	rec, err := e.buffers.Remove(h)
	if err != nil {
		return err
	}
	e.releaseBuffer(rec)
	return nil
}

// releaseBuffer schedules the GPU-side release of a removed record.
func (e *Engine) releaseBuffer(rec Buffer) {
	if rec.StorageRID != InvalidRID {
		e.bindless.Release(rec.StorageRID, BindlessStorageBuffer, e.dispatcher)
	}
	native := rec.native
	if native == nil {
		return
	}
	e.dispatcher.EnqueueResourceFree(func() {
		e.device.DestroyBuffer(native)
	})
}
