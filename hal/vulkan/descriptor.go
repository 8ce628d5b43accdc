// Copyright 2025 Coalition of Freeware Developers
// SPDX-License-Identifier: MIT

package vulkan

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/Coalition-of-Freeware-Developers/Scenery-Editor-X-sub000/hal"
	"github.com/Coalition-of-Freeware-Developers/Scenery-Editor-X-sub000/hal/vulkan/vk"
)

// Binding indices of the single bindless set. The order is normative and
// part of the engine/shader ABI.
const (
	bindingSampledImages  = 0
	bindingSamplers       = 1
	bindingStorageImages  = 2
	bindingStorageBuffers = 3
	bindingUniformBuffers = 4
)

// DescriptorTable implements hal.DescriptorTable: one giant descriptor
// set with five partially-bound, update-after-bind arrays.
//
// Pending writes keep their image/buffer payloads inside the pending
// element itself; the final vkUpdateDescriptorSets reads them in place
// from stable storage, so no pointer ever dangles across an append.
type DescriptorTable struct {
	mu     sync.Mutex
	device *Device

	layout vk.DescriptorSetLayout
	pool   vk.DescriptorPool
	set    vk.DescriptorSet

	pending []pendingWrite
}

type pendingWrite struct {
	binding        uint32
	index          uint32
	descriptorType vk.DescriptorType
	imageInfo      vk.DescriptorImageInfo
	bufferInfo     vk.DescriptorBufferInfo
	isBuffer       bool
}

// CreateDescriptorTable builds the set layout, the update-after-bind
// pool and the single set.
func (d *Device) CreateDescriptorTable(caps hal.BindlessCapacities) (hal.DescriptorTable, error) {
	makeBinding := func(binding uint32, t vk.DescriptorType, count uint32) vk.DescriptorSetLayoutBinding {
		return vk.DescriptorSetLayoutBinding{
			Binding:         binding,
			DescriptorType:  t,
			DescriptorCount: count,
			StageFlags:      vk.ShaderStageAll,
		}
	}
	bindings := []vk.DescriptorSetLayoutBinding{
		makeBinding(bindingSampledImages, vk.DescriptorTypeSampledImage, caps.SampledImages),
		makeBinding(bindingSamplers, vk.DescriptorTypeSampler, caps.Samplers),
		makeBinding(bindingStorageImages, vk.DescriptorTypeStorageImage, caps.StorageImages),
		makeBinding(bindingStorageBuffers, vk.DescriptorTypeStorageBuffer, caps.StorageBuffers),
		makeBinding(bindingUniformBuffers, vk.DescriptorTypeUniformBuffer, caps.UniformBuffers),
	}

	flags := make([]vk.DescriptorBindingFlags, len(bindings))
	for i := range flags {
		flags[i] = vk.DescriptorBindingPartiallyBoundBit |
			vk.DescriptorBindingUpdateAfterBindBit |
			vk.DescriptorBindingUpdateUnusedWhilePendingBit
	}
	flagsInfo := vk.DescriptorSetLayoutBindingFlagsCreateInfo{
		SType:         vk.StructureTypeDescriptorSetLayoutBindingFlagsCreateInfo,
		BindingCount:  uint32(len(flags)),
		PBindingFlags: &flags[0],
	}

	layoutInfo := vk.DescriptorSetLayoutCreateInfo{
		SType:        vk.StructureTypeDescriptorSetLayoutCreateInfo,
		PNext:        unsafe.Pointer(&flagsInfo),
		Flags:        vk.DescriptorSetLayoutCreateUpdateAfterBindPoolBit,
		BindingCount: uint32(len(bindings)),
		PBindings:    &bindings[0],
	}
	var layout vk.DescriptorSetLayout
	if result := d.cmds.CreateDescriptorSetLayout(d.handle, &layoutInfo, &layout); result != vk.Success {
		return nil, fmt.Errorf("vulkan: vkCreateDescriptorSetLayout failed: %d", result)
	}

	poolSizes := []vk.DescriptorPoolSize{
		{Type: vk.DescriptorTypeSampledImage, DescriptorCount: caps.SampledImages},
		{Type: vk.DescriptorTypeSampler, DescriptorCount: caps.Samplers},
		{Type: vk.DescriptorTypeStorageImage, DescriptorCount: caps.StorageImages},
		{Type: vk.DescriptorTypeStorageBuffer, DescriptorCount: caps.StorageBuffers},
		{Type: vk.DescriptorTypeUniformBuffer, DescriptorCount: caps.UniformBuffers},
	}
	poolInfo := vk.DescriptorPoolCreateInfo{
		SType:         vk.StructureTypeDescriptorPoolCreateInfo,
		Flags:         vk.DescriptorPoolCreateUpdateAfterBindBit,
		MaxSets:       1, // single giant bindless set
		PoolSizeCount: uint32(len(poolSizes)),
		PPoolSizes:    &poolSizes[0],
	}
	var pool vk.DescriptorPool
	if result := d.cmds.CreateDescriptorPool(d.handle, &poolInfo, &pool); result != vk.Success {
		d.cmds.DestroyDescriptorSetLayout(d.handle, layout)
		return nil, fmt.Errorf("vulkan: vkCreateDescriptorPool failed: %d", result)
	}

	allocInfo := vk.DescriptorSetAllocateInfo{
		SType:              vk.StructureTypeDescriptorSetAllocateInfo,
		DescriptorPool:     pool,
		DescriptorSetCount: 1,
		PSetLayouts:        &layout,
	}
	var set vk.DescriptorSet
	if result := d.cmds.AllocateDescriptorSets(d.handle, &allocInfo, &set); result != vk.Success {
		d.cmds.DestroyDescriptorPool(d.handle, pool)
		d.cmds.DestroyDescriptorSetLayout(d.handle, layout)
		return nil, fmt.Errorf("vulkan: vkAllocateDescriptorSets failed: %d", result)
	}

	return &DescriptorTable{device: d, layout: layout, pool: pool, set: set}, nil
}

// Set returns the native descriptor set for binding at draw time.
func (t *DescriptorTable) Set() vk.DescriptorSet { return t.set }

// Layout returns the native set layout for pipeline-layout creation.
func (t *DescriptorTable) Layout() vk.DescriptorSetLayout { return t.layout }

// WriteSampledImage stages a sampled-image write.
func (t *DescriptorTable) WriteSampledImage(index uint32, view hal.ImageView, layout hal.ImageLayout) {
	t.stage(pendingWrite{
		binding:        bindingSampledImages,
		index:          index,
		descriptorType: vk.DescriptorTypeSampledImage,
		imageInfo: vk.DescriptorImageInfo{
			ImageView:   view.(*ImageView).handle,
			ImageLayout: layoutToVk(layout),
		},
	})
}

// WriteSampler stages a sampler write.
func (t *DescriptorTable) WriteSampler(index uint32, sampler hal.Sampler) {
	t.stage(pendingWrite{
		binding:        bindingSamplers,
		index:          index,
		descriptorType: vk.DescriptorTypeSampler,
		imageInfo: vk.DescriptorImageInfo{
			Sampler: sampler.(*Sampler).handle,
		},
	})
}

// WriteStorageImage stages a storage-image write.
func (t *DescriptorTable) WriteStorageImage(index uint32, view hal.ImageView, layout hal.ImageLayout) {
	t.stage(pendingWrite{
		binding:        bindingStorageImages,
		index:          index,
		descriptorType: vk.DescriptorTypeStorageImage,
		imageInfo: vk.DescriptorImageInfo{
			ImageView:   view.(*ImageView).handle,
			ImageLayout: layoutToVk(layout),
		},
	})
}

// WriteStorageBuffer stages a storage-buffer write.
func (t *DescriptorTable) WriteStorageBuffer(index uint32, buffer hal.Buffer, offset, size uint64) {
	t.stage(pendingWrite{
		binding:        bindingStorageBuffers,
		index:          index,
		descriptorType: vk.DescriptorTypeStorageBuffer,
		isBuffer:       true,
		bufferInfo: vk.DescriptorBufferInfo{
			Buffer: buffer.(*Buffer).handle,
			Offset: offset,
			Range:  size,
		},
	})
}

// WriteUniformBuffer stages a uniform-buffer write.
func (t *DescriptorTable) WriteUniformBuffer(index uint32, buffer hal.Buffer, offset, size uint64) {
	t.stage(pendingWrite{
		binding:        bindingUniformBuffers,
		index:          index,
		descriptorType: vk.DescriptorTypeUniformBuffer,
		isBuffer:       true,
		bufferInfo: vk.DescriptorBufferInfo{
			Buffer: buffer.(*Buffer).handle,
			Offset: offset,
			Range:  size,
		},
	})
}

func (t *DescriptorTable) stage(w pendingWrite) {
	t.mu.Lock()
	t.pending = append(t.pending, w)
	t.mu.Unlock()
}

// Flush applies every staged write in one vkUpdateDescriptorSets call.
// The write array's info pointers reference the swapped-out pending
// slice, which stays untouched for the duration of the call.
func (t *DescriptorTable) Flush() error {
	t.mu.Lock()
	staged := t.pending
	t.pending = nil
	t.mu.Unlock()

	if len(staged) == 0 {
		return nil
	}

	writes := make([]vk.WriteDescriptorSet, len(staged))
	for i := range staged {
		p := &staged[i]
		w := vk.WriteDescriptorSet{
			SType:           vk.StructureTypeWriteDescriptorSet,
			DstSet:          t.set,
			DstBinding:      p.binding,
			DstArrayElement: p.index,
			DescriptorCount: 1,
			DescriptorType:  p.descriptorType,
		}
		if p.isBuffer {
			w.PBufferInfo = &p.bufferInfo
		} else {
			w.PImageInfo = &p.imageInfo
		}
		writes[i] = w
	}

	t.device.cmds.UpdateDescriptorSets(t.device.handle, uint32(len(writes)), &writes[0])
	return nil
}

// Destroy releases the set (freed with the pool), the pool and the
// layout.
func (t *DescriptorTable) Destroy() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.pool != 0 {
		t.device.cmds.DestroyDescriptorPool(t.device.handle, t.pool)
		t.pool = 0
	}
	if t.layout != 0 {
		t.device.cmds.DestroyDescriptorSetLayout(t.device.handle, t.layout)
		t.layout = 0
	}
}
