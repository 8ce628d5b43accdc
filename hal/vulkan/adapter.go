// Copyright 2025 Coalition of Freeware Developers
// SPDX-License-Identifier: MIT

package vulkan

import (
	"fmt"
	"unsafe"

	"github.com/Coalition-of-Freeware-Developers/Scenery-Editor-X-sub000/hal"
	"github.com/Coalition-of-Freeware-Developers/Scenery-Editor-X-sub000/hal/vulkan/vk"
)

// requiredExtensions is the device extension set every adapter must
// expose. Entries promoted to core by the marked API version count as
// present on devices reporting at least that version.
var requiredExtensions = []struct {
	name string
	core uint32 // 0 = never promoted
}{
	{"VK_KHR_swapchain", 0},
	{"VK_KHR_dynamic_rendering", vk.MakeAPIVersion(1, 3, 0)},
	{"VK_EXT_descriptor_indexing", vk.MakeAPIVersion(1, 2, 0)},
	{"VK_KHR_timeline_semaphore", vk.MakeAPIVersion(1, 2, 0)},
	{"VK_KHR_buffer_device_address", vk.MakeAPIVersion(1, 2, 0)},
	{"VK_EXT_scalar_block_layout", vk.MakeAPIVersion(1, 2, 0)},
}

// Open verifies the required extensions, opens one queue per family
// actually used and builds the device with its allocator and pipeline
// cache.
func (a *Adapter) Open() (hal.OpenDevice, error) {
	cmds := a.instance.cmds

	available, err := a.deviceExtensions()
	if err != nil {
		return hal.OpenDevice{}, err
	}
	enable := make([]string, 0, len(requiredExtensions))
	for _, req := range requiredExtensions {
		if available[req.name] {
			enable = append(enable, req.name)
			continue
		}
		if req.core != 0 && a.properties.APIVersion >= req.core {
			continue // promoted to core on this device
		}
		return hal.OpenDevice{}, &hal.MissingExtensionError{Name: req.name}
	}

	families, err := a.pickQueueFamilies()
	if err != nil {
		return hal.OpenDevice{}, err
	}

	// One DeviceQueueCreateInfo per distinct family.
	priority := float32(1.0)
	distinct := families.distinct()
	queueInfos := make([]vk.DeviceQueueCreateInfo, len(distinct))
	for i, family := range distinct {
		queueInfos[i] = vk.DeviceQueueCreateInfo{
			SType:            vk.StructureTypeDeviceQueueCreateInfo,
			QueueFamilyIndex: family,
			QueueCount:       1,
			PQueuePriorities: &priority,
		}
	}

	// Feature chain: everything the bindless design depends on.
	scalarLayout := vk.PhysicalDeviceScalarBlockLayoutFeatures{
		SType:             vk.StructureTypePhysicalDeviceScalarBlockLayoutFeatures,
		ScalarBlockLayout: vk.True,
	}
	dynamicRendering := vk.PhysicalDeviceDynamicRenderingFeatures{
		SType:            vk.StructureTypePhysicalDeviceDynamicRenderingFeatures,
		PNext:            unsafe.Pointer(&scalarLayout),
		DynamicRendering: vk.True,
	}
	bufferAddress := vk.PhysicalDeviceBufferDeviceAddressFeatures{
		SType:               vk.StructureTypePhysicalDeviceBufferDeviceAddressFeatures,
		PNext:               unsafe.Pointer(&dynamicRendering),
		BufferDeviceAddress: vk.True,
	}
	timeline := vk.PhysicalDeviceTimelineSemaphoreFeatures{
		SType:             vk.StructureTypePhysicalDeviceTimelineSemaphoreFeatures,
		PNext:             unsafe.Pointer(&bufferAddress),
		TimelineSemaphore: vk.True,
	}
	indexing := vk.PhysicalDeviceDescriptorIndexingFeatures{
		SType: vk.StructureTypePhysicalDeviceDescriptorIndexingFeatures,
		PNext: unsafe.Pointer(&timeline),
		ShaderSampledImageArrayNonUniformIndexing:     vk.True,
		DescriptorBindingSampledImageUpdateAfterBind:  vk.True,
		DescriptorBindingStorageImageUpdateAfterBind:  vk.True,
		DescriptorBindingStorageBufferUpdateAfterBind: vk.True,
		DescriptorBindingUpdateUnusedWhilePending:     vk.True,
		DescriptorBindingPartiallyBound:               vk.True,
		RuntimeDescriptorArray:                        vk.True,
	}

	extPtrs, extPin := cStringArray(enable)
	info := vk.DeviceCreateInfo{
		SType:                   vk.StructureTypeDeviceCreateInfo,
		PNext:                   unsafe.Pointer(&indexing),
		QueueCreateInfoCount:    uint32(len(queueInfos)),
		PQueueCreateInfos:       &queueInfos[0],
		EnabledExtensionCount:   uint32(len(enable)),
		PpEnabledExtensionNames: extPtrs,
	}

	var handle vk.Device
	if result := cmds.CreateDevice(a.physicalDevice, &info, &handle); result != vk.Success {
		return hal.OpenDevice{}, fmt.Errorf("vulkan: vkCreateDevice failed: %d", result)
	}
	_ = extPin

	if err := cmds.LoadDevice(handle); err != nil {
		cmds.DestroyDevice(handle)
		return hal.OpenDevice{}, err
	}

	dev := &Device{
		handle:         handle,
		physicalDevice: a.physicalDevice,
		cmds:           cmds,
		instance:       a.instance,
		limits:         a.properties.Limits,
		families:       families,
	}
	if err := dev.initAllocator(); err != nil {
		cmds.DestroyDevice(handle)
		return hal.OpenDevice{}, err
	}
	if err := dev.initPipelineCache(nil); err != nil {
		cmds.DestroyDevice(handle)
		return hal.OpenDevice{}, err
	}

	queues := newQueueSet(dev, families)
	dev.queues = queues
	a.instance.activeDevice = dev
	return hal.OpenDevice{Device: dev, Queues: queues}, nil
}

func (a *Adapter) deviceExtensions() (map[string]bool, error) {
	cmds := a.instance.cmds
	var count uint32
	if result := cmds.EnumerateDeviceExtensionProperties(a.physicalDevice, &count, nil); result != vk.Success {
		return nil, fmt.Errorf("vulkan: extension enumeration failed: %d", result)
	}
	props := make([]vk.ExtensionProperties, count)
	if count > 0 {
		if result := cmds.EnumerateDeviceExtensionProperties(a.physicalDevice, &count, &props[0]); result != vk.Success {
			return nil, fmt.Errorf("vulkan: extension enumeration failed: %d", result)
		}
	}
	out := make(map[string]bool, count)
	for _, p := range props[:count] {
		name := p.ExtensionName[:]
		n := 0
		for n < len(name) && name[n] != 0 {
			n++
		}
		out[string(name[:n])] = true
	}
	return out, nil
}

// queueFamilies maps each queue kind to its family index. Kinds may
// alias the same family.
type queueFamilies struct {
	graphics uint32
	compute  uint32
	transfer uint32
}

func (f queueFamilies) distinct() []uint32 {
	out := []uint32{f.graphics}
	if f.compute != f.graphics {
		out = append(out, f.compute)
	}
	if f.transfer != f.graphics && f.transfer != f.compute {
		out = append(out, f.transfer)
	}
	return out
}

// pickQueueFamilies selects the graphics family, a compute family
// (preferring one distinct from graphics) and a transfer family when a
// disjoint one exists.
func (a *Adapter) pickQueueFamilies() (queueFamilies, error) {
	cmds := a.instance.cmds
	var count uint32
	cmds.GetPhysicalDeviceQueueFamilyProperties(a.physicalDevice, &count, nil)
	if count == 0 {
		return queueFamilies{}, &hal.QueueFamilyError{Kind: hal.QueueGraphics}
	}
	props := make([]vk.QueueFamilyProperties, count)
	cmds.GetPhysicalDeviceQueueFamilyProperties(a.physicalDevice, &count, &props[0])

	graphics := int32(-1)
	compute := int32(-1)
	transfer := int32(-1)
	for i, p := range props[:count] {
		switch {
		case p.QueueFlags&vk.QueueGraphicsBit != 0 && graphics < 0:
			graphics = int32(i)
		case p.QueueFlags&vk.QueueComputeBit != 0 && compute < 0:
			compute = int32(i)
		case p.QueueFlags&vk.QueueTransferBit != 0 &&
			p.QueueFlags&(vk.QueueGraphicsBit|vk.QueueComputeBit) == 0 && transfer < 0:
			transfer = int32(i)
		}
	}
	if graphics < 0 {
		return queueFamilies{}, &hal.QueueFamilyError{Kind: hal.QueueGraphics}
	}
	if compute < 0 {
		compute = graphics
	}
	if transfer < 0 {
		transfer = graphics
	}
	return queueFamilies{
		graphics: uint32(graphics),
		compute:  uint32(compute),
		transfer: uint32(transfer),
	}, nil
}
