// Copyright 2025 Coalition of Freeware Developers
// SPDX-License-Identifier: MIT

package vulkan

import (
	"fmt"
	"unsafe"

	"github.com/Coalition-of-Freeware-Developers/Scenery-Editor-X-sub000/hal"
	"github.com/Coalition-of-Freeware-Developers/Scenery-Editor-X-sub000/hal/vulkan/memory"
	"github.com/Coalition-of-Freeware-Developers/Scenery-Editor-X-sub000/hal/vulkan/vk"
)

// Device implements hal.Device for Vulkan.
type Device struct {
	handle         vk.Device
	physicalDevice vk.PhysicalDevice
	instance       *Instance
	cmds           *vk.Commands
	limits         vk.PhysicalDeviceLimits
	families       queueFamilies
	queues         *queueSet

	allocator     *memory.Allocator
	pipelineCache vk.PipelineCache
}

func (d *Device) initAllocator() error {
	var vkProps vk.PhysicalDeviceMemoryProperties
	d.cmds.GetPhysicalDeviceMemoryProperties(d.physicalDevice, &vkProps)

	props := memory.DeviceProperties{
		MemoryTypes: make([]vk.MemoryType, vkProps.MemoryTypeCount),
		MemoryHeaps: make([]vk.MemoryHeap, vkProps.MemoryHeapCount),
	}
	copy(props.MemoryTypes, vkProps.MemoryTypes[:vkProps.MemoryTypeCount])
	copy(props.MemoryHeaps, vkProps.MemoryHeaps[:vkProps.MemoryHeapCount])

	allocator, err := memory.New(d.handle, d.cmds, props, memory.DefaultConfig())
	if err != nil {
		return fmt.Errorf("vulkan: allocator: %w", err)
	}
	d.allocator = allocator
	return nil
}

func (d *Device) initPipelineCache(initial []byte) error {
	info := vk.PipelineCacheCreateInfo{
		SType: vk.StructureTypePipelineCacheCreateInfo,
	}
	if len(initial) > 0 {
		info.InitialDataSize = uintptr(len(initial))
		info.PInitialData = unsafe.Pointer(&initial[0])
	}
	if result := d.cmds.CreatePipelineCache(d.handle, &info, &d.pipelineCache); result != vk.Success {
		return fmt.Errorf("vulkan: vkCreatePipelineCache failed: %d", result)
	}
	return nil
}

// Limits reports the device properties the core consumes.
func (d *Device) Limits() hal.DeviceLimits {
	return hal.DeviceLimits{
		MinUniformBufferOffsetAlignment: d.limits.MinUniformBufferOffsetAlignment,
		MinStorageBufferOffsetAlignment: d.limits.MinStorageBufferOffsetAlignment,
		MaxSamplerAnisotropy:            d.limits.MaxSamplerAnisotropy,
		TimestampPeriodNs:               d.limits.TimestampPeriod,
	}
}

// Buffer implements hal.Buffer.
type Buffer struct {
	handle     vk.Buffer
	allocation *memory.Allocation
	strategy   memory.Strategy
	size       uint64
	hostClass  bool
	device     *Device
}

// Destroy releases the buffer through its device.
func (b *Buffer) Destroy() {
	if b.device != nil {
		b.device.DestroyBuffer(b)
	}
}

// CreateBuffer creates the VkBuffer and binds suballocated memory.
func (d *Device) CreateBuffer(desc *hal.BufferDescriptor) (hal.Buffer, error) {
	if desc.Size == 0 {
		return nil, fmt.Errorf("vulkan: buffer size must be > 0")
	}

	info := vk.BufferCreateInfo{
		SType:       vk.StructureTypeBufferCreateInfo,
		Size:        desc.Size,
		Usage:       bufferUsageToVk(desc.Usage),
		SharingMode: vk.SharingModeExclusive,
	}
	var handle vk.Buffer
	if result := d.cmds.CreateBuffer(d.handle, &info, &handle); result != vk.Success {
		return nil, vkResultToError(result, desc.Size)
	}

	var reqs vk.MemoryRequirements
	d.cmds.GetBufferMemoryRequirements(d.handle, handle, &reqs)

	usage := memory.UsageDeviceLocal
	if desc.Memory == hal.MemoryCPUCoherent {
		usage = memory.UsageHostCoherent
	}
	allocation, err := d.allocator.Alloc(memory.Request{
		Size:           reqs.Size,
		Alignment:      reqs.Alignment,
		Usage:          usage,
		MemoryTypeBits: reqs.MemoryTypeBits,
		Strategy:       strategyToMemory(desc.Strategy),
	})
	if err != nil {
		d.cmds.DestroyBuffer(d.handle, handle)
		return nil, err
	}
	if result := d.cmds.BindBufferMemory(d.handle, handle, allocation.Memory, allocation.Offset); result != vk.Success {
		_ = d.allocator.Free(allocation, strategyToMemory(desc.Strategy))
		d.cmds.DestroyBuffer(d.handle, handle)
		return nil, fmt.Errorf("vulkan: vkBindBufferMemory failed: %d", result)
	}

	return &Buffer{
		handle:     handle,
		allocation: allocation,
		strategy:   strategyToMemory(desc.Strategy),
		size:       desc.Size,
		hostClass:  desc.Memory == hal.MemoryCPUCoherent,
		device:     d,
	}, nil
}

// DestroyBuffer releases the buffer and its memory.
func (d *Device) DestroyBuffer(buffer hal.Buffer) {
	b := buffer.(*Buffer)
	d.cmds.DestroyBuffer(d.handle, b.handle)
	if err := d.allocator.Free(b.allocation, b.strategy); err != nil {
		hal.Logger().Error("buffer memory free failed",
			"component", "vulkan", "error", err)
	}
}

// Map exposes the buffer's memory to the host.
func (d *Device) Map(buffer hal.Buffer) ([]byte, error) {
	b := buffer.(*Buffer)
	if !b.hostClass {
		return nil, hal.ErrMappingFailed
	}
	data, err := d.allocator.Map(b.allocation)
	if err != nil {
		return nil, hal.ErrMappingFailed
	}
	return data[:b.size], nil
}

// Unmap releases a prior Map.
func (d *Device) Unmap(buffer hal.Buffer) error {
	b := buffer.(*Buffer)
	if err := d.allocator.Unmap(b.allocation); err != nil {
		return hal.ErrNotMapped
	}
	return nil
}

// Image implements hal.Image.
type Image struct {
	handle     vk.Image
	allocation *memory.Allocation
	strategy   memory.Strategy
	format     vk.Format
	external   bool // swapchain images are not owned
	device     *Device
}

// Destroy releases the image through its device. Swapchain images are
// owned by the swapchain and skipped.
func (img *Image) Destroy() {
	if img.device != nil && !img.external {
		img.device.DestroyImage(img)
	}
}

// CreateImage creates the VkImage and binds suballocated memory.
func (d *Device) CreateImage(desc *hal.ImageDescriptor) (hal.Image, error) {
	imageType := vk.ImageType2D
	if desc.Extent.DepthOrArrayLayers > 1 && desc.ArrayLayers == 1 {
		imageType = vk.ImageType3D
	}
	info := vk.ImageCreateInfo{
		SType:     vk.StructureTypeImageCreateInfo,
		ImageType: imageType,
		Format:    formatToVk(desc.Format),
		Extent: vk.Extent3D{
			Width:  desc.Extent.Width,
			Height: desc.Extent.Height,
			Depth:  max32(desc.Extent.DepthOrArrayLayers, 1),
		},
		MipLevels:     desc.MipLevels,
		ArrayLayers:   desc.ArrayLayers,
		Samples:       vk.SampleCountFlags(desc.SampleCount),
		Tiling:        vk.ImageTilingOptimal,
		Usage:         imageUsageToVk(desc.Usage),
		SharingMode:   vk.SharingModeExclusive,
		InitialLayout: vk.ImageLayoutUndefined,
	}
	var handle vk.Image
	if result := d.cmds.CreateImage(d.handle, &info, &handle); result != vk.Success {
		return nil, vkResultToError(result, 0)
	}

	var reqs vk.MemoryRequirements
	d.cmds.GetImageMemoryRequirements(d.handle, handle, &reqs)

	allocation, err := d.allocator.Alloc(memory.Request{
		Size:           reqs.Size,
		Alignment:      reqs.Alignment,
		Usage:          memory.UsageDeviceLocal,
		MemoryTypeBits: reqs.MemoryTypeBits,
		Strategy:       strategyToMemory(desc.Strategy),
	})
	if err != nil {
		d.cmds.DestroyImage(d.handle, handle)
		return nil, err
	}
	if result := d.cmds.BindImageMemory(d.handle, handle, allocation.Memory, allocation.Offset); result != vk.Success {
		_ = d.allocator.Free(allocation, strategyToMemory(desc.Strategy))
		d.cmds.DestroyImage(d.handle, handle)
		return nil, fmt.Errorf("vulkan: vkBindImageMemory failed: %d", result)
	}

	return &Image{
		handle:     handle,
		allocation: allocation,
		strategy:   strategyToMemory(desc.Strategy),
		format:     formatToVk(desc.Format),
		device:     d,
	}, nil
}

// DestroyImage releases the image and its memory. Swapchain images are
// owned by the swapchain and skipped.
func (d *Device) DestroyImage(image hal.Image) {
	img := image.(*Image)
	if img.external {
		return
	}
	d.cmds.DestroyImage(d.handle, img.handle)
	if img.allocation != nil {
		if err := d.allocator.Free(img.allocation, img.strategy); err != nil {
			hal.Logger().Error("image memory free failed",
				"component", "vulkan", "error", err)
		}
	}
}

// ImageView implements hal.ImageView.
type ImageView struct {
	handle vk.ImageView
	device *Device
}

// Destroy releases the view through its device.
func (v *ImageView) Destroy() {
	if v.device != nil {
		v.device.DestroyImageView(v)
	}
}

// CreateImageView creates a view over the image subresource range.
func (d *Device) CreateImageView(image hal.Image, desc *hal.ImageViewDescriptor) (hal.ImageView, error) {
	img := image.(*Image)
	viewType := vk.ImageViewType2D
	if desc.ArrayLayers > 1 {
		viewType = vk.ImageViewType2DArray
	}
	layerCount := desc.ArrayLayers
	if layerCount == 0 {
		layerCount = 1
	}
	levelCount := desc.MipLevelCount
	if levelCount == 0 {
		levelCount = 1
	}
	info := vk.ImageViewCreateInfo{
		SType:    vk.StructureTypeImageViewCreateInfo,
		Image:    img.handle,
		ViewType: viewType,
		Format:   formatToVk(desc.Format),
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask:     aspectToVk(desc.Aspect, desc.Format),
			BaseMipLevel:   desc.BaseMipLevel,
			LevelCount:     levelCount,
			BaseArrayLayer: desc.BaseArrayLayer,
			LayerCount:     layerCount,
		},
	}
	var handle vk.ImageView
	if result := d.cmds.CreateImageView(d.handle, &info, &handle); result != vk.Success {
		return nil, fmt.Errorf("vulkan: vkCreateImageView failed: %d", result)
	}
	return &ImageView{handle: handle, device: d}, nil
}

// DestroyImageView releases the view.
func (d *Device) DestroyImageView(view hal.ImageView) {
	d.cmds.DestroyImageView(d.handle, view.(*ImageView).handle)
}

// Sampler implements hal.Sampler.
type Sampler struct {
	handle vk.Sampler
	device *Device
}

// Destroy releases the sampler through its device.
func (s *Sampler) Destroy() {
	if s.device != nil {
		s.device.DestroySampler(s)
	}
}

// CreateSampler creates a sampler from the state description.
func (d *Device) CreateSampler(desc *hal.SamplerDescriptor) (hal.Sampler, error) {
	info := samplerDescToVk(desc)
	var handle vk.Sampler
	if result := d.cmds.CreateSampler(d.handle, &info, &handle); result != vk.Success {
		return nil, fmt.Errorf("vulkan: vkCreateSampler failed: %d", result)
	}
	return &Sampler{handle: handle, device: d}, nil
}

// DestroySampler releases the sampler.
func (d *Device) DestroySampler(sampler hal.Sampler) {
	d.cmds.DestroySampler(d.handle, sampler.(*Sampler).handle)
}

// PipelineState is an opaque fixed-function state token. Vulkan bakes
// these states into pipelines at pipeline-creation time; the token's
// identity (kind, hash) is what the pipeline assembler keys on.
type PipelineState struct {
	Kind hal.StateKind
	Hash uint64
}

// Destroy is a no-op for state tokens.
func (*PipelineState) Destroy() {}

// CreatePipelineState bakes a state token.
func (d *Device) CreatePipelineState(kind hal.StateKind, hash uint64) (hal.PipelineState, error) {
	return &PipelineState{Kind: kind, Hash: hash}, nil
}

// DestroyPipelineState is a no-op for tokens.
func (d *Device) DestroyPipelineState(state hal.PipelineState) {}

// PipelineCacheData serializes the driver pipeline cache.
func (d *Device) PipelineCacheData() ([]byte, error) {
	var size uintptr
	if result := d.cmds.GetPipelineCacheData(d.handle, d.pipelineCache, &size, nil); result != vk.Success {
		return nil, fmt.Errorf("vulkan: vkGetPipelineCacheData failed: %d", result)
	}
	if size == 0 {
		return nil, nil
	}
	data := make([]byte, size)
	if result := d.cmds.GetPipelineCacheData(d.handle, d.pipelineCache, &size, unsafe.Pointer(&data[0])); result != vk.Success {
		return nil, fmt.Errorf("vulkan: vkGetPipelineCacheData failed: %d", result)
	}
	return data[:size], nil
}

// LoadPipelineCache replaces the cache with one seeded from data.
func (d *Device) LoadPipelineCache(data []byte) error {
	if d.pipelineCache != 0 {
		d.cmds.DestroyPipelineCache(d.handle, d.pipelineCache)
		d.pipelineCache = 0
	}
	return d.initPipelineCache(data)
}

// WaitIdle blocks until all queues drain.
func (d *Device) WaitIdle() error {
	if result := d.cmds.DeviceWaitIdle(d.handle); result != vk.Success {
		return vkResultToError(result, 0)
	}
	return nil
}

// Destroy releases the device-level objects and the device itself.
func (d *Device) Destroy() {
	if d.pipelineCache != 0 {
		d.cmds.DestroyPipelineCache(d.handle, d.pipelineCache)
		d.pipelineCache = 0
	}
	if d.allocator != nil {
		d.allocator.Destroy()
		d.allocator = nil
	}
	if d.handle != 0 {
		d.cmds.DestroyDevice(d.handle)
		d.handle = 0
	}
}

func max32(a, b uint32) uint32 {
	if a > b {
		return a
	}
	return b
}
