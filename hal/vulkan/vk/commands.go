// Copyright 2025 Coalition of Freeware Developers
// SPDX-License-Identifier: MIT

package vk

import (
	"fmt"
	"unsafe"

	"github.com/go-webgpu/goffi/ffi"
	"github.com/go-webgpu/goffi/types"
)

// Commands is the resolved function-pointer table. Function pointers are
// loaded in three stages: LoadGlobal, LoadInstance, LoadDevice.
type Commands struct {
	// Global.
	createInstance unsafe.Pointer

	// Instance level.
	destroyInstance                          unsafe.Pointer
	enumeratePhysicalDevices                 unsafe.Pointer
	getPhysicalDeviceProperties              unsafe.Pointer
	getPhysicalDeviceQueueFamilyProperties   unsafe.Pointer
	getPhysicalDeviceMemoryProperties        unsafe.Pointer
	enumerateDeviceExtensionProperties       unsafe.Pointer
	createDevice                             unsafe.Pointer
	destroySurfaceKHR                        unsafe.Pointer
	getPhysicalDeviceSurfaceCapabilitiesKHR  unsafe.Pointer
	getPhysicalDeviceSurfaceFormatsKHR       unsafe.Pointer
	getPhysicalDeviceSurfacePresentModesKHR  unsafe.Pointer

	// Device level.
	destroyDevice               unsafe.Pointer
	getDeviceQueue              unsafe.Pointer
	queueSubmit                 unsafe.Pointer
	queueWaitIdle               unsafe.Pointer
	deviceWaitIdle              unsafe.Pointer
	allocateMemory              unsafe.Pointer
	freeMemory                  unsafe.Pointer
	mapMemory                   unsafe.Pointer
	unmapMemory                 unsafe.Pointer
	createBuffer                unsafe.Pointer
	destroyBuffer               unsafe.Pointer
	getBufferMemoryRequirements unsafe.Pointer
	bindBufferMemory            unsafe.Pointer
	createImage                 unsafe.Pointer
	destroyImage                unsafe.Pointer
	getImageMemoryRequirements  unsafe.Pointer
	bindImageMemory             unsafe.Pointer
	createImageView             unsafe.Pointer
	destroyImageView            unsafe.Pointer
	createSampler               unsafe.Pointer
	destroySampler              unsafe.Pointer
	createFence                 unsafe.Pointer
	destroyFence                unsafe.Pointer
	getFenceStatus              unsafe.Pointer
	resetFences                 unsafe.Pointer
	waitForFences               unsafe.Pointer
	createSemaphore             unsafe.Pointer
	destroySemaphore            unsafe.Pointer
	signalSemaphore             unsafe.Pointer
	waitSemaphores              unsafe.Pointer
	getSemaphoreCounterValue    unsafe.Pointer
	createCommandPool           unsafe.Pointer
	destroyCommandPool          unsafe.Pointer
	allocateCommandBuffers      unsafe.Pointer
	freeCommandBuffers          unsafe.Pointer
	beginCommandBuffer          unsafe.Pointer
	endCommandBuffer            unsafe.Pointer
	resetCommandBuffer          unsafe.Pointer
	cmdCopyBuffer               unsafe.Pointer
	cmdCopyBufferToImage        unsafe.Pointer
	cmdPipelineBarrier          unsafe.Pointer
	cmdBlitImage                unsafe.Pointer
	createDescriptorSetLayout   unsafe.Pointer
	destroyDescriptorSetLayout  unsafe.Pointer
	createDescriptorPool        unsafe.Pointer
	destroyDescriptorPool       unsafe.Pointer
	allocateDescriptorSets      unsafe.Pointer
	updateDescriptorSets        unsafe.Pointer
	createPipelineCache         unsafe.Pointer
	destroyPipelineCache        unsafe.Pointer
	getPipelineCacheData        unsafe.Pointer
	createSwapchainKHR          unsafe.Pointer
	destroySwapchainKHR         unsafe.Pointer
	getSwapchainImagesKHR       unsafe.Pointer
	acquireNextImageKHR         unsafe.Pointer
	queuePresentKHR             unsafe.Pointer
	platformCreateSurface       unsafe.Pointer
}

// NewCommands returns an empty table; call the Load* methods before use.
func NewCommands() *Commands { return &Commands{} }

// LoadGlobal resolves pre-instance functions.
func (c *Commands) LoadGlobal() error {
	c.createInstance = GetInstanceProcAddr(0, "vkCreateInstance")
	if c.createInstance == nil {
		return fmt.Errorf("vk: failed to load vkCreateInstance")
	}
	return nil
}

// LoadInstance resolves instance-level and WSI functions. Must be called
// after vkCreateInstance succeeds.
func (c *Commands) LoadInstance(instance Instance) error {
	if instance == 0 {
		return fmt.Errorf("vk: invalid instance handle")
	}
	SetDeviceProcAddr(instance)

	c.destroyInstance = GetInstanceProcAddr(instance, "vkDestroyInstance")
	c.enumeratePhysicalDevices = GetInstanceProcAddr(instance, "vkEnumeratePhysicalDevices")
	c.getPhysicalDeviceProperties = GetInstanceProcAddr(instance, "vkGetPhysicalDeviceProperties")
	c.getPhysicalDeviceQueueFamilyProperties = GetInstanceProcAddr(instance, "vkGetPhysicalDeviceQueueFamilyProperties")
	c.getPhysicalDeviceMemoryProperties = GetInstanceProcAddr(instance, "vkGetPhysicalDeviceMemoryProperties")
	c.enumerateDeviceExtensionProperties = GetInstanceProcAddr(instance, "vkEnumerateDeviceExtensionProperties")
	c.createDevice = GetInstanceProcAddr(instance, "vkCreateDevice")

	c.destroySurfaceKHR = GetInstanceProcAddr(instance, "vkDestroySurfaceKHR")
	c.getPhysicalDeviceSurfaceCapabilitiesKHR = GetInstanceProcAddr(instance, "vkGetPhysicalDeviceSurfaceCapabilitiesKHR")
	c.getPhysicalDeviceSurfaceFormatsKHR = GetInstanceProcAddr(instance, "vkGetPhysicalDeviceSurfaceFormatsKHR")
	c.getPhysicalDeviceSurfacePresentModesKHR = GetInstanceProcAddr(instance, "vkGetPhysicalDeviceSurfacePresentModesKHR")
	c.platformCreateSurface = GetInstanceProcAddr(instance, platformSurfaceCommand)

	if c.destroyInstance == nil || c.enumeratePhysicalDevices == nil || c.createDevice == nil {
		return fmt.Errorf("vk: failed to load critical instance functions")
	}
	return nil
}

// LoadDevice resolves device-level functions. Must be called after
// vkCreateDevice succeeds.
func (c *Commands) LoadDevice(device Device) error {
	if device == 0 {
		return fmt.Errorf("vk: invalid device handle")
	}
	load := func(name string) unsafe.Pointer { return GetDeviceProcAddr(device, name) }

	c.destroyDevice = load("vkDestroyDevice")
	c.getDeviceQueue = load("vkGetDeviceQueue")
	c.queueSubmit = load("vkQueueSubmit")
	c.queueWaitIdle = load("vkQueueWaitIdle")
	c.deviceWaitIdle = load("vkDeviceWaitIdle")
	c.allocateMemory = load("vkAllocateMemory")
	c.freeMemory = load("vkFreeMemory")
	c.mapMemory = load("vkMapMemory")
	c.unmapMemory = load("vkUnmapMemory")
	c.createBuffer = load("vkCreateBuffer")
	c.destroyBuffer = load("vkDestroyBuffer")
	c.getBufferMemoryRequirements = load("vkGetBufferMemoryRequirements")
	c.bindBufferMemory = load("vkBindBufferMemory")
	c.createImage = load("vkCreateImage")
	c.destroyImage = load("vkDestroyImage")
	c.getImageMemoryRequirements = load("vkGetImageMemoryRequirements")
	c.bindImageMemory = load("vkBindImageMemory")
	c.createImageView = load("vkCreateImageView")
	c.destroyImageView = load("vkDestroyImageView")
	c.createSampler = load("vkCreateSampler")
	c.destroySampler = load("vkDestroySampler")
	c.createFence = load("vkCreateFence")
	c.destroyFence = load("vkDestroyFence")
	c.getFenceStatus = load("vkGetFenceStatus")
	c.resetFences = load("vkResetFences")
	c.waitForFences = load("vkWaitForFences")
	c.createSemaphore = load("vkCreateSemaphore")
	c.destroySemaphore = load("vkDestroySemaphore")
	c.signalSemaphore = load("vkSignalSemaphore")
	c.waitSemaphores = load("vkWaitSemaphores")
	c.getSemaphoreCounterValue = load("vkGetSemaphoreCounterValue")
	c.createCommandPool = load("vkCreateCommandPool")
	c.destroyCommandPool = load("vkDestroyCommandPool")
	c.allocateCommandBuffers = load("vkAllocateCommandBuffers")
	c.freeCommandBuffers = load("vkFreeCommandBuffers")
	c.beginCommandBuffer = load("vkBeginCommandBuffer")
	c.endCommandBuffer = load("vkEndCommandBuffer")
	c.resetCommandBuffer = load("vkResetCommandBuffer")
	c.cmdCopyBuffer = load("vkCmdCopyBuffer")
	c.cmdCopyBufferToImage = load("vkCmdCopyBufferToImage")
	c.cmdPipelineBarrier = load("vkCmdPipelineBarrier")
	c.cmdBlitImage = load("vkCmdBlitImage")
	c.createDescriptorSetLayout = load("vkCreateDescriptorSetLayout")
	c.destroyDescriptorSetLayout = load("vkDestroyDescriptorSetLayout")
	c.createDescriptorPool = load("vkCreateDescriptorPool")
	c.destroyDescriptorPool = load("vkDestroyDescriptorPool")
	c.allocateDescriptorSets = load("vkAllocateDescriptorSets")
	c.updateDescriptorSets = load("vkUpdateDescriptorSets")
	c.createPipelineCache = load("vkCreatePipelineCache")
	c.destroyPipelineCache = load("vkDestroyPipelineCache")
	c.getPipelineCacheData = load("vkGetPipelineCacheData")
	c.createSwapchainKHR = load("vkCreateSwapchainKHR")
	c.destroySwapchainKHR = load("vkDestroySwapchainKHR")
	c.getSwapchainImagesKHR = load("vkGetSwapchainImagesKHR")
	c.acquireNextImageKHR = load("vkAcquireNextImageKHR")
	c.queuePresentKHR = load("vkQueuePresentKHR")

	if c.destroyDevice == nil || c.queueSubmit == nil || c.createBuffer == nil {
		return fmt.Errorf("vk: failed to load critical device functions")
	}
	return nil
}

// HasTimelineSemaphore reports whether the timeline entry points resolved.
func (c *Commands) HasTimelineSemaphore() bool {
	return c.waitSemaphores != nil && c.signalSemaphore != nil && c.getSemaphoreCounterValue != nil
}

// --- call helpers ---

func callResult(cif *types.CallInterface, fn unsafe.Pointer, args []unsafe.Pointer) Result {
	if fn == nil {
		return ErrorInitFailed
	}
	var result int32
	if err := ffi.CallFunction(cif, fn, unsafe.Pointer(&result), args); err != nil {
		return ErrorInitFailed
	}
	return Result(result)
}

func callVoid(cif *types.CallInterface, fn unsafe.Pointer, args []unsafe.Pointer) {
	if fn == nil {
		return
	}
	_ = ffi.CallFunction(cif, fn, nil, args)
}

// --- wrappers ---

// CreateInstance wraps vkCreateInstance.
func (c *Commands) CreateInstance(info *InstanceCreateInfo, out *Instance) Result {
	infoPtr := unsafe.Pointer(info)
	var allocPtr unsafe.Pointer
	outPtr := unsafe.Pointer(out)
	args := [3]unsafe.Pointer{
		unsafe.Pointer(&infoPtr),
		unsafe.Pointer(&allocPtr),
		unsafe.Pointer(&outPtr),
	}
	return callResult(&sigResultPtrPtrPtr, c.createInstance, args[:])
}

// DestroyInstance wraps vkDestroyInstance.
func (c *Commands) DestroyInstance(instance Instance) {
	var allocPtr unsafe.Pointer
	args := [2]unsafe.Pointer{unsafe.Pointer(&instance), unsafe.Pointer(&allocPtr)}
	callVoid(&sigVoidHandlePtr, c.destroyInstance, args[:])
}

// EnumeratePhysicalDevices wraps vkEnumeratePhysicalDevices.
func (c *Commands) EnumeratePhysicalDevices(instance Instance, count *uint32, out *PhysicalDevice) Result {
	countPtr := unsafe.Pointer(count)
	outPtr := unsafe.Pointer(out)
	args := [3]unsafe.Pointer{
		unsafe.Pointer(&instance),
		unsafe.Pointer(&countPtr),
		unsafe.Pointer(&outPtr),
	}
	return callResult(&sigResultHandlePtrPtr, c.enumeratePhysicalDevices, args[:])
}

// GetPhysicalDeviceProperties wraps vkGetPhysicalDeviceProperties.
func (c *Commands) GetPhysicalDeviceProperties(pd PhysicalDevice, props *PhysicalDeviceProperties) {
	propsPtr := unsafe.Pointer(props)
	args := [2]unsafe.Pointer{unsafe.Pointer(&pd), unsafe.Pointer(&propsPtr)}
	callVoid(&sigVoidHandlePtr, c.getPhysicalDeviceProperties, args[:])
}

// GetPhysicalDeviceQueueFamilyProperties wraps the enumeration.
func (c *Commands) GetPhysicalDeviceQueueFamilyProperties(pd PhysicalDevice, count *uint32, out *QueueFamilyProperties) {
	countPtr := unsafe.Pointer(count)
	outPtr := unsafe.Pointer(out)
	args := [3]unsafe.Pointer{
		unsafe.Pointer(&pd),
		unsafe.Pointer(&countPtr),
		unsafe.Pointer(&outPtr),
	}
	callVoid(&sigVoidHandlePtrPtr, c.getPhysicalDeviceQueueFamilyProperties, args[:])
}

// GetPhysicalDeviceMemoryProperties wraps the memory query.
func (c *Commands) GetPhysicalDeviceMemoryProperties(pd PhysicalDevice, props *PhysicalDeviceMemoryProperties) {
	propsPtr := unsafe.Pointer(props)
	args := [2]unsafe.Pointer{unsafe.Pointer(&pd), unsafe.Pointer(&propsPtr)}
	callVoid(&sigVoidHandlePtr, c.getPhysicalDeviceMemoryProperties, args[:])
}

// EnumerateDeviceExtensionProperties wraps the extension enumeration.
func (c *Commands) EnumerateDeviceExtensionProperties(pd PhysicalDevice, count *uint32, out *ExtensionProperties) Result {
	var layerPtr unsafe.Pointer // pLayerName = NULL
	countPtr := unsafe.Pointer(count)
	outPtr := unsafe.Pointer(out)
	args := [4]unsafe.Pointer{
		unsafe.Pointer(&pd),
		unsafe.Pointer(&layerPtr),
		unsafe.Pointer(&countPtr),
		unsafe.Pointer(&outPtr),
	}
	return callResult(&sigResultHandlePtrPtrPtr, c.enumerateDeviceExtensionProperties, args[:])
}

// CreateDevice wraps vkCreateDevice.
func (c *Commands) CreateDevice(pd PhysicalDevice, info *DeviceCreateInfo, out *Device) Result {
	infoPtr := unsafe.Pointer(info)
	var allocPtr unsafe.Pointer
	outPtr := unsafe.Pointer(out)
	args := [4]unsafe.Pointer{
		unsafe.Pointer(&pd),
		unsafe.Pointer(&infoPtr),
		unsafe.Pointer(&allocPtr),
		unsafe.Pointer(&outPtr),
	}
	return callResult(&sigResultHandlePtrPtrPtr, c.createDevice, args[:])
}

// DestroyDevice wraps vkDestroyDevice.
func (c *Commands) DestroyDevice(device Device) {
	var allocPtr unsafe.Pointer
	args := [2]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&allocPtr)}
	callVoid(&sigVoidHandlePtr, c.destroyDevice, args[:])
}

// GetDeviceQueue wraps vkGetDeviceQueue.
func (c *Commands) GetDeviceQueue(device Device, family, index uint32, out *Queue) {
	outPtr := unsafe.Pointer(out)
	args := [4]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&family),
		unsafe.Pointer(&index),
		unsafe.Pointer(&outPtr),
	}
	callVoid(&sigVoidHandleU32U32Ptr, c.getDeviceQueue, args[:])
}

// QueueSubmit wraps vkQueueSubmit.
func (c *Commands) QueueSubmit(queue Queue, submitCount uint32, submits *SubmitInfo, fence Fence) Result {
	submitsPtr := unsafe.Pointer(submits)
	args := [4]unsafe.Pointer{
		unsafe.Pointer(&queue),
		unsafe.Pointer(&submitCount),
		unsafe.Pointer(&submitsPtr),
		unsafe.Pointer(&fence),
	}
	return callResult(&sigResultHandleU32PtrHandle, c.queueSubmit, args[:])
}

// QueueWaitIdle wraps vkQueueWaitIdle.
func (c *Commands) QueueWaitIdle(queue Queue) Result {
	args := [1]unsafe.Pointer{unsafe.Pointer(&queue)}
	return callResult(&sigResultHandle, c.queueWaitIdle, args[:])
}

// DeviceWaitIdle wraps vkDeviceWaitIdle.
func (c *Commands) DeviceWaitIdle(device Device) Result {
	args := [1]unsafe.Pointer{unsafe.Pointer(&device)}
	return callResult(&sigResultHandle, c.deviceWaitIdle, args[:])
}

// AllocateMemory wraps vkAllocateMemory.
func (c *Commands) AllocateMemory(device Device, info *MemoryAllocateInfo, out *DeviceMemory) Result {
	infoPtr := unsafe.Pointer(info)
	var allocPtr unsafe.Pointer
	outPtr := unsafe.Pointer(out)
	args := [4]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&infoPtr),
		unsafe.Pointer(&allocPtr),
		unsafe.Pointer(&outPtr),
	}
	return callResult(&sigResultHandlePtrPtrPtr, c.allocateMemory, args[:])
}

// FreeMemory wraps vkFreeMemory.
func (c *Commands) FreeMemory(device Device, memory DeviceMemory) {
	var allocPtr unsafe.Pointer
	args := [3]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&memory),
		unsafe.Pointer(&allocPtr),
	}
	callVoid(&sigVoidHandleHandlePtr, c.freeMemory, args[:])
}

// MapMemory wraps vkMapMemory.
func (c *Commands) MapMemory(device Device, memory DeviceMemory, offset, size DeviceSize, out *unsafe.Pointer) Result {
	var flags uint32
	outPtr := unsafe.Pointer(out)
	args := [6]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&memory),
		unsafe.Pointer(&offset),
		unsafe.Pointer(&size),
		unsafe.Pointer(&flags),
		unsafe.Pointer(&outPtr),
	}
	return callResult(&sigResultMapMemory, c.mapMemory, args[:])
}

// UnmapMemory wraps vkUnmapMemory.
func (c *Commands) UnmapMemory(device Device, memory DeviceMemory) {
	args := [2]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&memory)}
	callVoid(&sigVoidHandleHandle, c.unmapMemory, args[:])
}

// CreateBuffer wraps vkCreateBuffer.
func (c *Commands) CreateBuffer(device Device, info *BufferCreateInfo, out *Buffer) Result {
	return c.createChild(c.createBuffer, device, unsafe.Pointer(info), unsafe.Pointer(out))
}

// DestroyBuffer wraps vkDestroyBuffer.
func (c *Commands) DestroyBuffer(device Device, buffer Buffer) {
	c.destroyChild(c.destroyBuffer, device, uint64(buffer))
}

// GetBufferMemoryRequirements wraps the query.
func (c *Commands) GetBufferMemoryRequirements(device Device, buffer Buffer, reqs *MemoryRequirements) {
	reqsPtr := unsafe.Pointer(reqs)
	args := [3]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&buffer),
		unsafe.Pointer(&reqsPtr),
	}
	callVoid(&sigVoidHandleHandlePtr, c.getBufferMemoryRequirements, args[:])
}

// BindBufferMemory wraps vkBindBufferMemory.
func (c *Commands) BindBufferMemory(device Device, buffer Buffer, memory DeviceMemory, offset DeviceSize) Result {
	args := [4]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&buffer),
		unsafe.Pointer(&memory),
		unsafe.Pointer(&offset),
	}
	return callResult(&sigResultHandleHandleHandleU64, c.bindBufferMemory, args[:])
}

// CreateImage wraps vkCreateImage.
func (c *Commands) CreateImage(device Device, info *ImageCreateInfo, out *Image) Result {
	return c.createChild(c.createImage, device, unsafe.Pointer(info), unsafe.Pointer(out))
}

// DestroyImage wraps vkDestroyImage.
func (c *Commands) DestroyImage(device Device, image Image) {
	c.destroyChild(c.destroyImage, device, uint64(image))
}

// GetImageMemoryRequirements wraps the query.
func (c *Commands) GetImageMemoryRequirements(device Device, image Image, reqs *MemoryRequirements) {
	reqsPtr := unsafe.Pointer(reqs)
	args := [3]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&image),
		unsafe.Pointer(&reqsPtr),
	}
	callVoid(&sigVoidHandleHandlePtr, c.getImageMemoryRequirements, args[:])
}

// BindImageMemory wraps vkBindImageMemory.
func (c *Commands) BindImageMemory(device Device, image Image, memory DeviceMemory, offset DeviceSize) Result {
	args := [4]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&image),
		unsafe.Pointer(&memory),
		unsafe.Pointer(&offset),
	}
	return callResult(&sigResultHandleHandleHandleU64, c.bindImageMemory, args[:])
}

// CreateImageView wraps vkCreateImageView.
func (c *Commands) CreateImageView(device Device, info *ImageViewCreateInfo, out *ImageView) Result {
	return c.createChild(c.createImageView, device, unsafe.Pointer(info), unsafe.Pointer(out))
}

// DestroyImageView wraps vkDestroyImageView.
func (c *Commands) DestroyImageView(device Device, view ImageView) {
	c.destroyChild(c.destroyImageView, device, uint64(view))
}

// CreateSampler wraps vkCreateSampler.
func (c *Commands) CreateSampler(device Device, info *SamplerCreateInfo, out *Sampler) Result {
	return c.createChild(c.createSampler, device, unsafe.Pointer(info), unsafe.Pointer(out))
}

// DestroySampler wraps vkDestroySampler.
func (c *Commands) DestroySampler(device Device, sampler Sampler) {
	c.destroyChild(c.destroySampler, device, uint64(sampler))
}

// CreateFence wraps vkCreateFence.
func (c *Commands) CreateFence(device Device, info *FenceCreateInfo, out *Fence) Result {
	return c.createChild(c.createFence, device, unsafe.Pointer(info), unsafe.Pointer(out))
}

// DestroyFence wraps vkDestroyFence.
func (c *Commands) DestroyFence(device Device, fence Fence) {
	c.destroyChild(c.destroyFence, device, uint64(fence))
}

// GetFenceStatus wraps vkGetFenceStatus.
func (c *Commands) GetFenceStatus(device Device, fence Fence) Result {
	args := [2]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&fence)}
	return callResult(&sigResultHandleHandle, c.getFenceStatus, args[:])
}

// ResetFences wraps vkResetFences.
func (c *Commands) ResetFences(device Device, count uint32, fences *Fence) Result {
	fencesPtr := unsafe.Pointer(fences)
	args := [3]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&count),
		unsafe.Pointer(&fencesPtr),
	}
	return callResult(&sigResultHandleU32Ptr, c.resetFences, args[:])
}

// WaitForFences wraps vkWaitForFences.
func (c *Commands) WaitForFences(device Device, count uint32, fences *Fence, waitAll Bool32, timeoutNs uint64) Result {
	fencesPtr := unsafe.Pointer(fences)
	args := [5]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&count),
		unsafe.Pointer(&fencesPtr),
		unsafe.Pointer(&waitAll),
		unsafe.Pointer(&timeoutNs),
	}
	return callResult(&sigResultHandleU32PtrU32U64, c.waitForFences, args[:])
}

// CreateSemaphore wraps vkCreateSemaphore.
func (c *Commands) CreateSemaphore(device Device, info *SemaphoreCreateInfo, out *Semaphore) Result {
	return c.createChild(c.createSemaphore, device, unsafe.Pointer(info), unsafe.Pointer(out))
}

// DestroySemaphore wraps vkDestroySemaphore.
func (c *Commands) DestroySemaphore(device Device, sem Semaphore) {
	c.destroyChild(c.destroySemaphore, device, uint64(sem))
}

// SignalSemaphore wraps vkSignalSemaphore (Vulkan 1.2).
func (c *Commands) SignalSemaphore(device Device, info *SemaphoreSignalInfo) Result {
	infoPtr := unsafe.Pointer(info)
	args := [2]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&infoPtr)}
	return callResult(&sigResultHandlePtr, c.signalSemaphore, args[:])
}

// WaitSemaphores wraps vkWaitSemaphores (Vulkan 1.2).
func (c *Commands) WaitSemaphores(device Device, info *SemaphoreWaitInfo, timeoutNs uint64) Result {
	infoPtr := unsafe.Pointer(info)
	args := [3]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&infoPtr),
		unsafe.Pointer(&timeoutNs),
	}
	return callResult(&sigResultHandlePtrU64, c.waitSemaphores, args[:])
}

// GetSemaphoreCounterValue wraps vkGetSemaphoreCounterValue (Vulkan 1.2).
func (c *Commands) GetSemaphoreCounterValue(device Device, sem Semaphore, out *uint64) Result {
	outPtr := unsafe.Pointer(out)
	args := [3]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&sem),
		unsafe.Pointer(&outPtr),
	}
	return callResult(&sigResultHandleHandlePtr, c.getSemaphoreCounterValue, args[:])
}

// CreateCommandPool wraps vkCreateCommandPool.
func (c *Commands) CreateCommandPool(device Device, info *CommandPoolCreateInfo, out *CommandPool) Result {
	return c.createChild(c.createCommandPool, device, unsafe.Pointer(info), unsafe.Pointer(out))
}

// DestroyCommandPool wraps vkDestroyCommandPool.
func (c *Commands) DestroyCommandPool(device Device, pool CommandPool) {
	c.destroyChild(c.destroyCommandPool, device, uint64(pool))
}

// AllocateCommandBuffers wraps vkAllocateCommandBuffers.
func (c *Commands) AllocateCommandBuffers(device Device, info *CommandBufferAllocateInfo, out *CommandBuffer) Result {
	infoPtr := unsafe.Pointer(info)
	outPtr := unsafe.Pointer(out)
	args := [3]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&infoPtr),
		unsafe.Pointer(&outPtr),
	}
	return callResult(&sigResultHandlePtrPtr, c.allocateCommandBuffers, args[:])
}

// FreeCommandBuffers wraps vkFreeCommandBuffers.
func (c *Commands) FreeCommandBuffers(device Device, pool CommandPool, count uint32, buffers *CommandBuffer) {
	buffersPtr := unsafe.Pointer(buffers)
	args := [4]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&pool),
		unsafe.Pointer(&count),
		unsafe.Pointer(&buffersPtr),
	}
	callVoid(&sigVoidHandleHandleU32Ptr, c.freeCommandBuffers, args[:])
}

// BeginCommandBuffer wraps vkBeginCommandBuffer.
func (c *Commands) BeginCommandBuffer(cb CommandBuffer, info *CommandBufferBeginInfo) Result {
	infoPtr := unsafe.Pointer(info)
	args := [2]unsafe.Pointer{unsafe.Pointer(&cb), unsafe.Pointer(&infoPtr)}
	return callResult(&sigResultHandlePtr, c.beginCommandBuffer, args[:])
}

// EndCommandBuffer wraps vkEndCommandBuffer.
func (c *Commands) EndCommandBuffer(cb CommandBuffer) Result {
	args := [1]unsafe.Pointer{unsafe.Pointer(&cb)}
	return callResult(&sigResultHandle, c.endCommandBuffer, args[:])
}

// ResetCommandBuffer wraps vkResetCommandBuffer.
func (c *Commands) ResetCommandBuffer(cb CommandBuffer, flags CommandBufferResetFlags) Result {
	args := [2]unsafe.Pointer{unsafe.Pointer(&cb), unsafe.Pointer(&flags)}
	return callResult(&sigResultHandleU32, c.resetCommandBuffer, args[:])
}

// CmdCopyBuffer wraps vkCmdCopyBuffer.
func (c *Commands) CmdCopyBuffer(cb CommandBuffer, src, dst Buffer, regionCount uint32, regions *BufferCopy) {
	regionsPtr := unsafe.Pointer(regions)
	args := [5]unsafe.Pointer{
		unsafe.Pointer(&cb),
		unsafe.Pointer(&src),
		unsafe.Pointer(&dst),
		unsafe.Pointer(&regionCount),
		unsafe.Pointer(&regionsPtr),
	}
	callVoid(&sigVoidHandleHandleHandleU32Ptr, c.cmdCopyBuffer, args[:])
}

// CmdCopyBufferToImage wraps vkCmdCopyBufferToImage.
func (c *Commands) CmdCopyBufferToImage(cb CommandBuffer, src Buffer, dst Image, layout ImageLayout, regionCount uint32, regions *BufferImageCopy) {
	regionsPtr := unsafe.Pointer(regions)
	args := [6]unsafe.Pointer{
		unsafe.Pointer(&cb),
		unsafe.Pointer(&src),
		unsafe.Pointer(&dst),
		unsafe.Pointer(&layout),
		unsafe.Pointer(&regionCount),
		unsafe.Pointer(&regionsPtr),
	}
	callVoid(&sigVoidHandleHandleHandleU32U32Ptr, c.cmdCopyBufferToImage, args[:])
}

// CmdPipelineBarrier wraps vkCmdPipelineBarrier for image barriers only;
// the engine's transitions never use buffer or global barriers.
func (c *Commands) CmdPipelineBarrier(cb CommandBuffer, srcStage, dstStage PipelineStageFlags, barrierCount uint32, barriers *ImageMemoryBarrier) {
	var deps DependencyFlags
	var zero uint32
	var nilPtr unsafe.Pointer
	barriersPtr := unsafe.Pointer(barriers)
	args := [10]unsafe.Pointer{
		unsafe.Pointer(&cb),
		unsafe.Pointer(&srcStage),
		unsafe.Pointer(&dstStage),
		unsafe.Pointer(&deps),
		unsafe.Pointer(&zero),    // memoryBarrierCount
		unsafe.Pointer(&nilPtr),  // pMemoryBarriers
		unsafe.Pointer(&zero),    // bufferMemoryBarrierCount
		unsafe.Pointer(&nilPtr),  // pBufferMemoryBarriers
		unsafe.Pointer(&barrierCount),
		unsafe.Pointer(&barriersPtr),
	}
	callVoid(&sigVoidCmdPipelineBarrier, c.cmdPipelineBarrier, args[:])
}

// CmdBlitImage wraps vkCmdBlitImage.
func (c *Commands) CmdBlitImage(cb CommandBuffer, src Image, srcLayout ImageLayout, dst Image, dstLayout ImageLayout, regionCount uint32, regions *ImageBlit, filter Filter) {
	regionsPtr := unsafe.Pointer(regions)
	args := [8]unsafe.Pointer{
		unsafe.Pointer(&cb),
		unsafe.Pointer(&src),
		unsafe.Pointer(&srcLayout),
		unsafe.Pointer(&dst),
		unsafe.Pointer(&dstLayout),
		unsafe.Pointer(&regionCount),
		unsafe.Pointer(&regionsPtr),
		unsafe.Pointer(&filter),
	}
	callVoid(&sigVoidCmdBlitImage, c.cmdBlitImage, args[:])
}

// CreateDescriptorSetLayout wraps vkCreateDescriptorSetLayout.
func (c *Commands) CreateDescriptorSetLayout(device Device, info *DescriptorSetLayoutCreateInfo, out *DescriptorSetLayout) Result {
	return c.createChild(c.createDescriptorSetLayout, device, unsafe.Pointer(info), unsafe.Pointer(out))
}

// DestroyDescriptorSetLayout wraps vkDestroyDescriptorSetLayout.
func (c *Commands) DestroyDescriptorSetLayout(device Device, layout DescriptorSetLayout) {
	c.destroyChild(c.destroyDescriptorSetLayout, device, uint64(layout))
}

// CreateDescriptorPool wraps vkCreateDescriptorPool.
func (c *Commands) CreateDescriptorPool(device Device, info *DescriptorPoolCreateInfo, out *DescriptorPool) Result {
	return c.createChild(c.createDescriptorPool, device, unsafe.Pointer(info), unsafe.Pointer(out))
}

// DestroyDescriptorPool wraps vkDestroyDescriptorPool.
func (c *Commands) DestroyDescriptorPool(device Device, pool DescriptorPool) {
	c.destroyChild(c.destroyDescriptorPool, device, uint64(pool))
}

// AllocateDescriptorSets wraps vkAllocateDescriptorSets.
func (c *Commands) AllocateDescriptorSets(device Device, info *DescriptorSetAllocateInfo, out *DescriptorSet) Result {
	infoPtr := unsafe.Pointer(info)
	outPtr := unsafe.Pointer(out)
	args := [3]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&infoPtr),
		unsafe.Pointer(&outPtr),
	}
	return callResult(&sigResultHandlePtrPtr, c.allocateDescriptorSets, args[:])
}

// UpdateDescriptorSets wraps vkUpdateDescriptorSets with no copies.
func (c *Commands) UpdateDescriptorSets(device Device, writeCount uint32, writes *WriteDescriptorSet) {
	var zero uint32
	var nilPtr unsafe.Pointer
	writesPtr := unsafe.Pointer(writes)
	args := [5]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&writeCount),
		unsafe.Pointer(&writesPtr),
		unsafe.Pointer(&zero),
		unsafe.Pointer(&nilPtr),
	}
	callVoid(&sigVoidHandleU32PtrU32Ptr, c.updateDescriptorSets, args[:])
}

// CreatePipelineCache wraps vkCreatePipelineCache.
func (c *Commands) CreatePipelineCache(device Device, info *PipelineCacheCreateInfo, out *PipelineCache) Result {
	return c.createChild(c.createPipelineCache, device, unsafe.Pointer(info), unsafe.Pointer(out))
}

// DestroyPipelineCache wraps vkDestroyPipelineCache.
func (c *Commands) DestroyPipelineCache(device Device, cache PipelineCache) {
	c.destroyChild(c.destroyPipelineCache, device, uint64(cache))
}

// GetPipelineCacheData wraps vkGetPipelineCacheData.
func (c *Commands) GetPipelineCacheData(device Device, cache PipelineCache, size *uintptr, data unsafe.Pointer) Result {
	sizePtr := unsafe.Pointer(size)
	args := [4]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&cache),
		unsafe.Pointer(&sizePtr),
		unsafe.Pointer(&data),
	}
	return callResult(&sigResultHandleHandlePtrPtr, c.getPipelineCacheData, args[:])
}

// GetPhysicalDeviceSurfaceCapabilitiesKHR wraps the surface query.
func (c *Commands) GetPhysicalDeviceSurfaceCapabilitiesKHR(pd PhysicalDevice, surface SurfaceKHR, caps *SurfaceCapabilitiesKHR) Result {
	capsPtr := unsafe.Pointer(caps)
	args := [3]unsafe.Pointer{
		unsafe.Pointer(&pd),
		unsafe.Pointer(&surface),
		unsafe.Pointer(&capsPtr),
	}
	return callResult(&sigResultHandleHandlePtr, c.getPhysicalDeviceSurfaceCapabilitiesKHR, args[:])
}

// GetPhysicalDeviceSurfaceFormatsKHR wraps the format enumeration.
func (c *Commands) GetPhysicalDeviceSurfaceFormatsKHR(pd PhysicalDevice, surface SurfaceKHR, count *uint32, out *SurfaceFormatKHR) Result {
	countPtr := unsafe.Pointer(count)
	outPtr := unsafe.Pointer(out)
	args := [4]unsafe.Pointer{
		unsafe.Pointer(&pd),
		unsafe.Pointer(&surface),
		unsafe.Pointer(&countPtr),
		unsafe.Pointer(&outPtr),
	}
	return callResult(&sigResultHandleHandlePtrPtr, c.getPhysicalDeviceSurfaceFormatsKHR, args[:])
}

// DestroySurfaceKHR wraps vkDestroySurfaceKHR.
func (c *Commands) DestroySurfaceKHR(instance Instance, surface SurfaceKHR) {
	var allocPtr unsafe.Pointer
	args := [3]unsafe.Pointer{
		unsafe.Pointer(&instance),
		unsafe.Pointer(&surface),
		unsafe.Pointer(&allocPtr),
	}
	callVoid(&sigVoidHandleHandlePtr, c.destroySurfaceKHR, args[:])
}

// CreatePlatformSurface creates a surface through the platform-specific
// entry point resolved at LoadInstance time.
func (c *Commands) CreatePlatformSurface(instance Instance, info unsafe.Pointer, out *SurfaceKHR) Result {
	var allocPtr unsafe.Pointer
	outPtr := unsafe.Pointer(out)
	args := [4]unsafe.Pointer{
		unsafe.Pointer(&instance),
		unsafe.Pointer(&info),
		unsafe.Pointer(&allocPtr),
		unsafe.Pointer(&outPtr),
	}
	return callResult(&sigResultHandlePtrPtrPtr, c.platformCreateSurface, args[:])
}

// CreateSwapchainKHR wraps vkCreateSwapchainKHR.
func (c *Commands) CreateSwapchainKHR(device Device, info *SwapchainCreateInfoKHR, out *SwapchainKHR) Result {
	return c.createChild(c.createSwapchainKHR, device, unsafe.Pointer(info), unsafe.Pointer(out))
}

// DestroySwapchainKHR wraps vkDestroySwapchainKHR.
func (c *Commands) DestroySwapchainKHR(device Device, swapchain SwapchainKHR) {
	c.destroyChild(c.destroySwapchainKHR, device, uint64(swapchain))
}

// GetSwapchainImagesKHR wraps vkGetSwapchainImagesKHR.
func (c *Commands) GetSwapchainImagesKHR(device Device, swapchain SwapchainKHR, count *uint32, out *Image) Result {
	countPtr := unsafe.Pointer(count)
	outPtr := unsafe.Pointer(out)
	args := [4]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&swapchain),
		unsafe.Pointer(&countPtr),
		unsafe.Pointer(&outPtr),
	}
	return callResult(&sigResultHandleHandlePtrPtr, c.getSwapchainImagesKHR, args[:])
}

// AcquireNextImageKHR wraps vkAcquireNextImageKHR.
func (c *Commands) AcquireNextImageKHR(device Device, swapchain SwapchainKHR, timeoutNs uint64, sem Semaphore, fence Fence, out *uint32) Result {
	outPtr := unsafe.Pointer(out)
	args := [6]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&swapchain),
		unsafe.Pointer(&timeoutNs),
		unsafe.Pointer(&sem),
		unsafe.Pointer(&fence),
		unsafe.Pointer(&outPtr),
	}
	return callResult(&sigResultAcquireNextImage, c.acquireNextImageKHR, args[:])
}

// QueuePresentKHR wraps vkQueuePresentKHR.
func (c *Commands) QueuePresentKHR(queue Queue, info *PresentInfoKHR) Result {
	infoPtr := unsafe.Pointer(info)
	args := [2]unsafe.Pointer{unsafe.Pointer(&queue), unsafe.Pointer(&infoPtr)}
	return callResult(&sigResultHandlePtr, c.queuePresentKHR, args[:])
}

// createChild covers the dominant vkCreate*(device, pInfo, pAllocator,
// pOut) shape.
func (c *Commands) createChild(fn unsafe.Pointer, device Device, info, out unsafe.Pointer) Result {
	var allocPtr unsafe.Pointer
	args := [4]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&info),
		unsafe.Pointer(&allocPtr),
		unsafe.Pointer(&out),
	}
	return callResult(&sigResultHandlePtrPtrPtr, fn, args[:])
}

// destroyChild covers the dominant vkDestroy*(device, handle, pAllocator)
// shape.
func (c *Commands) destroyChild(fn unsafe.Pointer, device Device, handle uint64) {
	var allocPtr unsafe.Pointer
	args := [3]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&handle),
		unsafe.Pointer(&allocPtr),
	}
	callVoid(&sigVoidHandleHandlePtr, fn, args[:])
}
