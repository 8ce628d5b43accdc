// Copyright 2025 Coalition of Freeware Developers
// SPDX-License-Identifier: MIT

// CallInterface signatures shared across Vulkan functions with identical
// parameter shapes. Vulkan has hundreds of entry points but only a few
// dozen unique signatures; handles travel as 64-bit values.

package vk

import (
	"github.com/go-webgpu/goffi/ffi"
	"github.com/go-webgpu/goffi/types"
)

var (
	// VkResult(ptr, ptr, ptr) — vkCreateInstance
	sigResultPtrPtrPtr types.CallInterface

	// VkResult(handle) — vkEndCommandBuffer, vkQueueWaitIdle
	sigResultHandle types.CallInterface

	// VkResult(handle, ptr) — vkBeginCommandBuffer, vkQueuePresentKHR
	sigResultHandlePtr types.CallInterface

	// VkResult(handle, u32) — vkResetCommandBuffer
	sigResultHandleU32 types.CallInterface

	// VkResult(handle, ptr, ptr) — vkAllocateCommandBuffers, vkEnumeratePhysicalDevices
	sigResultHandlePtrPtr types.CallInterface

	// VkResult(handle, ptr, ptr, ptr) — vkCreateDevice, vkCreate*(device, info, alloc, out)
	sigResultHandlePtrPtrPtr types.CallInterface

	// VkResult(handle, ptr, u64) — vkWaitSemaphores
	sigResultHandlePtrU64 types.CallInterface

	// VkResult(handle, u32, ptr) — vkResetFences
	sigResultHandleU32Ptr types.CallInterface

	// VkResult(handle, u32, ptr, u32, u64) — vkWaitForFences
	sigResultHandleU32PtrU32U64 types.CallInterface

	// VkResult(handle, u32, ptr, handle) — vkQueueSubmit
	sigResultHandleU32PtrHandle types.CallInterface

	// VkResult(handle, handle) — vkGetFenceStatus
	sigResultHandleHandle types.CallInterface

	// VkResult(handle, handle, ptr) — vkGetSemaphoreCounterValue, surface caps
	sigResultHandleHandlePtr types.CallInterface

	// VkResult(handle, handle, ptr, ptr) — vkGetPipelineCacheData, vkGetSwapchainImagesKHR
	sigResultHandleHandlePtrPtr types.CallInterface

	// VkResult(handle, handle, handle, u64) — vkBindBufferMemory, vkBindImageMemory
	sigResultHandleHandleHandleU64 types.CallInterface

	// VkResult(handle, handle, u64, u64, u32, ptr) — vkMapMemory
	sigResultMapMemory types.CallInterface

	// VkResult(handle, handle, u64, handle, handle, ptr) — vkAcquireNextImageKHR
	sigResultAcquireNextImage types.CallInterface

	// void(handle, ptr) — vkDestroyInstance, vkDestroyDevice, vkGetPhysicalDeviceProperties
	sigVoidHandlePtr types.CallInterface

	// void(handle, ptr, ptr) — vkGetPhysicalDeviceQueueFamilyProperties
	sigVoidHandlePtrPtr types.CallInterface

	// void(handle, handle) — vkUnmapMemory
	sigVoidHandleHandle types.CallInterface

	// void(handle, handle, ptr) — vkDestroyBuffer, vkFreeMemory, vkGetBufferMemoryRequirements
	sigVoidHandleHandlePtr types.CallInterface

	// void(handle, u32, u32, ptr) — vkGetDeviceQueue
	sigVoidHandleU32U32Ptr types.CallInterface

	// void(handle, handle, u32, ptr) — vkFreeCommandBuffers
	sigVoidHandleHandleU32Ptr types.CallInterface

	// void(handle, u32, ptr, u32, ptr) — vkUpdateDescriptorSets
	sigVoidHandleU32PtrU32Ptr types.CallInterface

	// void(handle, handle, handle, u32, ptr) — vkCmdCopyBuffer
	sigVoidHandleHandleHandleU32Ptr types.CallInterface

	// void(handle, handle, handle, u32, u32, ptr) — vkCmdCopyBufferToImage
	sigVoidHandleHandleHandleU32U32Ptr types.CallInterface

	// void(cb, u32, u32, u32, u32, ptr, u32, ptr, u32, ptr) — vkCmdPipelineBarrier
	sigVoidCmdPipelineBarrier types.CallInterface

	// void(cb, handle, u32, handle, u32, u32, ptr, u32) — vkCmdBlitImage
	sigVoidCmdBlitImage types.CallInterface
)

func initSignatures() error {
	h := types.UInt64TypeDescriptor
	p := types.PointerTypeDescriptor
	u32 := types.UInt32TypeDescriptor
	u64 := types.UInt64TypeDescriptor
	result := types.SInt32TypeDescriptor
	void := types.VoidTypeDescriptor

	prep := func(cif *types.CallInterface, ret *types.TypeDescriptor, params ...*types.TypeDescriptor) error {
		return ffi.PrepareCallInterface(cif, types.DefaultCall, ret, params)
	}

	steps := []error{
		prep(&sigResultPtrPtrPtr, result, p, p, p),
		prep(&sigResultHandle, result, h),
		prep(&sigResultHandlePtr, result, h, p),
		prep(&sigResultHandleU32, result, h, u32),
		prep(&sigResultHandlePtrPtr, result, h, p, p),
		prep(&sigResultHandlePtrPtrPtr, result, h, p, p, p),
		prep(&sigResultHandlePtrU64, result, h, p, u64),
		prep(&sigResultHandleU32Ptr, result, h, u32, p),
		prep(&sigResultHandleU32PtrU32U64, result, h, u32, p, u32, u64),
		prep(&sigResultHandleU32PtrHandle, result, h, u32, p, h),
		prep(&sigResultHandleHandle, result, h, h),
		prep(&sigResultHandleHandlePtr, result, h, h, p),
		prep(&sigResultHandleHandlePtrPtr, result, h, h, p, p),
		prep(&sigResultHandleHandleHandleU64, result, h, h, h, u64),
		prep(&sigResultMapMemory, result, h, h, u64, u64, u32, p),
		prep(&sigResultAcquireNextImage, result, h, h, u64, h, h, p),
		prep(&sigVoidHandlePtr, void, h, p),
		prep(&sigVoidHandlePtrPtr, void, h, p, p),
		prep(&sigVoidHandleHandle, void, h, h),
		prep(&sigVoidHandleHandlePtr, void, h, h, p),
		prep(&sigVoidHandleU32U32Ptr, void, h, u32, u32, p),
		prep(&sigVoidHandleHandleU32Ptr, void, h, h, u32, p),
		prep(&sigVoidHandleU32PtrU32Ptr, void, h, u32, p, u32, p),
		prep(&sigVoidHandleHandleHandleU32Ptr, void, h, h, h, u32, p),
		prep(&sigVoidHandleHandleHandleU32U32Ptr, void, h, h, h, u32, u32, p),
		prep(&sigVoidCmdPipelineBarrier, void, h, u32, u32, u32, u32, p, u32, p, u32, p),
		prep(&sigVoidCmdBlitImage, void, h, h, u32, h, u32, u32, p, u32),
	}
	for _, err := range steps {
		if err != nil {
			return err
		}
	}
	return nil
}
