// Copyright 2025 Coalition of Freeware Developers
// SPDX-License-Identifier: MIT

package vulkan

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/gogpu/gputypes"

	"github.com/Coalition-of-Freeware-Developers/Scenery-Editor-X-sub000/hal"
	"github.com/Coalition-of-Freeware-Developers/Scenery-Editor-X-sub000/hal/vulkan/memory"
	"github.com/Coalition-of-Freeware-Developers/Scenery-Editor-X-sub000/hal/vulkan/vk"
)

func strategyToMemory(s hal.AllocationStrategy) memory.Strategy {
	if s == hal.StrategyMemoryOptimized {
		return memory.StrategyMemoryOptimized
	}
	return memory.StrategySpeedOptimized
}

func bufferUsageToVk(u gputypes.BufferUsage) vk.BufferUsageFlags {
	var out vk.BufferUsageFlags
	if u&gputypes.BufferUsageCopySrc != 0 {
		out |= vk.BufferUsageTransferSrcBit
	}
	if u&gputypes.BufferUsageCopyDst != 0 {
		out |= vk.BufferUsageTransferDstBit
	}
	if u&gputypes.BufferUsageUniform != 0 {
		out |= vk.BufferUsageUniformBufferBit
	}
	if u&gputypes.BufferUsageStorage != 0 {
		out |= vk.BufferUsageStorageBufferBit | vk.BufferUsageShaderDeviceAddressBit
	}
	if u&gputypes.BufferUsageIndex != 0 {
		out |= vk.BufferUsageIndexBufferBit
	}
	if u&gputypes.BufferUsageVertex != 0 {
		out |= vk.BufferUsageVertexBufferBit
	}
	if u&gputypes.BufferUsageIndirect != 0 {
		out |= vk.BufferUsageIndirectBufferBit
	}
	return out
}

func imageUsageToVk(u hal.ImageUsage) vk.ImageUsageFlags {
	var out vk.ImageUsageFlags
	if u&hal.ImageUsageSampled != 0 {
		out |= vk.ImageUsageSampledBit | vk.ImageUsageTransferDstBit
	}
	if u&hal.ImageUsageStorage != 0 {
		out |= vk.ImageUsageStorageBit
	}
	if u&hal.ImageUsageColorAttachment != 0 {
		out |= vk.ImageUsageColorAttachmentBit
	}
	if u&hal.ImageUsageDepthAttachment != 0 {
		out |= vk.ImageUsageDepthStencilBit
	}
	if u&hal.ImageUsageTransferSrc != 0 {
		out |= vk.ImageUsageTransferSrcBit
	}
	if u&hal.ImageUsageTransferDst != 0 {
		out |= vk.ImageUsageTransferDstBit
	}
	if u&hal.ImageUsageTransient != 0 {
		out |= vk.ImageUsageTransientBit
	}
	return out
}

func formatToVk(f gputypes.TextureFormat) vk.Format {
	switch f {
	case gputypes.TextureFormatR8Unorm:
		return vk.FormatR8Unorm
	case gputypes.TextureFormatRGBA8Unorm:
		return vk.FormatRGBA8Unorm
	case gputypes.TextureFormatRGBA8UnormSrgb:
		return vk.FormatRGBA8Srgb
	case gputypes.TextureFormatBGRA8Unorm:
		return vk.FormatBGRA8Unorm
	case gputypes.TextureFormatBGRA8UnormSrgb:
		return vk.FormatBGRA8Srgb
	case gputypes.TextureFormatRGBA16Float:
		return vk.FormatRGBA16Float
	case gputypes.TextureFormatRGBA32Float:
		return vk.FormatRGBA32Float
	case gputypes.TextureFormatDepth16Unorm:
		return vk.FormatD16Unorm
	case gputypes.TextureFormatDepth32Float:
		return vk.FormatD32Float
	case gputypes.TextureFormatDepth24PlusStencil8:
		return vk.FormatD24UnormS8Uint
	case gputypes.TextureFormatDepth32FloatStencil8:
		return vk.FormatD32FloatS8Uint
	}
	return vk.FormatRGBA8Unorm
}

func isDepth(f gputypes.TextureFormat) bool {
	switch f {
	case gputypes.TextureFormatDepth16Unorm,
		gputypes.TextureFormatDepth24Plus,
		gputypes.TextureFormatDepth24PlusStencil8,
		gputypes.TextureFormatDepth32Float,
		gputypes.TextureFormatDepth32FloatStencil8:
		return true
	}
	return false
}

func aspectToVk(aspect gputypes.TextureAspect, format gputypes.TextureFormat) vk.ImageAspectFlags {
	switch aspect {
	case gputypes.TextureAspectDepthOnly:
		return vk.ImageAspectDepthBit
	case gputypes.TextureAspectStencilOnly:
		return vk.ImageAspectStencilBit
	}
	if isDepth(format) {
		return vk.ImageAspectDepthBit
	}
	return vk.ImageAspectColorBit
}

func layoutToVk(l hal.ImageLayout) vk.ImageLayout {
	switch l {
	case hal.LayoutShaderReadOnly:
		return vk.ImageLayoutShaderReadOnly
	case hal.LayoutGeneral:
		return vk.ImageLayoutGeneral
	case hal.LayoutTransferSrc:
		return vk.ImageLayoutTransferSrc
	case hal.LayoutTransferDst:
		return vk.ImageLayoutTransferDst
	case hal.LayoutColorAttachment:
		return vk.ImageLayoutColorAttachment
	case hal.LayoutDepthAttachment:
		return vk.ImageLayoutDepthStencilAttach
	case hal.LayoutPresent:
		return vk.ImageLayoutPresentSrcKHR
	}
	return vk.ImageLayoutUndefined
}

// accessFor pairs the access mask and stage a layout implies, for
// barrier construction.
func accessFor(l hal.ImageLayout) (vk.AccessFlags, vk.PipelineStageFlags) {
	switch l {
	case hal.LayoutShaderReadOnly:
		return vk.AccessShaderReadBit, vk.PipelineStageFragmentShaderBit | vk.PipelineStageComputeShaderBit
	case hal.LayoutGeneral:
		return vk.AccessShaderReadBit | vk.AccessShaderWriteBit, vk.PipelineStageComputeShaderBit
	case hal.LayoutTransferSrc:
		return vk.AccessTransferReadBit, vk.PipelineStageTransferBit
	case hal.LayoutTransferDst:
		return vk.AccessTransferWriteBit, vk.PipelineStageTransferBit
	case hal.LayoutColorAttachment:
		return vk.AccessColorAttachmentWriteBit, vk.PipelineStageColorAttachmentOutputBit
	case hal.LayoutDepthAttachment:
		return vk.AccessDepthStencilWriteBit, vk.PipelineStageEarlyFragmentTestsBit
	}
	return 0, vk.PipelineStageTopOfPipeBit
}

func filterToVk(f gputypes.FilterMode) vk.Filter {
	if f == gputypes.FilterModeLinear {
		return vk.FilterLinear
	}
	return vk.FilterNearest
}

func mipModeToVk(f gputypes.FilterMode) vk.SamplerMipmapMode {
	if f == gputypes.FilterModeLinear {
		return vk.SamplerMipmapModeLinear
	}
	return vk.SamplerMipmapModeNearest
}

func addressModeToVk(m gputypes.AddressMode) vk.SamplerAddressMode {
	switch m {
	case gputypes.AddressModeMirrorRepeat:
		return vk.SamplerAddressModeMirroredRepeat
	case gputypes.AddressModeClampToEdge:
		return vk.SamplerAddressModeClampToEdge
	}
	return vk.SamplerAddressModeRepeat
}

func compareToVk(c gputypes.CompareFunction) (vk.CompareOp, bool) {
	switch c {
	case gputypes.CompareFunctionNever:
		return vk.CompareOpNever, true
	case gputypes.CompareFunctionLess:
		return vk.CompareOpLess, true
	case gputypes.CompareFunctionEqual:
		return vk.CompareOpEqual, true
	case gputypes.CompareFunctionLessEqual:
		return vk.CompareOpLessEqual, true
	case gputypes.CompareFunctionGreater:
		return vk.CompareOpGreater, true
	case gputypes.CompareFunctionNotEqual:
		return vk.CompareOpNotEqual, true
	case gputypes.CompareFunctionGreaterEqual:
		return vk.CompareOpGreaterEqual, true
	case gputypes.CompareFunctionAlways:
		return vk.CompareOpAlways, true
	}
	return vk.CompareOpNever, false
}

func samplerDescToVk(desc *hal.SamplerDescriptor) vk.SamplerCreateInfo {
	compareOp, compareEnable := compareToVk(desc.Compare)
	info := vk.SamplerCreateInfo{
		SType:        vk.StructureTypeSamplerCreateInfo,
		MagFilter:    filterToVk(desc.MagFilter),
		MinFilter:    filterToVk(desc.MinFilter),
		MipmapMode:   mipModeToVk(desc.MipFilter),
		AddressModeU: addressModeToVk(desc.AddressModeU),
		AddressModeV: addressModeToVk(desc.AddressModeV),
		AddressModeW: addressModeToVk(desc.AddressModeW),
		MipLodBias:   desc.MipLodBias,
		MaxLod:       1000, // VK_LOD_CLAMP_NONE
	}
	if compareEnable {
		info.CompareEnable = vk.True
		info.CompareOp = compareOp
	}
	if desc.MaxAnisotropy > 1 {
		info.AnisotropyEnable = vk.True
		info.MaxAnisotropy = desc.MaxAnisotropy
	}
	return info
}

// vkResultToError maps Vulkan results onto the HAL error set.
func vkResultToError(result vk.Result, requested uint64) error {
	switch result {
	case vk.Success:
		return nil
	case vk.ErrorOutOfHostMem, vk.ErrorOutOfDevMem:
		if requested > 0 {
			return fmt.Errorf("%w (%d bytes requested)", hal.ErrDeviceOutOfMemory, requested)
		}
		return hal.ErrDeviceOutOfMemory
	case vk.ErrorDeviceLost:
		return hal.ErrDeviceLost
	case vk.ErrorSurfaceLost:
		return hal.ErrSurfaceLost
	case vk.ErrorOutOfDateKHR:
		return hal.ErrSurfaceOutdated
	case vk.TimeoutResult:
		return hal.ErrTimeout
	case vk.ErrorMemMapFailed:
		return hal.ErrMappingFailed
	}
	return fmt.Errorf("vulkan: unexpected result %d", result)
}

// errIsLost reports device loss from any wrapped error.
func errIsLost(err error) bool {
	return errors.Is(err, hal.ErrDeviceLost)
}

func ptrOf[T any](v *T) unsafe.Pointer { return unsafe.Pointer(v) }
