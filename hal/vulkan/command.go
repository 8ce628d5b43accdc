// Copyright 2025 Coalition of Freeware Developers
// SPDX-License-Identifier: MIT

package vulkan

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/Coalition-of-Freeware-Developers/Scenery-Editor-X-sub000/hal"
	"github.com/Coalition-of-Freeware-Developers/Scenery-Editor-X-sub000/hal/vulkan/vk"
)

// CommandPool implements hal.CommandPool for one queue family.
type CommandPool struct {
	handle vk.CommandPool
	device *Device
}

// CreateCommandPool creates a resettable pool on the family serving kind.
func (d *Device) CreateCommandPool(kind hal.QueueKind) (hal.CommandPool, error) {
	family := d.families.graphics
	switch kind {
	case hal.QueueCompute:
		family = d.families.compute
	case hal.QueueTransfer:
		family = d.families.transfer
	}
	info := vk.CommandPoolCreateInfo{
		SType:            vk.StructureTypeCommandPoolCreateInfo,
		Flags:            vk.CommandPoolCreateTransientBit | vk.CommandPoolCreateResetCommandBufferBit,
		QueueFamilyIndex: family,
	}
	var handle vk.CommandPool
	if result := d.cmds.CreateCommandPool(d.handle, &info, &handle); result != vk.Success {
		return nil, fmt.Errorf("vulkan: vkCreateCommandPool failed: %d", result)
	}
	return &CommandPool{handle: handle, device: d}, nil
}

// Allocate allocates a primary command buffer.
func (p *CommandPool) Allocate() (hal.CommandBuffer, error) {
	info := vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocateInfo,
		CommandPool:        p.handle,
		Level:              vk.CommandBufferLevelPrimary,
		CommandBufferCount: 1,
	}
	var handle vk.CommandBuffer
	if result := p.device.cmds.AllocateCommandBuffers(p.device.handle, &info, &handle); result != vk.Success {
		return nil, fmt.Errorf("vulkan: vkAllocateCommandBuffers failed: %d", result)
	}
	return &CommandBuffer{handle: handle, device: p.device}, nil
}

// Free returns the command buffer to the pool.
func (p *CommandPool) Free(cb hal.CommandBuffer) {
	handle := cb.(*CommandBuffer).handle
	p.device.cmds.FreeCommandBuffers(p.device.handle, p.handle, 1, &handle)
}

// Destroy releases the pool and every buffer allocated from it.
func (p *CommandPool) Destroy() {
	if p.handle != 0 {
		p.device.cmds.DestroyCommandPool(p.device.handle, p.handle)
		p.handle = 0
	}
}

// CommandBuffer implements hal.CommandBuffer.
type CommandBuffer struct {
	handle vk.CommandBuffer
	device *Device
}

// Begin starts recording.
func (c *CommandBuffer) Begin(oneTime bool) error {
	info := vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
	}
	if oneTime {
		info.Flags = vk.CommandBufferUsageOneTimeSubmitBit
	}
	if result := c.device.cmds.BeginCommandBuffer(c.handle, &info); result != vk.Success {
		return fmt.Errorf("vulkan: vkBeginCommandBuffer failed: %d", result)
	}
	return nil
}

// End finishes recording.
func (c *CommandBuffer) End() error {
	if result := c.device.cmds.EndCommandBuffer(c.handle); result != vk.Success {
		return fmt.Errorf("vulkan: vkEndCommandBuffer failed: %d", result)
	}
	return nil
}

// Reset recycles the buffer for re-recording.
func (c *CommandBuffer) Reset() error {
	if result := c.device.cmds.ResetCommandBuffer(c.handle, 0); result != vk.Success {
		return fmt.Errorf("vulkan: vkResetCommandBuffer failed: %d", result)
	}
	return nil
}

// CopyBuffer records a buffer-to-buffer copy.
func (c *CommandBuffer) CopyBuffer(src, dst hal.Buffer, srcOffset, dstOffset, size uint64) {
	region := vk.BufferCopy{SrcOffset: srcOffset, DstOffset: dstOffset, Size: size}
	c.device.cmds.CmdCopyBuffer(c.handle, src.(*Buffer).handle, dst.(*Buffer).handle, 1, &region)
}

// CopyBufferToImage records a buffer-to-image copy; the covered
// subresources must be in the transfer-dst layout.
func (c *CommandBuffer) CopyBufferToImage(src hal.Buffer, dst hal.Image, region hal.BufferImageCopy) {
	img := dst.(*Image)
	vkRegion := vk.BufferImageCopy{
		BufferOffset: region.BufferOffset,
		ImageSubresource: vk.ImageSubresourceLayers{
			AspectMask:     vk.ImageAspectColorBit,
			MipLevel:       region.MipLevel,
			BaseArrayLayer: region.BaseLayer,
			LayerCount:     region.LayerCount,
		},
		ImageOffset: vk.Offset3D{
			X: int32(region.Origin.X),
			Y: int32(region.Origin.Y),
			Z: int32(region.Origin.Z),
		},
		ImageExtent: vk.Extent3D{
			Width:  region.Extent.Width,
			Height: region.Extent.Height,
			Depth:  max32(region.Extent.DepthOrArrayLayers, 1),
		},
	}
	c.device.cmds.CmdCopyBufferToImage(c.handle, src.(*Buffer).handle, img.handle,
		vk.ImageLayoutTransferDst, 1, &vkRegion)
}

// TransitionImage records a layout transition barrier for a subresource
// range.
func (c *CommandBuffer) TransitionImage(image hal.Image, aspect gputypes.TextureAspect,
	baseMip, mipCount, baseLayer, layerCount uint32, from, to hal.ImageLayout) {
	img := image.(*Image)

	srcAccess, srcStage := accessFor(from)
	dstAccess, dstStage := accessFor(to)

	barrier := vk.ImageMemoryBarrier{
		SType:               vk.StructureTypeImageMemoryBarrier,
		SrcAccessMask:       srcAccess,
		DstAccessMask:       dstAccess,
		OldLayout:           layoutToVk(from),
		NewLayout:           layoutToVk(to),
		SrcQueueFamilyIndex: vk.QueueFamilyIgnored,
		DstQueueFamilyIndex: vk.QueueFamilyIgnored,
		Image:               img.handle,
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask:     aspectToVkFromVkFormat(aspect, img.format),
			BaseMipLevel:   baseMip,
			LevelCount:     mipCount,
			BaseArrayLayer: baseLayer,
			LayerCount:     layerCount,
		},
	}
	c.device.cmds.CmdPipelineBarrier(c.handle, srcStage, dstStage, 1, &barrier)
}

// BlitMip records the mip→mip+1 downsampling blit used by mipmap
// generation.
func (c *CommandBuffer) BlitMip(image hal.Image, aspect gputypes.TextureAspect, mip uint32,
	srcExtent, dstExtent gputypes.Extent3D) {
	img := image.(*Image)
	vkAspect := aspectToVkFromVkFormat(aspect, img.format)

	blit := vk.ImageBlit{
		SrcSubresource: vk.ImageSubresourceLayers{
			AspectMask: vkAspect,
			MipLevel:   mip,
			LayerCount: 1,
		},
		DstSubresource: vk.ImageSubresourceLayers{
			AspectMask: vkAspect,
			MipLevel:   mip + 1,
			LayerCount: 1,
		},
	}
	blit.SrcOffsets[1] = vk.Offset3D{
		X: int32(srcExtent.Width), Y: int32(srcExtent.Height), Z: 1,
	}
	blit.DstOffsets[1] = vk.Offset3D{
		X: int32(dstExtent.Width), Y: int32(dstExtent.Height), Z: 1,
	}

	c.device.cmds.CmdBlitImage(c.handle,
		img.handle, vk.ImageLayoutTransferSrc,
		img.handle, vk.ImageLayoutTransferDst,
		1, &blit, vk.FilterLinear)
}

// aspectToVkFromVkFormat resolves the barrier aspect from the requested
// aspect and the image's native format.
func aspectToVkFromVkFormat(aspect gputypes.TextureAspect, format vk.Format) vk.ImageAspectFlags {
	switch aspect {
	case gputypes.TextureAspectDepthOnly:
		return vk.ImageAspectDepthBit
	case gputypes.TextureAspectStencilOnly:
		return vk.ImageAspectStencilBit
	}
	switch format {
	case vk.FormatD16Unorm, vk.FormatD32Float:
		return vk.ImageAspectDepthBit
	case vk.FormatD24UnormS8Uint, vk.FormatD32FloatS8Uint:
		return vk.ImageAspectDepthBit | vk.ImageAspectStencilBit
	}
	return vk.ImageAspectColorBit
}
