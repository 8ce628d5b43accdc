// Copyright 2025 Coalition of Freeware Developers
// SPDX-License-Identifier: MIT

package noop

import (
	"github.com/gogpu/gputypes"

	"github.com/Coalition-of-Freeware-Developers/Scenery-Editor-X-sub000/hal"
)

// CommandPool implements hal.CommandPool.
type CommandPool struct {
	kind hal.QueueKind
}

// Allocate returns a fresh command buffer.
func (p *CommandPool) Allocate() (hal.CommandBuffer, error) {
	return &CommandBuffer{}, nil
}

// Free is a no-op.
func (p *CommandPool) Free(cb hal.CommandBuffer) {}

// Destroy is a no-op.
func (p *CommandPool) Destroy() {}

// CommandBuffer implements hal.CommandBuffer. Copies execute at record
// time against the in-memory backings; the recorded op log lets tests
// assert on ordering and transitions.
type CommandBuffer struct {
	Recording bool
	Ops       []string
}

// Begin starts recording.
func (c *CommandBuffer) Begin(oneTime bool) error {
	c.Recording = true
	c.Ops = c.Ops[:0]
	return nil
}

// End finishes recording.
func (c *CommandBuffer) End() error {
	c.Recording = false
	return nil
}

// Reset clears the op log.
func (c *CommandBuffer) Reset() error {
	c.Recording = false
	c.Ops = c.Ops[:0]
	return nil
}

// CopyBuffer moves bytes between the two backings immediately.
func (c *CommandBuffer) CopyBuffer(src, dst hal.Buffer, srcOffset, dstOffset, size uint64) {
	s, d := src.(*Buffer), dst.(*Buffer)
	copy(d.Data[dstOffset:dstOffset+size], s.Data[srcOffset:srcOffset+size])
	c.Ops = append(c.Ops, "copyBuffer")
}

// CopyBufferToImage moves bytes into the destination mip backing.
func (c *CommandBuffer) CopyBufferToImage(src hal.Buffer, dst hal.Image, region hal.BufferImageCopy) {
	s, d := src.(*Buffer), dst.(*Image)
	if int(region.MipLevel) < len(d.Mips) {
		mip := d.Mips[region.MipLevel]
		n := copy(mip, s.Data[region.BufferOffset:])
		_ = n
	}
	c.Ops = append(c.Ops, "copyBufferToImage")
}

// TransitionImage records a layout transition.
func (c *CommandBuffer) TransitionImage(img hal.Image, aspect gputypes.TextureAspect,
	baseMip, mipCount, baseLayer, layerCount uint32, from, to hal.ImageLayout) {
	c.Ops = append(c.Ops, "transition")
}

// BlitMip downsamples mip into mip+1 by point-sampling the top-left
// texel of each 2x2 source block.
func (c *CommandBuffer) BlitMip(img hal.Image, aspect gputypes.TextureAspect, mip uint32,
	srcExtent, dstExtent gputypes.Extent3D) {
	d := img.(*Image)
	if int(mip+1) >= len(d.Mips) {
		return
	}
	src, dst := d.Mips[mip], d.Mips[mip+1]
	sw, dw := srcExtent.Width, dstExtent.Width
	dh := dstExtent.Height
	for y := uint32(0); y < dh; y++ {
		for x := uint32(0); x < dw; x++ {
			// Point-sample the top-left source texel; fidelity enough
			// for the copy-path tests.
			so := (uint64(y*2)*uint64(sw) + uint64(x*2)) * texelSize
			do := (uint64(y)*uint64(dw) + uint64(x)) * texelSize
			if so+texelSize <= uint64(len(src)) && do+texelSize <= uint64(len(dst)) {
				copy(dst[do:do+texelSize], src[so:so+texelSize])
			}
		}
	}
	c.Ops = append(c.Ops, "blitMip")
}
