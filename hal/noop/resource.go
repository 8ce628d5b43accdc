// Copyright 2025 Coalition of Freeware Developers
// SPDX-License-Identifier: MIT

package noop

import (
	"github.com/gogpu/gputypes"

	"github.com/Coalition-of-Freeware-Developers/Scenery-Editor-X-sub000/hal"
)

// Buffer implements hal.Buffer with real byte backing so copies and
// host mappings behave like the real thing.
type Buffer struct {
	Data   []byte
	Desc   hal.BufferDescriptor
	mapped bool
}

// Destroy is a no-op; the noop device tracks destroys.
func (*Buffer) Destroy() {}

// Image implements hal.Image. Pixel storage is one flat byte slice per
// mip level, sized assuming a 4-byte texel; enough fidelity for the copy
// and mipgen paths the core exercises.
type Image struct {
	Desc hal.ImageDescriptor
	Mips [][]byte
}

// Destroy is a no-op.
func (*Image) Destroy() {}

// texelSize is the assumed bytes-per-texel for noop image backing.
const texelSize = 4

func newImage(desc *hal.ImageDescriptor) *Image {
	img := &Image{Desc: *desc}
	w, h, d := desc.Extent.Width, desc.Extent.Height, desc.Extent.DepthOrArrayLayers
	if d == 0 {
		d = 1
	}
	layers := desc.ArrayLayers
	if layers == 0 {
		layers = 1
	}
	for level := uint32(0); level < desc.MipLevels; level++ {
		mw, mh := mipExtent(w, level), mipExtent(h, level)
		img.Mips = append(img.Mips, make([]byte, uint64(mw)*uint64(mh)*uint64(d)*uint64(layers)*texelSize))
	}
	return img
}

func mipExtent(base, level uint32) uint32 {
	e := base >> level
	if e == 0 {
		return 1
	}
	return e
}

// ImageView implements hal.ImageView.
type ImageView struct {
	Image *Image
	Desc  hal.ImageViewDescriptor
}

// Destroy is a no-op.
func (*ImageView) Destroy() {}

// Sampler implements hal.Sampler.
type Sampler struct {
	Desc hal.SamplerDescriptor
}

// Destroy is a no-op.
func (*Sampler) Destroy() {}

// PipelineState implements hal.PipelineState, remembering the kind and
// the description hash it was baked from.
type PipelineState struct {
	Kind hal.StateKind
	Hash uint64
}

// Destroy is a no-op.
func (*PipelineState) Destroy() {}

// Surface implements hal.Surface as a headless single-image swapchain.
type Surface struct {
	width, height uint32
	image         *Image
	view          *ImageView
}

// Configure builds the fake swapchain image.
func (s *Surface) Configure(width, height uint32, vsync bool) error {
	s.width, s.height = width, height
	desc := hal.ImageDescriptor{
		Extent:      gputypes.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
		MipLevels:   1,
		ArrayLayers: 1,
		Format:      gputypes.TextureFormatBGRA8Unorm,
		Usage:       hal.ImageUsageColorAttachment,
		SampleCount: 1,
		Name:        "swapchain",
	}
	s.image = newImage(&desc)
	s.view = &ImageView{Image: s.image, Desc: hal.ImageViewDescriptor{
		Format: desc.Format, MipLevelCount: 1, ArrayLayers: 1,
		Aspect: gputypes.TextureAspectAll,
	}}
	return nil
}

// Acquire hands out the single image, immediately ready.
func (s *Surface) Acquire(signal hal.Semaphore, timeoutNs uint64) (hal.SurfaceFrame, error) {
	if s.image == nil {
		return hal.SurfaceFrame{}, hal.ErrSurfaceOutdated
	}
	if sem, ok := signal.(*Semaphore); ok && sem != nil {
		sem.signal()
	}
	return hal.SurfaceFrame{ImageIndex: 0, Image: s.image, View: s.view}, nil
}

// Destroy is a no-op.
func (s *Surface) Destroy() {}
