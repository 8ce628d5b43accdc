// Copyright 2025 Coalition of Freeware Developers
// SPDX-License-Identifier: MIT

package sedx

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/Coalition-of-Freeware-Developers/Scenery-Editor-X-sub000/hal"
)

// ImageDesc describes an image creation request at the facade level.
type ImageDesc struct {
	Extent      gputypes.Extent3D
	MipLevels   uint32
	ArrayLayers uint32
	Format      gputypes.TextureFormat
	Usage       hal.ImageUsage
	SampleCount uint32

	// ExternalView suppresses creation of the default view and sampler;
	// the caller supplies its own views.
	ExternalView bool
}

func (d *ImageDesc) applyDefaults() {
	if d.MipLevels == 0 {
		d.MipLevels = 1
	}
	if d.ArrayLayers == 0 {
		d.ArrayLayers = 1
	}
	if d.SampleCount == 0 {
		d.SampleCount = 1
	}
	if d.Extent.DepthOrArrayLayers == 0 {
		d.Extent.DepthOrArrayLayers = 1
	}
}

// isDepthFormat reports whether format carries a depth aspect. Depth
// formats set the depth aspect in every derived view.
func isDepthFormat(f gputypes.TextureFormat) bool {
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

// Image is the resource record for one live GPU image. Layout is tracked
// per (mip, layer): an image subresource is shader-read-only, general,
// transfer-src/dst, or an attachment at any moment.
type Image struct {
	native hal.Image

	Desc       ImageDesc
	Name       string
	BirthFrame uint64

	defaultView    hal.ImageView
	defaultSampler hal.Sampler

	// SampledRID and StorageRID are the bindless indices, InvalidRID
	// when the corresponding usage is absent.
	SampledRID RID
	StorageRID RID
	SamplerRID RID

	// layouts[mip][layer]
	layouts [][]hal.ImageLayout
}

// Native exposes the backend image for recording paths.
func (img *Image) Native() hal.Image { return img.native }

// DefaultView returns the whole-image view created at image creation.
func (img *Image) DefaultView() hal.ImageView { return img.defaultView }

func (img *Image) aspect() gputypes.TextureAspect {
	if isDepthFormat(img.Desc.Format) {
		return gputypes.TextureAspectDepthOnly
	}
	return gputypes.TextureAspectAll
}

// Layout returns the tracked layout of one subresource.
func (img *Image) Layout(mip, layer uint32) hal.ImageLayout {
	if mip >= uint32(len(img.layouts)) || layer >= uint32(len(img.layouts[mip])) {
		return hal.LayoutUndefined
	}
	return img.layouts[mip][layer]
}

func (img *Image) setLayout(baseMip, mipCount, baseLayer, layerCount uint32, layout hal.ImageLayout) {
	for m := baseMip; m < baseMip+mipCount && m < uint32(len(img.layouts)); m++ {
		for l := baseLayer; l < baseLayer+layerCount && l < uint32(len(img.layouts[m])); l++ {
			img.layouts[m][l] = layout
		}
	}
}

// CreateImage creates the image, a default whole-image view and a default
// sampler (unless sampling is disabled or ExternalView is set). Storage
// images are transitioned to the general layout and registered in the
// bindless table; sampled images register their default view.
func (e *Engine) CreateImage(desc ImageDesc, name string) (Handle[Image], error) {
	desc.applyDefaults()

	record := Image{
		Desc:       desc,
		Name:       name,
		BirthFrame: e.frameCounter.Load(),
		SampledRID: InvalidRID,
		StorageRID: InvalidRID,
		SamplerRID: InvalidRID,
	}
	record.layouts = make([][]hal.ImageLayout, desc.MipLevels)
	for m := range record.layouts {
		record.layouts[m] = make([]hal.ImageLayout, desc.ArrayLayers)
	}

	if e.lost.Load() {
		h := e.images.Insert(record)
		return h, nil
	}

	native, err := e.device.CreateImage(&hal.ImageDescriptor{
		Extent:      desc.Extent,
		MipLevels:   desc.MipLevels,
		ArrayLayers: desc.ArrayLayers,
		Format:      desc.Format,
		Usage:       desc.Usage,
		SampleCount: desc.SampleCount,
		Strategy:    e.allocStrategy(imageFootprint(desc)),
		Name:        name,
	})
	if err != nil {
		return Handle[Image]{}, fmt.Errorf("sedx: image %q: %w", name, err)
	}
	record.native = native

	cleanup := func() {
		if record.defaultView != nil {
			e.device.DestroyImageView(record.defaultView)
		}
		e.device.DestroyImage(native)
	}

	if !desc.ExternalView {
		view, err := e.device.CreateImageView(native, &hal.ImageViewDescriptor{
			Format:        desc.Format,
			MipLevelCount: desc.MipLevels,
			ArrayLayers:   desc.ArrayLayers,
			Aspect:        record.aspect(),
		})
		if err != nil {
			cleanup()
			return Handle[Image]{}, fmt.Errorf("sedx: image %q: default view: %w", name, err)
		}
		record.defaultView = view

		if desc.Usage&hal.ImageUsageSampled != 0 {
			sampler, samplerRID, err := e.states.Sampler(defaultSamplerDesc(e.limits.MaxSamplerAnisotropy))
			if err != nil {
				cleanup()
				return Handle[Image]{}, fmt.Errorf("sedx: image %q: default sampler: %w", name, err)
			}
			record.defaultSampler = sampler
			record.SamplerRID = samplerRID

			rid, err := e.bindless.RegisterSampledImage(view, hal.LayoutShaderReadOnly)
			if err != nil {
				cleanup()
				return Handle[Image]{}, fmt.Errorf("sedx: image %q: %w", name, err)
			}
			record.SampledRID = rid
		}

		if desc.Usage&hal.ImageUsageStorage != 0 {
			if err := e.transitionImageAll(&record, hal.LayoutGeneral); err != nil {
				cleanup()
				return Handle[Image]{}, fmt.Errorf("sedx: image %q: %w", name, err)
			}
			rid, err := e.bindless.RegisterStorageImage(view, hal.LayoutGeneral)
			if err != nil {
				cleanup()
				return Handle[Image]{}, fmt.Errorf("sedx: image %q: %w", name, err)
			}
			record.StorageRID = rid
		}
	}

	h := e.images.Insert(record)
	hal.Logger().Debug("image created", "component", "resource",
		"name", name, "extent", desc.Extent, "mips", desc.MipLevels, "handle", h.String())
	return h, nil
}

// imageFootprint estimates the allocation size driving the strategy
// choice; a 4-byte texel assumption is close enough for the heuristic.
func imageFootprint(desc ImageDesc) uint64 {
	return uint64(desc.Extent.Width) * uint64(desc.Extent.Height) *
		uint64(desc.Extent.DepthOrArrayLayers) * uint64(desc.ArrayLayers) * 4
}

func defaultSamplerDesc(maxAnisotropy float32) SamplerStateDesc {
	return SamplerStateDesc{
		MagFilter:     gputypes.FilterModeLinear,
		MinFilter:     gputypes.FilterModeLinear,
		MipFilter:     gputypes.FilterModeLinear,
		AddressModeU:  gputypes.AddressModeRepeat,
		AddressModeV:  gputypes.AddressModeRepeat,
		AddressModeW:  gputypes.AddressModeRepeat,
		MaxAnisotropy: maxAnisotropy,
	}
}

// ImageRID returns the bindless sampled-image index for h.
func (e *Engine) ImageRID(h Handle[Image]) (RID, error) {
	rec, err := e.images.Get(h)
	if err != nil {
		return InvalidRID, err
	}
	return rec.SampledRID, nil
}

// transitionImageAll records a whole-image layout transition on a
// transient command buffer and waits for it.
func (e *Engine) transitionImageAll(img *Image, to hal.ImageLayout) error {
	err := e.withTransient(hal.QueueGraphics, func(cb hal.CommandBuffer) {
		cb.TransitionImage(img.native, img.aspect(),
			0, img.Desc.MipLevels, 0, img.Desc.ArrayLayers,
			img.Layout(0, 0), to)
	})
	if err != nil {
		return err
	}
	img.setLayout(0, img.Desc.MipLevels, 0, img.Desc.ArrayLayers, to)
	return nil
}

// CopyRegion selects the image subresource and extent of a buffer-image
// copy. The zero value means "level 0, layer 0, full extent".
type CopyRegion struct {
	BufferOffset uint64
	MipLevel     uint32
	BaseLayer    uint32
	LayerCount   uint32
	Origin       gputypes.Origin3D
	Extent       gputypes.Extent3D
}

// CopyBufferToImage records a copy from src into dst on the current
// frame's command buffer, transitioning the destination subresources to
// transfer-dst before the copy and back to their steady-state layout
// (shader-read-only for sampled images, general for storage) after.
func (e *Engine) CopyBufferToImage(src Handle[Buffer], dst Handle[Image], region CopyRegion) error {
	srcRec, err := e.buffers.Get(src)
	if err != nil {
		return err
	}
	dstRec, err := e.images.Get(dst)
	if err != nil {
		return err
	}
	if e.lost.Load() {
		return ErrDeviceLost
	}
	if region.LayerCount == 0 {
		region.LayerCount = dstRec.Desc.ArrayLayers
	}
	if region.Extent.Width == 0 {
		region.Extent = dstRec.Desc.Extent
	}

	steady := hal.LayoutShaderReadOnly
	if dstRec.Desc.Usage&hal.ImageUsageStorage != 0 {
		steady = hal.LayoutGeneral
	}

	slot := e.frames.currentSlot()
	aspect := dstRec.aspect()
	slot.cmd.TransitionImage(dstRec.native, aspect,
		region.MipLevel, 1, region.BaseLayer, region.LayerCount,
		dstRec.Layout(region.MipLevel, region.BaseLayer), hal.LayoutTransferDst)
	slot.cmd.CopyBufferToImage(srcRec.native, dstRec.native, hal.BufferImageCopy{
		BufferOffset: region.BufferOffset,
		MipLevel:     region.MipLevel,
		BaseLayer:    region.BaseLayer,
		LayerCount:   region.LayerCount,
		Origin:       region.Origin,
		Extent:       region.Extent,
	})
	slot.cmd.TransitionImage(dstRec.native, aspect,
		region.MipLevel, 1, region.BaseLayer, region.LayerCount,
		hal.LayoutTransferDst, steady)
	dstRec.setLayout(region.MipLevel, 1, region.BaseLayer, region.LayerCount, steady)
	return nil
}

// GenerateMipmaps fills mip levels 1..N-1 from level 0 with a chain of
// blits on a transient command buffer.
func (e *Engine) GenerateMipmaps(h Handle[Image]) error {
	rec, err := e.images.Get(h)
	if err != nil {
		return err
	}
	if rec.Desc.MipLevels < 2 {
		return nil
	}
	if e.lost.Load() {
		return ErrDeviceLost
	}

	aspect := rec.aspect()
	layers := rec.Desc.ArrayLayers
	err = e.withTransient(hal.QueueGraphics, func(cb hal.CommandBuffer) {
		for mip := uint32(0); mip < rec.Desc.MipLevels-1; mip++ {
			srcExtent := mipExtent3D(rec.Desc.Extent, mip)
			dstExtent := mipExtent3D(rec.Desc.Extent, mip+1)

			cb.TransitionImage(rec.native, aspect, mip, 1, 0, layers,
				rec.Layout(mip, 0), hal.LayoutTransferSrc)
			cb.TransitionImage(rec.native, aspect, mip+1, 1, 0, layers,
				rec.Layout(mip+1, 0), hal.LayoutTransferDst)
			cb.BlitMip(rec.native, aspect, mip, srcExtent, dstExtent)

			rec.setLayout(mip, 1, 0, layers, hal.LayoutTransferSrc)
			rec.setLayout(mip+1, 1, 0, layers, hal.LayoutTransferDst)
		}
		cb.TransitionImage(rec.native, aspect, 0, rec.Desc.MipLevels-1, 0, layers,
			hal.LayoutTransferSrc, hal.LayoutShaderReadOnly)
		cb.TransitionImage(rec.native, aspect, rec.Desc.MipLevels-1, 1, 0, layers,
			hal.LayoutTransferDst, hal.LayoutShaderReadOnly)
	})
	if err != nil {
		return err
	}
	rec.setLayout(0, rec.Desc.MipLevels, 0, layers, hal.LayoutShaderReadOnly)
	return nil
}

func mipExtent3D(base gputypes.Extent3D, level uint32) gputypes.Extent3D {
	return gputypes.Extent3D{
		Width:              mipDim(base.Width, level),
		Height:             mipDim(base.Height, level),
		DepthOrArrayLayers: base.DepthOrArrayLayers,
	}
}

func mipDim(v, level uint32) uint32 {
	v >>= level
	if v == 0 {
		return 1
	}
	return v
}

// DestroyImage invalidates the handle immediately and defers the native
// destroys (image, default view) a full ring of frames. Bindless indices
// return to their free lists through the same ring.
func (e *Engine) DestroyImage(h Handle[Image]) error {
	rec, err := e.images.Remove(h)
	if err != nil {
		return err
	}
	e.releaseImage(rec)
	return nil
}

func (e *Engine) releaseImage(rec Image) {
	if rec.SampledRID != InvalidRID {
		e.bindless.Release(rec.SampledRID, BindlessSampledImage, e.dispatcher)
	}
	if rec.StorageRID != InvalidRID {
		e.bindless.Release(rec.StorageRID, BindlessStorageImage, e.dispatcher)
	}
	// The default sampler stays in the dedup cache; it is shared.
	native, view := rec.native, rec.defaultView
	if native == nil {
		return
	}
	e.dispatcher.EnqueueResourceFree(func() {
		if view != nil {
			e.device.DestroyImageView(view)
		}
		e.device.DestroyImage(native)
	})
}
