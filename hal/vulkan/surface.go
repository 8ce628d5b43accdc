// Copyright 2025 Coalition of Freeware Developers
// SPDX-License-Identifier: MIT

package vulkan

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/Coalition-of-Freeware-Developers/Scenery-Editor-X-sub000/hal"
	"github.com/Coalition-of-Freeware-Developers/Scenery-Editor-X-sub000/hal/vulkan/vk"
)

// Surface implements hal.Surface: a VkSurfaceKHR plus its swapchain and
// per-image views.
type Surface struct {
	instance *Instance
	device   *Device

	handle    vk.SurfaceKHR
	swapchain vk.SwapchainKHR
	format    vk.SurfaceFormatKHR
	images    []*Image
	views     []*ImageView
}

// Configure (re)builds the swapchain. The surface binds to the device
// opened from its instance; a surface created before Adapter.Open is
// unusable.
func (s *Surface) Configure(width, height uint32, vsync bool) error {
	if s.device == nil {
		return fmt.Errorf("vulkan: surface created before device open")
	}
	cmds := s.device.cmds

	var caps vk.SurfaceCapabilitiesKHR
	if result := cmds.GetPhysicalDeviceSurfaceCapabilitiesKHR(s.device.physicalDevice, s.handle, &caps); result != vk.Success {
		return vkResultToError(result, 0)
	}
	if width == 0 || height == 0 {
		return hal.ErrSurfaceOutdated
	}

	var formatCount uint32
	if result := cmds.GetPhysicalDeviceSurfaceFormatsKHR(s.device.physicalDevice, s.handle, &formatCount, nil); result != vk.Success || formatCount == 0 {
		return fmt.Errorf("vulkan: no surface formats")
	}
	formats := make([]vk.SurfaceFormatKHR, formatCount)
	if result := cmds.GetPhysicalDeviceSurfaceFormatsKHR(s.device.physicalDevice, s.handle, &formatCount, &formats[0]); result != vk.Success {
		return vkResultToError(result, 0)
	}
	s.format = formats[0]
	for _, f := range formats[:formatCount] {
		if f.Format == vk.FormatBGRA8Unorm {
			s.format = f
			break
		}
	}

	imageCount := caps.MinImageCount + 1
	if caps.MaxImageCount != 0 && imageCount > caps.MaxImageCount {
		imageCount = caps.MaxImageCount
	}
	presentMode := vk.PresentModeFifoKHR // always available; vsync
	if !vsync {
		presentMode = vk.PresentModeMailboxKHR
	}

	old := s.swapchain
	info := vk.SwapchainCreateInfoKHR{
		SType:            vk.StructureTypeSwapchainCreateInfoKHR,
		Surface:          s.handle,
		MinImageCount:    imageCount,
		ImageFormat:      s.format.Format,
		ImageColorSpace:  s.format.ColorSpace,
		ImageExtent:      vk.Extent2D{Width: width, Height: height},
		ImageArrayLayers: 1,
		ImageUsage:       vk.ImageUsageColorAttachmentBit,
		ImageSharingMode: vk.SharingModeExclusive,
		PreTransform:     caps.CurrentTransform,
		CompositeAlpha:   1, // OPAQUE
		PresentMode:      presentMode,
		Clipped:          vk.True,
		OldSwapchain:     old,
	}
	var swapchain vk.SwapchainKHR
	if result := cmds.CreateSwapchainKHR(s.device.handle, &info, &swapchain); result != vk.Success {
		return vkResultToError(result, 0)
	}
	s.releaseSwapchainViews()
	if old != 0 {
		cmds.DestroySwapchainKHR(s.device.handle, old)
	}
	s.swapchain = swapchain

	var count uint32
	if result := cmds.GetSwapchainImagesKHR(s.device.handle, swapchain, &count, nil); result != vk.Success {
		return vkResultToError(result, 0)
	}
	native := make([]vk.Image, count)
	if result := cmds.GetSwapchainImagesKHR(s.device.handle, swapchain, &count, &native[0]); result != vk.Success {
		return vkResultToError(result, 0)
	}

	s.images = make([]*Image, count)
	s.views = make([]*ImageView, count)
	for i, img := range native[:count] {
		s.images[i] = &Image{handle: img, format: s.format.Format, external: true}
		view, err := s.device.CreateImageView(s.images[i], &hal.ImageViewDescriptor{
			Format:        gputypes.TextureFormatBGRA8Unorm,
			MipLevelCount: 1,
			ArrayLayers:   1,
			Aspect:        gputypes.TextureAspectAll,
		})
		if err != nil {
			return err
		}
		s.views[i] = view.(*ImageView)
	}

	hal.Logger().Debug("swapchain configured",
		"component", "vulkan", "width", width, "height", height,
		"images", count, "vsync", vsync)
	return nil
}

// Acquire obtains the next swapchain image.
func (s *Surface) Acquire(signal hal.Semaphore, timeoutNs uint64) (hal.SurfaceFrame, error) {
	if s.swapchain == 0 {
		return hal.SurfaceFrame{}, hal.ErrSurfaceOutdated
	}
	var index uint32
	result := s.device.cmds.AcquireNextImageKHR(
		s.device.handle, s.swapchain, timeoutNs, semaphoreHandle(signal), 0, &index)
	switch result {
	case vk.Success, vk.SuboptimalKHR:
	case vk.TimeoutResult, vk.NotReady:
		return hal.SurfaceFrame{}, hal.ErrTimeout
	default:
		return hal.SurfaceFrame{}, vkResultToError(result, 0)
	}
	return hal.SurfaceFrame{
		ImageIndex: index,
		Image:      s.images[index],
		View:       s.views[index],
	}, nil
}

// Destroy releases the swapchain, its views and the surface.
func (s *Surface) Destroy() {
	s.releaseSwapchainViews()
	if s.swapchain != 0 && s.device != nil {
		s.device.cmds.DestroySwapchainKHR(s.device.handle, s.swapchain)
		s.swapchain = 0
	}
	if s.handle != 0 {
		s.instance.cmds.DestroySurfaceKHR(s.instance.handle, s.handle)
		s.handle = 0
	}
}

func (s *Surface) releaseSwapchainViews() {
	if s.device == nil {
		return
	}
	for _, v := range s.views {
		if v != nil {
			s.device.DestroyImageView(v)
		}
	}
	s.views = nil
	s.images = nil
}
