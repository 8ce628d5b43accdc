// Copyright 2025 Coalition of Freeware Developers
// SPDX-License-Identifier: MIT

//go:build !windows

package vk

import "unsafe"

const platformSurfaceCommand = "vkCreateXlibSurfaceKHR"

// PlatformSurfaceExtension is the instance extension enabling surface
// creation on this platform.
const PlatformSurfaceExtension = "VK_KHR_xlib_surface"

const structureTypeXlibSurfaceCreateInfo StructureType = 1000004000

type xlibSurfaceCreateInfoKHR struct {
	SType  StructureType
	_      uint32
	PNext  unsafe.Pointer
	Flags  uint32
	_      uint32
	Dpy    uintptr // Display*
	Window uintptr
}

// NewPlatformSurfaceCreateInfo packs the platform handles into the
// create-info struct consumed by CreatePlatformSurface.
func NewPlatformSurfaceCreateInfo(displayHandle, windowHandle uintptr) unsafe.Pointer {
	info := &xlibSurfaceCreateInfoKHR{
		SType:  structureTypeXlibSurfaceCreateInfo,
		Dpy:    displayHandle,
		Window: windowHandle,
	}
	return unsafe.Pointer(info)
}
