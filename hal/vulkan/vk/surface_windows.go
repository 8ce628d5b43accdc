// Copyright 2025 Coalition of Freeware Developers
// SPDX-License-Identifier: MIT

//go:build windows

package vk

import "unsafe"

const platformSurfaceCommand = "vkCreateWin32SurfaceKHR"

// PlatformSurfaceExtension is the instance extension enabling surface
// creation on this platform.
const PlatformSurfaceExtension = "VK_KHR_win32_surface"

const structureTypeWin32SurfaceCreateInfo StructureType = 1000009000

type win32SurfaceCreateInfoKHR struct {
	SType     StructureType
	_         uint32
	PNext     unsafe.Pointer
	Flags     uint32
	_         uint32
	Hinstance uintptr
	Hwnd      uintptr
}

// NewPlatformSurfaceCreateInfo packs the platform handles into the
// create-info struct consumed by CreatePlatformSurface.
func NewPlatformSurfaceCreateInfo(displayHandle, windowHandle uintptr) unsafe.Pointer {
	info := &win32SurfaceCreateInfoKHR{
		SType:     structureTypeWin32SurfaceCreateInfo,
		Hinstance: displayHandle,
		Hwnd:      windowHandle,
	}
	return unsafe.Pointer(info)
}
