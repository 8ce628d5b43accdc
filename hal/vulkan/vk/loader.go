// Copyright 2025 Coalition of Freeware Developers
// SPDX-License-Identifier: MIT

package vk

import (
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	"github.com/go-webgpu/goffi/ffi"
	"github.com/go-webgpu/goffi/types"
)

var (
	vulkanLib             unsafe.Pointer
	procGetInstanceAddr   unsafe.Pointer
	procGetDeviceAddr     unsafe.Pointer
	cifGetInstanceAddr    types.CallInterface
	cifGetDeviceAddr      types.CallInterface

	initOnce sync.Once
	errInit  error
)

// vulkanLibraryName returns the platform-specific Vulkan library name.
func vulkanLibraryName() string {
	switch runtime.GOOS {
	case "windows":
		return "vulkan-1.dll"
	case "darwin":
		return "libvulkan.dylib" // MoltenVK
	default: // linux, freebsd, ...
		return "libvulkan.so.1"
	}
}

// Init loads the Vulkan library and prepares the loader call interfaces.
// Safe to call multiple times; only the first call does work.
func Init() error {
	initOnce.Do(func() {
		errInit = doInit()
	})
	return errInit
}

func doInit() error {
	var err error

	vulkanLib, err = ffi.LoadLibrary(vulkanLibraryName())
	if err != nil {
		return fmt.Errorf("vk: failed to load %s: %w", vulkanLibraryName(), err)
	}

	procGetInstanceAddr, err = ffi.GetSymbol(vulkanLib, "vkGetInstanceProcAddr")
	if err != nil {
		return fmt.Errorf("vk: vkGetInstanceProcAddr not found: %w", err)
	}

	// PFN_vkVoidFunction vkGetInstanceProcAddr(VkInstance, const char*)
	err = ffi.PrepareCallInterface(&cifGetInstanceAddr, types.DefaultCall,
		types.PointerTypeDescriptor,
		[]*types.TypeDescriptor{
			types.UInt64TypeDescriptor,  // VkInstance (handle, may be 0)
			types.PointerTypeDescriptor, // const char* pName
		})
	if err != nil {
		return fmt.Errorf("vk: prepare GetInstanceProcAddr: %w", err)
	}

	// PFN_vkVoidFunction vkGetDeviceProcAddr(VkDevice, const char*)
	err = ffi.PrepareCallInterface(&cifGetDeviceAddr, types.DefaultCall,
		types.PointerTypeDescriptor,
		[]*types.TypeDescriptor{
			types.UInt64TypeDescriptor,
			types.PointerTypeDescriptor,
		})
	if err != nil {
		return fmt.Errorf("vk: prepare GetDeviceProcAddr: %w", err)
	}

	return initSignatures()
}

// GetInstanceProcAddr resolves a Vulkan instance-level function.
// Pass instance=0 for global functions.
func GetInstanceProcAddr(instance Instance, name string) unsafe.Pointer {
	if procGetInstanceAddr == nil {
		return nil
	}
	cname := make([]byte, len(name)+1)
	copy(cname, name)

	var result unsafe.Pointer
	namePtr := unsafe.Pointer(&cname[0])
	args := [2]unsafe.Pointer{
		unsafe.Pointer(&instance),
		unsafe.Pointer(&namePtr),
	}
	_ = ffi.CallFunction(&cifGetInstanceAddr, procGetInstanceAddr, unsafe.Pointer(&result), args[:])
	return result
}

// SetDeviceProcAddr resolves vkGetDeviceProcAddr with a live instance.
// Some drivers (Intel) return NULL for it at global scope.
func SetDeviceProcAddr(instance Instance) {
	if procGetDeviceAddr == nil {
		procGetDeviceAddr = GetInstanceProcAddr(instance, "vkGetDeviceProcAddr")
	}
}

// GetDeviceProcAddr resolves a Vulkan device-level function.
func GetDeviceProcAddr(device Device, name string) unsafe.Pointer {
	if procGetDeviceAddr == nil {
		procGetDeviceAddr = GetInstanceProcAddr(0, "vkGetDeviceProcAddr")
		if procGetDeviceAddr == nil {
			return nil
		}
	}
	cname := make([]byte, len(name)+1)
	copy(cname, name)

	var result unsafe.Pointer
	namePtr := unsafe.Pointer(&cname[0])
	args := [2]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&namePtr),
	}
	_ = ffi.CallFunction(&cifGetDeviceAddr, procGetDeviceAddr, unsafe.Pointer(&result), args[:])
	return result
}

// Close releases the Vulkan library.
func Close() error {
	if vulkanLib != nil {
		err := ffi.FreeLibrary(vulkanLib)
		vulkanLib = nil
		procGetInstanceAddr = nil
		procGetDeviceAddr = nil
		return err
	}
	return nil
}
