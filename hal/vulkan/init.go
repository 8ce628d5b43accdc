// Copyright 2025 Coalition of Freeware Developers
// SPDX-License-Identifier: MIT

package vulkan

import (
	"fmt"
	"unsafe"

	"github.com/gogpu/gputypes"

	"github.com/Coalition-of-Freeware-Developers/Scenery-Editor-X-sub000/hal"
	"github.com/Coalition-of-Freeware-Developers/Scenery-Editor-X-sub000/hal/vulkan/vk"
)

func init() {
	hal.RegisterBackend(&backend{})
}

type backend struct{}

func (*backend) Variant() gputypes.Backend { return gputypes.BackendVulkan }

const validationLayerName = "VK_LAYER_KHRONOS_validation"

// CreateInstance loads the Vulkan library and creates a VkInstance,
// enabling the validation layer when requested and available.
func (*backend) CreateInstance(desc *hal.InstanceDescriptor) (hal.Instance, error) {
	if err := vk.Init(); err != nil {
		return nil, err
	}

	cmds := vk.NewCommands()
	if err := cmds.LoadGlobal(); err != nil {
		return nil, err
	}

	appName := append([]byte(desc.AppName), 0)
	engineName := append([]byte("SceneryEditorX"), 0)
	appInfo := vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		PApplicationName:   unsafe.Pointer(&appName[0]),
		ApplicationVersion: vk.MakeAPIVersion(0, 1, 0),
		PEngineName:        unsafe.Pointer(&engineName[0]),
		EngineVersion:      vk.MakeAPIVersion(0, 1, 0),
		APIVersion:         vk.APIVersion1_2,
	}

	extensions := []string{"VK_KHR_surface", vk.PlatformSurfaceExtension}
	extPtrs, extPin := cStringArray(extensions)

	info := vk.InstanceCreateInfo{
		SType:                   vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo:        &appInfo,
		EnabledExtensionCount:   uint32(len(extensions)),
		PpEnabledExtensionNames: extPtrs,
	}

	var layerPin [][]byte
	var layerPtrs unsafe.Pointer
	if desc.Validation {
		layerPtrs, layerPin = cStringArray([]string{validationLayerName})
		info.EnabledLayerCount = 1
		info.PpEnabledLayerNames = layerPtrs
	}

	var handle vk.Instance
	result := cmds.CreateInstance(&info, &handle)
	if result == vk.ErrorLayerMissing && desc.Validation {
		// Validation is best-effort: retry without the layer.
		hal.Logger().Warn("validation layer unavailable",
			"component", "device", "layer", validationLayerName)
		info.EnabledLayerCount = 0
		info.PpEnabledLayerNames = nil
		result = cmds.CreateInstance(&info, &handle)
	}
	if result != vk.Success {
		return nil, fmt.Errorf("vulkan: vkCreateInstance failed: %d", result)
	}
	_ = extPin
	_ = layerPin

	if err := cmds.LoadInstance(handle); err != nil {
		cmds.DestroyInstance(handle)
		return nil, err
	}

	return &Instance{handle: handle, cmds: cmds}, nil
}

// cStringArray builds a NUL-terminated char* array for Vulkan create
// infos. The returned byte slices pin the string storage.
func cStringArray(strs []string) (unsafe.Pointer, [][]byte) {
	pin := make([][]byte, len(strs))
	ptrs := make([]uintptr, len(strs))
	for i, s := range strs {
		pin[i] = append([]byte(s), 0)
		ptrs[i] = uintptr(unsafe.Pointer(&pin[i][0]))
	}
	return unsafe.Pointer(&ptrs[0]), pin
}
