// Copyright 2025 Coalition of Freeware Developers
// SPDX-License-Identifier: MIT

package vulkan

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/Coalition-of-Freeware-Developers/Scenery-Editor-X-sub000/hal"
	"github.com/Coalition-of-Freeware-Developers/Scenery-Editor-X-sub000/hal/vulkan/vk"
)

// Instance implements hal.Instance for Vulkan.
type Instance struct {
	handle vk.Instance
	cmds   *vk.Commands

	// activeDevice is the device opened from this instance; surfaces
	// created afterwards bind to it.
	activeDevice *Device
}

// EnumerateAdapters lists the physical devices with their metadata.
func (i *Instance) EnumerateAdapters() []hal.ExposedAdapter {
	var count uint32
	if result := i.cmds.EnumeratePhysicalDevices(i.handle, &count, nil); result != vk.Success || count == 0 {
		return nil
	}
	devices := make([]vk.PhysicalDevice, count)
	if result := i.cmds.EnumeratePhysicalDevices(i.handle, &count, &devices[0]); result != vk.Success {
		return nil
	}

	out := make([]hal.ExposedAdapter, 0, count)
	for _, pd := range devices[:count] {
		a := &Adapter{instance: i, physicalDevice: pd}
		i.cmds.GetPhysicalDeviceProperties(pd, &a.properties)
		out = append(out, hal.ExposedAdapter{Adapter: a, Info: a.Info()})
	}
	return out
}

// CreateSurface creates a VkSurfaceKHR from raw platform handles.
func (i *Instance) CreateSurface(displayHandle, windowHandle uintptr) (hal.Surface, error) {
	info := vk.NewPlatformSurfaceCreateInfo(displayHandle, windowHandle)
	var surface vk.SurfaceKHR
	if result := i.cmds.CreatePlatformSurface(i.handle, info, &surface); result != vk.Success {
		return nil, fmt.Errorf("vulkan: surface creation failed: %d", result)
	}
	return &Surface{instance: i, handle: surface, device: i.activeDevice}, nil
}

// Destroy releases the instance; the Vulkan library stays loaded.
func (i *Instance) Destroy() {
	if i.handle != 0 {
		i.cmds.DestroyInstance(i.handle)
		i.handle = 0
	}
}

// Adapter implements hal.Adapter for Vulkan.
type Adapter struct {
	instance       *Instance
	physicalDevice vk.PhysicalDevice
	properties     vk.PhysicalDeviceProperties
}

// Info returns the adapter metadata reported at selection time.
func (a *Adapter) Info() gputypes.AdapterInfo {
	name := a.properties.DeviceName[:]
	n := 0
	for n < len(name) && name[n] != 0 {
		n++
	}
	return gputypes.AdapterInfo{
		Name:       string(name[:n]),
		Vendor:     vendorName(a.properties.VendorID),
		VendorID:   a.properties.VendorID,
		DeviceID:   a.properties.DeviceID,
		DeviceType: deviceType(a.properties.DeviceType),
		Driver:     "Vulkan",
		DriverInfo: apiVersionString(a.properties.APIVersion),
		Backend:    gputypes.BackendVulkan,
	}
}

func vendorName(id uint32) string {
	switch id {
	case 0x1002:
		return "AMD"
	case 0x10DE:
		return "NVIDIA"
	case 0x8086:
		return "Intel"
	case 0x13B5:
		return "ARM"
	case 0x5143:
		return "Qualcomm"
	case 0x106B:
		return "Apple"
	}
	return fmt.Sprintf("0x%04X", id)
}

func deviceType(t vk.PhysicalDeviceType) gputypes.DeviceType {
	switch t {
	case vk.PhysicalDeviceTypeDiscreteGPU:
		return gputypes.DeviceTypeDiscreteGPU
	case vk.PhysicalDeviceTypeIntegratedGPU:
		return gputypes.DeviceTypeIntegratedGPU
	case vk.PhysicalDeviceTypeCPU:
		return gputypes.DeviceTypeCPU
	}
	return gputypes.DeviceTypeOther
}

func apiVersionString(v uint32) string {
	return fmt.Sprintf("%d.%d.%d", v>>22, (v>>12)&0x3FF, v&0xFFF)
}
