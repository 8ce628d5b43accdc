// Copyright 2025 Coalition of Freeware Developers
// SPDX-License-Identifier: MIT

package vulkan

import (
	"fmt"

	"github.com/Coalition-of-Freeware-Developers/Scenery-Editor-X-sub000/hal"
	"github.com/Coalition-of-Freeware-Developers/Scenery-Editor-X-sub000/hal/vulkan/vk"
)

// Fence implements hal.Fence over a binary VkFence, created unsignaled.
type Fence struct {
	handle vk.Fence
	device *Device
}

// CreateFence creates an unsignaled fence.
func (d *Device) CreateFence() (hal.Fence, error) {
	info := vk.FenceCreateInfo{SType: vk.StructureTypeFenceCreateInfo}
	var handle vk.Fence
	if result := d.cmds.CreateFence(d.handle, &info, &handle); result != vk.Success {
		return nil, fmt.Errorf("vulkan: vkCreateFence failed: %d", result)
	}
	return &Fence{handle: handle, device: d}, nil
}

// IsSignaled polls the fence.
func (f *Fence) IsSignaled() (bool, error) {
	result := f.device.cmds.GetFenceStatus(f.device.handle, f.handle)
	switch result {
	case vk.Success:
		return true, nil
	case vk.NotReady:
		return false, nil
	}
	return false, vkResultToError(result, 0)
}

// Wait blocks until the fence signals or timeoutNs elapses.
func (f *Fence) Wait(timeoutNs uint64) error {
	result := f.device.cmds.WaitForFences(f.device.handle, 1, &f.handle, vk.True, timeoutNs)
	switch result {
	case vk.Success:
		return nil
	case vk.TimeoutResult:
		return hal.ErrTimeout
	}
	return vkResultToError(result, 0)
}

// Reset returns the fence to the unsignaled state.
func (f *Fence) Reset() error {
	if result := f.device.cmds.ResetFences(f.device.handle, 1, &f.handle); result != vk.Success {
		return vkResultToError(result, 0)
	}
	return nil
}

// Destroy releases the fence.
func (f *Fence) Destroy() {
	if f.handle != 0 {
		f.device.cmds.DestroyFence(f.device.handle, f.handle)
		f.handle = 0
	}
}

// Semaphore implements hal.Semaphore over a binary VkSemaphore.
type Semaphore struct {
	handle vk.Semaphore
	device *Device
}

// Destroy releases the semaphore.
func (s *Semaphore) Destroy() {
	if s.handle != 0 {
		s.device.cmds.DestroySemaphore(s.device.handle, s.handle)
		s.handle = 0
	}
}

// CreateBinarySemaphore creates a binary semaphore.
func (d *Device) CreateBinarySemaphore() (hal.Semaphore, error) {
	info := vk.SemaphoreCreateInfo{SType: vk.StructureTypeSemaphoreCreateInfo}
	var handle vk.Semaphore
	if result := d.cmds.CreateSemaphore(d.handle, &info, &handle); result != vk.Success {
		return nil, fmt.Errorf("vulkan: vkCreateSemaphore failed: %d", result)
	}
	return &Semaphore{handle: handle, device: d}, nil
}

// DestroySemaphore releases a binary semaphore.
func (d *Device) DestroySemaphore(sem hal.Semaphore) {
	if s, ok := sem.(*Semaphore); ok && s.handle != 0 {
		d.cmds.DestroySemaphore(d.handle, s.handle)
		s.handle = 0
	}
}

// TimelineSemaphore implements hal.TimelineSemaphore over a Vulkan 1.2
// timeline semaphore.
type TimelineSemaphore struct {
	handle vk.Semaphore
	device *Device
}

// CreateTimelineSemaphore creates a timeline semaphore with the given
// initial counter.
func (d *Device) CreateTimelineSemaphore(initial uint64) (hal.TimelineSemaphore, error) {
	if !d.cmds.HasTimelineSemaphore() {
		return nil, fmt.Errorf("vulkan: timeline semaphore functions not available")
	}
	typeInfo := vk.SemaphoreTypeCreateInfo{
		SType:         vk.StructureTypeSemaphoreTypeCreateInfo,
		SemaphoreType: vk.SemaphoreTypeTimeline,
		InitialValue:  initial,
	}
	info := vk.SemaphoreCreateInfo{
		SType: vk.StructureTypeSemaphoreCreateInfo,
		PNext: ptrOf(&typeInfo),
	}
	var handle vk.Semaphore
	if result := d.cmds.CreateSemaphore(d.handle, &info, &handle); result != vk.Success {
		return nil, fmt.Errorf("vulkan: vkCreateSemaphore (timeline) failed: %d", result)
	}
	return &TimelineSemaphore{handle: handle, device: d}, nil
}

// Signal sets the counter from the host.
func (t *TimelineSemaphore) Signal(value uint64) error {
	info := vk.SemaphoreSignalInfo{
		SType:     vk.StructureTypeSemaphoreSignalInfo,
		Semaphore: t.handle,
		Value:     value,
	}
	if result := t.device.cmds.SignalSemaphore(t.device.handle, &info); result != vk.Success {
		return vkResultToError(result, 0)
	}
	return nil
}

// WaitValue blocks until the counter reaches value or timeoutNs elapses.
func (t *TimelineSemaphore) WaitValue(value uint64, timeoutNs uint64) error {
	info := vk.SemaphoreWaitInfo{
		SType:          vk.StructureTypeSemaphoreWaitInfo,
		SemaphoreCount: 1,
		PSemaphores:    &t.handle,
		PValues:        &value,
	}
	result := t.device.cmds.WaitSemaphores(t.device.handle, &info, timeoutNs)
	switch result {
	case vk.Success:
		return nil
	case vk.TimeoutResult:
		return hal.ErrTimeout
	}
	return vkResultToError(result, 0)
}

// CounterValue reads the current counter.
func (t *TimelineSemaphore) CounterValue() (uint64, error) {
	var value uint64
	if result := t.device.cmds.GetSemaphoreCounterValue(t.device.handle, t.handle, &value); result != vk.Success {
		return 0, vkResultToError(result, 0)
	}
	return value, nil
}

// Destroy releases the semaphore.
func (t *TimelineSemaphore) Destroy() {
	if t.handle != 0 {
		t.device.cmds.DestroySemaphore(t.device.handle, t.handle)
		t.handle = 0
	}
}

// timelineAsSemaphore lets a timeline semaphore ride the binary
// semaphore slots of a SubmitDescriptor, paired with its value.
type timelineAsSemaphore struct {
	t *TimelineSemaphore
}

// Destroy is a no-op; the wrapped timeline owns the handle.
func (*timelineAsSemaphore) Destroy() {}

// WrapTimeline adapts a timeline semaphore for submit wait/signal arrays.
func WrapTimeline(t hal.TimelineSemaphore) hal.Semaphore {
	return &timelineAsSemaphore{t: t.(*TimelineSemaphore)}
}
