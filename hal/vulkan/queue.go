// Copyright 2025 Coalition of Freeware Developers
// SPDX-License-Identifier: MIT

package vulkan

import (
	"sync"
	"unsafe"

	"github.com/Coalition-of-Freeware-Developers/Scenery-Editor-X-sub000/hal"
	"github.com/Coalition-of-Freeware-Developers/Scenery-Editor-X-sub000/hal/vulkan/vk"
)

// Queue implements hal.Queue. Submitting requires holding the queue's
// mutex for the duration of vkQueueSubmit; kinds that alias the same
// family share one Queue value and therefore one mutex.
type Queue struct {
	mu     sync.Mutex
	handle vk.Queue
	device *Device
	kind   hal.QueueKind
	family uint32
}

// Kind returns the primary kind this queue was opened for.
func (q *Queue) Kind() hal.QueueKind { return q.kind }

// Submit submits command buffers with optional semaphores, timeline
// values and a completion fence.
func (q *Queue) Submit(desc *hal.SubmitDescriptor) error {
	cbs := make([]vk.CommandBuffer, len(desc.CommandBuffers))
	for i, cb := range desc.CommandBuffers {
		cbs[i] = cb.(*CommandBuffer).handle
	}

	info := vk.SubmitInfo{
		SType: vk.StructureTypeSubmitInfo,
	}
	if len(cbs) > 0 {
		info.CommandBufferCount = uint32(len(cbs))
		info.PCommandBuffers = &cbs[0]
	}

	waitStages := make([]vk.PipelineStageFlags, len(desc.WaitSemaphores))
	waits := make([]vk.Semaphore, len(desc.WaitSemaphores))
	for i, s := range desc.WaitSemaphores {
		waits[i] = semaphoreHandle(s)
		waitStages[i] = vk.PipelineStageColorAttachmentOutputBit | vk.PipelineStageTransferBit
	}
	signals := make([]vk.Semaphore, len(desc.SignalSemaphores))
	for i, s := range desc.SignalSemaphores {
		signals[i] = semaphoreHandle(s)
	}
	if len(waits) > 0 {
		info.WaitSemaphoreCount = uint32(len(waits))
		info.PWaitSemaphores = &waits[0]
		info.PWaitDstStageMask = &waitStages[0]
	}
	if len(signals) > 0 {
		info.SignalSemaphoreCount = uint32(len(signals))
		info.PSignalSemaphores = &signals[0]
	}

	// Timeline values ride a chained struct; binary slots carry zero.
	var timeline vk.TimelineSemaphoreSubmitInfo
	if hasNonZero(desc.WaitValues) || hasNonZero(desc.SignalValues) {
		timeline = vk.TimelineSemaphoreSubmitInfo{
			SType: vk.StructureTypeTimelineSemaphoreSubmitInfo,
		}
		if len(desc.WaitValues) > 0 {
			timeline.WaitSemaphoreValueCount = uint32(len(desc.WaitValues))
			timeline.PWaitSemaphoreValues = &desc.WaitValues[0]
		}
		if len(desc.SignalValues) > 0 {
			timeline.SignalSemaphoreValueCount = uint32(len(desc.SignalValues))
			timeline.PSignalSemaphoreValues = &desc.SignalValues[0]
		}
		info.PNext = unsafe.Pointer(&timeline)
	}

	var fence vk.Fence
	if desc.Fence != nil {
		fence = desc.Fence.(*Fence).handle
	}

	q.mu.Lock()
	result := q.device.cmds.QueueSubmit(q.handle, 1, &info, fence)
	q.mu.Unlock()

	if result != vk.Success {
		return vkResultToError(result, 0)
	}
	return nil
}

// Present queues a swapchain image for presentation.
func (q *Queue) Present(surface hal.Surface, imageIndex uint32, wait hal.Semaphore) error {
	s := surface.(*Surface)
	waitHandle := semaphoreHandle(wait)

	info := vk.PresentInfoKHR{
		SType:          vk.StructureTypePresentInfoKHR,
		SwapchainCount: 1,
		PSwapchains:    &s.swapchain,
		PImageIndices:  &imageIndex,
	}
	if waitHandle != 0 {
		info.WaitSemaphoreCount = 1
		info.PWaitSemaphores = &waitHandle
	}

	q.mu.Lock()
	result := q.device.cmds.QueuePresentKHR(q.handle, &info)
	q.mu.Unlock()

	if result == vk.SuboptimalKHR {
		return hal.ErrSurfaceOutdated
	}
	if result != vk.Success {
		return vkResultToError(result, 0)
	}
	return nil
}

// WaitIdle blocks until the queue drains.
func (q *Queue) WaitIdle() error {
	q.mu.Lock()
	result := q.device.cmds.QueueWaitIdle(q.handle)
	q.mu.Unlock()
	if result != vk.Success {
		return vkResultToError(result, 0)
	}
	return nil
}

func hasNonZero(values []uint64) bool {
	for _, v := range values {
		if v != 0 {
			return true
		}
	}
	return false
}

func semaphoreHandle(s hal.Semaphore) vk.Semaphore {
	switch sem := s.(type) {
	case *Semaphore:
		return sem.handle
	case *timelineAsSemaphore:
		return sem.t.handle
	}
	return 0
}

// queueSet caches one Queue per distinct family and maps every kind onto
// it, so aliased kinds share a submission mutex.
type queueSet struct {
	byKind [4]*Queue
}

func newQueueSet(dev *Device, families queueFamilies) *queueSet {
	byFamily := make(map[uint32]*Queue)
	get := func(kind hal.QueueKind, family uint32) *Queue {
		if q, ok := byFamily[family]; ok {
			return q
		}
		var handle vk.Queue
		dev.cmds.GetDeviceQueue(dev.handle, family, 0, &handle)
		q := &Queue{handle: handle, device: dev, kind: kind, family: family}
		byFamily[family] = q
		return q
	}

	set := &queueSet{}
	set.byKind[hal.QueueGraphics] = get(hal.QueueGraphics, families.graphics)
	set.byKind[hal.QueueCompute] = get(hal.QueueCompute, families.compute)
	set.byKind[hal.QueueTransfer] = get(hal.QueueTransfer, families.transfer)
	set.byKind[hal.QueuePresent] = set.byKind[hal.QueueGraphics]
	return set
}

// Queue returns the queue serving kind.
func (s *queueSet) Queue(kind hal.QueueKind) hal.Queue {
	return s.byKind[kind]
}
