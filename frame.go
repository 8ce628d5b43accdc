// Copyright 2025 Coalition of Freeware Developers
// SPDX-License-Identifier: MIT

package sedx

import (
	"errors"
	"fmt"

	"github.com/Coalition-of-Freeware-Developers/Scenery-Editor-X-sub000/hal"
)

// frameFenceTimeoutNs bounds the wait on a slot's render-finished fence.
const frameFenceTimeoutNs = 10_000_000_000 // 10 s

// frameSlot is one frame-in-flight: a primary command buffer, a staging
// ring with a bump pointer, a render-finished fence and the two
// per-frame semaphores. Staging rings are per-slot and therefore never
// shared across concurrent frames.
type frameSlot struct {
	pool hal.CommandPool
	cmd  hal.CommandBuffer

	stagingHandle Handle[Buffer]
	stagingNative hal.Buffer
	stagingData   []byte // persistently mapped
	stagingSize   uint64
	stagingOffset uint64

	fence          hal.Fence // render-finished, unsignaled until first submit
	imageAcquired  hal.Semaphore
	renderFinished hal.Semaphore

	submitted bool
}

// allocStaging bumps the staging pointer, returning the offset of a
// fresh region. Out-of-space yields StagingExhaustedError; the caller
// must split the upload, and nothing has been consumed.
func (s *frameSlot) allocStaging(size uint64) (uint64, error) {
	const stagingAlign = 4
	offset := alignUp(s.stagingOffset, stagingAlign)
	if offset+size > s.stagingSize {
		return 0, &StagingExhaustedError{Needed: size, Available: s.stagingSize - offset}
	}
	s.stagingOffset = offset + size
	return offset, nil
}

// frameRing owns the frames-in-flight slots, advanced once per frame.
type frameRing struct {
	slots   []frameSlot
	current uint32
}

func (e *Engine) initFrameRing() error {
	n := e.cfg.FramesInFlight
	e.frames.slots = make([]frameSlot, n)
	for i := range e.frames.slots {
		slot := &e.frames.slots[i]

		pool, err := e.device.CreateCommandPool(hal.QueueGraphics)
		if err != nil {
			return fmt.Errorf("sedx: frame %d: command pool: %w", i, err)
		}
		slot.pool = pool

		cmd, err := pool.Allocate()
		if err != nil {
			return fmt.Errorf("sedx: frame %d: command buffer: %w", i, err)
		}
		slot.cmd = cmd

		h, err := e.CreateStagingBuffer(e.cfg.StagingSize, fmt.Sprintf("frame %d staging", i))
		if err != nil {
			return err
		}
		rec, err := e.buffers.Get(h)
		if err != nil {
			return err
		}
		data, err := e.device.Map(rec.native)
		if err != nil {
			return fmt.Errorf("sedx: frame %d: staging map: %w", i, err)
		}
		rec.mapped = true
		slot.stagingHandle = h
		slot.stagingNative = rec.native
		slot.stagingData = data
		slot.stagingSize = e.cfg.StagingSize

		if slot.fence, err = e.device.CreateFence(); err != nil {
			return fmt.Errorf("sedx: frame %d: fence: %w", i, err)
		}
		if slot.imageAcquired, err = e.device.CreateBinarySemaphore(); err != nil {
			return fmt.Errorf("sedx: frame %d: semaphore: %w", i, err)
		}
		if slot.renderFinished, err = e.device.CreateBinarySemaphore(); err != nil {
			return fmt.Errorf("sedx: frame %d: semaphore: %w", i, err)
		}
	}
	return nil
}

func (r *frameRing) currentSlot() *frameSlot {
	return &r.slots[r.current]
}

func (e *Engine) destroyFrameRing() {
	for i := range e.frames.slots {
		slot := &e.frames.slots[i]
		if !slot.stagingHandle.IsNil() {
			_ = e.Unmap(slot.stagingHandle)
			_ = e.DestroyBuffer(slot.stagingHandle)
		}
		if slot.fence != nil {
			slot.fence.Destroy()
		}
		if slot.imageAcquired != nil {
			e.device.DestroySemaphore(slot.imageAcquired)
		}
		if slot.renderFinished != nil {
			e.device.DestroySemaphore(slot.renderFinished)
		}
		if slot.pool != nil {
			if slot.cmd != nil {
				slot.pool.Free(slot.cmd)
			}
			slot.pool.Destroy()
		}
	}
	e.frames.slots = nil
}

// BeginFrame waits for the current slot's render-finished fence (skipped
// until the slot has been submitted once), resets the staging bump
// pointer and begins the frame command buffer. The engine is then ready
// to record facade work for this frame.
func (e *Engine) BeginFrame() error {
	if e.lost.Load() {
		return ErrDeviceLost
	}
	slot := e.frames.currentSlot()

	if slot.submitted {
		if err := slot.fence.Wait(frameFenceTimeoutNs); err != nil {
			if errors.Is(err, hal.ErrTimeout) {
				return &TimeoutError{Ns: frameFenceTimeoutNs}
			}
			return err
		}
		if err := slot.fence.Reset(); err != nil {
			return err
		}
		slot.submitted = false
	}

	slot.stagingOffset = 0
	if err := slot.cmd.Reset(); err != nil {
		return err
	}
	return slot.cmd.Begin(false)
}

// EndFrame ends the frame command buffer, submits it on the graphics
// queue signaling the render-finished semaphore and fence, advances the
// deferred-destruction ring and steps to the next slot.
//
// A submit reporting device loss latches the engine into the lost state:
// subsequent submits are rejected with ErrDeviceLost and only Shutdown is
// serviced.
func (e *Engine) EndFrame() error {
	if e.lost.Load() {
		return ErrDeviceLost
	}
	slot := e.frames.currentSlot()

	if err := slot.cmd.End(); err != nil {
		return err
	}

	queue := e.queues.Queue(hal.QueueGraphics)
	err := queue.Submit(&hal.SubmitDescriptor{
		CommandBuffers:   []hal.CommandBuffer{slot.cmd},
		SignalSemaphores: []hal.Semaphore{slot.renderFinished},
		SignalValues:     []uint64{0},
		Fence:            slot.fence,
	})
	if err != nil {
		if isDeviceLost(err) {
			e.markLost()
		}
		return err
	}
	slot.submitted = true

	e.frameCounter.Add(1)
	e.dispatcher.AdvanceFrame(e.frames.current)
	e.frames.current = (e.frames.current + 1) % uint32(len(e.frames.slots))
	return nil
}

// FrameIndex returns the current slot index in [0, FramesInFlight).
func (e *Engine) FrameIndex() uint32 { return e.frames.current }

// FrameCounter returns the monotonically increasing frame number.
func (e *Engine) FrameCounter() uint64 { return e.frameCounter.Load() }
