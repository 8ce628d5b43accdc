// Copyright 2025 Coalition of Freeware Developers
// SPDX-License-Identifier: MIT

package sedx

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Coalition-of-Freeware-Developers/Scenery-Editor-X-sub000/hal"
)

// FrameSyncKind discriminates the primitive wrapped by a FrameSync.
type FrameSyncKind uint8

const (
	// SyncFence wraps a binary fence, created unsignaled.
	SyncFence FrameSyncKind = iota
	// SyncTimeline wraps a 64-bit timeline semaphore.
	SyncTimeline
)

// FrameSync wraps either a binary fence or a timeline semaphore behind
// one synchronization type. Operations that do not apply to the wrapped
// primitive return ErrOperationNotSupported.
type FrameSync struct {
	kind FrameSyncKind
	name string

	fence    hal.Fence
	timeline hal.TimelineSemaphore

	mu          sync.Mutex
	signalValue uint64
}

// NewFrameSync creates a FrameSync of the given kind on the device.
func NewFrameSync(device hal.Device, kind FrameSyncKind, name string) (*FrameSync, error) {
	fs := &FrameSync{kind: kind, name: name}
	switch kind {
	case SyncFence:
		f, err := device.CreateFence()
		if err != nil {
			return nil, fmt.Errorf("sedx: frame sync %q: %w", name, err)
		}
		fs.fence = f
	case SyncTimeline:
		t, err := device.CreateTimelineSemaphore(0)
		if err != nil {
			return nil, fmt.Errorf("sedx: frame sync %q: %w", name, err)
		}
		fs.timeline = t
	default:
		return nil, ErrOperationNotSupported
	}
	return fs, nil
}

// Kind returns the wrapped primitive kind.
func (fs *FrameSync) Kind() FrameSyncKind { return fs.kind }

// Name returns the debug name.
func (fs *FrameSync) Name() string { return fs.name }

// Wait blocks until the primitive signals: for a fence, until it is
// signaled; for a timeline, until the counter reaches the last value
// handed out by NextSignalValue. Timeouts are nanoseconds; ^uint64(0)
// waits forever. Returns *TimeoutError on expiry.
func (fs *FrameSync) Wait(timeoutNs uint64) error {
	var err error
	switch fs.kind {
	case SyncFence:
		err = fs.fence.Wait(timeoutNs)
	case SyncTimeline:
		fs.mu.Lock()
		target := fs.signalValue
		fs.mu.Unlock()
		err = fs.timeline.WaitValue(target, timeoutNs)
	}
	if errors.Is(err, hal.ErrTimeout) {
		return &TimeoutError{Ns: timeoutNs}
	}
	return err
}

// Signal sets the timeline counter from the host. Fences cannot be
// host-signaled; the call reports ErrOperationNotSupported. Signaling a
// value at or below the current counter is a timeline regression.
func (fs *FrameSync) Signal(value uint64) error {
	if fs.kind != SyncTimeline {
		return ErrOperationNotSupported
	}
	current, err := fs.timeline.CounterValue()
	if err != nil {
		return err
	}
	if value <= current {
		return &TimelineRegressionError{Current: current, Requested: value}
	}
	return fs.timeline.Signal(value)
}

// IsSignaled polls the primitive without blocking.
func (fs *FrameSync) IsSignaled() (bool, error) {
	switch fs.kind {
	case SyncFence:
		return fs.fence.IsSignaled()
	case SyncTimeline:
		fs.mu.Lock()
		target := fs.signalValue
		fs.mu.Unlock()
		current, err := fs.timeline.CounterValue()
		if err != nil {
			return false, err
		}
		return current >= target, nil
	}
	return false, ErrOperationNotSupported
}

// Reset returns a fence to the unsignaled state. Timelines are monotonic
// and cannot be reset.
func (fs *FrameSync) Reset() error {
	if fs.kind != SyncFence {
		return ErrOperationNotSupported
	}
	return fs.fence.Reset()
}

// NextSignalValue increments and returns the internal timeline counter;
// the returned value is the one to signal for the next submission.
func (fs *FrameSync) NextSignalValue() (uint64, error) {
	if fs.kind != SyncTimeline {
		return 0, ErrOperationNotSupported
	}
	fs.mu.Lock()
	fs.signalValue++
	v := fs.signalValue
	fs.mu.Unlock()
	return v, nil
}

// CurrentValue reads the timeline counter from the device.
func (fs *FrameSync) CurrentValue() (uint64, error) {
	if fs.kind != SyncTimeline {
		return 0, ErrOperationNotSupported
	}
	return fs.timeline.CounterValue()
}

// Destroy releases the wrapped primitive.
func (fs *FrameSync) Destroy() {
	switch fs.kind {
	case SyncFence:
		if fs.fence != nil {
			fs.fence.Destroy()
		}
	case SyncTimeline:
		if fs.timeline != nil {
			fs.timeline.Destroy()
		}
	}
}
