// Copyright 2025 Coalition of Freeware Developers
// SPDX-License-Identifier: MIT

package noop

import (
	"fmt"
	"sync"
	"time"

	"github.com/Coalition-of-Freeware-Developers/Scenery-Editor-X-sub000/hal"
)

// Fence implements hal.Fence. Created unsignaled; signaled by queue
// submission.
type Fence struct {
	mu       sync.Mutex
	cond     *sync.Cond
	signaled bool
}

func newFence() *Fence {
	f := &Fence{}
	f.cond = sync.NewCond(&f.mu)
	return f
}

// IsSignaled polls the fence.
func (f *Fence) IsSignaled() (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.signaled, nil
}

// Wait blocks until signaled or the timeout elapses.
func (f *Fence) Wait(timeoutNs uint64) error {
	f.mu.Lock()
	if f.signaled {
		f.mu.Unlock()
		return nil
	}
	f.mu.Unlock()

	if timeoutNs == 0 {
		return hal.ErrTimeout
	}

	done := make(chan struct{})
	go func() {
		f.mu.Lock()
		for !f.signaled {
			f.cond.Wait()
		}
		f.mu.Unlock()
		close(done)
	}()

	if timeoutNs == ^uint64(0) {
		<-done
		return nil
	}
	select {
	case <-done:
		return nil
	case <-time.After(time.Duration(timeoutNs) * time.Nanosecond):
		return hal.ErrTimeout
	}
}

// Reset returns the fence to the unsignaled state.
func (f *Fence) Reset() error {
	f.mu.Lock()
	f.signaled = false
	f.mu.Unlock()
	return nil
}

// Destroy is a no-op.
func (f *Fence) Destroy() {}

func (f *Fence) signal() {
	f.mu.Lock()
	f.signaled = true
	f.cond.Broadcast()
	f.mu.Unlock()
}

// Semaphore implements hal.Semaphore (binary).
type Semaphore struct {
	mu       sync.Mutex
	signaled bool
}

// Destroy is a no-op.
func (*Semaphore) Destroy() {}

func (s *Semaphore) signal() {
	s.mu.Lock()
	s.signaled = true
	s.mu.Unlock()
}

// TimelineSemaphore implements hal.TimelineSemaphore with a host-side
// counter.
type TimelineSemaphore struct {
	mu    sync.Mutex
	cond  *sync.Cond
	value uint64
}

func newTimeline(initial uint64) *TimelineSemaphore {
	t := &TimelineSemaphore{value: initial}
	t.cond = sync.NewCond(&t.mu)
	return t
}

// Signal advances the counter. Regressions are rejected as the driver
// would reject them.
func (t *TimelineSemaphore) Signal(value uint64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if value <= t.value {
		return fmt.Errorf("noop: timeline signal %d not above current %d", value, t.value)
	}
	t.value = value
	t.cond.Broadcast()
	return nil
}

// WaitValue blocks until the counter reaches value or the timeout elapses.
func (t *TimelineSemaphore) WaitValue(value uint64, timeoutNs uint64) error {
	t.mu.Lock()
	if t.value >= value {
		t.mu.Unlock()
		return nil
	}
	t.mu.Unlock()

	if timeoutNs == 0 {
		return hal.ErrTimeout
	}

	done := make(chan struct{})
	go func() {
		t.mu.Lock()
		for t.value < value {
			t.cond.Wait()
		}
		t.mu.Unlock()
		close(done)
	}()

	if timeoutNs == ^uint64(0) {
		<-done
		return nil
	}
	select {
	case <-done:
		return nil
	case <-time.After(time.Duration(timeoutNs) * time.Nanosecond):
		return hal.ErrTimeout
	}
}

// CounterValue reads the current counter.
func (t *TimelineSemaphore) CounterValue() (uint64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.value, nil
}

// Destroy is a no-op.
func (t *TimelineSemaphore) Destroy() {}
