// Copyright 2025 Coalition of Freeware Developers
// SPDX-License-Identifier: MIT

package noop

import (
	"sync"

	"github.com/Coalition-of-Freeware-Developers/Scenery-Editor-X-sub000/hal"
)

// Queue implements hal.Queue. One Queue value serves every family; the
// noop "GPU" completes work instantly, so Submit signals the fence and
// semaphores before returning.
type Queue struct {
	mu   sync.Mutex
	kind hal.QueueKind

	// FailSubmit, when non-nil, is returned by the next Submit calls.
	// Tests use it to simulate device loss. Guarded by mu.
	FailSubmit error

	// Submissions counts successful submits.
	Submissions uint64
}

// Kind returns the primary queue kind.
func (q *Queue) Kind() hal.QueueKind { return q.kind }

// InjectFailure arranges for subsequent submits to fail with err.
// Pass nil to clear.
func (q *Queue) InjectFailure(err error) {
	q.mu.Lock()
	q.FailSubmit = err
	q.mu.Unlock()
}

// Submit completes the submission instantly.
func (q *Queue) Submit(desc *hal.SubmitDescriptor) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.FailSubmit != nil {
		return q.FailSubmit
	}

	for i, sem := range desc.SignalSemaphores {
		switch s := sem.(type) {
		case *Semaphore:
			s.signal()
		case *timelineAsSemaphore:
			if i < len(desc.SignalValues) && desc.SignalValues[i] != 0 {
				_ = s.t.Signal(desc.SignalValues[i])
			}
		}
	}
	if desc.Fence != nil {
		if f, ok := desc.Fence.(*Fence); ok {
			f.signal()
		}
	}
	q.Submissions++
	return nil
}

// Present is a no-op that succeeds while the surface stays configured.
func (q *Queue) Present(surface hal.Surface, imageIndex uint32, wait hal.Semaphore) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.FailSubmit != nil {
		return q.FailSubmit
	}
	return nil
}

// WaitIdle returns immediately.
func (q *Queue) WaitIdle() error { return nil }

// queueSet hands the single shared queue to every kind.
type queueSet struct {
	q *Queue
}

func (s *queueSet) Queue(kind hal.QueueKind) hal.Queue { return s.q }

// timelineAsSemaphore adapts a TimelineSemaphore into the Semaphore slot
// of a SubmitDescriptor, mirroring how Vulkan timeline semaphores ride
// the same submit arrays as binary ones.
type timelineAsSemaphore struct {
	t *TimelineSemaphore
}

// Destroy is a no-op; the wrapped timeline owns the handle.
func (*timelineAsSemaphore) Destroy() {}

// WrapTimeline returns a hal.Semaphore view of a timeline semaphore for
// use in submit wait/signal arrays.
func WrapTimeline(t hal.TimelineSemaphore) hal.Semaphore {
	return &timelineAsSemaphore{t: t.(*TimelineSemaphore)}
}
