// Copyright 2025 Coalition of Freeware Developers
// SPDX-License-Identifier: MIT

package sedx

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Coalition-of-Freeware-Developers/Scenery-Editor-X-sub000/hal"
)

// transientTimeoutNs is the default wait for a transient submission.
const transientTimeoutNs = 30_000_000_000 // 30 s

// transientRecorder allocates, records, submits and waits short-lived
// command buffers for uploads, layout transitions and mipmap generation.
// Command pools are created on demand per queue kind and recycled through
// a free list, so concurrent transients never share a pool.
type transientRecorder struct {
	mu     sync.Mutex
	device hal.Device
	pools  map[hal.QueueKind][]hal.CommandPool
}

func newTransientRecorder(device hal.Device) *transientRecorder {
	return &transientRecorder{
		device: device,
		pools:  make(map[hal.QueueKind][]hal.CommandPool),
	}
}

// TransientBuffer is an open transient command buffer returned by
// BeginTransient.
type TransientBuffer struct {
	cb   hal.CommandBuffer
	pool hal.CommandPool
	kind hal.QueueKind
}

// Cmd exposes the recording surface.
func (t *TransientBuffer) Cmd() hal.CommandBuffer { return t.cb }

func (r *transientRecorder) acquirePool(kind hal.QueueKind) (hal.CommandPool, error) {
	r.mu.Lock()
	free := r.pools[kind]
	if n := len(free); n > 0 {
		pool := free[n-1]
		r.pools[kind] = free[:n-1]
		r.mu.Unlock()
		return pool, nil
	}
	r.mu.Unlock()
	return r.device.CreateCommandPool(kind)
}

func (r *transientRecorder) releasePool(kind hal.QueueKind, pool hal.CommandPool) {
	r.mu.Lock()
	r.pools[kind] = append(r.pools[kind], pool)
	r.mu.Unlock()
}

// Begin allocates a primary command buffer from an on-demand pool and
// begins recording with one-time-submit usage.
func (r *transientRecorder) Begin(kind hal.QueueKind) (*TransientBuffer, error) {
	pool, err := r.acquirePool(kind)
	if err != nil {
		return nil, fmt.Errorf("sedx: transient pool: %w", err)
	}
	cb, err := pool.Allocate()
	if err != nil {
		r.releasePool(kind, pool)
		return nil, fmt.Errorf("sedx: transient buffer: %w", err)
	}
	if err := cb.Begin(true); err != nil {
		pool.Free(cb)
		r.releasePool(kind, pool)
		return nil, err
	}
	return &TransientBuffer{cb: cb, pool: pool, kind: kind}, nil
}

// Flush ends recording, submits with a fresh single-use fence, waits for
// completion and frees the command buffer. The pool returns to the free
// list for reuse.
func (r *transientRecorder) Flush(t *TransientBuffer, queue hal.Queue, timeoutNs uint64) error {
	defer func() {
		t.pool.Free(t.cb)
		r.releasePool(t.kind, t.pool)
	}()

	if err := t.cb.End(); err != nil {
		return err
	}

	fence, err := r.device.CreateFence()
	if err != nil {
		return fmt.Errorf("sedx: transient fence: %w", err)
	}
	defer fence.Destroy()

	if err := queue.Submit(&hal.SubmitDescriptor{
		CommandBuffers: []hal.CommandBuffer{t.cb},
		Fence:          fence,
	}); err != nil {
		return err
	}
	if err := fence.Wait(timeoutNs); err != nil {
		if errors.Is(err, hal.ErrTimeout) {
			return &TimeoutError{Ns: timeoutNs}
		}
		return err
	}
	return nil
}

func (r *transientRecorder) destroy() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, pools := range r.pools {
		for _, p := range pools {
			p.Destroy()
		}
	}
	r.pools = nil
}

// BeginTransient starts a short-lived command buffer on the given queue
// kind. Pair with FlushTransient.
func (e *Engine) BeginTransient(kind hal.QueueKind) (*TransientBuffer, error) {
	if e.lost.Load() {
		return nil, ErrDeviceLost
	}
	return e.transient.Begin(kind)
}

// FlushTransient submits the transient buffer, waits for the GPU (30 s
// default timeout) and frees it. A device-lost result latches the engine.
func (e *Engine) FlushTransient(t *TransientBuffer) error {
	queue := e.queues.Queue(t.kind)
	err := e.transient.Flush(t, queue, transientTimeoutNs)
	if err != nil && isDeviceLost(err) {
		e.markLost()
	}
	return err
}

// withTransient records fn into a transient buffer and flushes it.
func (e *Engine) withTransient(kind hal.QueueKind, fn func(cb hal.CommandBuffer)) error {
	t, err := e.BeginTransient(kind)
	if err != nil {
		return err
	}
	fn(t.cb)
	return e.FlushTransient(t)
}
