// Copyright 2025 Coalition of Freeware Developers
// SPDX-License-Identifier: MIT

package sedx

import (
	"sync"

	"github.com/Coalition-of-Freeware-Developers/Scenery-Editor-X-sub000/hal"
)

// destructionRing is the frame-delayed resource free ring. A destroy
// enqueued while the ring points at bucket c executes on the
// frames-in-flight'th subsequent AdvanceFrame: enough frames for the GPU
// to have advanced through one full ring and stopped using the resource.
//
// The ring has its own mutex, disjoint from the bindless table's, so
// destroys do not contend with descriptor registrations.
type destructionRing struct {
	mu          sync.Mutex
	buckets     [][]func()
	current     uint32
	initialized bool
}

// init sizes the ring. Before init, destroys run inline on the caller;
// that keeps early bootstrap and tests free of frame bookkeeping.
func (r *destructionRing) init(framesInFlight uint32) {
	r.mu.Lock()
	r.buckets = make([][]func(), framesInFlight)
	r.current = 0
	r.initialized = true
	r.mu.Unlock()
}

// Enqueue schedules fn to run once the GPU has retired a full ring of
// frames. Inserting into the current bucket delays execution by exactly
// len(buckets) advances, since AdvanceFrame steps first and drains after.
func (r *destructionRing) Enqueue(fn func()) {
	r.mu.Lock()
	if !r.initialized {
		r.mu.Unlock()
		fn()
		return
	}
	r.buckets[r.current] = append(r.buckets[r.current], fn)
	r.mu.Unlock()
}

// AdvanceFrame steps the ring and executes the now-safe bucket. The
// bucket's list is swapped out under the lock and the callables run
// outside it, so a destroy callback may itself enqueue further destroys.
// Advancing onto an empty bucket is a no-op and never waits.
func (r *destructionRing) AdvanceFrame() {
	var toExecute []func()
	r.mu.Lock()
	if !r.initialized {
		r.mu.Unlock()
		return
	}
	r.current = (r.current + 1) % uint32(len(r.buckets))
	toExecute, r.buckets[r.current] = r.buckets[r.current], nil
	r.mu.Unlock()

	for _, fn := range toExecute {
		fn()
	}
}

// DrainAll synchronously executes every remaining bucket in ring order
// starting after the current bucket. Called on shutdown to guarantee
// zero leaks.
func (r *destructionRing) DrainAll() {
	r.mu.Lock()
	if !r.initialized {
		r.mu.Unlock()
		return
	}
	n := uint32(len(r.buckets))
	var toExecute []func()
	for i := uint32(1); i <= n; i++ {
		b := (r.current + i) % n
		toExecute = append(toExecute, r.buckets[b]...)
		r.buckets[b] = nil
	}
	// After the final drain, late destroys run inline rather than
	// queueing into a ring nobody will advance again.
	r.initialized = false
	r.mu.Unlock()

	if len(toExecute) > 0 {
		hal.Logger().Debug("draining deferred destroys",
			"component", "deferred", "count", len(toExecute))
	}
	for _, fn := range toExecute {
		fn()
	}
}

// Pending counts queued destroy callables across all buckets.
func (r *destructionRing) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := 0
	for _, b := range r.buckets {
		total += len(b)
	}
	return total
}
