// Copyright 2025 Coalition of Freeware Developers
// SPDX-License-Identifier: MIT

package sedx

import (
	"sync"

	"github.com/Coalition-of-Freeware-Developers/Scenery-Editor-X-sub000/hal"
)

// Job is the function signature executed by the dispatcher worker.
type Job func()

// Dispatcher hosts a single background goroutine that executes CPU-side
// render preparation work enqueued through Enqueue, plus the
// frame-delayed resource free ring used to destroy GPU resources only
// after the GPU has finished with them.
//
// Usage pattern:
//
//  1. Init during renderer initialization, before scheduling async work
//  2. Enqueue background jobs
//  3. Schedule GPU object destruction with EnqueueResourceFree
//  4. AdvanceFrame once per rendered frame
//  5. Flush before major state transitions (e.g. swapchain rebuild)
//  6. Shutdown during teardown; remaining deferred frees execute there
//
// If Init has not been called, submitted jobs execute immediately on the
// calling goroutine, which keeps early bootstrap and tests simple.
type Dispatcher struct {
	mu       sync.Mutex
	cond     *sync.Cond
	jobs     []Job
	running  bool // worker is executing a job
	quitting bool
	started  bool
	done     chan struct{}

	ring destructionRing
}

// NewDispatcher returns an uninitialized dispatcher: jobs run inline and
// resource frees execute immediately until Init.
func NewDispatcher() *Dispatcher {
	d := &Dispatcher{}
	d.cond = sync.NewCond(&d.mu)
	return d
}

// Init sizes the free ring and starts the worker goroutine. Idempotent.
func (d *Dispatcher) Init(framesInFlight uint32) {
	d.mu.Lock()
	if d.started {
		d.mu.Unlock()
		return
	}
	if framesInFlight == 0 {
		framesInFlight = 3
	}
	d.started = true
	d.quitting = false
	d.done = make(chan struct{})
	d.mu.Unlock()

	d.ring.init(framesInFlight)

	hal.Logger().Info("render dispatcher started",
		"component", "dispatcher", "frames_in_flight", framesInFlight)
	go d.workerLoop()
}

// IsInitialized reports whether Init has been called and Shutdown has not.
func (d *Dispatcher) IsInitialized() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.started
}

// Enqueue submits a job. Jobs execute FIFO on the worker, exactly once,
// in submission order. Before Init the job runs inline on the caller.
// Long blocking jobs starve subsequent ones; keep tasks short.
func (d *Dispatcher) Enqueue(job Job) {
	d.mu.Lock()
	if !d.started || d.quitting {
		d.mu.Unlock()
		runJob(job)
		return
	}
	d.jobs = append(d.jobs, job)
	d.cond.Broadcast()
	d.mu.Unlock()
}

// EnqueueResourceFree schedules a destroy to run only after a safe GPU
// frame boundary. Use this for native object destroys, descriptor index
// recycling and allocator frees.
func (d *Dispatcher) EnqueueResourceFree(job Job) {
	d.ring.Enqueue(job)
}

// AdvanceFrame moves the resource free ring and executes the now-safe
// bucket. Call exactly once per rendered frame from the frame loop.
// The frameIndex is accepted for diagnostics only.
func (d *Dispatcher) AdvanceFrame(frameIndex uint32) {
	_ = frameIndex
	d.ring.AdvanceFrame()
}

// Flush blocks the caller until the job FIFO is empty and the worker is
// idle. It does not execute or wait on deferred resource free buckets;
// those are processed by AdvanceFrame or Shutdown.
func (d *Dispatcher) Flush() {
	d.mu.Lock()
	for d.started && (len(d.jobs) > 0 || d.running) {
		d.cond.Wait()
	}
	d.mu.Unlock()
}

// PendingFrees counts deferred destroy callables not yet executed.
func (d *Dispatcher) PendingFrees() int {
	return d.ring.Pending()
}

// Shutdown gracefully stops the worker: outstanding jobs complete, the
// worker joins, then every remaining deferred bucket drains synchronously
// in ring order. Idempotent.
func (d *Dispatcher) Shutdown() {
	d.mu.Lock()
	if !d.started {
		d.mu.Unlock()
		d.ring.DrainAll()
		return
	}
	d.quitting = true
	d.cond.Broadcast()
	done := d.done
	d.mu.Unlock()

	<-done

	d.mu.Lock()
	d.started = false
	d.mu.Unlock()

	d.ring.DrainAll()
	hal.Logger().Info("render dispatcher stopped", "component", "dispatcher")
}

// workerLoop blocks on the condition variable until work arrives or
// shutdown is requested. The queue lock is never held while a job runs.
func (d *Dispatcher) workerLoop() {
	for {
		d.mu.Lock()
		for len(d.jobs) == 0 && !d.quitting {
			d.cond.Wait()
		}
		if len(d.jobs) == 0 && d.quitting {
			d.mu.Unlock()
			close(d.done)
			return
		}
		job := d.jobs[0]
		d.jobs = d.jobs[1:]
		d.running = true
		d.mu.Unlock()

		runJob(job)

		d.mu.Lock()
		d.running = false
		if len(d.jobs) == 0 {
			d.cond.Broadcast() // wake Flush
		}
		d.mu.Unlock()
	}
}

// runJob executes a job, containing panics so a single failing job does
// not terminate the worker. The panic payload is logged and subsequent
// jobs continue to drain.
func runJob(job Job) {
	defer func() {
		if r := recover(); r != nil {
			hal.Logger().Error("dispatcher job panicked",
				"component", "dispatcher", "panic", r)
		}
	}()
	job()
}
