// Copyright 2025 Coalition of Freeware Developers
// SPDX-License-Identifier: MIT

package sedx

import (
	"sync"
	"testing"
)

func TestDispatcherInlineBeforeInit(t *testing.T) {
	d := NewDispatcher()
	ran := false
	d.Enqueue(func() { ran = true })
	if !ran {
		t.Error("job did not run inline before Init")
	}
	if d.IsInitialized() {
		t.Error("IsInitialized before Init")
	}
}

func TestDispatcherFIFOSingleThread(t *testing.T) {
	d := NewDispatcher()
	d.Init(3)
	defer d.Shutdown()

	var mu sync.Mutex
	var order []int
	for i := 0; i < 100; i++ {
		i := i
		d.Enqueue(func() {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
		})
	}
	d.Flush()

	if len(order) != 100 {
		t.Fatalf("executed %d jobs, want 100", len(order))
	}
	for i, v := range order {
		if v != i {
			t.Fatalf("order[%d] = %d, want %d", i, v, i)
		}
	}
}

// Two goroutines each enqueue 1000 jobs appending their (thread,
// sequence) tuple to a shared log: per-thread tuples must appear in
// increasing sequence order, none lost.
func TestDispatcherFIFOUnderContention(t *testing.T) {
	d := NewDispatcher()
	d.Init(3)
	defer d.Shutdown()

	const perThread = 1000
	type entry struct{ thread, seq int }

	var logMu sync.Mutex
	var log []entry

	var wg sync.WaitGroup
	for thread := 0; thread < 2; thread++ {
		wg.Add(1)
		go func(thread int) {
			defer wg.Done()
			for seq := 0; seq < perThread; seq++ {
				e := entry{thread: thread, seq: seq}
				d.Enqueue(func() {
					logMu.Lock()
					log = append(log, e)
					logMu.Unlock()
				})
			}
		}(thread)
	}
	wg.Wait()
	d.Flush()

	if len(log) != 2*perThread {
		t.Fatalf("log length = %d, want %d", len(log), 2*perThread)
	}
	next := [2]int{}
	for _, e := range log {
		if e.seq != next[e.thread] {
			t.Fatalf("thread %d: got seq %d, want %d", e.thread, e.seq, next[e.thread])
		}
		next[e.thread]++
	}
}

func TestDispatcherPanicDoesNotKillWorker(t *testing.T) {
	d := NewDispatcher()
	d.Init(3)
	defer d.Shutdown()

	ran := make(chan struct{})
	d.Enqueue(func() { panic("boom") })
	d.Enqueue(func() { close(ran) })
	d.Flush()

	select {
	case <-ran:
	default:
		t.Fatal("job after panicking job did not run")
	}
}

func TestDispatcherDeferredExactRingDelay(t *testing.T) {
	d := NewDispatcher()
	d.Init(3)
	defer d.Shutdown()

	ran := false
	d.EnqueueResourceFree(func() { ran = true })

	// Exactly frames_in_flight advances before the callable runs.
	d.AdvanceFrame(0)
	if ran {
		t.Fatal("destroy ran after 1 advance")
	}
	d.AdvanceFrame(1)
	if ran {
		t.Fatal("destroy ran after 2 advances")
	}
	d.AdvanceFrame(2)
	if !ran {
		t.Fatal("destroy did not run after 3 advances")
	}
}

func TestDispatcherAdvanceEmptyBucketIsNoOp(t *testing.T) {
	d := NewDispatcher()
	d.Init(2)
	defer d.Shutdown()

	// Never blocks, never runs anything.
	for i := 0; i < 10; i++ {
		d.AdvanceFrame(uint32(i))
	}
	if d.PendingFrees() != 0 {
		t.Errorf("PendingFrees = %d, want 0", d.PendingFrees())
	}
}

func TestDispatcherShutdownDrainsAllBuckets(t *testing.T) {
	d := NewDispatcher()
	d.Init(3)

	count := 0
	for i := 0; i < 7; i++ {
		d.EnqueueResourceFree(func() { count++ })
		d.AdvanceFrame(uint32(i))
	}
	pending := d.PendingFrees()
	if pending == 0 {
		t.Fatal("expected pending frees before shutdown")
	}

	d.Shutdown()
	if count != 7 {
		t.Errorf("executed %d frees, want 7", count)
	}
	if d.PendingFrees() != 0 {
		t.Errorf("PendingFrees after Shutdown = %d, want 0", d.PendingFrees())
	}
}

func TestDispatcherResourceFreeInlineBeforeInit(t *testing.T) {
	d := NewDispatcher()
	ran := false
	d.EnqueueResourceFree(func() { ran = true })
	if !ran {
		t.Error("resource free did not run inline before Init")
	}
}

func TestDispatcherFlushDoesNotDrainBuckets(t *testing.T) {
	d := NewDispatcher()
	d.Init(3)
	defer d.Shutdown()

	ran := false
	d.EnqueueResourceFree(func() { ran = true })
	d.Flush()
	if ran {
		t.Error("Flush executed a deferred free")
	}
	if d.PendingFrees() != 1 {
		t.Errorf("PendingFrees = %d, want 1", d.PendingFrees())
	}
}
