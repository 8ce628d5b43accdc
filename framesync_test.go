// Copyright 2025 Coalition of Freeware Developers
// SPDX-License-Identifier: MIT

package sedx

import (
	"errors"
	"testing"

	"github.com/Coalition-of-Freeware-Developers/Scenery-Editor-X-sub000/hal"
)

func TestFrameSyncFenceOperations(t *testing.T) {
	e := newTestEngine(t, Config{})
	defer e.Shutdown()

	fs, err := NewFrameSync(e.Device(), SyncFence, "test fence")
	if err != nil {
		t.Fatal(err)
	}
	defer fs.Destroy()

	// Created unsignaled.
	signaled, err := fs.IsSignaled()
	if err != nil {
		t.Fatal(err)
	}
	if signaled {
		t.Error("fence created signaled")
	}

	// Waiting with timeout 0 returns immediately with Timeout.
	err = fs.Wait(0)
	var timeout *TimeoutError
	if !errors.As(err, &timeout) {
		t.Errorf("Wait(0) on unsignaled fence = %v, want TimeoutError", err)
	}

	// Timeline-only operations are rejected.
	if err := fs.Signal(1); !errors.Is(err, ErrOperationNotSupported) {
		t.Errorf("Signal on fence = %v, want ErrOperationNotSupported", err)
	}
	if _, err := fs.NextSignalValue(); !errors.Is(err, ErrOperationNotSupported) {
		t.Errorf("NextSignalValue on fence = %v, want ErrOperationNotSupported", err)
	}

	if err := fs.Reset(); err != nil {
		t.Errorf("Reset on fence: %v", err)
	}
}

func TestFrameSyncTimelineOperations(t *testing.T) {
	e := newTestEngine(t, Config{})
	defer e.Shutdown()

	fs, err := NewFrameSync(e.Device(), SyncTimeline, "test timeline")
	if err != nil {
		t.Fatal(err)
	}
	defer fs.Destroy()

	v1, err := fs.NextSignalValue()
	if err != nil {
		t.Fatal(err)
	}
	v2, err := fs.NextSignalValue()
	if err != nil {
		t.Fatal(err)
	}
	if v1 != 1 || v2 != 2 {
		t.Errorf("NextSignalValue = %d, %d; want 1, 2", v1, v2)
	}

	if err := fs.Signal(2); err != nil {
		t.Fatalf("Signal(2): %v", err)
	}
	current, err := fs.CurrentValue()
	if err != nil {
		t.Fatal(err)
	}
	if current != 2 {
		t.Errorf("CurrentValue = %d, want 2", current)
	}

	signaled, err := fs.IsSignaled()
	if err != nil {
		t.Fatal(err)
	}
	if !signaled {
		t.Error("timeline not signaled at its target value")
	}

	// Fence-only operation.
	if err := fs.Reset(); !errors.Is(err, ErrOperationNotSupported) {
		t.Errorf("Reset on timeline = %v, want ErrOperationNotSupported", err)
	}
}

func TestFrameSyncTimelineRegression(t *testing.T) {
	e := newTestEngine(t, Config{})
	defer e.Shutdown()

	fs, err := NewFrameSync(e.Device(), SyncTimeline, "regress")
	if err != nil {
		t.Fatal(err)
	}
	defer fs.Destroy()

	if err := fs.Signal(10); err != nil {
		t.Fatal(err)
	}

	var regression *TimelineRegressionError
	if err := fs.Signal(5); !errors.As(err, &regression) {
		t.Fatalf("Signal(5) after 10 = %v, want TimelineRegressionError", err)
	}
	if regression.Current != 10 || regression.Requested != 5 {
		t.Errorf("regression = %+v, want current 10 requested 5", regression)
	}
	// Equal value is a regression too: the counter is strictly monotonic.
	if err := fs.Signal(10); !errors.As(err, &regression) {
		t.Errorf("Signal(current) = %v, want TimelineRegressionError", err)
	}
}

func TestFrameSyncTimelineWaitForever(t *testing.T) {
	e := newTestEngine(t, Config{})
	defer e.Shutdown()

	fs, err := NewFrameSync(e.Device(), SyncTimeline, "wait")
	if err != nil {
		t.Fatal(err)
	}
	defer fs.Destroy()

	target, err := fs.NextSignalValue()
	if err != nil {
		t.Fatal(err)
	}

	done := make(chan error, 1)
	go func() { done <- fs.Wait(^uint64(0)) }()

	if err := fs.Signal(target); err != nil {
		t.Fatal(err)
	}
	if err := <-done; err != nil {
		t.Errorf("Wait(forever) = %v after signal", err)
	}
}

func TestFenceWaitZeroOnSignaled(t *testing.T) {
	e := newTestEngine(t, Config{})
	defer e.Shutdown()

	fence, err := e.Device().CreateFence()
	if err != nil {
		t.Fatal(err)
	}
	defer fence.Destroy()

	// Signal through a submit, then a zero-timeout wait returns
	// immediately with success.
	q := e.Queue(hal.QueueGraphics)
	if err := q.Submit(&hal.SubmitDescriptor{Fence: fence}); err != nil {
		t.Fatal(err)
	}
	if err := fence.Wait(0); err != nil {
		t.Errorf("Wait(0) on signaled fence = %v, want nil", err)
	}
}
