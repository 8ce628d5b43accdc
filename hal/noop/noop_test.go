// Copyright 2025 Coalition of Freeware Developers
// SPDX-License-Identifier: MIT

package noop

import (
	"errors"
	"testing"

	"github.com/Coalition-of-Freeware-Developers/Scenery-Editor-X-sub000/hal"
)

func TestSubmitSignalsFence(t *testing.T) {
	d := NewDevice()
	fence, err := d.CreateFence()
	if err != nil {
		t.Fatal(err)
	}
	signaled, _ := fence.IsSignaled()
	if signaled {
		t.Fatal("fence created signaled")
	}

	if err := d.Queues().Submit(&hal.SubmitDescriptor{Fence: fence}); err != nil {
		t.Fatal(err)
	}
	signaled, _ = fence.IsSignaled()
	if !signaled {
		t.Error("submit did not signal the fence")
	}
}

func TestInjectedFailure(t *testing.T) {
	d := NewDevice()
	d.Queues().InjectFailure(hal.ErrDeviceLost)
	err := d.Queues().Submit(&hal.SubmitDescriptor{})
	if !errors.Is(err, hal.ErrDeviceLost) {
		t.Errorf("Submit = %v, want ErrDeviceLost", err)
	}
	d.Queues().InjectFailure(nil)
	if err := d.Queues().Submit(&hal.SubmitDescriptor{}); err != nil {
		t.Errorf("Submit after clear = %v", err)
	}
}

func TestCommandBufferCopiesBytes(t *testing.T) {
	d := NewDevice()
	src, _ := d.CreateBuffer(&hal.BufferDescriptor{Size: 16, Memory: hal.MemoryCPUCoherent})
	dst, _ := d.CreateBuffer(&hal.BufferDescriptor{Size: 16})

	data, err := d.Map(src)
	if err != nil {
		t.Fatal(err)
	}
	copy(data, []byte{9, 8, 7, 6})
	if err := d.Unmap(src); err != nil {
		t.Fatal(err)
	}

	pool, _ := d.CreateCommandPool(hal.QueueGraphics)
	cb, _ := pool.Allocate()
	if err := cb.Begin(true); err != nil {
		t.Fatal(err)
	}
	cb.CopyBuffer(src, dst, 0, 4, 4)
	if err := cb.End(); err != nil {
		t.Fatal(err)
	}

	got := dst.(*Buffer).Data
	if got[4] != 9 || got[7] != 6 {
		t.Errorf("copy did not move bytes: %v", got[:8])
	}
}

func TestTimelineSemaphoreMonotonic(t *testing.T) {
	d := NewDevice()
	ts, err := d.CreateTimelineSemaphore(5)
	if err != nil {
		t.Fatal(err)
	}
	if err := ts.Signal(4); err == nil {
		t.Error("regression accepted")
	}
	if err := ts.Signal(6); err != nil {
		t.Errorf("Signal(6) = %v", err)
	}
	v, _ := ts.CounterValue()
	if v != 6 {
		t.Errorf("CounterValue = %d, want 6", v)
	}
}

func TestFenceWaitTimeout(t *testing.T) {
	d := NewDevice()
	fence, _ := d.CreateFence()
	if err := fence.Wait(0); !errors.Is(err, hal.ErrTimeout) {
		t.Errorf("Wait(0) = %v, want ErrTimeout", err)
	}
}

func TestMapRequiresHostMemory(t *testing.T) {
	d := NewDevice()
	b, _ := d.CreateBuffer(&hal.BufferDescriptor{Size: 8, Memory: hal.MemoryGPU})
	if _, err := d.Map(b); !errors.Is(err, hal.ErrMappingFailed) {
		t.Errorf("Map(GPU) = %v, want ErrMappingFailed", err)
	}
	if err := d.Unmap(b); !errors.Is(err, hal.ErrNotMapped) {
		t.Errorf("Unmap unmapped = %v, want ErrNotMapped", err)
	}
}
