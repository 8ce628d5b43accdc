// Copyright 2025 Coalition of Freeware Developers
// SPDX-License-Identifier: MIT

package sedx

import (
	"errors"
	"testing"
)

func TestArenaInsertGet(t *testing.T) {
	var a arena[string]

	h := a.Insert("first")
	if h.IsNil() {
		t.Fatal("Insert returned nil handle")
	}
	v, err := a.Get(h)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if *v != "first" {
		t.Errorf("Get = %q, want %q", *v, "first")
	}
}

func TestArenaStaleAfterRemove(t *testing.T) {
	var a arena[int]

	h := a.Insert(42)
	if _, err := a.Get(h); err != nil {
		t.Fatalf("Get before remove: %v", err)
	}

	removed, err := a.Remove(h)
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if removed != 42 {
		t.Errorf("Remove = %d, want 42", removed)
	}

	// Stale forever: both reads and a second remove fail.
	if _, err := a.Get(h); !errors.Is(err, ErrStaleHandle) {
		t.Errorf("Get after remove = %v, want ErrStaleHandle", err)
	}
	if _, err := a.Remove(h); !errors.Is(err, ErrStaleHandle) {
		t.Errorf("double Remove = %v, want ErrStaleHandle", err)
	}
}

func TestArenaSlotReuseBumpsGeneration(t *testing.T) {
	var a arena[int]

	h1 := a.Insert(1)
	index := h1.Index()
	if _, err := a.Remove(h1); err != nil {
		t.Fatal(err)
	}

	h2 := a.Insert(2)
	if h2.Index() != index {
		t.Fatalf("slot not reused: index %d, want %d", h2.Index(), index)
	}
	if h2.Generation() == h1.Generation() {
		t.Error("generation not bumped on reuse")
	}

	// The old handle stays stale even though the slot is live again.
	if _, err := a.Get(h1); !errors.Is(err, ErrStaleHandle) {
		t.Errorf("old handle Get = %v, want ErrStaleHandle", err)
	}
	v, err := a.Get(h2)
	if err != nil || *v != 2 {
		t.Errorf("new handle Get = %v, %v; want 2, nil", v, err)
	}
}

func TestArenaNilHandle(t *testing.T) {
	var a arena[int]
	if _, err := a.Get(Handle[int]{}); !errors.Is(err, ErrStaleHandle) {
		t.Errorf("Get(nil handle) = %v, want ErrStaleHandle", err)
	}
}

func TestArenaLenAndDrain(t *testing.T) {
	var a arena[int]
	for i := 0; i < 5; i++ {
		a.Insert(i)
	}
	if a.Len() != 5 {
		t.Fatalf("Len = %d, want 5", a.Len())
	}

	var drained []int
	a.Drain(func(v int) { drained = append(drained, v) })
	if len(drained) != 5 {
		t.Errorf("Drain visited %d records, want 5", len(drained))
	}
	if a.Len() != 0 {
		t.Errorf("Len after Drain = %d, want 0", a.Len())
	}
}

func TestHandlePacking(t *testing.T) {
	tests := []struct {
		index uint32
		gen   uint32
	}{
		{0, 1},
		{1, 1},
		{handleIndexMask, handleGenMask},
		{12345, 678},
	}
	for _, tt := range tests {
		h := makeHandle[int](tt.index, tt.gen)
		if h.Index() != tt.index {
			t.Errorf("Index() = %d, want %d", h.Index(), tt.index)
		}
		if h.Generation() != tt.gen {
			t.Errorf("Generation() = %d, want %d", h.Generation(), tt.gen)
		}
	}
}
