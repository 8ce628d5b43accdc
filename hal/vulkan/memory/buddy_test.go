// Copyright 2025 Coalition of Freeware Developers
// SPDX-License-Identifier: MIT

package memory

import (
	"testing"

	"github.com/Coalition-of-Freeware-Developers/Scenery-Editor-X-sub000/hal/vulkan/vk"
)

func TestBuddyOrderFor(t *testing.T) {
	b := newBuddyAllocator(1024, 64) // orders 0..4

	tests := []struct {
		size      uint64
		alignment uint64
		order     uint8
		ok        bool
	}{
		{1, 0, 0, true},
		{64, 0, 0, true},
		{65, 0, 1, true},
		{128, 0, 1, true},
		{129, 0, 2, true},
		{1024, 0, 4, true},
		{1025, 0, 0, false},
		{0, 0, 0, false},
		{64, 256, 2, true}, // alignment dominates
	}
	for _, tt := range tests {
		order, ok := b.orderFor(tt.size, tt.alignment)
		if ok != tt.ok || (ok && order != tt.order) {
			t.Errorf("orderFor(%d, %d) = %d, %v; want %d, %v",
				tt.size, tt.alignment, order, ok, tt.order, tt.ok)
		}
	}
}

func TestBuddyAllocFree(t *testing.T) {
	b := newBuddyAllocator(1024, 64)

	offset, order, ok := b.alloc(64, 0)
	if !ok {
		t.Fatal("alloc failed on empty block")
	}
	if order != 0 {
		t.Errorf("order = %d, want 0", order)
	}
	if b.used != 64 {
		t.Errorf("used = %d, want 64", b.used)
	}

	if !b.free(offset) {
		t.Fatal("free failed")
	}
	if b.used != 0 {
		t.Errorf("used after free = %d, want 0", b.used)
	}
	if !b.empty() {
		t.Error("block not empty after free")
	}
}

func TestBuddyDoubleFree(t *testing.T) {
	b := newBuddyAllocator(1024, 64)
	offset, _, _ := b.alloc(64, 0)
	if !b.free(offset) {
		t.Fatal("first free failed")
	}
	if b.free(offset) {
		t.Error("double free succeeded")
	}
}

func TestBuddyExhaustion(t *testing.T) {
	b := newBuddyAllocator(256, 64) // 4 regions of order 0

	var offsets []uint64
	for i := 0; i < 4; i++ {
		offset, _, ok := b.alloc(64, 0)
		if !ok {
			t.Fatalf("alloc %d failed", i)
		}
		offsets = append(offsets, offset)
	}
	if _, _, ok := b.alloc(64, 0); ok {
		t.Error("alloc succeeded on full block")
	}

	// Distinct offsets.
	seen := map[uint64]bool{}
	for _, o := range offsets {
		if seen[o] {
			t.Fatalf("offset %d handed out twice", o)
		}
		seen[o] = true
	}
}

func TestBuddyCoalescing(t *testing.T) {
	b := newBuddyAllocator(256, 64)

	var offsets []uint64
	for i := 0; i < 4; i++ {
		o, _, _ := b.alloc(64, 0)
		offsets = append(offsets, o)
	}
	for _, o := range offsets {
		b.free(o)
	}

	// Fully coalesced: a whole-block allocation fits again.
	if _, order, ok := b.alloc(256, 0); !ok || order != b.maxOrder {
		t.Errorf("whole-block alloc after coalescing = order %d, %v", order, ok)
	}
}

func TestBuddySplitProducesAlignedOffsets(t *testing.T) {
	b := newBuddyAllocator(1024, 64)

	for i := 0; i < 8; i++ {
		offset, _, ok := b.alloc(128, 128)
		if !ok {
			break
		}
		if offset%128 != 0 {
			t.Errorf("offset %d not 128-aligned", offset)
		}
	}
}

func TestRequiredFlags(t *testing.T) {
	req, pref := requiredFlags(UsageDeviceLocal)
	if req != 0 || pref == 0 {
		t.Error("device-local should prefer DEVICE_LOCAL with no hard requirement")
	}

	req, _ = requiredFlags(UsageHostCoherent)
	if req == 0 {
		t.Error("host-coherent must require HOST_VISIBLE|HOST_COHERENT")
	}
}

func TestTypeSelectorPicksPreferred(t *testing.T) {
	s := typeSelector{types: []vk.MemoryType{
		{PropertyFlags: vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCoherentBit, HeapIndex: 0},
		{PropertyFlags: vk.MemoryPropertyDeviceLocalBit, HeapIndex: 1},
	}}

	// Device-local preference lands on type 1.
	index, ok := s.pick(0b11, 0, vk.MemoryPropertyDeviceLocalBit)
	if !ok || index != 1 {
		t.Errorf("pick(device-local) = %d, %v; want 1, true", index, ok)
	}

	// Host-coherent requirement lands on type 0.
	index, ok = s.pick(0b11,
		vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit, 0)
	if !ok || index != 0 {
		t.Errorf("pick(host-coherent) = %d, %v; want 0, true", index, ok)
	}

	// Type bits exclude everything.
	if _, ok := s.pick(0, 0, 0); ok {
		t.Error("pick with empty type bits succeeded")
	}
}
