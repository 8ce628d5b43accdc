// Copyright 2025 Coalition of Freeware Developers
// SPDX-License-Identifier: MIT

package hal

import (
	"testing"

	"github.com/gogpu/gputypes"
)

type stubBackend struct {
	variant gputypes.Backend
}

func (b *stubBackend) Variant() gputypes.Backend { return b.variant }
func (b *stubBackend) CreateInstance(*InstanceDescriptor) (Instance, error) {
	return nil, nil
}

func TestRegisterAndGetBackend(t *testing.T) {
	variant := gputypes.Backend(210) // unique test variant
	RegisterBackend(&stubBackend{variant: variant})

	b, ok := GetBackend(variant)
	if !ok {
		t.Fatal("GetBackend: registered backend not found")
	}
	if b.Variant() != variant {
		t.Errorf("Variant() = %v, want %v", b.Variant(), variant)
	}
}

func TestGetBackendMissing(t *testing.T) {
	if _, ok := GetBackend(gputypes.Backend(99)); ok {
		t.Error("GetBackend returned ok for unregistered variant")
	}
}

func TestRegisterBackendReplaces(t *testing.T) {
	variant := gputypes.Backend(211)
	first := &stubBackend{variant: variant}
	second := &stubBackend{variant: variant}
	RegisterBackend(first)
	RegisterBackend(second)

	b, _ := GetBackend(variant)
	if b != Backend(second) {
		t.Error("RegisterBackend did not replace previous registration")
	}
}

func TestQueueKindString(t *testing.T) {
	tests := []struct {
		kind QueueKind
		want string
	}{
		{QueueGraphics, "graphics"},
		{QueueCompute, "compute"},
		{QueueTransfer, "transfer"},
		{QueuePresent, "present"},
		{QueueKind(9), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("QueueKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
