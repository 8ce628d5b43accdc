// Copyright 2025 Coalition of Freeware Developers
// SPDX-License-Identifier: MIT

package noop

import (
	"github.com/gogpu/gputypes"

	"github.com/Coalition-of-Freeware-Developers/Scenery-Editor-X-sub000/hal"
)

func init() {
	hal.RegisterBackend(&backend{})
}

type backend struct{}

func (*backend) Variant() gputypes.Backend { return gputypes.BackendEmpty }

func (*backend) CreateInstance(desc *hal.InstanceDescriptor) (hal.Instance, error) {
	return &Instance{}, nil
}

// Instance implements hal.Instance for the noop backend.
type Instance struct{}

// EnumerateAdapters returns a single fake adapter.
func (i *Instance) EnumerateAdapters() []hal.ExposedAdapter {
	a := &Adapter{}
	return []hal.ExposedAdapter{{Adapter: a, Info: a.Info()}}
}

// CreateSurface returns a headless surface.
func (i *Instance) CreateSurface(displayHandle, windowHandle uintptr) (hal.Surface, error) {
	return &Surface{}, nil
}

// Destroy is a no-op.
func (i *Instance) Destroy() {}

// Adapter implements hal.Adapter for the noop backend.
type Adapter struct{}

// Info describes the fake adapter.
func (a *Adapter) Info() gputypes.AdapterInfo {
	return gputypes.AdapterInfo{
		Name:       "noop",
		Vendor:     "Coalition of Freeware Developers",
		Driver:     "noop",
		DeviceType: gputypes.DeviceTypeCPU,
		Backend:    gputypes.BackendEmpty,
	}
}

// Open creates the in-memory device and a shared queue for every family.
func (a *Adapter) Open() (hal.OpenDevice, error) {
	d := NewDevice()
	return hal.OpenDevice{Device: d, Queues: d.queues}, nil
}
