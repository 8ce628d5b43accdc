// Copyright 2025 Coalition of Freeware Developers
// SPDX-License-Identifier: MIT

package hal

import "errors"

// Common HAL errors representing GPU states the core reacts to.
var (
	// ErrBackendNotFound indicates the requested backend is not registered.
	ErrBackendNotFound = errors.New("hal: backend not found")

	// ErrNoAdapter indicates no physical device passed the adapter filter.
	ErrNoAdapter = errors.New("hal: no suitable adapter")

	// ErrDeviceOutOfMemory indicates the GPU has exhausted a memory heap.
	ErrDeviceOutOfMemory = errors.New("hal: device out of memory")

	// ErrDeviceLost indicates the GPU device has been lost.
	// This can happen due to a driver crash or reset, hardware
	// disconnection, or a driver timeout. The device cannot be recovered;
	// the engine latches into a lost state that only permits shutdown.
	ErrDeviceLost = errors.New("hal: device lost")

	// ErrSurfaceLost indicates the rendering surface has been destroyed,
	// typically because the window was closed.
	ErrSurfaceLost = errors.New("hal: surface lost")

	// ErrSurfaceOutdated indicates the surface configuration is stale
	// (resize, display mode change). Reconfigure the surface and retry.
	ErrSurfaceOutdated = errors.New("hal: surface outdated")

	// ErrTimeout indicates a wait operation timed out.
	ErrTimeout = errors.New("hal: timeout")

	// ErrMappingFailed indicates host mapping of an allocation failed.
	ErrMappingFailed = errors.New("hal: mapping failed")

	// ErrNotMapped indicates an unmap of memory that is not mapped.
	// This is a bookkeeping contract violation on the caller's side.
	ErrNotMapped = errors.New("hal: memory not mapped")
)

// MissingExtensionError reports a required device extension the selected
// adapter does not expose.
type MissingExtensionError struct {
	Name string
}

func (e *MissingExtensionError) Error() string {
	return "hal: missing required extension " + e.Name
}

// QueueFamilyError reports that no queue family of the requested kind is
// available on the adapter.
type QueueFamilyError struct {
	Kind QueueKind
}

func (e *QueueFamilyError) Error() string {
	return "hal: queue family unavailable: " + e.Kind.String()
}
