// Copyright 2025 Coalition of Freeware Developers
// SPDX-License-Identifier: MIT

package sedx

import (
	"errors"
	"fmt"

	"github.com/Coalition-of-Freeware-Developers/Scenery-Editor-X-sub000/hal"
)

// Sentinel errors re-exported from the HAL so callers match on one value.
var (
	ErrDeviceLost       = hal.ErrDeviceLost
	ErrSurfaceOutOfDate = hal.ErrSurfaceOutdated
	ErrNoAdapter        = hal.ErrNoAdapter
	ErrMappingFailed    = hal.ErrMappingFailed
)

// Core sentinel errors.
var (
	// ErrStaleHandle is returned when a handle's generation no longer
	// matches its arena slot: the resource was destroyed.
	ErrStaleHandle = errors.New("sedx: stale handle")

	// ErrOperationNotSupported is returned by FrameSync operations that
	// do not apply to the wrapped primitive (e.g. Signal on a fence).
	ErrOperationNotSupported = errors.New("sedx: operation not supported for this sync kind")

	// ErrNotInitialized is returned by calls that require a running
	// engine.
	ErrNotInitialized = errors.New("sedx: engine not initialized")
)

// MemoryKind tags OutOfMemoryError with the heap class that overflowed.
type MemoryKind uint8

const (
	MemoryKindDevice MemoryKind = iota
	MemoryKindHost
)

func (k MemoryKind) String() string {
	if k == MemoryKindHost {
		return "host"
	}
	return "device"
}

// OutOfMemoryError reports an exhausted memory heap.
type OutOfMemoryError struct {
	Kind      MemoryKind
	Requested uint64
}

func (e *OutOfMemoryError) Error() string {
	return fmt.Sprintf("sedx: out of %s memory (requested %d bytes)", e.Kind, e.Requested)
}

func (e *OutOfMemoryError) Unwrap() error { return hal.ErrDeviceOutOfMemory }

// BindlessKind names one of the five descriptor arrays.
type BindlessKind uint8

const (
	BindlessSampledImage BindlessKind = iota
	BindlessSampler
	BindlessStorageImage
	BindlessStorageBuffer
	BindlessUniformBuffer
	bindlessKindCount
)

func (k BindlessKind) String() string {
	switch k {
	case BindlessSampledImage:
		return "sampled image"
	case BindlessSampler:
		return "sampler"
	case BindlessStorageImage:
		return "storage image"
	case BindlessStorageBuffer:
		return "storage buffer"
	case BindlessUniformBuffer:
		return "uniform buffer"
	}
	return "unknown"
}

// BindlessCapacityError reports a full descriptor array. There is no
// spillover; the capacity is fixed at init.
type BindlessCapacityError struct {
	Kind BindlessKind
}

func (e *BindlessCapacityError) Error() string {
	return fmt.Sprintf("sedx: bindless capacity exceeded for %s array", e.Kind)
}

// StagingExhaustedError reports an upload that does not fit the current
// frame's staging ring. The caller must split the upload; the facade has
// performed no partial work.
type StagingExhaustedError struct {
	Needed    uint64
	Available uint64
}

func (e *StagingExhaustedError) Error() string {
	return fmt.Sprintf("sedx: staging exhausted (needed %d, available %d)", e.Needed, e.Available)
}

// TimelineRegressionError reports a timeline signal at or below the
// current counter value. This is a programming error on the caller's side.
type TimelineRegressionError struct {
	Current   uint64
	Requested uint64
}

func (e *TimelineRegressionError) Error() string {
	return fmt.Sprintf("sedx: timeline regression (current %d, requested %d)", e.Current, e.Requested)
}

// TimeoutError reports an expired GPU wait.
type TimeoutError struct {
	Ns uint64
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("sedx: timed out after %d ns", e.Ns)
}

func (e *TimeoutError) Unwrap() error { return hal.ErrTimeout }

// ValidationError carries a validation layer message surfaced as an error.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return "sedx: validation failure: " + e.Message
}
