// Copyright 2025 Coalition of Freeware Developers
// SPDX-License-Identifier: MIT

package hal

import (
	"sync"

	"github.com/gogpu/gputypes"
)

var (
	// backendsMu protects the backends map.
	backendsMu sync.RWMutex

	// backends stores registered backend implementations.
	backends = make(map[gputypes.Backend]Backend)
)

// RegisterBackend registers a backend implementation.
// This is typically called from init() functions in backend packages.
// Registering the same backend type again replaces the previous entry.
func RegisterBackend(backend Backend) {
	backendsMu.Lock()
	defer backendsMu.Unlock()
	backends[backend.Variant()] = backend
}

// GetBackend returns a registered backend by type.
// Returns (nil, false) if the backend is not registered.
func GetBackend(variant gputypes.Backend) (Backend, bool) {
	backendsMu.RLock()
	defer backendsMu.RUnlock()
	b, ok := backends[variant]
	return b, ok
}

// DefaultBackend returns the preferred registered backend: Vulkan when
// available, otherwise the noop backend, otherwise an arbitrary
// registered one.
func DefaultBackend() (Backend, bool) {
	backendsMu.RLock()
	defer backendsMu.RUnlock()
	for _, v := range []gputypes.Backend{gputypes.BackendVulkan, gputypes.BackendEmpty} {
		if b, ok := backends[v]; ok {
			return b, true
		}
	}
	for _, b := range backends {
		return b, true
	}
	return nil, false
}

// AvailableBackends returns all registered backend variants.
// The order is non-deterministic.
func AvailableBackends() []gputypes.Backend {
	backendsMu.RLock()
	defer backendsMu.RUnlock()
	result := make([]gputypes.Backend, 0, len(backends))
	for v := range backends {
		result = append(result, v)
	}
	return result
}
