// Copyright 2025 Coalition of Freeware Developers
// SPDX-License-Identifier: MIT

// Package hal defines the hardware abstraction consumed by the render core.
//
// The core (the root sedx package) owns all policy: handle lifetimes, the
// bindless index space, frame scheduling, deferred destruction. Backends own
// only mechanism: creating and destroying native objects, recording command
// buffers, submitting to queues, waiting on sync primitives.
//
// Two backends ship with the engine:
//
//   - hal/vulkan: the production backend, loading Vulkan dynamically.
//   - hal/noop: an in-memory backend used by the test suite and for
//     headless tooling.
//
// Backends register themselves from init() via [RegisterBackend]; importing
// a backend package for side effects is enough to make it selectable:
//
//	import _ "github.com/Coalition-of-Freeware-Developers/Scenery-Editor-X-sub000/hal/vulkan"
package hal
