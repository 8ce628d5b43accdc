// Copyright 2025 Coalition of Freeware Developers
// SPDX-License-Identifier: MIT

// Package noop provides an in-memory HAL backend.
//
// Buffers carry real byte backing, copies move real bytes at record time,
// fences signal on submit, and the descriptor table records every write.
// The package drives the engine test suite and headless tooling; it is not
// a software rasterizer.
//
// Import for side effects to register the backend:
//
//	import _ "github.com/Coalition-of-Freeware-Developers/Scenery-Editor-X-sub000/hal/noop"
package noop
