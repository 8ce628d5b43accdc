// Copyright 2025 Coalition of Freeware Developers
// SPDX-License-Identifier: MIT

// Package sedx is the GPU resource and frame-scheduling core of the
// Scenery Editor X renderer.
//
// The package owns every GPU-visible object's lifetime across multiple
// in-flight frames, exposes resources to shaders through a single bindless
// descriptor table indexed by 32-bit handles, serializes CPU-side render
// work onto a dedicated render goroutine, and guarantees that GPU objects
// are destroyed only after the GPU has demonstrably stopped using them.
//
// # Quick start
//
//	import (
//	    sedx "github.com/Coalition-of-Freeware-Developers/Scenery-Editor-X-sub000"
//	    _ "github.com/Coalition-of-Freeware-Developers/Scenery-Editor-X-sub000/hal/vulkan"
//	)
//
//	engine, err := sedx.Init(sedx.Config{})
//	// ...
//	defer engine.Shutdown()
//
//	tex, _ := engine.CreateImage(sedx.ImageDesc{ /* ... */ }, "albedo")
//	rid, _ := engine.ImageRID(tex) // bindless index, usable in shaders
//
// # Frame protocol
//
// Per frame: BeginFrame, record work through the resource facade, EndFrame.
// EndFrame submits the frame's command buffer, signals the render-finished
// semaphore and advances the deferred-destruction ring.
//
// # Threading
//
// The public API may be invoked from any goroutine. Work that must touch
// the GPU in order is enqueued on the render dispatcher; queue submission
// is serialized per queue.
package sedx
