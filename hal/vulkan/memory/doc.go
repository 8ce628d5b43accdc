// Copyright 2025 Coalition of Freeware Developers
// SPDX-License-Identifier: MIT

// Package memory implements the GPU memory suballocator behind the
// Vulkan backend.
//
// Device memory is carved out of large VkDeviceMemory blocks by a buddy
// allocator, one pool per Vulkan memory type. Allocations above the
// dedicated threshold get their own VkDeviceMemory. Two packing
// strategies are selectable per call: memory-optimized (small blocks,
// tight fit) and speed-optimized (large blocks, fast carving).
//
// Allocations above 16 MiB are flagged as defragmentation candidates.
// Mapping is explicit and unmapping is mandatory before free; freeing
// while the GPU still operates on an allocation is prevented by the
// engine's deferred-destruction ring, not here.
package memory
