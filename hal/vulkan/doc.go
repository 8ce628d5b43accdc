// Copyright 2025 Coalition of Freeware Developers
// SPDX-License-Identifier: MIT

// Package vulkan implements the production HAL backend on Vulkan 1.2.
//
// The backend loads Vulkan dynamically through the vk subpackage (no cgo,
// no link-time dependency), rejects adapters lacking the required
// extension set, opens one queue per family actually used and serializes
// submissions with a per-queue mutex held across vkQueueSubmit.
//
// Import for side effects to register the backend:
//
//	import _ "github.com/Coalition-of-Freeware-Developers/Scenery-Editor-X-sub000/hal/vulkan"
package vulkan
