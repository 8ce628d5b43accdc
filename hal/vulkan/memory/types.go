// Copyright 2025 Coalition of Freeware Developers
// SPDX-License-Identifier: MIT

package memory

import (
	"errors"

	"github.com/Coalition-of-Freeware-Developers/Scenery-Editor-X-sub000/hal/vulkan/vk"
)

// Strategy selects the packing policy for one allocation.
type Strategy uint8

const (
	// StrategySpeedOptimized carves from large blocks; fast, looser fit.
	StrategySpeedOptimized Strategy = iota
	// StrategyMemoryOptimized carves from small blocks; tight packing,
	// slower.
	StrategyMemoryOptimized
)

// DefragCandidateThreshold marks allocations whose relocation would pay
// off during defragmentation.
const DefragCandidateThreshold = 16 << 20 // 16 MiB

// UsageFlags specifies intended memory usage, guiding memory-type
// selection.
type UsageFlags uint32

const (
	// UsageDeviceLocal prefers DEVICE_LOCAL memory.
	UsageDeviceLocal UsageFlags = 1 << iota
	// UsageHostCoherent requires HOST_VISIBLE | HOST_COHERENT memory.
	UsageHostCoherent
	// UsageDownload prefers HOST_CACHED for GPU→CPU readback.
	UsageDownload
)

// Request describes one allocation.
type Request struct {
	Size           uint64
	Alignment      uint64 // power of two; 0 or 1 = none
	Usage          UsageFlags
	MemoryTypeBits uint32 // from VkMemoryRequirements
	Strategy       Strategy
}

// Allocation is one carved memory region.
type Allocation struct {
	Memory vk.DeviceMemory
	Offset uint64
	Size   uint64

	// DefragCandidate is set for allocations above the threshold.
	DefragCandidate bool

	memoryTypeIndex uint32
	dedicated       bool
	order           uint8 // buddy order, pooled allocations only
	blockIndex      int   // pool block that owns the region
	mapped          bool
}

// IsDedicated reports whether the allocation owns its VkDeviceMemory.
func (a *Allocation) IsDedicated() bool { return a.dedicated }

// MemoryTypeIndex returns the Vulkan memory type index.
func (a *Allocation) MemoryTypeIndex() uint32 { return a.memoryTypeIndex }

// DeviceProperties mirrors vkGetPhysicalDeviceMemoryProperties in plain
// Go values.
type DeviceProperties struct {
	MemoryTypes []vk.MemoryType
	MemoryHeaps []vk.MemoryHeap
}

// Stats aggregates allocator-wide counters.
type Stats struct {
	TotalAllocated       uint64 // bytes allocated from the driver
	TotalUsed            uint64 // bytes handed out to callers
	PooledAllocations    uint64
	DedicatedAllocations uint64
}

var (
	// ErrNoSuitableMemoryType indicates no memory type satisfies the
	// request.
	ErrNoSuitableMemoryType = errors.New("memory: no suitable memory type")

	// ErrStillMapped indicates a free of a mapped allocation; unmapping
	// is mandatory before destroy.
	ErrStillMapped = errors.New("memory: allocation still mapped")

	// ErrNotMapped indicates an unmap of an unmapped allocation.
	ErrNotMapped = errors.New("memory: allocation not mapped")
)

// typeSelector picks memory types by property flags.
type typeSelector struct {
	types []vk.MemoryType
}

// pick returns the first memory type allowed by typeBits that carries
// all required flags and, among those, the one with the most preferred
// flags.
func (s *typeSelector) pick(typeBits uint32, required, preferred vk.MemoryPropertyFlags) (uint32, bool) {
	best := -1
	bestScore := -1
	for i, t := range s.types {
		if typeBits&(1<<uint(i)) == 0 {
			continue
		}
		if t.PropertyFlags&required != required {
			continue
		}
		score := popcount32(uint32(t.PropertyFlags & preferred))
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	if best < 0 {
		return 0, false
	}
	return uint32(best), true
}

func popcount32(v uint32) int {
	n := 0
	for v != 0 {
		v &= v - 1
		n++
	}
	return n
}

// requiredFlags maps usage to required/preferred Vulkan property flags.
func requiredFlags(usage UsageFlags) (required, preferred vk.MemoryPropertyFlags) {
	if usage&UsageHostCoherent != 0 {
		required = vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCoherentBit
		if usage&UsageDownload != 0 {
			preferred = vk.MemoryPropertyHostCachedBit
		}
		return required, preferred
	}
	return 0, vk.MemoryPropertyDeviceLocalBit
}
