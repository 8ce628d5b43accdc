// Copyright 2025 Coalition of Freeware Developers
// SPDX-License-Identifier: MIT

package memory

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/Coalition-of-Freeware-Developers/Scenery-Editor-X-sub000/hal/vulkan/vk"
)

// Config tunes the allocator.
type Config struct {
	// SpeedBlockSize is the driver block size for speed-optimized
	// allocations. Default 64 MiB; must be a power of two.
	SpeedBlockSize uint64

	// PackedBlockSize is the driver block size for memory-optimized
	// allocations. Default 8 MiB; must be a power of two.
	PackedBlockSize uint64

	// MinAllocationSize is the carving granularity. Default 256 bytes.
	MinAllocationSize uint64

	// DedicatedThreshold is the size at which allocations get their own
	// VkDeviceMemory. Default 32 MiB.
	DedicatedThreshold uint64
}

// DefaultConfig returns the standard tuning.
func DefaultConfig() Config {
	return Config{
		SpeedBlockSize:     64 << 20,
		PackedBlockSize:    8 << 20,
		MinAllocationSize:  256,
		DedicatedThreshold: 32 << 20,
	}
}

func (c *Config) applyDefaults() {
	if c.SpeedBlockSize == 0 {
		c.SpeedBlockSize = 64 << 20
	}
	if c.PackedBlockSize == 0 {
		c.PackedBlockSize = 8 << 20
	}
	if c.MinAllocationSize == 0 {
		c.MinAllocationSize = 256
	}
	if c.DedicatedThreshold == 0 {
		c.DedicatedThreshold = 32 << 20
	}
}

// poolBlock is one VkDeviceMemory carved by a buddy allocator.
type poolBlock struct {
	memory vk.DeviceMemory
	size   uint64
	buddy  *buddyAllocator
}

// pool manages the blocks of one (memory type, strategy) pair.
type pool struct {
	memoryTypeIndex uint32
	blockSize       uint64
	minAlloc        uint64
	blocks          []*poolBlock
}

// Allocator is the device memory suballocator. Thread-safe.
type Allocator struct {
	mu sync.Mutex

	device   vk.Device
	cmds     *vk.Commands
	config   Config
	selector typeSelector

	// pools[typeIndex][strategy]
	pools map[uint32]*[2]*pool

	stats Stats
}

// New creates an allocator over the device's memory properties.
func New(device vk.Device, cmds *vk.Commands, props DeviceProperties, config Config) (*Allocator, error) {
	config.applyDefaults()
	if !isPowerOfTwo(config.SpeedBlockSize) || !isPowerOfTwo(config.PackedBlockSize) {
		return nil, fmt.Errorf("memory: block sizes must be powers of two")
	}
	if !isPowerOfTwo(config.MinAllocationSize) {
		return nil, fmt.Errorf("memory: MinAllocationSize must be a power of two")
	}
	return &Allocator{
		device:   device,
		cmds:     cmds,
		config:   config,
		selector: typeSelector{types: props.MemoryTypes},
		pools:    make(map[uint32]*[2]*pool),
	}, nil
}

func isPowerOfTwo(v uint64) bool { return v != 0 && v&(v-1) == 0 }

// Alloc satisfies one allocation request.
func (a *Allocator) Alloc(req Request) (*Allocation, error) {
	required, preferred := requiredFlags(req.Usage)
	typeIndex, ok := a.selector.pick(req.MemoryTypeBits, required, preferred)
	if !ok {
		return nil, ErrNoSuitableMemoryType
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	blockSize := a.config.SpeedBlockSize
	if req.Strategy == StrategyMemoryOptimized {
		blockSize = a.config.PackedBlockSize
	}

	// Oversized requests bypass the pools.
	if req.Size >= a.config.DedicatedThreshold || req.Size > blockSize {
		return a.allocDedicated(req, typeIndex)
	}

	p := a.poolFor(typeIndex, req.Strategy, blockSize)
	for i, block := range p.blocks {
		if offset, order, ok := block.buddy.alloc(req.Size, req.Alignment); ok {
			a.stats.TotalUsed += block.buddy.regionSize(order)
			a.stats.PooledAllocations++
			return &Allocation{
				Memory:          block.memory,
				Offset:          offset,
				Size:            req.Size,
				DefragCandidate: req.Size > DefragCandidateThreshold,
				memoryTypeIndex: typeIndex,
				order:           order,
				blockIndex:      i,
			}, nil
		}
	}

	// No space in existing blocks: grow the pool.
	block, err := a.newBlock(typeIndex, blockSize)
	if err != nil {
		return nil, err
	}
	p.blocks = append(p.blocks, block)

	offset, order, ok := block.buddy.alloc(req.Size, req.Alignment)
	if !ok {
		return nil, fmt.Errorf("memory: fresh block rejected %d-byte request", req.Size)
	}
	a.stats.TotalUsed += block.buddy.regionSize(order)
	a.stats.PooledAllocations++
	return &Allocation{
		Memory:          block.memory,
		Offset:          offset,
		Size:            req.Size,
		DefragCandidate: req.Size > DefragCandidateThreshold,
		memoryTypeIndex: typeIndex,
		order:           order,
		blockIndex:      len(p.blocks) - 1,
	}, nil
}

// Free releases an allocation. Mapped allocations must be unmapped
// first; the engine routes frees through the deferred-destruction ring
// so the GPU is no longer operating on them.
func (a *Allocator) Free(alloc *Allocation, strategy Strategy) error {
	if alloc.mapped {
		return ErrStillMapped
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if alloc.dedicated {
		a.cmds.FreeMemory(a.device, alloc.Memory)
		a.stats.TotalAllocated -= alloc.Size
		a.stats.TotalUsed -= alloc.Size
		a.stats.DedicatedAllocations--
		return nil
	}

	pair, ok := a.pools[alloc.memoryTypeIndex]
	if !ok || pair[strategy] == nil {
		return fmt.Errorf("memory: free of unknown allocation (type %d)", alloc.memoryTypeIndex)
	}
	p := pair[strategy]
	if alloc.blockIndex >= len(p.blocks) {
		return fmt.Errorf("memory: free of unknown block %d", alloc.blockIndex)
	}
	block := p.blocks[alloc.blockIndex]
	size := block.buddy.regionSize(alloc.order)
	if !block.buddy.free(alloc.Offset) {
		return fmt.Errorf("memory: double free at offset %d", alloc.Offset)
	}
	a.stats.TotalUsed -= size
	a.stats.PooledAllocations--
	return nil
}

// Map exposes an allocation to the host. Only host-visible memory types
// map successfully.
func (a *Allocator) Map(alloc *Allocation) ([]byte, error) {
	var ptr unsafe.Pointer
	result := a.cmds.MapMemory(a.device, alloc.Memory, alloc.Offset, alloc.Size, &ptr)
	if result != vk.Success {
		return nil, fmt.Errorf("memory: vkMapMemory failed: %d", result)
	}
	alloc.mapped = true
	return unsafe.Slice((*byte)(ptr), alloc.Size), nil
}

// Unmap releases a prior Map.
func (a *Allocator) Unmap(alloc *Allocation) error {
	if !alloc.mapped {
		return ErrNotMapped
	}
	a.cmds.UnmapMemory(a.device, alloc.Memory)
	alloc.mapped = false
	return nil
}

// Stats returns a copy of the allocator counters.
func (a *Allocator) Stats() Stats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stats
}

// Destroy frees every driver block. All allocations must already be
// freed.
func (a *Allocator) Destroy() {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, pair := range a.pools {
		for _, p := range pair {
			if p == nil {
				continue
			}
			for _, block := range p.blocks {
				a.cmds.FreeMemory(a.device, block.memory)
			}
			p.blocks = nil
		}
	}
	a.pools = nil
}

func (a *Allocator) poolFor(typeIndex uint32, strategy Strategy, blockSize uint64) *pool {
	pair, ok := a.pools[typeIndex]
	if !ok {
		pair = &[2]*pool{}
		a.pools[typeIndex] = pair
	}
	if pair[strategy] == nil {
		pair[strategy] = &pool{
			memoryTypeIndex: typeIndex,
			blockSize:       blockSize,
			minAlloc:        a.config.MinAllocationSize,
		}
	}
	return pair[strategy]
}

func (a *Allocator) newBlock(typeIndex uint32, blockSize uint64) (*poolBlock, error) {
	info := vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		AllocationSize:  blockSize,
		MemoryTypeIndex: typeIndex,
	}
	var mem vk.DeviceMemory
	if result := a.cmds.AllocateMemory(a.device, &info, &mem); result != vk.Success {
		return nil, fmt.Errorf("memory: vkAllocateMemory(%d bytes) failed: %d", blockSize, result)
	}
	a.stats.TotalAllocated += blockSize
	return &poolBlock{
		memory: mem,
		size:   blockSize,
		buddy:  newBuddyAllocator(blockSize, a.config.MinAllocationSize),
	}, nil
}

func (a *Allocator) allocDedicated(req Request, typeIndex uint32) (*Allocation, error) {
	info := vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		AllocationSize:  req.Size,
		MemoryTypeIndex: typeIndex,
	}
	var mem vk.DeviceMemory
	if result := a.cmds.AllocateMemory(a.device, &info, &mem); result != vk.Success {
		return nil, fmt.Errorf("memory: dedicated vkAllocateMemory(%d bytes) failed: %d", req.Size, result)
	}
	a.stats.TotalAllocated += req.Size
	a.stats.TotalUsed += req.Size
	a.stats.DedicatedAllocations++
	return &Allocation{
		Memory:          mem,
		Offset:          0,
		Size:            req.Size,
		DefragCandidate: req.Size > DefragCandidateThreshold,
		memoryTypeIndex: typeIndex,
		dedicated:       true,
	}, nil
}
