// Copyright 2025 Coalition of Freeware Developers
// SPDX-License-Identifier: MIT

package sedx

import (
	"math"
	"sync"

	"github.com/gogpu/gputypes"

	"github.com/Coalition-of-Freeware-Developers/Scenery-Editor-X-sub000/hal"
)

// hashCombine folds b into a. Every state hash combines its fields in
// declaration order with this function; equality is hash-equality, which
// is sound because the field space is discrete and small.
func hashCombine(a, b uint64) uint64 {
	return a*31 + b
}

func hashBool(a uint64, b bool) uint64 {
	if b {
		return hashCombine(a, 1)
	}
	return hashCombine(a, 0)
}

func hashFloat(a uint64, f float32) uint64 {
	return hashCombine(a, uint64(math.Float32bits(f)))
}

// FillMode selects polygon rasterization.
type FillMode uint8

const (
	FillSolid FillMode = iota
	FillWireframe
	FillPoint
)

// RasterizerStateDesc is a value-semantic rasterizer description.
type RasterizerStateDesc struct {
	FillMode         FillMode
	DepthBias        float32
	DepthBiasClamp   float32
	DepthBiasSlope   float32
	DepthClipEnabled bool
	LineWidth        float32
}

// Hash folds all fields in declaration order.
func (d RasterizerStateDesc) Hash() uint64 {
	h := hashCombine(0, uint64(d.FillMode))
	h = hashFloat(h, d.DepthBias)
	h = hashFloat(h, d.DepthBiasClamp)
	h = hashFloat(h, d.DepthBiasSlope)
	h = hashBool(h, d.DepthClipEnabled)
	h = hashFloat(h, d.LineWidth)
	return h
}

// BlendStateDesc is a value-semantic blend description for one
// attachment, with a single master enable and a constant blend factor.
type BlendStateDesc struct {
	Enabled        bool
	Src            gputypes.BlendFactor
	Dst            gputypes.BlendFactor
	Op             gputypes.BlendOperation
	SrcAlpha       gputypes.BlendFactor
	DstAlpha       gputypes.BlendFactor
	OpAlpha        gputypes.BlendOperation
	ConstantFactor float32
}

// Hash folds all fields in declaration order.
func (d BlendStateDesc) Hash() uint64 {
	h := hashBool(0, d.Enabled)
	h = hashCombine(h, uint64(d.Src))
	h = hashCombine(h, uint64(d.Dst))
	h = hashCombine(h, uint64(d.Op))
	h = hashCombine(h, uint64(d.SrcAlpha))
	h = hashCombine(h, uint64(d.DstAlpha))
	h = hashCombine(h, uint64(d.OpAlpha))
	h = hashFloat(h, d.ConstantFactor)
	return h
}

// DepthStencilStateDesc is a value-semantic depth/stencil description.
type DepthStencilStateDesc struct {
	DepthTest  bool
	DepthWrite bool
	Compare    gputypes.CompareFunction
}

// Hash folds all fields in declaration order.
func (d DepthStencilStateDesc) Hash() uint64 {
	h := hashBool(0, d.DepthTest)
	h = hashBool(h, d.DepthWrite)
	h = hashCombine(h, uint64(d.Compare))
	return h
}

// SamplerStateDesc is a value-semantic sampler description.
type SamplerStateDesc struct {
	MagFilter     gputypes.FilterMode
	MinFilter     gputypes.FilterMode
	MipFilter     gputypes.FilterMode
	AddressModeU  gputypes.AddressMode
	AddressModeV  gputypes.AddressMode
	AddressModeW  gputypes.AddressMode
	Compare       gputypes.CompareFunction
	MipLodBias    float32
	MaxAnisotropy float32
}

// Hash folds all fields in declaration order.
func (d SamplerStateDesc) Hash() uint64 {
	h := hashCombine(0, uint64(d.MagFilter))
	h = hashCombine(h, uint64(d.MinFilter))
	h = hashCombine(h, uint64(d.MipFilter))
	h = hashCombine(h, uint64(d.AddressModeU))
	h = hashCombine(h, uint64(d.AddressModeV))
	h = hashCombine(h, uint64(d.AddressModeW))
	h = hashCombine(h, uint64(d.Compare))
	h = hashFloat(h, d.MipLodBias)
	h = hashFloat(h, d.MaxAnisotropy)
	return h
}

func (d SamplerStateDesc) halDesc() hal.SamplerDescriptor {
	return hal.SamplerDescriptor{
		MagFilter:     d.MagFilter,
		MinFilter:     d.MinFilter,
		MipFilter:     d.MipFilter,
		AddressModeU:  d.AddressModeU,
		AddressModeV:  d.AddressModeV,
		AddressModeW:  d.AddressModeW,
		Compare:       d.Compare,
		MipLodBias:    d.MipLodBias,
		MaxAnisotropy: d.MaxAnisotropy,
	}
}

// stateCache lazily creates fixed-function state objects keyed by the
// 64-bit description hash.
type stateCache struct {
	mu     sync.Mutex
	kind   hal.StateKind
	device hal.Device
	states map[uint64]hal.PipelineState
}

func newStateCache(device hal.Device, kind hal.StateKind) *stateCache {
	return &stateCache{kind: kind, device: device, states: make(map[uint64]hal.PipelineState)}
}

// getOrCreate returns the cached state for hash, baking it on first use.
func (c *stateCache) getOrCreate(hash uint64) (hal.PipelineState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.states[hash]; ok {
		return s, nil
	}
	s, err := c.device.CreatePipelineState(c.kind, hash)
	if err != nil {
		return nil, err
	}
	c.states[hash] = s
	return s, nil
}

func (c *stateCache) destroy() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, s := range c.states {
		c.device.DestroyPipelineState(s)
	}
	c.states = nil
}

// samplerCache deduplicates native samplers through the state hash and
// keeps their bindless indices alongside.
type samplerCache struct {
	mu       sync.Mutex
	device   hal.Device
	bindless *BindlessTable
	entries  map[uint64]samplerEntry
}

type samplerEntry struct {
	sampler hal.Sampler
	rid     RID
}

func newSamplerCache(device hal.Device, bindless *BindlessTable) *samplerCache {
	return &samplerCache{device: device, bindless: bindless, entries: make(map[uint64]samplerEntry)}
}

// getOrCreate returns the deduplicated sampler for desc along with its
// bindless sampler index.
func (c *samplerCache) getOrCreate(desc SamplerStateDesc) (hal.Sampler, RID, error) {
	hash := desc.Hash()
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[hash]; ok {
		return e.sampler, e.rid, nil
	}

	halDesc := desc.halDesc()
	sampler, err := c.device.CreateSampler(&halDesc)
	if err != nil {
		return nil, InvalidRID, err
	}
	rid, err := c.bindless.RegisterSampler(sampler)
	if err != nil {
		c.device.DestroySampler(sampler)
		return nil, InvalidRID, err
	}
	c.entries[hash] = samplerEntry{sampler: sampler, rid: rid}
	return sampler, rid, nil
}

func (c *samplerCache) destroy() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.entries {
		c.device.DestroySampler(e.sampler)
	}
	c.entries = nil
}

// StateCaches bundles the four lazy caches.
type StateCaches struct {
	rasterizer   *stateCache
	blend        *stateCache
	depthStencil *stateCache
	samplers     *samplerCache
}

func newStateCaches(device hal.Device, bindless *BindlessTable) *StateCaches {
	return &StateCaches{
		rasterizer:   newStateCache(device, hal.StateRasterizer),
		blend:        newStateCache(device, hal.StateBlend),
		depthStencil: newStateCache(device, hal.StateDepthStencil),
		samplers:     newSamplerCache(device, bindless),
	}
}

// Rasterizer returns the lazily created rasterizer state for desc.
func (s *StateCaches) Rasterizer(desc RasterizerStateDesc) (hal.PipelineState, error) {
	return s.rasterizer.getOrCreate(desc.Hash())
}

// Blend returns the lazily created blend state for desc.
func (s *StateCaches) Blend(desc BlendStateDesc) (hal.PipelineState, error) {
	return s.blend.getOrCreate(desc.Hash())
}

// DepthStencil returns the lazily created depth-stencil state for desc.
func (s *StateCaches) DepthStencil(desc DepthStencilStateDesc) (hal.PipelineState, error) {
	return s.depthStencil.getOrCreate(desc.Hash())
}

// Sampler returns the deduplicated sampler and its bindless index.
func (s *StateCaches) Sampler(desc SamplerStateDesc) (hal.Sampler, RID, error) {
	return s.samplers.getOrCreate(desc)
}

func (s *StateCaches) destroy() {
	s.rasterizer.destroy()
	s.blend.destroy()
	s.depthStencil.destroy()
	s.samplers.destroy()
}
