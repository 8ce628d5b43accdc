// Copyright 2025 Coalition of Freeware Developers
// SPDX-License-Identifier: MIT

package hal

import (
	"github.com/gogpu/gputypes"
)

// Backend identifies a graphics backend implementation.
// Backends are registered globally and provide factory methods for instances.
type Backend interface {
	// Variant returns the backend type identifier.
	Variant() gputypes.Backend

	// CreateInstance creates a new GPU instance with the given configuration.
	// Returns an error if instance creation fails (e.g. drivers not available).
	CreateInstance(desc *InstanceDescriptor) (Instance, error)
}

// InstanceDescriptor configures instance creation.
type InstanceDescriptor struct {
	// AppName is reported to the driver for diagnostics.
	AppName string

	// Validation enables the validation layer when the loader exposes it.
	// Silently ignored when unavailable.
	Validation bool
}

// Instance is the entry point for GPU operations.
type Instance interface {
	// EnumerateAdapters lists the physical devices visible to the instance.
	EnumerateAdapters() []ExposedAdapter

	// CreateSurface creates a rendering surface from raw platform handles
	// (HWND/HINSTANCE on Windows, wl_display/wl_surface or Display/Window
	// elsewhere). Window-system glue beyond this call lives outside the core.
	CreateSurface(displayHandle, windowHandle uintptr) (Surface, error)

	// Destroy releases the instance. All adapters, devices and surfaces
	// created from it must be destroyed first.
	Destroy()
}

// ExposedAdapter bundles an adapter with its metadata.
type ExposedAdapter struct {
	Adapter Adapter
	Info    gputypes.AdapterInfo
}

// Adapter represents a physical GPU.
type Adapter interface {
	// Info returns adapter metadata (vendor, name, driver, device type).
	Info() gputypes.AdapterInfo

	// Open creates the logical device and its queue set. The backend
	// verifies the required extension set and returns a
	// *MissingExtensionError naming the first one absent.
	Open() (OpenDevice, error)
}

// OpenDevice is returned when Adapter.Open succeeds.
type OpenDevice struct {
	Device Device
	Queues QueueSet
}

// QueueKind selects one of the per-family queues the device opened.
type QueueKind uint8

const (
	QueueGraphics QueueKind = iota
	QueueCompute
	QueueTransfer
	QueuePresent
)

func (k QueueKind) String() string {
	switch k {
	case QueueGraphics:
		return "graphics"
	case QueueCompute:
		return "compute"
	case QueueTransfer:
		return "transfer"
	case QueuePresent:
		return "present"
	}
	return "unknown"
}

// QueueSet caches the opened per-family queues. Families that alias
// (e.g. compute == graphics) share one Queue value and therefore one
// submission mutex.
type QueueSet interface {
	// Queue returns the queue serving the given kind.
	Queue(kind QueueKind) Queue
}

// Queue is a device queue. Submissions on one Queue value are serialized
// by the backend: Submit holds the queue's mutex for the duration of the
// native submit call.
type Queue interface {
	// Kind returns the primary kind this queue was opened for.
	Kind() QueueKind

	// Submit submits command buffers. The fence, if any, is signaled when
	// the GPU finishes. Timeline values pair with the semaphores at the
	// same position; zero means the semaphore is binary.
	Submit(desc *SubmitDescriptor) error

	// Present queues a swapchain image for presentation, waiting on the
	// given semaphore. Returns ErrSurfaceOutdated when the swapchain no
	// longer matches the surface.
	Present(surface Surface, imageIndex uint32, wait Semaphore) error

	// WaitIdle blocks until the queue drains. Used only during teardown.
	WaitIdle() error
}

// SubmitDescriptor describes one queue submission.
type SubmitDescriptor struct {
	CommandBuffers []CommandBuffer

	WaitSemaphores   []Semaphore
	WaitValues       []uint64 // 0 = binary
	SignalSemaphores []Semaphore
	SignalValues     []uint64 // 0 = binary

	// Fence is signaled when all command buffers complete. May be nil.
	Fence Fence
}

// DeviceLimits carries the device properties the core needs for layout
// decisions.
type DeviceLimits struct {
	MinUniformBufferOffsetAlignment uint64
	MinStorageBufferOffsetAlignment uint64
	MaxSamplerAnisotropy            float32
	TimestampPeriodNs               float32
}

// AllocationStrategy selects the suballocator packing policy per call.
type AllocationStrategy uint8

const (
	// StrategySpeedOptimized favors larger blocks and fast carving.
	StrategySpeedOptimized AllocationStrategy = iota
	// StrategyMemoryOptimized favors tight packing at the cost of speed.
	StrategyMemoryOptimized
)

// MemoryClass selects where a buffer lives.
type MemoryClass uint8

const (
	// MemoryGPU is device-local memory without host access.
	MemoryGPU MemoryClass = iota
	// MemoryCPUCoherent is host-visible, host-coherent memory.
	MemoryCPUCoherent
)

// BufferDescriptor describes a buffer creation request.
type BufferDescriptor struct {
	Size     uint64
	Usage    gputypes.BufferUsage
	Memory   MemoryClass
	Strategy AllocationStrategy
	Name     string
}

// ImageDescriptor describes an image creation request.
type ImageDescriptor struct {
	Extent      gputypes.Extent3D
	MipLevels   uint32
	ArrayLayers uint32
	Format      gputypes.TextureFormat
	Usage       ImageUsage
	SampleCount uint32
	Strategy    AllocationStrategy
	Name        string
}

// ImageUsage is a bit set of image usages. The engine keeps its own flag
// set rather than gputypes.TextureUsage because transient attachments and
// the depth/color split matter to layout tracking.
type ImageUsage uint32

const (
	ImageUsageSampled ImageUsage = 1 << iota
	ImageUsageStorage
	ImageUsageColorAttachment
	ImageUsageDepthAttachment
	ImageUsageTransferSrc
	ImageUsageTransferDst
	ImageUsageTransient
)

// ImageLayout mirrors the coarse layout states the core tracks per
// (mip, layer).
type ImageLayout uint8

const (
	LayoutUndefined ImageLayout = iota
	LayoutShaderReadOnly
	LayoutGeneral
	LayoutTransferSrc
	LayoutTransferDst
	LayoutColorAttachment
	LayoutDepthAttachment
	LayoutPresent
)

// ImageViewDescriptor describes a view over an image subresource range.
type ImageViewDescriptor struct {
	Format         gputypes.TextureFormat
	BaseMipLevel   uint32
	MipLevelCount  uint32
	BaseArrayLayer uint32
	ArrayLayers    uint32
	Aspect         gputypes.TextureAspect
}

// SamplerDescriptor describes a sampler state.
type SamplerDescriptor struct {
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

// BindlessCapacities fixes the five descriptor array sizes at init.
type BindlessCapacities struct {
	SampledImages  uint32
	Samplers       uint32
	StorageImages  uint32
	StorageBuffers uint32
	UniformBuffers uint32
}

// Resource is the base interface for all opaque native objects. The
// core never inspects them; it threads them back into the backend that
// created them. Destroy releases the object directly; the engine's
// facade routes destroys through the deferred ring and the Device's
// Destroy* methods instead, so Destroy here serves teardown paths.
type Resource interface {
	Destroy()
}

// Buffer, Image, ImageView, Sampler, Semaphore and PipelineState are
// opaque native objects.
type (
	Buffer        interface{ Resource }
	Image         interface{ Resource }
	ImageView     interface{ Resource }
	Sampler       interface{ Resource }
	Semaphore     interface{ Resource }
	PipelineState interface{ Resource }
)

// Fence is a binary GPU fence, created unsignaled.
type Fence interface {
	// IsSignaled polls the fence without blocking.
	IsSignaled() (bool, error)

	// Wait blocks until the fence signals or timeoutNs elapses.
	// Returns ErrTimeout on expiry. ^uint64(0) waits forever.
	Wait(timeoutNs uint64) error

	// Reset returns the fence to the unsignaled state.
	Reset() error

	// Destroy releases the fence.
	Destroy()
}

// TimelineSemaphore is a 64-bit monotonic GPU counter.
type TimelineSemaphore interface {
	// Signal sets the counter to value from the host. Backends reject
	// values at or below the current counter.
	Signal(value uint64) error

	// WaitValue blocks until the counter reaches value or timeoutNs
	// elapses. Returns ErrTimeout on expiry.
	WaitValue(value uint64, timeoutNs uint64) error

	// CounterValue reads the current counter.
	CounterValue() (uint64, error)

	// Destroy releases the semaphore.
	Destroy()
}

// CommandPool allocates command buffers for one queue family.
type CommandPool interface {
	Allocate() (CommandBuffer, error)
	Free(cb CommandBuffer)
	Destroy()
}

// BufferImageCopy describes one buffer-to-image copy region.
type BufferImageCopy struct {
	BufferOffset uint64
	MipLevel     uint32
	BaseLayer    uint32
	LayerCount   uint32
	Origin       gputypes.Origin3D
	Extent       gputypes.Extent3D
}

// CommandBuffer records GPU work. Recording is not thread-safe; the core
// guarantees exclusive ownership while recording.
type CommandBuffer interface {
	// Begin starts recording. oneTime marks the buffer single-use.
	Begin(oneTime bool) error

	// End finishes recording.
	End() error

	// Reset recycles the buffer for re-recording.
	Reset() error

	// CopyBuffer records a buffer-to-buffer copy.
	CopyBuffer(src, dst Buffer, srcOffset, dstOffset, size uint64)

	// CopyBufferToImage records a buffer-to-image copy. The image must be
	// in LayoutTransferDst for the covered subresources.
	CopyBufferToImage(src Buffer, dst Image, region BufferImageCopy)

	// TransitionImage records a layout transition for a subresource range.
	TransitionImage(img Image, aspect gputypes.TextureAspect,
		baseMip, mipCount, baseLayer, layerCount uint32, from, to ImageLayout)

	// BlitMip records a downsampling blit from mip to mip+1, used for
	// mipmap generation. Source must be LayoutTransferSrc, destination
	// LayoutTransferDst.
	BlitMip(img Image, aspect gputypes.TextureAspect, mip uint32,
		srcExtent, dstExtent gputypes.Extent3D)
}

// DescriptorTable is the single bindless descriptor set. Index allocation
// and batching are core policy; the table only applies writes. Writes are
// not visible to shaders until Flush returns.
type DescriptorTable interface {
	WriteSampledImage(index uint32, view ImageView, layout ImageLayout)
	WriteSampler(index uint32, sampler Sampler)
	WriteStorageImage(index uint32, view ImageView, layout ImageLayout)
	WriteStorageBuffer(index uint32, buffer Buffer, offset, size uint64)
	WriteUniformBuffer(index uint32, buffer Buffer, offset, size uint64)

	// Flush applies all writes recorded since the previous Flush in one
	// native update call.
	Flush() error

	// Destroy releases the set, pool and layout.
	Destroy()
}

// SurfaceFrame is one acquired swapchain image.
type SurfaceFrame struct {
	ImageIndex uint32
	Image      Image
	View       ImageView
}

// Surface is a configured presentation target.
type Surface interface {
	// Configure (re)builds the swapchain for the given size and vsync
	// preference. Must be called before the first Acquire.
	Configure(width, height uint32, vsync bool) error

	// Acquire obtains the next swapchain image, signaling the given
	// semaphore when the image is ready. Returns ErrSurfaceOutdated when
	// the swapchain must be reconfigured.
	Acquire(signal Semaphore, timeoutNs uint64) (SurfaceFrame, error)

	// Destroy releases the swapchain and surface.
	Destroy()
}

// RasterizerStateDesc, BlendStateDesc and DepthStencilStateDesc are
// defined in the root package; the HAL
// receives them pre-hashed as opaque payloads to keep state-cache policy
// out of backends.
type StateKind uint8

const (
	StateRasterizer StateKind = iota
	StateBlend
	StateDepthStencil
)

// Device represents a logical GPU device.
type Device interface {
	// Limits returns the device properties relevant to the core.
	Limits() DeviceLimits

	CreateBuffer(desc *BufferDescriptor) (Buffer, error)
	DestroyBuffer(buffer Buffer)

	// Map returns the host mapping of a CPU-visible buffer. The mapping
	// stays valid until Unmap. Mapping a GPU-only buffer fails with
	// ErrMappingFailed.
	Map(buffer Buffer) ([]byte, error)
	Unmap(buffer Buffer) error

	CreateImage(desc *ImageDescriptor) (Image, error)
	DestroyImage(image Image)

	CreateImageView(image Image, desc *ImageViewDescriptor) (ImageView, error)
	DestroyImageView(view ImageView)

	CreateSampler(desc *SamplerDescriptor) (Sampler, error)
	DestroySampler(sampler Sampler)

	CreateFence() (Fence, error)
	CreateBinarySemaphore() (Semaphore, error)
	DestroySemaphore(sem Semaphore)
	CreateTimelineSemaphore(initial uint64) (TimelineSemaphore, error)

	CreateCommandPool(kind QueueKind) (CommandPool, error)

	CreateDescriptorTable(caps BindlessCapacities) (DescriptorTable, error)

	// CreatePipelineState bakes a fixed-function state object from the
	// pre-hashed description payload.
	CreatePipelineState(kind StateKind, hash uint64) (PipelineState, error)
	DestroyPipelineState(state PipelineState)

	// PipelineCacheData serializes the driver pipeline cache; the payload
	// is opaque vendor bytes. LoadPipelineCache feeds a previously saved
	// payload back; drivers may reject it without error.
	PipelineCacheData() ([]byte, error)
	LoadPipelineCache(data []byte) error

	// WaitIdle blocks until the device drains all queues.
	WaitIdle() error

	// Destroy releases the device. All child objects must be destroyed
	// first.
	Destroy()
}
