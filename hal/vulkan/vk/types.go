// Copyright 2025 Coalition of Freeware Developers
// SPDX-License-Identifier: MIT

package vk

import "unsafe"

// Dispatchable handles (pointer sized).
type (
	Instance       uintptr
	PhysicalDevice uintptr
	Device         uintptr
	Queue          uintptr
	CommandBuffer  uintptr
)

// Non-dispatchable handles (always 64-bit).
type (
	Buffer              uint64
	Image               uint64
	ImageView           uint64
	Sampler             uint64
	DeviceMemory        uint64
	Fence               uint64
	Semaphore           uint64
	CommandPool         uint64
	DescriptorSetLayout uint64
	DescriptorPool      uint64
	DescriptorSet       uint64
	PipelineCache       uint64
	SurfaceKHR          uint64
	SwapchainKHR        uint64
)

// DeviceSize is VkDeviceSize.
type DeviceSize = uint64

// Bool32 is VkBool32.
type Bool32 = uint32

const (
	False Bool32 = 0
	True  Bool32 = 1
)

// Result is VkResult.
type Result int32

const (
	Success            Result = 0
	NotReady           Result = 1
	TimeoutResult      Result = 2
	EventSet           Result = 3
	EventReset         Result = 4
	Incomplete         Result = 5
	SuboptimalKHR      Result = 1000001003
	ErrorOutOfHostMem  Result = -1
	ErrorOutOfDevMem   Result = -2
	ErrorInitFailed    Result = -3
	ErrorDeviceLost    Result = -4
	ErrorMemMapFailed  Result = -5
	ErrorLayerMissing  Result = -6
	ErrorExtMissing    Result = -7
	ErrorFeatMissing   Result = -8
	ErrorTooManyObjs   Result = -10
	ErrorSurfaceLost   Result = -1000000000
	ErrorOutOfDateKHR  Result = -1000001004
	ErrorFragmentedPool Result = -12
	ErrorOutOfPoolMem  Result = -1000069000
)

// StructureType is VkStructureType.
type StructureType uint32

const (
	StructureTypeApplicationInfo                           StructureType = 0
	StructureTypeInstanceCreateInfo                        StructureType = 1
	StructureTypeDeviceQueueCreateInfo                     StructureType = 2
	StructureTypeDeviceCreateInfo                          StructureType = 3
	StructureTypeSubmitInfo                                StructureType = 4
	StructureTypeMemoryAllocateInfo                        StructureType = 5
	StructureTypeFenceCreateInfo                           StructureType = 8
	StructureTypeSemaphoreCreateInfo                       StructureType = 9
	StructureTypeBufferCreateInfo                          StructureType = 12
	StructureTypeImageCreateInfo                           StructureType = 14
	StructureTypeImageViewCreateInfo                       StructureType = 15
	StructureTypePipelineCacheCreateInfo                   StructureType = 17
	StructureTypeSamplerCreateInfo                         StructureType = 31
	StructureTypeDescriptorSetLayoutCreateInfo             StructureType = 32
	StructureTypeDescriptorPoolCreateInfo                  StructureType = 33
	StructureTypeDescriptorSetAllocateInfo                 StructureType = 34
	StructureTypeWriteDescriptorSet                        StructureType = 35
	StructureTypeCommandPoolCreateInfo                     StructureType = 39
	StructureTypeCommandBufferAllocateInfo                 StructureType = 40
	StructureTypeCommandBufferBeginInfo                    StructureType = 42
	StructureTypeImageMemoryBarrier                        StructureType = 45
	StructureTypePhysicalDeviceFeatures2                   StructureType = 1000059000
	StructureTypePhysicalDeviceDescriptorIndexingFeatures  StructureType = 1000161001
	StructureTypeDescriptorSetLayoutBindingFlagsCreateInfo StructureType = 1000161000
	StructureTypePhysicalDeviceTimelineSemaphoreFeatures   StructureType = 1000207000
	StructureTypeSemaphoreTypeCreateInfo                   StructureType = 1000207002
	StructureTypeTimelineSemaphoreSubmitInfo               StructureType = 1000207003
	StructureTypeSemaphoreWaitInfo                         StructureType = 1000207004
	StructureTypeSemaphoreSignalInfo                       StructureType = 1000207005
	StructureTypePhysicalDeviceBufferDeviceAddressFeatures StructureType = 1000257000
	StructureTypePhysicalDeviceDynamicRenderingFeatures    StructureType = 1000044003
	StructureTypePhysicalDeviceScalarBlockLayoutFeatures   StructureType = 1000221000
	StructureTypeSwapchainCreateInfoKHR                    StructureType = 1000001000
	StructureTypePresentInfoKHR                            StructureType = 1000001001
)

// Flag types.
type (
	InstanceCreateFlags       uint32
	DeviceCreateFlags         uint32
	DeviceQueueCreateFlags    uint32
	QueueFlags                uint32
	MemoryPropertyFlags       uint32
	MemoryHeapFlags           uint32
	MemoryMapFlags            uint32
	BufferCreateFlags         uint32
	BufferUsageFlags          uint32
	ImageCreateFlags          uint32
	ImageUsageFlags           uint32
	ImageAspectFlags          uint32
	ImageViewCreateFlags      uint32
	SampleCountFlags          uint32
	SamplerCreateFlags        uint32
	FenceCreateFlags          uint32
	SemaphoreCreateFlags      uint32
	CommandPoolCreateFlags    uint32
	CommandBufferUsageFlags   uint32
	CommandBufferResetFlags   uint32
	PipelineStageFlags        uint32
	AccessFlags               uint32
	DependencyFlags           uint32
	ShaderStageFlags          uint32
	DescriptorBindingFlags    uint32
	DescriptorPoolCreateFlags uint32
	DescriptorSetLayoutCreateFlags uint32
	PipelineCacheCreateFlags  uint32
	SurfaceTransformFlagsKHR  uint32
	CompositeAlphaFlagsKHR    uint32
	SwapchainCreateFlagsKHR   uint32
	FilterEnum                uint32
)

const (
	QueueGraphicsBit QueueFlags = 0x1
	QueueComputeBit  QueueFlags = 0x2
	QueueTransferBit QueueFlags = 0x4

	MemoryPropertyDeviceLocalBit  MemoryPropertyFlags = 0x1
	MemoryPropertyHostVisibleBit  MemoryPropertyFlags = 0x2
	MemoryPropertyHostCoherentBit MemoryPropertyFlags = 0x4
	MemoryPropertyHostCachedBit   MemoryPropertyFlags = 0x8

	BufferUsageTransferSrcBit        BufferUsageFlags = 0x1
	BufferUsageTransferDstBit        BufferUsageFlags = 0x2
	BufferUsageUniformTexelBit       BufferUsageFlags = 0x4
	BufferUsageStorageTexelBit       BufferUsageFlags = 0x8
	BufferUsageUniformBufferBit      BufferUsageFlags = 0x10
	BufferUsageStorageBufferBit      BufferUsageFlags = 0x20
	BufferUsageIndexBufferBit        BufferUsageFlags = 0x40
	BufferUsageVertexBufferBit       BufferUsageFlags = 0x80
	BufferUsageIndirectBufferBit     BufferUsageFlags = 0x100
	BufferUsageShaderDeviceAddressBit BufferUsageFlags = 0x20000
	BufferUsageASBuildInputBit       BufferUsageFlags = 0x80000
	BufferUsageASStorageBit          BufferUsageFlags = 0x100000
	BufferUsageShaderBindingTableBit BufferUsageFlags = 0x400

	ImageUsageTransferSrcBit        ImageUsageFlags = 0x1
	ImageUsageTransferDstBit        ImageUsageFlags = 0x2
	ImageUsageSampledBit            ImageUsageFlags = 0x4
	ImageUsageStorageBit            ImageUsageFlags = 0x8
	ImageUsageColorAttachmentBit    ImageUsageFlags = 0x10
	ImageUsageDepthStencilBit       ImageUsageFlags = 0x20
	ImageUsageTransientBit          ImageUsageFlags = 0x40

	ImageAspectColorBit   ImageAspectFlags = 0x1
	ImageAspectDepthBit   ImageAspectFlags = 0x2
	ImageAspectStencilBit ImageAspectFlags = 0x4

	FenceCreateSignaledBit FenceCreateFlags = 0x1

	CommandPoolCreateTransientBit          CommandPoolCreateFlags = 0x1
	CommandPoolCreateResetCommandBufferBit CommandPoolCreateFlags = 0x2

	CommandBufferUsageOneTimeSubmitBit CommandBufferUsageFlags = 0x1

	PipelineStageTopOfPipeBit             PipelineStageFlags = 0x1
	PipelineStageTransferBit              PipelineStageFlags = 0x1000
	PipelineStageFragmentShaderBit        PipelineStageFlags = 0x80
	PipelineStageComputeShaderBit         PipelineStageFlags = 0x800
	PipelineStageColorAttachmentOutputBit PipelineStageFlags = 0x400
	PipelineStageEarlyFragmentTestsBit    PipelineStageFlags = 0x100
	PipelineStageBottomOfPipeBit          PipelineStageFlags = 0x2000
	PipelineStageAllCommandsBit           PipelineStageFlags = 0x10000

	AccessTransferReadBit         AccessFlags = 0x800
	AccessTransferWriteBit        AccessFlags = 0x1000
	AccessShaderReadBit           AccessFlags = 0x20
	AccessShaderWriteBit          AccessFlags = 0x40
	AccessColorAttachmentWriteBit AccessFlags = 0x100
	AccessDepthStencilWriteBit    AccessFlags = 0x400

	ShaderStageAll ShaderStageFlags = 0x7FFFFFFF

	DescriptorBindingUpdateAfterBindBit          DescriptorBindingFlags = 0x1
	DescriptorBindingUpdateUnusedWhilePendingBit DescriptorBindingFlags = 0x2
	DescriptorBindingPartiallyBoundBit           DescriptorBindingFlags = 0x4

	DescriptorPoolCreateUpdateAfterBindBit DescriptorPoolCreateFlags = 0x2

	DescriptorSetLayoutCreateUpdateAfterBindPoolBit DescriptorSetLayoutCreateFlags = 0x2

	QueueFamilyIgnored = ^uint32(0)
)

// Enums.
type (
	PhysicalDeviceType uint32
	SharingMode        uint32
	ImageType          uint32
	ImageViewType      uint32
	ImageTiling        uint32
	ImageLayout        uint32
	Format             uint32
	Filter             uint32
	SamplerMipmapMode  uint32
	SamplerAddressMode uint32
	CompareOp          uint32
	BorderColor        uint32
	DescriptorType     uint32
	SemaphoreType      uint32
	CommandBufferLevel uint32
	PresentModeKHR     uint32
	ColorSpaceKHR      uint32
)

const (
	PhysicalDeviceTypeOther         PhysicalDeviceType = 0
	PhysicalDeviceTypeIntegratedGPU PhysicalDeviceType = 1
	PhysicalDeviceTypeDiscreteGPU   PhysicalDeviceType = 2
	PhysicalDeviceTypeVirtualGPU    PhysicalDeviceType = 3
	PhysicalDeviceTypeCPU           PhysicalDeviceType = 4

	SharingModeExclusive SharingMode = 0

	ImageType2D ImageType = 1
	ImageType3D ImageType = 2

	ImageViewType2D      ImageViewType = 1
	ImageViewType2DArray ImageViewType = 5

	ImageTilingOptimal ImageTiling = 0

	ImageLayoutUndefined            ImageLayout = 0
	ImageLayoutGeneral              ImageLayout = 1
	ImageLayoutColorAttachment      ImageLayout = 2
	ImageLayoutDepthStencilAttach   ImageLayout = 3
	ImageLayoutShaderReadOnly       ImageLayout = 5
	ImageLayoutTransferSrc          ImageLayout = 6
	ImageLayoutTransferDst          ImageLayout = 7
	ImageLayoutPresentSrcKHR        ImageLayout = 1000001002

	FilterNearest Filter = 0
	FilterLinear  Filter = 1

	SamplerMipmapModeNearest SamplerMipmapMode = 0
	SamplerMipmapModeLinear  SamplerMipmapMode = 1

	SamplerAddressModeRepeat         SamplerAddressMode = 0
	SamplerAddressModeMirroredRepeat SamplerAddressMode = 1
	SamplerAddressModeClampToEdge    SamplerAddressMode = 2

	CompareOpNever        CompareOp = 0
	CompareOpLess         CompareOp = 1
	CompareOpEqual        CompareOp = 2
	CompareOpLessEqual    CompareOp = 3
	CompareOpGreater      CompareOp = 4
	CompareOpNotEqual     CompareOp = 5
	CompareOpGreaterEqual CompareOp = 6
	CompareOpAlways       CompareOp = 7

	DescriptorTypeSampler       DescriptorType = 0
	DescriptorTypeSampledImage  DescriptorType = 2
	DescriptorTypeStorageImage  DescriptorType = 3
	DescriptorTypeUniformBuffer DescriptorType = 6
	DescriptorTypeStorageBuffer DescriptorType = 7

	SemaphoreTypeBinary   SemaphoreType = 0
	SemaphoreTypeTimeline SemaphoreType = 1

	CommandBufferLevelPrimary CommandBufferLevel = 0

	PresentModeImmediateKHR PresentModeKHR = 0
	PresentModeMailboxKHR   PresentModeKHR = 1
	PresentModeFifoKHR      PresentModeKHR = 2
)

// Common Vulkan formats the backend converts to.
const (
	FormatR8Unorm         Format = 9
	FormatRGBA8Unorm      Format = 37
	FormatRGBA8Srgb       Format = 43
	FormatBGRA8Unorm      Format = 44
	FormatBGRA8Srgb       Format = 50
	FormatRGBA16Float     Format = 97
	FormatRGBA32Float     Format = 109
	FormatD16Unorm        Format = 124
	FormatD32Float        Format = 126
	FormatD24UnormS8Uint  Format = 129
	FormatD32FloatS8Uint  Format = 130
)

// Structs. Field layout matches the C ABI on 64-bit platforms.

type ApplicationInfo struct {
	SType              StructureType
	_                  uint32
	PNext              unsafe.Pointer
	PApplicationName   unsafe.Pointer // const char*
	ApplicationVersion uint32
	_                  uint32
	PEngineName        unsafe.Pointer
	EngineVersion      uint32
	APIVersion         uint32
}

type InstanceCreateInfo struct {
	SType                   StructureType
	_                       uint32
	PNext                   unsafe.Pointer
	Flags                   InstanceCreateFlags
	_                       uint32
	PApplicationInfo        *ApplicationInfo
	EnabledLayerCount       uint32
	_                       uint32
	PpEnabledLayerNames     unsafe.Pointer // const char* const*
	EnabledExtensionCount   uint32
	_                       uint32
	PpEnabledExtensionNames unsafe.Pointer
}

type PhysicalDeviceLimits struct {
	// Only the fields the engine consumes are named; the remainder is
	// padding that keeps offsets ABI-correct.
	MaxImageDimension1D                   uint32
	MaxImageDimension2D                   uint32
	MaxImageDimension3D                   uint32
	MaxImageDimensionCube                 uint32
	MaxImageArrayLayers                   uint32
	MaxTexelBufferElements                uint32
	MaxUniformBufferRange                 uint32
	MaxStorageBufferRange                 uint32
	MaxPushConstantsSize                  uint32
	MaxMemoryAllocationCount              uint32
	MaxSamplerAllocationCount             uint32
	BufferImageGranularity                DeviceSize
	SparseAddressSpaceSize                DeviceSize
	MaxBoundDescriptorSets                uint32
	MaxPerStageDescriptorSamplers         uint32
	MaxPerStageDescriptorUniformBuffers   uint32
	MaxPerStageDescriptorStorageBuffers   uint32
	MaxPerStageDescriptorSampledImages    uint32
	MaxPerStageDescriptorStorageImages    uint32
	MaxPerStageDescriptorInputAttachments uint32
	MaxPerStageResources                  uint32
	MaxDescriptorSetSamplers              uint32
	MaxDescriptorSetUniformBuffers        uint32
	MaxDescriptorSetUniformBuffersDynamic uint32
	MaxDescriptorSetStorageBuffers        uint32
	MaxDescriptorSetStorageBuffersDynamic uint32
	MaxDescriptorSetSampledImages         uint32
	MaxDescriptorSetStorageImages         uint32
	MaxDescriptorSetInputAttachments      uint32
	Pad0                                  [35]uint32
	MaxSamplerLodBias                     float32
	MaxSamplerAnisotropy                  float32
	MaxViewports                          uint32
	MaxViewportDimensions                 [2]uint32
	ViewportBoundsRange                   [2]float32
	ViewportSubPixelBits                  uint32
	_                                     uint32
	MinMemoryMapAlignment                 uintptr
	MinTexelBufferOffsetAlignment         DeviceSize
	MinUniformBufferOffsetAlignment       DeviceSize
	MinStorageBufferOffsetAlignment       DeviceSize
	Pad1                                  [21]uint32
	TimestampComputeAndGraphics           Bool32
	TimestampPeriod                       float32
	Pad2                                  [12]uint32
	Pad3                                  [2]DeviceSize
	NonCoherentAtomSize                   DeviceSize
}

type PhysicalDeviceSparseProperties struct {
	ResidencyStandard2DBlockShape            Bool32
	ResidencyStandard2DMultisampleBlockShape Bool32
	ResidencyStandard3DBlockShape            Bool32
	ResidencyAlignedMipSize                  Bool32
	ResidencyNonResidentStrict               Bool32
}

const MaxPhysicalDeviceNameSize = 256
const UUIDSize = 16

type PhysicalDeviceProperties struct {
	APIVersion       uint32
	DriverVersion    uint32
	VendorID         uint32
	DeviceID         uint32
	DeviceType       PhysicalDeviceType
	DeviceName       [MaxPhysicalDeviceNameSize]byte
	PipelineCacheUUID [UUIDSize]byte
	Limits           PhysicalDeviceLimits
	SparseProperties PhysicalDeviceSparseProperties
}

type QueueFamilyProperties struct {
	QueueFlags                  QueueFlags
	QueueCount                  uint32
	TimestampValidBits          uint32
	MinImageTransferGranularity Extent3D
}

type MemoryType struct {
	PropertyFlags MemoryPropertyFlags
	HeapIndex     uint32
}

type MemoryHeap struct {
	Size  DeviceSize
	Flags MemoryHeapFlags
}

const MaxMemoryTypes = 32
const MaxMemoryHeaps = 16

type PhysicalDeviceMemoryProperties struct {
	MemoryTypeCount uint32
	MemoryTypes     [MaxMemoryTypes]MemoryType
	MemoryHeapCount uint32
	_               uint32
	MemoryHeaps     [MaxMemoryHeaps]MemoryHeap
}

const MaxExtensionNameSize = 256

type ExtensionProperties struct {
	ExtensionName [MaxExtensionNameSize]byte
	SpecVersion   uint32
}

type DeviceQueueCreateInfo struct {
	SType            StructureType
	_                uint32
	PNext            unsafe.Pointer
	Flags            DeviceQueueCreateFlags
	QueueFamilyIndex uint32
	QueueCount       uint32
	_                uint32
	PQueuePriorities *float32
}

type DeviceCreateInfo struct {
	SType                   StructureType
	_                       uint32
	PNext                   unsafe.Pointer
	Flags                   DeviceCreateFlags
	QueueCreateInfoCount    uint32
	PQueueCreateInfos       *DeviceQueueCreateInfo
	EnabledLayerCount       uint32
	_                       uint32
	PpEnabledLayerNames     unsafe.Pointer
	EnabledExtensionCount   uint32
	_                       uint32
	PpEnabledExtensionNames unsafe.Pointer
	PEnabledFeatures        unsafe.Pointer
}

// Feature chain structs used at device creation.

type PhysicalDeviceDescriptorIndexingFeatures struct {
	SType StructureType
	_     uint32
	PNext unsafe.Pointer
	Pad0  [4]Bool32
	ShaderSampledImageArrayNonUniformIndexing Bool32
	Pad1  [6]Bool32
	DescriptorBindingSampledImageUpdateAfterBind Bool32
	DescriptorBindingStorageImageUpdateAfterBind Bool32
	DescriptorBindingStorageBufferUpdateAfterBind Bool32
	Pad2  [2]Bool32
	DescriptorBindingUpdateUnusedWhilePending Bool32
	DescriptorBindingPartiallyBound           Bool32
	DescriptorBindingVariableDescriptorCount  Bool32
	RuntimeDescriptorArray                    Bool32
}

type PhysicalDeviceTimelineSemaphoreFeatures struct {
	SType             StructureType
	_                 uint32
	PNext             unsafe.Pointer
	TimelineSemaphore Bool32
	_                 uint32
}

type PhysicalDeviceBufferDeviceAddressFeatures struct {
	SType                            StructureType
	_                                uint32
	PNext                            unsafe.Pointer
	BufferDeviceAddress              Bool32
	BufferDeviceAddressCaptureReplay Bool32
	BufferDeviceAddressMultiDevice   Bool32
	_                                uint32
}

type PhysicalDeviceDynamicRenderingFeatures struct {
	SType            StructureType
	_                uint32
	PNext            unsafe.Pointer
	DynamicRendering Bool32
	_                uint32
}

type PhysicalDeviceScalarBlockLayoutFeatures struct {
	SType             StructureType
	_                 uint32
	PNext             unsafe.Pointer
	ScalarBlockLayout Bool32
	_                 uint32
}

type MemoryAllocateInfo struct {
	SType           StructureType
	_               uint32
	PNext           unsafe.Pointer
	AllocationSize  DeviceSize
	MemoryTypeIndex uint32
	_               uint32
}

type MemoryRequirements struct {
	Size           DeviceSize
	Alignment      DeviceSize
	MemoryTypeBits uint32
	_              uint32
}

type BufferCreateInfo struct {
	SType                 StructureType
	_                     uint32
	PNext                 unsafe.Pointer
	Flags                 BufferCreateFlags
	_                     uint32
	Size                  DeviceSize
	Usage                 BufferUsageFlags
	SharingMode           SharingMode
	QueueFamilyIndexCount uint32
	_                     uint32
	PQueueFamilyIndices   *uint32
}

type Extent3D struct {
	Width  uint32
	Height uint32
	Depth  uint32
}

type Offset3D struct {
	X int32
	Y int32
	Z int32
}

type Extent2D struct {
	Width  uint32
	Height uint32
}

type ImageCreateInfo struct {
	SType                 StructureType
	_                     uint32
	PNext                 unsafe.Pointer
	Flags                 ImageCreateFlags
	ImageType             ImageType
	Format                Format
	Extent                Extent3D
	MipLevels             uint32
	ArrayLayers           uint32
	Samples               SampleCountFlags
	Tiling                ImageTiling
	Usage                 ImageUsageFlags
	SharingMode           SharingMode
	QueueFamilyIndexCount uint32
	_                     uint32
	PQueueFamilyIndices   *uint32
	InitialLayout         ImageLayout
	_                     uint32
}

type ComponentMapping struct {
	R uint32
	G uint32
	B uint32
	A uint32
}

type ImageSubresourceRange struct {
	AspectMask     ImageAspectFlags
	BaseMipLevel   uint32
	LevelCount     uint32
	BaseArrayLayer uint32
	LayerCount     uint32
}

type ImageViewCreateInfo struct {
	SType            StructureType
	_                uint32
	PNext            unsafe.Pointer
	Flags            ImageViewCreateFlags
	_                uint32
	Image            Image
	ViewType         ImageViewType
	Format           Format
	Components       ComponentMapping
	SubresourceRange ImageSubresourceRange
}

type SamplerCreateInfo struct {
	SType                   StructureType
	_                       uint32
	PNext                   unsafe.Pointer
	Flags                   SamplerCreateFlags
	MagFilter               Filter
	MinFilter               Filter
	MipmapMode              SamplerMipmapMode
	AddressModeU            SamplerAddressMode
	AddressModeV            SamplerAddressMode
	AddressModeW            SamplerAddressMode
	MipLodBias              float32
	AnisotropyEnable        Bool32
	MaxAnisotropy           float32
	CompareEnable           Bool32
	CompareOp               CompareOp
	MinLod                  float32
	MaxLod                  float32
	BorderColor             BorderColor
	UnnormalizedCoordinates Bool32
}

type FenceCreateInfo struct {
	SType StructureType
	_     uint32
	PNext unsafe.Pointer
	Flags FenceCreateFlags
	_     uint32
}

type SemaphoreCreateInfo struct {
	SType StructureType
	_     uint32
	PNext unsafe.Pointer
	Flags SemaphoreCreateFlags
	_     uint32
}

type SemaphoreTypeCreateInfo struct {
	SType         StructureType
	_             uint32
	PNext         unsafe.Pointer
	SemaphoreType SemaphoreType
	_             uint32
	InitialValue  uint64
}

type SemaphoreWaitInfo struct {
	SType          StructureType
	_              uint32
	PNext          unsafe.Pointer
	Flags          uint32
	SemaphoreCount uint32
	PSemaphores    *Semaphore
	PValues        *uint64
}

type SemaphoreSignalInfo struct {
	SType     StructureType
	_         uint32
	PNext     unsafe.Pointer
	Semaphore Semaphore
	Value     uint64
}

type TimelineSemaphoreSubmitInfo struct {
	SType                     StructureType
	_                         uint32
	PNext                     unsafe.Pointer
	WaitSemaphoreValueCount   uint32
	_                         uint32
	PWaitSemaphoreValues      *uint64
	SignalSemaphoreValueCount uint32
	_                         uint32
	PSignalSemaphoreValues    *uint64
}

type CommandPoolCreateInfo struct {
	SType            StructureType
	_                uint32
	PNext            unsafe.Pointer
	Flags            CommandPoolCreateFlags
	QueueFamilyIndex uint32
}

type CommandBufferAllocateInfo struct {
	SType              StructureType
	_                  uint32
	PNext              unsafe.Pointer
	CommandPool        CommandPool
	Level              CommandBufferLevel
	CommandBufferCount uint32
}

type CommandBufferBeginInfo struct {
	SType            StructureType
	_                uint32
	PNext            unsafe.Pointer
	Flags            CommandBufferUsageFlags
	_                uint32
	PInheritanceInfo unsafe.Pointer
}

type SubmitInfo struct {
	SType                StructureType
	_                    uint32
	PNext                unsafe.Pointer
	WaitSemaphoreCount   uint32
	_                    uint32
	PWaitSemaphores      *Semaphore
	PWaitDstStageMask    *PipelineStageFlags
	CommandBufferCount   uint32
	_                    uint32
	PCommandBuffers      *CommandBuffer
	SignalSemaphoreCount uint32
	_                    uint32
	PSignalSemaphores    *Semaphore
}

type BufferCopy struct {
	SrcOffset DeviceSize
	DstOffset DeviceSize
	Size      DeviceSize
}

type ImageSubresourceLayers struct {
	AspectMask     ImageAspectFlags
	MipLevel       uint32
	BaseArrayLayer uint32
	LayerCount     uint32
}

type BufferImageCopy struct {
	BufferOffset      DeviceSize
	BufferRowLength   uint32
	BufferImageHeight uint32
	ImageSubresource  ImageSubresourceLayers
	ImageOffset       Offset3D
	ImageExtent       Extent3D
}

type ImageMemoryBarrier struct {
	SType               StructureType
	_                   uint32
	PNext               unsafe.Pointer
	SrcAccessMask       AccessFlags
	DstAccessMask       AccessFlags
	OldLayout           ImageLayout
	NewLayout           ImageLayout
	SrcQueueFamilyIndex uint32
	DstQueueFamilyIndex uint32
	Image               Image
	SubresourceRange    ImageSubresourceRange
	_                   uint32
}

type ImageBlit struct {
	SrcSubresource ImageSubresourceLayers
	SrcOffsets     [2]Offset3D
	DstSubresource ImageSubresourceLayers
	DstOffsets     [2]Offset3D
}

type DescriptorSetLayoutBinding struct {
	Binding            uint32
	DescriptorType     DescriptorType
	DescriptorCount    uint32
	StageFlags         ShaderStageFlags
	PImmutableSamplers unsafe.Pointer
}

type DescriptorSetLayoutBindingFlagsCreateInfo struct {
	SType         StructureType
	_             uint32
	PNext         unsafe.Pointer
	BindingCount  uint32
	_             uint32
	PBindingFlags *DescriptorBindingFlags
}

type DescriptorSetLayoutCreateInfo struct {
	SType        StructureType
	_            uint32
	PNext        unsafe.Pointer
	Flags        DescriptorSetLayoutCreateFlags
	BindingCount uint32
	PBindings    *DescriptorSetLayoutBinding
}

type DescriptorPoolSize struct {
	Type            DescriptorType
	DescriptorCount uint32
}

type DescriptorPoolCreateInfo struct {
	SType         StructureType
	_             uint32
	PNext         unsafe.Pointer
	Flags         DescriptorPoolCreateFlags
	MaxSets       uint32
	PoolSizeCount uint32
	_             uint32
	PPoolSizes    *DescriptorPoolSize
}

type DescriptorSetAllocateInfo struct {
	SType              StructureType
	_                  uint32
	PNext              unsafe.Pointer
	DescriptorPool     DescriptorPool
	DescriptorSetCount uint32
	_                  uint32
	PSetLayouts        *DescriptorSetLayout
}

type DescriptorImageInfo struct {
	Sampler     Sampler
	ImageView   ImageView
	ImageLayout ImageLayout
	_           uint32
}

type DescriptorBufferInfo struct {
	Buffer Buffer
	Offset DeviceSize
	Range  DeviceSize
}

type WriteDescriptorSet struct {
	SType            StructureType
	_                uint32
	PNext            unsafe.Pointer
	DstSet           DescriptorSet
	DstBinding       uint32
	DstArrayElement  uint32
	DescriptorCount  uint32
	DescriptorType   DescriptorType
	PImageInfo       *DescriptorImageInfo
	PBufferInfo      *DescriptorBufferInfo
	PTexelBufferView unsafe.Pointer
}

type PipelineCacheCreateInfo struct {
	SType           StructureType
	_               uint32
	PNext           unsafe.Pointer
	Flags           PipelineCacheCreateFlags
	_               uint32
	InitialDataSize uintptr
	PInitialData    unsafe.Pointer
}

type SurfaceCapabilitiesKHR struct {
	MinImageCount           uint32
	MaxImageCount           uint32
	CurrentExtent           Extent2D
	MinImageExtent          Extent2D
	MaxImageExtent          Extent2D
	MaxImageArrayLayers     uint32
	SupportedTransforms     SurfaceTransformFlagsKHR
	CurrentTransform        SurfaceTransformFlagsKHR
	SupportedCompositeAlpha CompositeAlphaFlagsKHR
	SupportedUsageFlags     ImageUsageFlags
}

type SurfaceFormatKHR struct {
	Format     Format
	ColorSpace ColorSpaceKHR
}

type SwapchainCreateInfoKHR struct {
	SType                 StructureType
	_                     uint32
	PNext                 unsafe.Pointer
	Flags                 SwapchainCreateFlagsKHR
	_                     uint32
	Surface               SurfaceKHR
	MinImageCount         uint32
	ImageFormat           Format
	ImageColorSpace       ColorSpaceKHR
	ImageExtent           Extent2D
	ImageArrayLayers      uint32
	ImageUsage            ImageUsageFlags
	ImageSharingMode      SharingMode
	QueueFamilyIndexCount uint32
	PQueueFamilyIndices   *uint32
	PreTransform          SurfaceTransformFlagsKHR
	CompositeAlpha        CompositeAlphaFlagsKHR
	PresentMode           PresentModeKHR
	Clipped               Bool32
	OldSwapchain          SwapchainKHR
}

type PresentInfoKHR struct {
	SType              StructureType
	_                  uint32
	PNext              unsafe.Pointer
	WaitSemaphoreCount uint32
	_                  uint32
	PWaitSemaphores    *Semaphore
	SwapchainCount     uint32
	_                  uint32
	PSwapchains        *SwapchainKHR
	PImageIndices      *uint32
	PResults           *Result
}

// MakeAPIVersion packs a Vulkan version number.
func MakeAPIVersion(major, minor, patch uint32) uint32 {
	return major<<22 | minor<<12 | patch
}

// APIVersion1_2 is the minimum version the engine targets.
var APIVersion1_2 = MakeAPIVersion(1, 2, 0)
