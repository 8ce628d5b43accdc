// Copyright 2025 Coalition of Freeware Developers
// SPDX-License-Identifier: MIT

package sedx

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/gogpu/gputypes"

	"github.com/Coalition-of-Freeware-Developers/Scenery-Editor-X-sub000/hal"
)

// speedOptimizedThreshold: allocations at or above this size use the
// speed-optimized strategy; smaller ones pack tightly.
const speedOptimizedThreshold = 1 << 20 // 1 MiB

// Engine owns the GPU resource and frame-scheduling core: the device and
// queue registry, the typed resource arenas, the bindless descriptor
// table, the render dispatcher with its deferred-destruction ring, the
// per-frame ring and the pipeline-state caches.
//
// All state lives on the Engine value; there are no process-wide
// singletons. Create with Init, dispose with Shutdown.
type Engine struct {
	cfg Config

	backend  hal.Backend
	instance hal.Instance
	device   hal.Device
	queues   hal.QueueSet
	limits   hal.DeviceLimits
	adapter  gputypes.AdapterInfo

	dispatcher *Dispatcher
	bindless   *BindlessTable
	states     *StateCaches
	transient  *transientRecorder

	buffers arena[Buffer]
	images  arena[Image]

	frames       frameRing
	frameCounter atomic.Uint64

	surface hal.Surface

	lost     atomic.Bool
	shutdown atomic.Bool
}

// Init enumerates adapters, opens the device, builds the bindless table,
// the dispatcher, the per-frame ring and the state caches, and loads the
// persisted pipeline cache when configured.
//
// Initialization failures are unrecoverable: on error, no Engine is
// constructed and nothing leaks.
func Init(cfg Config) (*Engine, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	var backend hal.Backend
	if cfg.Backend != 0 {
		b, ok := hal.GetBackend(cfg.Backend)
		if !ok {
			return nil, hal.ErrBackendNotFound
		}
		backend = b
	} else {
		b, ok := hal.DefaultBackend()
		if !ok {
			return nil, hal.ErrBackendNotFound
		}
		backend = b
	}

	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{
		AppName:    cfg.AppName,
		Validation: cfg.Validation,
	})
	if err != nil {
		return nil, fmt.Errorf("sedx: instance: %w", err)
	}

	exposed, err := selectAdapter(instance.EnumerateAdapters(), cfg.PreferIntegratedGPU)
	if err != nil {
		instance.Destroy()
		return nil, err
	}
	hal.Logger().Info("adapter selected",
		"component", "device",
		"name", exposed.Info.Name,
		"vendor", exposed.Info.Vendor,
		"driver", exposed.Info.Driver,
		"type", exposed.Info.DeviceType)

	open, err := exposed.Adapter.Open()
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("sedx: device: %w", err)
	}

	e := &Engine{
		cfg:      cfg,
		backend:  backend,
		instance: instance,
		device:   open.Device,
		queues:   open.Queues,
		limits:   open.Device.Limits(),
		adapter:  exposed.Info,
	}

	e.bindless, err = newBindlessTable(e.device, hal.BindlessCapacities{
		SampledImages:  cfg.MaxSampledImages,
		Samplers:       cfg.MaxSamplers,
		StorageImages:  cfg.MaxStorageImages,
		StorageBuffers: cfg.MaxStorageBuffers,
		UniformBuffers: cfg.MaxUniformBuffers,
	})
	if err != nil {
		e.device.Destroy()
		instance.Destroy()
		return nil, fmt.Errorf("sedx: bindless: %w", err)
	}

	e.dispatcher = NewDispatcher()
	e.dispatcher.Init(cfg.FramesInFlight)
	e.states = newStateCaches(e.device, e.bindless)
	e.transient = newTransientRecorder(e.device)

	if err := e.initFrameRing(); err != nil {
		e.destroyFrameRing()
		e.buffers.Drain(func(rec Buffer) { e.releaseBuffer(rec) })
		e.dispatcher.Shutdown()
		e.states.destroy()
		e.transient.destroy()
		e.bindless.destroy()
		e.device.Destroy()
		instance.Destroy()
		return nil, err
	}

	if cfg.PipelineCachePath != "" {
		if blob, err := readPipelineCacheBlob(cfg.PipelineCachePath); err == nil && len(blob) > 0 {
			// The driver may reject the blob without error; it is advisory.
			if err := e.device.LoadPipelineCache(blob); err != nil {
				hal.Logger().Warn("pipeline cache rejected",
					"component", "device", "path", cfg.PipelineCachePath, "error", err)
			}
		}
	}

	return e, nil
}

// selectAdapter filters and orders the enumerated adapters: discrete
// preferred (unless inverted), integrated accepted with a warning,
// anything else last.
func selectAdapter(adapters []hal.ExposedAdapter, preferIntegrated bool) (hal.ExposedAdapter, error) {
	if len(adapters) == 0 {
		return hal.ExposedAdapter{}, ErrNoAdapter
	}

	best := -1
	bestScore := -1
	for i, a := range adapters {
		score := 0
		switch a.Info.DeviceType {
		case gputypes.DeviceTypeDiscreteGPU:
			score = 3
		case gputypes.DeviceTypeIntegratedGPU:
			score = 2
		default:
			score = 1
		}
		if preferIntegrated && a.Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			score = 4
		}
		if score > bestScore {
			best, bestScore = i, score
		}
	}

	chosen := adapters[best]
	if !preferIntegrated && chosen.Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
		hal.Logger().Warn("no discrete adapter available, falling back to integrated",
			"component", "device", "name", chosen.Info.Name)
	}
	return chosen, nil
}

// AdapterInfo reports the chosen adapter's vendor, name, driver and API
// version.
func (e *Engine) AdapterInfo() gputypes.AdapterInfo { return e.adapter }

// Dispatcher exposes the render-thread dispatcher.
func (e *Engine) Dispatcher() *Dispatcher { return e.dispatcher }

// Bindless exposes the bindless descriptor table.
func (e *Engine) Bindless() *BindlessTable { return e.bindless }

// States exposes the pipeline-state caches.
func (e *Engine) States() *StateCaches { return e.states }

// Device exposes the HAL device for recording paths that need it.
func (e *Engine) Device() hal.Device { return e.device }

// Queue returns the opened queue for kind. Submissions through it are
// serialized by the backend's per-queue mutex.
func (e *Engine) Queue(kind hal.QueueKind) hal.Queue { return e.queues.Queue(kind) }

// IsLost reports whether the engine has latched into the device-lost
// state.
func (e *Engine) IsLost() bool { return e.lost.Load() }

func (e *Engine) markLost() {
	if e.lost.CompareAndSwap(false, true) {
		hal.Logger().Error("device lost; engine accepts only Shutdown",
			"component", "device", "adapter", e.adapter.Name)
	}
}

func isDeviceLost(err error) bool {
	return errors.Is(err, hal.ErrDeviceLost)
}

// allocStrategy picks the suballocator strategy by size: large
// allocations favor speed, small ones favor packing.
func (e *Engine) allocStrategy(size uint64) hal.AllocationStrategy {
	if size >= speedOptimizedThreshold {
		return hal.StrategySpeedOptimized
	}
	return hal.StrategyMemoryOptimized
}

// AttachSurface creates and configures a presentation surface from raw
// platform handles. Window-system integration beyond this call lives
// outside the core.
func (e *Engine) AttachSurface(displayHandle, windowHandle uintptr, width, height uint32) error {
	surface, err := e.instance.CreateSurface(displayHandle, windowHandle)
	if err != nil {
		return fmt.Errorf("sedx: surface: %w", err)
	}
	if err := surface.Configure(width, height, e.cfg.EnableVsync); err != nil {
		surface.Destroy()
		return fmt.Errorf("sedx: surface: %w", err)
	}
	e.surface = surface
	return nil
}

// AcquireSurfaceFrame obtains the next swapchain image, signaling the
// current slot's image-acquired semaphore. ErrSurfaceOutOfDate means the
// surface must be reconfigured.
func (e *Engine) AcquireSurfaceFrame(timeoutNs uint64) (hal.SurfaceFrame, error) {
	if e.surface == nil {
		return hal.SurfaceFrame{}, fmt.Errorf("sedx: %w: no surface attached", ErrNotInitialized)
	}
	if e.lost.Load() {
		return hal.SurfaceFrame{}, ErrDeviceLost
	}
	slot := e.frames.currentSlot()
	frame, err := e.surface.Acquire(slot.imageAcquired, timeoutNs)
	if errors.Is(err, hal.ErrSurfaceOutdated) {
		return hal.SurfaceFrame{}, ErrSurfaceOutOfDate
	}
	return frame, err
}

// Flush blocks until the dispatcher's job FIFO is empty.
func (e *Engine) Flush() { e.dispatcher.Flush() }

// Shutdown tears the engine down: the dispatcher drains and joins, every
// deferred bucket executes, live arena records release their native
// objects, the pipeline-cache blob is persisted and the device closes.
// Shutdown succeeds even in the device-lost state. Idempotent.
func (e *Engine) Shutdown() {
	if !e.shutdown.CompareAndSwap(false, true) {
		return
	}

	// Finish outstanding CPU work, then wait out the GPU unless lost.
	e.dispatcher.Flush()
	if !e.lost.Load() {
		_ = e.device.WaitIdle()
	}

	// Release the frame ring and every live record: the destroys
	// schedule into the free ring...
	e.destroyFrameRing()
	e.buffers.Drain(func(rec Buffer) { e.releaseBuffer(rec) })
	e.images.Drain(func(rec Image) { e.releaseImage(rec) })

	// ...and Shutdown drains every remaining bucket synchronously.
	e.dispatcher.Shutdown()

	if e.cfg.PipelineCachePath != "" && !e.lost.Load() {
		if blob, err := e.device.PipelineCacheData(); err == nil && len(blob) > 0 {
			if err := writePipelineCacheBlob(e.cfg.PipelineCachePath, blob); err != nil {
				hal.Logger().Warn("pipeline cache not persisted",
					"component", "device", "path", e.cfg.PipelineCachePath, "error", err)
			}
		}
	}

	e.states.destroy()
	e.transient.destroy()
	e.bindless.destroy()
	if e.surface != nil {
		e.surface.Destroy()
		e.surface = nil
	}
	e.device.Destroy()
	e.instance.Destroy()

	hal.Logger().Info("engine shut down", "component", "engine")
}
