// Copyright 2025 Coalition of Freeware Developers
// SPDX-License-Identifier: MIT

package sedx

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// Default bindless capacities. These must match the compile-time array
// sizes in the shader set; they are part of the engine/shader ABI.
const (
	DefaultMaxSampledImages  = 4096
	DefaultMaxSamplers       = 512
	DefaultMaxStorageImages  = 512
	DefaultMaxStorageBuffers = 1024
	DefaultMaxUniformBuffers = 256
)

// DefaultStagingSize is the per-frame staging ring capacity.
const DefaultStagingSize = 64 << 20 // 64 MiB

// Config configures Init. The zero value is usable: every field has a
// default applied before the engine is constructed.
type Config struct {
	// FramesInFlight is the ring depth. Valid range 1-4; default 3.
	FramesInFlight uint32

	// Bindless array capacities; minimum 1 each.
	MaxSampledImages  uint32
	MaxSamplers       uint32
	MaxStorageImages  uint32
	MaxStorageBuffers uint32
	MaxUniformBuffers uint32

	// StagingSize is the per-frame staging ring capacity in bytes.
	StagingSize uint64

	// Validation enables the instance validation layer if available.
	Validation bool

	// PreferIntegratedGPU inverts the default adapter preference.
	// By default a discrete adapter is selected when one exists.
	PreferIntegratedGPU bool

	// EnableVsync selects a FIFO present mode for configured surfaces.
	EnableVsync bool

	// Backend overrides backend selection. Zero selects the default
	// (Vulkan when registered, noop otherwise).
	Backend gputypes.Backend

	// PipelineCachePath is where the driver pipeline-cache blob is
	// persisted across runs. Empty disables persistence.
	PipelineCachePath string

	// AppName is reported to the driver.
	AppName string
}

func (c Config) withDefaults() Config {
	if c.FramesInFlight == 0 {
		c.FramesInFlight = 3
	}
	if c.MaxSampledImages == 0 {
		c.MaxSampledImages = DefaultMaxSampledImages
	}
	if c.MaxSamplers == 0 {
		c.MaxSamplers = DefaultMaxSamplers
	}
	if c.MaxStorageImages == 0 {
		c.MaxStorageImages = DefaultMaxStorageImages
	}
	if c.MaxStorageBuffers == 0 {
		c.MaxStorageBuffers = DefaultMaxStorageBuffers
	}
	if c.MaxUniformBuffers == 0 {
		c.MaxUniformBuffers = DefaultMaxUniformBuffers
	}
	if c.StagingSize == 0 {
		c.StagingSize = DefaultStagingSize
	}
	if c.AppName == "" {
		c.AppName = "Scenery Editor X"
	}
	return c
}

func (c Config) validate() error {
	if c.FramesInFlight < 1 || c.FramesInFlight > 4 {
		return fmt.Errorf("sedx: frames in flight %d outside valid range 1-4", c.FramesInFlight)
	}
	return nil
}
