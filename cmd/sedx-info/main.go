// Copyright 2025 Coalition of Freeware Developers
// SPDX-License-Identifier: MIT

// Command sedx-info probes the registered backends and reports the
// adapters each one exposes. Useful for diagnosing driver and loader
// problems without starting the editor.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/gogpu/gputypes"

	"github.com/Coalition-of-Freeware-Developers/Scenery-Editor-X-sub000/hal"
	_ "github.com/Coalition-of-Freeware-Developers/Scenery-Editor-X-sub000/hal/noop"
	_ "github.com/Coalition-of-Freeware-Developers/Scenery-Editor-X-sub000/hal/vulkan"
)

func main() {
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	if *verbose {
		hal.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	variants := hal.AvailableBackends()
	fmt.Printf("registered backends: %d\n", len(variants))

	for _, variant := range variants {
		backend, _ := hal.GetBackend(variant)
		fmt.Printf("\nbackend %v:\n", variant)

		instance, err := backend.CreateInstance(&hal.InstanceDescriptor{AppName: "sedx-info"})
		if err != nil {
			fmt.Printf("  unavailable: %v\n", err)
			continue
		}

		adapters := instance.EnumerateAdapters()
		if len(adapters) == 0 {
			fmt.Println("  no adapters")
			instance.Destroy()
			continue
		}
		for _, a := range adapters {
			info := a.Info
			fmt.Printf("  %s (%s)\n", info.Name, info.Vendor)
			fmt.Printf("    type:   %s\n", deviceTypeName(info.DeviceType))
			fmt.Printf("    driver: %s %s\n", info.Driver, info.DriverInfo)
		}
		instance.Destroy()
	}
}

func deviceTypeName(t gputypes.DeviceType) string {
	switch t {
	case gputypes.DeviceTypeDiscreteGPU:
		return "discrete GPU"
	case gputypes.DeviceTypeIntegratedGPU:
		return "integrated GPU"
	case gputypes.DeviceTypeCPU:
		return "CPU"
	}
	return "other"
}
