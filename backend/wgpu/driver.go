// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"

	"github.com/gogpu/forge/backend"
	"github.com/gogpu/forge/gpu"
)

func init() {
	backend.Register(backend.DriverWGPU, func() backend.Driver { return &Driver{} })
}

// Driver opens devices through the wgpu hal Vulkan backend.
type Driver struct{}

// Name returns the registry name.
func (*Driver) Name() string { return backend.DriverWGPU }

// Available reports whether the Vulkan hal backend is present.
func (*Driver) Available() bool {
	_, ok := hal.GetBackend(gputypes.BackendVulkan)
	return ok
}

// Open creates an instance, picks the best adapter (discrete first, then
// integrated, then whatever is left), and opens a device on it.
func (*Driver) Open() (gpu.Device, error) {
	halBackend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, fmt.Errorf("wgpu: vulkan backend not available")
	}
	instance, err := halBackend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create instance: %w", err)
	}

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		return nil, fmt.Errorf("wgpu: no GPU adapters found")
	}
	selected := &adapters[0]
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU {
			selected = &adapters[i]
			break
		}
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU &&
			selected.Info.DeviceType != gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
		}
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		return nil, fmt.Errorf("wgpu: open device: %w", err)
	}

	dev := &Device{
		raw:      openDev.Device,
		instance: instance,
		info: gpu.DeviceInfo{
			Name:       selected.Info.Name,
			Backend:    gputypes.BackendVulkan,
			DeviceType: selected.Info.DeviceType,
		},
	}
	dev.queue = &Queue{device: dev, raw: openDev.Queue}
	return dev, nil
}

// CreateSurface creates an offscreen surface on device.
func (*Driver) CreateSurface(device gpu.Device, config *gpu.SurfaceConfig) (gpu.Surface, error) {
	dev, ok := device.(*Device)
	if !ok {
		return nil, fmt.Errorf("wgpu: device is not a wgpu device")
	}
	s := &Surface{device: dev}
	if err := s.Configure(config); err != nil {
		return nil, err
	}
	return s, nil
}
