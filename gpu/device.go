// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// Device creates GPU resources and command encoders.
//
// All Create methods are safe for concurrent use. Handles returned from a
// Device stay valid until their Destroy method is called, regardless of how
// many recorded commands still reference them.
type Device interface {
	// CreateBuffer creates a GPU buffer. The buffer contents are undefined
	// until written via Queue.WriteBuffer or a copy command.
	CreateBuffer(desc *BufferDescriptor) (Buffer, error)

	// CreateBufferInit creates a buffer and uploads data in one step.
	// The buffer size is len(data) rounded up to copy alignment.
	CreateBufferInit(label string, data []byte, usage gputypes.BufferUsage) (Buffer, error)

	// CreateTexture creates a GPU texture.
	CreateTexture(desc *TextureDescriptor) (Texture, error)

	// CreateSampler creates a texture sampler.
	CreateSampler(desc *SamplerDescriptor) (Sampler, error)

	// CreateShaderModule compiles WGSL source into a shader module.
	CreateShaderModule(desc *ShaderModuleDescriptor) (ShaderModule, error)

	// CreateBindGroupLayout creates a layout describing a set of bindings.
	CreateBindGroupLayout(desc *BindGroupLayoutDescriptor) (BindGroupLayout, error)

	// CreatePipelineLayout creates a pipeline layout from bind group layouts.
	// The slice index is the bind group slot the layout occupies.
	CreatePipelineLayout(desc *PipelineLayoutDescriptor) (PipelineLayout, error)

	// CreateBindGroup binds concrete resources to a layout.
	CreateBindGroup(desc *BindGroupDescriptor) (BindGroup, error)

	// CreateRenderPipeline creates a render pipeline.
	CreateRenderPipeline(desc *RenderPipelineDescriptor) (RenderPipeline, error)

	// CreateCommandEncoder creates a command encoder for one frame's worth
	// of GPU work.
	CreateCommandEncoder(label string) (CommandEncoder, error)

	// Queue returns the device's submission queue.
	Queue() Queue

	// Info reports the adapter backing this device.
	Info() DeviceInfo

	// Destroy releases the device and all resources still alive on it.
	Destroy()
}

// Queue submits finished command buffers and performs direct writes.
type Queue interface {
	// Submit submits command buffers for execution in order.
	// It blocks until the GPU has consumed them.
	Submit(buffers []CommandBuffer) error

	// WriteBuffer schedules a write of data into buf at offset before the
	// next submit.
	WriteBuffer(buf Buffer, offset uint64, data []byte) error

	// WriteTexture uploads tightly packed pixel rows into mip level 0 of
	// tex. bytesPerRow is the stride of one row in data.
	WriteTexture(tex Texture, data []byte, bytesPerRow uint32) error
}

// DeviceInfo identifies the adapter a Device runs on.
type DeviceInfo struct {
	// Name is the adapter name as reported by the driver.
	Name string

	// Backend is the underlying graphics API.
	Backend gputypes.Backend

	// DeviceType distinguishes discrete, integrated, and software adapters.
	DeviceType gputypes.DeviceType
}

// DeviceProvider supplies an externally owned GPU device to the engine.
//
// A host application that already holds a device (for example a UI toolkit
// sharing one GPU context across renderers) implements DeviceProvider and
// passes it in through window options, so the engine attaches to the shared
// device instead of opening its own.
//
// DeviceProvider is an alias for gpucontext.DeviceProvider so forge plugs
// into the gpucontext ecosystem without an adapter layer.
type DeviceProvider = gpucontext.DeviceProvider

// NullDeviceProvider is a DeviceProvider with no device. Passing it (or nil)
// makes the engine open its own device.
type NullDeviceProvider struct{}

// Device returns nil for the null provider.
func (NullDeviceProvider) Device() gpucontext.Device { return nil }

// Queue returns nil for the null provider.
func (NullDeviceProvider) Queue() gpucontext.Queue { return nil }

// Adapter returns nil for the null provider.
func (NullDeviceProvider) Adapter() gpucontext.Adapter { return nil }

// SurfaceFormat returns undefined format for the null provider.
func (NullDeviceProvider) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

// AdapterInfo returns unknown adapter metadata for the null provider.
func (NullDeviceProvider) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Type: gpucontext.AdapterTypeUnknown}
}

var _ DeviceProvider = NullDeviceProvider{}
