// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/forge/gpu"
)

// Device implements gpu.Device over a hal device.
type Device struct {
	raw      hal.Device
	instance hal.Instance
	queue    *Queue
	info     gpu.DeviceInfo
}

// Queue implements gpu.Queue over a hal queue.
type Queue struct {
	device *Device
	raw    hal.Queue
}

type buffer struct {
	device *Device
	raw    hal.Buffer
	size   uint64
	usage  gputypes.BufferUsage
}

func (b *buffer) Size() uint64                { return b.size }
func (b *buffer) Usage() gputypes.BufferUsage { return b.usage }
func (b *buffer) Destroy()                    { b.device.raw.DestroyBuffer(b.raw) }

type texture struct {
	device *Device
	raw    hal.Texture
	width  uint32
	height uint32
	format gputypes.TextureFormat
}

func (t *texture) Width() uint32                  { return t.width }
func (t *texture) Height() uint32                 { return t.height }
func (t *texture) Format() gputypes.TextureFormat { return t.format }
func (t *texture) Destroy()                       { t.device.raw.DestroyTexture(t.raw) }

func (t *texture) CreateView() (gpu.TextureView, error) {
	// Zero format and dimension inherit from the texture.
	view, err := t.device.raw.CreateTextureView(t.raw, &hal.TextureViewDescriptor{
		Aspect: gputypes.TextureAspectAll,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create texture view: %w", err)
	}
	return &textureView{device: t.device, raw: view}, nil
}

type textureView struct {
	device *Device
	raw    hal.TextureView
}

func (v *textureView) Destroy() { v.device.raw.DestroyTextureView(v.raw) }

type sampler struct {
	device *Device
	raw    hal.Sampler
}

func (s *sampler) Destroy() { s.device.raw.DestroySampler(s.raw) }

type shaderModule struct {
	device *Device
	raw    hal.ShaderModule
}

func (m *shaderModule) Destroy() { m.device.raw.DestroyShaderModule(m.raw) }

type bindGroupLayout struct {
	device *Device
	raw    hal.BindGroupLayout
}

func (l *bindGroupLayout) Destroy() { l.device.raw.DestroyBindGroupLayout(l.raw) }

type pipelineLayout struct {
	device *Device
	raw    hal.PipelineLayout
}

func (l *pipelineLayout) Destroy() { l.device.raw.DestroyPipelineLayout(l.raw) }

type bindGroup struct {
	device *Device
	raw    hal.BindGroup
}

func (g *bindGroup) Destroy() { g.device.raw.DestroyBindGroup(g.raw) }

type renderPipeline struct {
	device *Device
	raw    hal.RenderPipeline
}

func (p *renderPipeline) Destroy() { p.device.raw.DestroyRenderPipeline(p.raw) }

// commandBuffer is a finished hal command buffer awaiting submit.
type commandBuffer struct {
	raw hal.CommandBuffer
}

// CreateBuffer creates a GPU buffer.
func (d *Device) CreateBuffer(desc *gpu.BufferDescriptor) (gpu.Buffer, error) {
	raw, err := d.raw.CreateBuffer(&hal.BufferDescriptor{
		Label: desc.Label,
		Size:  desc.Size,
		Usage: desc.Usage,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create buffer %q: %w", desc.Label, err)
	}
	return &buffer{device: d, raw: raw, size: desc.Size, usage: desc.Usage}, nil
}

// CreateBufferInit creates a buffer and uploads data in one step. The size
// is rounded up to 4-byte copy alignment.
func (d *Device) CreateBufferInit(label string, data []byte, usage gputypes.BufferUsage) (gpu.Buffer, error) {
	size := (uint64(len(data)) + 3) &^ 3
	buf, err := d.CreateBuffer(&gpu.BufferDescriptor{
		Label: label,
		Size:  size,
		Usage: usage | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}
	if len(data) > 0 {
		if err := d.queue.raw.WriteBuffer(buf.(*buffer).raw, 0, data); err != nil {
			buf.Destroy()
			return nil, fmt.Errorf("wgpu: init buffer %q: %w", label, err)
		}
	}
	return buf, nil
}

// CreateTexture creates a 2D texture.
func (d *Device) CreateTexture(desc *gpu.TextureDescriptor) (gpu.Texture, error) {
	raw, err := d.raw.CreateTexture(&hal.TextureDescriptor{
		Label: desc.Label,
		Size: hal.Extent3D{
			Width:              desc.Width,
			Height:             desc.Height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: desc.MipLevelCount,
		SampleCount:   desc.SampleCount,
		Dimension:     gputypes.TextureDimension2D,
		Format:        desc.Format,
		Usage:         desc.Usage,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create texture %q: %w", desc.Label, err)
	}
	return &texture{device: d, raw: raw, width: desc.Width, height: desc.Height, format: desc.Format}, nil
}

// CreateSampler creates a sampler.
func (d *Device) CreateSampler(desc *gpu.SamplerDescriptor) (gpu.Sampler, error) {
	raw, err := d.raw.CreateSampler(&hal.SamplerDescriptor{
		Label:        desc.Label,
		AddressModeU: desc.AddressModeU,
		AddressModeV: desc.AddressModeV,
		AddressModeW: desc.AddressModeW,
		MagFilter:    desc.MagFilter,
		MinFilter:    desc.MinFilter,
		MipmapFilter: desc.MipmapFilter,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create sampler %q: %w", desc.Label, err)
	}
	return &sampler{device: d, raw: raw}, nil
}

// CreateShaderModule compiles WGSL to SPIR-V through naga and wraps the
// resulting hal module.
func (d *Device) CreateShaderModule(desc *gpu.ShaderModuleDescriptor) (gpu.ShaderModule, error) {
	spirv, err := compileWGSL(desc.WGSL)
	if err != nil {
		return nil, fmt.Errorf("wgpu: compile shader %q: %w", desc.Label, err)
	}
	raw, err := d.raw.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  desc.Label,
		Source: hal.ShaderSource{SPIRV: spirv},
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create shader module %q: %w", desc.Label, err)
	}
	return &shaderModule{device: d, raw: raw}, nil
}

// compileWGSL compiles WGSL source to SPIR-V words (little-endian).
func compileWGSL(source string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(source)
	if err != nil {
		return nil, err
	}
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}

// CreateBindGroupLayout creates a bind group layout.
func (d *Device) CreateBindGroupLayout(desc *gpu.BindGroupLayoutDescriptor) (gpu.BindGroupLayout, error) {
	raw, err := d.raw.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   desc.Label,
		Entries: desc.Entries,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create bind group layout %q: %w", desc.Label, err)
	}
	return &bindGroupLayout{device: d, raw: raw}, nil
}

// CreatePipelineLayout creates a pipeline layout.
func (d *Device) CreatePipelineLayout(desc *gpu.PipelineLayoutDescriptor) (gpu.PipelineLayout, error) {
	layouts := make([]hal.BindGroupLayout, len(desc.BindGroupLayouts))
	for i, l := range desc.BindGroupLayouts {
		layouts[i] = l.(*bindGroupLayout).raw
	}
	raw, err := d.raw.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            desc.Label,
		BindGroupLayouts: layouts,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create pipeline layout %q: %w", desc.Label, err)
	}
	return &pipelineLayout{device: d, raw: raw}, nil
}

// CreateBindGroup binds buffers, texture views, and samplers to a layout.
func (d *Device) CreateBindGroup(desc *gpu.BindGroupDescriptor) (gpu.BindGroup, error) {
	entries := make([]gputypes.BindGroupEntry, len(desc.Entries))
	for i, e := range desc.Entries {
		entry := gputypes.BindGroupEntry{Binding: e.Binding}
		switch {
		case e.Buffer != nil:
			buf := e.Buffer.(*buffer)
			size := e.BufferSize
			if size == 0 {
				size = buf.size - e.Offset
			}
			entry.Resource = gputypes.BufferBinding{
				Buffer: buf.raw.NativeHandle(),
				Offset: e.Offset,
				Size:   size,
			}
		case e.TextureView != nil:
			entry.Resource = gputypes.TextureViewBinding{
				TextureView: e.TextureView.(*textureView).raw.NativeHandle(),
			}
		case e.Sampler != nil:
			entry.Resource = gputypes.SamplerBinding{
				Sampler: e.Sampler.(*sampler).raw.NativeHandle(),
			}
		default:
			return nil, fmt.Errorf("wgpu: bind group %q entry %d has no resource", desc.Label, e.Binding)
		}
		entries[i] = entry
	}

	raw, err := d.raw.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:   desc.Label,
		Layout:  desc.Layout.(*bindGroupLayout).raw,
		Entries: entries,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create bind group %q: %w", desc.Label, err)
	}
	return &bindGroup{device: d, raw: raw}, nil
}

// CreateRenderPipeline creates a render pipeline.
func (d *Device) CreateRenderPipeline(desc *gpu.RenderPipelineDescriptor) (gpu.RenderPipeline, error) {
	halDesc := &hal.RenderPipelineDescriptor{
		Label:  desc.Label,
		Layout: desc.Layout.(*pipelineLayout).raw,
		Vertex: hal.VertexState{
			Module:     desc.Vertex.Module.(*shaderModule).raw,
			EntryPoint: desc.Vertex.EntryPoint,
			Buffers:    desc.Vertex.Buffers,
		},
		Primitive:   desc.Primitive,
		Multisample: desc.Multisample,
	}
	if halDesc.Multisample.Count == 0 {
		halDesc.Multisample = gputypes.MultisampleState{Count: 1, Mask: 0xFFFFFFFF}
	}
	if desc.Fragment != nil {
		halDesc.Fragment = &hal.FragmentState{
			Module:     desc.Fragment.Module.(*shaderModule).raw,
			EntryPoint: desc.Fragment.EntryPoint,
			Targets:    desc.Fragment.Targets,
		}
	}
	if desc.DepthStencil != nil {
		// The engine drives depth only; stencil faces pass through.
		face := hal.StencilFaceState{
			Compare:     gputypes.CompareFunctionAlways,
			FailOp:      hal.StencilOperationKeep,
			DepthFailOp: hal.StencilOperationKeep,
			PassOp:      hal.StencilOperationKeep,
		}
		halDesc.DepthStencil = &hal.DepthStencilState{
			Format:            desc.DepthStencil.Format,
			DepthWriteEnabled: desc.DepthStencil.DepthWriteEnabled,
			DepthCompare:      desc.DepthStencil.DepthCompare,
			StencilFront:      face,
			StencilBack:       face,
			StencilReadMask:   0xFF,
			StencilWriteMask:  0xFF,
		}
	}

	raw, err := d.raw.CreateRenderPipeline(halDesc)
	if err != nil {
		return nil, fmt.Errorf("wgpu: create render pipeline %q: %w", desc.Label, err)
	}
	return &renderPipeline{device: d, raw: raw}, nil
}

// CreateCommandEncoder creates an encoder and begins encoding.
func (d *Device) CreateCommandEncoder(label string) (gpu.CommandEncoder, error) {
	raw, err := d.raw.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: label})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create command encoder %q: %w", label, err)
	}
	if err := raw.BeginEncoding(label); err != nil {
		return nil, fmt.Errorf("wgpu: begin encoding %q: %w", label, err)
	}
	return &commandEncoder{device: d, raw: raw}, nil
}

// Queue returns the device queue.
func (d *Device) Queue() gpu.Queue { return d.queue }

// Info reports the adapter the device runs on.
func (d *Device) Info() gpu.DeviceInfo { return d.info }

// Destroy releases the device.
func (d *Device) Destroy() {
	d.raw.Destroy()
}

// Submit submits command buffers, waits for the GPU to drain, and frees
// them. The hal manages its own internal fences; WaitIdle is the
// synchronization point before the buffers go back to the pool.
func (q *Queue) Submit(buffers []gpu.CommandBuffer) error {
	if len(buffers) == 0 {
		return nil
	}
	halBufs := make([]hal.CommandBuffer, len(buffers))
	for i, b := range buffers {
		cb, ok := b.(*commandBuffer)
		if !ok {
			return fmt.Errorf("wgpu: command buffer %d is not a wgpu command buffer", i)
		}
		halBufs[i] = cb.raw
	}
	defer func() {
		for _, b := range halBufs {
			q.device.raw.FreeCommandBuffer(b)
		}
	}()

	if _, err := q.raw.Submit(halBufs); err != nil {
		return fmt.Errorf("wgpu: submit: %w", err)
	}
	if err := q.device.raw.WaitIdle(); err != nil {
		return fmt.Errorf("wgpu: wait for GPU: %w", err)
	}
	return nil
}

// WriteBuffer writes data to a buffer through the queue's staging path.
func (q *Queue) WriteBuffer(buf gpu.Buffer, offset uint64, data []byte) error {
	b, ok := buf.(*buffer)
	if !ok {
		return fmt.Errorf("wgpu: buffer is not a wgpu buffer")
	}
	if err := q.raw.WriteBuffer(b.raw, offset, data); err != nil {
		return fmt.Errorf("wgpu: write buffer: %w", err)
	}
	return nil
}

// WriteTexture uploads pixel rows into mip level 0 of tex.
func (q *Queue) WriteTexture(tex gpu.Texture, data []byte, bytesPerRow uint32) error {
	t, ok := tex.(*texture)
	if !ok {
		return fmt.Errorf("wgpu: texture is not a wgpu texture")
	}
	err := q.raw.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  t.raw,
			MipLevel: 0,
			Aspect:   gputypes.TextureAspectAll,
		},
		data,
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  bytesPerRow,
			RowsPerImage: t.height,
		},
		&hal.Extent3D{
			Width:              t.width,
			Height:             t.height,
			DepthOrArrayLayers: 1,
		},
	)
	if err != nil {
		return fmt.Errorf("wgpu: write texture: %w", err)
	}
	return nil
}

var (
	_ gpu.Device = (*Device)(nil)
	_ gpu.Queue  = (*Queue)(nil)
)
