// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package window

import (
	"fmt"
	"image"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/forge/gpu"
	"github.com/gogpu/forge/scene"
)

// CreateMaterial uploads img as the diffuse texture of a new material and
// binds it, with a linear repeat sampler, against the window's material
// layout.
func (w *RenderWindow) CreateMaterial(name string, img image.Image) (*scene.Material, error) {
	pixels, width, height := scene.RGBAPixels(img)
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("material %q: empty image", name)
	}

	tex, err := w.device.CreateTexture(&gpu.TextureDescriptor{
		Label:         name + "_diffuse",
		Width:         width,
		Height:        height,
		MipLevelCount: 1,
		SampleCount:   1,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("material %q: create texture: %w", name, err)
	}
	if err := w.device.Queue().WriteTexture(tex, pixels, width*4); err != nil {
		tex.Destroy()
		return nil, fmt.Errorf("material %q: upload texture: %w", name, err)
	}

	view, err := tex.CreateView()
	if err != nil {
		tex.Destroy()
		return nil, fmt.Errorf("material %q: create view: %w", name, err)
	}

	sampler, err := w.device.CreateSampler(&gpu.SamplerDescriptor{
		Label:        name + "_sampler",
		AddressModeU: gputypes.AddressModeRepeat,
		AddressModeV: gputypes.AddressModeRepeat,
		AddressModeW: gputypes.AddressModeRepeat,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeLinear,
	})
	if err != nil {
		view.Destroy()
		tex.Destroy()
		return nil, fmt.Errorf("material %q: create sampler: %w", name, err)
	}

	group, err := w.device.CreateBindGroup(&gpu.BindGroupDescriptor{
		Label:  name + "_material_group",
		Layout: w.materialLayout,
		Entries: []gpu.BindGroupEntry{
			{Binding: 0, TextureView: view},
			{Binding: 1, Sampler: sampler},
		},
	})
	if err != nil {
		sampler.Destroy()
		view.Destroy()
		tex.Destroy()
		return nil, fmt.Errorf("material %q: create bind group: %w", name, err)
	}

	return &scene.Material{Name: name, BindGroup: group, Diffuse: tex}, nil
}

// CreateMesh uploads vertex and index data into fresh GPU buffers and
// returns the mesh record referencing them.
func (w *RenderWindow) CreateMesh(name string, vertices []scene.Vertex, indices []uint32, materialIndex int) (*scene.Mesh, error) {
	vb, err := w.device.CreateBufferInit(name+"_vertices", scene.VertexBytes(vertices), gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return nil, fmt.Errorf("mesh %q: create vertex buffer: %w", name, err)
	}
	ib, err := w.device.CreateBufferInit(name+"_indices", scene.IndexBytes(indices), gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst)
	if err != nil {
		vb.Destroy()
		return nil, fmt.Errorf("mesh %q: create index buffer: %w", name, err)
	}
	return &scene.Mesh{
		Name:          name,
		VertexBuffer:  vb,
		IndexBuffer:   ib,
		NumElements:   uint32(len(indices)),
		MaterialIndex: materialIndex,
	}, nil
}

// CreateInstanceBuffer uploads instance transforms into a vertex buffer
// suitable for binding at slot 1 alongside a mesh.
func (w *RenderWindow) CreateInstanceBuffer(label string, instances []scene.Instance) (gpu.Buffer, error) {
	buf, err := w.device.CreateBufferInit(label, scene.InstanceBytes(instances), gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return nil, fmt.Errorf("create instance buffer %q: %w", label, err)
	}
	return buf, nil
}
