// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scene

import "github.com/gogpu/forge/gpu"

// Material is the per-surface shading input of a mesh: a bind group holding
// the diffuse texture, its sampler, and any material uniforms, bound at
// group slot 0 by the drawing helpers.
type Material struct {
	// Name identifies the material for debugging.
	Name string

	// BindGroup is the material's resource binding.
	BindGroup gpu.BindGroup

	// Diffuse is the diffuse texture, kept so the material pins it alive.
	Diffuse gpu.Texture
}

// Mesh is one drawable chunk of geometry: packed vertex and index buffers
// plus the material it uses.
type Mesh struct {
	// Name identifies the mesh for debugging.
	Name string

	// VertexBuffer holds packed Vertex records.
	VertexBuffer gpu.Buffer

	// IndexBuffer holds uint32 indices.
	IndexBuffer gpu.Buffer

	// NumElements is the index count drawn per instance.
	NumElements uint32

	// MaterialIndex is the index into the owning Model's Materials.
	// Validity is a construction-time precondition: the drawing helpers
	// index without checking and panic on out-of-range.
	MaterialIndex int
}

// Model is a collection of meshes sharing a material list. Meshes reference
// materials by index.
type Model struct {
	Meshes    []Mesh
	Materials []Material
}
