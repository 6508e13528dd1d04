// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package scene holds the geometry records the engine draws: vertices,
// instances, meshes, materials, and models, plus the pure helpers that
// expand a high-level "draw this model" request into primitive commands.
//
// Everything here is a plain value wrapping GPU handles created elsewhere.
// The package performs no device calls; buffers and bind groups arrive
// already built and are treated as immutable.
package scene

import (
	"math"

	"github.com/gogpu/gputypes"
)

// Vertex is one mesh vertex: position, texture coordinates, and normal,
// matching shader locations 0, 1, and 2.
type Vertex struct {
	Position  [3]float32
	TexCoords [2]float32
	Normal    [3]float32
}

// VertexStride is the packed size of one Vertex in bytes.
const VertexStride = 32

// VertexLayout returns the vertex buffer layout for Vertex, bound at
// shader locations 0..2.
func VertexLayout() gputypes.VertexBufferLayout {
	return gputypes.VertexBufferLayout{
		ArrayStride: VertexStride,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: gputypes.VertexFormatFloat32x2, Offset: 12, ShaderLocation: 1},
			{Format: gputypes.VertexFormatFloat32x3, Offset: 20, ShaderLocation: 2},
		},
	}
}

// VertexBytes packs vertices into the little-endian layout VertexLayout
// describes, ready for a vertex buffer upload.
func VertexBytes(vertices []Vertex) []byte {
	out := make([]byte, 0, len(vertices)*VertexStride)
	for i := range vertices {
		v := &vertices[i]
		out = appendFloats(out, v.Position[:])
		out = appendFloats(out, v.TexCoords[:])
		out = appendFloats(out, v.Normal[:])
	}
	return out
}

// IndexBytes packs 32-bit indices little-endian for an index buffer upload.
func IndexBytes(indices []uint32) []byte {
	out := make([]byte, 0, len(indices)*4)
	for _, idx := range indices {
		out = append(out, byte(idx), byte(idx>>8), byte(idx>>16), byte(idx>>24))
	}
	return out
}

// Instance is one instance transform: a 4x4 model matrix and the 3x3 normal
// matrix derived from it, in column-major order. Instance data steps per
// instance at shader locations 5..11 (four vec4 columns, three vec3
// columns).
type Instance struct {
	Model  [16]float32
	Normal [9]float32
}

// InstanceStride is the packed size of one Instance in bytes.
const InstanceStride = 100

// InstanceLayout returns the instance-stepped vertex buffer layout for
// Instance, bound at shader locations 5..11.
func InstanceLayout() gputypes.VertexBufferLayout {
	return gputypes.VertexBufferLayout{
		ArrayStride: InstanceStride,
		StepMode:    gputypes.VertexStepModeInstance,
		Attributes: []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormatFloat32x4, Offset: 0, ShaderLocation: 5},
			{Format: gputypes.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 6},
			{Format: gputypes.VertexFormatFloat32x4, Offset: 32, ShaderLocation: 7},
			{Format: gputypes.VertexFormatFloat32x4, Offset: 48, ShaderLocation: 8},
			{Format: gputypes.VertexFormatFloat32x3, Offset: 64, ShaderLocation: 9},
			{Format: gputypes.VertexFormatFloat32x3, Offset: 76, ShaderLocation: 10},
			{Format: gputypes.VertexFormatFloat32x3, Offset: 88, ShaderLocation: 11},
		},
	}
}

// InstanceBytes packs instances little-endian per InstanceLayout.
func InstanceBytes(instances []Instance) []byte {
	out := make([]byte, 0, len(instances)*InstanceStride)
	for i := range instances {
		inst := &instances[i]
		out = appendFloats(out, inst.Model[:])
		out = appendFloats(out, inst.Normal[:])
	}
	return out
}

func appendFloats(dst []byte, vals []float32) []byte {
	for _, f := range vals {
		bits := math.Float32bits(f)
		dst = append(dst, byte(bits), byte(bits>>8), byte(bits>>16), byte(bits>>24))
	}
	return dst
}
