// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scene

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/forge/command"
	"github.com/gogpu/forge/gpu"
)

// The helpers below expand high-level draw requests into the primitive
// command sequence the replay engine consumes. They are pure: no GPU calls,
// no state — just command construction. The caller owns pipeline selection
// and prepends its own SetPipeline.
//
// Bind group slots are fixed by convention: material at 0, camera at 1,
// light at 2 for lit geometry; camera at 0, light at 1 for the light
// source's own debug geometry (which has no material).

// MeshCommands expands one instanced mesh draw: bind vertex buffer slot 0,
// bind the index buffer, bind material/camera/light groups at slots 0/1/2,
// then one indexed draw over the instance range.
func MeshCommands(mesh *Mesh, material *Material, camera, light gpu.BindGroup, instances command.Range) []command.Command {
	return []command.Command{
		command.SetVertexBufferCommand{Slot: 0, Buffer: mesh.VertexBuffer},
		command.SetIndexBufferCommand{Buffer: mesh.IndexBuffer, Format: gputypes.IndexFormatUint32},
		command.SetBindGroupCommand{Slot: 0, Group: material.BindGroup},
		command.SetBindGroupCommand{Slot: 1, Group: camera},
		command.SetBindGroupCommand{Slot: 2, Group: light},
		command.DrawIndexedCommand{
			Indices:   command.Range{Start: 0, End: mesh.NumElements},
			Instances: instances,
		},
	}
}

// ModelCommands expands an instanced model draw: one MeshCommands sequence
// per mesh, in mesh order, each looking up its material by index.
// A mesh referencing a nonexistent material panics; that invariant belongs
// to Model construction.
func ModelCommands(model *Model, camera, light gpu.BindGroup, instances command.Range) []command.Command {
	cmds := make([]command.Command, 0, len(model.Meshes)*6)
	for i := range model.Meshes {
		mesh := &model.Meshes[i]
		material := &model.Materials[mesh.MaterialIndex]
		cmds = append(cmds, MeshCommands(mesh, material, camera, light, instances)...)
	}
	return cmds
}

// LightMeshCommands expands an instanced mesh draw for the light source's
// own geometry, which uses no material: camera at slot 0, light at slot 1.
func LightMeshCommands(mesh *Mesh, camera, light gpu.BindGroup, instances command.Range) []command.Command {
	return []command.Command{
		command.SetVertexBufferCommand{Slot: 0, Buffer: mesh.VertexBuffer},
		command.SetIndexBufferCommand{Buffer: mesh.IndexBuffer, Format: gputypes.IndexFormatUint32},
		command.SetBindGroupCommand{Slot: 0, Group: camera},
		command.SetBindGroupCommand{Slot: 1, Group: light},
		command.DrawIndexedCommand{
			Indices:   command.Range{Start: 0, End: mesh.NumElements},
			Instances: instances,
		},
	}
}

// LightModelCommands expands an instanced light-geometry model draw, one
// LightMeshCommands sequence per mesh in mesh order.
func LightModelCommands(model *Model, camera, light gpu.BindGroup, instances command.Range) []command.Command {
	cmds := make([]command.Command, 0, len(model.Meshes)*5)
	for i := range model.Meshes {
		cmds = append(cmds, LightMeshCommands(&model.Meshes[i], camera, light, instances)...)
	}
	return cmds
}
