// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package command provides types for recording deferred graphics operations.
//
// The command system decouples "what to draw" from "when it hits the GPU" by
// capturing drawing operations as typed command structures instead of
// immediate device calls. Commands are stored in a Queue and later replayed
// in insertion order against a live render pass encoder.
//
// Design follows a closed tagged union: each operation is a small value
// struct implementing Command, dispatched via exhaustive type switch at
// replay time. Typed structs were chosen over a packed binary encoding for
// inspectability — a recorded frame can be printed and diffed in tests.
//
// Resource handles (pipelines, bind groups, buffers) are held by ordinary
// Go references inside the command structs, so a command keeps its resources
// alive across the deferred replay even after the caller's locals are gone.
//
// # Example
//
//	q := command.NewQueue()
//	q.PushDraw(command.SetPipelineCommand{Pipeline: pipeline})
//	q.PushDraw(command.DrawCommand{
//		Vertices:  command.Range{End: 3},
//		Instances: command.Range{End: 1},
//	})
//	// later: replay q.Draw() against a gpu.RenderPassEncoder
package command

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/forge/gpu"
)

// Type identifies the kind of a command.
type Type uint8

const (
	// State commands
	CmdSetPipeline         Type = iota // Bind a render pipeline
	CmdSetBindGroup                    // Bind a bind group at a slot
	CmdSetBlendConstant                // Set the constant blend color
	CmdSetIndexBuffer                  // Bind the index buffer
	CmdSetVertexBuffer                 // Bind a vertex buffer at a slot
	CmdSetScissorRect                  // Set the scissor rectangle
	CmdSetViewport                     // Set the viewport
	CmdSetStencilReference             // Set the stencil reference value

	// Draw commands
	CmdDraw                // Non-indexed draw
	CmdDrawIndexed         // Indexed draw
	CmdDrawIndirect        // Indirect draw
	CmdDrawIndexedIndirect // Indirect indexed draw

	// Debug commands
	CmdInsertDebugMarker // Insert a debug label
	CmdPushDebugGroup    // Open a debug group
	CmdPopDebugGroup     // Close a debug group

	// CmdExecuteBundles is reserved for render bundle replay.
	// No bundle type exists yet; recording one is rejected at replay.
	CmdExecuteBundles

	// Transfer commands (replayed before the render pass opens)
	CmdCopyBufferToBuffer // Buffer-to-buffer copy
)

// typeNames maps Type values to their string representation.
var typeNames = [...]string{
	CmdSetPipeline:         "SetPipeline",
	CmdSetBindGroup:        "SetBindGroup",
	CmdSetBlendConstant:    "SetBlendConstant",
	CmdSetIndexBuffer:      "SetIndexBuffer",
	CmdSetVertexBuffer:     "SetVertexBuffer",
	CmdSetScissorRect:      "SetScissorRect",
	CmdSetViewport:         "SetViewport",
	CmdSetStencilReference: "SetStencilReference",
	CmdDraw:                "Draw",
	CmdDrawIndexed:         "DrawIndexed",
	CmdDrawIndirect:        "DrawIndirect",
	CmdDrawIndexedIndirect: "DrawIndexedIndirect",
	CmdInsertDebugMarker:   "InsertDebugMarker",
	CmdPushDebugGroup:      "PushDebugGroup",
	CmdPopDebugGroup:       "PopDebugGroup",
	CmdExecuteBundles:      "ExecuteBundles",
	CmdCopyBufferToBuffer:  "CopyBufferToBuffer",
}

// String returns the string representation of a Type.
func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "Unknown"
}

// Command is the interface implemented by all command types.
// Commands are stateless value records: replay order equals insertion
// order, and no command mutates another.
type Command interface {
	// Type returns the Type for this command.
	Type() Type
}

// Range is a half-open [Start, End) range of vertex, index, or instance
// numbers, mirroring the count/first pairs of the underlying draw calls.
type Range struct {
	Start uint32
	End   uint32
}

// Count returns the number of elements in the range.
func (r Range) Count() uint32 {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start
}

// String formats the range in half-open notation.
func (r Range) String() string { return fmt.Sprintf("%d..%d", r.Start, r.End) }

// --------------------------------------------------------------------------
// State Commands
// --------------------------------------------------------------------------

// SetPipelineCommand binds a render pipeline.
type SetPipelineCommand struct {
	// Pipeline is the pipeline to bind.
	Pipeline gpu.RenderPipeline
}

// Type implements Command.
func (SetPipelineCommand) Type() Type { return CmdSetPipeline }

// SetBindGroupCommand binds a bind group at a numeric slot.
type SetBindGroupCommand struct {
	// Slot is the bind group index the pipeline layout expects.
	Slot uint32
	// Group is the bind group to bind.
	Group gpu.BindGroup
	// Offsets are optional dynamic offsets. Nil means none.
	Offsets []uint32
}

// Type implements Command.
func (SetBindGroupCommand) Type() Type { return CmdSetBindGroup }

// SetBlendConstantCommand sets the constant blend color.
type SetBlendConstantCommand struct {
	// Color is the blend constant.
	Color gputypes.Color
}

// Type implements Command.
func (SetBlendConstantCommand) Type() Type { return CmdSetBlendConstant }

// SetIndexBufferCommand binds the index buffer for indexed draws.
type SetIndexBufferCommand struct {
	// Buffer is the index buffer.
	Buffer gpu.Buffer
	// Format is the index element format.
	Format gputypes.IndexFormat
}

// Type implements Command.
func (SetIndexBufferCommand) Type() Type { return CmdSetIndexBuffer }

// SetVertexBufferCommand binds a vertex buffer at a slot.
type SetVertexBufferCommand struct {
	// Slot is the vertex buffer slot.
	Slot uint32
	// Buffer is the vertex buffer.
	Buffer gpu.Buffer
}

// Type implements Command.
func (SetVertexBufferCommand) Type() Type { return CmdSetVertexBuffer }

// SetScissorRectCommand restricts rendering to a rectangle.
type SetScissorRectCommand struct {
	X, Y          uint32
	Width, Height uint32
}

// Type implements Command.
func (SetScissorRectCommand) Type() Type { return CmdSetScissorRect }

// SetViewportCommand sets the viewport transform.
type SetViewportCommand struct {
	X, Y          float32
	Width, Height float32
	MinDepth      float32
	MaxDepth      float32
}

// Type implements Command.
func (SetViewportCommand) Type() Type { return CmdSetViewport }

// SetStencilReferenceCommand sets the stencil reference value.
type SetStencilReferenceCommand struct {
	// Reference is the stencil reference value.
	Reference uint32
}

// Type implements Command.
func (SetStencilReferenceCommand) Type() Type { return CmdSetStencilReference }

// --------------------------------------------------------------------------
// Draw Commands
// --------------------------------------------------------------------------

// DrawCommand draws non-indexed primitives.
type DrawCommand struct {
	// Vertices is the range of vertex numbers to draw.
	Vertices Range
	// Instances is the range of instance numbers to draw.
	Instances Range
}

// Type implements Command.
func (DrawCommand) Type() Type { return CmdDraw }

// DrawIndexedCommand draws indexed primitives.
type DrawIndexedCommand struct {
	// Indices is the range of index numbers to draw.
	Indices Range
	// BaseVertex is added to each index before vertex fetch.
	BaseVertex int32
	// Instances is the range of instance numbers to draw.
	Instances Range
}

// Type implements Command.
func (DrawIndexedCommand) Type() Type { return CmdDrawIndexed }

// DrawIndirectCommand draws with parameters read from a buffer.
type DrawIndirectCommand struct {
	// Buffer holds the draw parameters.
	Buffer gpu.Buffer
	// Offset is the byte offset of the parameters in Buffer.
	Offset uint64
}

// Type implements Command.
func (DrawIndirectCommand) Type() Type { return CmdDrawIndirect }

// DrawIndexedIndirectCommand draws indexed with parameters read from a
// buffer.
type DrawIndexedIndirectCommand struct {
	// Buffer holds the draw parameters.
	Buffer gpu.Buffer
	// Offset is the byte offset of the parameters in Buffer.
	Offset uint64
}

// Type implements Command.
func (DrawIndexedIndirectCommand) Type() Type { return CmdDrawIndexedIndirect }

// --------------------------------------------------------------------------
// Debug Commands
// --------------------------------------------------------------------------

// InsertDebugMarkerCommand inserts a label into the command stream.
type InsertDebugMarkerCommand struct {
	// Label is the marker text.
	Label string
}

// Type implements Command.
func (InsertDebugMarkerCommand) Type() Type { return CmdInsertDebugMarker }

// PushDebugGroupCommand opens a named group in the command stream.
type PushDebugGroupCommand struct {
	// Label is the group name.
	Label string
}

// Type implements Command.
func (PushDebugGroupCommand) Type() Type { return CmdPushDebugGroup }

// PopDebugGroupCommand closes the most recent debug group.
type PopDebugGroupCommand struct{}

// Type implements Command.
func (PopDebugGroupCommand) Type() Type { return CmdPopDebugGroup }

// ExecuteBundlesCommand is reserved for render bundle replay.
// Replaying it returns an error until bundles exist.
type ExecuteBundlesCommand struct{}

// Type implements Command.
func (ExecuteBundlesCommand) Type() Type { return CmdExecuteBundles }

// --------------------------------------------------------------------------
// Transfer Commands
// --------------------------------------------------------------------------

// CopyBufferToBufferCommand copies a byte range between buffers.
// Transfer commands are replayed against the command encoder before the
// render pass opens; copies are illegal inside an active pass.
type CopyBufferToBufferCommand struct {
	// Src is the source buffer.
	Src gpu.Buffer
	// SrcOffset is the byte offset into Src.
	SrcOffset uint64
	// Dst is the destination buffer.
	Dst gpu.Buffer
	// DstOffset is the byte offset into Dst.
	DstOffset uint64
	// Size is the number of bytes to copy.
	Size uint64
}

// Type implements Command.
func (CopyBufferToBufferCommand) Type() Type { return CmdCopyBufferToBuffer }
