// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import "github.com/gogpu/gputypes"

// CommandEncoder records one frame's worth of GPU work.
//
// An encoder moves through a simple lifecycle: transfer commands and render
// passes are recorded in order, then Finish produces a CommandBuffer for
// Queue.Submit. An encoder is single-use; after Finish it must be discarded.
// Encoders are not safe for concurrent use.
type CommandEncoder interface {
	// BeginRenderPass opens a render pass. Only one pass may be open at a
	// time; the previous pass must be ended first.
	BeginRenderPass(desc *RenderPassDescriptor) (RenderPassEncoder, error)

	// CopyBufferToBuffer records a copy of size bytes between buffers.
	// It must be called outside a render pass.
	CopyBufferToBuffer(src Buffer, srcOffset uint64, dst Buffer, dstOffset, size uint64) error

	// Finish ends recording and returns the submittable command buffer.
	Finish() (CommandBuffer, error)
}

// RenderPassEncoder records commands within one render pass.
//
// Pipeline, bind group, and buffer bindings are sticky: once set they apply
// to every subsequent draw until overwritten. The encoder performs no
// cross-command validation beyond what each method documents; a draw that
// references a binding slot no pipeline consumes is the driver's problem,
// not the encoder's.
type RenderPassEncoder interface {
	// SetPipeline sets the active render pipeline.
	SetPipeline(pipeline RenderPipeline) error

	// SetBindGroup binds a bind group to the given group slot, with
	// optional dynamic offsets.
	SetBindGroup(index uint32, group BindGroup, offsets []uint32) error

	// SetBlendConstant sets the constant blend color used by pipelines
	// with a constant blend factor.
	SetBlendConstant(color gputypes.Color) error

	// SetIndexBuffer sets the index buffer for subsequent indexed draws.
	// Size zero binds the rest of the buffer from offset.
	SetIndexBuffer(buf Buffer, format gputypes.IndexFormat, offset, size uint64) error

	// SetVertexBuffer sets the vertex buffer for the given slot.
	// Size zero binds the rest of the buffer from offset.
	SetVertexBuffer(slot uint32, buf Buffer, offset, size uint64) error

	// SetScissorRect restricts rendering to the given rectangle.
	SetScissorRect(x, y, width, height uint32) error

	// SetViewport sets the viewport transform.
	SetViewport(x, y, width, height, minDepth, maxDepth float32) error

	// SetStencilReference sets the stencil reference value.
	SetStencilReference(ref uint32) error

	// Draw draws non-indexed primitives.
	Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) error

	// DrawIndexed draws indexed primitives. baseVertex is added to each
	// index before vertex fetch and may be negative.
	DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32) error

	// DrawIndirect draws with parameters read from buf at offset.
	DrawIndirect(buf Buffer, offset uint64) error

	// DrawIndexedIndirect draws indexed with parameters read from buf at
	// offset.
	DrawIndexedIndirect(buf Buffer, offset uint64) error

	// InsertDebugMarker inserts a label into the command stream for
	// debugging tools. No rendering effect.
	InsertDebugMarker(label string)

	// PushDebugGroup opens a named group in the command stream.
	PushDebugGroup(label string)

	// PopDebugGroup closes the most recent debug group.
	PopDebugGroup()

	// End closes the pass. The encoder must not be used afterwards.
	End() error
}

// RenderPassColorAttachment describes one color attachment of a render pass.
type RenderPassColorAttachment struct {
	// View is the texture view rendered into.
	View TextureView

	// ResolveTarget receives the resolved output for MSAA views, or nil.
	ResolveTarget TextureView

	// LoadOp controls whether the attachment is cleared or loaded at the
	// start of the pass.
	LoadOp gputypes.LoadOp

	// StoreOp controls whether results are written back at the end.
	StoreOp gputypes.StoreOp

	// ClearValue is the clear color used when LoadOp is LoadOpClear.
	ClearValue gputypes.Color
}

// RenderPassDepthStencilAttachment describes the depth attachment of a
// render pass.
type RenderPassDepthStencilAttachment struct {
	// View is the depth texture view.
	View TextureView

	// DepthLoadOp controls whether depth is cleared or loaded.
	DepthLoadOp gputypes.LoadOp

	// DepthStoreOp controls whether depth results are written back.
	DepthStoreOp gputypes.StoreOp

	// DepthClearValue is the clear depth used when DepthLoadOp is
	// LoadOpClear. 1.0 is the far plane.
	DepthClearValue float32

	// StencilLoadOp controls whether stencil is cleared or loaded.
	StencilLoadOp gputypes.LoadOp

	// StencilStoreOp controls whether stencil results are written back.
	StencilStoreOp gputypes.StoreOp

	// StencilClearValue is the clear stencil value.
	StencilClearValue uint32
}

// RenderPassDescriptor describes the attachments of a render pass.
type RenderPassDescriptor struct {
	// Label is an optional debug label.
	Label string

	// ColorAttachments are the color targets of the pass.
	ColorAttachments []RenderPassColorAttachment

	// DepthStencilAttachment is the depth target, or nil for color-only
	// passes.
	DepthStencilAttachment *RenderPassDepthStencilAttachment
}
