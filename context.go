// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package forge

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/forge/command"
	"github.com/gogpu/forge/gpu"
	"github.com/gogpu/forge/scene"
)

// DrawContextConfig carries the device handles and frame defaults a
// DrawContext snapshots at creation. The window collaborator fills this in;
// applications normally never build one by hand.
type DrawContextConfig struct {
	// Device creates encoders and owns the submission queue.
	Device gpu.Device

	// Surface supplies the presentable texture each pass renders into.
	Surface gpu.Surface

	// Depth is the current depth attachment view.
	Depth gpu.TextureView

	// CameraBindGroup is the shared camera uniform binding.
	CameraBindGroup gpu.BindGroup

	// LightBindGroup is the shared light uniform binding.
	LightBindGroup gpu.BindGroup

	// Pipeline is the default lit-geometry pipeline.
	Pipeline gpu.RenderPipeline

	// LightPipeline is the pipeline for the light source's own geometry.
	LightPipeline gpu.RenderPipeline
}

// DrawContext is the per-frame drawing façade. It owns an ordered list of
// render passes; every drawing call appends a command to the current (last)
// pass's queue, and Submit replays the passes in creation order.
//
// A context lives for exactly one frame: create, record, Submit, discard.
// Submit consumes the context; further Submits return ErrContextSubmitted.
// Recording is single-threaded — the context does no locking.
//
// Issuing any drawing call before the first BeginRenderPass is a contract
// violation and panics.
type DrawContext struct {
	device  gpu.Device
	surface gpu.Surface
	depth   gpu.TextureView

	cameraGroup   gpu.BindGroup
	lightGroup    gpu.BindGroup
	pipeline      gpu.RenderPipeline
	lightPipeline gpu.RenderPipeline

	passes    []*RenderPass
	submitted bool
}

// NewDrawContext creates a context for one frame, snapshotting the surface,
// depth view, shared bind groups, and default pipelines from cfg. O(1), no
// GPU allocation.
func NewDrawContext(cfg *DrawContextConfig) *DrawContext {
	return &DrawContext{
		device:        cfg.Device,
		surface:       cfg.Surface,
		depth:         cfg.Depth,
		cameraGroup:   cfg.CameraBindGroup,
		lightGroup:    cfg.LightBindGroup,
		pipeline:      cfg.Pipeline,
		lightPipeline: cfg.LightPipeline,
	}
}

// BeginRenderPass opens a new render pass with the given load operation and
// makes it current. The pass captures the context's surface and depth view
// now; a resize before Submit does not retarget it.
//
// Panics if the context has already been submitted: Submit consumes the
// context, and a new one must be created for the next frame.
func (c *DrawContext) BeginRenderPass(op PassOp) {
	if c.submitted {
		panic("forge: BeginRenderPass after Submit")
	}
	c.passes = append(c.passes, newRenderPass(c.surface, c.depth, op))
}

// PassCount returns the number of passes begun so far.
func (c *DrawContext) PassCount() int { return len(c.passes) }

// currentPass returns the last begun pass. Drawing with zero passes, or on
// a consumed context, is a programming error, not a runtime condition, so
// it fails fast.
func (c *DrawContext) currentPass() *RenderPass {
	if c.submitted {
		panic("forge: drawing call after Submit")
	}
	if len(c.passes) == 0 {
		panic("forge: drawing call before BeginRenderPass")
	}
	return c.passes[len(c.passes)-1]
}

// --------------------------------------------------------------------------
// Primitive state setters — each appends exactly one command to the current
// pass. No GPU side effects until Submit.
// --------------------------------------------------------------------------

// SetPipeline records a pipeline bind.
func (c *DrawContext) SetPipeline(pipeline gpu.RenderPipeline) {
	c.currentPass().queue.PushDraw(command.SetPipelineCommand{Pipeline: pipeline})
}

// SetBindGroup records a bind group bind at slot, with optional dynamic
// offsets.
func (c *DrawContext) SetBindGroup(slot uint32, group gpu.BindGroup, offsets []uint32) {
	c.currentPass().queue.PushDraw(command.SetBindGroupCommand{Slot: slot, Group: group, Offsets: offsets})
}

// SetBlendConstant records a blend constant change.
func (c *DrawContext) SetBlendConstant(color gputypes.Color) {
	c.currentPass().queue.PushDraw(command.SetBlendConstantCommand{Color: color})
}

// SetIndexBuffer records an index buffer bind.
func (c *DrawContext) SetIndexBuffer(buf gpu.Buffer, format gputypes.IndexFormat) {
	c.currentPass().queue.PushDraw(command.SetIndexBufferCommand{Buffer: buf, Format: format})
}

// SetVertexBuffer records a vertex buffer bind at slot.
func (c *DrawContext) SetVertexBuffer(slot uint32, buf gpu.Buffer) {
	c.currentPass().queue.PushDraw(command.SetVertexBufferCommand{Slot: slot, Buffer: buf})
}

// SetScissorRect records a scissor rectangle change.
func (c *DrawContext) SetScissorRect(x, y, width, height uint32) {
	c.currentPass().queue.PushDraw(command.SetScissorRectCommand{X: x, Y: y, Width: width, Height: height})
}

// SetViewport records a viewport change.
func (c *DrawContext) SetViewport(x, y, width, height, minDepth, maxDepth float32) {
	c.currentPass().queue.PushDraw(command.SetViewportCommand{
		X: x, Y: y, Width: width, Height: height, MinDepth: minDepth, MaxDepth: maxDepth,
	})
}

// SetStencilReference records a stencil reference change.
func (c *DrawContext) SetStencilReference(ref uint32) {
	c.currentPass().queue.PushDraw(command.SetStencilReferenceCommand{Reference: ref})
}

// InsertDebugMarker records a debug label.
func (c *DrawContext) InsertDebugMarker(label string) {
	c.currentPass().queue.PushDraw(command.InsertDebugMarkerCommand{Label: label})
}

// PushDebugGroup records the start of a debug group.
func (c *DrawContext) PushDebugGroup(label string) {
	c.currentPass().queue.PushDraw(command.PushDebugGroupCommand{Label: label})
}

// PopDebugGroup records the end of the innermost debug group.
func (c *DrawContext) PopDebugGroup() {
	c.currentPass().queue.PushDraw(command.PopDebugGroupCommand{})
}

// --------------------------------------------------------------------------
// Primitive draws
// --------------------------------------------------------------------------

// Draw records a non-indexed draw over vertex and instance ranges.
func (c *DrawContext) Draw(vertices, instances command.Range) {
	c.currentPass().queue.PushDraw(command.DrawCommand{Vertices: vertices, Instances: instances})
}

// DrawIndexed records an indexed draw.
func (c *DrawContext) DrawIndexed(indices command.Range, baseVertex int32, instances command.Range) {
	c.currentPass().queue.PushDraw(command.DrawIndexedCommand{
		Indices: indices, BaseVertex: baseVertex, Instances: instances,
	})
}

// DrawIndirect records a draw whose parameters live in buf at offset.
func (c *DrawContext) DrawIndirect(buf gpu.Buffer, offset uint64) {
	c.currentPass().queue.PushDraw(command.DrawIndirectCommand{Buffer: buf, Offset: offset})
}

// DrawIndexedIndirect records an indexed draw whose parameters live in buf
// at offset.
func (c *DrawContext) DrawIndexedIndirect(buf gpu.Buffer, offset uint64) {
	c.currentPass().queue.PushDraw(command.DrawIndexedIndirectCommand{Buffer: buf, Offset: offset})
}

// CopyBuffer records a buffer-to-buffer copy on the current pass's transfer
// channel. Transfers replay before the pass opens, regardless of how copies
// and draws were interleaved during recording.
func (c *DrawContext) CopyBuffer(src gpu.Buffer, srcOffset uint64, dst gpu.Buffer, dstOffset, size uint64) {
	c.currentPass().queue.PushTransfer(command.CopyBufferToBufferCommand{
		Src: src, SrcOffset: srcOffset, Dst: dst, DstOffset: dstOffset, Size: size,
	})
}

// --------------------------------------------------------------------------
// High-level draws — bind the default pipeline, then expand through the
// scene helpers. Slots: material 0, camera 1, light 2.
// --------------------------------------------------------------------------

// DrawMesh draws one mesh with one instance using the default pipeline.
func (c *DrawContext) DrawMesh(mesh *scene.Mesh, material *scene.Material) {
	c.DrawMeshInstanced(mesh, material, command.Range{Start: 0, End: 1})
}

// DrawMeshInstanced draws one mesh across an instance range using the
// default pipeline.
func (c *DrawContext) DrawMeshInstanced(mesh *scene.Mesh, material *scene.Material, instances command.Range) {
	q := c.currentPass().queue
	q.PushDraw(command.SetPipelineCommand{Pipeline: c.pipeline})
	for _, cmd := range scene.MeshCommands(mesh, material, c.cameraGroup, c.lightGroup, instances) {
		q.PushDraw(cmd)
	}
}

// DrawModel draws all meshes of a model with one instance.
func (c *DrawContext) DrawModel(model *scene.Model) {
	c.DrawModelInstanced(model, command.Range{Start: 0, End: 1})
}

// DrawModelInstanced draws all meshes of a model across an instance range,
// resolving each mesh's material by index.
func (c *DrawContext) DrawModelInstanced(model *scene.Model, instances command.Range) {
	q := c.currentPass().queue
	q.PushDraw(command.SetPipelineCommand{Pipeline: c.pipeline})
	for _, cmd := range scene.ModelCommands(model, c.cameraGroup, c.lightGroup, instances) {
		q.PushDraw(cmd)
	}
}

// DrawLightMesh draws the light source's own geometry for one instance.
func (c *DrawContext) DrawLightMesh(mesh *scene.Mesh) {
	c.DrawLightMeshInstanced(mesh, command.Range{Start: 0, End: 1})
}

// DrawLightMeshInstanced draws the light source's own geometry across an
// instance range using the light pipeline. No material; camera binds at
// slot 0, light at slot 1.
func (c *DrawContext) DrawLightMeshInstanced(mesh *scene.Mesh, instances command.Range) {
	q := c.currentPass().queue
	q.PushDraw(command.SetPipelineCommand{Pipeline: c.lightPipeline})
	for _, cmd := range scene.LightMeshCommands(mesh, c.cameraGroup, c.lightGroup, instances) {
		q.PushDraw(cmd)
	}
}

// DrawLightModel draws a light-geometry model for one instance.
func (c *DrawContext) DrawLightModel(model *scene.Model) {
	c.DrawLightModelInstanced(model, command.Range{Start: 0, End: 1})
}

// DrawLightModelInstanced draws a light-geometry model across an instance
// range using the light pipeline.
func (c *DrawContext) DrawLightModelInstanced(model *scene.Model, instances command.Range) {
	q := c.currentPass().queue
	q.PushDraw(command.SetPipelineCommand{Pipeline: c.lightPipeline})
	for _, cmd := range scene.LightModelCommands(model, c.cameraGroup, c.lightGroup, instances) {
		q.PushDraw(cmd)
	}
}

// --------------------------------------------------------------------------
// Submission
// --------------------------------------------------------------------------

// Submit consumes the context: every pass is replayed in creation order,
// each acquiring a frame, recording its own encoder, submitting, and
// presenting.
//
// The first failing pass aborts the rest and its error is returned.
// Already-replayed passes have submitted their command buffers and are not
// rolled back; the un-replayed passes keep their commands, which are
// discarded with the context. Submit cannot be retried — create a new
// context for the next frame.
func (c *DrawContext) Submit() error {
	if c.submitted {
		return ErrContextSubmitted
	}
	c.submitted = true

	for i, pass := range c.passes {
		if err := pass.render(c.device); err != nil {
			return fmt.Errorf("pass %d: %w", i, err)
		}
		command.PutQueue(pass.queue)
		pass.queue = nil
	}
	return nil
}
