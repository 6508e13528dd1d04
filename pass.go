// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package forge

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/forge/command"
	"github.com/gogpu/forge/gpu"
)

// PassOpKind selects the load operation applied to a pass's attachments.
type PassOpKind uint8

const (
	// PassOpClear clears color and depth at the start of the pass.
	PassOpClear PassOpKind = iota
	// PassOpLoad loads the existing attachment contents.
	PassOpLoad
)

// String returns "Clear" or "Load".
func (k PassOpKind) String() string {
	if k == PassOpClear {
		return "Clear"
	}
	return "Load"
}

// PassOp determines how a render pass begins: clearing its attachments to a
// color (depth to 1.0), or loading whatever a previous pass stored. One op
// applies uniformly to both the color and depth attachment.
type PassOp struct {
	// Kind selects clear or load.
	Kind PassOpKind

	// Color is the clear color. Ignored for PassOpLoad.
	Color gputypes.Color
}

// Clear returns the pass op that clears color attachments to color and the
// depth attachment to 1.0.
func Clear(color gputypes.Color) PassOp {
	return PassOp{Kind: PassOpClear, Color: color}
}

// LoadFromMemory returns the pass op that preserves existing attachment
// contents, for passes layered on top of an earlier pass's output.
func LoadFromMemory() PassOp {
	return PassOp{Kind: PassOpLoad}
}

// RenderPass is one deferred GPU render pass: a command queue plus the
// attachments it will be replayed against.
//
// The pass snapshots the context's surface and depth view at creation time.
// They are not re-fetched at replay, so a resize between BeginRenderPass and
// Submit renders against the pre-resize attachments. That window is a frame
// at most and the next frame picks up the new size, so it is documented
// rather than detected.
type RenderPass struct {
	queue   *command.Queue
	surface gpu.Surface
	depth   gpu.TextureView
	op      PassOp
}

// newRenderPass constructs a pass value. No GPU calls are made; the queue
// comes from the shared pool and goes back after a successful replay.
func newRenderPass(surface gpu.Surface, depth gpu.TextureView, op PassOp) *RenderPass {
	return &RenderPass{
		queue:   command.GetQueue(),
		surface: surface,
		depth:   depth,
		op:      op,
	}
}

// Queue returns the pass's command queue.
func (p *RenderPass) Queue() *command.Queue { return p.queue }

// Op returns the pass's load operation.
func (p *RenderPass) Op() PassOp { return p.op }

// render acquires a presentable texture, replays the queued commands
// against a fresh encoder, submits, and presents.
//
// Replay order: all transfer commands first (copies are illegal inside an
// active render pass), then the draw channel in insertion order inside the
// pass scope. On success the queue is cleared. Surface acquisition failures
// are propagated untouched; the caller decides between reconfigure and
// abort.
func (p *RenderPass) render(device gpu.Device) error {
	frame, err := p.surface.Acquire()
	if err != nil {
		return fmt.Errorf("acquire surface texture: %w", err)
	}

	encoder, err := device.CreateCommandEncoder("forge_pass_encoder")
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}

	for _, cmd := range p.queue.Transfer() {
		if err := replayTransfer(encoder, cmd); err != nil {
			return err
		}
	}

	rp, err := encoder.BeginRenderPass(p.passDescriptor(frame.View()))
	if err != nil {
		return fmt.Errorf("begin render pass: %w", err)
	}

	for _, cmd := range p.queue.Draw() {
		if err := replayDraw(rp, cmd); err != nil {
			return err
		}
	}

	if err := rp.End(); err != nil {
		return fmt.Errorf("end render pass: %w", err)
	}

	replayed := p.queue.Len()
	p.queue.Clear()

	buf, err := encoder.Finish()
	if err != nil {
		return fmt.Errorf("finish encoder: %w", err)
	}
	if err := device.Queue().Submit([]gpu.CommandBuffer{buf}); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	if err := frame.Present(); err != nil {
		return fmt.Errorf("present: %w", err)
	}

	Logger().Debug("pass replayed", "op", p.op.Kind, "commands", replayed)
	return nil
}

// passDescriptor builds the attachment description for this pass: one color
// attachment on the acquired frame and one depth attachment, both honoring
// the pass op. Results are always stored; a later pass in the same frame may
// load them.
func (p *RenderPass) passDescriptor(view gpu.TextureView) *gpu.RenderPassDescriptor {
	colorLoad := gputypes.LoadOpClear
	depthLoad := gputypes.LoadOpClear
	if p.op.Kind == PassOpLoad {
		colorLoad = gputypes.LoadOpLoad
		depthLoad = gputypes.LoadOpLoad
	}

	desc := &gpu.RenderPassDescriptor{
		Label: "forge_render_pass",
		ColorAttachments: []gpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     colorLoad,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: p.op.Color,
		}},
	}
	if p.depth != nil {
		desc.DepthStencilAttachment = &gpu.RenderPassDepthStencilAttachment{
			View:            p.depth,
			DepthLoadOp:     depthLoad,
			DepthStoreOp:    gputypes.StoreOpStore,
			DepthClearValue: 1.0,
			// The engine does not use the stencil aspect; clear and drop.
			StencilLoadOp:  gputypes.LoadOpClear,
			StencilStoreOp: gputypes.StoreOpDiscard,
		}
	}
	return desc
}

// replayTransfer dispatches one transfer-channel command to the encoder.
func replayTransfer(encoder gpu.CommandEncoder, cmd command.Command) error {
	switch c := cmd.(type) {
	case command.CopyBufferToBufferCommand:
		if err := encoder.CopyBufferToBuffer(c.Src, c.SrcOffset, c.Dst, c.DstOffset, c.Size); err != nil {
			return fmt.Errorf("replay %v: %w", cmd.Type(), err)
		}
		return nil
	default:
		return fmt.Errorf("forge: command %v is not a transfer command", cmd.Type())
	}
}

// replayDraw dispatches one draw-channel command to the pass encoder.
// The mapping is structural and one-to-one: no reordering, no batching.
func replayDraw(rp gpu.RenderPassEncoder, cmd command.Command) error {
	var err error
	switch c := cmd.(type) {
	case command.SetPipelineCommand:
		err = rp.SetPipeline(c.Pipeline)
	case command.SetBindGroupCommand:
		err = rp.SetBindGroup(c.Slot, c.Group, c.Offsets)
	case command.SetBlendConstantCommand:
		err = rp.SetBlendConstant(c.Color)
	case command.SetIndexBufferCommand:
		err = rp.SetIndexBuffer(c.Buffer, c.Format, 0, 0)
	case command.SetVertexBufferCommand:
		err = rp.SetVertexBuffer(c.Slot, c.Buffer, 0, 0)
	case command.SetScissorRectCommand:
		err = rp.SetScissorRect(c.X, c.Y, c.Width, c.Height)
	case command.SetViewportCommand:
		err = rp.SetViewport(c.X, c.Y, c.Width, c.Height, c.MinDepth, c.MaxDepth)
	case command.SetStencilReferenceCommand:
		err = rp.SetStencilReference(c.Reference)
	case command.DrawCommand:
		err = rp.Draw(c.Vertices.Count(), c.Instances.Count(), c.Vertices.Start, c.Instances.Start)
	case command.DrawIndexedCommand:
		err = rp.DrawIndexed(c.Indices.Count(), c.Instances.Count(), c.Indices.Start, c.BaseVertex, c.Instances.Start)
	case command.DrawIndirectCommand:
		err = rp.DrawIndirect(c.Buffer, c.Offset)
	case command.DrawIndexedIndirectCommand:
		err = rp.DrawIndexedIndirect(c.Buffer, c.Offset)
	case command.InsertDebugMarkerCommand:
		rp.InsertDebugMarker(c.Label)
	case command.PushDebugGroupCommand:
		rp.PushDebugGroup(c.Label)
	case command.PopDebugGroupCommand:
		rp.PopDebugGroup()
	case command.ExecuteBundlesCommand:
		return fmt.Errorf("forge: ExecuteBundles is reserved and not implemented")
	default:
		return fmt.Errorf("forge: unknown command %v in draw channel", cmd.Type())
	}
	if err != nil {
		return fmt.Errorf("replay %v: %w", cmd.Type(), err)
	}
	return nil
}
