// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/forge/gpu"
)

// commandEncoder implements gpu.CommandEncoder. Encoding begins at creation
// and ends with Finish.
type commandEncoder struct {
	device *Device
	raw    hal.CommandEncoder
}

func (e *commandEncoder) BeginRenderPass(desc *gpu.RenderPassDescriptor) (gpu.RenderPassEncoder, error) {
	colors := make([]hal.RenderPassColorAttachment, len(desc.ColorAttachments))
	for i, a := range desc.ColorAttachments {
		att := hal.RenderPassColorAttachment{
			LoadOp:     a.LoadOp,
			StoreOp:    a.StoreOp,
			ClearValue: a.ClearValue,
		}
		view, ok := a.View.(*textureView)
		if !ok {
			return nil, fmt.Errorf("wgpu: color attachment %d view is not a wgpu view", i)
		}
		att.View = view.raw
		if a.ResolveTarget != nil {
			resolve, ok := a.ResolveTarget.(*textureView)
			if !ok {
				return nil, fmt.Errorf("wgpu: color attachment %d resolve target is not a wgpu view", i)
			}
			att.ResolveTarget = resolve.raw
		}
		colors[i] = att
	}

	halDesc := &hal.RenderPassDescriptor{
		Label:            desc.Label,
		ColorAttachments: colors,
	}
	if ds := desc.DepthStencilAttachment; ds != nil {
		view, ok := ds.View.(*textureView)
		if !ok {
			return nil, fmt.Errorf("wgpu: depth attachment view is not a wgpu view")
		}
		halDesc.DepthStencilAttachment = &hal.RenderPassDepthStencilAttachment{
			View:              view.raw,
			DepthLoadOp:       ds.DepthLoadOp,
			DepthStoreOp:      ds.DepthStoreOp,
			DepthClearValue:   ds.DepthClearValue,
			StencilLoadOp:     ds.StencilLoadOp,
			StencilStoreOp:    ds.StencilStoreOp,
			StencilClearValue: ds.StencilClearValue,
		}
	}

	return &renderPass{raw: e.raw.BeginRenderPass(halDesc)}, nil
}

func (e *commandEncoder) CopyBufferToBuffer(src gpu.Buffer, srcOffset uint64, dst gpu.Buffer, dstOffset, size uint64) error {
	srcBuf, ok := src.(*buffer)
	if !ok {
		return fmt.Errorf("wgpu: copy source is not a wgpu buffer")
	}
	dstBuf, ok := dst.(*buffer)
	if !ok {
		return fmt.Errorf("wgpu: copy destination is not a wgpu buffer")
	}
	e.raw.CopyBufferToBuffer(srcBuf.raw, dstBuf.raw, []hal.BufferCopy{
		{SrcOffset: srcOffset, DstOffset: dstOffset, Size: size},
	})
	return nil
}

func (e *commandEncoder) Finish() (gpu.CommandBuffer, error) {
	raw, err := e.raw.EndEncoding()
	if err != nil {
		return nil, fmt.Errorf("wgpu: end encoding: %w", err)
	}
	return &commandBuffer{raw: raw}, nil
}

// renderPass implements gpu.RenderPassEncoder over a hal render pass.
//
// Every operation forwards one-to-one except the debug marker calls, which
// the hal pass does not expose; those are accepted and dropped so
// recordings stay portable across backends.
type renderPass struct {
	raw hal.RenderPassEncoder
}

func (r *renderPass) SetPipeline(pipeline gpu.RenderPipeline) error {
	p, ok := pipeline.(*renderPipeline)
	if !ok {
		return fmt.Errorf("wgpu: pipeline is not a wgpu pipeline")
	}
	r.raw.SetPipeline(p.raw)
	return nil
}

func (r *renderPass) SetBindGroup(index uint32, group gpu.BindGroup, offsets []uint32) error {
	g, ok := group.(*bindGroup)
	if !ok {
		return fmt.Errorf("wgpu: bind group is not a wgpu bind group")
	}
	r.raw.SetBindGroup(index, g.raw, offsets)
	return nil
}

func (r *renderPass) SetBlendConstant(color gputypes.Color) error {
	r.raw.SetBlendConstant(&color)
	return nil
}

func (r *renderPass) SetIndexBuffer(buf gpu.Buffer, format gputypes.IndexFormat, offset, size uint64) error {
	b, ok := buf.(*buffer)
	if !ok {
		return fmt.Errorf("wgpu: index buffer is not a wgpu buffer")
	}
	// hal binds from offset to the end of the buffer; a partial size is not
	// expressible.
	r.raw.SetIndexBuffer(b.raw, format, offset)
	return nil
}

func (r *renderPass) SetVertexBuffer(slot uint32, buf gpu.Buffer, offset, size uint64) error {
	b, ok := buf.(*buffer)
	if !ok {
		return fmt.Errorf("wgpu: vertex buffer is not a wgpu buffer")
	}
	r.raw.SetVertexBuffer(slot, b.raw, offset)
	return nil
}

func (r *renderPass) SetScissorRect(x, y, width, height uint32) error {
	r.raw.SetScissorRect(x, y, width, height)
	return nil
}

func (r *renderPass) SetViewport(x, y, width, height, minDepth, maxDepth float32) error {
	r.raw.SetViewport(x, y, width, height, minDepth, maxDepth)
	return nil
}

func (r *renderPass) SetStencilReference(ref uint32) error {
	r.raw.SetStencilReference(ref)
	return nil
}

func (r *renderPass) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) error {
	r.raw.Draw(vertexCount, instanceCount, firstVertex, firstInstance)
	return nil
}

func (r *renderPass) DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32) error {
	r.raw.DrawIndexed(indexCount, instanceCount, firstIndex, baseVertex, firstInstance)
	return nil
}

func (r *renderPass) DrawIndirect(buf gpu.Buffer, offset uint64) error {
	b, ok := buf.(*buffer)
	if !ok {
		return fmt.Errorf("wgpu: indirect buffer is not a wgpu buffer")
	}
	r.raw.DrawIndirect(b.raw, offset)
	return nil
}

func (r *renderPass) DrawIndexedIndirect(buf gpu.Buffer, offset uint64) error {
	b, ok := buf.(*buffer)
	if !ok {
		return fmt.Errorf("wgpu: indirect buffer is not a wgpu buffer")
	}
	r.raw.DrawIndexedIndirect(b.raw, offset)
	return nil
}

func (r *renderPass) InsertDebugMarker(label string) {}

func (r *renderPass) PushDebugGroup(label string) {}

func (r *renderPass) PopDebugGroup() {}

func (r *renderPass) End() error {
	r.raw.End()
	return nil
}

var (
	_ gpu.CommandEncoder    = (*commandEncoder)(nil)
	_ gpu.RenderPassEncoder = (*renderPass)(nil)
)
