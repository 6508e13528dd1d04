// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package forge

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/forge/gpu"
)

// The mock GPU stack below records every replayed operation into a shared
// event log, so tests can assert on exact replay order without a device.

type mockRecorder struct {
	events []string

	// descriptors captures each BeginRenderPass descriptor in order.
	descriptors []*gpu.RenderPassDescriptor

	// acquireErrs maps acquire call number (0-based) to a forced error.
	acquireErrs map[int]error
	acquires    int
}

func newMockRecorder() *mockRecorder {
	return &mockRecorder{acquireErrs: map[int]error{}}
}

func (r *mockRecorder) log(format string, args ...any) {
	r.events = append(r.events, fmt.Sprintf(format, args...))
}

// --------------------------------------------------------------------------
// Handles — named so the event log is readable.
// --------------------------------------------------------------------------

type mockPipeline struct{ name string }

func (*mockPipeline) Destroy() {}

type mockBindGroup struct{ name string }

func (*mockBindGroup) Destroy() {}

type mockBuffer struct {
	name string
	size uint64
}

func (b *mockBuffer) Size() uint64              { return b.size }
func (*mockBuffer) Usage() gputypes.BufferUsage { return 0 }
func (*mockBuffer) Destroy()                    {}

type mockView struct{ name string }

func (*mockView) Destroy() {}

type mockTexture struct{ name string }

func (*mockTexture) Width() uint32                  { return 1 }
func (*mockTexture) Height() uint32                 { return 1 }
func (*mockTexture) Format() gputypes.TextureFormat { return gputypes.TextureFormatRGBA8Unorm }
func (t *mockTexture) CreateView() (gpu.TextureView, error) {
	return &mockView{name: t.name + "_view"}, nil
}
func (*mockTexture) Destroy() {}

// --------------------------------------------------------------------------
// Device and queue
// --------------------------------------------------------------------------

type mockDevice struct{ rec *mockRecorder }

func (d *mockDevice) CreateBuffer(desc *gpu.BufferDescriptor) (gpu.Buffer, error) {
	return &mockBuffer{name: desc.Label, size: desc.Size}, nil
}

func (d *mockDevice) CreateBufferInit(label string, data []byte, _ gputypes.BufferUsage) (gpu.Buffer, error) {
	return &mockBuffer{name: label, size: uint64(len(data))}, nil
}

func (d *mockDevice) CreateTexture(desc *gpu.TextureDescriptor) (gpu.Texture, error) {
	return &mockTexture{name: desc.Label}, nil
}

func (d *mockDevice) CreateSampler(*gpu.SamplerDescriptor) (gpu.Sampler, error) {
	return nil, fmt.Errorf("mock: samplers unsupported")
}

func (d *mockDevice) CreateShaderModule(*gpu.ShaderModuleDescriptor) (gpu.ShaderModule, error) {
	return nil, fmt.Errorf("mock: shaders unsupported")
}

func (d *mockDevice) CreateBindGroupLayout(*gpu.BindGroupLayoutDescriptor) (gpu.BindGroupLayout, error) {
	return nil, fmt.Errorf("mock: layouts unsupported")
}

func (d *mockDevice) CreatePipelineLayout(*gpu.PipelineLayoutDescriptor) (gpu.PipelineLayout, error) {
	return nil, fmt.Errorf("mock: layouts unsupported")
}

func (d *mockDevice) CreateBindGroup(desc *gpu.BindGroupDescriptor) (gpu.BindGroup, error) {
	return &mockBindGroup{name: desc.Label}, nil
}

func (d *mockDevice) CreateRenderPipeline(desc *gpu.RenderPipelineDescriptor) (gpu.RenderPipeline, error) {
	return &mockPipeline{name: desc.Label}, nil
}

func (d *mockDevice) CreateCommandEncoder(string) (gpu.CommandEncoder, error) {
	d.rec.log("createEncoder")
	return &mockEncoder{rec: d.rec}, nil
}

func (d *mockDevice) Queue() gpu.Queue     { return &mockQueue{rec: d.rec} }
func (d *mockDevice) Info() gpu.DeviceInfo { return gpu.DeviceInfo{Name: "mock"} }
func (d *mockDevice) Destroy()             {}

type mockQueue struct{ rec *mockRecorder }

func (q *mockQueue) Submit(buffers []gpu.CommandBuffer) error {
	q.rec.log("submit(%d)", len(buffers))
	return nil
}

func (q *mockQueue) WriteBuffer(buf gpu.Buffer, offset uint64, data []byte) error {
	q.rec.log("writeBuffer(%s, %d, %d)", bufName(buf), offset, len(data))
	return nil
}

func (q *mockQueue) WriteTexture(tex gpu.Texture, data []byte, bytesPerRow uint32) error {
	q.rec.log("writeTexture(%d, %d)", len(data), bytesPerRow)
	return nil
}

// --------------------------------------------------------------------------
// Surface
// --------------------------------------------------------------------------

type mockSurface struct{ rec *mockRecorder }

func (s *mockSurface) Configure(*gpu.SurfaceConfig) error { return nil }

func (s *mockSurface) Acquire() (gpu.SurfaceTexture, error) {
	n := s.rec.acquires
	s.rec.acquires++
	if err, ok := s.rec.acquireErrs[n]; ok {
		return nil, err
	}
	s.rec.log("acquire")
	return &mockFrame{rec: s.rec}, nil
}

func (s *mockSurface) Format() gputypes.TextureFormat { return gputypes.TextureFormatBGRA8Unorm }
func (s *mockSurface) Width() uint32                  { return 800 }
func (s *mockSurface) Height() uint32                 { return 600 }
func (s *mockSurface) Destroy()                       {}

type mockFrame struct{ rec *mockRecorder }

func (f *mockFrame) View() gpu.TextureView { return &mockView{name: "frame"} }
func (f *mockFrame) Texture() gpu.Texture  { return &mockTexture{name: "frame"} }
func (f *mockFrame) Present() error {
	f.rec.log("present")
	return nil
}

// --------------------------------------------------------------------------
// Encoder and render pass
// --------------------------------------------------------------------------

type mockEncoder struct{ rec *mockRecorder }

func (e *mockEncoder) BeginRenderPass(desc *gpu.RenderPassDescriptor) (gpu.RenderPassEncoder, error) {
	e.rec.log("beginRenderPass")
	e.rec.descriptors = append(e.rec.descriptors, desc)
	return &mockPass{rec: e.rec}, nil
}

func (e *mockEncoder) CopyBufferToBuffer(src gpu.Buffer, srcOffset uint64, dst gpu.Buffer, dstOffset, size uint64) error {
	e.rec.log("copy(%s+%d -> %s+%d, %d)", bufName(src), srcOffset, bufName(dst), dstOffset, size)
	return nil
}

func (e *mockEncoder) Finish() (gpu.CommandBuffer, error) {
	e.rec.log("finish")
	return struct{}{}, nil
}

type mockPass struct{ rec *mockRecorder }

func (p *mockPass) SetPipeline(pipeline gpu.RenderPipeline) error {
	p.rec.log("setPipeline(%s)", pipeline.(*mockPipeline).name)
	return nil
}

func (p *mockPass) SetBindGroup(index uint32, group gpu.BindGroup, offsets []uint32) error {
	p.rec.log("setBindGroup(%d, %s)", index, group.(*mockBindGroup).name)
	return nil
}

func (p *mockPass) SetBlendConstant(color gputypes.Color) error {
	p.rec.log("setBlendConstant(%.1f,%.1f,%.1f,%.1f)", color.R, color.G, color.B, color.A)
	return nil
}

func (p *mockPass) SetIndexBuffer(buf gpu.Buffer, format gputypes.IndexFormat, offset, size uint64) error {
	p.rec.log("setIndexBuffer(%s)", bufName(buf))
	return nil
}

func (p *mockPass) SetVertexBuffer(slot uint32, buf gpu.Buffer, offset, size uint64) error {
	p.rec.log("setVertexBuffer(%d, %s)", slot, bufName(buf))
	return nil
}

func (p *mockPass) SetScissorRect(x, y, width, height uint32) error {
	p.rec.log("setScissorRect(%d,%d,%d,%d)", x, y, width, height)
	return nil
}

func (p *mockPass) SetViewport(x, y, width, height, minDepth, maxDepth float32) error {
	p.rec.log("setViewport(%.0f,%.0f,%.0f,%.0f)", x, y, width, height)
	return nil
}

func (p *mockPass) SetStencilReference(ref uint32) error {
	p.rec.log("setStencilReference(%d)", ref)
	return nil
}

func (p *mockPass) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) error {
	p.rec.log("draw(%d,%d,%d,%d)", vertexCount, instanceCount, firstVertex, firstInstance)
	return nil
}

func (p *mockPass) DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32) error {
	p.rec.log("drawIndexed(%d,%d,%d,%d,%d)", indexCount, instanceCount, firstIndex, baseVertex, firstInstance)
	return nil
}

func (p *mockPass) DrawIndirect(buf gpu.Buffer, offset uint64) error {
	p.rec.log("drawIndirect(%s, %d)", bufName(buf), offset)
	return nil
}

func (p *mockPass) DrawIndexedIndirect(buf gpu.Buffer, offset uint64) error {
	p.rec.log("drawIndexedIndirect(%s, %d)", bufName(buf), offset)
	return nil
}

func (p *mockPass) InsertDebugMarker(label string) { p.rec.log("marker(%s)", label) }
func (p *mockPass) PushDebugGroup(label string)    { p.rec.log("pushGroup(%s)", label) }
func (p *mockPass) PopDebugGroup()                 { p.rec.log("popGroup") }

func (p *mockPass) End() error {
	p.rec.log("endRenderPass")
	return nil
}

func bufName(buf gpu.Buffer) string {
	if mb, ok := buf.(*mockBuffer); ok {
		return mb.name
	}
	return "?"
}

// newMockContext wires a DrawContext over the mock stack.
func newMockContext(rec *mockRecorder) *DrawContext {
	return NewDrawContext(&DrawContextConfig{
		Device:          &mockDevice{rec: rec},
		Surface:         &mockSurface{rec: rec},
		Depth:           &mockView{name: "depth"},
		CameraBindGroup: &mockBindGroup{name: "camera"},
		LightBindGroup:  &mockBindGroup{name: "light"},
		Pipeline:        &mockPipeline{name: "lit"},
		LightPipeline:   &mockPipeline{name: "light_debug"},
	})
}

var (
	_ gpu.Device            = (*mockDevice)(nil)
	_ gpu.Surface           = (*mockSurface)(nil)
	_ gpu.CommandEncoder    = (*mockEncoder)(nil)
	_ gpu.RenderPassEncoder = (*mockPass)(nil)
)
