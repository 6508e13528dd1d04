// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package forge

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/forge/command"
	"github.com/gogpu/forge/scene"
)

func TestDrawContext_OrderPreservation(t *testing.T) {
	rec := newMockRecorder()
	ctx := newMockContext(rec)

	ctx.BeginRenderPass(Clear(gputypes.Color{}))
	ctx.SetPipeline(&mockPipeline{name: "p1"})
	ctx.SetViewport(0, 0, 800, 600, 0, 1)
	ctx.SetScissorRect(10, 20, 100, 200)
	ctx.SetStencilReference(7)
	ctx.SetBlendConstant(gputypes.Color{R: 1})
	ctx.SetVertexBuffer(0, &mockBuffer{name: "verts"})
	ctx.SetIndexBuffer(&mockBuffer{name: "indices"}, gputypes.IndexFormatUint32)
	ctx.Draw(command.Range{End: 3}, command.Range{End: 1})
	ctx.DrawIndexed(command.Range{Start: 6, End: 12}, -2, command.Range{End: 4})
	ctx.DrawIndirect(&mockBuffer{name: "args"}, 16)
	ctx.DrawIndexedIndirect(&mockBuffer{name: "args"}, 32)
	ctx.PushDebugGroup("group")
	ctx.InsertDebugMarker("mark")
	ctx.PopDebugGroup()

	if err := ctx.Submit(); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	want := []string{
		"acquire",
		"createEncoder",
		"beginRenderPass",
		"setPipeline(p1)",
		"setViewport(0,0,800,600)",
		"setScissorRect(10,20,100,200)",
		"setStencilReference(7)",
		"setBlendConstant(1.0,0.0,0.0,0.0)",
		"setVertexBuffer(0, verts)",
		"setIndexBuffer(indices)",
		"draw(3,1,0,0)",
		"drawIndexed(6,4,6,-2,0)",
		"drawIndirect(args, 16)",
		"drawIndexedIndirect(args, 32)",
		"pushGroup(group)",
		"marker(mark)",
		"popGroup",
		"endRenderPass",
		"finish",
		"submit(1)",
		"present",
	}
	if !reflect.DeepEqual(rec.events, want) {
		t.Errorf("replay order mismatch:\ngot:  %v\nwant: %v", rec.events, want)
	}
}

func TestDrawContext_PassIsolation(t *testing.T) {
	rec := newMockRecorder()
	ctx := newMockContext(rec)

	ctx.BeginRenderPass(Clear(gputypes.Color{}))
	ctx.SetPipeline(&mockPipeline{name: "first"})
	ctx.BeginRenderPass(LoadFromMemory())
	ctx.SetPipeline(&mockPipeline{name: "second"})

	if err := ctx.Submit(); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	// Commands recorded after the second BeginRenderPass must replay
	// strictly after the first pass ends, and vice versa.
	firstEnd := indexOf(rec.events, "endRenderPass")
	secondPipeline := indexOf(rec.events, "setPipeline(second)")
	if firstEnd < 0 || secondPipeline < 0 {
		t.Fatalf("missing events in %v", rec.events)
	}
	if secondPipeline < firstEnd {
		t.Errorf("pass 2 command replayed inside pass 1: %v", rec.events)
	}
	if got := indexOf(rec.events[firstEnd:], "setPipeline(first)"); got >= 0 {
		t.Errorf("pass 1 command replayed after pass 1 ended: %v", rec.events)
	}
}

func TestDrawContext_ClearVsLoad(t *testing.T) {
	rec := newMockRecorder()
	ctx := newMockContext(rec)

	red := gputypes.Color{R: 1, A: 1}
	ctx.BeginRenderPass(Clear(red))
	ctx.BeginRenderPass(LoadFromMemory())

	if err := ctx.Submit(); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if len(rec.descriptors) != 2 {
		t.Fatalf("got %d pass descriptors, want 2", len(rec.descriptors))
	}

	clearDesc := rec.descriptors[0]
	if got := clearDesc.ColorAttachments[0].LoadOp; got != gputypes.LoadOpClear {
		t.Errorf("clear pass color LoadOp = %v, want LoadOpClear", got)
	}
	if got := clearDesc.ColorAttachments[0].ClearValue; got != red {
		t.Errorf("clear pass color = %+v, want %+v", got, red)
	}
	if got := clearDesc.DepthStencilAttachment.DepthLoadOp; got != gputypes.LoadOpClear {
		t.Errorf("clear pass depth LoadOp = %v, want LoadOpClear", got)
	}
	if got := clearDesc.DepthStencilAttachment.DepthClearValue; got != 1.0 {
		t.Errorf("depth clear value = %v, want 1.0", got)
	}

	loadDesc := rec.descriptors[1]
	if got := loadDesc.ColorAttachments[0].LoadOp; got != gputypes.LoadOpLoad {
		t.Errorf("load pass color LoadOp = %v, want LoadOpLoad", got)
	}
	if got := loadDesc.DepthStencilAttachment.DepthLoadOp; got != gputypes.LoadOpLoad {
		t.Errorf("load pass depth LoadOp = %v, want LoadOpLoad", got)
	}

	// Results are always stored so a later pass can load them.
	for i, d := range rec.descriptors {
		if d.ColorAttachments[0].StoreOp != gputypes.StoreOpStore {
			t.Errorf("pass %d color StoreOp != Store", i)
		}
		if d.DepthStencilAttachment.DepthStoreOp != gputypes.StoreOpStore {
			t.Errorf("pass %d depth StoreOp != Store", i)
		}
	}
}

func TestDrawContext_TransferBeforeDraw(t *testing.T) {
	rec := newMockRecorder()
	ctx := newMockContext(rec)

	src := &mockBuffer{name: "staging", size: 256}
	dst := &mockBuffer{name: "uniform", size: 256}

	// Interleave copies between draws; replay must still hoist every copy
	// before the pass opens.
	ctx.BeginRenderPass(Clear(gputypes.Color{}))
	ctx.SetPipeline(&mockPipeline{name: "p"})
	ctx.CopyBuffer(src, 0, dst, 0, 64)
	ctx.Draw(command.Range{End: 3}, command.Range{End: 1})
	ctx.CopyBuffer(src, 64, dst, 64, 64)

	if err := ctx.Submit(); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	begin := indexOf(rec.events, "beginRenderPass")
	for i, ev := range rec.events {
		if strings.HasPrefix(ev, "copy(") && i > begin {
			t.Errorf("transfer replayed inside render pass: %v", rec.events)
		}
	}
	first := indexOf(rec.events, "copy(staging+0 -> uniform+0, 64)")
	second := indexOf(rec.events, "copy(staging+64 -> uniform+64, 64)")
	if first < 0 || second < 0 || second < first {
		t.Errorf("transfer order not preserved: %v", rec.events)
	}
}

func TestDrawContext_ModelExpansion(t *testing.T) {
	rec := newMockRecorder()
	ctx := newMockContext(rec)

	model := &scene.Model{
		Materials: []scene.Material{
			{Name: "stone", BindGroup: &mockBindGroup{name: "stone"}},
			{Name: "wood", BindGroup: &mockBindGroup{name: "wood"}},
		},
		Meshes: []scene.Mesh{
			{Name: "a", VertexBuffer: &mockBuffer{name: "va"}, IndexBuffer: &mockBuffer{name: "ia"}, NumElements: 36, MaterialIndex: 0},
			{Name: "b", VertexBuffer: &mockBuffer{name: "vb"}, IndexBuffer: &mockBuffer{name: "ib"}, NumElements: 12, MaterialIndex: 1},
			{Name: "c", VertexBuffer: &mockBuffer{name: "vc"}, IndexBuffer: &mockBuffer{name: "ic"}, NumElements: 60, MaterialIndex: 0},
		},
	}

	ctx.BeginRenderPass(Clear(gputypes.Color{}))
	ctx.DrawModelInstanced(model, command.Range{Start: 0, End: 4})

	if err := ctx.Submit(); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	// One pipeline bind, then per mesh in order: vertex buffer, index
	// buffer, material/camera/light groups, indexed draw over 0..4.
	want := []string{
		"setPipeline(lit)",
		"setVertexBuffer(0, va)", "setIndexBuffer(ia)",
		"setBindGroup(0, stone)", "setBindGroup(1, camera)", "setBindGroup(2, light)",
		"drawIndexed(36,4,0,0,0)",
		"setVertexBuffer(0, vb)", "setIndexBuffer(ib)",
		"setBindGroup(0, wood)", "setBindGroup(1, camera)", "setBindGroup(2, light)",
		"drawIndexed(12,4,0,0,0)",
		"setVertexBuffer(0, vc)", "setIndexBuffer(ic)",
		"setBindGroup(0, stone)", "setBindGroup(1, camera)", "setBindGroup(2, light)",
		"drawIndexed(60,4,0,0,0)",
	}
	got := between(rec.events, "beginRenderPass", "endRenderPass")
	if !reflect.DeepEqual(got, want) {
		t.Errorf("model expansion mismatch:\ngot:  %v\nwant: %v", got, want)
	}
}

func TestDrawContext_DrawMeshExample(t *testing.T) {
	rec := newMockRecorder()
	ctx := newMockContext(rec)

	mesh := &scene.Mesh{
		VertexBuffer: &mockBuffer{name: "v"},
		IndexBuffer:  &mockBuffer{name: "i"},
		NumElements:  36,
	}
	material := &scene.Material{BindGroup: &mockBindGroup{name: "mat"}}

	ctx.BeginRenderPass(Clear(gputypes.Color{})) // black
	ctx.DrawMesh(mesh, material)

	if err := ctx.Submit(); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	want := []string{
		"setPipeline(lit)",
		"setVertexBuffer(0, v)",
		"setIndexBuffer(i)",
		"setBindGroup(0, mat)",
		"setBindGroup(1, camera)",
		"setBindGroup(2, light)",
		"drawIndexed(36,1,0,0,0)",
	}
	got := between(rec.events, "beginRenderPass", "endRenderPass")
	if !reflect.DeepEqual(got, want) {
		t.Errorf("mesh expansion mismatch:\ngot:  %v\nwant: %v", got, want)
	}
}

func TestDrawContext_LightMesh(t *testing.T) {
	rec := newMockRecorder()
	ctx := newMockContext(rec)

	mesh := &scene.Mesh{
		VertexBuffer: &mockBuffer{name: "v"},
		IndexBuffer:  &mockBuffer{name: "i"},
		NumElements:  24,
	}

	ctx.BeginRenderPass(Clear(gputypes.Color{}))
	ctx.DrawLightMesh(mesh)

	if err := ctx.Submit(); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	// Light geometry has no material: camera at slot 0, light at slot 1.
	want := []string{
		"setPipeline(light_debug)",
		"setVertexBuffer(0, v)",
		"setIndexBuffer(i)",
		"setBindGroup(0, camera)",
		"setBindGroup(1, light)",
		"drawIndexed(24,1,0,0,0)",
	}
	got := between(rec.events, "beginRenderPass", "endRenderPass")
	if !reflect.DeepEqual(got, want) {
		t.Errorf("light mesh expansion mismatch:\ngot:  %v\nwant: %v", got, want)
	}
}

func TestDrawContext_FailureShortCircuit(t *testing.T) {
	rec := newMockRecorder()
	ctx := newMockContext(rec)

	// Pass 2's acquire (the second acquire overall) fails.
	rec.acquireErrs[1] = ErrSurfaceOutdated

	ctx.BeginRenderPass(Clear(gputypes.Color{}))
	ctx.SetPipeline(&mockPipeline{name: "p1"})
	ctx.BeginRenderPass(LoadFromMemory())
	ctx.SetPipeline(&mockPipeline{name: "p2"})
	ctx.BeginRenderPass(LoadFromMemory())
	ctx.SetPipeline(&mockPipeline{name: "p3"})
	pass3 := ctx.passes[2]

	err := ctx.Submit()
	if !errors.Is(err, ErrSurfaceOutdated) {
		t.Fatalf("Submit() error = %v, want ErrSurfaceOutdated", err)
	}

	// Pass 3 was never replayed and its commands were not cleared.
	if got := indexOf(rec.events, "setPipeline(p3)"); got >= 0 {
		t.Errorf("pass 3 replayed after pass 2 failed: %v", rec.events)
	}
	if pass3.queue.IsEmpty() {
		t.Error("pass 3 queue cleared despite never being replayed")
	}

	// The error is recoverable; the frame loop may reconfigure and retry
	// with a fresh context.
	if !IsRecoverable(err) {
		t.Errorf("IsRecoverable(%v) = false, want true", err)
	}
}

func TestDrawContext_SubmitTwice(t *testing.T) {
	rec := newMockRecorder()
	ctx := newMockContext(rec)

	ctx.BeginRenderPass(Clear(gputypes.Color{}))
	if err := ctx.Submit(); err != nil {
		t.Fatalf("first Submit() error = %v", err)
	}
	if err := ctx.Submit(); !errors.Is(err, ErrContextSubmitted) {
		t.Errorf("second Submit() error = %v, want ErrContextSubmitted", err)
	}
}

func TestDrawContext_DrawWithoutPassPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("draw call before BeginRenderPass should panic")
		}
	}()

	ctx := newMockContext(newMockRecorder())
	ctx.SetPipeline(&mockPipeline{name: "p"})
}

func TestDrawContext_UseAfterSubmitPanics(t *testing.T) {
	submitted := func(t *testing.T) *DrawContext {
		t.Helper()
		ctx := newMockContext(newMockRecorder())
		ctx.BeginRenderPass(Clear(gputypes.Color{}))
		if err := ctx.Submit(); err != nil {
			t.Fatalf("Submit() error = %v", err)
		}
		return ctx
	}

	t.Run("BeginRenderPass", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("BeginRenderPass on a submitted context should panic")
			}
		}()
		submitted(t).BeginRenderPass(Clear(gputypes.Color{}))
	})

	t.Run("Draw", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("draw call on a submitted context should panic")
			}
		}()
		submitted(t).SetPipeline(&mockPipeline{name: "p"})
	})
}

func TestIsRecoverable(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{ErrSurfaceLost, true},
		{ErrSurfaceOutdated, true},
		{ErrSurfaceTimeout, true},
		{ErrSurfaceOutOfMemory, false},
		{ErrContextSubmitted, false},
		{errors.New("other"), false},
	}
	for _, tt := range tests {
		if got := IsRecoverable(tt.err); got != tt.want {
			t.Errorf("IsRecoverable(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func indexOf(events []string, ev string) int {
	for i, e := range events {
		if e == ev {
			return i
		}
	}
	return -1
}

// between returns the events strictly between the first occurrence of start
// and the next occurrence of end.
func between(events []string, start, end string) []string {
	from := indexOf(events, start)
	if from < 0 {
		return nil
	}
	out := []string{}
	for _, e := range events[from+1:] {
		if e == end {
			break
		}
		out = append(out, e)
	}
	return out
}
