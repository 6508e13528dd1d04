// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package forge is a real-time 3D rendering engine built on a deferred
// command-queue model.
//
// Application code draws against a per-frame [DrawContext]: it begins one or
// more render passes, issues high-level draws (meshes, models) or primitive
// state changes, and finally calls [DrawContext.Submit]. Nothing touches the
// GPU while recording; every call appends a typed command to the active
// pass's queue. Submit replays each pass in order against a freshly acquired
// swapchain frame and command encoder, submits the resulting command buffer,
// and presents.
//
// The engine records against the interfaces in the gpu sub-package, so the
// same command stream can be replayed on the gogpu/wgpu backend or on a test
// recorder. Scene geometry (meshes, materials, models) lives in scene/,
// camera and projection math in camera/, and the window/device collaborator
// that owns surfaces, depth textures, and the built-in pipelines in window/.
//
// A minimal frame looks like:
//
//	ctx := win.CreateDrawContext()
//	ctx.BeginRenderPass(forge.Clear(gputypes.Color{}))
//	ctx.DrawModel(model)
//	if err := ctx.Submit(); err != nil { ... }
package forge
