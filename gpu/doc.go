// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gpu defines the device abstraction the engine records against.
//
// The engine never touches a concrete graphics API. It records typed
// commands (package command) and later replays them against the interfaces
// here: a Device that creates resources and command encoders, a Surface that
// hands out presentable textures, and a RenderPassEncoder with one method
// per replayable command. The gogpu/wgpu implementation lives in
// backend/wgpu; tests replay against an in-memory recorder.
//
// Handles (Buffer, Texture, BindGroup, RenderPipeline, ...) are opaque and
// immutable once created. They are shared by ordinary Go references; the
// garbage collector keeps a handle alive for as long as any recorded command
// still references it, which is what lets a command outlive the caller's
// local variables across the deferred replay.
package gpu
