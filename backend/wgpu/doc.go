// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package wgpu implements the engine's gpu interfaces over the wgpu hal,
// targeting Vulkan. WGSL shaders compile to SPIR-V through naga at module
// creation time.
//
// The package registers itself with the backend registry on import:
//
//	import _ "github.com/gogpu/forge/backend/wgpu"
//
// Surfaces are offscreen: a small ring of render-attachment textures stands
// in for a window swapchain, and ReadPixels copies a presented frame back to
// the CPU. Windowing-system presentation plugs in above this package.
package wgpu
