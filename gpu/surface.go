// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import "github.com/gogpu/gputypes"

// Surface hands out presentable textures for a window or offscreen target.
//
// Acquire and Present bracket one frame. Acquire may fail with one of the
// surface error conditions (lost, outdated, out of memory, timeout); the
// backend maps driver errors onto the engine's sentinel errors so the frame
// loop can decide between reconfiguring and giving up.
type Surface interface {
	// Configure sets the surface size and format. Must be called before
	// the first Acquire and again after the window resizes.
	Configure(config *SurfaceConfig) error

	// Acquire returns the next presentable texture.
	Acquire() (SurfaceTexture, error)

	// Format returns the texture format of presentable textures.
	Format() gputypes.TextureFormat

	// Width returns the configured width in pixels.
	Width() uint32

	// Height returns the configured height in pixels.
	Height() uint32

	// Destroy releases the surface and its swapchain textures.
	Destroy()
}

// SurfaceTexture is one acquired frame of a Surface. It is valid from
// Acquire until Present.
type SurfaceTexture interface {
	// View returns the texture view to render into.
	View() TextureView

	// Texture returns the underlying texture.
	Texture() Texture

	// Present queues the frame for display and invalidates the texture.
	Present() error
}

// SurfaceConfig describes the size and format of a Surface.
type SurfaceConfig struct {
	// Width is the surface width in pixels. Zero is clamped to 1.
	Width uint32

	// Height is the surface height in pixels. Zero is clamped to 1.
	Height uint32

	// Format is the texture format. Zero value picks the backend's
	// preferred format.
	Format gputypes.TextureFormat
}
