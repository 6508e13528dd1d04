// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"fmt"
	"unsafe"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/forge"
	"github.com/gogpu/forge/gpu"
)

// swapchainDepth is the number of textures in the offscreen frame ring.
const swapchainDepth = 3

// Surface is an offscreen swapchain: a ring of render-attachment textures
// that stands in for a window surface. Present marks a frame as the latest
// completed one; ReadPixels copies it back to the CPU.
type Surface struct {
	device *Device

	width  uint32
	height uint32
	format gputypes.TextureFormat

	frames        []*texture
	views         []*textureView
	next          int
	lastPresented int
}

type surfaceTexture struct {
	surface *Surface
	tex     *texture
	view    *textureView
	index   int
}

func (t *surfaceTexture) View() gpu.TextureView { return t.view }
func (t *surfaceTexture) Texture() gpu.Texture  { return t.tex }

func (t *surfaceTexture) Present() error {
	t.surface.lastPresented = t.index
	return nil
}

// Configure sizes the frame ring, releasing any previous one. A zero format
// keeps BGRA8Unorm, the format window compositors expect.
func (s *Surface) Configure(config *gpu.SurfaceConfig) error {
	width, height := config.Width, config.Height
	if width == 0 {
		width = 1
	}
	if height == 0 {
		height = 1
	}
	format := config.Format
	if format == gputypes.TextureFormatUndefined {
		format = gputypes.TextureFormatBGRA8Unorm
	}

	s.release()

	frames := make([]*texture, 0, swapchainDepth)
	views := make([]*textureView, 0, swapchainDepth)
	for i := 0; i < swapchainDepth; i++ {
		tex, err := s.device.CreateTexture(&gpu.TextureDescriptor{
			Label:         fmt.Sprintf("forge_swapchain_%d", i),
			Width:         width,
			Height:        height,
			MipLevelCount: 1,
			SampleCount:   1,
			Format:        format,
			Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
		})
		if err != nil {
			for _, t := range frames {
				t.Destroy()
			}
			return fmt.Errorf("wgpu: create swapchain texture: %w: %w", forge.ErrSurfaceOutOfMemory, err)
		}
		view, err := tex.CreateView()
		if err != nil {
			tex.Destroy()
			for j, t := range frames {
				views[j].Destroy()
				t.Destroy()
			}
			return fmt.Errorf("wgpu: create swapchain view: %w", err)
		}
		frames = append(frames, tex.(*texture))
		views = append(views, view.(*textureView))
	}

	s.width, s.height, s.format = width, height, format
	s.frames, s.views = frames, views
	s.next = 0
	s.lastPresented = -1
	return nil
}

// Acquire returns the next frame in the ring.
func (s *Surface) Acquire() (gpu.SurfaceTexture, error) {
	if len(s.frames) == 0 {
		return nil, fmt.Errorf("wgpu: surface not configured: %w", forge.ErrSurfaceLost)
	}
	i := s.next
	s.next = (s.next + 1) % len(s.frames)
	return &surfaceTexture{surface: s, tex: s.frames[i], view: s.views[i], index: i}, nil
}

// Format returns the frame texture format.
func (s *Surface) Format() gputypes.TextureFormat {
	if s.format == gputypes.TextureFormatUndefined {
		return gputypes.TextureFormatBGRA8Unorm
	}
	return s.format
}

// Width returns the configured width.
func (s *Surface) Width() uint32 { return s.width }

// Height returns the configured height.
func (s *Surface) Height() uint32 { return s.height }

// Destroy releases the frame ring.
func (s *Surface) Destroy() { s.release() }

func (s *Surface) release() {
	for _, v := range s.views {
		v.Destroy()
	}
	for _, t := range s.frames {
		t.Destroy()
	}
	s.frames, s.views = nil, nil
	s.lastPresented = -1
}

// ReadPixels copies the most recently presented frame into a tightly packed
// pixel slice (4 bytes per pixel, row-major). It blocks until the copy
// completes.
func (s *Surface) ReadPixels() ([]byte, error) {
	if s.lastPresented < 0 {
		return nil, fmt.Errorf("wgpu: no frame presented yet")
	}
	frame := s.frames[s.lastPresented]

	encoder, err := s.device.raw.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "forge_readback_encoder",
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create readback encoder: %w", err)
	}
	if err := encoder.BeginEncoding("forge_readback"); err != nil {
		return nil, fmt.Errorf("wgpu: begin readback encoding: %w", err)
	}

	// The frame leaves the render pass in attachment layout; the copy needs
	// transfer-source layout.
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: frame.raw,
		Range:   hal.TextureRange{Aspect: gputypes.TextureAspectAll},
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})

	size := uint64(s.width) * uint64(s.height) * 4
	staging, err := s.device.raw.CreateBuffer(&hal.BufferDescriptor{
		Label: "forge_readback_staging",
		Size:  size,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		encoder.DiscardEncoding()
		return nil, fmt.Errorf("wgpu: create staging buffer: %w", err)
	}
	defer s.device.raw.DestroyBuffer(staging)

	encoder.CopyTextureToBuffer(frame.raw, staging, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: s.width * 4, RowsPerImage: s.height},
		TextureBase:  hal.ImageCopyTexture{Texture: frame.raw, MipLevel: 0, Aspect: gputypes.TextureAspectAll},
		Size:         hal.Extent3D{Width: s.width, Height: s.height, DepthOrArrayLayers: 1},
	}})

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return nil, fmt.Errorf("wgpu: end readback encoding: %w", err)
	}
	defer s.device.raw.FreeCommandBuffer(cmdBuf)

	if _, err := s.device.queue.raw.Submit([]hal.CommandBuffer{cmdBuf}); err != nil {
		return nil, fmt.Errorf("wgpu: submit readback: %w", err)
	}
	if err := s.device.raw.WaitIdle(); err != nil {
		return nil, fmt.Errorf("wgpu: wait for readback: %w", err)
	}

	mapping, err := s.device.raw.MapBuffer(staging, 0, size)
	if err != nil {
		return nil, fmt.Errorf("wgpu: map staging buffer: %w", err)
	}
	pixels := make([]byte, size)
	copy(pixels, unsafe.Slice((*byte)(mapping.Ptr), size))
	if err := s.device.raw.UnmapBuffer(staging); err != nil {
		return nil, fmt.Errorf("wgpu: unmap staging buffer: %w", err)
	}
	return pixels, nil
}

var (
	_ gpu.Surface        = (*Surface)(nil)
	_ gpu.SurfaceTexture = (*surfaceTexture)(nil)
)
