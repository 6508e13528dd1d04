// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import "github.com/gogpu/gputypes"

// Buffer represents a GPU buffer resource.
type Buffer interface {
	// Size returns the buffer size in bytes.
	Size() uint64

	// Usage returns the usage flags the buffer was created with.
	Usage() gputypes.BufferUsage

	// Destroy releases the buffer.
	Destroy()
}

// Texture represents a GPU texture resource.
type Texture interface {
	// Width returns the texture width in pixels.
	Width() uint32

	// Height returns the texture height in pixels.
	Height() uint32

	// Format returns the texture pixel format.
	Format() gputypes.TextureFormat

	// CreateView creates a full view of this texture.
	CreateView() (TextureView, error)

	// Destroy releases the texture and any views created from it.
	Destroy()
}

// TextureView represents a view into a texture, used as a render attachment
// or shader binding.
type TextureView interface {
	Destroy()
}

// Sampler represents a texture sampler.
type Sampler interface {
	Destroy()
}

// ShaderModule represents a compiled shader.
type ShaderModule interface {
	Destroy()
}

// BindGroupLayout describes the binding slots of one bind group.
type BindGroupLayout interface {
	Destroy()
}

// PipelineLayout describes the bind group layouts of a pipeline.
type PipelineLayout interface {
	Destroy()
}

// BindGroup binds concrete resources to a BindGroupLayout.
type BindGroup interface {
	Destroy()
}

// RenderPipeline represents a configured render pipeline.
type RenderPipeline interface {
	Destroy()
}

// CommandBuffer is a finished, submittable recording. It is consumed by
// Queue.Submit and must not be submitted twice.
type CommandBuffer interface{}

// BufferDescriptor describes parameters for creating a buffer.
type BufferDescriptor struct {
	// Label is an optional debug label.
	Label string

	// Size is the buffer size in bytes.
	Size uint64

	// Usage specifies how the buffer will be used.
	Usage gputypes.BufferUsage
}

// TextureDescriptor describes parameters for creating a texture.
type TextureDescriptor struct {
	// Label is an optional debug label.
	Label string

	// Width is the texture width in pixels.
	Width uint32

	// Height is the texture height in pixels.
	Height uint32

	// MipLevelCount is the number of mipmap levels. Use 1 for no mipmaps.
	MipLevelCount uint32

	// SampleCount is the number of samples for multisampling. Use 1 for
	// no multisampling.
	SampleCount uint32

	// Format is the texture pixel format.
	Format gputypes.TextureFormat

	// Usage specifies how the texture will be used.
	Usage gputypes.TextureUsage
}

// DefaultTextureDescriptor returns a TextureDescriptor with sensible
// defaults. Only Width, Height, and Format need to be set.
func DefaultTextureDescriptor(width, height uint32, format gputypes.TextureFormat) TextureDescriptor {
	return TextureDescriptor{
		Width:         width,
		Height:        height,
		MipLevelCount: 1,
		SampleCount:   1,
		Format:        format,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageRenderAttachment,
	}
}

// SamplerDescriptor describes parameters for creating a sampler.
type SamplerDescriptor struct {
	// Label is an optional debug label.
	Label string

	// AddressModeU controls wrapping along the U axis.
	AddressModeU gputypes.AddressMode

	// AddressModeV controls wrapping along the V axis.
	AddressModeV gputypes.AddressMode

	// AddressModeW controls wrapping along the W axis.
	AddressModeW gputypes.AddressMode

	// MagFilter is the filter used when a texel covers multiple pixels.
	MagFilter gputypes.FilterMode

	// MinFilter is the filter used when multiple texels cover one pixel.
	MinFilter gputypes.FilterMode

	// MipmapFilter is the filter used between mip levels.
	MipmapFilter gputypes.FilterMode
}

// ShaderModuleDescriptor describes a shader module compiled from WGSL.
type ShaderModuleDescriptor struct {
	// Label is an optional debug label.
	Label string

	// WGSL is the shader source. The backend compiles it for the target
	// API (SPIR-V on Vulkan).
	WGSL string
}

// BindGroupLayoutDescriptor describes the binding slots of a bind group.
type BindGroupLayoutDescriptor struct {
	// Label is an optional debug label.
	Label string

	// Entries describe each binding slot.
	Entries []gputypes.BindGroupLayoutEntry
}

// PipelineLayoutDescriptor describes the bind group layouts of a pipeline.
// The slice index is the group slot each layout occupies.
type PipelineLayoutDescriptor struct {
	// Label is an optional debug label.
	Label string

	// BindGroupLayouts are the layouts for group slots 0..n-1.
	BindGroupLayouts []BindGroupLayout
}

// BindGroupEntry binds one resource to a binding slot. Exactly one of
// Buffer, TextureView, or Sampler must be set.
type BindGroupEntry struct {
	// Binding is the slot number matching the layout entry.
	Binding uint32

	// Buffer is the bound buffer, for buffer bindings.
	Buffer Buffer

	// Offset is the byte offset into Buffer.
	Offset uint64

	// BufferSize is the bound range in bytes. Zero means the whole buffer
	// from Offset.
	BufferSize uint64

	// TextureView is the bound view, for texture bindings.
	TextureView TextureView

	// Sampler is the bound sampler, for sampler bindings.
	Sampler Sampler
}

// BindGroupDescriptor binds concrete resources to a layout.
type BindGroupDescriptor struct {
	// Label is an optional debug label.
	Label string

	// Layout is the layout the entries must match.
	Layout BindGroupLayout

	// Entries are the resource bindings.
	Entries []BindGroupEntry
}

// VertexState describes the vertex stage of a render pipeline.
type VertexState struct {
	// Module holds the vertex shader.
	Module ShaderModule

	// EntryPoint is the vertex shader entry function name.
	EntryPoint string

	// Buffers describe the vertex buffer slots the pipeline reads.
	Buffers []gputypes.VertexBufferLayout
}

// FragmentState describes the fragment stage of a render pipeline.
type FragmentState struct {
	// Module holds the fragment shader.
	Module ShaderModule

	// EntryPoint is the fragment shader entry function name.
	EntryPoint string

	// Targets describe the color attachments the pipeline writes.
	Targets []gputypes.ColorTargetState
}

// DepthStencilState describes the depth test of a render pipeline.
type DepthStencilState struct {
	// Format is the depth attachment format.
	Format gputypes.TextureFormat

	// DepthWriteEnabled enables writes to the depth attachment.
	DepthWriteEnabled bool

	// DepthCompare is the depth test comparison function.
	DepthCompare gputypes.CompareFunction
}

// RenderPipelineDescriptor describes a render pipeline.
type RenderPipelineDescriptor struct {
	// Label is an optional debug label.
	Label string

	// Layout is the pipeline layout.
	Layout PipelineLayout

	// Vertex is the vertex stage.
	Vertex VertexState

	// Fragment is the fragment stage, or nil for depth-only pipelines.
	Fragment *FragmentState

	// DepthStencil enables the depth test when non-nil.
	DepthStencil *DepthStencilState

	// Primitive controls topology and culling.
	Primitive gputypes.PrimitiveState

	// Multisample controls MSAA. The zero value means single-sampled.
	Multisample gputypes.MultisampleState
}
