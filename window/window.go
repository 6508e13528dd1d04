// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package window

import (
	_ "embed"
	"fmt"
	"time"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/forge"
	"github.com/gogpu/forge/camera"
	"github.com/gogpu/forge/gpu"
	"github.com/gogpu/forge/internal/cache"
	"github.com/gogpu/forge/light"
	"github.com/gogpu/forge/scene"
)

//go:embed shaders/basic.wgsl
var basicShaderSource string

//go:embed shaders/light.wgsl
var lightShaderSource string

// DefaultDepthFormat is the depth attachment format windows use unless an
// option overrides it.
const DefaultDepthFormat = gputypes.TextureFormatDepth24PlusStencil8

// shaderCacheCapacity bounds the compiled shader module cache. The built-in
// pipelines need two entries; the rest is headroom for application shaders.
const shaderCacheCapacity = 32

// Option configures a RenderWindow at creation.
type Option func(*RenderWindow)

// WithCameraTuning overrides the controller's movement speed and rotation
// sensitivity.
func WithCameraTuning(speed, sensitivity float32) Option {
	return func(w *RenderWindow) {
		w.controller.Speed = speed
		w.controller.Sensitivity = sensitivity
	}
}

// WithDepthFormat overrides the depth attachment format.
func WithDepthFormat(format gputypes.TextureFormat) Option {
	return func(w *RenderWindow) { w.depthFormat = format }
}

// WithLight overrides the initial light uniform.
func WithLight(u light.Uniform) Option {
	return func(w *RenderWindow) { w.light = u }
}

// RenderWindow is the long-lived render state for one surface: depth
// attachment, camera and light uniforms, bind group layouts, and the default
// pipelines. It creates a fresh DrawContext each frame via CreateDrawContext.
//
// RenderWindow is not safe for concurrent use; drive it from the frame loop
// goroutine.
type RenderWindow struct {
	device  gpu.Device
	surface gpu.Surface
	width   uint32
	height  uint32

	depthFormat  gputypes.TextureFormat
	depthTexture gpu.Texture
	depthView    gpu.TextureView

	shaders *cache.LRU[string, gpu.ShaderModule]

	materialLayout gpu.BindGroupLayout
	cameraLayout   gpu.BindGroupLayout
	lightLayout    gpu.BindGroupLayout

	litPipeLayout   gpu.PipelineLayout
	lightPipeLayout gpu.PipelineLayout

	cameraBuffer gpu.Buffer
	lightBuffer  gpu.Buffer
	cameraGroup  gpu.BindGroup
	lightGroup   gpu.BindGroup

	pipeline      gpu.RenderPipeline
	lightPipeline gpu.RenderPipeline

	camera     *camera.Camera
	projection *camera.Projection
	controller *camera.Controller
	light      light.Uniform
}

// New creates a RenderWindow over an already-opened device and surface,
// configures the surface to width x height, and builds the depth attachment,
// uniform buffers, bind groups, and default pipelines.
func New(device gpu.Device, surface gpu.Surface, width, height uint32, opts ...Option) (*RenderWindow, error) {
	w := &RenderWindow{
		device:      device,
		surface:     surface,
		width:       width,
		height:      height,
		depthFormat: DefaultDepthFormat,
		camera:      camera.Default(),
		projection:  camera.DefaultProjection(width, height),
		controller:  camera.NewController(camera.DefaultSpeed, camera.DefaultSensitivity),
		light:       light.Default(),
	}
	w.shaders = cache.NewLRU[string, gpu.ShaderModule](shaderCacheCapacity, func(_ string, m gpu.ShaderModule) {
		m.Destroy()
	})
	for _, opt := range opts {
		opt(w)
	}

	if err := surface.Configure(&gpu.SurfaceConfig{Width: width, Height: height, Format: surface.Format()}); err != nil {
		return nil, fmt.Errorf("configure surface: %w", err)
	}
	if err := w.createDepthAttachment(width, height); err != nil {
		return nil, err
	}
	if err := w.createLayouts(); err != nil {
		return nil, err
	}
	if err := w.createUniforms(); err != nil {
		return nil, err
	}
	if err := w.createPipelines(); err != nil {
		return nil, err
	}

	if err := w.WriteCameraBuffer(); err != nil {
		return nil, err
	}
	if err := w.SetLight(w.light); err != nil {
		return nil, err
	}

	forge.Logger().Info("render window ready",
		"width", width, "height", height,
		"surface_format", surface.Format(),
		"depth_format", w.depthFormat)
	return w, nil
}

// CreateDrawContext creates the drawing context for one frame, snapshotting
// the current surface, depth view, bind groups, and pipelines.
func (w *RenderWindow) CreateDrawContext() *forge.DrawContext {
	return forge.NewDrawContext(&forge.DrawContextConfig{
		Device:          w.device,
		Surface:         w.surface,
		Depth:           w.depthView,
		CameraBindGroup: w.cameraGroup,
		LightBindGroup:  w.lightGroup,
		Pipeline:        w.pipeline,
		LightPipeline:   w.lightPipeline,
	})
}

// Resize reconfigures the surface and replaces the depth attachment. Zero
// dimensions are ignored (minimized window). Contexts created before the
// resize keep rendering into the old attachments; submit or drop them first.
func (w *RenderWindow) Resize(width, height uint32) error {
	if width == 0 || height == 0 {
		return nil
	}
	if err := w.surface.Configure(&gpu.SurfaceConfig{Width: width, Height: height, Format: w.surface.Format()}); err != nil {
		return fmt.Errorf("configure surface: %w", err)
	}

	oldView, oldTexture := w.depthView, w.depthTexture
	if err := w.createDepthAttachment(width, height); err != nil {
		return err
	}
	if oldView != nil {
		oldView.Destroy()
	}
	if oldTexture != nil {
		oldTexture.Destroy()
	}

	w.width, w.height = width, height
	w.projection.Resize(width, height)
	forge.Logger().Debug("window resized", "width", width, "height", height)
	return w.WriteCameraBuffer()
}

// UpdateCamera applies one frame of controller input to the camera and
// uploads the resulting uniform.
func (w *RenderWindow) UpdateCamera(dt time.Duration) error {
	w.controller.Update(w.camera, dt)
	return w.WriteCameraBuffer()
}

// WriteCameraBuffer uploads the camera uniform for the current camera and
// projection.
func (w *RenderWindow) WriteCameraBuffer() error {
	u := camera.NewUniform(w.camera, w.projection)
	if err := w.device.Queue().WriteBuffer(w.cameraBuffer, 0, u.Bytes()); err != nil {
		return fmt.Errorf("write camera buffer: %w", err)
	}
	return nil
}

// SetLight stores and uploads a new light uniform.
func (w *RenderWindow) SetLight(u light.Uniform) error {
	w.light = u
	if err := w.device.Queue().WriteBuffer(w.lightBuffer, 0, u.Bytes()); err != nil {
		return fmt.Errorf("write light buffer: %w", err)
	}
	return nil
}

// Device returns the device the window renders on.
func (w *RenderWindow) Device() gpu.Device { return w.device }

// Surface returns the surface the window presents to.
func (w *RenderWindow) Surface() gpu.Surface { return w.surface }

// Size returns the current surface size in pixels.
func (w *RenderWindow) Size() (width, height uint32) { return w.width, w.height }

// Camera returns the window's camera for direct manipulation.
func (w *RenderWindow) Camera() *camera.Camera { return w.camera }

// Controller returns the camera controller input events feed into.
func (w *RenderWindow) Controller() *camera.Controller { return w.controller }

// Projection returns the window's projection.
func (w *RenderWindow) Projection() *camera.Projection { return w.projection }

// Light returns the current light uniform.
func (w *RenderWindow) Light() light.Uniform { return w.light }

// Pipeline returns the default lit-geometry pipeline.
func (w *RenderWindow) Pipeline() gpu.RenderPipeline { return w.pipeline }

// LightPipeline returns the light-geometry pipeline.
func (w *RenderWindow) LightPipeline() gpu.RenderPipeline { return w.lightPipeline }

// MaterialLayout returns the bind group layout materials are built against
// (binding 0 diffuse texture, binding 1 sampler).
func (w *RenderWindow) MaterialLayout() gpu.BindGroupLayout { return w.materialLayout }

// Destroy releases everything the window created. The device and surface
// are the caller's and stay alive.
func (w *RenderWindow) Destroy() {
	w.shaders.Clear()
	for _, d := range []interface{ Destroy() }{
		w.pipeline, w.lightPipeline,
		w.litPipeLayout, w.lightPipeLayout,
		w.cameraGroup, w.lightGroup,
		w.cameraBuffer, w.lightBuffer,
		w.materialLayout, w.cameraLayout, w.lightLayout,
		w.depthView, w.depthTexture,
	} {
		if d != nil {
			d.Destroy()
		}
	}
}

func (w *RenderWindow) createDepthAttachment(width, height uint32) error {
	tex, err := w.device.CreateTexture(&gpu.TextureDescriptor{
		Label:         "forge_depth",
		Width:         width,
		Height:        height,
		MipLevelCount: 1,
		SampleCount:   1,
		Format:        w.depthFormat,
		Usage:         gputypes.TextureUsageRenderAttachment,
	})
	if err != nil {
		return fmt.Errorf("create depth texture: %w", err)
	}
	view, err := tex.CreateView()
	if err != nil {
		tex.Destroy()
		return fmt.Errorf("create depth view: %w", err)
	}
	w.depthTexture = tex
	w.depthView = view
	return nil
}

func (w *RenderWindow) createLayouts() error {
	// Material: diffuse texture + sampler, fragment only.
	materialLayout, err := w.device.CreateBindGroupLayout(&gpu.BindGroupLayoutDescriptor{
		Label: "forge_material_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create material layout: %w", err)
	}
	w.materialLayout = materialLayout

	// Camera and light: one uniform buffer each, visible to both stages.
	uniformEntry := []gputypes.BindGroupLayoutEntry{
		{
			Binding:    0,
			Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
			Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
		},
	}
	cameraLayout, err := w.device.CreateBindGroupLayout(&gpu.BindGroupLayoutDescriptor{
		Label:   "forge_camera_layout",
		Entries: uniformEntry,
	})
	if err != nil {
		return fmt.Errorf("create camera layout: %w", err)
	}
	w.cameraLayout = cameraLayout

	lightLayout, err := w.device.CreateBindGroupLayout(&gpu.BindGroupLayoutDescriptor{
		Label:   "forge_light_layout",
		Entries: uniformEntry,
	})
	if err != nil {
		return fmt.Errorf("create light layout: %w", err)
	}
	w.lightLayout = lightLayout
	return nil
}

func (w *RenderWindow) createUniforms() error {
	cameraBuffer, err := w.device.CreateBuffer(&gpu.BufferDescriptor{
		Label: "forge_camera_buffer",
		Size:  camera.UniformSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create camera buffer: %w", err)
	}
	w.cameraBuffer = cameraBuffer

	lightBuffer, err := w.device.CreateBuffer(&gpu.BufferDescriptor{
		Label: "forge_light_buffer",
		Size:  light.UniformSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create light buffer: %w", err)
	}
	w.lightBuffer = lightBuffer

	cameraGroup, err := w.device.CreateBindGroup(&gpu.BindGroupDescriptor{
		Label:  "forge_camera_group",
		Layout: w.cameraLayout,
		Entries: []gpu.BindGroupEntry{
			{Binding: 0, Buffer: w.cameraBuffer},
		},
	})
	if err != nil {
		return fmt.Errorf("create camera bind group: %w", err)
	}
	w.cameraGroup = cameraGroup

	lightGroup, err := w.device.CreateBindGroup(&gpu.BindGroupDescriptor{
		Label:  "forge_light_group",
		Layout: w.lightLayout,
		Entries: []gpu.BindGroupEntry{
			{Binding: 0, Buffer: w.lightBuffer},
		},
	})
	if err != nil {
		return fmt.Errorf("create light bind group: %w", err)
	}
	w.lightGroup = lightGroup
	return nil
}

// ShaderModule compiles WGSL source through the window's shader cache.
// Identical sources share one module.
func (w *RenderWindow) ShaderModule(label, source string) (gpu.ShaderModule, error) {
	return w.shaders.GetOrCreate(source, func() (gpu.ShaderModule, error) {
		return w.device.CreateShaderModule(&gpu.ShaderModuleDescriptor{Label: label, WGSL: source})
	})
}

func (w *RenderWindow) createPipelines() error {
	basicShader, err := w.ShaderModule("forge_basic_shader", basicShaderSource)
	if err != nil {
		return fmt.Errorf("compile basic shader: %w", err)
	}
	lightShader, err := w.ShaderModule("forge_light_shader", lightShaderSource)
	if err != nil {
		return fmt.Errorf("compile light shader: %w", err)
	}

	litLayout, err := w.device.CreatePipelineLayout(&gpu.PipelineLayoutDescriptor{
		Label:            "forge_lit_pipe_layout",
		BindGroupLayouts: []gpu.BindGroupLayout{w.materialLayout, w.cameraLayout, w.lightLayout},
	})
	if err != nil {
		return fmt.Errorf("create lit pipeline layout: %w", err)
	}
	w.litPipeLayout = litLayout

	pipeline, err := w.device.CreateRenderPipeline(&gpu.RenderPipelineDescriptor{
		Label:  "forge_lit_pipeline",
		Layout: litLayout,
		Vertex: gpu.VertexState{
			Module:     basicShader,
			EntryPoint: "vs_main",
			Buffers:    []gputypes.VertexBufferLayout{scene.VertexLayout(), scene.InstanceLayout()},
		},
		Fragment: &gpu.FragmentState{
			Module:     basicShader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{Format: w.surface.Format(), WriteMask: gputypes.ColorWriteMaskAll},
			},
		},
		DepthStencil: &gpu.DepthStencilState{
			Format:            w.depthFormat,
			DepthWriteEnabled: true,
			DepthCompare:      gputypes.CompareFunctionLess,
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeBack,
		},
		Multisample: gputypes.MultisampleState{Count: 1, Mask: 0xFFFFFFFF},
	})
	if err != nil {
		return fmt.Errorf("create lit pipeline: %w", err)
	}
	w.pipeline = pipeline

	lightLayout, err := w.device.CreatePipelineLayout(&gpu.PipelineLayoutDescriptor{
		Label:            "forge_light_pipe_layout",
		BindGroupLayouts: []gpu.BindGroupLayout{w.cameraLayout, w.lightLayout},
	})
	if err != nil {
		return fmt.Errorf("create light pipeline layout: %w", err)
	}
	w.lightPipeLayout = lightLayout

	lightPipeline, err := w.device.CreateRenderPipeline(&gpu.RenderPipelineDescriptor{
		Label:  "forge_light_pipeline",
		Layout: lightLayout,
		Vertex: gpu.VertexState{
			Module:     lightShader,
			EntryPoint: "vs_main",
			Buffers:    []gputypes.VertexBufferLayout{scene.VertexLayout()},
		},
		Fragment: &gpu.FragmentState{
			Module:     lightShader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{Format: w.surface.Format(), WriteMask: gputypes.ColorWriteMaskAll},
			},
		},
		DepthStencil: &gpu.DepthStencilState{
			Format:            w.depthFormat,
			DepthWriteEnabled: true,
			DepthCompare:      gputypes.CompareFunctionLess,
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeBack,
		},
		Multisample: gputypes.MultisampleState{Count: 1, Mask: 0xFFFFFFFF},
	})
	if err != nil {
		return fmt.Errorf("create light pipeline: %w", err)
	}
	w.lightPipeline = lightPipeline
	return nil
}
