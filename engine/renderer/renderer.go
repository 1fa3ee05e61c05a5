package renderer

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// Only specific power-of-two values are valid for GPU hardware. WebGPU guarantees support for
// 1 (off) and 4; higher values are adapter-dependent and may not be available.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4x multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4
)

// meshBatch holds the GPU resources for one registered instanced mesh: the
// vertex/index buffers, the instance storage buffer, and its bind group.
type meshBatch struct {
	vertexBuffer   *wgpu.Buffer
	indexBuffer    *wgpu.Buffer
	indexCount     int
	instanceBuffer *wgpu.Buffer
	bindGroup      *wgpu.BindGroup
	capacity       int
}

// rendererImpl is the WebGPU implementation of the Renderer interface.
type rendererImpl struct {
	mu *sync.Mutex

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	surface  *wgpu.Surface

	surfaceFormat        *wgpu.TextureFormat
	msaaTextureView      *wgpu.TextureView
	depthTextureView     *wgpu.TextureView
	renderPassDescriptor *wgpu.RenderPassDescriptor

	presentMode          wgpu.PresentMode
	sampleCount          MSAASampleCount
	clearColor           wgpu.Color
	forceFallbackAdapter bool

	// Shared camera uniform (group 0 on both pipelines)
	cameraLayout    *wgpu.BindGroupLayout
	cameraBuffer    *wgpu.Buffer
	cameraBindGroup *wgpu.BindGroup

	// Point pass resources
	pointPipeline  *wgpu.RenderPipeline
	pointLayout    *wgpu.BindGroupLayout
	pointBuffer    *wgpu.Buffer
	pointBindGroup *wgpu.BindGroup
	pointCapacity  int

	// Instanced mesh pass resources
	meshPipeline   *wgpu.RenderPipeline
	instanceLayout *wgpu.BindGroupLayout
	meshes         map[string]*meshBatch

	// Frame state for batched rendering across multiple draw calls
	frameEncoder *wgpu.CommandEncoder
	framePass    *wgpu.RenderPassEncoder
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView
}

// Renderer is the rendering system: it owns the WebGPU device, the surface
// configuration, and the two scene pipelines (billboard points and instanced
// meshes). Per-frame data flows in through WriteCamera, WritePoints, and
// WriteInstances; draw commands are batched between BeginFrame and EndFrame
// and displayed with Present.
type Renderer interface {
	// Resize configures the surface, depth target, and render pass for a new
	// surface size. Must be called once before the first frame and again
	// whenever the window framebuffer size changes.
	//
	// Parameters:
	//   - width: the new surface width in pixels
	//   - height: the new surface height in pixels
	Resize(width, height int)

	// WriteCamera uploads the camera uniform block for the next frame.
	//
	// Parameters:
	//   - cam: the packed camera uniform
	WriteCamera(cam *CameraGPU)

	// InitPointBuffer creates the particle storage buffer and its bind group
	// with capacity for the given number of points.
	//
	// Parameters:
	//   - capacity: the maximum number of points the buffer can hold
	//
	// Returns:
	//   - error: an error if buffer or bind group creation fails
	InitPointBuffer(capacity int) error

	// WritePoints uploads packed particle data to the point storage buffer.
	// Writes beyond the buffer capacity are truncated.
	//
	// Parameters:
	//   - points: the packed point data
	WritePoints(points []PointGPU)

	// RegisterMesh uploads a mesh's vertex and index data and creates its
	// instance storage buffer with the given capacity.
	//
	// Parameters:
	//   - key: the unique identifier for the mesh batch
	//   - vertexData: the raw vertex data bytes
	//   - indexData: the raw index data bytes (little-endian uint32)
	//   - indexCount: the number of indices, used for draw calls
	//   - instanceCapacity: the maximum number of instances the batch can hold
	//
	// Returns:
	//   - error: an error if buffer or bind group creation fails
	RegisterMesh(key string, vertexData, indexData []byte, indexCount, instanceCapacity int) error

	// WriteInstances uploads packed instance data for a registered mesh batch.
	// Writes beyond the batch capacity are truncated; unknown keys are ignored.
	//
	// Parameters:
	//   - key: the mesh batch identifier passed to RegisterMesh
	//   - instances: the packed instance data
	WriteInstances(key string, instances []InstanceGPU)

	// BeginFrame acquires the next swapchain texture, creates a command encoder, and begins
	// the main render pass. Must be paired with EndFrame after all draw invocations.
	//
	// Returns:
	//   - error: an error if the swapchain texture could not be acquired
	BeginFrame() error

	// DrawPoints encodes the billboard point draw within the current render
	// pass: six vertices per point, one instance per point.
	//
	// Parameters:
	//   - count: the number of points to draw
	DrawPoints(count uint32)

	// DrawMesh encodes an instanced draw of a registered mesh batch within the
	// current render pass.
	//
	// Parameters:
	//   - key: the mesh batch identifier passed to RegisterMesh
	//   - instanceCount: the number of instances to draw
	DrawMesh(key string, instanceCount uint32)

	// EndFrame ends the current render pass and submits the command buffer to the GPU.
	// Does not present the surface — call Present() after EndFrame to display the frame.
	EndFrame()

	// Present presents the surface to the display and releases the swapchain texture.
	// Must be called once per frame after EndFrame.
	Present()

	// Release frees the device-level GPU resources held by the renderer.
	Release()
}

var _ Renderer = &rendererImpl{}

// NewRenderer creates a Renderer for the given surface: it creates the WebGPU
// instance, surface, adapter, device, and queue, plus the shared camera
// uniform and bind group layouts. Pipelines are created on the first Resize,
// once the surface format is known. Panics if no adapter or device is
// available.
//
// Parameters:
//   - surfaceDescriptor: the platform surface descriptor from the window layer
//   - options: functional options to configure the renderer
//
// Returns:
//   - Renderer: the newly created renderer
func NewRenderer(surfaceDescriptor *wgpu.SurfaceDescriptor, options ...RendererBuilderOption) Renderer {
	runtime.LockOSThread()
	r := &rendererImpl{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeFifo,
		sampleCount: MSAA4x,
		clearColor:  wgpu.Color{R: 0.012, G: 0.016, B: 0.045, A: 1.0},
		meshes:      make(map[string]*meshBatch),
	}

	for _, option := range options {
		option(r)
	}

	r.surface = r.instance.CreateSurface(surfaceDescriptor)

	adapter, err := r.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: r.forceFallbackAdapter,
		CompatibleSurface:    r.surface,
	})
	if err != nil {
		panic(err)
	}
	r.adapter = adapter

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Grove Device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: wgpu.DefaultLimits(),
		},
	})
	if err != nil {
		panic(err)
	}
	r.device = device
	r.queue = device.GetQueue()

	if err := r.initCameraResources(); err != nil {
		panic(err)
	}
	if err := r.initStorageLayouts(); err != nil {
		panic(err)
	}

	return r
}

// initCameraResources creates the camera uniform buffer, its bind group
// layout, and the bind group shared by both pipelines.
func (r *rendererImpl) initCameraResources() error {
	layout, err := r.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Camera Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: 96,
				},
			},
		},
	})
	if err != nil {
		return err
	}
	r.cameraLayout = layout

	buffer, err := r.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Camera Uniform Buffer",
		Size:  96,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}
	r.cameraBuffer = buffer

	bindGroup, err := r.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Camera Bind Group",
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  buffer,
				Offset:  0,
				Size:    wgpu.WholeSize,
			},
		},
	})
	if err != nil {
		return err
	}
	r.cameraBindGroup = bindGroup

	return nil
}

// initStorageLayouts creates the read-only storage bind group layouts used by
// the point and instanced mesh pipelines (group 1 on each).
func (r *rendererImpl) initStorageLayouts() error {
	pointLayout, err := r.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Point Storage Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeReadOnlyStorage,
					MinBindingSize: pointStride,
				},
			},
		},
	})
	if err != nil {
		return err
	}
	r.pointLayout = pointLayout

	instanceLayout, err := r.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Instance Storage Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeReadOnlyStorage,
					MinBindingSize: instanceStride,
				},
			},
		},
	})
	if err != nil {
		return err
	}
	r.instanceLayout = instanceLayout

	return nil
}

func (r *rendererImpl) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if width <= 0 || height <= 0 {
		return
	}

	capabilities := r.surface.GetCapabilities(r.adapter)
	r.surfaceFormat = &capabilities.Formats[0]

	r.surface.Configure(r.adapter, r.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      *r.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: r.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	count := uint32(r.sampleCount)
	msaaEnabled := count > 1

	if msaaEnabled {
		// The render pass draws into the MSAA texture; the resolved result is
		// written to the swapchain view as the ResolveTarget.
		msaaTexture, err := r.device.CreateTexture(&wgpu.TextureDescriptor{
			Label: "MSAA Texture",
			Size: wgpu.Extent3D{
				Width:              uint32(width),
				Height:             uint32(height),
				DepthOrArrayLayers: 1,
			},
			MipLevelCount: 1,
			SampleCount:   count,
			Dimension:     wgpu.TextureDimension2D,
			Format:        *r.surfaceFormat,
			Usage:         wgpu.TextureUsageRenderAttachment,
		})
		if err != nil {
			panic(err)
		}
		r.msaaTextureView, err = msaaTexture.CreateView(nil)
		if err != nil {
			panic(err)
		}
	} else {
		r.msaaTextureView = nil
	}

	// Depth texture sample count must match the color attachment.
	depthTexture, err := r.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Depth Texture",
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   count,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth24Plus,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		panic(err)
	}
	r.depthTextureView, err = depthTexture.CreateView(nil)
	if err != nil {
		panic(err)
	}

	// Build the cached render pass descriptor for the main render target.
	// When MSAA is enabled, View is the MSAA texture and ResolveTarget is set
	// per-frame to the swapchain view. When disabled, View is set per-frame
	// to the swapchain view and ResolveTarget remains nil.
	storeOp := wgpu.StoreOpStore
	if msaaEnabled {
		storeOp = wgpu.StoreOpDiscard
	}
	r.renderPassDescriptor = &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:          r.msaaTextureView,
				ResolveTarget: nil,
				LoadOp:        wgpu.LoadOpClear,
				StoreOp:       storeOp,
				ClearValue:    r.clearColor,
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            r.depthTextureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	}

	if r.pointPipeline == nil {
		if err := r.initPipelines(); err != nil {
			panic(err)
		}
	}
}

func (r *rendererImpl) WriteCamera(cam *CameraGPU) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queue.WriteBuffer(r.cameraBuffer, 0, cam.Bytes())
}

func (r *rendererImpl) InitPointBuffer(capacity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if capacity <= 0 {
		return fmt.Errorf("point buffer capacity must be positive, got %d", capacity)
	}

	buffer, err := r.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Point Storage Buffer",
		Size:  uint64(capacity) * pointStride,
		Usage: wgpu.BufferUsageStorage | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}

	bindGroup, err := r.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Point Bind Group",
		Layout: r.pointLayout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  buffer,
				Offset:  0,
				Size:    wgpu.WholeSize,
			},
		},
	})
	if err != nil {
		buffer.Release()
		return err
	}

	r.pointBuffer = buffer
	r.pointBindGroup = bindGroup
	r.pointCapacity = capacity

	return nil
}

func (r *rendererImpl) WritePoints(points []PointGPU) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pointBuffer == nil || len(points) == 0 {
		return
	}
	if len(points) > r.pointCapacity {
		points = points[:r.pointCapacity]
	}
	r.queue.WriteBuffer(r.pointBuffer, 0, PointBytes(points))
}

func (r *rendererImpl) RegisterMesh(key string, vertexData, indexData []byte, indexCount, instanceCapacity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(vertexData) == 0 || len(indexData) == 0 {
		return fmt.Errorf("mesh %q has empty vertex or index data", key)
	}
	if instanceCapacity <= 0 {
		return fmt.Errorf("mesh %q instance capacity must be positive, got %d", key, instanceCapacity)
	}

	vertexBuffer, err := r.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: key + " Vertex Buffer",
		Size:  uint64(len(vertexData)),
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}
	r.queue.WriteBuffer(vertexBuffer, 0, vertexData)

	indexBuffer, err := r.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: key + " Index Buffer",
		Size:  uint64(len(indexData)),
		Usage: wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}
	r.queue.WriteBuffer(indexBuffer, 0, indexData)

	instanceBuffer, err := r.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: key + " Instance Buffer",
		Size:  uint64(instanceCapacity) * instanceStride,
		Usage: wgpu.BufferUsageStorage | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}

	bindGroup, err := r.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  key + " Instance Bind Group",
		Layout: r.instanceLayout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  instanceBuffer,
				Offset:  0,
				Size:    wgpu.WholeSize,
			},
		},
	})
	if err != nil {
		return err
	}

	r.meshes[key] = &meshBatch{
		vertexBuffer:   vertexBuffer,
		indexBuffer:    indexBuffer,
		indexCount:     indexCount,
		instanceBuffer: instanceBuffer,
		bindGroup:      bindGroup,
		capacity:       instanceCapacity,
	}

	return nil
}

func (r *rendererImpl) WriteInstances(key string, instances []InstanceGPU) {
	r.mu.Lock()
	defer r.mu.Unlock()

	batch, ok := r.meshes[key]
	if !ok || len(instances) == 0 {
		return
	}
	if len(instances) > batch.capacity {
		instances = instances[:batch.capacity]
	}
	r.queue.WriteBuffer(batch.instanceBuffer, 0, InstanceBytes(instances))
}

func (r *rendererImpl) BeginFrame() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// If a previous frame's surface texture is still held, avoid acquiring
	// another one. This prevents wgpu-native validation errors like "Surface
	// image is already acquired" when frames overlap.
	if r.frameSurface != nil {
		return fmt.Errorf("previous frame surface not yet presented")
	}
	if r.renderPassDescriptor == nil {
		return fmt.Errorf("surface not configured, call Resize before the first frame")
	}

	surfaceTexture, err := r.surface.GetCurrentTexture()
	if err != nil {
		return err
	}

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return err
	}

	encoder, err := r.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return err
	}

	if r.sampleCount > 1 {
		r.renderPassDescriptor.ColorAttachments[0].ResolveTarget = view
	} else {
		r.renderPassDescriptor.ColorAttachments[0].View = view
	}
	pass := encoder.BeginRenderPass(r.renderPassDescriptor)

	r.frameEncoder = encoder
	r.framePass = pass
	r.frameSurface = surfaceTexture
	r.frameView = view

	return nil
}

func (r *rendererImpl) DrawPoints(count uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.framePass == nil || r.pointBindGroup == nil || count == 0 {
		return
	}

	r.framePass.SetPipeline(r.pointPipeline)
	r.framePass.SetBindGroup(0, r.cameraBindGroup, nil)
	r.framePass.SetBindGroup(1, r.pointBindGroup, nil)
	r.framePass.Draw(6, count, 0, 0)
}

func (r *rendererImpl) DrawMesh(key string, instanceCount uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()

	batch, ok := r.meshes[key]
	if !ok || r.framePass == nil || instanceCount == 0 {
		return
	}

	r.framePass.SetPipeline(r.meshPipeline)
	r.framePass.SetBindGroup(0, r.cameraBindGroup, nil)
	r.framePass.SetBindGroup(1, batch.bindGroup, nil)
	r.framePass.SetVertexBuffer(0, batch.vertexBuffer, 0, wgpu.WholeSize)
	r.framePass.SetIndexBuffer(batch.indexBuffer, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
	r.framePass.DrawIndexed(uint32(batch.indexCount), instanceCount, 0, 0, 0)
}

func (r *rendererImpl) EndFrame() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.framePass == nil {
		return
	}

	r.framePass.End()

	commandBuffer, err := r.frameEncoder.Finish(nil)
	if err != nil {
		r.frameEncoder.Release()
		r.frameView.Release()
		r.frameSurface.Release()
		r.frameEncoder = nil
		r.framePass = nil
		r.frameSurface = nil
		r.frameView = nil
		return
	}

	r.queue.Submit(commandBuffer)

	commandBuffer.Release()
	r.frameEncoder.Release()
	r.frameEncoder = nil
	r.framePass = nil
}

func (r *rendererImpl) Present() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frameSurface == nil {
		return
	}

	r.surface.Present()

	if r.frameView != nil {
		r.frameView.Release()
		r.frameView = nil
	}
	r.frameSurface.Release()
	r.frameSurface = nil
}

func (r *rendererImpl) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, batch := range r.meshes {
		batch.vertexBuffer.Release()
		batch.indexBuffer.Release()
		batch.instanceBuffer.Release()
	}
	r.meshes = make(map[string]*meshBatch)

	if r.pointBuffer != nil {
		r.pointBuffer.Release()
		r.pointBuffer = nil
	}
	if r.cameraBuffer != nil {
		r.cameraBuffer.Release()
		r.cameraBuffer = nil
	}
	if r.device != nil {
		r.device.Release()
		r.device = nil
	}
}
