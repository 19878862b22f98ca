package renderer

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-backdrop/common"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/geometry"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// initialObjectCapacity is the number of per-object slots allocated before the first grow.
const initialObjectCapacity = 256

type wgpuMesh struct {
	vertexBuffer *wgpu.Buffer
	indexBuffer  *wgpu.Buffer
	indexCount   uint32
}

type wgpuRendererBackendImpl struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	width, height        int
	surfaceFormat        *wgpu.TextureFormat
	msaaTexture          *wgpu.Texture
	msaaTextureView      *wgpu.TextureView
	depthTexture         *wgpu.Texture
	depthTextureView     *wgpu.TextureView
	renderPassDescriptor *wgpu.RenderPassDescriptor

	presentMode wgpu.PresentMode // defaults to PresentModeImmediate (Uncapped)
	sampleCount MSAASampleCount  // MSAA sample count for the main render pass

	bindGroupLayout *wgpu.BindGroupLayout
	pipelineLayout  *wgpu.PipelineLayout
	shaderModule    *wgpu.ShaderModule
	// pipelines holds the opaque and transparent variant of each topology.
	pipelines map[geometry.Topology][2]pipeline.Pipeline

	globalsBuffer  *wgpu.Buffer
	objectsBuffer  *wgpu.Buffer
	objectCapacity int
	bindGroup      *wgpu.BindGroup
	objects        []gpuObject
}

var _ RendererBackend = &wgpuRendererBackendImpl{}

func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool, sampleCount MSAASampleCount) (*wgpuRendererBackendImpl, error) {
	if surfaceDescriptor == nil {
		return nil, fmt.Errorf("%w: nil surface descriptor", ErrSurfaceNotReady)
	}
	runtime.LockOSThread()
	w := &wgpuRendererBackendImpl{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeImmediate,
		sampleCount: sampleCount,
		pipelines:   make(map[geometry.Topology][2]pipeline.Pipeline),
	}
	w.surface = w.instance.CreateSurface(surfaceDescriptor)
	if w.surface == nil {
		w.instance.Release()
		return nil, fmt.Errorf("%w: surface creation failed", ErrSurfaceNotReady)
	}

	a, err := w.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    w.surface,
	})
	if err != nil {
		w.releaseInstance()
		return nil, fmt.Errorf("failed to request adapter: %w", err)
	}
	w.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Backdrop Device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: wgpu.DefaultLimits(),
		},
	})
	if err != nil {
		w.releaseInstance()
		return nil, fmt.Errorf("failed to request device: %w", err)
	}
	w.device = d
	w.queue = d.GetQueue()

	if err := w.createSharedResources(); err != nil {
		w.Destroy()
		return nil, err
	}
	common.Logger().Info("webgpu device ready", "fallback", forceFallbackAdapter, "msaa", uint32(sampleCount))
	return w, nil
}

// createSharedResources builds the objects that do not depend on the surface format:
// the bind group layout, pipeline layout, shader module, and the globals and objects buffers.
func (b *wgpuRendererBackendImpl) createSharedResources() error {
	var err error
	b.bindGroupLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Scene Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: uint64(unsafe.Sizeof(gpuGlobals{})),
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type: wgpu.BufferBindingTypeReadOnlyStorage,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create bind group layout: %w", err)
	}

	b.pipelineLayout, err = b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Scene Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{b.bindGroupLayout},
	})
	if err != nil {
		return fmt.Errorf("failed to create pipeline layout: %w", err)
	}

	b.shaderModule, err = b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: "scene.wgsl",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: sceneShaderSource,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to compile scene shader: %w", err)
	}

	b.globalsBuffer, err = b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Scene Globals Buffer",
		Size:  uint64(unsafe.Sizeof(gpuGlobals{})),
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("failed to create globals buffer: %w", err)
	}
	return b.growObjects(initialObjectCapacity)
}

// growObjects replaces the objects storage buffer with one holding at least n objects
// and rebuilds the bind group that references it.
func (b *wgpuRendererBackendImpl) growObjects(n int) error {
	capacity := max(b.objectCapacity, initialObjectCapacity)
	for capacity < n {
		capacity *= 2
	}
	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Scene Objects Buffer",
		Size:  uint64(capacity) * uint64(unsafe.Sizeof(gpuObject{})),
		Usage: wgpu.BufferUsageStorage | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("failed to create objects buffer: %w", err)
	}
	bg, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Scene Bind Group",
		Layout: b.bindGroupLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: b.globalsBuffer, Offset: 0, Size: wgpu.WholeSize},
			{Binding: 1, Buffer: buf, Offset: 0, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		buf.Release()
		return fmt.Errorf("failed to create scene bind group: %w", err)
	}
	if b.bindGroup != nil {
		b.bindGroup.Release()
	}
	if b.objectsBuffer != nil {
		b.objectsBuffer.Release()
	}
	b.objectsBuffer = buf
	b.bindGroup = bg
	b.objectCapacity = capacity
	return nil
}

// createPipelines builds the opaque and transparent pipeline of every topology for the current
// surface format. Caller must hold the mutex.
func (b *wgpuRendererBackendImpl) createPipelines() error {
	topologies := map[geometry.Topology]wgpu.PrimitiveTopology{
		geometry.TopologyTriangles: wgpu.PrimitiveTopologyTriangleList,
		geometry.TopologyLines:     wgpu.PrimitiveTopologyLineList,
		geometry.TopologyPoints:    wgpu.PrimitiveTopologyPointList,
	}
	for topo, wgpuTopo := range topologies {
		opaque := pipeline.NewPipeline(fmt.Sprintf("scene_%d_opaque", topo), sceneShaderSource,
			pipeline.WithTopology(wgpuTopo),
		)
		transparent := pipeline.NewPipeline(fmt.Sprintf("scene_%d_transparent", topo), sceneShaderSource,
			pipeline.WithTopology(wgpuTopo),
			pipeline.WithBlendEnabled(true),
			pipeline.WithDepthWriteEnabled(false),
		)
		for _, p := range []pipeline.Pipeline{opaque, transparent} {
			if err := b.registerRenderPipeline(p); err != nil {
				return err
			}
		}
		b.pipelines[topo] = [2]pipeline.Pipeline{opaque, transparent}
	}
	return nil
}

func (b *wgpuRendererBackendImpl) registerRenderPipeline(p pipeline.Pipeline) error {
	created, err := b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  p.PipelineKey() + " Render Pipeline",
		Layout: b.pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     b.shaderModule,
			EntryPoint: p.VertexEntryPoint(),
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: uint64(unsafe.Sizeof(geometry.Vertex{})),
					StepMode:    wgpu.VertexStepModeVertex,
					Attributes: []wgpu.VertexAttribute{
						{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
						{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
					},
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     b.shaderModule,
			EntryPoint: p.FragmentEntryPoint(),
			Targets: []wgpu.ColorTargetState{
				func() wgpu.ColorTargetState {
					state := wgpu.ColorTargetState{
						Format:    *b.surfaceFormat,
						WriteMask: p.WriteMask(),
					}
					if p.BlendEnabled() {
						state.Blend = p.BlendState()
					}
					return state
				}(),
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  p.Topology(),
			FrontFace: p.FrontFace(),
			CullMode:  p.CullMode(),
		},
		Multisample: wgpu.MultisampleState{
			Count: uint32(b.sampleCount),
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: func() *wgpu.DepthStencilState {
			depthCompare := wgpu.CompareFunctionLess
			if !p.DepthTestEnabled() {
				depthCompare = wgpu.CompareFunctionAlways
			}
			return &wgpu.DepthStencilState{
				Format:            wgpu.TextureFormatDepth24Plus,
				DepthWriteEnabled: p.DepthWriteEnabled(),
				DepthCompare:      depthCompare,
				StencilFront: wgpu.StencilFaceState{
					Compare: wgpu.CompareFunctionAlways,
				},
				StencilBack: wgpu.StencilFaceState{
					Compare: wgpu.CompareFunctionAlways,
				},
			}
		}(),
	})
	if err != nil {
		return fmt.Errorf("failed to create pipeline %s: %w", p.PipelineKey(), err)
	}
	p.SetRenderPipeline(created)
	return nil
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.releaseTargets()
	b.width, b.height = width, height
	if width <= 0 || height <= 0 {
		// minimized; Ready reports the surface unusable until the next resize
		return
	}

	capabilities := b.surface.GetCapabilities(b.adapter)
	if len(capabilities.Formats) == 0 {
		common.Logger().Warn("surface reports no formats", "width", width, "height", height)
		b.width, b.height = 0, 0
		return
	}
	formatChanged := b.surfaceFormat == nil || *b.surfaceFormat != capabilities.Formats[0]
	b.surfaceFormat = &capabilities.Formats[0]

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      *b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	if err := b.createTargets(width, height); err != nil {
		common.Logger().Warn("failed to create render targets", "error", err)
		b.width, b.height = 0, 0
		return
	}

	if formatChanged {
		b.releasePipelines()
		if err := b.createPipelines(); err != nil {
			common.Logger().Warn("failed to create pipelines", "error", err)
			b.width, b.height = 0, 0
			return
		}
	}
	common.Logger().Info("surface configured", "width", width, "height", height)
}

// createTargets allocates the MSAA and depth textures and the cached render pass descriptor.
func (b *wgpuRendererBackendImpl) createTargets(width, height int) error {
	count := uint32(b.sampleCount)
	msaaEnabled := count > 1

	if msaaEnabled {
		// The render pass draws into the MSAA texture; the swapchain view is the resolve target.
		tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
			Label: "MSAA Texture",
			Size: wgpu.Extent3D{
				Width:              uint32(width),
				Height:             uint32(height),
				DepthOrArrayLayers: 1,
			},
			MipLevelCount: 1,
			SampleCount:   count,
			Dimension:     wgpu.TextureDimension2D,
			Format:        *b.surfaceFormat,
			Usage:         wgpu.TextureUsageRenderAttachment,
		})
		if err != nil {
			return err
		}
		b.msaaTexture = tex
		b.msaaTextureView, err = tex.CreateView(nil)
		if err != nil {
			return err
		}
	}

	// Depth texture sample count must match the color attachment.
	depth, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
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
		return err
	}
	b.depthTexture = depth
	b.depthTextureView, err = depth.CreateView(nil)
	if err != nil {
		return err
	}

	storeOp := wgpu.StoreOpStore
	if msaaEnabled {
		storeOp = wgpu.StoreOpDiscard // only the resolved image is kept
	}
	b.renderPassDescriptor = &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:    b.msaaTextureView, // nil when MSAA is off; set per frame
				LoadOp:  wgpu.LoadOpClear,
				StoreOp: storeOp,
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.depthTextureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	}
	return nil
}

func (b *wgpuRendererBackendImpl) releaseTargets() {
	if b.msaaTextureView != nil {
		b.msaaTextureView.Release()
		b.msaaTextureView = nil
	}
	if b.msaaTexture != nil {
		b.msaaTexture.Release()
		b.msaaTexture = nil
	}
	if b.depthTextureView != nil {
		b.depthTextureView.Release()
		b.depthTextureView = nil
	}
	if b.depthTexture != nil {
		b.depthTexture.Release()
		b.depthTexture = nil
	}
	b.renderPassDescriptor = nil
}

func (b *wgpuRendererBackendImpl) releasePipelines() {
	for topo, ps := range b.pipelines {
		ps[0].Release()
		ps[1].Release()
		delete(b.pipelines, topo)
	}
}

func (b *wgpuRendererBackendImpl) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch mode {
	case PresentModeVSync:
		b.presentMode = wgpu.PresentModeFifo
	case PresentModeUncapped:
		fallthrough
	default:
		b.presentMode = wgpu.PresentModeImmediate
	}
}

func (b *wgpuRendererBackendImpl) SurfaceSize() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

func (b *wgpuRendererBackendImpl) Ready() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.device == nil {
		return ErrDestroyed
	}
	if b.renderPassDescriptor == nil || len(b.pipelines) == 0 {
		return fmt.Errorf("%w: surface is %dx%d", ErrSurfaceNotReady, b.width, b.height)
	}
	return nil
}

func (b *wgpuRendererBackendImpl) UploadMesh(label string, mesh geometry.Mesh) (BackendMesh, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.device == nil {
		return nil, ErrDestroyed
	}
	if len(mesh.Vertices) == 0 || len(mesh.Indices) == 0 {
		return nil, errors.New("mesh has no vertices or indices")
	}

	vertexData := common.SliceToBytes(mesh.Vertices)
	vb, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label + " Vertex Buffer",
		Size:  uint64(len(vertexData)),
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}
	b.queue.WriteBuffer(vb, 0, vertexData)

	indexData := common.SliceToBytes(mesh.Indices)
	ib, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label + " Index Buffer",
		Size:  uint64(len(indexData)),
		Usage: wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		vb.Release()
		return nil, err
	}
	b.queue.WriteBuffer(ib, 0, indexData)

	return &wgpuMesh{vertexBuffer: vb, indexBuffer: ib, indexCount: uint32(len(mesh.Indices))}, nil
}

func (b *wgpuRendererBackendImpl) ReleaseMesh(mesh BackendMesh) {
	b.mu.Lock()
	defer b.mu.Unlock()
	m, ok := mesh.(*wgpuMesh)
	if !ok {
		return
	}
	if m.vertexBuffer != nil {
		m.vertexBuffer.Release()
		m.vertexBuffer = nil
	}
	if m.indexBuffer != nil {
		m.indexBuffer.Release()
		m.indexBuffer = nil
	}
}

func (b *wgpuRendererBackendImpl) Render(batch *Batch) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.renderPassDescriptor == nil {
		return ErrSurfaceNotReady
	}

	if len(batch.Draws) > b.objectCapacity {
		if err := b.growObjects(len(batch.Draws)); err != nil {
			return err
		}
	}
	globals := packGlobals(batch)
	b.queue.WriteBuffer(b.globalsBuffer, 0, common.StructToBytes(&globals))
	b.objects = packObjects(b.objects, batch.Draws)
	if len(b.objects) > 0 {
		b.queue.WriteBuffer(b.objectsBuffer, 0, common.SliceToBytes(b.objects))
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("failed to acquire surface texture: %w", err)
	}
	defer surfaceTexture.Release()

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		return err
	}
	defer view.Release()

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		return err
	}
	defer encoder.Release()

	attachment := &b.renderPassDescriptor.ColorAttachments[0]
	if b.sampleCount > 1 {
		attachment.ResolveTarget = view
	} else {
		attachment.View = view
	}
	attachment.ClearValue = wgpu.Color{
		R: float64(batch.ClearColor[0]),
		G: float64(batch.ClearColor[1]),
		B: float64(batch.ClearColor[2]),
		A: float64(batch.ClearColor[3]),
	}

	pass := encoder.BeginRenderPass(b.renderPassDescriptor)
	pass.SetBindGroup(0, b.bindGroup, nil)
	var current *wgpu.RenderPipeline
	for i, d := range batch.Draws {
		m, ok := d.Mesh.(*wgpuMesh)
		if !ok || m.vertexBuffer == nil {
			continue
		}
		variant := 0
		if i >= batch.Transparent {
			variant = 1
		}
		rp := b.pipelines[d.Topology][variant].RenderPipeline()
		if rp != current {
			pass.SetPipeline(rp)
			current = rp
		}
		pass.SetVertexBuffer(0, m.vertexBuffer, 0, wgpu.WholeSize)
		pass.SetIndexBuffer(m.indexBuffer, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
		// firstInstance selects the object's slot in the storage buffer
		pass.DrawIndexed(m.indexCount, 1, 0, 0, uint32(i))
	}
	pass.End()

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		return err
	}
	b.queue.Submit(commandBuffer)
	commandBuffer.Release()

	b.surface.Present()
	return nil
}

func (b *wgpuRendererBackendImpl) releaseInstance() {
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.surface != nil {
		b.surface.Release()
		b.surface = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}

func (b *wgpuRendererBackendImpl) Destroy() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.device == nil {
		return
	}
	b.releaseTargets()
	b.releasePipelines()
	if b.bindGroup != nil {
		b.bindGroup.Release()
		b.bindGroup = nil
	}
	if b.objectsBuffer != nil {
		b.objectsBuffer.Release()
		b.objectsBuffer = nil
	}
	if b.globalsBuffer != nil {
		b.globalsBuffer.Release()
		b.globalsBuffer = nil
	}
	if b.shaderModule != nil {
		b.shaderModule.Release()
		b.shaderModule = nil
	}
	if b.pipelineLayout != nil {
		b.pipelineLayout.Release()
		b.pipelineLayout = nil
	}
	if b.bindGroupLayout != nil {
		b.bindGroupLayout.Release()
		b.bindGroupLayout = nil
	}
	if b.queue != nil {
		b.queue.Release()
		b.queue = nil
	}
	b.device.Release()
	b.device = nil
	b.releaseInstance()
}
