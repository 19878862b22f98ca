package renderer

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/Carmen-Shannon/oxy-backdrop/common"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/geometry"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/renderer/material"
	"github.com/cogentcore/webgpu/wgpu"
)

var (
	// ErrUnknownMesh is returned when a frame references a mesh handle the renderer does not own.
	ErrUnknownMesh = errors.New("unknown mesh handle")

	// ErrUnknownMaterial is returned when a frame references a material handle the renderer does not own.
	ErrUnknownMaterial = errors.New("unknown material handle")

	// ErrDestroyed is returned by every operation after Destroy.
	ErrDestroyed = errors.New("renderer destroyed")

	// ErrSurfaceNotReady is returned when the render surface has no usable size.
	ErrSurfaceNotReady = errors.New("render surface not ready")
)

// SurfaceSource provides the platform surface the WebGPU backend renders into.
type SurfaceSource interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
	Width() int
	Height() int
}

type meshEntry struct {
	label    string
	backend  BackendMesh
	topology geometry.Topology
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend

	meshes       map[MeshHandle]meshEntry
	materials    map[MaterialHandle]material.Material
	nextMesh     MeshHandle
	nextMaterial MaterialHandle

	clearColor [4]float32
	frames     uint64
	lastDraws  int
	batch      Batch
	destroyed  bool

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	pendingMSAA          *MSAASampleCount
}

// Renderer defines the interface for the rendering system.
//
// The Renderer owns every mesh and material uploaded through it and hands out integer handles.
// Frames reference those handles; the Renderer resolves them and forwards a Batch to its backend.
// All methods are safe for concurrent use.
type Renderer interface {
	// CreateMesh uploads geometry and returns a handle to it.
	//
	// Parameters:
	//   - label: a debug label
	//   - mesh: the geometry to upload
	//
	// Returns:
	//   - MeshHandle: the new handle
	//   - error: an error if the upload fails or the renderer is destroyed
	CreateMesh(label string, mesh geometry.Mesh) (MeshHandle, error)

	// ReleaseMesh frees a mesh. Unknown handles are ignored.
	//
	// Parameters:
	//   - h: the mesh handle
	ReleaseMesh(h MeshHandle)

	// CreateMaterial registers a material and returns a handle to it.
	//
	// Parameters:
	//   - m: the material
	//
	// Returns:
	//   - MaterialHandle: the new handle
	//   - error: an error if the renderer is destroyed
	CreateMaterial(m material.Material) (MaterialHandle, error)

	// ReleaseMaterial frees a material. Unknown handles are ignored.
	//
	// Parameters:
	//   - h: the material handle
	ReleaseMaterial(h MaterialHandle)

	// Resize configures the backend for a new surface size.
	// This should be called when re-sizing the window or when the surface size should change.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// Size returns the current surface size.
	//
	// Returns:
	//   - width, height: the size in pixels
	Size() (width, height int)

	// Ready reports whether the surface can accept frames.
	//
	// Returns:
	//   - error: nil when frames can be submitted
	Ready() error

	// SetPresentMode changes the present mode and reconfigures the surface.
	//
	// Parameters:
	//   - mode: the present mode
	SetPresentMode(mode PresentMode)

	// Submit resolves and renders one frame.
	//
	// Parameters:
	//   - frame: the frame to render
	//
	// Returns:
	//   - error: an error wrapping ErrUnknownMesh or ErrUnknownMaterial for dangling handles,
	//     or the backend's error
	Submit(frame *Frame) error

	// Stats returns a snapshot of resource usage.
	//
	// Returns:
	//   - Stats: live meshes and materials, frames submitted, draws in the last frame
	Stats() Stats

	// Backend returns the backend executing resolved frames.
	//
	// Returns:
	//   - RendererBackend: the backend
	Backend() RendererBackend

	// Destroy releases every mesh and the backend. Safe to call more than once.
	Destroy()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer with a built-in backend sized to the given surface.
// The headless backend only reads the surface size and accepts a nil surface.
//
// Parameters:
//   - backendType: the backend to create
//   - surface: the platform surface to render into
//   - options: functional options to configure the renderer
//
// Returns:
//   - Renderer: the newly created renderer
//   - error: an error if the device or surface could not be created
func NewRenderer(backendType RendererBackendType, surface SurfaceSource, options ...RendererBuilderOption) (Renderer, error) {
	r := newRenderer(backendType, options...)

	msaa := MSAA4x
	if r.pendingMSAA != nil {
		msaa = *r.pendingMSAA
	}

	width, height := 0, 0
	if surface != nil {
		width, height = surface.Width(), surface.Height()
	}

	switch backendType {
	case BackendTypeHeadless:
		r.backend = NewHeadlessBackend()
	case BackendTypeWGPU:
		fallthrough
	default:
		if surface == nil {
			return nil, fmt.Errorf("%w: no surface source", ErrSurfaceNotReady)
		}
		b, err := newWGPURendererBackend(surface.SurfaceDescriptor(), r.forceFallbackAdapter, msaa)
		if err != nil {
			return nil, err
		}
		r.backend = b
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}
	r.backend.ConfigureSurface(width, height)
	return r, nil
}

// NewRendererWithBackend creates a Renderer around an externally constructed backend.
// The backend is expected to be configured already.
//
// Parameters:
//   - backend: the backend
//   - options: functional options to configure the renderer
//
// Returns:
//   - Renderer: the newly created renderer
func NewRendererWithBackend(backend RendererBackend, options ...RendererBuilderOption) Renderer {
	if backend == nil {
		panic("renderer: NewRendererWithBackend requires a non-nil backend")
	}
	r := newRenderer(BackendTypeHeadless, options...)
	r.backend = backend
	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}
	return r
}

func newRenderer(backendType RendererBackendType, options ...RendererBuilderOption) *renderer {
	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: backendType,
		meshes:      make(map[MeshHandle]meshEntry),
		materials:   make(map[MaterialHandle]material.Material),
		clearColor:  [4]float32{0.02, 0.03, 0.06, 1},
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

func (r *renderer) CreateMesh(label string, mesh geometry.Mesh) (MeshHandle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.destroyed {
		return 0, ErrDestroyed
	}
	bm, err := r.backend.UploadMesh(label, mesh)
	if err != nil {
		return 0, fmt.Errorf("failed to upload mesh %q: %w", label, err)
	}
	r.nextMesh++
	r.meshes[r.nextMesh] = meshEntry{label: label, backend: bm, topology: mesh.Topology}
	return r.nextMesh, nil
}

func (r *renderer) ReleaseMesh(h MeshHandle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.meshes[h]
	if !ok {
		return
	}
	delete(r.meshes, h)
	r.backend.ReleaseMesh(e.backend)
}

func (r *renderer) CreateMaterial(m material.Material) (MaterialHandle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.destroyed {
		return 0, ErrDestroyed
	}
	if m == nil {
		return 0, errors.New("nil material")
	}
	r.nextMaterial++
	r.materials[r.nextMaterial] = m
	return r.nextMaterial, nil
}

func (r *renderer) ReleaseMaterial(h MaterialHandle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.materials, h)
}

func (r *renderer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.destroyed {
		return
	}
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) Size() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.backend.SurfaceSize()
}

func (r *renderer) Ready() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.destroyed {
		return ErrDestroyed
	}
	return r.backend.Ready()
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backend.SetPresentMode(mode)
	w, h := r.backend.SurfaceSize()
	r.backend.ConfigureSurface(w, h)
}

func (r *renderer) Submit(frame *Frame) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.destroyed {
		return ErrDestroyed
	}

	b := &r.batch
	b.ViewProjection = frame.Projection.Mul4(frame.View)
	b.Eye = frame.Eye
	b.ClearColor = r.clearColor
	if frame.ClearColor != ([4]float32{}) {
		b.ClearColor = frame.ClearColor
	}
	b.Ambient = frame.Ambient
	b.Lights = frame.Lights
	b.Draws = b.Draws[:0]

	var transparent []Draw
	for _, item := range frame.Items {
		mesh, ok := r.meshes[item.Mesh]
		if !ok {
			return fmt.Errorf("%w: %d", ErrUnknownMesh, item.Mesh)
		}
		mat, ok := r.materials[item.Material]
		if !ok {
			return fmt.Errorf("%w: %d", ErrUnknownMaterial, item.Material)
		}
		d := Draw{
			Mesh:     mesh.backend,
			Topology: mesh.topology,
			Model:    item.Model,
			Color:    mat.BaseColor(),
			Emissive: emissive(mat),
		}
		if mat.Transparent() {
			transparent = append(transparent, d)
			continue
		}
		b.Draws = append(b.Draws, d)
	}

	// Transparent draws are painted back to front.
	eye := frame.Eye
	sort.SliceStable(transparent, func(i, j int) bool {
		return distance2(transparent[i].Model, eye) > distance2(transparent[j].Model, eye)
	})
	b.Transparent = len(b.Draws)
	b.Draws = append(b.Draws, transparent...)

	if err := r.backend.Render(b); err != nil {
		return err
	}
	r.frames++
	r.lastDraws = len(b.Draws)
	common.Logger().Debug("frame submitted", "frame", r.frames, "draws", r.lastDraws)
	return nil
}

// distance2 returns the squared distance between a model matrix's translation and p.
func distance2(m [16]float32, p [3]float32) float32 {
	dx, dy, dz := m[12]-p[0], m[13]-p[1], m[14]-p[2]
	return dx*dx + dy*dy + dz*dz
}

func (r *renderer) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Stats{
		Meshes:    len(r.meshes),
		Materials: len(r.materials),
		Frames:    r.frames,
		LastDraws: r.lastDraws,
	}
}

func (r *renderer) Backend() RendererBackend {
	return r.backend
}

func (r *renderer) Destroy() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.destroyed {
		return
	}
	r.destroyed = true
	if len(r.meshes) > 0 || len(r.materials) > 0 {
		common.Logger().Warn("renderer destroyed with live resources", "meshes", len(r.meshes), "materials", len(r.materials))
	}
	for h, e := range r.meshes {
		r.backend.ReleaseMesh(e.backend)
		delete(r.meshes, h)
	}
	clear(r.materials)
	r.backend.Destroy()
}

// emissive premultiplies a material's glow color by its intensity.
func emissive(m material.Material) [3]float32 {
	c, k := m.EmissiveColor(), m.Emissive()
	return [3]float32{c[0] * k, c[1] * k, c[2] * k}
}
