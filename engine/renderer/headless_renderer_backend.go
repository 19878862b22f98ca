package renderer

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/Carmen-Shannon/oxy-backdrop/engine/geometry"
)

// ErrResourceExhausted is returned by the headless backend once its mesh limit is reached.
var ErrResourceExhausted = errors.New("device resources exhausted")

type headlessMesh struct {
	id    int
	label string
	mesh  geometry.Mesh
}

// HeadlessBackend is a RendererBackend that keeps uploaded geometry in memory and records the
// last rendered batch. It backs tests and tooling that need the full frame path without a GPU.
type HeadlessBackend struct {
	mu *sync.Mutex

	width, height int
	presentMode   PresentMode
	meshLimit     int
	nextID        int
	live          map[int]*headlessMesh
	uploads       int
	renders       int
	last          Batch
	destroyed     bool
}

var _ RendererBackend = &HeadlessBackend{}

// HeadlessOption configures a HeadlessBackend.
type HeadlessOption func(*HeadlessBackend)

// WithHeadlessSize configures the surface size up front.
//
// Parameters:
//   - width, height: the surface size in pixels
//
// Returns:
//   - HeadlessOption: a function that applies the size
func WithHeadlessSize(width, height int) HeadlessOption {
	return func(b *HeadlessBackend) {
		b.width, b.height = width, height
	}
}

// WithHeadlessMeshLimit caps the number of live meshes. Uploads beyond the cap fail with
// ErrResourceExhausted. Zero means unlimited.
//
// Parameters:
//   - n: the maximum number of live meshes
//
// Returns:
//   - HeadlessOption: a function that applies the limit
func WithHeadlessMeshLimit(n int) HeadlessOption {
	return func(b *HeadlessBackend) {
		b.meshLimit = n
	}
}

// NewHeadlessBackend creates an in-memory backend. Without WithHeadlessSize it is unconfigured
// and Ready fails until ConfigureSurface is called with a positive size.
//
// Parameters:
//   - options: functional options to configure the backend
//
// Returns:
//   - *HeadlessBackend: the backend
func NewHeadlessBackend(options ...HeadlessOption) *HeadlessBackend {
	b := &HeadlessBackend{
		mu:   &sync.Mutex{},
		live: make(map[int]*headlessMesh),
	}
	for _, opt := range options {
		opt(b)
	}
	return b
}

func (b *HeadlessBackend) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.width, b.height = width, height
}

func (b *HeadlessBackend) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.presentMode = mode
}

func (b *HeadlessBackend) SurfaceSize() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

func (b *HeadlessBackend) Ready() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.destroyed {
		return ErrDestroyed
	}
	if b.width <= 0 || b.height <= 0 {
		return fmt.Errorf("%w: surface is %dx%d", ErrSurfaceNotReady, b.width, b.height)
	}
	return nil
}

func (b *HeadlessBackend) UploadMesh(label string, mesh geometry.Mesh) (BackendMesh, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.destroyed {
		return nil, ErrDestroyed
	}
	if b.meshLimit > 0 && len(b.live) >= b.meshLimit {
		return nil, fmt.Errorf("%w: %d meshes live", ErrResourceExhausted, len(b.live))
	}
	b.nextID++
	m := &headlessMesh{id: b.nextID, label: label, mesh: mesh}
	b.live[m.id] = m
	b.uploads++
	return m, nil
}

func (b *HeadlessBackend) ReleaseMesh(mesh BackendMesh) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if m, ok := mesh.(*headlessMesh); ok {
		delete(b.live, m.id)
	}
}

func (b *HeadlessBackend) Render(batch *Batch) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.destroyed {
		return ErrDestroyed
	}
	if b.width <= 0 || b.height <= 0 {
		return ErrSurfaceNotReady
	}
	for _, d := range batch.Draws {
		m, ok := d.Mesh.(*headlessMesh)
		if !ok || b.live[m.id] != m {
			return fmt.Errorf("%w: draw references released mesh", ErrUnknownMesh)
		}
	}
	b.last = *batch
	b.last.Draws = slices.Clone(batch.Draws)
	b.last.Lights = slices.Clone(batch.Lights)
	b.renders++
	return nil
}

func (b *HeadlessBackend) Destroy() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.destroyed = true
	clear(b.live)
}

// LiveMeshes returns the number of uploaded meshes not yet released.
func (b *HeadlessBackend) LiveMeshes() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.live)
}

// Uploads returns the total number of successful uploads.
func (b *HeadlessBackend) Uploads() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.uploads
}

// Renders returns the number of batches rendered.
func (b *HeadlessBackend) Renders() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.renders
}

// LastBatch returns a copy of the most recently rendered batch.
func (b *HeadlessBackend) LastBatch() Batch {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.last
}

// MeshLabel returns the label a backend mesh was uploaded with.
func (b *HeadlessBackend) MeshLabel(mesh BackendMesh) string {
	if m, ok := mesh.(*headlessMesh); ok {
		return m.label
	}
	return ""
}

// PresentMode returns the last present mode set.
func (b *HeadlessBackend) PresentMode() PresentMode {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.presentMode
}
