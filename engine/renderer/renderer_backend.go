package renderer

import (
	"github.com/Carmen-Shannon/oxy-backdrop/engine/geometry"
)

// RendererBackendType identifies the backend implementation created by NewRenderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota

	// BackendTypeHeadless selects an in-memory backend that records frames without a GPU.
	BackendTypeHeadless
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
// WebGPU guarantees support for 1 (off) and 4; higher values are adapter-dependent.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4× multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4
)

// BackendMesh is a backend-specific handle to uploaded geometry.
type BackendMesh any

// Draw is one resolved draw: uploaded geometry plus the per-object data the shader needs.
type Draw struct {
	Mesh     BackendMesh
	Topology geometry.Topology
	Model    [16]float32
	Color    [4]float32
	// Emissive is the glow color premultiplied by its intensity.
	Emissive [3]float32
}

// Batch is a fully resolved frame handed to the backend.
// Opaque draws come first, followed by transparent draws.
type Batch struct {
	ViewProjection [16]float32
	Eye            [3]float32
	ClearColor     [4]float32
	Ambient        [3]float32
	Lights         []LightData
	Draws          []Draw
	// Transparent is the index of the first transparent draw.
	Transparent int
}

// RendererBackend is the device-level contract behind the Renderer.
// The Renderer owns handle bookkeeping and frame resolution; a backend only uploads geometry
// and executes resolved batches.
type RendererBackend interface {
	// ConfigureSurface (re)creates the output targets for the given size.
	//
	// Parameters:
	//   - width: the surface width in pixels
	//   - height: the surface height in pixels
	ConfigureSurface(width, height int)

	// SetPresentMode changes how frames are presented. Takes effect on the next ConfigureSurface.
	//
	// Parameters:
	//   - mode: the present mode
	SetPresentMode(mode PresentMode)

	// SurfaceSize returns the configured surface size.
	//
	// Returns:
	//   - width, height: the size in pixels, zero before configuration
	SurfaceSize() (width, height int)

	// Ready reports whether the surface can accept frames.
	//
	// Returns:
	//   - error: nil when frames can be submitted
	Ready() error

	// UploadMesh copies geometry to the device.
	//
	// Parameters:
	//   - label: a debug label
	//   - mesh: the geometry to upload
	//
	// Returns:
	//   - BackendMesh: the backend handle
	//   - error: an error if the upload fails
	UploadMesh(label string, mesh geometry.Mesh) (BackendMesh, error)

	// ReleaseMesh frees geometry previously returned by UploadMesh.
	//
	// Parameters:
	//   - mesh: the backend handle
	ReleaseMesh(mesh BackendMesh)

	// Render executes one resolved frame and presents it.
	//
	// Parameters:
	//   - batch: the resolved frame
	//
	// Returns:
	//   - error: an error if the frame could not be rendered
	Render(batch *Batch) error

	// Destroy releases every device resource held by the backend.
	Destroy()
}
