package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
)

// MaxLights is the number of lights the scene shader evaluates per fragment.
const MaxLights = 4

// MeshHandle identifies geometry owned by a Renderer. The zero value is never valid.
type MeshHandle uint32

// MaterialHandle identifies a material owned by a Renderer. The zero value is never valid.
type MaterialHandle uint32

// LightKind distinguishes positional from directional lights.
type LightKind uint8

const (
	LightPoint LightKind = iota
	LightDirectional
)

// LightData is the per-frame description of one light.
type LightData struct {
	Kind      LightKind
	Position  mgl32.Vec3
	Direction mgl32.Vec3
	Color     mgl32.Vec3
	Intensity float32
	Range     float32
}

// DrawItem places one mesh with one material.
type DrawItem struct {
	Mesh     MeshHandle
	Material MaterialHandle
	Model    mgl32.Mat4
}

// Frame is everything needed to draw one frame, expressed in renderer handles.
type Frame struct {
	View       mgl32.Mat4
	Projection mgl32.Mat4
	Eye        mgl32.Vec3
	ClearColor [4]float32
	Ambient    mgl32.Vec3
	Lights     []LightData
	Items      []DrawItem
}

// Stats is a snapshot of renderer resource usage.
type Stats struct {
	Meshes    int
	Materials int
	Frames    uint64
	LastDraws int
}
