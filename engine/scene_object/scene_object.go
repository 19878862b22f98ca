package scene_object

import (
	"github.com/Carmen-Shannon/oxy-backdrop/engine/geometry"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/renderer"
	"github.com/go-gl/mathgl/mgl32"
)

// Role selects how the animation loop drives an object.
type Role uint8

const (
	// RolePrimitive objects rotate in place, float around their base position and react to the pointer.
	RolePrimitive Role = iota
	// RoleField is the decorative point field, rotated as one rigid body.
	RoleField
	// RoleGrid is the background grid, rotated as one rigid body with a spring-damped pointer tilt.
	RoleGrid
)

func (r Role) String() string {
	switch r {
	case RolePrimitive:
		return "primitive"
	case RoleField:
		return "field"
	case RoleGrid:
		return "grid"
	}
	return "unknown"
}

type sceneObject struct {
	id       uint64
	group    uint64
	label    string
	role     Role
	geometry geometry.Descriptor
	mesh     renderer.MeshHandle
	material renderer.MaterialHandle

	rotation  mgl32.Vec3
	scale     mgl32.Vec3
	spinScale mgl32.Vec3
}

// SceneObject describes a renderable unit before it is registered.
// It carries identity, geometry, the shared material reference and the initial transform;
// the registry copies these values into its own storage, so a SceneObject is never mutated afterwards.
type SceneObject interface {
	// ID returns the unique identity of the object.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// Group returns the ID of the compound this object belongs to.
	// A standalone object is its own group.
	//
	// Returns:
	//   - uint64: the group ID
	Group() uint64

	// Label returns a human-readable name used in logs and GPU debug labels.
	//
	// Returns:
	//   - string: the label
	Label() string

	// Role returns how the animation loop drives this object.
	//
	// Returns:
	//   - Role: the object role
	Role() Role

	// Geometry returns the descriptor the object's mesh was generated from.
	//
	// Returns:
	//   - geometry.Descriptor: the descriptor
	Geometry() geometry.Descriptor

	// Mesh returns the renderer mesh drawn for this object.
	//
	// Returns:
	//   - renderer.MeshHandle: the mesh handle
	Mesh() renderer.MeshHandle

	// Material returns the shared palette material. The object does not own it.
	//
	// Returns:
	//   - renderer.MaterialHandle: the material handle
	Material() renderer.MaterialHandle

	// Rotation returns the initial Euler rotation in radians.
	//
	// Returns:
	//   - mgl32.Vec3: the rotation
	Rotation() mgl32.Vec3

	// Scale returns the scale factors.
	//
	// Returns:
	//   - mgl32.Vec3: the scale
	Scale() mgl32.Vec3

	// SpinScale returns the per-axis multiplier applied to the loop's rotation step.
	// A zero axis never rotates.
	//
	// Returns:
	//   - mgl32.Vec3: the spin multiplier
	SpinScale() mgl32.Vec3
}

var _ SceneObject = &sceneObject{}

// NewSceneObject creates a new SceneObject. Without options the object has unit scale,
// unit spin and forms its own group.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - SceneObject: the newly created object
func NewSceneObject(options ...SceneObjectBuilderOption) SceneObject {
	obj := &sceneObject{
		scale:     mgl32.Vec3{1, 1, 1},
		spinScale: mgl32.Vec3{1, 1, 1},
	}
	for _, option := range options {
		option(obj)
	}
	if obj.group == 0 {
		obj.group = obj.id
	}
	return obj
}

func (o *sceneObject) ID() uint64 {
	return o.id
}

func (o *sceneObject) Group() uint64 {
	return o.group
}

func (o *sceneObject) Label() string {
	return o.label
}

func (o *sceneObject) Role() Role {
	return o.role
}

func (o *sceneObject) Geometry() geometry.Descriptor {
	return o.geometry
}

func (o *sceneObject) Mesh() renderer.MeshHandle {
	return o.mesh
}

func (o *sceneObject) Material() renderer.MaterialHandle {
	return o.material
}

func (o *sceneObject) Rotation() mgl32.Vec3 {
	return o.rotation
}

func (o *sceneObject) Scale() mgl32.Vec3 {
	return o.scale
}

func (o *sceneObject) SpinScale() mgl32.Vec3 {
	return o.spinScale
}
