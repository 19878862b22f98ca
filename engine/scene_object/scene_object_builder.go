package scene_object

import (
	"github.com/Carmen-Shannon/oxy-backdrop/engine/geometry"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/renderer"
	"github.com/go-gl/mathgl/mgl32"
)

// SceneObjectBuilderOption is a function that configures a scene object during construction.
type SceneObjectBuilderOption func(*sceneObject)

// WithID sets the unique identity of the object.
//
// Parameters:
//   - id: the object ID
//
// Returns:
//   - SceneObjectBuilderOption: a function that applies the ID option to an object
func WithID(id uint64) SceneObjectBuilderOption {
	return func(o *sceneObject) {
		o.id = id
	}
}

// WithGroup places the object in a compound. Members of a compound share one cursor-response seed
// through the factory; each still floats and rotates by its own registration index.
//
// Parameters:
//   - group: the ID of the compound's root object
//
// Returns:
//   - SceneObjectBuilderOption: a function that applies the group option to an object
func WithGroup(group uint64) SceneObjectBuilderOption {
	return func(o *sceneObject) {
		o.group = group
	}
}

// WithLabel sets the object's label.
//
// Parameters:
//   - label: the label
//
// Returns:
//   - SceneObjectBuilderOption: a function that applies the label option to an object
func WithLabel(label string) SceneObjectBuilderOption {
	return func(o *sceneObject) {
		o.label = label
	}
}

// WithRole sets how the animation loop drives the object.
//
// Parameters:
//   - role: the role
//
// Returns:
//   - SceneObjectBuilderOption: a function that applies the role option to an object
func WithRole(role Role) SceneObjectBuilderOption {
	return func(o *sceneObject) {
		o.role = role
	}
}

// WithGeometry sets the geometry descriptor and the uploaded mesh generated from it.
//
// Parameters:
//   - d: the geometry descriptor
//   - mesh: the renderer mesh handle
//
// Returns:
//   - SceneObjectBuilderOption: a function that applies the geometry option to an object
func WithGeometry(d geometry.Descriptor, mesh renderer.MeshHandle) SceneObjectBuilderOption {
	return func(o *sceneObject) {
		o.geometry = d
		o.mesh = mesh
	}
}

// WithMaterial sets the shared material reference.
//
// Parameters:
//   - m: the material handle
//
// Returns:
//   - SceneObjectBuilderOption: a function that applies the material option to an object
func WithMaterial(m renderer.MaterialHandle) SceneObjectBuilderOption {
	return func(o *sceneObject) {
		o.material = m
	}
}

// WithRotation sets the initial Euler rotation in radians.
//
// Parameters:
//   - rx, ry, rz: rotation around each axis
//
// Returns:
//   - SceneObjectBuilderOption: a function that applies the rotation option to an object
func WithRotation(rx, ry, rz float32) SceneObjectBuilderOption {
	return func(o *sceneObject) {
		o.rotation = mgl32.Vec3{rx, ry, rz}
	}
}

// WithScale sets the scale factors.
//
// Parameters:
//   - sx, sy, sz: scale along each axis
//
// Returns:
//   - SceneObjectBuilderOption: a function that applies the scale option to an object
func WithScale(sx, sy, sz float32) SceneObjectBuilderOption {
	return func(o *sceneObject) {
		o.scale = mgl32.Vec3{sx, sy, sz}
	}
}

// WithSpinScale sets the per-axis multiplier of the loop's rotation step.
//
// Parameters:
//   - sx, sy, sz: multiplier per axis
//
// Returns:
//   - SceneObjectBuilderOption: a function that applies the spin option to an object
func WithSpinScale(sx, sy, sz float32) SceneObjectBuilderOption {
	return func(o *sceneObject) {
		o.spinScale = mgl32.Vec3{sx, sy, sz}
	}
}
