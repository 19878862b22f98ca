package scene_object

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-backdrop/engine/geometry"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestNewSceneObjectDefaults(t *testing.T) {
	obj := NewSceneObject(WithID(7))
	assert.Equal(t, uint64(7), obj.ID())
	assert.Equal(t, uint64(7), obj.Group(), "an ungrouped object is its own group")
	assert.Equal(t, RolePrimitive, obj.Role())
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, obj.Scale())
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, obj.SpinScale())
	assert.Equal(t, mgl32.Vec3{}, obj.Rotation())
}

func TestNewSceneObjectOptions(t *testing.T) {
	d := geometry.Descriptor{Kind: geometry.KindSphere, Size: [3]float32{0.5}}
	obj := NewSceneObject(
		WithID(3),
		WithGroup(1),
		WithLabel("helix_bead"),
		WithRole(RoleField),
		WithGeometry(d, 9),
		WithMaterial(2),
		WithRotation(0.1, 0.2, 0.3),
		WithScale(2, 2, 2),
		WithSpinScale(0, 1, 0),
	)
	assert.Equal(t, uint64(1), obj.Group())
	assert.Equal(t, "helix_bead", obj.Label())
	assert.Equal(t, RoleField, obj.Role())
	assert.Equal(t, d, obj.Geometry())
	assert.EqualValues(t, 9, obj.Mesh())
	assert.EqualValues(t, 2, obj.Material())
	assert.Equal(t, mgl32.Vec3{0.1, 0.2, 0.3}, obj.Rotation())
	assert.Equal(t, mgl32.Vec3{2, 2, 2}, obj.Scale())
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, obj.SpinScale())
}

func TestRoleString(t *testing.T) {
	tests := []struct {
		role Role
		want string
	}{
		{RolePrimitive, "primitive"},
		{RoleField, "field"},
		{RoleGrid, "grid"},
		{Role(9), "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.role.String())
	}
}
