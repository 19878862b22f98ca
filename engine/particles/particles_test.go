package particles

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-backdrop/engine/config"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/geometry"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/scene_object"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldPointsInBox(t *testing.T) {
	points := FieldPoints(500, mgl32.Vec3{18, 10, 10}, -2, 42)
	require.Len(t, points, 500)
	for _, p := range points {
		assert.LessOrEqual(t, mgl32.Abs(p.X()), float32(9))
		assert.LessOrEqual(t, mgl32.Abs(p.Y()), float32(5))
		assert.LessOrEqual(t, p.Z(), float32(-2))
		assert.GreaterOrEqual(t, p.Z(), float32(-12))
	}
}

func TestFieldPointsDeterministic(t *testing.T) {
	extent := mgl32.Vec3{18, 10, 10}
	assert.Equal(t, FieldPoints(64, extent, -2, 7), FieldPoints(64, extent, -2, 7))
	assert.NotEqual(t, FieldPoints(64, extent, -2, 7), FieldPoints(64, extent, -2, 8))
	assert.Nil(t, FieldPoints(0, extent, -2, 7))
	assert.Nil(t, FieldPoints(-3, extent, -2, 7))
}

func TestFieldPointsFlatBox(t *testing.T) {
	for _, p := range FieldPoints(32, mgl32.Vec3{4, -1, 0}, -3, 1) {
		assert.Zero(t, p.Y(), "negative extents collapse")
		assert.Equal(t, float32(-3), p.Z())
	}
}

func TestLayers(t *testing.T) {
	tu := config.DefaultTuning()

	f := Field(tu)
	assert.Equal(t, scene_object.RoleField, f.Role)
	assert.Equal(t, geometry.TopologyPoints, f.Mesh.Topology)
	assert.Len(t, f.Mesh.Vertices, tu.ParticleCount)
	assert.Equal(t, config.MaterialParticle, f.Material)

	g := Grid(tu)
	assert.Equal(t, scene_object.RoleGrid, g.Role)
	assert.Equal(t, geometry.TopologyLines, g.Mesh.Topology)
	assert.Equal(t, mgl32.Vec3{0, 0, tu.GridDepth}, g.Base)
	assert.Equal(t, config.MaterialGrid, g.Material)
}
