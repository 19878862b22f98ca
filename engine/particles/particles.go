// Package particles generates the decorative layers drawn behind the primitives:
// a point field filling a box behind the primitives and a line grid backdrop.
package particles

import (
	"math/rand/v2"

	"github.com/Carmen-Shannon/oxy-backdrop/engine/config"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/geometry"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/scene_object"
	"github.com/go-gl/mathgl/mgl32"
)

// Layer is a decorative mesh animated as one rigid body.
type Layer struct {
	Label    string
	Role     scene_object.Role
	Mesh     geometry.Mesh
	Base     mgl32.Vec3
	Material string
}

// FieldPoints scatters count points uniformly through a box extent wide, centered on the z axis,
// reaching from z = near back to z = near - extent.z. The same seed always yields the same points.
//
// Parameters:
//   - count: number of points, negative counts yield none
//   - extent: the box size on each axis, negative sizes are treated as zero
//   - near: the z of the box face closest to the camera
//   - seed: the generator seed
//
// Returns:
//   - []mgl32.Vec3: the point positions
func FieldPoints(count int, extent mgl32.Vec3, near float32, seed uint64) []mgl32.Vec3 {
	if count <= 0 {
		return nil
	}
	for i := range extent {
		extent[i] = max(extent[i], 0)
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	points := make([]mgl32.Vec3, count)
	for i := range points {
		points[i] = mgl32.Vec3{
			(rng.Float32() - 0.5) * extent.X(),
			(rng.Float32() - 0.5) * extent.Y(),
			near - rng.Float32()*extent.Z(),
		}
	}
	return points
}

// Field builds the particle field layer from the tuning constants.
//
// Parameters:
//   - tu: the tuning constants
//
// Returns:
//   - Layer: the field layer centered at the origin
func Field(tu config.Tuning) Layer {
	return Layer{
		Label:    "particle_field",
		Role:     scene_object.RoleField,
		Mesh:     geometry.Points(FieldPoints(tu.ParticleCount, tu.ParticleExtent, tu.ParticleNear, tu.Seed)),
		Material: config.MaterialParticle,
	}
}

// Grid builds the backdrop grid layer from the tuning constants.
//
// Parameters:
//   - tu: the tuning constants
//
// Returns:
//   - Layer: the grid layer at z = tu.GridDepth
func Grid(tu config.Tuning) Layer {
	return Layer{
		Label:    "backdrop_grid",
		Role:     scene_object.RoleGrid,
		Mesh:     geometry.Grid(tu.GridSize, tu.GridDivisions),
		Base:     mgl32.Vec3{0, 0, tu.GridDepth},
		Material: config.MaterialGrid,
	}
}
