package scene

import (
	"fmt"
	"slices"

	"github.com/Carmen-Shannon/oxy-backdrop/engine/config"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/geometry"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Shape enumerates the primitive catalogue. Compound shapes spawn several objects that share
// one cursor seed and one float phase.
type Shape uint8

const (
	ShapeCube Shape = iota
	ShapeSphere
	ShapeTorus
	ShapeIcosahedron
	ShapeOctahedron
	ShapeCone
	ShapeTorusKnot
	ShapeDodecahedron
	ShapeTetrahedron
	ShapeRing
	ShapeHexPrism
	ShapePanel
	ShapeRod
	ShapeChip
	ShapeHelix
	ShapeCrystalCluster
	ShapeRingedOrb
	ShapeCapsule
	ShapeCylinder

	shapeCount
)

var shapeNames = [shapeCount]string{
	ShapeCube:           "cube",
	ShapeSphere:         "sphere",
	ShapeTorus:          "torus",
	ShapeIcosahedron:    "icosahedron",
	ShapeOctahedron:     "octahedron",
	ShapeCone:           "cone",
	ShapeTorusKnot:      "torus_knot",
	ShapeDodecahedron:   "dodecahedron",
	ShapeTetrahedron:    "tetrahedron",
	ShapeRing:           "ring",
	ShapeHexPrism:       "hex_prism",
	ShapePanel:          "panel",
	ShapeRod:            "rod",
	ShapeChip:           "chip",
	ShapeHelix:          "helix",
	ShapeCrystalCluster: "crystal_cluster",
	ShapeRingedOrb:      "ringed_orb",
	ShapeCapsule:        "capsule",
	ShapeCylinder:       "cylinder",
}

// defaultSizes lists each shape's size parameters in WithSize order.
var defaultSizes = [shapeCount][]float32{
	ShapeCube:           {0.7},             // edge
	ShapeSphere:         {0.45},            // radius
	ShapeTorus:          {0.45, 0.15},      // radius, tube
	ShapeIcosahedron:    {0.5},             // radius
	ShapeOctahedron:     {0.5},             // radius
	ShapeCone:           {0.35, 0.8},       // radius, height
	ShapeTorusKnot:      {0.35, 0.12},      // radius, tube
	ShapeDodecahedron:   {0.5},             // radius
	ShapeTetrahedron:    {0.45},            // radius
	ShapeRing:           {0.2, 0.5},        // inner, outer
	ShapeHexPrism:       {0.35, 0.6},       // radius, height
	ShapePanel:          {0.9, 0.45, 0.08}, // width, height, depth
	ShapeRod:            {0.12, 1.0},       // radius, length
	ShapeChip:           {0.9},             // footprint
	ShapeHelix:          {1.2, 0.3, 0.08},  // height, coil radius, bead radius
	ShapeCrystalCluster: {0.6},             // cluster size
	ShapeRingedOrb:      {0.4},             // orb radius
	ShapeCapsule:        {0.25, 0.8},       // radius, length
	ShapeCylinder:       {0.25, 0.35, 0.8}, // top radius, bottom radius, height
}

const (
	helixBeads   = 8
	crystalCount = 5
)

func (s Shape) String() string {
	if s < shapeCount {
		return shapeNames[s]
	}
	return fmt.Sprintf("shape(%d)", uint8(s))
}

// Compound reports whether the shape spawns more than one object.
func (s Shape) Compound() bool {
	switch s {
	case ShapeChip, ShapeHelix, ShapeCrystalCluster, ShapeRingedOrb:
		return true
	}
	return false
}

// DefaultSize returns a copy of the shape's default size parameters.
func (s Shape) DefaultSize() []float32 {
	if s >= shapeCount {
		return nil
	}
	return append([]float32(nil), defaultSizes[s]...)
}

// Shapes returns the whole catalogue in declaration order.
func Shapes() []Shape {
	out := make([]Shape, shapeCount)
	for i := range out {
		out[i] = Shape(i)
	}
	return out
}

// ParseShape resolves a catalogue name.
//
// Parameters:
//   - name: the shape name, e.g. "torus_knot"
//
// Returns:
//   - Shape: the shape
//   - error: an error wrapping config.ErrInvalidLayout for unknown names
func ParseShape(name string) (Shape, error) {
	for i, n := range shapeNames {
		if n == name {
			return Shape(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown shape %q", config.ErrInvalidLayout, name)
}

// Materials returns the palette entry names the shape's parts are painted with when a spawn
// does not choose a material, without duplicates.
//
// Returns:
//   - []string: the material names in part order
func (s Shape) Materials() []string {
	parts, err := s.parts(s.DefaultSize())
	if err != nil {
		return nil
	}
	var out []string
	for _, p := range parts {
		if !slices.Contains(out, p.material) {
			out = append(out, p.material)
		}
	}
	return out
}

// part is one object of a spawned shape, positioned relative to the spawn point.
type part struct {
	label    string
	material string
	geometry geometry.Descriptor
	offset   mgl32.Vec3
	rotation mgl32.Vec3
}

// resolveSize overlays overrides on the shape's defaults in order. Extra overrides are ignored.
func resolveSize(s Shape, overrides []float32) []float32 {
	size := s.DefaultSize()
	for i := 0; i < len(size) && i < len(overrides); i++ {
		size[i] = overrides[i]
	}
	return size
}

// parts expands a shape into its objects. Degenerate sizes are left to geometry.Descriptor.Normalize,
// except where a size also drives an offset, which is clamped here so parts never collapse to NaN.
func (s Shape) parts(size []float32) ([]part, error) {
	if s >= shapeCount {
		return nil, fmt.Errorf("unknown shape %v", s)
	}
	clamp := func(v float32) float32 {
		if !(v >= geometry.MinSize) {
			return geometry.MinSize
		}
		return v
	}
	single := func(material string, d geometry.Descriptor, rotation mgl32.Vec3) []part {
		return []part{{label: s.String(), material: material, geometry: d, rotation: rotation}}
	}

	switch s {
	case ShapeCube:
		e := size[0]
		return single(config.MaterialSky, geometry.Descriptor{Kind: geometry.KindBox, Size: [3]float32{e, e, e}}, mgl32.Vec3{}), nil
	case ShapeSphere:
		return single(config.MaterialPurple, geometry.Descriptor{Kind: geometry.KindSphere, Size: [3]float32{size[0]}, Segments: [2]int{16, 16}}, mgl32.Vec3{}), nil
	case ShapeTorus:
		return single(config.MaterialPink, geometry.Descriptor{Kind: geometry.KindTorus, Size: [3]float32{size[0], size[1]}, Segments: [2]int{16, 32}}, mgl32.Vec3{}), nil
	case ShapeIcosahedron:
		return single(config.MaterialSky, geometry.Descriptor{Kind: geometry.KindIcosahedron, Size: [3]float32{size[0]}}, mgl32.Vec3{}), nil
	case ShapeOctahedron:
		return single(config.MaterialPurple, geometry.Descriptor{Kind: geometry.KindOctahedron, Size: [3]float32{size[0]}}, mgl32.Vec3{}), nil
	case ShapeCone:
		return single(config.MaterialPink, geometry.Descriptor{Kind: geometry.KindCylinder, Size: [3]float32{0, size[0], size[1]}, Segments: [2]int{18, 1}}, mgl32.Vec3{}), nil
	case ShapeTorusKnot:
		return single(config.MaterialCyan, geometry.Descriptor{Kind: geometry.KindTorusKnot, Size: [3]float32{size[0], size[1]}, Segments: [2]int{80, 12}}, mgl32.Vec3{}), nil
	case ShapeDodecahedron:
		return single(config.MaterialSky, geometry.Descriptor{Kind: geometry.KindDodecahedron, Size: [3]float32{size[0]}}, mgl32.Vec3{}), nil
	case ShapeTetrahedron:
		return single(config.MaterialPurple, geometry.Descriptor{Kind: geometry.KindTetrahedron, Size: [3]float32{size[0]}}, mgl32.Vec3{}), nil
	case ShapeRing:
		return single(config.MaterialPink, geometry.Descriptor{Kind: geometry.KindRing, Size: [3]float32{size[0], size[1]}, Segments: [2]int{24, 1}},
			mgl32.Vec3{math32.Pi / 2.4, 0, 0}), nil
	case ShapeHexPrism:
		return single(config.MaterialSky, geometry.Descriptor{Kind: geometry.KindCylinder, Size: [3]float32{size[0], size[0], size[1]}, Segments: [2]int{6, 1}}, mgl32.Vec3{}), nil
	case ShapePanel:
		return single(config.MaterialCyan, geometry.Descriptor{Kind: geometry.KindBox, Size: [3]float32{size[0], size[1], size[2]}},
			mgl32.Vec3{0, 0, math32.Pi / 6}), nil
	case ShapeRod:
		return single(config.MaterialPurple, geometry.Descriptor{Kind: geometry.KindCylinder, Size: [3]float32{size[0], size[0], size[1]}, Segments: [2]int{12, 1}},
			mgl32.Vec3{math32.Pi / 3.5, 0, 0}), nil
	case ShapeCapsule:
		return single(config.MaterialCyan, geometry.Descriptor{Kind: geometry.KindCapsule, Size: [3]float32{size[0], size[1]}, Segments: [2]int{12, 6}}, mgl32.Vec3{}), nil
	case ShapeCylinder:
		return single(config.MaterialSky, geometry.Descriptor{Kind: geometry.KindCylinder, Size: [3]float32{size[0], size[1], size[2]}, Segments: [2]int{14, 1}}, mgl32.Vec3{}), nil

	case ShapeChip:
		f := clamp(size[0])
		return []part{
			{label: "chip_base", material: config.MaterialChip, geometry: geometry.Descriptor{Kind: geometry.KindBox, Size: [3]float32{f, f * 0.55, f}}},
			{label: "chip_die", material: config.MaterialChipGlow, geometry: geometry.Descriptor{Kind: geometry.KindBox, Size: [3]float32{f * 0.7, f * 0.3, f * 0.7}},
				offset: mgl32.Vec3{0, f * 0.35, 0}},
			{label: "chip_rim", material: config.MaterialCyan, geometry: geometry.Descriptor{Kind: geometry.KindBox, Size: [3]float32{f * 0.9, f * 0.08, f * 0.9}},
				offset: mgl32.Vec3{0, f * 0.52, 0}},
		}, nil

	case ShapeHelix:
		height, coil, bead := clamp(size[0]), clamp(size[1]), size[2]
		out := make([]part, helixBeads)
		for i := range out {
			u := float32(i) / helixBeads
			angle := u * 4 * math32.Pi
			out[i] = part{
				label:    "helix_bead",
				material: config.MaterialCyan,
				geometry: geometry.Descriptor{Kind: geometry.KindSphere, Size: [3]float32{bead}, Segments: [2]int{12, 12}},
				offset:   mgl32.Vec3{math32.Cos(angle) * coil, (u - 0.5) * height, math32.Sin(angle) * coil},
			}
		}
		return out, nil

	case ShapeCrystalCluster:
		c := clamp(size[0])
		out := make([]part, crystalCount)
		for i := range out {
			angle := float32(i) / crystalCount * 2 * math32.Pi
			out[i] = part{
				label:    "crystal",
				material: config.MaterialPurple,
				geometry: geometry.Descriptor{Kind: geometry.KindCylinder, Size: [3]float32{0, c * 0.2, c * 0.8}, Segments: [2]int{6, 1}},
				offset:   mgl32.Vec3{math32.Cos(angle) * c * 0.4, 0, math32.Sin(angle) * c * 0.4},
				rotation: mgl32.Vec3{0, 0, math32.Pi},
			}
		}
		return out, nil

	case ShapeRingedOrb:
		r := clamp(size[0])
		return []part{
			{label: "orb", material: config.MaterialChipGlow, geometry: geometry.Descriptor{Kind: geometry.KindSphere, Size: [3]float32{r}, Segments: [2]int{24, 24}}},
			{label: "orb_ring_inner", material: config.MaterialCyan, geometry: geometry.Descriptor{Kind: geometry.KindTorus, Size: [3]float32{r * 1.3, r * 0.08}, Segments: [2]int{12, 24}},
				rotation: mgl32.Vec3{math32.Pi / 3, 0, 0}},
			{label: "orb_ring_outer", material: config.MaterialPink, geometry: geometry.Descriptor{Kind: geometry.KindTorus, Size: [3]float32{r * 1.5, r * 0.08}, Segments: [2]int{12, 24}},
				rotation: mgl32.Vec3{0, math32.Pi / 3, 0}},
		}, nil
	}
	return nil, fmt.Errorf("unknown shape %v", s)
}
