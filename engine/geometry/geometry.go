// Package geometry generates vertex and index data for the primitive kinds used by the backdrop scene.
package geometry

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// MinSize is the smallest size parameter a descriptor may carry.
// Smaller values are clamped up to it so degenerate shapes render as very small instead of failing.
const MinSize float32 = 1e-4

// Kind enumerates the primitive kinds the generator can build.
type Kind uint8

const (
	KindBox Kind = iota
	KindSphere
	KindCapsule
	KindCylinder
	KindTorus
	KindTorusKnot
	KindRing
	KindTetrahedron
	KindOctahedron
	KindIcosahedron
	KindDodecahedron
)

func (k Kind) String() string {
	switch k {
	case KindBox:
		return "box"
	case KindSphere:
		return "sphere"
	case KindCapsule:
		return "capsule"
	case KindCylinder:
		return "cylinder"
	case KindTorus:
		return "torus"
	case KindTorusKnot:
		return "torus_knot"
	case KindRing:
		return "ring"
	case KindTetrahedron:
		return "tetrahedron"
	case KindOctahedron:
		return "octahedron"
	case KindIcosahedron:
		return "icosahedron"
	case KindDodecahedron:
		return "dodecahedron"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Topology selects how the renderer assembles a mesh's indices.
type Topology uint8

const (
	TopologyTriangles Topology = iota
	TopologyLines
	TopologyPoints
)

// Vertex is the GPU vertex layout: position followed by normal, 24 bytes.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
}

// Mesh is CPU-side geometry ready for upload.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Topology Topology
}

// Descriptor identifies a primitive by kind and size parameters.
// Descriptors are comparable, so equal descriptors can share one uploaded mesh.
//
// Size meaning per kind:
//   - KindBox: width, height, depth
//   - KindSphere: radius
//   - KindCapsule: radius, length of the straight section
//   - KindCylinder: top radius, bottom radius, height (top radius 0 gives a cone)
//   - KindTorus: ring radius, tube radius
//   - KindTorusKnot: radius, tube radius
//   - KindRing: inner radius, outer radius
//   - polyhedra: circumradius
//
// Segments holds the radial and secondary tessellation counts where the kind uses them.
type Descriptor struct {
	Kind     Kind
	Size     [3]float32
	Segments [2]int
}

// minSegments is the smallest tessellation per kind and axis.
var minSegments = map[Kind][2]int{
	KindSphere:    {3, 2},
	KindCapsule:   {3, 1},
	KindCylinder:  {3, 1},
	KindTorus:     {3, 3},
	KindTorusKnot: {8, 3},
	KindRing:      {3, 1},
}

// Normalize returns a copy of d with every size parameter clamped to at least MinSize and every
// tessellation count raised to the kind's minimum. A cylinder's top radius may stay zero to form a cone.
//
// Returns:
//   - Descriptor: the normalized descriptor
func (d Descriptor) Normalize() Descriptor {
	for i := range d.Size {
		if d.Kind == KindCylinder && i == 0 && d.Size[0] == 0 {
			continue
		}
		if !(d.Size[i] >= MinSize) { // also catches NaN
			d.Size[i] = MinSize
		}
	}
	if d.Kind == KindRing && d.Size[1] <= d.Size[0] {
		d.Size[1] = d.Size[0] + MinSize
	}
	if m, ok := minSegments[d.Kind]; ok {
		d.Segments[0] = max(d.Segments[0], m[0])
		d.Segments[1] = max(d.Segments[1], m[1])
	}
	return d
}

// Build generates the mesh described by d after normalizing it.
//
// Parameters:
//   - d: the descriptor
//
// Returns:
//   - Mesh: the generated triangle mesh
//   - error: an error if the kind is unknown
func Build(d Descriptor) (Mesh, error) {
	d = d.Normalize()
	switch d.Kind {
	case KindBox:
		return box(d.Size[0], d.Size[1], d.Size[2]), nil
	case KindSphere:
		return sphere(d.Size[0], d.Segments[0], d.Segments[1]), nil
	case KindCapsule:
		return capsule(d.Size[0], d.Size[1], d.Segments[0], d.Segments[1]), nil
	case KindCylinder:
		return cylinder(d.Size[0], d.Size[1], d.Size[2], d.Segments[0]), nil
	case KindTorus:
		return torus(d.Size[0], d.Size[1], d.Segments[0], d.Segments[1]), nil
	case KindTorusKnot:
		return torusKnot(d.Size[0], d.Size[1], d.Segments[0], d.Segments[1], 2, 3), nil
	case KindRing:
		return ring(d.Size[0], d.Size[1], d.Segments[0]), nil
	case KindTetrahedron:
		return flatPolyhedron(tetrahedronVertices, tetrahedronFaces, d.Size[0]), nil
	case KindOctahedron:
		return flatPolyhedron(octahedronVertices, octahedronFaces, d.Size[0]), nil
	case KindIcosahedron:
		return flatPolyhedron(icosahedronVertices(), icosahedronFaces, d.Size[0]), nil
	case KindDodecahedron:
		return dodecahedron(d.Size[0]), nil
	}
	return Mesh{}, fmt.Errorf("unknown geometry kind %v", d.Kind)
}

// Points builds a point-list mesh from the given positions.
//
// Parameters:
//   - positions: the point positions
//
// Returns:
//   - Mesh: a point-topology mesh with one index per point
func Points(positions []mgl32.Vec3) Mesh {
	m := Mesh{
		Vertices: make([]Vertex, len(positions)),
		Indices:  make([]uint32, len(positions)),
		Topology: TopologyPoints,
	}
	for i, p := range positions {
		m.Vertices[i] = Vertex{Position: p}
		m.Indices[i] = uint32(i)
	}
	return m
}

// Grid builds a square line grid in the XY plane centered at the origin, facing +Z.
//
// Parameters:
//   - size: edge length of the grid
//   - divisions: number of cells per edge
//
// Returns:
//   - Mesh: a line-topology mesh
func Grid(size float32, divisions int) Mesh {
	size = max(size, MinSize)
	divisions = max(divisions, 1)
	half := size / 2
	step := size / float32(divisions)
	m := Mesh{Topology: TopologyLines}
	front := mgl32.Vec3{0, 0, 1}
	for i := 0; i <= divisions; i++ {
		o := -half + float32(i)*step
		base := uint32(len(m.Vertices))
		m.Vertices = append(m.Vertices,
			Vertex{Position: mgl32.Vec3{-half, o, 0}, Normal: front},
			Vertex{Position: mgl32.Vec3{half, o, 0}, Normal: front},
			Vertex{Position: mgl32.Vec3{o, -half, 0}, Normal: front},
			Vertex{Position: mgl32.Vec3{o, half, 0}, Normal: front},
		)
		m.Indices = append(m.Indices, base, base+1, base+2, base+3)
	}
	return m
}

// Bounds returns the axis-aligned bounds of the mesh.
//
// Returns:
//   - lo, hi: the minimum and maximum corners, both zero for an empty mesh
func (m Mesh) Bounds() (lo, hi mgl32.Vec3) {
	if len(m.Vertices) == 0 {
		return
	}
	lo, hi = m.Vertices[0].Position, m.Vertices[0].Position
	for _, v := range m.Vertices[1:] {
		for a := 0; a < 3; a++ {
			lo[a] = min(lo[a], v.Position[a])
			hi[a] = max(hi[a], v.Position[a])
		}
	}
	return
}
