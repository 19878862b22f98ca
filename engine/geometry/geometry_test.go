package geometry

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allKinds() []Descriptor {
	return []Descriptor{
		{Kind: KindBox, Size: [3]float32{1, 2, 3}},
		{Kind: KindSphere, Size: [3]float32{1}, Segments: [2]int{16, 12}},
		{Kind: KindCapsule, Size: [3]float32{0.3, 1}, Segments: [2]int{12, 4}},
		{Kind: KindCylinder, Size: [3]float32{0.5, 0.5, 1}, Segments: [2]int{12}},
		{Kind: KindCylinder, Size: [3]float32{0, 0.5, 1}, Segments: [2]int{12}},
		{Kind: KindTorus, Size: [3]float32{1, 0.25}, Segments: [2]int{12, 24}},
		{Kind: KindTorusKnot, Size: [3]float32{1, 0.2}, Segments: [2]int{64, 8}},
		{Kind: KindRing, Size: [3]float32{0.5, 1}, Segments: [2]int{32}},
		{Kind: KindTetrahedron, Size: [3]float32{1}},
		{Kind: KindOctahedron, Size: [3]float32{1}},
		{Kind: KindIcosahedron, Size: [3]float32{1}},
		{Kind: KindDodecahedron, Size: [3]float32{1}},
	}
}

func TestBuildProducesValidMeshes(t *testing.T) {
	for _, d := range allKinds() {
		t.Run(d.Kind.String(), func(t *testing.T) {
			m, err := Build(d)
			require.NoError(t, err)
			assert.Equal(t, TopologyTriangles, m.Topology)
			require.NotEmpty(t, m.Vertices)
			require.NotEmpty(t, m.Indices)
			assert.Zero(t, len(m.Indices)%3)
			for _, idx := range m.Indices {
				require.Less(t, int(idx), len(m.Vertices))
			}
			for _, v := range m.Vertices {
				assert.InDelta(t, 1, v.Normal.Len(), 1e-3)
			}
		})
	}
}

func TestPolyhedronFaceCounts(t *testing.T) {
	tests := []struct {
		kind      Kind
		triangles int
	}{
		{KindTetrahedron, 4},
		{KindOctahedron, 8},
		{KindIcosahedron, 20},
		{KindDodecahedron, 36}, // 12 pentagons, three triangles each
	}
	for _, tt := range tests {
		m, err := Build(Descriptor{Kind: tt.kind, Size: [3]float32{2}})
		require.NoError(t, err)
		assert.Len(t, m.Indices, tt.triangles*3, tt.kind.String())
		for _, v := range m.Vertices {
			assert.InDelta(t, 2, v.Position.Len(), 1e-4)
		}
	}
}

func TestPolyhedronNormalsFaceOutward(t *testing.T) {
	for _, k := range []Kind{KindTetrahedron, KindOctahedron, KindIcosahedron, KindDodecahedron} {
		m, err := Build(Descriptor{Kind: k, Size: [3]float32{1}})
		require.NoError(t, err)
		for i := 0; i < len(m.Indices); i += 3 {
			a := m.Vertices[m.Indices[i]]
			b := m.Vertices[m.Indices[i+1]]
			c := m.Vertices[m.Indices[i+2]]
			wound := b.Position.Sub(a.Position).Cross(c.Position.Sub(a.Position))
			assert.Greater(t, wound.Dot(a.Normal), float32(0), k.String())
		}
	}
}

func TestBoxBounds(t *testing.T) {
	m, err := Build(Descriptor{Kind: KindBox, Size: [3]float32{2, 4, 6}})
	require.NoError(t, err)
	lo, hi := m.Bounds()
	assert.Equal(t, mgl32.Vec3{-1, -2, -3}, lo)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, hi)
}

func TestNormalizeClampsDegenerateSizes(t *testing.T) {
	d := Descriptor{Kind: KindSphere, Size: [3]float32{0, -1, float32(math.NaN())}}.Normalize()
	for _, s := range d.Size {
		assert.Equal(t, MinSize, s)
	}
	assert.GreaterOrEqual(t, d.Segments[0], 3)

	cone := Descriptor{Kind: KindCylinder, Size: [3]float32{0, 1, 1}}.Normalize()
	assert.Zero(t, cone.Size[0])

	r := Descriptor{Kind: KindRing, Size: [3]float32{1, 0.5}}.Normalize()
	assert.Greater(t, r.Size[1], r.Size[0])

	m, err := Build(Descriptor{Kind: KindBox})
	require.NoError(t, err)
	lo, hi := m.Bounds()
	assert.InDelta(t, MinSize, hi.X()-lo.X(), 1e-9)
}

func TestBuildUnknownKind(t *testing.T) {
	_, err := Build(Descriptor{Kind: Kind(200)})
	assert.Error(t, err)
}

func TestPointsAndGrid(t *testing.T) {
	p := Points([]mgl32.Vec3{{0, 0, 0}, {1, 1, 1}})
	assert.Equal(t, TopologyPoints, p.Topology)
	assert.Equal(t, []uint32{0, 1}, p.Indices)

	g := Grid(10, 4)
	assert.Equal(t, TopologyLines, g.Topology)
	assert.Len(t, g.Vertices, 5*4)
	assert.Len(t, g.Indices, 5*4)
	lo, hi := g.Bounds()
	assert.Equal(t, float32(-5), lo.X())
	assert.Equal(t, float32(5), hi.Y())
	assert.Zero(t, hi.Z(), "the grid is flat in XY")
}

func TestBuilderBuildAllSharesDuplicates(t *testing.T) {
	b := NewBuilder(WithWorkers(2))
	assert.Equal(t, 2, b.Workers())

	descs := append(allKinds(), allKinds()[0])
	meshes, err := b.BuildAll(descs)
	require.NoError(t, err)
	require.Len(t, meshes, len(descs))
	for i, d := range descs {
		want, err := Build(d)
		require.NoError(t, err)
		assert.Equal(t, len(want.Vertices), len(meshes[i].Vertices), d.Kind.String())
	}
	assert.Same(t, &meshes[0].Vertices[0], &meshes[len(meshes)-1].Vertices[0])
}

func TestBuilderBuildAllReportsErrors(t *testing.T) {
	b := NewBuilder(WithWorkers(1))
	_, err := b.BuildAll([]Descriptor{{Kind: KindBox, Size: [3]float32{1, 1, 1}}, {Kind: Kind(99)}})
	assert.Error(t, err)
}
