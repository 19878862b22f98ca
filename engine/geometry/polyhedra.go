package geometry

import (
	"sort"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

var tetrahedronVertices = []mgl32.Vec3{{1, 1, 1}, {-1, -1, 1}, {-1, 1, -1}, {1, -1, -1}}

var tetrahedronFaces = [][3]int{{2, 1, 0}, {0, 3, 2}, {1, 3, 0}, {2, 3, 1}}

var octahedronVertices = []mgl32.Vec3{{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1}}

var octahedronFaces = [][3]int{
	{0, 2, 4}, {0, 4, 3}, {0, 3, 5}, {0, 5, 2},
	{1, 2, 5}, {1, 5, 3}, {1, 3, 4}, {1, 4, 2},
}

func icosahedronVertices() []mgl32.Vec3 {
	t := (1 + math32.Sqrt(5)) / 2
	return []mgl32.Vec3{
		{-1, t, 0}, {1, t, 0}, {-1, -t, 0}, {1, -t, 0},
		{0, -1, t}, {0, 1, t}, {0, -1, -t}, {0, 1, -t},
		{t, 0, -1}, {t, 0, 1}, {-t, 0, -1}, {-t, 0, 1},
	}
}

var icosahedronFaces = [][3]int{
	{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
	{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
	{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
	{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
}

// flatPolyhedron projects vertices onto a sphere of the given radius and emits one flat-shaded
// triangle per face. Faces are re-wound when needed so every normal points away from the center.
func flatPolyhedron(vertices []mgl32.Vec3, faces [][3]int, radius float32) Mesh {
	m := Mesh{
		Vertices: make([]Vertex, 0, len(faces)*3),
		Indices:  make([]uint32, 0, len(faces)*3),
		Topology: TopologyTriangles,
	}
	for _, f := range faces {
		a := vertices[f[0]].Normalize().Mul(radius)
		b := vertices[f[1]].Normalize().Mul(radius)
		c := vertices[f[2]].Normalize().Mul(radius)
		appendFlatTriangle(&m, a, b, c)
	}
	return m
}

func appendFlatTriangle(m *Mesh, a, b, c mgl32.Vec3) {
	n := b.Sub(a).Cross(c.Sub(a))
	if n.Dot(a.Add(b).Add(c)) < 0 {
		b, c = c, b
		n = n.Mul(-1)
	}
	n = n.Normalize()
	base := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, Vertex{Position: a, Normal: n}, Vertex{Position: b, Normal: n}, Vertex{Position: c, Normal: n})
	m.Indices = append(m.Indices, base, base+1, base+2)
}

// dodecahedron builds the dual of the icosahedron: one vertex per icosahedron face centroid and one
// pentagon per icosahedron vertex, fan-triangulated with a shared flat normal.
func dodecahedron(radius float32) Mesh {
	ico := icosahedronVertices()
	centroids := make([]mgl32.Vec3, len(icosahedronFaces))
	for i, f := range icosahedronFaces {
		centroids[i] = ico[f[0]].Add(ico[f[1]]).Add(ico[f[2]]).Normalize().Mul(radius)
	}

	m := Mesh{Topology: TopologyTriangles}
	for vi, v := range ico {
		axis := v.Normalize()
		ring := make([]int, 0, 5)
		for fi, f := range icosahedronFaces {
			if f[0] == vi || f[1] == vi || f[2] == vi {
				ring = append(ring, fi)
			}
		}
		u := centroids[ring[0]].Sub(axis.Mul(centroids[ring[0]].Dot(axis))).Normalize()
		w := axis.Cross(u)
		sort.Slice(ring, func(i, j int) bool {
			pi, pj := centroids[ring[i]], centroids[ring[j]]
			return math32.Atan2(pi.Dot(w), pi.Dot(u)) < math32.Atan2(pj.Dot(w), pj.Dot(u))
		})

		base := uint32(len(m.Vertices))
		for _, fi := range ring {
			m.Vertices = append(m.Vertices, Vertex{Position: centroids[fi], Normal: axis})
		}
		for k := uint32(1); k+1 < uint32(len(ring)); k++ {
			m.Indices = append(m.Indices, base, base+k, base+k+1)
		}
	}
	return m
}
