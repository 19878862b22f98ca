package geometry

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

func box(w, h, d float32) Mesh {
	hx, hy, hz := w/2, h/2, d/2
	// each face: normal plus two in-plane axes scaled to the half extents
	faces := [6][3]mgl32.Vec3{
		{{1, 0, 0}, {0, 0, -hz}, {0, hy, 0}},
		{{-1, 0, 0}, {0, 0, hz}, {0, hy, 0}},
		{{0, 1, 0}, {hx, 0, 0}, {0, 0, -hz}},
		{{0, -1, 0}, {hx, 0, 0}, {0, 0, hz}},
		{{0, 0, 1}, {hx, 0, 0}, {0, hy, 0}},
		{{0, 0, -1}, {-hx, 0, 0}, {0, hy, 0}},
	}
	m := Mesh{
		Vertices: make([]Vertex, 0, 24),
		Indices:  make([]uint32, 0, 36),
		Topology: TopologyTriangles,
	}
	for _, f := range faces {
		n, u, v := f[0], f[1], f[2]
		c := mgl32.Vec3{n[0] * hx, n[1] * hy, n[2] * hz}
		base := uint32(len(m.Vertices))
		m.Vertices = append(m.Vertices,
			Vertex{Position: c.Sub(u).Sub(v), Normal: n},
			Vertex{Position: c.Add(u).Sub(v), Normal: n},
			Vertex{Position: c.Add(u).Add(v), Normal: n},
			Vertex{Position: c.Sub(u).Add(v), Normal: n},
		)
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return m
}

// profilePoint is one sample of a lathe profile: radius and height, plus the profile normal
// expressed as radial and vertical components.
type profilePoint struct {
	r, y   float32
	nr, ny float32
}

// lathe revolves a profile around the Y axis, appending to m.
// The seam column is duplicated so every ring has segments+1 vertices.
func lathe(m *Mesh, profile []profilePoint, segments int) {
	base := uint32(len(m.Vertices))
	cols := uint32(segments + 1)
	for _, p := range profile {
		for k := 0; k <= segments; k++ {
			theta := 2 * math32.Pi * float32(k) / float32(segments)
			c, s := math32.Cos(theta), math32.Sin(theta)
			m.Vertices = append(m.Vertices, Vertex{
				Position: mgl32.Vec3{p.r * c, p.y, p.r * s},
				Normal:   mgl32.Vec3{p.nr * c, p.ny, p.nr * s}.Normalize(),
			})
		}
	}
	for j := 0; j < len(profile)-1; j++ {
		for k := 0; k < segments; k++ {
			a := base + uint32(j)*cols + uint32(k)
			b := a + cols
			m.Indices = append(m.Indices, a, a+1, b, b, a+1, b+1)
		}
	}
}

// disc appends a flat cap at height y facing up (ny=1) or down (ny=-1).
func disc(m *Mesh, y, radius, ny float32, segments int) {
	center := uint32(len(m.Vertices))
	n := mgl32.Vec3{0, ny, 0}
	m.Vertices = append(m.Vertices, Vertex{Position: mgl32.Vec3{0, y, 0}, Normal: n})
	for k := 0; k <= segments; k++ {
		theta := 2 * math32.Pi * float32(k) / float32(segments)
		m.Vertices = append(m.Vertices, Vertex{
			Position: mgl32.Vec3{radius * math32.Cos(theta), y, radius * math32.Sin(theta)},
			Normal:   n,
		})
	}
	for k := uint32(0); k < uint32(segments); k++ {
		if ny > 0 {
			m.Indices = append(m.Indices, center, center+k+2, center+k+1)
		} else {
			m.Indices = append(m.Indices, center, center+k+1, center+k+2)
		}
	}
}

// hemisphere returns the profile of a quarter circle from polar angle from to to, shifted by yOffset.
func hemisphere(radius, yOffset, from, to float32, rings int) []profilePoint {
	out := make([]profilePoint, 0, rings+1)
	for i := 0; i <= rings; i++ {
		phi := from + (to-from)*float32(i)/float32(rings)
		s, c := math32.Sin(phi), math32.Cos(phi)
		out = append(out, profilePoint{r: radius * s, y: radius*c + yOffset, nr: s, ny: c})
	}
	return out
}

func sphere(radius float32, segments, rings int) Mesh {
	m := Mesh{Topology: TopologyTriangles}
	lathe(&m, hemisphere(radius, 0, 0, math32.Pi, rings), segments)
	return m
}

func capsule(radius, length float32, segments, capRings int) Mesh {
	half := length / 2
	profile := hemisphere(radius, half, 0, math32.Pi/2, capRings)
	profile = append(profile, hemisphere(radius, -half, math32.Pi/2, math32.Pi, capRings)...)
	m := Mesh{Topology: TopologyTriangles}
	lathe(&m, profile, segments)
	return m
}

func cylinder(rTop, rBottom, height float32, segments int) Mesh {
	half := height / 2
	// side normal tilts by the slope between the two radii
	n := mgl32.Vec2{height, rBottom - rTop}.Normalize()
	m := Mesh{Topology: TopologyTriangles}
	lathe(&m, []profilePoint{
		{r: rTop, y: half, nr: n[0], ny: n[1]},
		{r: rBottom, y: -half, nr: n[0], ny: n[1]},
	}, segments)
	if rTop > 0 {
		disc(&m, half, rTop, 1, segments)
	}
	disc(&m, -half, rBottom, -1, segments)
	return m
}

func torus(radius, tube float32, radial, tubular int) Mesh {
	m := Mesh{Topology: TopologyTriangles}
	for j := 0; j <= radial; j++ {
		v := 2 * math32.Pi * float32(j) / float32(radial)
		for i := 0; i <= tubular; i++ {
			u := 2 * math32.Pi * float32(i) / float32(tubular)
			center := mgl32.Vec3{radius * math32.Cos(u), radius * math32.Sin(u), 0}
			p := mgl32.Vec3{
				(radius + tube*math32.Cos(v)) * math32.Cos(u),
				(radius + tube*math32.Cos(v)) * math32.Sin(u),
				tube * math32.Sin(v),
			}
			m.Vertices = append(m.Vertices, Vertex{Position: p, Normal: p.Sub(center).Normalize()})
		}
	}
	gridIndices(&m, radial, tubular)
	return m
}

// knotPoint evaluates the (p, q) torus knot curve at parameter u.
func knotPoint(u, radius, p, q float32) mgl32.Vec3 {
	qu := q / p * u
	cs := math32.Cos(qu)
	return mgl32.Vec3{
		radius * (2 + cs) * 0.5 * math32.Cos(u),
		radius * (2 + cs) * 0.5 * math32.Sin(u),
		radius * math32.Sin(qu) * 0.5,
	}
}

func torusKnot(radius, tube float32, tubular, radial int, p, q float32) Mesh {
	m := Mesh{Topology: TopologyTriangles}
	for i := 0; i <= tubular; i++ {
		u := float32(i) / float32(tubular) * p * 2 * math32.Pi
		p1 := knotPoint(u, radius, p, q)
		p2 := knotPoint(u+0.01, radius, p, q)
		t := p2.Sub(p1)
		n := p2.Add(p1)
		b := t.Cross(n).Normalize()
		n = b.Cross(t).Normalize()
		for j := 0; j <= radial; j++ {
			v := float32(j) / float32(radial) * 2 * math32.Pi
			cx := -tube * math32.Cos(v)
			cy := tube * math32.Sin(v)
			pos := p1.Add(n.Mul(cx)).Add(b.Mul(cy))
			m.Vertices = append(m.Vertices, Vertex{Position: pos, Normal: pos.Sub(p1).Normalize()})
		}
	}
	gridIndices(&m, tubular, radial)
	return m
}

// gridIndices triangulates a (rows+1) x (cols+1) vertex grid appended last to m.
func gridIndices(m *Mesh, rows, cols int) {
	base := uint32(len(m.Vertices) - (rows+1)*(cols+1))
	stride := uint32(cols + 1)
	for j := uint32(1); j <= uint32(rows); j++ {
		for i := uint32(1); i <= uint32(cols); i++ {
			a := base + stride*(j-1) + i - 1
			b := base + stride*j + i - 1
			c := base + stride*j + i
			d := base + stride*(j-1) + i
			m.Indices = append(m.Indices, a, b, d, b, c, d)
		}
	}
}

// ring builds a flat annulus in the XY plane facing +Z.
func ring(inner, outer float32, segments int) Mesh {
	m := Mesh{Topology: TopologyTriangles}
	n := mgl32.Vec3{0, 0, 1}
	for k := 0; k <= segments; k++ {
		theta := 2 * math32.Pi * float32(k) / float32(segments)
		c, s := math32.Cos(theta), math32.Sin(theta)
		m.Vertices = append(m.Vertices,
			Vertex{Position: mgl32.Vec3{inner * c, inner * s, 0}, Normal: n},
			Vertex{Position: mgl32.Vec3{outer * c, outer * s, 0}, Normal: n},
		)
	}
	for k := uint32(0); k < uint32(segments); k++ {
		a := 2 * k
		m.Indices = append(m.Indices, a, a+1, a+3, a, a+3, a+2)
	}
	return m
}
