package terminal

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-backdrop/common"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/geometry"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/renderer"
	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultGlyphs is the brightness ramp used to plot points, darkest first.
const DefaultGlyphs = ".,:;+*oO#@"

// lineSamples is the number of points plotted along each line segment.
const lineSamples = 12

var errNoScreen = errors.New("terminal backend has no screen")

type cellMesh struct {
	id        int
	positions []mgl32.Vec3
	indices   []uint32
}

// Backend is a renderer.RendererBackend that projects geometry into terminal cells.
// Vertices are plotted as glyphs, line segments are sampled, and a per-cell depth buffer keeps the
// nearest point. A cell covers two surface pixels vertically, so a surface of w×h pixels fills
// w columns and h/2 rows.
type Backend struct {
	mu *sync.Mutex

	screen        tcell.Screen
	glyphs        []rune
	width, height int
	nextID        int
	live          map[int]*cellMesh
	depth         []float32
	destroyed     bool
	plotted       int
}

var _ renderer.RendererBackend = &Backend{}

// NewBackend creates a backend drawing onto screen. The screen must already be initialized.
//
// Parameters:
//   - screen: the tcell screen
//   - glyphs: the brightness ramp, darkest first; empty selects DefaultGlyphs
//
// Returns:
//   - *Backend: the backend
func NewBackend(screen tcell.Screen, glyphs string) *Backend {
	if glyphs == "" {
		glyphs = DefaultGlyphs
	}
	return &Backend{
		mu:     &sync.Mutex{},
		screen: screen,
		glyphs: []rune(glyphs),
		live:   make(map[int]*cellMesh),
	}
}

func (b *Backend) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.width, b.height = max(width, 0), max(height, 0)
	cells := b.width * (b.height / 2)
	if cap(b.depth) < cells {
		b.depth = make([]float32, cells)
	}
	b.depth = b.depth[:cells]
}

// SetPresentMode is a no-op; the terminal presents on every Show.
func (b *Backend) SetPresentMode(renderer.PresentMode) {}

func (b *Backend) SurfaceSize() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

func (b *Backend) Ready() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ready()
}

func (b *Backend) ready() error {
	if b.destroyed {
		return renderer.ErrDestroyed
	}
	if b.screen == nil {
		return errNoScreen
	}
	if b.width <= 0 || b.height < 2 {
		return fmt.Errorf("%w: terminal is %dx%d cells", renderer.ErrSurfaceNotReady, b.width, b.height/2)
	}
	return nil
}

func (b *Backend) UploadMesh(label string, mesh geometry.Mesh) (renderer.BackendMesh, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.destroyed {
		return nil, renderer.ErrDestroyed
	}
	m := &cellMesh{positions: make([]mgl32.Vec3, len(mesh.Vertices))}
	for i, v := range mesh.Vertices {
		m.positions[i] = v.Position
	}
	if mesh.Topology == geometry.TopologyLines {
		m.indices = append([]uint32(nil), mesh.Indices...)
	}
	b.nextID++
	m.id = b.nextID
	b.live[m.id] = m
	common.Logger().Debug("terminal mesh uploaded", "label", label, "points", len(m.positions))
	return m, nil
}

func (b *Backend) ReleaseMesh(mesh renderer.BackendMesh) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if m, ok := mesh.(*cellMesh); ok {
		delete(b.live, m.id)
	}
}

func (b *Backend) Render(batch *renderer.Batch) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.ready(); err != nil {
		return err
	}

	for i := range b.depth {
		b.depth[i] = 2
	}
	bg := rgb(batch.ClearColor[0], batch.ClearColor[1], batch.ClearColor[2])
	b.screen.SetStyle(tcell.StyleDefault.Background(bg))
	b.screen.Clear()

	ambient := luminance(batch.Ambient)
	vp := mgl32.Mat4(batch.ViewProjection)
	b.plotted = 0
	for _, d := range batch.Draws {
		m, ok := d.Mesh.(*cellMesh)
		if !ok || b.live[m.id] != m {
			return fmt.Errorf("%w: draw references released mesh", renderer.ErrUnknownMesh)
		}
		mvp := vp.Mul4(mgl32.Mat4(d.Model))
		light := common.Clamp(ambient+luminance(d.Emissive)+0.35, 0, 1.5) * d.Color[3]
		style := tcell.StyleDefault.Background(bg).Foreground(rgb(
			common.Clamp(d.Color[0]*light, 0, 1),
			common.Clamp(d.Color[1]*light, 0, 1),
			common.Clamp(d.Color[2]*light, 0, 1),
		))

		if len(m.indices) > 0 {
			for i := 0; i+1 < len(m.indices); i += 2 {
				a, c := m.positions[m.indices[i]], m.positions[m.indices[i+1]]
				for s := 0; s <= lineSamples; s++ {
					t := float32(s) / lineSamples
					b.plot(mvp, a.Add(c.Sub(a).Mul(t)), light, style)
				}
			}
			continue
		}
		for _, p := range m.positions {
			b.plot(mvp, p, light, style)
		}
	}
	b.screen.Show()
	return nil
}

// plot projects p and draws it if it is the nearest point in its cell. Caller must hold the mutex.
func (b *Backend) plot(mvp mgl32.Mat4, p mgl32.Vec3, light float32, style tcell.Style) {
	clip := mvp.Mul4x1(p.Vec4(1))
	if clip.W() <= 0 {
		return
	}
	ndc := clip.Vec3().Mul(1 / clip.W())
	if ndc.X() < -1 || ndc.X() >= 1 || ndc.Y() <= -1 || ndc.Y() > 1 || ndc.Z() < -1 || ndc.Z() > 1 {
		return
	}
	cols, rows := b.width, b.height/2
	col := int((ndc.X() + 1) / 2 * float32(b.width))
	row := int((1 - ndc.Y()) / 2 * float32(b.height) / 2)
	if col < 0 || col >= cols || row < 0 || row >= rows {
		return
	}
	idx := row*cols + col
	if ndc.Z() >= b.depth[idx] {
		return
	}
	b.depth[idx] = ndc.Z()

	// nearer points read brighter
	near := 1 - (ndc.Z()+1)/2
	level := common.Clamp(light*(0.4+0.6*near), 0, 1)
	g := b.glyphs[int(level*float32(len(b.glyphs)-1)+0.5)]
	b.screen.SetContent(col, row, g, nil, style)
	b.plotted++
}

func (b *Backend) Destroy() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.destroyed = true
	clear(b.live)
}

// LiveMeshes returns the number of uploaded meshes not yet released.
func (b *Backend) LiveMeshes() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.live)
}

// Plotted returns the number of cells written by the last Render.
func (b *Backend) Plotted() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.plotted
}

func rgb(r, g, b float32) tcell.Color {
	return tcell.NewRGBColor(int32(r*255), int32(g*255), int32(b*255))
}

func luminance(c [3]float32) float32 {
	return 0.299*c[0] + 0.587*c[1] + 0.114*c[2]
}
