package terminal

import (
	"sync"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-backdrop/engine/geometry"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/renderer"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/scene"
	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSimTerminal(t *testing.T) (Terminal, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	term, err := NewTerminal(WithScreen(sim))
	require.NoError(t, err)
	sim.SetSize(80, 24)
	term.(*terminalImpl).resize(80, 24)
	t.Cleanup(func() { _ = term.Close() })
	return term, sim
}

func pump(term Terminal) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		term.ProcessMessages()
		close(done)
	}()
	return done
}

func TestSizeInHalfCells(t *testing.T) {
	term, _ := newSimTerminal(t)
	w, h := term.Size()
	assert.Equal(t, 80, w)
	assert.Equal(t, 48, h)
	bw, bh := term.Backend().SurfaceSize()
	assert.Equal(t, 80, bw)
	assert.Equal(t, 48, bh)
}

func TestEventsForwarded(t *testing.T) {
	term, sim := newSimTerminal(t)

	var mu sync.Mutex
	var moved [2]float64
	var resized [2]int
	term.SetMouseMoveCallback(func(x, y float64) {
		mu.Lock()
		defer mu.Unlock()
		moved = [2]float64{x, y}
	})
	term.SetResizeCallback(func(w, h int) {
		mu.Lock()
		defer mu.Unlock()
		resized = [2]int{w, h}
	})
	done := pump(term)

	require.NoError(t, sim.PostEvent(tcell.NewEventMouse(79, 0, tcell.ButtonNone, tcell.ModNone)))
	require.NoError(t, sim.PostEvent(tcell.NewEventResize(100, 30)))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return resized == [2]int{100, 60}
	}, time.Second, time.Millisecond)

	mu.Lock()
	assert.Equal(t, [2]float64{79.5, 1}, moved)
	mu.Unlock()
	w, h := term.Backend().SurfaceSize()
	assert.Equal(t, 100, w)
	assert.Equal(t, 60, h)

	term.RequestClose()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("event loop did not exit")
	}
}

func TestCloseEndsEventLoop(t *testing.T) {
	term, _ := newSimTerminal(t)
	done := pump(term)
	require.NoError(t, term.Close())
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("event loop did not exit")
	}
	require.NoError(t, term.Close())
}

func TestBackendPlotsProjectedPoint(t *testing.T) {
	term, sim := newSimTerminal(t)
	b := term.Backend()

	mesh, err := b.UploadMesh("dot", geometry.Mesh{
		Vertices: []geometry.Vertex{{Position: mgl32.Vec3{0, 0, 0}}},
		Indices:  []uint32{0},
		Topology: geometry.TopologyPoints,
	})
	require.NoError(t, err)

	batch := &renderer.Batch{
		ViewProjection: mgl32.Ident4(),
		Draws: []renderer.Draw{{
			Mesh:     mesh,
			Model:    mgl32.Ident4(),
			Color:    [4]float32{1, 1, 1, 1},
			Emissive: [3]float32{1, 1, 1},
		}},
	}
	require.NoError(t, b.Render(batch))
	assert.Equal(t, 1, b.Plotted())

	mainc, _, _, _ := sim.GetContent(40, 12)
	assert.NotEqual(t, ' ', mainc)
	assert.Contains(t, DefaultGlyphs, string(mainc))

	b.ReleaseMesh(mesh)
	assert.ErrorIs(t, b.Render(batch), renderer.ErrUnknownMesh)
}

func TestBackendSamplesLines(t *testing.T) {
	term, _ := newSimTerminal(t)
	b := term.Backend()
	mesh, err := b.UploadMesh("line", geometry.Mesh{
		Vertices: []geometry.Vertex{{Position: mgl32.Vec3{-0.9, 0, 0}}, {Position: mgl32.Vec3{0.9, 0, 0}}},
		Indices:  []uint32{0, 1},
		Topology: geometry.TopologyLines,
	})
	require.NoError(t, err)
	require.NoError(t, b.Render(&renderer.Batch{
		ViewProjection: mgl32.Ident4(),
		Draws:          []renderer.Draw{{Mesh: mesh, Model: mgl32.Ident4(), Color: [4]float32{1, 1, 1, 1}}},
	}))
	assert.Equal(t, lineSamples+1, b.Plotted())
}

func TestBackendDepthKeepsNearest(t *testing.T) {
	term, _ := newSimTerminal(t)
	b := term.Backend()
	mesh, err := b.UploadMesh("pair", geometry.Mesh{
		Vertices: []geometry.Vertex{{Position: mgl32.Vec3{0, 0, 0.5}}, {Position: mgl32.Vec3{0, 0, -0.5}}},
		Topology: geometry.TopologyPoints,
	})
	require.NoError(t, err)
	require.NoError(t, b.Render(&renderer.Batch{
		ViewProjection: mgl32.Ident4(),
		Draws:          []renderer.Draw{{Mesh: mesh, Model: mgl32.Ident4(), Color: [4]float32{1, 1, 1, 1}}},
	}))
	assert.Equal(t, 2, b.Plotted(), "the nearer point overwrites the farther one")
	assert.InDelta(t, -0.5, b.depth[12*80+40], 1e-6)
}

func TestBackendNotReady(t *testing.T) {
	term, _ := newSimTerminal(t)
	b := term.Backend()
	b.ConfigureSurface(0, 0)
	assert.ErrorIs(t, b.Ready(), renderer.ErrSurfaceNotReady)
	assert.ErrorIs(t, b.Render(&renderer.Batch{}), renderer.ErrSurfaceNotReady)

	b.Destroy()
	assert.ErrorIs(t, b.Ready(), renderer.ErrDestroyed)
}

func TestSceneOnTerminal(t *testing.T) {
	term, _ := newSimTerminal(t)
	r := renderer.NewRendererWithBackend(term.Backend())
	s := scene.NewScene("terminal", r, term)

	require.NoError(t, s.Start())
	for range 5 {
		require.True(t, s.Frame(1.0/30.0))
	}
	assert.Greater(t, term.Backend().Plotted(), 0)

	s.Stop()
	assert.Zero(t, term.Backend().LiveMeshes())
	assert.Zero(t, r.Stats().Materials)
}
