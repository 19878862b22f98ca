package engine

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-backdrop/engine/renderer"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHost struct {
	mu      sync.Mutex
	move    func(x, y float64)
	resize  func(width, height int)
	closeCh chan struct{}
	once    sync.Once
	pumped  atomic.Bool
	closed  atomic.Bool
}

func newFakeHost() *fakeHost {
	return &fakeHost{closeCh: make(chan struct{})}
}

func (h *fakeHost) SetMouseMoveCallback(cb func(x, y float64)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.move = cb
}

func (h *fakeHost) SetResizeCallback(cb func(width, height int)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.resize = cb
}

func (h *fakeHost) Size() (int, int) { return 320, 200 }

func (h *fakeHost) ProcessMessages() {
	h.pumped.Store(true)
	<-h.closeCh
}

func (h *fakeHost) RequestClose() {
	h.once.Do(func() { close(h.closeCh) })
}

func (h *fakeHost) Close() error {
	h.closed.Store(true)
	return nil
}

func (h *fakeHost) subscribed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.move != nil || h.resize != nil
}

func newTestEngine(t *testing.T, headless ...renderer.HeadlessOption) (Engine, *fakeHost, renderer.Renderer) {
	t.Helper()
	host := newFakeHost()
	r := renderer.NewRendererWithBackend(renderer.NewHeadlessBackend(headless...))
	s := scene.NewScene("engine-test", r, host)
	return NewEngine(WithHost(host), WithScene(s), WithRenderFrameLimit(240)), host, r
}

func runAsync(e Engine) <-chan error {
	done := make(chan error, 1)
	go func() { done <- e.Run() }()
	return done
}

func TestRunUntilQuit(t *testing.T) {
	e, host, r := newTestEngine(t, renderer.WithHeadlessSize(320, 200))

	var frames atomic.Int32
	e.SetRenderCallback(func(float32) {
		if frames.Add(1) == 5 {
			e.Quit()
		}
	})

	select {
	case err := <-runAsync(e):
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("engine did not stop")
	}

	assert.GreaterOrEqual(t, frames.Load(), int32(5))
	assert.False(t, e.Scene().Running())
	assert.False(t, host.subscribed())
	assert.Zero(t, r.Stats().Meshes)
	assert.Zero(t, r.Stats().Materials)
	assert.Greater(t, r.Stats().Frames, uint64(5))
}

func TestRunUntilHostCloses(t *testing.T) {
	e, host, r := newTestEngine(t, renderer.WithHeadlessSize(320, 200))
	done := runAsync(e)

	require.Eventually(t, func() bool { return r.Stats().Frames > 2 }, 5*time.Second, time.Millisecond)
	host.RequestClose()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("engine did not stop")
	}
	assert.False(t, e.Scene().Running())
	assert.Zero(t, r.Stats().Meshes)
	e.Quit()
}

func TestRunStartFailure(t *testing.T) {
	e, host, r := newTestEngine(t)
	err := e.Run()
	assert.ErrorIs(t, err, scene.ErrSurfaceUnavailable)
	assert.False(t, host.pumped.Load(), "the event loop never starts")
	assert.Zero(t, r.Stats().Materials)
}

func TestRenderPanicStopsEngine(t *testing.T) {
	e, _, r := newTestEngine(t, renderer.WithHeadlessSize(320, 200))
	e.SetRenderCallback(func(float32) { panic("boom") })

	select {
	case err := <-runAsync(e):
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("engine did not stop")
	}
	assert.False(t, e.Scene().Running())
	assert.Zero(t, r.Stats().Meshes)
}

func TestRunNotConfigured(t *testing.T) {
	assert.ErrorIs(t, NewEngine().Run(), ErrNotConfigured)
	assert.ErrorIs(t, NewEngine(WithHost(newFakeHost())).Run(), ErrNotConfigured)
}

func TestProfilerToggle(t *testing.T) {
	e, _, _ := newTestEngine(t, renderer.WithHeadlessSize(320, 200))
	impl := e.(*engine)
	assert.False(t, impl.profilingEnabled.Load())
	e.EnableProfiler()
	assert.True(t, impl.profilingEnabled.Load())
	e.DisableProfiler()
	assert.False(t, impl.profilingEnabled.Load())
}

func TestFrameDuration(t *testing.T) {
	assert.Zero(t, frameDuration(0))
	assert.Zero(t, frameDuration(-30))
	assert.InDelta(t, float64(time.Second/60), float64(frameDuration(60)), float64(time.Microsecond))
	assert.InDelta(t, float64(time.Second/144), float64(frameDuration(144)), float64(time.Microsecond))
}
