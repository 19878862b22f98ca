package input

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	width, height int
	move          func(x, y float64)
	resize        func(width, height int)
}

func (s *fakeSource) SetMouseMoveCallback(cb func(x, y float64))   { s.move = cb }
func (s *fakeSource) SetResizeCallback(cb func(width, height int)) { s.resize = cb }
func (s *fakeSource) Size() (int, int)                             { return s.width, s.height }

type fakeCamera struct{ aspect float32 }

func (c *fakeCamera) SetAspect(aspect float32) { c.aspect = aspect }

type fakeSurface struct{ width, height int }

func (s *fakeSurface) Resize(width, height int) { s.width, s.height = width, height }

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		x, y float64
		want mgl32.Vec2
	}{
		{"top left", 0, 0, mgl32.Vec2{-1, 1}},
		{"bottom right", 800, 600, mgl32.Vec2{1, -1}},
		{"center", 400, 300, mgl32.Vec2{0, 0}},
		{"right middle", 800, 300, mgl32.Vec2{1, 0}},
		{"dragged past the right edge", 1200, 300, mgl32.Vec2{1, 0}},
		{"dragged above the top left", -50, -900, mgl32.Vec2{-1, 1}},
		{"far below", 400, 1e9, mgl32.Vec2{0, -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Normalize(tt.x, tt.y, 800, 600)
			require.True(t, ok)
			assert.InDelta(t, tt.want.X(), got.X(), 1e-6)
			assert.InDelta(t, tt.want.Y(), got.Y(), 1e-6)
		})
	}

	_, ok := Normalize(10, 10, 0, 600)
	assert.False(t, ok)
	_, ok = Normalize(math.NaN(), 10, 800, 600)
	assert.False(t, ok)
}

func TestSubscribeStartsNeutral(t *testing.T) {
	cam := &fakeCamera{}
	surf := &fakeSurface{}
	a := NewAdapter(WithCamera(cam), WithSurface(surf))
	src := &fakeSource{width: 800, height: 600}

	require.NoError(t, a.Subscribe(src))
	st := a.State()
	assert.Equal(t, mgl32.Vec2{}, st.Pointer)
	assert.Equal(t, 800, st.Width)
	assert.Equal(t, 600, st.Height)
	assert.InDelta(t, 800.0/600.0, cam.aspect, 1e-6)
	assert.Equal(t, 800, surf.width)

	assert.ErrorIs(t, a.Subscribe(src), ErrAlreadySubscribed)
}

func TestPointerEvents(t *testing.T) {
	a := NewAdapter()
	src := &fakeSource{width: 800, height: 600}
	require.NoError(t, a.Subscribe(src))

	src.move(0, 0)
	assert.Equal(t, mgl32.Vec2{-1, 1}, a.State().Pointer)
	src.move(800, 600)
	assert.Equal(t, mgl32.Vec2{1, -1}, a.State().Pointer)
	src.move(400, 300)
	assert.Equal(t, mgl32.Vec2{0, 0}, a.State().Pointer)
}

func TestResizeThenPointer(t *testing.T) {
	cam := &fakeCamera{}
	surf := &fakeSurface{}
	a := NewAdapter(WithCamera(cam), WithSurface(surf))
	src := &fakeSource{width: 800, height: 600}
	require.NoError(t, a.Subscribe(src))

	src.resize(1600, 900)
	assert.InDelta(t, 1600.0/900.0, cam.aspect, 1e-6)
	assert.Equal(t, 1600, surf.width)
	assert.Equal(t, 900, surf.height)

	src.move(1600, 450)
	p := a.State().Pointer
	assert.InDelta(t, 1, p.X(), 1e-6)
	assert.InDelta(t, 0, p.Y(), 1e-6)
}

func TestZeroSizedViewport(t *testing.T) {
	cam := &fakeCamera{aspect: 2}
	a := NewAdapter(WithCamera(cam))
	src := &fakeSource{width: 800, height: 600}
	require.NoError(t, a.Subscribe(src))
	src.move(800, 300)

	src.resize(0, 0)
	assert.InDelta(t, 800.0/600.0, cam.aspect, 1e-6, "aspect keeps its last valid value")

	src.move(10, 10)
	assert.Equal(t, mgl32.Vec2{1, 0}, a.State().Pointer, "pointer events on an empty viewport are dropped")
}

func TestStaleEventsIgnored(t *testing.T) {
	a := NewAdapter()
	src := &fakeSource{width: 800, height: 600}
	require.NoError(t, a.Subscribe(src))
	staleMove := src.move
	staleResize := src.resize

	a.Unsubscribe()
	assert.False(t, a.Subscribed())
	assert.Nil(t, src.move)
	assert.Nil(t, src.resize)

	staleMove(0, 0)
	staleResize(10, 10)
	assert.Equal(t, mgl32.Vec2{}, a.State().Pointer)
	assert.Equal(t, 800, a.State().Width)

	a.Unsubscribe()

	require.NoError(t, a.Subscribe(src))
	staleMove(0, 0)
	assert.Equal(t, mgl32.Vec2{}, a.State().Pointer, "callbacks from an earlier subscription stay dead")
	src.move(0, 0)
	assert.Equal(t, mgl32.Vec2{-1, 1}, a.State().Pointer)
}
