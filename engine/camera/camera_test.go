package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestControllerFollow(t *testing.T) {
	tests := []struct {
		name    string
		pointer mgl32.Vec2
		want    mgl32.Vec3
	}{
		{"centered pointer rests", mgl32.Vec2{0, 0}, mgl32.Vec3{0, 0, 6}},
		{"top right corner", mgl32.Vec2{1, 1}, mgl32.Vec3{0.4, 0.28, 6}},
		{"bottom left corner", mgl32.Vec2{-1, -1}, mgl32.Vec3{-0.4, -0.28, 6}},
		{"half right", mgl32.Vec2{0.5, 0}, mgl32.Vec3{0.2, 0, 6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cc := NewCameraController(WithRest(0, 0, 6), WithParallax(0.4, 0.28))
			cc.Follow(tt.pointer)
			assert.True(t, cc.Position().ApproxEqual(tt.want), "got %v", cc.Position())
			assert.Equal(t, mgl32.Vec3{}, cc.Target())
		})
	}
}

func TestControllerParallaxClamped(t *testing.T) {
	cc := NewCameraController(WithParallax(3, 0.2))
	assert.InDelta(t, 0.4, cc.Parallax().X(), 1e-6)
	assert.InDelta(t, 0.2, cc.Parallax().Y(), 1e-6)

	cc = NewCameraController(WithParallax(-1, -1))
	assert.Equal(t, mgl32.Vec2{}, cc.Parallax())

	cc = NewCameraController()
	assert.Equal(t, mgl32.Vec2{0.4, 0.28}, cc.Parallax())
}

func TestControllerReset(t *testing.T) {
	cc := NewCameraController(WithRest(1, 2, 3))
	cc.Follow(mgl32.Vec2{1, -1})
	cc.Reset()
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, cc.Position())
}

func TestCameraAspect(t *testing.T) {
	cam := NewCamera(WithFov(mgl32.DegToRad(50)), WithAspect(4.0/3.0))
	assert.InDelta(t, 4.0/3.0, cam.Aspect(), 1e-6)

	cam.SetAspect(1600.0 / 900.0)
	assert.InDelta(t, 1600.0/900.0, cam.Aspect(), 1e-6)

	before := cam.ProjectionMatrix()
	cam.SetAspect(0)
	assert.InDelta(t, 1600.0/900.0, cam.Aspect(), 1e-6)
	assert.Equal(t, before, cam.ProjectionMatrix())
}

func TestCameraLooksAtTarget(t *testing.T) {
	cc := NewCameraController(WithRest(0, 0, 6), WithTarget(0, 0, 0))
	cam := NewCamera(WithController(cc), WithClip(0.1, 100))

	// the target projects to the center of clip space
	clip := cam.ViewProjectionMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.InDelta(t, 0, clip.X()/clip.W(), 1e-5)
	assert.InDelta(t, 0, clip.Y()/clip.W(), 1e-5)

	cc.Follow(mgl32.Vec2{1, 0})
	cam.Update()
	assert.True(t, cam.Eye().ApproxEqual(mgl32.Vec3{0.35, 0, 6}))
	clip = cam.ViewProjectionMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.InDelta(t, 0, clip.X()/clip.W(), 1e-5, "camera re-aims at the fixed target")
}
