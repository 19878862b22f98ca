package camera

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// cameraControllerImpl is the pointer-parallax implementation of CameraController.
type cameraControllerImpl struct {
	mu *sync.Mutex

	position mgl32.Vec3
	target   mgl32.Vec3
	rest     mgl32.Vec3

	parallax mgl32.Vec2
}

var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a new parallax controller resting at (0, 0, 6) and aimed at the origin.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu:       &sync.Mutex{},
		rest:     mgl32.Vec3{0, 0, 6},
		parallax: mgl32.Vec2{0.4, 0.28},
	}
	for _, option := range options {
		option(cc)
	}
	cc.position = cc.rest
	return cc
}

func (cc *cameraControllerImpl) Position() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.position
}

func (cc *cameraControllerImpl) Target() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.target
}

func (cc *cameraControllerImpl) Rest() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.rest
}

func (cc *cameraControllerImpl) Parallax() mgl32.Vec2 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.parallax
}

func (cc *cameraControllerImpl) Follow(pointer mgl32.Vec2) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.position = cc.rest.Add(mgl32.Vec3{pointer.X() * cc.parallax.X(), pointer.Y() * cc.parallax.Y(), 0})
}

func (cc *cameraControllerImpl) Reset() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.position = cc.rest
}
