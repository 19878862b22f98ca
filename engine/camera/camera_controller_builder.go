package camera

import (
	"github.com/Carmen-Shannon/oxy-backdrop/common"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/config"
	"github.com/go-gl/mathgl/mgl32"
)

// CameraControllerOption is a function that configures a controller during construction.
type CameraControllerOption func(*cameraControllerImpl)

// WithRest sets the camera's rest position.
//
// Parameters:
//   - x, y, z: world-space coordinates
//
// Returns:
//   - CameraControllerOption: a function that sets the rest position
func WithRest(x, y, z float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.rest = mgl32.Vec3{x, y, z}
	}
}

// WithTarget sets the fixed look-at point.
//
// Parameters:
//   - x, y, z: world-space coordinates
//
// Returns:
//   - CameraControllerOption: a function that sets the target
func WithTarget(x, y, z float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.target = mgl32.Vec3{x, y, z}
	}
}

// WithParallax sets the pointer drift per axis, each clamped to [0, config.MaxCameraParallax].
//
// Parameters:
//   - x, y: world-space drift per unit of pointer deflection
//
// Returns:
//   - CameraControllerOption: a function that sets the parallax amount
func WithParallax(x, y float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.parallax = mgl32.Vec2{
			common.Clamp(x, 0, config.MaxCameraParallax),
			common.Clamp(y, 0, config.MaxCameraParallax),
		}
	}
}
