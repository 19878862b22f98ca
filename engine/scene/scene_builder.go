package scene

import (
	"github.com/Carmen-Shannon/oxy-backdrop/engine/camera"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/config"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/geometry"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithConfig sets the scene configuration. A nil configuration keeps the defaults.
//
// Parameters:
//   - cfg: the configuration
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithConfig(cfg *config.Config) SceneBuilderOption {
	return func(s *scene) {
		if cfg != nil {
			s.cfg = cfg
		}
	}
}

// WithCamera replaces the camera built from the configuration's tuning.
//
// Parameters:
//   - cam: the camera
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCamera(cam camera.Camera) SceneBuilderOption {
	return func(s *scene) {
		s.cam = cam
	}
}

// WithGeometryWorkers sets the number of worker goroutines generating layout geometry at Start.
// Defaults to runtime.NumCPU()-1.
//
// Parameters:
//   - n: the number of workers (minimum 1)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithGeometryWorkers(n int) SceneBuilderOption {
	return func(s *scene) {
		s.builder = geometry.NewBuilder(geometry.WithWorkers(max(n, 1)))
	}
}
