package light

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-backdrop/engine/config"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/renderer"
	"github.com/go-gl/mathgl/mgl32"
)

// Set is the scene's ambient term plus its bounded list of lights.
type Set struct {
	ambient mgl32.Vec3
	lights  []Light
}

// NewSet creates a light set.
//
// Parameters:
//   - ambient: the ambient color
//   - lights: the lights, at most renderer.MaxLights
//
// Returns:
//   - *Set: the set
//   - error: ErrTooManyLights if more than renderer.MaxLights lights are given
func NewSet(ambient mgl32.Vec3, lights ...Light) (*Set, error) {
	if len(lights) > renderer.MaxLights {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyLights, len(lights), renderer.MaxLights)
	}
	return &Set{ambient: ambient, lights: lights}, nil
}

// SetFromConfig builds the light set described by a configuration.
//
// Parameters:
//   - cfg: the scene configuration
//
// Returns:
//   - *Set: the set
//   - error: ErrUnknownLightType or ErrTooManyLights
func SetFromConfig(cfg *config.Config) (*Set, error) {
	lights := make([]Light, 0, len(cfg.Lights))
	for i, c := range cfg.Lights {
		l, err := FromConfig(c)
		if err != nil {
			return nil, fmt.Errorf("light %d: %w", i, err)
		}
		lights = append(lights, l)
	}
	return NewSet(mgl32.Vec3(cfg.Ambient), lights...)
}

// Ambient returns the ambient color.
func (s *Set) Ambient() mgl32.Vec3 {
	return s.ambient
}

// Lights returns the lights in configuration order.
func (s *Set) Lights() []Light {
	return s.lights
}

// AppendData appends the renderer data of every enabled light to dst.
//
// Parameters:
//   - dst: the slice to append to
//
// Returns:
//   - []renderer.LightData: the extended slice
func (s *Set) AppendData(dst []renderer.LightData) []renderer.LightData {
	for _, l := range s.lights {
		if l.Enabled() {
			dst = append(dst, l.Data())
		}
	}
	return dst
}
