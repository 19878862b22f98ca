package light

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-backdrop/engine/config"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/renderer"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrTooManyLights is returned when a light set exceeds renderer.MaxLights.
var ErrTooManyLights = errors.New("too many lights")

// ErrUnknownLightType is returned for configuration entries that name no known light type.
var ErrUnknownLightType = errors.New("unknown light type")

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeDirectional represents a light with no position, only direction.
	// Affects all fragments uniformly with no distance attenuation.
	LightTypeDirectional LightType = iota

	// LightTypePoint represents a light that emits in all directions from a position.
	// Attenuates with distance up to a configurable range.
	LightTypePoint
)

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	lightType  LightType
	position   mgl32.Vec3
	direction  mgl32.Vec3
	color      mgl32.Vec3
	intensity  float32
	lightRange float32
	enabled    bool
}

// Light defines the interface for a light source in the scene.
//
// Lights are scene-level entities streamed to the renderer every frame.
// Type-specific properties return meaningless values when not applicable.
type Light interface {
	// Type returns the kind of light source.
	//
	// Returns:
	//   - LightType: the light type (directional or point)
	Type() LightType

	// Position returns the world-space position of the light.
	// Meaningless for directional lights.
	//
	// Returns:
	//   - mgl32.Vec3: position
	Position() mgl32.Vec3

	// Direction returns the normalized direction the light travels in.
	// Meaningless for point lights.
	//
	// Returns:
	//   - mgl32.Vec3: normalized direction
	Direction() mgl32.Vec3

	// Color returns the RGB color of the light.
	//
	// Returns:
	//   - mgl32.Vec3: color as (r, g, b)
	Color() mgl32.Vec3

	// Intensity returns the scalar intensity multiplier for the light.
	//
	// Returns:
	//   - float32: the intensity value
	Intensity() float32

	// Range returns the maximum attenuation distance for point lights.
	//
	// Returns:
	//   - float32: the range value
	Range() float32

	// Enabled returns whether this light is active for rendering.
	// Disabled lights are skipped when a frame is assembled.
	//
	// Returns:
	//   - bool: true if the light is enabled
	Enabled() bool

	// Data converts the light to the renderer's per-frame representation.
	//
	// Returns:
	//   - renderer.LightData: the light data
	Data() renderer.LightData
}

var _ Light = &lightImpl{}

// NewLight creates a new Light of the given type. Without options the light is white,
// has unit intensity, a range of 10 and points straight down.
//
// Parameters:
//   - lightType: the kind of light
//   - opts: functional options to configure the light
//
// Returns:
//   - Light: the newly created light
func NewLight(lightType LightType, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		lightType:  lightType,
		direction:  mgl32.Vec3{0, -1, 0},
		color:      mgl32.Vec3{1, 1, 1},
		intensity:  1.0,
		lightRange: 10.0,
		enabled:    true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Position() mgl32.Vec3 {
	return l.position
}

func (l *lightImpl) Direction() mgl32.Vec3 {
	return l.direction
}

func (l *lightImpl) Color() mgl32.Vec3 {
	return l.color
}

func (l *lightImpl) Intensity() float32 {
	return l.intensity
}

func (l *lightImpl) Range() float32 {
	return l.lightRange
}

func (l *lightImpl) Enabled() bool {
	return l.enabled
}

func (l *lightImpl) Data() renderer.LightData {
	kind := renderer.LightPoint
	if l.lightType == LightTypeDirectional {
		kind = renderer.LightDirectional
	}
	return renderer.LightData{
		Kind:      kind,
		Position:  l.position,
		Direction: l.direction,
		Color:     l.color,
		Intensity: l.intensity,
		Range:     l.lightRange,
	}
}

// FromConfig builds a light from its configuration entry.
//
// Parameters:
//   - c: the configuration entry
//
// Returns:
//   - Light: the light
//   - error: ErrUnknownLightType if c.Type is neither "point" nor "directional"
func FromConfig(c config.Light) (Light, error) {
	opts := []LightBuilderOption{
		WithColor(c.Color[0], c.Color[1], c.Color[2]),
		WithIntensity(c.Intensity),
	}
	switch c.Type {
	case "point":
		opts = append(opts, WithPosition(c.Position[0], c.Position[1], c.Position[2]))
		if c.Range > 0 {
			opts = append(opts, WithRange(c.Range))
		}
		return NewLight(LightTypePoint, opts...), nil
	case "directional":
		opts = append(opts, WithDirection(c.Direction[0], c.Direction[1], c.Direction[2]))
		return NewLight(LightTypeDirectional, opts...), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownLightType, c.Type)
}
