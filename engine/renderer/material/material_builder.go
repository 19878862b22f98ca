package material

import "github.com/Carmen-Shannon/oxy-backdrop/common"

// MaterialBuilderOption is a function that configures a material instance during construction.
type MaterialBuilderOption func(*material)

// WithName is an option builder that sets the name of the material.
//
// Parameters:
//   - name: the identifier for the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithColor is an option builder that sets the RGB color of the material, keeping its opacity.
//
// Parameters:
//   - rgb: the color as RGB float32 values
//
// Returns:
//   - MaterialBuilderOption: a function that applies the color option to a material
func WithColor(rgb [3]float32) MaterialBuilderOption {
	return func(m *material) {
		m.baseColor[0], m.baseColor[1], m.baseColor[2] = rgb[0], rgb[1], rgb[2]
	}
}

// WithOpacity is an option builder that sets the opacity of the material, clamped to [0, 1].
//
// Parameters:
//   - opacity: the opacity
//
// Returns:
//   - MaterialBuilderOption: a function that applies the opacity option to a material
func WithOpacity(opacity float32) MaterialBuilderOption {
	return func(m *material) {
		m.baseColor[3] = common.Clamp(opacity, 0, 1)
	}
}

// WithEmissive is an option builder that sets the emissive intensity of the material.
// Negative values are treated as zero.
//
// Parameters:
//   - intensity: the emissive intensity
//
// Returns:
//   - MaterialBuilderOption: a function that applies the emissive option to a material
func WithEmissive(intensity float32) MaterialBuilderOption {
	return func(m *material) {
		m.emissive = max(intensity, 0)
	}
}

// WithEmissiveColor is an option builder that tints the emissive glow. A zero color keeps the base color.
//
// Parameters:
//   - rgb: the emissive color as RGB float32 values
//
// Returns:
//   - MaterialBuilderOption: a function that applies the tint to a material
func WithEmissiveColor(rgb [3]float32) MaterialBuilderOption {
	return func(m *material) {
		m.tint = rgb
		m.tinted = rgb != [3]float32{}
	}
}
