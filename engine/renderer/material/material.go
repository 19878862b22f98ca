package material

// material is the implementation of the Material interface.
type material struct {
	name      string
	baseColor [4]float32
	emissive  float32
	tint      [3]float32
	tinted    bool
}

// Material defines the interface for a shared surface description.
// Materials are immutable after construction and are referenced, never owned, by scene objects.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// BaseColor retrieves the RGBA color of the material. The alpha channel is the opacity.
	//
	// Returns:
	//   - [4]float32: the base color as RGBA values
	BaseColor() [4]float32

	// Opacity retrieves the opacity of the material in [0, 1].
	//
	// Returns:
	//   - float32: the opacity
	Opacity() float32

	// Emissive retrieves the emissive intensity of the material.
	// Emissive light is added on top of the lit color and is unaffected by scene lights.
	//
	// Returns:
	//   - float32: the emissive intensity
	Emissive() float32

	// EmissiveColor retrieves the color of the emissive glow. Without an explicit tint it is the base color.
	//
	// Returns:
	//   - [3]float32: the emissive color as RGB values
	EmissiveColor() [3]float32

	// Transparent reports whether the material needs alpha blending.
	//
	// Returns:
	//   - bool: true if opacity is below one
	Transparent() bool
}

var _ Material = &material{}

// NewMaterial creates a new Material. Without options the material is opaque white.
//
// Parameters:
//   - options: functional options to configure the material
//
// Returns:
//   - Material: the newly created material
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		baseColor: [4]float32{1, 1, 1, 1},
	}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) BaseColor() [4]float32 {
	return m.baseColor
}

func (m *material) Opacity() float32 {
	return m.baseColor[3]
}

func (m *material) Emissive() float32 {
	return m.emissive
}

func (m *material) EmissiveColor() [3]float32 {
	if m.tinted {
		return m.tint
	}
	return [3]float32{m.baseColor[0], m.baseColor[1], m.baseColor[2]}
}

func (m *material) Transparent() bool {
	return m.baseColor[3] < 1
}
