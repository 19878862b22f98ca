// Package config holds the designed-in tuning constants, material palette, lights and layout of the
// backdrop scene, with optional TOML overrides loaded once before the scene starts.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// ErrInvalidLayout is returned when a configuration references unknown materials or carries
// out-of-range tuning values.
var ErrInvalidLayout = errors.New("invalid scene layout")

// MaxCameraParallax bounds how far the camera may drift from its rest position per unit of pointer deflection.
const MaxCameraParallax float32 = 0.4

// Tuning groups the aesthetic constants driving the animation loop.
// None of them carry a physical meaning; they exist so the motion can be tuned without code changes.
type Tuning struct {
	// FloatAmplitudeX and FloatAmplitudeY scale the ambient float wobble on each axis.
	FloatAmplitudeX float32 `toml:"float_amplitude_x"`
	FloatAmplitudeY float32 `toml:"float_amplitude_y"`
	// FloatFrequencyX and FloatFrequencyY are the angular frequencies of the wobble in radians per second.
	FloatFrequencyX float32 `toml:"float_frequency_x"`
	FloatFrequencyY float32 `toml:"float_frequency_y"`

	// ParallaxBase is the minimum parallax response of every object.
	ParallaxBase float32 `toml:"parallax_base"`
	// ParallaxSeedScale scales the cursor-response seed on top of ParallaxBase.
	ParallaxSeedScale float32 `toml:"parallax_seed_scale"`

	// Every frame each object turns by RotationBase + i*RotationIndexStep radians per axis,
	// where i is its registration index.
	RotationBase      [3]float32 `toml:"rotation_base"`
	RotationIndexStep [3]float32 `toml:"rotation_index_step"`

	// The particle field fills a box ParticleExtent wide, centered on the view axis, reaching from
	// z = ParticleNear back to z = ParticleNear - ParticleExtent[2]. It turns as one body at
	// ParticleSpin radians per second around each axis.
	ParticleCount  int        `toml:"particle_count"`
	ParticleExtent [3]float32 `toml:"particle_extent"`
	ParticleNear   float32    `toml:"particle_near"`
	ParticleSpin   [3]float32 `toml:"particle_spin"`

	// The backdrop grid stands at z = GridDepth facing the camera, turns in its plane at GridRotate
	// radians per second and tilts by up to GridTilt radians toward the pointer.
	GridSize      float32 `toml:"grid_size"`
	GridDivisions int     `toml:"grid_divisions"`
	GridDepth     float32 `toml:"grid_depth"`
	GridRotate    float32 `toml:"grid_rotate_rate"`
	GridTilt      float32 `toml:"grid_tilt"`
	// GridStiffness is the spring constant of the grid's pointer response. Damping is always critical.
	GridStiffness float32 `toml:"grid_stiffness"`

	CameraFov      float32    `toml:"camera_fov"`
	CameraNear     float32    `toml:"camera_near"`
	CameraFar      float32    `toml:"camera_far"`
	CameraPosition [3]float32 `toml:"camera_position"`
	CameraTarget   [3]float32 `toml:"camera_target"`
	// CameraParallax is the camera drift per unit of pointer deflection on x and y.
	CameraParallax [2]float32 `toml:"camera_parallax"`

	// Seed drives the cursor-response seed generator. Equal seeds produce equal scenes.
	Seed uint64 `toml:"seed"`
}

// PaletteEntry describes one shared material.
// EmissiveColor tints the Emissive glow; left at zero, the glow takes the base color.
type PaletteEntry struct {
	Name          string     `toml:"name"`
	Color         [3]float32 `toml:"color"`
	Opacity       float32    `toml:"opacity"`
	Emissive      float32    `toml:"emissive"`
	EmissiveColor [3]float32 `toml:"emissive_color"`
}

// Light describes one scene light. Type is "point" or "directional".
type Light struct {
	Type      string     `toml:"type"`
	Position  [3]float32 `toml:"position"`
	Direction [3]float32 `toml:"direction"`
	Color     [3]float32 `toml:"color"`
	Intensity float32    `toml:"intensity"`
	Range     float32    `toml:"range"`
}

// Placement positions one catalogue shape in the scene.
// Size overrides the shape's default size parameters in order; missing entries keep their defaults.
// Material paints every part of the shape; left empty, each part keeps its designed-in material.
type Placement struct {
	Shape    string     `toml:"shape"`
	Position [3]float32 `toml:"position"`
	Size     []float32  `toml:"size"`
	Material string     `toml:"material"`
}

// Config is the complete scene description.
type Config struct {
	Tuning  Tuning         `toml:"tuning"`
	Ambient [3]float32     `toml:"ambient"`
	Palette []PaletteEntry `toml:"palette"`
	Lights  []Light        `toml:"lights"`
	Layout  []Placement    `toml:"layout"`
}

// Default returns the designed-in configuration.
//
// Returns:
//   - *Config: a fresh copy of the default configuration
func Default() *Config {
	return &Config{
		Tuning:  DefaultTuning(),
		Ambient: [3]float32{0.7, 0.7, 0.7},
		Palette: DefaultPalette(),
		Lights:  DefaultLights(),
		Layout:  DefaultLayout(),
	}
}

// DefaultTuning returns the designed-in animation constants.
//
// Returns:
//   - Tuning: the default tuning values
func DefaultTuning() Tuning {
	return Tuning{
		FloatAmplitudeX:   0.03,
		FloatAmplitudeY:   0.045,
		FloatFrequencyX:   0.8,
		FloatFrequencyY:   1.0,
		ParallaxBase:      0.1,
		ParallaxSeedScale: 0.12,
		RotationBase:      [3]float32{0.0016, 0.0022, 0},
		RotationIndexStep: [3]float32{0.00015, 0.00012, 0},
		ParticleCount:     800,
		ParticleExtent:    [3]float32{18, 10, 10},
		ParticleNear:      -2,
		ParticleSpin:      [3]float32{0.006, 0.015, 0},
		GridSize:          40,
		GridDivisions:     40,
		GridDepth:         -10,
		GridTilt:          0.12,
		GridStiffness:     6,
		CameraFov:         60,
		CameraNear:        0.1,
		CameraFar:         100,
		CameraPosition:    [3]float32{0, 0, 6},
		CameraTarget:      [3]float32{0, 0, -4},
		CameraParallax:    [2]float32{0.4, 0.28},
		Seed:              0x0b5e55ed,
	}
}

// Load reads a TOML file on top of the default configuration and validates the result.
//
// Parameters:
//   - path: path of the TOML file
//
// Returns:
//   - *Config: the merged configuration
//   - error: an error if the file cannot be read, decoded, or validated
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return cfg, nil
}

// fileConfig mirrors Config for decoding. List sections decode into empty slices so a section present
// in the file replaces the default list instead of extending it.
type fileConfig struct {
	Tuning  Tuning         `toml:"tuning"`
	Ambient *[3]float32    `toml:"ambient"`
	Palette []PaletteEntry `toml:"palette"`
	Lights  []Light        `toml:"lights"`
	Layout  []Placement    `toml:"layout"`
}

// Parse decodes TOML data on top of the default configuration and validates the result.
// Tuning keys present in the data replace the matching defaults; a palette, lights or layout section
// replaces the whole default list.
//
// Parameters:
//   - data: the TOML document
//
// Returns:
//   - *Config: the merged configuration
//   - error: an error if decoding or validation fails
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	fc := fileConfig{Tuning: cfg.Tuning}
	if err := toml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.Tuning = fc.Tuning
	if fc.Ambient != nil {
		cfg.Ambient = *fc.Ambient
	}
	if fc.Palette != nil {
		cfg.Palette = fc.Palette
	}
	if fc.Lights != nil {
		cfg.Lights = fc.Lights
	}
	if fc.Layout != nil {
		cfg.Layout = fc.Layout
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Material returns the palette entry with the given name.
//
// Parameters:
//   - name: the palette entry name
//
// Returns:
//   - PaletteEntry: the entry
//   - bool: true if the entry exists
func (c *Config) Material(name string) (PaletteEntry, bool) {
	for _, p := range c.Palette {
		if p.Name == name {
			return p, true
		}
	}
	return PaletteEntry{}, false
}

// Validate checks palette references and tuning ranges.
// Shape names are checked by the scene when it assembles the layout.
//
// Returns:
//   - error: an error wrapping ErrInvalidLayout, or nil
func (c *Config) Validate() error {
	if len(c.Palette) == 0 {
		return fmt.Errorf("%w: palette is empty", ErrInvalidLayout)
	}
	seen := make(map[string]struct{}, len(c.Palette))
	for _, p := range c.Palette {
		if p.Name == "" {
			return fmt.Errorf("%w: palette entry without a name", ErrInvalidLayout)
		}
		if _, dup := seen[p.Name]; dup {
			return fmt.Errorf("%w: duplicate palette entry %q", ErrInvalidLayout, p.Name)
		}
		if p.Opacity < 0 || p.Opacity > 1 {
			return fmt.Errorf("%w: palette entry %q opacity %v outside [0, 1]", ErrInvalidLayout, p.Name, p.Opacity)
		}
		seen[p.Name] = struct{}{}
	}
	for i, pl := range c.Layout {
		if pl.Shape == "" {
			return fmt.Errorf("%w: layout entry %d has no shape", ErrInvalidLayout, i)
		}
		if pl.Material == "" {
			continue
		}
		if _, ok := seen[pl.Material]; !ok {
			return fmt.Errorf("%w: layout entry %d references unknown material %q", ErrInvalidLayout, i, pl.Material)
		}
	}
	for i, l := range c.Lights {
		if l.Type != "point" && l.Type != "directional" {
			return fmt.Errorf("%w: light %d has unknown type %q", ErrInvalidLayout, i, l.Type)
		}
	}
	t := c.Tuning
	for _, p := range t.CameraParallax {
		if p < 0 || p > MaxCameraParallax {
			return fmt.Errorf("%w: camera parallax %v outside [0, %v]", ErrInvalidLayout, t.CameraParallax, MaxCameraParallax)
		}
	}
	if t.CameraNear <= 0 || t.CameraFar <= t.CameraNear {
		return fmt.Errorf("%w: camera clip planes near=%v far=%v", ErrInvalidLayout, t.CameraNear, t.CameraFar)
	}
	if t.ParticleCount < 0 || t.GridDivisions < 0 {
		return fmt.Errorf("%w: negative particle count or grid divisions", ErrInvalidLayout)
	}
	for _, e := range t.ParticleExtent {
		if e < 0 {
			return fmt.Errorf("%w: negative particle extent %v", ErrInvalidLayout, t.ParticleExtent)
		}
	}
	if t.GridStiffness <= 0 {
		return fmt.Errorf("%w: grid stiffness must be positive", ErrInvalidLayout)
	}
	return nil
}
