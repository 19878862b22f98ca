package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, float32(0.03), cfg.Tuning.FloatAmplitudeX)
	assert.Equal(t, float32(0.045), cfg.Tuning.FloatAmplitudeY)
	assert.Equal(t, float32(0.1), cfg.Tuning.ParallaxBase)
	assert.Equal(t, float32(0.12), cfg.Tuning.ParallaxSeedScale)
	assert.Equal(t, [2]float32{0.4, 0.28}, cfg.Tuning.CameraParallax)
	assert.Equal(t, float32(60), cfg.Tuning.CameraFov)
	assert.Equal(t, [3]float32{0, 0, -4}, cfg.Tuning.CameraTarget)
	assert.Equal(t, [3]float32{0.0016, 0.0022, 0}, cfg.Tuning.RotationBase)
	assert.Equal(t, 800, cfg.Tuning.ParticleCount)
	assert.Len(t, cfg.Layout, 17)
	assert.Len(t, cfg.Palette, 8)
	assert.Len(t, cfg.Lights, 4)
}

func TestDefaultPaletteColors(t *testing.T) {
	cfg := Default()
	sky, ok := cfg.Material(MaterialSky)
	require.True(t, ok)
	// 0x38bdf8
	assert.InDelta(t, 56.0/255, sky.Color[0], 1e-6)
	assert.InDelta(t, 189.0/255, sky.Color[1], 1e-6)
	assert.InDelta(t, 248.0/255, sky.Color[2], 1e-6)
	assert.Equal(t, float32(0.95), sky.Opacity)
	assert.Equal(t, float32(0.6), sky.Emissive)

	grid, ok := cfg.Material(MaterialGrid)
	require.True(t, ok)
	assert.Equal(t, float32(0.04), grid.Opacity)
}

func TestDefaultLayoutUsesShapeMaterials(t *testing.T) {
	for _, pl := range DefaultLayout() {
		assert.Empty(t, pl.Material, pl.Shape)
	}
}

func TestDefaultReturnsFreshCopies(t *testing.T) {
	a := Default()
	a.Layout[0].Position[0] = 99
	b := Default()
	assert.NotEqual(t, float32(99), b.Layout[0].Position[0])
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
[tuning]
parallax_base = 0.2
seed = 7

[[layout]]
shape = "cube"
position = [1.0, 2.0, 3.0]
size = [0.5]
material = "sky"
`))
	require.NoError(t, err)
	assert.Equal(t, float32(0.2), cfg.Tuning.ParallaxBase)
	assert.Equal(t, uint64(7), cfg.Tuning.Seed)
	// untouched tuning keys keep their defaults
	assert.Equal(t, float32(0.12), cfg.Tuning.ParallaxSeedScale)
	require.Len(t, cfg.Layout, 1)
	assert.Equal(t, [3]float32{1, 2, 3}, cfg.Layout[0].Position)
	assert.Equal(t, []float32{0.5}, cfg.Layout[0].Size)
	assert.Len(t, cfg.Palette, len(DefaultPalette()))
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown material", func(c *Config) { c.Layout[0].Material = "chrome" }},
		{"missing shape", func(c *Config) { c.Layout[0].Shape = "" }},
		{"empty palette", func(c *Config) { c.Palette = nil }},
		{"duplicate palette", func(c *Config) { c.Palette = append(c.Palette, c.Palette[0]) }},
		{"opacity out of range", func(c *Config) { c.Palette[0].Opacity = 1.5 }},
		{"camera parallax too large", func(c *Config) { c.Tuning.CameraParallax[1] = 0.5 }},
		{"negative particle extent", func(c *Config) { c.Tuning.ParticleExtent[2] = -1 }},
		{"bad clip planes", func(c *Config) { c.Tuning.CameraFar = c.Tuning.CameraNear }},
		{"bad light type", func(c *Config) { c.Lights[0].Type = "spot" }},
		{"zero stiffness", func(c *Config) { c.Tuning.GridStiffness = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidLayout)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.toml")
	require.NoError(t, os.WriteFile(path, []byte("ambient = [0.5, 0.5, 0.5]\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, [3]float32{0.5, 0.5, 0.5}, cfg.Ambient)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("[tuning]\ncamera_parallax = [2.0, 0.1]\n"), 0o644))
	_, err = Load(path)
	assert.ErrorIs(t, err, ErrInvalidLayout)
}

func TestMaterialLookup(t *testing.T) {
	cfg := Default()
	p, ok := cfg.Material(MaterialChipGlow)
	require.True(t, ok)
	assert.Equal(t, MaterialChipGlow, p.Name)
	_, ok = cfg.Material("nope")
	assert.False(t, ok)
}

func TestExampleConfigLoads(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "examples", "backdrop.toml"))
	require.NoError(t, err)
	assert.Len(t, cfg.Layout, 5)
	assert.Len(t, cfg.Palette, 4)
	assert.Equal(t, DefaultLights(), cfg.Lights, "lights keep their defaults")
	assert.Equal(t, uint64(42), cfg.Tuning.Seed)
	assert.Equal(t, [2]float32{0.3, 0.2}, cfg.Tuning.CameraParallax)
	assert.Equal(t, DefaultTuning().FloatAmplitudeX, cfg.Tuning.FloatAmplitudeX)
	assert.Equal(t, []float32{1.6}, cfg.Layout[2].Size)
}
