package config

// Palette entry names used by the default layout and the catalogue shapes.
const (
	MaterialSky      = "sky"
	MaterialPurple   = "purple"
	MaterialPink     = "pink"
	MaterialCyan     = "cyan"
	MaterialChip     = "chip"
	MaterialChipGlow = "chip_glow"
	MaterialParticle = "particle"
	MaterialGrid     = "grid"
)

// rgb converts a 0xRRGGBB color to linear float components.
func rgb(hex uint32) [3]float32 {
	return [3]float32{
		float32(hex>>16&0xff) / 255,
		float32(hex>>8&0xff) / 255,
		float32(hex&0xff) / 255,
	}
}

// DefaultPalette returns the shared materials of the default scene.
//
// Returns:
//   - []PaletteEntry: the palette entries
func DefaultPalette() []PaletteEntry {
	return []PaletteEntry{
		{Name: MaterialSky, Color: rgb(0x38bdf8), Opacity: 0.95, Emissive: 0.6, EmissiveColor: rgb(0x0ea5e9)},
		{Name: MaterialPurple, Color: rgb(0x8b5cf6), Opacity: 0.92, Emissive: 0.5, EmissiveColor: rgb(0x7c3aed)},
		{Name: MaterialPink, Color: rgb(0xec4899), Opacity: 0.9, Emissive: 0.45, EmissiveColor: rgb(0xf472b6)},
		{Name: MaterialCyan, Color: rgb(0x22d3ee), Opacity: 0.92, Emissive: 0.55, EmissiveColor: rgb(0x06b6d4)},
		{Name: MaterialChip, Color: rgb(0x1d4ed8), Opacity: 0.95, Emissive: 0.35, EmissiveColor: rgb(0x38bdf8)},
		{Name: MaterialChipGlow, Color: rgb(0x38bdf8), Opacity: 0.9, Emissive: 0.6, EmissiveColor: rgb(0x22d3ee)},
		{Name: MaterialParticle, Color: rgb(0x38bdf8), Opacity: 0.6},
		{Name: MaterialGrid, Color: rgb(0x38bdf8), Opacity: 0.04},
	}
}

// DefaultLights returns the lights of the default scene. The ambient term lives in Config.Ambient.
//
// Returns:
//   - []Light: the light descriptions
func DefaultLights() []Light {
	return []Light{
		{Type: "point", Position: [3]float32{6, 6, 6}, Color: rgb(0x38bdf8), Intensity: 1.6, Range: 80},
		{Type: "point", Position: [3]float32{-6, -4, 4}, Color: rgb(0x8b5cf6), Intensity: 1.0, Range: 80},
		{Type: "point", Position: [3]float32{0, 8, 8}, Color: rgb(0x22d3ee), Intensity: 0.9, Range: 100},
		// shines from (0, 6, 10) toward the origin
		{Type: "directional", Direction: [3]float32{0, -6, -10}, Color: [3]float32{1, 1, 1}, Intensity: 0.6},
	}
}

// DefaultLayout returns the designed-in placements: anchors along the corners and borders of the
// view, then the compound pieces pushed further back. Every part keeps its shape's material.
//
// Returns:
//   - []Placement: the placements
func DefaultLayout() []Placement {
	return []Placement{
		// corner and border anchors
		{Shape: "torus_knot", Position: [3]float32{-8.6, 4.8, -4.6}, Size: []float32{0.36, 0.12}},
		{Shape: "hex_prism", Position: [3]float32{8.6, 4.8, -4.8}, Size: []float32{0.45, 0.7}},
		{Shape: "ring", Position: [3]float32{-8.6, -4.8, -5.4}, Size: []float32{0.2, 0.55}},
		{Shape: "panel", Position: [3]float32{8.6, -4.8, -5.8}, Size: []float32{0.9, 0.5, 0.08}},
		{Shape: "dodecahedron", Position: [3]float32{0, 5.2, -5.6}, Size: []float32{0.45}},
		{Shape: "capsule", Position: [3]float32{0, -5.2, -6.2}, Size: []float32{0.25, 0.9}},
		{Shape: "cylinder", Position: [3]float32{-9.2, 0, -6.4}, Size: []float32{0.2, 0.32, 0.9}},
		{Shape: "rod", Position: [3]float32{9.2, 0, -6.0}, Size: []float32{0.12, 0.95}},
		{Shape: "tetrahedron", Position: [3]float32{-6.4, 0, -4.8}, Size: []float32{0.38}},
		{Shape: "octahedron", Position: [3]float32{6.4, 0, -5.2}, Size: []float32{0.36}},

		// compounds
		{Shape: "helix", Position: [3]float32{-7.5, 1.5, -5.8}, Size: []float32{1.4}},
		{Shape: "helix", Position: [3]float32{7.5, -1.8, -6.2}, Size: []float32{1.2}},
		{Shape: "crystal_cluster", Position: [3]float32{-4.5, 3.8, -6.5}, Size: []float32{0.65}},
		{Shape: "crystal_cluster", Position: [3]float32{4.8, -3.5, -7.0}, Size: []float32{0.6}},
		{Shape: "ringed_orb", Position: [3]float32{0, 2.2, -7.5}, Size: []float32{0.42}},
		{Shape: "ringed_orb", Position: [3]float32{-6.2, -1.5, -8.0}, Size: []float32{0.38}},
		{Shape: "ringed_orb", Position: [3]float32{6.4, 0.8, -8.5}, Size: []float32{0.4}},
	}
}
