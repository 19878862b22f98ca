package material

import (
	"github.com/Carmen-Shannon/oxy-backdrop/engine/config"
)

// Palette is the small fixed set of materials shared by every object of a scene.
// Entries keep their configuration order.
type Palette struct {
	entries []Material
	index   map[string]int
}

// NewPalette builds a palette from configuration entries.
//
// Parameters:
//   - entries: the palette entries, usually config.Config.Palette
//
// Returns:
//   - *Palette: the palette
func NewPalette(entries []config.PaletteEntry) *Palette {
	p := &Palette{
		entries: make([]Material, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		p.index[e.Name] = len(p.entries)
		p.entries = append(p.entries, NewMaterial(
			WithName(e.Name),
			WithColor(e.Color),
			WithOpacity(e.Opacity),
			WithEmissive(e.Emissive),
			WithEmissiveColor(e.EmissiveColor),
		))
	}
	return p
}

// Get returns the material with the given name.
//
// Parameters:
//   - name: the material name
//
// Returns:
//   - Material: the material, or nil if absent
//   - bool: true if the material exists
func (p *Palette) Get(name string) (Material, bool) {
	i, ok := p.index[name]
	if !ok {
		return nil, false
	}
	return p.entries[i], true
}

// All returns every material in configuration order.
func (p *Palette) All() []Material {
	return p.entries
}

// Len returns the number of materials.
func (p *Palette) Len() int {
	return len(p.entries)
}
