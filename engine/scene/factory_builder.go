package scene

import (
	"github.com/Carmen-Shannon/oxy-backdrop/engine/geometry"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/renderer"
)

// FactoryBuilderOption is a function that configures a factory during construction.
type FactoryBuilderOption func(*factoryImpl)

// WithFactorySeed sets the seed of the cursor-response seed generator.
//
// Parameters:
//   - seed: the generator seed
//
// Returns:
//   - FactoryBuilderOption: a function that applies the seed to a factory
func WithFactorySeed(seed uint64) FactoryBuilderOption {
	return func(f *factoryImpl) {
		f.seed = seed
	}
}

// WithDefaultMaterial sets the material used by Spawn calls without WithMaterial.
//
// Parameters:
//   - m: the material handle
//
// Returns:
//   - FactoryBuilderOption: a function that applies the material to a factory
func WithDefaultMaterial(m renderer.MaterialHandle) FactoryBuilderOption {
	return func(f *factoryImpl) {
		f.material = m
	}
}

// WithBuilder sets the parallel geometry builder used by Prebuild.
//
// Parameters:
//   - b: the builder
//
// Returns:
//   - FactoryBuilderOption: a function that applies the builder to a factory
func WithBuilder(b geometry.Builder) FactoryBuilderOption {
	return func(f *factoryImpl) {
		f.builder = b
	}
}
