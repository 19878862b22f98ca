package animation

import (
	"github.com/Carmen-Shannon/oxy-backdrop/engine/config"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// FloatOffset returns the ambient wobble of an object at time t.
//
// Parameters:
//   - t: elapsed seconds
//   - phase: the object's registration index
//   - tu: the tuning constants
//
// Returns:
//   - mgl32.Vec3: (cos(fx*t + phase) * ax, sin(fy*t + phase) * ay, 0)
func FloatOffset(t, phase float32, tu config.Tuning) mgl32.Vec3 {
	return mgl32.Vec3{
		math32.Cos(tu.FloatFrequencyX*t+phase) * tu.FloatAmplitudeX,
		math32.Sin(tu.FloatFrequencyY*t+phase) * tu.FloatAmplitudeY,
		0,
	}
}

// Parallax returns the pointer-driven offset of an object.
// Each axis responds with base + scale * seed, so objects with different seeds drift by different amounts.
//
// Parameters:
//   - pointer: the normalized pointer
//   - seed: the object's cursor-response seed
//   - tu: the tuning constants
//
// Returns:
//   - mgl32.Vec3: the offset, zero when the pointer is centered
func Parallax(pointer, seed mgl32.Vec2, tu config.Tuning) mgl32.Vec3 {
	return mgl32.Vec3{
		pointer.X() * (tu.ParallaxBase + tu.ParallaxSeedScale*seed.X()),
		pointer.Y() * (tu.ParallaxBase + tu.ParallaxSeedScale*seed.Y()),
		0,
	}
}

// Position composes base + float + parallax. It is an absolute function of its inputs,
// so positions never accumulate drift across frames.
//
// Parameters:
//   - base: the immutable base position
//   - t: elapsed seconds
//   - phase: the object's registration index
//   - pointer: the normalized pointer
//   - seed: the cursor-response seed
//   - tu: the tuning constants
//
// Returns:
//   - mgl32.Vec3: the current position
func Position(base mgl32.Vec3, t, phase float32, pointer, seed mgl32.Vec2, tu config.Tuning) mgl32.Vec3 {
	return base.Add(FloatOffset(t, phase, tu)).Add(Parallax(pointer, seed, tu))
}

// RotationStep returns the per-frame rotation increment of the object at index i:
// RotationBase + i*RotationIndexStep on each axis, scaled by the object's spin multiplier.
// Later registrations turn slightly faster, which keeps neighbouring objects visibly out of step.
//
// Parameters:
//   - i: the registration index
//   - spin: the object's per-axis spin multiplier
//   - tu: the tuning constants
//
// Returns:
//   - mgl32.Vec3: the increment in radians
func RotationStep(i int, spin mgl32.Vec3, tu config.Tuning) mgl32.Vec3 {
	if i < 0 {
		i = 0
	}
	fi := float32(i)
	var step mgl32.Vec3
	for a := range step {
		step[a] = (tu.RotationBase[a] + fi*tu.RotationIndexStep[a]) * spin[a]
	}
	return step
}

// wrapAngle keeps an accumulated angle in [-2π, 2π] so float32 precision holds over long sessions.
func wrapAngle(a float32) float32 {
	return math32.Mod(a, 2*math32.Pi)
}
