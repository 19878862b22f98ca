package animation

import "github.com/chewxy/math32"

// Spring is a critically damped spring pulling a scalar toward a target.
// Critical damping reaches the target as fast as possible without overshoot.
type Spring struct {
	// Stiffness is the spring constant k. Damping is 2√k.
	Stiffness float32

	value    float32
	velocity float32
}

// maxSpringStep bounds the integration step so large frame gaps stay stable.
const maxSpringStep = 1.0 / 30.0

// Update advances the spring by dt seconds toward target using semi-implicit Euler,
// subdividing steps longer than maxSpringStep.
//
// Parameters:
//   - target: the value the spring is pulled toward
//   - dt: the step in seconds
//
// Returns:
//   - float32: the new value
func (s *Spring) Update(target, dt float32) float32 {
	if dt <= 0 || math32.IsNaN(dt) || s.Stiffness <= 0 {
		return s.value
	}
	dt = min(dt, maxStep)
	damping := 2 * math32.Sqrt(s.Stiffness)
	for dt > 0 {
		h := min(dt, maxSpringStep)
		accel := s.Stiffness*(target-s.value) - damping*s.velocity
		s.velocity += accel * h
		s.value += s.velocity * h
		dt -= h
	}
	return s.value
}

// Value returns the current value.
func (s *Spring) Value() float32 {
	return s.value
}

// Reset places the spring at rest at v.
func (s *Spring) Reset(v float32) {
	s.value = v
	s.velocity = 0
}
