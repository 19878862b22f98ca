package animation

import (
	"github.com/Carmen-Shannon/oxy-backdrop/engine/camera"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/config"
)

// LoopBuilderOption is a function that configures a loop during construction.
type LoopBuilderOption func(*loopImpl)

// WithTuning sets the motion constants.
//
// Parameters:
//   - tu: the tuning constants
//
// Returns:
//   - LoopBuilderOption: a function that applies the tuning option to a loop
func WithTuning(tu config.Tuning) LoopBuilderOption {
	return func(l *loopImpl) {
		l.tuning = tu
	}
}

// WithInput sets the input snapshot source. Without it the pointer stays centered.
//
// Parameters:
//   - in: the input reader
//
// Returns:
//   - LoopBuilderOption: a function that applies the input option to a loop
func WithInput(in InputReader) LoopBuilderOption {
	return func(l *loopImpl) {
		l.input = in
	}
}

// WithCamera sets the camera updated every tick. Its controller follows the pointer.
//
// Parameters:
//   - cam: the camera
//
// Returns:
//   - LoopBuilderOption: a function that applies the camera option to a loop
func WithCamera(cam camera.Camera) LoopBuilderOption {
	return func(l *loopImpl) {
		l.camera = cam
	}
}
