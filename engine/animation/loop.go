// Package animation drives the per-frame motion of a registered scene: self-rotation, ambient float,
// pointer parallax, the rigid rotation of the particle field and grid, and the camera drift.
package animation

import (
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-backdrop/engine/camera"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/config"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/input"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/registry"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/scene_object"
	"github.com/go-gl/mathgl/mgl32"
)

// State is the run state of a Loop.
type State int32

const (
	// StateStopped is the initial state. Ticks do nothing.
	StateStopped State = iota
	// StateRunning animates the registry on every tick.
	StateRunning
)

func (s State) String() string {
	if s == StateRunning {
		return "running"
	}
	return "stopped"
}

// InputReader supplies the input snapshot for a frame. input.Adapter satisfies it.
type InputReader interface {
	State() input.State
}

type loopImpl struct {
	state atomic.Int32

	registry registry.Registry
	input    InputReader
	camera   camera.Camera
	tuning   config.Tuning

	clock Clock
	tiltX Spring
	tiltY Spring
	grid  float32
	field mgl32.Vec3
	frame uint64
}

// Loop advances every registered object once per tick while running.
//
// Tick is cooperative: it checks the run state at the top and returns immediately once stopped.
// Tick is not safe for concurrent use with itself; the owner serializes frames.
type Loop interface {
	// Start resets the clock and springs and enters StateRunning. Starting a running loop does nothing.
	Start()

	// Stop enters StateStopped. A tick already past its state check completes.
	Stop()

	// State returns the current run state.
	//
	// Returns:
	//   - State: the state
	State() State

	// Running reports whether the loop is in StateRunning.
	//
	// Returns:
	//   - bool: true while running
	Running() bool

	// Tick advances the clock by dt seconds and updates every object, the camera and the rigid layers.
	//
	// Parameters:
	//   - dt: the frame duration in seconds
	//
	// Returns:
	//   - bool: false if the loop is stopped and nothing was updated
	Tick(dt float64) bool

	// Elapsed returns the clock's elapsed seconds since Start.
	//
	// Returns:
	//   - float32: elapsed seconds
	Elapsed() float32

	// Frames returns the number of ticks since Start.
	//
	// Returns:
	//   - uint64: the tick count
	Frames() uint64
}

var _ Loop = &loopImpl{}

// NewLoop creates a stopped Loop animating reg.
//
// Parameters:
//   - reg: the registry to animate
//   - options: functional options to configure the loop
//
// Returns:
//   - Loop: the newly created loop
func NewLoop(reg registry.Registry, options ...LoopBuilderOption) Loop {
	if reg == nil {
		panic("animation: registry is required")
	}
	l := &loopImpl{
		registry: reg,
		tuning:   config.DefaultTuning(),
	}
	for _, option := range options {
		option(l)
	}
	l.tiltX.Stiffness = l.tuning.GridStiffness
	l.tiltY.Stiffness = l.tuning.GridStiffness
	return l
}

func (l *loopImpl) Start() {
	if l.Running() {
		return
	}
	l.clock.Reset()
	l.tiltX.Reset(0)
	l.tiltY.Reset(0)
	l.grid = 0
	l.field = mgl32.Vec3{}
	l.frame = 0
	if l.camera != nil && l.camera.Controller() != nil {
		l.camera.Controller().Reset()
		l.camera.Update()
	}
	l.state.Store(int32(StateRunning))
}

func (l *loopImpl) Stop() {
	l.state.Store(int32(StateStopped))
}

func (l *loopImpl) State() State {
	return State(l.state.Load())
}

func (l *loopImpl) Running() bool {
	return l.State() == StateRunning
}

func (l *loopImpl) Elapsed() float32 {
	return l.clock.Elapsed()
}

func (l *loopImpl) Frames() uint64 {
	return l.frame
}

func (l *loopImpl) Tick(dt float64) bool {
	if !l.Running() {
		return false
	}

	t := l.clock.Advance(dt)
	// rigid layers and springs skip the same steps the clock skips
	var step float32
	if dt > 0 && dt < maxStep {
		step = float32(dt)
	}
	var pointer mgl32.Vec2
	if l.input != nil {
		pointer = l.input.State().Pointer
	}
	tu := l.tuning

	for a := range l.field {
		l.field[a] = wrapAngle(l.field[a] + tu.ParticleSpin[a]*step)
	}
	l.grid = wrapAngle(l.grid + tu.GridRotate*step)
	tiltX := l.tiltX.Update(-pointer.Y()*tu.GridTilt, step)
	tiltY := l.tiltY.Update(pointer.X()*tu.GridTilt, step)

	reg := l.registry
	reg.ForEach(func(h registry.Handle) {
		switch reg.Role(h) {
		case scene_object.RolePrimitive:
			rot := reg.Rotation(h).Add(RotationStep(int(h), reg.SpinScale(h), tu))
			reg.SetRotation(h, mgl32.Vec3{wrapAngle(rot[0]), wrapAngle(rot[1]), wrapAngle(rot[2])})
			reg.SetPosition(h, Position(reg.Base(h), t, float32(h), pointer, reg.Seed(h), tu))
		case scene_object.RoleField:
			reg.SetRotation(h, l.field)
		case scene_object.RoleGrid:
			reg.SetRotation(h, mgl32.Vec3{tiltX, tiltY, l.grid})
		}
	})

	if l.camera != nil {
		if ctrl := l.camera.Controller(); ctrl != nil {
			ctrl.Follow(pointer)
		}
		l.camera.Update()
	}
	l.frame++
	return true
}
