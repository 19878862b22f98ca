// Package input turns raw pointer and viewport events into the normalized state read by the
// animation loop.
package input

import (
	"errors"
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-backdrop/common"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrAlreadySubscribed is returned by Subscribe while a source is still attached.
var ErrAlreadySubscribed = errors.New("input: already subscribed")

// State is the input snapshot consumed by the animation loop.
// Pointer is normalized to [-1, 1]² with the origin at the viewport center and y pointing up.
type State struct {
	Pointer mgl32.Vec2
	Width   int
	Height  int
}

// Source feeds raw pointer and viewport events. Passing nil to a setter detaches the callback.
type Source interface {
	// SetMouseMoveCallback registers a callback receiving pointer coordinates in pixels,
	// origin top-left, in the same units as the viewport size.
	SetMouseMoveCallback(cb func(x, y float64))

	// SetResizeCallback registers a callback receiving the new viewport size in pixels.
	SetResizeCallback(cb func(width, height int))

	// Size returns the current viewport size in pixels.
	Size() (width, height int)
}

// AspectSetter receives the viewport aspect ratio. camera.Camera satisfies it.
type AspectSetter interface {
	SetAspect(aspect float32)
}

// SurfaceResizer receives the viewport size in pixels. renderer.Renderer satisfies it.
type SurfaceResizer interface {
	Resize(width, height int)
}

// Normalize maps pixel coordinates to [-1, 1]² with y pointing up.
// Positions outside the viewport, as hosts report while dragging, clamp to its edge.
//
// Parameters:
//   - x, y: pointer coordinates in pixels, origin top-left
//   - width, height: viewport size in pixels
//
// Returns:
//   - mgl32.Vec2: the normalized pointer
//   - bool: false if the viewport has no area or a coordinate is NaN
func Normalize(x, y float64, width, height int) (mgl32.Vec2, bool) {
	if width <= 0 || height <= 0 || math.IsNaN(x) || math.IsNaN(y) {
		return mgl32.Vec2{}, false
	}
	nx := float32((x/float64(width))*2 - 1)
	ny := float32(-((y/float64(height))*2 - 1))
	return mgl32.Vec2{common.Clamp(nx, -1, 1), common.Clamp(ny, -1, 1)}, true
}

type adapterImpl struct {
	mu *sync.Mutex

	state      State
	source     Source
	generation uint64
	active     bool

	camera  AspectSetter
	surface SurfaceResizer
}

// Adapter owns the normalized input state of a mounted scene.
// Writes are last-write-wins; the animation loop only reads snapshots.
type Adapter interface {
	// Subscribe attaches the adapter to a source, resets the pointer to neutral and
	// applies the source's current size.
	//
	// Parameters:
	//   - src: the event source
	//
	// Returns:
	//   - error: ErrAlreadySubscribed if a source is attached
	Subscribe(src Source) error

	// Unsubscribe detaches the current source. Events delivered afterwards are ignored.
	// Calling it without a source does nothing.
	Unsubscribe()

	// Subscribed reports whether a source is attached.
	//
	// Returns:
	//   - bool: true while subscribed
	Subscribed() bool

	// State returns a snapshot of the current input state.
	//
	// Returns:
	//   - State: the snapshot
	State() State

	// MoveTo records a pointer position in pixels.
	//
	// Parameters:
	//   - x, y: pointer coordinates in pixels, origin top-left
	MoveTo(x, y float64)

	// Resize records a new viewport size, updates the camera aspect and resizes the surface.
	//
	// Parameters:
	//   - width, height: the viewport size in pixels
	Resize(width, height int)
}

var _ Adapter = &adapterImpl{}

// NewAdapter creates a new Adapter.
//
// Parameters:
//   - options: functional options to configure the adapter
//
// Returns:
//   - Adapter: the newly created adapter
func NewAdapter(options ...AdapterBuilderOption) Adapter {
	a := &adapterImpl{
		mu: &sync.Mutex{},
	}
	for _, option := range options {
		option(a)
	}
	return a
}

func (a *adapterImpl) Subscribe(src Source) error {
	a.mu.Lock()
	if a.active {
		a.mu.Unlock()
		return ErrAlreadySubscribed
	}
	a.generation++
	gen := a.generation
	a.active = true
	a.source = src
	a.state = State{}
	a.mu.Unlock()

	src.SetMouseMoveCallback(func(x, y float64) {
		if a.current(gen) {
			a.MoveTo(x, y)
		}
	})
	src.SetResizeCallback(func(width, height int) {
		if a.current(gen) {
			a.Resize(width, height)
		}
	})
	a.Resize(src.Size())
	common.Logger().Debug("input subscribed", "generation", gen)
	return nil
}

func (a *adapterImpl) Unsubscribe() {
	a.mu.Lock()
	if !a.active {
		a.mu.Unlock()
		return
	}
	src := a.source
	a.active = false
	a.source = nil
	a.generation++
	a.mu.Unlock()

	src.SetMouseMoveCallback(nil)
	src.SetResizeCallback(nil)
	common.Logger().Debug("input unsubscribed")
}

func (a *adapterImpl) current(gen uint64) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.active && a.generation == gen
}

func (a *adapterImpl) Subscribed() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.active
}

func (a *adapterImpl) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

func (a *adapterImpl) MoveTo(x, y float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	p, ok := Normalize(x, y, a.state.Width, a.state.Height)
	if !ok {
		return
	}
	a.state.Pointer = p
}

func (a *adapterImpl) Resize(width, height int) {
	a.mu.Lock()
	a.state.Width = width
	a.state.Height = height
	a.mu.Unlock()

	if width > 0 && height > 0 && a.camera != nil {
		a.camera.SetAspect(float32(width) / float32(height))
	}
	if a.surface != nil {
		a.surface.Resize(width, height)
	}
}
