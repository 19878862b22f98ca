// Package engine runs a backdrop scene inside a host: the host pumps platform events on the calling
// goroutine while a render goroutine advances and draws the scene.
package engine

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-backdrop/common"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/input"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/profiler"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/scene"
)

// ErrNotConfigured is returned by Run when the engine has no host or no scene.
var ErrNotConfigured = errors.New("engine requires a host and a scene")

// Host is the platform side of the engine: a window or a terminal.
// It feeds pointer and viewport events to the scene and owns the event loop.
type Host interface {
	input.Source

	// ProcessMessages pumps platform events until the host closes or RequestClose is called.
	ProcessMessages()

	// RequestClose asks ProcessMessages to return. Safe to call from any goroutine and more than once.
	RequestClose()

	// Close releases the platform resources.
	//
	// Returns:
	//   - error: an error if the host cannot be closed cleanly
	Close() error
}

// engine implements the Engine interface.
// Coordinates the host event loop and the render goroutine.
type engine struct {
	running atomic.Bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	host  Host
	scene scene.Scene

	profiler         *profiler.Profiler
	profilingEnabled atomic.Bool

	renderCallback func(deltaTime float32)

	renderFrameLimit atomic.Int64 // minimum frame duration in nanoseconds; 0 = uncapped
}

// Engine is the main entry point for the backdrop.
// It starts the scene, renders it from a dedicated goroutine and stops it when the host closes.
type Engine interface {
	// Host returns the platform host.
	//
	// Returns:
	//   - Host: the host instance
	Host() Host

	// Scene returns the scene the engine runs.
	//
	// Returns:
	//   - scene.Scene: the scene
	Scene() scene.Scene

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetRenderCallback registers the function called after each rendered frame.
	// Must be called before Run.
	//
	// Parameters:
	//   - callback: function to call each render frame, receiving the delta time in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default).
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Run starts the scene, renders until the host closes or Quit is called, then stops the scene.
	// It blocks on the calling goroutine, which must be the one the host was created on.
	// An engine runs once.
	//
	// Returns:
	//   - error: ErrNotConfigured, or the scene's Start error
	Run() error

	// Quit signals the render goroutine and the host to stop.
	// Safe to call multiple times and from any goroutine; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
// Options are applied directly to the engine struct via the option-builder pattern.
//
// Parameters:
//   - options: functional options for engine configuration (host, scene, profiling, frame cap)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		quitChannel: make(chan struct{}),
	}

	for _, opt := range options {
		opt(e)
	}

	var profilerOpts []profiler.ProfilerOption
	if e.scene != nil {
		profilerOpts = append(profilerOpts, profiler.WithStatsSource(e.scene.Renderer()))
	}
	e.profiler = profiler.NewProfiler(profilerOpts...)
	return e
}

func (e *engine) Host() Host {
	return e.host
}

func (e *engine) Scene() scene.Scene {
	return e.scene
}

func (e *engine) Run() error {
	if e.host == nil || e.scene == nil {
		return ErrNotConfigured
	}
	if err := e.scene.Start(); err != nil {
		return fmt.Errorf("failed to start scene %q: %w", e.scene.Name(), err)
	}
	e.running.Store(true)

	e.wg.Add(2)
	go e.handleRender()
	go e.handleQuit()

	e.host.ProcessMessages()

	e.signalQuit()
	e.wg.Wait()
	e.scene.Stop()
	return nil
}

// Quit signals all engine goroutines to stop and shuts down the engine.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel to signal all goroutines to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		e.running.Store(false)
		close(e.quitChannel)
	})
}

// handleRender runs the uncapped (or frame-limited) render loop in its own goroutine.
// Each iteration advances the scene by the measured frame time and submits one frame.
// Recovers from panics to avoid crashing the process and signals quit on recovery.
func (e *engine) handleRender() {
	defer e.wg.Done()
	// Recover from panics inside the render goroutine to avoid crashing the whole process.
	defer func() {
		if r := recover(); r != nil {
			common.Logger().Error("render goroutine recovered from panic", "panic", r)
			e.signalQuit()
		}
	}()

	lastRender := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		default:
			now := time.Now()
			dt := now.Sub(lastRender)
			lastRender = now

			if !e.scene.Frame(dt.Seconds()) {
				common.Logger().Warn("scene stopped outside the engine", "scene", e.scene.Name())
				e.signalQuit()
				return
			}

			if e.renderCallback != nil {
				e.renderCallback(float32(dt.Seconds()))
			}

			if e.profilingEnabled.Load() {
				e.profiler.Tick()
			}

			// Frame rate limiting
			if limit := time.Duration(e.renderFrameLimit.Load()); limit > 0 {
				if remaining := limit - time.Since(now); remaining > 0 {
					select {
					case <-e.quitChannel:
						return
					case <-time.After(remaining):
					}
				}
			}
		}
	}
}

// handleQuit blocks until the quit channel is closed, then asks the host to leave its event loop.
func (e *engine) handleQuit() {
	defer e.wg.Done()
	<-e.quitChannel
	e.host.RequestClose()
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled.Store(true)
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled.Store(false)
}

// SetRenderCallback registers the function called each render frame.
func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.renderCallback = callback
}

// SetRenderFrameLimit sets an optional render frame rate cap.
// Pass 0 to uncap the render loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	e.renderFrameLimit.Store(int64(frameDuration(fps)))
}

// frameDuration converts a frame rate cap to a minimum frame duration. Non-positive rates uncap.
func frameDuration(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
