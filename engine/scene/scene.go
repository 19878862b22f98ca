// Package scene assembles the backdrop: it spawns the primitive layout, owns the lifecycle of every
// render resource, and drives one cooperative frame at a time.
package scene

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-backdrop/common"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/animation"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/camera"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/config"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/geometry"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/input"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/light"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/particles"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/registry"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/renderer"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/scene_object"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrSurfaceUnavailable is returned by Start when the render surface cannot be drawn to.
	ErrSurfaceUnavailable = errors.New("render surface unavailable")

	// ErrAlreadyRunning is returned by Start while the scene is running.
	ErrAlreadyRunning = errors.New("scene already running")

	// ErrNotRunning is returned by Spawn while the scene is stopped.
	ErrNotRunning = errors.New("scene not running")
)

// Scene is the lifecycle manager of the backdrop.
//
// Start acquires lights, palette materials, primitives, the particle field and the grid, subscribes to
// input and renders a first frame. Stop releases all of it. A scene can be started and stopped any
// number of times; every cycle leaves the renderer with no live meshes or materials.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// Start mounts the scene. Any failure releases everything acquired so far and leaves the scene stopped.
	//
	// Returns:
	//   - error: ErrAlreadyRunning, an error wrapping ErrSurfaceUnavailable, ErrResourceAcquire or
	//     config.ErrInvalidLayout, or nil
	Start() error

	// Stop unmounts the scene: it stops the loop, waits for an in-flight frame, unsubscribes input
	// and releases every resource. Stopping a stopped scene does nothing.
	Stop()

	// Running reports whether the scene is mounted.
	//
	// Returns:
	//   - bool: true between a successful Start and Stop
	Running() bool

	// Frame advances the animation by dt seconds and submits one frame.
	// A frame the renderer cannot draw is dropped, not retried.
	//
	// Parameters:
	//   - dt: the frame duration in seconds
	//
	// Returns:
	//   - bool: false once the scene is stopped
	Frame(dt float64) bool

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// Renderer returns the scene's renderer.
	Renderer() renderer.Renderer

	// Registry returns the object registry.
	Registry() registry.Registry

	// Input returns the input adapter.
	Input() input.Adapter

	// Spawn adds a catalogue shape to the running scene between two frames. The new objects are
	// released by the next Stop together with the layout. Parts without a chosen material keep their
	// designed-in palette entries.
	//
	// Parameters:
	//   - shape: the catalogue shape
	//   - position: the base position of the shape
	//   - opts: spawn options; WithPaletteMaterial names a palette entry
	//
	// Returns:
	//   - []registry.Handle: the handles of the new objects
	//   - error: ErrNotRunning, or an error wrapping ErrResourceAcquire or config.ErrInvalidLayout
	Spawn(shape Shape, position mgl32.Vec3, opts ...SpawnOption) ([]registry.Handle, error)

	// Config returns the configuration the scene was built from.
	Config() *config.Config
}

type scene struct {
	mu      *sync.Mutex
	frameMu *sync.Mutex

	name    string
	cfg     *config.Config
	running bool

	r       renderer.Renderer
	source  input.Source
	cam     camera.Camera
	reg     registry.Registry
	factory Factory
	input   input.Adapter
	loop    animation.Loop
	builder geometry.Builder

	lights    *light.Set
	materials map[string]renderer.MaterialHandle

	// Pre-allocated slices reused each frame to avoid per-frame allocations.
	items      []renderer.DrawItem
	lightsPool []renderer.LightData
}

var _ Scene = &scene{}

// NewScene creates a stopped Scene rendering through r and listening to source.
// The renderer is required and NewScene panics if it is nil. A nil source leaves the pointer centered.
//
// Parameters:
//   - name: the name of the scene
//   - r: the renderer to draw with (must not be nil)
//   - source: the pointer and viewport event source
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, r renderer.Renderer, source input.Source, options ...SceneBuilderOption) Scene {
	if r == nil {
		panic("scene: NewScene requires a non-nil Renderer")
	}
	s := &scene{
		mu:        &sync.Mutex{},
		frameMu:   &sync.Mutex{},
		name:      name,
		cfg:       config.Default(),
		r:         r,
		source:    source,
		materials: make(map[string]renderer.MaterialHandle),
	}
	for _, option := range options {
		option(s)
	}

	tu := s.cfg.Tuning
	if s.cam == nil {
		s.cam = camera.NewCamera(
			camera.WithFov(mgl32.DegToRad(tu.CameraFov)),
			camera.WithClip(tu.CameraNear, tu.CameraFar),
			camera.WithController(camera.NewCameraController(
				camera.WithRest(tu.CameraPosition[0], tu.CameraPosition[1], tu.CameraPosition[2]),
				camera.WithTarget(tu.CameraTarget[0], tu.CameraTarget[1], tu.CameraTarget[2]),
				camera.WithParallax(tu.CameraParallax[0], tu.CameraParallax[1]),
			)),
		)
	}
	if s.builder == nil {
		s.builder = geometry.NewBuilder()
	}
	s.reg = registry.NewRegistry(r)
	s.factory = NewFactory(r, s.reg, WithFactorySeed(tu.Seed), WithBuilder(s.builder))
	s.input = input.NewAdapter(input.WithCamera(s.cam), input.WithSurface(r))
	s.loop = animation.NewLoop(s.reg,
		animation.WithTuning(tu),
		animation.WithInput(s.input),
		animation.WithCamera(s.cam),
	)
	return s
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) Camera() camera.Camera {
	return s.cam
}

func (s *scene) Renderer() renderer.Renderer {
	return s.r
}

func (s *scene) Registry() registry.Registry {
	return s.reg
}

func (s *scene) Input() input.Adapter {
	return s.input
}

func (s *scene) Spawn(shape Shape, position mgl32.Vec3, opts ...SpawnOption) ([]registry.Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return nil, ErrNotRunning
	}

	// the registry grows only between frames
	s.frameMu.Lock()
	defer s.frameMu.Unlock()
	handles, err := s.factory.Spawn(shape, position, append([]SpawnOption{withPalette(s.materials)}, opts...)...)
	if err != nil {
		return nil, err
	}
	common.Logger().Debug("shape spawned", "scene", s.name, "shape", shape, "objects", len(handles))
	return handles, nil
}

func (s *scene) Config() *config.Config {
	return s.cfg
}

func (s *scene) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *scene) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return ErrAlreadyRunning
	}

	requests, err := s.layout()
	if err != nil {
		return err
	}
	if err := s.r.Ready(); err != nil {
		return fmt.Errorf("%w: %w", ErrSurfaceUnavailable, err)
	}

	if err := s.mount(requests); err != nil {
		s.unmount()
		common.Logger().Warn("scene start failed", "scene", s.name, "error", err)
		return err
	}
	s.running = true

	meshes, materials := s.reg.Owned()
	common.Logger().Info("scene started", "scene", s.name,
		"objects", s.reg.Len(), "meshes", meshes, "materials", materials)
	return nil
}

// layout resolves the configured placements. It acquires nothing, so a bad layout fails before
// any resource exists.
func (s *scene) layout() ([]placement, error) {
	out := make([]placement, 0, len(s.cfg.Layout))
	for i, pl := range s.cfg.Layout {
		shape, err := ParseShape(pl.Shape)
		if err != nil {
			return nil, fmt.Errorf("layout entry %d: %w", i, err)
		}
		materials := shape.Materials()
		if pl.Material != "" {
			materials = []string{pl.Material}
		}
		for _, name := range materials {
			if _, ok := s.cfg.Material(name); !ok {
				return nil, fmt.Errorf("%w: layout entry %d (%s) needs unknown material %q",
					config.ErrInvalidLayout, i, shape, name)
			}
		}
		out = append(out, placement{
			shape:    shape,
			position: mgl32.Vec3(pl.Position),
			size:     pl.Size,
			material: pl.Material,
		})
	}
	return out, nil
}

type placement struct {
	shape    Shape
	position mgl32.Vec3
	size     []float32
	material string
}

// mount acquires every resource in order. Caller must hold s.mu and unmount on error.
func (s *scene) mount(placements []placement) error {
	lights, err := light.SetFromConfig(s.cfg)
	if err != nil {
		return fmt.Errorf("%w: lights: %w", ErrResourceAcquire, err)
	}
	s.lights = lights

	palette := material.NewPalette(s.cfg.Palette)
	for _, m := range palette.All() {
		h, err := s.r.CreateMaterial(m)
		if err != nil {
			return fmt.Errorf("%w: material %q: %w", ErrResourceAcquire, m.Name(), err)
		}
		s.reg.OwnMaterial(h)
		s.materials[m.Name()] = h
	}

	requests := make([]Request, len(placements))
	for i, p := range placements {
		opts := []SpawnOption{WithSize(p.size...), withPalette(s.materials)}
		if p.material != "" {
			opts = append(opts, WithPaletteMaterial(p.material))
		}
		requests[i] = Request{Shape: p.shape, Position: p.position, Options: opts}
	}
	if err := s.factory.Prebuild(requests); err != nil {
		return fmt.Errorf("%w: %w", ErrResourceAcquire, err)
	}
	for _, req := range requests {
		if _, err := s.factory.Spawn(req.Shape, req.Position, req.Options...); err != nil {
			return err
		}
	}

	for _, layer := range []particles.Layer{particles.Field(s.cfg.Tuning), particles.Grid(s.cfg.Tuning)} {
		if len(layer.Mesh.Indices) == 0 {
			continue
		}
		if err := s.addLayer(layer); err != nil {
			return err
		}
	}

	if s.source != nil {
		if err := s.input.Subscribe(s.source); err != nil {
			return err
		}
	}

	s.loop.Start()
	if err := s.submit(0); err != nil && !errors.Is(err, renderer.ErrSurfaceNotReady) {
		s.loop.Stop()
		return fmt.Errorf("%w: first frame: %w", ErrSurfaceUnavailable, err)
	}
	return nil
}

func (s *scene) addLayer(layer particles.Layer) error {
	mat, ok := s.materials[layer.Material]
	if !ok {
		mat = s.materials[s.cfg.Palette[0].Name]
	}
	mesh, err := s.r.CreateMesh(layer.Label, layer.Mesh)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrResourceAcquire, layer.Label, err)
	}
	s.reg.OwnMesh(mesh)
	obj := scene_object.NewSceneObject(
		scene_object.WithID(s.factory.NextID()),
		scene_object.WithLabel(layer.Label),
		scene_object.WithRole(layer.Role),
		scene_object.WithGeometry(geometry.Descriptor{}, mesh),
		scene_object.WithMaterial(mat),
	)
	_, err = s.reg.Register(obj, layer.Base, mgl32.Vec2{})
	return err
}

// unmount releases everything in reverse acquisition order. Caller must hold s.mu.
func (s *scene) unmount() {
	s.loop.Stop()

	// wait for a frame that passed its state check before Stop
	s.frameMu.Lock()
	s.frameMu.Unlock()

	s.input.Unsubscribe()
	s.reg.ReleaseAll()
	s.factory.Reset()
	clear(s.materials)
	s.lights = nil
}

func (s *scene) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.running = false
	s.unmount()
	common.Logger().Info("scene stopped", "scene", s.name)
}

func (s *scene) Frame(dt float64) bool {
	if !s.loop.Running() {
		return false
	}
	s.frameMu.Lock()
	defer s.frameMu.Unlock()
	if !s.loop.Tick(dt) {
		return false
	}
	if err := s.draw(); err != nil {
		if errors.Is(err, renderer.ErrSurfaceNotReady) {
			common.Logger().Debug("frame skipped", "scene", s.name, "reason", err)
		} else {
			common.Logger().Warn("frame dropped", "scene", s.name, "error", err)
		}
	}
	return true
}

// submit ticks once and draws. Used for the first frame while s.mu is held.
func (s *scene) submit(dt float64) error {
	s.frameMu.Lock()
	defer s.frameMu.Unlock()
	if !s.loop.Tick(dt) {
		return nil
	}
	return s.draw()
}

// draw assembles and submits the current frame. Caller must hold s.frameMu.
func (s *scene) draw() error {
	s.items = s.reg.DrawItems(s.items[:0])
	s.lightsPool = s.lightsPool[:0]
	var ambient mgl32.Vec3
	if s.lights != nil {
		s.lightsPool = s.lights.AppendData(s.lightsPool)
		ambient = s.lights.Ambient()
	}
	return s.r.Submit(&renderer.Frame{
		View:       s.cam.ViewMatrix(),
		Projection: s.cam.ProjectionMatrix(),
		Eye:        s.cam.Eye(),
		Ambient:    ambient,
		Lights:     s.lightsPool,
		Items:      s.items,
	})
}
