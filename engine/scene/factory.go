package scene

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/Carmen-Shannon/oxy-backdrop/common"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/config"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/geometry"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/registry"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/renderer"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/scene_object"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrResourceAcquire is returned when the renderer cannot provide a mesh or material.
// The wrapped error carries the renderer's reason.
var ErrResourceAcquire = errors.New("failed to acquire render resource")

// MeshCreator uploads meshes. renderer.Renderer satisfies it.
type MeshCreator interface {
	CreateMesh(label string, mesh geometry.Mesh) (renderer.MeshHandle, error)
}

// Request is one spawn call, used to prebuild the geometry of a whole layout at once.
type Request struct {
	Shape    Shape
	Position mgl32.Vec3
	Options  []SpawnOption
}

type spawnConfig struct {
	size     []float32
	material renderer.MaterialHandle
	named    string
	palette  map[string]renderer.MaterialHandle
	seed     *mgl32.Vec2
}

// SpawnOption configures a single Spawn call.
type SpawnOption func(*spawnConfig)

// WithSize overrides the shape's default size parameters in order. Missing values keep their defaults.
//
// Parameters:
//   - size: the size parameters, see Shape.DefaultSize for their meaning
//
// Returns:
//   - SpawnOption: a function that applies the size override
func WithSize(size ...float32) SpawnOption {
	return func(c *spawnConfig) {
		c.size = size
	}
}

// WithMaterial selects the shared material of every object the call spawns.
//
// Parameters:
//   - m: the material handle
//
// Returns:
//   - SpawnOption: a function that applies the material
func WithMaterial(m renderer.MaterialHandle) SpawnOption {
	return func(c *spawnConfig) {
		c.material = m
	}
}

// WithPaletteMaterial paints every object the call spawns with the named palette entry.
// Scene.Spawn resolves the name against the scene's palette.
//
// Parameters:
//   - name: the palette entry name
//
// Returns:
//   - SpawnOption: a function that applies the material name
func WithPaletteMaterial(name string) SpawnOption {
	return func(c *spawnConfig) {
		c.named = name
	}
}

// withPalette supplies the palette used for named materials and for each part's designed-in material.
func withPalette(palette map[string]renderer.MaterialHandle) SpawnOption {
	return func(c *spawnConfig) {
		c.palette = palette
	}
}

// WithSeed fixes the cursor-response seed instead of drawing one. Components are clamped to [-1, 1].
//
// Parameters:
//   - seed: the seed
//
// Returns:
//   - SpawnOption: a function that applies the seed
func WithSeed(seed mgl32.Vec2) SpawnOption {
	return func(c *spawnConfig) {
		s := mgl32.Vec2{common.Clamp(seed.X(), -1, 1), common.Clamp(seed.Y(), -1, 1)}
		c.seed = &s
	}
}

type factoryImpl struct {
	mu *sync.Mutex

	meshes   MeshCreator
	registry registry.Registry
	builder  geometry.Builder

	material renderer.MaterialHandle
	seed     uint64
	rng      *rand.Rand
	nextID   uint64

	prebuilt map[geometry.Descriptor]geometry.Mesh
	uploaded map[geometry.Descriptor]renderer.MeshHandle
}

// Factory spawns catalogue shapes into a registry.
// Meshes with equal descriptors are uploaded once and shared; the registry owns every uploaded mesh.
type Factory interface {
	// Spawn creates the objects of one shape at position and registers them.
	// Either every object of the shape is registered or none is.
	//
	// Parameters:
	//   - shape: the catalogue shape
	//   - position: the base position of the shape
	//   - opts: spawn options
	//
	// Returns:
	//   - []registry.Handle: the handles of the new objects
	//   - error: an error wrapping ErrResourceAcquire, config.ErrInvalidLayout or registry.ErrDuplicateObject
	Spawn(shape Shape, position mgl32.Vec3, opts ...SpawnOption) ([]registry.Handle, error)

	// Prebuild generates the geometry of every request in parallel so later Spawn calls only upload.
	//
	// Parameters:
	//   - requests: the spawn calls to prepare
	//
	// Returns:
	//   - error: an error if any descriptor fails to build
	Prebuild(requests []Request) error

	// NextSeed draws a cursor-response seed in [-1, 1]².
	//
	// Returns:
	//   - mgl32.Vec2: the seed
	NextSeed() mgl32.Vec2

	// NextID reserves a fresh object ID.
	//
	// Returns:
	//   - uint64: the ID
	NextID() uint64

	// Reset forgets uploaded meshes and restarts IDs and seeds. Call it after the registry released everything.
	Reset()
}

var _ Factory = &factoryImpl{}

// NewFactory creates a Factory that uploads through meshes and registers into reg.
//
// Parameters:
//   - meshes: the mesh uploader, usually the scene's renderer
//   - reg: the registry receiving objects and mesh ownership
//   - options: functional options to configure the factory
//
// Returns:
//   - Factory: the newly created factory
func NewFactory(meshes MeshCreator, reg registry.Registry, options ...FactoryBuilderOption) Factory {
	if meshes == nil {
		panic("scene: NewFactory requires a non-nil MeshCreator")
	}
	if reg == nil {
		panic("scene: NewFactory requires a non-nil Registry")
	}
	f := &factoryImpl{
		mu:       &sync.Mutex{},
		meshes:   meshes,
		registry: reg,
		prebuilt: make(map[geometry.Descriptor]geometry.Mesh),
		uploaded: make(map[geometry.Descriptor]renderer.MeshHandle),
	}
	for _, option := range options {
		option(f)
	}
	if f.builder == nil {
		f.builder = geometry.NewBuilder()
	}
	f.reset()
	return f
}

func (f *factoryImpl) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reset()
}

func (f *factoryImpl) reset() {
	f.rng = rand.New(rand.NewPCG(f.seed, f.seed>>1|1))
	f.nextID = 0
	clear(f.prebuilt)
	clear(f.uploaded)
}

func (f *factoryImpl) NextSeed() mgl32.Vec2 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.nextSeed()
}

func (f *factoryImpl) nextSeed() mgl32.Vec2 {
	return mgl32.Vec2{f.rng.Float32()*2 - 1, f.rng.Float32()*2 - 1}
}

func (f *factoryImpl) NextID() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	return f.nextID
}

func (f *factoryImpl) Prebuild(requests []Request) error {
	var descriptors []geometry.Descriptor
	for _, req := range requests {
		var cfg spawnConfig
		for _, opt := range req.Options {
			opt(&cfg)
		}
		parts, err := req.Shape.parts(resolveSize(req.Shape, cfg.size))
		if err != nil {
			return err
		}
		for _, p := range parts {
			descriptors = append(descriptors, p.geometry.Normalize())
		}
	}

	meshes, err := f.builder.BuildAll(descriptors)
	if err != nil {
		return fmt.Errorf("failed to build layout geometry: %w", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for i, d := range descriptors {
		f.prebuilt[d] = meshes[i]
	}
	common.Logger().Debug("layout geometry built", "descriptors", len(descriptors), "workers", f.builder.Workers())
	return nil
}

func (f *factoryImpl) Spawn(shape Shape, position mgl32.Vec3, opts ...SpawnOption) ([]registry.Handle, error) {
	var cfg spawnConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	parts, err := shape.parts(resolveSize(shape, cfg.size))
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	materials := make([]renderer.MaterialHandle, len(parts))
	for i, p := range parts {
		if materials[i], err = f.resolveMaterial(cfg, p.material); err != nil {
			return nil, err
		}
	}

	var seed mgl32.Vec2
	if cfg.seed != nil {
		seed = *cfg.seed
	} else {
		seed = f.nextSeed()
	}

	entries := make([]registry.Entry, 0, len(parts))
	group := f.nextID + 1
	for i, p := range parts {
		d := p.geometry.Normalize()
		mesh, err := f.mesh(d, p.label)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrResourceAcquire, shape, err)
		}
		f.nextID++
		obj := scene_object.NewSceneObject(
			scene_object.WithID(f.nextID),
			scene_object.WithGroup(group),
			scene_object.WithLabel(p.label),
			scene_object.WithGeometry(d, mesh),
			scene_object.WithMaterial(materials[i]),
			scene_object.WithRotation(p.rotation[0], p.rotation[1], p.rotation[2]),
		)
		entries = append(entries, registry.Entry{Object: obj, Base: position.Add(p.offset), Seed: seed})
	}
	return f.registry.RegisterAll(entries)
}

// resolveMaterial picks a part's material: an explicit handle, then a named palette entry, then the
// part's designed-in palette entry, then the factory default.
func (f *factoryImpl) resolveMaterial(cfg spawnConfig, designed string) (renderer.MaterialHandle, error) {
	if cfg.material != 0 {
		return cfg.material, nil
	}
	if cfg.named != "" {
		h, ok := cfg.palette[cfg.named]
		if !ok {
			return 0, fmt.Errorf("%w: unknown material %q", config.ErrInvalidLayout, cfg.named)
		}
		return h, nil
	}
	if h, ok := cfg.palette[designed]; ok {
		return h, nil
	}
	return f.material, nil
}

// mesh returns the shared upload for d, uploading it on first use. Caller must hold the mutex.
func (f *factoryImpl) mesh(d geometry.Descriptor, label string) (renderer.MeshHandle, error) {
	if h, ok := f.uploaded[d]; ok {
		return h, nil
	}
	m, ok := f.prebuilt[d]
	if !ok {
		var err error
		if m, err = geometry.Build(d); err != nil {
			return 0, err
		}
	}
	h, err := f.meshes.CreateMesh(label, m)
	if err != nil {
		return 0, err
	}
	f.registry.OwnMesh(h)
	f.uploaded[d] = h
	return h, nil
}
