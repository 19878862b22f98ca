package registry

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-backdrop/common"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/renderer"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/scene_object"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrDuplicateObject is returned when an object with an already registered ID is registered again.
var ErrDuplicateObject = errors.New("registry: duplicate object")

// Handle is the stable index of a registered object. Handles are assigned in registration order
// starting at zero and stay valid until ReleaseAll.
type Handle int32

// Releaser releases renderer resources owned by the registry. renderer.Renderer satisfies it.
type Releaser interface {
	ReleaseMesh(h renderer.MeshHandle)
	ReleaseMaterial(h renderer.MaterialHandle)
}

// Entry is one object to register together with its immutable base position and cursor seed.
type Entry struct {
	Object scene_object.SceneObject
	Base   mgl32.Vec3
	Seed   mgl32.Vec2
}

// registry stores objects as parallel slices indexed by Handle.
type registry struct {
	mu       *sync.Mutex
	releaser Releaser

	ids       []uint64
	labels    []string
	roles     []scene_object.Role
	meshes    []renderer.MeshHandle
	materials []renderer.MaterialHandle
	bases     []mgl32.Vec3
	seeds     []mgl32.Vec2
	groups    []uint64
	spins     []mgl32.Vec3
	positions []mgl32.Vec3
	rotations []mgl32.Vec3
	scales    []mgl32.Vec3

	index map[uint64]Handle

	ownedMeshes    []renderer.MeshHandle
	ownedMaterials []renderer.MaterialHandle
	meshOwned      map[renderer.MeshHandle]struct{}
	materialOwned  map[renderer.MaterialHandle]struct{}
}

// Registry is the single owner of every live scene object and of the renderer resources they use.
// Base positions and cursor seeds are written once at registration and are only readable afterwards;
// the current transform is the only mutable per-object state.
type Registry interface {
	// Register stores an object together with its base position and cursor seed.
	//
	// Parameters:
	//   - obj: the object description
	//   - base: the immutable base position
	//   - seed: the immutable cursor-response seed in [-1, 1]
	//
	// Returns:
	//   - Handle: the handle of the new object
	//   - error: ErrDuplicateObject if the ID is already registered
	Register(obj scene_object.SceneObject, base mgl32.Vec3, seed mgl32.Vec2) (Handle, error)

	// RegisterAll stores several objects at once. Either every entry is registered or none is.
	//
	// Parameters:
	//   - entries: the objects to register
	//
	// Returns:
	//   - []Handle: the handles of the new objects in entry order
	//   - error: ErrDuplicateObject if any ID is already registered or repeated within entries
	RegisterAll(entries []Entry) ([]Handle, error)

	// ForEach visits every object in registration order.
	//
	// Parameters:
	//   - visit: called once per handle
	ForEach(visit func(h Handle))

	// Len returns the number of registered objects.
	//
	// Returns:
	//   - int: the object count
	Len() int

	// Lookup finds the handle of an object by ID.
	//
	// Parameters:
	//   - id: the object ID
	//
	// Returns:
	//   - Handle: the handle
	//   - bool: true if the object is registered
	Lookup(id uint64) (Handle, bool)

	// ID returns the ID of the object at h.
	ID(h Handle) uint64

	// Label returns the label of the object at h.
	Label(h Handle) string

	// Role returns how the object at h is animated.
	Role(h Handle) scene_object.Role

	// Mesh returns the mesh drawn for the object at h.
	Mesh(h Handle) renderer.MeshHandle

	// Material returns the shared material of the object at h.
	Material(h Handle) renderer.MaterialHandle

	// Base returns the immutable base position of the object at h.
	Base(h Handle) mgl32.Vec3

	// Seed returns the immutable cursor-response seed of the object at h.
	Seed(h Handle) mgl32.Vec2

	// Group returns the compound ID of the object at h. Members of a compound share it.
	Group(h Handle) uint64

	// SpinScale returns the per-axis rotation multiplier of the object at h.
	SpinScale(h Handle) mgl32.Vec3

	// Position returns the current position of the object at h.
	Position(h Handle) mgl32.Vec3

	// SetPosition sets the current position of the object at h. The base position is unaffected.
	SetPosition(h Handle, p mgl32.Vec3)

	// Rotation returns the current Euler rotation of the object at h.
	Rotation(h Handle) mgl32.Vec3

	// SetRotation sets the current Euler rotation of the object at h.
	SetRotation(h Handle, r mgl32.Vec3)

	// Scale returns the scale of the object at h.
	Scale(h Handle) mgl32.Vec3

	// OwnMesh transfers ownership of a renderer mesh to the registry. Owning the same mesh twice
	// is a no-op, so shared meshes are released once.
	//
	// Parameters:
	//   - h: the mesh handle
	OwnMesh(h renderer.MeshHandle)

	// OwnMaterial transfers ownership of a renderer material to the registry.
	//
	// Parameters:
	//   - h: the material handle
	OwnMaterial(h renderer.MaterialHandle)

	// Owned returns the number of owned meshes and materials.
	//
	// Returns:
	//   - int: owned meshes
	//   - int: owned materials
	Owned() (int, int)

	// DrawItems appends one draw item per object to dst, in registration order.
	//
	// Parameters:
	//   - dst: the slice to append to
	//
	// Returns:
	//   - []renderer.DrawItem: the extended slice
	DrawItems(dst []renderer.DrawItem) []renderer.DrawItem

	// ReleaseAll releases every owned mesh and material and clears the registry.
	// Calling it on an empty registry does nothing.
	ReleaseAll()
}

var _ Registry = &registry{}

// NewRegistry creates a new Registry that releases owned resources through releaser.
//
// Parameters:
//   - releaser: the resource releaser, usually the scene's renderer
//
// Returns:
//   - Registry: the newly created registry
func NewRegistry(releaser Releaser) Registry {
	if releaser == nil {
		panic("registry: releaser is required")
	}
	return &registry{
		mu:            &sync.Mutex{},
		releaser:      releaser,
		index:         make(map[uint64]Handle),
		meshOwned:     make(map[renderer.MeshHandle]struct{}),
		materialOwned: make(map[renderer.MaterialHandle]struct{}),
	}
}

func (r *registry) Register(obj scene_object.SceneObject, base mgl32.Vec3, seed mgl32.Vec2) (Handle, error) {
	handles, err := r.RegisterAll([]Entry{{Object: obj, Base: base, Seed: seed}})
	if err != nil {
		return -1, err
	}
	return handles[0], nil
}

func (r *registry) RegisterAll(entries []Entry) ([]Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[uint64]struct{}, len(entries))
	for _, e := range entries {
		id := e.Object.ID()
		if _, ok := r.index[id]; ok {
			return nil, fmt.Errorf("%w: id %d", ErrDuplicateObject, id)
		}
		if _, ok := seen[id]; ok {
			return nil, fmt.Errorf("%w: id %d repeated", ErrDuplicateObject, id)
		}
		seen[id] = struct{}{}
	}

	handles := make([]Handle, 0, len(entries))
	for _, e := range entries {
		handles = append(handles, r.append(e))
	}
	return handles, nil
}

func (r *registry) append(e Entry) Handle {
	obj := e.Object
	h := Handle(len(r.ids))

	r.ids = append(r.ids, obj.ID())
	r.labels = append(r.labels, obj.Label())
	r.roles = append(r.roles, obj.Role())
	r.meshes = append(r.meshes, obj.Mesh())
	r.materials = append(r.materials, obj.Material())
	r.bases = append(r.bases, e.Base)
	r.seeds = append(r.seeds, e.Seed)
	r.groups = append(r.groups, obj.Group())
	r.spins = append(r.spins, obj.SpinScale())
	r.positions = append(r.positions, e.Base)
	r.rotations = append(r.rotations, obj.Rotation())
	r.scales = append(r.scales, obj.Scale())
	r.index[obj.ID()] = h
	return h
}

func (r *registry) ForEach(visit func(h Handle)) {
	n := len(r.ids)
	for i := range n {
		visit(Handle(i))
	}
}

func (r *registry) Len() int {
	return len(r.ids)
}

func (r *registry) Lookup(id uint64) (Handle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.index[id]
	return h, ok
}

func (r *registry) ID(h Handle) uint64 {
	return r.ids[h]
}

func (r *registry) Label(h Handle) string {
	return r.labels[h]
}

func (r *registry) Role(h Handle) scene_object.Role {
	return r.roles[h]
}

func (r *registry) Mesh(h Handle) renderer.MeshHandle {
	return r.meshes[h]
}

func (r *registry) Material(h Handle) renderer.MaterialHandle {
	return r.materials[h]
}

func (r *registry) Base(h Handle) mgl32.Vec3 {
	return r.bases[h]
}

func (r *registry) Seed(h Handle) mgl32.Vec2 {
	return r.seeds[h]
}

func (r *registry) Group(h Handle) uint64 {
	return r.groups[h]
}

func (r *registry) SpinScale(h Handle) mgl32.Vec3 {
	return r.spins[h]
}

func (r *registry) Position(h Handle) mgl32.Vec3 {
	return r.positions[h]
}

func (r *registry) SetPosition(h Handle, p mgl32.Vec3) {
	r.positions[h] = p
}

func (r *registry) Rotation(h Handle) mgl32.Vec3 {
	return r.rotations[h]
}

func (r *registry) SetRotation(h Handle, rot mgl32.Vec3) {
	r.rotations[h] = rot
}

func (r *registry) Scale(h Handle) mgl32.Vec3 {
	return r.scales[h]
}

func (r *registry) OwnMesh(h renderer.MeshHandle) {
	if h == 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.meshOwned[h]; ok {
		return
	}
	r.meshOwned[h] = struct{}{}
	r.ownedMeshes = append(r.ownedMeshes, h)
}

func (r *registry) OwnMaterial(h renderer.MaterialHandle) {
	if h == 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.materialOwned[h]; ok {
		return
	}
	r.materialOwned[h] = struct{}{}
	r.ownedMaterials = append(r.ownedMaterials, h)
}

func (r *registry) Owned() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ownedMeshes), len(r.ownedMaterials)
}

func (r *registry) DrawItems(dst []renderer.DrawItem) []renderer.DrawItem {
	for i := range r.ids {
		dst = append(dst, renderer.DrawItem{
			Mesh:     r.meshes[i],
			Material: r.materials[i],
			Model:    common.ModelMatrix(r.positions[i], r.rotations[i], r.scales[i]),
		})
	}
	return dst
}

func (r *registry) ReleaseAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.ids) == 0 && len(r.ownedMeshes) == 0 && len(r.ownedMaterials) == 0 {
		return
	}

	// meshes go first so no live draw references a released material
	for _, h := range r.ownedMeshes {
		r.releaser.ReleaseMesh(h)
	}
	for _, h := range r.ownedMaterials {
		r.releaser.ReleaseMaterial(h)
	}
	common.Logger().Debug("registry released",
		"objects", len(r.ids), "meshes", len(r.ownedMeshes), "materials", len(r.ownedMaterials))

	r.ids = r.ids[:0]
	r.labels = r.labels[:0]
	r.roles = r.roles[:0]
	r.meshes = r.meshes[:0]
	r.materials = r.materials[:0]
	r.bases = r.bases[:0]
	r.seeds = r.seeds[:0]
	r.groups = r.groups[:0]
	r.spins = r.spins[:0]
	r.positions = r.positions[:0]
	r.rotations = r.rotations[:0]
	r.scales = r.scales[:0]
	r.ownedMeshes = r.ownedMeshes[:0]
	r.ownedMaterials = r.ownedMaterials[:0]
	clear(r.index)
	clear(r.meshOwned)
	clear(r.materialOwned)
}
