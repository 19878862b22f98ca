package registry

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-backdrop/engine/renderer"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/scene_object"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingReleaser struct {
	meshes    []renderer.MeshHandle
	materials []renderer.MaterialHandle
}

func (r *recordingReleaser) ReleaseMesh(h renderer.MeshHandle) {
	r.meshes = append(r.meshes, h)
}

func (r *recordingReleaser) ReleaseMaterial(h renderer.MaterialHandle) {
	r.materials = append(r.materials, h)
}

func TestRegisterStoresBaseAndSeed(t *testing.T) {
	reg := NewRegistry(&recordingReleaser{})
	obj := scene_object.NewSceneObject(scene_object.WithID(7), scene_object.WithLabel("cube"))

	h, err := reg.Register(obj, mgl32.Vec3{2, 0, 0}, mgl32.Vec2{1, 1})
	require.NoError(t, err)

	assert.Equal(t, Handle(0), h)
	assert.Equal(t, mgl32.Vec3{2, 0, 0}, reg.Base(h))
	assert.Equal(t, mgl32.Vec3{2, 0, 0}, reg.Position(h))
	assert.Equal(t, mgl32.Vec2{1, 1}, reg.Seed(h))
	assert.Equal(t, "cube", reg.Label(h))

	reg.SetPosition(h, mgl32.Vec3{9, 9, 9})
	assert.Equal(t, mgl32.Vec3{2, 0, 0}, reg.Base(h), "moving an object never touches its base")
}

func TestRegisterDuplicate(t *testing.T) {
	reg := NewRegistry(&recordingReleaser{})
	_, err := reg.Register(scene_object.NewSceneObject(scene_object.WithID(1)), mgl32.Vec3{}, mgl32.Vec2{})
	require.NoError(t, err)

	_, err = reg.Register(scene_object.NewSceneObject(scene_object.WithID(1)), mgl32.Vec3{}, mgl32.Vec2{})
	assert.ErrorIs(t, err, ErrDuplicateObject)
	assert.Equal(t, 1, reg.Len())
}

func TestRegisterAllIsAtomic(t *testing.T) {
	reg := NewRegistry(&recordingReleaser{})
	_, err := reg.Register(scene_object.NewSceneObject(scene_object.WithID(3)), mgl32.Vec3{}, mgl32.Vec2{})
	require.NoError(t, err)

	_, err = reg.RegisterAll([]Entry{
		{Object: scene_object.NewSceneObject(scene_object.WithID(4))},
		{Object: scene_object.NewSceneObject(scene_object.WithID(3))},
	})
	assert.ErrorIs(t, err, ErrDuplicateObject)
	assert.Equal(t, 1, reg.Len())
	_, ok := reg.Lookup(4)
	assert.False(t, ok)

	_, err = reg.RegisterAll([]Entry{
		{Object: scene_object.NewSceneObject(scene_object.WithID(5))},
		{Object: scene_object.NewSceneObject(scene_object.WithID(5))},
	})
	assert.ErrorIs(t, err, ErrDuplicateObject)
	assert.Equal(t, 1, reg.Len())
}

func TestForEachOrderAndGroups(t *testing.T) {
	reg := NewRegistry(&recordingReleaser{})
	_, err := reg.Register(scene_object.NewSceneObject(scene_object.WithID(10)), mgl32.Vec3{}, mgl32.Vec2{})
	require.NoError(t, err)

	seed := mgl32.Vec2{0.5, -0.5}
	handles, err := reg.RegisterAll([]Entry{
		{Object: scene_object.NewSceneObject(scene_object.WithID(20)), Seed: seed},
		{Object: scene_object.NewSceneObject(scene_object.WithID(21), scene_object.WithGroup(20)), Seed: seed},
		{Object: scene_object.NewSceneObject(scene_object.WithID(22), scene_object.WithGroup(20)), Seed: seed},
	})
	require.NoError(t, err)
	assert.Equal(t, []Handle{1, 2, 3}, handles)

	var visited []uint64
	reg.ForEach(func(h Handle) {
		visited = append(visited, reg.ID(h))
	})
	assert.Equal(t, []uint64{10, 20, 21, 22}, visited)

	assert.Equal(t, uint64(10), reg.Group(0))
	for _, h := range handles {
		assert.Equal(t, uint64(20), reg.Group(h))
		assert.Equal(t, seed, reg.Seed(h))
	}
}

func TestReleaseAll(t *testing.T) {
	rel := &recordingReleaser{}
	reg := NewRegistry(rel)

	mesh := renderer.MeshHandle(4)
	mat := renderer.MaterialHandle(2)
	for id := uint64(1); id <= 3; id++ {
		obj := scene_object.NewSceneObject(
			scene_object.WithID(id),
			scene_object.WithMaterial(mat),
		)
		_, err := reg.Register(obj, mgl32.Vec3{}, mgl32.Vec2{})
		require.NoError(t, err)
		reg.OwnMesh(mesh)
	}
	reg.OwnMaterial(mat)
	reg.OwnMesh(0)

	meshes, materials := reg.Owned()
	assert.Equal(t, 1, meshes)
	assert.Equal(t, 1, materials)

	reg.ReleaseAll()
	assert.Equal(t, []renderer.MeshHandle{4}, rel.meshes)
	assert.Equal(t, []renderer.MaterialHandle{2}, rel.materials)
	assert.Equal(t, 0, reg.Len())

	reg.ReleaseAll()
	assert.Len(t, rel.meshes, 1, "second release is a no-op")
	assert.Len(t, rel.materials, 1)

	_, err := reg.Register(scene_object.NewSceneObject(scene_object.WithID(1)), mgl32.Vec3{}, mgl32.Vec2{})
	assert.NoError(t, err, "ids are free again after release")
}

func TestDrawItems(t *testing.T) {
	reg := NewRegistry(&recordingReleaser{})
	obj := scene_object.NewSceneObject(
		scene_object.WithID(1),
		scene_object.WithMaterial(3),
		scene_object.WithScale(2, 2, 2),
	)
	h, err := reg.Register(obj, mgl32.Vec3{1, 2, 3}, mgl32.Vec2{})
	require.NoError(t, err)

	items := reg.DrawItems(nil)
	require.Len(t, items, 1)
	assert.Equal(t, renderer.MaterialHandle(3), items[0].Material)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, items[0].Model.Col(3).Vec3())
	assert.InDelta(t, 2, items[0].Model.At(0, 0), 1e-6)
	assert.Equal(t, reg.Position(h), items[0].Model.Col(3).Vec3())
}
