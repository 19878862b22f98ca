package renderer

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-backdrop/engine/geometry"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/renderer/material"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRenderer(t *testing.T, opts ...HeadlessOption) (Renderer, *HeadlessBackend) {
	t.Helper()
	hb := NewHeadlessBackend(append([]HeadlessOption{WithHeadlessSize(800, 600)}, opts...)...)
	r := NewRendererWithBackend(hb)
	t.Cleanup(r.Destroy)
	return r, hb
}

func cube(t *testing.T) geometry.Mesh {
	t.Helper()
	m, err := geometry.Build(geometry.Descriptor{Kind: geometry.KindBox, Size: [3]float32{1, 1, 1}})
	require.NoError(t, err)
	return m
}

func TestNewRendererHeadless(t *testing.T) {
	r, err := NewRenderer(BackendTypeHeadless, nil, WithPresentMode(PresentModeVSync))
	require.NoError(t, err)
	defer r.Destroy()

	assert.ErrorIs(t, r.Ready(), ErrSurfaceNotReady)
	r.Resize(640, 480)
	require.NoError(t, r.Ready())
	w, h := r.Size()
	assert.Equal(t, 640, w)
	assert.Equal(t, 480, h)
	assert.Equal(t, PresentModeVSync, r.Backend().(*HeadlessBackend).PresentMode())
}

func TestNewRendererWGPURequiresSurface(t *testing.T) {
	_, err := NewRenderer(BackendTypeWGPU, nil)
	assert.ErrorIs(t, err, ErrSurfaceNotReady)
}

func TestMeshAndMaterialLifecycle(t *testing.T) {
	r, hb := newTestRenderer(t)

	mh, err := r.CreateMesh("cube", cube(t))
	require.NoError(t, err)
	assert.NotZero(t, mh)
	matH, err := r.CreateMaterial(material.NewMaterial())
	require.NoError(t, err)
	assert.NotZero(t, matH)

	assert.Equal(t, Stats{Meshes: 1, Materials: 1}, r.Stats())
	assert.Equal(t, 1, hb.LiveMeshes())

	r.ReleaseMesh(mh)
	r.ReleaseMesh(mh)
	r.ReleaseMaterial(matH)
	assert.Equal(t, 0, r.Stats().Meshes)
	assert.Equal(t, 0, r.Stats().Materials)
	assert.Equal(t, 0, hb.LiveMeshes())
}

func TestSubmitResolvesAndOrdersDraws(t *testing.T) {
	r, hb := newTestRenderer(t)

	mesh, err := r.CreateMesh("cube", cube(t))
	require.NoError(t, err)
	opaque, err := r.CreateMaterial(material.NewMaterial(material.WithEmissive(0.5)))
	require.NoError(t, err)
	glass, err := r.CreateMaterial(material.NewMaterial(material.WithOpacity(0.3)))
	require.NoError(t, err)

	frame := &Frame{
		View:       mgl32.Ident4(),
		Projection: mgl32.Ident4(),
		Eye:        mgl32.Vec3{0, 0, 5},
		Lights:     []LightData{{Kind: LightPoint, Intensity: 1}},
		Items: []DrawItem{
			{Mesh: mesh, Material: glass, Model: mgl32.Translate3D(0, 0, 4)},
			{Mesh: mesh, Material: opaque, Model: mgl32.Ident4()},
			{Mesh: mesh, Material: glass, Model: mgl32.Translate3D(0, 0, -4)},
		},
	}
	require.NoError(t, r.Submit(frame))

	b := hb.LastBatch()
	require.Len(t, b.Draws, 3)
	assert.Equal(t, 1, b.Transparent)
	assert.Equal(t, [3]float32{0.5, 0.5, 0.5}, b.Draws[0].Emissive, "untinted glow premultiplies the white base color")
	// back to front: the far transparent object first
	assert.Equal(t, float32(-4), b.Draws[1].Model[14])
	assert.Equal(t, float32(4), b.Draws[2].Model[14])
	assert.Len(t, b.Lights, 1)

	st := r.Stats()
	assert.Equal(t, uint64(1), st.Frames)
	assert.Equal(t, 3, st.LastDraws)
}

func TestSubmitRejectsDanglingHandles(t *testing.T) {
	r, _ := newTestRenderer(t)
	mesh, err := r.CreateMesh("cube", cube(t))
	require.NoError(t, err)
	mat, err := r.CreateMaterial(material.NewMaterial())
	require.NoError(t, err)

	err = r.Submit(&Frame{Items: []DrawItem{{Mesh: mesh + 1, Material: mat}}})
	assert.ErrorIs(t, err, ErrUnknownMesh)
	err = r.Submit(&Frame{Items: []DrawItem{{Mesh: mesh, Material: mat + 1}}})
	assert.ErrorIs(t, err, ErrUnknownMaterial)
	assert.Zero(t, r.Stats().Frames)
}

func TestMeshLimitSurfacesExhaustion(t *testing.T) {
	r, _ := newTestRenderer(t, WithHeadlessMeshLimit(1))
	_, err := r.CreateMesh("a", cube(t))
	require.NoError(t, err)
	_, err = r.CreateMesh("b", cube(t))
	assert.ErrorIs(t, err, ErrResourceExhausted)
	assert.Equal(t, 1, r.Stats().Meshes)
}

func TestDestroyIsIdempotent(t *testing.T) {
	r, hb := newTestRenderer(t)
	_, err := r.CreateMesh("cube", cube(t))
	require.NoError(t, err)

	r.Destroy()
	r.Destroy()
	assert.Equal(t, 0, hb.LiveMeshes())
	_, err = r.CreateMesh("cube", cube(t))
	assert.ErrorIs(t, err, ErrDestroyed)
	assert.ErrorIs(t, r.Submit(&Frame{}), ErrDestroyed)
	assert.ErrorIs(t, r.Ready(), ErrDestroyed)
}

func TestPackGlobalsCapsLights(t *testing.T) {
	lights := make([]LightData, MaxLights+2)
	lights[0] = LightData{Kind: LightDirectional, Direction: mgl32.Vec3{0, -1, 0}, Intensity: 2}
	g := packGlobals(&Batch{Ambient: [3]float32{0.1, 0.2, 0.3}, Lights: lights})
	assert.Equal(t, float32(MaxLights), g.Ambient[3])
	assert.Equal(t, float32(0), g.Lights[0].Position[3])
	assert.Equal(t, float32(2), g.Lights[0].Color[3])
	assert.Equal(t, float32(1), g.Lights[1].Position[3])
}
