package light

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-backdrop/engine/config"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/renderer"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLightDefaults(t *testing.T) {
	l := NewLight(LightTypePoint)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, l.Color())
	assert.Equal(t, float32(1), l.Intensity())
	assert.Equal(t, float32(10), l.Range())
	assert.True(t, l.Enabled())
}

func TestWithDirectionNormalizes(t *testing.T) {
	l := NewLight(LightTypeDirectional, WithDirection(0, 0, -4))
	assert.True(t, l.Direction().ApproxEqual(mgl32.Vec3{0, 0, -1}))

	l = NewLight(LightTypeDirectional, WithDirection(0, 0, 0))
	assert.Equal(t, mgl32.Vec3{0, -1, 0}, l.Direction())
}

func TestFromConfig(t *testing.T) {
	p, err := FromConfig(config.Light{Type: "point", Position: [3]float32{1, 2, 3}, Intensity: 2, Range: 5})
	require.NoError(t, err)
	assert.Equal(t, renderer.LightPoint, p.Data().Kind)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, p.Data().Position)
	assert.Equal(t, float32(5), p.Data().Range)

	d, err := FromConfig(config.Light{Type: "directional", Direction: [3]float32{0, -2, 0}})
	require.NoError(t, err)
	assert.Equal(t, renderer.LightDirectional, d.Data().Kind)

	_, err = FromConfig(config.Light{Type: "spot"})
	assert.ErrorIs(t, err, ErrUnknownLightType)
}

func TestSet(t *testing.T) {
	set, err := SetFromConfig(config.Default())
	require.NoError(t, err)
	assert.Len(t, set.Lights(), len(config.DefaultLights()))
	assert.Equal(t, mgl32.Vec3(config.Default().Ambient), set.Ambient())

	lights := make([]Light, renderer.MaxLights+1)
	for i := range lights {
		lights[i] = NewLight(LightTypePoint)
	}
	_, err = NewSet(mgl32.Vec3{}, lights...)
	assert.ErrorIs(t, err, ErrTooManyLights)

	set, err = NewSet(mgl32.Vec3{}, NewLight(LightTypePoint), NewLight(LightTypePoint, WithEnabled(false)))
	require.NoError(t, err)
	assert.Len(t, set.AppendData(nil), 1)
}
