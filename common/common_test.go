package common

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, float32(1), Clamp(2, -1, 1))
	assert.Equal(t, float32(-1), Clamp(-5, -1, 1))
	assert.Equal(t, float32(0.25), Clamp(0.25, -1, 1))
}

func TestSliceToBytes(t *testing.T) {
	assert.Nil(t, SliceToBytes([]float32{}))
	b := SliceToBytes([]float32{1, 2, 3})
	assert.Len(t, b, 12)
}

func TestModelMatrixTranslatesAndScales(t *testing.T) {
	m := ModelMatrix(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{}, mgl32.Vec3{2, 2, 2})
	p := m.Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	assert.InDelta(t, 3, p.X(), 1e-6)
	assert.InDelta(t, 2, p.Y(), 1e-6)
	assert.InDelta(t, 3, p.Z(), 1e-6)
}

func TestLoggerDefaultsToSilent(t *testing.T) {
	require.NotNil(t, Logger())
	assert.False(t, Logger().Enabled(t.Context(), slog.LevelError))

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { SetLogger(nil) })

	Logger().Info("scene started", "objects", 3)
	assert.Contains(t, buf.String(), "scene started")
}
