package profiler

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-backdrop/common"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/renderer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedStats renderer.Stats

func (f fixedStats) Stats() renderer.Stats { return renderer.Stats(f) }

func TestTickHonorsInterval(t *testing.T) {
	p := NewProfiler(WithInterval(time.Hour))
	for range 10 {
		assert.False(t, p.Tick())
	}
	assert.Zero(t, p.Last().FPS)
}

func TestTickReportsRendererStats(t *testing.T) {
	var buf bytes.Buffer
	common.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { common.SetLogger(nil) })

	p := NewProfiler(WithInterval(0), WithStatsSource(fixedStats{Meshes: 12, Materials: 6, Frames: 40, LastDraws: 36}))
	time.Sleep(time.Millisecond)
	require.True(t, p.Tick())

	s := p.Last()
	assert.Equal(t, 12, s.Renderer.Meshes)
	assert.Equal(t, 36, s.Renderer.LastDraws)
	assert.Greater(t, s.FPS, 0.0)
	assert.Greater(t, s.SysMB, 0.0)
	assert.Contains(t, buf.String(), "meshes=12")
	assert.Contains(t, buf.String(), "draws=36")
}
