package pipeline

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
)

func TestNewPipelineDefaults(t *testing.T) {
	p := NewPipeline("scene_triangles", "// wgsl")
	assert.Equal(t, "scene_triangles", p.PipelineKey())
	assert.Equal(t, "vs_main", p.VertexEntryPoint())
	assert.Equal(t, "fs_main", p.FragmentEntryPoint())
	assert.True(t, p.DepthTestEnabled())
	assert.True(t, p.DepthWriteEnabled())
	assert.False(t, p.BlendEnabled())
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, p.Topology())
	assert.Equal(t, wgpu.CullModeNone, p.CullMode())
	assert.NotNil(t, p.BlendState())
	assert.Nil(t, p.RenderPipeline())
	p.Release()
}

func TestPipelineOptions(t *testing.T) {
	p := NewPipeline("lines", "",
		WithTopology(wgpu.PrimitiveTopologyLineList),
		WithBlendEnabled(true),
		WithDepthWriteEnabled(false),
		WithEntryPoints("v", "f"),
		WithCullMode(wgpu.CullModeBack),
	)
	assert.Equal(t, wgpu.PrimitiveTopologyLineList, p.Topology())
	assert.True(t, p.BlendEnabled())
	assert.False(t, p.DepthWriteEnabled())
	assert.Equal(t, "v", p.VertexEntryPoint())
	assert.Equal(t, wgpu.CullModeBack, p.CullMode())
}
