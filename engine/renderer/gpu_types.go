package renderer

import (
	_ "embed"
)

//go:embed shaders/scene.wgsl
var sceneShaderSource string

// gpuLight mirrors the WGSL Light struct. 48 bytes.
type gpuLight struct {
	Position  [4]float32
	Direction [4]float32
	Color     [4]float32
}

// gpuGlobals mirrors the WGSL Globals uniform. 288 bytes.
type gpuGlobals struct {
	ViewProjection [16]float32
	Eye            [4]float32
	Ambient        [4]float32
	Lights         [MaxLights]gpuLight
}

// gpuObject mirrors one element of the WGSL objects storage array. 96 bytes.
type gpuObject struct {
	Model  [16]float32
	Color  [4]float32
	Params [4]float32
}

// packGlobals converts a batch's camera and lighting into the uniform layout.
// Lights beyond MaxLights are dropped.
func packGlobals(b *Batch) gpuGlobals {
	g := gpuGlobals{
		ViewProjection: b.ViewProjection,
		Eye:            [4]float32{b.Eye[0], b.Eye[1], b.Eye[2], 1},
	}
	n := min(len(b.Lights), MaxLights)
	g.Ambient = [4]float32{b.Ambient[0], b.Ambient[1], b.Ambient[2], float32(n)}
	for i := 0; i < n; i++ {
		l := b.Lights[i]
		kind := float32(0)
		if l.Kind == LightPoint {
			kind = 1
		}
		g.Lights[i] = gpuLight{
			Position:  [4]float32{l.Position[0], l.Position[1], l.Position[2], kind},
			Direction: [4]float32{l.Direction[0], l.Direction[1], l.Direction[2], l.Range},
			Color:     [4]float32{l.Color[0], l.Color[1], l.Color[2], l.Intensity},
		}
	}
	return g
}

// packObjects converts draws into the storage layout, reusing dst.
func packObjects(dst []gpuObject, draws []Draw) []gpuObject {
	dst = dst[:0]
	for _, d := range draws {
		dst = append(dst, gpuObject{
			Model:  d.Model,
			Color:  d.Color,
			Params: [4]float32{d.Emissive[0], d.Emissive[1], d.Emissive[2], 0},
		})
	}
	return dst
}
