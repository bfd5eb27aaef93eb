package glsltrans

import (
	"testing"

	"github.com/gogpu/glprogram"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const meshWGSL = `
@group(0) @binding(0) var<uniform> mvp_matrix: mat4x4<f32>;

struct VertexOutput {
    @builtin(position) position: vec4<f32>,
    @location(0) uv: vec2<f32>,
}

@vertex
fn vs_main(@location(0) vertex_position: vec4<f32>, @location(1) uv: vec2<f32>) -> VertexOutput {
    var out: VertexOutput;
    out.position = mvp_matrix * vertex_position;
    out.uv = uv;
    return out;
}

@fragment
fn fs_main(@location(0) uv: vec2<f32>) -> @location(0) vec4<f32> {
    return vec4<f32>(uv.x, uv.y, 0.0, 1.0);
}
`

func TestTranslateVertex(t *testing.T) {
	res, err := Translate(glprogram.StageVertex, meshWGSL)
	require.NoError(t, err)

	assert.Equal(t, "vs_main", res.EntryPoint)
	assert.Contains(t, res.Source, "#version 330 core")
	assert.Contains(t, res.Source, "vertex_position")
	assert.Contains(t, res.Source, "gl_Position")
}

func TestTranslateFragment(t *testing.T) {
	res, err := Translate(glprogram.StageFragment, meshWGSL)
	require.NoError(t, err)

	assert.Equal(t, "fs_main", res.EntryPoint)
	assert.Contains(t, res.Source, "#version 330 core")
	assert.NotContains(t, res.Source, "gl_Position")
}

func TestTranslateErrors(t *testing.T) {
	const fragmentOnly = `
@fragment
fn main() -> @location(0) vec4<f32> {
    return vec4<f32>(1.0, 0.0, 0.0, 1.0);
}
`
	tests := []struct {
		name   string
		kind   glprogram.StageKind
		source string
		noEP   bool
	}{
		{"geometry", glprogram.StageGeometry, meshWGSL, true},
		{"unknown kind", glprogram.StageKind(9), meshWGSL, true},
		{"missing vertex entry", glprogram.StageVertex, fragmentOnly, true},
		{"syntax error", glprogram.StageVertex, "@vertex fn main( {", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Translate(tt.kind, tt.source)
			require.Error(t, err)
			assert.Nil(t, res)
			if tt.noEP {
				assert.ErrorIs(t, err, ErrNoEntryPoint)
			} else {
				assert.NotErrorIs(t, err, ErrNoEntryPoint)
			}
		})
	}
}
