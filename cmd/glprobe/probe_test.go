package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/glprogram"
	"github.com/gogpu/glprogram/backend/soft"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const meshVertex = `
struct VertexInput {
    @location(0) vertex_position: vec3<f32>,
    @location(1) uv: vec2<f32>,
}

@group(0) @binding(0) var<uniform> mvp_matrix: mat4x4<f32>;

@vertex
fn main(in: VertexInput) -> @builtin(position) vec4<f32> {
    return mvp_matrix * vec4<f32>(in.vertex_position.x, in.vertex_position.y, in.vertex_position.z, 1.0);
}
`

const uvVertex = `
@vertex
fn main(@location(0) tex_coordinates: vec2<f32>) -> @builtin(position) vec4<f32> {
    return vec4<f32>(tex_coordinates.x, tex_coordinates.y, 0.0, 1.0);
}
`

const tintFragment = `
@group(0) @binding(1) var<uniform> tint: vec4<f32>;

@fragment
fn main() -> @location(0) vec4<f32> {
    return tint;
}
`

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, src := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(src), 0o600))
	}
	return dir
}

func newProber(t *testing.T) (*prober, *bytes.Buffer) {
	t.Helper()
	b := soft.NewBackend()
	require.NoError(t, b.Init())
	t.Cleanup(b.Close)
	var out bytes.Buffer
	return &prober{out: &out, backend: b}, &out
}

func TestProbeLinks(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"mesh.vert.wgsl": meshVertex,
		"tint.frag.wgsl": tintFragment,
		"programs.hcl": `
program "mesh" {
  vertex   = "mesh.vert.wgsl"
  fragment = "tint.frag.wgsl"
  uniforms = ["tint"]

  attribute "uv" {
    location = 3
  }
}
`,
	})
	p, out := newProber(t)

	require.True(t, p.probe(filepath.Join(dir, "programs.hcl")), out.String())
	assert.Contains(t, out.String(), "mesh: linked, handle ")
	assert.Contains(t, out.String(), "  position vertex_position = 0\n")
	assert.Contains(t, out.String(), "  mvp mvp_matrix = 0\n")
	assert.Contains(t, out.String(), "  attribute uv = 3\n")
	assert.Contains(t, out.String(), "  uniform tint = 1\n")
	assert.Contains(t, out.String(), "  -> attribute uv : type=vec2, size=1\n")
	assert.Contains(t, out.String(), "  format vertex_position = Float32x3 (12 bytes)\n")
	assert.Contains(t, out.String(), "  format uv = Float32x2 (8 bytes)\n")
	assert.Len(t, p.files, 3)
}

func TestProbeReportsMissingPosition(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"uv.vert.wgsl":   uvVertex,
		"tint.frag.wgsl": tintFragment,
		"programs.hcl": `
program "textured" {
  vertex   = "uv.vert.wgsl"
  fragment = "tint.frag.wgsl"
}
`,
	})
	p, out := newProber(t)

	assert.False(t, p.probe(filepath.Join(dir, "programs.hcl")))
	assert.Contains(t, out.String(), "  dumping shader program active attribute list:\n")
	assert.Contains(t, out.String(), "  -> attribute tex_coordinates : type=vec2, size=1\n")
	assert.Contains(t, out.String(), "textured: FAILED\n")
	assert.Contains(t, out.String(), `"vertex_position" not found`)
}

func TestProbeReportsCompileFailure(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"bad.vert.wgsl":  "@vertex fn main( {",
		"tint.frag.wgsl": tintFragment,
		"programs.hcl": `
program "broken" {
  vertex   = "bad.vert.wgsl"
  fragment = "tint.frag.wgsl"
}
`,
	})
	p, out := newProber(t)

	assert.False(t, p.probe(filepath.Join(dir, "programs.hcl")))
	assert.Contains(t, out.String(), "broken: FAILED\n")
	assert.Contains(t, out.String(), "vertex stage")
	assert.Contains(t, out.String(), "compilation failed")
}

func TestProbeMissingManifest(t *testing.T) {
	p, out := newProber(t)
	assert.False(t, p.probe(filepath.Join(t.TempDir(), "none.hcl")))
	assert.NotEmpty(t, out.String())
}

func TestVertexFormat(t *testing.T) {
	assert.Equal(t, "Float32x4 (16 bytes)", vertexFormat(glprogram.AttribFloatVec4))
	assert.Equal(t, "Sint32x2 (8 bytes)", vertexFormat(glprogram.AttribIntVec2))
	assert.Equal(t, "none", vertexFormat(glprogram.AttribFloatMat4))
}

func TestIndent(t *testing.T) {
	assert.Equal(t, "  a\n  b", indent("a\nb\n"))
}
