//go:build !js

package opengl

import (
	"testing"

	"github.com/gogpu/glprogram"
	"github.com/gogpu/glprogram/backend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests need no GL context.

func TestIsGLSL(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   bool
	}{
		{"version first", "#version 330 core\nvoid main() {}\n", true},
		{"after comments", "\n// mesh shader\n  #version 330 core\n", true},
		{"wgsl", "@vertex\nfn main() -> @builtin(position) vec4<f32> { return vec4<f32>(); }\n", false},
		{"wgsl comment", "// #version 330\n@vertex fn main() {}\n", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsGLSL(tt.source))
		})
	}
}

func TestBackendBeforeInit(t *testing.T) {
	b := NewBackend()
	assert.Equal(t, backend.BackendOpenGL, b.Name())
	assert.Nil(t, b.Driver())

	_, err := b.CompileStage(glprogram.StageVertex, "#version 330 core\n")
	assert.ErrorIs(t, err, backend.ErrNotInitialized)
	assert.ErrorIs(t, b.DeleteStage(&Stage{}), backend.ErrNotInitialized)
}

func TestBackendRegistered(t *testing.T) {
	require.True(t, backend.IsRegistered(backend.BackendOpenGL))
	_, ok := backend.Get(backend.BackendOpenGL).(*Backend)
	assert.True(t, ok)
}

func TestStageAccessors(t *testing.T) {
	s := &Stage{kind: glprogram.StageGeometry, handle: 12}
	assert.Equal(t, glprogram.StageGeometry, s.Kind())
	assert.Equal(t, glprogram.Handle(12), s.Handle())
}
