//go:build !js

package opengl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/gogpu/glprogram"
	"github.com/gogpu/glprogram/backend"
)

// ErrNoContext is returned by Init when no GL context is current.
var ErrNoContext = errors.New("opengl: no current GL context")

func init() {
	backend.Register(backend.BackendOpenGL, func() backend.Backend {
		return NewBackend()
	})
}

// Backend adapts a Driver to backend.Backend. Init needs a GL context
// current on the calling goroutine; without one it fails and InitDefault
// falls through to the next backend.
type Backend struct {
	driver *Driver
}

// NewBackend creates an uninitialized OpenGL backend.
func NewBackend() *Backend {
	return &Backend{}
}

// Name returns the backend identifier.
func (b *Backend) Name() string { return backend.BackendOpenGL }

// Init loads the GL function pointers of the current context.
func (b *Backend) Init() error {
	if b.driver != nil {
		return nil
	}
	if err := gl.Init(); err != nil {
		return fmt.Errorf("opengl: %w", err)
	}
	v := gl.GetString(gl.VERSION)
	if v == nil {
		return ErrNoContext
	}
	glprogram.Logger().Info("opengl: context ready", "version", gl.GoStr(v))
	b.driver = New()
	return nil
}

// Close drops the driver. GL objects live as long as their context.
func (b *Backend) Close() { b.driver = nil }

// Driver returns the underlying *Driver, or nil before Init.
func (b *Backend) Driver() glprogram.Driver {
	if b.driver == nil {
		return nil
	}
	return b.driver
}

// CompileStage compiles GLSL when the source starts with a #version
// directive and translates it from WGSL otherwise.
func (b *Backend) CompileStage(kind glprogram.StageKind, source string) (glprogram.Stage, error) {
	if b.driver == nil {
		return nil, backend.ErrNotInitialized
	}
	compile := b.driver.CompileWGSL
	if IsGLSL(source) {
		compile = b.driver.CompileStage
	}
	s, err := compile(kind, source)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// DeleteStage releases a stage created by CompileStage.
func (b *Backend) DeleteStage(s glprogram.Stage) error {
	if b.driver == nil {
		return backend.ErrNotInitialized
	}
	st, ok := s.(*Stage)
	if !ok {
		return fmt.Errorf("%w: %T", backend.ErrForeignStage, s)
	}
	b.driver.DeleteStage(st)
	return nil
}

// IsGLSL reports whether source begins with a #version directive, after
// blank lines and // comments.
func IsGLSL(source string) bool {
	for line := range strings.Lines(source) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		return strings.HasPrefix(line, "#version")
	}
	return false
}
