//go:build !js

// Package opengl implements glprogram.Driver on OpenGL 3.3 core through
// go-gl.
//
// Every call goes to the GL context current on the calling goroutine.
// Callers lock the goroutine to its OS thread (runtime.LockOSThread) and
// make a context current before calling gl.Init through Backend.Init.
package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/gogpu/glprogram"
	"github.com/gogpu/glprogram/internal/glsltrans"
)

// Driver forwards glprogram.Driver calls to the current GL context.
type Driver struct{}

var _ glprogram.Driver = (*Driver)(nil)

// New returns a driver for the current context. gl.Init must have run.
func New() *Driver {
	return &Driver{}
}

// cstr returns a NUL-terminated copy of s for GL.
func cstr(s string) *uint8 {
	return gl.Str(s + "\x00")
}

func (d *Driver) programiv(h glprogram.Handle, pname uint32) int32 {
	var v int32
	gl.GetProgramiv(uint32(h), pname, &v)
	return v
}

// Status implements glprogram.StatusReporter for programs.
func (d *Driver) Status(h glprogram.Handle, phase glprogram.Phase) bool {
	switch phase {
	case glprogram.PhaseLink:
		return d.programiv(h, gl.LINK_STATUS) != gl.FALSE
	case glprogram.PhaseValidate:
		return d.programiv(h, gl.VALIDATE_STATUS) != gl.FALSE
	}
	return false
}

// InfoLogLength implements glprogram.StatusReporter for programs.
func (d *Driver) InfoLogLength(h glprogram.Handle) int32 {
	return d.programiv(h, gl.INFO_LOG_LENGTH)
}

// InfoLog implements glprogram.StatusReporter for programs.
func (d *Driver) InfoLog(h glprogram.Handle, buf []byte) int {
	if len(buf) == 0 {
		return 0
	}
	var n int32
	gl.GetProgramInfoLog(uint32(h), int32(len(buf)), &n, &buf[0])
	return int(n)
}

// CreateProgram implements glprogram.Driver.
func (d *Driver) CreateProgram() glprogram.Handle {
	return glprogram.Handle(gl.CreateProgram())
}

// DeleteProgram implements glprogram.Driver.
func (d *Driver) DeleteProgram(h glprogram.Handle) { gl.DeleteProgram(uint32(h)) }

// AttachShader implements glprogram.Driver.
func (d *Driver) AttachShader(program, stage glprogram.Handle) {
	gl.AttachShader(uint32(program), uint32(stage))
}

// DetachShader implements glprogram.Driver.
func (d *Driver) DetachShader(program, stage glprogram.Handle) {
	gl.DetachShader(uint32(program), uint32(stage))
}

// LinkProgram implements glprogram.Driver.
func (d *Driver) LinkProgram(h glprogram.Handle) { gl.LinkProgram(uint32(h)) }

// ValidateProgram implements glprogram.Driver.
func (d *Driver) ValidateProgram(h glprogram.Handle) { gl.ValidateProgram(uint32(h)) }

// ActiveAttributeCount implements glprogram.Driver.
func (d *Driver) ActiveAttributeCount(h glprogram.Handle) int32 {
	return d.programiv(h, gl.ACTIVE_ATTRIBUTES)
}

// ActiveAttribute implements glprogram.Driver.
func (d *Driver) ActiveAttribute(h glprogram.Handle, index uint32) glprogram.ActiveAttribute {
	maxLen := d.programiv(h, gl.ACTIVE_ATTRIBUTE_MAX_LENGTH)
	if maxLen <= 0 {
		return glprogram.ActiveAttribute{}
	}
	name := make([]byte, maxLen)
	var length, size int32
	var typ uint32
	gl.GetActiveAttrib(uint32(h), index, maxLen, &length, &size, &typ, &name[0])
	return glprogram.ActiveAttribute{
		Name: string(name[:length]),
		Type: glprogram.AttribType(typ),
		Size: size,
	}
}

// AttributeLocation implements glprogram.Driver.
func (d *Driver) AttributeLocation(h glprogram.Handle, name string) int32 {
	return gl.GetAttribLocation(uint32(h), cstr(name))
}

// UniformLocation implements glprogram.Driver.
func (d *Driver) UniformLocation(h glprogram.Handle, name string) int32 {
	return gl.GetUniformLocation(uint32(h), cstr(name))
}

// BindAttributeLocation implements glprogram.Driver.
func (d *Driver) BindAttributeLocation(h glprogram.Handle, index uint32, name string) {
	gl.BindAttribLocation(uint32(h), index, cstr(name))
}

// UseProgram implements glprogram.Driver.
func (d *Driver) UseProgram(h glprogram.Handle) { gl.UseProgram(uint32(h)) }

// Stage is a GL shader object.
type Stage struct {
	kind   glprogram.StageKind
	handle glprogram.Handle
}

// Kind implements glprogram.Stage.
func (s *Stage) Kind() glprogram.StageKind { return s.kind }

// Handle implements glprogram.Stage.
func (s *Stage) Handle() glprogram.Handle { return s.handle }

var shaderTypes = map[glprogram.StageKind]uint32{
	glprogram.StageVertex:   gl.VERTEX_SHADER,
	glprogram.StageFragment: gl.FRAGMENT_SHADER,
	glprogram.StageGeometry: gl.GEOMETRY_SHADER,
}

// CompileStage compiles GLSL source into a shader object. A failed compile
// returns a *glprogram.StatusError with the driver's log and deletes the
// shader object.
func (d *Driver) CompileStage(kind glprogram.StageKind, source string) (*Stage, error) {
	typ, ok := shaderTypes[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %v", glprogram.ErrUnknownStageKind, kind)
	}
	shader := gl.CreateShader(typ)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	h := glprogram.Handle(shader)
	if err := glprogram.CheckStatus(d.Stages(), h, glprogram.PhaseCompile); err != nil {
		gl.DeleteShader(shader)
		return nil, err
	}
	glprogram.Logger().Debug("opengl: stage compiled", "stage", h, "kind", kind)
	return &Stage{kind: kind, handle: h}, nil
}

// CompileWGSL translates WGSL source to GLSL and compiles it. Uniforms of
// translated stages live in uniform blocks, so UniformLocation does not
// find them by their WGSL names.
func (d *Driver) CompileWGSL(kind glprogram.StageKind, source string) (*Stage, error) {
	res, err := glsltrans.Translate(kind, source)
	if err != nil {
		return nil, fmt.Errorf("opengl: %w", err)
	}
	return d.CompileStage(kind, res.Source)
}

// DeleteStage flags the shader object for deletion. GL keeps it alive while
// a program still has it attached.
func (d *Driver) DeleteStage(s *Stage) {
	if s != nil {
		gl.DeleteShader(uint32(s.handle))
	}
}

// Stages returns the status reporter for shader compilation.
func (d *Driver) Stages() glprogram.StatusReporter {
	return shaderReporter{}
}

type shaderReporter struct{}

func (shaderReporter) Status(h glprogram.Handle, phase glprogram.Phase) bool {
	if phase != glprogram.PhaseCompile {
		return false
	}
	var v int32
	gl.GetShaderiv(uint32(h), gl.COMPILE_STATUS, &v)
	return v != gl.FALSE
}

func (shaderReporter) InfoLogLength(h glprogram.Handle) int32 {
	var v int32
	gl.GetShaderiv(uint32(h), gl.INFO_LOG_LENGTH, &v)
	return v
}

func (shaderReporter) InfoLog(h glprogram.Handle, buf []byte) int {
	if len(buf) == 0 {
		return 0
	}
	var n int32
	gl.GetShaderInfoLog(uint32(h), int32(len(buf)), &n, &buf[0])
	return int(n)
}
