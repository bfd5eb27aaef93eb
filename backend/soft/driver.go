// Package soft implements glprogram.Driver in pure Go.
//
// The soft driver needs no GPU. Stages are WGSL, compiled and reflected
// through naga: the active attributes of a linked program are the
// location-bound inputs of its vertex entry point, and its uniforms are the
// uniform and handle globals of all its stages. Locations requested with
// BindAttributeLocation override the @location in the source.
//
// The driver follows GL conventions where the two could differ: handles of
// programs and stages share one name space, NoLocation is -1, and info log
// lengths count a trailing NUL.
//
// Besides serving as a reference, the driver has hooks for tests:
// FailNext forces the next link, validate or compile to fail with a given
// log, and Active, Attached, Linked, Deleted and Objects expose driver
// state.
package soft

import (
	"cmp"
	"crypto/sha256"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/gogpu/glprogram"
	"github.com/gogpu/glprogram/internal/cache"
	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"
)

// Driver is an in-memory glprogram.Driver. It is not safe for concurrent use.
type Driver struct {
	next     glprogram.Handle
	programs map[glprogram.Handle]*program
	stages   map[glprogram.Handle]*Stage
	active   glprogram.Handle
	failures map[glprogram.Phase]string

	// deleted holds the handles of deleted programs.
	deleted map[glprogram.Handle]struct{}

	modules *cache.Cache[[sha256.Size]byte, lowered]
}

// moduleCacheSize bounds the lowered modules a driver keeps.
const moduleCacheSize = 64

type program struct {
	attached []glprogram.Handle
	bindings map[string]uint32

	linked     bool
	validated  bool
	log        string
	modules    []*ir.Module
	attributes []glprogram.ActiveAttribute
	attribLocs map[string]int32
	uniforms   map[string]int32
}

var _ glprogram.Driver = (*Driver)(nil)

// New creates an empty driver.
func New() *Driver {
	return &Driver{
		programs: make(map[glprogram.Handle]*program),
		stages:   make(map[glprogram.Handle]*Stage),
		failures: make(map[glprogram.Phase]string),
		deleted:  make(map[glprogram.Handle]struct{}),
		modules:  cache.New[[sha256.Size]byte, lowered](moduleCacheSize),
	}
}

func (d *Driver) alloc() glprogram.Handle {
	d.next++
	return d.next
}

// program returns the live program named h, or nil.
func (d *Driver) program(h glprogram.Handle) *program {
	return d.programs[h]
}

// referenced reports whether a live program has stage h attached.
func (d *Driver) referenced(h glprogram.Handle) bool {
	for _, p := range d.programs {
		if slices.Contains(p.attached, h) {
			return true
		}
	}
	return false
}

// release drops a stage flagged for deletion once no program has it
// attached.
func (d *Driver) release(h glprogram.Handle) {
	if s := d.stages[h]; s != nil && s.deleted && !d.referenced(h) {
		delete(d.stages, h)
	}
}

// FailNext makes the next request of the given phase fail with log,
// regardless of the sources involved. An empty log is kept empty.
func (d *Driver) FailNext(phase glprogram.Phase, log string) {
	d.failures[phase] = log
}

func (d *Driver) takeFailure(phase glprogram.Phase) (string, bool) {
	log, ok := d.failures[phase]
	if ok {
		delete(d.failures, phase)
	}
	return log, ok
}

// CompileStage compiles WGSL source into a stage of the given kind. A
// failed compilation returns a *glprogram.StatusError for PhaseCompile
// carrying the compiler's log, and the stage is released.
func (d *Driver) CompileStage(kind glprogram.StageKind, source string) (*Stage, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %v", glprogram.ErrUnknownStageKind, kind)
	}
	s := &Stage{kind: kind, handle: d.alloc()}
	d.stages[s.handle] = s

	if log, ok := d.takeFailure(glprogram.PhaseCompile); ok {
		s.log = log
	} else {
		s.compile(d.modules, source)
	}
	if err := glprogram.CheckStatus(d.Stages(), s.handle, glprogram.PhaseCompile); err != nil {
		d.DeleteStage(s)
		return nil, err
	}
	glprogram.Logger().Debug("soft: stage compiled", "stage", s.handle, "kind", kind)
	return s, nil
}

// DeleteStage flags a stage for deletion and releases it once no program
// has it attached. As in GL, programs it is still attached to can link
// with it.
func (d *Driver) DeleteStage(s *Stage) {
	if s == nil {
		return
	}
	s.deleted = true
	d.release(s.handle)
}

// Stages returns the status reporter for stage compilation.
func (d *Driver) Stages() glprogram.StatusReporter {
	return stageReporter{d: d}
}

// CachedModules returns how many lowered WGSL modules the driver holds.
// Compiling a source again reuses its module.
func (d *Driver) CachedModules() int { return d.modules.Len() }

// Active returns the active program, or NoProgram.
func (d *Driver) Active() glprogram.Handle { return d.active }

// Attached returns the stages currently attached to a program.
func (d *Driver) Attached(h glprogram.Handle) []glprogram.Handle {
	if p := d.program(h); p != nil {
		return slices.Clone(p.attached)
	}
	return nil
}

// Linked reports whether the last link of a program succeeded.
func (d *Driver) Linked(h glprogram.Handle) bool {
	p := d.program(h)
	return p != nil && p.linked
}

// Deleted reports whether a program was created and then deleted.
func (d *Driver) Deleted(h glprogram.Handle) bool {
	_, ok := d.deleted[h]
	return ok
}

// Objects returns how many programs and stages the driver holds. Deleted
// programs and released stages are not counted.
func (d *Driver) Objects() (programs, stages int) {
	return len(d.programs), len(d.stages)
}

// CreateProgram implements glprogram.Driver.
func (d *Driver) CreateProgram() glprogram.Handle {
	h := d.alloc()
	d.programs[h] = &program{bindings: make(map[string]uint32)}
	return h
}

// DeleteProgram implements glprogram.Driver.
func (d *Driver) DeleteProgram(h glprogram.Handle) {
	p := d.program(h)
	if p == nil {
		return
	}
	delete(d.programs, h)
	d.deleted[h] = struct{}{}
	if d.active == h {
		d.active = glprogram.NoProgram
	}
	for _, sh := range p.attached {
		d.release(sh)
	}
}

// AttachShader implements glprogram.Driver. Attaching a stage twice is
// ignored.
func (d *Driver) AttachShader(program, stage glprogram.Handle) {
	p := d.program(program)
	if p == nil || slices.Contains(p.attached, stage) {
		return
	}
	p.attached = append(p.attached, stage)
}

// DetachShader implements glprogram.Driver.
func (d *Driver) DetachShader(program, stage glprogram.Handle) {
	p := d.program(program)
	if p == nil {
		return
	}
	if i := slices.Index(p.attached, stage); i >= 0 {
		p.attached = slices.Delete(p.attached, i, i+1)
		d.release(stage)
	}
}

// LinkProgram implements glprogram.Driver.
func (d *Driver) LinkProgram(h glprogram.Handle) {
	p := d.program(h)
	if p == nil {
		return
	}
	p.linked, p.validated = false, false
	p.modules, p.attributes, p.attribLocs, p.uniforms = nil, nil, nil, nil

	if log, ok := d.takeFailure(glprogram.PhaseLink); ok {
		p.log = log
		return
	}
	if err := d.link(p); err != nil {
		p.log = err.Error()
		return
	}
	p.log = ""
	p.linked = true
}

func (d *Driver) link(p *program) error {
	var vertex *Stage
	var others []*Stage
	for _, sh := range p.attached {
		s := d.stages[sh]
		switch {
		case s == nil:
			return fmt.Errorf("error: attached object %d is not a stage", sh)
		case !s.compiled:
			return fmt.Errorf("error: %s stage %d was not successfully compiled", s.kind, sh)
		case s.kind == glprogram.StageVertex && vertex == nil:
			vertex = s
		default:
			others = append(others, s)
		}
	}
	if vertex == nil {
		return errors.New("error: no vertex stage attached")
	}
	stages := append([]*Stage{vertex}, others...)

	attribLocs := make(map[string]int32)
	byLocation := make(map[uint32]string)
	var attributes []glprogram.ActiveAttribute
	for _, in := range vertexInputs(vertex.module) {
		loc := in.location
		if bound, ok := p.bindings[in.name]; ok {
			loc = bound
		}
		if other, ok := byLocation[loc]; ok {
			return fmt.Errorf("error: attributes %q and %q are both assigned to location %d", other, in.name, loc)
		}
		byLocation[loc] = in.name
		attribLocs[in.name] = int32(loc)
		attributes = append(attributes, glprogram.ActiveAttribute{Name: in.name, Type: in.typ, Size: 1})
	}
	slices.SortFunc(attributes, func(a, b glprogram.ActiveAttribute) int {
		return cmp.Compare(attribLocs[a.Name], attribLocs[b.Name])
	})

	uniforms := make(map[string]int32)
	modules := make([]*ir.Module, 0, len(stages))
	for _, s := range stages {
		modules = append(modules, s.module)
		for _, name := range uniformNames(s.module) {
			if _, ok := uniforms[name]; !ok {
				uniforms[name] = int32(len(uniforms))
			}
		}
	}

	p.modules = modules
	p.attributes = attributes
	p.attribLocs = attribLocs
	p.uniforms = uniforms
	return nil
}

// ValidateProgram implements glprogram.Driver. It runs the naga validator
// over every stage of the last successful link.
func (d *Driver) ValidateProgram(h glprogram.Handle) {
	p := d.program(h)
	if p == nil {
		return
	}
	p.validated = false
	if !p.linked {
		p.log = "error: program is not linked"
		return
	}
	if log, ok := d.takeFailure(glprogram.PhaseValidate); ok {
		p.log = log
		return
	}

	var msgs []string
	for _, m := range p.modules {
		verrs, err := naga.Validate(m)
		if err != nil {
			msgs = append(msgs, err.Error())
			continue
		}
		for i := range verrs {
			msgs = append(msgs, verrs[i].Error())
		}
	}
	if len(msgs) > 0 {
		p.log = strings.Join(msgs, "\n")
		return
	}
	p.log = ""
	p.validated = true
}

// Status implements glprogram.StatusReporter for programs.
func (d *Driver) Status(h glprogram.Handle, phase glprogram.Phase) bool {
	p := d.program(h)
	if p == nil {
		return false
	}
	switch phase {
	case glprogram.PhaseLink:
		return p.linked
	case glprogram.PhaseValidate:
		return p.validated
	}
	return false
}

// InfoLogLength implements glprogram.StatusReporter for programs.
func (d *Driver) InfoLogLength(h glprogram.Handle) int32 {
	if p := d.program(h); p != nil {
		return logLength(p.log)
	}
	return 0
}

// InfoLog implements glprogram.StatusReporter for programs.
func (d *Driver) InfoLog(h glprogram.Handle, buf []byte) int {
	if p := d.program(h); p != nil {
		return copyLog(buf, p.log)
	}
	return 0
}

// ActiveAttributeCount implements glprogram.Driver.
func (d *Driver) ActiveAttributeCount(h glprogram.Handle) int32 {
	if p := d.program(h); p != nil && p.linked {
		return int32(len(p.attributes))
	}
	return 0
}

// ActiveAttribute implements glprogram.Driver. Attributes are ordered by
// location.
func (d *Driver) ActiveAttribute(h glprogram.Handle, index uint32) glprogram.ActiveAttribute {
	p := d.program(h)
	if p == nil || !p.linked || int(index) >= len(p.attributes) {
		return glprogram.ActiveAttribute{}
	}
	return p.attributes[index]
}

// AttributeLocation implements glprogram.Driver.
func (d *Driver) AttributeLocation(h glprogram.Handle, name string) int32 {
	p := d.program(h)
	if p == nil || !p.linked {
		return glprogram.NoLocation
	}
	if loc, ok := p.attribLocs[name]; ok {
		return loc
	}
	return glprogram.NoLocation
}

// UniformLocation implements glprogram.Driver.
func (d *Driver) UniformLocation(h glprogram.Handle, name string) int32 {
	p := d.program(h)
	if p == nil || !p.linked {
		return glprogram.NoLocation
	}
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	return glprogram.NoLocation
}

// BindAttributeLocation implements glprogram.Driver.
func (d *Driver) BindAttributeLocation(h glprogram.Handle, index uint32, name string) {
	if p := d.program(h); p != nil {
		p.bindings[name] = index
	}
}

// UseProgram implements glprogram.Driver.
func (d *Driver) UseProgram(h glprogram.Handle) {
	if h != glprogram.NoProgram && d.program(h) == nil {
		return
	}
	d.active = h
}
