// Package glsltrans translates WGSL stages into GLSL 3.30 core for the
// OpenGL backend.
//
// Vertex inputs keep their WGSL names (GLSL keywords get an underscore
// prefix), so attribute queries by name work on translated stages. Uniform
// variables become std140 blocks and cannot be queried by their WGSL names.
package glsltrans

import (
	"errors"
	"fmt"

	"github.com/gogpu/glprogram"
	"github.com/gogpu/naga"
	"github.com/gogpu/naga/glsl"
	"github.com/gogpu/naga/ir"
)

// ErrNoEntryPoint is returned when the source has no entry point for the
// requested stage kind. WGSL has no geometry stage, so geometry always fails.
var ErrNoEntryPoint = errors.New("glsltrans: no entry point for stage")

var entryStages = map[glprogram.StageKind]ir.ShaderStage{
	glprogram.StageVertex:   ir.StageVertex,
	glprogram.StageFragment: ir.StageFragment,
}

// Result is a translated stage.
type Result struct {
	Source string
	// EntryPoint is the WGSL entry point that became GLSL main.
	EntryPoint string
	// Extensions lists the GLSL extensions the source enables.
	Extensions []string
}

// Translate parses WGSL source and emits the GLSL of the entry point for
// kind. Vertex stages get their clip space adjusted to GL conventions.
func Translate(kind glprogram.StageKind, source string) (*Result, error) {
	want, ok := entryStages[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrNoEntryPoint, kind)
	}

	ast, err := naga.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("glsltrans: parse: %w", err)
	}
	module, err := naga.LowerWithSource(ast, source)
	if err != nil {
		return nil, fmt.Errorf("glsltrans: lower: %w", err)
	}

	entry := ""
	for _, ep := range module.EntryPoints {
		if ep.Stage == want {
			entry = ep.Name
			break
		}
	}
	if entry == "" {
		return nil, fmt.Errorf("%w: %v", ErrNoEntryPoint, kind)
	}

	opts := glsl.DefaultOptions()
	opts.EntryPoint = entry
	if kind == glprogram.StageVertex {
		opts.WriterFlags |= glsl.WriterFlagAdjustCoordinateSpace
	}
	code, info, err := glsl.Compile(module, opts)
	if err != nil {
		return nil, fmt.Errorf("glsltrans: %s entry point %q: %w", kind, entry, err)
	}
	glprogram.Logger().Debug("glsltrans: translated stage", "kind", kind, "entry", entry, "bytes", len(code))
	return &Result{Source: code, EntryPoint: entry, Extensions: info.UsedExtensions}, nil
}
