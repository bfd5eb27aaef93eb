package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gogpu/glprogram"
	"github.com/gogpu/glprogram/backend"
	"github.com/gogpu/glprogram/internal/manifest"
)

// prober builds manifest programs on a backend and writes a report.
type prober struct {
	out     io.Writer
	backend backend.Backend

	// files are the paths read by the last probe, for watching.
	files []string
}

// probe loads the manifest and builds each of its programs. It reports
// whether all of them linked and resolved.
func (p *prober) probe(path string) bool {
	p.files = []string{path}

	m, err := manifest.Load(path)
	if err != nil {
		fmt.Fprintf(p.out, "%v\n", err)
		return false
	}
	ok := true
	for _, prog := range m.Programs {
		for _, sf := range prog.Stages() {
			p.files = append(p.files, sf.Path)
		}
		if err := p.build(prog); err != nil {
			fmt.Fprintf(p.out, "%s: FAILED\n%s\n", prog.Name, indent(err.Error()))
			ok = false
		}
	}
	return ok
}

// build compiles, links and reports one program, then releases it.
func (p *prober) build(mp *manifest.Program) error {
	var stages []glprogram.Stage
	defer func() {
		for _, s := range stages {
			if err := p.backend.DeleteStage(s); err != nil {
				glprogram.Logger().Warn("glprobe: delete stage", "err", err)
			}
		}
	}()
	for _, sf := range mp.Stages() {
		src, err := os.ReadFile(sf.Path)
		if err != nil {
			return err
		}
		s, err := p.backend.CompileStage(sf.Kind, string(src))
		if err != nil {
			return fmt.Errorf("%s stage %s: %w", sf.Kind, sf.Path, err)
		}
		stages = append(stages, s)
	}

	resolver, extra := mp.Resolver()
	diag := glprogram.DiagnosticsFunc(func(format string, args ...any) {
		fmt.Fprintf(p.out, "  "+format+"\n", args...)
	})
	prog := glprogram.New(p.backend.Driver(),
		glprogram.WithResolver(resolver),
		glprogram.WithDiagnostics(diag))
	defer prog.Delete()

	for _, s := range stages {
		if err := prog.Attach(s); err != nil {
			return err
		}
	}
	for _, a := range mp.Attributes {
		if err := prog.SetAttributeLocation(a.Name, a.Location); err != nil {
			return err
		}
	}

	if err := prog.Link(); err != nil {
		return err
	}

	slots := prog.Slots()
	fmt.Fprintf(p.out, "%s: %s, handle %d\n", mp.Name, prog.State(), prog.Handle())
	fmt.Fprintf(p.out, "  position %s = %d\n", mp.PositionAttribute, slots.Position)
	fmt.Fprintf(p.out, "  mvp %s = %d\n", mp.MVPUniform, slots.MVP)
	for _, name := range extra.Attributes {
		loc, _ := extra.Attribute(name)
		fmt.Fprintf(p.out, "  attribute %s = %d\n", name, loc)
	}
	for _, name := range extra.Uniforms {
		loc, _ := extra.Uniform(name)
		fmt.Fprintf(p.out, "  uniform %s = %d\n", name, loc)
	}
	prog.DumpActiveAttributes()
	for _, a := range prog.ActiveAttributes() {
		fmt.Fprintf(p.out, "  format %s = %s\n", a.Name, vertexFormat(a.Type))
	}
	return nil
}

// vertexFormat names the vertex buffer format feeding an attribute type,
// with its byte size.
func vertexFormat(t glprogram.AttribType) string {
	f, ok := t.VertexFormat()
	if !ok {
		return "none"
	}
	return fmt.Sprintf("%s (%d bytes)", f, f.Size())
}

func indent(s string) string {
	return "  " + strings.ReplaceAll(strings.TrimRight(s, "\n"), "\n", "\n  ")
}
