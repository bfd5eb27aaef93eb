// Package manifest loads HCL files that describe shader programs to build.
//
//	program "mesh" {
//	  vertex   = "mesh.vert.wgsl"
//	  fragment = "${manifest_dir}/shared/tint.frag.wgsl"
//	  uniforms = ["tint"]
//
//	  attribute "uv" {
//	    location = 1
//	  }
//	}
//
// Relative stage paths resolve against the directory of the manifest, which
// is also available to expressions as manifest_dir.
package manifest

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"

	"github.com/gogpu/glprogram"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// ErrInvalid is wrapped by every semantic error of a manifest.
var ErrInvalid = errors.New("manifest: invalid")

// Manifest is a decoded manifest file.
type Manifest struct {
	// Dir is the directory stage paths were resolved against.
	Dir      string
	Programs []*Program
}

// Program describes one shader program.
type Program struct {
	Name     string
	Vertex   string
	Fragment string
	// Geometry is empty when the program has no geometry stage.
	Geometry string

	PositionAttribute string
	MVPUniform        string
	// Uniforms are resolved after link in addition to the MVP uniform.
	Uniforms   []string
	Attributes []Attribute
}

// Attribute is an attribute location bound before link.
type Attribute struct {
	Name     string
	Location uint32
}

// StageFile is a stage source file of a program.
type StageFile struct {
	Kind glprogram.StageKind
	Path string
}

// Stages returns the program's stage files, vertex first.
func (p *Program) Stages() []StageFile {
	stages := []StageFile{
		{Kind: glprogram.StageVertex, Path: p.Vertex},
		{Kind: glprogram.StageFragment, Path: p.Fragment},
	}
	if p.Geometry != "" {
		stages = append(stages, StageFile{Kind: glprogram.StageGeometry, Path: p.Geometry})
	}
	return stages
}

// Resolver returns the post-link resolver for the program: its position
// and MVP slots, then the bound attributes and extra uniforms. The returned
// Locations holds their locations once the program linked.
func (p *Program) Resolver() (glprogram.Resolver, *glprogram.Locations) {
	extra := &glprogram.Locations{Uniforms: p.Uniforms}
	for _, a := range p.Attributes {
		extra.Attributes = append(extra.Attributes, a.Name)
	}
	slots := glprogram.SlotResolver{PositionName: p.PositionAttribute, MVPName: p.MVPUniform}
	return glprogram.Chain(slots, extra), extra
}

type hclFile struct {
	Programs []*hclProgram `hcl:"program,block"`
}

type hclProgram struct {
	Name              string          `hcl:"name,label"`
	Vertex            string          `hcl:"vertex"`
	Fragment          string          `hcl:"fragment"`
	Geometry          *string         `hcl:"geometry,optional"`
	PositionAttribute *string         `hcl:"position_attribute,optional"`
	MVPUniform        *string         `hcl:"mvp_uniform,optional"`
	Uniforms          []string        `hcl:"uniforms,optional"`
	Attributes        []*hclAttribute `hcl:"attribute,block"`
}

type hclAttribute struct {
	Name     string `hcl:"name,label"`
	Location int    `hcl:"location"`
}

// Load reads and decodes the manifest at path.
func Load(path string) (*Manifest, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, diags)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	return decode(path, file, filepath.Dir(abs))
}

// Parse decodes manifest source. Relative paths resolve against dir.
func Parse(filename string, src []byte, dir string) (*Manifest, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", filename, diags)
	}
	return decode(filename, file, dir)
}

func decode(filename string, file *hcl.File, dir string) (*Manifest, error) {
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"manifest_dir": cty.StringVal(dir),
		},
	}
	var parsed hclFile
	if diags := gohcl.DecodeBody(file.Body, evalCtx, &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode manifest %s: %w", filename, diags)
	}

	m := &Manifest{Dir: dir}
	var errs []error
	seen := make(map[string]bool, len(parsed.Programs))
	for _, hp := range parsed.Programs {
		if seen[hp.Name] {
			errs = append(errs, fmt.Errorf("%w: program %q declared twice", ErrInvalid, hp.Name))
			continue
		}
		seen[hp.Name] = true

		p, err := newProgram(hp, dir)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		m.Programs = append(m.Programs, p)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return m, nil
}

func newProgram(hp *hclProgram, dir string) (*Program, error) {
	p := &Program{
		Name:              hp.Name,
		PositionAttribute: glprogram.PositionAttribute,
		MVPUniform:        glprogram.MVPUniform,
		Uniforms:          hp.Uniforms,
	}
	if hp.Vertex == "" || hp.Fragment == "" {
		return nil, fmt.Errorf("%w: program %q needs a vertex and a fragment stage", ErrInvalid, hp.Name)
	}
	p.Vertex = resolve(dir, hp.Vertex)
	p.Fragment = resolve(dir, hp.Fragment)
	if hp.Geometry != nil && *hp.Geometry != "" {
		p.Geometry = resolve(dir, *hp.Geometry)
	}
	if hp.PositionAttribute != nil {
		p.PositionAttribute = *hp.PositionAttribute
	}
	if hp.MVPUniform != nil {
		p.MVPUniform = *hp.MVPUniform
	}

	byLocation := make(map[int]string, len(hp.Attributes))
	names := make(map[string]bool, len(hp.Attributes))
	for _, a := range hp.Attributes {
		switch {
		case a.Location < 0:
			return nil, fmt.Errorf("%w: program %q: attribute %q has negative location %d", ErrInvalid, hp.Name, a.Name, a.Location)
		case uint64(a.Location) > math.MaxUint32:
			return nil, fmt.Errorf("%w: program %q: attribute %q location %d out of range", ErrInvalid, hp.Name, a.Name, a.Location)
		case names[a.Name]:
			return nil, fmt.Errorf("%w: program %q: attribute %q bound twice", ErrInvalid, hp.Name, a.Name)
		}
		if other, ok := byLocation[a.Location]; ok {
			return nil, fmt.Errorf("%w: program %q: attributes %q and %q share location %d", ErrInvalid, hp.Name, other, a.Name, a.Location)
		}
		byLocation[a.Location] = a.Name
		names[a.Name] = true
		p.Attributes = append(p.Attributes, Attribute{Name: a.Name, Location: uint32(a.Location)})
	}
	return p, nil
}

func resolve(dir, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(dir, path)
}
