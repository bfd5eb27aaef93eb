package glprogram

// Names of the slots every standard program resolves after linking.
const (
	PositionAttribute = "vertex_position"
	MVPUniform        = "mvp_matrix"
)

// Resolver is the post-link hook of a Program. Resolve runs once, right
// after the program enters StateLinked, and resolves whatever fixed slots
// the program kind needs.
type Resolver interface {
	Resolve(p *Program) error
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(p *Program) error

// Resolve calls f(p).
func (f ResolverFunc) Resolve(p *Program) error { return f(p) }

// Chain runs resolvers in order and stops at the first error.
func Chain(resolvers ...Resolver) Resolver {
	return ResolverFunc(func(p *Program) error {
		for _, r := range resolvers {
			if r == nil {
				continue
			}
			if err := r.Resolve(p); err != nil {
				return err
			}
		}
		return nil
	})
}

// Slots holds the locations cached by a SlotResolver.
type Slots struct {
	Position int32
	MVP      int32
}

// SlotResolver resolves a vertex position attribute and a model-view-projection
// uniform and caches them in the program's Slots. A missing position
// attribute is an error; a missing MVP uniform is cached as NoLocation.
type SlotResolver struct {
	PositionName string
	MVPName      string
}

// DefaultResolver resolves "vertex_position" and "mvp_matrix".
var DefaultResolver Resolver = SlotResolver{
	PositionName: PositionAttribute,
	MVPName:      MVPUniform,
}

// Resolve implements Resolver.
func (r SlotResolver) Resolve(p *Program) error {
	pos, err := p.AttributeLocation(r.PositionName)
	if err != nil {
		return err
	}
	p.slots = Slots{
		Position: pos,
		MVP:      p.UniformLocation(r.MVPName),
	}
	return nil
}

// Locations resolves an additional set of attribute and uniform names, for
// program kinds that need more than the standard slots.
//
//	tex := &glprogram.Locations{
//	    Attributes: []string{"tex_coordinates"},
//	    Uniforms:   []string{"texture"},
//	}
//	p := glprogram.New(d, glprogram.WithResolver(glprogram.Chain(glprogram.DefaultResolver, tex)))
type Locations struct {
	Attributes []string
	Uniforms   []string

	attributes map[string]int32
	uniforms   map[string]int32
}

// Resolve implements Resolver. Every attribute must be active; uniforms may
// resolve to NoLocation.
func (l *Locations) Resolve(p *Program) error {
	attributes := make(map[string]int32, len(l.Attributes))
	for _, name := range l.Attributes {
		loc, err := p.AttributeLocation(name)
		if err != nil {
			return err
		}
		attributes[name] = loc
	}
	uniforms := make(map[string]int32, len(l.Uniforms))
	for _, name := range l.Uniforms {
		uniforms[name] = p.UniformLocation(name)
	}
	l.attributes = attributes
	l.uniforms = uniforms
	return nil
}

// Attribute returns the cached location of a resolved attribute.
func (l *Locations) Attribute(name string) (int32, bool) {
	loc, ok := l.attributes[name]
	return loc, ok
}

// Uniform returns the cached location of a resolved uniform.
func (l *Locations) Uniform(name string) (int32, bool) {
	loc, ok := l.uniforms[name]
	return loc, ok
}
