package glprogram_test

import (
	"errors"
	"testing"

	"github.com/gogpu/glprogram"
	"github.com/gogpu/glprogram/backend/soft"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationsResolver(t *testing.T) {
	d := soft.New()
	extra := &glprogram.Locations{
		Attributes: []string{"uv"},
		Uniforms:   []string{"tint", "texture"},
	}
	p := newProgram(t, d, meshVertexWGSL, fragmentWGSL,
		glprogram.WithResolver(glprogram.Chain(glprogram.DefaultResolver, extra)))

	require.NoError(t, p.Link())

	loc, ok := extra.Attribute("uv")
	assert.True(t, ok)
	assert.Equal(t, d.AttributeLocation(p.Handle(), "uv"), loc)

	loc, ok = extra.Uniform("tint")
	assert.True(t, ok)
	assert.Equal(t, int32(1), loc)

	// resolved, but absent from the shaders
	loc, ok = extra.Uniform("texture")
	assert.True(t, ok)
	assert.Equal(t, glprogram.NoLocation, loc)

	_, ok = extra.Attribute("normal")
	assert.False(t, ok)

	assert.Equal(t, int32(0), p.Slots().Position)
	assert.Equal(t, int32(0), p.Slots().MVP)
}

func TestLocationsResolverMissingAttribute(t *testing.T) {
	d := soft.New()
	diag := &recorder{}
	extra := &glprogram.Locations{Attributes: []string{"normal"}}
	p := newProgram(t, d, meshVertexWGSL, fragmentWGSL,
		glprogram.WithDiagnostics(diag),
		glprogram.WithResolver(extra))

	err := p.Link()
	var nf *glprogram.AttributeNotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "normal", nf.Name)
	assert.Equal(t, 1, diag.count(dumpHeader))

	_, ok := extra.Attribute("normal")
	assert.False(t, ok)
}

func TestChainStopsAtFirstError(t *testing.T) {
	d := soft.New()
	boom := errors.New("boom")
	var ran []string
	step := func(name string, err error) glprogram.Resolver {
		return glprogram.ResolverFunc(func(*glprogram.Program) error {
			ran = append(ran, name)
			return err
		})
	}
	p := newProgram(t, d, vertexWGSL, fragmentWGSL,
		glprogram.WithResolver(glprogram.Chain(step("a", nil), nil, step("b", boom), step("c", nil))))

	assert.ErrorIs(t, p.Link(), boom)
	assert.Equal(t, []string{"a", "b"}, ran)

	// a resolver failure still leaves the program linked and detached
	assert.True(t, p.Linked())
	assert.Empty(t, d.Attached(p.Handle()))
}

func TestSlotResolverCustomNames(t *testing.T) {
	d := soft.New()
	p := newProgram(t, d, meshVertexWGSL, fragmentWGSL,
		glprogram.WithResolver(glprogram.SlotResolver{PositionName: "uv", MVPName: "tint"}))

	require.NoError(t, p.Link())
	assert.Equal(t, glprogram.Slots{Position: 1, MVP: 1}, p.Slots())
}

func TestSlotResolverMissingMVP(t *testing.T) {
	d := soft.New()
	p := newProgram(t, d, vertexWGSL, fragmentWGSL,
		glprogram.WithResolver(glprogram.SlotResolver{PositionName: glprogram.PositionAttribute, MVPName: "model_view"}))

	require.NoError(t, p.Link())
	assert.Equal(t, int32(0), p.Slots().Position)
	assert.Equal(t, glprogram.NoLocation, p.Slots().MVP)
}
