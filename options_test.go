package glprogram

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nullDriver is a Driver whose programs always link, with no attributes.
// It records the handles passed to UseProgram.
type nullDriver struct {
	next Handle
	used []Handle
}

func (d *nullDriver) CreateProgram() Handle {
	d.next++
	return d.next
}

func (d *nullDriver) UseProgram(h Handle) {
	d.used = append(d.used, h)
}

func (d *nullDriver) Status(Handle, Phase) bool                      { return true }
func (d *nullDriver) InfoLogLength(Handle) int32                     { return 0 }
func (d *nullDriver) InfoLog(Handle, []byte) int                     { return 0 }
func (d *nullDriver) DeleteProgram(Handle)                           {}
func (d *nullDriver) AttachShader(Handle, Handle)                    {}
func (d *nullDriver) DetachShader(Handle, Handle)                    {}
func (d *nullDriver) LinkProgram(Handle)                             {}
func (d *nullDriver) ValidateProgram(Handle)                         {}
func (d *nullDriver) ActiveAttributeCount(Handle) int32              { return 1 }
func (d *nullDriver) ActiveAttribute(Handle, uint32) ActiveAttribute { return ActiveAttribute{Name: "a"} }
func (d *nullDriver) AttributeLocation(Handle, string) int32         { return NoLocation }
func (d *nullDriver) UniformLocation(Handle, string) int32           { return 3 }
func (d *nullDriver) BindAttributeLocation(Handle, uint32, string)   {}

// TestNewDefaultOptions tests that New installs the standard resolver and
// the logger-backed diagnostics.
func TestNewDefaultOptions(t *testing.T) {
	p := New(&nullDriver{})

	assert.Equal(t, DefaultResolver, p.resolver)
	assert.IsType(t, slogDiagnostics{}, p.diagnostics)
}

// TestDefaultResolverFailsWithoutPosition tests that the standard resolver
// requires the position attribute.
func TestDefaultResolverFailsWithoutPosition(t *testing.T) {
	p := New(&nullDriver{})

	err := p.Link()
	var nf *AttributeNotFoundError
	require.True(t, errors.As(err, &nf), "Link() = %v", err)
	assert.Equal(t, PositionAttribute, nf.Name)
}

func TestWithResolverNil(t *testing.T) {
	p := New(&nullDriver{}, WithResolver(nil))

	require.NoError(t, p.Link())
	assert.Equal(t, Slots{Position: NoLocation, MVP: NoLocation}, p.Slots())
}

func TestWithResolverCustom(t *testing.T) {
	calls := 0
	var seen State
	r := ResolverFunc(func(p *Program) error {
		calls++
		seen = p.State()
		return nil
	})

	p := New(&nullDriver{}, WithResolver(r))
	require.NoError(t, p.Link())
	assert.Equal(t, 1, calls)
	assert.Equal(t, StateLinked, seen)
}

func TestWithDiagnosticsNil(t *testing.T) {
	p := New(&nullDriver{}, WithDiagnostics(nil))
	assert.IsType(t, slogDiagnostics{}, p.diagnostics)
}

func TestWithDiagnosticsFunc(t *testing.T) {
	var lines []string
	p := New(&nullDriver{}, WithDiagnostics(DiagnosticsFunc(func(format string, args ...any) {
		lines = append(lines, format)
	})))

	p.DumpActiveAttributes()
	assert.Equal(t, []string{
		"dumping shader program active attribute list:",
		"-> attribute %s : type=%s, size=%d",
	}, lines)
}

// TestDeletedProgramSkipsDriver tests that a deleted program no longer
// passes its handle to the driver.
func TestDeletedProgramSkipsDriver(t *testing.T) {
	d := &nullDriver{}
	var lines []string
	p := New(d, WithResolver(nil), WithDiagnostics(DiagnosticsFunc(func(format string, args ...any) {
		lines = append(lines, format)
	})))
	require.NoError(t, p.Link())

	p.Use()
	assert.Equal(t, int32(3), p.UniformLocation("tint"))
	assert.Len(t, p.ActiveAttributes(), 1)

	p.Delete()
	p.Use()
	assert.Equal(t, NoLocation, p.UniformLocation("tint"))
	assert.Empty(t, p.ActiveAttributes())

	p.DumpActiveAttributes()
	assert.Equal(t, []string{"dumping shader program active attribute list:"}, lines)

	// unbinding stays allowed
	p.StopUsing()
	assert.Equal(t, []Handle{p.Handle(), NoProgram}, d.used)
}

// TestSlogDiagnosticsFollowsLogger tests that a nil logger resolves the
// package logger on every line, not once at construction.
func TestSlogDiagnosticsFollowsLogger(t *testing.T) {
	d := SlogDiagnostics(nil, slog.LevelInfo)

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer SetLogger(nil)

	d.Logf("-> attribute %s : type=%s, size=%d", "uv", AttribFloatVec2, 1)
	assert.Contains(t, buf.String(), "-> attribute uv : type=vec2, size=1")
}

func TestSlogDiagnosticsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))

	SlogDiagnostics(l, slog.LevelInfo).Logf("hidden")
	assert.Zero(t, buf.Len(), "info line written at warn level: %q", buf.String())

	SlogDiagnostics(l, slog.LevelError).Logf("shown %d", 1)
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "shown 1")
}
