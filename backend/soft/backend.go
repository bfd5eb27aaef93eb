package soft

import (
	"fmt"

	"github.com/gogpu/glprogram"
	"github.com/gogpu/glprogram/backend"
)

// init registers the soft backend on package import.
func init() {
	backend.Register(backend.BackendSoft, func() backend.Backend {
		return NewBackend()
	})
}

// Backend adapts a Driver to backend.Backend.
type Backend struct {
	driver *Driver
}

// NewBackend creates a soft backend with a fresh driver.
func NewBackend() *Backend {
	return &Backend{}
}

// Name returns the backend identifier.
func (b *Backend) Name() string { return backend.BackendSoft }

// Init creates the driver. It never fails.
func (b *Backend) Init() error {
	if b.driver == nil {
		b.driver = New()
	}
	return nil
}

// Close drops the driver and everything created on it.
func (b *Backend) Close() { b.driver = nil }

// Driver returns the underlying *Driver as a glprogram.Driver, or nil
// before Init.
func (b *Backend) Driver() glprogram.Driver {
	if b.driver == nil {
		return nil
	}
	return b.driver
}

// CompileStage compiles WGSL source.
func (b *Backend) CompileStage(kind glprogram.StageKind, source string) (glprogram.Stage, error) {
	if b.driver == nil {
		return nil, backend.ErrNotInitialized
	}
	s, err := b.driver.CompileStage(kind, source)
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
