package backend

import (
	"errors"

	"github.com/gogpu/glprogram"
)

// Backend name constants.
const (
	// BackendSoft is the name of the pure Go reference backend.
	BackendSoft = "soft"
	// BackendOpenGL is the name of the OpenGL 3.3 core backend.
	BackendOpenGL = "opengl"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not available.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNotInitialized is returned when operations are called before Init.
	ErrNotInitialized = errors.New("backend: not initialized")

	// ErrForeignStage is returned by DeleteStage for a stage compiled by
	// another backend.
	ErrForeignStage = errors.New("backend: stage belongs to another backend")
)

// Backend is a glprogram driver together with its stage compiler.
//
// Backends must be registered via Register() and are selected via
// Get() or InitDefault().
type Backend interface {
	// Name returns the backend identifier (e.g., "soft", "opengl").
	Name() string

	// Init initializes the backend. For backends that wrap a GPU API the
	// calling goroutine must own a current context.
	Init() error

	// Close releases all backend resources.
	// The backend should not be used after Close is called.
	Close()

	// Driver returns the driver programs are created on.
	Driver() glprogram.Driver

	// CompileStage compiles source into a stage of the given kind. The
	// source language is backend specific.
	CompileStage(kind glprogram.StageKind, source string) (glprogram.Stage, error)

	// DeleteStage releases a stage created by CompileStage.
	DeleteStage(s glprogram.Stage) error
}
