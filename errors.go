package glprogram

import (
	"errors"
	"fmt"
)

var (
	// ErrLink matches a StatusError for the linking phase.
	ErrLink = errors.New("glprogram: link failed")

	// ErrValidate matches a StatusError for the validation phase.
	ErrValidate = errors.New("glprogram: validation failed")

	// ErrCompile matches a StatusError for the compilation phase.
	ErrCompile = errors.New("glprogram: compilation failed")

	// ErrAlreadyLinked is returned by Link on a program that already linked.
	ErrAlreadyLinked = errors.New("glprogram: program is already linked")

	// ErrAttachAfterLink is returned by Attach once the program is linked.
	ErrAttachAfterLink = errors.New("glprogram: cannot attach a stage to a linked program")

	// ErrNilStage is returned by Attach for a nil stage.
	ErrNilStage = errors.New("glprogram: nil stage")

	// ErrUnknownStageKind is returned by Attach for a stage whose kind is
	// not vertex, fragment or geometry.
	ErrUnknownStageKind = errors.New("glprogram: unknown stage kind")

	// ErrDeleted is returned by operations on a deleted program.
	ErrDeleted = errors.New("glprogram: program was deleted")
)

// StatusError reports a driver-side failure of a link, validate or compile
// request. Log is the driver's info log, verbatim.
type StatusError struct {
	Phase Phase
	Log   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("glprogram: program %s failed\n%s", e.Phase, e.Log)
}

// Unwrap returns the sentinel for the failed phase, so callers can test
// with errors.Is(err, ErrLink) and friends. Unknown phases unwrap to nil.
func (e *StatusError) Unwrap() error {
	switch e.Phase {
	case PhaseLink:
		return ErrLink
	case PhaseValidate:
		return ErrValidate
	case PhaseCompile:
		return ErrCompile
	}
	return nil
}

// AttributeNotFoundError reports an attribute that is absent from a linked
// program or was optimized out by the driver's compiler.
type AttributeNotFoundError struct {
	Name string
}

func (e *AttributeNotFoundError) Error() string {
	return fmt.Sprintf("glprogram: queried attribute %q not found or not active", e.Name)
}

// AlreadyLinkedError reports an attribute binding requested after link.
type AlreadyLinkedError struct {
	Name     string
	Location uint32
}

func (e *AlreadyLinkedError) Error() string {
	return fmt.Sprintf("glprogram: assigned attribute %q = %d after program was linked", e.Name, e.Location)
}

// PrematureQueryError reports an attribute location query before link.
type PrematureQueryError struct {
	Name string
}

func (e *PrematureQueryError) Error() string {
	return fmt.Sprintf("glprogram: queried attribute %q before program was linked", e.Name)
}
