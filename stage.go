package glprogram

import "fmt"

// StageKind classifies a compiled shader stage.
type StageKind uint8

const (
	StageVertex StageKind = iota
	StageFragment
	StageGeometry

	numStageKinds
)

// String returns the lowercase stage name.
func (k StageKind) String() string {
	switch k {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	case StageGeometry:
		return "geometry"
	default:
		return fmt.Sprintf("StageKind(%d)", uint8(k))
	}
}

// Valid reports whether k is one of the known stage kinds.
func (k StageKind) Valid() bool {
	return k < numStageKinds
}

// Stage is a compiled shader stage. Stages are owned by whoever compiled
// them; a Program only keeps a reference and never releases them.
type Stage interface {
	Kind() StageKind
	Handle() Handle
}
