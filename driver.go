package glprogram

// Handle is the name a driver uses for a program or stage object.
type Handle uint32

// NoProgram is the handle passed to UseProgram to clear the active program.
const NoProgram Handle = 0

// NoLocation is returned by a driver for an attribute or uniform name that
// is not active in a linked program.
const NoLocation int32 = -1

// Phase selects which driver status a check looks at.
type Phase uint32

const (
	// PhaseLink is the outcome of the last link request.
	PhaseLink Phase = iota + 1
	// PhaseValidate is the outcome of the last validate request.
	PhaseValidate
	// PhaseCompile is the outcome of a stage compilation.
	PhaseCompile
)

// String returns the task name used in failure messages.
func (p Phase) String() string {
	switch p {
	case PhaseLink:
		return "linking"
	case PhaseValidate:
		return "validation"
	case PhaseCompile:
		return "compilation"
	default:
		return "<unknown task>"
	}
}

// ActiveAttribute describes an attribute a linked program actually uses.
type ActiveAttribute struct {
	Name string
	Type AttribType
	Size int32
}

// StatusReporter reports the outcome of a link, validate or compile request
// on a driver object, together with its info log.
//
// The info log is read in two steps, like in OpenGL: InfoLogLength reports
// the buffer size needed (including a terminating NUL, 0 for an empty log)
// and InfoLog copies at most len(buf)-1 bytes into buf and returns the number
// of bytes written, excluding the terminator.
type StatusReporter interface {
	Status(h Handle, phase Phase) bool
	InfoLogLength(h Handle) int32
	InfoLog(h Handle, buf []byte) int
}

// Driver is the graphics driver capability a Program is built on.
//
// All calls happen on the goroutine that owns the driver's context; a Driver
// is not expected to be safe for concurrent use.
type Driver interface {
	StatusReporter

	CreateProgram() Handle
	DeleteProgram(h Handle)
	AttachShader(program, stage Handle)
	DetachShader(program, stage Handle)
	LinkProgram(h Handle)
	ValidateProgram(h Handle)

	ActiveAttributeCount(h Handle) int32
	ActiveAttribute(h Handle, index uint32) ActiveAttribute

	// AttributeLocation and UniformLocation return NoLocation for names
	// that are not active.
	AttributeLocation(h Handle, name string) int32
	UniformLocation(h Handle, name string) int32

	// BindAttributeLocation takes effect at the next link.
	BindAttributeLocation(h Handle, index uint32, name string)

	// UseProgram makes h the active program; NoProgram clears it.
	UseProgram(h Handle)
}
