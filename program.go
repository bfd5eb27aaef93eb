package glprogram

import "fmt"

// State is the lifecycle state of a Program.
type State uint8

const (
	// StateCreated is a fresh program with no stage attached.
	StateCreated State = iota
	// StateAttaching is a program with at least one attached stage.
	StateAttaching
	// StateLinked is terminal: the program linked and validated.
	StateLinked
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateAttaching:
		return "attaching"
	case StateLinked:
		return "linked"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Program is a driver-side shader program composed from up to one stage of
// each kind.
//
// A Program owns its driver handle and releases it in Delete. Stages are
// only referenced. Attribute bindings can be changed until the program is
// linked; attribute locations can be queried only afterwards.
//
// A Program is not safe for concurrent use; all calls belong on the
// goroutine that owns the driver's context.
type Program struct {
	driver Driver
	handle Handle
	state  State

	stages [numStageKinds]Stage

	resolver    Resolver
	diagnostics Diagnostics
	slots       Slots

	deleted bool
}

// New creates an empty, unlinked program on d.
func New(d Driver, opts ...Option) *Program {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	p := &Program{
		driver:      d,
		handle:      d.CreateProgram(),
		state:       StateCreated,
		resolver:    o.resolver,
		diagnostics: o.diagnostics,
		slots:       Slots{Position: NoLocation, MVP: NoLocation},
	}
	Logger().Debug("glprogram: program created", "program", p.handle)
	return p
}

// NewWithStages creates a program and attaches s0 and s1. The program is
// not linked.
func NewWithStages(d Driver, s0, s1 Stage, opts ...Option) (*Program, error) {
	p := New(d, opts...)
	for _, s := range []Stage{s0, s1} {
		if err := p.Attach(s); err != nil {
			p.Delete()
			return nil, err
		}
	}
	return p, nil
}

// Handle returns the driver handle of the program.
func (p *Program) Handle() Handle { return p.handle }

// State returns the lifecycle state.
func (p *Program) State() State { return p.state }

// Linked reports whether Link succeeded.
func (p *Program) Linked() bool { return p.state == StateLinked }

// Stage returns the stage referenced for kind, or nil.
func (p *Program) Stage(kind StageKind) Stage {
	if !kind.Valid() {
		return nil
	}
	return p.stages[kind]
}

// Slots returns the locations cached by a SlotResolver. Both are
// NoLocation until such a resolver ran.
func (p *Program) Slots() Slots { return p.slots }

// Resolver returns the post-link hook of the program.
func (p *Program) Resolver() Resolver { return p.resolver }

// Attach references s as the program's stage of its kind and attaches it
// on the driver. A stage already referenced for that kind is detached from
// the driver first, so only the newest stage of each kind takes part in
// the link.
func (p *Program) Attach(s Stage) error {
	switch {
	case p.deleted:
		return ErrDeleted
	case s == nil:
		return ErrNilStage
	case p.state == StateLinked:
		return ErrAttachAfterLink
	}
	kind := s.Kind()
	if !kind.Valid() {
		return fmt.Errorf("%w: %v", ErrUnknownStageKind, kind)
	}

	if prev := p.stages[kind]; prev != nil {
		p.driver.DetachShader(p.handle, prev.Handle())
	}
	p.stages[kind] = s
	p.driver.AttachShader(p.handle, s.Handle())
	p.state = StateAttaching
	return nil
}

// Link links and validates the program, then runs the post-link resolver
// and detaches the stages from the driver. The stage objects themselves are
// left alone.
//
// A driver-side link or validation failure returns a *StatusError and
// leaves the program unlinked with its stages attached. Once linked, the
// program stays linked even if the resolver fails; the resolver's error is
// returned. Link on a linked program returns ErrAlreadyLinked.
func (p *Program) Link() error {
	switch {
	case p.deleted:
		return ErrDeleted
	case p.state == StateLinked:
		return ErrAlreadyLinked
	}

	p.driver.LinkProgram(p.handle)
	if err := CheckStatus(p.driver, p.handle, PhaseLink); err != nil {
		return err
	}
	p.driver.ValidateProgram(p.handle)
	if err := CheckStatus(p.driver, p.handle, PhaseValidate); err != nil {
		return err
	}

	p.state = StateLinked
	defer p.detachStages()

	if err := p.resolver.Resolve(p); err != nil {
		Logger().Warn("glprogram: slot resolution failed", "program", p.handle, "err", err)
		return err
	}
	Logger().Debug("glprogram: program linked", "program", p.handle,
		"position", p.slots.Position, "mvp", p.slots.MVP)
	return nil
}

func (p *Program) detachStages() {
	for _, s := range p.stages {
		if s != nil {
			p.driver.DetachShader(p.handle, s.Handle())
		}
	}
}

// Use makes this the driver's active program. It does nothing once the
// program is deleted.
func (p *Program) Use() {
	if p.deleted {
		return
	}
	p.driver.UseProgram(p.handle)
}

// StopUsing clears the driver's active program. It still reaches the
// driver after Delete: a GL program deleted while in use is only freed
// once it is no longer active.
func (p *Program) StopUsing() {
	p.driver.UseProgram(NoProgram)
}

// UniformLocation returns the driver's location for a uniform. Unknown
// names and deleted programs return NoLocation; that is not an error here.
func (p *Program) UniformLocation(name string) int32 {
	if p.deleted {
		return NoLocation
	}
	return p.driver.UniformLocation(p.handle, name)
}

// AttributeLocation returns the location of an active attribute of the
// linked program.
//
// Before link it returns a *PrematureQueryError. If the attribute is not
// active, the active attributes are dumped to the diagnostics sink and an
// *AttributeNotFoundError is returned.
func (p *Program) AttributeLocation(name string) (int32, error) {
	switch {
	case p.deleted:
		return NoLocation, ErrDeleted
	case p.state != StateLinked:
		return NoLocation, &PrematureQueryError{Name: name}
	}

	loc := p.driver.AttributeLocation(p.handle, name)
	if loc == NoLocation {
		p.DumpActiveAttributes()
		return NoLocation, &AttributeNotFoundError{Name: name}
	}
	return loc, nil
}

// SetAttributeLocation binds an attribute name to a location. The binding
// takes effect when the program links, so it is rejected with an
// *AlreadyLinkedError on a linked program.
func (p *Program) SetAttributeLocation(name string, location uint32) error {
	switch {
	case p.deleted:
		return ErrDeleted
	case p.state == StateLinked:
		return &AlreadyLinkedError{Name: name, Location: location}
	}
	p.driver.BindAttributeLocation(p.handle, location, name)
	return nil
}

// ActiveAttributes returns the attributes the driver reports as active, in
// driver order. It is empty before link and after Delete.
func (p *Program) ActiveAttributes() []ActiveAttribute {
	if p.deleted {
		return nil
	}
	n := p.driver.ActiveAttributeCount(p.handle)
	if n <= 0 {
		return nil
	}
	attrs := make([]ActiveAttribute, 0, n)
	for i := int32(0); i < n; i++ {
		attrs = append(attrs, p.driver.ActiveAttribute(p.handle, uint32(i)))
	}
	return attrs
}

// DumpActiveAttributes writes the attributes the driver reports as active
// to the diagnostics sink, one line each after a header line. A deleted
// program writes the header only.
func (p *Program) DumpActiveAttributes() {
	p.diagnostics.Logf("dumping shader program active attribute list:")
	for _, a := range p.ActiveAttributes() {
		p.diagnostics.Logf("-> attribute %s : type=%s, size=%d", a.Name, a.Type, a.Size)
	}
}

// Delete releases the driver program. Calling Delete again does nothing.
func (p *Program) Delete() {
	if p.deleted {
		return
	}
	p.driver.DeleteProgram(p.handle)
	p.deleted = true
	Logger().Debug("glprogram: program deleted", "program", p.handle)
}
