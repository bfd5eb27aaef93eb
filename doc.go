// Package glprogram manages the lifecycle of GPU shader programs.
//
// # Overview
//
// A [Program] is composed from up to one compiled [Stage] of each kind
// (vertex, fragment, geometry). It is linked and validated once, after which
// its named attribute and uniform slots can be resolved into driver-assigned
// locations.
//
// # Quick Start
//
//	d := soft.New() // or opengl.New() on a current GL context
//
//	vs, err := d.CompileStage(glprogram.StageVertex, vertexSource)
//	...
//	fs, err := d.CompileStage(glprogram.StageFragment, fragmentSource)
//	...
//
//	p, err := glprogram.NewWithStages(d, vs, fs)
//	if err != nil {
//	    return err
//	}
//	defer p.Delete()
//
//	if err := p.Link(); err != nil {
//	    return err
//	}
//	p.Use()
//	fmt.Println(p.Slots().Position, p.Slots().MVP)
//
// # Lifecycle
//
// A program moves from [StateCreated] to [StateAttaching] on its first
// [Program.Attach] and to [StateLinked] on a successful [Program.Link]. The
// linked state is terminal:
//   - [Program.SetAttributeLocation] is only accepted before link
//   - [Program.AttributeLocation] is only answered after link
//   - [Program.Link] on a linked program returns [ErrAlreadyLinked]
//
// Link detaches the stages from the driver once it is done; the stage
// objects belong to the caller and are never released by the program.
//
// # Slot Resolution
//
// Right after linking, the program runs its [Resolver]. The default one
// resolves the "vertex_position" attribute and the "mvp_matrix" uniform into
// [Program.Slots]. Program kinds with other slots pass their own resolver
// with [WithResolver], typically chained after [DefaultResolver].
//
// # Drivers
//
// The driver is an explicit dependency implementing [Driver]. Two are
// provided:
//   - backend/soft: a pure Go reference driver that reflects WGSL stages
//     through naga; no GPU needed
//   - backend/opengl: OpenGL 3.3 core through go-gl
//
// # Errors
//
// Driver-reported failures come back as [*StatusError] carrying the phase
// and the driver's info log; use errors.Is with [ErrLink], [ErrValidate] or
// [ErrCompile]. Slot and state violations use [*AttributeNotFoundError],
// [*AlreadyLinkedError] and [*PrematureQueryError].
package glprogram
