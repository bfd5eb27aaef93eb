// Package backend provides a registry of pluggable glprogram drivers.
//
// A backend bundles a [glprogram.Driver] with the stage compiler that goes
// with it, so tools can build programs without knowing which driver they
// run on. Backends register themselves from init():
//
//	import _ "github.com/gogpu/glprogram/backend/soft"
//
// # Backend Selection
//
// Use InitDefault to get the best backend that initializes, or Get to
// request one by name:
//
//	b := backend.Get(backend.BackendSoft)
//	if err := b.Init(); err != nil {
//		log.Fatal(err)
//	}
//	defer b.Close()
//
//	vs, err := b.CompileStage(glprogram.StageVertex, source)
//
// # Available Backends
//
// - "opengl": OpenGL 3.3 core via go-gl; needs a current GL context
// - "soft": pure Go reference driver over naga-reflected WGSL (always available)
package backend
