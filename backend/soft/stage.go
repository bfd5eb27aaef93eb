package soft

import (
	"crypto/sha256"
	"fmt"

	"github.com/gogpu/glprogram"
	"github.com/gogpu/glprogram/internal/cache"
	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"
)

// Stage is a WGSL shader stage compiled by a soft Driver.
type Stage struct {
	kind   glprogram.StageKind
	handle glprogram.Handle

	module   *ir.Module
	compiled bool
	log      string
	deleted  bool
}

// Kind implements glprogram.Stage.
func (s *Stage) Kind() glprogram.StageKind { return s.kind }

// Handle implements glprogram.Stage.
func (s *Stage) Handle() glprogram.Handle { return s.handle }

// Module returns the IR of a compiled stage, or nil.
func (s *Stage) Module() *ir.Module { return s.module }

// entryStages lists the WGSL entry point each stage kind must provide.
// WGSL has no geometry stage, so geometry stages accept any module.
var entryStages = map[glprogram.StageKind]ir.ShaderStage{
	glprogram.StageVertex:   ir.StageVertex,
	glprogram.StageFragment: ir.StageFragment,
}

var entryAttributes = map[ir.ShaderStage]string{
	ir.StageVertex:   "@vertex",
	ir.StageFragment: "@fragment",
	ir.StageCompute:  "@compute",
}

// lowered is the outcome of parsing and lowering one WGSL source.
type lowered struct {
	module *ir.Module
	log    string
}

func lower(source string) lowered {
	ast, err := naga.Parse(source)
	if err != nil {
		return lowered{log: err.Error()}
	}
	module, err := naga.LowerWithSource(ast, source)
	if err != nil {
		return lowered{log: err.Error()}
	}
	return lowered{module: module}
}

// compile records the outcome of lowering source as compile status and
// info log, the way a GL driver does. Identical sources share one module.
func (s *Stage) compile(modules *cache.Cache[[sha256.Size]byte, lowered], source string) {
	l := modules.GetOrCreate(sha256.Sum256([]byte(source)), func() lowered {
		return lower(source)
	})
	if l.module == nil {
		s.log = l.log
		return
	}
	if want, ok := entryStages[s.kind]; ok && !hasEntryPoint(l.module, want) {
		s.log = fmt.Sprintf("error: %s stage has no %s entry point", s.kind, entryAttributes[want])
		return
	}
	s.module = l.module
	s.compiled = true
}

func hasEntryPoint(m *ir.Module, stage ir.ShaderStage) bool {
	for _, ep := range m.EntryPoints {
		if ep.Stage == stage {
			return true
		}
	}
	return false
}

// stageReporter exposes the compile status of a driver's stages.
type stageReporter struct {
	d *Driver
}

func (r stageReporter) Status(h glprogram.Handle, phase glprogram.Phase) bool {
	s := r.d.stages[h]
	return s != nil && !s.deleted && phase == glprogram.PhaseCompile && s.compiled
}

func (r stageReporter) InfoLogLength(h glprogram.Handle) int32 {
	if s := r.d.stages[h]; s != nil {
		return logLength(s.log)
	}
	return 0
}

func (r stageReporter) InfoLog(h glprogram.Handle, buf []byte) int {
	if s := r.d.stages[h]; s != nil {
		return copyLog(buf, s.log)
	}
	return 0
}

// logLength is the GL info log length: room for a NUL terminator, or 0
// for an empty log.
func logLength(log string) int32 {
	if log == "" {
		return 0
	}
	return int32(len(log) + 1)
}

// copyLog writes at most len(buf)-1 bytes of log followed by a NUL and
// returns the number of log bytes written.
func copyLog(buf []byte, log string) int {
	if len(buf) == 0 {
		return 0
	}
	n := copy(buf[:len(buf)-1], log)
	buf[n] = 0
	return n
}
