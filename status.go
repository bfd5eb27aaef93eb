package glprogram

import "sync"

// logBuffers recycles info log buffers between checks.
var logBuffers = sync.Pool{
	New: func() any {
		b := make([]byte, 0, 1024)
		return &b
	},
}

func getLogBuffer(n int) *[]byte {
	bp := logBuffers.Get().(*[]byte)
	if cap(*bp) < n {
		*bp = make([]byte, n)
	}
	*bp = (*bp)[:n]
	return bp
}

func putLogBuffer(bp *[]byte) {
	*bp = (*bp)[:0]
	logBuffers.Put(bp)
}

// CheckStatus checks the given phase status of object h.
//
// On failure it reads the info log (length first, then content) and returns
// a *StatusError carrying both the phase and the log text. The log buffer is
// returned to its pool before CheckStatus returns, on every path.
//
// Drivers use CheckStatus with PhaseCompile for their stage objects too.
func CheckStatus(r StatusReporter, h Handle, phase Phase) error {
	if r.Status(h, phase) {
		return nil
	}

	n := r.InfoLogLength(h)
	if n < 0 {
		n = 0
	}
	bp := getLogBuffer(int(n))
	defer putLogBuffer(bp)

	written := r.InfoLog(h, *bp)
	written = max(0, min(written, len(*bp)))

	return &StatusError{Phase: phase, Log: string((*bp)[:written])}
}
