package glprogram

import (
	"context"
	"fmt"
	"log/slog"
)

// Diagnostics receives human-readable diagnostic lines, such as the active
// attribute dump written before an AttributeNotFoundError.
type Diagnostics interface {
	Logf(format string, args ...any)
}

// DiagnosticsFunc adapts a printf-style function to Diagnostics.
type DiagnosticsFunc func(format string, args ...any)

// Logf calls f(format, args...).
func (f DiagnosticsFunc) Logf(format string, args ...any) { f(format, args...) }

// SlogDiagnostics returns a Diagnostics that writes each line to l at level.
// A nil l writes to the package logger as it is at the time of the call.
func SlogDiagnostics(l *slog.Logger, level slog.Level) Diagnostics {
	return slogDiagnostics{logger: l, level: level}
}

type slogDiagnostics struct {
	logger *slog.Logger
	level  slog.Level
}

func (d slogDiagnostics) Logf(format string, args ...any) {
	l := d.logger
	if l == nil {
		l = Logger()
	}
	ctx := context.Background()
	if !l.Enabled(ctx, d.level) {
		return
	}
	l.Log(ctx, d.level, fmt.Sprintf(format, args...))
}
