package glprogram

import "log/slog"

// Option configures a Program during creation.
//
// Example:
//
//	p := glprogram.New(driver,
//	    glprogram.WithResolver(glprogram.Chain(glprogram.DefaultResolver, &texSlots)),
//	    glprogram.WithDiagnostics(glprogram.SlogDiagnostics(logger, slog.LevelWarn)),
//	)
type Option func(*programOptions)

// programOptions holds optional configuration for Program creation.
type programOptions struct {
	resolver    Resolver
	diagnostics Diagnostics
}

// defaultOptions returns the default program options.
func defaultOptions() programOptions {
	return programOptions{
		resolver:    DefaultResolver,
		diagnostics: SlogDiagnostics(nil, slog.LevelInfo),
	}
}

// WithResolver sets the post-link hook that resolves the program's fixed
// slots. Programs with different slot sets plug their own Resolver here
// instead of re-implementing link and validate. A nil r resolves nothing.
func WithResolver(r Resolver) Option {
	return func(o *programOptions) {
		if r == nil {
			r = ResolverFunc(func(*Program) error { return nil })
		}
		o.resolver = r
	}
}

// WithDiagnostics sets the sink for diagnostic dumps. By default dumps go
// to the package logger at Info level. A nil d keeps the default.
func WithDiagnostics(d Diagnostics) Option {
	return func(o *programOptions) {
		if d != nil {
			o.diagnostics = d
		}
	}
}
