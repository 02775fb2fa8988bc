package pave

import (
	"context"
	"fmt"
	"log/slog"
)

// DefaultMaxDepth bounds the nesting depth of struct and array readers when
// EnvOpts.MaxDepth is zero.
const DefaultMaxDepth = 512

// PanicHandler converts a value recovered from a panicking reader or
// validator into an error reported at loc.
type PanicHandler func(loc Location, recovered any) error

// EnvOpts configures NewEnv.
type EnvOpts struct {
	// Errors builds every error reported by the core. Defaults to DefaultErrors.
	Errors ErrorBuilder
	// FailFast stops a read at the first error instead of collecting all of them.
	FailFast bool
	// PanicHandler, if set, turns panics inside Catching readers into failures.
	PanicHandler PanicHandler
	// MaxDepth bounds nesting of struct and array readers. Negative disables the
	// limit; zero means DefaultMaxDepth.
	MaxDepth int
	// Logger receives debug records for failed reads. Defaults to a discarding logger.
	Logger *slog.Logger
}

// Env is the immutable per-read configuration handed to every Reader.
//
// The zero Env is usable: it accumulates errors, builds them with
// DefaultErrors, has no panic handler and does not log.
type Env struct {
	errs         ErrorBuilder
	failFast     bool
	panicHandler PanicHandler
	maxDepth     int
	logger       *slog.Logger
}

// NewEnv builds an Env from opts.
func NewEnv(opts EnvOpts) Env {
	return Env{
		errs:         opts.Errors,
		failFast:     opts.FailFast,
		panicHandler: opts.PanicHandler,
		maxDepth:     opts.MaxDepth,
		logger:       opts.Logger,
	}
}

// FailFast reports whether reads stop at the first error.
func (env Env) FailFast() bool { return env.failFast }

// WithFailFast returns a copy of env with the fail-fast option set.
func (env Env) WithFailFast(failFast bool) Env {
	env.failFast = failFast
	return env
}

// Errors returns the error builder in use.
func (env Env) Errors() ErrorBuilder {
	if env.errs != nil {
		return env.errs
	}
	if DefaultErrors != nil {
		return DefaultErrors
	}
	return defaultErrors{}
}

// MaxDepth returns the effective depth limit, or -1 when unlimited.
func (env Env) MaxDepth() int {
	switch {
	case env.maxDepth < 0:
		return -1
	case env.maxDepth == 0:
		return DefaultMaxDepth
	default:
		return env.maxDepth
	}
}

// HasPanicHandler reports whether panics are translated into failures.
func (env Env) HasPanicHandler() bool { return env.panicHandler != nil }

var discardLogger = slog.New(slog.DiscardHandler)

func (env Env) log() *slog.Logger {
	if env.logger == nil {
		return discardLogger
	}
	return env.logger
}

///////////////////////////////////////////////////////////////////////////////
// Failure helpers
///////////////////////////////////////////////////////////////////////////////

func (env Env) pathMissing(loc Location) Failure {
	return NewFailure(loc, env.Errors().PathMissing())
}

func (env Env) invalidType(loc Location, actual Kind, expected ...Kind) Failure {
	return NewFailure(loc, env.Errors().InvalidType(expected, actual))
}

func (env Env) additionalItems(loc Location, index int) Failure {
	return NewFailure(loc, env.Errors().AdditionalItems(index))
}

func (env Env) conversion(loc Location, target string, cause error) Failure {
	if b, ok := env.Errors().(ConversionErrorBuilder); ok {
		return NewFailure(loc, b.Conversion(target, cause))
	}
	return NewFailure(loc, defaultErrors{}.Conversion(target, cause))
}

// checkDepth returns a failure when loc is deeper than the limit.
func (env Env) checkDepth(loc Location) (Failure, bool) {
	limit := env.MaxDepth()
	if limit < 0 || loc.Depth() <= limit {
		return Failure{}, false
	}
	var err error
	if b, ok := env.Errors().(DepthErrorBuilder); ok {
		err = b.DepthExceeded(limit)
	} else {
		err = defaultErrors{}.DepthExceeded(limit)
	}
	return NewFailure(loc, err), true
}

func (env Env) logFailure(msg string, loc Location, f Failure) {
	logger := env.log()
	if !logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	logger.Debug(msg,
		slog.String("location", loc.String()),
		slog.Int("causes", f.Len()),
		slog.String("first", fmt.Sprint(f.First())),
	)
}
