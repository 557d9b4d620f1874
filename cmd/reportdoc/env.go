package main

import (
	"context"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-reportdoc"
	"github.com/alnah/go-reportdoc/internal/generate"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, logging and the factories for the browser pool and
// the model client.
type Environment struct {
	Now          func() time.Time
	Stdout       io.Writer
	Stderr       io.Writer
	Logger       *zap.Logger // replaced per command from --verbose/--quiet when nil
	NewPool      func(size int, opts ...reportdoc.Option) Pool
	NewGenerator func(ctx context.Context, apiKey, model string) (generate.Generator, error)
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		NewPool: func(size int, opts ...reportdoc.Option) Pool {
			return &poolAdapter{pool: reportdoc.NewConverterPool(size, opts...)}
		},
		NewGenerator: func(ctx context.Context, apiKey, model string) (generate.Generator, error) {
			return generate.NewGeminiGenerator(ctx, apiKey, model)
		},
	}
}

// logger returns the injected logger or builds one for the given flags.
func (e *Environment) logger(f commonFlags) *zap.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return newLogger(e.Stderr, f.verbose, f.quiet)
}
