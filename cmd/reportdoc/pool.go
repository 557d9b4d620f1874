package main

import (
	"context"
	"fmt"

	"github.com/alnah/go-reportdoc"
)

// Converter is the conversion surface the CLI needs.
type Converter interface {
	Convert(ctx context.Context, input reportdoc.Input) (*reportdoc.ConvertResult, error)
}

// Compile-time interface implementation check.
var _ Converter = (*reportdoc.Converter)(nil)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire(ctx context.Context) (Converter, error)
	Release(Converter)
	Size() int
	Close() error
}

// poolAdapter exposes a reportdoc.ConverterPool as a Pool.
type poolAdapter struct {
	pool *reportdoc.ConverterPool
}

// Compile-time check that poolAdapter implements Pool.
var _ Pool = (*poolAdapter)(nil)

func (a *poolAdapter) Acquire(ctx context.Context) (Converter, error) {
	conv, err := a.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return conv, nil
}

// Release panics when c did not come from this pool (programmer error).
func (a *poolAdapter) Release(c Converter) {
	conv, ok := c.(*reportdoc.Converter)
	if !ok {
		panic(fmt.Sprintf("poolAdapter.Release: unexpected type %T", c))
	}
	a.pool.Release(conv)
}

func (a *poolAdapter) Size() int    { return a.pool.Size() }
func (a *poolAdapter) Close() error { return a.pool.Close() }
