package dsl

import (
	"context"
	"sync"
	"sync/atomic"

	serde "github.com/opikgo/serde"
	js "github.com/opikgo/serde/jsonschema"
)

// Lazy defers schema construction to first use, which allows recursive
// schemas (a type whose field refers back to its own schema).
func Lazy[T any](fn func() serde.Schema[T]) serde.Schema[T] {
	return &lazySchema[T]{fn: fn}
}

type lazySchema[T any] struct {
	once sync.Once
	fn   func() serde.Schema[T]
	s    serde.Schema[T]
	// projecting guards JSONSchema against infinite recursion.
	projecting atomic.Bool
}

func (l *lazySchema[T]) get() serde.Schema[T] {
	l.once.Do(func() { l.s = l.fn() })
	return l.s
}

func (l *lazySchema[T]) Parse(ctx context.Context, v any) (T, error) { return l.get().Parse(ctx, v) }

func (l *lazySchema[T]) Serialize(ctx context.Context, v T) (any, error) {
	return l.get().Serialize(ctx, v)
}

// JSONSchema returns an unconstrained schema when it re-enters itself.
func (l *lazySchema[T]) JSONSchema() (*js.Schema, error) {
	if !l.projecting.CompareAndSwap(false, true) {
		return &js.Schema{}, nil
	}
	defer l.projecting.Store(false)
	return l.get().JSONSchema()
}
