package dsl

import (
	"context"

	serde "github.com/opikgo/serde"
	js "github.com/opikgo/serde/jsonschema"
)

// Optional wraps s for fields that may be absent. An absent wire key parses
// to None without calling s; None serializes by dropping the key. An explicit
// null also parses to None unless s accepts null itself (Nullable, Unknown),
// in which case it is delegated so OptionalNullable keeps three states.
func Optional[T any](s serde.Schema[T]) serde.Schema[serde.Optional[T]] {
	return optionalSchema[T]{inner: s}
}

// Nullable wraps s for values that may be an explicit null. Null parses
// without calling s and serializes to null. An absent object field parses
// as Null.
func Nullable[T any](s serde.Schema[T]) serde.Schema[serde.Nullable[T]] {
	return nullableSchema[T]{inner: s}
}

// OptionalNullable is Optional(Nullable(s)): absent, null and present stay
// three distinct model states.
func OptionalNullable[T any](s serde.Schema[T]) serde.Schema[serde.Optional[serde.Nullable[T]]] {
	return Optional(Nullable(s))
}

type optionalSchema[T any] struct{ inner serde.Schema[T] }

func (o optionalSchema[T]) Parse(ctx context.Context, v any) (serde.Optional[T], error) {
	if v == nil && !acceptsNull(o.inner) {
		return serde.None[T](), nil
	}
	x, err := o.inner.Parse(ctx, v)
	if err != nil {
		return serde.None[T](), err
	}
	return serde.Some(x), nil
}

func (o optionalSchema[T]) ParseMissing(context.Context) (serde.Optional[T], error) {
	return serde.None[T](), nil
}

func (o optionalSchema[T]) Omit(v serde.Optional[T]) bool { return !v.Set }

// Serialize emits null for None. Object schemas never get here for None
// because Omit drops the key first.
func (o optionalSchema[T]) Serialize(ctx context.Context, v serde.Optional[T]) (any, error) {
	if !v.Set {
		return nil, nil
	}
	return o.inner.Serialize(ctx, v.V)
}

func (o optionalSchema[T]) JSONSchema() (*js.Schema, error) { return o.inner.JSONSchema() }

// nullAccepter marks schemas that give explicit null a model value of its own.
type nullAccepter interface{ acceptsNull() }

func acceptsNull(s any) bool {
	_, ok := s.(nullAccepter)
	return ok
}

type nullableSchema[T any] struct{ inner serde.Schema[T] }

func (nullableSchema[T]) acceptsNull() {}

func (n nullableSchema[T]) Parse(ctx context.Context, v any) (serde.Nullable[T], error) {
	if v == nil {
		return serde.Null[T](), nil
	}
	x, err := n.inner.Parse(ctx, v)
	if err != nil {
		return serde.Null[T](), err
	}
	return serde.Value(x), nil
}

func (n nullableSchema[T]) ParseMissing(context.Context) (serde.Nullable[T], error) {
	return serde.Null[T](), nil
}

func (n nullableSchema[T]) Serialize(ctx context.Context, v serde.Nullable[T]) (any, error) {
	if !v.Valid {
		return nil, nil
	}
	return n.inner.Serialize(ctx, v.V)
}

func (n nullableSchema[T]) JSONSchema() (*js.Schema, error) {
	s, err := n.inner.JSONSchema()
	if err != nil {
		return nil, err
	}
	s = s.Clone()
	s.Nullable = true
	return s, nil
}
