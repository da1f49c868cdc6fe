package dsl

import (
	"context"

	serde "github.com/opikgo/serde"
	js "github.com/opikgo/serde/jsonschema"
)

// List returns a schema for JSON arrays whose elements all follow elem.
// Order and length are preserved; element issues carry the element index.
func List[E any](elem serde.Schema[E]) serde.Schema[[]E] { return listSchema[E]{elem: elem} }

type listSchema[E any] struct{ elem serde.Schema[E] }

func (l listSchema[E]) Parse(ctx context.Context, v any) ([]E, error) {
	src, ok := v.([]any)
	if !ok {
		return nil, serde.TypeMismatch("array", v)
	}
	res := make([]E, len(src))
	c := newCollector(ctx)
	for i, item := range src {
		e, err := l.elem.Parse(ctx, item)
		if err != nil {
			if c.add(err, serde.IndexSegment(i)) {
				return nil, c.err()
			}
			continue
		}
		res[i] = e
	}
	if err := c.err(); err != nil {
		return nil, err
	}
	return res, nil
}

// Serialize emits [] for a nil slice.
func (l listSchema[E]) Serialize(ctx context.Context, v []E) (any, error) {
	out := make([]any, len(v))
	c := newCollector(ctx)
	for i, e := range v {
		raw, err := l.elem.Serialize(ctx, e)
		if err != nil {
			if c.add(err, serde.IndexSegment(i)) {
				return nil, c.err()
			}
			continue
		}
		out[i] = raw
	}
	if err := c.err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (l listSchema[E]) JSONSchema() (*js.Schema, error) {
	es, err := l.elem.JSONSchema()
	if err != nil {
		return nil, err
	}
	return &js.Schema{Type: "array", Items: es}, nil
}
