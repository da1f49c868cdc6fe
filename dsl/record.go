package dsl

import (
	"context"
	"sort"

	serde "github.com/opikgo/serde"
	js "github.com/opikgo/serde/jsonschema"
)

// Record returns a schema for JSON objects with arbitrary keys and values
// following value. Serialize emits keys in sorted order.
func Record[V any](value serde.Schema[V]) serde.Schema[map[string]V] {
	return recordSchema[V]{value: value}
}

type recordSchema[V any] struct{ value serde.Schema[V] }

func (r recordSchema[V]) Parse(ctx context.Context, v any) (map[string]V, error) {
	_, each, ok := serde.RawObject(v)
	if !ok {
		return nil, serde.TypeMismatch("object", v)
	}
	out := make(map[string]V)
	c := newCollector(ctx)
	stop := false
	each(func(k string, raw any) {
		if stop {
			return
		}
		x, err := r.value.Parse(ctx, raw)
		if err != nil {
			stop = c.add(err, serde.FieldSegment(k, k))
			return
		}
		out[k] = x
	})
	if err := c.err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r recordSchema[V]) Serialize(ctx context.Context, v map[string]V) (any, error) {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make(serde.Object, 0, len(keys))
	c := newCollector(ctx)
	for _, k := range keys {
		raw, err := r.value.Serialize(ctx, v[k])
		if err != nil {
			if c.add(err, serde.FieldSegment(k, k)) {
				return nil, c.err()
			}
			continue
		}
		out = append(out, serde.Member{Key: k, Value: raw})
	}
	if err := c.err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r recordSchema[V]) JSONSchema() (*js.Schema, error) {
	vs, err := r.value.JSONSchema()
	if err != nil {
		return nil, err
	}
	return &js.Schema{Type: "object", AdditionalProperties: vs}, nil
}
