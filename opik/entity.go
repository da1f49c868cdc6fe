package opik

import (
	"context"

	serde "github.com/opikgo/serde"
	js "github.com/opikgo/serde/jsonschema"
)

// Entity is a named handle on one entity schema for callers that pick the
// schema at run time, such as the command line tool.
type Entity interface {
	Name() string
	// Validate parses src and reports the issues found.
	Validate(ctx context.Context, src serde.Source, opts ...serde.ParseOpt) error
	// Normalize parses src and serializes the result back to a raw value.
	Normalize(ctx context.Context, src serde.Source, opts ...serde.ParseOpt) (any, error)
	// Document returns the JSON Schema document of the entity.
	Document() (*js.Schema, error)
}

func entity[T any](name string, s serde.Schema[T]) Entity {
	return namedEntity[T]{name: name, schema: s}
}

type namedEntity[T any] struct {
	name   string
	schema serde.Schema[T]
}

func (e namedEntity[T]) Name() string { return e.name }

func (e namedEntity[T]) Validate(ctx context.Context, src serde.Source, opts ...serde.ParseOpt) error {
	_, err := serde.ParseFrom(ctx, e.schema, src, opts...)
	return err
}

func (e namedEntity[T]) Normalize(ctx context.Context, src serde.Source, opts ...serde.ParseOpt) (any, error) {
	v, err := serde.ParseFrom(ctx, e.schema, src, opts...)
	if err != nil {
		return nil, err
	}
	return e.schema.Serialize(ctx, v)
}

func (e namedEntity[T]) Document() (*js.Schema, error) {
	s, err := e.schema.JSONSchema()
	if err != nil {
		return nil, err
	}
	return js.Document(s, e.name), nil
}

// Entities lists the top-level entities in a stable order.
func (s *Schemas) Entities() []Entity {
	out := make([]Entity, len(s.entities))
	copy(out, s.entities)
	return out
}

// Entity returns the entity with the given name.
func (s *Schemas) Entity(name string) (Entity, bool) {
	for _, e := range s.entities {
		if e.Name() == name {
			return e, true
		}
	}
	return nil, false
}
