package dsl

import (
	"context"
	"time"

	"github.com/google/uuid"

	serde "github.com/opikgo/serde"
	"github.com/opikgo/serde/codec"
	js "github.com/opikgo/serde/jsonschema"
)

// Transform lifts a Codec[A,B] over a wire schema for A into a Schema[B].
// Parse: In.Parse -> Decode. Serialize: Encode -> In.Serialize.
// JSONSchema delegates to the wire schema.
func Transform[A, B any](in serde.Schema[A], c serde.Codec[A, B]) TransformSchema[A, B] {
	return TransformSchema[A, B]{in: in, c: c}
}

// TransformSchema is the Schema returned by Transform.
type TransformSchema[A, B any] struct {
	in     serde.Schema[A]
	c      serde.Codec[A, B]
	format string
}

// WithFormat returns a copy whose JSON Schema carries the given format.
func (s TransformSchema[A, B]) WithFormat(format string) TransformSchema[A, B] {
	s.format = format
	return s
}

func (s TransformSchema[A, B]) Parse(ctx context.Context, v any) (B, error) {
	var zero B
	// wire -> A
	a, err := s.in.Parse(ctx, v)
	if err != nil {
		return zero, serde.ToIssues(err)
	}
	// A -> B
	b, err := s.c.Decode(ctx, a)
	if err != nil {
		return zero, serde.ToIssues(err)
	}
	return b, nil
}

func (s TransformSchema[A, B]) Serialize(ctx context.Context, v B) (any, error) {
	a, err := s.c.Encode(ctx, v)
	if err != nil {
		return nil, serde.ToIssues(err)
	}
	return s.in.Serialize(ctx, a)
}

func (s TransformSchema[A, B]) JSONSchema() (*js.Schema, error) {
	out, err := s.in.JSONSchema()
	if err != nil {
		return nil, err
	}
	if s.format != "" {
		out = out.Clone()
		out.Format = s.format
	}
	return out, nil
}

// Date returns the ISO-8601 date-time schema. Parse accepts RFC3339 strings
// (fractional seconds optional); Serialize emits canonical UTC RFC3339.
func Date() serde.Schema[time.Time] {
	return Transform(String(), codec.TimeRFC3339()).WithFormat(serde.FormatDateTime)
}

// UUID returns a schema between UUID strings and uuid.UUID.
func UUID() serde.Schema[uuid.UUID] {
	return Transform(String(), codec.UUIDString()).WithFormat(codec.FormatUUID)
}
