package serde

import (
	"context"

	js "github.com/opikgo/serde/jsonschema"
)

// Schema is a bidirectional converter between a raw wire value and a model
// value of type T.
//
// Raw values follow encoding conventions shared by every schema: objects are
// map[string]any or Object, arrays are []any, numbers are json.Number, float64
// or Go integers, and JSON null is nil. Serialize emits Object for objects so
// that member order follows the schema declaration.
type Schema[T any] interface {
	// Parse converts a raw wire value into T. It returns Issues on failure.
	Parse(ctx context.Context, raw any) (T, error)
	// Serialize converts T back into its raw wire value.
	Serialize(ctx context.Context, v T) (any, error)
	// JSONSchema projects the schema into a JSON Schema representation.
	JSONSchema() (*js.Schema, error)
}

// MissingParser is implemented by schemas that accept an absent wire field.
// Object schemas call ParseMissing instead of reporting a required issue.
type MissingParser[T any] interface {
	ParseMissing(ctx context.Context) (T, error)
}

// Omitter is implemented by schemas whose model value may stand for an absent
// wire field. Object schemas drop the key when Omit reports true.
type Omitter[T any] interface {
	Omit(v T) bool
}

// Codec performs a pure conversion between two model representations A and B.
// dsl.Transform lifts a Codec over a Schema[A] into a Schema[B].
type Codec[A, B any] interface {
	Decode(ctx context.Context, a A) (B, error)
	Encode(ctx context.Context, b B) (A, error)
}

// SafeParse parses raw into T, returning (zero, false) on error.
func SafeParse[T any](ctx context.Context, s Schema[T], raw any) (T, bool) {
	v, err := s.Parse(ctx, raw)
	if err != nil {
		var zero T
		return zero, false
	}
	return v, true
}

// RoundTrip serializes v and parses the result back. It is mostly useful in
// tests asserting that a schema is its own inverse.
func RoundTrip[T any](ctx context.Context, s Schema[T], v T) (T, error) {
	raw, err := s.Serialize(ctx, v)
	if err != nil {
		var zero T
		return zero, err
	}
	return s.Parse(ctx, raw)
}

// ---- Parse-time context options ----

type contextKey int

const (
	_ctxKeyCollectAll contextKey = iota
)

// WithCollectAll returns a child context asking composite schemas to keep
// going after the first issue and report every issue found. The default is
// fail-fast.
func WithCollectAll(ctx context.Context, enabled bool) context.Context {
	return context.WithValue(ctx, _ctxKeyCollectAll, enabled)
}

// IsCollectAll reports whether the current call should collect all issues.
func IsCollectAll(ctx context.Context) bool {
	v := ctx.Value(_ctxKeyCollectAll)
	b, _ := v.(bool)
	return b
}

// IsFailFast reports whether the current call stops on the first issue.
func IsFailFast(ctx context.Context) bool { return !IsCollectAll(ctx) }
