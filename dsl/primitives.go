package dsl

import (
	"context"
	"encoding/json"
	"math"
	"slices"
	"strconv"

	serde "github.com/opikgo/serde"
	js "github.com/opikgo/serde/jsonschema"
)

// String returns the string schema: identity on both sides.
func String() serde.Schema[string] { return stringSchema{} }

// Bool returns the boolean schema.
func Bool() serde.Schema[bool] { return boolSchema{} }

// Float returns a schema reading any JSON number as float64.
func Float() serde.Schema[float64] { return floatSchema{} }

// Int returns a schema reading integral JSON numbers as int64. Fractional
// values are rejected.
func Int() serde.Schema[int64] { return intSchema{} }

// Number returns a lossless schema keeping the JSON number text.
func Number() serde.Schema[json.Number] { return numberSchema{} }

type stringSchema struct{}

func (stringSchema) Parse(_ context.Context, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", serde.TypeMismatch("string", v)
	}
	return s, nil
}

func (stringSchema) Serialize(_ context.Context, v string) (any, error) { return v, nil }

func (stringSchema) JSONSchema() (*js.Schema, error) { return &js.Schema{Type: "string"}, nil }

type boolSchema struct{}

func (boolSchema) Parse(_ context.Context, v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, serde.TypeMismatch("boolean", v)
	}
	return b, nil
}

func (boolSchema) Serialize(_ context.Context, v bool) (any, error) { return v, nil }

func (boolSchema) JSONSchema() (*js.Schema, error) { return &js.Schema{Type: "boolean"}, nil }

type floatSchema struct{}

func (floatSchema) Parse(_ context.Context, v any) (float64, error) {
	f, ok := serde.Float64Of(v)
	if !ok {
		return 0, serde.TypeMismatch("number", v)
	}
	return f, nil
}

func (floatSchema) Serialize(_ context.Context, v float64) (any, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, serde.InvalidFormat("finite number", strconv.FormatFloat(v, 'g', -1, 64), nil)
	}
	return v, nil
}

func (floatSchema) JSONSchema() (*js.Schema, error) { return &js.Schema{Type: "number"}, nil }

type intSchema struct{}

func (intSchema) Parse(_ context.Context, v any) (int64, error) {
	if !serde.IsNumber(v) {
		return 0, serde.TypeMismatch("integer", v)
	}
	i, ok := serde.Int64Of(v)
	if !ok {
		txt, _ := serde.NumberText(v)
		return 0, serde.InvalidFormat("integer", txt, nil)
	}
	return i, nil
}

func (intSchema) Serialize(_ context.Context, v int64) (any, error) { return v, nil }

func (intSchema) JSONSchema() (*js.Schema, error) { return &js.Schema{Type: "integer"}, nil }

type numberSchema struct{}

func (numberSchema) Parse(_ context.Context, v any) (json.Number, error) {
	txt, ok := serde.NumberText(v)
	if !ok {
		return "", serde.TypeMismatch("number", v)
	}
	return json.Number(txt), nil
}

func (numberSchema) Serialize(_ context.Context, v json.Number) (any, error) {
	if _, err := strconv.ParseFloat(v.String(), 64); err != nil {
		return nil, serde.InvalidFormat("number", v.String(), err)
	}
	return v, nil
}

func (numberSchema) JSONSchema() (*js.Schema, error) { return &js.Schema{Type: "number"}, nil }

// ---- enum ----

// Enum returns a closed string set schema. Values outside the set fail with
// invalid_enum on both sides.
func Enum[T ~string](values ...T) serde.Schema[T] {
	allowed := make([]string, len(values))
	for i, v := range values {
		allowed[i] = string(v)
	}
	return enumSchema[T]{allowed: allowed}
}

type enumSchema[T ~string] struct{ allowed []string }

func (e enumSchema[T]) Parse(_ context.Context, v any) (T, error) {
	s, ok := v.(string)
	if !ok {
		return "", serde.TypeMismatch("string", v)
	}
	if !slices.Contains(e.allowed, s) {
		return "", serde.InvalidEnum(e.allowed, s)
	}
	return T(s), nil
}

func (e enumSchema[T]) Serialize(_ context.Context, v T) (any, error) {
	if !slices.Contains(e.allowed, string(v)) {
		return nil, serde.InvalidEnum(e.allowed, string(v))
	}
	return string(v), nil
}

func (e enumSchema[T]) JSONSchema() (*js.Schema, error) {
	vals := make([]any, len(e.allowed))
	for i, a := range e.allowed {
		vals[i] = a
	}
	return &js.Schema{Type: "string", Enum: vals}, nil
}

// ---- unknown ----

// Unknown returns a passthrough schema for arbitrary JSON nodes. Parse hands
// back plain Go values (map[string]any, []any, json.Number, ...); Serialize
// emits objects with sorted keys so output stays deterministic. An absent
// object field parses as nil and a nil value drops the key.
func Unknown() serde.Schema[any] { return unknownSchema{} }

type unknownSchema struct{}

func (unknownSchema) acceptsNull() {}

func (unknownSchema) ParseMissing(context.Context) (any, error) { return nil, nil }

func (unknownSchema) Omit(v any) bool { return v == nil }

func (unknownSchema) Parse(_ context.Context, v any) (any, error) { return serde.Plain(v), nil }

func (unknownSchema) Serialize(_ context.Context, v any) (any, error) { return serde.Ordered(v), nil }

func (unknownSchema) JSONSchema() (*js.Schema, error) { return &js.Schema{}, nil }
