package dsl_test

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	serde "github.com/opikgo/serde"
	g "github.com/opikgo/serde/dsl"
)

func TestStringSchema_Basic(t *testing.T) {
	s := g.String()
	ctx := context.Background()

	v, err := s.Parse(ctx, "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", v)

	_, err = s.Parse(ctx, json.Number("1"))
	iss, ok := serde.AsIssues(err)
	require.True(t, ok, "expected Issues error, got %v", err)
	assert.Equal(t, serde.CodeInvalidType, iss[0].Code)
	assert.Equal(t, "string", iss[0].Expected)
	assert.Equal(t, "number", iss[0].Actual)
	assert.ErrorIs(t, err, serde.ErrTypeMismatch)

	raw, err := s.Serialize(ctx, "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", raw)
}

func TestBoolSchema_Basic(t *testing.T) {
	s := g.Bool()
	ctx := context.Background()

	v, err := s.Parse(ctx, true)
	require.NoError(t, err)
	assert.True(t, v)

	_, err = s.Parse(ctx, "true")
	assert.ErrorIs(t, err, serde.ErrTypeMismatch)
}

func TestFloatSchema_AcceptsEveryNumberForm(t *testing.T) {
	s := g.Float()
	ctx := context.Background()
	for _, raw := range []any{json.Number("1.5"), 1.5, float32(1.5)} {
		v, err := s.Parse(ctx, raw)
		require.NoError(t, err)
		assert.Equal(t, 1.5, v)
	}
	v, err := s.Parse(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 3.0, v)

	_, err = s.Serialize(ctx, math.NaN())
	require.Error(t, err)
}

func TestIntSchema_RejectsFractions(t *testing.T) {
	s := g.Int()
	ctx := context.Background()

	v, err := s.Parse(ctx, json.Number("42"))
	require.NoError(t, err)
	assert.Equal(t, int64(42), v)

	v, err = s.Parse(ctx, 7.0)
	require.NoError(t, err)
	assert.Equal(t, int64(7), v)

	_, err = s.Parse(ctx, json.Number("4.2"))
	iss, _ := serde.AsIssues(err)
	require.Len(t, iss, 1)
	assert.Equal(t, serde.CodeInvalidFormat, iss[0].Code)

	_, err = s.Parse(ctx, "42")
	assert.ErrorIs(t, err, serde.ErrTypeMismatch)
}

func TestNumberSchema_Lossless(t *testing.T) {
	s := g.Number()
	ctx := context.Background()

	v, err := s.Parse(ctx, json.Number("12345678901234567890.5"))
	require.NoError(t, err)
	assert.Equal(t, json.Number("12345678901234567890.5"), v)

	v, err = s.Parse(ctx, int64(3))
	require.NoError(t, err)
	assert.Equal(t, json.Number("3"), v)

	_, err = s.Serialize(ctx, json.Number("abc"))
	require.Error(t, err)
}

func TestDateSchema(t *testing.T) {
	s := g.Date()
	ctx := context.Background()

	v, err := s.Parse(ctx, "2024-03-05T10:20:30.250+01:00")
	require.NoError(t, err)
	assert.True(t, v.Equal(time.Date(2024, 3, 5, 9, 20, 30, 250_000_000, time.UTC)))

	raw, err := s.Serialize(ctx, v)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05T09:20:30.25Z", raw)

	_, err = s.Parse(ctx, "05/03/2024")
	assert.ErrorIs(t, err, serde.ErrUnparseableDate)

	_, err = s.Parse(ctx, json.Number("1709630430"))
	assert.ErrorIs(t, err, serde.ErrTypeMismatch)
	assert.NotErrorIs(t, err, serde.ErrUnparseableDate)

	js, err := s.JSONSchema()
	require.NoError(t, err)
	assert.Equal(t, "string", js.Type)
	assert.Equal(t, "date-time", js.Format)
}

func TestUUIDSchema(t *testing.T) {
	s := g.UUID()
	ctx := context.Background()
	id := uuid.New()

	raw, err := s.Serialize(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id.String(), raw)

	back, err := s.Parse(ctx, raw)
	require.NoError(t, err)
	assert.Equal(t, id, back)

	_, err = s.Parse(ctx, "abc")
	require.Error(t, err)
	assert.False(t, errors.Is(err, serde.ErrUnparseableDate))
}

type color string

func TestEnumSchema(t *testing.T) {
	s := g.Enum[color]("red", "green")
	ctx := context.Background()

	v, err := s.Parse(ctx, "green")
	require.NoError(t, err)
	assert.Equal(t, color("green"), v)

	_, err = s.Parse(ctx, "blue")
	iss, ok := serde.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, serde.CodeInvalidEnum, iss[0].Code)
	assert.Equal(t, "blue", iss[0].Actual)

	_, err = s.Serialize(ctx, color("blue"))
	require.Error(t, err)

	js, err := s.JSONSchema()
	require.NoError(t, err)
	assert.Equal(t, []any{"red", "green"}, js.Enum)
}

func TestUnknownSchema_NormalizesObjects(t *testing.T) {
	s := g.Unknown()
	ctx := context.Background()

	in := serde.Object{{Key: "b", Value: json.Number("1")}, {Key: "a", Value: []any{"x"}}}
	v, err := s.Parse(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"b": json.Number("1"), "a": []any{"x"}}, v)

	raw, err := s.Serialize(ctx, v)
	require.NoError(t, err)
	assert.Equal(t, serde.Object{{Key: "a", Value: []any{"x"}}, {Key: "b", Value: json.Number("1")}}, raw)
}
