package dsl_test

import (
	"context"
	"encoding/json"
	"testing"

	gojson "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	serde "github.com/opikgo/serde"
	g "github.com/opikgo/serde/dsl"
)

type span struct {
	ID      serde.Optional[string]                 `json:"id"`
	TraceID serde.Optional[string]                 `json:"traceId"`
	Name    string                                 `json:"name"`
	Parent  serde.Optional[serde.Nullable[string]] `json:"parentSpanId"`
	Model   serde.Nullable[string]                 `json:"model"`
}

func spanSchema(t *testing.T) *g.ObjectSchema[span] {
	t.Helper()
	s, err := g.ObjectOf(
		g.Field(func(s *span) *serde.Optional[string] { return &s.ID }, g.Optional(g.String())),
		g.Property("trace_id", func(s *span) *serde.Optional[string] { return &s.TraceID }, g.Optional(g.String())),
		g.Field(func(s *span) *string { return &s.Name }, g.String()),
		g.Property("parent_span_id", func(s *span) *serde.Optional[serde.Nullable[string]] { return &s.Parent }, g.OptionalNullable(g.String())),
		g.Field(func(s *span) *serde.Nullable[string] { return &s.Model }, g.Nullable(g.String())),
	).Build()
	require.NoError(t, err)
	return s
}

func TestObject_PropertyRenameRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := spanSchema(t)

	v, err := s.Parse(ctx, map[string]any{"trace_id": "abc", "name": "llm"})
	require.NoError(t, err)
	assert.Equal(t, serde.Some("abc"), v.TraceID)
	assert.False(t, v.ID.IsSet())

	b, err := serde.Marshal(ctx, s, v)
	require.NoError(t, err)
	assert.Equal(t, `{"trace_id":"abc","name":"llm","model":null}`, string(b))
}

func TestObject_SerializeFollowsDeclarationOrder(t *testing.T) {
	ctx := context.Background()
	s := spanSchema(t)

	raw, err := s.Serialize(ctx, span{
		Model:   serde.Value("gpt"),
		Name:    "n",
		TraceID: serde.Some("t"),
		ID:      serde.Some("i"),
		Parent:  serde.SomeValue("p"),
	})
	require.NoError(t, err)
	obj := raw.(serde.Object)
	assert.Equal(t, []string{"id", "trace_id", "name", "parent_span_id", "model"}, obj.Keys())
}

func TestObject_ThreeStatesRoundTripDistinctly(t *testing.T) {
	ctx := context.Background()
	s := spanSchema(t)

	cases := map[string]struct {
		wire  string
		model serde.Optional[serde.Nullable[string]]
	}{
		"absent":  {`{"name":"n","model":null}`, serde.None[serde.Nullable[string]]()},
		"null":    {`{"name":"n","parent_span_id":null,"model":null}`, serde.SomeNull[string]()},
		"present": {`{"name":"n","parent_span_id":"p","model":null}`, serde.SomeValue("p")},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			v, err := serde.Unmarshal(ctx, s, []byte(tc.wire))
			require.NoError(t, err)
			if diff := cmp.Diff(tc.model, v.Parent); diff != "" {
				t.Fatalf("parent mismatch (-want +got):\n%s", diff)
			}
			b, err := serde.Marshal(ctx, s, v)
			require.NoError(t, err)
			assert.Equal(t, tc.wire, string(b))
		})
	}
}

func TestObject_AbsentNullableParsesAsNull(t *testing.T) {
	v, err := spanSchema(t).Parse(context.Background(), map[string]any{"name": "n"})
	require.NoError(t, err)
	assert.True(t, v.Model.IsNull())
}

func TestObject_OptionalTreatsNullAsAbsent(t *testing.T) {
	ctx := context.Background()
	s := spanSchema(t)

	v, err := s.Parse(ctx, map[string]any{"name": "n", "trace_id": nil, "id": nil})
	require.NoError(t, err)
	assert.False(t, v.TraceID.IsSet())
	assert.False(t, v.ID.IsSet())

	b, err := serde.Marshal(ctx, s, v)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"n","model":null}`, string(b))

	_, err = s.Parse(ctx, map[string]any{"name": nil})
	iss, ok := serde.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, serde.CodeInvalidType, iss[0].Code)
	assert.Equal(t, "/name", iss[0].Pointer())
}

func TestObject_UnknownFieldMayBeAbsent(t *testing.T) {
	type doc struct {
		Data any `json:"data"`
	}
	ctx := context.Background()
	s := g.ObjectOf(g.Field(func(d *doc) *any { return &d.Data }, g.Unknown())).MustBuild()

	v, err := s.Parse(ctx, map[string]any{})
	require.NoError(t, err)
	assert.Nil(t, v.Data)

	b, err := serde.Marshal(ctx, s, v)
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(b))
	assert.False(t, s.Fields()[0].Required)
}

func TestObject_MissingRequired(t *testing.T) {
	_, err := spanSchema(t).Parse(context.Background(), map[string]any{"trace_id": "abc"})
	require.ErrorIs(t, err, serde.ErrMissingRequiredField)
	iss, _ := serde.AsIssues(err)
	assert.Equal(t, "name", iss[0].Field())
}

func TestObject_UnknownKeysStrippedByDefault(t *testing.T) {
	ctx := context.Background()
	s := spanSchema(t)
	v, err := s.Parse(ctx, map[string]any{"name": "n", "brand_new_field": 1})
	require.NoError(t, err)
	b, err := serde.Marshal(ctx, s, v)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "brand_new_field")
}

func TestObject_NotAnObject(t *testing.T) {
	_, err := spanSchema(t).Parse(context.Background(), []any{})
	iss, _ := serde.AsIssues(err)
	require.Len(t, iss, 1)
	assert.Equal(t, "object", iss[0].Expected)
	assert.Equal(t, "array", iss[0].Actual)
	assert.Equal(t, "/", iss[0].Pointer())
}

func TestObject_FailFastVersusCollectAll(t *testing.T) {
	s := spanSchema(t)
	raw := map[string]any{"id": 1, "trace_id": true}

	_, err := s.Parse(context.Background(), raw)
	iss, _ := serde.AsIssues(err)
	assert.Len(t, iss, 1)

	_, err = s.Parse(serde.WithCollectAll(context.Background(), true), raw)
	iss, _ = serde.AsIssues(err)
	require.Len(t, iss, 3)
	assert.Equal(t, []string{"/id", "/trace_id", "/name"}, []string{iss[0].Pointer(), iss[1].Pointer(), iss[2].Pointer()})
}

type strictThing struct {
	A string `json:"a"`
}

func TestObject_UnknownStrict(t *testing.T) {
	s := g.ObjectOf(g.Field(func(x *strictThing) *string { return &x.A }, g.String())).UnknownStrict().MustBuild()
	_, err := s.Parse(context.Background(), map[string]any{"a": "x", "b": 1})
	iss, ok := serde.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, serde.CodeUnknownKey, iss[0].Code)
	assert.Equal(t, "/b", iss[0].Pointer())

	js, err := s.JSONSchema()
	require.NoError(t, err)
	assert.Equal(t, false, js.AdditionalProperties)
}

type openThing struct {
	Name  string         `json:"name"`
	Extra map[string]any `json:"-"`
}

func TestObject_UnknownPassthrough(t *testing.T) {
	ctx := context.Background()
	s := g.ObjectOf(g.Field(func(x *openThing) *string { return &x.Name }, g.String())).
		UnknownPassthrough(func(x *openThing) *map[string]any { return &x.Extra }).
		MustBuild()

	v, err := serde.Unmarshal(ctx, s, []byte(`{"zeta":{"k":1},"name":"n","alpha":true}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"zeta": map[string]any{"k": json.Number("1")}, "alpha": true}, v.Extra)

	b, err := serde.Marshal(ctx, s, v)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"n","alpha":true,"zeta":{"k":1}}`, string(b))
}

func TestObject_AcceptsOrderedObjectInput(t *testing.T) {
	v, err := spanSchema(t).Parse(context.Background(), serde.Object{{Key: "name", Value: "n"}})
	require.NoError(t, err)
	assert.Equal(t, "n", v.Name)
}

func TestObject_BuildErrors(t *testing.T) {
	_, err := g.ObjectOf(
		g.Field(func(x *strictThing) *string { return &x.A }, g.String()),
		g.Property("a", func(x *strictThing) *string { return &x.A }, g.String()),
	).Build()
	require.ErrorIs(t, err, serde.ErrInvalidSchema)

	type nested struct{ Inner strictThing }
	_, err = g.ObjectOf(
		g.Field(func(x *nested) *string { return &x.Inner.A }, g.String()),
	).Build()
	require.ErrorIs(t, err, serde.ErrInvalidSchema)

	_, err = g.ObjectOf(g.Field(func(x *openThing) *string { return &x.Name }, g.String())).
		UnknownPassthrough(nil).
		Build()
	require.ErrorIs(t, err, serde.ErrInvalidSchema)

	assert.Panics(t, func() {
		g.ObjectOf(g.Field(func(x *strictThing) *string { return &x.A }, nil)).MustBuild()
	})
}

func TestObject_ModelNameResolution(t *testing.T) {
	type tagged struct {
		Plain   string
		JSON    string `json:"jsonName,omitempty"`
		Renamed string `serde:"name=fromTag" json:"ignored"`
	}
	s := g.ObjectOf(
		g.Field(func(x *tagged) *string { return &x.Plain }, g.String()),
		g.Field(func(x *tagged) *string { return &x.JSON }, g.String()),
		g.Property("renamed", func(x *tagged) *string { return &x.Renamed }, g.String()),
	).MustBuild()
	want := []g.FieldInfo{
		{Wire: "Plain", Name: "Plain", Required: true},
		{Wire: "jsonName", Name: "jsonName", Required: true},
		{Wire: "renamed", Name: "fromTag", Required: true},
	}
	assert.Equal(t, want, s.Fields())
}

func TestObject_JSONSchema(t *testing.T) {
	js, err := spanSchema(t).JSONSchema()
	require.NoError(t, err)
	assert.Equal(t, "object", js.Type)
	assert.Equal(t, []string{"name"}, js.Required)
	assert.True(t, js.Properties["parent_span_id"].Nullable)
	assert.True(t, js.Properties["model"].Nullable)
	assert.Nil(t, js.AdditionalProperties)

	b, err := gojson.Marshal(js)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"trace_id":{"type":"string"}`)
}
