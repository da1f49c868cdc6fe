package serde_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	serde "github.com/opikgo/serde"
	g "github.com/opikgo/serde/dsl"
)

type feedback struct {
	Name  string                 `json:"name"`
	Value float64                `json:"value"`
	Note  serde.Optional[string] `json:"reason"`
}

func feedbackSchema() serde.Schema[feedback] {
	return g.ObjectOf(
		g.Field(func(f *feedback) *string { return &f.Name }, g.String()),
		g.Field(func(f *feedback) *float64 { return &f.Value }, g.Float()),
		g.Field(func(f *feedback) *serde.Optional[string] { return &f.Note }, g.Optional(g.String())),
	).UnknownStrict().MustBuild()
}

func TestUnmarshalAndMarshal(t *testing.T) {
	ctx := context.Background()
	s := feedbackSchema()

	v, err := serde.Unmarshal(ctx, s, []byte(`{"name":"accuracy","value":0.5}`))
	require.NoError(t, err)
	assert.Equal(t, feedback{Name: "accuracy", Value: 0.5}, v)

	b, err := serde.Marshal(ctx, s, v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"accuracy","value":0.5}`, string(b))

	b, err = serde.MarshalIndent(ctx, s, v, "  ")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"name\": \"accuracy\",\n  \"value\": 0.5\n}", string(b))
}

func TestUnmarshal_SyntaxErrors(t *testing.T) {
	ctx := context.Background()
	for name, in := range map[string]string{
		"truncated": `{"name":"a"`,
		"trailing":  `{"name":"a","value":1} {}`,
		"garbage":   `{"name":}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := serde.Unmarshal(ctx, feedbackSchema(), []byte(in))
			iss, ok := serde.AsIssues(err)
			require.True(t, ok, "got %v", err)
			assert.Equal(t, serde.CodeParseError, iss[0].Code)
		})
	}
}

func TestUnmarshal_MaxBytes(t *testing.T) {
	_, err := serde.Unmarshal(context.Background(), feedbackSchema(), []byte(`{"name":"a","value":1}`), serde.ParseOpt{MaxBytes: 4})
	iss, ok := serde.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, serde.CodeTruncated, iss[0].Code)

	_, err = serde.StreamParse(context.Background(), feedbackSchema(), strings.NewReader(`{"name":"a","value":1}`), serde.ParseOpt{MaxBytes: 4})
	iss, ok = serde.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, serde.CodeTruncated, iss[0].Code)
}

func TestUnmarshal_DuplicateKeys(t *testing.T) {
	ctx := context.Background()
	in := []byte(`{"name":"a","name":"b","value":1}`)

	v, err := serde.Unmarshal(ctx, feedbackSchema(), in)
	require.NoError(t, err)
	assert.Equal(t, "b", v.Name)

	var warned []serde.Issue
	_, err = serde.Unmarshal(ctx, feedbackSchema(), in, serde.ParseOpt{
		Strictness: serde.Strictness{OnDuplicateKey: serde.Warn},
		OnWarning:  func(it serde.Issue) { warned = append(warned, it) },
	})
	require.NoError(t, err)
	require.Len(t, warned, 1)
	assert.Equal(t, "/name", warned[0].Pointer())

	_, err = serde.Unmarshal(ctx, feedbackSchema(), in, serde.ParseOpt{Strictness: serde.Strictness{OnDuplicateKey: serde.Error}})
	iss, ok := serde.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, serde.CodeDuplicateKey, iss[0].Code)
	assert.Equal(t, "key 'name' duplicated", iss[0].Message)
}

func TestParseFrom_CollectAllOption(t *testing.T) {
	in := []byte(`{"name":1,"value":"x","extra":true}`)
	_, err := serde.Unmarshal(context.Background(), feedbackSchema(), in)
	iss, _ := serde.AsIssues(err)
	assert.Len(t, iss, 1)

	_, err = serde.Unmarshal(context.Background(), feedbackSchema(), in, serde.ParseOpt{CollectAll: true})
	iss, _ = serde.AsIssues(err)
	assert.Len(t, iss, 3)
}

func TestParseFrom_NilSchema(t *testing.T) {
	_, err := serde.ParseFrom[int](context.Background(), nil, serde.JSONBytes([]byte(`1`)))
	require.Error(t, err)
}

func TestValueSource(t *testing.T) {
	raw := serde.Object{{Key: "value", Value: 2}, {Key: "name", Value: "n"}}
	v, err := serde.ParseFrom(context.Background(), feedbackSchema(), serde.ValueSource(raw))
	require.NoError(t, err)
	assert.Equal(t, feedback{Name: "n", Value: 2}, v)

	_, err = serde.ParseFrom(context.Background(), feedbackSchema(), serde.ValueSource(struct{}{}))
	require.Error(t, err)
}

func TestSetJSONDriver(t *testing.T) {
	assert.Equal(t, "gojson", serde.CurrentJSONDriver().Name())
	serde.SetJSONDriver(nil)
	assert.Equal(t, "gojson", serde.CurrentJSONDriver().Name())
}

func TestSafeParse(t *testing.T) {
	_, ok := serde.SafeParse(context.Background(), feedbackSchema(), map[string]any{"name": "x"})
	assert.False(t, ok)
	v, ok := serde.SafeParse(context.Background(), feedbackSchema(), map[string]any{"name": "x", "value": 1})
	assert.True(t, ok)
	assert.Equal(t, 1.0, v.Value)
}
