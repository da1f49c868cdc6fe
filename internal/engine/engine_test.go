package engine_test

import (
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	eng "github.com/opikgo/serde/internal/engine"
)

func kinds(t *testing.T, src eng.TokenSource) []eng.Kind {
	t.Helper()
	var out []eng.Kind
	for {
		tok, err := src.NextToken()
		if errors.Is(err, io.EOF) {
			return out
		}
		require.NoError(t, err)
		out = append(out, tok.Kind)
	}
}

func TestJSONBytes_KeysAndValuesAreDistinguished(t *testing.T) {
	src := eng.NewJSONBytes([]byte(`{"a":"x","b":["y",{"c":"z"}],"d":null}`))
	got := kinds(t, src)
	want := []eng.Kind{
		eng.KindBeginObject,
		eng.KindKey, eng.KindString,
		eng.KindKey, eng.KindBeginArray, eng.KindString,
		eng.KindBeginObject, eng.KindKey, eng.KindString, eng.KindEndObject,
		eng.KindEndArray,
		eng.KindKey, eng.KindNull,
		eng.KindEndObject,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeDocument_NumbersStayLossless(t *testing.T) {
	v, err := eng.DecodeDocument(eng.NewJSONBytes([]byte(`{"n":12345678901234567890,"f":1.5,"l":[]}`)))
	require.NoError(t, err)
	m := v.(map[string]any)
	assert.Equal(t, json.Number("12345678901234567890"), m["n"])
	assert.Equal(t, json.Number("1.5"), m["f"])
	assert.Equal(t, []any{}, m["l"])
}

func TestDecodeDocument_TrailingData(t *testing.T) {
	_, err := eng.DecodeDocument(eng.NewJSONBytes([]byte(`{} {}`)))
	require.ErrorIs(t, err, eng.ErrTrailingData)
}

func TestDecodeDocument_Truncated(t *testing.T) {
	_, err := eng.DecodeDocument(eng.NewJSONBytes([]byte(`{"a":[1,2`)))
	require.Error(t, err)
}

func TestEnforcement_DuplicateKeyError(t *testing.T) {
	src := eng.WrapWithEnforcement(
		eng.NewJSONBytes([]byte(`{"items":[{"id":1},{"id":2,"id":3}]}`)),
		eng.EnforceOptions{OnDuplicate: eng.DupError},
	)
	_, err := eng.DecodeDocument(src)
	var ie eng.IssueError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, eng.CodeDuplicateKey, ie.Code)
	assert.Equal(t, "id", ie.Key)
	want := []eng.PathElem{{Key: "items"}, {Index: 1, IsIndex: true}, {Key: "id"}}
	if diff := cmp.Diff(want, ie.Path); diff != "" {
		t.Fatalf("path mismatch (-want +got):\n%s", diff)
	}
}

func TestEnforcement_DuplicateKeyWarnContinues(t *testing.T) {
	var seen []eng.SimpleIssue
	src := eng.WrapWithEnforcement(
		eng.NewJSONBytes([]byte(`{"a":1,"a":2}`)),
		eng.EnforceOptions{OnDuplicate: eng.DupWarn, IssueSink: func(si eng.SimpleIssue) { seen = append(seen, si) }},
	)
	v, err := eng.DecodeDocument(src)
	require.NoError(t, err)
	assert.Equal(t, json.Number("2"), v.(map[string]any)["a"])
	require.Len(t, seen, 1)
	assert.Equal(t, eng.CodeDuplicateKey, seen[0].Code)
}

func TestEnforcement_MaxDepth(t *testing.T) {
	src := eng.WrapWithEnforcement(
		eng.NewJSONBytes([]byte(`{"a":{"b":{"c":{}}}}`)),
		eng.EnforceOptions{MaxDepth: 3},
	)
	_, err := eng.DecodeDocument(src)
	var ie eng.IssueError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, eng.CodeParseError, ie.Code)
	assert.Equal(t, []eng.PathElem{{Key: "a"}, {Key: "b"}, {Key: "c"}}, ie.Path)
}

func TestEnforcement_DisabledReturnsInner(t *testing.T) {
	inner := eng.NewJSONBytes([]byte(`1`))
	assert.Same(t, inner, eng.WrapWithEnforcement(inner, eng.EnforceOptions{}))
}

type ordered [][2]any

func (o ordered) RangeMembers(fn func(string, any)) {
	for _, m := range o {
		fn(m[0].(string), m[1])
	}
}

func TestTreeSource_ReplaysValues(t *testing.T) {
	tree := map[string]any{
		"z": []any{int64(1), 2.5, true},
		"a": ordered{{"y", nil}, {"x", "s"}},
	}
	v, err := eng.DecodeDocument(eng.TreeSource(tree))
	require.NoError(t, err)
	want := map[string]any{
		"z": []any{json.Number("1"), json.Number("2.5"), true},
		"a": map[string]any{"y": nil, "x": "s"},
	}
	if diff := cmp.Diff(want, v); diff != "" {
		t.Fatalf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestTreeSource_UnsupportedType(t *testing.T) {
	_, err := eng.DecodeDocument(eng.TreeSource(struct{}{}))
	require.Error(t, err)
}
