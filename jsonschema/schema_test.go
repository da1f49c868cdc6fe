package jsonschema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	js "github.com/opikgo/serde/jsonschema"
)

func TestDocument_DoesNotMutateInput(t *testing.T) {
	inner := &js.Schema{Type: "object"}
	doc := js.Document(inner, "DatasetItem")
	assert.Equal(t, js.Draft, doc.Schema)
	assert.Equal(t, "DatasetItem", doc.Title)
	assert.Empty(t, inner.Schema)
	assert.Empty(t, inner.Title)
}

func TestMarshal_OmitsEmptyKeywords(t *testing.T) {
	b, err := js.Marshal(&js.Schema{Type: "string", Format: "date-time", Nullable: true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"string","format":"date-time","nullable":true}`, string(b))
}
