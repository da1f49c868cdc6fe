package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	msg := T("invalid_type", map[string]string{"expected": "string", "actual": "number"})
	assert.Equal(t, "expected string, got number", msg)

	SetLanguage("ja")
	defer SetLanguage("en")
	msg = T("invalid_type", map[string]string{"expected": "string", "actual": "number"})
	assert.Contains(t, msg, "型が不正です")
	assert.Contains(t, msg, "string")
}

func TestTranslator_MissingPlaceholderData(t *testing.T) {
	assert.Equal(t, "expected ?, got ?", T("invalid_type", nil))
	assert.Equal(t, "required property missing", T("required", nil))
}

func TestTranslator_UnknownCodeFallsBackToCode(t *testing.T) {
	assert.Equal(t, "no_such_code", T("no_such_code", nil))
}

type upper struct{}

func (upper) Message(code string, _ map[string]string) string { return "X:" + code }

func TestSetTranslator(t *testing.T) {
	SetTranslator(upper{})
	defer SetTranslator(nil)
	assert.Equal(t, "X:required", T("required", nil))
}
