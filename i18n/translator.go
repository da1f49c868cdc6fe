package i18n

import (
	"strings"
	"sync"
)

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "expected", "actual" or "key").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var dictionaries = map[string]map[string]string{
	"en": {
		"invalid_type":          "expected {expected}, got {actual}",
		"required":              "required property missing",
		"unknown_key":           "unknown key '{key}'",
		"duplicate_key":         "key '{key}' duplicated",
		"invalid_format":        "invalid {format}: {actual}",
		"invalid_enum":          "value {actual} is not one of {expected}",
		"discriminator_missing": "discriminator '{key}' missing",
		"discriminator_unknown": "unknown discriminator value {actual}",
		"parse_error":           "parse error",
		"truncated":             "input exceeds size limit",
	},
	"ja": {
		"invalid_type":          "型が不正です ({expected} が必要ですが {actual} でした)",
		"required":              "必須プロパティが不足しています",
		"unknown_key":           "未知のキーです '{key}'",
		"duplicate_key":         "キー '{key}' が重複しています",
		"invalid_format":        "{format} の形式が不正です: {actual}",
		"invalid_enum":          "値 {actual} は {expected} のいずれでもありません",
		"discriminator_missing": "判別キー '{key}' がありません",
		"discriminator_unknown": "未知の判別値です {actual}",
		"parse_error":           "解析エラー",
		"truncated":             "入力がサイズ上限を超えています",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	tmpl, ok := dictionaries[t.lang][code]
	if !ok {
		return code
	}
	return fill(tmpl, data)
}

// fill substitutes {name} placeholders. Placeholders without data collapse to
// "?" so a message never leaks template syntax.
func fill(tmpl string, data map[string]string) string {
	if !strings.Contains(tmpl, "{") {
		return tmpl
	}
	var b strings.Builder
	for {
		i := strings.IndexByte(tmpl, '{')
		if i < 0 {
			b.WriteString(tmpl)
			return b.String()
		}
		j := strings.IndexByte(tmpl[i:], '}')
		if j < 0 {
			b.WriteString(tmpl)
			return b.String()
		}
		b.WriteString(tmpl[:i])
		name := tmpl[i+1 : i+j]
		if v, ok := data[name]; ok && v != "" {
			b.WriteString(v)
		} else {
			b.WriteString("?")
		}
		tmpl = tmpl[i+j+1:]
	}
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	mu.Lock()
	currentTranslator = dictTranslator{lang: lang}
	mu.Unlock()
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
