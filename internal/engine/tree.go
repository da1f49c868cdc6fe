package engine

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
)

// MemberRanger is implemented by ordered object representations. Members are
// emitted in the order the callback sees them.
type MemberRanger interface {
	RangeMembers(fn func(key string, v any))
}

// TreeSource replays an in-memory value as a token stream. Maps are emitted
// with sorted keys; MemberRanger values keep their own order.
func TreeSource(v any) TokenSource {
	t := &treeSource{}
	t.err = t.flatten(v)
	return t
}

type treeSource struct {
	toks []Token
	pos  int
	err  error
}

func (t *treeSource) NextToken() (Token, error) {
	if t.err != nil {
		return Token{}, t.err
	}
	if t.pos >= len(t.toks) {
		return Token{}, io.EOF
	}
	tok := t.toks[t.pos]
	t.pos++
	return tok, nil
}

func (t *treeSource) Location() int64 { return -1 }

func (t *treeSource) emit(tok Token) {
	tok.Offset = -1
	t.toks = append(t.toks, tok)
}

func (t *treeSource) flatten(v any) error {
	switch x := v.(type) {
	case nil:
		t.emit(Token{Kind: KindNull})
	case string:
		t.emit(Token{Kind: KindString, String: x})
	case bool:
		t.emit(Token{Kind: KindBool, Bool: x})
	case json.Number:
		t.emit(Token{Kind: KindNumber, Number: x.String()})
	case float64:
		t.emit(Token{Kind: KindNumber, Number: strconv.FormatFloat(x, 'g', -1, 64)})
	case int:
		t.emit(Token{Kind: KindNumber, Number: strconv.Itoa(x)})
	case int64:
		t.emit(Token{Kind: KindNumber, Number: strconv.FormatInt(x, 10)})
	case []any:
		t.emit(Token{Kind: KindBeginArray})
		for _, e := range x {
			if err := t.flatten(e); err != nil {
				return err
			}
		}
		t.emit(Token{Kind: KindEndArray})
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		t.emit(Token{Kind: KindBeginObject})
		for _, k := range keys {
			t.emit(Token{Kind: KindKey, String: k})
			if err := t.flatten(x[k]); err != nil {
				return err
			}
		}
		t.emit(Token{Kind: KindEndObject})
	case MemberRanger:
		var err error
		t.emit(Token{Kind: KindBeginObject})
		x.RangeMembers(func(k string, val any) {
			if err != nil {
				return
			}
			t.emit(Token{Kind: KindKey, String: k})
			err = t.flatten(val)
		})
		if err != nil {
			return err
		}
		t.emit(Token{Kind: KindEndObject})
	default:
		return fmt.Errorf("unsupported raw value of type %T", v)
	}
	return nil
}
