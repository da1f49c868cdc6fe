package engine

import (
	"encoding/json"
	"errors"
	"io"
)

// Kind represents token kinds from a generic source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

func (k Kind) String() string {
	switch k {
	case KindBeginObject:
		return "begin_object"
	case KindEndObject:
		return "end_object"
	case KindBeginArray:
		return "begin_array"
	case KindEndArray:
		return "end_array"
	case KindKey:
		return "key"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindNull:
		return "null"
	}
	return "unknown"
}

// Token represents a streaming token with approximate input offset.
type Token struct {
	Kind   Kind
	String string
	Number string
	Bool   bool
	Offset int64
}

// TokenSource is a minimal interface required by the engine.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64
}

// ErrTrailingData is returned by DecodeDocument when tokens follow the
// top-level value.
var ErrTrailingData = errors.New("unexpected data after top-level value")

// DecodeAnyFromSource builds an "any" value from the streaming token source.
// Objects decode to map[string]any (later duplicates win), arrays to []any
// and numbers to json.Number.
func DecodeAnyFromSource(src TokenSource) (any, error) {
	tok, err := src.NextToken()
	if err != nil {
		return nil, err
	}
	return decodeValue(src, tok)
}

// DecodeDocument decodes exactly one top-level value and requires the source
// to be exhausted afterwards.
func DecodeDocument(src TokenSource) (any, error) {
	v, err := DecodeAnyFromSource(src)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	if _, err := src.NextToken(); err == nil {
		return nil, ErrTrailingData
	} else if !errors.Is(err, io.EOF) {
		return nil, err
	}
	return v, nil
}

func decodeValue(src TokenSource, tok Token) (any, error) {
	switch tok.Kind {
	case KindBeginObject:
		return decodeObject(src)
	case KindBeginArray:
		return decodeArray(src)
	case KindString:
		return tok.String, nil
	case KindNumber:
		return json.Number(tok.Number), nil
	case KindBool:
		return tok.Bool, nil
	case KindNull:
		return nil, nil
	default:
		return nil, io.ErrUnexpectedEOF
	}
}

func next(src TokenSource) (Token, error) {
	tok, err := src.NextToken()
	if errors.Is(err, io.EOF) {
		return Token{}, io.ErrUnexpectedEOF
	}
	return tok, err
}

func decodeObject(src TokenSource) (any, error) {
	m := make(map[string]any)
	for {
		tok, err := next(src)
		if err != nil {
			return nil, err
		}
		if tok.Kind == KindEndObject {
			return m, nil
		}
		if tok.Kind != KindKey {
			return nil, io.ErrUnexpectedEOF
		}
		vt, err := next(src)
		if err != nil {
			return nil, err
		}
		v, err := decodeValue(src, vt)
		if err != nil {
			return nil, err
		}
		m[tok.String] = v
	}
}

func decodeArray(src TokenSource) (any, error) {
	arr := []any{}
	for {
		tok, err := next(src)
		if err != nil {
			return nil, err
		}
		if tok.Kind == KindEndArray {
			return arr, nil
		}
		v, err := decodeValue(src, tok)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
}

// KeyTracker tells keys apart from string values for tokenizers whose
// underlying decoder reports both as plain strings.
type KeyTracker struct {
	// true: object frame expecting a key; false: object frame expecting a
	// value. Array frames are never consulted, so they push false too.
	stack   []bool
	isArray []bool
}

// Open pushes a container frame.
func (k *KeyTracker) Open(object bool) {
	k.stack = append(k.stack, object)
	k.isArray = append(k.isArray, !object)
}

// Close pops a container frame and marks the parent member complete.
func (k *KeyTracker) Close() {
	if n := len(k.stack); n > 0 {
		k.stack = k.stack[:n-1]
		k.isArray = k.isArray[:n-1]
	}
	k.Value()
}

// IsKey reports whether a string token in the current position is an object
// key, advancing the frame state accordingly.
func (k *KeyTracker) IsKey() bool {
	n := len(k.stack)
	if n == 0 || k.isArray[n-1] {
		return false
	}
	if k.stack[n-1] {
		k.stack[n-1] = false
		return true
	}
	k.stack[n-1] = true
	return false
}

// Value marks the current object member complete after a scalar value.
func (k *KeyTracker) Value() {
	n := len(k.stack)
	if n == 0 || k.isArray[n-1] {
		return
	}
	k.stack[n-1] = true
}
