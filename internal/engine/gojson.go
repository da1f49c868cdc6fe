package engine

import (
	"bytes"
	"errors"
	"io"
	"strconv"

	gojson "github.com/goccy/go-json"
)

// jsonSource tokenizes JSON with the goccy/go-json streaming decoder.
type jsonSource struct {
	dec  *gojson.Decoder
	keys KeyTracker
}

// NewJSONReader wraps an io.Reader into a TokenSource for JSON using go-json.
func NewJSONReader(r io.Reader) TokenSource {
	dec := gojson.NewDecoder(r)
	dec.UseNumber()
	return &jsonSource{dec: dec}
}

// NewJSONBytes wraps a byte slice into a TokenSource for JSON using go-json.
func NewJSONBytes(b []byte) TokenSource { return NewJSONReader(bytes.NewReader(b)) }

func (s *jsonSource) NextToken() (Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Token{}, io.EOF
		}
		return Token{}, err
	}
	switch v := tok.(type) {
	case gojson.Delim:
		switch v {
		case '{':
			s.keys.Open(true)
			return Token{Kind: KindBeginObject, Offset: -1}, nil
		case '}':
			s.keys.Close()
			return Token{Kind: KindEndObject, Offset: -1}, nil
		case '[':
			s.keys.Open(false)
			return Token{Kind: KindBeginArray, Offset: -1}, nil
		case ']':
			s.keys.Close()
			return Token{Kind: KindEndArray, Offset: -1}, nil
		}
	case string:
		if s.keys.IsKey() {
			return Token{Kind: KindKey, String: v, Offset: -1}, nil
		}
		return Token{Kind: KindString, String: v, Offset: -1}, nil
	case bool:
		s.keys.Value()
		return Token{Kind: KindBool, Bool: v, Offset: -1}, nil
	case gojson.Number:
		s.keys.Value()
		return Token{Kind: KindNumber, Number: string(v), Offset: -1}, nil
	case float64:
		s.keys.Value()
		return Token{Kind: KindNumber, Number: strconv.FormatFloat(v, 'g', -1, 64), Offset: -1}, nil
	}
	s.keys.Value()
	return Token{Kind: KindNull, Offset: -1}, nil
}

// Location is unknown for the go-json decoder.
func (s *jsonSource) Location() int64 { return -1 }
