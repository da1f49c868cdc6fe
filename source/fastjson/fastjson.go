// Package fastjson provides a serde.JSONDriver backed by valyala/fastjson.
//
// The document is parsed in one pass into a fastjson tree, converted into a
// raw value (serde.Object for objects, so member order and duplicate keys
// survive) and replayed through serde.ValueSource. Numbers keep their
// original text.
package fastjson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/valyala/fastjson"

	serde "github.com/opikgo/serde"
)

// Name is the driver name reported by Driver().Name().
const Name = "fastjson"

var parsers fastjson.ParserPool

// Driver returns a serde.JSONDriver backed by fastjson.
func Driver() serde.JSONDriver { return driver{} }

type driver struct{}

func (driver) NewReader(r io.Reader) serde.Source { return Reader(r) }
func (driver) NewBytes(b []byte) serde.Source     { return Bytes(b) }
func (driver) Name() string                       { return Name }

// Reader reads r fully and parses it with Bytes.
func Reader(r io.Reader) serde.Source {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return serde.ErrorSource(err)
	}
	return Bytes(buf.Bytes())
}

// Bytes parses data and returns the resulting document as a Source.
func Bytes(data []byte) serde.Source {
	raw, err := Decode(data)
	if err != nil {
		return serde.ErrorSource(err)
	}
	return serde.ValueSource(raw)
}

// Decode parses data into a raw value.
func Decode(data []byte) (any, error) {
	p := parsers.Get()
	defer parsers.Put(p)
	v, err := p.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("fastjson: %w", err)
	}
	return toRaw(v)
}

// toRaw copies out of the parser-owned tree; v is invalid once the parser
// returns to the pool.
func toRaw(v *fastjson.Value) (any, error) {
	switch v.Type() {
	case fastjson.TypeNull:
		return nil, nil
	case fastjson.TypeTrue:
		return true, nil
	case fastjson.TypeFalse:
		return false, nil
	case fastjson.TypeString:
		sb, err := v.StringBytes()
		if err != nil {
			return nil, err
		}
		return string(sb), nil
	case fastjson.TypeNumber:
		return json.Number(v.MarshalTo(nil)), nil
	case fastjson.TypeArray:
		vs, err := v.Array()
		if err != nil {
			return nil, err
		}
		out := make([]any, 0, len(vs))
		for _, e := range vs {
			ev, err := toRaw(e)
			if err != nil {
				return nil, err
			}
			out = append(out, ev)
		}
		return out, nil
	case fastjson.TypeObject:
		o, err := v.Object()
		if err != nil {
			return nil, err
		}
		out := make(serde.Object, 0, o.Len())
		var verr error
		o.Visit(func(key []byte, mv *fastjson.Value) {
			if verr != nil {
				return
			}
			val, err := toRaw(mv)
			if err != nil {
				verr = err
				return
			}
			out = append(out, serde.Member{Key: string(key), Value: val})
		})
		if verr != nil {
			return nil, verr
		}
		return out, nil
	}
	return nil, fmt.Errorf("fastjson: unsupported value type %s", v.Type())
}
