package serde

import (
	"bytes"
	"sort"

	gojson "github.com/goccy/go-json"
)

// Member is a single key/value pair of a raw Object.
type Member struct {
	Key   string
	Value any
}

// Object is an ordered raw JSON object. Serialize emits objects in this form
// so that wire payloads follow schema declaration order rather than Go map
// iteration order.
type Object []Member

// Get returns the value stored under key.
func (o Object) Get(key string) (any, bool) {
	for i := range o {
		if o[i].Key == key {
			return o[i].Value, true
		}
	}
	return nil, false
}

// Keys returns the member keys in order.
func (o Object) Keys() []string {
	out := make([]string, len(o))
	for i := range o {
		out[i] = o[i].Key
	}
	return out
}

// RangeMembers calls fn for each member in order.
func (o Object) RangeMembers(fn func(key string, v any)) {
	for _, mb := range o {
		fn(mb.Key, mb.Value)
	}
}

// Map converts the object into a map, dropping order. Nested Objects are
// converted as well so the result only contains plain JSON-compatible values.
func (o Object) Map() map[string]any {
	m := make(map[string]any, len(o))
	for _, mb := range o {
		m[mb.Key] = Plain(mb.Value)
	}
	return m
}

// MarshalJSON writes members in order.
func (o Object) MarshalJSON() ([]byte, error) {
	if o == nil {
		return []byte("{}"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, mb := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := gojson.Marshal(mb.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := gojson.Marshal(mb.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Plain converts Objects nested anywhere inside v into map[string]any.
func Plain(v any) any {
	switch t := v.(type) {
	case Object:
		return t.Map()
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = Plain(t[i])
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = Plain(val)
		}
		return out
	default:
		return v
	}
}

// Ordered converts maps nested anywhere inside v into key-sorted Objects,
// producing a deterministic raw tree.
func Ordered(v any) any {
	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make(Object, 0, len(keys))
		for _, k := range keys {
			out = append(out, Member{Key: k, Value: Ordered(t[k])})
		}
		return out
	case Object:
		out := make(Object, len(t))
		for i, mb := range t {
			out[i] = Member{Key: mb.Key, Value: Ordered(mb.Value)}
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = Ordered(t[i])
		}
		return out
	default:
		return v
	}
}

// RawObject views raw as an object. It accepts map[string]any and Object.
// The returned lookup reports whether a key is present; each reports every
// member (in order for Object, key-sorted for maps).
func RawObject(raw any) (lookup func(key string) (any, bool), each func(fn func(key string, v any)), ok bool) {
	switch t := raw.(type) {
	case map[string]any:
		lookup = func(key string) (any, bool) {
			v, ok := t[key]
			return v, ok
		}
		each = func(fn func(string, any)) {
			keys := make([]string, 0, len(t))
			for k := range t {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fn(k, t[k])
			}
		}
		return lookup, each, true
	case Object:
		return t.Get, t.RangeMembers, true
	default:
		return nil, nil, false
	}
}
