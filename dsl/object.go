package dsl

import (
	"context"
	"fmt"
	"sort"

	serde "github.com/opikgo/serde"
	js "github.com/opikgo/serde/jsonschema"
)

// Binding declares one object field: its wire key, the model field it is
// stored in and the schema converting it. Create bindings with Field and
// Property.
type Binding[T any] interface {
	plan() (fieldPlan[T], error)
}

// fieldPlan is the type-erased form of a binding used at run time.
type fieldPlan[T any] struct {
	wire     string
	name     string
	goName   string
	required bool
	parse    func(ctx context.Context, raw any, present bool, dst *T) error
	encode   func(ctx context.Context, src *T) (raw any, omit bool, err error)
	schema   func() (*js.Schema, error)
}

// Field binds a model field whose wire key equals its model name.
func Field[T, F any](sel func(*T) *F, s serde.Schema[F]) Binding[T] {
	return binding[T, F]{sel: sel, s: s}
}

// Property binds a model field to a renamed wire key (e.g. "trace_id").
func Property[T, F any](wire string, sel func(*T) *F, s serde.Schema[F]) Binding[T] {
	return binding[T, F]{wire: wire, sel: sel, s: s}
}

type binding[T, F any] struct {
	wire string
	sel  func(*T) *F
	s    serde.Schema[F]
}

func (b binding[T, F]) plan() (fieldPlan[T], error) {
	sf, err := resolveSelector(b.sel)
	if err != nil {
		return fieldPlan[T]{}, err
	}
	if b.s == nil {
		return fieldPlan[T]{}, fmt.Errorf("%w: field %s has no schema", serde.ErrInvalidSchema, sf.goName)
	}
	wire := b.wire
	if wire == "" {
		wire = sf.model
	}
	mp, missingOK := b.s.(serde.MissingParser[F])
	om, omits := b.s.(serde.Omitter[F])
	sel, s := b.sel, b.s
	return fieldPlan[T]{
		wire:     wire,
		name:     sf.model,
		goName:   sf.goName,
		required: !missingOK,
		parse: func(ctx context.Context, raw any, present bool, dst *T) error {
			if !present {
				if !missingOK {
					return serde.Required()
				}
				v, err := mp.ParseMissing(ctx)
				if err != nil {
					return err
				}
				*sel(dst) = v
				return nil
			}
			v, err := s.Parse(ctx, raw)
			if err != nil {
				return err
			}
			*sel(dst) = v
			return nil
		},
		encode: func(ctx context.Context, src *T) (any, bool, error) {
			v := *sel(src)
			if omits && om.Omit(v) {
				return nil, true, nil
			}
			raw, err := s.Serialize(ctx, v)
			return raw, false, err
		},
		schema: s.JSONSchema,
	}, nil
}

// ObjectBuilder collects bindings and options for an object schema of T.
type ObjectBuilder[T any] struct {
	bindings []Binding[T]
	unknown  serde.UnknownPolicy
	extras   func(*T) *map[string]any
	title    string
}

// ObjectOf starts an object schema over struct type T. Fields are parsed and
// serialized in the order given.
func ObjectOf[T any](bindings ...Binding[T]) *ObjectBuilder[T] {
	return &ObjectBuilder[T]{bindings: bindings}
}

// UnknownStrip drops undeclared wire keys (default).
func (b *ObjectBuilder[T]) UnknownStrip() *ObjectBuilder[T] {
	b.unknown, b.extras = serde.UnknownStrip, nil
	return b
}

// UnknownStrict rejects undeclared wire keys with unknown_key.
func (b *ObjectBuilder[T]) UnknownStrict() *ObjectBuilder[T] {
	b.unknown, b.extras = serde.UnknownStrict, nil
	return b
}

// UnknownPassthrough keeps undeclared wire keys in the map field selected by
// sel and re-emits them, key-sorted, after the declared fields.
func (b *ObjectBuilder[T]) UnknownPassthrough(sel func(*T) *map[string]any) *ObjectBuilder[T] {
	b.unknown, b.extras = serde.UnknownPassthrough, sel
	return b
}

// Title names the object in its JSON Schema.
func (b *ObjectBuilder[T]) Title(name string) *ObjectBuilder[T] {
	b.title = name
	return b
}

// Build validates the declaration and returns the schema. Errors wrap
// serde.ErrInvalidSchema.
func (b *ObjectBuilder[T]) Build() (*ObjectSchema[T], error) {
	s := &ObjectSchema[T]{
		fields:  make([]fieldPlan[T], 0, len(b.bindings)),
		known:   make(map[string]struct{}, len(b.bindings)),
		unknown: b.unknown,
		extras:  b.extras,
		title:   b.title,
	}
	names := make(map[string]struct{}, len(b.bindings))
	goNames := make(map[string]struct{}, len(b.bindings))
	for _, bd := range b.bindings {
		if bd == nil {
			return nil, fmt.Errorf("%w: nil binding", serde.ErrInvalidSchema)
		}
		fp, err := bd.plan()
		if err != nil {
			return nil, err
		}
		if _, dup := s.known[fp.wire]; dup {
			return nil, fmt.Errorf("%w: duplicate wire key %q", serde.ErrInvalidSchema, fp.wire)
		}
		if _, dup := names[fp.name]; dup {
			return nil, fmt.Errorf("%w: duplicate model name %q", serde.ErrInvalidSchema, fp.name)
		}
		if _, dup := goNames[fp.goName]; dup {
			return nil, fmt.Errorf("%w: field %s bound twice", serde.ErrInvalidSchema, fp.goName)
		}
		s.known[fp.wire] = struct{}{}
		names[fp.name] = struct{}{}
		goNames[fp.goName] = struct{}{}
		s.fields = append(s.fields, fp)
	}
	if b.unknown == serde.UnknownPassthrough {
		if b.extras == nil {
			return nil, fmt.Errorf("%w: passthrough needs a target field", serde.ErrInvalidSchema)
		}
		sf, err := resolveSelector(b.extras)
		if err != nil {
			return nil, err
		}
		if _, dup := goNames[sf.goName]; dup {
			return nil, fmt.Errorf("%w: passthrough target %s is also a declared field", serde.ErrInvalidSchema, sf.goName)
		}
	}
	return s, nil
}

// MustBuild is like Build but panics on error.
func (b *ObjectBuilder[T]) MustBuild() *ObjectSchema[T] {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

// ObjectSchema converts between wire objects and struct values of T.
// It is immutable and safe for concurrent use.
type ObjectSchema[T any] struct {
	fields  []fieldPlan[T]
	known   map[string]struct{}
	unknown serde.UnknownPolicy
	extras  func(*T) *map[string]any
	title   string
}

// FieldInfo describes a declared field.
type FieldInfo struct {
	Wire     string
	Name     string
	Required bool
}

// Fields lists the declared fields in declaration order.
func (s *ObjectSchema[T]) Fields() []FieldInfo {
	out := make([]FieldInfo, len(s.fields))
	for i, f := range s.fields {
		out[i] = FieldInfo{Wire: f.wire, Name: f.name, Required: f.required}
	}
	return out
}

func (s *ObjectSchema[T]) Parse(ctx context.Context, v any) (T, error) {
	var out T
	lookup, each, ok := serde.RawObject(v)
	if !ok {
		return out, serde.TypeMismatch("object", v)
	}
	c := newCollector(ctx)
	for _, f := range s.fields {
		raw, present := lookup(f.wire)
		if c.add(f.parse(ctx, raw, present, &out), serde.FieldSegment(f.wire, f.name)) {
			return out, c.err()
		}
	}
	switch s.unknown {
	case serde.UnknownStrict:
		stop := false
		each(func(k string, _ any) {
			if stop {
				return
			}
			if _, ok := s.known[k]; !ok {
				stop = c.issue(serde.KeyIssue(serde.CodeUnknownKey, k, serde.FieldSegment(k, k)))
			}
		})
	case serde.UnknownPassthrough:
		var extra map[string]any
		each(func(k string, raw any) {
			if _, ok := s.known[k]; ok {
				return
			}
			if extra == nil {
				extra = make(map[string]any)
			}
			extra[k] = serde.Plain(raw)
		})
		*s.extras(&out) = extra
	}
	return out, c.err()
}

func (s *ObjectSchema[T]) Serialize(ctx context.Context, v T) (any, error) {
	out := make(serde.Object, 0, len(s.fields))
	c := newCollector(ctx)
	for _, f := range s.fields {
		raw, omit, err := f.encode(ctx, &v)
		if err != nil {
			if c.add(err, serde.FieldSegment(f.wire, f.name)) {
				return nil, c.err()
			}
			continue
		}
		if !omit {
			out = append(out, serde.Member{Key: f.wire, Value: raw})
		}
	}
	if s.unknown == serde.UnknownPassthrough {
		extra := *s.extras(&v)
		keys := make([]string, 0, len(extra))
		for k := range extra {
			if _, declared := s.known[k]; !declared {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		for _, k := range keys {
			out = append(out, serde.Member{Key: k, Value: serde.Ordered(extra[k])})
		}
	}
	if err := c.err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *ObjectSchema[T]) JSONSchema() (*js.Schema, error) {
	out := &js.Schema{
		Type:       "object",
		Title:      s.title,
		Properties: make(map[string]*js.Schema, len(s.fields)),
	}
	for _, f := range s.fields {
		fs, err := f.schema()
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.wire, err)
		}
		out.Properties[f.wire] = fs
		if f.required {
			out.Required = append(out.Required, f.wire)
		}
	}
	switch s.unknown {
	case serde.UnknownStrict:
		out.AdditionalProperties = false
	case serde.UnknownPassthrough:
		out.AdditionalProperties = true
	}
	return out, nil
}
