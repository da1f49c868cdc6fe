package dsl

import (
	"context"
	"fmt"
	"reflect"
	"sort"

	serde "github.com/opikgo/serde"
	"github.com/opikgo/serde/i18n"
	js "github.com/opikgo/serde/jsonschema"
)

// UnionVariant is one alternative of a discriminated union over T.
type UnionVariant[T any] interface {
	variant() variantPlan[T]
}

type variantPlan[T any] struct {
	tag    string
	typ    reflect.Type
	parse  func(ctx context.Context, raw any) (T, error)
	match  func(v T) bool
	encode func(ctx context.Context, v T) (any, error)
	schema func() (*js.Schema, error)
}

// Variant declares that discriminant value tag selects schema s. V must be
// assignable to T (typically T is an interface implemented by V).
func Variant[T, V any](tag string, s serde.Schema[V]) UnionVariant[T] {
	return variant[T, V]{tag: tag, s: s}
}

type variant[T, V any] struct {
	tag string
	s   serde.Schema[V]
}

func (vr variant[T, V]) variant() variantPlan[T] {
	s := vr.s
	return variantPlan[T]{
		tag: vr.tag,
		typ: reflect.TypeFor[V](),
		parse: func(ctx context.Context, raw any) (T, error) {
			var zero T
			x, err := s.Parse(ctx, raw)
			if err != nil {
				return zero, err
			}
			t, _ := any(x).(T)
			return t, nil
		},
		match: func(v T) bool {
			_, ok := any(v).(V)
			return ok
		},
		encode: func(ctx context.Context, v T) (any, error) {
			return s.Serialize(ctx, any(v).(V))
		},
		schema: s.JSONSchema,
	}
}

// UnionBuilder collects union variants.
type UnionBuilder[T any] struct {
	discriminant string
	variants     []UnionVariant[T]
}

// UnionOf starts a discriminated union keyed by the wire property
// discriminant.
func UnionOf[T any](discriminant string, variants ...UnionVariant[T]) *UnionBuilder[T] {
	return &UnionBuilder[T]{discriminant: discriminant, variants: variants}
}

// Build validates the declaration. Errors wrap serde.ErrInvalidSchema.
func (b *UnionBuilder[T]) Build() (*UnionSchema[T], error) {
	if b.discriminant == "" {
		return nil, fmt.Errorf("%w: union needs a discriminant", serde.ErrInvalidSchema)
	}
	tt := reflect.TypeFor[T]()
	u := &UnionSchema[T]{discriminant: b.discriminant, byTag: make(map[string]int, len(b.variants))}
	for _, v := range b.variants {
		if v == nil {
			return nil, fmt.Errorf("%w: nil union variant", serde.ErrInvalidSchema)
		}
		p := v.variant()
		if _, dup := u.byTag[p.tag]; dup {
			return nil, fmt.Errorf("%w: duplicate union tag %q", serde.ErrInvalidSchema, p.tag)
		}
		if !p.typ.AssignableTo(tt) {
			return nil, fmt.Errorf("%w: variant %q type %s is not assignable to %s", serde.ErrInvalidSchema, p.tag, p.typ, tt)
		}
		for _, q := range u.variants {
			if q.typ == p.typ {
				return nil, fmt.Errorf("%w: variants %q and %q share type %s", serde.ErrInvalidSchema, q.tag, p.tag, p.typ)
			}
		}
		u.byTag[p.tag] = len(u.variants)
		u.variants = append(u.variants, p)
	}
	return u, nil
}

// MustBuild is like Build but panics on error.
func (b *UnionBuilder[T]) MustBuild() *UnionSchema[T] {
	u, err := b.Build()
	if err != nil {
		panic(err)
	}
	return u
}

// UnionSchema selects a variant schema by the discriminant property. The
// discriminant is removed before the variant parses and written first when
// serializing.
type UnionSchema[T any] struct {
	discriminant string
	variants     []variantPlan[T]
	byTag        map[string]int
}

func (u *UnionSchema[T]) Parse(ctx context.Context, v any) (T, error) {
	var zero T
	lookup, each, ok := serde.RawObject(v)
	if !ok {
		return zero, serde.TypeMismatch("object", v)
	}
	seg := serde.FieldSegment(u.discriminant, u.discriminant)
	dv, present := lookup(u.discriminant)
	if !present {
		return zero, serde.Issues{serde.KeyIssue(serde.CodeDiscriminatorMissing, u.discriminant, seg)}
	}
	tag, ok := dv.(string)
	if !ok {
		return zero, serde.PrependPath(serde.TypeMismatch("string", dv), seg)
	}
	idx, ok := u.byTag[tag]
	if !ok {
		return zero, serde.PrependPath(serde.NewIssue(serde.CodeDiscriminatorUnknown, map[string]string{"actual": tag}), seg)
	}
	rest := make(serde.Object, 0)
	each(func(k string, val any) {
		if k != u.discriminant {
			rest = append(rest, serde.Member{Key: k, Value: val})
		}
	})
	return u.variants[idx].parse(ctx, rest)
}

func (u *UnionSchema[T]) Serialize(ctx context.Context, v T) (any, error) {
	for _, p := range u.variants {
		if !p.match(v) {
			continue
		}
		raw, err := p.encode(ctx, v)
		if err != nil {
			return nil, err
		}
		obj, ok := raw.(serde.Object)
		if !ok {
			return nil, serde.TypeMismatch("object", raw)
		}
		out := make(serde.Object, 0, len(obj)+1)
		out = append(out, serde.Member{Key: u.discriminant, Value: p.tag})
		for _, m := range obj {
			if m.Key != u.discriminant {
				out = append(out, m)
			}
		}
		return out, nil
	}
	return nil, serde.Issues{{
		Code:    serde.CodeDiscriminatorUnknown,
		Actual:  fmt.Sprintf("%T", v),
		Message: i18n.T(serde.CodeDiscriminatorUnknown, map[string]string{"actual": fmt.Sprintf("%T", v)}),
	}}
}

func (u *UnionSchema[T]) JSONSchema() (*js.Schema, error) {
	out := &js.Schema{
		OneOf:         make([]*js.Schema, 0, len(u.variants)),
		Discriminator: &js.Discriminator{PropertyName: u.discriminant},
	}
	tags := make([]string, 0, len(u.variants))
	for _, p := range u.variants {
		tags = append(tags, p.tag)
	}
	sort.Strings(tags)
	for _, tag := range tags {
		p := u.variants[u.byTag[tag]]
		vs, err := p.schema()
		if err != nil {
			return nil, err
		}
		vs = vs.Clone()
		props := make(map[string]*js.Schema, len(vs.Properties)+1)
		for k, ps := range vs.Properties {
			props[k] = ps
		}
		props[u.discriminant] = &js.Schema{Type: "string", Enum: []any{tag}}
		vs.Properties = props
		vs.Required = append([]string{u.discriminant}, vs.Required...)
		out.OneOf = append(out.OneOf, vs)
	}
	return out, nil
}
