// Package dsl provides the schema combinators for serde.
//
// Overview
//   - Primitives: String()/Bool()/Float()/Int()/Number()/Date()/UUID()/Enum(...)/Unknown().
//   - Modifiers: Optional(s) (absent), Nullable(s) (null), OptionalNullable(s) (both, three states).
//   - Objects: ObjectOf[T](Field(...), Property(...)).Build() binds wire keys to struct fields
//     through typed selectors; unknown keys are stripped unless UnknownStrict/UnknownPassthrough.
//   - Collections: List(elem), Record(value).
//   - Unions: UnionOf[T](discriminant, Variant[T, V](tag, s)...).Build().
//   - Conversions: Transform(s, codec) lifts a serde.Codec over a wire schema.
//   - Recursion: Lazy(func() serde.Schema[T]).
//
// Every schema is built once and never mutated afterwards, so schemas can be
// shared across goroutines.
//
// Error model
//
// Composite schemas rebase child issues under their own path segment: an
// object adds the field (wire key and model name), a list adds the index.
// The default is to stop at the first issue; serde.WithCollectAll(ctx, true)
// makes objects, lists and records report every issue.
//
// Example
//
//	type Span struct {
//	    TraceID serde.Optional[string] `json:"traceId"`
//	    Name    string                 `json:"name"`
//	}
//
//	var spanSchema = dsl.ObjectOf(
//	    dsl.Property("trace_id", func(s *Span) *serde.Optional[string] { return &s.TraceID }, dsl.Optional(dsl.String())),
//	    dsl.Field(func(s *Span) *string { return &s.Name }, dsl.String()),
//	).MustBuild()
//
//	span, err := spanSchema.Parse(ctx, map[string]any{"trace_id": "abc", "name": "llm"})
package dsl
