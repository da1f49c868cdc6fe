package serde

import "fmt"

// Optional marks a model field that may be absent from the wire object.
// The zero value is absent. Its shape mirrors sql.Null[T].
type Optional[T any] struct {
	V   T
	Set bool // Set is true when the field was present.
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] { return Optional[T]{V: v, Set: true} }

// None returns an absent Optional.
func None[T any]() Optional[T] { return Optional[T]{} }

// IsSet reports whether the value is present.
func (o Optional[T]) IsSet() bool { return o.Set }

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) { return o.V, o.Set }

// OrElse returns the value when present and def otherwise.
func (o Optional[T]) OrElse(def T) T {
	if o.Set {
		return o.V
	}
	return def
}

func (o Optional[T]) String() string {
	if !o.Set {
		return "None"
	}
	return fmt.Sprintf("Some(%v)", o.V)
}

// Nullable marks a model value that may be an explicit JSON null.
// The zero value is null.
type Nullable[T any] struct {
	V     T
	Valid bool // Valid is true when the value is not null.
}

// Value returns a non-null Nullable holding v.
func Value[T any](v T) Nullable[T] { return Nullable[T]{V: v, Valid: true} }

// Null returns a null Nullable.
func Null[T any]() Nullable[T] { return Nullable[T]{} }

// Get returns the value and whether it is non-null.
func (n Nullable[T]) Get() (T, bool) { return n.V, n.Valid }

// IsNull reports whether the value is null.
func (n Nullable[T]) IsNull() bool { return !n.Valid }

func (n Nullable[T]) String() string {
	if !n.Valid {
		return "Null"
	}
	return fmt.Sprintf("Value(%v)", n.V)
}

// SomeValue is shorthand for the present, non-null state of an
// Optional[Nullable[T]] field.
func SomeValue[T any](v T) Optional[Nullable[T]] { return Some(Value(v)) }

// SomeNull is shorthand for the present-but-null state of an
// Optional[Nullable[T]] field.
func SomeNull[T any]() Optional[Nullable[T]] { return Some(Null[T]()) }
