package codec

import (
	"context"

	serde "github.com/opikgo/serde"
)

// Identity returns a Codec[T,T] that performs identity transformations.
func Identity[T any]() serde.Codec[T, T] { return identityCodec[T]{} }

type identityCodec[T any] struct{}

func (identityCodec[T]) Decode(_ context.Context, a T) (T, error) { return a, nil }
func (identityCodec[T]) Encode(_ context.Context, b T) (T, error) { return b, nil }

// Func builds a Codec from a pair of conversion functions.
func Func[A, B any](decode func(context.Context, A) (B, error), encode func(context.Context, B) (A, error)) serde.Codec[A, B] {
	return funcCodec[A, B]{decode: decode, encode: encode}
}

type funcCodec[A, B any] struct {
	decode func(context.Context, A) (B, error)
	encode func(context.Context, B) (A, error)
}

func (c funcCodec[A, B]) Decode(ctx context.Context, a A) (B, error) { return c.decode(ctx, a) }
func (c funcCodec[A, B]) Encode(ctx context.Context, b B) (A, error) { return c.encode(ctx, b) }
