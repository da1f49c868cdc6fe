package codec

import (
	"context"

	"github.com/google/uuid"

	serde "github.com/opikgo/serde"
)

// FormatUUID is the Issue.Params["format"] value of UUID issues.
const FormatUUID = "uuid"

// UUIDString returns a Codec between the canonical string form and uuid.UUID.
// Decode accepts every form uuid.Parse does (braced, urn-prefixed, no dashes);
// Encode emits the lower-case 36 character form.
func UUIDString() serde.Codec[string, uuid.UUID] { return uuidCodec{} }

type uuidCodec struct{}

func (uuidCodec) Decode(_ context.Context, a string) (uuid.UUID, error) {
	id, err := uuid.Parse(a)
	if err != nil {
		return uuid.Nil, serde.InvalidFormat(FormatUUID, a, err)
	}
	return id, nil
}

func (uuidCodec) Encode(_ context.Context, b uuid.UUID) (string, error) {
	return b.String(), nil
}
