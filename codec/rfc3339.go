package codec

import (
	"context"
	"errors"
	"time"

	serde "github.com/opikgo/serde"
)

// TimeRFC3339 returns a Codec that converts between RFC3339 strings and time.Time.
// Decode accepts RFC3339 with or without fractional seconds and, as a fallback,
// zone-less ISO-8601 timestamps (read as UTC). Encode always emits the
// canonical UTC form.
func TimeRFC3339() serde.Codec[string, time.Time] { return rfc3339Codec{} }

type rfc3339Codec struct{}

func (rfc3339Codec) Decode(_ context.Context, a string) (time.Time, error) {
	t, err := ParseTime(a)
	if err != nil {
		return time.Time{}, serde.InvalidFormat(serde.FormatDateTime, a, err)
	}
	return t, nil
}

func (rfc3339Codec) Encode(_ context.Context, b time.Time) (string, error) {
	if y := b.UTC().Year(); y < 0 || y > 9999 {
		return "", serde.InvalidFormat(serde.FormatDateTime, b.String(), errYearRange)
	}
	return FormatTime(b), nil
}

var errYearRange = errors.New("year outside [0,9999]")

// zone-less layouts tried after RFC3339.
var isoLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// ParseTime parses an ISO-8601 timestamp.
func ParseTime(s string) (time.Time, error) {
	// Accept RFC3339Nano (trailing zeros optional)
	t, err := time.Parse(time.RFC3339Nano, s)
	if err == nil {
		return t, nil
	}
	if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
		return t2, nil
	}
	for _, layout := range isoLayouts {
		if t2, err2 := time.ParseInLocation(layout, s, time.UTC); err2 == nil {
			return t2, nil
		}
	}
	return time.Time{}, err
}

// FormatTime renders t in UTC using RFC3339Nano (Go trims trailing zeros).
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
