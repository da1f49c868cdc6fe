package serde

import (
	"bytes"
	"context"
	"errors"
	"io"

	gojson "github.com/goccy/go-json"

	"github.com/opikgo/serde/i18n"
	eng "github.com/opikgo/serde/internal/engine"
)

// ParseFrom is the primary entry point. It consumes tokens from the Source
// under the enforcement configured by opts, builds a raw value and delegates
// conversion to the Schema.
func ParseFrom[T any](ctx context.Context, s Schema[T], src Source, opts ...ParseOpt) (T, error) {
	var zero T
	if s == nil {
		return zero, singleIssue(CodeParseError, "nil schema")
	}
	opt := lastOpt(opts)
	if opt.CollectAll {
		ctx = WithCollectAll(ctx, true)
	}
	raw, err := DecodeSource(src, opt)
	if err != nil {
		return zero, err
	}
	return s.Parse(ctx, raw)
}

// Unmarshal parses JSON bytes through the current JSON driver. MaxBytes is
// enforced up front on the input length.
func Unmarshal[T any](ctx context.Context, s Schema[T], data []byte, opts ...ParseOpt) (T, error) {
	if limit := lastOpt(opts).MaxBytes; limit > 0 && int64(len(data)) > limit {
		var zero T
		return zero, singleIssue(CodeTruncated, i18n.T(CodeTruncated, nil))
	}
	return ParseFrom(ctx, s, JSONBytes(data), opts...)
}

// StreamParse parses JSON read from r. When MaxBytes is set it enforces the
// size cap up front, otherwise it streams tokens through the JSON driver.
func StreamParse[T any](ctx context.Context, s Schema[T], r io.Reader, opts ...ParseOpt) (T, error) {
	if limit := lastOpt(opts).MaxBytes; limit > 0 {
		data, err := io.ReadAll(io.LimitReader(r, limit+1))
		if err != nil {
			var zero T
			return zero, ToIssues(err)
		}
		return Unmarshal(ctx, s, data, opts...)
	}
	return ParseFrom(ctx, s, JSONReader(r), opts...)
}

// Marshal serializes v and encodes the raw value as compact JSON.
func Marshal[T any](ctx context.Context, s Schema[T], v T) ([]byte, error) {
	raw, err := s.Serialize(ctx, v)
	if err != nil {
		return nil, err
	}
	return gojson.Marshal(raw)
}

// MarshalIndent is like Marshal but indents the output.
func MarshalIndent[T any](ctx context.Context, s Schema[T], v T, indent string) ([]byte, error) {
	b, err := Marshal(ctx, s, v)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := gojson.Indent(&out, b, "", indent); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// DecodeSource reads exactly one document from src into a raw value, applying
// duplicate-key and depth enforcement. Failures are returned as Issues.
func DecodeSource(src Source, opt ParseOpt) (any, error) {
	var sink func(eng.SimpleIssue)
	if opt.OnWarning != nil {
		sink = func(si eng.SimpleIssue) { opt.OnWarning(fromSimpleIssue(si)) }
	}
	enforced := eng.WrapWithEnforcement(engineTokenSource(src), eng.EnforceOptions{
		OnDuplicate: toEngineDup(opt.Strictness.OnDuplicateKey),
		MaxDepth:    opt.MaxDepth,
		MaxBytes:    opt.MaxBytes,
		IssueSink:   sink,
	})
	v, err := eng.DecodeDocument(enforced)
	if err != nil {
		return nil, decodeIssues(err)
	}
	return v, nil
}

// ---- helpers (parse options, error mapping) ----

func lastOpt(opts []ParseOpt) ParseOpt {
	if len(opts) == 0 {
		return ParseOpt{}
	}
	return opts[len(opts)-1]
}

func toEngineDup(s Severity) eng.DuplicateStrictness {
	switch s {
	case Warn:
		return eng.DupWarn
	case Error:
		return eng.DupError
	default:
		return eng.DupIgnore
	}
}

func decodeIssues(err error) Issues {
	var ie eng.IssueError
	if errors.As(err, &ie) {
		return Issues{fromSimpleIssue(ie.SimpleIssue)}
	}
	if iss, ok := AsIssues(err); ok {
		return iss
	}
	return Issues{{Code: CodeParseError, Message: i18n.T(CodeParseError, nil) + ": " + err.Error(), Cause: err}}
}

func fromSimpleIssue(si eng.SimpleIssue) Issue {
	segs := make([]Segment, len(si.Path))
	for i, p := range si.Path {
		if p.IsIndex {
			segs[i] = IndexSegment(p.Index)
		} else {
			segs[i] = FieldSegment(p.Key, p.Key)
		}
	}
	msg := si.Message
	if si.Code == CodeDuplicateKey {
		msg = i18n.T(CodeDuplicateKey, map[string]string{"key": si.Key})
	}
	return Issue{Segments: segs, Code: si.Code, Message: msg, Actual: si.Key}
}

func singleIssue(code, msg string) Issues { return Issues{{Code: code, Message: msg}} }
