package serde

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/opikgo/serde/i18n"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType          = "invalid_type"
	CodeRequired             = "required"
	CodeUnknownKey           = "unknown_key"
	CodeDuplicateKey         = "duplicate_key"
	CodeInvalidFormat        = "invalid_format"
	CodeInvalidEnum          = "invalid_enum"
	CodeDiscriminatorMissing = "discriminator_missing"
	CodeDiscriminatorUnknown = "discriminator_unknown"
	CodeParseError           = "parse_error"
	CodeTruncated            = "truncated"
)

// Sentinels matched by errors.Is against Issues.
var (
	// ErrTypeMismatch matches invalid_type issues.
	ErrTypeMismatch = errors.New("serde: type mismatch")
	// ErrMissingRequiredField matches required issues.
	ErrMissingRequiredField = errors.New("serde: missing required field")
	// ErrUnparseableDate matches invalid_format issues raised by date schemas.
	ErrUnparseableDate = errors.New("serde: unparseable date")
	// ErrListElement matches any issue whose path crosses a list index.
	ErrListElement = errors.New("serde: invalid list element")
	// ErrInvalidSchema is wrapped by schema construction errors.
	ErrInvalidSchema = errors.New("serde: invalid schema")
)

// FormatDateTime is the Issue.Params["format"] value of date issues.
const FormatDateTime = "date-time"

// Segment is one step of an issue path. Field segments carry both the wire
// key and the model name; index segments carry a list position.
type Segment struct {
	Key     string
	Name    string
	Index   int
	IsIndex bool
}

// FieldSegment returns a field step. An empty name falls back to the wire key.
func FieldSegment(wire, name string) Segment {
	if name == "" {
		name = wire
	}
	return Segment{Key: wire, Name: name}
}

// IndexSegment returns a list index step.
func IndexSegment(i int) Segment { return Segment{Index: i, IsIndex: true} }

// Issue represents a single validation entry.
type Issue struct {
	Segments []Segment // Path from the root, outermost first.
	Code     string    // One of the codes listed above.
	Message  string
	Expected string // Expected kind, format or value set.
	Actual   string // Observed kind or value.
	Hint     string // Optional: remediation hints, format names, etc.
	Cause    error  // Optional: underlying error.
	// Params carries structured parameters (e.g., {"format":"date-time"})
	// for i18n and observability.
	Params map[string]any
}

var jsonPointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// Pointer renders the path as a JSON Pointer over wire keys
// (for example: /traces/2/span_id). The root renders as "/".
func (it Issue) Pointer() string {
	if len(it.Segments) == 0 {
		return "/"
	}
	var b strings.Builder
	for _, s := range it.Segments {
		b.WriteByte('/')
		if s.IsIndex {
			b.WriteString(strconv.Itoa(s.Index))
			continue
		}
		b.WriteString(jsonPointerEscaper.Replace(s.Key))
	}
	return b.String()
}

// FieldPath renders the path over model names (for example: traces[2].spanId).
// The root renders as "".
func (it Issue) FieldPath() string {
	var b strings.Builder
	for _, s := range it.Segments {
		if s.IsIndex {
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(s.Index))
			b.WriteByte(']')
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s.Name)
	}
	return b.String()
}

// Field returns the model name of the innermost field segment.
func (it Issue) Field() string {
	for i := len(it.Segments) - 1; i >= 0; i-- {
		if !it.Segments[i].IsIndex {
			return it.Segments[i].Name
		}
	}
	return ""
}

func (it Issue) crossesIndex() bool {
	for _, s := range it.Segments {
		if s.IsIndex {
			return true
		}
	}
	return false
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_type at /traces/1/start_time: expected string, got number
		fmt.Fprintf(b, "%s at %s", it.Code, it.Pointer())
		if it.Message != "" {
			fmt.Fprintf(b, ": %s", it.Message)
		}
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Is maps issue codes onto the package sentinels.
func (iss Issues) Is(target error) bool {
	for _, it := range iss {
		switch target {
		case ErrTypeMismatch:
			if it.Code == CodeInvalidType {
				return true
			}
		case ErrMissingRequiredField:
			if it.Code == CodeRequired {
				return true
			}
		case ErrUnparseableDate:
			if it.Code == CodeInvalidFormat && it.Params["format"] == FormatDateTime {
				return true
			}
		case ErrListElement:
			if it.crossesIndex() {
				return true
			}
		}
	}
	return false
}

// Unwrap exposes the underlying causes.
func (iss Issues) Unwrap() []error {
	var out []error
	for _, it := range iss {
		if it.Cause != nil {
			out = append(out, it.Cause)
		}
	}
	return out
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// ToIssues converts any error into Issues. Errors that are not Issues become
// a single parse_error at the root carrying the error as Cause.
func ToIssues(err error) Issues {
	if err == nil {
		return nil
	}
	if iss, ok := AsIssues(err); ok {
		return iss
	}
	return Issues{{Code: CodeParseError, Message: err.Error(), Cause: err}}
}

// PrependPath rebases every issue in err under seg. Errors that are not
// Issues are converted with ToIssues first.
func PrependPath(err error, seg Segment) error {
	if err == nil {
		return nil
	}
	src := ToIssues(err)
	out := make(Issues, len(src))
	for i, it := range src {
		segs := make([]Segment, 0, len(it.Segments)+1)
		segs = append(segs, seg)
		segs = append(segs, it.Segments...)
		it.Segments = segs
		out[i] = it
	}
	return out
}

// ---- constructors ----

// KindOf names the JSON kind of a raw value for messages.
func KindOf(raw any) string {
	switch raw.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case map[string]any, Object:
		return "object"
	case []any:
		return "array"
	}
	if IsNumber(raw) {
		return "number"
	}
	return fmt.Sprintf("%T", raw)
}

// TypeMismatch reports a raw value of the wrong JSON kind.
func TypeMismatch(expected string, raw any) Issues {
	actual := KindOf(raw)
	return Issues{{
		Code:     CodeInvalidType,
		Expected: expected,
		Actual:   actual,
		Message:  i18n.T(CodeInvalidType, map[string]string{"expected": expected, "actual": actual}),
	}}
}

// Required reports an absent required field.
func Required() Issues {
	return Issues{{Code: CodeRequired, Message: i18n.T(CodeRequired, nil)}}
}

// InvalidFormat reports a string that does not match format.
func InvalidFormat(format, actual string, cause error) Issues {
	return Issues{{
		Code:     CodeInvalidFormat,
		Expected: format,
		Actual:   actual,
		Cause:    cause,
		Message:  i18n.T(CodeInvalidFormat, map[string]string{"format": format, "actual": strconv.Quote(actual)}),
		Params:   map[string]any{"format": format},
	}}
}

// InvalidEnum reports a value outside of a closed set.
func InvalidEnum(allowed []string, actual string) Issues {
	exp := "[" + strings.Join(allowed, ", ") + "]"
	return Issues{{
		Code:     CodeInvalidEnum,
		Expected: exp,
		Actual:   actual,
		Message:  i18n.T(CodeInvalidEnum, map[string]string{"expected": exp, "actual": strconv.Quote(actual)}),
		Params:   map[string]any{"allowed": allowed},
	}}
}

// KeyIssue reports a key-level problem (unknown_key, duplicate_key,
// discriminator_missing) at the given path.
func KeyIssue(code, key string, segs ...Segment) Issue {
	return Issue{
		Segments: segs,
		Code:     code,
		Actual:   key,
		Message:  i18n.T(code, map[string]string{"key": key}),
	}
}

// NewIssue builds an issue with a translated message.
func NewIssue(code string, data map[string]string) Issues {
	return Issues{{Code: code, Message: i18n.T(code, data), Actual: data["actual"], Expected: data["expected"]}}
}

// SortByPointer orders issues by wire path for stable reporting.
func (iss Issues) SortByPointer() {
	sort.SliceStable(iss, func(i, j int) bool { return iss[i].Pointer() < iss[j].Pointer() })
}
