package engine

// Enforcement wrapper for TokenSource applying duplicate key handling and
// max depth checks in a streaming fashion.

// DuplicateStrictness controls duplicate key handling.
type DuplicateStrictness int

const (
	DupIgnore DuplicateStrictness = iota
	DupWarn
	DupError
)

// Issue codes produced by enforcement.
const (
	CodeDuplicateKey = "duplicate_key"
	CodeParseError   = "parse_error"
	CodeTruncated    = "truncated"
)

// PathElem is one step of the position of a token: an object key or an
// array index.
type PathElem struct {
	Key     string
	Index   int
	IsIndex bool
}

// SimpleIssue is a minimal issue representation used by the engine.
type SimpleIssue struct {
	Code    string
	Path    []PathElem
	Key     string
	Message string
}

// IssueError is a lightweight error carrying a SimpleIssue.
type IssueError struct{ SimpleIssue }

func (e IssueError) Error() string { return e.Message }

// EnforceOptions controls runtime enforcement behavior.
type EnforceOptions struct {
	OnDuplicate DuplicateStrictness
	MaxDepth    int
	MaxBytes    int64
	// IssueSink receives non-fatal issues (duplicate keys under DupWarn).
	IssueSink func(SimpleIssue)
}

// Enabled reports whether any check is active.
func (o EnforceOptions) Enabled() bool {
	return o.OnDuplicate != DupIgnore || o.MaxDepth > 0 || o.MaxBytes > 0
}

type frame struct {
	object    bool
	keys      map[string]struct{}
	nextIndex int
	// valuePending is set after a key until its value completes.
	valuePending bool
}

// WrapWithEnforcement returns a TokenSource that enforces duplicate key policy,
// maximum nesting depth, and maximum consumed bytes where the inner source
// reports its location.
func WrapWithEnforcement(inner TokenSource, opt EnforceOptions) TokenSource {
	if !opt.Enabled() {
		return inner
	}
	return &enforcingTokenSource{inner: inner, opt: opt}
}

type enforcingTokenSource struct {
	inner TokenSource
	opt   EnforceOptions
	stack []frame
	path  []PathElem
}

func (e *enforcingTokenSource) NextToken() (Token, error) {
	tok, err := e.inner.NextToken()
	if err != nil {
		return Token{}, err
	}

	switch tok.Kind {
	case KindBeginObject, KindBeginArray:
		e.enterValue()
		obj := tok.Kind == KindBeginObject
		f := frame{object: obj}
		if obj {
			f.keys = make(map[string]struct{})
		}
		e.stack = append(e.stack, f)
		if e.opt.MaxDepth > 0 && len(e.stack) > e.opt.MaxDepth {
			return Token{}, IssueError{SimpleIssue{Code: CodeParseError, Path: e.snapshot(), Message: "max depth exceeded"}}
		}
	case KindEndObject, KindEndArray:
		if n := len(e.stack); n > 0 {
			e.stack = e.stack[:n-1]
		}
		e.leaveValue()
	case KindKey:
		if n := len(e.stack); n > 0 && e.stack[n-1].object {
			top := &e.stack[n-1]
			e.path = append(e.path, PathElem{Key: tok.String})
			top.valuePending = true
			if e.opt.OnDuplicate != DupIgnore {
				if _, dup := top.keys[tok.String]; dup {
					si := SimpleIssue{Code: CodeDuplicateKey, Path: e.snapshot(), Key: tok.String, Message: "key '" + tok.String + "' duplicated"}
					if e.opt.OnDuplicate == DupError {
						return Token{}, IssueError{si}
					}
					if e.opt.IssueSink != nil {
						e.opt.IssueSink(si)
					}
				}
				top.keys[tok.String] = struct{}{}
			}
		}
	default:
		e.enterValue()
		e.leaveValue()
	}

	if e.opt.MaxBytes > 0 {
		if off := e.inner.Location(); off >= 0 && off > e.opt.MaxBytes {
			return Token{}, IssueError{SimpleIssue{Code: CodeTruncated, Path: e.snapshot(), Message: "max bytes exceeded"}}
		}
	}
	return tok, nil
}

// enterValue pushes the index segment for array elements.
func (e *enforcingTokenSource) enterValue() {
	n := len(e.stack)
	if n == 0 || e.stack[n-1].object {
		return
	}
	top := &e.stack[n-1]
	e.path = append(e.path, PathElem{Index: top.nextIndex, IsIndex: true})
	top.nextIndex++
}

// leaveValue pops the segment of the value that just completed.
func (e *enforcingTokenSource) leaveValue() {
	n := len(e.stack)
	if n == 0 {
		return
	}
	top := &e.stack[n-1]
	if top.object {
		if !top.valuePending {
			return
		}
		top.valuePending = false
	}
	if m := len(e.path); m > 0 {
		e.path = e.path[:m-1]
	}
}

func (e *enforcingTokenSource) snapshot() []PathElem {
	out := make([]PathElem, len(e.path))
	copy(out, e.path)
	return out
}

func (e *enforcingTokenSource) Location() int64 { return e.inner.Location() }
