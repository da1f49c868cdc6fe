package serde

import (
	"io"
	"sync"

	eng "github.com/opikgo/serde/internal/engine"
)

// TokenKind enumerates JSON token kinds.
type TokenKind int

const (
	TokenBeginObject = TokenKind(eng.KindBeginObject)
	TokenEndObject   = TokenKind(eng.KindEndObject)
	TokenBeginArray  = TokenKind(eng.KindBeginArray)
	TokenEndArray    = TokenKind(eng.KindEndArray)
	TokenKey         = TokenKind(eng.KindKey)
	TokenString      = TokenKind(eng.KindString)
	TokenNumber      = TokenKind(eng.KindNumber)
	TokenBool        = TokenKind(eng.KindBool)
	TokenNull        = TokenKind(eng.KindNull)
)

func (k TokenKind) String() string { return eng.Kind(k).String() }

// Token describes a token in the input stream. Offset records the byte position
// when known (-1 otherwise).
type Token struct {
	Kind   TokenKind
	String string // Stored for key/string tokens.
	Number string // Stored as JSON number text.
	Bool   bool
	Offset int64
}

// Source abstracts over polymorphic input sources.
type Source interface {
	NextToken() (Token, error)
	Location() int64 // byte offset; -1 if unknown
}

// JSONDriver converts JSON input into a Source via a pluggable SPI. The default
// implementation is based on goccy/go-json and may be swapped with SetJSONDriver.
type JSONDriver interface {
	NewReader(r io.Reader) Source
	NewBytes(b []byte) Source
	Name() string
}

var (
	jsonDriverMu      sync.RWMutex
	currentJSONDriver JSONDriver = defaultJSONDriver{}
)

// SetJSONDriver replaces the global JSON driver; nil values are ignored.
func SetJSONDriver(d JSONDriver) {
	if d == nil {
		return
	}
	jsonDriverMu.Lock()
	currentJSONDriver = d
	jsonDriverMu.Unlock()
}

// UseDefaultJSONDriver restores the default go-json-backed driver.
func UseDefaultJSONDriver() {
	jsonDriverMu.Lock()
	currentJSONDriver = defaultJSONDriver{}
	jsonDriverMu.Unlock()
}

// CurrentJSONDriver returns the driver used by JSONBytes and JSONReader.
func CurrentJSONDriver() JSONDriver {
	jsonDriverMu.RLock()
	d := currentJSONDriver
	jsonDriverMu.RUnlock()
	return d
}

// DefaultJSONDriver returns the built-in go-json driver.
func DefaultJSONDriver() JSONDriver { return defaultJSONDriver{} }

type defaultJSONDriver struct{}

func (defaultJSONDriver) NewReader(r io.Reader) Source {
	return &engineSourceAdapter{inner: eng.NewJSONReader(r)}
}
func (defaultJSONDriver) NewBytes(b []byte) Source {
	return &engineSourceAdapter{inner: eng.NewJSONBytes(b)}
}
func (defaultJSONDriver) Name() string { return "gojson" }

// JSONReader wraps an io.Reader as a JSON Source.
func JSONReader(r io.Reader) Source { return CurrentJSONDriver().NewReader(r) }

// JSONBytes wraps a byte slice as a JSON Source.
func JSONBytes(b []byte) Source { return CurrentJSONDriver().NewBytes(b) }

// ValueSource replays an in-memory raw value as a Source. Object members keep
// their order (duplicates included); map keys are replayed sorted. Drivers
// that materialize a document tree first hand it to ParseFrom through here.
func ValueSource(v any) Source {
	return &engineSourceAdapter{inner: eng.TreeSource(v)}
}

// ---- adapters between the public Source and the engine TokenSource ----

type engineSourceAdapter struct{ inner eng.TokenSource }

func (s *engineSourceAdapter) NextToken() (Token, error) {
	t, err := s.inner.NextToken()
	if err != nil {
		return Token{}, err
	}
	return Token{Kind: TokenKind(t.Kind), String: t.String, Number: t.Number, Bool: t.Bool, Offset: t.Offset}, nil
}

func (s *engineSourceAdapter) Location() int64 { return s.inner.Location() }

type tokenSourceAdapter struct{ inner Source }

func (a *tokenSourceAdapter) NextToken() (eng.Token, error) {
	t, err := a.inner.NextToken()
	if err != nil {
		return eng.Token{}, err
	}
	return eng.Token{Kind: eng.Kind(t.Kind), String: t.String, Number: t.Number, Bool: t.Bool, Offset: t.Offset}, nil
}

func (a *tokenSourceAdapter) Location() int64 { return a.inner.Location() }

func engineTokenSource(s Source) eng.TokenSource {
	if ea, ok := s.(*engineSourceAdapter); ok {
		return ea.inner
	}
	return &tokenSourceAdapter{inner: s}
}

// ErrorSource returns a Source whose first token read fails with err.
// Drivers use it to surface input errors through ParseFrom.
func ErrorSource(err error) Source { return errorSource{err: err} }

type errorSource struct{ err error }

func (s errorSource) NextToken() (Token, error) { return Token{}, s.err }
func (errorSource) Location() int64             { return -1 }
