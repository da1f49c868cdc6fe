package serde

// UnknownPolicy controls how undeclared wire keys are handled by object schemas.
type UnknownPolicy int

const (
	UnknownStrip       UnknownPolicy = iota // Drop unknown keys (forward-compatible default).
	UnknownStrict                           // Reject unknown keys with an error.
	UnknownPassthrough                      // Keep unknown keys in a designated model field.
)

// Strictness configures enforcement for duplicate keys.
type Strictness struct {
	OnDuplicateKey Severity // Ignore, Warn or Error (duplicate JSON keys).
}

// Severity expresses the severity level for issues.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// ParseOpt bundles parsing options for the byte/Source entry points.
type ParseOpt struct {
	Strictness Strictness
	MaxDepth   int
	MaxBytes   int64
	// CollectAll reports every issue instead of stopping at the first one.
	CollectAll bool
	// OnWarning receives non-fatal issues (duplicate keys under Warn).
	OnWarning func(Issue)
}
