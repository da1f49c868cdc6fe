// Package serde provides:
//
// - Bidirectional Schema values converting wire JSON (snake_case keys) to Go
// models and back (Parse/Serialize)
// - Tri-state field markers (Optional, Nullable) that keep "absent" and "null" apart
// - A stable error model via Issues (wire JSON Pointer, model field path, code, message)
// - Token Sources with duplicate-key/depth enforcement and pluggable JSON drivers
//
// Design policy:
// - Keep only public contracts in the root package; combinators live under dsl/,
// conversions under codec/, entity schemas under opik/ and the CLI under cmd/serde.
// - Schemas are built once and never mutated, so they are safe for concurrent use.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	schemas := opik.NewSchemas()
//	batch, err := serde.Unmarshal(ctx, schemas.TraceBatchWrite, body)
//
//	wire, err := serde.Marshal(ctx, schemas.TraceBatchWrite, batch)
package serde
