// Package parsererror defines the typed errors surfaced by the statement
// ingestion and reconciliation engine.
package parsererror

import "fmt"

// ParseError represents an error while parsing a specific field of a row.
type ParseError struct {
	Parser string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError represents input that was rejected before parsing began:
// wrong media type, oversized uploads, or an unusable document shape.
type ValidationError struct {
	Source string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Source, e.Reason)
}

// EmptyBatchError is returned when a non-empty document yields zero valid
// rows. It carries guidance so the operator can correct the file.
type EmptyBatchError struct {
	RowCount int
	Guidance string
}

func (e *EmptyBatchError) Error() string {
	if e.Guidance != "" {
		return fmt.Sprintf("no valid rows found among %d data rows: %s", e.RowCount, e.Guidance)
	}
	return fmt.Sprintf("no valid rows found among %d data rows", e.RowCount)
}

// NotFoundError is returned by reconciliation operations that reference an
// unknown transaction id. Nothing is mutated when it is returned.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// CollaboratorError wraps a failure reported by an external collaborator
// (ledger store, category service). The collaborator's message is preserved
// verbatim for the operator.
type CollaboratorError struct {
	Collaborator string
	Operation    string
	Err          error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s: %s failed: %v", e.Collaborator, e.Operation, e.Err)
}

func (e *CollaboratorError) Unwrap() error {
	return e.Err
}
