package parsererror

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseError(t *testing.T) {
	cause := errors.New("bad syntax")
	err := &ParseError{Parser: "statement", Field: "date", Value: "garbage", Err: cause}

	assert.Contains(t, err.Error(), "statement")
	assert.Contains(t, err.Error(), "date")
	assert.Contains(t, err.Error(), "garbage")
	assert.ErrorIs(t, err, cause)
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{Source: "upload", Reason: "file exceeds 10485760 bytes"}
	assert.Equal(t, "validation failed for upload: file exceeds 10485760 bytes", err.Error())
}

func TestEmptyBatchError(t *testing.T) {
	err := &EmptyBatchError{RowCount: 5, Guidance: "expected a delimited statement"}
	assert.Contains(t, err.Error(), "no valid rows found among 5 data rows")
	assert.Contains(t, err.Error(), "expected a delimited statement")

	bare := &EmptyBatchError{RowCount: 2}
	assert.Equal(t, "no valid rows found among 2 data rows", bare.Error())
}

func TestNotFoundError(t *testing.T) {
	err := &NotFoundError{Entity: "transaction", ID: 42}
	assert.Equal(t, "transaction 42 not found", err.Error())
}

func TestCollaboratorError(t *testing.T) {
	cause := errors.New("disk full")
	err := &CollaboratorError{Collaborator: "ledger", Operation: "update transaction", Err: cause}

	assert.Contains(t, err.Error(), "ledger")
	assert.Contains(t, err.Error(), "disk full")
	assert.ErrorIs(t, err, cause)
}
