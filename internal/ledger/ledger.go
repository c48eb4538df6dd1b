// Package ledger defines the interfaces of the accounting-ledger
// collaborator consumed by the engine, plus a YAML-file-backed reference
// implementation. The engine owns no persisted state of its own: all
// state lives in the collaborator's transactions.
package ledger

import (
	"context"

	"concilia/internal/models"
)

// BatchResult is the collaborator's report on a batch creation: how many
// candidates were imported, how many were recognized as duplicates, and
// any per-row errors. Duplicate detection belongs to the collaborator,
// never to the engine.
type BatchResult struct {
	Imported          int
	SkippedDuplicates int
	Errors            []string
}

// TransactionUpdate is a partial update applied to a ledger transaction.
// Nil fields are left untouched.
type TransactionUpdate struct {
	Notes    *string
	Category *string
}

// Store is the ledger collaborator interface.
type Store interface {
	// ListTransactions returns every ledger transaction.
	ListTransactions(ctx context.Context) ([]models.LedgerTransaction, error)

	// UpdateTransaction applies a partial update and returns the stored
	// transaction.
	UpdateTransaction(ctx context.Context, id int64, update TransactionUpdate) (models.LedgerTransaction, error)

	// CreateTransactionsBatch persists a batch of candidates, detecting
	// duplicates against existing transactions.
	CreateTransactionsBatch(ctx context.Context, candidates []models.TransactionCandidate) (BatchResult, error)

	// ListAccounts returns the known bank accounts.
	ListAccounts(ctx context.Context) ([]models.Account, error)
}
