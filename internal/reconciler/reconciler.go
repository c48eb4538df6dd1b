// Package reconciler links ledger transactions to the bank movements
// derived from them. Movements are never stored; they are recomputed
// from the ledger on every refresh, so the marker inside a transaction's
// notes is the only persisted reconciliation state.
package reconciler

import (
	"context"
	"fmt"
	"time"

	"concilia/internal/ledger"
	"concilia/internal/logging"
	"concilia/internal/models"
	"concilia/internal/parsererror"
)

// BulkResult tallies a multi-link run.
type BulkResult struct {
	Linked int
	Failed int
	Errors []string
}

// LinkRequest pairs a ledger transaction with the movement to link it to.
type LinkRequest struct {
	TransactionID int64
	MovementID    int64
}

// Matcher performs reconciliation against the ledger store. It caches the
// transaction list between refreshes; every mutation goes through the
// store and refreshes the cache from the store's answer.
type Matcher struct {
	store  ledger.Store
	logger logging.Logger
	now    func() time.Time

	transactions []models.LedgerTransaction
	accounts     []models.Account
}

// NewMatcher creates a Matcher over the given ledger store.
func NewMatcher(store ledger.Store, logger logging.Logger) *Matcher {
	if logger == nil {
		logger = logging.Default()
	}
	return &Matcher{store: store, logger: logger, now: time.Now}
}

// Refresh reloads transactions and accounts from the ledger store.
func (m *Matcher) Refresh(ctx context.Context) error {
	transactions, err := m.store.ListTransactions(ctx)
	if err != nil {
		return &parsererror.CollaboratorError{Collaborator: "ledger", Operation: "list transactions", Err: err}
	}
	accounts, err := m.store.ListAccounts(ctx)
	if err != nil {
		return &parsererror.CollaboratorError{Collaborator: "ledger", Operation: "list accounts", Err: err}
	}
	m.transactions = transactions
	m.accounts = accounts
	return nil
}

// Movements derives the current bank movements from the cached ledger
// state. Refresh must have been called first.
func (m *Matcher) Movements() []models.BankMovement {
	return DeriveMovements(m.transactions, m.accounts)
}

// DeriveMovements computes the bank movements implied by the given
// ledger transactions. A transaction yields a movement only when it is
// paid and its payment method binds it to a known account.
func DeriveMovements(transactions []models.LedgerTransaction, accounts []models.Account) []models.BankMovement {
	byName := make(map[string]int64, len(accounts))
	for _, a := range accounts {
		byName[a.Name] = a.ID
	}

	var movements []models.BankMovement
	for i := range transactions {
		t := &transactions[i]
		if t.Status != models.StatusPaid {
			continue
		}
		name := t.BoundAccountName()
		if name == "" {
			continue
		}
		accountID, ok := byName[name]
		if !ok {
			continue
		}
		movements = append(movements, models.NewBankMovement(t, accountID))
	}
	return movements
}

// Link marks the transaction as reconciled against the given movement by
// appending a marker to its notes. movementID 0 records a reconciliation
// without a movement reference.
func (m *Matcher) Link(ctx context.Context, transactionID, movementID int64) (models.LedgerTransaction, error) {
	tx, err := m.find(transactionID)
	if err != nil {
		return models.LedgerTransaction{}, err
	}
	if tx.Status != models.StatusPaid {
		return models.LedgerTransaction{}, &parsererror.ValidationError{
			Source: "reconciler",
			Reason: fmt.Sprintf("transaction %d is %s, only paid transactions can be reconciled", transactionID, tx.Status),
		}
	}
	if movementID != 0 {
		if err := m.checkMovement(transactionID, movementID); err != nil {
			return models.LedgerTransaction{}, err
		}
	}

	notes := tx.NotesWithMarker(m.now(), movementID)
	updated, err := m.update(ctx, transactionID, notes)
	if err != nil {
		return models.LedgerTransaction{}, err
	}

	m.logger.Info("Linked transaction to movement",
		logging.Field{Key: "transaction_id", Value: transactionID},
		logging.Field{Key: "movement_id", Value: movementID})
	return updated, nil
}

// Unlink strips every conciliation marker from the transaction's notes.
// Unlinking an unreconciled transaction is a no-op that still succeeds.
func (m *Matcher) Unlink(ctx context.Context, transactionID int64) (models.LedgerTransaction, error) {
	tx, err := m.find(transactionID)
	if err != nil {
		return models.LedgerTransaction{}, err
	}

	if !tx.IsReconciled() {
		return *tx, nil
	}

	updated, err := m.update(ctx, transactionID, tx.NotesWithoutMarkers())
	if err != nil {
		return models.LedgerTransaction{}, err
	}

	m.logger.Info("Unlinked transaction",
		logging.Field{Key: "transaction_id", Value: transactionID})
	return updated, nil
}

// ReconcileMany links each request in order, collecting failures instead
// of stopping at the first one.
func (m *Matcher) ReconcileMany(ctx context.Context, requests []LinkRequest) BulkResult {
	var result BulkResult
	for _, req := range requests {
		if _, err := m.Link(ctx, req.TransactionID, req.MovementID); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("transaction %d: %v", req.TransactionID, err))
			continue
		}
		result.Linked++
	}
	return result
}

func (m *Matcher) find(transactionID int64) (*models.LedgerTransaction, error) {
	for i := range m.transactions {
		if m.transactions[i].ID == transactionID {
			return &m.transactions[i], nil
		}
	}
	return nil, &parsererror.NotFoundError{Entity: "transaction", ID: transactionID}
}

// checkMovement verifies the movement exists in the derived view and
// belongs to the transaction being linked.
func (m *Matcher) checkMovement(transactionID, movementID int64) error {
	for _, movement := range m.Movements() {
		if movement.ID != movementID {
			continue
		}
		if movement.TransactionID != transactionID {
			return &parsererror.ValidationError{
				Source: "reconciler",
				Reason: fmt.Sprintf("movement %d belongs to transaction %d, not %d", movementID, movement.TransactionID, transactionID),
			}
		}
		return nil
	}
	return &parsererror.NotFoundError{Entity: "movement", ID: movementID}
}

// update persists new notes for the transaction and refreshes the cached
// copy from the store's answer.
func (m *Matcher) update(ctx context.Context, transactionID int64, notes string) (models.LedgerTransaction, error) {
	updated, err := m.store.UpdateTransaction(ctx, transactionID, ledger.TransactionUpdate{Notes: &notes})
	if err != nil {
		return models.LedgerTransaction{}, &parsererror.CollaboratorError{
			Collaborator: "ledger",
			Operation:    "update transaction",
			Err:          err,
		}
	}
	for i := range m.transactions {
		if m.transactions[i].ID == transactionID {
			m.transactions[i] = updated
			break
		}
	}
	return updated, nil
}
