package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Movement directions use the provider's Portuguese labels because that is
// what the reconciliation surface displays.
const (
	MovementCredit = "credito"
	MovementDebit  = "debito"
)

// MovementIDFactor derives a movement id from its source transaction id.
// The factor keeps derived ids clear of real ledger ids on the same
// display surface.
const MovementIDFactor = 1000

// BankMovement is a derived, non-persisted view of a paid, account-bound
// ledger transaction. It is always a pure function of the current ledger
// transactions and accounts and is regenerated whenever either changes.
type BankMovement struct {
	ID            int64
	AccountID     int64
	Date          string
	Description   string
	Amount        decimal.Decimal
	Direction     string
	Conciliated   bool
	TransactionID int64
}

// NewBankMovement derives a movement from its source transaction and the
// account it is bound to.
func NewBankMovement(t *LedgerTransaction, accountID int64) BankMovement {
	direction := MovementDebit
	if t.Direction == DirectionCredit {
		direction = MovementCredit
	}
	return BankMovement{
		ID:            t.ID * MovementIDFactor,
		AccountID:     accountID,
		Date:          t.Date,
		Description:   t.Description,
		Amount:        t.Amount.Abs(),
		Direction:     direction,
		Conciliated:   t.IsReconciled(),
		TransactionID: t.ID,
	}
}

// String returns a short representation for logging.
func (m BankMovement) String() string {
	return fmt.Sprintf("BankMovement{ID: %d, Account: %d, Amount: %s %s, Conciliated: %t}",
		m.ID, m.AccountID, m.Amount.StringFixed(2), m.Direction, m.Conciliated)
}
