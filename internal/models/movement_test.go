package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewBankMovement(t *testing.T) {
	tx := LedgerTransaction{
		ID:          42,
		Description: "Pix Maria Silva",
		Direction:   DirectionDebit,
		Amount:      decimal.RequireFromString("-45.90"),
		Status:      StatusPaid,
		Date:        "2025-12-06",
	}

	m := NewBankMovement(&tx, 7)
	assert.Equal(t, int64(42000), m.ID)
	assert.Equal(t, int64(7), m.AccountID)
	assert.Equal(t, int64(42), m.TransactionID)
	assert.Equal(t, MovementDebit, m.Direction)
	assert.Equal(t, "45.9", m.Amount.String())
	assert.False(t, m.Conciliated)
}

func TestNewBankMovement_CreditAndConciliated(t *testing.T) {
	tx := LedgerTransaction{
		ID:        3,
		Direction: DirectionCredit,
		Amount:    decimal.RequireFromString("30.00"),
		Status:    StatusPaid,
	}
	tx.Notes = tx.NotesWithMarker(time.Now(), 3000)

	m := NewBankMovement(&tx, 1)
	assert.Equal(t, int64(3000), m.ID)
	assert.Equal(t, MovementCredit, m.Direction)
	assert.True(t, m.Conciliated)
}
