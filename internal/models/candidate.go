// Package models provides the data structures used throughout the engine.
package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Direction represents the direction of money flow for a transaction.
type Direction string

const (
	DirectionCredit  Direction = "credit"
	DirectionDebit   Direction = "debit"
	DirectionUnknown Direction = "unknown"
)

// String returns the string representation of Direction
func (d Direction) String() string {
	return string(d)
}

// IsValid checks if the direction is one of the two known values
func (d Direction) IsValid() bool {
	return d == DirectionCredit || d == DirectionDebit
}

// DescriptionMaxLen is the maximum length of a candidate description.
// Longer descriptions are truncated by the assembler.
const DescriptionMaxLen = 255

// TransactionCandidate is the canonical output of parsing one statement row.
// It is parsed-but-not-yet-persisted: the ledger collaborator turns it into
// a ledger transaction on import.
//
// Amount is always the absolute magnitude actually charged or received;
// sign is carried exclusively by Direction.
type TransactionCandidate struct {
	Date             string          `csv:"Date" yaml:"date"`
	Time             string          `csv:"Time" yaml:"time"`
	Description      string          `csv:"Description" yaml:"description"`
	Amount           decimal.Decimal `csv:"Amount" yaml:"amount"`
	GrossAmount      decimal.Decimal `csv:"GrossAmount" yaml:"gross_amount"`
	Direction        Direction       `csv:"Direction" yaml:"direction"`
	CounterpartyName string          `csv:"Counterparty" yaml:"counterparty"`
	MethodLabel      string          `csv:"Method" yaml:"method"`
	DetailLabel      string          `csv:"Detail" yaml:"detail"`
	Category         string          `csv:"Category" yaml:"category"`
	AuditNote        string          `csv:"AuditNote" yaml:"audit_note"`
	AccountID        int64           `csv:"AccountID" yaml:"account_id"`
}

// HasGross reports whether a gross/net distinction existed on the source row.
func (c *TransactionCandidate) HasGross() bool {
	return c.GrossAmount.IsPositive()
}

// Fee returns the difference between the gross and net amounts, rounded to
// two decimal places and clamped to zero. It is zero when no gross amount
// was resolved.
func (c *TransactionCandidate) Fee() decimal.Decimal {
	if !c.HasGross() {
		return decimal.Zero
	}
	fee := c.GrossAmount.Sub(c.Amount.Abs()).Round(2)
	if fee.IsNegative() {
		return decimal.Zero
	}
	return fee
}

// Validate performs basic validation on the candidate.
func (c *TransactionCandidate) Validate() error {
	if strings.TrimSpace(c.Date) == "" {
		return fmt.Errorf("candidate date cannot be empty")
	}
	if strings.TrimSpace(c.Description) == "" {
		return fmt.Errorf("candidate description cannot be empty")
	}
	if len(c.Description) > DescriptionMaxLen {
		return fmt.Errorf("candidate description exceeds %d characters", DescriptionMaxLen)
	}
	if !c.Amount.IsPositive() {
		return fmt.Errorf("candidate amount must be positive, got %s", c.Amount.String())
	}
	if !c.Direction.IsValid() {
		return fmt.Errorf("invalid candidate direction: %s", c.Direction)
	}
	return nil
}

// String returns a short representation for logging.
func (c *TransactionCandidate) String() string {
	return fmt.Sprintf("Candidate{Date: %s, Description: %s, Amount: %s, Direction: %s}",
		c.Date, c.Description, c.Amount.StringFixed(2), c.Direction)
}
