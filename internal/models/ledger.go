package models

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus represents the payment status of a ledger transaction.
type TransactionStatus string

const (
	StatusPaid    TransactionStatus = "Paid"
	StatusPending TransactionStatus = "Pending"
	StatusOverdue TransactionStatus = "Overdue"
)

// LedgerTransaction is a transaction owned by the ledger collaborator.
// The engine consumes and mutates it but never owns its persistence.
//
// The free-text Notes field doubles as the persisted store for the
// conciliation marker; see the marker functions below for the translation
// shim between the marker format and the first-class ReconciliationInfo view.
type LedgerTransaction struct {
	ID            int64             `yaml:"id"`
	Description   string            `yaml:"description"`
	Category      string            `yaml:"category"`
	Direction     Direction         `yaml:"direction"`
	Amount        decimal.Decimal   `yaml:"-"`
	Status        TransactionStatus `yaml:"status"`
	PaymentMethod string            `yaml:"payment_method"`
	Date          string            `yaml:"date"`
	Time          string            `yaml:"time"`
	Origin        string            `yaml:"origin"`
	Notes         string            `yaml:"notes"`
}

// ReconciliationInfo is the first-class view of a transaction's
// conciliation state, derived from the marker embedded in Notes.
type ReconciliationInfo struct {
	ReconciledAt string
	MovementID   int64
}

// Account identifies a bank account known to the ledger collaborator.
type Account struct {
	ID     int64  `yaml:"id"`
	Name   string `yaml:"name"`
	Status string `yaml:"status"`
}

// accountMethodPrefix is the form under which a payment method label binds
// a transaction to a bank account: "Account: <name> (...)".
const accountMethodPrefix = "Account: "

// BoundAccountName extracts the account name embedded in the payment method
// label, or "" when the method is not account-bound.
func (t *LedgerTransaction) BoundAccountName() string {
	if !strings.HasPrefix(t.PaymentMethod, accountMethodPrefix) {
		return ""
	}
	rest := t.PaymentMethod[len(accountMethodPrefix):]
	if idx := strings.Index(rest, " ("); idx > 0 {
		return rest[:idx]
	}
	return strings.TrimSpace(rest)
}

// MarkerTimeLayout is the timestamp layout used inside conciliation markers.
const MarkerTimeLayout = "2006-01-02T15:04:05"

// markerPattern matches a conciliation marker, with or without a movement id.
var markerPattern = regexp.MustCompile(
	`\s*reconciled at \d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(?: - movement id: \d+)?`)

// BuildMarker renders a conciliation marker for the given timestamp.
// movementID 0 means no movement was supplied and is omitted.
func BuildMarker(at time.Time, movementID int64) string {
	marker := "reconciled at " + at.Format(MarkerTimeLayout)
	if movementID != 0 {
		marker += fmt.Sprintf(" - movement id: %d", movementID)
	}
	return marker
}

// IsReconciled reports whether the transaction carries at least one
// conciliation marker. Marker presence is the sole source of truth; the
// marker count is irrelevant.
func (t *LedgerTransaction) IsReconciled() bool {
	return markerPattern.MatchString(t.Notes)
}

// Reconciliation returns the first-class reconciliation view parsed from
// the notes marker, or nil when the transaction is unreconciled. When
// several markers are present the most recent one wins.
func (t *LedgerTransaction) Reconciliation() *ReconciliationInfo {
	matches := markerPattern.FindAllString(t.Notes, -1)
	if len(matches) == 0 {
		return nil
	}
	last := strings.TrimSpace(matches[len(matches)-1])
	info := &ReconciliationInfo{}
	rest := strings.TrimPrefix(last, "reconciled at ")
	if idx := strings.Index(rest, " - movement id: "); idx >= 0 {
		info.ReconciledAt = rest[:idx]
		if id, err := strconv.ParseInt(rest[idx+len(" - movement id: "):], 10, 64); err == nil {
			info.MovementID = id
		}
	} else {
		info.ReconciledAt = rest
	}
	return info
}

// NotesWithMarker returns the notes with a marker appended.
func (t *LedgerTransaction) NotesWithMarker(at time.Time, movementID int64) string {
	marker := BuildMarker(at, movementID)
	if strings.TrimSpace(t.Notes) == "" {
		return marker
	}
	return t.Notes + " " + marker
}

// NotesWithoutMarkers strips every conciliation marker from the notes,
// not only the most recent one.
func (t *LedgerTransaction) NotesWithoutMarkers() string {
	return strings.TrimSpace(markerPattern.ReplaceAllString(t.Notes, ""))
}

// String returns a short representation for logging.
func (t *LedgerTransaction) String() string {
	return fmt.Sprintf("LedgerTransaction{ID: %d, Description: %s, Amount: %s, Status: %s}",
		t.ID, t.Description, t.Amount.StringFixed(2), t.Status)
}
