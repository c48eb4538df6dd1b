package models

// LayoutKind identifies which of the known column layouts a document uses.
type LayoutKind string

const (
	// LayoutProviderNative is the payment provider's own export:
	// date, time, transaction type, name, detail, value.
	LayoutProviderNative LayoutKind = "provider-native"
	// LayoutGrossNetReport is the generic report carrying separate gross
	// and net value columns.
	LayoutGrossNetReport LayoutKind = "gross-net-report"
	// LayoutGeneric is the fallback for unrecognized headers.
	LayoutGeneric LayoutKind = "generic"
)

// ColumnUnresolved marks a column the detector could not locate. Rows
// simply skip unresolved columns at parse time.
const ColumnUnresolved = -1

// ReportColumns holds the resolved column indices for a detected layout.
type ReportColumns struct {
	Date         int
	Time         int
	Type         int
	Counterparty int
	Detail       int
	Gross        int
	Net          int
}

// DetectedLayout is derived once per document from its header row and is
// immutable thereafter.
type DetectedLayout struct {
	Kind      LayoutKind
	Delimiter rune
	Columns   ReportColumns
}
