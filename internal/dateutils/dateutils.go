// Package dateutils provides the date normalization used by the statement
// parser: every source format is folded into ISO YYYY-MM-DD.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Common date format constants used throughout the application
const (
	DateLayoutISO       = "2006-01-02"
	DateLayoutBrazilian = "02/01/2006"
	DateLayoutDotted    = "02.01.2006"
	DateLayoutFull      = "2006-01-02 15:04:05"
	TimeLayout          = "15:04:05"
)

// CommonFormats is the list of formats tried by the generic parsing step,
// day-first formats before US ones because the source exports are Brazilian.
var CommonFormats = []string{
	DateLayoutISO,
	DateLayoutBrazilian,
	DateLayoutDotted,
	DateLayoutFull,
	"02/01/2006 15:04:05",
	"2.1.2006",
	"2/1/2006",
	"01/02/2006",
	"2006/01/02",
	time.RFC3339,
}

var (
	isoPattern      = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	dayFirstPattern = regexp.MustCompile(`^(\d{1,2})[/.](\d{1,2})[/.](\d{2,4})$`)
)

// NormalizeDate converts a free-form date token into an ISO date string.
// It is total: blank input yields today's date and an unparseable token is
// returned unmodified so the caller can surface it instead of guessing.
//
// Attempt order: already-ISO, ISO with embedded time, day-first
// slash/dot dates, then the generic format list.
func NormalizeDate(token string) string {
	cleaned := strings.TrimSpace(token)
	if cleaned == "" {
		return time.Now().Format(DateLayoutISO)
	}

	if isoPattern.MatchString(cleaned) {
		return cleaned
	}

	// ISO date with an embedded time: keep the date portion.
	if parts := strings.Fields(cleaned); len(parts) > 1 && isoPattern.MatchString(parts[0]) {
		return parts[0]
	}

	if m := dayFirstPattern.FindStringSubmatch(cleaned); m != nil {
		day, month, year := m[1], m[2], m[3]
		if len(day) == 1 {
			day = "0" + day
		}
		if len(month) == 1 {
			month = "0" + month
		}
		if len(year) == 2 {
			year = "20" + year
		}
		return fmt.Sprintf("%s-%s-%s", year, month, day)
	}

	for _, format := range CommonFormats {
		if t, err := time.Parse(format, cleaned); err == nil {
			return t.Format(DateLayoutISO)
		}
	}

	return token
}

// SplitDateTime separates a token that may carry an embedded time
// ("2025-12-06 15:49:20") into its date and time parts. The time part is
// empty when absent.
func SplitDateTime(token string) (string, string) {
	cleaned := strings.TrimSpace(token)
	parts := strings.Fields(cleaned)
	if len(parts) >= 2 && strings.Contains(parts[len(parts)-1], ":") {
		return strings.Join(parts[:len(parts)-1], " "), parts[len(parts)-1]
	}
	return cleaned, ""
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD)
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}
