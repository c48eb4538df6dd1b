// Package amountutils extracts signed monetary magnitudes from the
// free-form value tokens found in statement exports. It tolerates
// Brazilian and US separator conventions, currency symbols, parenthesis
// negatives and spreadsheet quoting artifacts.
package amountutils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// MaxPlausible is the upper bound of a plausible statement value. Results
// above it trigger the scale correction when enabled.
var MaxPlausible = decimal.NewFromInt(10_000_000)

// MinPlausible is the lower bound accepted by the scale correction.
var MinPlausible = decimal.RequireFromString("0.01")

// scaleDivisors are tried in order by the plausibility correction.
var scaleDivisors = []int64{100, 1_000, 10_000, 100_000}

// Options controls extraction behavior.
type Options struct {
	// PlausibilityCorrection enables the best-effort division of
	// implausibly large magnitudes by 100/1000/10000/100000. It is lossy
	// guesswork and therefore opt-out configurable.
	PlausibilityCorrection bool
}

// DefaultOptions returns the options used when the caller has no config.
func DefaultOptions() Options {
	return Options{PlausibilityCorrection: true}
}

// Extract parses a free-form value token into a non-negative magnitude and
// a negative flag. It fails soft: empty or unparseable input yields
// (0, false) so the caller can skip the row on a zero result.
func Extract(token string, opts Options) (decimal.Decimal, bool) {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return decimal.Zero, false
	}

	negative := detectNegative(trimmed)
	cleaned := keepNumericRunes(trimmed)
	if cleaned == "" {
		return decimal.Zero, false
	}
	cleaned = resolveSeparators(cleaned)

	magnitude, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false
	}
	magnitude = magnitude.Abs()

	if opts.PlausibilityCorrection {
		magnitude = correctScale(magnitude)
	}

	return magnitude, negative
}

// detectNegative recognizes a leading minus, a wholly parenthesized token,
// and a minus embedded after a quote or open paren (stray '- and (-
// artifacts from spreadsheet exports).
func detectNegative(token string) bool {
	if strings.HasPrefix(token, "-") {
		return true
	}
	if strings.HasPrefix(token, "(") && strings.HasSuffix(token, ")") {
		return true
	}
	for _, marker := range []string{"'-", "\"-", "(-"} {
		if strings.Contains(token, marker) {
			return true
		}
	}
	return false
}

// keepNumericRunes strips currency markers, quotes, parentheses and
// whitespace, retaining only digits, commas and dots.
func keepNumericRunes(token string) string {
	var b strings.Builder
	for _, r := range token {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// resolveSeparators rewrites the retained digits into a canonical
// dot-decimal form. When both separators appear, whichever occurs last is
// the decimal separator ("1.234,56" and "1,234.56" both become "1234.56").
// A lone comma is the decimal separator; a lone dot already is.
func resolveSeparators(s string) string {
	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")

	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastDot < lastComma {
			// Brazilian convention: dot thousands, comma decimal.
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			// US convention: comma thousands, dot decimal.
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		if strings.Count(s, ",") > 1 {
			// Repeated commas can only be thousands separators.
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.ReplaceAll(s, ",", ".")
		}
	case lastDot >= 0:
		if strings.Count(s, ".") > 1 {
			s = strings.ReplaceAll(s, ".", "")
		}
	}

	return s
}

// correctScale divides an implausibly large magnitude by each divisor in
// turn and keeps the first result that lands inside the plausible range.
// When no division lands, the original magnitude is kept: the correction
// is best-effort, never a guarantee.
func correctScale(magnitude decimal.Decimal) decimal.Decimal {
	if magnitude.LessThanOrEqual(MaxPlausible) {
		return magnitude
	}
	for _, divisor := range scaleDivisors {
		corrected := magnitude.Div(decimal.NewFromInt(divisor))
		if corrected.GreaterThanOrEqual(MinPlausible) && corrected.LessThanOrEqual(MaxPlausible) {
			return corrected
		}
	}
	return magnitude
}
