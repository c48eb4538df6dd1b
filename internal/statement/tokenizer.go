package statement

import "strings"

// TokenizeRow splits a single line into fields on the given delimiter,
// honoring double-quoted spans: a delimiter inside quotes never splits.
// Each token is trimmed of surrounding whitespace and single or double
// quotes. Layout-independent by design.
func TokenizeRow(line string, delimiter rune) []string {
	var tokens []string
	var current strings.Builder
	inQuotes := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			current.WriteRune(r)
		case r == delimiter && !inQuotes:
			tokens = append(tokens, cleanToken(current.String()))
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	tokens = append(tokens, cleanToken(current.String()))

	return tokens
}

// cleanToken strips leading/trailing whitespace and surrounding quotes.
func cleanToken(token string) string {
	token = strings.TrimSpace(token)
	token = strings.Trim(token, `"'`)
	return strings.TrimSpace(token)
}
