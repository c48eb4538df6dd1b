// Package textutils provides text repair and normalization helpers for
// statement ingestion: mojibake correction, header folding and upload
// decoding.
package textutils

import (
	"regexp"
	"strings"
)

// mojibakeReplacements is the ordered table of literal substring
// replacements that repair double-encoding artifacts in Portuguese text.
// Longer and more specific patterns come first so overlapping prefixes
// are never partially corrupted.
var mojibakeReplacements = []struct {
	bad  string
	good string
}{
	{"â€œ", "“"},
	{"â€", "”"},
	{"â€“", "–"},
	{"â€”", "—"},
	{"â€™", "'"},
	{"Ã§", "ç"},
	{"Ã‡", "Ç"},
	{"Ã£", "ã"},
	{"Ãµ", "õ"},
	{"Ã¡", "á"},
	{"Ã¢", "â"},
	{"Ã©", "é"},
	{"Ãª", "ê"},
	{"Ã­", "í"},
	{"Ã³", "ó"},
	{"Ã´", "ô"},
	{"Ãº", "ú"},
	{"Ã‰", "É"},
	{"Ã", "Á"},
	{"Ã ", "à"},
	{"Â ", " "},
}

// Normalize repairs known double-encoding artifacts in already-decoded
// text. It is pure and total: correct text passes through unchanged.
func Normalize(text string) string {
	for _, r := range mojibakeReplacements {
		text = strings.ReplaceAll(text, r.bad, r.good)
	}
	return text
}

// accentFolder maps accented Portuguese characters to their base letters
// for diacritic-tolerant header matching.
var accentFolder = strings.NewReplacer(
	"á", "a", "à", "a", "â", "a", "ã", "a",
	"é", "e", "ê", "e",
	"í", "i",
	"ó", "o", "ô", "o", "õ", "o",
	"ú", "u", "ü", "u",
	"ç", "c",
	"Á", "a", "À", "a", "Â", "a", "Ã", "a",
	"É", "e", "Ê", "e",
	"Í", "i",
	"Ó", "o", "Ô", "o", "Õ", "o",
	"Ú", "u", "Ü", "u",
	"Ç", "c",
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// FoldHeader lower-cases a header label, repairs mojibake, strips
// diacritics and collapses whitespace runs, producing the canonical form
// used for layout matching.
func FoldHeader(s string) string {
	s = Normalize(s)
	s = accentFolder.Replace(s)
	s = strings.ToLower(s)
	s = whitespaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
