package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripAccents decomposes, drops combining marks, recomposes.
var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Clean collapses whitespace (including NBSP) to single spaces and trims.
func Clean(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

// Fold canonicalizes free text: accent folding plus whitespace collapse.
// Any input maps to a defined string; garbage in, empty string out.
func Fold(s string) string {
	if s == "" {
		return ""
	}
	folded, _, err := transform.String(stripAccents, s)
	if err != nil {
		// Keep the original text rather than fail; Clean still applies.
		folded = s
	}
	return Clean(folded)
}

// FoldLower is Fold plus lowercasing, for substring matching.
func FoldLower(s string) string {
	return strings.ToLower(Fold(s))
}
