package catalog

import (
	"strings"

	"schemematch-engine/internal/textutil"
)

// fieldSep joins concatenated fields. A newline never survives
// normalization inside a field, so fields cannot merge into spurious
// bigrams across the boundary.
const fieldSep = " \n "

// Document projects a record's text columns into one normalized document
// string. Same record, same columns, same document every call.
func Document(rec Record, columns []string) string {
	parts := make([]string, 0, len(columns))
	for _, col := range columns {
		parts = append(parts, textutil.Fold(rec.Field(col)))
	}
	return strings.Join(parts, fieldSep)
}

// Documents maps Document over the whole table.
func Documents(recs []Record, columns []string) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = Document(r, columns)
	}
	return out
}

// EligibilityText is the combined lowercased text the eligibility matcher
// scans: the fields most likely to carry constraint language.
func EligibilityText(rec Record) string {
	parts := []string{
		rec.Eligibility, rec.Tags, rec.Category,
		rec.Details, rec.Benefits, rec.SchemeName,
	}
	for i, p := range parts {
		parts[i] = textutil.Fold(p)
	}
	return strings.ToLower(strings.Join(parts, " "))
}
