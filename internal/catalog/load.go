package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"schemematch-engine/internal/textutil"
)

// LoadCSV reads a raw catalog table and derives popularity. Column names
// are trimmed, unnamed/empty columns dropped, missing cells coerced to "".
// popularityCol may be ""; it is also fine for it to name a column the
// file doesn't have (every row then defaults to popularity 1.0).
func LoadCSV(path, popularityCol string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return ReadCSV(f, popularityCol)
}

// ReadCSV parses a header-driven CSV stream into cleaned records.
func ReadCSV(r io.Reader, popularityCol string) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // ragged rows are padded below

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read catalog header: %w", err)
	}

	// Map usable columns to their positions; skip unnamed/empty names.
	cols := make(map[int]string, len(header))
	popIdx := -1
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "" || strings.HasPrefix(strings.ToLower(name), "unnamed") {
			continue
		}
		cols[i] = name
		if popularityCol != "" && name == popularityCol {
			popIdx = i
		}
	}

	var out []Record
	var rawPop []string
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read catalog row %d: %w", len(out)+2, err)
		}
		var rec Record
		for i, name := range cols {
			val := ""
			if i < len(row) {
				val = row[i]
			}
			rec.setField(name, cleanCell(val))
		}
		out = append(out, rec)
		if popIdx >= 0 {
			v := ""
			if popIdx < len(row) {
				v = row[popIdx]
			}
			rawPop = append(rawPop, v)
		}
	}

	if popIdx < 0 {
		rawPop = nil
	}
	DerivePopularity(out, rawPop)
	return out, nil
}

// cleanCell flattens embedded HTML to text and collapses whitespace.
// Catalog exports routinely carry markup in details/benefits cells.
func cleanCell(s string) string {
	if strings.ContainsAny(s, "<>") {
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(s)); err == nil {
			s = doc.Text()
		}
	}
	return textutil.Clean(s)
}

// DerivePopularity fills Record.Popularity from the raw column values.
// With no popularity column every row keeps the 1.0 default; with one,
// values are coerced to numbers (unparsable -> 0) and min-max normalized
// with an epsilon guard so a constant column cannot divide by zero.
func DerivePopularity(recs []Record, raw []string) {
	if raw == nil {
		for i := range recs {
			recs[i].Popularity = 1.0
		}
		return
	}

	vals := make([]float64, len(recs))
	lo, hi := 0.0, 0.0
	for i := range recs {
		v := 0.0
		if i < len(raw) {
			if p, err := strconv.ParseFloat(strings.TrimSpace(raw[i]), 64); err == nil {
				v = p
			}
		}
		vals[i] = v
		if i == 0 || v < lo {
			lo = v
		}
		if i == 0 || v > hi {
			hi = v
		}
	}
	for i := range recs {
		recs[i].Popularity = (vals[i] - lo) / (hi - lo + 1e-9)
	}
}
