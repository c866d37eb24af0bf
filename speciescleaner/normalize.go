package speciescleaner

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// NormalizeCell performs Unicode NFKC normalization on a dataset cell,
// trims surrounding whitespace and drops control characters. Classification
// always runs on normalized cells so fullwidth or composed variants of the
// same name compare equal.
func NormalizeCell(value string) string {
	normed := norm.NFKC.String(value)
	normed = strings.TrimSpace(normed)
	normed = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, normed)
	return normed
}

// NormalizeRecord normalizes both fields of a record.
func NormalizeRecord(rec Record) Record {
	return Record{
		Species: NormalizeCell(rec.Species),
		Genus:   NormalizeCell(rec.Genus),
	}
}
