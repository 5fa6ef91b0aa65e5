// Package models holds the data types of an order: table rows, header and lines.
package models

import "strings"

// Row is one table row as recovered from the PDF. Cells are addressed by
// position; a cell the extractor found nothing for is the empty string.
type Row []string

// Cell returns the trimmed cell at index, or "" when the row is too short.
func (r Row) Cell(index int) string {
	if index < 0 || index >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[index])
}

// IsBlank reports whether every cell of the row is empty.
func (r Row) IsBlank() bool {
	for i := range r {
		if r.Cell(i) != "" {
			return false
		}
	}
	return true
}

// String renders the row for log messages.
func (r Row) String() string {
	return "[" + strings.Join(r, " | ") + "]"
}
