package order

import (
	"strings"

	"fjacquet/pdf-order/internal/models"
)

// Record is a complete order: its header and one line per accepted row.
type Record struct {
	Header models.OrderHeader
	Lines  []models.OrderLine
}

// Render returns the text lines of the order file: the header block
// followed by one block per order line.
func (r *Record) Render() []string {
	out := make([]string, 0, models.OrderHeaderFields+len(r.Lines)*models.OrderLineFields)
	out = append(out, r.Header.Lines()...)
	for _, l := range r.Lines {
		out = append(out, l.Lines()...)
	}
	return out
}

// String joins the rendered lines with "\n". There is no trailing newline.
func (r *Record) String() string {
	return strings.Join(r.Render(), "\n")
}
