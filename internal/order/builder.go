// Package order turns extracted table rows into an order record and writes
// it as a business-system order file.
package order

import (
	"time"

	"fjacquet/pdf-order/internal/logging"
	"fjacquet/pdf-order/internal/models"
	"fjacquet/pdf-order/internal/ordererror"
)

// Status of a projected row.
type Status string

const (
	StatusHeader   Status = "header"
	StatusAccepted Status = "accepted"
	StatusSkipped  Status = "skipped"
)

// Options configure a Builder.
type Options struct {
	CustomerCode   string
	DeliveryDays   int
	ArticleColumn  int
	QuantityColumn int
	Policy         RowPolicy
}

// DefaultOptions returns the options of the supported order format.
func DefaultOptions() Options {
	return Options{
		CustomerCode:   models.DefaultCustomerCode,
		DeliveryDays:   models.DefaultDeliveryDays,
		ArticleColumn:  2,
		QuantityColumn: 3,
		Policy:         DefaultRowPolicy,
	}
}

// MinRowLength is the number of cells a row needs to be well-formed.
func (o Options) MinRowLength() int {
	if o.ArticleColumn > o.QuantityColumn {
		return o.ArticleColumn + 1
	}
	return o.QuantityColumn + 1
}

// Projection is the outcome of one table row.
type Projection struct {
	Index  int
	Row    models.Row
	Status Status
	Line   *models.OrderLine
	// Err describes why a row was skipped.
	Err *ordererror.RowError
}

// Builder projects table rows onto order lines and assembles the record.
type Builder struct {
	opts   Options
	logger logging.Logger
}

// NewBuilder creates a Builder.
func NewBuilder(opts Options, logger logging.Logger) *Builder {
	if opts.Policy == "" {
		opts.Policy = DefaultRowPolicy
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Builder{opts: opts, logger: logger}
}

// Project classifies every row. Row 0 is the table header and is never an
// order line. Rows too short to address both the article and the quantity
// column, and rows rejected by the row policy, are skipped.
func (b *Builder) Project(rows []models.Row) []Projection {
	minLen := b.opts.MinRowLength()
	out := make([]Projection, 0, len(rows))
	for i, row := range rows {
		p := Projection{Index: i, Row: row}
		switch {
		case i == 0:
			p.Status = StatusHeader
		case len(row) < minLen:
			p.Status = StatusSkipped
			p.Err = &ordererror.RowError{Index: i, Length: len(row), Reason: "row too short"}
		default:
			article := row.Cell(b.opts.ArticleColumn)
			quantity := row.Cell(b.opts.QuantityColumn)
			if reason := b.opts.Policy.check(article, quantity); reason != "" {
				p.Status = StatusSkipped
				p.Err = &ordererror.RowError{Index: i, Length: len(row), Reason: reason}
				break
			}
			p.Status = StatusAccepted
			p.Line = &models.OrderLine{Article: article, Quantity: quantity}
		}
		out = append(out, p)
	}
	return out
}

// Build creates the order record for rows, dated orderDate. Skipped rows are
// logged as warnings and never abort the build.
func (b *Builder) Build(rows []models.Row, orderDate time.Time) *Record {
	record := &Record{
		Header: models.NewOrderHeader(b.opts.CustomerCode, orderDate, b.opts.DeliveryDays),
	}

	skipped := 0
	for _, p := range b.Project(rows) {
		switch p.Status {
		case StatusAccepted:
			record.Lines = append(record.Lines, *p.Line)
		case StatusSkipped:
			skipped++
			b.logger.WithError(p.Err).Warn("Skipping table row",
				logging.Field{Key: logging.FieldRow, Value: p.Index},
				logging.Field{Key: logging.FieldRowLength, Value: len(p.Row)},
				logging.Field{Key: logging.FieldReason, Value: p.Err.Reason},
				logging.Field{Key: logging.FieldPolicy, Value: string(b.opts.Policy)})
		}
	}

	total, nonNumeric := models.TotalQuantity(record.Lines)
	fields := []logging.Field{
		{Key: logging.FieldCustomer, Value: b.opts.CustomerCode},
		{Key: logging.FieldCount, Value: len(record.Lines)},
		{Key: logging.FieldSkipped, Value: skipped},
		{Key: logging.FieldQuantity, Value: total.String()},
	}
	if nonNumeric > 0 {
		b.logger.Warn("Some quantities are not numeric and are left out of the total",
			logging.Field{Key: logging.FieldCount, Value: nonNumeric})
	}
	b.logger.Info("Built order record", fields...)

	return record
}
