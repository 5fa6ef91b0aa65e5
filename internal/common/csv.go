// Package common provides the CSV helpers shared by the commands.
package common

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/pdf-order/internal/logging"
	"fjacquet/pdf-order/internal/models"
	"fjacquet/pdf-order/internal/order"

	"github.com/gocarina/gocsv"
)

// DefaultDelimiter is the CSV delimiter used when none is configured.
const DefaultDelimiter = ','

// ProjectionCSVRow is one line of the row diagnostics export.
type ProjectionCSVRow struct {
	Row      int    `csv:"row"`
	Status   string `csv:"status"`
	Article  string `csv:"article"`
	Quantity string `csv:"quantity"`
	Reason   string `csv:"reason"`
	Cells    int    `csv:"cells"`
	Text     string `csv:"text"`
}

// NewProjectionCSVRows flattens projections for CSV export.
func NewProjectionCSVRows(projections []order.Projection) []ProjectionCSVRow {
	rows := make([]ProjectionCSVRow, 0, len(projections))
	for _, p := range projections {
		r := ProjectionCSVRow{
			Row:    p.Index,
			Status: string(p.Status),
			Cells:  len(p.Row),
			Text:   strings.Join(p.Row, " | "),
		}
		if p.Line != nil {
			r.Article = p.Line.Article
			r.Quantity = p.Line.Quantity
		}
		if p.Err != nil {
			r.Reason = p.Err.Reason
		}
		rows = append(rows, r)
	}
	return rows
}

// WriteProjectionsCSV writes the row diagnostics to w.
func WriteProjectionsCSV(w io.Writer, projections []order.Projection, delimiter rune, logger logging.Logger) error {
	if delimiter == 0 {
		delimiter = DefaultDelimiter
	}

	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = delimiter

	rows := NewProjectionCSVRows(projections)
	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		logger.WithError(err).Error("Failed to marshal rows to CSV")
		return fmt.Errorf("error writing CSV data: %w", err)
	}

	logger.Debug("Wrote row diagnostics",
		logging.Field{Key: logging.FieldCount, Value: len(rows)})
	return nil
}

// ExportProjectionsCSV writes the row diagnostics to csvFile, creating its
// directory if needed.
func ExportProjectionsCSV(csvFile string, projections []order.Projection, delimiter rune, logger logging.Logger) error {
	logger.Info("Writing row diagnostics to CSV file",
		logging.Field{Key: logging.FieldOutputFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(projections)})

	dir := filepath.Dir(csvFile)
	if err := os.MkdirAll(dir, models.PermissionDirectory); err != nil {
		logger.WithError(err).Error("Failed to create directory")
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(csvFile) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		logger.WithError(err).Error("Failed to create CSV file")
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	return WriteProjectionsCSV(file, projections, delimiter, logger)
}

// ReadCSVFile reads CSV data into a slice of structs using gocsv.
func ReadCSVFile[TCSVRow any](filePath string, logger logging.Logger) ([]TCSVRow, error) {
	logger.Info("Reading CSV file", logging.Field{Key: logging.FieldFile, Value: filePath})

	file, err := os.Open(filePath) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		logger.WithError(err).Error("Failed to open CSV file")
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	var rows []TCSVRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		logger.WithError(err).Error("Failed to parse CSV file")
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}

	logger.Info("Successfully read CSV data", logging.Field{Key: logging.FieldCount, Value: len(rows)})
	return rows, nil
}
