// Package common contains shared functionality for command handlers
package common

import (
	"time"

	"fjacquet/pdf-order/internal/container"
	"fjacquet/pdf-order/internal/fileutils"
	"fjacquet/pdf-order/internal/logging"
	"fjacquet/pdf-order/internal/models"
	"fjacquet/pdf-order/internal/order"
	"fjacquet/pdf-order/internal/ordererror"
)

// ProcessFile converts the order PDF inputFile into an order file and
// returns the path written.
func ProcessFile(c *container.Container, inputFile string) (string, error) {
	start := time.Now()
	logger := c.GetLogger().WithField(logging.FieldInputFile, inputFile)

	rows, err := extractRows(c, inputFile, logger)
	if err != nil {
		return "", err
	}

	record := c.GetBuilder().Build(rows, c.OrderDate())

	// The writer logs its own failures.
	path, err := c.GetWriter().Write(record, c.GetConfig().Order.Sequence)
	if err != nil {
		return "", err
	}

	logger.Info("Conversion completed successfully",
		logging.Field{Key: logging.FieldOutputFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(record.Lines)},
		logging.Field{Key: logging.FieldDuration, Value: time.Since(start).Milliseconds()})
	return path, nil
}

// ProjectRows extracts the table of inputFile and classifies its rows
// without writing anything.
func ProjectRows(c *container.Container, inputFile string) ([]order.Projection, error) {
	logger := c.GetLogger().WithField(logging.FieldInputFile, inputFile)

	rows, err := extractRows(c, inputFile, logger)
	if err != nil {
		return nil, err
	}
	return c.GetBuilder().Project(rows), nil
}

func extractRows(c *container.Container, inputFile string, logger logging.Logger) ([]models.Row, error) {
	if !fileutils.FileExists(inputFile) {
		err := &ordererror.InputNotFoundError{FilePath: inputFile}
		logger.WithError(err).Error("Input file does not exist")
		return nil, err
	}
	if !fileutils.HasExtension(inputFile, ".pdf") {
		logger.Warn("Input file does not have a .pdf extension, trying anyway")
	}

	rows, err := c.GetExtractor().Extract(inputFile)
	if err != nil {
		logger.WithError(err).Error("No table extracted from PDF")
		return nil, err
	}
	return rows, nil
}
