package order

import (
	"path/filepath"

	"fjacquet/pdf-order/internal/fileutils"
	"fjacquet/pdf-order/internal/logging"
	"fjacquet/pdf-order/internal/models"
	"fjacquet/pdf-order/internal/ordererror"
)

// Writer persists order records in an output directory.
type Writer struct {
	outputDir string
	logger    logging.Logger
}

// NewWriter creates a Writer for outputDir. An empty directory means the
// working directory.
func NewWriter(outputDir string, logger logging.Logger) *Writer {
	if outputDir == "" {
		outputDir = "."
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Writer{outputDir: outputDir, logger: logger}
}

// Write stores record under its file name and returns the path. An empty
// sequence is replaced by the next free one for the customer and day. An
// existing file with the same name is overwritten after a warning.
func (w *Writer) Write(record *Record, sequence string) (string, error) {
	customer := record.Header.CustomerCode
	date := record.Header.OrderDate

	if sequence == "" {
		next, err := NextSequence(w.outputDir, customer, date)
		if err != nil {
			w.logger.WithError(err).Error("Failed to determine order sequence",
				logging.Field{Key: logging.FieldFile, Value: w.outputDir})
			return "", &ordererror.WriteError{FilePath: w.outputDir, Err: err}
		}
		sequence = next
	}

	path := filepath.Join(w.outputDir, FileName(customer, date, sequence))
	log := w.logger.WithFields(
		logging.Field{Key: logging.FieldOutputFile, Value: path},
		logging.Field{Key: logging.FieldSequence, Value: sequence},
	)

	if fileutils.FileExists(path) {
		log.Warn("Order file already exists and will be overwritten")
	}

	if err := fileutils.WriteFile(path, []byte(record.String()), models.PermissionOrderFile, models.PermissionDirectory); err != nil {
		log.WithError(err).Error("Failed to write order file")
		return "", &ordererror.WriteError{FilePath: path, Err: err}
	}

	log.Info("Order file written",
		logging.Field{Key: logging.FieldCount, Value: len(record.Lines)})
	return path, nil
}
