package pdftable

import (
	"fjacquet/pdf-order/internal/layout"
	"fjacquet/pdf-order/internal/logging"
	"fjacquet/pdf-order/internal/models"
	"fjacquet/pdf-order/internal/ordererror"
)

// Extractor locates the order table on every page of a document and
// concatenates its rows in page order.
type Extractor struct {
	opener  Opener
	profile layout.Profile
	logger  logging.Logger
}

// NewExtractor creates an Extractor. A nil opener selects the LibraryOpener.
func NewExtractor(opener Opener, profile layout.Profile, logger logging.Logger) *Extractor {
	if opener == nil {
		opener = NewLibraryOpener()
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Extractor{
		opener:  opener,
		profile: profile,
		logger:  logger,
	}
}

// Extract returns the table rows of the PDF at path. Any failure to open or
// read the document, and a document without rows, is reported as a
// *ordererror.NoTableError matching ordererror.ErrNoTable.
func (e *Extractor) Extract(path string) ([]models.Row, error) {
	log := e.logger.WithFields(
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldProfile, Value: e.profile.Name},
	)

	doc, err := e.opener.Open(path)
	if err != nil {
		log.WithError(err).Warn("Failed to open PDF")
		return nil, &ordererror.NoTableError{FilePath: path, Err: err}
	}
	defer func() {
		if err := doc.Close(); err != nil {
			log.WithError(err).Warn("Failed to close PDF")
		}
	}()

	rows, err := e.extractRows(doc, log)
	if err != nil {
		log.WithError(err).Warn("Failed to extract table")
		return nil, &ordererror.NoTableError{FilePath: path, Err: err}
	}
	if len(rows) == 0 {
		log.Warn("No table rows found in PDF")
		return nil, &ordererror.NoTableError{FilePath: path}
	}

	log.Info("Extracted table rows",
		logging.Field{Key: logging.FieldCount, Value: len(rows)})
	return rows, nil
}

func (e *Extractor) extractRows(doc Document, log logging.Logger) ([]models.Row, error) {
	settings := e.profile.TableSettings()

	var rows []models.Row
	for i := 0; i < doc.NumPages(); i++ {
		page, err := doc.Page(i)
		if err != nil {
			return nil, err
		}

		role := layout.RoleForPage(i)
		region, err := e.profile.RegionFor(role, page.Width(), page.Height())
		if err != nil {
			return nil, &ordererror.DocumentError{Op: "locate table", Page: page.Number(), Err: err}
		}

		pageRows, err := page.Crop(region).ExtractTable(settings)
		if err != nil {
			return nil, &ordererror.DocumentError{Op: "extract table", Page: page.Number(), Err: err}
		}

		log.Debug("Extracted page rows",
			logging.Field{Key: logging.FieldPage, Value: page.Number()},
			logging.Field{Key: logging.FieldRole, Value: role.String()},
			logging.Field{Key: logging.FieldCount, Value: len(pageRows)})

		rows = append(rows, pageRows...)
	}
	return rows, nil
}
