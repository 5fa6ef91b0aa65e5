// Package pdftable locates the order table inside a PDF and returns its rows.
//
// The PDF engine is reached through Opener, Document and Page so the region
// and table logic can run against in-memory pages. LibraryOpener is the
// production engine: pdfcpu validates the file and supplies page sizes,
// ledongthuc/pdf supplies positioned glyphs.
package pdftable

import (
	"fjacquet/pdf-order/internal/layout"
	"fjacquet/pdf-order/internal/models"
)

// Opener opens PDF documents by path.
type Opener interface {
	Open(path string) (Document, error)
}

// Document is an open PDF. Close must be called once the caller is done.
type Document interface {
	NumPages() int
	// Page returns the page at the 0-based index.
	Page(index int) (Page, error)
	Close() error
}

// Page is one page of a document, or a cropped view of one.
type Page interface {
	// Number is the 1-based page number.
	Number() int
	Width() float64
	Height() float64
	// Crop returns a view restricted to the region.
	Crop(region layout.Region) Page
	// ExtractTable cuts the page into rows and into the columns given by
	// the explicit boundaries. It returns nil when the page holds no text
	// inside the boundaries.
	ExtractTable(settings layout.TableSettings) ([]models.Row, error)
}
