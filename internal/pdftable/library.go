package pdftable

import (
	"fmt"
	"os"
	"sync"

	"fjacquet/pdf-order/internal/ordererror"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

var disableConfigDir sync.Once

// LibraryOpener opens documents with pdfcpu (structure, validation, page
// dimensions) and ledongthuc/pdf (glyph positions).
type LibraryOpener struct{}

// NewLibraryOpener creates the production Opener.
func NewLibraryOpener() *LibraryOpener {
	// pdfcpu would otherwise create a configuration directory in $HOME.
	disableConfigDir.Do(api.DisableConfigDir)
	return &LibraryOpener{}
}

// Open validates the file and reads its page dimensions. Glyphs are read
// page by page when requested.
func (o *LibraryOpener) Open(path string) (Document, error) {
	dims, err := readPageDims(path)
	if err != nil {
		return nil, &ordererror.DocumentError{FilePath: path, Op: "read structure", Err: err}
	}

	f, reader, err := openReader(path)
	if err != nil {
		return nil, &ordererror.DocumentError{FilePath: path, Op: "open", Err: err}
	}

	if reader.NumPage() != len(dims) {
		_ = f.Close()
		return nil, &ordererror.DocumentError{
			FilePath: path,
			Op:       "open",
			Err:      fmt.Errorf("page count mismatch: %d pages with dimensions, %d readable", len(dims), reader.NumPage()),
		}
	}

	return &libraryDocument{
		path:   path,
		file:   f,
		reader: reader,
		dims:   dims,
	}, nil
}

func readPageDims(path string) ([]types.Dim, error) {
	file, err := os.Open(path) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(file, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF context: %w", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("failed to ensure page count: %w", err)
	}

	dims, err := ctx.PageDims()
	if err != nil {
		return nil, fmt.Errorf("failed to read page dimensions: %w", err)
	}
	return dims, nil
}

var newPDFReader = pdf.NewReader

// openReader opens path and builds a ledongthuc reader over it. The reader
// panics on some malformed files; the file is closed on every failure.
func openReader(path string) (f *os.File, r *pdf.Reader, err error) {
	file, err := os.Open(path) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		if rec := recover(); rec != nil {
			f, r, err = nil, nil, fmt.Errorf("malformed PDF: %v", rec)
		}
		if err != nil {
			_ = file.Close()
		}
	}()

	info, err := file.Stat()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to stat file: %w", err)
	}
	r, err = newPDFReader(file, info.Size())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read PDF: %w", err)
	}
	return file, r, nil
}

type libraryDocument struct {
	path   string
	file   *os.File
	reader *pdf.Reader
	dims   []types.Dim
	closed bool
}

func (d *libraryDocument) NumPages() int {
	return len(d.dims)
}

func (d *libraryDocument) Page(index int) (Page, error) {
	if d.closed {
		return nil, &ordererror.DocumentError{FilePath: d.path, Op: "read page", Page: index + 1, Err: fmt.Errorf("document is closed")}
	}
	if index < 0 || index >= len(d.dims) {
		return nil, &ordererror.DocumentError{
			FilePath: d.path,
			Op:       "read page",
			Page:     index + 1,
			Err:      fmt.Errorf("invalid page index %d (document has %d pages)", index, len(d.dims)),
		}
	}

	width, height := d.dims[index].Width, d.dims[index].Height
	glyphs, err := readGlyphs(d.reader, index+1, height)
	if err != nil {
		return nil, &ordererror.DocumentError{FilePath: d.path, Op: "read page", Page: index + 1, Err: err}
	}
	return NewGlyphPage(index+1, width, height, glyphs), nil
}

func (d *libraryDocument) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	return d.file.Close()
}

// readGlyphs converts the page's text runs to top-origin glyphs.
func readGlyphs(reader *pdf.Reader, pageNum int, height float64) (glyphs []Glyph, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			glyphs, err = nil, fmt.Errorf("malformed page content: %v", rec)
		}
	}()

	page := reader.Page(pageNum)
	if page.V.IsNull() {
		return nil, fmt.Errorf("page %d not found", pageNum)
	}
	originX, originY := mediaBoxOrigin(page.V)

	content := page.Content()
	glyphs = make([]Glyph, 0, len(content.Text))
	for _, text := range content.Text {
		if text.S == "" {
			continue
		}
		size := text.FontSize
		if size <= 0 {
			size = 1
		}
		x := text.X - originX
		baseline := height - (text.Y - originY)
		glyphs = append(glyphs, Glyph{
			Text:   text.S,
			X0:     x,
			X1:     x + text.W,
			Top:    baseline - size,
			Bottom: baseline,
		})
	}
	return glyphs, nil
}

// mediaBoxOrigin returns the lower-left corner of the page's media box,
// following the page tree for an inherited box.
func mediaBoxOrigin(v pdf.Value) (float64, float64) {
	for node := v; !node.IsNull(); node = node.Key("Parent") {
		box := node.Key("MediaBox")
		if box.Len() == 4 {
			return box.Index(0).Float64(), box.Index(1).Float64()
		}
	}
	return 0, 0
}
