package pdftable

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/pdf-order/internal/layout"
	"fjacquet/pdf-order/internal/logging"
	"fjacquet/pdf-order/internal/models"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pdfText is a Helvetica 10pt string drawn at a bottom-origin position.
type pdfText struct {
	x, y float64
	s    string
}

type pdfPage struct {
	mediaBox [4]float64
	texts    []pdfText
}

func letterPage(texts ...pdfText) pdfPage {
	return pdfPage{mediaBox: [4]float64{0, 0, 612, 792}, texts: texts}
}

func tableRow(y float64, cells ...string) []pdfText {
	xs := []float64{40, 80, 352, 420}
	texts := make([]pdfText, 0, len(cells))
	for i, c := range cells {
		texts = append(texts, pdfText{x: xs[i], y: y, s: c})
	}
	return texts
}

// writePDF writes a minimal PDF whose font gives every character a width of
// 600/1000 em, so a 10pt glyph is 6 units wide.
func writePDF(t *testing.T, pages ...pdfPage) string {
	t.Helper()

	var objects []string
	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}
	widths := strings.TrimSpace(strings.Repeat("600 ", 95))

	objects = append(objects,
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding /FirstChar 32 /LastChar 126 /Widths ["+widths+"] >>",
	)
	for i, p := range pages {
		var content strings.Builder
		for _, tx := range p.texts {
			fmt.Fprintf(&content, "BT /F1 10 Tf %g %g Td (%s) Tj ET\n", tx.x, tx.y, tx.s)
		}
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [%g %g %g %g] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>",
				p.mediaBox[0], p.mediaBox[1], p.mediaBox[2], p.mediaBox[3], 5+2*i),
			fmt.Sprintf("<< /Length %d >>\nstream\n%sendstream", content.Len(), content.String()),
		)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	path := filepath.Join(t.TempDir(), "order.pdf")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
	return path
}

func twoPageOrder(t *testing.T) string {
	t.Helper()

	var first []pdfText
	first = append(first, pdfText{x: 40, y: 740, s: "ACME"})
	first = append(first, tableRow(450, "Pos", "Desc", "Article", "Qty")...)
	first = append(first, tableRow(430, "1", "Widget", "ART1", "5")...)
	first = append(first, pdfText{x: 40, y: 30, s: "Page1"})

	var second []pdfText
	second = append(second, pdfText{x: 40, y: 740, s: "ACME"})
	second = append(second, tableRow(600, "2", "Gadget", "ART2", "7")...)
	second = append(second, pdfText{x: 40, y: 30, s: "Page2"})

	return writePDF(t, letterPage(first...), letterPage(second...))
}

func TestLibraryOpener_ReadsPagesAndGlyphs(t *testing.T) {
	doc, err := NewLibraryOpener().Open(twoPageOrder(t))
	require.NoError(t, err)
	defer doc.Close()

	require.Equal(t, 2, doc.NumPages())

	page, err := doc.Page(0)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Number())
	assert.InDelta(t, 612, page.Width(), 0.01)
	assert.InDelta(t, 792, page.Height(), 0.01)

	glyphs := page.(*GlyphPage).Glyphs()
	require.NotEmpty(t, glyphs)
	var pos *Glyph
	for i := range glyphs {
		if glyphs[i].Text == "P" && glyphs[i].X0 < 41 {
			pos = &glyphs[i]
			break
		}
	}
	require.NotNil(t, pos, "glyph P of the table header")
	// baseline 450 from the bottom is 342 from the top
	assert.InDelta(t, 40, pos.X0, 0.01)
	assert.InDelta(t, 46, pos.X1, 0.01)
	assert.InDelta(t, 332, pos.Top, 0.01)
	assert.InDelta(t, 342, pos.Bottom, 0.01)

	_, err = doc.Page(2)
	assert.Error(t, err)
}

func TestExtract_LibraryOpenerTwoPages(t *testing.T) {
	extractor := NewExtractor(NewLibraryOpener(), layout.DefaultProfile(), logging.NewMockLogger())

	rows, err := extractor.Extract(twoPageOrder(t))
	require.NoError(t, err)
	assert.Equal(t, []models.Row{
		{"Pos", "Desc", "Article", "Qty", "", ""},
		{"1", "Widget", "ART1", "5", "", ""},
		{"2", "Gadget", "ART2", "7", "", ""},
	}, rows)
}

func TestExtract_LibraryOpenerShiftedMediaBox(t *testing.T) {
	var texts []pdfText
	texts = append(texts, tableRow(550, "Pos", "Desc", "Article", "Qty")...)
	texts = append(texts, tableRow(530, "1", "Widget", "ART1", "5")...)
	path := writePDF(t, pdfPage{mediaBox: [4]float64{0, 100, 612, 892}, texts: texts})

	extractor := NewExtractor(NewLibraryOpener(), layout.DefaultProfile(), logging.NewMockLogger())
	rows, err := extractor.Extract(path)
	require.NoError(t, err)
	assert.Equal(t, []models.Row{
		{"Pos", "Desc", "Article", "Qty", "", ""},
		{"1", "Widget", "ART1", "5", "", ""},
	}, rows)
}

func TestOpenReader_ClosesFileWhenReaderPanics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "order.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4\n"), 0o600))

	var opened *os.File
	original := newPDFReader
	newPDFReader = func(r io.ReaderAt, size int64) (*pdf.Reader, error) {
		opened = r.(*os.File)
		panic("broken cross-reference table")
	}
	t.Cleanup(func() { newPDFReader = original })

	f, r, err := openReader(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed PDF")
	assert.Nil(t, f)
	assert.Nil(t, r)

	require.NotNil(t, opened)
	assert.ErrorIs(t, opened.Close(), os.ErrClosed)
}

func TestOpenReader_ClosesFileOnReaderError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "order.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4\n"), 0o600))

	var opened *os.File
	original := newPDFReader
	newPDFReader = func(r io.ReaderAt, size int64) (*pdf.Reader, error) {
		opened = r.(*os.File)
		return nil, assert.AnError
	}
	t.Cleanup(func() { newPDFReader = original })

	_, _, err := openReader(path)
	assert.ErrorIs(t, err, assert.AnError)
	require.NotNil(t, opened)
	assert.ErrorIs(t, opened.Close(), os.ErrClosed)
}
