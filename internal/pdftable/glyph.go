package pdftable

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"fjacquet/pdf-order/internal/layout"
	"fjacquet/pdf-order/internal/models"

	"golang.org/x/text/unicode/norm"
)

// Glyph is a positioned piece of text in top-origin page coordinates.
type Glyph struct {
	Text   string
	X0     float64
	X1     float64
	Top    float64
	Bottom float64
}

// CenterX returns the horizontal midpoint of the glyph.
func (g Glyph) CenterX() float64 { return (g.X0 + g.X1) / 2 }

// CenterY returns the vertical midpoint of the glyph.
func (g Glyph) CenterY() float64 { return (g.Top + g.Bottom) / 2 }

// GlyphPage is a Page held in memory as a list of glyphs.
type GlyphPage struct {
	number int
	width  float64
	height float64
	glyphs []Glyph
}

// NewGlyphPage builds a page from glyphs. number is 1-based.
func NewGlyphPage(number int, width, height float64, glyphs []Glyph) *GlyphPage {
	return &GlyphPage{
		number: number,
		width:  width,
		height: height,
		glyphs: glyphs,
	}
}

// Number is the 1-based page number.
func (p *GlyphPage) Number() int { return p.number }

// Width of the page in page units.
func (p *GlyphPage) Width() float64 { return p.width }

// Height of the page in page units.
func (p *GlyphPage) Height() float64 { return p.height }

// Glyphs returns the glyphs of the page.
func (p *GlyphPage) Glyphs() []Glyph { return p.glyphs }

// Crop keeps the glyphs whose center lies inside region. The page keeps its
// original size so coordinates stay page-relative.
func (p *GlyphPage) Crop(region layout.Region) Page {
	kept := make([]Glyph, 0, len(p.glyphs))
	for _, g := range p.glyphs {
		if region.Contains(g.CenterX(), g.CenterY()) {
			kept = append(kept, g)
		}
	}
	return NewGlyphPage(p.number, p.width, p.height, kept)
}

// ExtractTable groups glyphs into rows by vertical position and assigns each
// glyph to the column whose boundaries enclose its center. Glyphs outside the
// outermost boundaries are ignored. Rows without any text are dropped.
func (p *GlyphPage) ExtractTable(settings layout.TableSettings) ([]models.Row, error) {
	columns := settings.Columns
	if len(columns) < 2 {
		return nil, fmt.Errorf("at least two column boundaries are required, got %d", len(columns))
	}
	for i := 1; i < len(columns); i++ {
		if columns[i] <= columns[i-1] {
			return nil, fmt.Errorf("column boundaries must be strictly increasing: %v", columns)
		}
	}

	inTable := make([]Glyph, 0, len(p.glyphs))
	for _, g := range p.glyphs {
		cx := g.CenterX()
		if cx < columns[0] || cx >= columns[len(columns)-1] {
			continue
		}
		inTable = append(inTable, g)
	}

	lines := groupLines(inTable, settings.RowTolerance)

	var rows []models.Row
	for _, line := range lines {
		row := buildRow(line, columns, settings.CharTolerance)
		if row.IsBlank() {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// groupLines clusters glyphs into text lines, top to bottom. A glyph joins
// the current line while its vertical center is within tolerance of the
// line's first glyph.
func groupLines(glyphs []Glyph, tolerance float64) [][]Glyph {
	if len(glyphs) == 0 {
		return nil
	}
	sorted := make([]Glyph, len(glyphs))
	copy(sorted, glyphs)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].CenterY() != sorted[j].CenterY() {
			return sorted[i].CenterY() < sorted[j].CenterY()
		}
		return sorted[i].X0 < sorted[j].X0
	})

	var lines [][]Glyph
	current := []Glyph{sorted[0]}
	anchor := sorted[0].CenterY()
	for _, g := range sorted[1:] {
		if math.Abs(g.CenterY()-anchor) > tolerance {
			lines = append(lines, current)
			current = []Glyph{g}
			anchor = g.CenterY()
			continue
		}
		current = append(current, g)
	}
	return append(lines, current)
}

// buildRow distributes a line's glyphs over the columns.
func buildRow(line []Glyph, columns []float64, charTolerance float64) models.Row {
	cells := make([][]Glyph, len(columns)-1)
	for _, g := range line {
		idx := columnIndex(columns, g.CenterX())
		if idx < 0 {
			continue
		}
		cells[idx] = append(cells[idx], g)
	}

	row := make(models.Row, len(cells))
	for i, cell := range cells {
		row[i] = cellText(cell, charTolerance)
	}
	return row
}

// columnIndex returns i such that columns[i] <= x < columns[i+1], or -1.
func columnIndex(columns []float64, x float64) int {
	i := sort.SearchFloat64s(columns, x)
	// SearchFloat64s gives the first boundary >= x.
	if i < len(columns) && columns[i] == x {
		i++
	}
	idx := i - 1
	if idx < 0 || idx >= len(columns)-1 {
		return -1
	}
	return idx
}

// cellText joins the glyphs of a cell left to right, inserting a space where
// the gap between two glyphs exceeds the tolerance.
func cellText(glyphs []Glyph, tolerance float64) string {
	if len(glyphs) == 0 {
		return ""
	}
	sort.SliceStable(glyphs, func(i, j int) bool { return glyphs[i].X0 < glyphs[j].X0 })

	var b strings.Builder
	prevX1 := glyphs[0].X0
	for i, g := range glyphs {
		if i > 0 && g.X0-prevX1 > tolerance {
			b.WriteByte(' ')
		}
		b.WriteString(g.Text)
		if g.X1 > prevX1 {
			prevX1 = g.X1
		}
	}
	return normalizeCell(b.String())
}

// normalizeCell applies NFKC and collapses runs of whitespace.
func normalizeCell(s string) string {
	return strings.Join(strings.Fields(norm.NFKC.String(s)), " ")
}
