// Package layout describes where the order table sits on the pages of an
// order PDF: the vertical band kept on the first page and on continuation
// pages, and the fixed x-coordinates separating the table columns.
package layout

import (
	"fmt"
	"sort"
)

// Role tells which exclusion zone applies to a page.
type Role int

const (
	// FirstPage is page 0; it carries the document header block.
	FirstPage Role = iota
	// ContinuationPage is every page after the first.
	ContinuationPage
)

func (r Role) String() string {
	switch r {
	case FirstPage:
		return "first-page"
	case ContinuationPage:
		return "continuation-page"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// RoleForPage returns the role of the 0-based page index.
func RoleForPage(index int) Role {
	if index == 0 {
		return FirstPage
	}
	return ContinuationPage
}

// Region is a rectangle in page units with the origin in the top-left corner.
type Region struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// Width returns the horizontal extent of the region.
func (r Region) Width() float64 { return r.Right - r.Left }

// Height returns the vertical extent of the region.
func (r Region) Height() float64 { return r.Bottom - r.Top }

// Contains reports whether the point lies inside the region. The left and
// top edges are inclusive, the right and bottom edges exclusive.
func (r Region) Contains(x, y float64) bool {
	return x >= r.Left && x < r.Right && y >= r.Top && y < r.Bottom
}

func (r Region) String() string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f, %.2f)", r.Left, r.Top, r.Right, r.Bottom)
}

// Profile is the geometry of one order document format.
type Profile struct {
	Name string

	// Top margins as a fraction of page height; everything above is dropped.
	FirstPageTop    float64
	ContinuationTop float64
	// Bottom is the fraction of page height below which the footer starts.
	Bottom float64

	// Columns are the explicit vertical separators of the table, left to right.
	Columns []float64

	ArticleColumn  int
	QuantityColumn int

	// RowTolerance is the largest vertical distance between glyphs of one row.
	RowTolerance float64
	// CharTolerance is the horizontal gap above which glyphs are separated by a space.
	CharTolerance float64
}

// DefaultColumns are the column separators of the supported order format.
var DefaultColumns = []float64{38, 68, 349, 415, 465, 510, 564}

// DefaultProfile returns the profile of the supported order format.
func DefaultProfile() Profile {
	columns := make([]float64, len(DefaultColumns))
	copy(columns, DefaultColumns)
	return Profile{
		Name:            "default",
		FirstPageTop:    0.40,
		ContinuationTop: 0.12,
		Bottom:          0.92,
		Columns:         columns,
		ArticleColumn:   2,
		QuantityColumn:  3,
		RowTolerance:    3,
		CharTolerance:   3,
	}
}

// Validate checks the profile invariants.
func (p Profile) Validate() error {
	for name, top := range map[string]float64{"first_page_top": p.FirstPageTop, "continuation_top": p.ContinuationTop} {
		if top < 0 || top >= p.Bottom {
			return fmt.Errorf("%s must be in [0, bottom), got %v (bottom %v)", name, top, p.Bottom)
		}
	}
	if p.Bottom <= 0 || p.Bottom > 1 {
		return fmt.Errorf("bottom must be in (0, 1], got %v", p.Bottom)
	}
	if len(p.Columns) < 2 {
		return fmt.Errorf("at least two column boundaries are required, got %d", len(p.Columns))
	}
	if !sort.SliceIsSorted(p.Columns, func(i, j int) bool { return p.Columns[i] < p.Columns[j] }) {
		return fmt.Errorf("column boundaries must be increasing: %v", p.Columns)
	}
	for i := 1; i < len(p.Columns); i++ {
		if p.Columns[i] == p.Columns[i-1] {
			return fmt.Errorf("column boundaries must be strictly increasing: %v", p.Columns)
		}
	}
	if p.Columns[0] < 0 {
		return fmt.Errorf("column boundaries must not be negative: %v", p.Columns)
	}
	for name, idx := range map[string]int{"article_column": p.ArticleColumn, "quantity_column": p.QuantityColumn} {
		if idx < 0 || idx >= p.ColumnCount() {
			return fmt.Errorf("%s %d is outside the %d table columns", name, idx, p.ColumnCount())
		}
	}
	if p.ArticleColumn == p.QuantityColumn {
		return fmt.Errorf("article_column and quantity_column must differ, both are %d", p.ArticleColumn)
	}
	if p.RowTolerance <= 0 || p.CharTolerance <= 0 {
		return fmt.Errorf("tolerances must be positive, got row %v char %v", p.RowTolerance, p.CharTolerance)
	}
	return nil
}

// ColumnCount is the number of columns the boundaries define.
func (p Profile) ColumnCount() int {
	if len(p.Columns) < 2 {
		return 0
	}
	return len(p.Columns) - 1
}

// TopFraction returns the top margin fraction for role.
func (p Profile) TopFraction(role Role) float64 {
	if role == FirstPage {
		return p.FirstPageTop
	}
	return p.ContinuationTop
}

// RegionFor computes the crop region of a page with the given dimensions.
func (p Profile) RegionFor(role Role, width, height float64) (Region, error) {
	if width <= 0 || height <= 0 {
		return Region{}, fmt.Errorf("invalid page dimensions %vx%v", width, height)
	}
	r := Region{
		Left:   0,
		Top:    p.TopFraction(role) * height,
		Right:  width,
		Bottom: p.Bottom * height,
	}
	if r.Top >= r.Bottom {
		return Region{}, fmt.Errorf("empty %s region %s", role, r)
	}
	return r, nil
}

// TableSettings returns the extraction settings derived from the profile.
func (p Profile) TableSettings() TableSettings {
	columns := make([]float64, len(p.Columns))
	copy(columns, p.Columns)
	return TableSettings{
		Columns:       columns,
		RowTolerance:  p.RowTolerance,
		CharTolerance: p.CharTolerance,
	}
}

// TableSettings drives table extraction with explicit column boundaries.
type TableSettings struct {
	Columns       []float64
	RowTolerance  float64
	CharTolerance float64
}
