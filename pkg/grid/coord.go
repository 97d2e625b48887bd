package grid

import (
	"fmt"
	"math"

	"github.com/matzehuels/canvasbench/pkg/errors"
)

// Point is a position in canvas units, origin top-left, y growing down.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Coordinate returns the top-left corner of cell index in a flat row-major
// grid. It is the primitive the paged layout builds on.
//
// index must be >= 0, itemsPerRow >= 1, itemSize > 0 and spacing >= 0;
// anything else is a caller bug and panics.
func Coordinate(index, itemsPerRow int, itemSize, spacing float64) Point {
	if index < 0 {
		panic(fmt.Sprintf("grid: negative index %d", index))
	}
	if itemsPerRow < 1 {
		panic(fmt.Sprintf("grid: itemsPerRow must be >= 1, got %d", itemsPerRow))
	}
	if !(itemSize > 0) {
		panic(fmt.Sprintf("grid: itemSize must be positive, got %v", itemSize))
	}
	if spacing < 0 || math.IsNaN(spacing) {
		panic(fmt.Sprintf("grid: spacing cannot be negative, got %v", spacing))
	}
	step := itemSize + spacing
	return Point{
		X: float64(index%itemsPerRow) * step,
		Y: float64(index/itemsPerRow) * step,
	}
}

// Cell identifies where an index landed: page, row within the page, column.
type Cell struct {
	Page   int `json:"page"`
	Row    int `json:"row"`
	Column int `json:"column"`
}

// Cell returns the page/row/column of index. In flat mode Page is always 0.
func (c Config) Cell(index int) Cell {
	row := index / c.perRow
	col := index % c.perRow
	if c.params.Mode != ModePaged {
		return Cell{Row: row, Column: col}
	}
	return Cell{Page: row / c.rowsPerPage, Row: row % c.rowsPerPage, Column: col}
}

// PageWidth returns the horizontal distance between the origins of two
// consecutive pages: one full row plus a spacing gap.
func (c Config) PageWidth() float64 {
	return float64(c.perRow)*c.step + c.params.Spacing
}

// Coordinate returns the top-left corner of the cell for index, honouring
// the layout mode. It panics on a negative index; use [Config.CoordinateErr]
// for untrusted input.
func (c Config) Coordinate(index int) Point {
	if c.params.Mode != ModePaged {
		return Coordinate(index, c.perRow, c.params.ItemSize, c.params.Spacing)
	}
	if index < 0 {
		panic(fmt.Sprintf("grid: negative index %d", index))
	}
	cell := c.Cell(index)
	return Point{
		X: float64(cell.Page)*c.PageWidth() + float64(cell.Column)*c.step,
		Y: float64(cell.Row) * c.step,
	}
}

// CoordinateErr is [Config.Coordinate] returning an error instead of
// panicking on a negative index.
func (c Config) CoordinateErr(index int) (Point, error) {
	if index < 0 {
		return Point{}, errors.New(errors.ErrCodeInvalidInput, "index cannot be negative, got %d", index)
	}
	if c.perRow < 1 {
		return Point{}, errors.New(errors.ErrCodeInvalidConfig, "grid config was not built with grid.New")
	}
	return c.Coordinate(index), nil
}

// Center returns the anchor point backends place item index at: the cell
// corner shifted by half an item plus one spacing margin.
func (c Config) Center(index int) Point {
	p := c.Coordinate(index)
	off := c.params.ItemSize/2 + c.params.Spacing
	return Point{X: p.X + off, Y: p.Y + off}
}

// Extent returns the canvas size needed to show count items including the
// spacing margin on every side.
func (c Config) Extent(count int) (width, height float64) {
	if count <= 0 {
		return 0, 0
	}
	rows := (count + c.perRow - 1) / c.perRow
	cols := min(count, c.perRow)
	margin := c.params.Spacing

	if c.params.Mode != ModePaged || rows <= c.rowsPerPage {
		return float64(cols)*c.step + margin, float64(rows)*c.step + margin
	}
	pages := (rows + c.rowsPerPage - 1) / c.rowsPerPage
	width = float64(pages-1)*c.PageWidth() + float64(c.perRow)*c.step + margin
	height = float64(c.rowsPerPage)*c.step + margin
	return width, height
}

// FitScale returns the uniform scale that fits a w x h shape into a square
// cell of edge size. Degenerate shapes are left unscaled.
func FitScale(w, h, size float64) float64 {
	if !(w > 0) || !(h > 0) {
		return 1
	}
	return math.Min(size/w, size/h)
}
