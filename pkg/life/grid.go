package life

import (
	"fmt"
	"strings"

	"toruslife/pkg/core"
)

// Grid is a fixed-size, row-major arrangement of cells.
type Grid struct {
	size  core.Size
	cells []Cell
}

func newGrid(size core.Size) *Grid {
	g := &Grid{size: size, cells: make([]Cell, size.Cells())}
	for row := 0; row < size.Rows; row++ {
		for col := 0; col < size.Cols; col++ {
			g.cells[size.Index(row, col)] = NewCell(Position{Row: row, Col: col}, false)
		}
	}
	return g
}

// Size returns the grid dimensions.
func (g *Grid) Size() core.Size { return g.size }

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.size.Rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.size.Cols }

// At returns a copy of the cell at (row, col).
func (g *Grid) At(row, col int) (Cell, error) {
	if !g.size.Contains(row, col) {
		return Cell{}, fmt.Errorf("%w: (%d, %d) outside %dx%d", ErrOutOfRange, row, col, g.size.Rows, g.size.Cols)
	}
	return g.cells[g.size.Index(row, col)].Snapshot(), nil
}

// Population returns the number of alive cells.
func (g *Grid) Population() int {
	n := 0
	for i := range g.cells {
		if g.cells[i].alive {
			n++
		}
	}
	return n
}

// Snapshot returns a value-independent copy of the grid.
func (g *Grid) Snapshot() *Grid {
	cp := &Grid{size: g.size, cells: make([]Cell, len(g.cells))}
	for i := range g.cells {
		cp.cells[i] = g.cells[i].Snapshot()
	}
	return cp
}

// Equal compares two grids cell by cell.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.size != other.size {
		return false
	}
	for i := range g.cells {
		if !g.cells[i].Equal(other.cells[i]) {
			return false
		}
	}
	return true
}

// Mask writes the alive flags in row-major order into dst, reallocating it
// when too small, and returns it.
func (g *Grid) Mask(dst []bool) []bool {
	if cap(dst) < len(g.cells) {
		dst = make([]bool, len(g.cells))
	}
	dst = dst[:len(g.cells)]
	for i := range g.cells {
		dst[i] = g.cells[i].alive
	}
	return dst
}

// Pattern returns the alive flags as rows of columns.
func (g *Grid) Pattern() [][]bool {
	out := make([][]bool, g.size.Rows)
	for row := range out {
		out[row] = make([]bool, g.size.Cols)
		for col := range out[row] {
			out[row][col] = g.cells[g.size.Index(row, col)].alive
		}
	}
	return out
}

// String renders the grid with '#' for alive and '.' for dead cells.
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow(g.size.Cells() + g.size.Rows)
	for row := 0; row < g.size.Rows; row++ {
		for col := 0; col < g.size.Cols; col++ {
			if g.cells[g.size.Index(row, col)].alive {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
