package core

// Size describes the dimensions of a rectangular grid.
type Size struct {
	Rows int
	Cols int
}

// Cells returns the number of positions in the grid.
func (s Size) Cells() int { return s.Rows * s.Cols }

// Contains reports whether (row, col) lies inside the grid without wrapping.
func (s Size) Contains(row, col int) bool {
	return row >= 0 && row < s.Rows && col >= 0 && col < s.Cols
}

// Index returns the row-major slice index for (row, col).
func (s Size) Index(row, col int) int { return row*s.Cols + col }

// Wrap applies toroidal wrapping to the provided coordinates.
func (s Size) Wrap(row, col int) (int, int) {
	row = (row%s.Rows + s.Rows) % s.Rows
	col = (col%s.Cols + s.Cols) % s.Cols
	return row, col
}
