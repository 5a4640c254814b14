// Package patterns registers the built-in seeders for initial grids.
package patterns

import (
	"toruslife/internal/core"
	grid "toruslife/pkg/core"
)

// Shapes are listed as (row, col) offsets from their top-left corner.
var (
	blinker    = [][2]int{{0, 0}, {0, 1}, {0, 2}}
	block      = [][2]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
	glider     = [][2]int{{0, 1}, {1, 2}, {2, 0}, {2, 1}, {2, 2}}
	rpentomino = [][2]int{{0, 1}, {0, 2}, {1, 0}, {1, 1}, {2, 1}}
)

func init() {
	core.Register("blank", func(rows, cols int, _ core.SeedOptions) [][]bool {
		return core.Blank(rows, cols)
	})
	core.Register("random", Random)
	core.Register("blinker", shape(blinker))
	core.Register("block", shape(block))
	core.Register("glider", shape(glider))
	core.Register("rpentomino", shape(rpentomino))
}

// Random fills each cell independently with probability opts.Density. A
// density of 0 or below gives an empty grid and 1 or above a full one.
func Random(rows, cols int, opts core.SeedOptions) [][]bool {
	p := core.Blank(rows, cols)
	if p == nil {
		return nil
	}
	grid.NewRNG(opts.Seed).FillPattern(p, opts.Density)
	return p
}

// shape builds a seeder that stamps offsets around the grid centre. Shapes
// larger than the grid wrap around its edges.
func shape(offsets [][2]int) core.Seeder {
	var h, w int
	for _, o := range offsets {
		h = max(h, o[0]+1)
		w = max(w, o[1]+1)
	}
	return func(rows, cols int, _ core.SeedOptions) [][]bool {
		p := core.Blank(rows, cols)
		if p == nil {
			return nil
		}
		size := grid.Size{Rows: rows, Cols: cols}
		top, left := (rows-h)/2, (cols-w)/2
		for _, o := range offsets {
			r, c := size.Wrap(top+o[0], left+o[1])
			p[r][c] = true
		}
		return p
	}
}

// Build looks up name and produces a pattern, reporting false for unknown
// names.
func Build(name string, rows, cols int, opts core.SeedOptions) ([][]bool, bool) {
	s, ok := core.Lookup(name)
	if !ok {
		return nil, false
	}
	return s(rows, cols, opts), true
}
