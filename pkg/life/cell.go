package life

import "fmt"

// Position identifies a cell by row and column.
type Position struct {
	Row int
	Col int
}

// Cell stores one grid position's committed state and the state computed for
// the next generation. The pending state is only meaningful between
// ComputeNextState and the following Commit.
type Cell struct {
	pos     Position
	alive   bool
	pending bool
}

// NewCell returns a cell at pos with the given state.
func NewCell(pos Position, alive bool) Cell {
	return Cell{pos: pos, alive: alive}
}

// Position returns the cell's fixed location.
func (c *Cell) Position() Position { return c.pos }

// Alive reports the committed state.
func (c *Cell) Alive() bool { return c.alive }

// Neighbors returns the eight neighbors of c in g, wrapping at every edge.
func (c *Cell) Neighbors(g *Grid) [8]*Cell {
	var out [8]*Cell
	i := 0
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			row, col := g.size.Wrap(c.pos.Row+dr, c.pos.Col+dc)
			out[i] = &g.cells[g.size.Index(row, col)]
			i++
		}
	}
	return out
}

// ComputeNextState counts alive neighbors and stores the resulting state as
// pending. Only this cell's pending state is written, so a whole-grid pass
// gives the same result in any order.
func (c *Cell) ComputeNextState(g *Grid, rules Rules) bool {
	neighbors := c.Neighbors(g)
	c.pending = rules.Next(c.alive, CountAlive(neighbors[:]))
	return c.pending
}

// Commit makes the pending state current. Repeating it without a new
// ComputeNextState re-applies the same value.
func (c *Cell) Commit() {
	c.alive = c.pending
}

// Snapshot returns an independent copy carrying the position and committed state.
func (c *Cell) Snapshot() Cell {
	return Cell{pos: c.pos, alive: c.alive}
}

// Equal reports whether two cells share position and committed state.
func (c Cell) Equal(other Cell) bool {
	return c.pos == other.pos && c.alive == other.alive
}

// String describes the cell, e.g. "cell at 1, 2 is ALIVE".
func (c Cell) String() string {
	state := "DEAD"
	if c.alive {
		state = "ALIVE"
	}
	return fmt.Sprintf("cell at %d, %d is %s", c.pos.Row, c.pos.Col, state)
}

// CountAlive returns how many of cells are alive.
func CountAlive(cells []*Cell) int {
	alive := 0
	for _, c := range cells {
		if c.alive {
			alive++
		}
	}
	return alive
}

// CountDead returns how many of cells are dead.
func CountDead(cells []*Cell) int {
	return len(cells) - CountAlive(cells)
}
