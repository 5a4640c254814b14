package life

import (
	"testing"

	"toruslife/pkg/core"
)

func TestNeighborsWrapToroidally(t *testing.T) {
	g := newGrid(core.Size{Rows: 3, Cols: 3})
	origin := &g.cells[0]

	seen := map[Position]bool{}
	for _, n := range origin.Neighbors(g) {
		seen[n.Position()] = true
	}
	if !seen[Position{Row: 2, Col: 2}] {
		t.Fatal("(0,0) must see (2,2) across both edges")
	}
	if len(seen) != 8 {
		t.Fatalf("expected 8 distinct neighbors on a 3x3 torus, got %d", len(seen))
	}
	if seen[Position{Row: 0, Col: 0}] {
		t.Fatal("a cell must not be its own neighbor on a 3x3 torus")
	}
}

func TestNeighborsInterior(t *testing.T) {
	g := newGrid(core.Size{Rows: 5, Cols: 5})
	c := &g.cells[g.size.Index(2, 2)]
	for _, n := range c.Neighbors(g) {
		p := n.Position()
		if p.Row < 1 || p.Row > 3 || p.Col < 1 || p.Col > 3 || p == c.Position() {
			t.Fatalf("unexpected neighbor %+v of (2,2)", p)
		}
	}
}

func TestRulesNextPrecedence(t *testing.T) {
	tests := []struct {
		name      string
		rules     Rules
		alive     bool
		neighbors int
		want      bool
	}{
		{"isolation kills live cell", StandardRules(), true, 1, false},
		{"survives with two", StandardRules(), true, 2, true},
		{"dead stays dead with two", StandardRules(), false, 2, false},
		{"birth with three", StandardRules(), false, 3, true},
		{"overcrowding kills", StandardRules(), true, 4, false},
		{"resurrect beats overcrowding for dead cell", Rules{LowerBound: 2, UpperBound: 3, ResurrectExact: 4}, false, 4, true},
		{"resurrect beats overcrowding for live cell", Rules{LowerBound: 2, UpperBound: 3, ResurrectExact: 4}, true, 4, true},
		{"isolation beats resurrect", Rules{LowerBound: 3, UpperBound: 5, ResurrectExact: 2}, false, 2, false},
		{"out of range resurrect never fires", Rules{LowerBound: 2, UpperBound: 3, ResurrectExact: 9}, false, 3, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rules.Next(tt.alive, tt.neighbors); got != tt.want {
				t.Fatalf("Next(%v, %d) = %v, want %v", tt.alive, tt.neighbors, got, tt.want)
			}
		})
	}
}

func TestComputeNextStateWritesOnlyPending(t *testing.T) {
	g := newGrid(core.Size{Rows: 3, Cols: 3})
	g.cells[g.size.Index(0, 1)].alive = true
	g.cells[g.size.Index(1, 0)].alive = true
	g.cells[g.size.Index(1, 2)].alive = true
	before := g.Snapshot()

	center := &g.cells[g.size.Index(1, 1)]
	if !center.ComputeNextState(g, StandardRules()) {
		t.Fatal("dead cell with three alive neighbors should be born")
	}
	if center.Alive() {
		t.Fatal("ComputeNextState must not change the committed state")
	}
	if !before.Equal(g) {
		t.Fatal("ComputeNextState mutated a committed state")
	}

	center.Commit()
	if !center.Alive() {
		t.Fatal("Commit should apply the pending state")
	}
}

func TestCommitIsIdempotent(t *testing.T) {
	c := NewCell(Position{Row: 0, Col: 0}, false)
	c.pending = true
	c.Commit()
	c.Commit()
	if !c.Alive() {
		t.Fatal("second Commit changed the state")
	}
}

func TestSnapshotIsIndependent(t *testing.T) {
	c := NewCell(Position{Row: 1, Col: 2}, true)
	snap := c.Snapshot()
	c.pending = false
	c.Commit()

	if !snap.Alive() {
		t.Fatal("snapshot observed a later mutation of the original")
	}
	if snap.Equal(c) {
		t.Fatal("snapshot should differ after the original died")
	}
	if snap.Position() != c.Position() {
		t.Fatal("snapshot must keep the position")
	}
}

func TestCellString(t *testing.T) {
	c := NewCell(Position{Row: 1, Col: 2}, true)
	if got, want := c.String(), "cell at 1, 2 is ALIVE"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestCountAliveAndDead(t *testing.T) {
	a := NewCell(Position{}, true)
	b := NewCell(Position{Col: 1}, false)
	d := NewCell(Position{Col: 2}, true)
	cells := []*Cell{&a, &b, &d}
	if CountAlive(cells) != 2 || CountDead(cells) != 1 {
		t.Fatalf("CountAlive=%d CountDead=%d, want 2 and 1", CountAlive(cells), CountDead(cells))
	}
}
