// Package life implements a toroidal Life-like cellular automaton with a
// progression controller that advances it on a timer or on request.
package life

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"toruslife/pkg/core"
)

// Automaton owns a grid of cells and advances it one generation at a time.
//
// Grid contents, the generation counter and the running flag are only
// mutated inside rounds (or by ForceStop), each under the write lock, so
// readers never observe a partially committed generation.
type Automaton struct {
	cfg Config

	mu         sync.RWMutex
	grid       *Grid
	generation int

	running atomic.Bool
	ctl     atomic.Pointer[Controller]

	obsMu    sync.RWMutex
	observer Observer
	logger   Logger
}

// New builds a rows×cols automaton with every cell dead.
func New(rows, cols int, cfg Config) (*Automaton, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, rows, cols)
	}
	return newAutomaton(newGrid(core.Size{Rows: rows, Cols: cols}), cfg), nil
}

// NewFromCells builds an automaton seeded from pattern, indexed [row][col].
// The pattern must be non-empty and rectangular; it is copied.
func NewFromCells(pattern [][]bool, cfg Config) (*Automaton, error) {
	if len(pattern) == 0 || len(pattern[0]) == 0 {
		return nil, fmt.Errorf("%w: empty pattern", ErrInvalidSize)
	}
	size := core.Size{Rows: len(pattern), Cols: len(pattern[0])}
	g := newGrid(size)
	for row, line := range pattern {
		if len(line) != size.Cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrInvalidSize, row, len(line), size.Cols)
		}
		for col, alive := range line {
			g.cells[size.Index(row, col)].alive = alive
		}
	}
	return newAutomaton(g, cfg), nil
}

func newAutomaton(g *Grid, cfg Config) *Automaton {
	a := &Automaton{cfg: cfg, grid: g, logger: noopLogger{}}
	a.running.Store(true)
	return a
}

// SetObserver installs the observer; nil removes it.
func (a *Automaton) SetObserver(o Observer) {
	a.obsMu.Lock()
	a.observer = o
	a.obsMu.Unlock()
}

// SetLogger installs a logger; nil restores the no-op logger.
func (a *Automaton) SetLogger(l Logger) {
	if l == nil {
		l = noopLogger{}
	}
	a.obsMu.Lock()
	a.logger = l
	a.obsMu.Unlock()
}

func (a *Automaton) log() Logger {
	a.obsMu.RLock()
	defer a.obsMu.RUnlock()
	return a.logger
}

func (a *Automaton) notify(ev Event) {
	a.obsMu.RLock()
	o := a.observer
	a.obsMu.RUnlock()
	if o != nil {
		o.Notify(ev)
	}
}

// Config returns the configuration the automaton was built with.
func (a *Automaton) Config() Config { return a.cfg }

// Rules returns the transition thresholds.
func (a *Automaton) Rules() Rules { return a.cfg.Rules }

// Size returns the grid dimensions.
func (a *Automaton) Size() core.Size { return a.grid.size }

// Generation returns the number of rounds that changed the grid.
func (a *Automaton) Generation() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.generation
}

// Running reports whether the system has not yet stabilized.
func (a *Automaton) Running() bool { return a.running.Load() }

// At returns the committed state at (row, col) without wrapping.
func (a *Automaton) At(row, col int) (bool, error) {
	c, err := a.CellAt(Position{Row: row, Col: col})
	if err != nil {
		return false, err
	}
	return c.alive, nil
}

// CellAt returns a copy of the cell at pos.
func (a *Automaton) CellAt(pos Position) (Cell, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.grid.At(pos.Row, pos.Col)
}

// Snapshot returns a value-independent copy of the current grid.
func (a *Automaton) Snapshot() *Grid {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.grid.Snapshot()
}

// Population returns the number of alive cells.
func (a *Automaton) Population() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.grid.Population()
}

// AdvanceGeneration computes the pending state of every cell. Committed
// states are left untouched.
func (a *Automaton) AdvanceGeneration() {
	a.mu.Lock()
	a.advance()
	a.mu.Unlock()
}

// CommitGeneration applies pending states and reports whether the grid
// stabilized. A stabilizing round stops the system, notifies the observer
// with Stabilized and is not counted as a generation.
//
// Calling it without a preceding AdvanceGeneration commits whatever pending
// state the cells hold from the previous round.
func (a *Automaton) CommitGeneration() bool {
	a.mu.Lock()
	stabilized := a.commit()
	gen, frame := a.generation, a.grid.Snapshot()
	a.mu.Unlock()

	if stabilized {
		a.announceStable(gen, frame)
	}
	return stabilized
}

// round performs advance and commit as one unit. It does nothing and reports
// ran=false when no cell is alive, which happens when ForceStop lands between
// the controller's wait and the round.
func (a *Automaton) round() (ran, stabilized bool, gen int, frame *Grid) {
	a.mu.Lock()
	if a.grid.Population() == 0 {
		a.mu.Unlock()
		return false, false, 0, nil
	}
	a.advance()
	stabilized = a.commit()
	gen, frame = a.generation, a.grid.Snapshot()
	a.mu.Unlock()

	if stabilized {
		a.announceStable(gen, frame)
	}
	return true, stabilized, gen, frame
}

func (a *Automaton) advance() {
	for i := range a.grid.cells {
		a.grid.cells[i].ComputeNextState(a.grid, a.cfg.Rules)
	}
}

func (a *Automaton) commit() bool {
	before := a.grid.Snapshot()
	for i := range a.grid.cells {
		a.grid.cells[i].Commit()
	}
	after := a.grid.Snapshot()

	if before.Equal(after) {
		a.running.Store(false)
		return true
	}
	a.generation++
	return false
}

func (a *Automaton) announceStable(gen int, frame *Grid) {
	a.log().Info("system stabilized", "generation", gen)
	a.notify(Event{Signal: Stabilized, Generation: gen, Grid: frame})
}

// CanContinue reports whether another round could change anything: the
// system must still be running and hold at least one alive cell.
func (a *Automaton) CanContinue() bool {
	if !a.running.Load() {
		return false
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	for i := range a.grid.cells {
		if a.grid.cells[i].alive {
			return true
		}
	}
	return false
}

// haltCause names why CanContinue turned false.
func (a *Automaton) haltCause() Signal {
	if !a.running.Load() {
		return Stabilized
	}
	return Extinguished
}

// ForceStop kills every cell. The running flag is left alone; a started
// controller is woken so its next check sees the extinction and halts.
func (a *Automaton) ForceStop() {
	a.mu.Lock()
	for i := range a.grid.cells {
		a.grid.cells[i].alive = false
		a.grid.cells[i].pending = false
	}
	gen := a.generation
	a.mu.Unlock()

	a.log().Warn("all cells force-killed", "generation", gen)
	if c := a.ctl.Load(); c != nil {
		c.wake()
	}
}

// Controller returns the started controller, or nil before Start.
func (a *Automaton) Controller() *Controller { return a.ctl.Load() }

// Start launches the progression controller with the given initial flags.
// An automaton has at most one controller for its whole lifetime.
func (a *Automaton) Start(ctx context.Context, automatic, step bool) (*Controller, error) {
	c := newController(a, automatic, step)
	if !a.ctl.CompareAndSwap(nil, c) {
		return nil, ErrAlreadyStarted
	}
	go c.run(ctx)
	return c, nil
}
