package life

import (
	"errors"
	"sync"
	"testing"

	"toruslife/pkg/core"
)

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) Notify(ev Event) {
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()
}

func (r *recorder) signals() []Signal {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Signal, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.Signal
	}
	return out
}

func (r *recorder) count(s Signal) int {
	n := 0
	for _, got := range r.signals() {
		if got == s {
			n++
		}
	}
	return n
}

func (r *recorder) last() Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return Event{}
	}
	return r.events[len(r.events)-1]
}

func pattern(rows, cols int, alive ...Position) [][]bool {
	out := make([][]bool, rows)
	for i := range out {
		out[i] = make([]bool, cols)
	}
	for _, p := range alive {
		out[p.Row][p.Col] = true
	}
	return out
}

func mustFromCells(t *testing.T, p [][]bool, cfg Config) *Automaton {
	t.Helper()
	a, err := NewFromCells(p, cfg)
	if err != nil {
		t.Fatalf("NewFromCells: %v", err)
	}
	return a
}

func verticalBlinker() [][]bool {
	return pattern(5, 5, Position{1, 2}, Position{2, 2}, Position{3, 2})
}

func TestNewBuildsDeadRowMajorGrid(t *testing.T) {
	a, err := New(3, 4, DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if a.Size() != (core.Size{Rows: 3, Cols: 4}) {
		t.Fatalf("Size() = %+v", a.Size())
	}
	for row := 0; row < 3; row++ {
		for col := 0; col < 4; col++ {
			c, err := a.CellAt(Position{Row: row, Col: col})
			if err != nil {
				t.Fatalf("CellAt(%d,%d): %v", row, col, err)
			}
			if c.Alive() || c.Position() != (Position{Row: row, Col: col}) {
				t.Fatalf("unexpected cell %s", c)
			}
		}
	}
	if a.Generation() != 0 || !a.Running() {
		t.Fatal("new automaton should start at generation 0 and running")
	}
}

func TestNewRejectsInvalidSize(t *testing.T) {
	for _, dims := range [][2]int{{0, 3}, {3, 0}, {-1, 2}} {
		if _, err := New(dims[0], dims[1], DefaultConfig()); !errors.Is(err, ErrInvalidSize) {
			t.Fatalf("New(%d,%d) error = %v, want ErrInvalidSize", dims[0], dims[1], err)
		}
	}
	if _, err := NewFromCells(nil, DefaultConfig()); !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("NewFromCells(nil) error = %v, want ErrInvalidSize", err)
	}
	ragged := [][]bool{{true, false}, {true}}
	if _, err := NewFromCells(ragged, DefaultConfig()); !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("NewFromCells(ragged) error = %v, want ErrInvalidSize", err)
	}
}

func TestNewFromCellsCopiesPattern(t *testing.T) {
	p := pattern(2, 2, Position{0, 1})
	a := mustFromCells(t, p, DefaultConfig())
	p[0][1] = false

	alive, err := a.At(0, 1)
	if err != nil || !alive {
		t.Fatalf("At(0,1) = %v, %v; want alive", alive, err)
	}
}

func TestAtDoesNotWrap(t *testing.T) {
	a, _ := New(3, 3, DefaultConfig())
	for _, p := range []Position{{-1, 0}, {0, -1}, {3, 0}, {0, 3}} {
		if _, err := a.At(p.Row, p.Col); !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("At(%d,%d) error = %v, want ErrOutOfRange", p.Row, p.Col, err)
		}
	}
}

func TestAdvanceGenerationLeavesStateUntouched(t *testing.T) {
	p := make([][]bool, 12)
	for i := range p {
		p[i] = make([]bool, 12)
	}
	core.NewRNG(3).FillPattern(p, 0.4)
	a := mustFromCells(t, p, DefaultConfig())

	before := a.Snapshot()
	a.AdvanceGeneration()
	if !before.Equal(a.Snapshot()) {
		t.Fatal("AdvanceGeneration mutated a committed state")
	}
}

func TestDeadGridStabilizes(t *testing.T) {
	a, _ := New(3, 3, DefaultConfig())
	rec := &recorder{}
	a.SetObserver(rec)

	a.AdvanceGeneration()
	if !a.CommitGeneration() {
		t.Fatal("an all-dead grid must stabilize")
	}
	if a.Running() {
		t.Fatal("stabilization must clear the running flag")
	}
	if a.Generation() != 0 {
		t.Fatalf("stabilizing round counted: generation %d", a.Generation())
	}
	if rec.count(Stabilized) != 1 {
		t.Fatalf("signals %v, want one Stabilized", rec.signals())
	}
	if a.CanContinue() {
		t.Fatal("CanContinue must be false once stabilized")
	}
}

func TestLoneCellDiesOnFirstRound(t *testing.T) {
	a := mustFromCells(t, pattern(3, 3, Position{1, 1}), DefaultConfig())

	a.AdvanceGeneration()
	if a.CommitGeneration() {
		t.Fatal("a round that kills the only cell changes the grid")
	}
	if a.Generation() != 1 {
		t.Fatalf("generation = %d, want 1", a.Generation())
	}
	if !a.Running() || a.CanContinue() {
		t.Fatal("extinction keeps running set but CanContinue false")
	}

	a.AdvanceGeneration()
	if !a.CommitGeneration() {
		t.Fatal("the dead grid should stabilize on the next round")
	}
	if a.Generation() != 1 {
		t.Fatalf("generation = %d after stabilizing, want 1", a.Generation())
	}
}

func TestBlinkerOscillates(t *testing.T) {
	a := mustFromCells(t, verticalBlinker(), DefaultConfig())
	horizontal := mustFromCells(t, pattern(5, 5, Position{2, 1}, Position{2, 2}, Position{2, 3}), DefaultConfig()).Snapshot()
	vertical := a.Snapshot()

	for i := 1; i <= 10; i++ {
		a.AdvanceGeneration()
		if a.CommitGeneration() {
			t.Fatalf("blinker stabilized at round %d", i)
		}
		want := horizontal
		if i%2 == 0 {
			want = vertical
		}
		if !a.Snapshot().Equal(want) {
			t.Fatalf("round %d:\n%s", i, a.Snapshot())
		}
	}
	if a.Generation() != 10 || !a.CanContinue() {
		t.Fatalf("generation=%d canContinue=%v", a.Generation(), a.CanContinue())
	}
}

func TestBlockIsStillLife(t *testing.T) {
	a := mustFromCells(t, pattern(6, 6, Position{2, 2}, Position{2, 3}, Position{3, 2}, Position{3, 3}), DefaultConfig())
	a.AdvanceGeneration()
	if !a.CommitGeneration() {
		t.Fatalf("block should be stable:\n%s", a.Snapshot())
	}
	if a.Population() != 4 {
		t.Fatalf("population = %d, want 4", a.Population())
	}
}

func TestForceStopEndsContinuation(t *testing.T) {
	a := mustFromCells(t, verticalBlinker(), DefaultConfig())
	if !a.CanContinue() {
		t.Fatal("blinker should be able to continue")
	}
	a.ForceStop()
	if a.CanContinue() {
		t.Fatal("CanContinue must be false right after ForceStop")
	}
	if !a.Running() {
		t.Fatal("ForceStop must not touch the running flag")
	}
	if a.Population() != 0 {
		t.Fatalf("population = %d after ForceStop", a.Population())
	}
}

func TestCommitWithoutAdvanceReappliesStalePending(t *testing.T) {
	a := mustFromCells(t, verticalBlinker(), DefaultConfig())
	a.AdvanceGeneration()
	a.CommitGeneration()
	first := a.Snapshot()

	if !a.CommitGeneration() {
		t.Fatal("re-committing stale pending states changes nothing and stabilizes")
	}
	if !first.Equal(a.Snapshot()) {
		t.Fatal("stale commit altered the grid")
	}
}

func TestGridStringAndMask(t *testing.T) {
	g := mustFromCells(t, pattern(2, 3, Position{0, 0}, Position{1, 2}), DefaultConfig()).Snapshot()
	if got, want := g.String(), "#..\n..#\n"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
	mask := g.Mask(nil)
	if len(mask) != 6 || !mask[0] || !mask[5] || mask[1] {
		t.Fatalf("Mask() = %v", mask)
	}
	if p := g.Pattern(); !p[1][2] || p[0][1] {
		t.Fatalf("Pattern() = %v", p)
	}
}

func TestObserversFanOut(t *testing.T) {
	var a, b recorder
	obs := Observers(&a, nil, ObserverFunc(b.Notify))
	obs.Notify(Event{Signal: Halted, Cause: Extinguished})
	if a.count(Halted) != 1 || b.count(Halted) != 1 {
		t.Fatal("every observer should receive the event")
	}
}

func TestFromMap(t *testing.T) {
	cfg := FromMap(map[string]string{
		"lower":     "1",
		"upper":     "5",
		"resurrect": "2",
		"delay":     "40ms",
	})
	if cfg.Rules != (Rules{LowerBound: 1, UpperBound: 5, ResurrectExact: 2}) {
		t.Fatalf("Rules = %+v", cfg.Rules)
	}
	if cfg.Delay.Milliseconds() != 40 {
		t.Fatalf("Delay = %v", cfg.Delay)
	}

	def := FromMap(map[string]string{"lower": "-1", "delay": "soon"})
	if def != DefaultConfig() {
		t.Fatalf("invalid values should fall back to defaults, got %+v", def)
	}
}
