package patterns

import (
	"testing"

	"toruslife/internal/core"
	"toruslife/pkg/life"
)

func alive(p [][]bool) int {
	n := 0
	for _, row := range p {
		for _, v := range row {
			if v {
				n++
			}
		}
	}
	return n
}

func TestBuiltinsRegistered(t *testing.T) {
	for _, name := range []string{"blank", "random", "blinker", "block", "glider", "rpentomino"} {
		if _, ok := core.Lookup(name); !ok {
			t.Fatalf("seeder %q not registered", name)
		}
	}
	if _, ok := Build("nope", 3, 3, core.SeedOptions{}); ok {
		t.Fatal("unknown seeder should fail")
	}
}

func TestShapePopulations(t *testing.T) {
	cases := map[string]int{"blank": 0, "blinker": 3, "block": 4, "glider": 5, "rpentomino": 5}
	for name, want := range cases {
		p, _ := Build(name, 8, 8, core.SeedOptions{})
		if len(p) != 8 || len(p[0]) != 8 {
			t.Fatalf("%s: wrong shape", name)
		}
		if got := alive(p); got != want {
			t.Fatalf("%s: alive = %d, want %d", name, got, want)
		}
	}
}

func TestBlinkerIsCentred(t *testing.T) {
	p, _ := Build("blinker", 5, 5, core.SeedOptions{})
	for col := 1; col <= 3; col++ {
		if !p[2][col] {
			t.Fatalf("expected (2,%d) alive", col)
		}
	}
}

func TestShapeWrapsOnTinyGrid(t *testing.T) {
	p, _ := Build("glider", 2, 2, core.SeedOptions{})
	if alive(p) == 0 {
		t.Fatal("glider on a tiny grid should still place cells")
	}
}

func TestRandomHonoursDensityBounds(t *testing.T) {
	if got := alive(Random(10, 10, core.SeedOptions{Density: 0, Seed: 7})); got != 0 {
		t.Fatalf("density 0: alive = %d, want 0", got)
	}
	if got := alive(Random(10, 10, core.SeedOptions{Density: 1, Seed: 7})); got != 100 {
		t.Fatalf("density 1: alive = %d, want 100", got)
	}
}

func TestRandomIsDeterministic(t *testing.T) {
	opts := core.SeedOptions{Density: 0.5, Seed: 42}
	a := Random(16, 16, opts)
	b := Random(16, 16, opts)
	for r := range a {
		for c := range a[r] {
			if a[r][c] != b[r][c] {
				t.Fatalf("mismatch at %d,%d", r, c)
			}
		}
	}
	if n := alive(a); n == 0 || n == 256 {
		t.Fatalf("density 0.5 gave %d alive cells", n)
	}
}

func TestSeededAutomatonBlockIsStill(t *testing.T) {
	p, _ := Build("block", 6, 6, core.SeedOptions{})
	a, err := life.NewFromCells(p, life.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	a.AdvanceGeneration()
	if !a.CommitGeneration() {
		t.Fatal("a block should stabilize on the first round")
	}
}
