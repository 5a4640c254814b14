package core

import "sort"

// SeedOptions tunes seeders that are not fully determined by the grid size.
type SeedOptions struct {
	// Density is the alive probability used as given; callers supply their
	// own default (the config layer uses 0.3).
	Density float64
	Seed    int64
}

// Seeder produces an initial rows×cols pattern indexed [row][col].
type Seeder func(rows, cols int, opts SeedOptions) [][]bool

var seeders = map[string]Seeder{}

// Register adds a seeder under the provided name.
func Register(name string, s Seeder) {
	if name == "" || s == nil {
		return
	}
	seeders[name] = s
}

// Lookup returns the seeder registered under name.
func Lookup(name string) (Seeder, bool) {
	s, ok := seeders[name]
	return s, ok
}

// Names lists registered seeders in sorted order.
func Names() []string {
	names := make([]string, 0, len(seeders))
	for name := range seeders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Blank allocates a rows×cols pattern with every cell dead.
func Blank(rows, cols int) [][]bool {
	if rows <= 0 || cols <= 0 {
		return nil
	}
	p := make([][]bool, rows)
	for r := range p {
		p[r] = make([]bool, cols)
	}
	return p
}
