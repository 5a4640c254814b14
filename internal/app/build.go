package app

import (
	"errors"
	"fmt"

	"toruslife/internal/config"
	"toruslife/internal/core"
	"toruslife/internal/patterns"
	"toruslife/pkg/life"
)

// ErrUnknownPattern is returned for a pattern name with no registered seeder.
var ErrUnknownPattern = errors.New("app: unknown pattern")

// NewAutomaton seeds an automaton from the grid, rules and controller
// sections of cfg.
func NewAutomaton(cfg *config.Config) (*life.Automaton, error) {
	pattern, ok := patterns.Build(cfg.Grid.Pattern, cfg.Grid.Rows, cfg.Grid.Cols, core.SeedOptions{
		Density: cfg.Grid.Density,
		Seed:    cfg.Grid.Seed,
	})
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrUnknownPattern, cfg.Grid.Pattern, core.Names())
	}
	return life.NewFromCells(pattern, cfg.LifeConfig())
}
