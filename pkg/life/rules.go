package life

import (
	"strconv"
	"time"
)

// Rules holds the neighbor thresholds that drive every cell transition.
//
// The automaton never validates them: thresholds outside [0,8] simply make a
// rule never or always fire.
type Rules struct {
	// LowerBound is the minimum number of alive neighbors a cell needs to survive.
	LowerBound int
	// UpperBound is the maximum number of alive neighbors a cell tolerates.
	UpperBound int
	// ResurrectExact is the exact alive-neighbor count that makes a cell alive.
	ResurrectExact int
}

// StandardRules returns Conway's B3/S23 thresholds.
func StandardRules() Rules {
	return Rules{LowerBound: 2, UpperBound: 3, ResurrectExact: 3}
}

// Next applies the transition rule to a cell with the given state and number
// of alive neighbors. The checks run in order and the first match wins, so an
// exact resurrect count overrides overcrowding for live cells too.
func (r Rules) Next(alive bool, neighbors int) bool {
	switch {
	case neighbors < r.LowerBound:
		return false
	case neighbors == r.ResurrectExact:
		return true
	case neighbors > r.UpperBound:
		return false
	default:
		return alive
	}
}

// Config controls the rules and pacing of an Automaton.
type Config struct {
	Rules Rules

	// Delay is the pause between generations while automatic mode is on.
	Delay time.Duration
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Rules: StandardRules(),
		Delay: 250 * time.Millisecond,
	}
}

// FromMap populates a Config from a string map (flag-style key/value pairs).
// Unknown keys and unparsable values are ignored.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["lower"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Rules.LowerBound = parsed
		}
	}
	if v, ok := cfg["upper"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Rules.UpperBound = parsed
		}
	}
	if v, ok := cfg["resurrect"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Rules.ResurrectExact = parsed
		}
	}
	if v, ok := cfg["delay"]; ok {
		if parsed, err := time.ParseDuration(v); err == nil && parsed >= 0 {
			c.Delay = parsed
		}
	}
	return c
}
