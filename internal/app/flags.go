package app

import (
	"flag"
	"fmt"

	"toruslife/internal/config"
)

// Config represents the command-line parameters shared by the viewers.
type Config struct {
	ConfigPath string
	Rows       int
	Cols       int
	Pattern    string
	Density    float64
	Seed       int64
	DelayMS    int
	Auto       bool
	Scale      int
	TPS        int
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	d := config.Default()
	return &Config{
		Rows:    d.Grid.Rows,
		Cols:    d.Grid.Cols,
		Pattern: d.Grid.Pattern,
		Density: d.Grid.Density,
		Seed:    d.Grid.Seed,
		DelayMS: d.Controller.DelayMS,
		Auto:    false,
		Scale:   12,
		TPS:     60,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.ConfigPath, "config", c.ConfigPath, "optional YAML config file")
	fs.IntVar(&c.Rows, "rows", c.Rows, "grid rows")
	fs.IntVar(&c.Cols, "cols", c.Cols, "grid columns")
	fs.StringVar(&c.Pattern, "pattern", c.Pattern, "initial pattern (blank, random, blinker, block, glider, rpentomino)")
	fs.Float64Var(&c.Density, "density", c.Density, "alive probability for the random pattern")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for the random pattern")
	fs.IntVar(&c.DelayMS, "delay", c.DelayMS, "milliseconds between automatic generations")
	fs.BoolVar(&c.Auto, "auto", c.Auto, "start in automatic mode")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "frames per second")
}

// Resolve loads ConfigPath (or the defaults) and lets every flag that was
// explicitly set on fs override the file.
func (c *Config) Resolve(fs *flag.FlagSet) (*config.Config, error) {
	cfg, err := config.Load(c.ConfigPath)
	if err != nil {
		return nil, err
	}
	if c.ConfigPath == "" {
		cfg.Controller.Automatic = c.Auto
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "rows":
			cfg.Grid.Rows = c.Rows
		case "cols":
			cfg.Grid.Cols = c.Cols
		case "pattern":
			cfg.Grid.Pattern = c.Pattern
		case "density":
			cfg.Grid.Density = c.Density
		case "seed":
			cfg.Grid.Seed = c.Seed
		case "delay":
			cfg.Controller.DelayMS = c.DelayMS
		case "auto":
			cfg.Controller.Automatic = c.Auto
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating flags: %w", err)
	}
	return cfg, nil
}
