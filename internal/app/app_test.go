package app

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func parse(t *testing.T, args ...string) (*Config, *flag.FlagSet) {
	t.Helper()
	c := NewConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	c.Bind(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return c, fs
}

func TestResolveDefaults(t *testing.T) {
	c, fs := parse(t)
	cfg, err := c.Resolve(fs)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.Grid.Rows != 32 || cfg.Grid.Pattern != "random" || cfg.Controller.Automatic {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestResolveFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	content := "grid:\n  rows: 9\n  cols: 9\n  pattern: block\ncontroller:\n  automatic: true\n  delay_ms: 10\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	c, fs := parse(t, "-config", path, "-cols", "11", "-delay", "75")
	cfg, err := c.Resolve(fs)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.Grid.Rows != 9 || cfg.Grid.Cols != 11 || cfg.Grid.Pattern != "block" {
		t.Fatalf("grid = %+v", cfg.Grid)
	}
	if !cfg.Controller.Automatic || cfg.Delay() != 75*time.Millisecond {
		t.Fatalf("controller = %+v", cfg.Controller)
	}
}

func TestResolveRejectsBadFlags(t *testing.T) {
	c, fs := parse(t, "-rows", "0")
	if _, err := c.Resolve(fs); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestNewAutomaton(t *testing.T) {
	c, fs := parse(t, "-rows", "6", "-cols", "6", "-pattern", "block")
	cfg, err := c.Resolve(fs)
	if err != nil {
		t.Fatal(err)
	}
	a, err := NewAutomaton(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if a.Population() != 4 || a.Size().Rows != 6 {
		t.Fatalf("population=%d size=%+v", a.Population(), a.Size())
	}

	cfg.Grid.Pattern = "spaceship"
	if _, err := NewAutomaton(cfg); !errors.Is(err, ErrUnknownPattern) {
		t.Fatalf("error = %v", err)
	}
}
