package main

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"toruslife/internal/config"
	"toruslife/internal/core"
	"toruslife/internal/logging"
	"toruslife/pkg/life"
)

func quietLogger() *logging.Logger {
	return logging.NewWithWriter(config.LoggingConfig{}, "test", io.Discard)
}

func TestCommandHandler(t *testing.T) {
	p := core.Blank(5, 5)
	p[2][1], p[2][2], p[2][3] = true, true, true
	a, err := life.NewFromCells(p, life.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	handle := commandHandler(a, quietLogger())

	if err := handle("t", []byte(cmdStep)); err == nil {
		t.Fatal("step before start should fail")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c, err := a.Start(ctx, false, false)
	if err != nil {
		t.Fatal(err)
	}

	if err := handle("t", []byte(cmdAutoOn)); err != nil || !c.Automatic() {
		t.Fatalf("auto:on err=%v automatic=%v", err, c.Automatic())
	}
	if err := handle("t", []byte(cmdAutoOff)); err != nil || c.Automatic() {
		t.Fatalf("auto:off err=%v automatic=%v", err, c.Automatic())
	}
	if err := handle("t", []byte("dance")); !errors.Is(err, errUnknownCommand) {
		t.Fatalf("unknown command err = %v", err)
	}
	if err := handle("t", []byte(cmdKill)); err != nil {
		t.Fatal(err)
	}
	if cause := c.Wait(); cause != life.Extinguished {
		t.Fatalf("cause = %s", cause)
	}
}

func TestRunHeadlessUntilStable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lifed.yaml")
	content := `
grid:
  rows: 6
  cols: 6
  pattern: block
controller:
  automatic: true
  delay_ms: 1
logging:
  output: discard
server:
  enabled: false
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	done := make(chan error, 1)
	go func() { done <- run(context.Background(), path) }()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("run did not finish after the block stabilized")
	}
}

func TestRunRejectsUnknownPattern(t *testing.T) {
	t.Setenv("TORUSLIFE_PATTERN", "unicorn")
	if err := run(context.Background(), ""); err == nil {
		t.Fatal("expected error for unknown pattern")
	}
}
