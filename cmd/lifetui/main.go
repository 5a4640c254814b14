// Command lifetui runs a toroidal Life automaton in the terminal.
//
//	lifetui -pattern glider -rows 20 -cols 40 -auto
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"toruslife/internal/app"
	"toruslife/internal/config"
	"toruslife/internal/logging"
	"toruslife/internal/notify"
	"toruslife/internal/tui"
	"toruslife/pkg/life"
)

var version = "dev"

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	logPath := flag.String("log", filepath.Join(os.TempDir(), "lifetui.log"), "log file; the terminal is busy with the grid")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, *logPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, flags *app.Config, logPath string) error {
	cfg, err := flags.Resolve(flag.CommandLine)
	if err != nil {
		return err
	}

	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logFile.Close()
	log := logging.NewWithWriter(config.LoggingConfig{Level: cfg.Logging.Level, Format: "text"}, version, logFile)

	a, err := app.NewAutomaton(cfg)
	if err != nil {
		return err
	}
	a.SetLogger(log)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initialising screen: %w", err)
	}
	defer screen.Fini()

	view := tui.New(screen, a)
	a.SetObserver(life.Observers(view, notify.Log(log)))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	ctl, err := a.Start(ctx, cfg.Controller.Automatic, false)
	if err != nil {
		return err
	}

	err = view.Run(ctx)
	cancel()
	<-ctl.Done()
	log.Info("lifetui finished", "cause", ctl.Cause().String(), "generation", a.Generation())
	return err
}
