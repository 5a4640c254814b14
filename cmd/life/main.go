//go:build ebiten

// Command life runs a toroidal Life automaton in a window.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"toruslife/internal/app"
	"toruslife/internal/logging"
	"toruslife/internal/notify"
	"toruslife/pkg/life"

	"github.com/hajimehoshi/ebiten/v2"
)

var version = "dev"

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(flags *app.Config) error {
	cfg, err := flags.Resolve(flag.CommandLine)
	if err != nil {
		return err
	}
	log := logging.New(cfg.Logging, version)

	a, err := app.NewAutomaton(cfg)
	if err != nil {
		return err
	}
	a.SetLogger(log)

	game := app.New(a, flags.Scale)
	a.SetObserver(life.Observers(game, notify.Log(log)))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ctl, err := a.Start(ctx, cfg.Controller.Automatic, false)
	if err != nil {
		return err
	}
	defer func() { <-ctl.Done() }()
	defer cancel()

	ebiten.SetWindowTitle(fmt.Sprintf("toruslife %dx%d %s", cfg.Grid.Rows, cfg.Grid.Cols, cfg.Grid.Pattern))
	ebiten.SetTPS(flags.TPS)
	ebiten.SetWindowSize(game.WindowSize())

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
