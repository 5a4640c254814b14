//go:build ebiten

package app

import (
	"fmt"
	"image/color"
	"sync"

	"toruslife/internal/core"
	"toruslife/internal/render"
	"toruslife/internal/ui"
	"toruslife/pkg/life"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const hudWidth = 240

// Game adapts an automaton to the ebiten.Game interface. Install it as the
// automaton's observer before starting the controller.
type Game struct {
	a       *life.Automaton
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD

	onColor  color.Color
	offColor color.Color
	scale    int

	mask []bool

	mu     sync.Mutex
	latest *life.Grid
	banner string
}

// New constructs a Game for a.
func New(a *life.Automaton, scale int) *Game {
	if scale <= 0 {
		scale = 1
	}
	size := a.Size()
	g := &Game{
		a:        a,
		painter:  render.NewGridPainter(size.Rows, size.Cols),
		overlay:  ui.NewOverlay(size.Rows, size.Cols, scale),
		hud:      ui.NewHUD(core.NewParams(a), hudWidth),
		onColor:  color.White,
		offColor: color.Black,
		scale:    scale,
	}
	g.mask = a.Snapshot().Mask(nil)
	g.overlay.Push(g.mask)
	return g
}

// Notify implements life.Observer. It runs on the controller goroutine and
// only hands the frame over to Update.
func (g *Game) Notify(ev life.Event) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if ev.Grid != nil {
		g.latest = ev.Grid
	}
	switch ev.Signal {
	case life.Stabilized:
		g.banner = fmt.Sprintf("Stabilized at gen %d", ev.Generation)
	case life.Extinguished:
		g.banner = fmt.Sprintf("Extinct at gen %d", ev.Generation)
	case life.Halted:
		if ev.Cause == life.Cancelled {
			g.banner = "Cancelled"
		}
	}
}

// WindowSize returns the unscaled window dimensions.
func (g *Game) WindowSize() (int, int) {
	size := g.a.Size()
	return size.Cols*g.scale + hudWidth, size.Rows * g.scale
}

// Update handles input and picks up the newest committed frame.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if c := g.a.Controller(); c != nil {
		if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
			c.SetAutomatic(!c.Automatic())
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyN) {
			c.RequestStep()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyK) {
		g.a.ForceStop()
	}

	g.mu.Lock()
	frame, banner := g.latest, g.banner
	g.latest = nil
	g.mu.Unlock()
	if frame != nil {
		g.mask = frame.Mask(g.mask)
		g.overlay.Push(g.mask)
	}

	g.overlay.Update()
	g.hud.SetBanner(banner)
	size := g.a.Size()
	g.hud.Update(size.Cols * g.scale)
	return nil
}

// Draw renders the grid, the overlay and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.mask, g.onColor, g.offColor, g.scale)
	g.overlay.Draw(screen)
	size := g.a.Size()
	g.hud.Draw(screen, size.Cols*g.scale, size.Rows*g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.WindowSize()
}
