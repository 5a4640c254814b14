// Package tui renders an automaton in a terminal with tcell and maps keys to
// controller actions.
package tui

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"toruslife/internal/core"
	"toruslife/pkg/life"
)

const (
	delayStep = 50 * time.Millisecond
	maxFPS    = 30
)

var (
	styleDead   = tcell.StyleDefault.Background(tcell.ColorBlack)
	styleAlive  = tcell.StyleDefault.Background(tcell.ColorGreen)
	styleStatus = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	styleBanner = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow)
)

// quitEvent asks the loop to exit.
type quitEvent struct{}

// View draws the automaton and forwards keys to its controller. It implements
// life.Observer so the controller can trigger redraws.
type View struct {
	screen  tcell.Screen
	a       *life.Automaton
	limiter *core.FrameLimiter

	mu     sync.Mutex
	banner string
}

// New builds a View on an initialised screen.
func New(screen tcell.Screen, a *life.Automaton) *View {
	return &View{screen: screen, a: a, limiter: core.NewFrameLimiter(maxFPS)}
}

// Notify implements life.Observer.
func (v *View) Notify(ev life.Event) {
	switch ev.Signal {
	case life.Stabilized:
		v.setBanner(fmt.Sprintf("stabilized at generation %d", ev.Generation))
	case life.Extinguished:
		v.setBanner(fmt.Sprintf("all cells died at generation %d", ev.Generation))
	case life.Halted:
		if ev.Cause == life.Cancelled {
			v.setBanner("cancelled")
		}
	}
	// Dropped when the event queue is full; the next frame catches up.
	//nolint:errcheck
	v.screen.PostEvent(tcell.NewEventInterrupt(ev))
}

func (v *View) setBanner(s string) {
	v.mu.Lock()
	v.banner = s
	v.mu.Unlock()
}

// Banner returns the last milestone message.
func (v *View) Banner() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.banner
}

// Run processes terminal events until q, Esc or ctx ends.
func (v *View) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		//nolint:errcheck
		v.screen.PostEvent(tcell.NewEventInterrupt(quitEvent{}))
	}()

	v.Draw()
	for {
		ev := v.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			v.screen.Sync()
			v.Draw()
		case *tcell.EventKey:
			if v.HandleKey(ev) {
				return nil
			}
			v.Draw()
		case *tcell.EventInterrupt:
			if _, ok := ev.Data().(quitEvent); ok {
				return nil
			}
			le, _ := ev.Data().(life.Event)
			if le.Signal != life.GenerationAdvanced || v.limiter.Ready(time.Now()) {
				v.Draw()
			}
		}
	}
}

// HandleKey applies one key press and reports whether the view should quit.
//
//	space  toggle automatic mode
//	n      request one step
//	k      kill every cell
//	+ / -  change the automatic delay
//	q Esc  quit
func (v *View) HandleKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
		return true
	}
	if ev.Key() != tcell.KeyRune {
		return false
	}

	c := v.a.Controller()
	switch ev.Rune() {
	case 'q':
		return true
	case 'k':
		v.a.ForceStop()
	case ' ':
		if c != nil {
			c.SetAutomatic(!c.Automatic())
		}
	case 'n':
		if c != nil {
			c.RequestStep()
		}
	case '+', '=':
		if c != nil {
			c.SetDelay(c.Delay() + delayStep)
		}
	case '-':
		if c != nil {
			c.SetDelay(c.Delay() - delayStep)
		}
	}
	return false
}

// Draw renders the grid with two columns per cell and a status line below.
func (v *View) Draw() {
	g := v.a.Snapshot()
	v.screen.Clear()

	w, h := v.screen.Size()
	rows := min(g.Rows(), h-1)
	cols := min(g.Cols(), w/2)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			style := styleDead
			if cell, err := g.At(r, c); err == nil && cell.Alive() {
				style = styleAlive
			}
			v.screen.SetContent(2*c, r, ' ', nil, style)
			v.screen.SetContent(2*c+1, r, ' ', nil, style)
		}
	}

	v.drawText(0, rows, v.Status(g), styleStatus)
	if b := v.Banner(); b != "" && rows+1 < h {
		v.drawText(0, rows+1, " "+b+" ", styleBanner)
	}
	v.screen.Show()
}

// Status formats the one-line summary shown under the grid.
func (v *View) Status(g *life.Grid) string {
	state, auto, delay := life.StateIdle, false, v.a.Config().Delay
	if c := v.a.Controller(); c != nil {
		state, auto, delay = c.State(), c.Automatic(), c.Delay()
	}
	mode := "manual"
	if auto {
		mode = "auto"
	}
	return fmt.Sprintf(" gen %d  pop %d  %s  %s %v  [space] auto  [n] step  [k] kill  [q] quit ",
		v.a.Generation(), g.Population(), state, mode, delay)
}

func (v *View) drawText(x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		v.screen.SetContent(x+i, y, r, nil, style)
	}
}
