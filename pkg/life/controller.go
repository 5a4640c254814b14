package life

import (
	"context"
	"sync/atomic"
	"time"
)

// State is the progression controller's lifecycle state.
type State int32

const (
	// StateIdle means the controller has not started its loop yet.
	StateIdle State = iota
	// StateWaiting means the loop holds until automatic mode or a step request
	// allows the next round.
	StateWaiting
	// StateAdvancing means a round is being computed and committed.
	StateAdvancing
	// StateHalted is terminal.
	StateHalted
)

// String returns the lower-case state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateWaiting:
		return "waiting"
	case StateAdvancing:
		return "advancing"
	case StateHalted:
		return "halted"
	default:
		return "unknown"
	}
}

// Controller drives an Automaton forward, either every Delay while automatic
// mode is on or once per RequestStep.
//
// Thread Safety:
//   - All exported methods are safe for concurrent use.
//   - Rounds run only on the controller's own goroutine.
type Controller struct {
	a *Automaton

	automatic atomic.Bool
	delay     atomic.Int64
	state     atomic.Int32
	cause     atomic.Int32

	// step holds at most one pending request; extra requests coalesce.
	step chan struct{}
	// wakeCh interrupts a wait so flags and extinction are re-checked.
	wakeCh chan struct{}
	done   chan struct{}
}

func newController(a *Automaton, automatic, step bool) *Controller {
	c := &Controller{
		a:      a,
		step:   make(chan struct{}, 1),
		wakeCh: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	c.automatic.Store(automatic)
	c.delay.Store(int64(a.cfg.Delay))
	if step {
		c.step <- struct{}{}
	}
	return c
}

// SetAutomatic turns timer-driven advancement on or off.
func (c *Controller) SetAutomatic(on bool) {
	c.automatic.Store(on)
	c.wake()
}

// Automatic reports whether timer-driven advancement is on.
func (c *Controller) Automatic() bool { return c.automatic.Load() }

// RequestStep grants permission for one more round. Requests made while a
// round is in flight are served by the next round; repeated requests before
// that round coalesce into one.
func (c *Controller) RequestStep() {
	select {
	case c.step <- struct{}{}:
	default:
	}
}

// StepRequested reports whether a step request is waiting to be consumed.
func (c *Controller) StepRequested() bool { return len(c.step) > 0 }

// SetDelay changes the automatic-mode pause. It applies from the next wait.
func (c *Controller) SetDelay(d time.Duration) {
	if d < 0 {
		d = 0
	}
	c.delay.Store(int64(d))
}

// Delay returns the automatic-mode pause.
func (c *Controller) Delay() time.Duration { return time.Duration(c.delay.Load()) }

// State returns the current lifecycle state.
func (c *Controller) State() State { return State(c.state.Load()) }

// Done is closed once the controller has halted and notified the observer.
func (c *Controller) Done() <-chan struct{} { return c.done }

// Wait blocks until the controller halts and returns the halt cause.
func (c *Controller) Wait() Signal {
	<-c.done
	return c.Cause()
}

// Cause returns why the controller halted, or 0 while it is still running.
func (c *Controller) Cause() Signal { return Signal(c.cause.Load()) }

func (c *Controller) wake() {
	select {
	case c.wakeCh <- struct{}{}:
	default:
	}
}

func (c *Controller) run(ctx context.Context) {
	defer close(c.done)
	log := c.a.log()
	size := c.a.Size()
	log.Info("controller started",
		"rows", size.Rows,
		"cols", size.Cols,
		"automatic", c.Automatic(),
		"delay", c.Delay(),
	)

	for {
		if !c.a.CanContinue() {
			c.halt(c.a.haltCause())
			return
		}

		c.state.Store(int32(StateWaiting))
		if cause, ok := c.await(ctx); !ok {
			c.halt(cause)
			return
		}

		c.state.Store(int32(StateAdvancing))
		ran, stabilized, gen, frame := c.a.round()
		if ran && !stabilized {
			log.Debug("generation advanced", "generation", gen, "population", frame.Population())
			c.a.notify(Event{Signal: GenerationAdvanced, Generation: gen, Grid: frame})
		}
	}
}

// await blocks until the next round may start. It returns false with a halt
// cause when the context ends or the grid can no longer change.
func (c *Controller) await(ctx context.Context) (Signal, bool) {
	for {
		if c.automatic.Load() {
			timer := time.NewTimer(c.Delay())
			select {
			case <-ctx.Done():
				timer.Stop()
				return Cancelled, false
			case <-c.step:
				timer.Stop()
				return 0, true
			case <-timer.C:
				// The timed round also satisfies any pending request.
				c.drainStep()
				return 0, true
			case <-c.wakeCh:
				timer.Stop()
			}
		} else {
			select {
			case <-ctx.Done():
				return Cancelled, false
			case <-c.step:
				return 0, true
			case <-c.wakeCh:
			}
		}

		if !c.a.CanContinue() {
			return c.a.haltCause(), false
		}
	}
}

func (c *Controller) drainStep() {
	select {
	case <-c.step:
	default:
	}
}

func (c *Controller) halt(cause Signal) {
	c.cause.Store(int32(cause))
	c.state.Store(int32(StateHalted))

	frame := c.a.Snapshot()
	gen := c.a.Generation()
	log := c.a.log()
	switch cause {
	case Extinguished:
		log.Info("all cells have died", "generation", gen)
		c.a.notify(Event{Signal: Extinguished, Generation: gen, Grid: frame})
	case Cancelled:
		log.Info("controller cancelled", "generation", gen)
	}
	log.Info("system halted", "cause", cause.String(), "generation", gen)
	c.a.notify(Event{Signal: Halted, Cause: cause, Generation: gen, Grid: frame})
}
