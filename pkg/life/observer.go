package life

// Signal identifies what an Event reports.
type Signal int

const (
	// GenerationAdvanced reports a committed round that changed the grid.
	GenerationAdvanced Signal = iota + 1
	// Stabilized reports a round whose commit left the grid unchanged.
	Stabilized
	// Extinguished reports that no alive cell remains.
	Extinguished
	// Halted is sent once when the controller stops for good. Event.Cause
	// carries Stabilized, Extinguished or Cancelled.
	Halted
	// Cancelled is the halt cause when the controller's context ends.
	Cancelled
)

// String returns the lower-case signal name.
func (s Signal) String() string {
	switch s {
	case GenerationAdvanced:
		return "generation_advanced"
	case Stabilized:
		return "stabilized"
	case Extinguished:
		return "extinguished"
	case Halted:
		return "halted"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Event is delivered to the observer after the state it describes is fully
// visible.
type Event struct {
	Signal     Signal
	Cause      Signal
	Generation int
	// Grid is a snapshot taken right after the mutation; observers may keep it.
	Grid *Grid
}

// Observer receives automaton events. Notify runs on the controller
// goroutine and should return quickly.
type Observer interface {
	Notify(Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Event)

// Notify calls f(ev).
func (f ObserverFunc) Notify(ev Event) { f(ev) }

type multiObserver []Observer

func (m multiObserver) Notify(ev Event) {
	for _, o := range m {
		o.Notify(ev)
	}
}

// Observers fans every event out to each non-nil observer in order.
func Observers(obs ...Observer) Observer {
	out := make(multiObserver, 0, len(obs))
	for _, o := range obs {
		if o != nil {
			out = append(out, o)
		}
	}
	return out
}
