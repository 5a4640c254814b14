// Package notify turns automaton events into log lines, MQTT messages and
// metrics.
package notify

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"toruslife/internal/influxdb"
	"toruslife/pkg/life"
)

// Payload is the JSON document published for an event.
type Payload struct {
	RunID      string    `json:"run_id,omitempty"`
	Signal     string    `json:"signal"`
	Cause      string    `json:"cause,omitempty"`
	Generation int       `json:"generation"`
	Population int       `json:"population"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewPayload describes ev at time at.
func NewPayload(runID string, ev life.Event, at time.Time) Payload {
	p := Payload{
		RunID:      runID,
		Signal:     ev.Signal.String(),
		Generation: ev.Generation,
		Timestamp:  at.UTC(),
	}
	if ev.Cause != 0 {
		p.Cause = ev.Cause.String()
	}
	if ev.Grid != nil {
		p.Population = ev.Grid.Population()
	}
	return p
}

// Log returns an observer that writes every milestone at info level and
// every generation at debug level.
func Log(logger life.Logger) life.Observer {
	return life.ObserverFunc(func(ev life.Event) {
		args := []any{"signal", ev.Signal.String(), "generation", ev.Generation}
		if ev.Grid != nil {
			args = append(args, "population", ev.Grid.Population())
		}
		switch ev.Signal {
		case life.GenerationAdvanced:
			logger.Debug("generation committed", args...)
		case life.Halted:
			logger.Info("controller halted", append(args, "cause", ev.Cause.String())...)
		default:
			logger.Info("milestone reached", args...)
		}
	})
}

// Publisher is the subset of the MQTT client used here.
type Publisher interface {
	Publish(topic string, payload []byte, qos byte, retained bool) error
}

// TopicFunc names the topic for a signal.
type TopicFunc func(signal string) string

// MQTT publishes milestones, and optionally every generation, as JSON.
type MQTT struct {
	pub             Publisher
	topic           TopicFunc
	runID           string
	qos             byte
	everyGeneration bool
	logger          life.Logger
	now             func() time.Time
}

// NewMQTT builds an MQTT observer. Publish failures are logged to logger.
func NewMQTT(pub Publisher, topic TopicFunc, runID string, qos byte, everyGeneration bool, logger life.Logger) *MQTT {
	return &MQTT{
		pub:             pub,
		topic:           topic,
		runID:           runID,
		qos:             qos,
		everyGeneration: everyGeneration,
		logger:          logger,
		now:             time.Now,
	}
}

// Notify implements life.Observer.
func (m *MQTT) Notify(ev life.Event) {
	if ev.Signal == life.GenerationAdvanced && !m.everyGeneration {
		return
	}
	body, err := json.Marshal(NewPayload(m.runID, ev, m.now()))
	if err != nil {
		m.logger.Error("encoding event", "error", err)
		return
	}
	retained := ev.Signal == life.Halted
	if err := m.pub.Publish(m.topic(ev.Signal.String()), body, m.qos, retained); err != nil {
		m.logger.Warn("publishing event", "signal", ev.Signal.String(), "error", err)
	}
}

// MetricsWriter is the subset of the InfluxDB client used here.
type MetricsWriter interface {
	WriteGeneration(influxdb.GenerationSample)
	WriteMilestone(influxdb.Milestone)
}

// Metrics records a generation sample for every committed round and a
// milestone point for every other signal.
type Metrics struct {
	w     MetricsWriter
	runID string
	now   func() time.Time
}

// NewMetrics builds a metrics observer.
func NewMetrics(w MetricsWriter, runID string) *Metrics {
	return &Metrics{w: w, runID: runID, now: time.Now}
}

// Notify implements life.Observer.
func (m *Metrics) Notify(ev life.Event) {
	at := m.now()
	if ev.Signal != life.GenerationAdvanced {
		m.w.WriteMilestone(influxdb.Milestone{RunID: m.runID, Signal: ev.Signal.String(), Generation: ev.Generation, At: at})
		return
	}
	s := influxdb.GenerationSample{RunID: m.runID, Generation: ev.Generation, At: at}
	if ev.Grid != nil {
		s.Population = ev.Grid.Population()
		s.Cells = ev.Grid.Size().Cells()
	}
	m.w.WriteGeneration(s)
}

// Async decouples a slow observer from the controller goroutine. Events are
// queued in order; when the queue is full GenerationAdvanced events are
// dropped while every other signal waits for room.
type Async struct {
	next    life.Observer
	queue   chan life.Event
	dropped atomic.Int64

	closeOnce sync.Once
	done      chan struct{}
}

// NewAsync starts a worker delivering to next with a queue of size buffer.
func NewAsync(next life.Observer, buffer int) *Async {
	if buffer <= 0 {
		buffer = 64
	}
	a := &Async{next: next, queue: make(chan life.Event, buffer), done: make(chan struct{})}
	go a.run()
	return a
}

func (a *Async) run() {
	defer close(a.done)
	for ev := range a.queue {
		a.next.Notify(ev)
	}
}

// Notify implements life.Observer. It must not be called after Close.
func (a *Async) Notify(ev life.Event) {
	if ev.Signal == life.GenerationAdvanced {
		select {
		case a.queue <- ev:
		default:
			a.dropped.Add(1)
		}
		return
	}
	a.queue <- ev
}

// Dropped returns how many generation events were discarded.
func (a *Async) Dropped() int64 { return a.dropped.Load() }

// Close delivers the queued events and stops the worker.
func (a *Async) Close() {
	a.closeOnce.Do(func() { close(a.queue) })
	<-a.done
}
