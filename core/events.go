// File: events.go
// Role: Lifecycle event contract: Event, EventKind, Observer, Recorder.
// Determinism:
//   - Events carry a graph-wide sequence number (1, 2, ...) in emission order.
//   - A node emits Initialized exactly once and Deallocated at most once.
// Concurrency:
//   - emit() runs under the Graph lock; Recorder has its own lock so it can be
//     read from other goroutines while the Graph keeps mutating.

package core

import (
	"strconv"
	"sync"
)

// EventKind enumerates the two lifecycle events a node emits.
type EventKind uint8

const (
	// Initialized is emitted when a node is created.
	Initialized EventKind = iota + 1
	// Deallocated is emitted when a node's strong count reaches zero.
	Deallocated
)

// String returns "initialized" or "deallocated".
func (k EventKind) String() string {
	switch k {
	case Initialized:
		return "initialized"
	case Deallocated:
		return "deallocated"
	default:
		return "EventKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Event is one record of the lifecycle log.
type Event struct {
	Seq   uint64    `json:"seq" yaml:"seq"`
	Kind  EventKind `json:"kind" yaml:"kind"`
	Node  NodeID    `json:"node" yaml:"node"`
	Label string    `json:"label" yaml:"label"`
}

// String renders the event as "initialized(John)".
func (e Event) String() string {
	return e.Kind.String() + "(" + e.Label + ")"
}

// MarshalText renders the kind as its name so encoders print "initialized".
func (k EventKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Observer receives lifecycle events in emission order.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(Event)

// Observe calls f(e).
func (f ObserverFunc) Observe(e Event) { f(e) }

// Recorder is an Observer that keeps the ordered event log in memory.
// It is the test-facing replacement for print statements in initializers and
// deinitializers.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder { return &Recorder{} }

// Observe appends e to the log.
func (r *Recorder) Observe(e Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

// Events returns a copy of the log.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)

	return out
}

// Strings returns the log rendered with Event.String, e.g. "deallocated(John)".
func (r *Recorder) Strings() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.String()
	}

	return out
}

// Labels returns the labels of events of the given kind in emission order.
func (r *Recorder) Labels(kind EventKind) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, e := range r.events {
		if e.Kind == kind {
			out = append(out, e.Label)
		}
	}

	return out
}

// Len returns the number of recorded events.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.events)
}

// Reset drops every recorded event.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}

// emit assigns the next sequence number and delivers the event.
// Caller must hold g.mu.
func (g *Graph) emit(kind EventKind, n *node) {
	g.seq++
	e := Event{Seq: g.seq, Kind: kind, Node: n.id, Label: n.label}
	g.logger.Debug("core: lifecycle event", "seq", e.Seq, "kind", e.Kind.String(), "node", n.id.String(), "label", n.label)
	for _, o := range g.observers {
		o.Observe(e)
	}
}
