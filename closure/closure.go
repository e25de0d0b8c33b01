// Package closure models deferred computations that capture a node of a
// core.Graph, the way a closure captures self.
//
// A Deferred is itself a node of the graph (labelled "closure" by default)
// holding a single "capture" edge to its target. The capture kind decides
// what happens when the target goes away:
//
//   - Strong   the closure keeps the target alive. Storing such a closure in a
//     strong field of its own target builds a capture cycle that leaks.
//   - Weak     the closure observes the target; Invoke yields the fallback once
//     the target is gone.
//   - Unowned  the closure assumes the target outlives it; Invoke fails with
//     core.ErrUseAfterFree once the target is gone.
//
// The closure node is owned like any other node: hold it in a scope, store it
// in a strong field, or both.
package closure

import (
	"errors"
	"fmt"
	"sync"

	"github.com/katalvlaran/arcsim/core"
)

// CaptureField is the field name of the edge from a closure node to its target.
const CaptureField = "capture"

// DefaultLabel is the label of closure nodes unless WithLabel overrides it.
const DefaultLabel = "closure"

var (
	// ErrNilGraph is returned when New receives a nil graph.
	ErrNilGraph = errors.New("closure: graph is nil")

	// ErrNilCompute is returned when New receives a nil compute function.
	ErrNilCompute = errors.New("closure: compute function is nil")

	// ErrClosureReleased is returned by Invoke once the closure node itself
	// has been deallocated.
	ErrClosureReleased = errors.New("closure: closure released")
)

// Option configures a Deferred.
type Option[T any] func(*Deferred[T])

// WithFallback sets the value Invoke returns when a weak capture finds its
// target gone. Defaults to the zero value of T.
func WithFallback[T any](v T) Option[T] {
	return func(d *Deferred[T]) { d.fallback = v }
}

// WithLabel overrides the label of the closure node.
func WithLabel[T any](label string) Option[T] {
	return func(d *Deferred[T]) {
		if label != "" {
			d.label = label
		}
	}
}

// Memoized makes the Deferred a lazy value: the first successful Invoke
// computes and caches the result, later calls return the cache without
// touching the target. A fallback result is never cached, and the cache
// dies with the closure node.
func Memoized[T any]() Option[T] {
	return func(d *Deferred[T]) { d.memoize = true }
}

// Deferred is a computation over a captured node.
type Deferred[T any] struct {
	g        *core.Graph
	node     core.NodeID
	kind     core.EdgeKind
	compute  func(core.NodeID) T
	fallback T
	label    string
	memoize  bool

	mu     sync.Mutex
	cached bool
	value  T
}

// New allocates a closure node in g capturing target with the given kind.
//
// The closure node starts with strong count 0 (like CreateNode); the caller
// must hold it, e.g. Scope.Hold(d.Node()) or g.AddStrongEdge(owner, field, d.Node()).
//
// Errors:
//   - ErrNilGraph, ErrNilCompute, core.ErrUnknownEdgeKind.
//   - core errors from edge creation (e.g. core.ErrNodeDeallocated for a dead target).
func New[T any](g *core.Graph, kind core.EdgeKind, target core.NodeID, compute func(core.NodeID) T, opts ...Option[T]) (*Deferred[T], error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if compute == nil {
		return nil, ErrNilCompute
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("closure: New: %s: %w", kind, core.ErrUnknownEdgeKind)
	}
	d := &Deferred[T]{g: g, kind: kind, compute: compute, label: DefaultLabel}
	for _, opt := range opts {
		opt(d)
	}

	if !g.IsAlive(target) {
		// Validate before allocating so a failed New leaves no orphan node.
		if _, err := g.Label(target); err != nil {
			return nil, fmt.Errorf("closure: New: %w", err)
		}

		return nil, fmt.Errorf("closure: New: target %s: %w", target, core.ErrNodeDeallocated)
	}
	id, err := g.CreateNode(d.label)
	if err != nil {
		return nil, fmt.Errorf("closure: New: %w", err)
	}
	if err = g.SetEdge(id, CaptureField, kind, target); err != nil {
		return nil, fmt.Errorf("closure: New: %w", err)
	}
	d.node = id

	return d, nil
}

// Node returns the closure node.
func (d *Deferred[T]) Node() core.NodeID { return d.node }

// Kind returns the capture kind.
func (d *Deferred[T]) Kind() core.EdgeKind { return d.kind }

// Invoke runs the computation against the captured target.
//
//   - Strong, or weak/unowned with a live target: compute(target).
//   - Weak with the target gone: the fallback, nil error.
//   - Unowned with the target gone: zero value and an error matching
//     core.ErrUseAfterFree.
//   - Closure node deallocated: zero value and ErrClosureReleased.
func (d *Deferred[T]) Invoke() (T, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var zero T
	if !d.g.IsAlive(d.node) {
		return zero, fmt.Errorf("closure: Invoke %s: %w", d.node, ErrClosureReleased)
	}
	if d.memoize && d.cached {
		return d.value, nil
	}

	ref, err := d.g.ReadEdge(d.node, CaptureField)
	if err != nil {
		return zero, fmt.Errorf("closure: Invoke %s: %w", d.node, err)
	}
	target, ok := ref.Get()
	if !ok {
		return d.fallback, nil
	}

	v := d.compute(target)
	if d.memoize {
		d.cached, d.value = true, v
	}

	return v, nil
}

// FormatLabel returns a compute function rendering the target's label with
// format, e.g. FormatLabel(g, "Hello %s.").
func FormatLabel(g *core.Graph, format string) func(core.NodeID) string {
	return func(id core.NodeID) string {
		label, err := g.Label(id)
		if err != nil {
			return ""
		}

		return fmt.Sprintf(format, label)
	}
}
