// Package bfs provides tunable options and error definitions
// for breadth-first search over the ownership edges of a core.Graph.
package bfs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/arcsim/core"
)

// Sentinel errors for BFS execution.
var (
	// ErrStartNodeNotFound is returned when the start node is absent or deallocated.
	ErrStartNodeNotFound = errors.New("bfs: start node not found")

	// ErrGraphNil is returned if a nil graph pointer is passed.
	ErrGraphNil = errors.New("bfs: graph is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("bfs: invalid option supplied")

	// ErrNotRetained is returned by RetainPath for a live node that no root
	// reaches over strong edges, i.e. a leaked one.
	ErrNotRetained = errors.New("bfs: node not retained by any root")
)

// Option configures BFS behavior via functional arguments.
// If an Option is invalid (e.g. negative depth), it will be recorded
// internally and surfaced as ErrOptionViolation when BFS is invoked.
type Option func(*Options)

// Options holds parameters and callbacks to customize BFS execution.
type Options struct {
	// Ctx allows cancellation and deadlines.
	Ctx context.Context

	// OnEnqueue is called when a node is enqueued, before visiting.
	OnEnqueue func(id core.NodeID, depth int)

	// OnVisit is called when visiting a node. If it returns an error,
	// BFS aborts and propagates that error.
	OnVisit func(id core.NodeID, depth int) error

	// MaxDepth, if > 0, stops exploring beyond this depth.
	MaxDepth int

	// FilterEdge decides which edges are followed. Strong edges only by default.
	FilterEdge func(e core.Edge) bool

	err error
}

// DefaultOptions returns Options following strong edges with no depth
// limit and no-op hooks.
func DefaultOptions() Options {
	return Options{
		Ctx:        context.Background(),
		OnEnqueue:  func(core.NodeID, int) {},
		OnVisit:    func(core.NodeID, int) error { return nil },
		FilterEdge: func(e core.Edge) bool { return e.Kind == core.Strong },
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnEnqueue registers a callback to run on enqueue.
func WithOnEnqueue(fn func(id core.NodeID, depth int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnEnqueue = fn
		}
	}
}

// WithOnVisit registers a callback to run on visit; returning an error
// from this callback stops the BFS.
func WithOnVisit(fn func(id core.NodeID, depth int) error) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// WithMaxDepth stops the search at the given depth.
//
//	d > 0: limit to depth d
//	d == 0: no limit
//	d < 0: invalid option → ErrOptionViolation
func WithMaxDepth(d int) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)
			return
		}
		o.MaxDepth = d
	}
}

// WithFilterEdge replaces the edge filter, e.g. to follow weak edges too.
func WithFilterEdge(fn func(e core.Edge) bool) Option {
	return func(o *Options) {
		if fn != nil {
			o.FilterEdge = fn
		}
	}
}

// Link is the edge a node was first reached through.
type Link struct {
	From  core.NodeID
	Field string
}

// Result holds the outcome of a BFS traversal:
//   - Order: nodes visited, in visit sequence.
//   - Depth: distance (in edges) from the nearest start node.
//   - Parent: the edge each non-start node was reached through.
type Result struct {
	Order  []core.NodeID
	Depth  map[core.NodeID]int
	Parent map[core.NodeID]Link
}

// PathTo reconstructs the path from a start node to dest.
func (r *Result) PathTo(dest core.NodeID) ([]core.NodeID, error) {
	if _, ok := r.Depth[dest]; !ok {
		return nil, fmt.Errorf("bfs: no path to %s", dest)
	}
	path := []core.NodeID{}
	for cur := dest; ; {
		path = append(path, cur)
		link, ok := r.Parent[cur]
		if !ok {
			break
		}
		cur = link.From
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, nil
}

// RetentionPath is the shortest chain of strong edges from a root to a node.
// Fields[i] is the field of Nodes[i] that holds Nodes[i+1].
type RetentionPath struct {
	Nodes  []core.NodeID
	Fields []string
	Labels []string
}

// String renders the path as "TelBel -user-> John".
func (p RetentionPath) String() string {
	var sb strings.Builder
	for i, l := range p.Labels {
		if i > 0 {
			sb.WriteString(" -")
			sb.WriteString(p.Fields[i-1])
			sb.WriteString("-> ")
		}
		sb.WriteString(l)
	}

	return sb.String()
}
