// Package dfs defines types and options for depth-first traversal of the
// ownership edges of a core.Graph, including cancellation, pre-/post-order
// hooks, depth limiting, edge filtering, and basic diagnostics.
package dfs

import (
	"context"
	"errors"

	"github.com/katalvlaran/arcsim/core"
)

// DFS visitation states of a node.
const (
	White = iota // White: the node has not been visited yet.
	Gray         // Gray: the node is in the recursion stack (visiting).
	Black        // Black: the node and all its descendants have been fully explored.
)

var (
	// ErrGraphNil is returned when a nil *core.Graph is passed to Walk,
	// Reachable, FindLeaks, or CheckLeaks.
	ErrGraphNil = errors.New("dfs: graph is nil")

	// ErrStartNodeNotFound indicates that the start node does not exist or
	// has been deallocated.
	ErrStartNodeNotFound = errors.New("dfs: start node not found")

	// ErrLeakDetected indicates that live nodes are no longer reachable from
	// any root. CheckLeaks returns a *LeakError matching it.
	ErrLeakDetected = errors.New("dfs: leak detected")
)

// Option configures optional behavior of Walk.
type Option func(*Options)

// Options holds configurable parameters for a traversal.
// Complexity remains O(V+E) when filters and hooks are O(1).
type Options struct {
	// Ctx allows cancellation or timeouts; defaults to context.Background().
	Ctx context.Context

	// OnVisit, if non-nil, is invoked when a node is discovered (pre-order).
	// Returning an error aborts the traversal with that error.
	OnVisit func(id core.NodeID) error

	// OnExit, if non-nil, is invoked after all descendants of a node have
	// been explored (post-order), before it is appended to Order.
	OnExit func(id core.NodeID) error

	// MaxDepth, if non-negative, limits recursion to the given depth.
	// A depth of 0 visits only the start node. Default is -1 (no limit).
	MaxDepth int

	// FilterEdge decides which outgoing edges are followed. The default
	// follows strong edges only: ownership is what keeps nodes alive.
	FilterEdge func(e core.Edge) bool

	// SkippedEdges counts edges rejected by FilterEdge.
	SkippedEdges int
}

// StrongOnly is the default edge filter.
func StrongOnly(e core.Edge) bool { return e.Kind == core.Strong }

// DefaultOptions returns Options with a background context, no hooks, no
// depth limit, and the StrongOnly filter.
func DefaultOptions() Options {
	return Options{
		Ctx:        context.Background(),
		MaxDepth:   -1,
		FilterEdge: StrongOnly,
	}
}

// WithContext sets the Context for the traversal. A nil context is ignored.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnVisit installs fn as a pre-order hook.
func WithOnVisit(fn func(id core.NodeID) error) Option {
	return func(o *Options) { o.OnVisit = fn }
}

// WithOnExit installs fn as a post-order hook.
func WithOnExit(fn func(id core.NodeID) error) Option {
	return func(o *Options) { o.OnExit = fn }
}

// WithMaxDepth limits traversal depth to limit.
func WithMaxDepth(limit int) Option {
	return func(o *Options) { o.MaxDepth = limit }
}

// WithFilterEdge replaces the edge filter. A nil fn follows every edge
// whose target is present (weak and unowned included).
func WithFilterEdge(fn func(e core.Edge) bool) Option {
	return func(o *Options) {
		if fn == nil {
			fn = func(core.Edge) bool { return true }
		}
		o.FilterEdge = fn
	}
}

// Result captures the outcome of a traversal.
type Result struct {
	// Order records nodes in the sequence they finished (post-order).
	Order []core.NodeID

	// Depth maps each node to its distance (#edges) from the start.
	Depth map[core.NodeID]int

	// Parent maps each node to the node it was discovered from.
	// Start nodes do not appear in this map.
	Parent map[core.NodeID]core.NodeID

	// Visited flags which nodes were reached.
	Visited map[core.NodeID]bool

	// SkippedEdges mirrors Options.SkippedEdges.
	SkippedEdges int
}
