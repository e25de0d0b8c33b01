// Package dfs implements depth-first traversal of the ownership edges of a
// core.Graph, with cancellation, pre- and post-order hooks, depth limiting,
// edge filtering and diagnostics.
//
// Complexity:
//
//   - Time:   O(V + E) for traversal, plus overhead of hooks and filters.
//   - Memory: O(V) for recursion stack and metadata maps.
//
// Errors:
//
//   - ErrGraphNil             if g is nil.
//   - ErrStartNodeNotFound    if start is missing or deallocated.
//   - context.Canceled        if ctx is done.
//   - any error returned by OnVisit or OnExit.
package dfs

import (
	"fmt"

	"github.com/katalvlaran/arcsim/core"
)

// walker encapsulates state during a traversal.
type walker struct {
	graph *core.Graph
	opts  Options
	res   *Result
}

// Walk performs depth-first search on g starting at start, following the
// edges accepted by the filter (strong edges by default). Nullified weak
// edges and deallocated targets are never followed.
func Walk(g *core.Graph, start core.NodeID, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	if !g.IsAlive(start) {
		return nil, fmt.Errorf("dfs: Walk(%s): %w", start, ErrStartNodeNotFound)
	}

	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	w := newWalker(g, o)
	if err := w.traverse(start, 0); err != nil {
		return w.res, err
	}
	w.res.SkippedEdges = w.opts.SkippedEdges

	return w.res, nil
}

// walkFrom runs one traversal seeded with every root in roots, sharing the
// visited set so each node is explored once.
func walkFrom(g *core.Graph, roots []core.NodeID, o Options) (*Result, error) {
	w := newWalker(g, o)
	for _, r := range roots {
		if w.res.Visited[r] || !g.IsAlive(r) {
			continue
		}
		if err := w.traverse(r, 0); err != nil {
			return w.res, err
		}
	}
	w.res.SkippedEdges = w.opts.SkippedEdges

	return w.res, nil
}

func newWalker(g *core.Graph, o Options) *walker {
	n := len(g.LiveNodes())

	return &walker{graph: g, opts: o, res: &Result{
		Order:   make([]core.NodeID, 0, n),
		Depth:   make(map[core.NodeID]int, n),
		Parent:  make(map[core.NodeID]core.NodeID, n),
		Visited: make(map[core.NodeID]bool, n),
	}}
}

// traverse visits id at the given depth, recursing into accepted edges.
func (w *walker) traverse(id core.NodeID, depth int) error {
	select {
	case <-w.opts.Ctx.Done():
		return w.opts.Ctx.Err()
	default:
	}

	if w.opts.MaxDepth >= 0 && depth > w.opts.MaxDepth {
		return nil
	}

	w.res.Visited[id] = true
	w.res.Depth[id] = depth

	if w.opts.OnVisit != nil {
		if err := w.opts.OnVisit(id); err != nil {
			w.res.Order = nil

			return fmt.Errorf("dfs: OnVisit hook for %s: %w", id, err)
		}
	}

	edges, err := w.graph.Edges(id)
	if err != nil {
		w.res.Order = nil

		return fmt.Errorf("dfs: Edges(%s): %w", id, err)
	}

	for _, e := range edges {
		if e.Target == 0 || !w.graph.IsAlive(e.Target) {
			continue
		}
		if !w.opts.FilterEdge(e) {
			w.opts.SkippedEdges++
			continue
		}
		if !w.res.Visited[e.Target] {
			w.res.Parent[e.Target] = id
			if err = w.traverse(e.Target, depth+1); err != nil {
				return err
			}
		}
	}

	if w.opts.OnExit != nil {
		if err = w.opts.OnExit(id); err != nil {
			w.res.Order = nil

			return fmt.Errorf("dfs: OnExit hook for %s: %w", id, err)
		}
	}

	w.res.Order = append(w.res.Order, id)

	return nil
}
