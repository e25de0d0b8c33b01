// Package bfs provides breadth-first search over the ownership edges of a
// core.Graph, returning shortest distances, parent links and visit order.
package bfs

import (
	"context"
	"fmt"

	"github.com/katalvlaran/arcsim/core"
)

// queueItem pairs a node with its BFS depth.
type queueItem struct {
	id    core.NodeID
	depth int
}

// walker encapsulates mutable BFS state.
type walker struct {
	graph   *core.Graph
	opts    Options
	ctx     context.Context
	queue   []queueItem
	visited map[core.NodeID]bool
	res     *Result
}

// BFS runs breadth-first search on g starting from start.
// Returns ErrGraphNil or ErrStartNodeNotFound for invalid input,
// ErrOptionViolation for bad options, or any hook error.
func BFS(g *core.Graph, start core.NodeID, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	if !g.IsAlive(start) {
		return nil, fmt.Errorf("bfs: BFS(%s): %w", start, ErrStartNodeNotFound)
	}

	return run(g, []core.NodeID{start}, opts)
}

// FromRoots runs one breadth-first search seeded with every root of g
// (scope holds and external retains) at depth 0.
func FromRoots(g *core.Graph, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}

	return run(g, g.Roots(), opts)
}

// RetainPath explains why id is alive: the shortest chain of strong edges
// from a root to id. A root itself yields a single-node path.
func RetainPath(g *core.Graph, id core.NodeID) (RetentionPath, error) {
	if g == nil {
		return RetentionPath{}, ErrGraphNil
	}
	if !g.IsAlive(id) {
		return RetentionPath{}, fmt.Errorf("bfs: RetainPath(%s): %w", id, ErrStartNodeNotFound)
	}

	res, err := FromRoots(g)
	if err != nil {
		return RetentionPath{}, err
	}
	nodes, err := res.PathTo(id)
	if err != nil {
		return RetentionPath{}, fmt.Errorf("bfs: RetainPath(%s): %w", id, ErrNotRetained)
	}

	p := RetentionPath{
		Nodes:  nodes,
		Fields: make([]string, 0, len(nodes)-1),
		Labels: make([]string, 0, len(nodes)),
	}
	for i, n := range nodes {
		if i > 0 {
			p.Fields = append(p.Fields, res.Parent[n].Field)
		}
		label, _ := g.Label(n)
		p.Labels = append(p.Labels, label)
	}

	return p, nil
}

func run(g *core.Graph, seeds []core.NodeID, opts []Option) (*Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	w := &walker{
		graph:   g,
		opts:    o,
		ctx:     o.Ctx,
		visited: make(map[core.NodeID]bool),
		res: &Result{
			Depth:  make(map[core.NodeID]int),
			Parent: make(map[core.NodeID]Link),
		},
	}
	for _, s := range seeds {
		if !w.visited[s] {
			w.enqueue(s, 0, nil)
		}
	}

	return w.res, w.loop()
}

// enqueue marks id visited at depth d, records how it was reached and adds
// it to the queue.
func (w *walker) enqueue(id core.NodeID, d int, via *Link) {
	w.visited[id] = true
	w.res.Depth[id] = d
	if via != nil {
		w.res.Parent[id] = *via
	}
	w.opts.OnEnqueue(id, d)
	w.queue = append(w.queue, queueItem{id: id, depth: d})
}

// loop processes the queue until empty, error, or cancellation.
func (w *walker) loop() error {
	for len(w.queue) > 0 {
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		default:
		}

		item := w.queue[0]
		w.queue = w.queue[1:]
		w.res.Order = append(w.res.Order, item.id)
		if err := w.opts.OnVisit(item.id, item.depth); err != nil {
			return fmt.Errorf("bfs: OnVisit error at %s: %w", item.id, err)
		}
		if err := w.enqueueTargets(item); err != nil {
			return err
		}
	}

	return nil
}

// enqueueTargets follows the accepted edges of item in field order. Cleared
// weak edges and deallocated targets are skipped.
func (w *walker) enqueueTargets(item queueItem) error {
	next := item.depth + 1
	if w.opts.MaxDepth > 0 && next > w.opts.MaxDepth {
		return nil
	}
	edges, err := w.graph.Edges(item.id)
	if err != nil {
		return fmt.Errorf("bfs: edges of %s: %w", item.id, err)
	}
	for _, e := range edges {
		if e.Target == 0 || w.visited[e.Target] || !w.opts.FilterEdge(e) {
			continue
		}
		if !w.graph.IsAlive(e.Target) {
			continue
		}
		w.enqueue(e.Target, next, &Link{From: item.id, Field: e.Field})
	}

	return nil
}
