// File: methods_nodes.go
// Role: Node lifecycle & queries: CreateNode, Label, StrongCount, IsAlive,
//       Nodes, LiveNodes, Node, plus the node lookup helpers.
//
// Determinism:
//   - Nodes() and LiveNodes() return IDs sorted ascending (creation order).
//
// Concurrency:
//   - Every method takes g.mu; lookups (lookup/lookupAlive) assume it is held.
package core

import (
	"fmt"
	"sort"
)

// NodeInfo is a read-only snapshot of one node.
type NodeInfo struct {
	ID          NodeID
	Label       string
	StrongCount int
	Alive       bool

	// Edges in field-declaration order. Empty once the node is deallocated.
	Edges []Edge
}

// CreateNode allocates a node with strong count 0 and emits Initialized(label).
//
// The creator is expected to take ownership right away, through a strong edge,
// Retain, or a Scope (Scope.New does both steps at once). A node nobody ever
// holds stays alive with count 0 and is reported by dfs.FindLeaks as an orphan.
//
// Errors:
//   - ErrEmptyLabel: label == "".
//
// Complexity: O(1) amortized.
func (g *Graph) CreateNode(label string) (NodeID, error) {
	if label == "" {
		return 0, ErrEmptyLabel
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.createLocked(label), nil
}

// createLocked allocates and announces a node. Caller must hold g.mu.
func (g *Graph) createLocked(label string) NodeID {
	g.nextID++
	n := &node{
		id:    NodeID(g.nextID),
		label: label,
		alive: true,
		edges: make(map[string]*Edge),
	}
	g.nodes[n.id] = n
	g.emit(Initialized, n)

	return n.id
}

// Label returns the label of id, alive or not.
func (g *Graph) Label(id NodeID) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	n, err := g.lookup(id)
	if err != nil {
		return "", err
	}

	return n.label, nil
}

// StrongCount returns the current strong-reference count of id.
// A deallocated node always reports 0.
func (g *Graph) StrongCount(id NodeID) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	n, err := g.lookup(id)
	if err != nil {
		return 0, err
	}

	return n.strong, nil
}

// IsAlive reports whether id exists and has not been deallocated.
func (g *Graph) IsAlive(id NodeID) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	n, ok := g.nodes[id]

	return ok && n.alive
}

// Node returns a snapshot of id.
func (g *Graph) Node(id NodeID) (NodeInfo, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	n, err := g.lookup(id)
	if err != nil {
		return NodeInfo{}, err
	}

	return NodeInfo{
		ID:          n.id,
		Label:       n.label,
		StrongCount: n.strong,
		Alive:       n.alive,
		Edges:       n.edgeList(),
	}, nil
}

// Edges returns the outgoing edges of id in field-declaration order.
// A deallocated node has no edges.
func (g *Graph) Edges(id NodeID) ([]Edge, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	n, err := g.lookup(id)
	if err != nil {
		return nil, err
	}

	return n.edgeList(), nil
}

// Nodes returns every node ever created (tombstones included), sorted by ID.
func (g *Graph) Nodes() []NodeID {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.sortedIDs(func(*node) bool { return true })
}

// LiveNodes returns the nodes that are still allocated, sorted by ID.
func (g *Graph) LiveNodes() []NodeID {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.sortedIDs(func(n *node) bool { return n.alive })
}

// sortedIDs collects IDs whose node satisfies keep. Caller must hold g.mu.
func (g *Graph) sortedIDs(keep func(*node) bool) []NodeID {
	out := make([]NodeID, 0, len(g.nodes))
	for id, n := range g.nodes {
		if keep(n) {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// lookup returns the node record for id. Caller must hold g.mu.
func (g *Graph) lookup(id NodeID) (*node, error) {
	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", id, ErrNodeNotFound)
	}

	return n, nil
}

// lookupAlive is lookup that also rejects tombstones. Caller must hold g.mu.
func (g *Graph) lookupAlive(id NodeID) (*node, error) {
	n, err := g.lookup(id)
	if err != nil {
		return nil, err
	}
	if !n.alive {
		return nil, fmt.Errorf("%s (%q): %w", id, n.label, ErrNodeDeallocated)
	}

	return n, nil
}

// edgeList copies the edges of n in declaration order.
func (n *node) edgeList() []Edge {
	out := make([]Edge, 0, len(n.fields))
	for _, f := range n.fields {
		out = append(out, *n.edges[f])
	}

	return out
}
