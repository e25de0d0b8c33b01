// SPDX-License-Identifier: MIT
//
// File: api.go
// Role: Read-only getters over the whole graph: Roots and Stats.
// Policy:
//   - No mutation and no hidden state here.
//   - Every exported function documents complexity.
// AI-HINT (file):
//   - Roots() is the seed set for dfs.Reachable / dfs.FindLeaks.
//   - Stats() is an O(V+E) snapshot; rely on it for quick assertions.

package core

import "sort"

// GraphStats is a read-only snapshot of catalog sizes.
type GraphStats struct {
	Created      int // nodes ever created
	Live         int // nodes still allocated
	Deallocated  int // tombstones
	StrongEdges  int // strong edges held by live nodes
	WeakEdges    int // weak edges held by live nodes (nullified ones included)
	UnownedEdges int // unowned edges held by live nodes
	OpenScopes   int // open scopes, nested ones included
	Events       uint64
}

// Roots returns the nodes held directly by an open scope or by an external
// Retain handle, deduplicated and sorted by ID.
//
// Complexity: O(R log R) where R is the number of holds.
func (g *Graph) Roots() []NodeID {
	g.mu.Lock()
	defer g.mu.Unlock()

	set := make(map[NodeID]struct{}, len(g.external))
	for id := range g.external {
		set[id] = struct{}{}
	}
	for _, s := range g.scopes {
		s.rootsLocked(set)
	}
	out := make([]NodeID, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// Stats produces a snapshot of node, edge, scope and event counts.
//
// Complexity: O(V + E).
func (g *Graph) Stats() GraphStats {
	g.mu.Lock()
	defer g.mu.Unlock()

	st := GraphStats{Created: len(g.nodes), Events: g.seq}
	for _, n := range g.nodes {
		if !n.alive {
			st.Deallocated++
			continue
		}
		st.Live++
		for _, e := range n.edges {
			switch e.Kind {
			case Strong:
				st.StrongEdges++
			case Weak:
				st.WeakEdges++
			case Unowned:
				st.UnownedEdges++
			}
		}
	}
	var count func(list []*Scope)
	count = func(list []*Scope) {
		for _, s := range list {
			st.OpenScopes++
			count(s.children)
		}
	}
	count(g.scopes)

	return st
}
