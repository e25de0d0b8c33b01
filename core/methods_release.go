// File: methods_release.go
// Role: Strong-count bookkeeping: Retain/Release external handles and the
//       deallocation cascade shared by every release path.
// Determinism:
//   - Cascade order is depth-first over the deallocated node's fields in
//     declaration order.
//   - Deallocated is emitted before the node's own strong edges are released,
//     so an owner is always reported before what it owned.
// Concurrency:
//   - releaseLocked/deallocateLocked assume g.mu is held by the caller.

package core

import "fmt"

// Retain takes an external owning handle on id (a root outside any scope),
// incrementing its strong count.
//
// Errors:
//   - ErrNodeNotFound, ErrNodeDeallocated.
func (g *Graph) Retain(id NodeID) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	n, err := g.lookupAlive(id)
	if err != nil {
		return fmt.Errorf("Retain: %w", err)
	}
	n.strong++
	g.external[id]++

	return nil
}

// Release gives up one external handle taken with Retain.
// If it was the last strong reference, id is deallocated before Release returns.
//
// Errors:
//   - ErrNotRetained if no external handle on id is outstanding.
func (g *Graph) Release(id NodeID) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.external[id] == 0 {
		return fmt.Errorf("Release %s: %w", id, ErrNotRetained)
	}
	g.external[id]--
	if g.external[id] == 0 {
		delete(g.external, id)
	}
	g.releaseLocked(id)

	return nil
}

// releaseLocked decrements the strong count of id and deallocates it on the
// transition to zero.
func (g *Graph) releaseLocked(id NodeID) {
	n := g.nodes[id]
	if n == nil || !n.alive {
		// A strong reference always keeps its target alive; reaching this
		// means the bookkeeping is already broken.
		panic(fmt.Sprintf("core: release of non-live node %s", id))
	}
	n.strong--
	g.logger.Debug("core: released", "node", id.String(), "label", n.label, "strong", n.strong)
	if n.strong == 0 {
		g.deallocateLocked(n)
	}
}

// deallocateLocked marks n dead, announces it, nullifies weak edges pointing
// at it, then releases every strong edge it owned in declaration order.
func (g *Graph) deallocateLocked(n *node) {
	n.alive = false
	g.emit(Deallocated, n)
	g.nullifyWeakLocked(n.id)

	owned := n.edgeList()
	n.fields = nil
	n.edges = make(map[string]*Edge)
	for _, e := range owned {
		if e.Kind.Counts() {
			g.releaseLocked(e.Target)
		}
	}
}

// nullifyWeakLocked zeroes every weak edge targeting id.
// Complexity: O(V + E) over live nodes.
func (g *Graph) nullifyWeakLocked(id NodeID) {
	for _, o := range g.nodes {
		if !o.alive {
			continue
		}
		for _, e := range o.edges {
			if e.Kind == Weak && e.Target == id {
				e.Target = 0
			}
		}
	}
}
