// File: methods_edges.go
// Role: Edge lifecycle & resolution: SetEdge/AddStrongEdge/AddWeakEdge/AddUnownedEdge,
//       ReadEdge, DropStrongEdge, RemoveEdge.
// Determinism:
//   - A field keeps its original declaration position when it is reassigned.
//   - Cascades triggered by a replacement or removal run before the call returns.
// Concurrency:
//   - Every method holds g.mu for the whole mutation including any cascade.
// AI-HINT (file):
//   - Strong edges change counts; Weak and Unowned never do.
//   - ReadEdge on a dead weak target is (Present=false, nil); on a dead unowned
//     target it is ErrUseAfterFree.

package core

import "fmt"

// SetEdge records an edge of the given kind from owner.field to target.
//
// Steps:
//  1. Validate field, owner (alive) and target (alive).
//  2. If kind is Strong, increment target's strong count.
//  3. Store the edge, keeping the field's declaration position if it already existed.
//  4. If the replaced edge was Strong, release its old target (may cascade).
//
// The new target is retained before the old one is released, so reassigning a
// field to the same target never deallocates it.
//
// Errors:
//   - ErrEmptyField, ErrUnknownEdgeKind, ErrNodeNotFound, ErrNodeDeallocated.
//
// Complexity: O(1) plus the cost of any cascade.
func (g *Graph) SetEdge(owner NodeID, field string, kind EdgeKind, target NodeID) error {
	if field == "" {
		return ErrEmptyField
	}
	if !kind.Valid() {
		return fmt.Errorf("SetEdge %s.%s: %s: %w", owner, field, kind, ErrUnknownEdgeKind)
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	o, err := g.lookupAlive(owner)
	if err != nil {
		return fmt.Errorf("SetEdge owner: %w", err)
	}
	t, err := g.lookupAlive(target)
	if err != nil {
		return fmt.Errorf("SetEdge %s.%s target: %w", owner, field, err)
	}

	if kind.Counts() {
		t.strong++
	}
	old, existed := o.edges[field]
	o.edges[field] = &Edge{Field: field, Kind: kind, Target: target}
	if !existed {
		o.fields = append(o.fields, field)
	}
	g.logger.Debug("core: edge set", "owner", owner.String(), "field", field, "kind", kind.String(), "target", target.String())

	if existed && old.Kind.Counts() {
		g.releaseLocked(old.Target)
	}

	return nil
}

// AddStrongEdge records an owning edge owner.field -> target.
// It increments target's strong count; see SetEdge for replacement semantics.
func (g *Graph) AddStrongEdge(owner NodeID, field string, target NodeID) error {
	return g.SetEdge(owner, field, Strong, target)
}

// AddWeakEdge records a non-owning edge that resolves to absent once target is deallocated.
func (g *Graph) AddWeakEdge(owner NodeID, field string, target NodeID) error {
	return g.SetEdge(owner, field, Weak, target)
}

// AddUnownedEdge records a non-owning edge that must not outlive target.
// Reading it after target is deallocated fails with ErrUseAfterFree.
func (g *Graph) AddUnownedEdge(owner NodeID, field string, target NodeID) error {
	return g.SetEdge(owner, field, Unowned, target)
}

// ReadEdge resolves owner.field.
//
//   - Strong: always Present (ownership keeps the target alive).
//   - Weak: Present reflects target liveness; never errors.
//   - Unowned: Present, or *UseAfterFreeError (errors.Is ErrUseAfterFree) when
//     the target has been deallocated.
//
// Errors:
//   - ErrEmptyField, ErrNodeNotFound, ErrNodeDeallocated (owner), ErrFieldNotFound,
//     ErrUseAfterFree.
func (g *Graph) ReadEdge(owner NodeID, field string) (Reference, error) {
	if field == "" {
		return Reference{}, ErrEmptyField
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	o, err := g.lookupAlive(owner)
	if err != nil {
		return Reference{}, fmt.Errorf("ReadEdge owner: %w", err)
	}
	e, ok := o.edges[field]
	if !ok {
		return Reference{}, fmt.Errorf("ReadEdge %s.%s: %w", owner, field, ErrFieldNotFound)
	}

	switch e.Kind {
	case Weak:
		if e.Target == 0 {
			return Reference{Kind: Weak}, nil
		}
		t := g.nodes[e.Target]

		return Reference{Kind: Weak, Target: e.Target, Present: t.alive}, nil
	case Unowned:
		t := g.nodes[e.Target]
		if !t.alive {
			return Reference{Kind: Unowned}, &UseAfterFreeError{
				Owner: owner, Field: field, Target: e.Target, Label: t.label,
			}
		}

		return Reference{Kind: Unowned, Target: e.Target, Present: true}, nil
	case Strong:
		return Reference{Kind: Strong, Target: e.Target, Present: true}, nil
	default:
		return Reference{}, fmt.Errorf("ReadEdge %s.%s: %s: %w", owner, field, e.Kind, ErrUnknownEdgeKind)
	}
}

// DropStrongEdge removes the strong edge owner.field and releases its target,
// deallocating it (and cascading) if that was the last strong reference.
//
// Errors:
//   - ErrEdgeKindMismatch if the field holds a weak or unowned edge.
//   - ErrEmptyField, ErrNodeNotFound, ErrNodeDeallocated, ErrFieldNotFound.
func (g *Graph) DropStrongEdge(owner NodeID, field string) error {
	return g.removeEdge(owner, field, true)
}

// RemoveEdge removes owner.field whatever its kind; strong targets are released.
func (g *Graph) RemoveEdge(owner NodeID, field string) error {
	return g.removeEdge(owner, field, false)
}

func (g *Graph) removeEdge(owner NodeID, field string, strongOnly bool) error {
	if field == "" {
		return ErrEmptyField
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	o, err := g.lookupAlive(owner)
	if err != nil {
		return fmt.Errorf("RemoveEdge owner: %w", err)
	}
	e, ok := o.edges[field]
	if !ok {
		return fmt.Errorf("RemoveEdge %s.%s: %w", owner, field, ErrFieldNotFound)
	}
	if strongOnly && !e.Kind.Counts() {
		return fmt.Errorf("DropStrongEdge %s.%s is %s: %w", owner, field, e.Kind, ErrEdgeKindMismatch)
	}

	o.unlink(field)
	g.logger.Debug("core: edge removed", "owner", owner.String(), "field", field, "kind", e.Kind.String())
	if e.Kind.Counts() {
		g.releaseLocked(e.Target)
	}

	return nil
}

// unlink deletes field from n, preserving the order of the remaining fields.
func (n *node) unlink(field string) {
	delete(n.edges, field)
	for i, f := range n.fields {
		if f == field {
			n.fields = append(n.fields[:i], n.fields[i+1:]...)
			return
		}
	}
}
