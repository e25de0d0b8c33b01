// Package core provides a deterministic, in-memory simulator of automatic
// reference counting (ARC) over an object graph.
//
// A Graph holds nodes (simulated heap objects) connected by named edges of
// three kinds:
//
//   - Strong   owns its target: the target's strong count includes the edge.
//   - Weak     observes its target and resolves to absent once it is gone.
//   - Unowned  assumes its target outlives it; reading a dead target fails
//     with ErrUseAfterFree.
//
// A node is deallocated exactly once, at the moment its strong count drops
// to zero. Deallocation emits a Deallocated event, nullifies weak edges to the
// node, and releases the node's own strong edges in field-declaration order,
// which may cascade further. Nothing ever collects cycles: two nodes owning
// each other stay alive after every outside holder is gone, exactly like ARC.
// dfs.FindLeaks reports such islands.
//
// Ownership roots:
//
//	– Scope      lexical holds (OpenScope, Open, New, Hold, Drop, End).
//	             End releases holds in reverse acquisition order.
//	– Retain     external handles (Retain/Release), e.g. globals.
//
// Events:
//
//	Every node emits Initialized(label) on creation and Deallocated(label) on
//	deallocation, numbered by a graph-wide sequence. Register observers with
//	WithObserver; Recorder keeps the ordered log for assertions.
//
// Core Methods:
//
//	// Nodes
//	CreateNode(label string) (NodeID, error)              // O(1)
//	Label / StrongCount / IsAlive / Node / Edges          // O(1) / O(deg)
//	Nodes() / LiveNodes() []NodeID                        // O(V log V)
//
//	// Edges
//	SetEdge(owner, field, kind, target) error             // O(1) + cascade
//	AddStrongEdge / AddWeakEdge / AddUnownedEdge          // SetEdge shorthands
//	ReadEdge(owner, field) (Reference, error)             // O(1)
//	DropStrongEdge / RemoveEdge(owner, field) error       // O(1) + cascade
//
//	// Roots
//	Retain / Release(id) error
//	OpenScope(name) *Scope, Within(name, fn) error
//	Roots() []NodeID, Stats() GraphStats
//
// Errors:
//
//	ErrEmptyLabel, ErrEmptyField, ErrNodeNotFound, ErrNodeDeallocated,
//	ErrFieldNotFound, ErrEdgeKindMismatch, ErrUnknownEdgeKind, ErrNotRetained,
//	ErrScopeClosed, ErrScopeOpen, ErrUseAfterFree (*UseAfterFreeError).
package core
