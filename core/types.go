// Package core defines the reference-counted object Graph, its Node and Edge
// types, and the primitives for building, mutating, and releasing it.
//
// All core APIs serialize on a single mutex (mu). A mutation and the whole
// deallocation cascade it triggers run under that lock, so every operation is
// atomic to other goroutines.
//
// This file declares NodeID, EdgeKind, Edge, Reference, Graph, GraphOption,
// sentinel errors, and the NewGraph constructor.
//
// Errors:
//
//	ErrEmptyLabel        - node label is the empty string.
//	ErrEmptyField        - edge field name is the empty string.
//	ErrNodeNotFound      - requested node was never created.
//	ErrNodeDeallocated   - operation touches a node that was already deallocated.
//	ErrFieldNotFound     - owner has no edge under the requested field.
//	ErrEdgeKindMismatch  - operation requires a different edge kind.
//	ErrUnknownEdgeKind   - textual edge kind is not strong, weak or unowned.
//	ErrNotRetained       - release of a handle that is not held.
//	ErrScopeClosed       - operation on a scope that already ended.
//	ErrScopeOpen         - strict scope ended while a child scope is still open.
//	ErrUseAfterFree      - unowned edge dereferenced after its target was deallocated.
package core

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
)

// Sentinel errors for core graph operations.
var (
	// ErrEmptyLabel indicates that CreateNode was called with an empty label.
	ErrEmptyLabel = errors.New("core: node label is empty")

	// ErrEmptyField indicates that an edge operation was called with an empty field name.
	ErrEmptyField = errors.New("core: edge field is empty")

	// ErrNodeNotFound indicates an operation referenced a node that was never created.
	ErrNodeNotFound = errors.New("core: node not found")

	// ErrNodeDeallocated indicates an operation referenced a node that is already deallocated.
	// Deallocated nodes are never revived.
	ErrNodeDeallocated = errors.New("core: node deallocated")

	// ErrFieldNotFound indicates that the owner holds no edge under the given field.
	ErrFieldNotFound = errors.New("core: field not found")

	// ErrEdgeKindMismatch indicates that the edge under a field has the wrong kind for the operation.
	ErrEdgeKindMismatch = errors.New("core: edge kind mismatch")

	// ErrUnknownEdgeKind indicates that a textual edge kind could not be parsed.
	ErrUnknownEdgeKind = errors.New("core: unknown edge kind")

	// ErrNotRetained indicates a release of a node that the caller does not hold.
	ErrNotRetained = errors.New("core: node not retained")

	// ErrScopeClosed indicates an operation on a scope that has already ended.
	ErrScopeClosed = errors.New("core: scope closed")

	// ErrScopeOpen indicates that a strict scope was ended while a child scope was still open.
	ErrScopeOpen = errors.New("core: child scope still open")

	// ErrUseAfterFree indicates that an unowned edge was read after its target was deallocated.
	// It is fatal for the read that triggered it; errors.As recovers the *UseAfterFreeError details.
	ErrUseAfterFree = errors.New("core: use after free")
)

// UseAfterFreeError describes a dereference of an unowned edge whose target is gone.
type UseAfterFreeError struct {
	Owner  NodeID // node holding the unowned edge
	Field  string // field of the unowned edge
	Target NodeID // deallocated target
	Label  string // label of the deallocated target
}

// Error implements error.
func (e *UseAfterFreeError) Error() string {
	return fmt.Sprintf("core: use after free: %s.%s -> %s (%q) was deallocated",
		e.Owner, e.Field, e.Target, e.Label)
}

// Is reports ErrUseAfterFree as the sentinel for this error.
func (e *UseAfterFreeError) Is(target error) bool { return target == ErrUseAfterFree }

// NodeID identifies a node within its Graph. IDs are assigned monotonically
// starting at 1 and are never reused; the zero value means "no node".
type NodeID uint64

// nodeIDPrefix is the textual prefix of rendered node identifiers ("n1", "n2", ...).
const nodeIDPrefix = 'n'

// String renders the ID as "n<number>".
func (id NodeID) String() string {
	buf := make([]byte, 0, 8)
	buf = append(buf, nodeIDPrefix)
	buf = strconv.AppendUint(buf, uint64(id), 10)

	return string(buf)
}

// EdgeKind is the ownership qualifier of an edge.
type EdgeKind uint8

const (
	// Strong edges keep their target alive: they count toward its strong count.
	Strong EdgeKind = iota
	// Weak edges observe their target and resolve to absent once it is deallocated.
	Weak
	// Unowned edges assume their target outlives them; reading a dead target is fatal.
	Unowned
)

// String returns the lower-case name of the kind.
func (k EdgeKind) String() string {
	switch k {
	case Strong:
		return "strong"
	case Weak:
		return "weak"
	case Unowned:
		return "unowned"
	default:
		return "EdgeKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// ParseEdgeKind maps "strong", "weak" or "unowned" (case-insensitive) to an EdgeKind.
func ParseEdgeKind(s string) (EdgeKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strong":
		return Strong, nil
	case "weak":
		return Weak, nil
	case "unowned":
		return Unowned, nil
	}

	return 0, fmt.Errorf("ParseEdgeKind(%q): %w", s, ErrUnknownEdgeKind)
}

// Valid reports whether k is Strong, Weak or Unowned.
func (k EdgeKind) Valid() bool { return k <= Unowned }

// Counts reports whether edges of this kind contribute to the target's strong count.
func (k EdgeKind) Counts() bool { return k == Strong }

// Edge is a named outgoing reference of a node.
//
// Target is zero for a weak edge whose target has been deallocated (nullified).
type Edge struct {
	// Field is the owner-local name of the reference (e.g. "phone", "owner").
	Field string

	// Kind is the ownership qualifier.
	Kind EdgeKind

	// Target is the referenced node.
	Target NodeID
}

// Reference is the outcome of resolving an edge with ReadEdge.
type Reference struct {
	Kind    EdgeKind
	Target  NodeID
	Present bool
}

// Get returns the target and whether it is present.
func (r Reference) Get() (NodeID, bool) { return r.Target, r.Present }

// node is the internal record of a simulated heap object.
// Deallocated nodes stay in the catalog as tombstones (alive == false).
type node struct {
	id     NodeID
	label  string
	strong int
	alive  bool

	// fields preserves declaration order; edges is keyed by field.
	fields []string
	edges  map[string]*Edge
}

// GraphOption configures behavior of a Graph before creation.
type GraphOption func(g *Graph)

// WithObserver registers o to receive lifecycle events. Observers are called
// in registration order while the Graph lock is held; they must not call back
// into the Graph.
func WithObserver(o Observer) GraphOption {
	return func(g *Graph) {
		if o != nil {
			g.observers = append(g.observers, o)
		}
	}
}

// WithLogger routes debug logging of mutations and events to logger.
func WithLogger(logger *slog.Logger) GraphOption {
	return func(g *Graph) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithStrictScopes makes Scope.End fail with ErrScopeOpen when a child scope
// is still open, instead of unwinding the children first.
func WithStrictScopes() GraphOption {
	return func(g *Graph) { g.strictScopes = true }
}

// Graph is the reference-counted object graph.
//
// Nodes are created with a strong count of zero and stay alive until their
// count transitions back to zero, at which point they are deallocated exactly
// once. There is no cycle collector: strong cycles without external holders
// stay alive forever (see dfs.FindLeaks).
type Graph struct {
	mu sync.Mutex // guards everything below

	// Configuration
	observers    []Observer
	logger       *slog.Logger
	strictScopes bool

	// Storage
	nextID   uint64           // last assigned NodeID
	seq      uint64           // last emitted event sequence number
	nodes    map[NodeID]*node // every node ever created, including tombstones
	external map[NodeID]int   // Retain() handles per node
	scopes   []*Scope         // open top-level scopes in opening order
}

// NewGraph creates an empty Graph with the given options.
// By default, events are delivered to no observer and logging is discarded.
// Complexity: O(len(opts))
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		nodes:    make(map[NodeID]*node),
		external: make(map[NodeID]int),
	}
	// Apply options
	for _, opt := range opts {
		opt(g)
	}

	return g
}
