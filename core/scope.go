// File: scope.go
// Role: Lexical scopes: ordered strong holds released in reverse on End.
// Determinism:
//   - End unwinds open child scopes (latest first), then releases holds in
//     reverse acquisition order, mirroring stack unwinding.
//   - All Deallocated events caused by End are emitted before End returns.
// Concurrency:
//   - Scope methods take the owning Graph's lock.

package core

import "fmt"

// Scope owns strong references the way local variables of a block do.
// Create one with Graph.OpenScope or Scope.Open; always End it.
type Scope struct {
	g        *Graph
	name     string
	parent   *Scope
	children []*Scope // open child scopes in opening order
	held     []NodeID // strong holds in acquisition order
	closed   bool
}

// OpenScope opens a top-level scope named name.
func (g *Graph) OpenScope(name string) *Scope {
	g.mu.Lock()
	defer g.mu.Unlock()
	s := &Scope{g: g, name: name}
	g.scopes = append(g.scopes, s)
	g.logger.Debug("core: scope opened", "scope", name)

	return s
}

// Within opens a top-level scope, runs fn inside it, and ends it before
// returning, even when fn fails. fn's error takes precedence over End's.
func (g *Graph) Within(name string, fn func(s *Scope) error) error {
	s := g.OpenScope(name)
	err := fn(s)
	if endErr := s.End(); err == nil {
		err = endErr
	}

	return err
}

// Name returns the scope name.
func (s *Scope) Name() string { return s.name }

// Path returns the slash-joined names from the outermost scope, e.g. "main/inner".
func (s *Scope) Path() string {
	if s.parent == nil {
		return s.name
	}

	return s.parent.Path() + "/" + s.name
}

// Open opens a child scope. The child is unwound first when s ends.
func (s *Scope) Open(name string) (*Scope, error) {
	s.g.mu.Lock()
	defer s.g.mu.Unlock()
	if s.closed {
		return nil, fmt.Errorf("Open %q in %s: %w", name, s.Path(), ErrScopeClosed)
	}
	c := &Scope{g: s.g, name: name, parent: s}
	s.children = append(s.children, c)
	s.g.logger.Debug("core: scope opened", "scope", c.Path())

	return c, nil
}

// New creates a node and holds it in s, like `let x = T()` in a block.
func (s *Scope) New(label string) (NodeID, error) {
	if label == "" {
		return 0, ErrEmptyLabel
	}
	s.g.mu.Lock()
	defer s.g.mu.Unlock()
	if s.closed {
		return 0, fmt.Errorf("New %q in %s: %w", label, s.Path(), ErrScopeClosed)
	}
	id := s.g.createLocked(label)
	s.g.nodes[id].strong++
	s.held = append(s.held, id)

	return id, nil
}

// Hold adds a strong hold on an existing live node, like binding it to another local.
func (s *Scope) Hold(id NodeID) error {
	s.g.mu.Lock()
	defer s.g.mu.Unlock()
	if s.closed {
		return fmt.Errorf("Hold %s in %s: %w", id, s.Path(), ErrScopeClosed)
	}
	n, err := s.g.lookupAlive(id)
	if err != nil {
		return fmt.Errorf("Hold in %s: %w", s.Path(), err)
	}
	n.strong++
	s.held = append(s.held, id)

	return nil
}

// Drop gives up the most recent hold on id before the scope ends, like
// assigning nil to a local. The node is deallocated right away if that was
// its last strong reference.
//
// Errors:
//   - ErrScopeClosed, ErrNotRetained (id is not held by s).
func (s *Scope) Drop(id NodeID) error {
	s.g.mu.Lock()
	defer s.g.mu.Unlock()
	if s.closed {
		return fmt.Errorf("Drop %s in %s: %w", id, s.Path(), ErrScopeClosed)
	}
	for i := len(s.held) - 1; i >= 0; i-- {
		if s.held[i] == id {
			s.held = append(s.held[:i], s.held[i+1:]...)
			s.g.releaseLocked(id)

			return nil
		}
	}

	return fmt.Errorf("Drop %s in %s: %w", id, s.Path(), ErrNotRetained)
}

// Held returns the live holds of s in acquisition order.
func (s *Scope) Held() []NodeID {
	s.g.mu.Lock()
	defer s.g.mu.Unlock()
	out := make([]NodeID, len(s.held))
	copy(out, s.held)

	return out
}

// Closed reports whether End has run.
func (s *Scope) Closed() bool {
	s.g.mu.Lock()
	defer s.g.mu.Unlock()

	return s.closed
}

// End closes the scope: open child scopes are ended first (latest opened
// first), then every hold is released in reverse order of acquisition. Any
// deallocation cascade completes before End returns.
//
// Errors:
//   - ErrScopeClosed if End already ran.
//   - ErrScopeOpen if the Graph uses WithStrictScopes and a child is still open.
func (s *Scope) End() error {
	s.g.mu.Lock()
	defer s.g.mu.Unlock()
	if s.closed {
		return fmt.Errorf("End %s: %w", s.Path(), ErrScopeClosed)
	}
	if s.g.strictScopes && len(s.children) > 0 {
		return fmt.Errorf("End %s: %q: %w", s.Path(), s.children[len(s.children)-1].name, ErrScopeOpen)
	}
	s.endLocked()

	return nil
}

// endLocked unwinds s and detaches it from its parent (or the Graph).
func (s *Scope) endLocked() {
	for len(s.children) > 0 {
		s.children[len(s.children)-1].endLocked()
	}
	s.g.logger.Debug("core: scope ending", "scope", s.Path(), "holds", len(s.held))
	for i := len(s.held) - 1; i >= 0; i-- {
		id := s.held[i]
		s.held = s.held[:i]
		s.g.releaseLocked(id)
	}
	s.closed = true

	if s.parent != nil {
		s.parent.children = removeScope(s.parent.children, s)
	} else {
		s.g.scopes = removeScope(s.g.scopes, s)
	}
}

func removeScope(list []*Scope, s *Scope) []*Scope {
	for i, c := range list {
		if c == s {
			return append(list[:i], list[i+1:]...)
		}
	}

	return list
}

// rootsLocked appends the holds of s and its open descendants to dst.
func (s *Scope) rootsLocked(dst map[NodeID]struct{}) {
	for _, id := range s.held {
		dst[id] = struct{}{}
	}
	for _, c := range s.children {
		c.rootsLocked(dst)
	}
}
