// SPDX-License-Identifier: MIT
// Package: arcsim/builder
//
// api.go - thin public entry-points for the builder package.
//
// Design contract:
//   - One orchestrator: Build(g, bopts, cons...). Resolves cfg, runs cons in order.
//   - Public factories are declared in impl_*.go and return a Constructor.
//   - Functional options (BuilderOption) resolve into an immutable builderConfig.
//   - Determinism: same options and constructor order produce identical labels,
//     field names and node IDs on a fresh graph.
//   - Every constructor hands the nodes it creates to an owner (the head hold)
//     before returning, so a successful Build never leaves orphans behind.

package builder

import (
	"fmt"

	"github.com/katalvlaran/arcsim/core"
)

// Constructor applies a deterministic mutation to g using the resolved
// builderConfig and records what it created in fx. Constructors must
// validate parameters before allocating any node.
type Constructor func(g *core.Graph, cfg builderConfig, fx *Fixture) error

// Part is the output of one constructor.
type Part struct {
	// Method is the constructor name, e.g. "Chain".
	Method string
	// Nodes lists created nodes in creation order.
	Nodes []core.NodeID
	// Head is the node the fixture holds on behalf of the caller.
	Head core.NodeID
}

// Fixture collects the parts built by Build, in constructor order.
type Fixture struct {
	Parts []Part
}

// Heads returns the held node of every part, in constructor order.
func (fx *Fixture) Heads() []core.NodeID {
	out := make([]core.NodeID, len(fx.Parts))
	for i, p := range fx.Parts {
		out[i] = p.Head
	}

	return out
}

// Nodes returns every created node, in creation order.
func (fx *Fixture) Nodes() []core.NodeID {
	var out []core.NodeID
	for _, p := range fx.Parts {
		out = append(out, p.Nodes...)
	}

	return out
}

// Build resolves the builder configuration from bopts and applies all
// constructors to g in order. Any constructor error is wrapped with
// "Build: %w" and returned immediately with the parts built so far.
//
// Complexity:
//   - Resolving options: O(len(bopts)).
//   - Applying K constructors: the sum of their costs.
//
// Errors:
//   - ErrNilGraph if g is nil.
//   - Constructor errors; branch with errors.Is against builder and core sentinels.
func Build(g *core.Graph, bopts []BuilderOption, cons ...Constructor) (*Fixture, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	cfg := newBuilderConfig(g, bopts...)
	fx := &Fixture{}
	for _, c := range cons {
		if err := c(g, cfg, fx); err != nil {
			return fx, fmt.Errorf("Build: %w", err)
		}
	}

	return fx, nil
}

// BuildGraph creates a new core.Graph with gopts and runs Build on it.
func BuildGraph(gopts []core.GraphOption, bopts []BuilderOption, cons ...Constructor) (*core.Graph, *Fixture, error) {
	g := core.NewGraph(gopts...)
	fx, err := Build(g, bopts, cons...)
	if err != nil {
		return nil, nil, err
	}

	return g, fx, nil
}

// newNodes allocates n nodes labelled by cfg.labelFn. On failure the nodes
// created so far are left with count 0; callers validate first.
func newNodes(g *core.Graph, cfg builderConfig, method string, n int) ([]core.NodeID, error) {
	ids := make([]core.NodeID, n)
	for i := 0; i < n; i++ {
		label := cfg.labelFn(i)
		id, err := g.CreateNode(label)
		if err != nil {
			return nil, fmt.Errorf("%s: CreateNode(%q): %w", method, label, err)
		}
		ids[i] = id
	}

	return ids, nil
}

// hold hands head to the configured owner and records the part.
func hold(cfg builderConfig, fx *Fixture, method string, head core.NodeID, nodes []core.NodeID) error {
	if err := cfg.hold(head); err != nil {
		return fmt.Errorf("%s: hold %s: %w", method, head, err)
	}
	fx.Parts = append(fx.Parts, Part{Method: method, Nodes: nodes, Head: head})

	return nil
}
