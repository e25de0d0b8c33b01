// SPDX-License-Identifier: MIT
// Package: arcsim/builder
//
// impl_star.go - implementation of Star(n) constructor.
//
// Contract:
//   - n ≥ 2 (else ErrTooFewNodes): one hub plus n-1 leaves.
//   - The hub is labelled cfg.labelFn(0); leaves cfg.labelFn(i) for i=1..n-1.
//   - Emits strong spokes hub -> leaf[i] on fields "<next><i>" in
//     increasing leaf order.
//   - Every leaf gets a back reference to the hub of kind cfg.backKind
//     (default Weak, field "owner"). WithBackRefs(core.Strong, ...) turns
//     every spoke into a two-node leaking cycle.
//   - Holds the hub through cfg.hold.
//
// Complexity:
//   - Time: O(n) nodes + O(2n-2) edges.

package builder

import (
	"fmt"
	"strconv"

	"github.com/katalvlaran/arcsim/core"
)

const (
	methodStar   = "Star"
	minStarNodes = 2
)

// Star returns a Constructor that builds a hub owning n-1 leaves.
func Star(n int) Constructor {
	return func(g *core.Graph, cfg builderConfig, fx *Fixture) error {
		if n < minStarNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodStar, n, minStarNodes, ErrTooFewNodes)
		}
		ids, err := newNodes(g, cfg, methodStar, n)
		if err != nil {
			return err
		}

		hub := ids[0]
		back := cfg.backFieldOr(defaultHubField)
		for i := 1; i < n; i++ {
			spoke := cfg.nextField + strconv.Itoa(i)
			if err = g.AddStrongEdge(hub, spoke, ids[i]); err != nil {
				return fmt.Errorf("%s: AddStrongEdge(%s→%s): %w", methodStar, hub, ids[i], err)
			}
			if err = g.SetEdge(ids[i], back, cfg.backKind, hub); err != nil {
				return fmt.Errorf("%s: SetEdge(%s→%s, %s): %w", methodStar, ids[i], hub, cfg.backKind, err)
			}
		}

		return hold(cfg, fx, methodStar, hub, ids)
	}
}
