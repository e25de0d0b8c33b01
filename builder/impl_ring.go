// SPDX-License-Identifier: MIT
// Package: arcsim/builder
//
// impl_ring.go - implementation of Ring(n) constructor.
//
// Contract:
//   - n ≥ 1 (else ErrTooFewNodes). Ring(1) is a self-reference.
//   - Creates nodes via cfg.labelFn in ascending index order.
//   - Emits strong edges i -> i+1 on cfg.nextField for i=0..n-2, then the
//     closing edge (n-1) -> 0 of kind cfg.closeKind (default Strong).
//   - Holds node 0 through cfg.hold.
//
// With the default strong closing edge the ring outlives its holder: this is
// the canonical reference-cycle leak. A weak or unowned closing edge lets the
// whole ring deallocate once the head is released.

package builder

import (
	"fmt"

	"github.com/katalvlaran/arcsim/core"
)

const (
	methodRing   = "Ring"
	minRingNodes = 1
)

// Ring returns a Constructor that builds a cycle of n nodes.
func Ring(n int) Constructor {
	return func(g *core.Graph, cfg builderConfig, fx *Fixture) error {
		if n < minRingNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodRing, n, minRingNodes, ErrTooFewNodes)
		}
		ids, err := newNodes(g, cfg, methodRing, n)
		if err != nil {
			return err
		}

		for i := 1; i < n; i++ {
			if err = g.AddStrongEdge(ids[i-1], cfg.nextField, ids[i]); err != nil {
				return fmt.Errorf("%s: AddStrongEdge(%s→%s): %w", methodRing, ids[i-1], ids[i], err)
			}
		}
		last := ids[n-1]
		if err = g.SetEdge(last, cfg.nextField, cfg.closeKind, ids[0]); err != nil {
			return fmt.Errorf("%s: SetEdge(%s→%s, %s): %w", methodRing, last, ids[0], cfg.closeKind, err)
		}

		return hold(cfg, fx, methodRing, ids[0], ids)
	}
}
