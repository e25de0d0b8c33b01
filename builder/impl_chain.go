// SPDX-License-Identifier: MIT
// Package: arcsim/builder
//
// impl_chain.go - implementation of Chain(n) constructor.
//
// Contract:
//   - n ≥ 1 (else ErrTooFewNodes).
//   - Creates nodes via cfg.labelFn in ascending index order (0..n-1).
//   - Emits strong edges (i-1) -> i on cfg.nextField for i=1..n-1.
//   - With WithBackRefs, also emits i -> (i-1) of the configured kind
//     (default field "prev").
//   - Holds node 0 through cfg.hold.
//
// Complexity:
//   - Time: O(n) nodes + O(n-1) edges (doubled with back refs).
//
// Releasing the head deallocates the whole chain in index order unless the
// back references are strong.

package builder

import (
	"fmt"

	"github.com/katalvlaran/arcsim/core"
)

const (
	methodChain   = "Chain"
	minChainNodes = 1
)

// Chain returns a Constructor that builds a singly owned list of n nodes.
func Chain(n int) Constructor {
	return func(g *core.Graph, cfg builderConfig, fx *Fixture) error {
		if n < minChainNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodChain, n, minChainNodes, ErrTooFewNodes)
		}
		ids, err := newNodes(g, cfg, methodChain, n)
		if err != nil {
			return err
		}

		back := cfg.backFieldOr(defaultPrevField)
		for i := 1; i < n; i++ {
			if err = g.AddStrongEdge(ids[i-1], cfg.nextField, ids[i]); err != nil {
				return fmt.Errorf("%s: AddStrongEdge(%s→%s): %w", methodChain, ids[i-1], ids[i], err)
			}
			if !cfg.backRefs {
				continue
			}
			if err = g.SetEdge(ids[i], back, cfg.backKind, ids[i-1]); err != nil {
				return fmt.Errorf("%s: SetEdge(%s→%s, %s): %w", methodChain, ids[i], ids[i-1], cfg.backKind, err)
			}
		}

		return hold(cfg, fx, methodChain, ids[0], ids)
	}
}
