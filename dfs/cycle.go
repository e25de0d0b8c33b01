// Package dfs implements strong-cycle detection over a core.Graph.
// DetectCycles walks strong edges with three-colour marking and records each
// back edge as a cycle. Self-references and two-node cycles count: edges are
// directed, and either shape keeps its members alive forever. Each cycle is
// canonicalised to its minimal rotation via Booth's algorithm and the final
// list is sorted for deterministic output.
//
// Complexity:
//
//   - Time:   O(V + E + C·L)   (C=#cycles, L=avg cycle length)
//   - Memory: O(V + L_max)
package dfs

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/arcsim/core"
)

// DetectCycles inspects the live nodes of g for strong-reference cycles.
// Returns (true, cycles, nil) if any are found, (false, nil, nil) otherwise.
func DetectCycles(g *core.Graph) (bool, [][]core.NodeID, error) {
	if g == nil {
		return false, nil, ErrGraphNil
	}
	cycles, err := detectCycles(g, g.LiveNodes(), nil)
	if err != nil {
		return false, nil, fmt.Errorf("dfs: DetectCycles: %w", err)
	}
	if len(cycles) == 0 {
		return false, nil, nil
	}

	return true, cycles, nil
}

// detectCycles runs the colouring from every node in from. When within is
// non-nil, only edges between members of within are followed.
func detectCycles(g *core.Graph, from []core.NodeID, within map[core.NodeID]bool) ([][]core.NodeID, error) {
	c := &cycleFinder{
		g:      g,
		within: within,
		state:  make(map[core.NodeID]int, len(from)),
		seen:   make(map[string]struct{}),
	}
	for _, v := range from {
		if c.state[v] == White {
			if err := c.visit(v); err != nil {
				return nil, err
			}
		}
	}

	sort.Slice(c.cycles, func(i, j int) bool {
		a, b := c.cycles[i], c.cycles[j]
		if len(a) != len(b) {
			return len(a) < len(b)
		}

		return Compare(a, b) < 0
	})

	return c.cycles, nil
}

type cycleFinder struct {
	g      *core.Graph
	within map[core.NodeID]bool
	state  map[core.NodeID]int
	path   []core.NodeID
	seen   map[string]struct{}
	cycles [][]core.NodeID
}

func (c *cycleFinder) visit(id core.NodeID) error {
	c.state[id] = Gray
	c.path = append(c.path, id)

	edges, err := c.g.Edges(id)
	if err != nil {
		return fmt.Errorf("Edges(%s): %w", id, err)
	}
	for _, e := range edges {
		if e.Kind != core.Strong {
			continue
		}
		if c.within != nil && !c.within[e.Target] {
			continue
		}
		switch c.state[e.Target] {
		case White:
			if err = c.visit(e.Target); err != nil {
				return err
			}
		case Gray:
			c.record(e.Target)
		}
	}

	c.path = c.path[:len(c.path)-1]
	c.state[id] = Black

	return nil
}

// record stores the path segment from start to the top of the stack as a
// canonical cycle, skipping duplicates.
func (c *cycleFinder) record(start core.NodeID) {
	idx := IndexOf(c.path, start)
	if idx < 0 {
		return
	}
	seg := make([]core.NodeID, len(c.path)-idx)
	copy(seg, c.path[idx:])
	canon := MinimalRotation(seg)

	sig := make([]string, len(canon))
	for i, id := range canon {
		sig[i] = id.String()
	}
	key := JoinSig(sig)
	if _, dup := c.seen[key]; dup {
		return
	}
	c.seen[key] = struct{}{}
	c.cycles = append(c.cycles, canon)
}
