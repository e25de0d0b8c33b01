// File: leak.go
// Role: reachability from roots and leak reporting.
package dfs

import (
	"fmt"
	"sort"
	"strings"

	"github.com/katalvlaran/arcsim/core"
)

// LeakReport describes the live nodes that no root can reach.
type LeakReport struct {
	// Leaked are live nodes with a positive strong count that are not
	// reachable from any root over strong edges. Sorted by ID.
	Leaked []core.NodeID

	// Orphans are live nodes with strong count 0 that nothing holds:
	// created but never owned. Sorted by ID.
	Orphans []core.NodeID

	// Cycles are the strong cycles among Leaked, canonicalised.
	Cycles [][]core.NodeID

	// Labels maps every reported node to its label.
	Labels map[core.NodeID]string
}

// Empty reports whether nothing leaked.
func (r *LeakReport) Empty() bool {
	return len(r.Leaked) == 0 && len(r.Orphans) == 0
}

// LeakedLabels returns the labels of Leaked in ID order.
func (r *LeakReport) LeakedLabels() []string {
	out := make([]string, len(r.Leaked))
	for i, id := range r.Leaked {
		out[i] = r.Labels[id]
	}

	return out
}

// CycleLabels renders each cycle as "a -> b -> a".
func (r *LeakReport) CycleLabels() []string {
	out := make([]string, len(r.Cycles))
	for i, c := range r.Cycles {
		parts := make([]string, 0, len(c)+1)
		for _, id := range c {
			parts = append(parts, r.Labels[id])
		}
		parts = append(parts, r.Labels[c[0]])
		out[i] = strings.Join(parts, " -> ")
	}

	return out
}

// LeakError is returned by CheckLeaks. It matches ErrLeakDetected.
type LeakError struct {
	Report *LeakReport
}

func (e *LeakError) Error() string {
	var b strings.Builder
	b.WriteString(ErrLeakDetected.Error())
	if n := len(e.Report.Leaked); n > 0 {
		fmt.Fprintf(&b, ": %d unreachable %v", n, e.Report.LeakedLabels())
	}
	if n := len(e.Report.Orphans); n > 0 {
		fmt.Fprintf(&b, ": %d orphaned", n)
	}
	if len(e.Report.Cycles) > 0 {
		fmt.Fprintf(&b, ": cycles %v", e.Report.CycleLabels())
	}

	return b.String()
}

// Is reports whether target is ErrLeakDetected.
func (e *LeakError) Is(target error) bool { return target == ErrLeakDetected }

// Reachable returns the set of live nodes reachable from g.Roots() over
// strong edges.
func Reachable(g *core.Graph) (map[core.NodeID]bool, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	res, err := walkFrom(g, g.Roots(), DefaultOptions())
	if err != nil {
		return nil, fmt.Errorf("dfs: Reachable: %w", err)
	}

	return res.Visited, nil
}

// FindLeaks classifies every live node that no root reaches.
//
// Complexity: O(V + E).
func FindLeaks(g *core.Graph) (*LeakReport, error) {
	reach, err := Reachable(g)
	if err != nil {
		return nil, err
	}

	rep := &LeakReport{Labels: make(map[core.NodeID]string)}
	leaked := make(map[core.NodeID]bool)
	for _, id := range g.LiveNodes() {
		if reach[id] {
			continue
		}
		info, err := g.Node(id)
		if err != nil {
			return nil, fmt.Errorf("dfs: FindLeaks: %w", err)
		}
		if !info.Alive {
			continue
		}
		rep.Labels[id] = info.Label
		if info.StrongCount > 0 {
			rep.Leaked = append(rep.Leaked, id)
			leaked[id] = true
		} else {
			rep.Orphans = append(rep.Orphans, id)
		}
	}
	sort.Slice(rep.Leaked, func(i, j int) bool { return rep.Leaked[i] < rep.Leaked[j] })
	sort.Slice(rep.Orphans, func(i, j int) bool { return rep.Orphans[i] < rep.Orphans[j] })

	if len(rep.Leaked) > 0 {
		rep.Cycles, err = detectCycles(g, rep.Leaked, leaked)
		if err != nil {
			return nil, fmt.Errorf("dfs: FindLeaks: %w", err)
		}
	}

	return rep, nil
}

// CheckLeaks returns nil when every live node is reachable from a root, and
// a *LeakError otherwise.
func CheckLeaks(g *core.Graph) error {
	rep, err := FindLeaks(g)
	if err != nil {
		return err
	}
	if rep.Empty() {
		return nil
	}

	return &LeakError{Report: rep}
}
