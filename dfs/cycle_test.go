package dfs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/arcsim/core"
	"github.com/katalvlaran/arcsim/dfs"
)

func nodes(t *testing.T, g *core.Graph, labels ...string) []core.NodeID {
	t.Helper()
	out := make([]core.NodeID, len(labels))
	for i, l := range labels {
		id, err := g.CreateNode(l)
		require.NoError(t, err)
		out[i] = id
	}

	return out
}

func TestDetectCycles_None(t *testing.T) {
	g, _ := chain(t)
	has, cycles, err := dfs.DetectCycles(g)
	require.NoError(t, err)
	assert.False(t, has)
	assert.Nil(t, cycles)
}

func TestDetectCycles_SelfReference(t *testing.T) {
	g := core.NewGraph()
	ids := nodes(t, g, "self")
	require.NoError(t, g.AddStrongEdge(ids[0], "me", ids[0]))

	has, cycles, err := dfs.DetectCycles(g)
	require.NoError(t, err)
	assert.True(t, has)
	assert.Equal(t, [][]core.NodeID{{ids[0]}}, cycles)
}

func TestDetectCycles_CanonicalRotation(t *testing.T) {
	g := core.NewGraph()
	ids := nodes(t, g, "a", "b", "c")
	// c -> a -> b -> c discovered from whichever node; canonical starts at the smallest ID.
	require.NoError(t, g.AddStrongEdge(ids[2], "next", ids[0]))
	require.NoError(t, g.AddStrongEdge(ids[0], "next", ids[1]))
	require.NoError(t, g.AddStrongEdge(ids[1], "next", ids[2]))

	_, cycles, err := dfs.DetectCycles(g)
	require.NoError(t, err)
	assert.Equal(t, [][]core.NodeID{{ids[0], ids[1], ids[2]}}, cycles)
}

func TestDetectCycles_IgnoresWeakAndUnowned(t *testing.T) {
	g := core.NewGraph()
	ids := nodes(t, g, "a", "b")
	require.NoError(t, g.AddStrongEdge(ids[0], "b", ids[1]))
	require.NoError(t, g.AddWeakEdge(ids[1], "a", ids[0]))
	require.NoError(t, g.AddUnownedEdge(ids[1], "u", ids[0]))

	has, _, err := dfs.DetectCycles(g)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestDetectCycles_SortedBySizeThenIDs(t *testing.T) {
	g := core.NewGraph()
	ids := nodes(t, g, "a", "b", "c", "d", "e")
	require.NoError(t, g.AddStrongEdge(ids[0], "n", ids[1]))
	require.NoError(t, g.AddStrongEdge(ids[1], "n", ids[2]))
	require.NoError(t, g.AddStrongEdge(ids[2], "n", ids[0]))
	require.NoError(t, g.AddStrongEdge(ids[3], "n", ids[4]))
	require.NoError(t, g.AddStrongEdge(ids[4], "n", ids[3]))

	_, cycles, err := dfs.DetectCycles(g)
	require.NoError(t, err)
	assert.Equal(t, [][]core.NodeID{{ids[3], ids[4]}, {ids[0], ids[1], ids[2]}}, cycles)
}

func TestDetectCycles_NilGraph(t *testing.T) {
	_, _, err := dfs.DetectCycles(nil)
	assert.ErrorIs(t, err, dfs.ErrGraphNil)
}

func TestMinimalRotation(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3}, dfs.MinimalRotation([]int{2, 3, 1}))
	assert.Equal(t, []string{"a", "b", "a", "c"}, dfs.MinimalRotation([]string{"a", "c", "a", "b"}))
	assert.Empty(t, dfs.MinimalRotation([]int{}))
	assert.Equal(t, 2, dfs.IndexOf([]string{"x", "y", "z"}, "z"))
	assert.Equal(t, -1, dfs.IndexOf([]int{1}, 5))
	assert.Equal(t, -1, dfs.Compare([]int{1, 2}, []int{1, 3}))
}
