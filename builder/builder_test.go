// File: builder_test.go
// Functional tests for the fixture constructors: topology, ownership and
// what happens when the heads are released.
package builder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/arcsim/builder"
	"github.com/katalvlaran/arcsim/core"
	"github.com/katalvlaran/arcsim/dfs"
)

func TestBuilders_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ctor builder.Constructor
	}{
		{"Chain(0)", builder.Chain(0)},
		{"Ring(0)", builder.Ring(0)},
		{"Star(1)", builder.Star(1)},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			g := core.NewGraph()
			_, err := builder.Build(g, nil, tc.ctor)
			assert.ErrorIs(t, err, builder.ErrTooFewNodes)
			assert.Empty(t, g.Nodes(), "nothing allocated on invalid input")
		})
	}

	_, err := builder.Build(nil, nil, builder.Chain(1))
	assert.ErrorIs(t, err, builder.ErrNilGraph)
}

func TestChain_ReleasesInOrder(t *testing.T) {
	t.Parallel()
	rec := core.NewRecorder()
	g, fx, err := builder.BuildGraph(
		[]core.GraphOption{core.WithObserver(rec)},
		[]builder.BuilderOption{builder.WithLabelScheme(builder.LetterLabel), builder.WithBackRefs(core.Weak, "")},
		builder.Chain(4),
	)
	require.NoError(t, err)
	require.Len(t, fx.Parts, 1)
	assert.Equal(t, "Chain", fx.Parts[0].Method)
	assert.Len(t, fx.Nodes(), 4)

	edges, err := g.Edges(fx.Nodes()[1])
	require.NoError(t, err)
	require.Len(t, edges, 2)
	assert.Equal(t, core.Edge{Field: "prev", Kind: core.Weak, Target: fx.Nodes()[0]}, edges[0])
	assert.Equal(t, core.Edge{Field: "next", Kind: core.Strong, Target: fx.Nodes()[2]}, edges[1])
	assert.NoError(t, dfs.CheckLeaks(g))

	require.NoError(t, g.Release(fx.Heads()[0]))
	assert.Equal(t, []string{"A", "B", "C", "D"}, rec.Labels(core.Deallocated))
	assert.Empty(t, g.LiveNodes())
}

func TestChain_StrongBackRefsLeak(t *testing.T) {
	t.Parallel()
	g, fx, err := builder.BuildGraph(nil,
		[]builder.BuilderOption{builder.WithBackRefs(core.Strong, "parent")},
		builder.Chain(3),
	)
	require.NoError(t, err)
	require.NoError(t, g.Release(fx.Heads()[0]))

	rep, err := dfs.FindLeaks(g)
	require.NoError(t, err)
	assert.Equal(t, fx.Nodes(), rep.Leaked)
	assert.Len(t, rep.Cycles, 2)
}

func TestRing_CloseKind(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		kind  core.EdgeKind
		leaks bool
	}{
		{core.Strong, true},
		{core.Weak, false},
		{core.Unowned, false},
	} {
		tc := tc
		t.Run(tc.kind.String(), func(t *testing.T) {
			g := core.NewGraph()
			s := g.OpenScope("ring")
			fx, err := builder.Build(g,
				[]builder.BuilderOption{builder.WithScope(s), builder.WithCloseKind(tc.kind), builder.WithLabelPrefix("r")},
				builder.Ring(3),
			)
			require.NoError(t, err)
			assert.Equal(t, fx.Heads(), s.Held())
			require.NoError(t, s.End())

			if tc.leaks {
				assert.ErrorIs(t, dfs.CheckLeaks(g), dfs.ErrLeakDetected)
				assert.Len(t, g.LiveNodes(), 3)
			} else {
				assert.NoError(t, dfs.CheckLeaks(g))
				assert.Empty(t, g.LiveNodes())
			}
		})
	}
}

func TestRing_SelfReference(t *testing.T) {
	t.Parallel()
	g, fx, err := builder.BuildGraph(nil, nil, builder.Ring(1))
	require.NoError(t, err)
	head := fx.Heads()[0]
	n, err := g.StrongCount(head)
	require.NoError(t, err)
	assert.Equal(t, 2, n, "self edge plus hold")

	require.NoError(t, g.Release(head))
	assert.True(t, g.IsAlive(head))
}

func TestStar_WeakBackRefs(t *testing.T) {
	t.Parallel()
	rec := core.NewRecorder()
	g, fx, err := builder.BuildGraph(
		[]core.GraphOption{core.WithObserver(rec)},
		[]builder.BuilderOption{builder.WithLabelScheme(builder.NamedLabels("TelBel", "John", "Tina"))},
		builder.Star(3),
	)
	require.NoError(t, err)
	hub := fx.Heads()[0]

	edges, err := g.Edges(hub)
	require.NoError(t, err)
	require.Len(t, edges, 2)
	assert.Equal(t, "next1", edges[0].Field)
	assert.Equal(t, "next2", edges[1].Field)

	leaf := fx.Nodes()[1]
	ref, err := g.ReadEdge(leaf, "owner")
	require.NoError(t, err)
	got, ok := ref.Get()
	assert.True(t, ok)
	assert.Equal(t, hub, got)

	require.NoError(t, g.Release(hub))
	assert.Equal(t, []string{"TelBel", "John", "Tina"}, rec.Labels(core.Deallocated))
}

func TestBuild_ComposesParts(t *testing.T) {
	t.Parallel()
	g, fx, err := builder.BuildGraph(nil, nil, builder.Chain(2), builder.Ring(2), builder.Star(2))
	require.NoError(t, err)
	require.Len(t, fx.Parts, 3)
	assert.Len(t, fx.Nodes(), 6)
	assert.Equal(t, fx.Heads(), g.Roots())
}

func TestOptions_PanicOnNonsense(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { builder.WithLabelScheme(nil) })
	assert.Panics(t, func() { builder.WithScope(nil) })
	assert.Panics(t, func() { builder.WithNextField("") })
}
