// SPDX-License-Identifier: MIT
// Package core_test verifies core.Graph node/edge contracts and the ARC
// properties: scope release, cycle leaks, weak and unowned semantics.

package core_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/arcsim/core"
)

func TestCreateNode(t *testing.T) {
	g, rec := newRecorded()

	_, err := g.CreateNode("")
	assert.ErrorIs(t, err, core.ErrEmptyLabel)

	id, err := g.CreateNode(LabelJohn)
	require.NoError(t, err)
	assert.Equal(t, core.NodeID(1), id)
	assert.Equal(t, "n1", id.String())
	assert.True(t, g.IsAlive(id))
	mustStrong(t, g, id, 0)

	label, err := g.Label(id)
	require.NoError(t, err)
	assert.Equal(t, LabelJohn, label)
	assert.Equal(t, []string{initd(LabelJohn)}, rec.Strings())

	_, err = g.Label(core.NodeID(99))
	assert.ErrorIs(t, err, core.ErrNodeNotFound)
	assert.False(t, g.IsAlive(core.NodeID(99)))
}

// P1: a node held only by a scope is deallocated exactly once when the scope
// ends, before anything after the scope runs.
func TestScopeRelease_DeallocatesOnEnd(t *testing.T) {
	g, rec := newRecorded()

	var john core.NodeID
	err := g.Within("main", func(s *core.Scope) error {
		var err error
		john, err = s.New(LabelJohn)
		require.NoError(t, err)
		mustStrong(t, g, john, 1)
		assert.Equal(t, []string{initd(LabelJohn)}, rec.Strings())

		return err
	})
	require.NoError(t, err)

	assert.Equal(t, []string{initd(LabelJohn), dealloc(LabelJohn)}, rec.Strings())
	assert.False(t, g.IsAlive(john))
	mustStrong(t, g, john, 0)
	assert.Empty(t, g.LiveNodes())
	assert.Equal(t, []core.NodeID{john}, g.Nodes(), "tombstone stays in the catalog")
}

// P2: mutual strong edges leak after their scope ends.
func TestStrongCycle_Leaks(t *testing.T) {
	g, rec := newRecorded()

	var tina, phone core.NodeID
	require.NoError(t, g.Within("main", func(s *core.Scope) error {
		tina, _ = s.New(LabelTina)
		phone, _ = s.New(LabelPhone)
		require.NoError(t, g.AddStrongEdge(tina, FieldPhone, phone))

		return g.AddStrongEdge(phone, FieldOwner, tina)
	}))

	assert.Equal(t, []string{initd(LabelTina), initd(LabelPhone)}, rec.Strings())
	assert.Empty(t, rec.Labels(core.Deallocated))
	assert.True(t, g.IsAlive(tina))
	assert.True(t, g.IsAlive(phone))
	mustStrong(t, g, tina, 1)
	mustStrong(t, g, phone, 1)
	assert.Empty(t, g.Roots())
}

// P3: a weak back-reference lets both nodes go, owner first.
func TestWeakEdge_BreaksCycle(t *testing.T) {
	g, rec := newRecorded()

	require.NoError(t, g.Within("main", func(s *core.Scope) error {
		tina, _ := s.New(LabelTina)
		phone, _ := s.New(LabelPhone)
		require.NoError(t, g.AddStrongEdge(tina, FieldPhone, phone))
		require.NoError(t, g.AddWeakEdge(phone, FieldOwner, tina))
		mustStrong(t, g, tina, 1)
		mustStrong(t, g, phone, 2)

		ref, err := g.ReadEdge(phone, FieldOwner)
		require.NoError(t, err)
		assert.Equal(t, core.Reference{Kind: core.Weak, Target: tina, Present: true}, ref)

		return nil
	}))

	assert.Equal(t, []string{
		initd(LabelTina),
		initd(LabelPhone),
		dealloc(LabelTina),
		dealloc(LabelPhone),
	}, rec.Strings())
	assert.Empty(t, g.LiveNodes())
}

func TestWeakEdge_ResolvesAbsentAndIsNullified(t *testing.T) {
	g, _ := newRecorded()

	phone, err := g.CreateNode(LabelPhone)
	require.NoError(t, err)
	require.NoError(t, g.Retain(phone))

	require.NoError(t, g.Within("main", func(s *core.Scope) error {
		tina, _ := s.New(LabelTina)

		return g.AddWeakEdge(phone, FieldOwner, tina)
	}))

	ref, err := g.ReadEdge(phone, FieldOwner)
	require.NoError(t, err, "weak reads never fail")
	assert.False(t, ref.Present)
	_, ok := ref.Get()
	assert.False(t, ok)

	edges, err := g.Edges(phone)
	require.NoError(t, err)
	require.Len(t, edges, 1)
	assert.Equal(t, core.Edge{Field: FieldOwner, Kind: core.Weak, Target: 0}, edges[0])
}

// P4: an unowned edge reads fine while its target lives and fails with
// ErrUseAfterFree once the target's scope has ended.
func TestUnownedEdge_UseAfterFree(t *testing.T) {
	g, _ := newRecorded()

	sub, err := g.CreateNode(LabelCarrie)
	require.NoError(t, err)
	require.NoError(t, g.Retain(sub))

	var john core.NodeID
	require.NoError(t, g.Within("main", func(s *core.Scope) error {
		john, _ = s.New(LabelJohn)
		require.NoError(t, g.AddUnownedEdge(sub, FieldUser, john))
		mustStrong(t, g, john, 1)

		ref, err := g.ReadEdge(sub, FieldUser)
		require.NoError(t, err)
		assert.Equal(t, john, ref.Target)
		assert.True(t, ref.Present)

		return nil
	}))

	_, err = g.ReadEdge(sub, FieldUser)
	require.ErrorIs(t, err, core.ErrUseAfterFree)

	var uaf *core.UseAfterFreeError
	require.True(t, errors.As(err, &uaf))
	assert.Equal(t, sub, uaf.Owner)
	assert.Equal(t, FieldUser, uaf.Field)
	assert.Equal(t, john, uaf.Target)
	assert.Equal(t, LabelJohn, uaf.Label)
	assert.Contains(t, err.Error(), `"John"`)
}

func TestSetEdge_ReplaceReleasesOldTarget(t *testing.T) {
	g, rec := newRecorded()

	owner, _ := g.CreateNode(LabelJohn)
	require.NoError(t, g.Retain(owner))
	old, _ := g.CreateNode("old")
	next, _ := g.CreateNode("new")

	require.NoError(t, g.AddStrongEdge(owner, FieldPhone, old))
	mustStrong(t, g, old, 1)

	// Reassigning the same target keeps it alive.
	require.NoError(t, g.AddStrongEdge(owner, FieldPhone, old))
	mustStrong(t, g, old, 1)
	assert.True(t, g.IsAlive(old))

	require.NoError(t, g.AddStrongEdge(owner, FieldPhone, next))
	assert.False(t, g.IsAlive(old))
	mustStrong(t, g, next, 1)
	assert.Equal(t, []string{"old"}, rec.Labels(core.Deallocated))

	// Downgrading the field to weak releases the strong hold.
	require.NoError(t, g.AddWeakEdge(owner, FieldPhone, next))
	assert.False(t, g.IsAlive(next))
	assert.Equal(t, []string{"old", "new"}, rec.Labels(core.Deallocated))
}

func TestSetEdge_FieldOrderIsStable(t *testing.T) {
	g := core.NewGraph()
	owner, _ := g.CreateNode(LabelJohn)
	a, _ := g.CreateNode("a")
	b, _ := g.CreateNode("b")

	require.NoError(t, g.AddWeakEdge(owner, "x", a))
	require.NoError(t, g.AddWeakEdge(owner, "y", b))
	require.NoError(t, g.AddUnownedEdge(owner, "x", b))

	edges, err := g.Edges(owner)
	require.NoError(t, err)
	assert.Equal(t, []core.Edge{
		{Field: "x", Kind: core.Unowned, Target: b},
		{Field: "y", Kind: core.Weak, Target: b},
	}, edges)
}

func TestDeallocation_CascadesInFieldOrder(t *testing.T) {
	g, rec := newRecorded()

	root, _ := g.CreateNode("root")
	require.NoError(t, g.Retain(root))
	first, _ := g.CreateNode("first")
	second, _ := g.CreateNode("second")
	grandchild, _ := g.CreateNode("grandchild")

	require.NoError(t, g.AddStrongEdge(root, "a", first))
	require.NoError(t, g.AddStrongEdge(root, "b", second))
	require.NoError(t, g.AddStrongEdge(first, "child", grandchild))
	rec.Reset()

	require.NoError(t, g.Release(root))
	assert.Equal(t, []string{"root", "first", "grandchild", "second"}, rec.Labels(core.Deallocated))
	assert.Empty(t, g.LiveNodes())

	ev := rec.Events()
	for i := 1; i < len(ev); i++ {
		assert.Greater(t, ev[i].Seq, ev[i-1].Seq)
	}
}

func TestDeallocation_SharedTargetSurvives(t *testing.T) {
	g, rec := newRecorded()

	a, _ := g.CreateNode("a")
	b, _ := g.CreateNode("b")
	shared, _ := g.CreateNode("shared")
	require.NoError(t, g.Retain(a))
	require.NoError(t, g.Retain(b))
	require.NoError(t, g.AddStrongEdge(a, "x", shared))
	require.NoError(t, g.AddStrongEdge(b, "x", shared))

	require.NoError(t, g.Release(a))
	assert.True(t, g.IsAlive(shared))
	mustStrong(t, g, shared, 1)

	require.NoError(t, g.Release(b))
	assert.Equal(t, []string{"a", "b", "shared"}, rec.Labels(core.Deallocated))
}

func TestDropStrongEdge(t *testing.T) {
	g, rec := newRecorded()

	tina, _ := g.CreateNode(LabelTina)
	phone, _ := g.CreateNode(LabelPhone)
	require.NoError(t, g.Retain(tina))
	require.NoError(t, g.AddStrongEdge(tina, FieldPhone, phone))
	require.NoError(t, g.AddWeakEdge(phone, FieldOwner, tina))

	assert.ErrorIs(t, g.DropStrongEdge(phone, FieldOwner), core.ErrEdgeKindMismatch)
	assert.ErrorIs(t, g.DropStrongEdge(tina, "missing"), core.ErrFieldNotFound)
	assert.ErrorIs(t, g.DropStrongEdge(tina, ""), core.ErrEmptyField)

	require.NoError(t, g.DropStrongEdge(tina, FieldPhone))
	assert.False(t, g.IsAlive(phone))
	assert.Equal(t, []string{LabelPhone}, rec.Labels(core.Deallocated))

	_, err := g.ReadEdge(tina, FieldPhone)
	assert.ErrorIs(t, err, core.ErrFieldNotFound)
}

func TestRemoveEdge_AnyKind(t *testing.T) {
	g := core.NewGraph()
	a, _ := g.CreateNode("a")
	b, _ := g.CreateNode("b")
	require.NoError(t, g.AddUnownedEdge(a, "u", b))
	require.NoError(t, g.RemoveEdge(a, "u"))
	assert.True(t, g.IsAlive(b), "unowned edges never own")

	edges, err := g.Edges(a)
	require.NoError(t, err)
	assert.Empty(t, edges)
}

func TestSetEdge_RejectsUnknownKind(t *testing.T) {
	g := core.NewGraph()
	s := g.OpenScope("main")
	a, _ := s.New("A")
	b, _ := s.New("B")

	for _, kind := range []core.EdgeKind{core.EdgeKind(3), core.EdgeKind(9), core.EdgeKind(255)} {
		err := g.SetEdge(a, "x", kind, b)
		assert.ErrorIs(t, err, core.ErrUnknownEdgeKind, kind.String())
	}
	_, err := g.ReadEdge(a, "x")
	assert.ErrorIs(t, err, core.ErrFieldNotFound, "nothing was stored")
	assert.Equal(t, 1, mustCount(t, g, b))

	require.NoError(t, s.Drop(b))
	assert.False(t, g.IsAlive(b))
	require.NoError(t, s.End())
}

func mustCount(t *testing.T, g *core.Graph, id core.NodeID) int {
	t.Helper()
	n, err := g.StrongCount(id)
	require.NoError(t, err)

	return n
}

func TestDeadNodes_AreNeverRevived(t *testing.T) {
	g := core.NewGraph()

	var john core.NodeID
	require.NoError(t, g.Within("main", func(s *core.Scope) error {
		john, _ = s.New(LabelJohn)
		return nil
	}))
	other, _ := g.CreateNode(LabelBob)

	assert.ErrorIs(t, g.AddStrongEdge(other, FieldUser, john), core.ErrNodeDeallocated)
	assert.ErrorIs(t, g.AddWeakEdge(other, FieldUser, john), core.ErrNodeDeallocated)
	assert.ErrorIs(t, g.AddStrongEdge(john, FieldUser, other), core.ErrNodeDeallocated)
	assert.ErrorIs(t, g.Retain(john), core.ErrNodeDeallocated)
	_, err := g.ReadEdge(john, FieldUser)
	assert.ErrorIs(t, err, core.ErrNodeDeallocated)

	assert.ErrorIs(t, g.AddStrongEdge(other, FieldUser, core.NodeID(42)), core.ErrNodeNotFound)
	assert.ErrorIs(t, g.AddStrongEdge(other, "", john), core.ErrEmptyField)
	mustStrong(t, g, john, 0)
}

func TestSelfReference_Leaks(t *testing.T) {
	g, rec := newRecorded()

	var self core.NodeID
	require.NoError(t, g.Within("main", func(s *core.Scope) error {
		self, _ = s.New(LabelBob)
		return g.AddStrongEdge(self, FieldSelf, self)
	}))
	assert.True(t, g.IsAlive(self))
	mustStrong(t, g, self, 1)

	// Breaking the self edge by hand finally frees it.
	require.NoError(t, g.DropStrongEdge(self, FieldSelf))
	assert.False(t, g.IsAlive(self))
	assert.Equal(t, []string{LabelBob}, rec.Labels(core.Deallocated))
}

func TestRetainRelease(t *testing.T) {
	g := core.NewGraph()
	id, _ := g.CreateNode(LabelJohn)

	assert.ErrorIs(t, g.Release(id), core.ErrNotRetained)
	require.NoError(t, g.Retain(id))
	require.NoError(t, g.Retain(id))
	assert.Equal(t, []core.NodeID{id}, g.Roots())
	mustStrong(t, g, id, 2)

	require.NoError(t, g.Release(id))
	assert.True(t, g.IsAlive(id))
	require.NoError(t, g.Release(id))
	assert.False(t, g.IsAlive(id))
	assert.Empty(t, g.Roots())
	assert.ErrorIs(t, g.Release(id), core.ErrNotRetained)
}

func TestNodeSnapshotAndStats(t *testing.T) {
	g := core.NewGraph()
	s := g.OpenScope("main")
	tina, _ := s.New(LabelTina)
	phone, _ := s.New(LabelPhone)
	require.NoError(t, g.AddStrongEdge(tina, FieldPhone, phone))
	require.NoError(t, g.AddWeakEdge(phone, FieldOwner, tina))
	require.NoError(t, g.AddUnownedEdge(phone, FieldUser, tina))

	info, err := g.Node(phone)
	require.NoError(t, err)
	assert.Equal(t, core.NodeInfo{
		ID:          phone,
		Label:       LabelPhone,
		StrongCount: 2,
		Alive:       true,
		Edges: []core.Edge{
			{Field: FieldOwner, Kind: core.Weak, Target: tina},
			{Field: FieldUser, Kind: core.Unowned, Target: tina},
		},
	}, info)

	assert.Equal(t, core.GraphStats{
		Created: 2, Live: 2, StrongEdges: 1, WeakEdges: 1, UnownedEdges: 1, OpenScopes: 1, Events: 2,
	}, g.Stats())

	require.NoError(t, s.End())
	st := g.Stats()
	assert.Equal(t, 0, st.Live)
	assert.Equal(t, 2, st.Deallocated)
	assert.Equal(t, 0, st.OpenScopes)
	assert.Equal(t, uint64(4), st.Events)
}

func TestParseEdgeKind(t *testing.T) {
	cases := []struct {
		in   string
		want core.EdgeKind
	}{
		{"strong", core.Strong},
		{"Weak", core.Weak},
		{" UNOWNED ", core.Unowned},
	}
	for _, tc := range cases {
		got, err := core.ParseEdgeKind(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got)
		assert.Equal(t, got, mustParse(t, got.String()))
	}

	_, err := core.ParseEdgeKind("borrowed")
	assert.ErrorIs(t, err, core.ErrUnknownEdgeKind)
	assert.Equal(t, "EdgeKind(7)", core.EdgeKind(7).String())
	assert.True(t, core.Strong.Counts())
	assert.False(t, core.Weak.Counts())
	assert.False(t, core.Unowned.Counts())
	assert.True(t, core.Unowned.Valid())
	assert.False(t, core.EdgeKind(3).Valid())
}

func mustParse(t *testing.T, s string) core.EdgeKind {
	t.Helper()
	k, err := core.ParseEdgeKind(s)
	require.NoError(t, err)

	return k
}
