// Package core_test provides benchmarks for core.Graph operations.
package core_test

import (
	"strconv"
	"testing"

	"github.com/katalvlaran/arcsim/core"
)

// BenchmarkScope_NewEnd measures a create/hold/release round trip.
func BenchmarkScope_NewEnd(b *testing.B) {
	g := core.NewGraph()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s := g.OpenScope("bench")
		_, _ = s.New("node")
		_ = s.End()
	}
}

// BenchmarkCascade_Chain measures releasing the head of a strong chain,
// which deallocates every link in one cascade.
func BenchmarkCascade_Chain(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		g := core.NewGraph()
		head, _ := g.CreateNode("n0")
		_ = g.Retain(head)
		prev := head
		for j := 1; j < NChainLength; j++ {
			next, _ := g.CreateNode("n" + strconv.Itoa(j))
			_ = g.AddStrongEdge(prev, "next", next)
			prev = next
		}
		b.StartTimer()
		_ = g.Release(head)
	}
}

// BenchmarkReadEdge_Weak measures weak-edge resolution.
func BenchmarkReadEdge_Weak(b *testing.B) {
	g := core.NewGraph()
	a, _ := g.CreateNode("a")
	t, _ := g.CreateNode("t")
	_ = g.AddWeakEdge(a, "w", t)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = g.ReadEdge(a, "w")
	}
}
