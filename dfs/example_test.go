package dfs_test

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/arcsim/core"
	"github.com/katalvlaran/arcsim/dfs"
)

// ExampleCheckLeaks reports the strong cycle left behind by a scope.
func ExampleCheckLeaks() {
	g := core.NewGraph()
	_ = g.Within("main", func(s *core.Scope) error {
		user, _ := s.New("Tina")
		phone, _ := s.New("iPhone 6s")
		_ = g.AddStrongEdge(user, "phone", phone)

		return g.AddStrongEdge(phone, "owner", user)
	})

	err := dfs.CheckLeaks(g)
	fmt.Println(errors.Is(err, dfs.ErrLeakDetected))
	var le *dfs.LeakError
	if errors.As(err, &le) {
		fmt.Println(le.Report.LeakedLabels())
		fmt.Println(le.Report.CycleLabels())
	}

	// Output:
	// true
	// [Tina iPhone 6s]
	// [Tina -> iPhone 6s -> Tina]
}

// ExampleWalk prints the post-order of a strong chain.
func ExampleWalk() {
	g := core.NewGraph()
	a, _ := g.CreateNode("a")
	b, _ := g.CreateNode("b")
	c, _ := g.CreateNode("c")
	_ = g.Retain(a)
	_ = g.AddStrongEdge(a, "next", b)
	_ = g.AddStrongEdge(b, "next", c)

	res, _ := dfs.Walk(g, a)
	fmt.Println(res.Order)

	// Output:
	// [n3 n2 n1]
}
