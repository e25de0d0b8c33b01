package scenario_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/arcsim/scenario"
)

func ExampleRun() {
	sc, err := scenario.Builtin("phone-weak")
	if err != nil {
		fmt.Println(err)
		return
	}
	res, err := scenario.Run(context.Background(), sc)
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, e := range res.EventStrings() {
		fmt.Println(e)
	}
	fmt.Println("leaked:", res.Leaked())
	fmt.Println("check:", res.Check(sc.Expect))
	// Output:
	// initialized(Tina)
	// initialized(iPhone 6s)
	// deallocated(Tina)
	// deallocated(iPhone 6s)
	// leaked: []
	// check: <nil>
}

func ExampleParse() {
	src := `
scenario "user" {
  scope "main" {
    node "john" {
      label = "John"
    }
  }
}
`
	sc, err := scenario.Parse("user.hcl", []byte(src))
	if err != nil {
		fmt.Println(err)
		return
	}
	res, _ := scenario.Run(context.Background(), sc)
	fmt.Println(res.EventStrings())
	// Output:
	// [initialized(John) deallocated(John)]
}
