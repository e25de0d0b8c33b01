// File: result.go
// Role: run outcomes and expectation checks.
package scenario

import (
	"errors"
	"fmt"
	"slices"

	"github.com/katalvlaran/arcsim/core"
	"github.com/katalvlaran/arcsim/dfs"
)

// Read outcomes.
const (
	ReadPresent      = "present"
	ReadAbsent       = "absent"
	ReadUseAfterFree = "use_after_free"
)

// Invoke statuses.
const (
	InvokeOK           = "ok"
	InvokeUseAfterFree = "use_after_free"
	InvokeReleased     = "released"
)

// ReadOutcome records one read step.
type ReadOutcome struct {
	Owner   string `json:"owner" yaml:"owner"`
	Field   string `json:"field" yaml:"field"`
	Outcome string `json:"outcome" yaml:"outcome"`
	// Target is the label of the resolved target; empty unless present.
	Target string `json:"target,omitempty" yaml:"target,omitempty"`
}

// InvokeOutcome records one invoke step.
type InvokeOutcome struct {
	Name   string `json:"name" yaml:"name"`
	Status string `json:"status" yaml:"status"`
	Value  string `json:"value,omitempty" yaml:"value,omitempty"`
}

// Observed is what an invoke expectation is compared with: the value when
// the call succeeded, the status otherwise.
func (o InvokeOutcome) Observed() string {
	if o.Status == InvokeOK {
		return o.Value
	}

	return o.Status
}

// Result is the outcome of Run. RetainPaths holds, for every live node a
// root still reaches, its shortest retention path ("TelBel -user-> John").
type Result struct {
	Scenario    string                 `json:"scenario" yaml:"scenario"`
	Events      []core.Event           `json:"events" yaml:"events"`
	Reads       []ReadOutcome          `json:"reads,omitempty" yaml:"reads,omitempty"`
	Invocations []InvokeOutcome        `json:"invocations,omitempty" yaml:"invocations,omitempty"`
	Leaks       *dfs.LeakReport        `json:"-" yaml:"-"`
	Live        []string               `json:"live" yaml:"live"`
	RetainPaths []string               `json:"retain_paths,omitempty" yaml:"retain_paths,omitempty"`
	Stats       core.GraphStats        `json:"stats" yaml:"stats"`
	Symbols     map[string]core.NodeID `json:"-" yaml:"-"`
}

// EventStrings renders Events as "initialized(John)".
func (r *Result) EventStrings() []string {
	out := make([]string, len(r.Events))
	for i, e := range r.Events {
		out[i] = e.String()
	}

	return out
}

// Deallocated returns the labels of deallocated nodes in event order.
func (r *Result) Deallocated() []string {
	out := []string{}
	for _, e := range r.Events {
		if e.Kind == core.Deallocated {
			out = append(out, e.Label)
		}
	}

	return out
}

// Leaked returns the labels of leaked nodes in ID order.
func (r *Result) Leaked() []string {
	if r.Leaks == nil {
		return []string{}
	}

	return r.Leaks.LeakedLabels()
}

// Check compares r with exp. A nil exp, or a nil list in it, checks
// nothing. All mismatches are reported, each matching ErrExpectationFailed.
func (r *Result) Check(exp *Expect) error {
	if exp == nil {
		return nil
	}
	var errs []error
	compare := func(what string, got, want []string) {
		if want == nil || slices.Equal(got, want) {
			return
		}
		errs = append(errs, fmt.Errorf("%w: %s: got %q, want %q", ErrExpectationFailed, what, got, want))
	}
	compare("events", r.EventStrings(), exp.Events)
	compare("deallocated", r.Deallocated(), exp.Deallocated)
	compare("leaked", r.Leaked(), exp.Leaked)
	compare("live", r.Live, exp.Live)

	return errors.Join(errs...)
}
