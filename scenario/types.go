// Package scenario describes ownership experiments declaratively and runs
// them against a fresh core.Graph.
//
// A Scenario is an ordered list of steps. Steps at the top level act on
// external handles (Retain/Release); steps inside a scope block act on that
// scope, which ends when its block ends. Scenarios are written in HCL or
// YAML:
//
//	scenario "phone-weak" {
//	  scope "main" {
//	    node "tina"  { label = "Tina" }
//	    node "phone" { label = "iPhone 6s" }
//	    edge {
//	      owner  = "tina"
//	      field  = "phone"
//	      kind   = "strong"
//	      target = "phone"
//	    }
//	  }
//	  expect {
//	    leaked = []
//	  }
//	}
package scenario

import (
	"errors"
)

// Op names a step.
type Op string

const (
	// OpNode creates a node bound to Name, labelled Label (default Name).
	OpNode Op = "node"
	// OpRetain adds a hold on Name: scope hold inside a scope, external handle otherwise.
	OpRetain Op = "retain"
	// OpDrop removes a hold on Name added by node, retain or closure.
	OpDrop Op = "drop"
	// OpEdge sets Owner.Field to Target with Kind.
	OpEdge Op = "edge"
	// OpUnset removes Owner.Field.
	OpUnset Op = "unset"
	// OpRead reads Owner.Field and records the outcome.
	OpRead Op = "read"
	// OpClosure creates a closure bound to Name capturing Target with Kind.
	OpClosure Op = "closure"
	// OpInvoke invokes the closure Name and records the outcome.
	OpInvoke Op = "invoke"
	// OpScope opens a nested scope named Name around Steps.
	OpScope Op = "scope"
)

// Ops lists every step kind in declaration order.
var Ops = []Op{OpNode, OpRetain, OpDrop, OpEdge, OpUnset, OpRead, OpClosure, OpInvoke, OpScope}

var (
	// ErrUnknownOp is returned for a step whose Op is not one of Ops.
	ErrUnknownOp = errors.New("scenario: unknown step")
	// ErrMissingAttribute is returned when a step lacks a required attribute.
	ErrMissingAttribute = errors.New("scenario: missing attribute")
	// ErrUnknownSymbol is returned when a step names a node or closure that was never declared.
	ErrUnknownSymbol = errors.New("scenario: unknown symbol")
	// ErrDuplicateSymbol is returned when a name is declared twice.
	ErrDuplicateSymbol = errors.New("scenario: duplicate symbol")
	// ErrExpectationFailed is returned when an outcome differs from what the scenario expects.
	ErrExpectationFailed = errors.New("scenario: expectation failed")
	// ErrUnsupportedFormat is returned by LoadFile for unknown file extensions.
	ErrUnsupportedFormat = errors.New("scenario: unsupported format")
	// ErrUnknownBuiltin is returned by Builtin for an unknown name.
	ErrUnknownBuiltin = errors.New("scenario: unknown builtin")
)

// Scenario is a parsed scenario file.
type Scenario struct {
	Name         string  `yaml:"name"`
	Description  string  `yaml:"description,omitempty"`
	StrictScopes bool    `yaml:"strict_scopes,omitempty"`
	Steps        []Step  `yaml:"steps"`
	Expect       *Expect `yaml:"expect,omitempty"`
}

// Step is one instruction. Which fields apply depends on Op.
type Step struct {
	Op     Op     `yaml:"op"`
	Name   string `yaml:"name,omitempty"`
	Label  string `yaml:"label,omitempty"`
	Owner  string `yaml:"owner,omitempty"`
	Field  string `yaml:"field,omitempty"`
	Kind   string `yaml:"kind,omitempty"`
	Target string `yaml:"target,omitempty"`

	// Closure only.
	Format   string `yaml:"format,omitempty"`
	Fallback string `yaml:"fallback,omitempty"`
	Memoize  bool   `yaml:"memoize,omitempty"`

	// Expect, for read and invoke, is compared with the recorded outcome.
	Expect string `yaml:"expect,omitempty"`

	// Steps, for scope, is the scope body.
	Steps []Step `yaml:"steps,omitempty"`

	// Pos is the source position, e.g. "demo.hcl:4,5". Empty for YAML.
	Pos string `yaml:"-"`
}

// Expect lists end-of-run expectations. A nil slice is not checked; an
// empty one must match exactly.
type Expect struct {
	// Events are lifecycle events rendered as "initialized(John)".
	Events []string `yaml:"events,omitempty"`
	// Deallocated are labels in deallocation order.
	Deallocated []string `yaml:"deallocated,omitempty"`
	// Leaked are labels of leaked nodes in ID order.
	Leaked []string `yaml:"leaked,omitempty"`
	// Live are labels of nodes still alive at the end, in ID order.
	Live []string `yaml:"live,omitempty"`
}

// where renders the step for error messages.
func (s Step) where() string {
	id := string(s.Op)
	if s.Name != "" {
		id += " " + `"` + s.Name + `"`
	}
	if s.Pos != "" {
		id = s.Pos + ": " + id
	}

	return id
}
