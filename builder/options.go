// SPDX-License-Identifier: MIT
// Package: arcsim/builder
//
// options.go: functional options for the builder package.
//
// Contract:
//   • Options are functional (type BuilderOption func(*builderConfig)).
//   • Option constructors VALIDATE and PANIC on meaningless inputs.
//     Constructors themselves never panic.

package builder

import "github.com/katalvlaran/arcsim/core"

// BuilderOption customizes constructors by mutating a builderConfig before
// any node is created.
type BuilderOption func(*builderConfig)

// WithLabelScheme sets the deterministic label generator: idx -> label.
// Panics on nil.
func WithLabelScheme(fn LabelFn) BuilderOption {
	if fn == nil {
		panic("builder: WithLabelScheme(nil)")
	}
	return func(c *builderConfig) { c.labelFn = fn }
}

// WithLabelPrefix sets the label scheme to PrefixedLabel(prefix).
func WithLabelPrefix(prefix string) BuilderOption {
	return WithLabelScheme(PrefixedLabel(prefix))
}

// WithScope makes s the owner of every head node instead of an external
// Retain handle. The fixture then unwinds when s ends.
// Panics on nil.
func WithScope(s *core.Scope) BuilderOption {
	if s == nil {
		panic("builder: WithScope(nil)")
	}
	return func(c *builderConfig) { c.hold = s.Hold }
}

// WithNextField renames the forward strong field (default "next").
// Panics on an empty name.
func WithNextField(name string) BuilderOption {
	if name == "" {
		panic("builder: WithNextField(\"\")")
	}
	return func(c *builderConfig) { c.nextField = name }
}

// WithCloseKind sets the kind of the edge that closes a Ring.
func WithCloseKind(kind core.EdgeKind) BuilderOption {
	return func(c *builderConfig) { c.closeKind = kind }
}

// WithBackRefs enables back references of the given kind: Chain links each
// node to its predecessor, Star links each leaf to its hub. An empty field
// keeps the constructor's default name.
func WithBackRefs(kind core.EdgeKind, field string) BuilderOption {
	return func(c *builderConfig) {
		c.backRefs = true
		c.backKind = kind
		c.backField = field
	}
}
