// SPDX-License-Identifier: MIT
// Package: arcsim/builder
//
// config.go: internal configuration and deterministic defaults.
//
// Deterministic defaults:
//   • labelFn    = DecimalLabel       ("0","1","2",...)
//   • hold       = g.Retain           (external handle)
//   • nextField  = "next"
//   • backField  = "prev" / "owner"
//   • closeKind  = core.Strong        (Ring closes into a leaking cycle)
//   • backKind   = core.Weak          (Star leaves observe their hub)
//   • back refs  = off for Chain

package builder

import "github.com/katalvlaran/arcsim/core"

// builderConfig aggregates all knobs used by constructors.
// It is passed by VALUE to constructors.
type builderConfig struct {
	labelFn LabelFn
	hold    func(core.NodeID) error

	nextField string
	backField string

	closeKind core.EdgeKind
	backKind  core.EdgeKind
	backRefs  bool
}

const (
	defaultNextField = "next"
	defaultPrevField = "prev"
	defaultHubField  = "owner"
)

// newBuilderConfig constructs a config with deterministic defaults and applies
// all options in order (last wins).
func newBuilderConfig(g *core.Graph, opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		labelFn:   DecimalLabel,
		hold:      g.Retain,
		nextField: defaultNextField,
		closeKind: core.Strong,
		backKind:  core.Weak,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// backFieldOr returns the configured back-reference field or def.
func (c builderConfig) backFieldOr(def string) string {
	if c.backField != "" {
		return c.backField
	}

	return def
}
