// SPDX-License-Identifier: MIT
// Package core_test contains test helpers for arcsim/core.
//
// Purpose:
//   - Provide small, deterministic fixtures for the ARC teaching scenarios.
//   - Keep event assertions readable ("initialized(John)" strings).

package core_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/arcsim/core"
)

// Labels used across core tests (the classic ARC playground cast).
const (
	LabelJohn   = "John"
	LabelTina   = "Tina"
	LabelPhone  = "iPhone 6s"
	LabelCarrie = "TelBel"
	LabelBob    = "Bob"
)

// Field names used across core tests.
const (
	FieldPhone        = "phone"
	FieldOwner        = "owner"
	FieldUser         = "user"
	FieldSubscription = "carrierSubscription"
	FieldSelf         = "self"
)

// Common concurrency sizes (avoid magic numbers in test bodies).
const (
	NConcurrentScopes = 64
	NChainLength      = 32
)

// newRecorded returns a Graph wired to a fresh Recorder.
func newRecorded(opts ...core.GraphOption) (*core.Graph, *core.Recorder) {
	rec := core.NewRecorder()
	opts = append([]core.GraphOption{core.WithObserver(rec)}, opts...)

	return core.NewGraph(opts...), rec
}

// initd and dealloc render expected events the way Event.String does.
func initd(label string) string   { return core.Initialized.String() + "(" + label + ")" }
func dealloc(label string) string { return core.Deallocated.String() + "(" + label + ")" }

// mustStrong fails the test unless id has the wanted strong count.
func mustStrong(t *testing.T, g *core.Graph, id core.NodeID, want int) {
	t.Helper()
	got, err := g.StrongCount(id)
	require.NoError(t, err)
	require.Equal(t, want, got, "StrongCount(%s)", id)
}
