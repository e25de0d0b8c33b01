// SPDX-License-Identifier: MIT
// Package: arcsim/builder
//
// errors.go: sentinel errors for the builder package.
//
// Error policy:
//   • Only sentinel variables (package-level) are exposed.
//   • Callers use errors.Is(err, ErrX) to branch on semantics.
//   • Implementations attach method context with %w.

package builder

import "errors"

// ErrTooFewNodes indicates that a size parameter is smaller than the minimum
// the requested constructor accepts.
var ErrTooFewNodes = errors.New("builder: parameter too small")

// ErrNilGraph indicates that Build received a nil graph.
var ErrNilGraph = errors.New("builder: graph is nil")
