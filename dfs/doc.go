// Package dfs implements depth-first traversal, reachability, strong-cycle
// detection and leak reporting on a core.Graph.
//
// What:
//
//   - Walk: explores strong edges from a start node. Supports
//     pre-order and post-order hooks, cancellation via context.Context,
//     depth limiting and edge filtering (WithFilterEdge(nil) follows
//     weak and unowned edges too).
//   - Reachable: the live nodes reachable from the graph's roots
//     (open-scope holds and external Retain handles).
//   - DetectCycles: enumerates strong cycles with node colouring
//     (White, Gray, Black), back-edge recording and canonical signature
//     deduplication.
//   - FindLeaks / CheckLeaks: live nodes no root reaches. A strong cycle
//     left behind after its scope ended shows up here together with the
//     cycle itself.
//
// Key Types & Constants:
//
//   - White, Gray, Black: visitation markers
//   - Option, Options: functional options for Walk
//   - Result: post-order, Depth, Parent, Visited maps
//   - LeakReport, LeakError
//
// Complexity:
//
//   - Walk:          Time O(V+E), Memory O(V)
//   - DetectCycles:  Time O(V+E + C*L), Memory O(V+L_max)
//   - FindLeaks:     Time O(V+E), Memory O(V)
//
// Errors:
//
//   - ErrGraphNil:           nil graph
//   - ErrStartNodeNotFound:  Walk start missing or deallocated
//   - ErrLeakDetected:       matched by *LeakError from CheckLeaks
//   - context.Canceled / context.DeadlineExceeded from Walk
package dfs
