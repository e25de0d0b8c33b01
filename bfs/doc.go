// Package bfs provides breadth-first search over the ownership edges of a
// core.Graph.
//
// What
//
//   - BFS explores from one start node, FromRoots from every root at once
//     (scope holds and external retains), in non-decreasing edge distance.
//   - Result carries the visit Order, the Depth of each node and the Link
//     (owner and field) it was first reached through.
//   - RetainPath reconstructs the shortest chain of strong edges from a root
//     to a live node: the answer to "what keeps this alive?". A leaked node
//     has none and yields ErrNotRetained.
//
// Only strong edges are followed unless WithFilterEdge says otherwise.
// Cleared weak edges and edges into deallocated nodes are never followed.
//
// Determinism
//
//	Roots are seeded in ID order and edges are followed in field
//	declaration order, so Order and every Parent link are reproducible.
//
// Complexity
//
//   - Time:   O(V + E)
//   - Memory: O(V)
package bfs
