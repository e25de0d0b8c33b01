// Package arcsim is a small simulator of reference-counted object graphs,
// for reasoning about strong, weak and unowned references the way automatic
// reference counting treats them.
//
// Nodes are allocated with a strong count of zero and deallocated the moment
// that count drops back to zero. Deallocation is deterministic: the node's
// Deallocated event is emitted, weak references to it are cleared, then the
// strong references it holds are released in field order, which may cascade.
// Strong cycles never reach zero and are reported as leaks.
//
// Packages:
//
//	core/       Graph, edges, scopes, lifecycle events and errors
//	closure/    closures that capture a node strongly, weakly or unowned
//	dfs/        strong-edge traversal, cycle enumeration, leak detection
//	builder/    deterministic fixture topologies (chains, rings, stars)
//	scenario/   HCL and YAML scenario files, runner and bundled demos
//	metrics/    Prometheus observer for lifecycle events
//
// The classic demo, a person and a phone that refer to each other:
//
//	[Tina] --strong--> [iPhone 6s]
//	   ^                    |
//	   +------weak----------+
//
// With the back reference weak, both are released when the scope holding
// Tina ends. Make it strong and dfs.CheckLeaks reports the cycle
// "Tina -> iPhone 6s -> Tina".
//
// See examples/ownership_tour.go for every bundled scenario run end to end.
package arcsim
