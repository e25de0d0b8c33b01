// Package builder constructs deterministic ownership fixtures on a
// core.Graph: chains, rings and stars of nodes connected by strong edges,
// optionally with weak, unowned or strong back references.
//
// The package offers:
//
//   - Build / BuildGraph: apply Constructors in order and return a Fixture
//     recording the nodes and held head of every part.
//   - Constructors:
//     – Chain(n):  0 → 1 → … → n-1 over strong "next" edges.
//     – Ring(n):   a chain closed back to node 0 (strong by default, so it leaks).
//     – Star(n):   a hub owning n-1 leaves, each pointing back at the hub.
//   - Options:
//     – WithLabelScheme / WithLabelPrefix: node labels.
//     – WithScope:  hold heads in a scope instead of an external Retain.
//     – WithNextField, WithCloseKind, WithBackRefs: field names and edge kinds.
//   - Label schemes: DecimalLabel, LetterLabel, ExcelColumnLabel,
//     PrefixedLabel, NamedLabels.
//
// Guarantees:
//
//   - Parameters are validated before any node is created.
//   - Option constructors panic on meaningless input; constructors never do.
//   - On success every created node is owned, directly or through its head.
package builder
