// Package dijkstra provides single-source, multi-target shortest paths over a
// frozen core.Snapshot with non-negative float64 weights.
//
// Overview:
//
//   - ShortestPaths(snapshot, Source(o), Targets(d1, d2, ...)) returns one Path per
//     target, in the order the targets were given, as EdgeIDs or vertex IDs.
//   - Unreachable targets are not errors: their Path is empty with Cost +Inf.
//   - Dijkstra(snapshot, Source(o)) returns the whole Tree for repeated lookups.
//
// Determinism:
//
//   - Equal distances pop in ascending vertex-index order.
//   - Outbound edges relax in ascending EdgeID order with strict improvement,
//     so among equal-cost routes the one settled first, through the lowest
//     indices, is kept. Identical snapshots always give identical paths.
//
// Weights:
//
//   - The weight is whatever core.Attribute the snapshot captured; traffic
//     assignment uses core.AttrCongestedCost.
//   - Negative weights fail with ErrNegativeWeight, NaN ones with ErrNaNWeight.
//     A caller issuing many queries against one snapshot calls ValidateWeights
//     once and then passes WithoutWeightScan().
//   - WithInfEdgeThreshold(t) turns every edge with weight ≥ t into a wall.
//
// Concurrency:
//
//   - A Snapshot is immutable; any number of goroutines may query it at once.
//
// Complexity:
//
//   - Time:  O((V + E) log V) per query, often far less with early exit.
//   - Space: O(V + E).
package dijkstra
