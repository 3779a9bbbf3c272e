// Package flow accumulates routed demand onto the edges and vertices of a
// *core.Graph.
//
// One Accumulator collects the contributions of one assignment fraction. Paths
// are added with AddPath and Commit folds the totals into the graph in a single
// write pass: Flow grows additively and CongestedCost is recomputed by the BPR
// function for every touched edge. Reset readies the accumulator for the next
// fraction.
//
// # Determinism
//
// Floating-point addition is not associative, so the order in which addends
// reach a slot matters for bit-identical results. Accumulator storage is dense
// (indexed by EdgeID and vertex index) and Touched/Commit always walk it in
// ascending index order. Callers that add paths in a fixed origin order
// therefore obtain identical sums regardless of how many workers routed them.
//
// # Complexity
//
//   - AddPath: O(len(path)).
//   - Reset:   O(E + V).
//   - Commit:  O(E + V) under one graph write lock per attribute family.
//
// # Errors
//
//   - ErrSizeMismatch for an edge outside the accumulator or a graph of
//     different shape.
//   - ErrShortPath for a path whose edges do not chain head to tail.
//   - *bpr.CapacityError from Commit when a touched edge has no capacity.
//   - bpr.ErrOverflow from Commit when a new cost leaves float64 range.
package flow
