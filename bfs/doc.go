// SPDX-License-Identifier: MIT

// Package bfs provides breadth-first search over a core.Snapshot, returning
// hop counts, parent edges and visit order.
//
// It answers connectivity questions that do not depend on travel cost: which
// zones an origin can reach at all, how many links away they are, and which
// part of the network survives a filter (e.g. edges with positive capacity).
//
// Determinism
//
//	Snapshot.Out lists outbound edges in ascending EdgeID and BFS enqueues
//	heads in that order, so the visit sequence and the BFS tree are fully
//	reproducible.
//
// Complexity (V = |Vertices|, E = |Edges|)
//
//   - Time:   O(V + E)
//   - Memory: O(V)
//
// Usage
//
//	s, _ := g.Snapshot(core.AttrCapacity)
//	res, err := bfs.BFS(s, "A", bfs.WithMinWeight(s, 1), bfs.WithMaxDepth(10))
//	if err != nil {
//		// ErrGraphNil, ErrStartVertexNotFound, ErrOptionViolation, ctx or hook errors
//	}
//	edges, _ := res.PathTo("C")
package bfs
