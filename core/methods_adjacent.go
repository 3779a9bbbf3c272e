// SPDX-License-Identifier: MIT
//
// File: methods_adjacent.go
// Role: Outbound adjacency queries.
// Determinism:
//   - OutEdges returns EdgeIDs ascending.
// Concurrency:
//   - Read-only; muEdgeAdj read lock.

package core

// OutEdges returns the IDs of edges leaving id, ascending.
// Complexity: O(outdeg).
func (g *Graph) OutEdges(id string) ([]EdgeID, error) {
	if id == "" {
		return nil, ErrEmptyVertexID
	}
	if !g.HasVertex(id) {
		return nil, ErrVertexNotFound
	}

	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	src := g.out[id]
	out := make([]EdgeID, len(src))
	copy(out, src)

	return out, nil
}
