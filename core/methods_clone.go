// SPDX-License-Identifier: MIT
//
// File: methods_clone.go
// Role: Deep copies of graph instances.
// Determinism:
//   - Clones keep vertex indices and EdgeIDs, so paths and snapshots taken on the
//     clone are interchangeable with the source.
// Concurrency:
//   - Read locks for copying; no mutation of the source graph.

package core

// Clone returns a deep copy of the Graph: policy flags, vertices (including
// throughput), edges (including assignment state) and adjacency.
//
// Complexity: O(V + E)
func (g *Graph) Clone() *Graph {
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	clone := &Graph{
		allowLoops: g.allowLoops,
		allowMulti: g.allowMulti,
		vertices:   make(map[string]*Vertex, len(g.vertices)),
		order:      make([]*Vertex, len(g.order)),
		edges:      make([]*Edge, len(g.edges)),
		out:        make(map[string][]EdgeID, len(g.out)),
	}
	for i, v := range g.order {
		nv := *v
		clone.order[i] = &nv
		clone.vertices[nv.ID] = &nv
	}
	for i, e := range g.edges {
		ne := *e
		clone.edges[i] = &ne
	}
	for id, ids := range g.out {
		cp := make([]EdgeID, len(ids))
		copy(cp, ids)
		clone.out[id] = cp
	}

	return clone
}
