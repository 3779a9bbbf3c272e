// SPDX-License-Identifier: MIT
//
// File: methods_edges.go
// Role: Edge lifecycle & queries (AddEdge/HasEdge/Edge/Edges/EdgeCount) and the
//       batched write paths used by the assignment driver.
// Determinism:
//   - EdgeIDs are dense and assigned in call order; Edges() returns them ascending.
// Concurrency:
//   - AddEdge creates endpoints under muVert, then links under muEdgeAdj.
//   - UpdateEdges/UpdateAllEdges hold muEdgeAdj for writing for the whole batch,
//     so readers observe either the state before or after the batch.

package core

import "fmt"

// AddEdge creates a directed edge from→to with the given static attributes and
// returns its EdgeID. Missing endpoints are created.
//
// Steps:
//  1. Validate IDs, loop policy, attribute sanity.
//  2. Ensure endpoints exist (muVert).
//  3. Check the multi-edge policy and append (muEdgeAdj).
//
// Complexity: O(1) amortized, O(outdeg(from)) for the multi-edge check.
func (g *Graph) AddEdge(from, to string, opts ...EdgeOption) (EdgeID, error) {
	if from == "" || to == "" {
		return -1, ErrEmptyVertexID
	}
	if from == to && !g.allowLoops {
		return -1, ErrLoopNotAllowed
	}

	e := &Edge{From: from, To: to}
	for _, opt := range opts {
		opt(e)
	}
	if err := validStatic(e); err != nil {
		return -1, err
	}

	g.muVert.Lock()
	g.addVertexLocked(from)
	g.addVertexLocked(to)
	g.muVert.Unlock()

	g.muEdgeAdj.Lock()
	defer g.muEdgeAdj.Unlock()

	if !g.allowMulti {
		for _, id := range g.out[from] {
			if g.edges[id].To == to {
				return -1, fmt.Errorf("%w: %s→%s", ErrMultiEdgeNotAllowed, from, to)
			}
		}
	}

	e.ID = EdgeID(len(g.edges))
	e.CongestedCost = e.FreeFlowCost
	g.edges = append(g.edges, e)
	g.out[from] = append(g.out[from], e.ID) // ascending by construction

	return e.ID, nil
}

// HasEdge reports whether at least one edge from→to exists.
func (g *Graph) HasEdge(from, to string) bool {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	for _, id := range g.out[from] {
		if g.edges[id].To == to {
			return true
		}
	}

	return false
}

// Edge returns a copy of the edge with the given ID.
func (g *Graph) Edge(id EdgeID) (Edge, error) {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	if id < 0 || int(id) >= len(g.edges) {
		return Edge{}, fmt.Errorf("%w: %d", ErrEdgeNotFound, id)
	}

	return *g.edges[id], nil
}

// EdgeBetween returns the lowest-ID edge from→to.
func (g *Graph) EdgeBetween(from, to string) (Edge, error) {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	for _, id := range g.out[from] {
		if e := g.edges[id]; e.To == to {
			return *e, nil
		}
	}

	return Edge{}, fmt.Errorf("%w: %s→%s", ErrEdgeNotFound, from, to)
}

// Edges returns copies of all edges in EdgeID order.
// Complexity: O(E).
func (g *Graph) Edges() []Edge {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	out := make([]Edge, len(g.edges))
	for i, e := range g.edges {
		out[i] = *e
	}

	return out
}

// EdgeCount returns |E|.
func (g *Graph) EdgeCount() int {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	return len(g.edges)
}

// UpdateEdges applies fn to each listed edge inside one write critical section.
// Unknown IDs abort before fn runs on any edge.
func (g *Graph) UpdateEdges(ids []EdgeID, fn func(*Edge)) error {
	g.muEdgeAdj.Lock()
	defer g.muEdgeAdj.Unlock()

	for _, id := range ids {
		if id < 0 || int(id) >= len(g.edges) {
			return fmt.Errorf("%w: %d", ErrEdgeNotFound, id)
		}
	}
	for _, id := range ids {
		fn(g.edges[id])
	}

	return nil
}

// UpdateAllEdges applies fn to every edge in EdgeID order inside one write
// critical section.
func (g *Graph) UpdateAllEdges(fn func(*Edge)) {
	g.muEdgeAdj.Lock()
	defer g.muEdgeAdj.Unlock()

	for _, e := range g.edges {
		fn(e)
	}
}

// ResetAssignment clears assignment state: Flow and Gradient to 0,
// CongestedCost to the seed attribute, every vertex Throughput to 0.
func (g *Graph) ResetAssignment(seed Attribute) error {
	if !seed.Static() {
		return fmt.Errorf("%w: %s cannot seed congested cost", ErrUnknownAttribute, seed)
	}

	g.muVert.Lock()
	for _, v := range g.order {
		v.Throughput = 0
	}
	g.muVert.Unlock()

	g.UpdateAllEdges(func(e *Edge) {
		e.Flow = 0
		e.Gradient = 0
		e.CongestedCost = e.Value(seed)
	})

	return nil
}
