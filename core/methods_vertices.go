// SPDX-License-Identifier: MIT
//
// File: methods_vertices.go
// Role: Vertex lifecycle & queries: AddVertex/HasVertex/Vertex/Vertices/VertexCount,
//       plus throughput bookkeeping used by the assignment driver.
// Determinism:
//   - Vertices() returns vertices in insertion (Index) order.
// Concurrency:
//   - Mutations under muVert write lock; queries under muVert read lock.
//   - Accessors return copies; callers never alias graph internals.

package core

// AddVertex inserts a vertex with the given ID. Adding an existing ID is a
// no-op and leaves the stored vertex untouched, options included.
//
// Complexity: O(1) amortized.
func (g *Graph) AddVertex(id string, opts ...VertexOption) error {
	if id == "" {
		return ErrEmptyVertexID
	}

	g.muVert.Lock()
	defer g.muVert.Unlock()

	g.addVertexLocked(id, opts...)

	return nil
}

// addVertexLocked assumes muVert is held for writing.
func (g *Graph) addVertexLocked(id string, opts ...VertexOption) *Vertex {
	if v, ok := g.vertices[id]; ok {
		return v
	}
	v := &Vertex{ID: id, Index: len(g.order)}
	for _, opt := range opts {
		opt(v)
	}
	g.vertices[id] = v
	g.order = append(g.order, v)

	return v
}

// HasVertex reports whether id is present.
func (g *Graph) HasVertex(id string) bool {
	g.muVert.RLock()
	defer g.muVert.RUnlock()

	_, ok := g.vertices[id]

	return ok
}

// Vertex returns a copy of the vertex with the given ID.
func (g *Graph) Vertex(id string) (Vertex, error) {
	if id == "" {
		return Vertex{}, ErrEmptyVertexID
	}

	g.muVert.RLock()
	defer g.muVert.RUnlock()

	v, ok := g.vertices[id]
	if !ok {
		return Vertex{}, ErrVertexNotFound
	}

	return *v, nil
}

// Vertices returns copies of all vertices ordered by Index.
// Complexity: O(V).
func (g *Graph) Vertices() []Vertex {
	g.muVert.RLock()
	defer g.muVert.RUnlock()

	out := make([]Vertex, len(g.order))
	for i, v := range g.order {
		out[i] = *v
	}

	return out
}

// VertexCount returns |V|.
func (g *Graph) VertexCount() int {
	g.muVert.RLock()
	defer g.muVert.RUnlock()

	return len(g.order)
}

// AddThroughput adds deltas[i] to the vertex with Index i. Slices shorter than
// |V| leave the tail untouched.
func (g *Graph) AddThroughput(deltas []float64) {
	g.muVert.Lock()
	defer g.muVert.Unlock()

	for i, d := range deltas {
		if i >= len(g.order) {
			break
		}
		if d != 0 {
			g.order[i].Throughput += d
		}
	}
}
