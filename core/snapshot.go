// SPDX-License-Identifier: MIT
//
// File: snapshot.go
// Role: Immutable CSR view of outbound adjacency plus one weight attribute.
//
// A Snapshot is what every shortest-path query of one assignment fraction reads:
// it is built once under read locks, never changes afterwards, and can be shared
// by any number of goroutines without further locking.

package core

import "fmt"

// Snapshot is a read-only compressed-sparse-row copy of the graph.
type Snapshot struct {
	attr Attribute

	ids   []string       // Index → vertex ID
	index map[string]int // vertex ID → Index

	offsets []int    // Index → start of its slice in slots; len V+1
	slots   []EdgeID // outbound EdgeIDs grouped by tail, ascending within a group

	tail    []int     // EdgeID → tail Index
	head    []int     // EdgeID → head Index
	weights []float64 // EdgeID → attribute value at snapshot time
}

// Snapshot captures adjacency and the weight attribute w.
// Complexity: O(V + E).
func (g *Graph) Snapshot(w Attribute) (*Snapshot, error) {
	if !w.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAttribute, int(w))
	}

	g.muVert.RLock()
	defer g.muVert.RUnlock()
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	V, E := len(g.order), len(g.edges)
	s := &Snapshot{
		attr:    w,
		ids:     make([]string, V),
		index:   make(map[string]int, V),
		offsets: make([]int, V+1),
		slots:   make([]EdgeID, 0, E),
		tail:    make([]int, E),
		head:    make([]int, E),
		weights: make([]float64, E),
	}
	for i, v := range g.order {
		s.ids[i] = v.ID
		s.index[v.ID] = i
	}
	for i, v := range g.order {
		s.offsets[i] = len(s.slots)
		s.slots = append(s.slots, g.out[v.ID]...)
	}
	s.offsets[V] = len(s.slots)
	for i, e := range g.edges {
		s.tail[i] = s.index[e.From]
		s.head[i] = s.index[e.To]
		s.weights[i] = e.Value(w)
	}

	return s, nil
}

// Attribute returns the attribute captured as weight.
func (s *Snapshot) Attribute() Attribute { return s.attr }

// VertexCount returns |V| at snapshot time.
func (s *Snapshot) VertexCount() int { return len(s.ids) }

// EdgeCount returns |E| at snapshot time.
func (s *Snapshot) EdgeCount() int { return len(s.weights) }

// Index maps a vertex ID to its dense index.
func (s *Snapshot) Index(id string) (int, bool) {
	i, ok := s.index[id]

	return i, ok
}

// VertexID maps a dense index back to its vertex ID.
func (s *Snapshot) VertexID(i int) string { return s.ids[i] }

// Out returns the outbound EdgeIDs of vertex index i, ascending.
// The returned slice aliases the snapshot and must not be modified.
func (s *Snapshot) Out(i int) []EdgeID { return s.slots[s.offsets[i]:s.offsets[i+1]] }

// Tail returns the tail vertex index of e.
func (s *Snapshot) Tail(e EdgeID) int { return s.tail[e] }

// Head returns the head vertex index of e.
func (s *Snapshot) Head(e EdgeID) int { return s.head[e] }

// Weight returns the captured weight of e.
func (s *Snapshot) Weight(e EdgeID) float64 { return s.weights[e] }
