// SPDX-License-Identifier: MIT
//
// File: api.go
// Role: Thin, deterministic read-only facade: policy getters and Stats().
// Policy:
//   - No algorithms or hidden state here.

package core

// GraphStats is a point-in-time summary of catalog sizes and assignment load.
type GraphStats struct {
	VertexCount int
	EdgeCount   int

	// LoadedEdgeCount counts edges carrying positive flow.
	LoadedEdgeCount int

	// TotalFlow is Σ flow over all edges.
	TotalFlow float64

	// VehicleKm is Σ flow·length.
	VehicleKm float64

	// VehicleMinutes is Σ flow·congested cost.
	VehicleMinutes float64

	// MaxVolumeCapacity is the largest flow/capacity ratio among edges with
	// positive capacity.
	MaxVolumeCapacity float64
}

// Looped reports whether self-loops are permitted.
func (g *Graph) Looped() bool {
	g.muVert.RLock()
	defer g.muVert.RUnlock()

	return g.allowLoops
}

// Multigraph reports whether parallel edges are permitted.
func (g *Graph) Multigraph() bool {
	g.muVert.RLock()
	defer g.muVert.RUnlock()

	return g.allowMulti
}

// Stats produces a read-only snapshot of sizes and assignment totals.
//
// Implementation:
//   - Stage 1: vertex count under muVert.
//   - Stage 2: one pass over edges under muEdgeAdj.
//
// Complexity: Time O(V+E) worst case, Space O(1).
func (g *Graph) Stats() GraphStats {
	var st GraphStats

	g.muVert.RLock()
	st.VertexCount = len(g.order)
	g.muVert.RUnlock()

	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	st.EdgeCount = len(g.edges)
	for _, e := range g.edges {
		if e.Flow <= 0 {
			continue
		}
		st.LoadedEdgeCount++
		st.TotalFlow += e.Flow
		st.VehicleKm += e.Flow * e.Length
		st.VehicleMinutes += e.Flow * e.CongestedCost
		if e.Capacity > 0 {
			if r := e.Flow / e.Capacity; r > st.MaxVolumeCapacity {
				st.MaxVolumeCapacity = r
			}
		}
	}

	return st
}
