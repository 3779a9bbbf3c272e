// Package core provides the thread-safe, in-memory directed road network that
// traffic assignment runs on.
//
// The Graph G = (V,E) is always directed: a two-way street is two edges.
//
//   - Vertices carry a string ID, a dense Index, an optional orb.Point location,
//     a layer tag, and the Throughput written by assignment.
//   - Edges carry a dense EdgeID (insertion order) and named, typed attributes:
//     Length, FreeFlowCost, UniformCost, Cost, Capacity (static inputs) and
//     Flow, CongestedCost, Gradient (assignment state).
//   - Attribute enumerates those fields so a weight or a seed cost can be chosen
//     by name ("free_flow_time_m", "congested_time_m", ...).
//   - Separate sync.RWMutex for vertices (muVert) and edges+adjacency (muEdgeAdj).
//
// Determinism:
//
//   - Vertices() is ordered by Index, Edges() and OutEdges() by EdgeID.
//   - Snapshot(attr) freezes adjacency plus one attribute in CSR form; every
//     shortest-path query of one assignment fraction reads the same Snapshot.
//
// Configuration Options (GraphOption):
//
//	– WithLoops()       permit v→v edges (default: ErrLoopNotAllowed).
//	– WithMultiEdges()  permit parallel edges (default: ErrMultiEdgeNotAllowed).
//
// Errors:
//
//	ErrEmptyVertexID, ErrVertexNotFound, ErrEdgeNotFound, ErrLoopNotAllowed,
//	ErrMultiEdgeNotAllowed, ErrBadAttribute, ErrUnknownAttribute.
//
// Example:
//
//	g := core.NewGraph()
//	id, err := g.AddEdge("A", "B",
//	    core.WithFreeFlowCost(1), core.WithCapacity(10), core.WithLength(0.8))
package core
