// SPDX-License-Identifier: MIT
//
// File: types.go
// Role: Vertex, Edge, Graph, options, sentinel errors and the NewGraph constructor.
// Policy:
//   - Road networks are always directed; a two-way street is two edges.
//   - Edge attributes are named, typed fields (see attributes.go), never a property bag.
//   - Edge identity is a dense EdgeID assigned in insertion order; it is the tie-break key
//     for shortest paths and the unit of the path codec.

package core

import (
	"errors"
	"sync"

	"github.com/paulmach/orb"
)

// Sentinel errors for core graph operations.
var (
	// ErrEmptyVertexID indicates that the provided vertex ID is the empty string.
	ErrEmptyVertexID = errors.New("core: vertex ID is empty")

	// ErrVertexNotFound indicates an operation referenced a non-existent vertex.
	ErrVertexNotFound = errors.New("core: vertex not found")

	// ErrEdgeNotFound indicates an operation referenced a non-existent edge.
	ErrEdgeNotFound = errors.New("core: edge not found")

	// ErrLoopNotAllowed indicates a self-loop was attempted when loops are disabled.
	ErrLoopNotAllowed = errors.New("core: self-loop not allowed")

	// ErrMultiEdgeNotAllowed indicates a parallel edge was attempted when multi-edges are disabled.
	ErrMultiEdgeNotAllowed = errors.New("core: multi-edges not allowed")

	// ErrBadAttribute indicates a NaN, infinite or negative static edge attribute.
	ErrBadAttribute = errors.New("core: edge attribute must be finite and non-negative")

	// ErrUnknownAttribute indicates an attribute name that maps to no edge field.
	ErrUnknownAttribute = errors.New("core: unknown edge attribute")
)

// EdgeID is the dense, insertion-ordered identifier of an edge (0, 1, 2, ...).
type EdgeID int

// Vertex is a node of the road network.
//
// Index is the dense insertion index assigned by the graph; it is stable for the
// lifetime of the graph and is what shortest-path searches use internally.
type Vertex struct {
	// ID uniquely identifies this Vertex within its Graph.
	ID string

	// Index is the dense insertion index (0..V-1).
	Index int

	// Point is the location (lon, lat). Only meaningful when Located is true.
	Point orb.Point

	// Located reports whether Point was supplied.
	Located bool

	// Layer is a free-form tag (e.g. "taz", "streets"); assignment ignores it.
	Layer string

	// Throughput is the demand routed through this vertex by the last assignment.
	Throughput float64
}

// Edge is a directed road link with static and assignment-mutable attributes.
type Edge struct {
	// ID is the dense edge identifier.
	ID EdgeID

	// From and To are the endpoint vertex IDs.
	From string
	To   string

	// Static attributes.
	Length       float64 // km
	FreeFlowCost float64 // minutes at free flow
	UniformCost  float64 // minutes at a uniform reference speed
	Cost         float64 // minutes, generic travel cost
	Capacity     float64 // vehicles per assignment period

	// Assignment state, owned by the driver during a run.
	Flow          float64
	CongestedCost float64
	Gradient      float64
}

// GraphOption configures behavior of a Graph before creation.
type GraphOption func(g *Graph)

// WithLoops permits self-loops (edges from a vertex to itself).
func WithLoops() GraphOption {
	return func(g *Graph) { g.allowLoops = true }
}

// WithMultiEdges permits parallel edges between the same vertices.
func WithMultiEdges() GraphOption {
	return func(g *Graph) { g.allowMulti = true }
}

// VertexOption configures a vertex when it is first added.
type VertexOption func(*Vertex)

// WithPoint sets the vertex location.
func WithPoint(p orb.Point) VertexOption {
	return func(v *Vertex) {
		v.Point = p
		v.Located = true
	}
}

// WithLayer sets the vertex layer tag.
func WithLayer(layer string) VertexOption {
	return func(v *Vertex) { v.Layer = layer }
}

// EdgeOption configures the static attributes of an edge when added.
type EdgeOption func(*Edge)

// WithLength sets Edge.Length (km).
func WithLength(km float64) EdgeOption {
	return func(e *Edge) { e.Length = km }
}

// WithFreeFlowCost sets Edge.FreeFlowCost.
func WithFreeFlowCost(c float64) EdgeOption {
	return func(e *Edge) { e.FreeFlowCost = c }
}

// WithUniformCost sets Edge.UniformCost.
func WithUniformCost(c float64) EdgeOption {
	return func(e *Edge) { e.UniformCost = c }
}

// WithCost sets Edge.Cost.
func WithCost(c float64) EdgeOption {
	return func(e *Edge) { e.Cost = c }
}

// WithCapacity sets Edge.Capacity. Non-positive values are accepted here and
// rejected by the assignment driver, which owns that policy.
func WithCapacity(c float64) EdgeOption {
	return func(e *Edge) { e.Capacity = c }
}

// Graph is the in-memory directed road network.
//
// muVert protects vertices and order; muEdgeAdj protects edges and out.
// Lock order, when both are needed, is always muVert then muEdgeAdj.
type Graph struct {
	muVert    sync.RWMutex // guards vertices, order
	muEdgeAdj sync.RWMutex // guards edges, out

	allowLoops bool
	allowMulti bool

	vertices map[string]*Vertex // vertex ID → Vertex
	order    []*Vertex          // Vertex.Index → Vertex
	edges    []*Edge            // EdgeID → Edge
	out      map[string][]EdgeID
}

// NewGraph creates an empty directed Graph. By default loops and parallel
// edges are rejected.
// Complexity: O(1)
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{
		vertices: make(map[string]*Vertex),
		out:      make(map[string][]EdgeID),
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}
