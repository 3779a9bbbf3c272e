// SPDX-License-Identifier: MIT

package flow

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/roadflow/bpr"
	"github.com/katalvlaran/roadflow/core"
)

var (
	// ErrSizeMismatch is returned when shapes of accumulator and target differ.
	ErrSizeMismatch = errors.New("flow: accumulator size mismatch")

	// ErrShortPath is returned when a path does not chain from its origin.
	ErrShortPath = errors.New("flow: path does not chain")
)

// Accumulator sums per-edge flow and per-vertex throughput for one fraction.
// It is not safe for concurrent use. One accumulator serves every fraction of
// a run: Commit, then Reset.
type Accumulator struct {
	edges   []float64
	touched []bool
	nodes   []float64
}

// NewAccumulator returns an empty accumulator for a graph with the given
// number of edges and vertices.
func NewAccumulator(edgeCount, vertexCount int) *Accumulator {
	return &Accumulator{
		edges:   make([]float64, edgeCount),
		touched: make([]bool, edgeCount),
		nodes:   make([]float64, vertexCount),
	}
}

// ForSnapshot sizes a new accumulator to s.
func ForSnapshot(s *core.Snapshot) *Accumulator {
	return NewAccumulator(s.EdgeCount(), s.VertexCount())
}

// AddPath adds amount to every edge of path and to every vertex it visits,
// origin included. An empty path credits the origin alone.
func (a *Accumulator) AddPath(s *core.Snapshot, origin int, path []core.EdgeID, amount float64) error {
	at := origin
	for i, e := range path {
		if int(e) < 0 || int(e) >= len(a.edges) {
			return fmt.Errorf("%w: edge %d at position %d", ErrSizeMismatch, e, i)
		}
		if s.Tail(e) != at {
			return fmt.Errorf("%w: edge %d at position %d leaves %s, expected %s",
				ErrShortPath, e, i, s.VertexID(s.Tail(e)), s.VertexID(at))
		}
		at = s.Head(e)
	}

	a.nodes[origin] += amount
	for _, e := range path {
		a.edges[e] += amount
		a.touched[e] = true
		a.nodes[s.Head(e)] += amount
	}

	return nil
}

// Touched returns the edges that received any path, ascending.
func (a *Accumulator) Touched() []core.EdgeID {
	var out []core.EdgeID
	for i, ok := range a.touched {
		if ok {
			out = append(out, core.EdgeID(i))
		}
	}

	return out
}

// Edge returns the amount accumulated on e.
func (a *Accumulator) Edge(e core.EdgeID) float64 {
	if int(e) < 0 || int(e) >= len(a.edges) {
		return 0
	}

	return a.edges[e]
}

// Throughput returns a copy of the per-vertex sums, indexed by vertex Index.
func (a *Accumulator) Throughput() []float64 {
	out := make([]float64, len(a.nodes))
	copy(out, a.nodes)

	return out
}

// Reset zeroes the accumulator for reuse.
func (a *Accumulator) Reset() {
	clear(a.edges)
	clear(a.touched)
	clear(a.nodes)
}

// Commit folds the accumulator into g. For each touched edge Flow grows by the
// accumulated amount and CongestedCost becomes bpr.Cost over the base
// attribute. New values are staged first: a touched edge with a bad capacity
// or a cost outside float64 range fails the commit and leaves g untouched.
func (a *Accumulator) Commit(g *core.Graph, base core.Attribute, p bpr.Params) error {
	if !base.Static() {
		return fmt.Errorf("%w: %s", core.ErrUnknownAttribute, base)
	}
	if n := g.EdgeCount(); n != len(a.edges) {
		return fmt.Errorf("%w: graph has %d edges, accumulator %d", ErrSizeMismatch, n, len(a.edges))
	}

	ids := a.Touched()
	staged := make(map[core.EdgeID]core.Edge, len(ids))
	for _, id := range ids {
		e, err := g.Edge(id)
		if err != nil {
			return err
		}
		if bpr.CheckCapacity(e.Capacity) != nil {
			return &bpr.CapacityError{Edge: int(id), From: e.From, To: e.To, Capacity: e.Capacity}
		}
		e.Flow += a.edges[id]
		if err := bpr.CheckLoad(e.Value(base), e.Flow, e.Capacity, p); err != nil {
			return fmt.Errorf("edge %d %s→%s: %w", id, e.From, e.To, err)
		}
		e.CongestedCost = bpr.Cost(e.Value(base), e.Flow, e.Capacity, p)
		staged[id] = e
	}

	if err := g.UpdateEdges(ids, func(e *core.Edge) {
		next := staged[e.ID]
		e.Flow, e.CongestedCost = next.Flow, next.CongestedCost
	}); err != nil {
		return err
	}
	g.AddThroughput(a.nodes)

	return nil
}
