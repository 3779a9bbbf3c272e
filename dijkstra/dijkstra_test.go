// Package dijkstra_test contains unit tests for the shortest-path oracle:
// validation, target ordering, unreachable targets, tie-breaking and output modes.
package dijkstra_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/roadflow/core"
	"github.com/katalvlaran/roadflow/dijkstra"
)

type arc struct {
	from, to string
	w        float64
}

func snapshot(t *testing.T, opts []core.GraphOption, arcs ...arc) *core.Snapshot {
	t.Helper()
	g := core.NewGraph(opts...)
	for _, a := range arcs {
		_, err := g.AddEdge(a.from, a.to, core.WithFreeFlowCost(a.w), core.WithCapacity(1))
		require.NoError(t, err)
	}
	s, err := g.Snapshot(core.AttrCongestedCost)
	require.NoError(t, err)

	return s
}

// ------------------------------------------------------------------------
// 1. Validation
// ------------------------------------------------------------------------

func TestShortestPaths_Validation(t *testing.T) {
	s := snapshot(t, nil, arc{"A", "B", 1})

	_, err := dijkstra.ShortestPaths(s, dijkstra.Targets("B"))
	require.ErrorIs(t, err, dijkstra.ErrEmptySource)

	_, err = dijkstra.ShortestPaths(nil, dijkstra.Source("A"), dijkstra.Targets("B"))
	require.ErrorIs(t, err, dijkstra.ErrNilGraph)

	_, err = dijkstra.ShortestPaths(s, dijkstra.Source("A"))
	require.ErrorIs(t, err, dijkstra.ErrNoTargets)

	_, err = dijkstra.ShortestPaths(s, dijkstra.Source("X"), dijkstra.Targets("B"))
	require.ErrorIs(t, err, dijkstra.ErrVertexNotFound)

	_, err = dijkstra.ShortestPaths(s, dijkstra.Source("A"), dijkstra.Targets("B", "Z"))
	require.ErrorIs(t, err, dijkstra.ErrTargetNotFound)

	require.Panics(t, func() { dijkstra.WithInfEdgeThreshold(0) })
	require.Panics(t, func() { dijkstra.WithInfEdgeThreshold(math.NaN()) })
	require.Panics(t, func() { dijkstra.WithOutput(dijkstra.Output(7)) })
}

func TestShortestPaths_NegativeWeight(t *testing.T) {
	g := core.NewGraph()
	_, err := g.AddEdge("A", "B", core.WithFreeFlowCost(1), core.WithCapacity(1))
	require.NoError(t, err)
	g.UpdateAllEdges(func(e *core.Edge) { e.CongestedCost = -2 })
	s, err := g.Snapshot(core.AttrCongestedCost)
	require.NoError(t, err)

	_, err = dijkstra.ShortestPaths(s, dijkstra.Source("A"), dijkstra.Targets("B"))
	require.ErrorIs(t, err, dijkstra.ErrNegativeWeight)
	require.ErrorIs(t, dijkstra.ValidateWeights(s), dijkstra.ErrNegativeWeight)

	// Trusting the caller skips the scan entirely.
	_, err = dijkstra.ShortestPaths(s, dijkstra.Source("A"), dijkstra.Targets("B"), dijkstra.WithoutWeightScan())
	require.NoError(t, err)
}

func TestValidateWeights_NaN(t *testing.T) {
	g := core.NewGraph()
	_, err := g.AddEdge("A", "B", core.WithFreeFlowCost(1), core.WithCapacity(1))
	require.NoError(t, err)
	g.UpdateAllEdges(func(e *core.Edge) { e.CongestedCost = math.NaN() })
	s, err := g.Snapshot(core.AttrCongestedCost)
	require.NoError(t, err)

	err = dijkstra.ValidateWeights(s)
	require.ErrorIs(t, err, dijkstra.ErrNaNWeight)
	require.NotErrorIs(t, err, dijkstra.ErrNegativeWeight)
}

// ------------------------------------------------------------------------
// 2. Paths
// ------------------------------------------------------------------------

func TestShortestPaths_OrderAndUnreachable(t *testing.T) {
	// A→B→C, A→C (expensive), D isolated except D→A.
	s := snapshot(t, nil,
		arc{"A", "B", 1}, // e0
		arc{"B", "C", 2}, // e1
		arc{"A", "C", 5}, // e2
		arc{"D", "A", 1}, // e3
	)

	paths, err := dijkstra.ShortestPaths(s,
		dijkstra.Source("A"),
		dijkstra.Targets("C", "D", "B", "A"),
		dijkstra.WithOutput(dijkstra.OutputBoth),
	)
	require.NoError(t, err)
	require.Len(t, paths, 4)

	assert.Equal(t, "C", paths[0].Target)
	assert.Equal(t, 3.0, paths[0].Cost)
	assert.Equal(t, []core.EdgeID{0, 1}, paths[0].Edges)
	assert.Equal(t, []string{"A", "B", "C"}, paths[0].Vertices)

	assert.Equal(t, "D", paths[1].Target)
	assert.False(t, paths[1].Reachable(), "D is only reachable against edge direction")
	assert.Empty(t, paths[1].Edges)
	assert.Empty(t, paths[1].Vertices)

	assert.Equal(t, []core.EdgeID{0}, paths[2].Edges)

	assert.True(t, paths[3].Reachable())
	assert.Zero(t, paths[3].Cost)
	assert.Empty(t, paths[3].Edges)
	assert.Equal(t, []string{"A"}, paths[3].Vertices)
}

func TestShortestPaths_OutputModes(t *testing.T) {
	s := snapshot(t, nil, arc{"A", "B", 1}, arc{"B", "C", 1})

	edgesOnly, err := dijkstra.ShortestPaths(s, dijkstra.Source("A"), dijkstra.Targets("C"))
	require.NoError(t, err)
	assert.Equal(t, []core.EdgeID{0, 1}, edgesOnly[0].Edges)
	assert.Nil(t, edgesOnly[0].Vertices)

	vertsOnly, err := dijkstra.ShortestPaths(s, dijkstra.Source("A"), dijkstra.Targets("C"),
		dijkstra.WithOutput(dijkstra.OutputVertices))
	require.NoError(t, err)
	assert.Nil(t, vertsOnly[0].Edges)
	assert.Equal(t, []string{"A", "B", "C"}, vertsOnly[0].Vertices)
}

func TestShortestPaths_TieBreakIsDeterministic(t *testing.T) {
	// Two equal-cost routes A→B→D and A→C→D; plus parallel equal edges A⇉E.
	s := snapshot(t, []core.GraphOption{core.WithMultiEdges()},
		arc{"A", "C", 1}, // e0
		arc{"A", "B", 1}, // e1
		arc{"C", "D", 1}, // e2
		arc{"B", "D", 1}, // e3
		arc{"A", "E", 2}, // e4
		arc{"A", "E", 2}, // e5
	)

	first, err := dijkstra.ShortestPaths(s, dijkstra.Source("A"), dijkstra.Targets("D", "E"))
	require.NoError(t, err)

	// C was inserted before B, so it has the lower vertex index and settles first.
	assert.Equal(t, []core.EdgeID{0, 2}, first[0].Edges)
	assert.Equal(t, []core.EdgeID{4}, first[1].Edges, "lowest EdgeID among parallel ties")

	for i := 0; i < 20; i++ {
		again, err := dijkstra.ShortestPaths(s, dijkstra.Source("A"), dijkstra.Targets("D", "E"))
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestShortestPaths_InfEdgeThreshold(t *testing.T) {
	s := snapshot(t, nil, arc{"A", "B", 1}, arc{"B", "C", 100}, arc{"A", "C", 150})

	paths, err := dijkstra.ShortestPaths(s, dijkstra.Source("A"), dijkstra.Targets("C"),
		dijkstra.WithInfEdgeThreshold(120))
	require.NoError(t, err)
	assert.Equal(t, 101.0, paths[0].Cost)

	paths, err = dijkstra.ShortestPaths(s, dijkstra.Source("A"), dijkstra.Targets("C"),
		dijkstra.WithInfEdgeThreshold(50))
	require.NoError(t, err)
	assert.False(t, paths[0].Reachable())
}

func TestDijkstra_Tree(t *testing.T) {
	s := snapshot(t, nil, arc{"A", "B", 2}, arc{"B", "C", 2}, arc{"A", "C", 5}, arc{"C", "D", 1})

	tree, err := dijkstra.Dijkstra(s, dijkstra.Source("A"))
	require.NoError(t, err)
	assert.Equal(t, 4.0, tree.Distance("C"))
	assert.Equal(t, 5.0, tree.Distance("D"))
	assert.True(t, math.IsInf(tree.Distance("nowhere"), 1))

	p, err := tree.PathTo("D", dijkstra.OutputEdges)
	require.NoError(t, err)
	assert.Equal(t, []core.EdgeID{0, 1, 3}, p.Edges)

	_, err = tree.PathTo("nowhere", dijkstra.OutputEdges)
	require.ErrorIs(t, err, dijkstra.ErrTargetNotFound)
}

func TestShortestPaths_ZeroWeightsAndLoops(t *testing.T) {
	s := snapshot(t, []core.GraphOption{core.WithLoops()},
		arc{"A", "A", 0}, arc{"A", "B", 0}, arc{"B", "C", 0})

	paths, err := dijkstra.ShortestPaths(s, dijkstra.Source("A"), dijkstra.Targets("C"))
	require.NoError(t, err)
	assert.Zero(t, paths[0].Cost)
	assert.Equal(t, []core.EdgeID{1, 2}, paths[0].Edges)
}
