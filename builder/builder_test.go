package builder_test

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/roadflow/builder"
	"github.com/katalvlaran/roadflow/core"
)

func TestLine(t *testing.T) {
	g, err := builder.BuildGraph(nil,
		[]builder.BuilderOption{builder.WithSymbolIDs(), builder.WithRoadCapacity(10), builder.WithUniformFactor(2)},
		builder.Line(3))
	require.NoError(t, err)

	assert.Equal(t, 3, g.VertexCount())
	require.Equal(t, 2, g.EdgeCount())
	e, err := g.Edge(1)
	require.NoError(t, err)
	assert.Equal(t, "B", e.From)
	assert.Equal(t, "C", e.To)
	assert.Equal(t, 1.0, e.FreeFlowCost)
	assert.Equal(t, 2.0, e.UniformCost)
	assert.Equal(t, 10.0, e.Capacity)
	assert.Equal(t, 1.0, e.Length)
	assert.Equal(t, 1.0, e.CongestedCost, "seeded from free-flow cost")

	_, err = builder.BuildGraph(nil, nil, builder.Line(1))
	require.ErrorIs(t, err, builder.ErrTooFewVertices)
}

func TestGrid(t *testing.T) {
	g, err := builder.BuildGraph(nil,
		[]builder.BuilderOption{builder.WithOrigin(orb.Point{10, 50}, 0.5)},
		builder.Grid(2, 3))
	require.NoError(t, err)

	assert.Equal(t, 6, g.VertexCount())
	// 2 rows × 2 horizontal + 3 vertical links, both directions.
	assert.Equal(t, 14, g.EdgeCount())
	assert.True(t, g.HasEdge("0,0", "0,1"))
	assert.True(t, g.HasEdge("0,1", "0,0"))
	assert.True(t, g.HasEdge("1,2", "0,2"))

	v, err := g.Vertex("1,2")
	require.NoError(t, err)
	assert.True(t, v.Located)
	assert.Equal(t, orb.Point{11, 50.5}, v.Point)
}

func TestParallel(t *testing.T) {
	g, err := builder.BuildGraph(nil, nil, builder.Parallel(1, 1.5, 2))
	require.NoError(t, err)

	assert.Equal(t, 5, g.VertexCount())
	require.Equal(t, 6, g.EdgeCount())
	e, err := g.Edge(2)
	require.NoError(t, err)
	assert.Equal(t, builder.ParallelSource, e.From)
	assert.Equal(t, builder.ParallelVia(1), e.To)
	assert.Equal(t, 1.5, e.FreeFlowCost)
	e, err = g.Edge(3)
	require.NoError(t, err)
	assert.Equal(t, builder.ParallelSink, e.To)
	assert.Zero(t, e.FreeFlowCost)

	_, err = builder.BuildGraph(nil, nil, builder.Parallel())
	require.ErrorIs(t, err, builder.ErrTooFewVertices)
}

func TestRandomSparse_Deterministic(t *testing.T) {
	build := func() *core.Graph {
		g, err := builder.BuildGraph(nil,
			[]builder.BuilderOption{builder.WithSeed(7), builder.WithUniformCost(1, 5), builder.WithSymbNumb("n")},
			builder.RandomSparse(12, 0.3))
		require.NoError(t, err)

		return g
	}
	a, b := build(), build()
	assert.Equal(t, a.Edges(), b.Edges())
	assert.Positive(t, a.EdgeCount())

	_, err := builder.BuildGraph(nil, nil, builder.RandomSparse(5, 0.5))
	require.ErrorIs(t, err, builder.ErrNeedRandSource)
	_, err = builder.BuildGraph(nil, nil, builder.RandomSparse(5, 1.5))
	require.ErrorIs(t, err, builder.ErrInvalidProbability)

	full, err := builder.BuildGraph(nil, nil, builder.RandomSparse(4, 1))
	require.NoError(t, err)
	assert.Equal(t, 12, full.EdgeCount())
}

func TestBuildGraph_NilConstructor(t *testing.T) {
	_, err := builder.BuildGraph(nil, nil, builder.Line(2), nil)
	require.ErrorIs(t, err, builder.ErrConstructFailed)
	require.ErrorIs(t, builder.Apply(nil, nil, builder.Line(2)), builder.ErrConstructFailed)

	g := core.NewGraph(core.WithMultiEdges())
	require.NoError(t, builder.Apply(g, nil, builder.Line(2), builder.Line(3)))
	assert.Equal(t, 3, g.VertexCount(), "second line reuses vertices 0 and 1")
	assert.Equal(t, 3, g.EdgeCount())

	_, err = builder.BuildGraph(nil, nil, builder.Line(2), builder.Line(2))
	require.ErrorIs(t, err, core.ErrMultiEdgeNotAllowed)
}

func TestOptions_Panics(t *testing.T) {
	assert.Panics(t, func() { builder.WithIDScheme(nil) })
	assert.Panics(t, func() { builder.WithRand(nil) })
	assert.Panics(t, func() { builder.WithCostFn(nil) })
	assert.Panics(t, func() { builder.WithRoadLength(-1) })
	assert.Panics(t, func() { builder.WithUniformFactor(-1) })
	assert.Panics(t, func() { builder.WithOrigin(orb.Point{}, 0) })
}
