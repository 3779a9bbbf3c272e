package flow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/roadflow/bpr"
	"github.com/katalvlaran/roadflow/builder"
	"github.com/katalvlaran/roadflow/core"
	"github.com/katalvlaran/roadflow/flow"
)

func line(t *testing.T) (*core.Graph, *core.Snapshot) {
	t.Helper()
	g, err := builder.BuildGraph(nil, []builder.BuilderOption{builder.WithSymbolIDs()}, builder.Line(3))
	require.NoError(t, err)
	s, err := g.Snapshot(core.AttrCongestedCost)
	require.NoError(t, err)

	return g, s
}

func TestAccumulator_AddPathSums(t *testing.T) {
	_, s := line(t)
	a := flow.ForSnapshot(s)

	require.NoError(t, a.AddPath(s, 0, []core.EdgeID{0, 1}, 5))
	require.NoError(t, a.AddPath(s, 1, []core.EdgeID{1}, 2))
	require.NoError(t, a.AddPath(s, 2, nil, 4), "empty path credits the origin")

	assert.Equal(t, 5.0, a.Edge(0))
	assert.Equal(t, 7.0, a.Edge(1))
	assert.Zero(t, a.Edge(99))
	assert.Equal(t, []core.EdgeID{0, 1}, a.Touched())
	assert.Equal(t, []float64{5, 7, 11}, a.Throughput())
}

func TestAccumulator_AddPathRejectsBrokenChain(t *testing.T) {
	_, s := line(t)
	a := flow.ForSnapshot(s)

	require.ErrorIs(t, a.AddPath(s, 0, []core.EdgeID{1}, 1), flow.ErrShortPath)
	require.ErrorIs(t, a.AddPath(s, 0, []core.EdgeID{0, 0}, 1), flow.ErrShortPath)
	require.ErrorIs(t, a.AddPath(s, 0, []core.EdgeID{7}, 1), flow.ErrSizeMismatch)
	assert.Empty(t, a.Touched(), "failed AddPath leaves no trace")
	assert.Equal(t, []float64{0, 0, 0}, a.Throughput())
}

func TestAccumulator_Reset(t *testing.T) {
	_, s := line(t)
	a := flow.ForSnapshot(s)
	require.NoError(t, a.AddPath(s, 0, []core.EdgeID{0}, 1))
	require.NoError(t, a.AddPath(s, 0, []core.EdgeID{0, 1}, 2))
	assert.Equal(t, 3.0, a.Edge(0))
	assert.Equal(t, []float64{3, 3, 2}, a.Throughput())

	a.Reset()
	assert.Empty(t, a.Touched())
	assert.Zero(t, a.Edge(0))
	assert.Equal(t, []float64{0, 0, 0}, a.Throughput())

	require.NoError(t, a.AddPath(s, 1, []core.EdgeID{1}, 4))
	assert.Equal(t, []core.EdgeID{1}, a.Touched())
}

func TestAccumulator_Commit(t *testing.T) {
	g, s := line(t)
	p := bpr.DefaultParams()

	// Two fractions of 10 on A→B→C.
	for i := 0; i < 2; i++ {
		a := flow.ForSnapshot(s)
		require.NoError(t, a.AddPath(s, 0, []core.EdgeID{0, 1}, 10))
		require.NoError(t, a.Commit(g, core.AttrFreeFlowCost, p))

		e, err := g.Edge(0)
		require.NoError(t, err)
		assert.Equal(t, float64(10*(i+1)), e.Flow, "flow is cumulative")
	}

	for _, e := range g.Edges() {
		assert.Equal(t, 20.0, e.Flow)
		assert.InDelta(t, 3.4, e.CongestedCost, 1e-12)
	}
	for _, v := range g.Vertices() {
		assert.Equal(t, 20.0, v.Throughput)
	}
}

func TestAccumulator_CommitLeavesUntouchedEdges(t *testing.T) {
	g, err := builder.BuildGraph(nil, nil, builder.Parallel(1, 2))
	require.NoError(t, err)
	s, err := g.Snapshot(core.AttrCongestedCost)
	require.NoError(t, err)

	a := flow.ForSnapshot(s)
	require.NoError(t, a.AddPath(s, 0, []core.EdgeID{0, 1}, 20))
	require.NoError(t, a.Commit(g, core.AttrFreeFlowCost, bpr.DefaultParams()))

	e, _ := g.Edge(2)
	assert.Zero(t, e.Flow)
	assert.Equal(t, 2.0, e.CongestedCost)
	e, _ = g.Edge(1)
	assert.Zero(t, e.CongestedCost, "zero base stays zero under load")
}

func TestAccumulator_CommitRejectsZeroCapacityWithoutMutation(t *testing.T) {
	g, err := builder.BuildGraph(nil, []builder.BuilderOption{builder.WithRoadCapacity(0)}, builder.Line(3))
	require.NoError(t, err)
	s, err := g.Snapshot(core.AttrCongestedCost)
	require.NoError(t, err)

	a := flow.ForSnapshot(s)
	require.NoError(t, a.AddPath(s, 0, []core.EdgeID{0, 1}, 1))
	err = a.Commit(g, core.AttrFreeFlowCost, bpr.DefaultParams())
	require.ErrorIs(t, err, bpr.ErrZeroCapacity)

	var ce *bpr.CapacityError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 0, ce.Edge)
	for _, e := range g.Edges() {
		assert.Zero(t, e.Flow)
	}
	for _, v := range g.Vertices() {
		assert.Zero(t, v.Throughput)
	}

	require.ErrorIs(t, a.Commit(g, core.AttrFlow, bpr.DefaultParams()), core.ErrUnknownAttribute)
	require.ErrorIs(t, flow.NewAccumulator(5, 3).Commit(g, core.AttrFreeFlowCost, bpr.DefaultParams()), flow.ErrSizeMismatch)
}

func TestAccumulator_CommitRejectsOverflowWithoutMutation(t *testing.T) {
	g, err := builder.BuildGraph(nil,
		[]builder.BuilderOption{builder.WithSymbolIDs(), builder.WithRoadCapacity(1e-100)}, builder.Line(3))
	require.NoError(t, err)
	s, err := g.Snapshot(core.AttrCongestedCost)
	require.NoError(t, err)
	before := g.Edges()

	a := flow.ForSnapshot(s)
	require.NoError(t, a.AddPath(s, 0, []core.EdgeID{0, 1}, 5))
	err = a.Commit(g, core.AttrFreeFlowCost, bpr.DefaultParams())
	require.ErrorIs(t, err, bpr.ErrOverflow)
	assert.Contains(t, err.Error(), "A→B")

	assert.Equal(t, before, g.Edges())
	for _, v := range g.Vertices() {
		assert.Zero(t, v.Throughput)
	}
}
