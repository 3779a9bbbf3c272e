package demand_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/roadflow/demand"
)

func TestBuilder_OrderSumsAndEpsilon(t *testing.T) {
	b := demand.NewBuilder()
	require.NoError(t, b.Add("o2", "d1", 3))
	require.NoError(t, b.Add("o1", "d9", 1))
	require.NoError(t, b.Add("o1", "d2", 2))
	require.NoError(t, b.Add("o1", "d9", 4))        // sums to 5
	require.NoError(t, b.Add("o3", "d1", 0.000001)) // below epsilon
	require.NoError(t, b.Add("o2", "d5", -1))       // non-positive
	m := b.Build()

	assert.Equal(t, []string{"o2", "o1"}, m.Origins(), "o3 has no live destination")
	assert.Equal(t, []string{"d9", "d2"}, m.Targets("o1"), "first-appearance order")
	assert.Equal(t, 5.0, m.Volume("o1", "d9"))
	assert.Zero(t, m.Volume("o2", "d5"))
	assert.Equal(t, 10.0, m.Total())
	assert.Equal(t, 3, m.Pairs())
	assert.Equal(t, 2, m.Dropped())
	assert.Equal(t, 2, m.Len())
	assert.Nil(t, m.Destinations("o3"))
	assert.Empty(t, m.Targets("o3"))

	entries := m.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, demand.Entry{Origin: "o2", Destination: "d1", Volume: 3}, entries[0])
}

func TestBuilder_Errors(t *testing.T) {
	b := demand.NewBuilder()
	require.ErrorIs(t, b.Add("", "d", 1), demand.ErrEmptyID)
	require.ErrorIs(t, b.Add("o", "d", math.NaN()), demand.ErrBadVolume)
	require.ErrorIs(t, b.AddEntries([]demand.Entry{{Origin: "o", Destination: "d", Volume: math.Inf(1)}}), demand.ErrBadVolume)
	require.Panics(t, func() { demand.WithEpsilon(-1) })
}

func TestFromMap_SortedAndCustomEpsilon(t *testing.T) {
	m, err := demand.FromMap(map[string]map[string]float64{
		"b": {"z": 1, "a": 2},
		"a": {"c": 0.5},
		"c": {},
	}, demand.WithEpsilon(0.6))
	require.NoError(t, err)

	assert.Equal(t, []string{"b"}, m.Origins())
	assert.Equal(t, []string{"a", "z"}, m.Targets("b"))
}

func TestMatrix_ReturnsCopies(t *testing.T) {
	b := demand.NewBuilder()
	require.NoError(t, b.Add("o", "d", 1))
	m := b.Build()

	ds := m.Destinations("o")
	ds[0].Volume = 100
	origins := m.Origins()
	origins[0] = "x"

	assert.Equal(t, 1.0, m.Volume("o", "d"))
	assert.Equal(t, []string{"o"}, m.Origins())
}
