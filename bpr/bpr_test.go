package bpr

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCost(t *testing.T) {
	p := DefaultParams()
	cases := []struct {
		name                 string
		base, flow, capacity float64
		want                 float64
	}{
		{"free flow", 1, 0, 10, 1},
		{"at capacity", 1, 10, 10, 1.15},
		{"double capacity", 1, 20, 10, 3.4},
		{"zero base", 0, 50, 10, 0},
		{"scaled base", 2.5, 5, 10, 2.5 * (1 + 0.15*0.0625)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Cost(tc.base, tc.flow, tc.capacity, p)
			assert.InDelta(t, tc.want, got, 1e-12)
			assert.GreaterOrEqual(t, got, tc.base)
		})
	}
}

func TestCost_MonotoneInFlow(t *testing.T) {
	p := Params{A: 0.5, B: 2}
	prev := Cost(3, 0, 7, p)
	for f := 0.5; f < 100; f += 0.5 {
		c := Cost(3, f, 7, p)
		require.GreaterOrEqual(t, c, prev, "flow=%g", f)
		prev = c
	}
}

func TestGradient(t *testing.T) {
	p := DefaultParams()
	assert.Zero(t, Gradient(1, 0, 10, p))
	// a·b·(20/10)^4·1 = 0.15·4·16
	assert.InDelta(t, 9.6, Gradient(1, 20, 10, p), 1e-12)
	assert.InDelta(t, 0.6*2, Gradient(2, 10, 10, p), 1e-12)
}

func TestParams_Validate(t *testing.T) {
	require.NoError(t, DefaultParams().Validate())
	for _, p := range []Params{{0, 4}, {0.15, 0}, {-1, 4}, {0.15, math.NaN()}, {math.Inf(1), 4}} {
		err := p.Validate()
		require.ErrorIs(t, err, ErrBadShape, "%+v", p)
	}
}

func TestCheckCapacity(t *testing.T) {
	require.NoError(t, CheckCapacity(0.001))
	for _, c := range []float64{0, -5, math.NaN(), math.Inf(1)} {
		require.ErrorIs(t, CheckCapacity(c), ErrZeroCapacity, "capacity=%g", c)
	}

	var err error = &CapacityError{Edge: 3, From: "A", To: "B", Capacity: 0}
	assert.True(t, errors.Is(fmt.Errorf("wrapped: %w", err), ErrZeroCapacity))
	assert.Contains(t, err.Error(), "A→B")
}

func TestCheckLoad(t *testing.T) {
	p := DefaultParams()
	require.NoError(t, CheckLoad(1, 20, 10, p))
	require.NoError(t, CheckLoad(0, 10, 1e-100, p), "zero base stays zero")
	assert.Zero(t, Cost(0, 10, 1e-100, p))
	assert.Zero(t, Gradient(0, 10, 1e-100, p))

	err := CheckLoad(1, 10, 1e-100, p)
	require.ErrorIs(t, err, ErrOverflow)
	assert.True(t, math.IsInf(Cost(1, 10, 1e-100, p), 1))

	// at capacity the gradient carries a factor b the cost lacks
	steep := Params{A: 1, B: 100}
	assert.False(t, math.IsInf(Cost(1e307, 1, 1, steep), 0))
	require.ErrorIs(t, CheckLoad(1e307, 1, 1, steep), ErrOverflow)
}

func ExampleCost() {
	p := DefaultParams()
	fmt.Printf("%.2f\n", Cost(1, 20, 10, p))
	fmt.Printf("%.2f\n", Gradient(1, 20, 10, p))
	// Output:
	// 3.40
	// 9.60
}
