package builder_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/roadflow/builder"
)

// TestCostFnConstructors verifies that CostFn constructors panic on invalid
// parameters.
func TestCostFnConstructors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		constructor func() builder.CostFn
	}{
		{"ConstantCostFn_negative", func() builder.CostFn { return builder.ConstantCostFn(-1) }},
		{"UniformCostFn_minNegative", func() builder.CostFn { return builder.UniformCostFn(-1, 5) }},
		{"UniformCostFn_maxLessThanMin", func() builder.CostFn { return builder.UniformCostFn(5, 4) }},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assertPanics(t, func() { tc.constructor() }, tc.name)
		})
	}
}

// TestCostFnBehavior covers the runtime behavior of each CostFn.
func TestCostFnBehavior(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))

	if c := builder.DefaultCostFn(rng); c != builder.DefaultFreeFlowCost {
		t.Errorf("DefaultCostFn: expected %g, got %g", builder.DefaultFreeFlowCost, c)
	}

	const constVal = 7.0
	if c := builder.ConstantCostFn(constVal)(rng); c != constVal {
		t.Errorf("ConstantCostFn: expected %g, got %g", constVal, c)
	}

	uni := builder.UniformCostFn(2, 5)
	if c := uni(nil); c != 2 {
		t.Errorf("UniformCostFn(nil RNG): expected min 2, got %g", c)
	}
	for i := 0; i < 100; i++ {
		if c := uni(rng); c < 2 || c > 5 {
			t.Fatalf("UniformCostFn: expected in [2,5], got %g", c)
		}
	}
}
