// SPDX-License-Identifier: MIT
// Package: roadflow/builder
//
// weight_fn.go: free-flow cost distributions for generated roads.

package builder

import (
	"fmt"
	"math/rand"
)

// DefaultFreeFlowCost is the cost of every road unless a CostFn says otherwise.
const DefaultFreeFlowCost float64 = 1

// CostFn draws one free-flow cost. rng may be nil.
type CostFn func(rng *rand.Rand) float64

// DefaultCostFn always returns DefaultFreeFlowCost.
func DefaultCostFn(_ *rand.Rand) float64 {
	return DefaultFreeFlowCost
}

// ConstantCostFn returns value for every road. Panics on negative value.
func ConstantCostFn(value float64) CostFn {
	if value < 0 {
		panic(fmt.Sprintf("ConstantCostFn: value must be ≥ 0, got %g", value))
	}

	return func(_ *rand.Rand) float64 { return value }
}

// UniformCostFn draws from U[min,max]; with a nil rng it returns min.
// Panics unless 0 ≤ min ≤ max.
func UniformCostFn(min, max float64) CostFn {
	if min < 0 || max < min {
		panic(fmt.Sprintf("UniformCostFn: require 0 ≤ min ≤ max, got min=%g, max=%g", min, max))
	}

	return func(rng *rand.Rand) float64 {
		if rng == nil {
			return min
		}

		return min + rng.Float64()*(max-min)
	}
}

// WithConstantCost sets a fixed free-flow cost via ConstantCostFn.
func WithConstantCost(c float64) BuilderOption {
	return WithCostFn(ConstantCostFn(c))
}

// WithUniformCost sets free-flow costs ∼ U[min,max] via UniformCostFn.
func WithUniformCost(min, max float64) BuilderOption {
	return WithCostFn(UniformCostFn(min, max))
}
