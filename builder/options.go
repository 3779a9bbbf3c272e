// SPDX-License-Identifier: MIT
// Package: roadflow/builder
//
// options.go: functional options for the builder package.
//
// Contract:
//   • Options are functional (type BuilderOption func(*builderConfig)).
//   • Option constructors VALIDATE and PANIC on meaningless inputs.
//     Constructors themselves never panic.
//   • Determinism is explicit: seeding is done via WithSeed or WithRand.

package builder

import (
	"math"
	"math/rand"

	"github.com/paulmach/orb"
)

// BuilderOption customizes a builderConfig before construction begins.
type BuilderOption func(*builderConfig)

// WithIDScheme sets the deterministic vertex ID generator: idx -> string.
// Panics on nil.
func WithIDScheme(fn func(int) string) BuilderOption {
	if fn == nil {
		panic("builder: WithIDScheme(nil)")
	}

	return func(c *builderConfig) { c.idFn = fn }
}

// WithRand provides an explicit RNG for stochastic builders. Panics on nil.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}

	return func(c *builderConfig) { c.rng = r }
}

// WithSeed creates a new *rand.Rand with the given seed.
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) { c.rng = rand.New(rand.NewSource(seed)) }
}

// WithCostFn overrides the per-road free-flow cost generator. Panics on nil.
func WithCostFn(fn CostFn) BuilderOption {
	if fn == nil {
		panic("builder: WithCostFn(nil)")
	}

	return func(c *builderConfig) { c.costFn = fn }
}

// WithRoadLength sets the length in km of every generated road.
// Panics on negative or non-finite values.
func WithRoadLength(km float64) BuilderOption {
	if !(km >= 0) || math.IsInf(km, 1) {
		panic("builder: WithRoadLength(km<0)")
	}

	return func(c *builderConfig) { c.lengthKm = km }
}

// WithRoadCapacity sets the capacity of every generated road. Zero and
// negative values are accepted so that rejection paths can be fixtured.
// Panics on NaN.
func WithRoadCapacity(capacity float64) BuilderOption {
	if math.IsNaN(capacity) {
		panic("builder: WithRoadCapacity(NaN)")
	}

	return func(c *builderConfig) { c.capacity = capacity }
}

// WithUniformFactor sets UniformCost = factor · FreeFlowCost.
// Panics on negative values.
func WithUniformFactor(factor float64) BuilderOption {
	if !(factor >= 0) {
		panic("builder: WithUniformFactor(factor<0)")
	}

	return func(c *builderConfig) { c.uniformFactor = factor }
}

// WithOrigin places Grid cell (0,0) at p with step degrees between cells.
// Panics if step ≤ 0.
func WithOrigin(p orb.Point, step float64) BuilderOption {
	if !(step > 0) {
		panic("builder: WithOrigin(step<=0)")
	}

	return func(c *builderConfig) {
		c.origin = p
		c.stepDeg = step
	}
}
