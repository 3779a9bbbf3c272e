// SPDX-License-Identifier: MIT
// Package: roadflow/builder
//
// config.go: internal configuration and deterministic defaults.
//
// Deterministic defaults:
//   • idFn          = DefaultIDFn     ("0","1","2",...)
//   • rng           = nil             (pure/deterministic unless seeded)
//   • costFn        = DefaultCostFn   (free-flow cost 1)
//   • lengthKm      = 1
//   • capacity      = 10
//   • uniformFactor = 1
//   • origin        = (0,0), step 0.01° (Grid coordinates)

package builder

import (
	"math/rand"

	"github.com/paulmach/orb"
)

// builderConfig aggregates all knobs used by constructors.
// It is passed by VALUE to constructors.
type builderConfig struct {
	idFn   func(int) string
	rng    *rand.Rand
	costFn CostFn

	lengthKm      float64
	capacity      float64
	uniformFactor float64

	origin  orb.Point
	stepDeg float64
}

const (
	defaultLengthKm      = 1.0
	defaultCapacity      = 10.0
	defaultUniformFactor = 1.0
	defaultStepDeg       = 0.01
)

// newBuilderConfig constructs a config with deterministic defaults and applies
// all options in order.
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		idFn:          DefaultIDFn,
		costFn:        DefaultCostFn,
		lengthKm:      defaultLengthKm,
		capacity:      defaultCapacity,
		uniformFactor: defaultUniformFactor,
		stepDeg:       defaultStepDeg,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}
