// SPDX-License-Identifier: MIT
// Package: roadflow/builder
//
// impl_random_sparse.go: implementation of RandomSparse(n, p) constructor.
//
// Contract:
//   • n ≥ 1 (else ErrTooFewVertices); p ∈ [0,1] (else ErrInvalidProbability).
//   • For 0 < p < 1 a seeded RNG is required (else ErrNeedRandSource).
//   • Vertices via cfg.idFn in ascending order; ordered pairs (i,j), i≠j,
//     scanned i asc then j asc, each kept with probability p.
//   • Cost draws share cfg.rng, so a seed fixes topology and costs together.
//
// Complexity: O(n²) pair checks.

package builder

import (
	"fmt"

	"github.com/katalvlaran/roadflow/core"
)

const (
	methodRandomSparse      = "RandomSparse"
	minRandomSparseVertices = 1
	probMin                 = 0.0
	probMax                 = 1.0
)

// RandomSparse returns a Constructor for a seeded random directed network.
func RandomSparse(n int, p float64) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if n < minRandomSparseVertices {
			return fmt.Errorf("%s: n=%d < min=%d: %w",
				methodRandomSparse, n, minRandomSparseVertices, ErrTooFewVertices)
		}
		if p < probMin || p > probMax {
			return fmt.Errorf("%s: p=%.6f not in [%.1f,%.1f]: %w",
				methodRandomSparse, p, probMin, probMax, ErrInvalidProbability)
		}
		if cfg.rng == nil && p > probMin && p < probMax {
			return fmt.Errorf("%s: rng is required: %w", methodRandomSparse, ErrNeedRandSource)
		}

		for i := 0; i < n; i++ {
			if err := g.AddVertex(cfg.idFn(i)); err != nil {
				return fmt.Errorf("%s: AddVertex(%s): %w", methodRandomSparse, cfg.idFn(i), err)
			}
		}

		rng := cfg.rng
		for i := 0; i < n; i++ {
			u := cfg.idFn(i)
			for j := 0; j < n; j++ {
				if i == j {
					continue
				}
				keep := p == probMax
				if rng != nil && p > probMin && p < probMax {
					keep = rng.Float64() <= p
				}
				if !keep {
					continue
				}
				if err := addRoad(g, cfg, methodRandomSparse, u, cfg.idFn(j), cfg.costFn(rng)); err != nil {
					return err
				}
			}
		}

		return nil
	}
}
