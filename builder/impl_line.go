// SPDX-License-Identifier: MIT
// Package: roadflow/builder
//
// impl_line.go - implementation of Line(n) constructor.
//
// Contract:
//   - n ≥ 2 (else ErrTooFewVertices).
//   - Adds vertices via cfg.idFn in ascending index order (0..n-1).
//   - Emits roads (i-1) → i for i=1..n-1 in increasing order; EdgeID i-1.
//   - Free-flow cost per road: cfg.costFn(cfg.rng).

package builder

import (
	"fmt"

	"github.com/katalvlaran/roadflow/core"
)

const (
	methodLine   = "Line"
	minLineNodes = 2
)

// Line returns a Constructor for a one-way corridor of n vertices.
func Line(n int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if n < minLineNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodLine, n, minLineNodes, ErrTooFewVertices)
		}
		for i := 0; i < n; i++ {
			if err := g.AddVertex(cfg.idFn(i)); err != nil {
				return fmt.Errorf("%s: AddVertex(%s): %w", methodLine, cfg.idFn(i), err)
			}
		}
		for i := 1; i < n; i++ {
			if err := addRoad(g, cfg, methodLine, cfg.idFn(i-1), cfg.idFn(i), cfg.costFn(cfg.rng)); err != nil {
				return err
			}
		}

		return nil
	}
}
