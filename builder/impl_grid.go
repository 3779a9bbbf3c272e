// SPDX-License-Identifier: MIT
// Package: roadflow/builder
//
// impl_grid.go: implementation of Grid(rows, cols) constructor.
//
// Canonical model:
//   • 2D orthogonal street grid with 4-neighborhood.
//   • Vertex IDs use the fixed scheme "r,c" (row-major order), a deliberate
//     exception to cfg.idFn to keep coordinates explicit.
//   • Vertex (r,c) is located at origin + (c·step, r·step) in lon/lat degrees.
//
// Contract:
//   • rows ≥ 1 and cols ≥ 1 (else ErrTooFewVertices).
//   • For each (r,c) emit Right then Bottom if present, each as the pair
//     u→v, v→u (two-way streets).
//   • Free-flow cost per road: cfg.costFn(cfg.rng), shared by both directions.
//
// Complexity: O(rows*cols) vertices and roads.

package builder

import (
	"fmt"

	"github.com/paulmach/orb"

	"github.com/katalvlaran/roadflow/core"
)

const (
	methodGrid = "Grid"
	minGridDim = 1
	gridIDFmt  = "%d,%d" // "r,c"
)

// Grid returns a Constructor that builds a rows×cols two-way street grid.
func Grid(rows, cols int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if rows < minGridDim || cols < minGridDim {
			return fmt.Errorf("%s: rows=%d, cols=%d (each must be ≥ %d): %w",
				methodGrid, rows, cols, minGridDim, ErrTooFewVertices)
		}

		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				id := fmt.Sprintf(gridIDFmt, r, c)
				p := orb.Point{cfg.origin.Lon() + float64(c)*cfg.stepDeg, cfg.origin.Lat() + float64(r)*cfg.stepDeg}
				if err := g.AddVertex(id, core.WithPoint(p)); err != nil {
					return fmt.Errorf("%s: AddVertex(%s): %w", methodGrid, id, err)
				}
			}
		}

		twoWay := func(u, v string) error {
			cost := cfg.costFn(cfg.rng)
			if err := addRoad(g, cfg, methodGrid, u, v, cost); err != nil {
				return err
			}

			return addRoad(g, cfg, methodGrid, v, u, cost)
		}
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				u := fmt.Sprintf(gridIDFmt, r, c)
				if c+1 < cols {
					if err := twoWay(u, fmt.Sprintf(gridIDFmt, r, c+1)); err != nil {
						return err
					}
				}
				if r+1 < rows {
					if err := twoWay(u, fmt.Sprintf(gridIDFmt, r+1, c)); err != nil {
						return err
					}
				}
			}
		}

		return nil
	}
}
