// SPDX-License-Identifier: MIT
// Package: roadflow/builder
//
// impl_parallel.go: implementation of Parallel(costs...) constructor.
//
// Canonical model:
//   • Vertices "S", "P0".."Pk-1", "T", added in that order.
//   • Route i is S→Pi with free-flow cost costs[i], then Pi→T with cost 0.
//   • Roads are emitted route by route, so route i owns EdgeIDs 2i and 2i+1.
//
// Competing routes with unequal costs are the smallest network on which
// congestion feedback changes the chosen path between fractions.

package builder

import (
	"fmt"

	"github.com/katalvlaran/roadflow/core"
)

const (
	methodParallel = "Parallel"
	minRoutes      = 1

	// ParallelSource and ParallelSink are the fixed endpoint IDs.
	ParallelSource = "S"
	ParallelSink   = "T"
)

// ParallelVia returns the ID of the intermediate vertex on route i.
func ParallelVia(i int) string { return fmt.Sprintf("P%d", i) }

// Parallel returns a Constructor for len(costs) competing S→T routes.
func Parallel(costs ...float64) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if len(costs) < minRoutes {
			return fmt.Errorf("%s: %d routes < min=%d: %w", methodParallel, len(costs), minRoutes, ErrTooFewVertices)
		}
		ids := make([]string, 0, len(costs)+2)
		ids = append(ids, ParallelSource)
		for i := range costs {
			ids = append(ids, ParallelVia(i))
		}
		ids = append(ids, ParallelSink)
		for _, id := range ids {
			if err := g.AddVertex(id); err != nil {
				return fmt.Errorf("%s: AddVertex(%s): %w", methodParallel, id, err)
			}
		}
		for i, c := range costs {
			if err := addRoad(g, cfg, methodParallel, ParallelSource, ParallelVia(i), c); err != nil {
				return err
			}
			if err := addRoad(g, cfg, methodParallel, ParallelVia(i), ParallelSink, 0); err != nil {
				return err
			}
		}

		return nil
	}
}
