// SPDX-License-Identifier: MIT

package bfs_test

import (
	"fmt"

	"github.com/katalvlaran/roadflow/bfs"
	"github.com/katalvlaran/roadflow/builder"
	"github.com/katalvlaran/roadflow/core"
)

// ExampleBFS_gridTraversal demonstrates BFS layering on a 3×3 street grid.
// The start "0,0" comes first, then its two neighbours, then the next frontier.
func ExampleBFS_gridTraversal() {
	g, err := builder.BuildGraph(nil, nil, builder.Grid(3, 3))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	s, _ := g.Snapshot(core.AttrLength)

	res, err := bfs.BFS(s, "0,0")
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(res.Order)
	fmt.Println(res.Depth["2,2"])
	// Output:
	// [0,0 0,1 1,0 0,2 1,1 2,0 1,2 2,1 2,2]
	// 4
}
