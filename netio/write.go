// SPDX-License-Identifier: MIT

package netio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/katalvlaran/roadflow/core"
	"github.com/katalvlaran/roadflow/detail"
)

// EdgeHeader is the column order of WriteEdges.
var EdgeHeader = []string{
	"id", "from", "to",
	core.AttrLength.String(),
	core.AttrFreeFlowCost.String(),
	core.AttrUniformCost.String(),
	core.AttrCost.String(),
	core.AttrCapacity.String(),
	core.AttrFlow.String(),
	core.AttrCongestedCost.String(),
	core.AttrGradient.String(),
}

// NodeHeader is the column order of WriteNodes.
var NodeHeader = []string{"id", "lon", "lat", "layer", "throughput"}

// DetailHeader is the column order of WriteDetail.
var DetailHeader = []string{
	"origin", "destination", "flow", "dist_km", "uniform_time_m", "free_flow_time_m",
	"congested_time_m", "base_cost", "gamma", "gradient",
}

func ftoa(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

func writeAll(w io.Writer, header []string, n int, row func(i int) []string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("netio: write header: %w", err)
	}
	for i := 0; i < n; i++ {
		if err := cw.Write(row(i)); err != nil {
			return fmt.Errorf("netio: write row %d: %w", i, err)
		}
	}
	cw.Flush()

	return cw.Error()
}

// WriteEdges writes static attributes and assignment state of edges.
func WriteEdges(w io.Writer, edges []core.Edge) error {
	return writeAll(w, EdgeHeader, len(edges), func(i int) []string {
		e := edges[i]

		return []string{
			strconv.Itoa(int(e.ID)), e.From, e.To,
			ftoa(e.Length), ftoa(e.FreeFlowCost), ftoa(e.UniformCost), ftoa(e.Cost), ftoa(e.Capacity),
			ftoa(e.Flow), ftoa(e.CongestedCost), ftoa(e.Gradient),
		}
	})
}

// WriteNodes writes vertices with their throughput. Unlocated vertices get
// blank coordinates.
func WriteNodes(w io.Writer, vertices []core.Vertex) error {
	return writeAll(w, NodeHeader, len(vertices), func(i int) []string {
		v := vertices[i]
		lon, lat := "", ""
		if v.Located {
			lon, lat = ftoa(v.Point.Lon()), ftoa(v.Point.Lat())
		}

		return []string{v.ID, lon, lat, v.Layer, ftoa(v.Throughput)}
	})
}

// WriteDetail writes aggregated OD rows. An undefined gamma is a blank field.
func WriteDetail(w io.Writer, rows []detail.Row) error {
	return writeAll(w, DetailHeader, len(rows), func(i int) []string {
		r := rows[i]
		gamma := ""
		if r.Gamma.Valid {
			gamma = ftoa(r.Gamma.Value)
		}

		return []string{
			r.Origin, r.Destination, ftoa(r.Flow), ftoa(r.Length), ftoa(r.UniformCost),
			ftoa(r.FreeFlowCost), ftoa(r.CongestedCost), ftoa(r.BaseCost), gamma, ftoa(r.Gradient),
		}
	})
}

// SaveFile creates path (and its directory) and hands it to write.
func SaveFile(path string, write func(io.Writer) error) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("netio: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("netio: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("netio: %w", cerr)
		}
	}()

	return write(f)
}
