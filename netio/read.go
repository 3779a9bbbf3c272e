// SPDX-License-Identifier: MIT
//
// Package netio reads road networks and OD tables from CSV and writes
// assignment results back to CSV.
//
// Columns are matched by header name, in any order; unknown columns are
// ignored. Network files use the canonical attribute names of core
// (dist_km, free_flow_time_m, uniform_time_m, cost_time_m, capacity).
//
//	nodes: id[,lon,lat][,layer]
//	edges: from,to[,dist_km][,free_flow_time_m][,uniform_time_m][,cost_time_m][,capacity]
//	od:    o,d,flow
//
// A blank dist_km between two located nodes is filled with their haversine
// distance.
package netio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"github.com/katalvlaran/roadflow/core"
	"github.com/katalvlaran/roadflow/demand"
)

var (
	// ErrMissingColumn indicates a required header is absent.
	ErrMissingColumn = errors.New("netio: missing column")

	// ErrBadRecord indicates an unparsable field.
	ErrBadRecord = errors.New("netio: bad record")
)

// table is a header-indexed CSV reader.
type table struct {
	name string
	r    *csv.Reader
	h    map[string]int
	row  []string
}

func newTable(name string, r io.Reader, required ...string) (*table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("netio: read %s header: %w", name, err)
	}
	t := &table{name: name, r: cr, h: headerIndex(header)}
	for _, col := range required {
		if _, ok := t.h[col]; !ok {
			return nil, fmt.Errorf("%w: %s needs %q", ErrMissingColumn, name, col)
		}
	}

	return t, nil
}

func headerIndex(hdr []string) map[string]int {
	m := make(map[string]int, len(hdr))
	for i, k := range hdr {
		m[strings.TrimSpace(strings.TrimPrefix(k, "\ufeff"))] = i
	}

	return m
}

// next advances to the next row; false at EOF.
func (t *table) next() (bool, error) {
	row, err := t.r.Read()
	if err == io.EOF {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("netio: read %s: %w", t.name, err)
	}
	t.row = row

	return true, nil
}

func (t *table) line() int {
	line, _ := t.r.FieldPos(0)

	return line
}

func (t *table) get(col string) string {
	i, ok := t.h[col]
	if !ok || i >= len(t.row) {
		return ""
	}

	return strings.TrimSpace(t.row[i])
}

// float parses col; blank yields (0, false, nil).
func (t *table) float(col string) (float64, bool, error) {
	s := t.get(col)
	if s == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %s line %d %s=%q", ErrBadRecord, t.name, t.line(), col, s)
	}

	return v, true, nil
}

// ReadNodes adds the vertices of a node table to g, in file order.
func ReadNodes(g *core.Graph, r io.Reader) (int, error) {
	t, err := newTable("nodes", r, "id")
	if err != nil {
		return 0, err
	}
	n := 0
	for {
		ok, err := t.next()
		if err != nil {
			return n, err
		}
		if !ok {
			return n, nil
		}
		var opts []core.VertexOption
		lon, hasLon, err := t.float("lon")
		if err != nil {
			return n, err
		}
		lat, hasLat, err := t.float("lat")
		if err != nil {
			return n, err
		}
		if hasLon && hasLat {
			opts = append(opts, core.WithPoint(orb.Point{lon, lat}))
		}
		if layer := t.get("layer"); layer != "" {
			opts = append(opts, core.WithLayer(layer))
		}
		id := t.get("id")
		if err := g.AddVertex(id, opts...); err != nil {
			return n, fmt.Errorf("netio: nodes line %d: %w", t.line(), err)
		}
		n++
	}
}

var edgeColumns = []struct {
	attr core.Attribute
	with func(float64) core.EdgeOption
}{
	{core.AttrFreeFlowCost, core.WithFreeFlowCost},
	{core.AttrUniformCost, core.WithUniformCost},
	{core.AttrCost, core.WithCost},
	{core.AttrCapacity, core.WithCapacity},
}

// ReadEdges adds the roads of an edge table to g, in file order, so EdgeIDs
// follow row order.
func ReadEdges(g *core.Graph, r io.Reader) (int, error) {
	t, err := newTable("edges", r, "from", "to")
	if err != nil {
		return 0, err
	}
	n := 0
	for {
		ok, err := t.next()
		if err != nil {
			return n, err
		}
		if !ok {
			return n, nil
		}
		from, to := t.get("from"), t.get("to")

		opts := make([]core.EdgeOption, 0, len(edgeColumns)+1)
		for _, c := range edgeColumns {
			v, _, err := t.float(c.attr.String())
			if err != nil {
				return n, err
			}
			opts = append(opts, c.with(v))
		}
		km, has, err := t.float(core.AttrLength.String())
		if err != nil {
			return n, err
		}
		if !has {
			km = fallbackLength(g, from, to)
		}
		opts = append(opts, core.WithLength(km))

		if _, err := g.AddEdge(from, to, opts...); err != nil {
			return n, fmt.Errorf("netio: edges line %d: %w", t.line(), err)
		}
		n++
	}
}

// fallbackLength is the haversine distance in km between two located
// vertices, 0 otherwise.
func fallbackLength(g *core.Graph, from, to string) float64 {
	a, errA := g.Vertex(from)
	b, errB := g.Vertex(to)
	if errA != nil || errB != nil || !a.Located || !b.Located {
		return 0
	}

	return geo.DistanceHaversine(a.Point, b.Point) / 1000
}

// ReadNetwork builds a graph from an optional node table and an edge table.
func ReadNetwork(nodes, edges io.Reader, opts ...core.GraphOption) (*core.Graph, error) {
	g := core.NewGraph(opts...)
	if nodes != nil {
		if _, err := ReadNodes(g, nodes); err != nil {
			return nil, err
		}
	}
	if _, err := ReadEdges(g, edges); err != nil {
		return nil, err
	}

	return g, nil
}

// LoadNetwork is ReadNetwork over files. An empty nodesPath skips nodes.
func LoadNetwork(nodesPath, edgesPath string, opts ...core.GraphOption) (*core.Graph, error) {
	var nodes io.Reader
	if nodesPath != "" {
		f, err := os.Open(nodesPath)
		if err != nil {
			return nil, fmt.Errorf("netio: %w", err)
		}
		defer f.Close()
		nodes = f
	}
	f, err := os.Open(edgesPath)
	if err != nil {
		return nil, fmt.Errorf("netio: %w", err)
	}
	defer f.Close()

	return ReadNetwork(nodes, f, opts...)
}

// ReadOD reads o,d,flow triples. Row order defines origin and destination
// order; repeated pairs sum.
func ReadOD(r io.Reader, opts ...demand.Option) (*demand.Matrix, error) {
	t, err := newTable("od", r, "o", "d", "flow")
	if err != nil {
		return nil, err
	}
	b := demand.NewBuilder(opts...)
	for {
		ok, err := t.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return b.Build(), nil
		}
		v, _, err := t.float("flow")
		if err != nil {
			return nil, err
		}
		if err := b.Add(t.get("o"), t.get("d"), v); err != nil {
			return nil, fmt.Errorf("netio: od line %d: %w", t.line(), err)
		}
	}
}

// LoadOD is ReadOD over a file.
func LoadOD(path string, opts ...demand.Option) (*demand.Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("netio: %w", err)
	}
	defer f.Close()

	return ReadOD(f, opts...)
}
