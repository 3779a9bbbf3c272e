// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/roadflow/config"
)

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	recs, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	return recs
}

func TestAssignWritesOutputs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "edges.csv", "from,to,dist_km,free_flow_time_m,capacity\nA,B,1,1,10\nB,C,1,1,10\n")
	writeFile(t, dir, "od.csv", "o,d,flow\nA,C,20\n")
	writeFile(t, dir, "roadflow.toml", `
[run]
schedule = [1.0]
capture_path_detail = true
workers = 2

[output]
edges = "out/edges.csv"
nodes = "out/nodes.csv"
detail = "out/detail.csv"
`)
	cfg, err := config.Load(filepath.Join(dir, "roadflow.toml"))
	require.NoError(t, err)

	log, hook := test.NewNullLogger()
	require.NoError(t, assign(context.Background(), cfg, log))
	assert.NotEmpty(t, hook.AllEntries())

	edges := readCSV(t, filepath.Join(dir, "out", "edges.csv"))
	require.Len(t, edges, 3)
	assert.Equal(t, "20", edges[1][8])  // flow
	assert.Equal(t, "3.4", edges[1][9]) // congested_time_m

	nodes := readCSV(t, filepath.Join(dir, "out", "nodes.csv"))
	require.Len(t, nodes, 4)

	detail := readCSV(t, filepath.Join(dir, "out", "detail.csv"))
	require.Len(t, detail, 2)
	assert.Equal(t, []string{"A", "C", "20"}, detail[1][:3])
}

func TestAssignMissingInput(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "roadflow.toml", "[input]\nedges = \"nope.csv\"\n")
	cfg, err := config.Load(filepath.Join(dir, "roadflow.toml"))
	require.NoError(t, err)

	log, _ := test.NewNullLogger()
	assert.Error(t, assign(context.Background(), cfg, log))
}

func TestAssignParallelLinks(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "edges.csv", "from,to,free_flow_time_m,capacity\nA,B,1,10\nA,B,2,10\n")
	writeFile(t, dir, "od.csv", "o,d,flow\nA,B,5\n")
	writeFile(t, dir, "roadflow.toml", "[input]\nmulti_edges = true\n")
	cfg, err := config.Load(filepath.Join(dir, "roadflow.toml"))
	require.NoError(t, err)

	log, _ := test.NewNullLogger()
	require.NoError(t, assign(context.Background(), cfg, log))

	edges := readCSV(t, filepath.Join(dir, "edges_out.csv"))
	require.Len(t, edges, 3)
	assert.Equal(t, "5", edges[1][8])
	assert.Equal(t, "0", edges[2][8])

	cfg.Input.MultiEdges = false
	assert.Error(t, assign(context.Background(), cfg, log))
}
