// SPDX-License-Identifier: MIT

package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/roadflow/config"
	"github.com/katalvlaran/roadflow/core"
	"github.com/katalvlaran/roadflow/ita"
)

const sample = `
[run]
base_cost_attribute = "cost_time_m"
schedule = [0.5, 0.5]
a = 0.2
b = 2.0
demand_scale = 0.25
capture_path_detail = true
workers = 3

[input]
edges = "net/edges.csv"
od = "/abs/od.csv"
od_epsilon = 0.001

[output]
detail = "detail.csv"

[log]
level = "debug"

[server]
addr = ":9090"
colour = "blue"
`

func TestDecode(t *testing.T) {
	cfg, err := config.Decode(strings.NewReader(sample))
	require.NoError(t, err)

	assert.Equal(t, "cost_time_m", cfg.Run.BaseCost)
	assert.Equal(t, []float64{0.5, 0.5}, cfg.Run.Schedule)
	assert.True(t, cfg.Run.PathDetail)
	assert.Equal(t, 0.001, cfg.Input.ODEpsilon)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, []string{"server.colour"}, cfg.Undecoded)

	// untouched keys keep their defaults
	def := config.Default()
	assert.Equal(t, def.Input.Nodes, cfg.Input.Nodes)
	assert.Equal(t, def.Output.Edges, cfg.Output.Edges)
	assert.Equal(t, def.Log.MaxSizeMB, cfg.Log.MaxSizeMB)
}

func TestDefaultIsValid(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())

	o, err := cfg.Options()
	require.NoError(t, err)
	def := ita.DefaultOptions()
	assert.Equal(t, def.Schedule, o.Schedule)
	assert.Equal(t, def.BPR, o.BPR)
	assert.Equal(t, def.BaseCost, o.BaseCost)
	assert.Nil(t, o.Logger)
}

func TestRunOptions(t *testing.T) {
	cfg, err := config.Decode(strings.NewReader(sample))
	require.NoError(t, err)

	l, _ := test.NewNullLogger()
	opts, err := cfg.RunOptions(ita.WithLogger(l))
	require.NoError(t, err)

	o := ita.DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	assert.Equal(t, core.AttrCost, o.BaseCost)
	assert.Equal(t, []float64{0.5, 0.5}, o.Schedule)
	assert.Equal(t, 0.2, o.BPR.A)
	assert.Equal(t, 2.0, o.BPR.B)
	assert.Equal(t, 0.25, o.DemandScale)
	assert.True(t, o.PathDetail)
	assert.Equal(t, 3, o.Workers)
	assert.Same(t, l, o.Logger)
}

func TestDecodeInvalid(t *testing.T) {
	tests := []struct {
		name string
		toml string
		want error
	}{
		{"schedule sum", "[run]\nschedule = [0.5, 0.4]", ita.ErrScheduleSum},
		{"empty schedule", "[run]\nschedule = []", ita.ErrEmptySchedule},
		{"bpr shape", "[run]\na = 0.0", ita.ErrConfig},
		{"workers", "[run]\nworkers = 0", ita.ErrBadWorkers},
		{"dynamic base", "[run]\nbase_cost_attribute = \"flow\"", core.ErrUnknownAttribute},
		{"unknown base", "[run]\nbase_cost_attribute = \"speed\"", config.ErrInvalid},
		{"epsilon", "[input]\nod_epsilon = -1.0", config.ErrInvalid},
		{"edges", "[input]\nedges = \"\"", config.ErrInvalid},
		{"level", "[log]\nlevel = \"loud\"", config.ErrInvalid},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := config.Decode(strings.NewReader(tc.toml))
			assert.ErrorIs(t, err, tc.want)
		})
	}

	_, err := config.Decode(strings.NewReader("[run\n"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "roadflow.toml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "net", "edges.csv"), cfg.Input.Edges)
	assert.Empty(t, cfg.Input.Nodes)
	assert.Equal(t, "/abs/od.csv", cfg.Input.OD)
	assert.Equal(t, filepath.Join(dir, "detail.csv"), cfg.Output.Detail)
	assert.Empty(t, cfg.Log.File)

	_, err = config.Load(filepath.Join(dir, "missing.toml"))
	assert.ErrorIs(t, err, config.ErrNotFound)
}

func TestGraphOptions(t *testing.T) {
	cfg := config.Default()
	assert.Empty(t, cfg.GraphOptions())

	dec, err := config.Decode(strings.NewReader("[input]\nmulti_edges = true\n"))
	require.NoError(t, err)
	require.True(t, dec.Input.MultiEdges)

	g := core.NewGraph(dec.GraphOptions()...)
	_, err = g.AddEdge("A", "B", core.WithCapacity(1))
	require.NoError(t, err)
	_, err = g.AddEdge("A", "B", core.WithCapacity(2))
	require.NoError(t, err)
	assert.Equal(t, 2, g.EdgeCount())
}
