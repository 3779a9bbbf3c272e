// SPDX-License-Identifier: MIT
//
// Package config loads the TOML configuration of the roadflow binary and turns
// it into ita options, netio inputs and logging settings.
//
// Keys absent from the file keep the values of Default; unknown keys are
// collected in Config.Undecoded so the caller can warn once logging is up.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/roadflow/core"
	"github.com/katalvlaran/roadflow/demand"
	"github.com/katalvlaran/roadflow/ita"
)

// DefaultPath is used when no path is given on the command line or in the
// environment.
const DefaultPath = "roadflow.toml"

var (
	// ErrNotFound indicates a missing configuration file.
	ErrNotFound = errors.New("config: file not found")

	// ErrInvalid indicates a value that decodes but cannot be used.
	ErrInvalid = errors.New("config: invalid value")
)

// Config mirrors the file layout.
type Config struct {
	Run    RunConfig    `toml:"run"`
	Input  InputConfig  `toml:"input"`
	Output OutputConfig `toml:"output"`
	Log    LogConfig    `toml:"log"`
	Server ServerConfig `toml:"server"`

	// Undecoded lists keys present in the file but unknown to Config.
	Undecoded []string `toml:"-"`
}

// RunConfig holds the assignment parameters.
type RunConfig struct {
	BaseCost    string    `toml:"base_cost_attribute"`
	Schedule    []float64 `toml:"schedule"`
	A           float64   `toml:"a"`
	B           float64   `toml:"b"`
	DemandScale float64   `toml:"demand_scale"`
	PathDetail  bool      `toml:"capture_path_detail"`
	Workers     int       `toml:"workers"`
	SpoolDir    string    `toml:"spool_dir"`
}

// InputConfig names the network and demand files. Nodes is optional.
type InputConfig struct {
	Nodes     string  `toml:"nodes"`
	Edges     string  `toml:"edges"`
	OD        string  `toml:"od"`
	ODEpsilon float64 `toml:"od_epsilon"`

	// MultiEdges admits parallel links between the same pair of nodes.
	MultiEdges bool `toml:"multi_edges"`
}

// OutputConfig names the result files; empty entries are skipped.
type OutputConfig struct {
	Edges  string `toml:"edges"`
	Nodes  string `toml:"nodes"`
	Detail string `toml:"detail"`
}

// LogConfig drives logging.Setup. An empty File logs to stdout only.
type LogConfig struct {
	Level      string `toml:"level"`
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
	Compress   bool   `toml:"compress"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the configuration used for keys the file leaves out.
func Default() Config {
	o := ita.DefaultOptions()

	return Config{
		Run: RunConfig{
			BaseCost:    o.BaseCost.String(),
			Schedule:    o.Schedule,
			A:           o.BPR.A,
			B:           o.BPR.B,
			DemandScale: o.DemandScale,
			Workers:     o.Workers,
		},
		Input: InputConfig{
			Edges:     "edges.csv",
			OD:        "od.csv",
			ODEpsilon: demand.DefaultEpsilon,
		},
		Output: OutputConfig{Edges: "edges_out.csv"},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  100,
			MaxBackups: 7,
			MaxAgeDays: 30,
			Compress:   true,
		},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// Decode reads a configuration from r on top of Default and validates it.
func Decode(r io.Reader) (*Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	cfg.setUndecoded(md)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Load reads the file at path. Relative file names inside it are resolved
// against the directory of path.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	cfg.setUndecoded(md)
	cfg.resolve(filepath.Dir(path))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) setUndecoded(md toml.MetaData) {
	for _, k := range md.Undecoded() {
		c.Undecoded = append(c.Undecoded, k.String())
	}
}

func (c *Config) resolve(dir string) {
	for _, p := range []*string{
		&c.Input.Nodes, &c.Input.Edges, &c.Input.OD,
		&c.Output.Edges, &c.Output.Nodes, &c.Output.Detail,
		&c.Log.File, &c.Run.SpoolDir,
	} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
}

// Validate checks run parameters, the OD epsilon and the log level. Network
// dependent checks happen in ita.Run.
func (c *Config) Validate() error {
	opts, err := c.Options()
	if err != nil {
		return err
	}
	if err := opts.ValidateParams(); err != nil {
		return err
	}
	if !(c.Input.ODEpsilon >= 0) {
		return fmt.Errorf("%w: input.od_epsilon=%g", ErrInvalid, c.Input.ODEpsilon)
	}
	if c.Input.Edges == "" {
		return fmt.Errorf("%w: input.edges is required", ErrInvalid)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %w", ErrInvalid, err)
	}

	return nil
}

// Options converts [run] into an ita.Options bundle. The logger is left nil
// so ita.WithOptions keeps whatever logger the caller installs.
func (c *Config) Options() (ita.Options, error) {
	base, err := core.ParseAttribute(c.Run.BaseCost)
	if err != nil {
		return ita.Options{}, fmt.Errorf("%w: run.base_cost_attribute: %w", ErrInvalid, err)
	}
	o := ita.DefaultOptions()
	o.BaseCost = base
	o.Schedule = append([]float64(nil), c.Run.Schedule...)
	o.BPR.A, o.BPR.B = c.Run.A, c.Run.B
	o.DemandScale = c.Run.DemandScale
	o.PathDetail = c.Run.PathDetail
	o.Workers = c.Run.Workers
	o.SpoolDir = c.Run.SpoolDir
	o.Logger = nil

	return o, nil
}

// RunOptions is Options as a single ita.Option followed by extra.
func (c *Config) RunOptions(extra ...ita.Option) ([]ita.Option, error) {
	o, err := c.Options()
	if err != nil {
		return nil, err
	}

	return append([]ita.Option{ita.WithOptions(o)}, extra...), nil
}

// GraphOptions returns the network options of [input].
func (c *Config) GraphOptions() []core.GraphOption {
	if c.Input.MultiEdges {
		return []core.GraphOption{core.WithMultiEdges()}
	}

	return nil
}

// DemandOptions returns the demand builder options of [input].
func (c *Config) DemandOptions() []demand.Option {
	return []demand.Option{demand.WithEpsilon(c.Input.ODEpsilon)}
}
