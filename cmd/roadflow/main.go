// SPDX-License-Identifier: MIT

// Command roadflow runs incremental traffic assignment over CSV road networks.
//
//	roadflow run   [-config roadflow.toml]   assign input.od and write [output]
//	roadflow serve [-config roadflow.toml]   serve the network over HTTP
//
// The config path defaults to $ROADFLOW_CONFIG (a .env file is honoured), then
// roadflow.toml.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/roadflow/config"
	"github.com/katalvlaran/roadflow/httpapi"
	"github.com/katalvlaran/roadflow/ita"
	"github.com/katalvlaran/roadflow/logging"
	"github.com/katalvlaran/roadflow/netio"
)

const usage = "usage: roadflow run|serve [-config path]"

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "roadflow: .env: %v\n", err)
	}
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	cmd := os.Args[1]
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	path := fs.String("config", os.Getenv("ROADFLOW_CONFIG"), "path to the TOML configuration")
	addr := fs.String("addr", "", "listen address for serve (overrides server.addr)")
	_ = fs.Parse(os.Args[2:])

	cfg, err := config.Load(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "roadflow: %v\n", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	log, closer, err := logging.Setup(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "roadflow: %v\n", err)
		os.Exit(1)
	}
	for _, k := range cfg.Undecoded {
		log.Warnf("config: unknown key %q ignored", k)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	switch cmd {
	case "run":
		err = assign(ctx, cfg, log)
	case "serve":
		err = serve(ctx, cfg, log)
	default:
		err = fmt.Errorf("unknown command %q; %s", cmd, usage)
	}
	stop()

	if err != nil {
		log.Errorf("roadflow %s: %v", cmd, err)
		closer.Close()
		os.Exit(1)
	}
	closer.Close()
}

// assign runs one batch assignment and writes the configured outputs.
func assign(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) error {
	g, err := netio.LoadNetwork(cfg.Input.Nodes, cfg.Input.Edges, cfg.GraphOptions()...)
	if err != nil {
		return err
	}
	od, err := netio.LoadOD(cfg.Input.OD, cfg.DemandOptions()...)
	if err != nil {
		return err
	}
	log.Infof("loaded %d vertices, %d edges, %d OD pairs (%d dropped below epsilon)",
		g.VertexCount(), g.EdgeCount(), od.Pairs(), od.Dropped())

	opts, err := cfg.RunOptions(ita.WithLogger(log))
	if err != nil {
		return err
	}
	res, err := ita.Run(ctx, g, od, opts...)
	if err != nil {
		return err
	}
	st := res.Stats
	log.Infof("assigned: %d loaded edges, %.1f veh·km, %.1f veh·min, max v/c %.3f, %d unreachable",
		st.LoadedEdgeCount, st.VehicleKm, st.VehicleMinutes, st.MaxVolumeCapacity, res.Unreachable())

	outputs := []struct {
		path  string
		write func(io.Writer) error
	}{
		{cfg.Output.Edges, func(w io.Writer) error { return netio.WriteEdges(w, g.Edges()) }},
		{cfg.Output.Nodes, func(w io.Writer) error { return netio.WriteNodes(w, g.Vertices()) }},
		{cfg.Output.Detail, func(w io.Writer) error { return netio.WriteDetail(w, res.Detail) }},
	}
	for _, out := range outputs {
		if out.path == "" {
			continue
		}
		if err := netio.SaveFile(out.path, out.write); err != nil {
			return err
		}
		log.Infof("wrote %s", out.path)
	}

	return nil
}

// serve loads the network and serves it until ctx ends.
func serve(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) error {
	g, err := netio.LoadNetwork(cfg.Input.Nodes, cfg.Input.Edges, cfg.GraphOptions()...)
	if err != nil {
		return err
	}
	opts, err := cfg.RunOptions()
	if err != nil {
		return err
	}
	srv := httpapi.New(g,
		httpapi.WithLogger(log),
		httpapi.WithRunOptions(opts...),
		httpapi.WithDemandOptions(cfg.DemandOptions()...),
	)

	return srv.ListenAndServe(ctx, cfg.Server.Addr)
}
