// SPDX-License-Identifier: MIT

package ita

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/roadflow/bpr"
	"github.com/katalvlaran/roadflow/core"
	"github.com/katalvlaran/roadflow/demand"
	"github.com/katalvlaran/roadflow/detail"
	"github.com/katalvlaran/roadflow/dijkstra"
	"github.com/katalvlaran/roadflow/flow"
)

// FractionStats describes one completed loading step.
type FractionStats struct {
	Index       int           `json:"index"`
	P           float64       `json:"p"`
	Origins     int           `json:"origins"`
	Pairs       int           `json:"pairs"`
	Unreachable int           `json:"unreachable"`
	Assigned    float64       `json:"assigned"` // Σ p·scale·volume over routed pairs
	Edges       int           `json:"edges"`    // edges whose flow changed
	Duration    time.Duration `json:"duration"`
}

// Result is returned by a completed run. The graph itself carries the edge
// and vertex state.
type Result struct {
	Fractions []FractionStats `json:"fractions"`
	Detail    []detail.Row    `json:"detail,omitempty"`
	Stats     core.GraphStats `json:"stats"`
}

// Unreachable sums unreachable OD pairs over all fractions.
func (r *Result) Unreachable() int {
	n := 0
	for _, f := range r.Fractions {
		n += f.Unreachable
	}

	return n
}

// routed is the shortest-path answer for one origin.
type routed struct {
	dests []demand.Demand
	paths []dijkstra.Path
	err   error
}

// runner holds the immutable inputs of one run.
type runner struct {
	g       *core.Graph
	od      *demand.Matrix
	opts    Options
	log     logrus.FieldLogger
	origins []string
	pool    *ants.Pool
	spool   *detail.Spool
	acc     *flow.Accumulator
}

// Run performs incremental traffic assignment of od onto g.
//
// It validates everything first and returns an ErrConfig error without
// touching g. It then resets flow, gradient and throughput, seeds congested
// cost from the base attribute and loads the schedule fraction by fraction:
// every origin is routed against one snapshot of congested cost, flows are
// summed in origin order and committed, and congested cost is recomputed.
// After the last fraction every edge gets its BPR gradient and, with path
// detail on, the recorded paths are aggregated per OD pair.
//
// ctx is checked before each fraction. On cancellation g holds exactly the
// fractions already completed.
func Run(ctx context.Context, g *core.Graph, od *demand.Matrix, opts ...Option) (*Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.Validate(g, od); err != nil {
		return nil, err
	}

	pool, err := ants.NewPool(o.Workers)
	if err != nil {
		return nil, fmt.Errorf("ita: worker pool: %w", err)
	}
	defer pool.Release()

	r := &runner{g: g, od: od, opts: o, log: o.Logger, origins: od.Origins(), pool: pool}
	if o.PathDetail {
		if r.spool, err = detail.NewSpool(o.SpoolDir); err != nil {
			return nil, err
		}
		defer func() {
			if cerr := r.spool.Close(); cerr != nil {
				r.log.Warnf("[ITA]: %v", cerr)
			}
		}()
	}

	// INITIALIZED
	if err := g.ResetAssignment(o.BaseCost); err != nil {
		return nil, err
	}
	r.log.Infof("[ITA]: %d origins, %d OD pairs, schedule %v, base %s, a=%g b=%g scale=%g",
		len(r.origins), od.Pairs(), o.Schedule, o.BaseCost, o.BPR.A, o.BPR.B, o.DemandScale)

	// LOADING
	res := &Result{}
	for i, p := range o.Schedule {
		if err := ctx.Err(); err != nil {
			r.log.Warnf("[ITA]: cancelled before fraction %d/%d", i+1, len(o.Schedule))
			return nil, fmt.Errorf("ita: cancelled before fraction %d/%d: %w", i+1, len(o.Schedule), err)
		}
		fs, err := r.load(i, p)
		if err != nil {
			return nil, err
		}
		res.Fractions = append(res.Fractions, fs)
	}

	// FINALIZED
	base, params := o.BaseCost, o.BPR
	g.UpdateAllEdges(func(e *core.Edge) {
		e.Gradient = bpr.Gradient(e.Value(base), e.Flow, e.Capacity, params)
	})
	if r.spool != nil {
		rows, err := detail.Aggregate(r.spool, g.Edges(), base)
		if err != nil {
			return nil, fmt.Errorf("ita: aggregate detail: %w", err)
		}
		res.Detail = rows
		r.log.Infof("[ITA]: aggregated %d path records into %d OD rows", r.spool.Records(), len(rows))
	}
	res.Stats = g.Stats()

	return res, nil
}

// load runs fraction i with proportion p.
func (r *runner) load(i int, p float64) (FractionStats, error) {
	start := time.Now()
	n := len(r.opts.Schedule)
	fs := FractionStats{Index: i, P: p, Origins: len(r.origins)}

	snap, err := r.g.Snapshot(core.AttrCongestedCost)
	if err != nil {
		return fs, err
	}
	if err := dijkstra.ValidateWeights(snap); err != nil {
		return fs, fmt.Errorf("ita: fraction %d/%d: %w", i+1, n, err)
	}

	results := r.route(snap)

	scale := r.opts.DemandScale
	if r.acc == nil {
		r.acc = flow.ForSnapshot(snap)
	}
	acc := r.acc
	acc.Reset()
	var recs []detail.Record
	for k, origin := range r.origins {
		res := results[k]
		if res.err != nil {
			return fs, fmt.Errorf("ita: fraction %d/%d origin %s: %w", i+1, n, origin, res.err)
		}
		oi, _ := snap.Index(origin)
		for j, path := range res.paths {
			d := res.dests[j]
			fs.Pairs++
			if !path.Reachable() {
				fs.Unreachable++
				r.log.WithFields(logrus.Fields{"origin": origin, "destination": d.Destination, "fraction": i}).
					Debug("[ITA]: unreachable OD pair")
				continue
			}
			amount := p * scale * d.Volume
			if err := acc.AddPath(snap, oi, path.Edges, amount); err != nil {
				return fs, fmt.Errorf("ita: fraction %d/%d %s→%s: %w", i+1, n, origin, d.Destination, err)
			}
			fs.Assigned += amount
			if r.spool != nil {
				recs = append(recs, detail.Record{
					Origin:      origin,
					Destination: d.Destination,
					Fraction:    i,
					P:           p,
					Flow:        scale * d.Volume,
					Path:        path.Edges,
				})
			}
		}
	}

	touched := acc.Touched()
	if err := acc.Commit(r.g, r.opts.BaseCost, r.opts.BPR); err != nil {
		return fs, fmt.Errorf("ita: fraction %d/%d: %w", i+1, n, err)
	}
	fs.Edges = len(touched)

	if r.spool != nil {
		if err := r.spool.WriteFraction(i, recs); err != nil {
			return fs, err
		}
	}

	fs.Duration = time.Since(start)
	if fs.Unreachable > 0 {
		r.log.Infof("[ITA]: fraction %d/%d: %d unreachable OD pairs", i+1, n, fs.Unreachable)
	}
	r.log.Infof("[ITA]: fraction %d/%d p=%g assigned %d origins in %s", i+1, n, p, fs.Origins, fs.Duration)

	return fs, nil
}

// route answers every origin against snap on the worker pool. Results land in
// origin order regardless of completion order.
func (r *runner) route(snap *core.Snapshot) []routed {
	results := make([]routed, len(r.origins))

	var wg sync.WaitGroup
	for k, origin := range r.origins {
		k, origin := k, origin
		task := func() { results[k] = shortestPaths(snap, origin, r.od.Destinations(origin)) }

		wg.Add(1)
		if err := r.pool.Submit(func() {
			defer wg.Done()
			task()
		}); err != nil {
			wg.Done()
			r.log.Debugf("[ITA]: pool rejected origin %s (%v), routing inline", origin, err)
			task()
		}
	}
	wg.Wait()

	return results
}

func shortestPaths(snap *core.Snapshot, origin string, dests []demand.Demand) routed {
	targets := make([]string, len(dests))
	for i, d := range dests {
		targets[i] = d.Destination
	}
	paths, err := dijkstra.ShortestPaths(snap,
		dijkstra.Source(origin),
		dijkstra.Targets(targets...),
		dijkstra.WithOutput(dijkstra.OutputEdges),
		dijkstra.WithoutWeightScan(),
	)

	return routed{dests: dests, paths: paths, err: err}
}
