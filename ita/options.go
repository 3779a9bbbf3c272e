// SPDX-License-Identifier: MIT

package ita

import (
	"fmt"
	"math"
	"runtime"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/roadflow/bpr"
	"github.com/katalvlaran/roadflow/core"
	"github.com/katalvlaran/roadflow/demand"
)

// ScheduleTolerance is the allowed |Σp − 1| of a schedule.
const ScheduleTolerance = 1e-6

// DefaultSchedule is the classic four-step loading.
var DefaultSchedule = []float64{0.4, 0.3, 0.2, 0.1}

// Options is the configuration bundle of one run. Run copies it, so the
// caller's value is never shared with the workers.
type Options struct {
	BaseCost    core.Attribute     // static attribute seeding and scaling congested cost
	Schedule    []float64          // ordered loading proportions
	BPR         bpr.Params         // volume-delay shape
	DemandScale float64            // uniform multiplier on every OD volume
	PathDetail  bool               // record paths and aggregate them per OD pair
	SpoolDir    string             // "" keeps path records in memory
	Workers     int                // shortest-path goroutines per fraction
	Logger      logrus.FieldLogger // progress and anomaly logging
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns free_flow_time_m as base cost, DefaultSchedule,
// a=0.15, b=4, demand scale 1, no path detail, one worker per CPU and the
// logrus standard logger.
func DefaultOptions() Options {
	return Options{
		BaseCost:    core.AttrFreeFlowCost,
		Schedule:    append([]float64(nil), DefaultSchedule...),
		BPR:         bpr.DefaultParams(),
		DemandScale: 1,
		Workers:     runtime.NumCPU(),
		Logger:      logrus.StandardLogger(),
	}
}

// WithBaseCost selects the static attribute that seeds congested cost.
func WithBaseCost(a core.Attribute) Option {
	return func(o *Options) { o.BaseCost = a }
}

// WithSchedule sets the loading proportions. The slice is copied.
func WithSchedule(p ...float64) Option {
	cp := append([]float64(nil), p...)

	return func(o *Options) { o.Schedule = cp }
}

// WithBPR sets the volume-delay shape parameters.
func WithBPR(a, b float64) Option {
	return func(o *Options) { o.BPR = bpr.Params{A: a, B: b} }
}

// WithDemandScale sets the uniform demand multiplier.
func WithDemandScale(scale float64) Option {
	return func(o *Options) { o.DemandScale = scale }
}

// WithPathDetail turns per-path recording on or off.
func WithPathDetail(on bool) Option {
	return func(o *Options) { o.PathDetail = on }
}

// WithSpoolDir spools path records to files under dir instead of memory.
func WithSpoolDir(dir string) Option {
	return func(o *Options) { o.SpoolDir = dir }
}

// WithWorkers sets the number of shortest-path goroutines.
func WithWorkers(n int) Option {
	return func(o *Options) { o.Workers = n }
}

// WithLogger sets the logger. Panics on nil.
func WithLogger(l logrus.FieldLogger) Option {
	if l == nil {
		panic("ita: WithLogger(nil)")
	}

	return func(o *Options) { o.Logger = l }
}

// WithOptions replaces the whole bundle, e.g. one decoded from a file.
func WithOptions(src Options) Option {
	return func(o *Options) {
		logger := o.Logger
		*o = src
		o.Schedule = append([]float64(nil), src.Schedule...)
		if o.Logger == nil {
			o.Logger = logger
		}
	}
}

// ValidateParams checks everything that does not depend on the network.
func (o Options) ValidateParams() error {
	if !o.BaseCost.Static() {
		return configError(core.ErrUnknownAttribute, "%s cannot be a base cost", o.BaseCost)
	}
	if len(o.Schedule) == 0 {
		return configError(ErrEmptySchedule, "no proportions")
	}
	var sum float64
	for i, p := range o.Schedule {
		if !(p > 0 && p <= 1) {
			return configError(ErrBadProportion, "schedule[%d]=%g", i, p)
		}
		sum += p
	}
	if math.Abs(sum-1) > ScheduleTolerance {
		return configError(ErrScheduleSum, "sum=%.9g", sum)
	}
	if err := o.BPR.Validate(); err != nil {
		return configError(bpr.ErrBadShape, "%v", err)
	}
	if !(o.DemandScale > 0) || math.IsInf(o.DemandScale, 1) {
		return configError(ErrBadDemandScale, "scale=%g", o.DemandScale)
	}
	if o.Workers < 1 {
		return configError(ErrBadWorkers, "workers=%d", o.Workers)
	}

	return nil
}

// Validate checks o against the network and demand of a run. It reads g
// only; on success Run may mutate it.
//
// Every edge must carry a positive capacity and a non-negative base cost,
// not only edges some path ends up using, so a run never aborts halfway.
// For the same reason each edge must keep a finite BPR cost and gradient
// under the whole scaled demand, the most any edge can carry.
func (o Options) Validate(g *core.Graph, od *demand.Matrix) error {
	if g == nil || od == nil {
		return configError(ErrNilInput, "graph=%t demand=%t", g != nil, od != nil)
	}
	if err := o.ValidateParams(); err != nil {
		return err
	}

	for _, origin := range od.Origins() {
		if !g.HasVertex(origin) {
			return configError(ErrUnknownVertex, "origin %q", origin)
		}
		for _, d := range od.Targets(origin) {
			if !g.HasVertex(d) {
				return configError(ErrUnknownVertex, "destination %q of origin %q", d, origin)
			}
		}
	}

	var share float64
	for _, p := range o.Schedule {
		share += p
	}
	load := share * o.DemandScale * od.Total()

	for _, e := range g.Edges() {
		if err := bpr.CheckCapacity(e.Capacity); err != nil {
			return fmt.Errorf("%w: %w", ErrConfig,
				&bpr.CapacityError{Edge: int(e.ID), From: e.From, To: e.To, Capacity: e.Capacity})
		}
		c := e.Value(o.BaseCost)
		if !(c >= 0) {
			return configError(ErrNegativeCost, "edge %d %s→%s %s=%g", e.ID, e.From, e.To, o.BaseCost, c)
		}
		if err := bpr.CheckLoad(c, load, e.Capacity, o.BPR); err != nil {
			return fmt.Errorf("%w: edge %d %s→%s: %w", ErrConfig, e.ID, e.From, e.To, err)
		}
	}

	return nil
}
