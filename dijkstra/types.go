// Package dijkstra defines core types and configuration options
// for single-source, multi-target shortest paths over a core.Snapshot.
//
// Options:
//
//	– Source:           ID of the starting vertex (must be non-empty and present).
//	– Targets:          ordered target IDs; results come back in the same order.
//	– WithOutput:       edge sequences (default) or vertex sequences.
//	– InfEdgeThreshold: edges with weight >= this threshold are treated as impassable.
//	– WithoutWeightScan: skip the O(E) negative-weight pre-scan (caller already did it).
//
// Errors (sentinel):
//
//	– ErrEmptySource     if the provided source ID is empty.
//	– ErrNilGraph        if the provided snapshot pointer is nil.
//	– ErrVertexNotFound  if the source vertex does not exist.
//	– ErrTargetNotFound  if a target vertex does not exist.
//	– ErrNoTargets       if ShortestPaths is called without targets.
//	– ErrNegativeWeight  if a negative edge weight is detected.
//	– ErrNaNWeight       if an edge weight is NaN.
//	– ErrBadInfThreshold if InfEdgeThreshold <= 0.
package dijkstra

import (
	"errors"
	"math"

	"github.com/katalvlaran/roadflow/core"
)

// Sentinel errors returned by the Dijkstra implementation.
var (
	// ErrEmptySource indicates that the provided source vertex ID is empty.
	ErrEmptySource = errors.New("dijkstra: source vertex ID is empty")

	// ErrNilGraph indicates that a nil *core.Snapshot was passed.
	ErrNilGraph = errors.New("dijkstra: graph is nil")

	// ErrVertexNotFound indicates that the source vertex does not exist.
	ErrVertexNotFound = errors.New("dijkstra: source vertex not found in graph")

	// ErrTargetNotFound indicates that a target vertex does not exist.
	ErrTargetNotFound = errors.New("dijkstra: target vertex not found in graph")

	// ErrNoTargets indicates an empty target list for ShortestPaths.
	ErrNoTargets = errors.New("dijkstra: at least one target is required")

	// ErrNegativeWeight indicates that a negative edge weight was detected.
	ErrNegativeWeight = errors.New("dijkstra: negative edge weight encountered")

	// ErrNaNWeight indicates that an edge weight is NaN.
	ErrNaNWeight = errors.New("dijkstra: NaN edge weight encountered")

	// ErrBadInfThreshold indicates that InfEdgeThreshold was set to zero or negative.
	ErrBadInfThreshold = errors.New("dijkstra: InfEdgeThreshold must be positive")
)

// Output selects the sequence form returned per target.
type Output int

const (
	// OutputEdges returns the EdgeIDs traversed, in travel order.
	OutputEdges Output = iota

	// OutputVertices returns the vertex IDs visited, source first.
	OutputVertices

	// OutputBoth fills both sequences.
	OutputBoth
)

// Options configures a shortest-path query.
type Options struct {
	Source           string   // The ID of the source vertex
	Targets          []string // Ordered target IDs
	Output           Output   // Sequence form per target
	InfEdgeThreshold float64  // Weight threshold at or above which edges are non-traversable
	ScanWeights      bool     // Run the negative-weight pre-scan
}

// Option represents a functional option for configuring a query.
type Option func(*Options)

// Source sets the starting vertex ID.
func Source(id string) Option {
	return func(o *Options) {
		o.Source = id
	}
}

// Targets sets the ordered target list. The slice is copied.
func Targets(ids ...string) Option {
	cp := make([]string, len(ids))
	copy(cp, ids)

	return func(o *Options) {
		o.Targets = cp
	}
}

// WithOutput selects edge or vertex sequences.
func WithOutput(out Output) Option {
	if out < OutputEdges || out > OutputBoth {
		panic("dijkstra: WithOutput: unknown output mode")
	}

	return func(o *Options) {
		o.Output = out
	}
}

// WithInfEdgeThreshold defines a weight at or above which edges are skipped.
// Panics on zero, negative or NaN thresholds.
func WithInfEdgeThreshold(threshold float64) Option {
	if !(threshold > 0) {
		panic(ErrBadInfThreshold.Error())
	}

	return func(o *Options) {
		o.InfEdgeThreshold = threshold
	}
}

// WithoutWeightScan disables the per-query O(E) weight scan. Use it only after
// ValidateWeights has accepted the same snapshot.
func WithoutWeightScan() Option {
	return func(o *Options) {
		o.ScanWeights = false
	}
}

// DefaultOptions returns an Options struct initialized with defaults:
// edge output, no impassable threshold, weight scan enabled.
func DefaultOptions() Options {
	return Options{
		Output:           OutputEdges,
		InfEdgeThreshold: math.Inf(1),
		ScanWeights:      true,
	}
}

// Path is the shortest route from the query source to one target.
//
// For an unreachable target both sequences are empty and Cost is +Inf.
// When the target equals the source the path is reachable, Cost is 0, Edges
// is empty and Vertices holds only the source (if requested).
type Path struct {
	Target   string
	Cost     float64
	Edges    []core.EdgeID
	Vertices []string
}

// Reachable reports whether a route to Target exists.
func (p Path) Reachable() bool { return !math.IsInf(p.Cost, 1) }
