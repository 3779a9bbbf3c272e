// SPDX-License-Identifier: MIT
//
// Package demand holds the origin-destination (OD) travel-demand structure
// consumed by traffic assignment.
//
// A Matrix is sparse and immutable. Origins and, per origin, destinations are
// kept in an explicit order (first appearance in the Builder, or sorted IDs for
// FromMap), because destination order feeds tie-sensitive shortest-path calls.
// Volumes at or below the epsilon (default 1e-5) are dropped at Build time.
package demand

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// DefaultEpsilon is the volume at or below which an OD pair is dropped.
const DefaultEpsilon = 1e-5

var (
	// ErrEmptyID indicates an empty origin or destination ID.
	ErrEmptyID = errors.New("demand: empty origin or destination ID")

	// ErrBadVolume indicates a NaN or infinite volume.
	ErrBadVolume = errors.New("demand: volume must be finite")
)

// Demand is one destination of an origin with its volume.
type Demand struct {
	Destination string  `json:"destination"`
	Volume      float64 `json:"volume"`
}

// Entry is one OD triple.
type Entry struct {
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	Volume      float64 `json:"volume"`
}

// Option configures a Builder.
type Option func(*Builder)

// WithEpsilon overrides DefaultEpsilon. Panics on negative or NaN values.
func WithEpsilon(eps float64) Option {
	if !(eps >= 0) {
		panic("demand: WithEpsilon: epsilon must be non-negative")
	}

	return func(b *Builder) { b.eps = eps }
}

// Builder accumulates OD entries. Repeated pairs sum.
type Builder struct {
	eps     float64
	origins []string
	oindex  map[string]int
	dests   [][]Demand
	dindex  []map[string]int
}

// NewBuilder returns an empty Builder.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{eps: DefaultEpsilon, oindex: make(map[string]int)}
	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Add records volume v from o to d.
func (b *Builder) Add(o, d string, v float64) error {
	if o == "" || d == "" {
		return ErrEmptyID
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s→%s %g", ErrBadVolume, o, d, v)
	}

	oi, ok := b.oindex[o]
	if !ok {
		oi = len(b.origins)
		b.oindex[o] = oi
		b.origins = append(b.origins, o)
		b.dests = append(b.dests, nil)
		b.dindex = append(b.dindex, make(map[string]int))
	}
	if di, ok := b.dindex[oi][d]; ok {
		b.dests[oi][di].Volume += v

		return nil
	}
	b.dindex[oi][d] = len(b.dests[oi])
	b.dests[oi] = append(b.dests[oi], Demand{Destination: d, Volume: v})

	return nil
}

// AddEntries records each entry in order.
func (b *Builder) AddEntries(entries []Entry) error {
	for _, e := range entries {
		if err := b.Add(e.Origin, e.Destination, e.Volume); err != nil {
			return err
		}
	}

	return nil
}

// Build freezes the builder into a Matrix. Pairs with volume ≤ epsilon are
// dropped, then origins left without destinations.
func (b *Builder) Build() *Matrix {
	m := &Matrix{dests: make(map[string][]Demand, len(b.origins))}
	for oi, o := range b.origins {
		var kept []Demand
		for _, d := range b.dests[oi] {
			if d.Volume > b.eps {
				kept = append(kept, d)
				m.total += d.Volume
				continue
			}
			m.dropped++
		}
		if len(kept) == 0 {
			continue
		}
		m.origins = append(m.origins, o)
		m.dests[o] = kept
		m.pairs += len(kept)
	}

	return m
}

// FromMap builds a Matrix from nested maps. Origins and destinations are
// ordered by ID so the result does not depend on map iteration order.
func FromMap(od map[string]map[string]float64, opts ...Option) (*Matrix, error) {
	origins := make([]string, 0, len(od))
	for o := range od {
		origins = append(origins, o)
	}
	sort.Strings(origins)

	b := NewBuilder(opts...)
	for _, o := range origins {
		dests := make([]string, 0, len(od[o]))
		for d := range od[o] {
			dests = append(dests, d)
		}
		sort.Strings(dests)
		for _, d := range dests {
			if err := b.Add(o, d, od[o][d]); err != nil {
				return nil, err
			}
		}
	}

	return b.Build(), nil
}

// Matrix is an immutable sparse OD table.
type Matrix struct {
	origins []string
	dests   map[string][]Demand
	total   float64
	pairs   int
	dropped int
}

// Origins returns origins with at least one destination, in order.
func (m *Matrix) Origins() []string {
	out := make([]string, len(m.origins))
	copy(out, m.origins)

	return out
}

// Destinations returns the ordered destinations of o (nil if none).
func (m *Matrix) Destinations(o string) []Demand {
	src := m.dests[o]
	if src == nil {
		return nil
	}
	out := make([]Demand, len(src))
	copy(out, src)

	return out
}

// Targets returns the ordered destination IDs of o.
func (m *Matrix) Targets(o string) []string {
	src := m.dests[o]
	out := make([]string, len(src))
	for i, d := range src {
		out[i] = d.Destination
	}

	return out
}

// Volume returns the volume from o to d, 0 if absent.
func (m *Matrix) Volume(o, d string) float64 {
	for _, x := range m.dests[o] {
		if x.Destination == d {
			return x.Volume
		}
	}

	return 0
}

// Total returns the sum of all kept volumes.
func (m *Matrix) Total() float64 { return m.total }

// Pairs returns the number of kept OD pairs.
func (m *Matrix) Pairs() int { return m.pairs }

// Dropped returns how many pairs Build discarded at or below epsilon.
func (m *Matrix) Dropped() int { return m.dropped }

// Len returns the number of origins.
func (m *Matrix) Len() int { return len(m.origins) }

// Entries flattens the matrix back to triples, in matrix order.
func (m *Matrix) Entries() []Entry {
	out := make([]Entry, 0, m.pairs)
	for _, o := range m.origins {
		for _, d := range m.dests[o] {
			out = append(out, Entry{Origin: o, Destination: d.Destination, Volume: d.Volume})
		}
	}

	return out
}
