// SPDX-License-Identifier: MIT
//
// Package bpr implements the Bureau of Public Roads volume-delay function
//
//	congested = base · (1 + a · (flow / capacity)^b)
//
// and its marginal gradient component a · b · (flow / capacity)^b · base.
//
// Both are pure. Capacity must be positive: callers run CheckCapacity (or
// Params.Validate for the shape) before the assignment starts, so a zero-
// throughput edge is rejected as configuration, never turned into Inf or NaN.
package bpr

import (
	"errors"
	"fmt"
	"math"
)

// Standard BPR shape parameters.
const (
	DefaultA = 0.15
	DefaultB = 4.0
)

var (
	// ErrBadShape indicates a non-positive or non-finite shape parameter.
	ErrBadShape = errors.New("bpr: shape parameters a and b must be positive and finite")

	// ErrZeroCapacity indicates a capacity ≤ 0 (or non-finite).
	ErrZeroCapacity = errors.New("bpr: capacity must be positive")

	// ErrOverflow indicates a cost or gradient that leaves float64 range.
	ErrOverflow = errors.New("bpr: congested cost is not finite")
)

// CapacityError reports the edge whose capacity cannot feed the function.
// It matches ErrZeroCapacity under errors.Is.
type CapacityError struct {
	Edge     int
	From, To string
	Capacity float64
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("bpr: edge %d %s→%s has capacity %g (must be > 0)", e.Edge, e.From, e.To, e.Capacity)
}

// Is lets errors.Is(err, ErrZeroCapacity) match.
func (e *CapacityError) Is(target error) bool { return target == ErrZeroCapacity }

// Params holds the two shape parameters.
type Params struct {
	A float64 `toml:"a" json:"a"`
	B float64 `toml:"b" json:"b"`
}

// DefaultParams returns a=0.15, b=4.
func DefaultParams() Params { return Params{A: DefaultA, B: DefaultB} }

// Validate rejects non-positive or non-finite a or b.
func (p Params) Validate() error {
	if !positiveFinite(p.A) || !positiveFinite(p.B) {
		return fmt.Errorf("%w: a=%g b=%g", ErrBadShape, p.A, p.B)
	}

	return nil
}

// CheckCapacity returns ErrZeroCapacity for capacity ≤ 0, NaN or ±Inf.
func CheckCapacity(capacity float64) error {
	if !positiveFinite(capacity) {
		return fmt.Errorf("%w: got %g", ErrZeroCapacity, capacity)
	}

	return nil
}

// Cost returns base · (1 + a · (flow/capacity)^b).
//
// Preconditions: base ≥ 0, flow ≥ 0, capacity > 0, p valid. Under them the
// result is ≥ base.
func Cost(base, flow, capacity float64, p Params) float64 {
	if flow == 0 || base == 0 {
		return base
	}

	return base * (1 + p.A*math.Pow(flow/capacity, p.B))
}

// Gradient returns a · b · (flow/capacity)^b · base, the marginal term of
// d(flow·cost)/d(flow) beyond the cost itself. Same preconditions as Cost.
func Gradient(base, flow, capacity float64, p Params) float64 {
	if flow == 0 || base == 0 {
		return 0
	}

	return p.A * p.B * math.Pow(flow/capacity, p.B) * base
}

// CheckLoad returns ErrOverflow when Cost or Gradient at flow is not finite.
// Both grow monotonically with flow, so checking the largest flow an edge can
// carry covers every smaller one.
func CheckLoad(base, flow, capacity float64, p Params) error {
	c, g := Cost(base, flow, capacity, p), Gradient(base, flow, capacity, p)
	if math.IsInf(c, 0) || math.IsNaN(c) || math.IsInf(g, 0) || math.IsNaN(g) {
		return fmt.Errorf("%w: base %g flow %g capacity %g gives cost %g gradient %g",
			ErrOverflow, base, flow, capacity, c, g)
	}

	return nil
}

func positiveFinite(x float64) bool { return x > 0 && !math.IsInf(x, 1) }
