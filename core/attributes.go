// SPDX-License-Identifier: MIT
//
// File: attributes.go
// Role: Attribute enumerates the numeric edge fields so callers can select a
//       weight or a seed cost by name without reflection.

package core

import (
	"fmt"
	"math"
)

// Attribute names one numeric field of Edge.
type Attribute int

const (
	AttrLength Attribute = iota
	AttrFreeFlowCost
	AttrUniformCost
	AttrCost
	AttrCapacity
	AttrFlow
	AttrCongestedCost
	AttrGradient

	attrCount
)

// Canonical external names, as used in network files and configuration.
var attrNames = [attrCount]string{
	AttrLength:        "dist_km",
	AttrFreeFlowCost:  "free_flow_time_m",
	AttrUniformCost:   "uniform_time_m",
	AttrCost:          "cost_time_m",
	AttrCapacity:      "capacity",
	AttrFlow:          "flow",
	AttrCongestedCost: "congested_time_m",
	AttrGradient:      "gradient",
}

// String returns the canonical external name.
func (a Attribute) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Attribute(%d)", int(a))
	}

	return attrNames[a]
}

// Valid reports whether a names an Edge field.
func (a Attribute) Valid() bool { return a >= 0 && a < attrCount }

// Static reports whether a is an input attribute that assignment never writes.
func (a Attribute) Static() bool { return a >= AttrLength && a <= AttrCapacity }

// ParseAttribute maps a canonical name to its Attribute.
func ParseAttribute(name string) (Attribute, error) {
	for i, n := range attrNames {
		if n == name {
			return Attribute(i), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownAttribute, name)
}

// Value returns the field of e named by a. Unknown attributes yield NaN.
func (e *Edge) Value(a Attribute) float64 {
	switch a {
	case AttrLength:
		return e.Length
	case AttrFreeFlowCost:
		return e.FreeFlowCost
	case AttrUniformCost:
		return e.UniformCost
	case AttrCost:
		return e.Cost
	case AttrCapacity:
		return e.Capacity
	case AttrFlow:
		return e.Flow
	case AttrCongestedCost:
		return e.CongestedCost
	case AttrGradient:
		return e.Gradient
	default:
		return math.NaN()
	}
}

// validStatic rejects NaN, ±Inf and negative static attributes. Capacity sign
// is left to the assignment layer.
func validStatic(e *Edge) error {
	for _, a := range []Attribute{AttrLength, AttrFreeFlowCost, AttrUniformCost, AttrCost, AttrCapacity} {
		v := e.Value(a)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: edge %s→%s %s=%g", ErrBadAttribute, e.From, e.To, a, v)
		}
		if v < 0 && a != AttrCapacity {
			return fmt.Errorf("%w: edge %s→%s %s=%g", ErrBadAttribute, e.From, e.To, a, v)
		}
	}

	return nil
}
