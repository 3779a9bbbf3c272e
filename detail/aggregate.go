// SPDX-License-Identifier: MIT

package detail

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/katalvlaran/roadflow/core"
)

// Ratio is a quotient that may be undefined (zero denominator).
type Ratio struct {
	Value float64
	Valid bool
}

// Undefined is the Ratio of a zero denominator.
var Undefined = Ratio{}

// Div returns num/den, Undefined when den is not positive.
func Div(num, den float64) Ratio {
	if !(den > 0) {
		return Undefined
	}

	return Ratio{Value: num / den, Valid: true}
}

// String formats the value, or "undefined".
func (r Ratio) String() string {
	if !r.Valid {
		return "undefined"
	}

	return strconv.FormatFloat(r.Value, 'g', -1, 64)
}

// MarshalJSON encodes an undefined ratio as null.
func (r Ratio) MarshalJSON() ([]byte, error) {
	if !r.Valid {
		return []byte("null"), nil
	}

	return json.Marshal(r.Value)
}

// UnmarshalJSON accepts a number or null.
func (r *Ratio) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*r = Undefined
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*r = Ratio{Value: v, Valid: true}

	return nil
}

// Summary is one path measured against the final edge state.
type Summary struct {
	Length        float64 // dist_km
	UniformCost   float64
	FreeFlowCost  float64
	CongestedCost float64
	BaseCost      float64
	Gamma         Ratio // Σ(dist·flow) / Σ(dist·capacity)
	Gradient      float64
}

// Summarize sums each attribute over path. edges is indexed by EdgeID.
func Summarize(edges []core.Edge, base core.Attribute, path []core.EdgeID) (Summary, error) {
	var s Summary
	var wFlow, wCap float64
	for _, id := range path {
		if id < 0 || int(id) >= len(edges) {
			return Summary{}, fmt.Errorf("%w: %d", core.ErrEdgeNotFound, id)
		}
		e := &edges[id]
		s.Length += e.Length
		s.UniformCost += e.UniformCost
		s.FreeFlowCost += e.FreeFlowCost
		s.CongestedCost += e.CongestedCost
		s.BaseCost += e.Value(base)
		s.Gradient += e.Gradient
		wFlow += e.Length * e.Flow
		wCap += e.Length * e.Capacity
	}
	s.Gamma = Div(wFlow, wCap)

	return s, nil
}

// Row is the aggregated detail of one OD pair: every numeric field is the sum
// over the pair's records of field·P.
type Row struct {
	Origin        string  `json:"origin"`
	Destination   string  `json:"destination"`
	Flow          float64 `json:"flow"`
	Length        float64 `json:"dist_km"`
	UniformCost   float64 `json:"uniform_time_m"`
	FreeFlowCost  float64 `json:"free_flow_time_m"`
	CongestedCost float64 `json:"congested_time_m"`
	BaseCost      float64 `json:"base_cost"`
	Gamma         Ratio   `json:"gamma"`
	Gradient      float64 `json:"gradient"`
}

type odKey struct{ o, d string }

// Aggregator reduces records to Rows keyed by (origin, destination), in
// order of first appearance.
type Aggregator struct {
	edges []core.Edge
	base  core.Attribute
	rows  []Row
	index map[odKey]int
}

// NewAggregator measures paths against edges (indexed by EdgeID) with base
// as the base-cost attribute.
func NewAggregator(edges []core.Edge, base core.Attribute) *Aggregator {
	return &Aggregator{edges: edges, base: base, index: make(map[odKey]int)}
}

// Add summarises r and folds it into its OD row. Once any record of a pair
// has an undefined gamma the row's gamma stays undefined.
func (a *Aggregator) Add(r Record) error {
	s, err := Summarize(a.edges, a.base, r.Path)
	if err != nil {
		return fmt.Errorf("detail: %s→%s fraction %d: %w", r.Origin, r.Destination, r.Fraction, err)
	}

	k := odKey{r.Origin, r.Destination}
	i, ok := a.index[k]
	if !ok {
		i = len(a.rows)
		a.index[k] = i
		a.rows = append(a.rows, Row{Origin: r.Origin, Destination: r.Destination, Gamma: Ratio{Valid: true}})
	}
	row := &a.rows[i]
	p := r.P
	row.Flow += r.Flow * p
	row.Length += s.Length * p
	row.UniformCost += s.UniformCost * p
	row.FreeFlowCost += s.FreeFlowCost * p
	row.CongestedCost += s.CongestedCost * p
	row.BaseCost += s.BaseCost * p
	row.Gradient += s.Gradient * p
	if row.Gamma.Valid && s.Gamma.Valid {
		row.Gamma.Value += s.Gamma.Value * p
	} else {
		row.Gamma = Undefined
	}

	return nil
}

// Rows returns the aggregated rows.
func (a *Aggregator) Rows() []Row {
	out := make([]Row, len(a.rows))
	copy(out, a.rows)

	return out
}

// Aggregate drains spool into a new Aggregator and returns its rows.
func Aggregate(spool *Spool, edges []core.Edge, base core.Attribute) ([]Row, error) {
	agg := NewAggregator(edges, base)
	if err := spool.Each(agg.Add); err != nil {
		return nil, err
	}

	return agg.Rows(), nil
}
