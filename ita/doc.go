// Package ita implements incremental traffic assignment (ITA).
//
// Run loads an OD demand matrix onto a road network in a fixed schedule of
// proportions. Each fraction routes every origin to its destinations over the
// congested costs left by the previous fractions, adds p·scale·volume to every
// edge and vertex on each path and recomputes congested cost with the BPR
// function. Flow accumulates over the whole schedule.
//
// A run moves through three states:
//
//	INITIALIZED  flow, gradient and throughput zeroed; congested cost = base cost
//	LOADING(i)   fraction i routed on one snapshot, reduced, committed
//	FINALIZED    gradients set; path detail aggregated per OD pair
//
// All configuration is checked before INITIALIZED. A failing check returns an
// error matching ErrConfig and leaves the graph as it was.
//
// Origins of one fraction are routed concurrently on an ants worker pool
// against the same immutable core.Snapshot. Per-origin results are reduced in
// origin order, so flows are bit-identical for any worker count.
package ita
