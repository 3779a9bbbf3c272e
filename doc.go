// Package roadflow loads travel demand onto road networks by incremental
// traffic assignment (ITA).
//
// 🚗 What is roadflow?
//
//	A thread-safe road-network toolkit that brings together:
//		• Graph model: directed roads with typed static and assignment attributes
//		• OD demand: ordered, sparse origin–destination matrices
//		• Shortest paths: deterministic Dijkstra over immutable snapshots
//		• Reachability: hop-count BFS with capacity filters
//		• Congestion: BPR volume-delay cost and its gradient
//		• Assignment: the ITA driver with per-fraction worker pools
//		• Path detail: spooled per-path records aggregated per OD pair
//		• I/O: CSV networks and OD tables, TOML configuration, an HTTP API
//
// ✨ Guarantees
//
//   - Deterministic: identical inputs give bit-identical flows for any
//     worker count
//   - Fail fast: every configuration error is reported before the first
//     edge is touched
//   - Cancellable: a run stops between fractions and leaves only whole
//     fractions applied
//
// Packages:
//
//	core/      Graph, Vertex, Edge, Attribute, Snapshot
//	demand/    OD Matrix and Builder
//	dijkstra/  shortest-path oracle
//	bfs/       unweighted reachability
//	bpr/       volume-delay function
//	flow/      per-fraction flow accumulator
//	ita/       assignment driver
//	detail/    path records, spool and OD aggregation
//	pathcodec/ compact path encoding
//	builder/   deterministic road fixtures
//	netio/     CSV readers and writers
//	config/    TOML configuration
//	logging/   logrus + lumberjack setup
//	httpapi/   gin HTTP surface
//	cmd/roadflow batch and server binary
//
// Quick ASCII example:
//
//	A ──▶ B ──▶ C      20 vehicles A→C, capacity 10 per road
//
// loads both roads with 20 and raises their cost from 1 to 1·(1+0.15·2⁴) = 3.4.
//
//	go install github.com/katalvlaran/roadflow/cmd/roadflow@latest
package roadflow
