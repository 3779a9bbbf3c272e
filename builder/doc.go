// Package builder assembles deterministic road-network fixtures for tests,
// examples and benchmarks of the assignment pipeline.
//
// It keeps the functional-options shape used across this module:
//
//   - BuildGraph(gopts, bopts, cons...) creates a *core.Graph, resolves one
//     builderConfig from the BuilderOptions and runs the Constructors in order.
//   - Constructors: Line (A→B→…), Grid (bidirectional rows×cols lattice with
//     coordinates), Parallel (competing two-hop routes between "S" and "T"),
//     RandomSparse (seeded directed network).
//   - Vertex-ID schemes (IDFn): DefaultIDFn, SymbolIDFn, SymbolNumberIDFn.
//   - Free-flow cost distributions (CostFn): DefaultCostFn, ConstantCostFn,
//     UniformCostFn.
//
// Every road carries Length, FreeFlowCost, UniformCost, Cost and Capacity so
// fixtures feed the BPR update without further setup. UniformCost is the
// free-flow cost scaled by WithUniformFactor.
//
// Option constructors panic on meaningless values; Constructors return
// sentinel errors (ErrTooFewVertices, ErrInvalidProbability,
// ErrNeedRandSource) wrapped with the method name.
package builder
