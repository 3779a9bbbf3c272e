// Package dijkstra implements Dijkstra's shortest-path algorithm over a
// core.Snapshot with float64 weights.
//
// Complexity:
//
//   - Time:  O((V + E) log V)
//   - Space: O(V + E)
//
// Notes on implementation choices:
//
//   - The optional upfront O(E) scan rejects negative and NaN weights.
//   - Any edge with weight ≥ InfEdgeThreshold is an impassable “wall”.
//   - “Lazy” decrease-key: duplicates are pushed and stale entries skipped.
//   - Ties are deterministic: the heap orders equal distances by vertex index,
//     outbound edges are relaxed in ascending EdgeID order, and a predecessor is
//     replaced only by a strictly shorter distance.
//   - ShortestPaths stops as soon as every requested target is settled.
package dijkstra

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/katalvlaran/roadflow/core"
)

// Tree is a shortest-path tree rooted at one source.
type Tree struct {
	s      *core.Snapshot
	source int
	dist   []float64     // index → distance (+Inf if unreached)
	via    []core.EdgeID // index → edge entering it on the tree (-1 if none)
}

// Distance returns the tree distance to id (+Inf if unreached or unknown).
func (t *Tree) Distance(id string) float64 {
	i, ok := t.s.Index(id)
	if !ok {
		return math.Inf(1)
	}

	return t.dist[i]
}

// ValidateWeights scans every weight of s once. Callers issuing many queries
// against the same snapshot run this and then pass WithoutWeightScan.
func ValidateWeights(s *core.Snapshot) error {
	if s == nil {
		return ErrNilGraph
	}
	for e := 0; e < s.EdgeCount(); e++ {
		id := core.EdgeID(e)
		w := s.Weight(id)
		var cause error
		switch {
		case math.IsNaN(w):
			cause = ErrNaNWeight
		case w < 0:
			cause = ErrNegativeWeight
		default:
			continue
		}

		return fmt.Errorf("%w: edge %d %s→%s %s=%g", cause, e,
			s.VertexID(s.Tail(id)), s.VertexID(s.Head(id)), s.Attribute(), w)
	}

	return nil
}

// Dijkstra computes the full shortest-path tree from Options.Source. Targets,
// if given, only allow the search to stop early once all are settled; the
// distances of other vertices are then upper bounds, not final values.
//
// Preconditions and validation (in order):
//  1. Source string must be non-empty (ErrEmptySource).
//  2. s must be non-nil (ErrNilGraph).
//  3. s must contain Source (ErrVertexNotFound) and every target (ErrTargetNotFound).
//  4. No weight may be negative (ErrNegativeWeight) or NaN (ErrNaNWeight)
//     unless the scan is disabled.
func Dijkstra(s *core.Snapshot, opts ...Option) (*Tree, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	src, targets, err := resolve(s, cfg)
	if err != nil {
		return nil, err
	}

	r := newRunner(s, cfg, src, targets)
	r.process()

	return &Tree{s: s, source: src, dist: r.dist, via: r.via}, nil
}

// ShortestPaths returns, for each target in input order, the shortest path
// from Source following outbound edges only. Unreachable targets yield an
// empty Path with Cost +Inf and no error.
func ShortestPaths(s *core.Snapshot, opts ...Option) ([]Path, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if len(cfg.Targets) == 0 && cfg.Source != "" && s != nil {
		return nil, ErrNoTargets
	}

	src, targets, err := resolve(s, cfg)
	if err != nil {
		return nil, err
	}

	r := newRunner(s, cfg, src, targets)
	r.process()
	t := &Tree{s: s, source: src, dist: r.dist, via: r.via}

	paths := make([]Path, len(targets))
	for i, ti := range targets {
		paths[i] = t.path(ti, cfg.Targets[i], cfg.Output)
	}

	return paths, nil
}

// PathTo reconstructs the tree path to id.
func (t *Tree) PathTo(id string, out Output) (Path, error) {
	i, ok := t.s.Index(id)
	if !ok {
		return Path{}, fmt.Errorf("%w: %q", ErrTargetNotFound, id)
	}

	return t.path(i, id, out), nil
}

func (t *Tree) path(target int, id string, out Output) Path {
	p := Path{Target: id, Cost: t.dist[target]}
	if !p.Reachable() {
		return p
	}

	// Walk predecessors back to the source, then reverse in place.
	var edges []core.EdgeID
	for v := target; v != t.source; v = t.s.Tail(t.via[v]) {
		edges = append(edges, t.via[v])
	}
	for l, r := 0, len(edges)-1; l < r; l, r = l+1, r-1 {
		edges[l], edges[r] = edges[r], edges[l]
	}

	if out == OutputEdges || out == OutputBoth {
		if edges == nil {
			edges = []core.EdgeID{}
		}
		p.Edges = edges
	}
	if out == OutputVertices || out == OutputBoth {
		p.Vertices = make([]string, 0, len(edges)+1)
		p.Vertices = append(p.Vertices, t.s.VertexID(t.source))
		for _, e := range edges {
			p.Vertices = append(p.Vertices, t.s.VertexID(t.s.Head(e)))
		}
	}

	return p
}

// resolve validates inputs and maps IDs to snapshot indices.
func resolve(s *core.Snapshot, cfg Options) (int, []int, error) {
	if cfg.Source == "" {
		return 0, nil, ErrEmptySource
	}
	if s == nil {
		return 0, nil, ErrNilGraph
	}
	src, ok := s.Index(cfg.Source)
	if !ok {
		return 0, nil, fmt.Errorf("%w: %q", ErrVertexNotFound, cfg.Source)
	}
	targets := make([]int, len(cfg.Targets))
	for i, id := range cfg.Targets {
		ti, ok := s.Index(id)
		if !ok {
			return 0, nil, fmt.Errorf("%w: %q", ErrTargetNotFound, id)
		}
		targets[i] = ti
	}
	if cfg.ScanWeights {
		if err := ValidateWeights(s); err != nil {
			return 0, nil, err
		}
	}

	return src, targets, nil
}

// runner holds the mutable state for a single Dijkstra execution.
type runner struct {
	s       *core.Snapshot
	options Options
	dist    []float64
	via     []core.EdgeID
	visited []bool
	pending map[int]struct{} // targets not yet settled; nil means explore everything
	pq      nodePQ
}

func newRunner(s *core.Snapshot, cfg Options, src int, targets []int) *runner {
	V := s.VertexCount()
	r := &runner{
		s:       s,
		options: cfg,
		dist:    make([]float64, V),
		via:     make([]core.EdgeID, V),
		visited: make([]bool, V),
		pq:      make(nodePQ, 0, V),
	}
	for i := range r.dist {
		r.dist[i] = math.Inf(1)
		r.via[i] = -1
	}
	if len(targets) > 0 {
		r.pending = make(map[int]struct{}, len(targets))
		for _, t := range targets {
			r.pending[t] = struct{}{}
		}
	}

	r.dist[src] = 0
	heap.Init(&r.pq)
	heap.Push(&r.pq, &nodeItem{id: src, dist: 0})

	return r
}

// process repeatedly settles the closest unsettled vertex and relaxes its
// outbound edges until the heap empties or every pending target is settled.
func (r *runner) process() {
	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(*nodeItem)
		u := item.id
		if r.visited[u] {
			continue // stale entry
		}
		r.visited[u] = true

		if r.pending != nil {
			delete(r.pending, u)
			if len(r.pending) == 0 {
				return
			}
		}

		r.relax(u)
	}
}

// relax examines each outbound edge of u in ascending EdgeID order.
func (r *runner) relax(u int) {
	for _, e := range r.s.Out(u) {
		w := r.s.Weight(e)
		if w >= r.options.InfEdgeThreshold {
			continue
		}
		v := r.s.Head(e)
		if r.visited[v] {
			continue
		}
		nd := r.dist[u] + w
		if nd >= r.dist[v] {
			continue // strict improvement only
		}
		r.dist[v] = nd
		r.via[v] = e
		heap.Push(&r.pq, &nodeItem{id: v, dist: nd})
	}
}

// nodeItem represents a vertex index and its tentative distance.
type nodeItem struct {
	id   int
	dist float64
}

// nodePQ is a min-heap of *nodeItem ordered by (dist, id).
type nodePQ []*nodeItem

func (pq nodePQ) Len() int { return len(pq) }

func (pq nodePQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}

	return pq[i].id < pq[j].id
}

func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }

func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
