// SPDX-License-Identifier: MIT

package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/katalvlaran/roadflow/bfs"
	"github.com/katalvlaran/roadflow/core"
	"github.com/katalvlaran/roadflow/demand"
	"github.com/katalvlaran/roadflow/detail"
	"github.com/katalvlaran/roadflow/dijkstra"
	"github.com/katalvlaran/roadflow/ita"
)

// EdgeView is the JSON form of an edge.
type EdgeView struct {
	ID            core.EdgeID `json:"id"`
	From          string      `json:"from"`
	To            string      `json:"to"`
	Length        float64     `json:"dist_km"`
	FreeFlowCost  float64     `json:"free_flow_time_m"`
	UniformCost   float64     `json:"uniform_time_m"`
	Cost          float64     `json:"cost_time_m"`
	Capacity      float64     `json:"capacity"`
	Flow          float64     `json:"flow"`
	CongestedCost float64     `json:"congested_time_m"`
	Gradient      float64     `json:"gradient"`
}

func viewOf(e core.Edge) EdgeView {
	return EdgeView{
		ID: e.ID, From: e.From, To: e.To,
		Length: e.Length, FreeFlowCost: e.FreeFlowCost, UniformCost: e.UniformCost, Cost: e.Cost,
		Capacity: e.Capacity, Flow: e.Flow, CongestedCost: e.CongestedCost, Gradient: e.Gradient,
	}
}

// NetworkResponse answers GET /network.
type NetworkResponse struct {
	Stats core.GraphStats `json:"stats"`
	Edges []EdgeView      `json:"edges,omitempty"`
}

func (s *Server) handleNetwork(c *gin.Context) {
	resp := NetworkResponse{Stats: s.g.Stats()}
	if c.Query("edges") == "true" {
		edges := s.g.Edges()
		resp.Edges = make([]EdgeView, len(edges))
		for i, e := range edges {
			resp.Edges[i] = viewOf(e)
		}
	}
	c.JSON(http.StatusOK, resp)
}

// handleEdge answers with the lowest-ID link ?from=→?to=, or with every link
// leaving ?from= when ?to= is absent.
func (s *Server) handleEdge(c *gin.Context) {
	from, to := c.Query("from"), c.Query("to")
	if from == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from is required"})
		return
	}

	if to != "" {
		e, err := s.g.EdgeBetween(from, to)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, viewOf(e))
		return
	}

	ids, err := s.g.OutEdges(from)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	views := make([]EdgeView, 0, len(ids))
	for _, id := range ids {
		e, err := s.g.Edge(id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		views = append(views, viewOf(e))
	}
	c.JSON(http.StatusOK, views)
}

// RouteResponse answers GET /route.
type RouteResponse struct {
	From      string        `json:"from"`
	To        string        `json:"to"`
	Weight    string        `json:"weight"`
	Reachable bool          `json:"reachable"`
	Cost      *float64      `json:"cost"`
	Edges     []core.EdgeID `json:"edges"`
	Vertices  []string      `json:"vertices"`
}

func (s *Server) handleRoute(c *gin.Context) {
	from, to := c.Query("from"), c.Query("to")
	if from == "" || to == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from and to are required"})
		return
	}
	weight := c.DefaultQuery("weight", core.AttrFreeFlowCost.String())
	attr, err := core.ParseAttribute(weight)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snap, err := s.g.Snapshot(attr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	paths, err := dijkstra.ShortestPaths(snap,
		dijkstra.Source(from),
		dijkstra.Targets(to),
		dijkstra.WithOutput(dijkstra.OutputBoth),
	)
	switch {
	case errors.Is(err, dijkstra.ErrVertexNotFound), errors.Is(err, dijkstra.ErrTargetNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	p := paths[0]
	resp := RouteResponse{From: from, To: to, Weight: weight, Reachable: p.Reachable(), Edges: p.Edges, Vertices: p.Vertices}
	if p.Reachable() {
		cost := p.Cost
		resp.Cost = &cost
	}
	c.JSON(http.StatusOK, resp)
}

// Reached is one vertex of a reachability answer.
type Reached struct {
	ID    string `json:"id"`
	Hops  int    `json:"hops"`
	Layer string `json:"layer,omitempty"`
}

// ReachResponse answers GET /reach.
type ReachResponse struct {
	From     string    `json:"from"`
	Vertices []Reached `json:"vertices"`
}

// handleReach lists vertices reachable from ?from= by hop count, ignoring
// edges below ?min_capacity= and stopping after ?max_depth= hops.
func (s *Server) handleReach(c *gin.Context) {
	from := c.Query("from")
	if from == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from is required"})
		return
	}
	depth, err := strconv.Atoi(c.DefaultQuery("max_depth", "0"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "max_depth: " + err.Error()})
		return
	}
	minCap, err := strconv.ParseFloat(c.DefaultQuery("min_capacity", "0"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "min_capacity: " + err.Error()})
		return
	}

	snap, err := s.g.Snapshot(core.AttrCapacity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	res, err := bfs.BFS(snap, from,
		bfs.WithContext(c.Request.Context()),
		bfs.WithMaxDepth(depth),
		bfs.WithMinWeight(snap, minCap),
	)
	switch {
	case errors.Is(err, bfs.ErrStartVertexNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp := ReachResponse{From: from, Vertices: make([]Reached, 0, len(res.Order))}
	for _, id := range res.Order {
		r := Reached{ID: id, Hops: res.Depth[id]}
		if v, err := s.g.Vertex(id); err == nil {
			r.Layer = v.Layer
		}
		resp.Vertices = append(resp.Vertices, r)
	}
	c.JSON(http.StatusOK, resp)
}

// AssignRequest is the body of POST /assign. Unset fields keep the server
// defaults.
type AssignRequest struct {
	Entries     []demand.Entry `json:"entries" binding:"required,min=1"`
	BaseCost    string         `json:"base_cost_attribute"`
	Schedule    []float64      `json:"schedule"`
	A           *float64       `json:"a"`
	B           *float64       `json:"b"`
	DemandScale *float64       `json:"demand_scale"`
	PathDetail  *bool          `json:"capture_path_detail"`
}

// options layers the request overrides over base.
func (r AssignRequest) options(base []ita.Option) ([]ita.Option, error) {
	opts := append([]ita.Option(nil), base...)
	if r.BaseCost != "" {
		attr, err := core.ParseAttribute(r.BaseCost)
		if err != nil {
			return nil, err
		}
		opts = append(opts, ita.WithBaseCost(attr))
	}
	if r.Schedule != nil {
		opts = append(opts, ita.WithSchedule(r.Schedule...))
	}
	if r.A != nil || r.B != nil {
		a, b := r.A, r.B
		opts = append(opts, func(o *ita.Options) {
			if a != nil {
				o.BPR.A = *a
			}
			if b != nil {
				o.BPR.B = *b
			}
		})
	}
	if r.DemandScale != nil {
		opts = append(opts, ita.WithDemandScale(*r.DemandScale))
	}
	if r.PathDetail != nil {
		opts = append(opts, ita.WithPathDetail(*r.PathDetail))
	}

	return opts, nil
}

// AssignResponse answers POST /assign. Edges lists loaded edges only.
type AssignResponse struct {
	Fractions   []ita.FractionStats `json:"fractions"`
	Unreachable int                 `json:"unreachable"`
	Stats       core.GraphStats     `json:"stats"`
	Edges       []EdgeView          `json:"edges"`
	Detail      []detail.Row        `json:"detail,omitempty"`
}

func (s *Server) handleAssign(c *gin.Context) {
	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b := demand.NewBuilder(s.demand...)
	if err := b.AddEntries(req.Entries); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	opts, err := req.options(append([]ita.Option{ita.WithLogger(s.log)}, s.run...))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	g := s.g.Clone()
	res, err := ita.Run(c.Request.Context(), g, b.Build(), opts...)
	if err != nil {
		_ = c.Error(err)
		c.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}

	resp := AssignResponse{
		Fractions:   res.Fractions,
		Unreachable: res.Unreachable(),
		Stats:       res.Stats,
		Edges:       []EdgeView{},
		Detail:      res.Detail,
	}
	for _, e := range g.Edges() {
		if e.Flow > 0 {
			resp.Edges = append(resp.Edges, viewOf(e))
		}
	}
	c.JSON(http.StatusOK, resp)
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, ita.ErrConfig):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
