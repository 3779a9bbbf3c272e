// SPDX-License-Identifier: MIT
//
// Package httpapi exposes a road network over HTTP with gin.
//
//	GET  /health   liveness
//	GET  /network  graph statistics, edges with ?edges=true
//	GET  /edge     links leaving ?from=, or the first link ?from=&to=
//	GET  /route    one shortest path: ?from=&to=[&weight=]
//	GET  /reach    vertices reachable by hop count: ?from=[&max_depth=][&min_capacity=]
//	POST /assign   incremental assignment of a posted OD table
//
// The served graph is never mutated: every assignment runs on a clone, so
// concurrent requests do not interfere.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/roadflow/core"
	"github.com/katalvlaran/roadflow/demand"
	"github.com/katalvlaran/roadflow/ita"
)

// ShutdownTimeout bounds graceful shutdown in ListenAndServe.
const ShutdownTimeout = 10 * time.Second

// Server serves one immutable road network.
type Server struct {
	g      *core.Graph
	run    []ita.Option
	demand []demand.Option
	log    logrus.FieldLogger
	engine *gin.Engine
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and assignment logger. Panics on nil.
func WithLogger(l logrus.FieldLogger) Option {
	if l == nil {
		panic("httpapi: WithLogger(nil)")
	}

	return func(s *Server) { s.log = l }
}

// WithRunOptions sets the assignment defaults that requests may override.
func WithRunOptions(opts ...ita.Option) Option {
	return func(s *Server) { s.run = append(s.run, opts...) }
}

// WithDemandOptions sets how posted OD entries are built into a matrix.
func WithDemandOptions(opts ...demand.Option) Option {
	return func(s *Server) { s.demand = append(s.demand, opts...) }
}

// New builds the routes over g.
func New(g *core.Graph, opts ...Option) *Server {
	s := &Server{g: g, log: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(s)
	}

	r := gin.New()
	r.Use(gin.Recovery(), s.requestLog())

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	config.AllowHeaders = []string{"*"}
	r.Use(cors.New(config))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	r.GET("/network", s.handleNetwork)
	r.GET("/edge", s.handleEdge)
	r.GET("/route", s.handleRoute)
	r.GET("/reach", s.handleReach)
	r.POST("/assign", s.handleAssign)

	s.engine = r

	return s
}

// Handler returns the gin engine.
func (s *Server) Handler() http.Handler { return s.engine }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.log.Infof("[HTTP]: listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
		close(serverErrors)
	}()

	select {
	case <-ctx.Done():
		s.log.Info("[HTTP]: shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		s.log.Info("[HTTP]: stopped gracefully")

		return nil
	case err, ok := <-serverErrors:
		if !ok {
			return nil
		}

		return err
	}
}

func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		entry := s.log.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start),
		})
		if len(c.Errors) > 0 {
			entry.Warn(c.Errors.String())
			return
		}
		entry.Debug("[HTTP]: request")
	}
}
