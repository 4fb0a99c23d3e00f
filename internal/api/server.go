// Package api exposes the heatmap engine over HTTP. Input validation
// happens here, at the caller boundary, so the engine's hot path can
// stay failure-free.
package api

import (
	"bytes"
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/signalsfoundry/coverage-mapper/core"
	"github.com/signalsfoundry/coverage-mapper/internal/logging"
	"github.com/signalsfoundry/coverage-mapper/internal/observability"
	"github.com/signalsfoundry/coverage-mapper/internal/render"
	"github.com/signalsfoundry/coverage-mapper/model"
)

// Server holds the composition the HTTP handlers operate on.
type Server struct {
	engine    *core.Engine
	log       logging.Logger
	collector *observability.Collector
}

// NewServer wires handlers around an engine. log and collector may be
// nil.
func NewServer(engine *core.Engine, log logging.Logger, collector *observability.Collector) *Server {
	if log == nil {
		log = logging.Noop()
	}
	return &Server{engine: engine, log: log, collector: collector}
}

// Router builds the gin engine with all routes and middleware.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestIDMiddleware())
	r.Use(requestLogMiddleware(s.log))
	if s.collector != nil {
		r.Use(s.collector.GinMiddleware())
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if s.collector != nil {
		r.GET("/metrics", gin.WrapH(s.collector.Handler()))
	}

	v1 := r.Group("/api/v1")
	{
		v1.POST("/heatmap", s.handleHeatmap)
		v1.POST("/heatmap/render", s.handleHeatmapRender)
	}

	return r
}

func (s *Server) computeFromRequest(c *gin.Context) (*model.HeatmapGrid, bool) {
	var req model.HeatmapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body: " + err.Error()})
		return nil, false
	}
	if err := ValidateRequest(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}

	grid, err := s.engine.ComputeHeatmap(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			// The client went away; nothing useful to answer.
			c.AbortWithStatus(http.StatusServiceUnavailable)
			return nil, false
		}
		s.log.Error(c.Request.Context(), "heatmap computation failed", logging.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "heatmap computation failed"})
		return nil, false
	}
	return grid, true
}

func (s *Server) handleHeatmap(c *gin.Context) {
	grid, ok := s.computeFromRequest(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, grid)
}

func (s *Server) handleHeatmapRender(c *gin.Context) {
	grid, ok := s.computeFromRequest(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := render.PNG(&buf, grid); err != nil {
		s.log.Error(c.Request.Context(), "heatmap render failed", logging.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "render failed"})
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}
