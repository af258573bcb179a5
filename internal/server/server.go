// Package server exposes the analysis pipeline over REST.
package server

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"sentimizer/internal/apperr"
	"sentimizer/internal/metrics"
	"sentimizer/internal/roster"
	"sentimizer/internal/service"
)

// Server wires HTTP routes to the analyzer. The roster used for matching
// is the one loaded at startup; the refresh endpoint only updates the
// on-disk file for the next start.
type Server struct {
	analyzer   *service.Analyzer
	fetcher    *roster.Fetcher
	rosterPath string
	collector  *metrics.Collector
	logger     *slog.Logger
}

// New creates a Server. fetcher and collector may be nil; the matching
// routes then return 503 and zeroed stats respectively.
func New(analyzer *service.Analyzer, fetcher *roster.Fetcher, rosterPath string, collector *metrics.Collector) *Server {
	return &Server{
		analyzer:   analyzer,
		fetcher:    fetcher,
		rosterPath: rosterPath,
		collector:  collector,
		logger:     slog.Default(),
	}
}

// Handler builds the gin engine with all routes registered.
func (s *Server) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger())

	router.POST("/analyze", s.handleAnalyze)
	router.POST("/analyze/setup", s.handleSetup)
	router.GET("/analyze/example", s.handleExample)
	router.GET("/nfl/athletes", s.handleFetchAthletes)
	router.GET("/nfl/player/photo/:id", s.handlePlayerPhoto)
	router.GET("/health", s.handleHealth)
	router.GET("/stats", s.handleStats)

	return router
}

type analyzeRequest struct {
	Transcript string `json:"transcript"`
}

func (s *Server) handleAnalyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	verdicts, err := s.analyzer.Analyze(c.Request.Context(), req.Transcript)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, verdicts)
}

func (s *Server) handleSetup(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	result, err := s.analyzer.Setup(c.Request.Context(), req.Transcript)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleExample(c *gin.Context) {
	verdicts, err := s.analyzer.AnalyzeExample(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, verdicts)
}

// handleFetchAthletes refreshes the on-disk roster from the sports-data
// provider. The in-memory roster is untouched until the next restart.
func (s *Server) handleFetchAthletes(c *gin.Context) {
	if s.fetcher == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "roster fetching disabled"})
		return
	}

	start := time.Now()
	entries, err := s.fetcher.Fetch(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	if s.collector != nil {
		s.collector.RecordTiming(metrics.OpRosterFetch, time.Since(start))
	}

	if err := roster.Save(s.rosterPath, entries); err != nil {
		s.writeError(c, apperr.Config(err, "save roster"))
		return
	}

	s.logger.Info("roster refreshed", "players", len(entries), "path", s.rosterPath)
	c.JSON(http.StatusOK, gin.H{"players": len(entries), "path": s.rosterPath})
}

func (s *Server) handlePlayerPhoto(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "player id required"})
		return
	}
	c.Redirect(http.StatusFound, roster.PhotoURL(id))
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleStats(c *gin.Context) {
	if s.collector == nil {
		c.JSON(http.StatusOK, metrics.Snapshot{})
		return
	}
	c.JSON(http.StatusOK, s.collector.Snapshot())
}

// writeError maps pipeline errors onto HTTP statuses: bad input is the
// caller's fault, upstream model failures are a bad gateway, everything
// else is internal.
func (s *Server) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperr.ErrInput):
		status = http.StatusBadRequest
	case errors.Is(err, apperr.ErrUpstream):
		status = http.StatusBadGateway
	}

	if status == http.StatusInternalServerError || status == http.StatusBadGateway {
		s.logger.Error("request failed", "path", c.Request.URL.Path, "error", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
