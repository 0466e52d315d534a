// Package server exposes the lifecycle manager over an admin HTTP API.
// It serves back-office tooling; cardholder-facing traffic never reaches
// this surface.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/Brahim-semlali/life-cycle-token-sub000/internal/export"
	"github.com/Brahim-semlali/life-cycle-token-sub000/internal/lifecycle"
	"github.com/Brahim-semlali/life-cycle-token-sub000/internal/token"
)

// Server wires the lifecycle manager into a gin router.
type Server struct {
	manager *lifecycle.Manager
	log     *slog.Logger
	engine  *gin.Engine
}

// transitionRequest is the POST /transition body. The tokenaction rule
// restricts Action to the defined lifecycle actions before the manager
// sees the request.
type transitionRequest struct {
	Action string `json:"action" binding:"required,tokenaction"`
	Reason string `json:"reason" binding:"required"`
	Note   string `json:"note"`
}

// validTokenAction backs the tokenaction binding rule.
func validTokenAction(fl validator.FieldLevel) bool {
	return token.Action(fl.Field().String()).IsValid()
}

// New builds the admin server.
func New(manager *lifecycle.Manager, log *slog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		manager: manager,
		log:     log,
		engine:  gin.New(),
	}
	s.engine.Use(gin.Recovery())

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("tokenaction", validTokenAction)
	}

	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := s.engine.Group("/api")
	api.GET("/tokens", s.handleList)
	api.GET("/tokens/export", s.handleExport)
	api.GET("/tokens/:id", s.handleGet)
	api.POST("/tokens/:id/refresh", s.handleRefresh)
	api.POST("/tokens/:id/transition", s.handleTransition)
	api.GET("/tokens/:id/actions", s.handleActions)
	api.GET("/tokens/:id/pending", s.handleGetPending)
	api.DELETE("/tokens/:id/pending", s.handleCancelPending)

	return s
}

// Handler returns the http.Handler for mounting or testing.
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves until the listener fails.
func (s *Server) Run(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.log.Info("admin server listening", "addr", addr)
	return srv.ListenAndServe()
}

func (s *Server) handleList(c *gin.Context) {
	opts := lifecycle.ListOptions{
		TSP:           c.Query("tsp"),
		Requestor:     c.Query("requestor"),
		Search:        c.Query("search"),
		EnrichDetails: c.Query("details") == "true",
	}
	opts.Filter.Status = c.Query("status")
	opts.Filter.Value = c.Query("value")

	tokens, err := s.manager.ListTokens(c.Request.Context(), opts)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tokens": tokens, "count": len(tokens)})
}

func (s *Server) handleExport(c *gin.Context) {
	opts := lifecycle.ListOptions{
		TSP:    c.Query("tsp"),
		Search: c.Query("search"),
	}
	opts.Filter.Status = c.Query("status")

	tokens, err := s.manager.ListTokens(c.Request.Context(), opts)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+export.Filename(time.Now()))
	c.Header("Content-Type", "text/csv")
	if err := export.WriteCSV(c.Writer, tokens); err != nil {
		s.log.Error("csv export failed", "error", err)
	}
}

func (s *Server) handleGet(c *gin.Context) {
	tok, err := s.manager.GetToken(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, tok)
}

func (s *Server) handleRefresh(c *gin.Context) {
	tok, err := s.manager.Refresh(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, tok)
}

func (s *Server) handleTransition(c *gin.Context) {
	var req transitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "invalid_request"})
		return
	}
	tok, err := s.manager.RequestTransition(c.Request.Context(), c.Param("id"), token.Action(req.Action), req.Reason, req.Note)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, tok)
}

func (s *Server) handleActions(c *gin.Context) {
	actions := s.manager.AllowedActions(c.Param("id"))
	out := make([]gin.H, 0, len(actions))
	for _, a := range actions {
		out = append(out, gin.H{
			"action":  a,
			"target":  a.Target(),
			"reasons": token.Reasons(a),
		})
	}
	c.JSON(http.StatusOK, gin.H{"actions": out})
}

func (s *Server) handleGetPending(c *gin.Context) {
	pc, ok := s.manager.PendingChange(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no pending change", "kind": "not_found"})
		return
	}
	c.JSON(http.StatusOK, pc)
}

func (s *Server) handleCancelPending(c *gin.Context) {
	if !s.manager.CancelPending(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no pending change", "kind": "not_found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cancelled": true})
}

// renderError maps the error taxonomy onto HTTP statuses. The kind field
// is the stable contract; messages are advisory.
func (s *Server) renderError(c *gin.Context, err error) {
	kind := token.Kind(err)
	status := http.StatusInternalServerError
	switch kind {
	case token.KindInvalidTransition:
		status = http.StatusConflict
	case token.KindInvalidReason:
		status = http.StatusUnprocessableEntity
	case token.KindMissingExternalIdentifiers:
		status = http.StatusUnprocessableEntity
	case token.KindNotFound:
		status = http.StatusNotFound
	case token.KindExternalCommunication:
		status = http.StatusBadGateway
	}
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed", "path", c.FullPath(), "kind", kind, "error", err)
	}
	c.JSON(status, gin.H{"error": err.Error(), "kind": kind})
}
