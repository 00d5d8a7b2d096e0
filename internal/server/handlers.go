package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"parkassist/internal/models"
)

// handleChat is the single conversational endpoint. A missing user_id gets a
// generated one so anonymous clients still keep per-conversation context, as
// long as they echo the id back. Only malformed JSON earns a 400; an empty or
// absent message is answered by the pipeline's location prompt.
func (s *Server) handleChat(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "invalid request body",
			"status": models.StatusError,
		})
		return
	}

	if req.UserID == "" {
		req.UserID = uuid.NewString()
	}

	resp := s.orch.HandleMessage(c.Request.Context(), &req)
	c.JSON(http.StatusOK, gin.H{
		"user_id":  req.UserID,
		"response": resp,
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	sessionBackend := "in-memory"
	healthy := true

	if s.pinger != nil {
		if err := s.pinger.Ping(c.Request.Context()); err != nil {
			sessionBackend = "redis: " + err.Error()
			healthy = false
		} else {
			sessionBackend = "redis"
		}
	}

	status := http.StatusOK
	state := "healthy"
	if !healthy {
		status = http.StatusServiceUnavailable
		state = "degraded"
	}

	c.JSON(status, gin.H{
		"status":          state,
		"service":         s.cfg.App.Name,
		"version":         s.cfg.App.Version,
		"uptime":          time.Since(s.started).Round(time.Second).String(),
		"session_backend": sessionBackend,
	})
}

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service":     s.cfg.App.Name,
		"version":     s.cfg.App.Version,
		"description": "Conversational assistant for finding UK parking",
		"endpoints": gin.H{
			"chat":    "POST /api/v1/chat",
			"health":  "GET /health",
			"metrics": "GET /metrics",
		},
	})
}
