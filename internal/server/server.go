// Package server exposes the chat pipeline over HTTP.
package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"parkassist/internal/common/config"
	"parkassist/internal/common/logger"
	"parkassist/internal/orchestrator"
)

// Pinger is the health-check surface of the session backend. Nil means no
// backend is configured and health reports accordingly.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	engine  *gin.Engine
	cfg     *config.Config
	orch    *orchestrator.Orchestrator
	pinger  Pinger
	started time.Time
	logger  logger.Logger

	httpServer *http.Server
}

func New(cfg *config.Config, orch *orchestrator.Orchestrator, pinger Pinger, log logger.Logger) *Server {
	gin.SetMode(cfg.Server.GinMode)

	s := &Server{
		engine:  gin.New(),
		cfg:     cfg,
		orch:    orch,
		pinger:  pinger,
		started: time.Now(),
		logger:  log.WithFields(map[string]interface{}{"component": "server"}),
	}

	s.engine.Use(gin.Recovery())
	s.engine.Use(requestID())
	s.engine.Use(s.requestLogger())
	s.engine.Use(cors.New(s.corsConfig()))

	s.routes()
	return s
}

func (s *Server) corsConfig() cors.Config {
	cc := cors.DefaultConfig()
	cc.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	cc.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "X-Request-ID"}

	origins := strings.TrimSpace(s.cfg.Server.AllowedOrigins)
	if origins == "" || origins == "*" {
		cc.AllowAllOrigins = true
	} else {
		cc.AllowOrigins = strings.Split(origins, ",")
	}
	return cc
}

func (s *Server) routes() {
	s.engine.GET("/", s.handleRoot)
	s.engine.GET("/health", s.handleHealth)
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := s.engine.Group("/api/v1")
	v1.POST("/chat", s.handleChat)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start begins serving and blocks until the listener fails or Shutdown is
// called.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	s.logger.Info("http server starting", map[string]interface{}{
		"addr": s.cfg.Server.Addr(),
	})

	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
