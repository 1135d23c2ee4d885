package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/emiliopalmerini/codebuddy/internal/analytics"
	"github.com/emiliopalmerini/codebuddy/internal/problems"
)

type Server struct {
	router    *gin.Engine
	port      int
	problems  *problems.Service
	analytics *analytics.Service
	logger    *zap.Logger
}

func NewServer(port int, ps *problems.Service, as *analytics.Service, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		router:    gin.New(),
		port:      port,
		problems:  ps,
		analytics: as,
		logger:    logger,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(requestID(), accessLog(s.logger), gin.Recovery(), corsMiddleware())

	// Health check
	s.router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	// Pages
	s.router.GET("/", s.handleDashboard)

	api := s.router.Group("/api")
	api.GET("/problems", s.handleListProblems)
	api.GET("/problems/:id", s.handleGetProblem)
	api.POST("/problems", s.handleCreateProblem)
	api.PUT("/problems/:id", s.handleUpdateProblem)
	api.DELETE("/problems/:id", s.handleDeleteProblem)
	api.GET("/analytics", s.handleAnalytics)
	api.GET("/export", s.handleExport)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	fmt.Printf("Starting server at http://localhost:%d\n", s.port)

	// Handle graceful shutdown
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("server shutdown error", zap.Error(err))
		}
	}()

	err := server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil // Graceful shutdown
	}
	return err
}
