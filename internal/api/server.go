package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/wellsgz/perfreport/internal/collector"
	"github.com/wellsgz/perfreport/internal/logging"
)

const component = "API"

// Server represents the API server
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	handler    *Handler
	registry   *prometheus.Registry
}

// NewServer creates a new API server serving analyses from c
func NewServer(c *collector.Collector) *Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(ErrorHandler())
	router.Use(RequestLogger())
	router.Use(CORS())

	handler := NewHandler(c)

	registry := prometheus.NewRegistry()
	registry.MustRegister(NewMetricsCollector(c))

	SetupRoutes(router, handler, registry)

	return &Server{
		router:   router,
		handler:  handler,
		registry: registry,
	}
}

// Start starts the API server in a blocking manner
func (s *Server) Start(address string) error {
	s.httpServer = &http.Server{
		Addr:         address,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logging.Info(component, "starting server on "+address, nil)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server with a timeout
func (s *Server) Shutdown(timeout time.Duration) error {
	if s.httpServer == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	logging.Info(component, "shutting down server", nil)
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	logging.Info(component, "server stopped", nil)
	return nil
}

// Router returns the underlying Gin router for testing or extension
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Registry returns the Prometheus registry behind /metrics
func (s *Server) Registry() *prometheus.Registry {
	return s.registry
}
