package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/carblens/backend/config"
	"github.com/carblens/backend/internal/api"
	"github.com/carblens/backend/internal/middleware"
	"github.com/carblens/backend/internal/store"
)

// Server represents the HTTP server.
type Server struct {
	router *gin.Engine
	http   *http.Server
}

// NewServer creates a new server instance wired onto the given store.
func NewServer(cfg *config.Config, kv store.Store) *Server {
	router := gin.Default()

	router.Use(middleware.CORS())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api.SetupAPI(router, cfg, kv)

	return &Server{
		router: router,
		http: &http.Server{
			Addr:    cfg.ServerHost + ":" + cfg.ServerPort,
			Handler: router,
		},
	}
}

// Start starts the server and blocks until it stops.
func (s *Server) Start() error {
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
