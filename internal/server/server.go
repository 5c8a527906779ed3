// Package server provides the HTTP server for the stringcat API and its
// embedded browser UI.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/stringcat/stringcat/pkg/store"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	manager *store.Manager
	logger  *zerolog.Logger
	config  Config
	httpSrv *http.Server
}

// New creates a new server instance with the given configuration.
func New(manager *store.Manager, logger *zerolog.Logger, cfg Config) *Server {
	return &Server{
		manager: manager,
		logger:  logger,
		config:  cfg,
	}
}

// Handler returns the configured http.Handler with middleware chain applied.
func (s *Server) Handler() http.Handler {
	return s.setupRouter()
}

// ListenAndServe starts the HTTP server and blocks until it stops.
func (s *Server) ListenAndServe() error {
	s.httpSrv = &http.Server{
		Addr:              s.config.Address(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info().
		Str("address", s.config.Address()).
		Str("default_catalog", s.manager.DefaultPath()).
		Msg("Starting HTTP server")
	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	s.logger.Info().Msg("Shutting down HTTP server")
	return s.httpSrv.Shutdown(ctx)
}
