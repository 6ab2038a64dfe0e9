// Package server owns the HTTP server lifecycle for the streamable transport.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Config holds HTTP server configuration.
type Config struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DefaultConfig returns the HTTP defaults. The bind is loopback only, and
// WriteTimeout stays zero because the tool endpoint holds SSE streams open.
func DefaultConfig() Config {
	return Config{
		Host:        "127.0.0.1",
		Port:        8726,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}
}

// Server wraps an http.Server around a prepared handler.
type Server struct {
	config Config
	logger *slog.Logger
	http   *http.Server
}

// New creates an HTTP server for handler with the given configuration.
func New(handler http.Handler, config Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", config.Host, config.Port),
		Handler:      handler,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	return &Server{config: config, logger: logger, http: httpServer}
}

// Start serves until the listener stops. The returned error is always
// non-nil; after Shutdown it is http.ErrServerClosed.
func (s *Server) Start() error {
	s.logger.Info("http server listening", "addr", s.http.Addr)
	return s.http.ListenAndServe()
}

// Shutdown gracefully drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	return nil
}
