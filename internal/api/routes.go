// Package api wires the chi router for the streamable HTTP transport.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/akansha-code/volumemcpserver/internal/api/handlers"
	apmiddleware "github.com/akansha-code/volumemcpserver/internal/api/middleware"
	domainauth "github.com/akansha-code/volumemcpserver/internal/domain/auth"
)

// RouterConfig carries the dependencies the router wires together.
type RouterConfig struct {
	// MCP serves every session; the underlying controller is safe for
	// concurrent tool calls.
	MCP *mcp.Server

	// Tokens guards /mcp and enables /auth/token. Nil serves the tool
	// endpoint unauthenticated.
	Tokens *domainauth.TokenService

	// Logger feeds the audit middleware.
	Logger *slog.Logger
}

// NewRouter builds the HTTP router. /health and /auth/token are public;
// everything under /mcp requires a bearer token when a token service is
// configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	// Unauthenticated, used by health probes.
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`)) //nolint:errcheck
	})

	if cfg.Tokens != nil {
		tokenHandler := handlers.NewTokenHandler(cfg.Tokens)
		r.Post("/auth/token", tokenHandler.Token)
	}

	// One endpoint for the whole protocol: POST carries messages, GET holds
	// the SSE stream, DELETE ends the session.
	mcpHandler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return cfg.MCP
	}, nil)

	r.Group(func(r chi.Router) {
		if cfg.Tokens != nil {
			r.Use(apmiddleware.Auth(cfg.Tokens))
			r.Use(apmiddleware.Audit(cfg.Logger))
		}
		r.Handle("/mcp", mcpHandler)
	})

	return r
}
