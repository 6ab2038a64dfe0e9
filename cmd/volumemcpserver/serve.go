package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/akansha-code/volumemcpserver/internal/api"
	domainauth "github.com/akansha-code/volumemcpserver/internal/domain/auth"
	"github.com/akansha-code/volumemcpserver/internal/domain/volume"
	"github.com/akansha-code/volumemcpserver/internal/infra/audio"
	"github.com/akansha-code/volumemcpserver/internal/infra/config"
	"github.com/akansha-code/volumemcpserver/internal/infra/logging"
	"github.com/akansha-code/volumemcpserver/internal/mcpserver"
	"github.com/akansha-code/volumemcpserver/internal/server"
)

const shutdownTimeout = 10 * time.Second

func serveCmd(configPath *string) *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve MCP over stdio, or over HTTP with --listen or http.enabled",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, *configPath, listen)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "serve streamable HTTP on host:port instead of stdio")
	return cmd
}

func runServe(cmd *cobra.Command, configPath, listen string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}

	if listen != "" {
		host, port, err := parseListen(listen)
		if err != nil {
			return err
		}
		cfg.HTTP.Enabled = true
		cfg.HTTP.Host = host
		cfg.HTTP.Port = port
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A missing audio device is not fatal: the server still comes up and
	// every tool call reports the initialization failure.
	ctrl := volume.NewController(ctx, openerFor(cfg.Audio.Backend), logger)
	defer ctrl.Close() //nolint:errcheck

	mcpServer := mcpserver.New(ctrl)

	if cfg.HTTP.Enabled {
		return serveHTTP(ctx, cfg, mcpServer, logger)
	}
	return serveStdio(ctx, mcpServer, logger)
}

// serveStdio speaks MCP on stdin/stdout until the client disconnects or a
// signal arrives. Logs go to stderr; stdout carries only protocol frames.
func serveStdio(ctx context.Context, mcpServer *mcp.Server, logger *slog.Logger) error {
	logger.Info("serving MCP over stdio")
	if err := mcpServer.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

func serveHTTP(ctx context.Context, cfg config.Config, mcpServer *mcp.Server, logger *slog.Logger) error {
	routerCfg := api.RouterConfig{MCP: mcpServer, Logger: logger}
	if cfg.Auth.Enabled() {
		ttl := time.Duration(cfg.Auth.TokenTTLHours) * time.Hour
		routerCfg.Tokens = domainauth.NewTokenService(cfg.Auth.AccessKeyHash, cfg.Auth.JWTSecret, ttl, logger)
	} else {
		logger.Warn("serving HTTP without authentication; configure auth before binding beyond loopback")
	}

	srvCfg := server.DefaultConfig()
	srvCfg.Host = cfg.HTTP.Host
	srvCfg.Port = cfg.HTTP.Port
	srv := server.New(api.NewRouter(routerCfg), srvCfg, logger)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown error", "error", err)
		}
	}()

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func newLogger(cmd *cobra.Command, cfg config.Config) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	return logging.New(cmd.ErrOrStderr(), level), nil
}

func openerFor(backend string) audio.Opener {
	if backend == config.BackendFake {
		return audio.OpenFake
	}
	return audio.OpenDefault
}

// parseListen splits the --listen flag. An empty host binds all interfaces.
func parseListen(listen string) (string, int, error) {
	host, portStr, err := net.SplitHostPort(listen)
	if err != nil {
		return "", 0, fmt.Errorf("invalid --listen address %q: %w", listen, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", 0, fmt.Errorf("invalid --listen port %q: %w", portStr, err)
	}
	if host == "" {
		host = "0.0.0.0"
	}
	return host, port, nil
}
