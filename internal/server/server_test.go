package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()

	if cfg.Host != "127.0.0.1" {
		t.Fatalf("Host = %q; want %q", cfg.Host, "127.0.0.1")
	}
	if cfg.Port != 8726 {
		t.Fatalf("Port = %d; want %d", cfg.Port, 8726)
	}
	if cfg.ReadTimeout != 15*time.Second {
		t.Fatalf("ReadTimeout = %v; want %v", cfg.ReadTimeout, 15*time.Second)
	}
	if cfg.WriteTimeout != 0 {
		t.Fatalf("WriteTimeout = %v; want 0 so SSE streams stay open", cfg.WriteTimeout)
	}
	if cfg.IdleTimeout != 60*time.Second {
		t.Fatalf("IdleTimeout = %v; want %v", cfg.IdleTimeout, 60*time.Second)
	}
}

func TestNew_ConfiguresAddressAndHandler(t *testing.T) {
	t.Parallel()

	cfg := Config{Host: "127.0.0.1", Port: 18726, ReadTimeout: time.Second, WriteTimeout: 2 * time.Second, IdleTimeout: 3 * time.Second}
	s := New(http.NewServeMux(), cfg, nil)

	if s.http == nil {
		t.Fatal("server.http should not be nil")
	}
	if s.http.Addr != "127.0.0.1:18726" {
		t.Fatalf("Addr = %q; want %q", s.http.Addr, "127.0.0.1:18726")
	}
	if s.http.Handler == nil {
		t.Fatal("Handler should not be nil")
	}
	if s.http.WriteTimeout != 2*time.Second {
		t.Fatalf("WriteTimeout = %v; want %v", s.http.WriteTimeout, 2*time.Second)
	}
}

func TestStartShutdown(t *testing.T) {
	t.Parallel()

	s := New(http.NewServeMux(), Config{Host: "127.0.0.1", Port: 0}, slog.New(slog.DiscardHandler))

	errCh := make(chan error, 1)
	go func() { errCh <- s.Start() }()
	time.Sleep(50 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown error = %v", err)
	}

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			t.Fatalf("Start returned %v; want http.ErrServerClosed", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Start did not return after Shutdown")
	}
}
