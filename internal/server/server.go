// Package server exposes a running automaton over HTTP: a small control API
// under /api/v1 and a websocket stream of generations.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"toruslife/internal/core"
	"toruslife/internal/logging"
	"toruslife/pkg/life"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Server serves the control API for one automaton.
type Server struct {
	a      *life.Automaton
	params *core.Params
	hub    *Hub
	logger *logging.Logger
	runID  string

	checks []HealthChecker
}

// HealthChecker is an external dependency reported by /api/v1/health.
type HealthChecker interface {
	Name() string
	HealthCheck(ctx context.Context) error
}

// New builds a Server. Install Hub() as an observer on a to stream events.
func New(a *life.Automaton, runID string, logger *logging.Logger) *Server {
	logger = logger.With("component", "server")
	return &Server{
		a:      a,
		params: core.NewParams(a),
		hub:    NewHub(logger),
		logger: logger,
		runID:  runID,
	}
}

// AddHealthCheck registers a dependency for the health endpoint. Call it
// before serving.
func (s *Server) AddHealthCheck(hc HealthChecker) {
	s.checks = append(s.checks, hc)
}

// Hub returns the websocket hub.
func (s *Server) Hub() *Hub { return s.hub }

// ListenAndServe serves on addr until ctx ends, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	s.hub.closeAll()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

// controller returns the running controller or a sentinel error.
func (s *Server) controller() (*life.Controller, error) {
	c := s.a.Controller()
	if c == nil {
		return nil, ErrNotStarted
	}
	if c.State() == life.StateHalted {
		return nil, ErrHalted
	}
	return c, nil
}

// gridRows renders g as one string per row, '#' alive and '.' dead.
func gridRows(g *life.Grid) []string {
	return strings.Split(strings.TrimSuffix(g.String(), "\n"), "\n")
}
