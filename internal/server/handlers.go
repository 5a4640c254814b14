package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"toruslife/internal/core"
	"toruslife/pkg/life"
)

const maxBodyBytes = 1 << 12

// StateResponse is returned by GET /state.
type StateResponse struct {
	RunID      string `json:"run_id,omitempty"`
	Rows       int    `json:"rows"`
	Cols       int    `json:"cols"`
	Generation int    `json:"generation"`
	Population int    `json:"population"`
	Running    bool   `json:"running"`
	State      string `json:"state"`
	Automatic  bool   `json:"automatic"`
	DelayMS    int64  `json:"delay_ms"`
	Cause      string `json:"cause,omitempty"`
}

// GridResponse is returned by GET /grid.
type GridResponse struct {
	Generation int      `json:"generation"`
	Rows       int      `json:"rows"`
	Cols       int      `json:"cols"`
	Cells      []string `json:"cells"`
}

// CellResponse is returned by GET /cells/{row}/{col}.
type CellResponse struct {
	Row         int    `json:"row"`
	Col         int    `json:"col"`
	Alive       bool   `json:"alive"`
	Description string `json:"description"`
}

type automaticRequest struct {
	Enabled bool `json:"enabled"`
}

type delayRequest struct {
	DelayMS *int64 `json:"delay_ms"`
}

// HealthResponse is returned by GET /health. Checks maps each registered
// dependency to "ok" or its error.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok"}
	code := http.StatusOK
	if len(s.checks) > 0 {
		resp.Checks = make(map[string]string, len(s.checks))
	}
	for _, hc := range s.checks {
		if err := hc.HealthCheck(r.Context()); err != nil {
			s.logger.Warn("health check failed", "dependency", hc.Name(), "error", err)
			resp.Checks[hc.Name()] = err.Error()
			resp.Status = "degraded"
			code = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[hc.Name()] = "ok"
	}
	writeJSON(w, code, resp)
}

func (s *Server) state() StateResponse {
	size := s.a.Size()
	resp := StateResponse{
		RunID:      s.runID,
		Rows:       size.Rows,
		Cols:       size.Cols,
		Generation: s.a.Generation(),
		Population: s.a.Population(),
		Running:    s.a.Running(),
		State:      life.StateIdle.String(),
		DelayMS:    s.a.Config().Delay.Milliseconds(),
	}
	if c := s.a.Controller(); c != nil {
		resp.State = c.State().String()
		resp.Automatic = c.Automatic()
		resp.DelayMS = c.Delay().Milliseconds()
		if cause := c.Cause(); cause != 0 {
			resp.Cause = cause.String()
		}
	}
	return resp
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.state())
}

func (s *Server) handleGrid(w http.ResponseWriter, r *http.Request) {
	g := s.a.Snapshot()
	if r.URL.Query().Get("format") == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		//nolint:errcheck // connection may be gone
		w.Write([]byte(g.String()))
		return
	}
	writeJSON(w, http.StatusOK, GridResponse{
		Generation: s.a.Generation(),
		Rows:       g.Rows(),
		Cols:       g.Cols(),
		Cells:      gridRows(g),
	})
}

func (s *Server) handleCell(w http.ResponseWriter, r *http.Request) {
	row, errRow := strconv.Atoi(chi.URLParam(r, "row"))
	col, errCol := strconv.Atoi(chi.URLParam(r, "col"))
	if errRow != nil || errCol != nil {
		writeBadRequest(w, "row and col must be integers")
		return
	}
	cell, err := s.a.CellAt(life.Position{Row: row, Col: col})
	if errors.Is(err, life.ErrOutOfRange) {
		writeNotFound(w, err.Error())
		return
	}
	if err != nil {
		writeInternalError(w, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, CellResponse{Row: row, Col: col, Alive: cell.Alive(), Description: cell.String()})
}

func (s *Server) handleParameters(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.params.Snapshot())
}

func (s *Server) handleStep(w http.ResponseWriter, _ *http.Request) {
	c, err := s.controller()
	if err != nil {
		writeConflict(w, err.Error())
		return
	}
	c.RequestStep()
	writeJSON(w, http.StatusAccepted, s.state())
}

func (s *Server) handleAutomatic(w http.ResponseWriter, r *http.Request) {
	var req automaticRequest
	if err := decode(w, r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	if _, err := s.controller(); err != nil {
		writeConflict(w, err.Error())
		return
	}
	s.params.SetBoolParameter(core.KeyAutomatic, req.Enabled)
	writeJSON(w, http.StatusOK, s.state())
}

func (s *Server) handleDelay(w http.ResponseWriter, r *http.Request) {
	var req delayRequest
	if err := decode(w, r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	if req.DelayMS == nil || *req.DelayMS < 0 {
		writeBadRequest(w, "delay_ms must be a non-negative integer")
		return
	}
	c, err := s.controller()
	if err != nil {
		writeConflict(w, err.Error())
		return
	}
	c.SetDelay(time.Duration(*req.DelayMS) * time.Millisecond)
	writeJSON(w, http.StatusOK, s.state())
}

func (s *Server) handleKill(w http.ResponseWriter, _ *http.Request) {
	s.a.ForceStop()
	s.logger.Warn("kill switch used via api")
	writeJSON(w, http.StatusAccepted, s.state())
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
