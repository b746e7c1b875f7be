// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package api exposes the research engine over HTTP for browser and
// service consumers. The surface is deliberately small: submit a
// request, screen a request, and inspect stored runs.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/pdiddy/learnpath/internal/engine"
	"github.com/pdiddy/learnpath/internal/store"
	"github.com/pdiddy/learnpath/internal/video"
	"github.com/pdiddy/learnpath/pkg/types"
)

// Server holds the HTTP handlers and their dependencies.
type Server struct {
	Engine *engine.Engine
	Cfg    types.ServeConfig
}

// NewServer returns an HTTP server front for the engine.
func NewServer(e *engine.Engine, cfg types.ServeConfig) *Server {
	return &Server{Engine: e, Cfg: cfg}
}

// Handler builds the routed handler.
func (s *Server) Handler() http.Handler {
	origins := s.Cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/api/research", s.handleResearch)
	r.Post("/api/safety", s.handleSafety)

	r.Route("/api/runs", func(r chi.Router) {
		r.Get("/", s.handleListRuns)
		r.Get("/{id}", s.handleGetRun)
		r.Post("/{id}/verify", s.handleReverify)
	})

	return r
}

// ListenAndServe runs the server until the listener fails.
func (s *Server) ListenAndServe() error {
	srv := &http.Server{
		Addr:         s.Cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  time.Minute,
		WriteTimeout: 5 * time.Minute,
	}
	return srv.ListenAndServe()
}

func (s *Server) handleResearch(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}

	outcome, err := s.Engine.Run(r.Context(), req)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, video.ErrSourceExhausted) {
			status = http.StatusServiceUnavailable
		}
		writeError(w, status, fmt.Sprintf("research failed: %v", err))
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}

func (s *Server) handleSafety(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}
	decision := s.Engine.Safety.Screen(r.Context(), req)
	writeJSON(w, http.StatusOK, decision)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.Engine.Store == nil {
		writeError(w, http.StatusServiceUnavailable, "run store not configured")
		return
	}
	runs, err := s.Engine.Store.ListRuns(r.Context(), 0)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if runs == nil {
		runs = []store.RunSummary{}
	}
	writeJSON(w, http.StatusOK, runs)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if s.Engine.Store == nil {
		writeError(w, http.StatusServiceUnavailable, "run store not configured")
		return
	}
	outcome, err := s.Engine.Store.GetRun(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "run not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}

func (s *Server) handleReverify(w http.ResponseWriter, r *http.Request) {
	outcome, err := s.Engine.Reverify(r.Context(), chi.URLParam(r, "id"))
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "run not found")
		return
	case errors.Is(err, engine.ErrRunNotVerifiable):
		writeError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}

// decodeRequest parses and validates the request body shared by the
// research and safety endpoints.
func decodeRequest(w http.ResponseWriter, r *http.Request) (types.Request, bool) {
	var req types.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return req, false
	}
	if req.Topic == "" {
		writeError(w, http.StatusBadRequest, "topic is required")
		return req, false
	}
	if req.Level == "" {
		req.Level = types.LevelBeginner
	}
	if !types.ValidLevel(req.Level) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown level %q", req.Level))
		return req, false
	}
	return req, true
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
