// Package server exposes the aggregation tools over HTTP for the
// tool-invocation harness. One POST endpoint per call, a discovery
// listing, and a health check.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/joblens/joblens/internal/dispatch"
)

// Server serves tool calls over HTTP.
type Server struct {
	dispatcher *dispatch.Dispatcher
	router     chi.Router
}

// New builds the router around the dispatcher.
func New(d *dispatch.Dispatcher) *Server {
	s := &Server{dispatcher: d}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(logRequests)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/healthz", s.handleHealth)
	r.Get("/v1/tools", s.handleListTools)
	r.Post("/v1/tools/{tool}", s.handleToolCall)

	s.router = r
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type toolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Server) handleListTools(w http.ResponseWriter, _ *http.Request) {
	names := s.dispatcher.Names()
	tools := make([]toolInfo, 0, len(names))
	for _, name := range names {
		reg, _ := s.dispatcher.Describe(name)
		tools = append(tools, toolInfo{Name: name, Description: reg.Description})
	}
	writeJSON(w, http.StatusOK, map[string]any{"tools": tools})
}

func (s *Server) handleToolCall(w http.ResponseWriter, r *http.Request) {
	tool := chi.URLParam(r, "tool")

	params := map[string]any{}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid JSON body"})
			return
		}
	}

	if _, ok := s.dispatcher.Describe(tool); !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": fmt.Sprintf("unknown tool %q", tool)})
		return
	}

	content, err := s.dispatcher.Dispatch(r.Context(), tool, params)
	if err != nil {
		var verr *dispatch.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"error":  "invalid parameters",
				"fields": verr.Fields,
			})
			return
		}
		zap.L().Error("server: dispatch failed", zap.String("tool", tool), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"content": content})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zap.L().Warn("server: write response", zap.Error(err))
	}
}
