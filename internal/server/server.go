// Package server exposes the modularization engine over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"modjsx/internal/engine"
	"modjsx/internal/parser"
)

// Server wraps an engine with the JSON API. The engine is safe for
// concurrent use, so one instance serves all requests.
type Server struct {
	engine *engine.Engine
	mux    *http.ServeMux
}

func New(eng *engine.Engine) *Server {
	s := &Server{engine: eng, mux: http.NewServeMux()}
	s.mux.HandleFunc("/api/modularize", s.handleModularize)
	s.mux.HandleFunc("/healthz", s.handleHealth)
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe serves the API on addr until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.mux)
}

type modularizeRequest struct {
	Code any    `json:"code"`
	Lang string `json:"lang,omitempty"`
}

type modularizeResponse struct {
	UpdatedApp     string             `json:"updatedApp"`
	Components     []engine.Component `json:"components"`
	ProcessingTime int64              `json:"processingTime"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func (s *Server) handleModularize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}

	var req modularizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	code, ok := req.Code.(string)
	if !ok || code == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "code must be a non-empty string"})
		return
	}

	lang := parser.JSX
	if req.Lang == "tsx" {
		lang = parser.TSX
	}

	result, err := s.engine.ProcessLang(r.Context(), code, lang)
	if err != nil {
		var perr *parser.ParseError
		if errors.As(err, &perr) {
			writeJSON(w, http.StatusInternalServerError, errorResponse{
				Error:   "failed to parse input",
				Message: perr.Message,
			})
			return
		}
		log.Printf("modularize failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   "internal error",
			Message: err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, modularizeResponse{
		UpdatedApp:     result.UpdatedApp,
		Components:     result.Components,
		ProcessingTime: result.ProcessingTime.Milliseconds(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("write response: %v", err)
	}
}
