package handlers

import (
	"context"
	"net/http"
	"time"
)

type healthResponse struct {
	Status string `json:"status"`
}

// HealthHandler não exige autenticação.
func (s *Server) HealthHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

// UtilsHealthHandler também verifica se o store responde.
func (s *Server) UtilsHealthHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.tasks.Ping(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "healthy"})
}

// MeHandler devolve a identidade decodificada do token.
func (s *Server) MeHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, mustIdentity(r))
}
