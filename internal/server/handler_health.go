package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// healthResponse is the /healthz payload.
type healthResponse struct {
	Status    string `json:"status"`
	Uptime    string `json:"uptime"`
	Backend   string `json:"backend"`
	RequestID string `json:"request_id"`
}

// handleHealth reports liveness plus backend reachability. The portal is
// useless without its backend, so an unreachable backend degrades the
// status but still answers 200: the process itself is healthy.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:    "ok",
		Uptime:    time.Since(s.startTime).Round(time.Second).String(),
		Backend:   "ok",
		RequestID: RequestIDFromContext(r.Context()),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if _, err := s.backend.Now(ctx); err != nil {
		resp.Status = "degraded"
		resp.Backend = "unreachable"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(resp)
}
