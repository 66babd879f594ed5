package handlers

import (
	"net/http"
	"time"
)

// HealthHandler reports process health and which components are running in
// live versus offline mode. Offline modes are degraded but healthy; the
// service answers every request either way.
type HealthHandler struct {
	generationLive bool
	retrievalLive  bool
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(generationLive, retrievalLive bool) *HealthHandler {
	return &HealthHandler{
		generationLive: generationLive,
		retrievalLive:  retrievalLive,
	}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Modes     map[string]string `json:"modes"`
}

// ServeHTTP handles GET /api/health.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Modes: map[string]string{
			"generation": mode(h.generationLive),
			"retrieval":  mode(h.retrievalLive),
		},
	})
}

func mode(live bool) string {
	if live {
		return "live"
	}
	return "offline"
}
