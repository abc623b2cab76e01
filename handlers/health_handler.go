package handlers

import (
	"net/http"

	"github.com/Dosada05/beach-tournament/services"
)

type HealthHandler struct {
	session *services.Session
}

func NewHealthHandler(session *services.Session) *HealthHandler {
	return &HealthHandler{session: session}
}

// Check handles GET /health. It reports 503 when the snapshot store cannot be read.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	snap, err := h.session.Snapshot(r.Context())
	if err != nil {
		errorResponse(w, r, http.StatusServiceUnavailable, "snapshot store unavailable")
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"status": "ok", "phase": snap.Phase}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
