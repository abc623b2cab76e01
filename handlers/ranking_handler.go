package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Dosada05/beach-tournament/services"
)

const (
	defaultTopLimit = 10
	maxTopLimit     = 100
)

type RankingHandler struct {
	session *services.Session
}

func NewRankingHandler(session *services.Session) *RankingHandler {
	return &RankingHandler{session: session}
}

// ListHandler handles GET /ranking
func (h *RankingHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	entries, err := h.session.Ranking(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"ranking": entries}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// TopHandler handles GET /ranking/top?limit=N
func (h *RankingHandler) TopHandler(w http.ResponseWriter, r *http.Request) {
	limit := defaultTopLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 || v > maxTopLimit {
			badRequestResponse(w, r, errors.New("limit must be between 1 and 100"))
			return
		}
		limit = v
	}
	entries, err := h.session.TopRanking(r.Context(), limit)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"ranking": entries}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
