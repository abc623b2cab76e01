package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/beach-tournament/models"
)

type submitResultInput struct {
	Sets []models.SetScore `json:"sets"`
}

// SubmitResultHandler handles POST /matches/{matchID}/result
func (h *TournamentHandler) SubmitResultHandler(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input submitResultInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if len(input.Sets) == 0 {
		badRequestResponse(w, r, errors.New("sets are required"))
		return
	}

	match, err := h.session.SubmitMatchResult(r.Context(), matchID, input.Sets)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SimulateHandler handles POST /matches/{matchID}/simulate
func (h *TournamentHandler) SimulateHandler(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	match, err := h.session.SimulateMatch(r.Context(), matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
