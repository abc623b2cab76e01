package handlers

import (
	"net/http"

	"github.com/Dosada05/beach-tournament/services"
)

type TeamHandler struct {
	session *services.Session
}

func NewTeamHandler(session *services.Session) *TeamHandler {
	return &TeamHandler{session: session}
}

type createTeamInput struct {
	Name       string   `json:"name"`
	AthleteIDs []string `json:"athlete_ids"`
}

// CreateHandler handles POST /teams. An empty name is generated from the members.
func (h *TeamHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var input createTeamInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	team, err := h.session.RegisterTeam(r.Context(), input.Name, input.AthleteIDs)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"team": team}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteHandler handles DELETE /teams/{teamID}
func (h *TeamHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := h.session.RemoveTeam(r.Context(), teamID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
