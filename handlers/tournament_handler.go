package handlers

import (
	"net/http"

	"github.com/Dosada05/beach-tournament/models"
	"github.com/Dosada05/beach-tournament/services"
)

type TournamentHandler struct {
	session *services.Session
}

func NewTournamentHandler(session *services.Session) *TournamentHandler {
	return &TournamentHandler{session: session}
}

// GetHandler handles GET /tournament
func (h *TournamentHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	snap, err := h.session.Snapshot(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	response := jsonResponse{
		"phase":       snap.Phase,
		"config":      snap.Config,
		"teams":       snap.Teams,
		"groups":      snap.Groups,
		"podium":      snap.Podium,
		"champion_id": snap.ChampionID,
		"updated_at":  snap.UpdatedAt,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GroupStandingsHandler handles GET /tournament/groups/{index}/standings
func (h *TournamentHandler) GroupStandingsHandler(w http.ResponseWriter, r *http.Request) {
	index, err := getIntFromURL(r, "index")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	standings, err := h.session.GroupStandings(r.Context(), index)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": standings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// BracketHandler handles GET /tournament/bracket
func (h *TournamentHandler) BracketHandler(w http.ResponseWriter, r *http.Request) {
	rounds, err := h.session.Bracket(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"rounds": rounds}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateConfigHandler handles PUT /tournament/config
func (h *TournamentHandler) UpdateConfigHandler(w http.ResponseWriter, r *http.Request) {
	var input models.TournamentConfig
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	cfg, err := h.session.UpdateConfig(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"config": cfg}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// StartHandler handles POST /tournament/start
func (h *TournamentHandler) StartHandler(w http.ResponseWriter, r *http.Request) {
	snap, err := h.session.StartTournament(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"phase": snap.Phase, "groups": snap.Groups}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// AdvanceHandler handles POST /tournament/advance
func (h *TournamentHandler) AdvanceHandler(w http.ResponseWriter, r *http.Request) {
	snap, err := h.session.AdvancePhase(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	response := jsonResponse{"phase": snap.Phase}
	switch snap.Phase {
	case models.PhaseGroupStage:
		response["groups"] = snap.Groups
	case models.PhaseEliminationStage:
		response["bracket"] = snap.Bracket.Matches
	case models.PhaseAwarded:
		response["podium"] = snap.Podium
		response["champion_id"] = snap.ChampionID
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ResetHandler handles POST /tournament/reset
func (h *TournamentHandler) ResetHandler(w http.ResponseWriter, r *http.Request) {
	snap, err := h.session.Reset(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"phase": snap.Phase, "athletes": len(snap.Athletes)}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
