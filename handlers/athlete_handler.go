package handlers

import (
	"net/http"

	"github.com/Dosada05/beach-tournament/models"
	"github.com/Dosada05/beach-tournament/services"
)

type AthleteHandler struct {
	session *services.Session
}

func NewAthleteHandler(session *services.Session) *AthleteHandler {
	return &AthleteHandler{session: session}
}

type createAthleteInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// ListHandler handles GET /athletes
func (h *AthleteHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	athletes, err := h.session.Athletes(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"athletes": athletes}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CreateHandler handles POST /athletes
func (h *AthleteHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var input createAthleteInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	athlete, err := h.session.RegisterAthlete(r.Context(), input.FirstName, input.LastName)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"athlete": athlete}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetHandler handles GET /athletes/{athleteID}
func (h *AthleteHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	athleteID, err := getIDFromURL(r, "athleteID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	profile, err := h.session.AthleteProfile(r.Context(), athleteID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"profile": profile}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteHandler handles DELETE /athletes/{athleteID}
func (h *AthleteHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	athleteID, err := getIDFromURL(r, "athleteID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := h.session.RemoveAthlete(r.Context(), athleteID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// TrophiesHandler handles GET /athletes/{athleteID}/trophies
func (h *AthleteHandler) TrophiesHandler(w http.ResponseWriter, r *http.Request) {
	athleteID, err := getIDFromURL(r, "athleteID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	trophies, err := h.session.Trophies(r.Context(), athleteID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"trophies": trophies}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CatalogHandler handles GET /trophies
func (h *AthleteHandler) CatalogHandler(w http.ResponseWriter, r *http.Request) {
	if err := writeJSON(w, http.StatusOK, jsonResponse{"trophies": models.TrophyCatalog}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
