package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jamalben22/stadiumport/services"
)

type TeamHandler struct {
	teamService services.TeamService
}

func NewTeamHandler(teamService services.TeamService) *TeamHandler {
	return &TeamHandler{teamService: teamService}
}

func (h *TeamHandler) ListTeamsHandler(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teamService.ListAll(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"teams": teams}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

const maxFlagUploadBytes = 2 << 20 // 2MB

// UploadFlagHandler stores a flag asset for one team. Admin only.
func (h *TeamHandler) UploadFlagHandler(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "teamID")

	r.Body = http.MaxBytesReader(w, r.Body, maxFlagUploadBytes)
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/png"
	}

	team, err := h.teamService.UploadFlag(r.Context(), teamID, contentType, r.Body)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"team": team}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
