package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jamalben22/stadiumport/brackets"
	"github.com/jamalben22/stadiumport/services"
)

type BracketHandler struct {
	bracketService services.BracketService
}

func NewBracketHandler(bracketService services.BracketService) *BracketHandler {
	return &BracketHandler{bracketService: bracketService}
}

type startSessionRequest struct {
	GroupStandings  brackets.GroupStandings `json:"group_standings"`
	ThirdPlacePicks []string                `json:"third_place_picks"`
}

func (h *BracketHandler) StartSessionHandler(w http.ResponseWriter, r *http.Request) {
	var req startSessionRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	state, err := h.bracketService.StartSession(r.Context(), req.GroupStandings, req.ThirdPlacePicks)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"bracket": state}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *BracketHandler) GetStateHandler(w http.ResponseWriter, r *http.Request) {
	state, err := h.bracketService.GetState(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"bracket": state}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type recordWinnerRequest struct {
	MatchID  string `json:"match_id"`
	WinnerID string `json:"winner_id"`
}

// RecordWinnerHandler exposes the one mutating command of the game; the
// response carries the full post-cascade state so the UI re-renders from it.
func (h *BracketHandler) RecordWinnerHandler(w http.ResponseWriter, r *http.Request) {
	var req recordWinnerRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	state, err := h.bracketService.RecordWinner(r.Context(), chi.URLParam(r, "sessionID"), req.MatchID, req.WinnerID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"bracket": state}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *BracketHandler) ClearPicksHandler(w http.ResponseWriter, r *http.Request) {
	state, err := h.bracketService.ClearPicks(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"bracket": state}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *BracketHandler) SummaryHandler(w http.ResponseWriter, r *http.Request) {
	rounds, err := h.bracketService.Summary(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"rounds": rounds}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type savePredictionRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (h *BracketHandler) SavePredictionHandler(w http.ResponseWriter, r *http.Request) {
	var req savePredictionRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	prediction, err := h.bracketService.SavePrediction(r.Context(), chi.URLParam(r, "sessionID"), req.Name, req.Email)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"prediction": prediction}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
