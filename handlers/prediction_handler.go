package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jamalben22/stadiumport/services"
)

type PredictionHandler struct {
	bracketService services.BracketService
}

func NewPredictionHandler(bracketService services.BracketService) *PredictionHandler {
	return &PredictionHandler{bracketService: bracketService}
}

func (h *PredictionHandler) GetPredictionHandler(w http.ResponseWriter, r *http.Request) {
	saved, err := h.bracketService.GetSavedPrediction(r.Context(), chi.URLParam(r, "publicID"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, saved, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListRecentHandler returns the latest saved predictions, admin only.
func (h *PredictionHandler) ListRecentHandler(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	predictions, err := h.bracketService.ListRecentPredictions(r.Context(), limit)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"predictions": predictions}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
