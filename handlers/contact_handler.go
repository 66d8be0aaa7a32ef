package handlers

import (
	"net/http"

	"github.com/jamalben22/stadiumport/services"
)

type ContactHandler struct {
	mailService services.MailService
}

func NewContactHandler(mailService services.MailService) *ContactHandler {
	return &ContactHandler{mailService: mailService}
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (h *ContactHandler) SubmitHandler(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.mailService.SendContactMessage(r.Context(), req.Email, req.Name, req.Subject, req.Message); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusAccepted, jsonResponse{"status": "sent"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
