package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rmaia/flashdecks/internal/errors"
	"github.com/rmaia/flashdecks/internal/logger"
	"github.com/rmaia/flashdecks/internal/services"
)

func (s *Server) handleAddCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req services.AddCardRequest
	if err := decodeJSON(r, &req); err != nil {
		log.Warn("invalid add card payload: %v", err)
		handleError(w, r, errors.NewBadRequestError("invalid JSON payload"))
		return
	}

	card, err := s.CardService.AddCard(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, card)
}

func (s *Server) handleUpdateCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req services.UpdateCardRequest
	if err := decodeJSON(r, &req); err != nil {
		log.Warn("invalid update card payload: %v", err)
		handleError(w, r, errors.NewBadRequestError("invalid JSON payload"))
		return
	}
	req.CardID = chi.URLParam(r, "cardID")

	card, err := s.CardService.UpdateCard(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, card)
}
