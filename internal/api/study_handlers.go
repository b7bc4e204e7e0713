package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rmaia/flashdecks/internal/errors"
	"github.com/rmaia/flashdecks/internal/logger"
	"github.com/rmaia/flashdecks/internal/models"
	"github.com/rmaia/flashdecks/internal/services"
)

func (s *Server) handleStudyQueue(w http.ResponseWriter, r *http.Request) {
	queue, err := s.StudyService.StudyQueue(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	if queue == nil {
		queue = []models.Card{}
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"cards": queue})
}

func (s *Server) handleReview(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req services.ReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		log.Warn("invalid review payload: %v", err)
		handleError(w, r, errors.NewBadRequestError("invalid JSON payload"))
		return
	}

	card, err := s.StudyService.Review(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, card)
}

func (s *Server) handleRecordStudyTime(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req struct {
		Seconds float64 `json:"seconds"`
	}
	if err := decodeJSON(r, &req); err != nil {
		log.Warn("invalid study time payload: %v", err)
		handleError(w, r, errors.NewBadRequestError("invalid JSON payload"))
		return
	}

	if err := s.StudyService.RecordStudyTime(r.Context(), chi.URLParam(r, "id"), req.Seconds); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"ok": true})
}
