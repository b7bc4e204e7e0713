package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rmaia/flashdecks/internal/errors"
	"github.com/rmaia/flashdecks/internal/logger"
	"github.com/rmaia/flashdecks/internal/services"
)

func (s *Server) handleListDecks(w http.ResponseWriter, r *http.Request) {
	decks := s.DeckService.ListDecks(r.Context())
	respondJSON(w, r, http.StatusOK, map[string]any{"decks": decks})
}

func (s *Server) handleGetDeck(w http.ResponseWriter, r *http.Request) {
	deck, err := s.DeckService.GetDeck(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, deck)
}

func (s *Server) handleCreateDeck(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req services.CreateDeckRequest
	if err := decodeJSON(r, &req); err != nil {
		log.Warn("invalid create deck payload: %v", err)
		handleError(w, r, errors.NewBadRequestError("invalid JSON payload"))
		return
	}

	deck, err := s.DeckService.CreateDeck(r.Context(), req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, deck)
}

func (s *Server) handleUpdateDeck(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req services.UpdateDeckRequest
	if err := decodeJSON(r, &req); err != nil {
		log.Warn("invalid update deck payload: %v", err)
		handleError(w, r, errors.NewBadRequestError("invalid JSON payload"))
		return
	}

	deck, err := s.DeckService.UpdateDeck(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, deck)
}

func (s *Server) handleDeleteDeck(w http.ResponseWriter, r *http.Request) {
	removed := s.DeckService.DeleteDecks(r.Context(), []string{chi.URLParam(r, "id")})
	respondJSON(w, r, http.StatusOK, map[string]any{"removed": removed})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, s.DeckService.Totals(r.Context()))
}

// handleChanges exposes the store's version counter so observers can poll
// for "did anything change since I last looked".
func (s *Server) handleChanges(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]any{"version": s.Version()})
}
