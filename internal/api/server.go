// Package api is the thin HTTP surface over the core. It holds no state of
// its own: handlers decode input, call a service and encode the result.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rmaia/flashdecks/internal/logger"
	"github.com/rmaia/flashdecks/internal/services"
)

type Server struct {
	DeckService    services.DeckService
	CardService    services.CardService
	StudyService   services.StudyService
	BackupService  services.BackupService
	Version        func() uint64
	RequestTimeout time.Duration
}

// Routes builds the router with the standard middleware stack.
func (s *Server) Routes() http.Handler {
	timeout := s.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	r := chi.NewRouter()
	r.Use(loggingMiddleware)
	r.Use(recoveryMiddleware)
	r.Use(securityHeadersMiddleware)
	r.Use(timeoutMiddleware(timeout))

	r.Route("/api", func(r chi.Router) {
		r.Get("/decks", s.handleListDecks)
		r.Post("/decks", s.handleCreateDeck)
		r.Get("/decks/{id}", s.handleGetDeck)
		r.Put("/decks/{id}", s.handleUpdateDeck)
		r.Delete("/decks/{id}", s.handleDeleteDeck)

		r.Post("/decks/{id}/cards", s.handleAddCard)
		r.Put("/decks/{id}/cards/{cardID}", s.handleUpdateCard)

		r.Get("/decks/{id}/study", s.handleStudyQueue)
		r.Post("/decks/{id}/review", s.handleReview)
		r.Post("/decks/{id}/study-time", s.handleRecordStudyTime)

		r.Get("/stats", s.handleStats)
		r.Get("/changes", s.handleChanges)

		r.Post("/backups", s.handleCreateBackup)
		r.Get("/backups", s.handleListBackups)
		r.Post("/backups/restore", s.handleRestore)
	})

	return r
}

// respondJSON writes v as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode response: %v", err)
	}
}

// decodeJSON decodes the request body into v.
func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
