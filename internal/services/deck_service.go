package services

import (
	"context"
	"strings"
	"time"

	"github.com/rmaia/flashdecks/internal/errors"
	"github.com/rmaia/flashdecks/internal/logger"
	"github.com/rmaia/flashdecks/internal/models"
	"github.com/rmaia/flashdecks/internal/store"
)

// CreateDeckRequest carries the fields for a new deck.
type CreateDeckRequest struct {
	Name    string `json:"name" validate:"required"`
	Summary string `json:"summary"`
}

// UpdateDeckRequest carries name/summary edits for an existing deck.
type UpdateDeckRequest struct {
	Name    string `json:"name" validate:"required"`
	Summary string `json:"summary"`
}

// Totals is the collection-wide aggregate view: simple counts only.
type Totals struct {
	Decks       int     `json:"decks"`
	Cards       int     `json:"cards"`
	Due         int     `json:"due"`
	New         int     `json:"new"`
	AverageEase float64 `json:"average_ease"`
}

// DeckService handles deck-level operations.
type DeckService interface {
	ListDecks(ctx context.Context) []models.Deck
	GetDeck(ctx context.Context, id string) (models.Deck, error)
	CreateDeck(ctx context.Context, req CreateDeckRequest) (models.Deck, error)
	UpdateDeck(ctx context.Context, id string, req UpdateDeckRequest) (models.Deck, error)
	DeleteDecks(ctx context.Context, ids []string) int
	Totals(ctx context.Context) Totals
}

type deckService struct {
	store *store.Store
}

// NewDeckService creates a new DeckService.
func NewDeckService(st *store.Store) DeckService {
	return &deckService{store: st}
}

func (s *deckService) ListDecks(ctx context.Context) []models.Deck {
	return s.store.Decks()
}

func (s *deckService) GetDeck(ctx context.Context, id string) (models.Deck, error) {
	deck, ok := s.store.Deck(id)
	if !ok {
		return models.Deck{}, errors.NewNotFoundError("deck", id)
	}
	return deck, nil
}

func (s *deckService) CreateDeck(ctx context.Context, req CreateDeckRequest) (models.Deck, error) {
	log := logger.FromContext(ctx)

	req.Name = strings.TrimSpace(req.Name)
	if err := validate.Struct(req); err != nil {
		return models.Deck{}, validationError(err)
	}

	deck := s.store.AddDeck(req.Name, strings.TrimSpace(req.Summary))
	log.Info("created deck %q (%s)", deck.Name, deck.ID)
	return deck, nil
}

// UpdateDeck edits name and summary on the live deck. Cards, study time and
// streak state are carried forward untouched.
func (s *deckService) UpdateDeck(ctx context.Context, id string, req UpdateDeckRequest) (models.Deck, error) {
	log := logger.FromContext(ctx)

	req.Name = strings.TrimSpace(req.Name)
	if err := validate.Struct(req); err != nil {
		return models.Deck{}, validationError(err)
	}

	deck, ok := s.store.Deck(id)
	if !ok {
		return models.Deck{}, errors.NewNotFoundError("deck", id)
	}
	deck.Name = req.Name
	deck.Summary = strings.TrimSpace(req.Summary)
	if !s.store.ReplaceDeck(deck) {
		return models.Deck{}, errors.NewNotFoundError("deck", id)
	}

	log.Info("updated deck %q (%s)", deck.Name, deck.ID)
	return deck, nil
}

func (s *deckService) DeleteDecks(ctx context.Context, ids []string) int {
	log := logger.FromContext(ctx)
	removed := s.store.DeleteDecks(ids...)
	log.Info("deleted %d of %d requested decks", removed, len(ids))
	return removed
}

func (s *deckService) Totals(ctx context.Context) Totals {
	decks := s.store.Decks()
	now := time.Now()

	t := Totals{Decks: len(decks)}
	easeSum := 0.0
	for _, d := range decks {
		t.Cards += d.Count()
		t.Due += d.DueCount(now)
		t.New += d.NewCount()
		easeSum += d.AverageEase()
	}
	if len(decks) > 0 {
		t.AverageEase = easeSum / float64(len(decks))
	}
	return t
}
