package services

import (
	"context"
	"time"

	"github.com/rmaia/flashdecks/internal/errors"
	"github.com/rmaia/flashdecks/internal/logger"
	"github.com/rmaia/flashdecks/internal/models"
	"github.com/rmaia/flashdecks/internal/srs"
	"github.com/rmaia/flashdecks/internal/store"
)

// ReviewRequest carries a single review result.
type ReviewRequest struct {
	CardID  string `json:"card_id" validate:"required"`
	Outcome string `json:"outcome" validate:"required,oneof=again good easy"`
}

// StudyService handles review sessions against a deck.
type StudyService interface {
	StudyQueue(ctx context.Context, deckID string) ([]models.Card, error)
	Review(ctx context.Context, deckID string, req ReviewRequest) (models.Card, error)
	RecordStudyTime(ctx context.Context, deckID string, seconds float64) error
}

type studyService struct {
	store *store.Store
}

// NewStudyService creates a new StudyService.
func NewStudyService(st *store.Store) StudyService {
	return &studyService{store: st}
}

// StudyQueue returns the session set for today: due cards first, then new
// cards. Shuffling is a presentation concern and is left to the caller.
func (s *studyService) StudyQueue(ctx context.Context, deckID string) ([]models.Card, error) {
	queue, ok := s.store.StudyQueue(deckID, time.Now())
	if !ok {
		return nil, errors.NewNotFoundError("deck", deckID)
	}
	return queue, nil
}

func (s *studyService) Review(ctx context.Context, deckID string, req ReviewRequest) (models.Card, error) {
	log := logger.FromContext(ctx)

	if err := validate.Struct(req); err != nil {
		return models.Card{}, validationError(err)
	}

	card, ok := s.store.Review(deckID, req.CardID, srs.Outcome(req.Outcome), time.Now())
	if !ok {
		return models.Card{}, errors.NewNotFoundError("card", req.CardID)
	}

	log.Debug("reviewed card %s: outcome=%s interval=%d ease=%.2f",
		card.ID, req.Outcome, card.IntervalDays, card.Ease)
	return card, nil
}

func (s *studyService) RecordStudyTime(ctx context.Context, deckID string, seconds float64) error {
	if seconds <= 0 {
		return errors.NewValidationError("seconds", "must be positive")
	}
	if !s.store.RecordStudyTime(deckID, seconds) {
		return errors.NewNotFoundError("deck", deckID)
	}
	return nil
}
