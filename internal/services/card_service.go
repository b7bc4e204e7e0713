package services

import (
	"context"
	"strings"

	"github.com/rmaia/flashdecks/internal/errors"
	"github.com/rmaia/flashdecks/internal/logger"
	"github.com/rmaia/flashdecks/internal/models"
	"github.com/rmaia/flashdecks/internal/store"
)

// AddCardRequest carries the fields for a new card. Scheduling state is
// never supplied by callers; new cards always start with defaults.
type AddCardRequest struct {
	Kind      string `json:"kind" validate:"required,oneof=word sentence"`
	Prompt    string `json:"prompt" validate:"required"`
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
}

// UpdateCardRequest carries content edits for an existing card.
type UpdateCardRequest struct {
	CardID    string `json:"card_id" validate:"required"`
	Prompt    string `json:"prompt" validate:"required"`
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
}

// CardService handles card-level operations.
type CardService interface {
	AddCard(ctx context.Context, deckID string, req AddCardRequest) (models.Card, error)
	UpdateCard(ctx context.Context, deckID string, req UpdateCardRequest) (models.Card, error)
}

type cardService struct {
	store *store.Store
}

// NewCardService creates a new CardService.
func NewCardService(st *store.Store) CardService {
	return &cardService{store: st}
}

func (s *cardService) AddCard(ctx context.Context, deckID string, req AddCardRequest) (models.Card, error) {
	log := logger.FromContext(ctx)

	req.Prompt = strings.TrimSpace(req.Prompt)
	if err := validate.Struct(req); err != nil {
		return models.Card{}, validationError(err)
	}

	card := models.NewCard(models.CardKind(req.Kind), req.Prompt, req.Primary, req.Secondary)
	if !s.store.AddCard(deckID, card) {
		return models.Card{}, errors.NewNotFoundError("deck", deckID)
	}

	log.Info("added %s card %s to deck %s", card.Kind, card.ID, deckID)
	return card, nil
}

// UpdateCard edits a card's content. The live card's scheduling state is
// carried forward; a content edit never touches ease, interval or history.
func (s *cardService) UpdateCard(ctx context.Context, deckID string, req UpdateCardRequest) (models.Card, error) {
	log := logger.FromContext(ctx)

	req.Prompt = strings.TrimSpace(req.Prompt)
	if err := validate.Struct(req); err != nil {
		return models.Card{}, validationError(err)
	}

	deck, ok := s.store.Deck(deckID)
	if !ok {
		return models.Card{}, errors.NewNotFoundError("deck", deckID)
	}

	var card models.Card
	found := false
	for _, c := range deck.Cards {
		if c.ID == req.CardID {
			card = c
			found = true
			break
		}
	}
	if !found {
		return models.Card{}, errors.NewNotFoundError("card", req.CardID)
	}

	card.Prompt = req.Prompt
	card.Primary = strings.TrimSpace(req.Primary)
	card.Secondary = strings.TrimSpace(req.Secondary)
	if !s.store.UpdateCard(deckID, card) {
		return models.Card{}, errors.NewNotFoundError("card", req.CardID)
	}

	log.Info("updated card %s in deck %s", card.ID, deckID)
	return card, nil
}
