package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultEase is the scheduling multiplier assigned to a freshly created card.
const DefaultEase = 2.5

// CardKind classifies what a card's prompt holds. It drives display labels
// only; scheduling treats both kinds identically.
type CardKind string

const (
	KindWord     CardKind = "word"
	KindSentence CardKind = "sentence"
)

// Valid reports whether k is one of the known kinds.
func (k CardKind) Valid() bool {
	return k == KindWord || k == KindSentence
}

// DisplayName returns the user-facing name of the kind.
func (k CardKind) DisplayName() string {
	if k == KindSentence {
		return "Sentence"
	}
	return "Word"
}

// PromptLabel returns the label for the card front.
func (k CardKind) PromptLabel() string {
	if k == KindSentence {
		return "Sentence"
	}
	return "Word"
}

// PrimaryLabel returns the label for the main back field.
func (k CardKind) PrimaryLabel() string {
	if k == KindSentence {
		return "Translation"
	}
	return "Definition"
}

// SecondaryLabel returns the label for the extra back field.
func (k CardKind) SecondaryLabel() string {
	if k == KindSentence {
		return "Notes (optional)"
	}
	return "Example sentence"
}

// Card is a single fact plus its spaced-repetition scheduling state.
type Card struct {
	ID                string     `json:"id"`
	Kind              CardKind   `json:"kind"`
	Prompt            string     `json:"prompt"`
	Primary           string     `json:"primary,omitempty"`
	Secondary         string     `json:"secondary,omitempty"`
	Ease              float64    `json:"ease"`
	IntervalDays      int        `json:"interval_days"`
	Repetitions       int        `json:"repetitions"`
	Lapses            int        `json:"lapses"`
	TotalReviews      int        `json:"total_reviews"`
	SuccessfulReviews int        `json:"successful_reviews"`
	CreatedAt         time.Time  `json:"created_at"`
	LastReviewAt      *time.Time `json:"last_review_at,omitempty"`
	Due               time.Time  `json:"due"`
}

// NewCard creates a card with default scheduling state. A new card is due on
// its creation day, so it is immediately eligible for study.
func NewCard(kind CardKind, prompt, primary, secondary string) Card {
	now := time.Now().UTC()
	return Card{
		ID:        uuid.NewString(),
		Kind:      kind,
		Prompt:    strings.TrimSpace(prompt),
		Primary:   strings.TrimSpace(primary),
		Secondary: strings.TrimSpace(secondary),
		Ease:      DefaultEase,
		CreatedAt: now,
		Due:       StartOfDay(now),
	}
}

// IsNew reports whether the card has never been reviewed.
func (c Card) IsNew() bool {
	return c.TotalReviews == 0
}

// IsDue reports whether the card is due on or before the given day.
func (c Card) IsDue(asOf time.Time) bool {
	return !c.Due.After(StartOfDay(asOf))
}

// HasBackContent reports whether the card has anything to show on its back.
func (c Card) HasBackContent() bool {
	return c.Primary != "" || c.Secondary != ""
}

// UnmarshalJSON fills in defaults for fields that older save files may lack,
// so a pre-scheduling card record loads with the initial scheduling state.
func (c *Card) UnmarshalJSON(data []byte) error {
	type alias Card
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	card := Card(a)
	if card.ID == "" {
		card.ID = uuid.NewString()
	}
	if card.Kind == "" {
		card.Kind = KindWord
	}
	if card.Ease == 0 {
		card.Ease = DefaultEase
	}
	if card.CreatedAt.IsZero() {
		card.CreatedAt = time.Now().UTC()
	}
	if card.Due.IsZero() {
		card.Due = StartOfDay(card.CreatedAt)
	}
	*c = card
	return nil
}

// StartOfDay truncates t to midnight UTC. All day-granularity state in the
// app (due dates, study-streak days) is normalized through this function;
// mixing zones here would break due comparisons across saves.
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
