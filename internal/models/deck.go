package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Deck is a named, ordered collection of cards plus study-streak bookkeeping.
// Card order is insertion order; it matters for display, not for scheduling.
type Deck struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Summary          string     `json:"summary"`
	Cards            []Card     `json:"cards"`
	TimeSpentSeconds float64    `json:"time_spent_seconds"`
	LastStudyDay     *time.Time `json:"last_study_day,omitempty"`
	CurrentStreak    int        `json:"current_streak"`
}

// NewDeck creates an empty deck.
func NewDeck(name, summary string) Deck {
	return Deck{
		ID:      uuid.NewString(),
		Name:    name,
		Summary: summary,
		Cards:   []Card{},
	}
}

// Count returns the number of cards in the deck.
func (d Deck) Count() int {
	return len(d.Cards)
}

// DueCount returns the number of cards due on or before the given day.
func (d Deck) DueCount(asOf time.Time) int {
	n := 0
	for _, c := range d.Cards {
		if c.IsDue(asOf) {
			n++
		}
	}
	return n
}

// NewCount returns the number of never-reviewed cards.
func (d Deck) NewCount() int {
	n := 0
	for _, c := range d.Cards {
		if c.IsNew() {
			n++
		}
	}
	return n
}

// ReviewCount returns the number of cards that have been reviewed at least once.
func (d Deck) ReviewCount() int {
	return len(d.Cards) - d.NewCount()
}

// AverageEase returns the mean ease across the deck, or 0 for an empty deck.
func (d Deck) AverageEase() float64 {
	if len(d.Cards) == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range d.Cards {
		sum += c.Ease
	}
	return sum / float64(len(d.Cards))
}

// Accuracy returns the fraction of reviews that were successful, or 0 when
// the deck has no reviews yet.
func (d Deck) Accuracy() float64 {
	total, ok := 0, 0
	for _, c := range d.Cards {
		total += c.TotalReviews
		ok += c.SuccessfulReviews
	}
	if total == 0 {
		return 0
	}
	return float64(ok) / float64(total)
}

// AddStudyTime accumulates study time. Time spent only ever grows.
func (d *Deck) AddStudyTime(seconds float64) {
	if seconds > 0 {
		d.TimeSpentSeconds += seconds
	}
}

// MarkStudied updates the study streak for the given day. The streak grows at
// most once per calendar day: a second call on the same day is a no-op, a
// one-day gap extends the streak, anything longer restarts it at 1.
func (d *Deck) MarkStudied(asOf time.Time) {
	day := StartOfDay(asOf)
	if d.LastStudyDay == nil {
		d.CurrentStreak = 1
	} else {
		diff := int(day.Sub(StartOfDay(*d.LastStudyDay)).Hours() / 24)
		if diff == 1 {
			d.CurrentStreak++
		} else if diff > 1 {
			d.CurrentStreak = 1
		}
	}
	d.LastStudyDay = &day
}

// UnmarshalJSON fills in defaults for fields older save files may lack.
func (d *Deck) UnmarshalJSON(data []byte) error {
	type alias Deck
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	deck := Deck(a)
	if deck.ID == "" {
		deck.ID = uuid.NewString()
	}
	if deck.Cards == nil {
		deck.Cards = []Card{}
	}
	if deck.LastStudyDay == nil {
		deck.CurrentStreak = 0
	}
	*d = deck
	return nil
}
