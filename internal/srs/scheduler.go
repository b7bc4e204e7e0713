package srs

import (
	"math"
	"time"

	"github.com/rmaia/flashdecks/internal/models"
)

// Outcome is the learner's self-reported result for a single review.
type Outcome string

const (
	Again Outcome = "again"
	Good  Outcome = "good"
	Easy  Outcome = "easy"
)

// Valid reports whether o is a known outcome.
func (o Outcome) Valid() bool {
	return o == Again || o == Good || o == Easy
}

// quality maps an outcome onto the SM-2 quality scale.
func (o Outcome) quality() int {
	switch o {
	case Again:
		return 1
	case Easy:
		return 5
	default:
		return 3
	}
}

// minEase is the floor for the ease multiplier. Ease is never reset, only
// clamped here when the update formula would push it lower.
const minEase = 1.3

// Apply computes the card's next scheduling state for a review at time now.
// Pure: it returns an updated copy and touches nothing else.
//
// On a lapse (again) the repetition streak and interval reset together and a
// lapse is recorded; ease is left untouched. On success the ease moves by the
// SM-2 delta and the interval follows the 1 / 6 / interval*ease ladder.
// Interval growth rounds half away from zero (math.Round); the scheduler
// tests pin that choice.
func Apply(card models.Card, outcome Outcome, now time.Time) models.Card {
	q := outcome.quality()

	card.TotalReviews++
	if q >= 3 {
		card.SuccessfulReviews++
	}

	if q < 3 {
		card.Lapses++
		card.Repetitions = 0
		card.IntervalDays = 1
	} else {
		miss := float64(5 - q)
		card.Ease = math.Max(minEase, card.Ease+(0.1-miss*(0.08+miss*0.02)))
		card.Repetitions++
		switch card.Repetitions {
		case 1:
			card.IntervalDays = 1
		case 2:
			card.IntervalDays = 6
		default:
			card.IntervalDays = int(math.Round(float64(card.IntervalDays) * card.Ease))
		}
	}

	card.Due = models.StartOfDay(now).AddDate(0, 0, card.IntervalDays)
	reviewedAt := now
	card.LastReviewAt = &reviewedAt
	return card
}
