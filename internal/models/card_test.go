package models_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmaia/flashdecks/internal/models"
)

func TestNewCard_Defaults(t *testing.T) {
	card := models.NewCard(models.KindWord, "  ubiquitous  ", "present everywhere", "")

	assert.NotEmpty(t, card.ID)
	assert.Equal(t, models.KindWord, card.Kind)
	assert.Equal(t, "ubiquitous", card.Prompt, "prompt is trimmed")
	assert.Equal(t, models.DefaultEase, card.Ease)
	assert.Equal(t, 0, card.IntervalDays)
	assert.Equal(t, 0, card.Repetitions)
	assert.Equal(t, 0, card.Lapses)
	assert.True(t, card.IsNew())
	assert.Nil(t, card.LastReviewAt)
	assert.Equal(t, models.StartOfDay(card.CreatedAt), card.Due, "new cards are due on their creation day")
	assert.True(t, card.IsDue(time.Now()), "new cards are immediately eligible")
}

func TestNewCard_UniqueIDs(t *testing.T) {
	a := models.NewCard(models.KindWord, "a", "", "")
	b := models.NewCard(models.KindWord, "b", "", "")
	assert.NotEqual(t, a.ID, b.ID)
}

func TestCard_IsDue(t *testing.T) {
	card := models.NewCard(models.KindWord, "test", "", "")
	card.Due = time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	assert.False(t, card.IsDue(time.Date(2024, 3, 4, 23, 0, 0, 0, time.UTC)))
	assert.True(t, card.IsDue(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)))
	assert.True(t, card.IsDue(time.Date(2024, 3, 5, 8, 30, 0, 0, time.UTC)), "time of day is ignored")
	assert.True(t, card.IsDue(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)))
}

func TestCard_HasBackContent(t *testing.T) {
	card := models.NewCard(models.KindWord, "front only", "", "")
	assert.False(t, card.HasBackContent())

	card.Secondary = "a note"
	assert.True(t, card.HasBackContent())
}

func TestCardKind_Labels(t *testing.T) {
	assert.Equal(t, "Definition", models.KindWord.PrimaryLabel())
	assert.Equal(t, "Example sentence", models.KindWord.SecondaryLabel())
	assert.Equal(t, "Translation", models.KindSentence.PrimaryLabel())
	assert.Equal(t, "Notes (optional)", models.KindSentence.SecondaryLabel())
	assert.True(t, models.KindWord.Valid())
	assert.False(t, models.CardKind("phrase").Valid())
}

// Old save files predate the scheduling fields; loading one must produce the
// initial scheduling state instead of zeroes.
func TestCard_UnmarshalLegacyRecord(t *testing.T) {
	raw := `{"id":"abc","kind":"word","prompt":"cogent","primary":"convincing","created_at":"2023-11-02T08:00:00Z"}`

	var card models.Card
	require.NoError(t, json.Unmarshal([]byte(raw), &card))

	assert.Equal(t, "abc", card.ID)
	assert.Equal(t, models.DefaultEase, card.Ease)
	assert.Equal(t, 0, card.IntervalDays)
	assert.True(t, card.IsNew())
	assert.Equal(t, time.Date(2023, 11, 2, 0, 0, 0, 0, time.UTC), card.Due,
		"due defaults to the creation day")
}

func TestCard_UnmarshalMissingIdentity(t *testing.T) {
	raw := `{"prompt":"orphan"}`

	var card models.Card
	require.NoError(t, json.Unmarshal([]byte(raw), &card))

	assert.NotEmpty(t, card.ID, "a fresh identifier is assigned")
	assert.Equal(t, models.KindWord, card.Kind)
	assert.False(t, card.CreatedAt.IsZero())
	assert.Equal(t, models.StartOfDay(card.CreatedAt), card.Due)
}

func TestCard_JSONRoundTrip(t *testing.T) {
	reviewed := time.Date(2024, 3, 10, 14, 30, 5, 0, time.UTC)
	card := models.Card{
		ID:                "c1",
		Kind:              models.KindSentence,
		Prompt:            "¿Dónde está la estación?",
		Primary:           "Where is the station?",
		Ease:              2.36,
		IntervalDays:      6,
		Repetitions:       2,
		Lapses:            1,
		TotalReviews:      5,
		SuccessfulReviews: 4,
		CreatedAt:         time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		LastReviewAt:      &reviewed,
		Due:               time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC),
	}

	data, err := json.Marshal(card)
	require.NoError(t, err)

	var decoded models.Card
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, card, decoded)
}

func TestStartOfDay(t *testing.T) {
	ts := time.Date(2024, 3, 5, 18, 45, 12, 999, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), models.StartOfDay(ts))

	// Non-UTC input normalizes into UTC before truncation.
	loc := time.FixedZone("UTC+5", 5*3600)
	local := time.Date(2024, 3, 6, 2, 0, 0, 0, loc)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), models.StartOfDay(local))
}
