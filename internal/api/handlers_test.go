package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmaia/flashdecks/internal/api"
	"github.com/rmaia/flashdecks/internal/models"
	"github.com/rmaia/flashdecks/internal/services"
	"github.com/rmaia/flashdecks/internal/store"
)

func newTestServer(t *testing.T) (*httptest.Server, *store.Store) {
	t.Helper()
	st := store.New(t.TempDir())
	require.NoError(t, st.Load())

	srv := &api.Server{
		DeckService:   services.NewDeckService(st),
		CardService:   services.NewCardService(st),
		StudyService:  services.NewStudyService(st),
		BackupService: services.NewBackupService(st),
		Version:       st.Version,
	}
	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)
	return ts, st
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestListDecksIncludesSeedData(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := doJSON(t, http.MethodGet, ts.URL+"/api/decks", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	var out struct {
		Decks []models.Deck `json:"decks"`
	}
	decodeBody(t, resp, &out)
	require.Len(t, out.Decks, 2)
	assert.Equal(t, "Daily Words", out.Decks[0].Name)
}

func TestCreateDeck(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/decks", map[string]string{
		"name":    "Verbs",
		"summary": "Irregular verbs",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var deck models.Deck
	decodeBody(t, resp, &deck)
	assert.NotEmpty(t, deck.ID)
	assert.Equal(t, "Verbs", deck.Name)
}

func TestCreateDeckValidation(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/decks", map[string]string{"name": " "})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var out struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	decodeBody(t, resp, &out)
	assert.Equal(t, "VALIDATION_ERROR", out.Error.Code)
}

func TestCreateDeckRejectsBadJSON(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/decks", "application/json", strings.NewReader("{nope"))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetDeckNotFound(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := doJSON(t, http.MethodGet, ts.URL+"/api/decks/none", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAddCardAndStudyFlow(t *testing.T) {
	ts, st := newTestServer(t)
	deckID := st.Decks()[0].ID

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/decks/"+deckID+"/cards", map[string]string{
		"kind":    "word",
		"prompt":  "latent",
		"primary": "hidden; dormant",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var card models.Card
	decodeBody(t, resp, &card)
	require.NotEmpty(t, card.ID)
	assert.True(t, card.IsNew())

	resp = doJSON(t, http.MethodGet, ts.URL+"/api/decks/"+deckID+"/study", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var queue struct {
		Cards []models.Card `json:"cards"`
	}
	decodeBody(t, resp, &queue)
	assert.Len(t, queue.Cards, 3, "two seed cards plus the new one")

	resp = doJSON(t, http.MethodPost, ts.URL+"/api/decks/"+deckID+"/review", map[string]string{
		"card_id": card.ID,
		"outcome": "good",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var reviewed models.Card
	decodeBody(t, resp, &reviewed)
	assert.Equal(t, 1, reviewed.TotalReviews)
	assert.Equal(t, 1, reviewed.IntervalDays)
}

func TestReviewValidation(t *testing.T) {
	ts, st := newTestServer(t)
	deck := st.Decks()[0]

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/decks/"+deck.ID+"/review", map[string]string{
		"card_id": deck.Cards[0].ID,
		"outcome": "meh",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdateCardKeepsScheduling(t *testing.T) {
	ts, st := newTestServer(t)
	deck := st.Decks()[0]

	card := models.NewCard(models.KindWord, "before", "", "")
	card.Ease = 1.9
	card.IntervalDays = 8
	card.TotalReviews = 5
	card.SuccessfulReviews = 4
	require.True(t, st.AddCard(deck.ID, card))

	resp := doJSON(t, http.MethodPut, ts.URL+"/api/decks/"+deck.ID+"/cards/"+card.ID, map[string]string{
		"prompt": "after",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated models.Card
	decodeBody(t, resp, &updated)
	assert.Equal(t, "after", updated.Prompt)
	assert.Equal(t, 1.9, updated.Ease)
	assert.Equal(t, 8, updated.IntervalDays)
}

func TestRecordStudyTime(t *testing.T) {
	ts, st := newTestServer(t)
	deckID := st.Decks()[0].ID

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/decks/"+deckID+"/study-time", map[string]float64{
		"seconds": 42.5,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	deck, ok := st.Deck(deckID)
	require.True(t, ok)
	assert.InDelta(t, 42.5, deck.TimeSpentSeconds, 1e-9)
}

func TestDeleteDeck(t *testing.T) {
	ts, st := newTestServer(t)
	deckID := st.Decks()[0].ID

	resp := doJSON(t, http.MethodDelete, ts.URL+"/api/decks/"+deckID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Removed int `json:"removed"`
	}
	decodeBody(t, resp, &out)
	assert.Equal(t, 1, out.Removed)
	assert.Len(t, st.Decks(), 1)
}

func TestStats(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := doJSON(t, http.MethodGet, ts.URL+"/api/stats", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var totals services.Totals
	decodeBody(t, resp, &totals)
	assert.Equal(t, 2, totals.Decks)
	assert.Equal(t, 4, totals.Cards)
	assert.Equal(t, 4, totals.New)
}

func TestChangesVersionAdvances(t *testing.T) {
	ts, _ := newTestServer(t)

	var before struct {
		Version uint64 `json:"version"`
	}
	resp := doJSON(t, http.MethodGet, ts.URL+"/api/changes", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &before)

	resp = doJSON(t, http.MethodPost, ts.URL+"/api/decks", map[string]string{"name": "Bump"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var after struct {
		Version uint64 `json:"version"`
	}
	resp = doJSON(t, http.MethodGet, ts.URL+"/api/changes", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &after)

	assert.Greater(t, after.Version, before.Version)
}

func TestBackupRoundTrip(t *testing.T) {
	ts, st := newTestServer(t)

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/backups", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		Name string `json:"name"`
	}
	decodeBody(t, resp, &created)
	require.NotEmpty(t, created.Name)

	resp = doJSON(t, http.MethodPost, ts.URL+"/api/decks", map[string]string{"name": "Ephemeral"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Len(t, st.Decks(), 3)

	resp = doJSON(t, http.MethodPost, ts.URL+"/api/backups/restore", map[string]string{
		"name": created.Name,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, st.Decks(), 2, "restore drops the deck added after the backup")

	resp = doJSON(t, http.MethodGet, ts.URL+"/api/backups", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list struct {
		Backups []string `json:"backups"`
	}
	decodeBody(t, resp, &list)
	assert.Contains(t, list.Backups, created.Name)
}

func TestRestoreWithoutBackups(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/backups/restore", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
