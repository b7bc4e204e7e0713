// Package store owns the in-memory deck collection and its durable state.
// All mutation passes through the Store; every mutation is followed by a
// synchronous save of the full collection (small data volumes make the
// simple model the right one). Save failures after a mutation are logged
// and never roll back memory.
package store

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/rmaia/flashdecks/internal/logger"
	"github.com/rmaia/flashdecks/internal/models"
	"github.com/rmaia/flashdecks/internal/srs"
)

// Store is the single writer for the deck collection. Missing identifiers
// make mutations report found=false instead of erroring; with one local
// writer a stale reference is harmless and last write wins.
type Store struct {
	mu       sync.Mutex
	decks    []models.Deck
	version  uint64
	watchers []chan struct{}

	path      string
	backupDir string
	log       *logger.Logger
}

// New creates a store rooted at dataDir. The canonical file is
// dataDir/decks.json; backups live under dataDir/backups.
func New(dataDir string) *Store {
	return &Store{
		path:      filepath.Join(dataDir, "decks.json"),
		backupDir: filepath.Join(dataDir, "backups"),
		log:       logger.Default().WithPrefix("store"),
	}
}

// Version returns a counter that increases on every mutation. Observers can
// poll it to decide when to re-render.
func (s *Store) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Subscribe returns a channel that receives a tick after every mutation.
// Notifications are best-effort: a slow receiver misses ticks rather than
// blocking the store.
func (s *Store) Subscribe() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan struct{}, 1)
	s.watchers = append(s.watchers, ch)
	return ch
}

// Decks returns a snapshot copy of the collection.
func (s *Store) Decks() []models.Deck {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneDecks(s.decks)
}

// Deck returns a copy of the deck with the given ID.
func (s *Store) Deck(id string) (models.Deck, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		return cloneDeck(s.decks[i]), true
	}
	return models.Deck{}, false
}

// DueCards returns the deck's cards due on or before asOf, in deck order.
func (s *Store) DueCards(deckID string, asOf time.Time) ([]models.Card, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(deckID)
	if i < 0 {
		return nil, false
	}
	var due []models.Card
	for _, c := range s.decks[i].Cards {
		if c.IsDue(asOf) {
			due = append(due, c)
		}
	}
	return due, true
}

// NewCards returns the deck's never-reviewed cards, in deck order.
func (s *Store) NewCards(deckID string) ([]models.Card, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(deckID)
	if i < 0 {
		return nil, false
	}
	var fresh []models.Card
	for _, c := range s.decks[i].Cards {
		if c.IsNew() {
			fresh = append(fresh, c)
		}
	}
	return fresh, true
}

// StudyQueue returns the session set for a deck: due cards first, then new
// cards not already due. Shuffling is left to the caller.
func (s *Store) StudyQueue(deckID string, asOf time.Time) ([]models.Card, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(deckID)
	if i < 0 {
		return nil, false
	}
	var queue []models.Card
	for _, c := range s.decks[i].Cards {
		if c.IsDue(asOf) {
			queue = append(queue, c)
		}
	}
	for _, c := range s.decks[i].Cards {
		if c.IsNew() && !c.IsDue(asOf) {
			queue = append(queue, c)
		}
	}
	return queue, true
}

// AddDeck constructs a new empty deck, appends it and returns a copy.
func (s *Store) AddDeck(name, summary string) models.Deck {
	s.mu.Lock()
	defer s.mu.Unlock()
	deck := models.NewDeck(name, summary)
	s.decks = append(s.decks, deck)
	s.commit()
	return cloneDeck(deck)
}

// AddCard appends a card to the target deck, preserving whatever scheduling
// state the card carries.
func (s *Store) AddCard(deckID string, card models.Card) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(deckID)
	if i < 0 {
		return false
	}
	s.decks[i].Cards = append(s.decks[i].Cards, card)
	s.commit()
	return true
}

// UpdateCard replaces the card with a matching ID in place. Callers editing
// content must carry the existing scheduling state forward; the store does
// not guard against a caller that resets it.
func (s *Store) UpdateCard(deckID string, card models.Card) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(deckID)
	if i < 0 {
		return false
	}
	for j := range s.decks[i].Cards {
		if s.decks[i].Cards[j].ID == card.ID {
			s.decks[i].Cards[j] = card
			s.commit()
			return true
		}
	}
	return false
}

// Review looks up the live card and deck by identifier, applies the
// scheduler and marks the deck studied. The caller's copy of the card is
// never trusted; only its identifiers matter.
func (s *Store) Review(deckID, cardID string, outcome srs.Outcome, now time.Time) (models.Card, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(deckID)
	if i < 0 {
		return models.Card{}, false
	}
	for j := range s.decks[i].Cards {
		if s.decks[i].Cards[j].ID == cardID {
			updated := srs.Apply(s.decks[i].Cards[j], outcome, now)
			s.decks[i].Cards[j] = updated
			s.decks[i].MarkStudied(now)
			s.commit()
			return updated, true
		}
	}
	return models.Card{}, false
}

// DeleteDecks removes the decks with the given IDs, keeping the remaining
// decks in order. It returns how many were removed.
func (s *Store) DeleteDecks(ids ...string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	kept := s.decks[:0]
	removed := 0
	for _, d := range s.decks {
		if drop[d.ID] {
			removed++
			continue
		}
		kept = append(kept, d)
	}
	s.decks = kept
	if removed > 0 {
		s.commit()
	}
	return removed
}

// ReplaceDeck replaces the whole deck record with a matching ID.
func (s *Store) ReplaceDeck(deck models.Deck) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(deck.ID)
	if i < 0 {
		return false
	}
	s.decks[i] = cloneDeck(deck)
	s.commit()
	return true
}

// RecordStudyTime adds to the deck's cumulative study time.
func (s *Store) RecordStudyTime(deckID string, seconds float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(deckID)
	if i < 0 {
		return false
	}
	s.decks[i].AddStudyTime(seconds)
	s.commit()
	return true
}

// indexOf returns the position of the deck with the given ID, or -1.
// Callers must hold the lock.
func (s *Store) indexOf(id string) int {
	for i := range s.decks {
		if s.decks[i].ID == id {
			return i
		}
	}
	return -1
}

// commit finishes a mutation: bump the version, persist, notify watchers.
// Persistence failures are logged only; the in-memory mutation stands.
// Callers must hold the lock.
func (s *Store) commit() {
	s.version++
	if err := s.persistLocked(); err != nil {
		s.log.Error("auto-save failed: %v", err)
	}
	for _, ch := range s.watchers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func cloneDeck(d models.Deck) models.Deck {
	out := d
	out.Cards = append([]models.Card(nil), d.Cards...)
	if out.Cards == nil {
		out.Cards = []models.Card{}
	}
	if d.LastStudyDay != nil {
		day := *d.LastStudyDay
		out.LastStudyDay = &day
	}
	return out
}

func cloneDecks(decks []models.Deck) []models.Deck {
	out := make([]models.Deck, len(decks))
	for i, d := range decks {
		out[i] = cloneDeck(d)
	}
	return out
}
