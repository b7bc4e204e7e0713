package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rmaia/flashdecks/internal/models"
)

const (
	backupPrefix = "decks-"
	backupSuffix = ".json"

	// backupTimeLayout sorts lexicographically in chronological order, so
	// ListBackups can order by name alone.
	backupTimeLayout = "20060102-150405"
)

// Load reads the canonical file into memory. A missing or unreadable file
// falls back to the seed collection, which is persisted immediately so the
// store is never empty on first run.
func (s *Store) Load() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err == nil {
		var decks []models.Deck
		if jsonErr := json.Unmarshal(data, &decks); jsonErr == nil {
			s.decks = decks
			s.log.Info("loaded %d decks from %s", len(decks), s.path)
			return nil
		} else {
			s.log.Warn("canonical file unreadable, bootstrapping seed data: %v", jsonErr)
		}
	} else if !os.IsNotExist(err) {
		s.log.Warn("failed to read canonical file, bootstrapping seed data: %v", err)
	}

	s.decks = seedDecks()
	s.log.Info("bootstrapped %d seed decks", len(s.decks))
	if err := s.persistLocked(); err != nil {
		s.log.Error("failed to persist seed data: %v", err)
	}
	return nil
}

// Save persists the current collection to the canonical file.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistLocked()
}

// persistLocked serializes the full collection and atomically replaces the
// canonical file. Callers must hold the lock.
func (s *Store) persistLocked() error {
	data, err := json.MarshalIndent(s.decks, "", "  ")
	if err != nil {
		return fmt.Errorf("encode decks: %w", err)
	}
	if err := atomicWrite(s.path, data); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}

// atomicWrite publishes data at path via a temp file in the same directory
// followed by a rename, so a crash mid-write never exposes a partial file.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".decks-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// CreateBackup writes the current collection to a new timestamped file in
// the backup directory and returns the backup's name. An existing backup is
// never overwritten; a second backup within the same second fails instead.
func (s *Store) CreateBackup() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.backupDir, 0o755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}

	data, err := json.MarshalIndent(s.decks, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode decks: %w", err)
	}

	name := backupPrefix + time.Now().UTC().Format(backupTimeLayout) + backupSuffix
	path := filepath.Join(s.backupDir, name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create backup %s: %w", name, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("write backup %s: %w", name, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("sync backup %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close backup %s: %w", name, err)
	}

	s.log.Info("created backup %s (%d decks)", name, len(s.decks))
	return name, nil
}

// ListBackups returns backup names newest first. The timestamped naming
// scheme makes descending name order descending time order.
func (s *Store) ListBackups() ([]string, error) {
	entries, err := os.ReadDir(s.backupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read backup dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, backupPrefix) || !strings.HasSuffix(name, backupSuffix) {
			continue
		}
		names = append(names, name)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names, nil
}

// Restore replaces the entire in-memory collection with the named backup's
// contents and persists it as the new canonical state. A restore overwrites;
// it never merges.
func (s *Store) Restore(name string) error {
	if filepath.Base(name) != name {
		return fmt.Errorf("invalid backup name %q", name)
	}

	data, err := os.ReadFile(filepath.Join(s.backupDir, name))
	if err != nil {
		return fmt.Errorf("read backup %s: %w", name, err)
	}
	var decks []models.Deck
	if err := json.Unmarshal(data, &decks); err != nil {
		return fmt.Errorf("decode backup %s: %w", name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.decks = decks
	s.version++
	if err := s.persistLocked(); err != nil {
		return err
	}
	for _, ch := range s.watchers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	s.log.Info("restored %d decks from backup %s", len(decks), name)
	return nil
}

// RestoreLatest restores from the most recent backup.
func (s *Store) RestoreLatest() error {
	names, err := s.ListBackups()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return fmt.Errorf("no backups found")
	}
	return s.Restore(names[0])
}
