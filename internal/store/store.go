package store

import (
	"encoding/json"
	"fmt"

	"tst/internal/models"
)

// Keys for the three persisted records. The layout mirrors the original
// browser build of this tool, which kept the same three JSON documents in
// localStorage, so an exported blob from either side reads the same.
const (
	keySprints       = "sprints"
	keyEntries       = "entries"
	keyCurrentSprint = "current_sprint"
)

// KV is the flat string key-value interface all persistence goes through.
// Get reports absence via the bool rather than an error.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
	Close() error
}

// Store is the persistence facade: it JSON-encodes the sprint list, the
// entry list, and the current-sprint reference as three independent records
// in a KV backend. It holds no state of its own.
type Store struct {
	kv KV
}

// New creates a Store over the given KV backend.
func New(kv KV) *Store {
	return &Store{kv: kv}
}

// LoadSprints returns the persisted sprint list, empty if none was saved.
func (s *Store) LoadSprints() ([]models.Sprint, error) {
	var sprints []models.Sprint
	if err := s.load(keySprints, &sprints); err != nil {
		return nil, err
	}
	if sprints == nil {
		sprints = []models.Sprint{}
	}
	return sprints, nil
}

// SaveSprints persists the full sprint list.
func (s *Store) SaveSprints(sprints []models.Sprint) error {
	return s.save(keySprints, sprints)
}

// LoadEntries returns the persisted entry list, empty if none was saved.
func (s *Store) LoadEntries() ([]models.Entry, error) {
	var entries []models.Entry
	if err := s.load(keyEntries, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []models.Entry{}
	}
	return entries, nil
}

// SaveEntries persists the full entry list.
func (s *Store) SaveEntries(entries []models.Entry) error {
	return s.save(keyEntries, entries)
}

// LoadCurrentSprint returns the selected sprint, or nil when none is saved.
func (s *Store) LoadCurrentSprint() (*models.Sprint, error) {
	raw, ok, err := s.kv.Get(keyCurrentSprint)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", keyCurrentSprint, err)
	}
	if !ok {
		return nil, nil
	}
	var sp models.Sprint
	if err := json.Unmarshal([]byte(raw), &sp); err != nil {
		return nil, fmt.Errorf("decode %s: %w", keyCurrentSprint, err)
	}
	return &sp, nil
}

// SaveCurrentSprint persists the selected sprint; nil clears the selection.
func (s *Store) SaveCurrentSprint(sp *models.Sprint) error {
	if sp == nil {
		if err := s.kv.Delete(keyCurrentSprint); err != nil {
			return fmt.Errorf("clear %s: %w", keyCurrentSprint, err)
		}
		return nil
	}
	return s.save(keyCurrentSprint, sp)
}

// Close closes the underlying KV backend.
func (s *Store) Close() error {
	return s.kv.Close()
}

func (s *Store) load(key string, target any) error {
	raw, ok, err := s.kv.Get(key)
	if err != nil {
		return fmt.Errorf("load %s: %w", key, err)
	}
	if !ok {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), target); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (s *Store) save(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.kv.Set(key, string(data)); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
