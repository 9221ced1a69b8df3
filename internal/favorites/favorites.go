// Package favorites keeps the user's set of favorited artwork ids.
//
// The set is loaded once when the Store is created and written back in full
// on every mutation. Any string is a valid id, including ids the client has
// never fetched.
package favorites

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/mmcdole/rijks/internal/domain"
)

// StorageKey is the key holding the favorite id list
const StorageKey = "FavoriteArtworks"

var (
	_ domain.FavoritesQueries  = (*Store)(nil)
	_ domain.FavoritesCommands = (*Store)(nil)
)

// Store is an in-memory favorite set mirrored to a KeyValueStore
type Store struct {
	kv     domain.KeyValueStore
	logger *slog.Logger

	mu  sync.RWMutex
	ids map[string]struct{}
}

// NewStore loads the persisted favorites. A missing key starts empty.
func NewStore(kv domain.KeyValueStore, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		kv:     kv,
		logger: logger,
		ids:    make(map[string]struct{}),
	}

	if saved, ok := kv.GetStrings(StorageKey); ok {
		for _, id := range saved {
			s.ids[id] = struct{}{}
		}
	}
	logger.Debug("loaded favorites", "count", len(s.ids))
	return s
}

// IsFavorite reports whether id is in the set
func (s *Store) IsFavorite(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.ids[id]
	return ok
}

// Toggle flips membership of id, persists the whole set and returns the new
// membership. If persisting fails the in-memory change is undone.
func (s *Store) Toggle(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, was := s.ids[id]
	if was {
		delete(s.ids, id)
	} else {
		s.ids[id] = struct{}{}
	}

	if err := s.saveLocked(); err != nil {
		if was {
			s.ids[id] = struct{}{}
		} else {
			delete(s.ids, id)
		}
		return was, fmt.Errorf("failed to save favorites: %w", err)
	}

	s.logger.Debug("toggled favorite", "id", id, "favorite", !was)
	return !was, nil
}

// Clear removes every favorite
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Delete(StorageKey); err != nil {
		return fmt.Errorf("failed to clear favorites: %w", err)
	}
	s.ids = make(map[string]struct{})
	return nil
}

// List returns the favorite ids in sorted order
func (s *Store) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Count returns the number of favorites
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}

func (s *Store) saveLocked() error {
	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	return s.kv.SaveStrings(StorageKey, ids)
}
