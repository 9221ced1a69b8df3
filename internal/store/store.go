package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mmcdole/rijks/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketPreferences = []byte("preferences")
)

// Ensure Store implements KeyValueStore at compile time.
var _ domain.KeyValueStore = (*Store)(nil)

// Store implements domain.KeyValueStore using BoltDB.
// Values are JSON-encoded string lists.
type Store struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string][]byte
}

// Open opens (or creates) the database at path. An empty path gives a
// memory-only store that forgets everything on Close.
func Open(path string) (*Store, error) {
	if path == "" {
		return &Store{cache: make(map[string][]byte)}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketPreferences)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, cache: make(map[string][]byte)}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// GetStrings returns the list stored under key
func (s *Store) GetStrings(key string) ([]string, bool) {
	var values []string
	ok := s.get(bucketPreferences, key, &values)
	return values, ok
}

// SaveStrings replaces the list stored under key
func (s *Store) SaveStrings(key string, values []string) error {
	if values == nil {
		values = []string{}
	}
	return s.set(bucketPreferences, key, values)
}

// Delete removes key from the store
func (s *Store) Delete(key string) error {
	return s.delete(bucketPreferences, key)
}

// === Generic helpers ===

func (s *Store) get(bucket []byte, key string, dest any) bool {
	cacheKey := string(bucket) + ":" + key

	// Check memory cache first
	s.mu.RLock()
	if data, ok := s.cache[cacheKey]; ok {
		s.mu.RUnlock()
		return json.Unmarshal(data, dest) == nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return false
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	return json.Unmarshal(data, dest) == nil
}

func (s *Store) set(bucket []byte, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	if s.db != nil {
		// Disk first so the cache never holds a value that failed to persist
		err = s.db.Update(func(tx *bolt.Tx) error {
			return tx.Bucket(bucket).Put([]byte(key), data)
		})
		if err != nil {
			return fmt.Errorf("failed to write %s: %w", key, err)
		}
	}

	s.mu.Lock()
	s.cache[string(bucket)+":"+key] = data
	s.mu.Unlock()
	return nil
}

func (s *Store) delete(bucket []byte, key string) error {
	s.mu.Lock()
	delete(s.cache, string(bucket)+":"+key)
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		if b := tx.Bucket(bucket); b != nil {
			return b.Delete([]byte(key))
		}
		return nil
	})
}
