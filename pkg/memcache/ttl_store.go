// pkg/memcache/ttl_store.go
package mem

import (
	"sync"
	"time"
)

// TTLStore is an in-process key/value store whose entries expire.
type TTLStore interface {
	Set(key string, value []byte, ttl time.Duration)

	// Get returns the value for key if present and not expired.
	Get(key string) ([]byte, bool)

	Delete(key string)

	// Sweep drops expired entries and returns how many were removed.
	Sweep() int
}

type entry struct {
	value     []byte
	expiresAt time.Time
}

type Store struct {
	mu   sync.RWMutex
	data map[string]entry
	now  func() time.Time
}

func NewStore() *Store {
	return &Store{
		data: make(map[string]entry),
		now:  time.Now,
	}
}

// NewStoreWithClock is NewStore with an injectable clock.
func NewStoreWithClock(now func() time.Time) *Store {
	s := NewStore()
	s.now = now
	return s
}

func (s *Store) Set(key string, value []byte, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := append([]byte(nil), value...)
	s.data[key] = entry{
		value:     copied,
		expiresAt: s.now().Add(ttl),
	}
}

func (s *Store) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	e, ok := s.data[key]
	s.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if s.now().After(e.expiresAt) {
		s.Delete(key)
		return nil, false
	}
	return append([]byte(nil), e.value...), true
}

func (s *Store) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
}

func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for key, e := range s.data {
		if now.After(e.expiresAt) {
			delete(s.data, key)
			removed++
		}
	}
	return removed
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
