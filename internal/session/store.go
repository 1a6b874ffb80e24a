package session

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Store keeps per-call state keyed by call SID. It holds at most capacity
// entries, evicting the least recently used, and drops entries ttl after
// they were last written.
type Store[V any] struct {
	mu    sync.Mutex
	cache *expirable.LRU[string, V]
}

func New[V any](capacity int, ttl time.Duration) *Store[V] {
	if capacity <= 0 {
		capacity = 10000
	}
	return &Store[V]{
		cache: expirable.NewLRU[string, V](capacity, nil, ttl),
	}
}

func (s *Store[V]) Get(id string) (V, bool) {
	return s.cache.Get(id)
}

func (s *Store[V]) Put(id string, v V) {
	s.cache.Add(id, v)
}

func (s *Store[V]) Delete(id string) {
	s.cache.Remove(id)
}

func (s *Store[V]) Len() int {
	return s.cache.Len()
}

// Update applies fn to the current value of id atomically with respect to
// other updates. fn receives ok=false for a missing entry; returning
// keep=false deletes the entry.
func (s *Store[V]) Update(id string, fn func(v V, ok bool) (V, bool, error)) (V, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.cache.Get(id)
	next, keep, err := fn(current, ok)
	if err != nil {
		return current, err
	}
	if keep {
		s.cache.Add(id, next)
	} else {
		s.cache.Remove(id)
	}
	return next, nil
}
