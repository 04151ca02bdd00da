// Package cache provides a small in-process LRU with per-entry TTL, used to
// memoize projection results keyed by a digest of their inputs.
package cache

import (
	"container/list"
	"sync"
	"time"
)

type entry[T any] struct {
	key       string
	value     T
	expiresAt time.Time
}

// Store is a fixed-capacity LRU cache whose entries also expire after a TTL.
// Safe for concurrent use.
type Store[T any] struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	now     func() time.Time

	index map[string]*list.Element
	order *list.List // front = most recently used
}

func New[T any](maxSize int, ttl time.Duration) *Store[T] {
	return &Store[T]{
		maxSize: maxSize,
		ttl:     ttl,
		now:     time.Now,
		index:   make(map[string]*list.Element),
		order:   list.New(),
	}
}

// Get returns the cached value for key. Expired entries are dropped on
// access and reported as misses.
func (s *Store[T]) Get(key string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	elem, ok := s.index[key]
	if !ok {
		return zero, false
	}
	ent := elem.Value.(*entry[T])
	if s.now().After(ent.expiresAt) {
		s.remove(elem)
		return zero, false
	}

	s.order.MoveToFront(elem)
	return ent.value, true
}

// Set stores value under key, refreshing the TTL and recency. The least
// recently used entry is evicted when the store is over capacity.
func (s *Store[T]) Set(key string, value T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ent := &entry[T]{key: key, value: value, expiresAt: s.now().Add(s.ttl)}
	if elem, ok := s.index[key]; ok {
		elem.Value = ent
		s.order.MoveToFront(elem)
		return
	}

	s.index[key] = s.order.PushFront(ent)
	if s.order.Len() > s.maxSize {
		if oldest := s.order.Back(); oldest != nil {
			s.remove(oldest)
		}
	}
}

func (s *Store[T]) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if elem, ok := s.index[key]; ok {
		s.remove(elem)
	}
}

// Purge drops every entry. Used when the underlying goal store changes and
// all memoized projections become stale at once.
func (s *Store[T]) Purge() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.index = make(map[string]*list.Element)
	s.order.Init()
}

// CleanExpired removes all expired entries and reports how many were dropped.
func (s *Store[T]) CleanExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for elem := s.order.Front(); elem != nil; {
		next := elem.Next()
		if now.After(elem.Value.(*entry[T]).expiresAt) {
			s.remove(elem)
			removed++
		}
		elem = next
	}
	return removed
}

func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.index)
}

func (s *Store[T]) remove(elem *list.Element) {
	delete(s.index, elem.Value.(*entry[T]).key)
	s.order.Remove(elem)
}
