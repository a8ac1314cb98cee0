package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/riskibarqy/league-history/internal/platform/resilience"
)

type entry struct {
	value     any
	storedAt  time.Time
	expiresAt time.Time
}

// Store is a short-lived read-through TTL cache. One store is injected per
// upstream resource type so each carries its own TTL.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	flight  resilience.SingleFlight

	emptyGrace time.Duration
	isEmpty    func(any) bool
	now        func() time.Time
}

type Option func(*Store)

// WithEmptyGrace enables the suspicious-empty policy: a write that would
// replace a non-empty value with an empty one inside the grace window is
// dropped and the stale non-empty value survives. Upstreams occasionally
// answer an empty list for data that exists.
func WithEmptyGrace(grace time.Duration, isEmpty func(any) bool) Option {
	return func(s *Store) {
		s.emptyGrace = grace
		s.isEmpty = isEmpty
	}
}

// WithClock injects the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func NewStore(ttl time.Duration, opts ...Option) *Store {
	s := &Store{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Get(_ context.Context, key string) (any, bool) {
	if key == "" {
		return nil, false
	}

	now := s.now()
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if s.ttl > 0 && !e.expiresAt.After(now) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return nil, false
	}

	return e.value, true
}

func (s *Store) Set(_ context.Context, key string, value any) {
	if key == "" {
		return
	}

	now := s.now()
	expiresAt := time.Time{}
	if s.ttl > 0 {
		expiresAt = now.Add(s.ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.suspiciousEmptyLocked(key, value, now) {
		return
	}

	s.entries[key] = entry{
		value:     value,
		storedAt:  now,
		expiresAt: expiresAt,
	}
}

// suspiciousEmptyLocked reports whether the candidate write is an empty
// value displacing a still-fresh non-empty one inside the grace window.
func (s *Store) suspiciousEmptyLocked(key string, value any, now time.Time) bool {
	if s.isEmpty == nil || s.emptyGrace <= 0 {
		return false
	}
	if !s.isEmpty(value) {
		return false
	}

	existing, ok := s.entries[key]
	if !ok || s.isEmpty(existing.value) {
		return false
	}
	return now.Sub(existing.storedAt) < s.emptyGrace
}

func (s *Store) Delete(_ context.Context, key string) {
	if key == "" {
		return
	}

	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

func (s *Store) DeletePrefix(_ context.Context, prefix string) {
	if prefix == "" {
		return
	}

	s.mu.Lock()
	for key := range s.entries {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			delete(s.entries, key)
		}
	}
	s.mu.Unlock()
}

func (s *Store) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (any, error)) (any, error) {
	if loader == nil {
		return nil, fmt.Errorf("loader is required")
	}
	if key == "" {
		return loader(ctx)
	}

	if value, ok := s.Get(ctx, key); ok {
		return value, nil
	}

	value, err, _ := s.flight.Do(key, func() (any, error) {
		if cached, ok := s.Get(ctx, key); ok {
			return cached, nil
		}

		loaded, loadErr := loader(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		s.Set(ctx, key, loaded)

		// The grace window may have kept a stale non-empty value; serve
		// whatever the store holds after the write.
		if kept, ok := s.Get(ctx, key); ok {
			return kept, nil
		}
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}

	return value, nil
}
