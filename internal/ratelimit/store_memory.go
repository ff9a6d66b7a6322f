package ratelimit

import (
	"context"
	"sync"
	"time"

	"pulse/pkg/domain"
)

// InMemoryStore keeps attempt timestamps in process memory.
type InMemoryStore struct {
	mu       sync.RWMutex
	attempts map[domain.Identity][]time.Time
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{attempts: make(map[domain.Identity][]time.Time)}
}

func (s *InMemoryStore) Attempts(_ context.Context, identity domain.Identity) ([]time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]time.Time{}, s.attempts[identity]...), nil
}

func (s *InMemoryStore) RecordAttempt(_ context.Context, identity domain.Identity, at time.Time, keep int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	attempts := append([]time.Time{at}, s.attempts[identity]...)
	if len(attempts) > keep {
		attempts = attempts[:keep]
	}
	s.attempts[identity] = attempts
	return nil
}

var _ Store = (*InMemoryStore)(nil)
