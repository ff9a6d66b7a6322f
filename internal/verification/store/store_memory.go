package store

import (
	"context"
	"sort"
	"sync"

	"pulse/internal/verification/models"
	"pulse/pkg/domain"
	dErrors "pulse/pkg/domain-errors"
)

// InMemoryStore keeps verification results in process memory. Used when no
// Redis address is configured and in tests.
type InMemoryStore struct {
	mu      sync.RWMutex
	results map[domain.Identity]map[models.Platform]models.VerificationResult
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		results: make(map[domain.Identity]map[models.Platform]models.VerificationResult),
	}
}

func (s *InMemoryStore) Save(_ context.Context, identity domain.Identity, result models.VerificationResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	byPlatform, ok := s.results[identity]
	if !ok {
		byPlatform = make(map[models.Platform]models.VerificationResult)
		s.results[identity] = byPlatform
	}
	byPlatform[result.Platform] = result
	return nil
}

func (s *InMemoryStore) ListByIdentity(_ context.Context, identity domain.Identity) ([]models.VerificationResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byPlatform := s.results[identity]
	out := make([]models.VerificationResult, 0, len(byPlatform))
	for _, result := range byPlatform {
		out = append(out, result)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Platform < out[j].Platform })
	return out, nil
}

func (s *InMemoryStore) FindByPlatform(_ context.Context, identity domain.Identity, platform models.Platform) (models.VerificationResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result, ok := s.results[identity][platform]
	if !ok {
		return models.VerificationResult{}, dErrors.New(dErrors.CodeNotFound, "no verification found for platform")
	}
	return result, nil
}

// Clear removes all stored results. Test helper.
func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = make(map[domain.Identity]map[models.Platform]models.VerificationResult)
}

var _ Store = (*InMemoryStore)(nil)
