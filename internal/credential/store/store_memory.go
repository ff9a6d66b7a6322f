package store

import (
	"context"
	"sync"

	"pulse/internal/credential/models"
	"pulse/pkg/domain"
)

// InMemoryStore keeps credential records in process memory.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[domain.Identity][]models.CredentialRecord
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: make(map[domain.Identity][]models.CredentialRecord)}
}

func (s *InMemoryStore) Append(_ context.Context, record models.CredentialRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.Subject] = append(s.records[record.Subject], record)
	return nil
}

func (s *InMemoryStore) ListByIdentity(_ context.Context, identity domain.Identity) ([]models.CredentialRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.CredentialRecord{}, s.records[identity]...), nil
}

func (s *InMemoryStore) ListByType(_ context.Context, identity domain.Identity, credType models.CredentialType) ([]models.CredentialRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.CredentialRecord
	for _, record := range s.records[identity] {
		if record.Type == credType {
			out = append(out, record)
		}
	}
	return out, nil
}

var _ Store = (*InMemoryStore)(nil)
