package store

import (
	"context"
	"encoding/json"

	"pulse/internal/credential/models"
	platformredis "pulse/internal/platform/redis"
	"pulse/pkg/domain"
	dErrors "pulse/pkg/domain-errors"
)

const redisKeyPrefix = "pulse:credentials:"

// RedisStore persists credential records in a Redis list per identity, in
// issuance order.
type RedisStore struct {
	client *platformredis.Client
}

func NewRedisStore(client *platformredis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func redisKey(identity domain.Identity) string {
	return redisKeyPrefix + identity.String()
}

func (s *RedisStore) Append(ctx context.Context, record models.CredentialRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to encode credential record")
	}
	if err := s.client.RPush(ctx, redisKey(record.Subject), payload).Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store credential record")
	}
	return nil
}

func (s *RedisStore) ListByIdentity(ctx context.Context, identity domain.Identity) ([]models.CredentialRecord, error) {
	raw, err := s.client.LRange(ctx, redisKey(identity), 0, -1).Result()
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list credential records")
	}

	out := make([]models.CredentialRecord, 0, len(raw))
	for _, v := range raw {
		var record models.CredentialRecord
		if err := json.Unmarshal([]byte(v), &record); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to decode credential record")
		}
		out = append(out, record)
	}
	return out, nil
}

func (s *RedisStore) ListByType(ctx context.Context, identity domain.Identity, credType models.CredentialType) ([]models.CredentialRecord, error) {
	records, err := s.ListByIdentity(ctx, identity)
	if err != nil {
		return nil, err
	}

	var out []models.CredentialRecord
	for _, record := range records {
		if record.Type == credType {
			out = append(out, record)
		}
	}
	return out, nil
}

var _ Store = (*RedisStore)(nil)
