package store

import (
	"context"
	"encoding/json"
	"errors"
	"sort"

	goredis "github.com/redis/go-redis/v9"

	platformredis "pulse/internal/platform/redis"
	"pulse/internal/verification/models"
	"pulse/pkg/domain"
	dErrors "pulse/pkg/domain-errors"
)

const redisKeyPrefix = "pulse:verifications:"

// RedisStore persists verification results in a Redis hash per identity,
// one field per platform.
type RedisStore struct {
	client *platformredis.Client
}

func NewRedisStore(client *platformredis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func redisKey(identity domain.Identity) string {
	return redisKeyPrefix + identity.String()
}

func (s *RedisStore) Save(ctx context.Context, identity domain.Identity, result models.VerificationResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to encode verification result")
	}
	if err := s.client.HSet(ctx, redisKey(identity), string(result.Platform), payload).Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store verification result")
	}
	return nil
}

func (s *RedisStore) ListByIdentity(ctx context.Context, identity domain.Identity) ([]models.VerificationResult, error) {
	fields, err := s.client.HGetAll(ctx, redisKey(identity)).Result()
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list verification results")
	}

	out := make([]models.VerificationResult, 0, len(fields))
	for _, raw := range fields {
		var result models.VerificationResult
		if err := json.Unmarshal([]byte(raw), &result); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to decode verification result")
		}
		out = append(out, result)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Platform < out[j].Platform })
	return out, nil
}

func (s *RedisStore) FindByPlatform(ctx context.Context, identity domain.Identity, platform models.Platform) (models.VerificationResult, error) {
	raw, err := s.client.HGet(ctx, redisKey(identity), string(platform)).Result()
	if errors.Is(err, goredis.Nil) {
		return models.VerificationResult{}, dErrors.New(dErrors.CodeNotFound, "no verification found for platform")
	}
	if err != nil {
		return models.VerificationResult{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load verification result")
	}

	var result models.VerificationResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return models.VerificationResult{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to decode verification result")
	}
	return result, nil
}

var _ Store = (*RedisStore)(nil)
