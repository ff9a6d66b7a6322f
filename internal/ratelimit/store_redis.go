package ratelimit

import (
	"context"
	"time"

	platformredis "pulse/internal/platform/redis"
	"pulse/pkg/domain"
	dErrors "pulse/pkg/domain-errors"
)

const (
	redisKeyPrefix = "pulse:attempts:"

	// Attempt lists expire well after the sliding window so quota math is
	// never short of data, without accumulating forever.
	attemptsTTL = 48 * time.Hour
)

// RedisStore persists attempt timestamps in a Redis list per identity,
// newest first.
type RedisStore struct {
	client *platformredis.Client
}

func NewRedisStore(client *platformredis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func redisKey(identity domain.Identity) string {
	return redisKeyPrefix + identity.String()
}

func (s *RedisStore) Attempts(ctx context.Context, identity domain.Identity) ([]time.Time, error) {
	raw, err := s.client.LRange(ctx, redisKey(identity), 0, -1).Result()
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load attempts")
	}

	attempts := make([]time.Time, 0, len(raw))
	for _, v := range raw {
		at, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to decode attempt timestamp")
		}
		attempts = append(attempts, at)
	}
	return attempts, nil
}

func (s *RedisStore) RecordAttempt(ctx context.Context, identity domain.Identity, at time.Time, keep int) error {
	key := redisKey(identity)
	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, key, at.UTC().Format(time.RFC3339Nano))
	pipe.LTrim(ctx, key, 0, int64(keep)-1)
	pipe.Expire(ctx, key, attemptsTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record attempt")
	}
	return nil
}

var _ Store = (*RedisStore)(nil)
