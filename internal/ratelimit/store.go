package ratelimit

import (
	"context"
	"time"

	"pulse/pkg/domain"
)

// Store persists attempt timestamps per identity, newest first. Only the
// most recent `keep` timestamps are retained; older ones are discarded on
// write.
type Store interface {
	Attempts(ctx context.Context, identity domain.Identity) ([]time.Time, error)
	RecordAttempt(ctx context.Context, identity domain.Identity, at time.Time, keep int) error
}
