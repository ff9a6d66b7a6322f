package ratelimit

import (
	"context"
	"time"

	"pulse/pkg/domain"
	dErrors "pulse/pkg/domain-errors"
)

const (
	// DefaultMaxPerDay is the attempt quota inside the sliding window.
	DefaultMaxPerDay = 3

	// window is the sliding period attempts are counted over.
	window = 24 * time.Hour

	// keepAttempts bounds how many timestamps are retained per identity.
	keepAttempts = 10
)

// Service answers whether an identity may start another verification
// attempt and records the attempts it makes.
type Service struct {
	store     Store
	maxPerDay int
	now       func() time.Time
}

// Option configures the Service.
type Option func(*Service)

// WithClock injects the time source. Used in tests to advance the window.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New creates the rate limit service. A non-positive maxPerDay falls back
// to DefaultMaxPerDay.
func New(store Store, maxPerDay int, opts ...Option) *Service {
	if maxPerDay <= 0 {
		maxPerDay = DefaultMaxPerDay
	}
	s := &Service{
		store:     store,
		maxPerDay: maxPerDay,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CanAttempt reports whether the identity has quota left, along with the
// current quota snapshot.
func (s *Service) CanAttempt(ctx context.Context, identity domain.Identity) (bool, Quota, error) {
	quota, err := s.Remaining(ctx, identity)
	if err != nil {
		return false, Quota{}, err
	}
	return quota.Remaining > 0, quota, nil
}

// RecordAttempt stores an attempt at the current time. Attempts are
// recorded when outbound verification starts, regardless of its outcome.
func (s *Service) RecordAttempt(ctx context.Context, identity domain.Identity) error {
	if err := s.store.RecordAttempt(ctx, identity, s.now().UTC(), keepAttempts); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record verification attempt")
	}
	return nil
}

// Remaining computes the quota left in the sliding window. ResetAt is the
// moment the oldest counted attempt ages out; it is zero when no attempts
// fall inside the window.
func (s *Service) Remaining(ctx context.Context, identity domain.Identity) (Quota, error) {
	attempts, err := s.store.Attempts(ctx, identity)
	if err != nil {
		return Quota{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load verification attempts")
	}

	cutoff := s.now().Add(-window)
	var inWindow int
	var oldest time.Time
	for _, at := range attempts {
		if !at.After(cutoff) {
			continue
		}
		inWindow++
		if oldest.IsZero() || at.Before(oldest) {
			oldest = at
		}
	}

	remaining := s.maxPerDay - inWindow
	if remaining < 0 {
		remaining = 0
	}
	quota := Quota{Remaining: remaining}
	if !oldest.IsZero() {
		quota.ResetAt = oldest.Add(window)
	}
	return quota, nil
}
