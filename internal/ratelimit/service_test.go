package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	platformredis "pulse/internal/platform/redis"
)

type fakeClock struct {
	current time.Time
}

func (c *fakeClock) Now() time.Time { return c.current }

func (c *fakeClock) Advance(d time.Duration) { c.current = c.current.Add(d) }

func newTestService(t *testing.T) (*Service, *fakeClock) {
	t.Helper()
	clock := &fakeClock{current: time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)}
	svc := New(NewInMemoryStore(), DefaultMaxPerDay, WithClock(clock.Now))
	return svc, clock
}

func TestQuotaStartsFull(t *testing.T) {
	svc, _ := newTestService(t)

	ok, quota, err := svc.CanAttempt(context.Background(), "user-1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 3, quota.Remaining)
	assert.True(t, quota.ResetAt.IsZero())
}

func TestQuotaExhaustsAfterThreeAttempts(t *testing.T) {
	svc, clock := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, _, err := svc.CanAttempt(ctx, "user-1")
		require.NoError(t, err)
		require.True(t, ok)
		require.NoError(t, svc.RecordAttempt(ctx, "user-1"))
		clock.Advance(time.Minute)
	}

	ok, quota, err := svc.CanAttempt(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, quota.Remaining)
	assert.False(t, quota.ResetAt.IsZero())
}

func TestQuotaRecoversAfterWindow(t *testing.T) {
	svc, clock := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.RecordAttempt(ctx, "user-1"))
	}
	ok, _, err := svc.CanAttempt(ctx, "user-1")
	require.NoError(t, err)
	require.False(t, ok)

	clock.Advance(24*time.Hour + time.Minute)

	ok, quota, err := svc.CanAttempt(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 3, quota.Remaining)
}

func TestQuotaSlidesAsAttemptsAgeOut(t *testing.T) {
	svc, clock := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.RecordAttempt(ctx, "user-1"))
	clock.Advance(12 * time.Hour)
	require.NoError(t, svc.RecordAttempt(ctx, "user-1"))
	require.NoError(t, svc.RecordAttempt(ctx, "user-1"))

	ok, _, err := svc.CanAttempt(ctx, "user-1")
	require.NoError(t, err)
	require.False(t, ok)

	// The first attempt ages out 12h later; one slot frees up.
	clock.Advance(12*time.Hour + time.Minute)
	ok, quota, err := svc.CanAttempt(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, quota.Remaining)
}

func TestIdentitiesHaveIndependentQuotas(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.RecordAttempt(ctx, "user-1"))
	}

	ok, _, err := svc.CanAttempt(ctx, "user-2")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestOnlyRecentAttemptsAreKept(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()
	base := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 15; i++ {
		require.NoError(t, store.RecordAttempt(ctx, "user-1", base.Add(time.Duration(i)*time.Minute), keepAttempts))
	}

	attempts, err := store.Attempts(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, attempts, keepAttempts)
	// Newest first; the oldest five were discarded.
	assert.Equal(t, base.Add(14*time.Minute), attempts[0])
	assert.Equal(t, base.Add(5*time.Minute), attempts[len(attempts)-1])
}

func TestRedisStoreRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := platformredis.New(mr.Addr(), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedisStore(client)
	ctx := context.Background()
	base := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 12; i++ {
		require.NoError(t, store.RecordAttempt(ctx, "user-1", base.Add(time.Duration(i)*time.Minute), keepAttempts))
	}

	attempts, err := store.Attempts(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, attempts, keepAttempts)
	assert.True(t, attempts[0].Equal(base.Add(11*time.Minute)))

	clock := &fakeClock{current: base.Add(time.Hour)}
	svc := New(store, 3, WithClock(clock.Now))
	ok, quota, err := svc.CanAttempt(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, quota.Remaining)
}
