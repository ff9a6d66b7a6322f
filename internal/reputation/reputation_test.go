package reputation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulse/internal/verification/models"
	"pulse/internal/verification/store"
)

func TestAggregate_EmptyIsZero(t *testing.T) {
	assert.Equal(t, 0, Aggregate(nil))
	assert.Equal(t, 0, Aggregate([]models.VerificationResult{}))
}

func TestAggregate_WeightedMean(t *testing.T) {
	now := time.Now()
	results := []models.VerificationResult{
		models.Verified(models.PlatformGitHub, nil, 80, now),
		models.Verified(models.PlatformTwitter, nil, 60, now),
	}

	// (80*2.0 + 60*1.0) / 3.0 = 73.33, rounded to 73.
	assert.Equal(t, 73, Aggregate(results))
}

func TestAggregate_IgnoresUnverified(t *testing.T) {
	now := time.Now()
	results := []models.VerificationResult{
		models.Verified(models.PlatformGitHub, nil, 80, now),
		models.Unverified(models.PlatformTwitter, "twitter user not found", now),
	}

	assert.Equal(t, 80, Aggregate(results))
}

func TestAggregate_AllUnverifiedIsZero(t *testing.T) {
	now := time.Now()
	results := []models.VerificationResult{
		models.Unverified(models.PlatformGitHub, "github user not found", now),
		models.Unverified(models.PlatformMirror, "not yet supported", now),
	}

	assert.Equal(t, 0, Aggregate(results))
}

func TestAggregate_OrderIndependent(t *testing.T) {
	now := time.Now()
	a := []models.VerificationResult{
		models.Verified(models.PlatformGitHub, nil, 80, now),
		models.Verified(models.PlatformLens, nil, 50, now),
		models.Verified(models.PlatformTwitter, nil, 60, now),
	}
	b := []models.VerificationResult{a[2], a[0], a[1]}

	assert.Equal(t, Aggregate(a), Aggregate(b))
}

func TestWeight_UnknownPlatformDefaultsToOne(t *testing.T) {
	assert.Equal(t, 1.0, Weight(models.Platform("something-new")))
	assert.Equal(t, 2.0, Weight(models.PlatformGitHub))
}

func TestForIdentity(t *testing.T) {
	st := store.NewInMemoryStore()
	ctx := context.Background()
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	require.NoError(t, st.Save(ctx, "user-1", models.Verified(models.PlatformGitHub, nil, 80, now)))
	require.NoError(t, st.Save(ctx, "user-1", models.Verified(models.PlatformTwitter, nil, 60, now)))

	svc := New(st, WithClock(func() time.Time { return now }))
	summary, err := svc.ForIdentity(ctx, "user-1")
	require.NoError(t, err)

	assert.Equal(t, 73, summary.Score)
	assert.Len(t, summary.Verifications, 2)
	assert.True(t, summary.ComputedAt.Equal(now))
}

func TestForIdentity_NoVerifications(t *testing.T) {
	svc := New(store.NewInMemoryStore())
	summary, err := svc.ForIdentity(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Score)
	assert.Empty(t, summary.Verifications)
}
