package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulse/internal/verification/models"
	dErrors "pulse/pkg/domain-errors"
)

func TestInMemoryStore_SaveAndFind(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()
	now := time.Now().UTC()

	result := models.Verified(models.PlatformGitHub, models.AccountData{"username": "octocat"}, 80, now)
	require.NoError(t, s.Save(ctx, "user-1", result))

	got, err := s.FindByPlatform(ctx, "user-1", models.PlatformGitHub)
	require.NoError(t, err)
	assert.Equal(t, result, got)
}

func TestInMemoryStore_FindMissing(t *testing.T) {
	s := NewInMemoryStore()

	_, err := s.FindByPlatform(context.Background(), "user-1", models.PlatformGitHub)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestInMemoryStore_ReplaceIsIdempotentPerPlatform(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()
	now := time.Now().UTC()

	first := models.Verified(models.PlatformGitHub, models.AccountData{"followers": 10}, 40, now)
	second := models.Verified(models.PlatformGitHub, models.AccountData{"followers": 90}, 75, now.Add(time.Hour))
	require.NoError(t, s.Save(ctx, "user-1", first))
	require.NoError(t, s.Save(ctx, "user-1", second))

	results, err := s.ListByIdentity(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, second, results[0])
}

func TestInMemoryStore_ListOrderedByPlatform(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, s.Save(ctx, "user-1", models.Verified(models.PlatformTwitter, nil, 60, now)))
	require.NoError(t, s.Save(ctx, "user-1", models.Verified(models.PlatformGitHub, nil, 80, now)))
	require.NoError(t, s.Save(ctx, "user-1", models.Verified(models.PlatformLens, nil, 50, now)))

	results, err := s.ListByIdentity(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, models.PlatformGitHub, results[0].Platform)
	assert.Equal(t, models.PlatformLens, results[1].Platform)
	assert.Equal(t, models.PlatformTwitter, results[2].Platform)
}

func TestInMemoryStore_IdentitiesAreIsolated(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "user-1", models.Verified(models.PlatformGitHub, nil, 80, time.Now())))

	results, err := s.ListByIdentity(ctx, "user-2")
	require.NoError(t, err)
	assert.Empty(t, results)
}
