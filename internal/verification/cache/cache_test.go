package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulse/internal/verification/models"
	"pulse/internal/verification/providers"
)

func TestGetMissThenHit(t *testing.T) {
	c := New(time.Minute)

	_, ok := c.Get(models.PlatformGitHub, "octocat")
	assert.False(t, ok)

	profile := &providers.Profile{Account: models.AccountData{"username": "octocat"}}
	c.Set(models.PlatformGitHub, "octocat", profile)

	got, ok := c.Get(models.PlatformGitHub, "octocat")
	require.True(t, ok)
	assert.Equal(t, profile, got)
}

func TestKeysAreScopedByPlatform(t *testing.T) {
	c := New(time.Minute)
	c.Set(models.PlatformGitHub, "octocat", &providers.Profile{})

	_, ok := c.Get(models.PlatformTwitter, "octocat")
	assert.False(t, ok)
}

func TestEntriesExpire(t *testing.T) {
	c := New(10 * time.Millisecond)
	c.Set(models.PlatformLens, "alice", &providers.Profile{})

	time.Sleep(30 * time.Millisecond)

	_, ok := c.Get(models.PlatformLens, "alice")
	assert.False(t, ok)
}
