// Package cache holds recently fetched provider profiles so that repeat
// verification requests within the TTL do not hit the upstream APIs again.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"pulse/internal/verification/models"
	"pulse/internal/verification/providers"
	"pulse/pkg/domain"
)

const (
	// DefaultTTL bounds how stale a cached profile may be.
	DefaultTTL = 5 * time.Minute

	cleanupInterval = 10 * time.Minute
)

// ProfileCache is a TTL cache keyed by platform and handle.
type ProfileCache struct {
	inner *gocache.Cache
}

// New creates a profile cache. A non-positive ttl falls back to DefaultTTL.
func New(ttl time.Duration) *ProfileCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ProfileCache{
		inner: gocache.New(ttl, cleanupInterval),
	}
}

func key(platform models.Platform, handle domain.Handle) string {
	return string(platform) + ":" + handle.String()
}

// Get returns the cached profile for the platform and handle, if present.
func (c *ProfileCache) Get(platform models.Platform, handle domain.Handle) (*providers.Profile, bool) {
	v, ok := c.inner.Get(key(platform, handle))
	if !ok {
		return nil, false
	}
	profile, ok := v.(*providers.Profile)
	return profile, ok
}

// Set stores the profile under the cache's default TTL.
func (c *ProfileCache) Set(platform models.Platform, handle domain.Handle, profile *providers.Profile) {
	c.inner.Set(key(platform, handle), profile, gocache.DefaultExpiration)
}
