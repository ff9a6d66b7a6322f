// Package providers defines the common pipeline every platform verifier
// plugs into: look up a profile on the platform's API, snapshot it as
// account data, and express its signals as weighted score terms. The
// verification service turns profiles and lookup failures into results, so
// individual providers never shape results themselves and cannot drift
// apart.
package providers

import (
	"context"
	"fmt"

	"pulse/internal/verification/models"
	"pulse/internal/verification/scoring"
	"pulse/pkg/domain"
)

// Profile is the outcome of a successful platform lookup.
type Profile struct {
	// Account is the semi-structured profile snapshot persisted with the
	// verification result.
	Account models.AccountData

	// Terms feed the weighted-cap scoring formula. Weights per platform
	// sum to 100.
	Terms []scoring.Term
}

// Provider is the interface all platform verifiers implement.
//
// Lookup issues the platform's read-only profile request(s) for a handle and
// returns a *ProviderError on any failure. Implementations never retry;
// transient-failure retries belong to the injected HTTP client.
type Provider interface {
	// Platform returns which platform this provider verifies.
	Platform() models.Platform

	// Lookup fetches the profile for a handle and maps it to score terms.
	Lookup(ctx context.Context, handle domain.Handle) (*Profile, error)
}

// Registry maintains all registered providers indexed by platform.
// Not safe for concurrent mutation; register everything during startup.
type Registry struct {
	providers map[models.Platform]Provider
}

// NewRegistry constructs an empty provider registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[models.Platform]Provider)}
}

// Register adds a provider, keyed by its platform.
// Returns an error if the platform is already registered.
func (r *Registry) Register(p Provider) error {
	platform := p.Platform()
	if _, exists := r.providers[platform]; exists {
		return fmt.Errorf("provider for %s already registered", platform)
	}
	r.providers[platform] = p
	return nil
}

// Get returns the provider for a platform.
func (r *Registry) Get(platform models.Platform) (Provider, bool) {
	p, ok := r.providers[platform]
	return p, ok
}

// Platforms returns the platforms with a registered provider.
func (r *Registry) Platforms() []models.Platform {
	result := make([]models.Platform, 0, len(r.providers))
	for p := range r.providers {
		result = append(result, p)
	}
	return result
}
