// Package mirror is the placeholder verifier for Mirror. The platform is
// part of the reputation model (it has an aggregation weight) but has no
// live verifier yet; every lookup reports "not yet supported".
package mirror

import (
	"context"

	"pulse/internal/verification/models"
	"pulse/internal/verification/providers"
	"pulse/pkg/domain"
)

// NotSupportedMessage is the fixed failure reason surfaced to callers.
const NotSupportedMessage = "not yet supported"

// Provider is the Mirror verifier stub.
type Provider struct{}

// New creates the Mirror stub provider.
func New() *Provider {
	return &Provider{}
}

// Platform returns the platform this provider verifies.
func (p *Provider) Platform() models.Platform {
	return models.PlatformMirror
}

// Lookup always fails with the not-supported reason; no outbound request
// is made.
func (p *Provider) Lookup(_ context.Context, _ domain.Handle) (*providers.Profile, error) {
	return nil, providers.NewProviderError(providers.ErrorNotSupported, "mirror", NotSupportedMessage, nil)
}
