// Package store persists verification results per identity. Each identity
// holds at most one result per platform; a later verification replaces the
// earlier one.
package store

import (
	"context"

	"pulse/internal/verification/models"
	"pulse/pkg/domain"
)

// Store is the persistence port for verification results.
type Store interface {
	// Save records the result for the identity, replacing any existing
	// result for the same platform.
	Save(ctx context.Context, identity domain.Identity, result models.VerificationResult) error

	// ListByIdentity returns all stored results for the identity, ordered
	// by platform name for stable output.
	ListByIdentity(ctx context.Context, identity domain.Identity) ([]models.VerificationResult, error)

	// FindByPlatform returns the stored result for the identity and
	// platform. Returns a not-found domain error when absent.
	FindByPlatform(ctx context.Context, identity domain.Identity, platform models.Platform) (models.VerificationResult, error)
}
