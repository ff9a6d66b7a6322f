// Package store persists issued credential records per identity.
package store

import (
	"context"

	"pulse/internal/credential/models"
	"pulse/pkg/domain"
)

// Store is the persistence port for credential records.
type Store interface {
	// Append adds an issued credential to the identity's list.
	Append(ctx context.Context, record models.CredentialRecord) error

	// ListByIdentity returns all credentials issued to the identity in
	// issuance order.
	ListByIdentity(ctx context.Context, identity domain.Identity) ([]models.CredentialRecord, error)

	// ListByType returns the identity's credentials of the given type in
	// issuance order.
	ListByType(ctx context.Context, identity domain.Identity, credType models.CredentialType) ([]models.CredentialRecord, error)
}
