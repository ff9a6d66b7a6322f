// Package models defines the credential records issued to identities.
package models

import (
	"time"

	"github.com/google/uuid"

	"pulse/pkg/domain"
	dErrors "pulse/pkg/domain-errors"
)

// CredentialType classifies what a credential attests to.
type CredentialType string

const (
	TypePollParticipation  CredentialType = "poll_participation"
	TypeReputationBadge    CredentialType = "reputation_badge"
	TypeAgeVerification    CredentialType = "age_verification"
	TypeSocialVerification CredentialType = "social_verification"
)

// Types lists every supported credential type.
var Types = []CredentialType{
	TypePollParticipation,
	TypeReputationBadge,
	TypeAgeVerification,
	TypeSocialVerification,
}

// ParseCredentialType validates a credential type string.
func ParseCredentialType(value string) (CredentialType, error) {
	for _, t := range Types {
		if string(t) == value {
			return t, nil
		}
	}
	return "", dErrors.New(dErrors.CodeInvalidInput, "unknown credential type: "+value)
}

// CredentialID uniquely identifies an issued credential.
type CredentialID string

// NewCredentialID generates a fresh credential identifier.
func NewCredentialID() CredentialID {
	return CredentialID("cred_" + uuid.NewString())
}

// CredentialRecord is an issued credential. OnChain reports whether the
// wallet service anchored it; locally stored credentials have OnChain
// false and no WalletRef.
type CredentialRecord struct {
	ID        CredentialID    `json:"id"`
	Type      CredentialType  `json:"type"`
	Subject   domain.Identity `json:"subject"`
	Data      map[string]any  `json:"data,omitempty"`
	IssuedAt  time.Time       `json:"issuedAt"`
	OnChain   bool            `json:"onChain"`
	WalletRef string          `json:"walletRef,omitempty"`
}
