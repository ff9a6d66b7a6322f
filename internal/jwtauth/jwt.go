// Package jwtauth issues and validates the bearer tokens that bind API
// callers to a user identity. Tokens are HS256-signed and carry the identity
// as the subject claim.
package jwtauth

import (
	"errors"
	"fmt"
	"time"

	"pulse/pkg/domain"
	dErrors "pulse/pkg/domain-errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims represents the JWT claims for Pulse access tokens.
type Claims struct {
	jwt.RegisteredClaims
}

// Service handles token creation and validation.
type Service struct {
	signingKey []byte
	issuer     string
	tokenTTL   time.Duration
}

// New creates a token service. The signing key must be non-empty.
func New(signingKey, issuer string, tokenTTL time.Duration) (*Service, error) {
	if signingKey == "" {
		return nil, fmt.Errorf("jwtauth: signing key is required")
	}
	if issuer == "" {
		issuer = "pulse"
	}
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &Service{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		tokenTTL:   tokenTTL,
	}, nil
}

// Generate mints a signed token for the given identity.
func (s *Service) Generate(identity domain.Identity) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   identity.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("jwtauth: signing token: %w", err)
	}
	return signed, nil
}

// Validate parses a token string and returns the identity it was issued for.
func (s *Service) Validate(tokenString string) (domain.Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.signingKey, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", dErrors.New(dErrors.CodeUnauthorized, "token expired")
		}
		return "", dErrors.Wrap(err, dErrors.CodeUnauthorized, "invalid token")
	}
	if !token.Valid {
		return "", dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	identity, err := domain.ParseIdentity(claims.Subject)
	if err != nil {
		return "", dErrors.New(dErrors.CodeUnauthorized, "token has no subject identity")
	}
	return identity, nil
}
