// Package service issues credentials to identities. Issuance never fails
// from the caller's perspective: when the wallet service is unavailable
// the credential is stored locally with OnChain false.
package service

import (
	"context"
	"log/slog"
	"time"

	"pulse/internal/credential/metrics"
	"pulse/internal/credential/models"
	"pulse/internal/credential/store"
	"pulse/internal/credential/wallet"
	"pulse/pkg/domain"
)

// Service issues and lists credentials.
type Service struct {
	wallet  wallet.Capability
	store   store.Store
	logger  *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithMetrics enables Prometheus metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithClock injects the time source for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New creates the credential service.
func New(walletCap wallet.Capability, st store.Store, opts ...Option) *Service {
	s := &Service{
		wallet: walletCap,
		store:  st,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue creates a credential for the subject. The wallet service is tried
// first when available; any failure there degrades to local issuance, so
// the returned record is always usable.
func (s *Service) Issue(ctx context.Context, subject domain.Identity, credType models.CredentialType, data map[string]any) models.CredentialRecord {
	record := models.CredentialRecord{
		ID:       models.NewCredentialID(),
		Type:     credType,
		Subject:  subject,
		Data:     data,
		IssuedAt: s.now().UTC(),
	}

	if client, ok := s.wallet.Client(); ok {
		start := time.Now()
		ref, err := client.IssueCredential(ctx, wallet.IssuePayload{
			Subject: subject.String(),
			Type:    string(credType),
			Data:    data,
		})
		if s.metrics != nil {
			s.metrics.ObserveWalletDuration(time.Since(start).Seconds())
		}
		if err != nil {
			s.logger.WarnContext(ctx, "wallet issuance failed, storing credential locally",
				"error", err,
				"subject", subject.String(),
				"type", string(credType),
			)
			if s.metrics != nil {
				s.metrics.IncrementWalletErrors()
			}
		} else {
			record.OnChain = true
			record.WalletRef = ref
		}
	}

	if err := s.store.Append(ctx, record); err != nil {
		// The caller still gets the record; losing the stored copy is
		// logged for the operator.
		s.logger.ErrorContext(ctx, "failed to persist credential record",
			"error", err,
			"credential_id", string(record.ID),
			"subject", subject.String(),
		)
	}

	mode := "local"
	if record.OnChain {
		mode = "on_chain"
	}
	if s.metrics != nil {
		s.metrics.IncrementIssued(string(credType), mode)
	}
	s.logger.InfoContext(ctx, "credential issued",
		"credential_id", string(record.ID),
		"subject", subject.String(),
		"type", string(credType),
		"on_chain", record.OnChain,
	)
	return record
}

// List returns the subject's credentials, optionally filtered by type.
func (s *Service) List(ctx context.Context, subject domain.Identity, credType models.CredentialType) ([]models.CredentialRecord, error) {
	if credType != "" {
		return s.store.ListByType(ctx, subject, credType)
	}
	return s.store.ListByIdentity(ctx, subject)
}
