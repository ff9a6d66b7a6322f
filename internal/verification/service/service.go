// Package service orchestrates platform verifications: quota checks,
// provider lookups, scoring, persistence and credential issuance.
//
// Provider failures are values here, not errors. A failed lookup becomes
// an unverified result carrying the user-facing reason; only caller
// mistakes (bad input, exhausted quota) and infrastructure faults surface
// as errors.
package service

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"pulse/internal/audit"
	credmodels "pulse/internal/credential/models"
	"pulse/internal/ratelimit"
	"pulse/internal/verification/cache"
	"pulse/internal/verification/metrics"
	"pulse/internal/verification/models"
	"pulse/internal/verification/providers"
	"pulse/internal/verification/scoring"
	"pulse/internal/verification/store"
	"pulse/internal/verification/tracer"
	"pulse/pkg/domain"
	dErrors "pulse/pkg/domain-errors"
)

// AttemptGuard is the daily quota port.
type AttemptGuard interface {
	CanAttempt(ctx context.Context, identity domain.Identity) (bool, ratelimit.Quota, error)
	RecordAttempt(ctx context.Context, identity domain.Identity) error
}

// CredentialIssuer issues the social_verification credential after a
// successful verification. Issuance is best effort and never fails.
type CredentialIssuer interface {
	Issue(ctx context.Context, subject domain.Identity, credType credmodels.CredentialType, data map[string]any) credmodels.CredentialRecord
}

// Service runs the verification pipeline.
type Service struct {
	registry    *providers.Registry
	store       store.Store
	guard       AttemptGuard
	credentials CredentialIssuer
	cache       *cache.ProfileCache
	metrics     *metrics.Metrics
	tracer      tracer.Tracer
	auditor     *audit.Publisher
	logger      *slog.Logger
	now         func() time.Time
}

// Option configures the Service.
type Option func(*Service)

// WithCredentialIssuer enables social_verification credential issuance on
// successful verifications.
func WithCredentialIssuer(issuer CredentialIssuer) Option {
	return func(s *Service) { s.credentials = issuer }
}

// WithProfileCache enables the provider profile cache.
func WithProfileCache(c *cache.ProfileCache) Option {
	return func(s *Service) { s.cache = c }
}

// WithMetrics enables Prometheus metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithTracer sets the tracer. Defaults to a no-op tracer.
func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) { s.tracer = t }
}

// WithAuditor enables audit event emission.
func WithAuditor(a *audit.Publisher) Option {
	return func(s *Service) { s.auditor = a }
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithClock injects the time source for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New creates the verification service.
func New(registry *providers.Registry, st store.Store, guard AttemptGuard, opts ...Option) *Service {
	s := &Service{
		registry: registry,
		store:    st,
		guard:    guard,
		tracer:   tracer.NewNoop(),
		logger:   slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Verify runs one verification attempt for the identity on the platform.
//
// The attempt is recorded when the pipeline starts, before the outcome is
// known. A provider failure is returned as an unverified result and is not
// persisted, so an earlier successful verification is never overwritten by
// a failed retry.
func (s *Service) Verify(ctx context.Context, identity domain.Identity, platform models.Platform, handle domain.Handle) (result models.VerificationResult, err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanVerify,
		tracer.String(tracer.AttrPlatform, platform.String()),
		tracer.String(tracer.AttrHandle, handle.String()),
	)
	defer func() { span.End(err) }()

	provider, ok := s.registry.Get(platform)
	if !ok {
		err = dErrors.New(dErrors.CodeUnsupported, "no verifier available for platform "+platform.String())
		return models.VerificationResult{}, err
	}

	allowed, _, err := s.guard.CanAttempt(ctx, identity)
	if err != nil {
		return models.VerificationResult{}, err
	}
	if !allowed {
		if s.metrics != nil {
			s.metrics.IncrementRateLimitDenials()
		}
		s.emitAudit(ctx, identity, audit.EventVerificationDenied, platform, audit.OutcomeDenied, "daily verification limit reached")
		err = dErrors.New(dErrors.CodeRateLimited, "daily verification limit reached")
		return models.VerificationResult{}, err
	}

	if err = s.guard.RecordAttempt(ctx, identity); err != nil {
		return models.VerificationResult{}, err
	}

	profile, lookupErr := s.lookup(ctx, provider, platform, handle)
	now := s.now()
	if lookupErr != nil {
		reason := providers.Reason(lookupErr)
		result = models.Unverified(platform, reason, now)
		span.SetAttributes(tracer.Bool(tracer.AttrVerified, false))
		if s.metrics != nil {
			s.metrics.IncrementVerifications(platform.String(), "failure")
		}
		s.emitAudit(ctx, identity, audit.EventVerificationFailed, platform, audit.OutcomeFailure, reason)
		s.logger.InfoContext(ctx, "verification failed",
			"identity", identity.String(),
			"platform", platform.String(),
			"category", string(providers.GetCategory(lookupErr)),
			"reason", reason,
		)
		return result, nil
	}

	score := scoring.Score(profile.Terms)
	result = models.Verified(platform, profile.Account, score, now)
	if err = s.store.Save(ctx, identity, result); err != nil {
		return models.VerificationResult{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist verification result")
	}

	if s.credentials != nil {
		s.credentials.Issue(ctx, identity, credmodels.TypeSocialVerification, map[string]any{
			"platform":     platform.String(),
			"handle":       handle.String(),
			"qualityScore": score,
		})
	}

	span.SetAttributes(
		tracer.Bool(tracer.AttrVerified, true),
		tracer.Int64(tracer.AttrScore, int64(score)),
	)
	if s.metrics != nil {
		s.metrics.IncrementVerifications(platform.String(), "success")
	}
	s.emitAudit(ctx, identity, audit.EventVerificationSucceeded, platform, audit.OutcomeSuccess, "")
	s.logger.InfoContext(ctx, "verification succeeded",
		"identity", identity.String(),
		"platform", platform.String(),
		"score", score,
	)
	return result, nil
}

// lookup fetches the profile, consulting the cache first.
func (s *Service) lookup(ctx context.Context, provider providers.Provider, platform models.Platform, handle domain.Handle) (*providers.Profile, error) {
	if s.cache != nil {
		if profile, ok := s.cache.Get(platform, handle); ok {
			if s.metrics != nil {
				s.metrics.IncrementCacheHit()
			}
			return profile, nil
		}
		if s.metrics != nil {
			s.metrics.IncrementCacheMiss()
		}
	}

	ctx, span := s.tracer.Start(ctx, tracer.SpanProviderLookup,
		tracer.String(tracer.AttrPlatform, platform.String()),
	)
	start := time.Now()
	profile, err := provider.Lookup(ctx, handle)
	span.End(err)
	if s.metrics != nil {
		s.metrics.ObserveProviderDuration(platform.String(), time.Since(start).Seconds())
	}
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(platform, handle, profile)
	}
	return profile, nil
}

// VerifyRequest is one entry of a batch verification.
type VerifyRequest struct {
	Platform models.Platform
	Handle   domain.Handle
}

// VerifyBatch runs the requests concurrently and returns results in input
// order. Any pipeline error (exhausted quota, unknown platform) cancels
// the remaining lookups and is returned.
func (s *Service) VerifyBatch(ctx context.Context, identity domain.Identity, requests []VerifyRequest) ([]models.VerificationResult, error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanBatchVerify,
		tracer.Int64("batch.size", int64(len(requests))),
	)
	var err error
	defer func() { span.End(err) }()

	results := make([]models.VerificationResult, len(requests))
	g, gctx := errgroup.WithContext(ctx)
	for i, req := range requests {
		i, req := i, req
		g.Go(func() error {
			result, verifyErr := s.Verify(gctx, identity, req.Platform, req.Handle)
			if verifyErr != nil {
				return verifyErr
			}
			results[i] = result
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// List returns the identity's stored verification results.
func (s *Service) List(ctx context.Context, identity domain.Identity) ([]models.VerificationResult, error) {
	return s.store.ListByIdentity(ctx, identity)
}

func (s *Service) emitAudit(ctx context.Context, identity domain.Identity, action audit.AuditEvent, platform models.Platform, outcome, reason string) {
	if s.auditor == nil {
		return
	}
	if err := s.auditor.Emit(ctx, audit.Event{
		Identity: identity.String(),
		Action:   string(action),
		Platform: platform.String(),
		Outcome:  outcome,
		Reason:   reason,
	}); err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event", "error", err, "action", string(action))
	}
}
