package service

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	credmodels "pulse/internal/credential/models"
	"pulse/internal/ratelimit"
	"pulse/internal/verification/cache"
	"pulse/internal/verification/models"
	"pulse/internal/verification/providers"
	"pulse/internal/verification/scoring"
	"pulse/internal/verification/store"
	"pulse/pkg/domain"
	dErrors "pulse/pkg/domain-errors"
)

type stubProvider struct {
	platform models.Platform
	profile  *providers.Profile
	err      error

	mu    sync.Mutex
	calls int
}

func (p *stubProvider) Platform() models.Platform { return p.platform }

func (p *stubProvider) Lookup(_ context.Context, _ domain.Handle) (*providers.Profile, error) {
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()
	if p.err != nil {
		return nil, p.err
	}
	return p.profile, nil
}

func (p *stubProvider) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

type stubGuard struct {
	allowed bool

	mu       sync.Mutex
	recorded int
}

func (g *stubGuard) CanAttempt(_ context.Context, _ domain.Identity) (bool, ratelimit.Quota, error) {
	return g.allowed, ratelimit.Quota{}, nil
}

func (g *stubGuard) RecordAttempt(_ context.Context, _ domain.Identity) error {
	g.mu.Lock()
	g.recorded++
	g.mu.Unlock()
	return nil
}

func (g *stubGuard) recordedCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.recorded
}

type stubIssuer struct {
	mu     sync.Mutex
	issued []credmodels.CredentialType
}

func (i *stubIssuer) Issue(_ context.Context, subject domain.Identity, credType credmodels.CredentialType, _ map[string]any) credmodels.CredentialRecord {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.issued = append(i.issued, credType)
	return credmodels.CredentialRecord{ID: credmodels.NewCredentialID(), Type: credType, Subject: subject}
}

func githubProfile(score int) *providers.Profile {
	return &providers.Profile{
		Account: models.AccountData{"username": "octocat"},
		Terms:   []scoring.Term{{Name: "fixed", Weight: float64(score), Ratio: 1}},
	}
}

func newTestService(t *testing.T, provider providers.Provider, guard AttemptGuard, opts ...Option) (*Service, *store.InMemoryStore) {
	t.Helper()
	registry := providers.NewRegistry()
	require.NoError(t, registry.Register(provider))
	st := store.NewInMemoryStore()
	opts = append(opts, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	return New(registry, st, guard, opts...), st
}

func TestVerify_SuccessPersistsAndIssuesCredential(t *testing.T) {
	provider := &stubProvider{platform: models.PlatformGitHub, profile: githubProfile(80)}
	guard := &stubGuard{allowed: true}
	issuer := &stubIssuer{}
	svc, st := newTestService(t, provider, guard, WithCredentialIssuer(issuer))

	result, err := svc.Verify(context.Background(), "user-1", models.PlatformGitHub, "octocat")
	require.NoError(t, err)

	assert.True(t, result.Verified)
	assert.Equal(t, 80, result.QualityScore)
	assert.Empty(t, result.Error)

	stored, err := st.FindByPlatform(context.Background(), "user-1", models.PlatformGitHub)
	require.NoError(t, err)
	assert.Equal(t, result, stored)

	require.Len(t, issuer.issued, 1)
	assert.Equal(t, credmodels.TypeSocialVerification, issuer.issued[0])
	assert.Equal(t, 1, guard.recordedCount())
}

func TestVerify_ProviderFailureBecomesUnverifiedResult(t *testing.T) {
	provider := &stubProvider{
		platform: models.PlatformGitHub,
		err:      providers.NewProviderError(providers.ErrorNotFound, "github", "github user not found", nil),
	}
	guard := &stubGuard{allowed: true}
	issuer := &stubIssuer{}
	svc, st := newTestService(t, provider, guard, WithCredentialIssuer(issuer))

	result, err := svc.Verify(context.Background(), "user-1", models.PlatformGitHub, "ghost")
	require.NoError(t, err)

	assert.False(t, result.Verified)
	assert.Equal(t, "github user not found", result.Error)
	assert.Zero(t, result.QualityScore)
	assert.Empty(t, issuer.issued)

	// The attempt counts even though the lookup failed.
	assert.Equal(t, 1, guard.recordedCount())

	_, err = st.FindByPlatform(context.Background(), "user-1", models.PlatformGitHub)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestVerify_FailedRetryDoesNotOverwriteSuccess(t *testing.T) {
	provider := &stubProvider{platform: models.PlatformGitHub, profile: githubProfile(80)}
	guard := &stubGuard{allowed: true}
	svc, st := newTestService(t, provider, guard)
	ctx := context.Background()

	first, err := svc.Verify(ctx, "user-1", models.PlatformGitHub, "octocat")
	require.NoError(t, err)
	require.True(t, first.Verified)

	provider.profile = nil
	provider.err = providers.NewProviderError(providers.ErrorOutage, "github", "github is unavailable", nil)

	second, err := svc.Verify(ctx, "user-1", models.PlatformGitHub, "octocat")
	require.NoError(t, err)
	require.False(t, second.Verified)

	stored, err := st.FindByPlatform(ctx, "user-1", models.PlatformGitHub)
	require.NoError(t, err)
	assert.True(t, stored.Verified)
	assert.Equal(t, 80, stored.QualityScore)
}

func TestVerify_DeniedWhenQuotaExhausted(t *testing.T) {
	provider := &stubProvider{platform: models.PlatformGitHub, profile: githubProfile(80)}
	guard := &stubGuard{allowed: false}
	svc, _ := newTestService(t, provider, guard)

	_, err := svc.Verify(context.Background(), "user-1", models.PlatformGitHub, "octocat")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeRateLimited))
	assert.Equal(t, 0, provider.callCount())
	assert.Equal(t, 0, guard.recordedCount())
}

func TestVerify_UnknownPlatform(t *testing.T) {
	provider := &stubProvider{platform: models.PlatformGitHub, profile: githubProfile(80)}
	guard := &stubGuard{allowed: true}
	svc, _ := newTestService(t, provider, guard)

	_, err := svc.Verify(context.Background(), "user-1", models.PlatformLinkedIn, "someone")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnsupported))
}

func TestVerify_CacheSkipsRepeatLookups(t *testing.T) {
	provider := &stubProvider{platform: models.PlatformGitHub, profile: githubProfile(80)}
	guard := &stubGuard{allowed: true}
	svc, _ := newTestService(t, provider, guard, WithProfileCache(cache.New(time.Minute)))
	ctx := context.Background()

	_, err := svc.Verify(ctx, "user-1", models.PlatformGitHub, "octocat")
	require.NoError(t, err)
	_, err = svc.Verify(ctx, "user-2", models.PlatformGitHub, "octocat")
	require.NoError(t, err)

	assert.Equal(t, 1, provider.callCount())
}

func TestVerifyBatch_PreservesRequestOrder(t *testing.T) {
	github := &stubProvider{platform: models.PlatformGitHub, profile: githubProfile(80)}
	twitter := &stubProvider{
		platform: models.PlatformTwitter,
		err:      providers.NewProviderError(providers.ErrorNotFound, "twitter", "twitter user not found", nil),
	}
	registry := providers.NewRegistry()
	require.NoError(t, registry.Register(github))
	require.NoError(t, registry.Register(twitter))

	svc := New(registry, store.NewInMemoryStore(), &stubGuard{allowed: true},
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))

	results, err := svc.VerifyBatch(context.Background(), "user-1", []VerifyRequest{
		{Platform: models.PlatformTwitter, Handle: "ghost"},
		{Platform: models.PlatformGitHub, Handle: "octocat"},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, models.PlatformTwitter, results[0].Platform)
	assert.False(t, results[0].Verified)
	assert.Equal(t, models.PlatformGitHub, results[1].Platform)
	assert.True(t, results[1].Verified)
}
