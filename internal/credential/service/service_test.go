package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulse/internal/credential/models"
	"pulse/internal/credential/store"
	"pulse/internal/credential/wallet"
)

type fakeWallet struct {
	ref      string
	err      error
	payloads []wallet.IssuePayload
}

func (w *fakeWallet) IssueCredential(_ context.Context, payload wallet.IssuePayload) (string, error) {
	w.payloads = append(w.payloads, payload)
	if w.err != nil {
		return "", w.err
	}
	return w.ref, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestIssue_OnChainWhenWalletSucceeds(t *testing.T) {
	w := &fakeWallet{ref: "0xabc123"}
	st := store.NewInMemoryStore()
	svc := New(wallet.Capable(w), st, WithLogger(discardLogger()))

	record := svc.Issue(context.Background(), "user-1", models.TypeSocialVerification, map[string]any{"platform": "github"})

	assert.True(t, record.OnChain)
	assert.Equal(t, "0xabc123", record.WalletRef)
	assert.Equal(t, models.TypeSocialVerification, record.Type)
	assert.NotEmpty(t, record.ID)
	require.Len(t, w.payloads, 1)
	assert.Equal(t, "user-1", w.payloads[0].Subject)

	stored, err := st.ListByIdentity(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, record.ID, stored[0].ID)
}

func TestIssue_FallsBackWhenWalletFails(t *testing.T) {
	w := &fakeWallet{err: errors.New("wallet unavailable")}
	st := store.NewInMemoryStore()
	svc := New(wallet.Capable(w), st, WithLogger(discardLogger()))

	record := svc.Issue(context.Background(), "user-1", models.TypeAgeVerification, nil)

	assert.False(t, record.OnChain)
	assert.Empty(t, record.WalletRef)
	assert.NotEmpty(t, record.ID)

	stored, err := st.ListByIdentity(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.False(t, stored[0].OnChain)
}

func TestIssue_LocalWhenWalletNotConfigured(t *testing.T) {
	st := store.NewInMemoryStore()
	svc := New(wallet.NotCapable(), st, WithLogger(discardLogger()))

	record := svc.Issue(context.Background(), "user-1", models.TypeReputationBadge, nil)

	assert.False(t, record.OnChain)
	stored, err := st.ListByIdentity(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, stored, 1)
}

func TestIssue_StampsIssuedAt(t *testing.T) {
	at := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	svc := New(wallet.NotCapable(), store.NewInMemoryStore(),
		WithLogger(discardLogger()),
		WithClock(func() time.Time { return at }),
	)

	record := svc.Issue(context.Background(), "user-1", models.TypePollParticipation, nil)
	assert.True(t, record.IssuedAt.Equal(at))
}

func TestList_FiltersByType(t *testing.T) {
	st := store.NewInMemoryStore()
	svc := New(wallet.NotCapable(), st, WithLogger(discardLogger()))
	ctx := context.Background()

	svc.Issue(ctx, "user-1", models.TypeSocialVerification, nil)
	svc.Issue(ctx, "user-1", models.TypeAgeVerification, nil)
	svc.Issue(ctx, "user-1", models.TypeSocialVerification, nil)

	all, err := svc.List(ctx, "user-1", "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	social, err := svc.List(ctx, "user-1", models.TypeSocialVerification)
	require.NoError(t, err)
	assert.Len(t, social, 2)
}

func TestParseCredentialType(t *testing.T) {
	for _, value := range []string{"poll_participation", "reputation_badge", "age_verification", "social_verification"} {
		got, err := models.ParseCredentialType(value)
		require.NoError(t, err)
		assert.Equal(t, value, string(got))
	}

	_, err := models.ParseCredentialType("driving_license")
	assert.Error(t, err)
}
