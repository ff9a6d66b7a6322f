package jwtauth

import (
	"testing"
	"time"

	"pulse/pkg/domain"
	dErrors "pulse/pkg/domain-errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testIdentity = domain.Identity("0xfeedbeef")

func newTestService(t *testing.T, ttl time.Duration) *Service {
	t.Helper()
	svc, err := New("test-signing-key", "pulse-test", ttl)
	require.NoError(t, err)
	return svc
}

func TestGenerateAndValidate(t *testing.T) {
	svc := newTestService(t, time.Minute)

	token, err := svc.Generate(testIdentity)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	identity, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, testIdentity, identity)
}

func TestValidate_InvalidToken(t *testing.T) {
	svc := newTestService(t, time.Minute)

	_, err := svc.Validate("not-a-token")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestValidate_ExpiredToken(t *testing.T) {
	svc := newTestService(t, time.Millisecond)

	token, err := svc.Generate(testIdentity)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = svc.Validate(token)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestValidate_WrongIssuer(t *testing.T) {
	issuing, err := New("test-signing-key", "someone-else", time.Minute)
	require.NoError(t, err)
	validating := newTestService(t, time.Minute)

	token, err := issuing.Generate(testIdentity)
	require.NoError(t, err)

	_, err = validating.Validate(token)
	assert.Error(t, err)
}

func TestNew_RequiresSigningKey(t *testing.T) {
	_, err := New("", "pulse", time.Minute)
	assert.Error(t, err)
}
