package mirror

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulse/internal/verification/models"
	"pulse/internal/verification/providers"
)

func TestLookup_AlwaysNotSupported(t *testing.T) {
	p := New()

	profile, err := p.Lookup(context.Background(), "anyone")
	require.Error(t, err)
	assert.Nil(t, profile)
	assert.Equal(t, providers.ErrorNotSupported, providers.GetCategory(err))
	assert.Equal(t, NotSupportedMessage, providers.Reason(err))
}

func TestPlatform(t *testing.T) {
	assert.Equal(t, models.PlatformMirror, New().Platform())
}
