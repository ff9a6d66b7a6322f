package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var refNow = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func TestEvaluateBirthdate_Over18(t *testing.T) {
	tests := []struct {
		name      string
		birthdate string
		wantAge   int
	}{
		{"well over 18", "1990-01-15", 36},
		{"exactly 18 today", "2008-06-15", 18},
		{"birthday earlier this year", "2000-03-01", 26},
		{"birthday later this year already passed 18", "2007-12-31", 18},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := EvaluateBirthdate(tt.birthdate, refNow)
			require.True(t, outcome.IsValid)
			assert.True(t, outcome.IsOver18)
			assert.Equal(t, tt.wantAge, outcome.Age)
			assert.Empty(t, outcome.Error)
		})
	}
}

func TestEvaluateBirthdate_Under18(t *testing.T) {
	tests := []struct {
		name      string
		birthdate string
		wantAge   int
	}{
		{"one day short of 18", "2008-06-16", 17},
		{"ten years old", "2016-06-15", 10},
		{"born yesterday", "2026-06-14", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := EvaluateBirthdate(tt.birthdate, refNow)
			require.True(t, outcome.IsValid)
			assert.False(t, outcome.IsOver18)
			assert.Equal(t, tt.wantAge, outcome.Age)
			assert.Equal(t, "must be at least 18 years old", outcome.Error)
		})
	}
}

func TestEvaluateBirthdate_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		birthdate string
	}{
		{"month and day out of range", "2024-13-40"},
		{"not a date at all", "not-a-date"},
		{"wrong separator", "1990/01/15"},
		{"nonexistent calendar date", "2023-02-30"},
		{"empty string", ""},
		{"future date", "2030-01-01"},
		{"two hundred years ago", "1826-06-15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := EvaluateBirthdate(tt.birthdate, refNow)
			assert.False(t, outcome.IsValid)
			assert.False(t, outcome.IsOver18)
			assert.NotEmpty(t, outcome.Error)
		})
	}
}

func TestEvaluateBirthdate_LeapDay(t *testing.T) {
	// Born Feb 29 2008. In the non-leap year 2026 the 18th birthday
	// normalizes to Mar 1, so Feb 28 is still 17.
	dayBefore := EvaluateBirthdate("2008-02-29", time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC))
	require.True(t, dayBefore.IsValid)
	assert.False(t, dayBefore.IsOver18)
	assert.Equal(t, 17, dayBefore.Age)

	onBoundary := EvaluateBirthdate("2008-02-29", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	require.True(t, onBoundary.IsValid)
	assert.True(t, onBoundary.IsOver18)
	assert.Equal(t, 18, onBoundary.Age)
}

func TestIsOver18_Boundary(t *testing.T) {
	birth := time.Date(2000, 1, 15, 0, 0, 0, 0, time.UTC)

	assert.True(t, IsOver18(birth, time.Date(2018, 1, 15, 0, 0, 0, 0, time.UTC)))
	assert.False(t, IsOver18(birth, time.Date(2018, 1, 14, 23, 59, 59, 0, time.UTC)))
}

func TestParseHandle(t *testing.T) {
	h, err := ParseHandle("@octocat")
	require.NoError(t, err)
	assert.Equal(t, "octocat", h.String())

	_, err = ParseHandle("   ")
	assert.Error(t, err)

	_, err = ParseHandle("two words")
	assert.Error(t, err)
}

func TestParseIdentity(t *testing.T) {
	id, err := ParseIdentity(" 0xabc123 ")
	require.NoError(t, err)
	assert.Equal(t, "0xabc123", id.String())

	_, err = ParseIdentity("")
	assert.Error(t, err)
}
