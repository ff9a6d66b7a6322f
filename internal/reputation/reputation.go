// Package reputation aggregates per-platform verification scores into a
// single reputation score for an identity.
package reputation

import (
	"context"
	"math"
	"time"

	"pulse/internal/verification/models"
	"pulse/pkg/domain"
)

// platformWeights express how much each platform's quality score counts
// toward the aggregate. The values are part of the scoring contract.
var platformWeights = map[models.Platform]float64{
	models.PlatformGitHub:    2.0,
	models.PlatformLens:      1.5,
	models.PlatformFarcaster: 1.5,
	models.PlatformMirror:    1.3,
	models.PlatformTwitter:   1.0,
	models.PlatformLinkedIn:  1.2,
	models.PlatformLink3:     1.0,
}

// Weight returns the aggregation weight for a platform. Unknown platforms
// weigh 1.
func Weight(platform models.Platform) float64 {
	if w, ok := platformWeights[platform]; ok {
		return w
	}
	return 1.0
}

// Aggregate computes the weighted mean of the verified results' quality
// scores, rounded to the nearest integer. Unverified results are skipped;
// no verified results means 0.
func Aggregate(results []models.VerificationResult) int {
	var weightedSum, totalWeight float64
	for _, result := range results {
		if !result.Verified {
			continue
		}
		w := Weight(result.Platform)
		weightedSum += float64(result.QualityScore) * w
		totalWeight += w
	}
	if totalWeight == 0 {
		return 0
	}
	return int(math.Round(weightedSum / totalWeight))
}

// Summary is an identity's aggregate reputation along with the inputs it
// was derived from.
type Summary struct {
	Score         int                         `json:"score"`
	Verifications []models.VerificationResult `json:"verifications"`
	ComputedAt    time.Time                   `json:"computedAt"`
}

// VerificationLister provides the stored results the aggregate is computed
// over.
type VerificationLister interface {
	ListByIdentity(ctx context.Context, identity domain.Identity) ([]models.VerificationResult, error)
}

// Service computes reputation summaries.
type Service struct {
	verifications VerificationLister
	now           func() time.Time
}

// Option configures the Service.
type Option func(*Service)

// WithClock injects the time source for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New creates the reputation service.
func New(verifications VerificationLister, opts ...Option) *Service {
	s := &Service{
		verifications: verifications,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ForIdentity computes the identity's current reputation from its stored
// verifications.
func (s *Service) ForIdentity(ctx context.Context, identity domain.Identity) (Summary, error) {
	results, err := s.verifications.ListByIdentity(ctx, identity)
	if err != nil {
		return Summary{}, err
	}
	return Summary{
		Score:         Aggregate(results),
		Verifications: results,
		ComputedAt:    s.now().UTC(),
	}, nil
}
