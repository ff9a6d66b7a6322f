// Package twitter verifies Twitter accounts via API v2 user lookup.
// A bearer token is required; without one the provider reports a
// configuration failure instead of attempting unauthenticated calls.
package twitter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"pulse/internal/platform/httpclient"
	"pulse/internal/verification/models"
	"pulse/internal/verification/providers"
	"pulse/internal/verification/scoring"
	"pulse/pkg/domain"
)

const defaultBaseURL = "https://api.twitter.com"

// Weighted-cap formula shares; they sum to 100.
const (
	weightAccountAge = 20 // one full year per 20 points, capped
	weightVerified   = 30 // legacy/blue verified badge
	weightFollowers  = 25 // 1000 followers earn the cap
	weightTweets     = 15 // 1000 tweets earn the cap
	weightBio        = 10 // non-empty description
)

// Provider verifies Twitter handles.
type Provider struct {
	baseURL     string
	bearerToken string
	client      httpclient.Doer
}

// Option configures the Provider.
type Option func(*Provider)

// WithBaseURL overrides the API base URL (for tests).
func WithBaseURL(baseURL string) Option {
	return func(p *Provider) { p.baseURL = baseURL }
}

// New creates a Twitter provider.
func New(bearerToken string, client httpclient.Doer, opts ...Option) *Provider {
	p := &Provider{
		baseURL:     defaultBaseURL,
		bearerToken: bearerToken,
		client:      client,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Platform returns the platform this provider verifies.
func (p *Provider) Platform() models.Platform {
	return models.PlatformTwitter
}

type userResponse struct {
	Data *struct {
		ID            string    `json:"id"`
		Name          string    `json:"name"`
		Username      string    `json:"username"`
		Description   string    `json:"description"`
		Verified      bool      `json:"verified"`
		CreatedAt     time.Time `json:"created_at"`
		PublicMetrics struct {
			FollowersCount int `json:"followers_count"`
			FollowingCount int `json:"following_count"`
			TweetCount     int `json:"tweet_count"`
		} `json:"public_metrics"`
	} `json:"data"`
	Errors []struct {
		Title  string `json:"title"`
		Detail string `json:"detail"`
	} `json:"errors"`
}

// Lookup fetches the user via GET /2/users/by/username and maps the public
// metrics to score terms.
func (p *Provider) Lookup(ctx context.Context, handle domain.Handle) (*providers.Profile, error) {
	if p.bearerToken == "" {
		return nil, providers.NewProviderError(providers.ErrorMissingConfig, "twitter",
			"twitter verification is not configured: missing API bearer token", nil)
	}

	endpoint := fmt.Sprintf("%s/2/users/by/username/%s?user.fields=%s",
		p.baseURL,
		url.PathEscape(handle.String()),
		url.QueryEscape("created_at,description,public_metrics,verified"),
	)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, providers.NewProviderError(providers.ErrorInternal, "twitter", "failed to create request", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.bearerToken)

	var resp userResponse
	if err := providers.DoJSON(ctx, p.client, req, "twitter", "twitter user not found", &resp); err != nil {
		return nil, err
	}

	// API v2 reports unknown usernames inside a 200 body.
	if resp.Data == nil {
		return nil, providers.NewProviderError(providers.ErrorNotFound, "twitter", "twitter user not found", nil)
	}

	user := resp.Data
	accountAgeYears := time.Since(user.CreatedAt).Hours() / (24 * 365.25)
	hasBio := user.Description != ""

	return &providers.Profile{
		Account: models.AccountData{
			"username":   user.Username,
			"name":       user.Name,
			"bio":        user.Description,
			"verified":   user.Verified,
			"createdAt":  user.CreatedAt.Format(time.RFC3339),
			"followers":  user.PublicMetrics.FollowersCount,
			"following":  user.PublicMetrics.FollowingCount,
			"tweetCount": user.PublicMetrics.TweetCount,
		},
		Terms: []scoring.Term{
			{Name: "account_age", Weight: weightAccountAge, Ratio: scoring.Fraction(accountAgeYears, 1)},
			{Name: "verified_badge", Weight: weightVerified, Ratio: scoring.Flag(user.Verified)},
			{Name: "followers", Weight: weightFollowers, Ratio: scoring.Fraction(float64(user.PublicMetrics.FollowersCount), 1000)},
			{Name: "tweets", Weight: weightTweets, Ratio: scoring.Fraction(float64(user.PublicMetrics.TweetCount), 1000)},
			{Name: "bio", Weight: weightBio, Ratio: scoring.Flag(hasBio)},
		},
	}, nil
}
