// Package farcaster verifies Farcaster accounts via the Neynar REST API.
// A Neynar API key is required; without one the provider reports a
// configuration failure.
package farcaster

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"pulse/internal/platform/httpclient"
	"pulse/internal/verification/models"
	"pulse/internal/verification/providers"
	"pulse/internal/verification/scoring"
	"pulse/pkg/domain"
)

const defaultBaseURL = "https://api.neynar.com"

// Weighted-cap formula shares; they sum to 100.
const (
	weightPowerBadge = 40 // Warpcast power badge
	weightFollowers  = 30 // 500 followers earn the cap
	weightBio        = 15 // non-empty bio text
	weightAvatar     = 15 // profile picture set
)

// Provider verifies Farcaster usernames.
type Provider struct {
	baseURL string
	apiKey  string
	client  httpclient.Doer
}

// Option configures the Provider.
type Option func(*Provider)

// WithBaseURL overrides the API base URL (for tests).
func WithBaseURL(baseURL string) Option {
	return func(p *Provider) { p.baseURL = baseURL }
}

// New creates a Farcaster provider backed by Neynar.
func New(apiKey string, client httpclient.Doer, opts ...Option) *Provider {
	p := &Provider{
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		client:  client,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Platform returns the platform this provider verifies.
func (p *Provider) Platform() models.Platform {
	return models.PlatformFarcaster
}

type userResponse struct {
	User *struct {
		FID         int64  `json:"fid"`
		Username    string `json:"username"`
		DisplayName string `json:"display_name"`
		PfpURL      string `json:"pfp_url"`
		Profile     struct {
			Bio struct {
				Text string `json:"text"`
			} `json:"bio"`
		} `json:"profile"`
		FollowerCount  int  `json:"follower_count"`
		FollowingCount int  `json:"following_count"`
		PowerBadge     bool `json:"power_badge"`
	} `json:"user"`
}

// Lookup fetches the user by username and maps badge, followers, bio and
// avatar signals to score terms.
func (p *Provider) Lookup(ctx context.Context, handle domain.Handle) (*providers.Profile, error) {
	if p.apiKey == "" {
		return nil, providers.NewProviderError(providers.ErrorMissingConfig, "farcaster",
			"farcaster verification is not configured: missing Neynar API key", nil)
	}

	endpoint := fmt.Sprintf("%s/v2/farcaster/user/by_username?username=%s",
		p.baseURL, url.QueryEscape(handle.String()))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, providers.NewProviderError(providers.ErrorInternal, "farcaster", "failed to create request", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-api-key", p.apiKey)

	var resp userResponse
	if err := providers.DoJSON(ctx, p.client, req, "farcaster", "farcaster user not found", &resp); err != nil {
		return nil, err
	}
	if resp.User == nil {
		return nil, providers.NewProviderError(providers.ErrorNotFound, "farcaster", "farcaster user not found", nil)
	}

	user := resp.User
	hasBio := user.Profile.Bio.Text != ""
	hasAvatar := user.PfpURL != ""

	return &providers.Profile{
		Account: models.AccountData{
			"fid":        user.FID,
			"username":   user.Username,
			"name":       user.DisplayName,
			"bio":        user.Profile.Bio.Text,
			"avatarUrl":  user.PfpURL,
			"followers":  user.FollowerCount,
			"following":  user.FollowingCount,
			"powerBadge": user.PowerBadge,
		},
		Terms: []scoring.Term{
			{Name: "power_badge", Weight: weightPowerBadge, Ratio: scoring.Flag(user.PowerBadge)},
			{Name: "followers", Weight: weightFollowers, Ratio: scoring.Fraction(float64(user.FollowerCount), 500)},
			{Name: "bio", Weight: weightBio, Ratio: scoring.Flag(hasBio)},
			{Name: "avatar", Weight: weightAvatar, Ratio: scoring.Flag(hasAvatar)},
		},
	}, nil
}
