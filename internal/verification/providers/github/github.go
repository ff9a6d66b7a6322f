// Package github verifies GitHub accounts via the public REST API.
//
// This is the only verifier that issues two outbound requests: the profile
// gives account age, repo count and followers; the repo list gives total
// stars and whether the user has authored a non-fork repo.
package github

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"pulse/internal/platform/httpclient"
	"pulse/internal/verification/models"
	"pulse/internal/verification/providers"
	"pulse/internal/verification/scoring"
	"pulse/pkg/domain"
)

const defaultBaseURL = "https://api.github.com"

// Weighted-cap formula shares; they sum to 100.
const (
	weightAccountAge    = 20 // one full year of account age earns the cap
	weightPublicRepos   = 20 // 20 public repos earn the cap
	weightStars         = 30 // 100 total stars earn the cap
	weightFollowers     = 15 // 100 followers earn the cap
	weightOriginalRepos = 15 // at least one non-fork repo
)

// Provider verifies GitHub handles.
type Provider struct {
	baseURL string
	token   string
	client  httpclient.Doer
}

// Option configures the Provider.
type Option func(*Provider)

// WithBaseURL overrides the API base URL (for tests).
func WithBaseURL(baseURL string) Option {
	return func(p *Provider) { p.baseURL = baseURL }
}

// New creates a GitHub provider. The token is optional; unauthenticated
// requests work against the public API with a lower rate limit.
func New(token string, client httpclient.Doer, opts ...Option) *Provider {
	p := &Provider{
		baseURL: defaultBaseURL,
		token:   token,
		client:  client,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Platform returns the platform this provider verifies.
func (p *Provider) Platform() models.Platform {
	return models.PlatformGitHub
}

// userResponse is the subset of the GitHub user payload we score on.
type userResponse struct {
	Login       string    `json:"login"`
	Name        string    `json:"name"`
	AvatarURL   string    `json:"avatar_url"`
	Bio         string    `json:"bio"`
	PublicRepos int       `json:"public_repos"`
	Followers   int       `json:"followers"`
	CreatedAt   time.Time `json:"created_at"`
}

// repoResponse carries the per-repo fields needed for star and fork signals.
type repoResponse struct {
	StargazersCount int  `json:"stargazers_count"`
	Fork            bool `json:"fork"`
}

// Lookup fetches the user profile and repo list and maps them to score terms.
func (p *Provider) Lookup(ctx context.Context, handle domain.Handle) (*providers.Profile, error) {
	var user userResponse
	if err := p.get(ctx, fmt.Sprintf("/users/%s", handle), &user); err != nil {
		return nil, err
	}

	var repos []repoResponse
	if err := p.get(ctx, fmt.Sprintf("/users/%s/repos?per_page=100&type=owner", handle), &repos); err != nil {
		return nil, err
	}

	totalStars := 0
	hasOriginalRepo := false
	for _, repo := range repos {
		totalStars += repo.StargazersCount
		if !repo.Fork {
			hasOriginalRepo = true
		}
	}

	accountAgeYears := time.Since(user.CreatedAt).Hours() / (24 * 365.25)

	return &providers.Profile{
		Account: models.AccountData{
			"username":        user.Login,
			"name":            user.Name,
			"avatarUrl":       user.AvatarURL,
			"bio":             user.Bio,
			"createdAt":       user.CreatedAt.Format(time.RFC3339),
			"publicRepos":     user.PublicRepos,
			"followers":       user.Followers,
			"totalStars":      totalStars,
			"hasOriginalRepo": hasOriginalRepo,
		},
		Terms: []scoring.Term{
			{Name: "account_age", Weight: weightAccountAge, Ratio: scoring.Fraction(accountAgeYears, 1)},
			{Name: "public_repos", Weight: weightPublicRepos, Ratio: scoring.Fraction(float64(user.PublicRepos), 20)},
			{Name: "stars", Weight: weightStars, Ratio: scoring.Fraction(float64(totalStars), 100)},
			{Name: "followers", Weight: weightFollowers, Ratio: scoring.Fraction(float64(user.Followers), 100)},
			{Name: "original_repos", Weight: weightOriginalRepos, Ratio: scoring.Flag(hasOriginalRepo)},
		},
	}, nil
}

func (p *Provider) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+path, nil)
	if err != nil {
		return providers.NewProviderError(providers.ErrorInternal, "github", "failed to create request", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if p.token != "" {
		req.Header.Set("Authorization", "Bearer "+p.token)
	}

	return providers.DoJSON(ctx, p.client, req, "github", "github user not found", out)
}
