// Package lens verifies Lens Protocol profiles via the public GraphQL API.
// No credential is required; the profile query is a single POST.
package lens

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"pulse/internal/platform/httpclient"
	"pulse/internal/verification/models"
	"pulse/internal/verification/providers"
	"pulse/internal/verification/scoring"
	"pulse/pkg/domain"
)

const defaultEndpoint = "https://api-v2.lens.dev"

// Weighted-cap formula shares; they sum to 100.
const (
	weightFollowers    = 30 // 1000 followers earn the cap
	weightPublications = 30 // 100 publications earn the cap
	weightEngagement   = 25 // 50 mirrors+comments earn the cap
	weightNftAvatar    = 15 // profile picture backed by an NFT
)

const profileQuery = `query Profile($request: ProfileRequest!) {
  profile(request: $request) {
    id
    handle { localName }
    metadata { displayName picture { __typename } }
    stats { followers posts mirrors comments publications }
  }
}`

// Provider verifies Lens handles.
type Provider struct {
	endpoint string
	client   httpclient.Doer
}

// Option configures the Provider.
type Option func(*Provider)

// WithEndpoint overrides the GraphQL endpoint (for tests).
func WithEndpoint(endpoint string) Option {
	return func(p *Provider) { p.endpoint = endpoint }
}

// New creates a Lens provider.
func New(client httpclient.Doer, opts ...Option) *Provider {
	p := &Provider{
		endpoint: defaultEndpoint,
		client:   client,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Platform returns the platform this provider verifies.
func (p *Provider) Platform() models.Platform {
	return models.PlatformLens
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type profileResponse struct {
	Data struct {
		Profile *struct {
			ID     string `json:"id"`
			Handle struct {
				LocalName string `json:"localName"`
			} `json:"handle"`
			Metadata *struct {
				DisplayName string `json:"displayName"`
				Picture     *struct {
					Typename string `json:"__typename"`
				} `json:"picture"`
			} `json:"metadata"`
			Stats struct {
				Followers    int `json:"followers"`
				Posts        int `json:"posts"`
				Mirrors      int `json:"mirrors"`
				Comments     int `json:"comments"`
				Publications int `json:"publications"`
			} `json:"stats"`
		} `json:"profile"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Lookup queries the profile for "lens/<handle>" and maps its stats to
// score terms.
func (p *Provider) Lookup(ctx context.Context, handle domain.Handle) (*providers.Profile, error) {
	body, err := json.Marshal(graphqlRequest{
		Query: profileQuery,
		Variables: map[string]any{
			"request": map[string]any{"forHandle": "lens/" + handle.String()},
		},
	})
	if err != nil {
		return nil, providers.NewProviderError(providers.ErrorInternal, "lens", "failed to marshal request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, providers.NewProviderError(providers.ErrorInternal, "lens", "failed to create request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var resp profileResponse
	if err := providers.DoJSON(ctx, p.client, req, "lens", "lens profile not found", &resp); err != nil {
		return nil, err
	}

	if len(resp.Errors) > 0 {
		return nil, providers.NewProviderError(providers.ErrorBadData, "lens",
			"lens query failed: "+resp.Errors[0].Message, nil)
	}
	profile := resp.Data.Profile
	if profile == nil {
		return nil, providers.NewProviderError(providers.ErrorNotFound, "lens", "lens profile not found", nil)
	}

	hasNftAvatar := profile.Metadata != nil &&
		profile.Metadata.Picture != nil &&
		profile.Metadata.Picture.Typename == "NftImage"

	displayName := ""
	if profile.Metadata != nil {
		displayName = profile.Metadata.DisplayName
	}

	engagement := profile.Stats.Mirrors + profile.Stats.Comments

	return &providers.Profile{
		Account: models.AccountData{
			"profileId":    profile.ID,
			"handle":       profile.Handle.LocalName,
			"name":         displayName,
			"followers":    profile.Stats.Followers,
			"publications": profile.Stats.Publications,
			"mirrors":      profile.Stats.Mirrors,
			"comments":     profile.Stats.Comments,
			"hasNftAvatar": hasNftAvatar,
		},
		Terms: []scoring.Term{
			{Name: "followers", Weight: weightFollowers, Ratio: scoring.Fraction(float64(profile.Stats.Followers), 1000)},
			{Name: "publications", Weight: weightPublications, Ratio: scoring.Fraction(float64(profile.Stats.Publications), 100)},
			{Name: "engagement", Weight: weightEngagement, Ratio: scoring.Fraction(float64(engagement), 50)},
			{Name: "nft_avatar", Weight: weightNftAvatar, Ratio: scoring.Flag(hasNftAvatar)},
		},
	}, nil
}
