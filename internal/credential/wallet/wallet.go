// Package wallet integrates with the external wallet service that anchors
// credentials on chain. Anchoring is best effort: when the service is not
// configured or a call fails, credentials fall back to local storage.
package wallet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"pulse/internal/platform/httpclient"
	dErrors "pulse/pkg/domain-errors"
)

// IssuePayload is the request sent to the wallet service.
type IssuePayload struct {
	Subject string         `json:"subject"`
	Type    string         `json:"type"`
	Data    map[string]any `json:"data,omitempty"`
}

// Client issues credentials through the wallet service. Implementations
// return an opaque reference to the anchored credential.
type Client interface {
	IssueCredential(ctx context.Context, payload IssuePayload) (string, error)
}

// Capability reports whether on-chain issuance is available. It is decided
// once at construction from configuration, so callers branch on a value
// instead of nil-checking a client.
type Capability struct {
	client Client
}

// Capable wraps a configured wallet client.
func Capable(client Client) Capability {
	return Capability{client: client}
}

// NotCapable marks on-chain issuance as unavailable.
func NotCapable() Capability {
	return Capability{}
}

// Client returns the wallet client when issuance is available.
func (c Capability) Client() (Client, bool) {
	return c.client, c.client != nil
}

// HTTPClient talks to the wallet service's REST API.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  httpclient.Doer
}

// NewHTTPClient creates a wallet API client.
func NewHTTPClient(baseURL, apiKey string, client httpclient.Doer) *HTTPClient {
	return &HTTPClient{baseURL: baseURL, apiKey: apiKey, client: client}
}

type issueResponse struct {
	CredentialRef string `json:"credentialRef"`
}

// IssueCredential submits the credential for anchoring and returns the
// wallet's reference.
func (c *HTTPClient) IssueCredential(ctx context.Context, payload IssuePayload) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to encode wallet payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/credentials/issue", bytes.NewReader(body))
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to create wallet request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "wallet request failed")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		io.Copy(io.Discard, resp.Body) //nolint:errcheck
		return "", dErrors.New(dErrors.CodeInternal, fmt.Sprintf("wallet service returned status %d", resp.StatusCode))
	}

	var out issueResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to decode wallet response")
	}
	if out.CredentialRef == "" {
		return "", dErrors.New(dErrors.CodeInternal, "wallet response missing credential reference")
	}
	return out.CredentialRef, nil
}

var _ Client = (*HTTPClient)(nil)
