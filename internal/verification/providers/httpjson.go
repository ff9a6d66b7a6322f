package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"pulse/internal/platform/httpclient"
)

// DoJSON executes a platform API request, maps transport failures and error
// status codes to normalized provider errors, and decodes a 2xx body into
// out. The notFoundMsg is surfaced for 404s so each platform can phrase
// "account not found" in its own terms.
func DoJSON(ctx context.Context, client httpclient.Doer, req *http.Request, platform, notFoundMsg string, out any) error {
	resp, err := client.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return NewProviderError(ErrorTimeout, platform, platform+" request timed out", err)
		}
		return NewProviderError(ErrorOutage, platform, platform+" is unreachable", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return NewProviderError(ErrorBadData, platform, "failed to read "+platform+" response", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to decode
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return NewProviderError(ErrorAuthentication, platform, platform+" rejected the configured API credential", nil)
	case resp.StatusCode == http.StatusNotFound:
		return NewProviderError(ErrorNotFound, platform, notFoundMsg, nil)
	case resp.StatusCode == http.StatusTooManyRequests:
		return NewProviderError(ErrorRateLimited, platform, platform+" rate limit exceeded, try again later", nil)
	case resp.StatusCode >= 500:
		return NewProviderError(ErrorOutage, platform, platform+" is temporarily unavailable", nil)
	default:
		return NewProviderError(ErrorInternal, platform,
			fmt.Sprintf("%s returned unexpected status %d", platform, resp.StatusCode), nil)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return NewProviderError(ErrorBadData, platform, platform+" returned a malformed response", err)
	}
	return nil
}
