// Package httpclient builds the outbound HTTP client shared by platform
// verifiers and the wallet adapter. Retries for transient failures live
// here, in the transport layer; verifier logic itself never retries.
package httpclient

import (
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// Doer is the minimal interface verifiers and adapters need from an HTTP
// client. *http.Client satisfies it, as does the retryable client returned
// by New; tests substitute stubs.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// New returns a client that retries transient failures (connection errors,
// 5xx) with capped backoff. 4xx responses are returned as-is so verifiers
// can map them to failure results.
func New(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = 2
	rc.RetryWaitMin = 200 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.HTTPClient.Timeout = timeout
	rc.Logger = nil

	client := rc.StandardClient()
	client.Timeout = timeout
	return client
}
