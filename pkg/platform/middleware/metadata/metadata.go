// Package metadata extracts client metadata from incoming requests so audit
// events can record which browser and OS initiated a verification attempt.
package metadata

import (
	"net/http"

	"pulse/pkg/requestcontext"

	"github.com/mssola/useragent"
)

// ClientMetadata parses the User-Agent header and injects structured client
// info into the request context. Register before any middleware or handler
// that emits audit events.
func ClientMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.UserAgent()
		info := requestcontext.ClientInfo{UserAgent: raw}

		if raw != "" {
			ua := useragent.New(raw)
			browser, _ := ua.Browser()
			info.Browser = browser
			info.OS = ua.OS()
			info.Mobile = ua.Mobile()
		}

		ctx := requestcontext.WithClientInfo(r.Context(), info)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
