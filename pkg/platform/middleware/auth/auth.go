package auth

import (
	"net/http"
	"strings"

	"pulse/pkg/domain"
	dErrors "pulse/pkg/domain-errors"
	"pulse/pkg/platform/httputil"
	"pulse/pkg/requestcontext"
)

// TokenValidator validates a bearer token and returns the identity it binds.
type TokenValidator interface {
	Validate(tokenString string) (domain.Identity, error)
}

// Bearer enforces bearer-token authentication and injects the caller
// identity into the request context.
func Bearer(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := extractBearerToken(r.Header.Get("Authorization"))
			if err != nil {
				httputil.WriteError(w, err)
				return
			}

			identity, err := validator.Validate(token)
			if err != nil {
				httputil.WriteError(w, err)
				return
			}

			ctx := requestcontext.WithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractBearerToken(header string) (string, error) {
	const prefix = "Bearer "
	if header == "" {
		return "", dErrors.New(dErrors.CodeUnauthorized, "missing authorization header")
	}
	if !strings.HasPrefix(header, prefix) {
		return "", dErrors.New(dErrors.CodeUnauthorized, "invalid authorization header")
	}
	token := strings.TrimSpace(header[len(prefix):])
	if token == "" {
		return "", dErrors.New(dErrors.CodeUnauthorized, "invalid authorization header")
	}
	return token, nil
}
