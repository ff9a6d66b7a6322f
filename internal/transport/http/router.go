package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pulse/pkg/platform/middleware/auth"
	"pulse/pkg/platform/middleware/metadata"
	"pulse/pkg/platform/middleware/request"
)

// NewRouter wires all endpoints with middleware. Everything under /v1
// requires a bearer token; health and metrics stay public.
func NewRouter(h *Handler, validator auth.TokenValidator, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(request.Recovery(logger))
	r.Use(request.RequestID)
	r.Use(metadata.ClientMetadata)

	r.Get("/healthz", h.handleHealthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Use(auth.Bearer(validator))

		r.Post("/verifications", h.handleVerify)
		r.Get("/verifications", h.handleListVerifications)
		r.Get("/reputation", h.handleReputation)
		r.Post("/age/verify", h.handleAgeVerify)
		r.Get("/attempts", h.handleAttempts)
		r.Post("/credentials", h.handleIssueCredential)
		r.Get("/credentials", h.handleListCredentials)
	})

	return r
}
