// Package httptransport is the thin HTTP layer. Handlers decode requests,
// delegate to domain services and translate domain errors; no business
// logic lives here.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"pulse/internal/audit"
	credmodels "pulse/internal/credential/models"
	"pulse/internal/ratelimit"
	"pulse/internal/reputation"
	"pulse/internal/verification/models"
	"pulse/pkg/domain"
	"pulse/pkg/platform/httputil"
)

// VerificationService runs the verification pipeline.
type VerificationService interface {
	Verify(ctx context.Context, identity domain.Identity, platform models.Platform, handle domain.Handle) (models.VerificationResult, error)
	List(ctx context.Context, identity domain.Identity) ([]models.VerificationResult, error)
}

// ReputationService computes aggregate reputation.
type ReputationService interface {
	ForIdentity(ctx context.Context, identity domain.Identity) (reputation.Summary, error)
}

// CredentialService issues and lists credentials.
type CredentialService interface {
	Issue(ctx context.Context, subject domain.Identity, credType credmodels.CredentialType, data map[string]any) credmodels.CredentialRecord
	List(ctx context.Context, subject domain.Identity, credType credmodels.CredentialType) ([]credmodels.CredentialRecord, error)
}

// QuotaService reports the caller's remaining verification attempts.
type QuotaService interface {
	Remaining(ctx context.Context, identity domain.Identity) (ratelimit.Quota, error)
}

// Handler holds the domain services the HTTP endpoints delegate to.
type Handler struct {
	verifications VerificationService
	reputation    ReputationService
	credentials   CredentialService
	quota         QuotaService
	auditor       *audit.Publisher
	logger        *slog.Logger
	now           func() time.Time
}

// HandlerOption configures the Handler.
type HandlerOption func(*Handler)

// WithAuditor enables audit events for age evaluations.
func WithAuditor(a *audit.Publisher) HandlerOption {
	return func(h *Handler) { h.auditor = a }
}

// WithClock injects the time source for tests.
func WithClock(now func() time.Time) HandlerOption {
	return func(h *Handler) { h.now = now }
}

// NewHandler creates the HTTP handler.
func NewHandler(
	verifications VerificationService,
	reputationSvc ReputationService,
	credentials CredentialService,
	quota QuotaService,
	logger *slog.Logger,
	opts ...HandlerOption,
) *Handler {
	h := &Handler{
		verifications: verifications,
		reputation:    reputationSvc,
		credentials:   credentials,
		quota:         quota,
		logger:        logger,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

type verifyRequest struct {
	Platform string `json:"platform"`
	Handle   string `json:"handle"`
}

func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	identity, err := httputil.RequireIdentity(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var req verifyRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	platform, err := models.ParsePlatform(req.Platform)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	handle, err := domain.ParseHandle(req.Handle)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	result, err := h.verifications.Verify(r.Context(), identity, platform, handle)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) handleListVerifications(w http.ResponseWriter, r *http.Request) {
	identity, err := httputil.RequireIdentity(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	results, err := h.verifications.List(r.Context(), identity)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"verifications": results})
}

func (h *Handler) handleReputation(w http.ResponseWriter, r *http.Request) {
	identity, err := httputil.RequireIdentity(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	summary, err := h.reputation.ForIdentity(r.Context(), identity)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, summary)
}

type ageVerifyRequest struct {
	Birthdate string `json:"birthdate"`
}

type ageVerifyResponse struct {
	domain.AgeOutcome
	Credential *credmodels.CredentialRecord `json:"credential,omitempty"`
}

// handleAgeVerify evaluates a birthdate locally. No outbound call is made,
// so the daily verification quota is not consumed. A valid over-18 outcome
// earns an age_verification credential.
func (h *Handler) handleAgeVerify(w http.ResponseWriter, r *http.Request) {
	identity, err := httputil.RequireIdentity(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var req ageVerifyRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	outcome := domain.EvaluateBirthdate(req.Birthdate, h.now())
	resp := ageVerifyResponse{AgeOutcome: outcome}

	if outcome.IsValid && outcome.IsOver18 && h.credentials != nil {
		record := h.credentials.Issue(r.Context(), identity, credmodels.TypeAgeVerification, map[string]any{
			"over18":     true,
			"verifiedAt": h.now().UTC().Format(time.RFC3339),
		})
		resp.Credential = &record
	}

	h.emitAgeAudit(r.Context(), identity, outcome)
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) emitAgeAudit(ctx context.Context, identity domain.Identity, outcome domain.AgeOutcome) {
	if h.auditor == nil {
		return
	}
	result := audit.OutcomeSuccess
	if !outcome.IsValid || !outcome.IsOver18 {
		result = audit.OutcomeFailure
	}
	if err := h.auditor.Emit(ctx, audit.Event{
		Identity: identity.String(),
		Action:   string(audit.EventAgeEvaluated),
		Outcome:  result,
		Reason:   outcome.Error,
	}); err != nil {
		h.logger.WarnContext(ctx, "failed to emit audit event", "error", err)
	}
}

func (h *Handler) handleAttempts(w http.ResponseWriter, r *http.Request) {
	identity, err := httputil.RequireIdentity(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	quota, err := h.quota.Remaining(r.Context(), identity)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, quota)
}

type issueCredentialRequest struct {
	Type string         `json:"type"`
	Data map[string]any `json:"data"`
}

func (h *Handler) handleIssueCredential(w http.ResponseWriter, r *http.Request) {
	identity, err := httputil.RequireIdentity(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var req issueCredentialRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	credType, err := credmodels.ParseCredentialType(req.Type)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	record := h.credentials.Issue(r.Context(), identity, credType, req.Data)
	httputil.WriteJSON(w, http.StatusCreated, record)
}

func (h *Handler) handleListCredentials(w http.ResponseWriter, r *http.Request) {
	identity, err := httputil.RequireIdentity(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var credType credmodels.CredentialType
	if raw := r.URL.Query().Get("type"); raw != "" {
		credType, err = credmodels.ParseCredentialType(raw)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
	}

	records, err := h.credentials.List(r.Context(), identity, credType)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"credentials": records})
}

func (h *Handler) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
