package audit

import "time"

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp time.Time
	Identity  string
	Action    string
	Platform  string
	Outcome   string
	Reason    string
	RequestID string
	UserAgent string
	Browser   string
	OS        string
}

type AuditEvent string

const (
	EventVerificationStarted   AuditEvent = "verification_started"
	EventVerificationSucceeded AuditEvent = "verification_succeeded"
	EventVerificationFailed    AuditEvent = "verification_failed"
	EventVerificationDenied    AuditEvent = "verification_denied"
	EventAgeEvaluated          AuditEvent = "age_evaluated"
	EventCredentialIssued      AuditEvent = "credential_issued"
)

// Outcomes recorded on events.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeDenied  = "denied"
)
