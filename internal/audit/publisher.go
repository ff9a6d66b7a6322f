// Package audit captures who did what during verification and credential
// issuance. Events are persisted to the store and mirrored to the
// structured log with log_type=audit so they can be filtered downstream.
package audit

import (
	"context"
	"log/slog"
	"time"

	"pulse/pkg/requestcontext"
)

// Publisher captures structured audit events. It is append-only and uses
// the storage layer for persistence so tests can swap sinks easily.
type Publisher struct {
	store  Store
	logger *slog.Logger
}

// PublisherOption configures the Publisher.
type PublisherOption func(*Publisher)

// WithLogger mirrors emitted events to the structured log.
func WithLogger(logger *slog.Logger) PublisherOption {
	return func(p *Publisher) {
		p.logger = logger
	}
}

func NewPublisher(store Store, opts ...PublisherOption) *Publisher {
	p := &Publisher{store: store}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Emit persists the event, filling in the timestamp and any request
// metadata present on the context.
func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	if event.UserAgent == "" {
		info := requestcontext.ClientInfoFrom(ctx)
		event.UserAgent = info.UserAgent
		event.Browser = info.Browser
		event.OS = info.OS
	}

	if p.logger != nil {
		p.logger.InfoContext(ctx, "audit event",
			"log_type", "audit",
			"action", event.Action,
			"identity", event.Identity,
			"platform", event.Platform,
			"outcome", event.Outcome,
			"reason", event.Reason,
			"request_id", event.RequestID,
			"browser", event.Browser,
			"os", event.OS,
		)
	}
	return p.store.Append(ctx, event)
}

// List returns the audit trail for an identity.
func (p *Publisher) List(ctx context.Context, identity string) ([]Event, error) {
	return p.store.ListByIdentity(ctx, identity)
}
