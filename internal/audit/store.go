package audit

import "context"

// Store is the append-only sink audit events are persisted to.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByIdentity(ctx context.Context, identity string) ([]Event, error)
}
