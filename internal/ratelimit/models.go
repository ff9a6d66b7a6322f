// Package ratelimit enforces the daily verification attempt quota. The
// limit is advisory: it keeps accidental retry loops and casual abuse off
// the upstream provider APIs, it is not a security boundary.
package ratelimit

import "time"

// Quota describes an identity's remaining attempts inside the current
// window.
type Quota struct {
	Remaining int       `json:"remaining"`
	ResetAt   time.Time `json:"resetAt,omitempty"`
}
