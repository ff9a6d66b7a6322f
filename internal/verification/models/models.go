package models

import (
	"strings"
	"time"

	dErrors "pulse/pkg/domain-errors"
)

// Platform identifies an external platform a user can verify a handle on.
type Platform string

const (
	PlatformGitHub    Platform = "github"
	PlatformTwitter   Platform = "twitter"
	PlatformLens      Platform = "lens"
	PlatformFarcaster Platform = "farcaster"
	PlatformMirror    Platform = "mirror"
	PlatformLinkedIn  Platform = "linkedin"
	PlatformLink3     Platform = "link3"
)

// Platforms lists every platform known to the reputation model, including
// ones without a live verifier yet (weights are defined for all of them).
var Platforms = []Platform{
	PlatformGitHub,
	PlatformTwitter,
	PlatformLens,
	PlatformFarcaster,
	PlatformMirror,
	PlatformLinkedIn,
	PlatformLink3,
}

// ParsePlatform validates a platform string.
func ParsePlatform(value string) (Platform, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	for _, p := range Platforms {
		if value == string(p) {
			return p, nil
		}
	}
	return "", dErrors.New(dErrors.CodeInvalidInput, "unknown platform")
}

// String returns the platform as a string.
func (p Platform) String() string {
	return string(p)
}

// AccountData is the semi-structured profile snapshot captured at
// verification time: handle, counts, timestamps, badge flags. Keys are
// platform-specific.
type AccountData map[string]any

// VerificationResult is the outcome of one verification attempt for one
// platform.
//
// Invariant: QualityScore is meaningful iff Verified is true; Error is
// non-empty iff Verified is false. The two are mutually exclusive and
// collectively exhaustive.
type VerificationResult struct {
	Platform     Platform    `json:"platform"`
	Verified     bool        `json:"verified"`
	AccountData  AccountData `json:"accountData,omitempty"`
	QualityScore int         `json:"qualityScore,omitempty"`
	Timestamp    time.Time   `json:"timestamp"`
	Error        string      `json:"error,omitempty"`
}

// Unverified builds a failed result with the given reason.
func Unverified(platform Platform, reason string, at time.Time) VerificationResult {
	if reason == "" {
		reason = "verification failed"
	}
	return VerificationResult{
		Platform:  platform,
		Verified:  false,
		Timestamp: at.UTC(),
		Error:     reason,
	}
}

// Verified builds a successful result carrying the profile snapshot and
// the derived quality score.
func Verified(platform Platform, data AccountData, score int, at time.Time) VerificationResult {
	return VerificationResult{
		Platform:     platform,
		Verified:     true,
		AccountData:  data,
		QualityScore: score,
		Timestamp:    at.UTC(),
	}
}
