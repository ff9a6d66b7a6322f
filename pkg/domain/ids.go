package domain

import (
	"strings"

	dErrors "pulse/pkg/domain-errors"
)

const (
	maxIdentityLength = 128
	maxHandleLength   = 64
)

// Identity is the opaque user identity string that all verification and
// credential records are keyed under. In practice this is a wallet address
// or DID issued by the identity layer; this package treats it as opaque.
type Identity string

// ParseIdentity validates an identity string.
func ParseIdentity(value string) (Identity, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "identity is required")
	}
	if len(value) > maxIdentityLength {
		return "", dErrors.New(dErrors.CodeInvalidInput, "identity exceeds maximum length")
	}
	return Identity(value), nil
}

// String returns the identity as a string.
func (i Identity) String() string {
	return string(i)
}

// Handle is a platform account handle (e.g. a GitHub login or a Farcaster
// username). A leading "@" is accepted on input and stripped.
type Handle string

// ParseHandle validates and normalizes a platform handle.
func ParseHandle(value string) (Handle, error) {
	value = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(value), "@"))
	if value == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "handle is required")
	}
	if len(value) > maxHandleLength {
		return "", dErrors.New(dErrors.CodeInvalidInput, "handle exceeds maximum length")
	}
	if strings.ContainsAny(value, " \t\n") {
		return "", dErrors.New(dErrors.CodeInvalidInput, "handle must not contain whitespace")
	}
	return Handle(value), nil
}

// String returns the handle as a string.
func (h Handle) String() string {
	return string(h)
}
