// Package oauth verifies provider-issued tokens and turns them into user
// profiles the session layer can trust.
package oauth

import (
	"context"
	"errors"
)

// ErrProvider marks failures of the identity provider itself, as opposed to
// an invalid or expired token presented by the caller.
var ErrProvider = errors.New("identity provider error")

// Profile is the identity a provider vouches for after verification.
type Profile struct {
	ExternalID string
	Name       string
	Email      string
	Picture    string
	Provider   string
}

// Verifier validates a provider token and resolves the profile behind it.
// Revoke is best-effort and invalidates the token with the provider.
type Verifier interface {
	Verify(ctx context.Context, token string) (Profile, error)
	Revoke(ctx context.Context, token string) error
}
