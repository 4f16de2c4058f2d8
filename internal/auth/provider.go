// Package auth handles user identity against the remote auth backend and
// keeps the active session in memory for the rest of the app.
package auth

import (
	"context"
	"time"
)

// Session is the authenticated state returned by a successful sign-in.
type Session struct {
	UserID      string
	Email       string
	DisplayName string
	AccessToken string
	ExpiresAt   time.Time
}

// Provider is the identity source for the sync engine. Implementations hold
// at most one active session.
type Provider interface {
	// CurrentUserID returns the signed-in user's id, or
	// common.ErrNotAuthenticated when nobody is signed in.
	CurrentUserID() (string, error)

	// SignUp registers a new account and signs it in.
	SignUp(ctx context.Context, firstName, lastName, email, password string) (*Session, error)

	// SignIn authenticates with email and password.
	SignIn(ctx context.Context, email, password string) (*Session, error)

	// SignInWithToken exchanges an externally issued identity token for a
	// session (federated sign-in).
	SignInWithToken(ctx context.Context, token string) (*Session, error)

	// SignOut drops the active session. Safe to call when signed out.
	SignOut()
}
