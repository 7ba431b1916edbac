package app

import (
	"context"

	"github.com/CrestNiraj12/netterm/domain"
)

// AccountService covers profiles and the follow graph.
type AccountService interface {
	// Profile returns the header and first posts page for username.
	Profile(ctx context.Context, username string) (domain.Profile, error)

	// ToggleFollow follows or unfollows username and returns the new state.
	ToggleFollow(ctx context.Context, username string) (domain.FollowState, error)
}

// SessionService manages the signed-in session.
type SessionService interface {
	// Viewer reports who the current session belongs to.
	Viewer(ctx context.Context) (domain.Viewer, error)

	// Login signs in with a username and password.
	Login(ctx context.Context, username, password string) error

	// Register creates an account and signs in.
	Register(ctx context.Context, username, email, password, confirmation string) error

	// Logout ends the session.
	Logout(ctx context.Context) error
}
