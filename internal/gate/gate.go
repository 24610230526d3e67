package gate

import (
	"context"

	"github.com/micro-blogger/telegram-client/internal/domain"
)

// State is determined solely by credential presence, never by a live
// server check.
type State int

const (
	StateAnonymous State = iota
	StateAuthenticated
)

// Decision is the outcome of a screen entry guard.
type Decision int

const (
	DecisionProceed Decision = iota
	DecisionRedirectProfile
)

// Controller gates the session-sensitive screens and owns the
// login/register/logout transitions.
type Controller interface {
	State() State

	// GateEntry guards the login and register screens: an authenticated
	// client is redirected to the profile without any network call.
	GateEntry() Decision

	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, username, email, password string) error
	Logout()

	// ResolveSelf answers "who am I" through the authenticated
	// self-lookup and then fetches that profile. A rejected lookup reads
	// as not-found; the stored credential is never cleared here.
	ResolveSelf(ctx context.Context) (*domain.Profile, error)
}
