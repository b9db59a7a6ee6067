package session

import (
	"errors"
	"fmt"

	"github.com/salim-ai/salim-client/internal/gateway"
)

// Login error taxonomy. The view layer renders a kind-specific message for
// each; anything unrecognised falls through as ErrAuth.
var (
	// ErrInvalidCredentials is returned when the backend rejects the
	// email/password pair (401 on login).
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrAccountDisabled is returned when the account exists but is not
	// allowed to log in (403 on login).
	ErrAccountDisabled = errors.New("account disabled")

	// ErrServer is returned for backend-side failures (5xx); the user is
	// advised to retry later.
	ErrServer = errors.New("server error")

	// ErrNetwork is returned for transport failures and timeouts.
	ErrNetwork = errors.New("network error")

	// ErrAuth is the catch-all for authentication failures that do not
	// fit a more specific kind.
	ErrAuth = errors.New("authentication failed")
)

// mapLoginError translates the gateway's transport error into the login
// taxonomy.
func mapLoginError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gateway.ErrUnauthorized):
		return ErrInvalidCredentials
	case errors.Is(err, gateway.ErrForbidden):
		return ErrAccountDisabled
	case errors.Is(err, gateway.ErrInternalServerError), errors.Is(err, gateway.ErrBadGateway):
		return ErrServer
	case errors.Is(err, gateway.ErrNetwork):
		return ErrNetwork
	default:
		return fmt.Errorf("%w: %v", ErrAuth, err)
	}
}
