package gateway

import "errors"

// Sentinel errors mapped from HTTP status codes and transport failures.
// Callers use [errors.Is] for transport-agnostic handling.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("access forbidden")
	ErrNotFound            = errors.New("resource not found")
	ErrConflict            = errors.New("resource conflict")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")

	// ErrNetwork covers transport-level failures: connection errors,
	// timeouts, and context cancellation.
	ErrNetwork = errors.New("network error")

	// ErrSessionExpired is returned when a request 401-ed and the
	// follow-up credential renewal failed; the session has been logged
	// out by the time callers observe it.
	ErrSessionExpired = errors.New("session expired")
)
