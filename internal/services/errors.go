package services

import "errors"

// Request-scoped failure kinds surfaced by the services. Handlers map
// these onto transport status codes with errors.Is; none of them is
// fatal to the process.
var (
	// ErrUserNotFound: no user owns the email presented at login.
	ErrUserNotFound = errors.New("user not found")
	// ErrIncorrectPassword: the login password did not match.
	ErrIncorrectPassword = errors.New("incorrect password")
	// ErrUnauthenticated: missing, unknown or expired login token.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden: authenticated, but not authorized for the target.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound: authorized, but the target resource is absent.
	ErrNotFound = errors.New("not found")
	// ErrEmailInUse: the address is already registered to a user.
	ErrEmailInUse = errors.New("email already registered")
	// ErrValidation wraps rejected user or activity input.
	ErrValidation = errors.New("validation failed")
)
