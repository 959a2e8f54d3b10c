package models

import "errors"

// Sentinel errors shared between services and handlers. Services wrap them
// with a resource-specific message ("user not found", "email already in use")
// and handlers translate them to HTTP status codes with errors.Is.
var (
	// ErrValidation marks malformed or conflicting input (400)
	ErrValidation = errors.New("invalid input")
	// ErrNotFound marks a missing resource id (404)
	ErrNotFound = errors.New("not found")
	// ErrForbidden marks an authenticated caller with the wrong role (403)
	ErrForbidden = errors.New("access denied")
	// ErrInvalidCredentials is returned for both an unknown email and a wrong
	// password so the response shape carries no user-enumeration signal (401)
	ErrInvalidCredentials = errors.New("invalid email or password")
)
