// Package common holds the sentinel errors shared by the store, service and
// HTTP layers. Callers match them with errors.Is; lower layers wrap them with
// fmt.Errorf("...: %w", err) to add context.
package common

import "errors"

var (
	// Authentication errors.
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrExpiredToken       = errors.New("token expired")
	ErrMalformedToken     = errors.New("invalid token")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Registration errors.
	ErrDuplicateUsername = errors.New("username already registered")
	ErrDuplicateEmail    = errors.New("email already registered")

	// Store errors.
	ErrUserNotFound      = errors.New("user not found")
	ErrInvalidIdentifier = errors.New("invalid identifier")
	ErrNotFound          = errors.New("not found")

	// Request shape errors (missing or out-of-range fields).
	ErrValidation = errors.New("validation error")

	// Probe errors.
	ErrResolution = errors.New("unable to resolve address")

	ErrInternal = errors.New("internal error")
)
