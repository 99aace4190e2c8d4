package services

import "errors"

// Sentinel errors returned by the repositories. Handlers map these to HTTP
// status codes with errors.Is; anything else is an upstream failure and
// collapses to a generic 500.
var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmptyContent       = errors.New("content is required")
	ErrForbidden          = errors.New("not the owner")
	ErrUnauthorized       = errors.New("authentication required")
)
