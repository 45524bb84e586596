package api

import "errors"

var (
	// ErrUnavailable wraps transport-level failures.
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized means the server rejected the credentials or the token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrAlreadyExists means registration hit a duplicate email.
	ErrAlreadyExists = errors.New("already exists")
)
