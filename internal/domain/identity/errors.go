package identity

import "errors"

var (
	// ErrUserNotFound indicates no user matched the lookup.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidInput indicates invalid identity input.
	ErrInvalidInput = errors.New("invalid identity input")
)
