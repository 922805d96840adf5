package audit

import "errors"

var (
	// ErrInvalidInput indicates invalid input for audit operations.
	ErrInvalidInput = errors.New("invalid audit input")
)
