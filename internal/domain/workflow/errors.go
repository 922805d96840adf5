package workflow

import "errors"

var (
	// ErrProjectNotFound indicates the project doesn't exist.
	ErrProjectNotFound = errors.New("project not found")
	// ErrTransitionDenied indicates the requested transition is not in the
	// catalog or the actor lacks permission for it.
	ErrTransitionDenied = errors.New("status transition denied")
	// ErrConcurrentModification indicates the project status changed between
	// validation and write. The caller should re-fetch and may retry once.
	ErrConcurrentModification = errors.New("project modified concurrently")
	// ErrUnknownStatus indicates a status outside the catalog.
	ErrUnknownStatus = errors.New("unknown project status")
	// ErrInvalidInput indicates invalid input for workflow operations.
	ErrInvalidInput = errors.New("invalid workflow input")
)
