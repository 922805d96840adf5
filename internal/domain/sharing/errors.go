package sharing

import "errors"

var (
	// ErrAlreadyShared indicates an active grant already exists for the
	// (task, artist) pair. A soft conflict: the caller should update the
	// existing grant instead of creating another.
	ErrAlreadyShared = errors.New("task already shared with artist")
	// ErrNotPending indicates the grant has already been resolved.
	ErrNotPending = errors.New("grant is not pending")
	// ErrArtistNotFound indicates the handle did not resolve to a user
	// holding the artist role.
	ErrArtistNotFound = errors.New("artist not found")
	// ErrGrantNotFound indicates the grant doesn't exist.
	ErrGrantNotFound = errors.New("grant not found")
	// ErrTaskNotFound indicates the task doesn't exist.
	ErrTaskNotFound = errors.New("task not found")
	// ErrInvalidInput indicates invalid input for sharing operations.
	ErrInvalidInput = errors.New("invalid sharing input")
)
